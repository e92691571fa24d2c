package domain

import (
	"context"

	"github.com/google/uuid"
)

// FacilityRepository defines persistence operations for facility aggregates
type FacilityRepository interface {
	// GetByID retrieves a facility with its share pies.
	// Returns ErrNotFound if the id does not resolve.
	GetByID(ctx context.Context, id uuid.UUID) (*Facility, error)

	// List retrieves all facilities with their share pies
	List(ctx context.Context) ([]*Facility, error)

	// ListByBorrowerExcluding retrieves the facilities of syndicates backing
	// the given borrower, excluding one facility id (nil to exclude none).
	// Used for the cross-facility credit-exposure sum.
	ListByBorrowerExcluding(ctx context.Context, borrowerID uuid.UUID, excludeFacilityID *uuid.UUID) ([]*Facility, error)

	// Create inserts a new facility row at version 1
	Create(ctx context.Context, f *Facility) error

	// Update replaces the facility's scalar fields if the stored version
	// equals expectedVersion, atomically setting version to expectedVersion+1.
	// Returns ErrVersionConflict on a version mismatch, ErrNotFound if the
	// row is missing.
	Update(ctx context.Context, f *Facility, expectedVersion int64) error

	// Delete removes the facility row. Returns ErrNotFound if absent.
	Delete(ctx context.Context, id uuid.UUID) error
}

// SharePieRepository defines persistence operations for a facility's share pies.
// The pie set is owned by its facility: it is always replaced as a whole.
type SharePieRepository interface {
	// ListByFacility retrieves the share pies of one facility
	ListByFacility(ctx context.Context, facilityID uuid.UUID) ([]SharePie, error)

	// ReplaceAll deletes the facility's existing pies and inserts the new set
	ReplaceAll(ctx context.Context, facilityID uuid.UUID, pies []SharePie) error

	// DeleteByFacility removes all pies of one facility
	DeleteByFacility(ctx context.Context, facilityID uuid.UUID) error
}

// InvestmentRepository defines persistence operations for the derived
// facility-investment ledger.
type InvestmentRepository interface {
	// ListByFacility retrieves the investment rows of one facility
	ListByFacility(ctx context.Context, facilityID uuid.UUID) ([]FacilityInvestment, error)

	// ReplaceAll deletes the facility's existing investment rows and inserts
	// the regenerated set
	ReplaceAll(ctx context.Context, facilityID uuid.UUID, investments []FacilityInvestment) error
}

// SyndicateRepository defines persistence operations for syndicates
type SyndicateRepository interface {
	// GetByID retrieves a syndicate by its ID
	GetByID(ctx context.Context, id uuid.UUID) (*Syndicate, error)

	// List retrieves all syndicates
	List(ctx context.Context) ([]*Syndicate, error)

	// Create creates a new syndicate
	Create(ctx context.Context, s *Syndicate) error

	// Update replaces the syndicate's fields
	Update(ctx context.Context, s *Syndicate) error

	// Delete removes the syndicate. Returns ErrNotFound if absent.
	Delete(ctx context.Context, id uuid.UUID) error
}

// InvestorRepository defines persistence operations for investors
type InvestorRepository interface {
	// GetByID retrieves an investor by its ID
	GetByID(ctx context.Context, id uuid.UUID) (*Investor, error)

	// List retrieves all investors
	List(ctx context.Context) ([]*Investor, error)

	// Create creates a new investor
	Create(ctx context.Context, inv *Investor) error

	// Update replaces the investor's fields
	Update(ctx context.Context, inv *Investor) error

	// Delete removes the investor. Returns ErrNotFound if absent.
	Delete(ctx context.Context, id uuid.UUID) error
}

// BorrowerRepository defines persistence operations for borrowers
type BorrowerRepository interface {
	// GetByID retrieves a borrower by its ID
	GetByID(ctx context.Context, id uuid.UUID) (*Borrower, error)

	// List retrieves all borrowers
	List(ctx context.Context) ([]*Borrower, error)

	// Create creates a new borrower
	Create(ctx context.Context, b *Borrower) error

	// Update replaces the borrower's fields
	Update(ctx context.Context, b *Borrower) error

	// Delete removes the borrower. Returns ErrNotFound if absent.
	Delete(ctx context.Context, id uuid.UUID) error
}

// CompanyRepository defines persistence operations for companies
type CompanyRepository interface {
	// GetByID retrieves a company by its ID
	GetByID(ctx context.Context, id uuid.UUID) (*Company, error)

	// List retrieves all companies
	List(ctx context.Context) ([]*Company, error)

	// Create creates a new company
	Create(ctx context.Context, c *Company) error

	// Update replaces the company's fields
	Update(ctx context.Context, c *Company) error

	// Delete removes the company. Returns ErrNotFound if absent.
	Delete(ctx context.Context, id uuid.UUID) error
}
