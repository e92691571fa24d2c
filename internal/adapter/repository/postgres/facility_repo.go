package postgres

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"github.com/syndilend/syndilend-backend/internal/domain"
)

// facilityRepository implements domain.FacilityRepository
type facilityRepository struct {
	db executor
}

// NewFacilityRepository creates a new facility repository
func NewFacilityRepository(db *DB) domain.FacilityRepository {
	return &facilityRepository{db: db}
}

const facilityColumns = `id, syndicate_id, commitment, currency, start_date, end_date, interest_terms, created_at, updated_at, version`

// GetByID retrieves a facility with its share pies
func (r *facilityRepository) GetByID(ctx context.Context, id uuid.UUID) (*domain.Facility, error) {
	query := `
		SELECT ` + facilityColumns + `
		FROM facilities
		WHERE id = $1
	`

	f, err := scanFacility(r.db.QueryRowContext(ctx, query, id))
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, domain.NotFound("facility", id)
		}
		return nil, fmt.Errorf("failed to get facility by ID: %w", err)
	}

	pies, err := (&sharePieRepository{db: r.db}).ListByFacility(ctx, f.ID)
	if err != nil {
		return nil, err
	}
	f.SharePies = pies

	return f, nil
}

// List retrieves all facilities with their share pies
func (r *facilityRepository) List(ctx context.Context) ([]*domain.Facility, error) {
	query := `
		SELECT ` + facilityColumns + `
		FROM facilities
		ORDER BY created_at
	`

	rows, err := r.db.QueryContext(ctx, query)
	if err != nil {
		return nil, fmt.Errorf("failed to list facilities: %w", err)
	}
	defer rows.Close()

	var facilities []*domain.Facility
	for rows.Next() {
		f, err := scanFacility(rows)
		if err != nil {
			return nil, fmt.Errorf("failed to scan facility: %w", err)
		}
		facilities = append(facilities, f)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("failed to iterate facilities: %w", err)
	}

	pieRepo := &sharePieRepository{db: r.db}
	for _, f := range facilities {
		pies, err := pieRepo.ListByFacility(ctx, f.ID)
		if err != nil {
			return nil, err
		}
		f.SharePies = pies
	}

	return facilities, nil
}

// ListByBorrowerExcluding retrieves the facilities of syndicates backing the
// given borrower, excluding one facility id. Share pies are not loaded; the
// caller only needs the commitments for the exposure sum.
func (r *facilityRepository) ListByBorrowerExcluding(ctx context.Context, borrowerID uuid.UUID, excludeFacilityID *uuid.UUID) ([]*domain.Facility, error) {
	query := `
		SELECT ` + qualifiedFacilityColumns + `
		FROM facilities f
		JOIN syndicates s ON s.id = f.syndicate_id
		WHERE s.borrower_id = $1 AND ($2::uuid IS NULL OR f.id <> $2)
	`

	var exclude interface{}
	if excludeFacilityID != nil {
		exclude = *excludeFacilityID
	}

	rows, err := r.db.QueryContext(ctx, query, borrowerID, exclude)
	if err != nil {
		return nil, fmt.Errorf("failed to list facilities by borrower: %w", err)
	}
	defer rows.Close()

	var facilities []*domain.Facility
	for rows.Next() {
		f, err := scanFacility(rows)
		if err != nil {
			return nil, fmt.Errorf("failed to scan facility: %w", err)
		}
		facilities = append(facilities, f)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("failed to iterate facilities: %w", err)
	}

	return facilities, nil
}

// Create inserts a new facility row
func (r *facilityRepository) Create(ctx context.Context, f *domain.Facility) error {
	query := `
		INSERT INTO facilities (id, syndicate_id, commitment, currency, start_date, end_date, interest_terms, created_at, updated_at, version)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10)
	`

	_, err := r.db.ExecContext(ctx, query,
		f.ID,
		f.SyndicateID,
		f.Commitment.String(),
		f.Currency,
		f.StartDate,
		f.EndDate,
		f.InterestTerms,
		f.CreatedAt,
		f.UpdatedAt,
		f.Version,
	)
	if err != nil {
		return fmt.Errorf("failed to create facility: %w", err)
	}
	return nil
}

// Update replaces the facility's scalar fields under an optimistic version
// check: the row is touched only if the stored version equals expectedVersion,
// and the version advances by exactly one. Zero rows affected means either a
// concurrent writer won or the facility is gone; the two are reported as
// distinct errors.
func (r *facilityRepository) Update(ctx context.Context, f *domain.Facility, expectedVersion int64) error {
	query := `
		UPDATE facilities
		SET syndicate_id = $1, commitment = $2, currency = $3, start_date = $4,
		    end_date = $5, interest_terms = $6, updated_at = $7, version = $8 + 1
		WHERE id = $9 AND version = $8
	`

	res, err := r.db.ExecContext(ctx, query,
		f.SyndicateID,
		f.Commitment.String(),
		f.Currency,
		f.StartDate,
		f.EndDate,
		f.InterestTerms,
		f.UpdatedAt,
		expectedVersion,
		f.ID,
	)
	if err != nil {
		return fmt.Errorf("failed to update facility: %w", err)
	}

	affected, err := res.RowsAffected()
	if err != nil {
		return fmt.Errorf("failed to read affected rows: %w", err)
	}
	if affected == 0 {
		var exists bool
		if err := r.db.QueryRowContext(ctx, `SELECT EXISTS (SELECT 1 FROM facilities WHERE id = $1)`, f.ID).Scan(&exists); err != nil {
			return fmt.Errorf("failed to check facility existence: %w", err)
		}
		if !exists {
			return domain.NotFound("facility", f.ID)
		}
		return fmt.Errorf("facility %s expected version %d: %w", f.ID, expectedVersion, domain.ErrVersionConflict)
	}

	return nil
}

// Delete removes the facility row
func (r *facilityRepository) Delete(ctx context.Context, id uuid.UUID) error {
	res, err := r.db.ExecContext(ctx, `DELETE FROM facilities WHERE id = $1`, id)
	if err != nil {
		return fmt.Errorf("failed to delete facility: %w", err)
	}
	affected, err := res.RowsAffected()
	if err != nil {
		return fmt.Errorf("failed to read affected rows: %w", err)
	}
	if affected == 0 {
		return domain.NotFound("facility", id)
	}
	return nil
}

const qualifiedFacilityColumns = `f.id, f.syndicate_id, f.commitment, f.currency, f.start_date, f.end_date, f.interest_terms, f.created_at, f.updated_at, f.version`

// rowScanner abstracts *sql.Row and *sql.Rows
type rowScanner interface {
	Scan(dest ...any) error
}

func scanFacility(row rowScanner) (*domain.Facility, error) {
	var f domain.Facility
	var commitmentStr string

	err := row.Scan(
		&f.ID,
		&f.SyndicateID,
		&commitmentStr,
		&f.Currency,
		&f.StartDate,
		&f.EndDate,
		&f.InterestTerms,
		&f.CreatedAt,
		&f.UpdatedAt,
		&f.Version,
	)
	if err != nil {
		return nil, err
	}

	commitment, err := decimal.NewFromString(commitmentStr)
	if err != nil {
		return nil, fmt.Errorf("failed to parse commitment: %w", err)
	}
	f.Commitment = domain.NewMoney(commitment)

	return &f, nil
}
