package party

import (
	"context"
	"time"

	"github.com/google/uuid"
	"github.com/syndilend/syndilend-backend/internal/domain"
)

// Service handles party management: companies, borrowers and investors.
// No cross-aggregate rules live here; checks are field presence only.
type Service struct {
	CompanyRepo  domain.CompanyRepository
	BorrowerRepo domain.BorrowerRepository
	InvestorRepo domain.InvestorRepository
}

// NewService creates a new party Service instance
func NewService(
	companyRepo domain.CompanyRepository,
	borrowerRepo domain.BorrowerRepository,
	investorRepo domain.InvestorRepository,
) *Service {
	return &Service{
		CompanyRepo:  companyRepo,
		BorrowerRepo: borrowerRepo,
		InvestorRepo: investorRepo,
	}
}

// CreateCompanyInput represents the input for registering a company
type CreateCompanyInput struct {
	CompanyName        string
	RegistrationNumber string
	Industry           string
	Address            string
	Country            string
}

// CreateCompany registers a new company
func (s *Service) CreateCompany(ctx context.Context, in CreateCompanyInput) (*domain.Company, error) {
	if in.CompanyName == "" {
		return nil, domain.NewRuleViolation("companyName is required")
	}

	now := time.Now()
	c := &domain.Company{
		ID:                 uuid.New(),
		CompanyName:        in.CompanyName,
		RegistrationNumber: in.RegistrationNumber,
		Industry:           in.Industry,
		Address:            in.Address,
		Country:            in.Country,
		CreatedAt:          now,
		UpdatedAt:          now,
	}
	if err := s.CompanyRepo.Create(ctx, c); err != nil {
		return nil, err
	}
	return c, nil
}

// GetCompany retrieves a company by id
func (s *Service) GetCompany(ctx context.Context, id uuid.UUID) (*domain.Company, error) {
	return s.CompanyRepo.GetByID(ctx, id)
}

// ListCompanies retrieves all companies
func (s *Service) ListCompanies(ctx context.Context) ([]*domain.Company, error) {
	return s.CompanyRepo.List(ctx)
}

// DeleteCompany removes a company
func (s *Service) DeleteCompany(ctx context.Context, id uuid.UUID) error {
	return s.CompanyRepo.Delete(ctx, id)
}

// CreateBorrowerInput represents the input for registering a borrower
type CreateBorrowerInput struct {
	Name         string
	Email        string
	PhoneNumber  string
	CompanyID    *uuid.UUID
	CreditLimit  domain.Money
	CreditRating domain.CreditRating
}

// CreateBorrower registers a new borrower
func (s *Service) CreateBorrower(ctx context.Context, in CreateBorrowerInput) (*domain.Borrower, error) {
	if in.Name == "" {
		return nil, domain.NewRuleViolation("borrower name is required")
	}
	if !in.CreditLimit.IsPositiveOrZero() {
		return nil, domain.NewRuleViolation("creditLimit must not be negative")
	}

	now := time.Now()
	b := &domain.Borrower{
		ID:           uuid.New(),
		Name:         in.Name,
		Email:        in.Email,
		PhoneNumber:  in.PhoneNumber,
		CompanyID:    in.CompanyID,
		CreditLimit:  in.CreditLimit,
		CreditRating: in.CreditRating,
		CreatedAt:    now,
		UpdatedAt:    now,
		Version:      1,
	}
	if err := s.BorrowerRepo.Create(ctx, b); err != nil {
		return nil, err
	}
	return b, nil
}

// GetBorrower retrieves a borrower by id
func (s *Service) GetBorrower(ctx context.Context, id uuid.UUID) (*domain.Borrower, error) {
	return s.BorrowerRepo.GetByID(ctx, id)
}

// ListBorrowers retrieves all borrowers
func (s *Service) ListBorrowers(ctx context.Context) ([]*domain.Borrower, error) {
	return s.BorrowerRepo.List(ctx)
}

// UpdateBorrower replaces a borrower's fields
func (s *Service) UpdateBorrower(ctx context.Context, id uuid.UUID, in CreateBorrowerInput) (*domain.Borrower, error) {
	b, err := s.BorrowerRepo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if in.Name == "" {
		return nil, domain.NewRuleViolation("borrower name is required")
	}
	if !in.CreditLimit.IsPositiveOrZero() {
		return nil, domain.NewRuleViolation("creditLimit must not be negative")
	}

	b.Name = in.Name
	b.Email = in.Email
	b.PhoneNumber = in.PhoneNumber
	b.CompanyID = in.CompanyID
	b.CreditLimit = in.CreditLimit
	b.CreditRating = in.CreditRating
	b.UpdatedAt = time.Now()
	if err := s.BorrowerRepo.Update(ctx, b); err != nil {
		return nil, err
	}
	return b, nil
}

// DeleteBorrower removes a borrower
func (s *Service) DeleteBorrower(ctx context.Context, id uuid.UUID) error {
	return s.BorrowerRepo.Delete(ctx, id)
}

// CreateInvestorInput represents the input for registering an investor
type CreateInvestorInput struct {
	Name               string
	Email              string
	PhoneNumber        string
	CompanyID          *uuid.UUID
	InvestmentCapacity domain.Money
	InvestorType       domain.InvestorType
}

// CreateInvestor registers a new, active investor
func (s *Service) CreateInvestor(ctx context.Context, in CreateInvestorInput) (*domain.Investor, error) {
	if in.Name == "" {
		return nil, domain.NewRuleViolation("investor name is required")
	}
	if !in.InvestmentCapacity.IsPositiveOrZero() {
		return nil, domain.NewRuleViolation("investmentCapacity must not be negative")
	}

	now := time.Now()
	inv := &domain.Investor{
		ID:                 uuid.New(),
		Name:               in.Name,
		Email:              in.Email,
		PhoneNumber:        in.PhoneNumber,
		CompanyID:          in.CompanyID,
		InvestmentCapacity: in.InvestmentCapacity,
		InvestorType:       in.InvestorType,
		IsActive:           true,
		CreatedAt:          now,
		UpdatedAt:          now,
		Version:            1,
	}
	if err := s.InvestorRepo.Create(ctx, inv); err != nil {
		return nil, err
	}
	return inv, nil
}

// GetInvestor retrieves an investor by id
func (s *Service) GetInvestor(ctx context.Context, id uuid.UUID) (*domain.Investor, error) {
	return s.InvestorRepo.GetByID(ctx, id)
}

// ListInvestors retrieves all investors
func (s *Service) ListInvestors(ctx context.Context) ([]*domain.Investor, error) {
	return s.InvestorRepo.List(ctx)
}

// SetInvestorActive flips an investor's active flag. Inactive investors keep
// their existing allocations but cannot receive new ones.
func (s *Service) SetInvestorActive(ctx context.Context, id uuid.UUID, active bool) (*domain.Investor, error) {
	inv, err := s.InvestorRepo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	inv.IsActive = active
	inv.UpdatedAt = time.Now()
	if err := s.InvestorRepo.Update(ctx, inv); err != nil {
		return nil, err
	}
	return inv, nil
}

// DeleteInvestor removes an investor
func (s *Service) DeleteInvestor(ctx context.Context, id uuid.UUID) error {
	return s.InvestorRepo.Delete(ctx, id)
}
