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

// investorRepository implements domain.InvestorRepository
type investorRepository struct {
	db executor
}

// NewInvestorRepository creates a new investor repository
func NewInvestorRepository(db *DB) domain.InvestorRepository {
	return &investorRepository{db: db}
}

const investorColumns = `id, name, email, phone_number, company_id, investment_capacity, investor_type, is_active, created_at, updated_at, version`

// GetByID retrieves an investor by its ID
func (r *investorRepository) GetByID(ctx context.Context, id uuid.UUID) (*domain.Investor, error) {
	query := `SELECT ` + investorColumns + ` FROM investors WHERE id = $1`

	inv, err := scanInvestor(r.db.QueryRowContext(ctx, query, id))
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, domain.NotFound("investor", id)
		}
		return nil, fmt.Errorf("failed to get investor by ID: %w", err)
	}
	return inv, nil
}

// List retrieves all investors
func (r *investorRepository) List(ctx context.Context) ([]*domain.Investor, error) {
	query := `SELECT ` + investorColumns + ` FROM investors ORDER BY created_at`

	rows, err := r.db.QueryContext(ctx, query)
	if err != nil {
		return nil, fmt.Errorf("failed to list investors: %w", err)
	}
	defer rows.Close()

	var investors []*domain.Investor
	for rows.Next() {
		inv, err := scanInvestor(rows)
		if err != nil {
			return nil, fmt.Errorf("failed to scan investor: %w", err)
		}
		investors = append(investors, inv)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("failed to iterate investors: %w", err)
	}
	return investors, nil
}

// Create creates a new investor
func (r *investorRepository) Create(ctx context.Context, inv *domain.Investor) error {
	query := `
		INSERT INTO investors (id, name, email, phone_number, company_id, investment_capacity, investor_type, is_active, created_at, updated_at, version)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11)
	`

	_, err := r.db.ExecContext(ctx, query,
		inv.ID, inv.Name, inv.Email, inv.PhoneNumber, nullableUUID(inv.CompanyID),
		inv.InvestmentCapacity.String(), string(inv.InvestorType), inv.IsActive,
		inv.CreatedAt, inv.UpdatedAt, inv.Version,
	)
	if err != nil {
		return fmt.Errorf("failed to create investor: %w", err)
	}
	return nil
}

// Update replaces the investor's fields
func (r *investorRepository) Update(ctx context.Context, inv *domain.Investor) error {
	query := `
		UPDATE investors
		SET name = $1, email = $2, phone_number = $3, company_id = $4, investment_capacity = $5,
		    investor_type = $6, is_active = $7, updated_at = $8, version = version + 1
		WHERE id = $9
	`

	res, err := r.db.ExecContext(ctx, query,
		inv.Name, inv.Email, inv.PhoneNumber, nullableUUID(inv.CompanyID),
		inv.InvestmentCapacity.String(), string(inv.InvestorType), inv.IsActive,
		inv.UpdatedAt, inv.ID,
	)
	if err != nil {
		return fmt.Errorf("failed to update investor: %w", err)
	}
	return requireAffected(res, "investor", inv.ID)
}

// Delete removes the investor
func (r *investorRepository) Delete(ctx context.Context, id uuid.UUID) error {
	res, err := r.db.ExecContext(ctx, `DELETE FROM investors WHERE id = $1`, id)
	if err != nil {
		return fmt.Errorf("failed to delete investor: %w", err)
	}
	return requireAffected(res, "investor", id)
}

func scanInvestor(row rowScanner) (*domain.Investor, error) {
	var inv domain.Investor
	var companyID sql.NullString
	var capacityStr string
	var investorType string

	err := row.Scan(
		&inv.ID, &inv.Name, &inv.Email, &inv.PhoneNumber, &companyID,
		&capacityStr, &investorType, &inv.IsActive,
		&inv.CreatedAt, &inv.UpdatedAt, &inv.Version,
	)
	if err != nil {
		return nil, err
	}

	if companyID.Valid {
		parsed, err := uuid.Parse(companyID.String)
		if err != nil {
			return nil, fmt.Errorf("failed to parse company_id: %w", err)
		}
		inv.CompanyID = &parsed
	}

	capacity, err := decimal.NewFromString(capacityStr)
	if err != nil {
		return nil, fmt.Errorf("failed to parse investment_capacity: %w", err)
	}
	inv.InvestmentCapacity = domain.NewMoney(capacity)
	inv.InvestorType = domain.InvestorType(investorType)

	return &inv, nil
}

// borrowerRepository implements domain.BorrowerRepository
type borrowerRepository struct {
	db executor
}

// NewBorrowerRepository creates a new borrower repository
func NewBorrowerRepository(db *DB) domain.BorrowerRepository {
	return &borrowerRepository{db: db}
}

const borrowerColumns = `id, name, email, phone_number, company_id, credit_limit, credit_rating, created_at, updated_at, version`

// GetByID retrieves a borrower by its ID
func (r *borrowerRepository) GetByID(ctx context.Context, id uuid.UUID) (*domain.Borrower, error) {
	query := `SELECT ` + borrowerColumns + ` FROM borrowers WHERE id = $1`

	b, err := scanBorrower(r.db.QueryRowContext(ctx, query, id))
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, domain.NotFound("borrower", id)
		}
		return nil, fmt.Errorf("failed to get borrower by ID: %w", err)
	}
	return b, nil
}

// List retrieves all borrowers
func (r *borrowerRepository) List(ctx context.Context) ([]*domain.Borrower, error) {
	query := `SELECT ` + borrowerColumns + ` FROM borrowers ORDER BY created_at`

	rows, err := r.db.QueryContext(ctx, query)
	if err != nil {
		return nil, fmt.Errorf("failed to list borrowers: %w", err)
	}
	defer rows.Close()

	var borrowers []*domain.Borrower
	for rows.Next() {
		b, err := scanBorrower(rows)
		if err != nil {
			return nil, fmt.Errorf("failed to scan borrower: %w", err)
		}
		borrowers = append(borrowers, b)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("failed to iterate borrowers: %w", err)
	}
	return borrowers, nil
}

// Create creates a new borrower
func (r *borrowerRepository) Create(ctx context.Context, b *domain.Borrower) error {
	query := `
		INSERT INTO borrowers (id, name, email, phone_number, company_id, credit_limit, credit_rating, created_at, updated_at, version)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10)
	`

	_, err := r.db.ExecContext(ctx, query,
		b.ID, b.Name, b.Email, b.PhoneNumber, nullableUUID(b.CompanyID),
		b.CreditLimit.String(), string(b.CreditRating),
		b.CreatedAt, b.UpdatedAt, b.Version,
	)
	if err != nil {
		return fmt.Errorf("failed to create borrower: %w", err)
	}
	return nil
}

// Update replaces the borrower's fields
func (r *borrowerRepository) Update(ctx context.Context, b *domain.Borrower) error {
	query := `
		UPDATE borrowers
		SET name = $1, email = $2, phone_number = $3, company_id = $4, credit_limit = $5,
		    credit_rating = $6, updated_at = $7, version = version + 1
		WHERE id = $8
	`

	res, err := r.db.ExecContext(ctx, query,
		b.Name, b.Email, b.PhoneNumber, nullableUUID(b.CompanyID),
		b.CreditLimit.String(), string(b.CreditRating), b.UpdatedAt, b.ID,
	)
	if err != nil {
		return fmt.Errorf("failed to update borrower: %w", err)
	}
	return requireAffected(res, "borrower", b.ID)
}

// Delete removes the borrower
func (r *borrowerRepository) Delete(ctx context.Context, id uuid.UUID) error {
	res, err := r.db.ExecContext(ctx, `DELETE FROM borrowers WHERE id = $1`, id)
	if err != nil {
		return fmt.Errorf("failed to delete borrower: %w", err)
	}
	return requireAffected(res, "borrower", id)
}

func scanBorrower(row rowScanner) (*domain.Borrower, error) {
	var b domain.Borrower
	var companyID sql.NullString
	var limitStr string
	var rating string

	err := row.Scan(
		&b.ID, &b.Name, &b.Email, &b.PhoneNumber, &companyID,
		&limitStr, &rating, &b.CreatedAt, &b.UpdatedAt, &b.Version,
	)
	if err != nil {
		return nil, err
	}

	if companyID.Valid {
		parsed, err := uuid.Parse(companyID.String)
		if err != nil {
			return nil, fmt.Errorf("failed to parse company_id: %w", err)
		}
		b.CompanyID = &parsed
	}

	limit, err := decimal.NewFromString(limitStr)
	if err != nil {
		return nil, fmt.Errorf("failed to parse credit_limit: %w", err)
	}
	b.CreditLimit = domain.NewMoney(limit)
	b.CreditRating = domain.CreditRating(rating)

	return &b, nil
}

// companyRepository implements domain.CompanyRepository
type companyRepository struct {
	db executor
}

// NewCompanyRepository creates a new company repository
func NewCompanyRepository(db *DB) domain.CompanyRepository {
	return &companyRepository{db: db}
}

const companyColumns = `id, company_name, registration_number, industry, address, country, created_at, updated_at`

// GetByID retrieves a company by its ID
func (r *companyRepository) GetByID(ctx context.Context, id uuid.UUID) (*domain.Company, error) {
	query := `SELECT ` + companyColumns + ` FROM companies WHERE id = $1`

	var c domain.Company
	err := r.db.QueryRowContext(ctx, query, id).Scan(
		&c.ID, &c.CompanyName, &c.RegistrationNumber, &c.Industry,
		&c.Address, &c.Country, &c.CreatedAt, &c.UpdatedAt,
	)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, domain.NotFound("company", id)
		}
		return nil, fmt.Errorf("failed to get company by ID: %w", err)
	}
	return &c, nil
}

// List retrieves all companies
func (r *companyRepository) List(ctx context.Context) ([]*domain.Company, error) {
	query := `SELECT ` + companyColumns + ` FROM companies ORDER BY created_at`

	rows, err := r.db.QueryContext(ctx, query)
	if err != nil {
		return nil, fmt.Errorf("failed to list companies: %w", err)
	}
	defer rows.Close()

	var companies []*domain.Company
	for rows.Next() {
		var c domain.Company
		if err := rows.Scan(&c.ID, &c.CompanyName, &c.RegistrationNumber, &c.Industry,
			&c.Address, &c.Country, &c.CreatedAt, &c.UpdatedAt); err != nil {
			return nil, fmt.Errorf("failed to scan company: %w", err)
		}
		companies = append(companies, &c)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("failed to iterate companies: %w", err)
	}
	return companies, nil
}

// Create creates a new company
func (r *companyRepository) Create(ctx context.Context, c *domain.Company) error {
	query := `
		INSERT INTO companies (id, company_name, registration_number, industry, address, country, created_at, updated_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8)
	`

	_, err := r.db.ExecContext(ctx, query,
		c.ID, c.CompanyName, c.RegistrationNumber, c.Industry,
		c.Address, c.Country, c.CreatedAt, c.UpdatedAt,
	)
	if err != nil {
		return fmt.Errorf("failed to create company: %w", err)
	}
	return nil
}

// Update replaces the company's fields
func (r *companyRepository) Update(ctx context.Context, c *domain.Company) error {
	query := `
		UPDATE companies
		SET company_name = $1, registration_number = $2, industry = $3, address = $4, country = $5, updated_at = $6
		WHERE id = $7
	`

	res, err := r.db.ExecContext(ctx, query,
		c.CompanyName, c.RegistrationNumber, c.Industry, c.Address, c.Country, c.UpdatedAt, c.ID,
	)
	if err != nil {
		return fmt.Errorf("failed to update company: %w", err)
	}
	return requireAffected(res, "company", c.ID)
}

// Delete removes the company
func (r *companyRepository) Delete(ctx context.Context, id uuid.UUID) error {
	res, err := r.db.ExecContext(ctx, `DELETE FROM companies WHERE id = $1`, id)
	if err != nil {
		return fmt.Errorf("failed to delete company: %w", err)
	}
	return requireAffected(res, "company", id)
}

func nullableUUID(id *uuid.UUID) interface{} {
	if id == nil {
		return nil
	}
	return *id
}

func requireAffected(res sql.Result, resource string, id uuid.UUID) error {
	affected, err := res.RowsAffected()
	if err != nil {
		return fmt.Errorf("failed to read affected rows: %w", err)
	}
	if affected == 0 {
		return domain.NotFound(resource, id)
	}
	return nil
}
