package postgres

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/google/uuid"
	"github.com/syndilend/syndilend-backend/internal/domain"
)

// syndicateRepository implements domain.SyndicateRepository
type syndicateRepository struct {
	db executor
}

// NewSyndicateRepository creates a new syndicate repository
func NewSyndicateRepository(db *DB) domain.SyndicateRepository {
	return &syndicateRepository{db: db}
}

// GetByID retrieves a syndicate with its member list
func (r *syndicateRepository) GetByID(ctx context.Context, id uuid.UUID) (*domain.Syndicate, error) {
	query := `
		SELECT id, name, lead_bank_id, borrower_id, created_at, updated_at, version
		FROM syndicates
		WHERE id = $1
	`

	var s domain.Syndicate
	err := r.db.QueryRowContext(ctx, query, id).Scan(
		&s.ID,
		&s.Name,
		&s.LeadBankID,
		&s.BorrowerID,
		&s.CreatedAt,
		&s.UpdatedAt,
		&s.Version,
	)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, domain.NotFound("syndicate", id)
		}
		return nil, fmt.Errorf("failed to get syndicate by ID: %w", err)
	}

	members, err := r.listMembers(ctx, s.ID)
	if err != nil {
		return nil, err
	}
	s.MemberInvestorIDs = members

	return &s, nil
}

// List retrieves all syndicates with their member lists
func (r *syndicateRepository) List(ctx context.Context) ([]*domain.Syndicate, error) {
	query := `
		SELECT id, name, lead_bank_id, borrower_id, created_at, updated_at, version
		FROM syndicates
		ORDER BY created_at
	`

	rows, err := r.db.QueryContext(ctx, query)
	if err != nil {
		return nil, fmt.Errorf("failed to list syndicates: %w", err)
	}
	defer rows.Close()

	var syndicates []*domain.Syndicate
	for rows.Next() {
		var s domain.Syndicate
		if err := rows.Scan(&s.ID, &s.Name, &s.LeadBankID, &s.BorrowerID, &s.CreatedAt, &s.UpdatedAt, &s.Version); err != nil {
			return nil, fmt.Errorf("failed to scan syndicate: %w", err)
		}
		syndicates = append(syndicates, &s)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("failed to iterate syndicates: %w", err)
	}

	for _, s := range syndicates {
		members, err := r.listMembers(ctx, s.ID)
		if err != nil {
			return nil, err
		}
		s.MemberInvestorIDs = members
	}

	return syndicates, nil
}

// Create inserts a syndicate and its member rows
func (r *syndicateRepository) Create(ctx context.Context, s *domain.Syndicate) error {
	query := `
		INSERT INTO syndicates (id, name, lead_bank_id, borrower_id, created_at, updated_at, version)
		VALUES ($1, $2, $3, $4, $5, $6, $7)
	`

	_, err := r.db.ExecContext(ctx, query, s.ID, s.Name, s.LeadBankID, s.BorrowerID, s.CreatedAt, s.UpdatedAt, s.Version)
	if err != nil {
		return fmt.Errorf("failed to create syndicate: %w", err)
	}
	return r.replaceMembers(ctx, s.ID, s.MemberInvestorIDs)
}

// Update replaces the syndicate's fields and member rows
func (r *syndicateRepository) Update(ctx context.Context, s *domain.Syndicate) error {
	query := `
		UPDATE syndicates
		SET name = $1, lead_bank_id = $2, borrower_id = $3, updated_at = $4, version = version + 1
		WHERE id = $5
	`

	res, err := r.db.ExecContext(ctx, query, s.Name, s.LeadBankID, s.BorrowerID, s.UpdatedAt, s.ID)
	if err != nil {
		return fmt.Errorf("failed to update syndicate: %w", err)
	}
	affected, err := res.RowsAffected()
	if err != nil {
		return fmt.Errorf("failed to read affected rows: %w", err)
	}
	if affected == 0 {
		return domain.NotFound("syndicate", s.ID)
	}
	return r.replaceMembers(ctx, s.ID, s.MemberInvestorIDs)
}

// Delete removes the syndicate and its member rows
func (r *syndicateRepository) Delete(ctx context.Context, id uuid.UUID) error {
	if _, err := r.db.ExecContext(ctx, `DELETE FROM syndicate_members WHERE syndicate_id = $1`, id); err != nil {
		return fmt.Errorf("failed to delete syndicate members: %w", err)
	}
	res, err := r.db.ExecContext(ctx, `DELETE FROM syndicates WHERE id = $1`, id)
	if err != nil {
		return fmt.Errorf("failed to delete syndicate: %w", err)
	}
	affected, err := res.RowsAffected()
	if err != nil {
		return fmt.Errorf("failed to read affected rows: %w", err)
	}
	if affected == 0 {
		return domain.NotFound("syndicate", id)
	}
	return nil
}

func (r *syndicateRepository) listMembers(ctx context.Context, syndicateID uuid.UUID) ([]uuid.UUID, error) {
	rows, err := r.db.QueryContext(ctx, `SELECT investor_id FROM syndicate_members WHERE syndicate_id = $1`, syndicateID)
	if err != nil {
		return nil, fmt.Errorf("failed to list syndicate members: %w", err)
	}
	defer rows.Close()

	var members []uuid.UUID
	for rows.Next() {
		var id uuid.UUID
		if err := rows.Scan(&id); err != nil {
			return nil, fmt.Errorf("failed to scan syndicate member: %w", err)
		}
		members = append(members, id)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("failed to iterate syndicate members: %w", err)
	}
	return members, nil
}

func (r *syndicateRepository) replaceMembers(ctx context.Context, syndicateID uuid.UUID, members []uuid.UUID) error {
	if _, err := r.db.ExecContext(ctx, `DELETE FROM syndicate_members WHERE syndicate_id = $1`, syndicateID); err != nil {
		return fmt.Errorf("failed to delete syndicate members: %w", err)
	}
	for _, investorID := range members {
		if _, err := r.db.ExecContext(ctx,
			`INSERT INTO syndicate_members (syndicate_id, investor_id) VALUES ($1, $2)`,
			syndicateID, investorID); err != nil {
			return fmt.Errorf("failed to insert syndicate member: %w", err)
		}
	}
	return nil
}
