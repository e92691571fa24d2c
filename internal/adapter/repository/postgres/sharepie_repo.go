package postgres

import (
	"context"
	"fmt"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"github.com/syndilend/syndilend-backend/internal/domain"
)

// sharePieRepository implements domain.SharePieRepository
type sharePieRepository struct {
	db executor
}

// NewSharePieRepository creates a new share pie repository
func NewSharePieRepository(db *DB) domain.SharePieRepository {
	return &sharePieRepository{db: db}
}

// ListByFacility retrieves the share pies of one facility
func (r *sharePieRepository) ListByFacility(ctx context.Context, facilityID uuid.UUID) ([]domain.SharePie, error) {
	query := `
		SELECT id, facility_id, investor_id, share
		FROM share_pies
		WHERE facility_id = $1
	`

	rows, err := r.db.QueryContext(ctx, query, facilityID)
	if err != nil {
		return nil, fmt.Errorf("failed to list share pies: %w", err)
	}
	defer rows.Close()

	var pies []domain.SharePie
	for rows.Next() {
		var pie domain.SharePie
		var shareStr string
		if err := rows.Scan(&pie.ID, &pie.FacilityID, &pie.InvestorID, &shareStr); err != nil {
			return nil, fmt.Errorf("failed to scan share pie: %w", err)
		}
		share, err := decimal.NewFromString(shareStr)
		if err != nil {
			return nil, fmt.Errorf("failed to parse share: %w", err)
		}
		pie.Share = domain.NewPercentage(share)
		pies = append(pies, pie)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("failed to iterate share pies: %w", err)
	}

	return pies, nil
}

// ReplaceAll deletes the facility's existing pies and inserts the new set.
// The pie set is never diffed; whole-set replacement keeps the facility's
// ownership of its children trivially auditable.
func (r *sharePieRepository) ReplaceAll(ctx context.Context, facilityID uuid.UUID, pies []domain.SharePie) error {
	if err := r.DeleteByFacility(ctx, facilityID); err != nil {
		return err
	}

	query := `
		INSERT INTO share_pies (id, facility_id, investor_id, share)
		VALUES ($1, $2, $3, $4)
	`
	for _, pie := range pies {
		_, err := r.db.ExecContext(ctx, query,
			pie.ID,
			facilityID,
			pie.InvestorID,
			pie.Share.String(),
		)
		if err != nil {
			return fmt.Errorf("failed to insert share pie: %w", err)
		}
	}
	return nil
}

// DeleteByFacility removes all pies of one facility
func (r *sharePieRepository) DeleteByFacility(ctx context.Context, facilityID uuid.UUID) error {
	_, err := r.db.ExecContext(ctx, `DELETE FROM share_pies WHERE facility_id = $1`, facilityID)
	if err != nil {
		return fmt.Errorf("failed to delete share pies: %w", err)
	}
	return nil
}
