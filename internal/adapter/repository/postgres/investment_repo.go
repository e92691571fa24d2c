package postgres

import (
	"context"
	"fmt"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"github.com/syndilend/syndilend-backend/internal/domain"
)

// investmentRepository implements domain.InvestmentRepository
type investmentRepository struct {
	db executor
}

// NewInvestmentRepository creates a new investment ledger repository
func NewInvestmentRepository(db *DB) domain.InvestmentRepository {
	return &investmentRepository{db: db}
}

// ListByFacility retrieves the investment rows of one facility
func (r *investmentRepository) ListByFacility(ctx context.Context, facilityID uuid.UUID) ([]domain.FacilityInvestment, error) {
	query := `
		SELECT id, facility_id, investor_id, borrower_id, amount, transaction_type, transaction_date
		FROM facility_investments
		WHERE facility_id = $1
	`

	rows, err := r.db.QueryContext(ctx, query, facilityID)
	if err != nil {
		return nil, fmt.Errorf("failed to list facility investments: %w", err)
	}
	defer rows.Close()

	var investments []domain.FacilityInvestment
	for rows.Next() {
		var inv domain.FacilityInvestment
		var amountStr string
		if err := rows.Scan(&inv.ID, &inv.FacilityID, &inv.InvestorID, &inv.BorrowerID, &amountStr, &inv.TransactionType, &inv.TransactionDate); err != nil {
			return nil, fmt.Errorf("failed to scan facility investment: %w", err)
		}
		amount, err := decimal.NewFromString(amountStr)
		if err != nil {
			return nil, fmt.Errorf("failed to parse amount: %w", err)
		}
		inv.Amount = domain.NewMoney(amount)
		investments = append(investments, inv)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("failed to iterate facility investments: %w", err)
	}

	return investments, nil
}

// ReplaceAll deletes the facility's existing investment rows and inserts the
// regenerated set. The ledger is a pure function of commitment and shares, so
// it is always rebuilt in full, never diffed.
func (r *investmentRepository) ReplaceAll(ctx context.Context, facilityID uuid.UUID, investments []domain.FacilityInvestment) error {
	_, err := r.db.ExecContext(ctx, `DELETE FROM facility_investments WHERE facility_id = $1`, facilityID)
	if err != nil {
		return fmt.Errorf("failed to delete facility investments: %w", err)
	}

	query := `
		INSERT INTO facility_investments (id, facility_id, investor_id, borrower_id, amount, transaction_type, transaction_date)
		VALUES ($1, $2, $3, $4, $5, $6, $7)
	`
	for _, inv := range investments {
		_, err := r.db.ExecContext(ctx, query,
			inv.ID,
			facilityID,
			inv.InvestorID,
			inv.BorrowerID,
			inv.Amount.String(),
			inv.TransactionType,
			inv.TransactionDate,
		)
		if err != nil {
			return fmt.Errorf("failed to insert facility investment: %w", err)
		}
	}
	return nil
}
