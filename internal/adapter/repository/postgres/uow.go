package postgres

import (
	"context"
	"database/sql"
	"fmt"

	"github.com/syndilend/syndilend-backend/internal/domain"
)

// unitOfWork runs a function against transaction-bound repositories.
// Pattern: begin, bind the facility/share-pie/investment repos to the tx,
// run fn, commit; any error rolls the whole unit back.
type unitOfWork struct {
	db *DB
}

// NewUnitOfWork creates a new postgres-backed unit of work
func NewUnitOfWork(db *DB) domain.UnitOfWork {
	return &unitOfWork{db: db}
}

// WithinTx executes fn inside a single database transaction
func (u *unitOfWork) WithinTx(ctx context.Context, fn func(r domain.Repositories) error) error {
	tx, err := u.db.BeginTx(ctx, &sql.TxOptions{})
	if err != nil {
		return fmt.Errorf("failed to begin transaction: %w", err)
	}

	repos := domain.Repositories{
		Facilities:  &facilityRepository{db: tx},
		SharePies:   &sharePieRepository{db: tx},
		Investments: &investmentRepository{db: tx},
	}

	if err := fn(repos); err != nil {
		if rbErr := tx.Rollback(); rbErr != nil {
			return fmt.Errorf("rollback failed: %v (original error: %w)", rbErr, err)
		}
		return err
	}

	if err := tx.Commit(); err != nil {
		return fmt.Errorf("failed to commit transaction: %w", err)
	}
	return nil
}
