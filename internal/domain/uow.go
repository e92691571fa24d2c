package domain

import "context"

// Repositories bundles the stores that participate in one transactional
// unit of work.
type Repositories struct {
	Facilities  FacilityRepository
	SharePies   SharePieRepository
	Investments InvestmentRepository
}

// UnitOfWork runs a function against transaction-bound repositories.
// If fn returns an error the whole unit is rolled back, so a failed
// investment fan-out also undoes the facility and share-pie writes that
// preceded it.
type UnitOfWork interface {
	WithinTx(ctx context.Context, fn func(r Repositories) error) error
}
