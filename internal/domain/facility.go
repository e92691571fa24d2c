package domain

import (
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// Facility represents a committed pool of syndicated capital from which
// loans may be drawn. Aggregate root: it exclusively owns its SharePie set,
// which is deleted and recreated as a whole on every update, never patched
// in place.
type Facility struct {
	ID            uuid.UUID
	SyndicateID   uuid.UUID
	Commitment    Money
	Currency      string
	StartDate     time.Time
	EndDate       time.Time
	InterestTerms string // Opaque; no schedule computation happens here
	SharePies     []SharePie
	CreatedAt     time.Time
	UpdatedAt     time.Time
	Version       int64 // Optimistic concurrency counter, starts at 1
}

// SharePie is one investor's percentage allocation of a Facility's commitment.
type SharePie struct {
	ID         uuid.UUID
	FacilityID uuid.UUID
	InvestorID uuid.UUID
	Share      Percentage
}

// TotalShare sums the share ratios of a pie set.
func TotalShare(pies []SharePie) Percentage {
	total := NewPercentage(decimal.Zero)
	for _, p := range pies {
		total = total.Add(p.Share)
	}
	return total
}
