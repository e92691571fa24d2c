package domain

import (
	"time"

	"github.com/google/uuid"
)

// TransactionTypeFacilityInvestment tags ledger rows produced by the
// investment fan-out. Fixed for every generated row.
const TransactionTypeFacilityInvestment = "FACILITY_INVESTMENT"

// FacilityInvestment is a derived ledger row recording one investor's dollar
// exposure to one facility. Entirely derived state: never hand-edited, always
// regenerated in full whenever the parent facility's commitment or share pies
// change.
type FacilityInvestment struct {
	ID              uuid.UUID
	FacilityID      uuid.UUID
	InvestorID      uuid.UUID
	BorrowerID      uuid.UUID
	Amount          Money // commitment x share, rounded to the money scale
	TransactionType string
	TransactionDate time.Time
}
