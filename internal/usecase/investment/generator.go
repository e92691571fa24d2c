package investment

import (
	"time"

	"github.com/google/uuid"
	"github.com/syndilend/syndilend-backend/internal/domain"
)

// Generate fans a facility's commitment out into one ledger row per share pie.
// Logic:
//  1. For each pie, amount = share applied to the commitment
//  2. Every row carries the fixed FACILITY_INVESTMENT tag and the generation time
//
// Rounding is delegated entirely to Percentage.ApplyTo so the monetary rounding
// policy has a single source of truth. Duplicate investor ids are rejected by
// the validator before this runs, so no aggregation or merging happens here.
func Generate(facilityID uuid.UUID, commitment domain.Money, pies []domain.SharePie, borrowerID uuid.UUID) []domain.FacilityInvestment {
	now := time.Now()

	investments := make([]domain.FacilityInvestment, 0, len(pies))
	for _, pie := range pies {
		investments = append(investments, domain.FacilityInvestment{
			ID:              uuid.New(),
			FacilityID:      facilityID,
			InvestorID:      pie.InvestorID,
			BorrowerID:      borrowerID,
			Amount:          pie.Share.ApplyTo(commitment),
			TransactionType: domain.TransactionTypeFacilityInvestment,
			TransactionDate: now,
		})
	}

	return investments
}
