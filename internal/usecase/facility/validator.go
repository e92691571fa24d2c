package facility

import (
	"context"
	"errors"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"github.com/syndilend/syndilend-backend/internal/domain"
)

// shareSumTolerance is the absolute band around 1.0 inside which a share-pie
// sum is accepted. Shares are stored at 4-decimal precision, so rounding noise
// from independently entered percentages must not false-positive a rejection.
var shareSumTolerance = decimal.RequireFromString("0.0001")

// Validator decides accept/reject for a proposed facility definition before
// any mutation occurs. It is a pure decision function over read-only lookups;
// it performs no writes.
type Validator struct {
	SyndicateRepo domain.SyndicateRepository
	InvestorRepo  domain.InvestorRepository
	BorrowerRepo  domain.BorrowerRepository
	FacilityRepo  domain.FacilityRepository
}

// NewValidator creates a new Validator instance
func NewValidator(
	syndicateRepo domain.SyndicateRepository,
	investorRepo domain.InvestorRepository,
	borrowerRepo domain.BorrowerRepository,
	facilityRepo domain.FacilityRepository,
) *Validator {
	return &Validator{
		SyndicateRepo: syndicateRepo,
		InvestorRepo:  investorRepo,
		BorrowerRepo:  borrowerRepo,
		FacilityRepo:  facilityRepo,
	}
}

// ValidateCreate checks a create request against every allocation rule.
// The first failing check short-circuits the whole operation.
func (v *Validator) ValidateCreate(ctx context.Context, in CreateFacilityInput) error {
	return v.validate(ctx, in, nil)
}

// ValidateUpdate checks an update request. The facility being replaced is
// excluded from the cross-facility exposure sum, and a version token must be
// present; the actual conflict detection happens in the persistence layer.
func (v *Validator) ValidateUpdate(ctx context.Context, in UpdateFacilityInput, facilityID uuid.UUID) error {
	if err := v.validate(ctx, in.CreateFacilityInput, &facilityID); err != nil {
		return err
	}
	if in.Version == nil {
		return domain.NewRuleViolation("version is required for update")
	}
	return nil
}

func (v *Validator) validate(ctx context.Context, in CreateFacilityInput, excludeFacilityID *uuid.UUID) error {
	// Presence
	if in.SyndicateID == uuid.Nil {
		return domain.NewRuleViolation("syndicateId is required")
	}
	if in.Currency == "" {
		return domain.NewRuleViolation("currency is required")
	}
	if in.StartDate.IsZero() {
		return domain.NewRuleViolation("startDate is required")
	}
	if in.EndDate.IsZero() {
		return domain.NewRuleViolation("endDate is required")
	}
	// An empty share list is rejected here, before the sum-to-one check is
	// attempted, so the tolerance check can never pass vacuously.
	if len(in.SharePies) == 0 {
		return domain.NewRuleViolation("at least one share pie is required")
	}

	// Commitment must be strictly positive. Zero is a distinguished Money
	// state and is rejected by equality, not just a non-positive check.
	if in.Commitment.IsZero() || !in.Commitment.IsPositiveOrZero() {
		return domain.NewRuleViolation("commitment is required and must be greater than zero")
	}

	// Date range
	if !in.StartDate.Before(in.EndDate) {
		return domain.NewRuleViolation("startDate must be before endDate")
	}

	// Share-pie structural checks: no duplicate investors, every referenced
	// investor must exist and be active.
	seen := make(map[uuid.UUID]bool, len(in.SharePies))
	for _, pie := range in.SharePies {
		if pie.InvestorID == uuid.Nil {
			return domain.NewRuleViolation("investorId is required on every share pie")
		}
		if seen[pie.InvestorID] {
			return domain.NewRuleViolation("duplicate investor %s in share pies", pie.InvestorID)
		}
		seen[pie.InvestorID] = true

		inv, err := v.InvestorRepo.GetByID(ctx, pie.InvestorID)
		if err != nil {
			if errors.Is(err, domain.ErrNotFound) {
				return domain.NewRuleViolation("investor %s does not exist", pie.InvestorID)
			}
			return err
		}
		if !inv.IsActive {
			return domain.NewRuleViolation("investor %s is inactive and cannot receive new allocations", pie.InvestorID)
		}
	}

	// Sum-to-one: |sum - 1.0| <= 0.0001, absolute difference.
	total := decimal.Zero
	for _, pie := range in.SharePies {
		total = total.Add(pie.Share.Value())
	}
	if total.Sub(decimal.NewFromInt(1)).Abs().GreaterThan(shareSumTolerance) {
		return domain.NewRuleViolation("share pies must sum to 100%% (1.0), got %s", total.String())
	}

	// Referential integrity: the syndicate and its borrower must resolve.
	syndicate, err := v.SyndicateRepo.GetByID(ctx, in.SyndicateID)
	if err != nil {
		if errors.Is(err, domain.ErrNotFound) {
			return domain.NewRuleViolation("syndicate %s does not exist", in.SyndicateID)
		}
		return err
	}
	borrower, err := v.BorrowerRepo.GetByID(ctx, syndicate.BorrowerID)
	if err != nil {
		if errors.Is(err, domain.ErrNotFound) {
			return domain.NewRuleViolation("borrower %s does not exist", syndicate.BorrowerID)
		}
		return err
	}

	// Membership: every allocated investor must belong to the syndicate.
	for _, pie := range in.SharePies {
		if !syndicate.HasMember(pie.InvestorID) {
			return domain.NewRuleViolation("investor %s is not a member of syndicate %s", pie.InvestorID, syndicate.ID)
		}
	}

	// Credit exposure: the borrower's other facilities plus the proposed
	// commitment must stay within the credit limit. On update the facility
	// being replaced is excluded so its prior commitment does not count twice.
	siblings, err := v.FacilityRepo.ListByBorrowerExcluding(ctx, borrower.ID, excludeFacilityID)
	if err != nil {
		return err
	}
	exposure := in.Commitment
	for _, f := range siblings {
		exposure = exposure.Add(f.Commitment)
	}
	if exposure.GreaterThan(borrower.CreditLimit) {
		return domain.NewRuleViolation("total commitment %s exceeds borrower credit limit %s",
			exposure, borrower.CreditLimit)
	}

	return nil
}
