package facility

import (
	"context"
	"time"

	"github.com/google/uuid"
	"github.com/syndilend/syndilend-backend/internal/domain"
	"github.com/syndilend/syndilend-backend/internal/usecase/investment"
)

// SharePieInput is one (investor, share) pair of a proposed allocation
type SharePieInput struct {
	InvestorID uuid.UUID
	Share      domain.Percentage
}

// CreateFacilityInput represents the input for creating a facility
type CreateFacilityInput struct {
	SyndicateID   uuid.UUID
	Commitment    domain.Money
	Currency      string
	StartDate     time.Time
	EndDate       time.Time
	InterestTerms string
	SharePies     []SharePieInput
}

// UpdateFacilityInput fully replaces a facility's definition. Version is the
// counter the client read; it is the authority for optimistic concurrency.
type UpdateFacilityInput struct {
	CreateFacilityInput
	Version *int64
}

// Service orchestrates the facility lifecycle: validate, persist the facility
// and its share pies, then derive and persist the investment ledger, all
// inside one unit of work.
type Service struct {
	Validator      *Validator
	FacilityRepo   domain.FacilityRepository
	SyndicateRepo  domain.SyndicateRepository
	InvestmentRepo domain.InvestmentRepository
	UoW            domain.UnitOfWork
}

// NewService creates a new facility Service instance
func NewService(
	validator *Validator,
	facilityRepo domain.FacilityRepository,
	syndicateRepo domain.SyndicateRepository,
	investmentRepo domain.InvestmentRepository,
	uow domain.UnitOfWork,
) *Service {
	return &Service{
		Validator:      validator,
		FacilityRepo:   facilityRepo,
		SyndicateRepo:  syndicateRepo,
		InvestmentRepo: investmentRepo,
		UoW:            uow,
	}
}

// Create validates the proposed definition, persists the facility with its
// share pies and generates the initial investment ledger.
// Returns the fully materialized facility with version 1.
func (s *Service) Create(ctx context.Context, in CreateFacilityInput) (*domain.Facility, error) {
	if err := s.Validator.ValidateCreate(ctx, in); err != nil {
		return nil, err
	}

	syndicate, err := s.SyndicateRepo.GetByID(ctx, in.SyndicateID)
	if err != nil {
		return nil, err
	}

	now := time.Now()
	f := &domain.Facility{
		ID:            uuid.New(),
		SyndicateID:   in.SyndicateID,
		Commitment:    in.Commitment,
		Currency:      in.Currency,
		StartDate:     in.StartDate,
		EndDate:       in.EndDate,
		InterestTerms: in.InterestTerms,
		CreatedAt:     now,
		UpdatedAt:     now,
		Version:       1,
	}
	f.SharePies = buildSharePies(f.ID, in.SharePies)

	err = s.UoW.WithinTx(ctx, func(r domain.Repositories) error {
		if err := r.Facilities.Create(ctx, f); err != nil {
			return err
		}
		if err := r.SharePies.ReplaceAll(ctx, f.ID, f.SharePies); err != nil {
			return err
		}
		investments := investment.Generate(f.ID, f.Commitment, f.SharePies, syndicate.BorrowerID)
		return r.Investments.ReplaceAll(ctx, f.ID, investments)
	})
	if err != nil {
		return nil, err
	}

	return f, nil
}

// Update fully replaces a facility's definition under optimistic concurrency.
// The share pies are deleted and recreated as a whole and the investment
// ledger is regenerated from the new commitment. A stale version yields
// ErrVersionConflict and leaves the stored facility unchanged.
func (s *Service) Update(ctx context.Context, id uuid.UUID, in UpdateFacilityInput) (*domain.Facility, error) {
	existing, err := s.FacilityRepo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}

	if err := s.Validator.ValidateUpdate(ctx, in, id); err != nil {
		return nil, err
	}

	syndicate, err := s.SyndicateRepo.GetByID(ctx, in.SyndicateID)
	if err != nil {
		return nil, err
	}

	f := &domain.Facility{
		ID:            id,
		SyndicateID:   in.SyndicateID,
		Commitment:    in.Commitment,
		Currency:      in.Currency,
		StartDate:     in.StartDate,
		EndDate:       in.EndDate,
		InterestTerms: in.InterestTerms,
		CreatedAt:     existing.CreatedAt,
		UpdatedAt:     time.Now(),
		Version:       *in.Version + 1,
	}
	f.SharePies = buildSharePies(f.ID, in.SharePies)

	err = s.UoW.WithinTx(ctx, func(r domain.Repositories) error {
		if err := r.Facilities.Update(ctx, f, *in.Version); err != nil {
			return err
		}
		if err := r.SharePies.ReplaceAll(ctx, f.ID, f.SharePies); err != nil {
			return err
		}
		investments := investment.Generate(f.ID, f.Commitment, f.SharePies, syndicate.BorrowerID)
		return r.Investments.ReplaceAll(ctx, f.ID, investments)
	})
	if err != nil {
		return nil, err
	}

	return f, nil
}

// Delete removes a facility and its share pies. Investment ledger rows are
// history and stay in place.
func (s *Service) Delete(ctx context.Context, id uuid.UUID) error {
	if _, err := s.FacilityRepo.GetByID(ctx, id); err != nil {
		return err
	}

	return s.UoW.WithinTx(ctx, func(r domain.Repositories) error {
		if err := r.SharePies.DeleteByFacility(ctx, id); err != nil {
			return err
		}
		return r.Facilities.Delete(ctx, id)
	})
}

// Get retrieves a facility with its share pies
func (s *Service) Get(ctx context.Context, id uuid.UUID) (*domain.Facility, error) {
	return s.FacilityRepo.GetByID(ctx, id)
}

// List retrieves all facilities
func (s *Service) List(ctx context.Context) ([]*domain.Facility, error) {
	return s.FacilityRepo.List(ctx)
}

// Investments retrieves the derived ledger rows of one facility
func (s *Service) Investments(ctx context.Context, id uuid.UUID) ([]domain.FacilityInvestment, error) {
	if _, err := s.FacilityRepo.GetByID(ctx, id); err != nil {
		return nil, err
	}
	return s.InvestmentRepo.ListByFacility(ctx, id)
}

func buildSharePies(facilityID uuid.UUID, in []SharePieInput) []domain.SharePie {
	pies := make([]domain.SharePie, 0, len(in))
	for _, p := range in {
		pies = append(pies, domain.SharePie{
			ID:         uuid.New(),
			FacilityID: facilityID,
			InvestorID: p.InvestorID,
			Share:      p.Share,
		})
	}
	return pies
}
