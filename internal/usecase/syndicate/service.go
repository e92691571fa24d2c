package syndicate

import (
	"context"
	"errors"
	"time"

	"github.com/google/uuid"
	"github.com/syndilend/syndilend-backend/internal/domain"
)

// CreateSyndicateInput represents the input for forming a syndicate
type CreateSyndicateInput struct {
	Name              string
	LeadBankID        uuid.UUID
	BorrowerID        uuid.UUID
	MemberInvestorIDs []uuid.UUID
}

// Service handles syndicate formation and management
type Service struct {
	SyndicateRepo domain.SyndicateRepository
	BorrowerRepo  domain.BorrowerRepository
	InvestorRepo  domain.InvestorRepository
}

// NewService creates a new syndicate Service instance
func NewService(
	syndicateRepo domain.SyndicateRepository,
	borrowerRepo domain.BorrowerRepository,
	investorRepo domain.InvestorRepository,
) *Service {
	return &Service{
		SyndicateRepo: syndicateRepo,
		BorrowerRepo:  borrowerRepo,
		InvestorRepo:  investorRepo,
	}
}

// Create forms a new syndicate. The borrower and every member investor must
// already exist.
func (s *Service) Create(ctx context.Context, in CreateSyndicateInput) (*domain.Syndicate, error) {
	if err := s.validate(ctx, in); err != nil {
		return nil, err
	}

	now := time.Now()
	syn := &domain.Syndicate{
		ID:                uuid.New(),
		Name:              in.Name,
		LeadBankID:        in.LeadBankID,
		BorrowerID:        in.BorrowerID,
		MemberInvestorIDs: in.MemberInvestorIDs,
		CreatedAt:         now,
		UpdatedAt:         now,
		Version:           1,
	}
	if err := s.SyndicateRepo.Create(ctx, syn); err != nil {
		return nil, err
	}
	return syn, nil
}

// Get retrieves a syndicate by id
func (s *Service) Get(ctx context.Context, id uuid.UUID) (*domain.Syndicate, error) {
	return s.SyndicateRepo.GetByID(ctx, id)
}

// List retrieves all syndicates
func (s *Service) List(ctx context.Context) ([]*domain.Syndicate, error) {
	return s.SyndicateRepo.List(ctx)
}

// Update replaces a syndicate's fields
func (s *Service) Update(ctx context.Context, id uuid.UUID, in CreateSyndicateInput) (*domain.Syndicate, error) {
	syn, err := s.SyndicateRepo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if err := s.validate(ctx, in); err != nil {
		return nil, err
	}

	syn.Name = in.Name
	syn.LeadBankID = in.LeadBankID
	syn.BorrowerID = in.BorrowerID
	syn.MemberInvestorIDs = in.MemberInvestorIDs
	syn.UpdatedAt = time.Now()
	if err := s.SyndicateRepo.Update(ctx, syn); err != nil {
		return nil, err
	}
	return syn, nil
}

// Delete removes a syndicate
func (s *Service) Delete(ctx context.Context, id uuid.UUID) error {
	return s.SyndicateRepo.Delete(ctx, id)
}

func (s *Service) validate(ctx context.Context, in CreateSyndicateInput) error {
	if in.Name == "" {
		return domain.NewRuleViolation("syndicate name is required")
	}
	if in.BorrowerID == uuid.Nil {
		return domain.NewRuleViolation("borrowerId is required")
	}
	if _, err := s.BorrowerRepo.GetByID(ctx, in.BorrowerID); err != nil {
		if errors.Is(err, domain.ErrNotFound) {
			return domain.NewRuleViolation("borrower %s does not exist", in.BorrowerID)
		}
		return err
	}
	for _, investorID := range in.MemberInvestorIDs {
		if _, err := s.InvestorRepo.GetByID(ctx, investorID); err != nil {
			if errors.Is(err, domain.ErrNotFound) {
				return domain.NewRuleViolation("member investor %s does not exist", investorID)
			}
			return err
		}
	}
	return nil
}
