package facility

import (
	"context"

	"github.com/google/uuid"
	"github.com/stretchr/testify/mock"

	"github.com/syndilend/syndilend-backend/internal/domain"
)

// MockSyndicateRepository is a mock implementation of SyndicateRepository for testing
type MockSyndicateRepository struct {
	mock.Mock
}

func (m *MockSyndicateRepository) GetByID(ctx context.Context, id uuid.UUID) (*domain.Syndicate, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Syndicate), args.Error(1)
}

func (m *MockSyndicateRepository) List(ctx context.Context) ([]*domain.Syndicate, error) {
	args := m.Called(ctx)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]*domain.Syndicate), args.Error(1)
}

func (m *MockSyndicateRepository) Create(ctx context.Context, s *domain.Syndicate) error {
	args := m.Called(ctx, s)
	return args.Error(0)
}

func (m *MockSyndicateRepository) Update(ctx context.Context, s *domain.Syndicate) error {
	args := m.Called(ctx, s)
	return args.Error(0)
}

func (m *MockSyndicateRepository) Delete(ctx context.Context, id uuid.UUID) error {
	args := m.Called(ctx, id)
	return args.Error(0)
}

// MockInvestorRepository is a mock implementation of InvestorRepository for testing
type MockInvestorRepository struct {
	mock.Mock
}

func (m *MockInvestorRepository) GetByID(ctx context.Context, id uuid.UUID) (*domain.Investor, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Investor), args.Error(1)
}

func (m *MockInvestorRepository) List(ctx context.Context) ([]*domain.Investor, error) {
	args := m.Called(ctx)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]*domain.Investor), args.Error(1)
}

func (m *MockInvestorRepository) Create(ctx context.Context, inv *domain.Investor) error {
	args := m.Called(ctx, inv)
	return args.Error(0)
}

func (m *MockInvestorRepository) Update(ctx context.Context, inv *domain.Investor) error {
	args := m.Called(ctx, inv)
	return args.Error(0)
}

func (m *MockInvestorRepository) Delete(ctx context.Context, id uuid.UUID) error {
	args := m.Called(ctx, id)
	return args.Error(0)
}

// MockBorrowerRepository is a mock implementation of BorrowerRepository for testing
type MockBorrowerRepository struct {
	mock.Mock
}

func (m *MockBorrowerRepository) GetByID(ctx context.Context, id uuid.UUID) (*domain.Borrower, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Borrower), args.Error(1)
}

func (m *MockBorrowerRepository) List(ctx context.Context) ([]*domain.Borrower, error) {
	args := m.Called(ctx)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]*domain.Borrower), args.Error(1)
}

func (m *MockBorrowerRepository) Create(ctx context.Context, b *domain.Borrower) error {
	args := m.Called(ctx, b)
	return args.Error(0)
}

func (m *MockBorrowerRepository) Update(ctx context.Context, b *domain.Borrower) error {
	args := m.Called(ctx, b)
	return args.Error(0)
}

func (m *MockBorrowerRepository) Delete(ctx context.Context, id uuid.UUID) error {
	args := m.Called(ctx, id)
	return args.Error(0)
}

// MockFacilityRepository is a mock implementation of FacilityRepository for testing
type MockFacilityRepository struct {
	mock.Mock
}

func (m *MockFacilityRepository) GetByID(ctx context.Context, id uuid.UUID) (*domain.Facility, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Facility), args.Error(1)
}

func (m *MockFacilityRepository) List(ctx context.Context) ([]*domain.Facility, error) {
	args := m.Called(ctx)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]*domain.Facility), args.Error(1)
}

func (m *MockFacilityRepository) ListByBorrowerExcluding(ctx context.Context, borrowerID uuid.UUID, excludeFacilityID *uuid.UUID) ([]*domain.Facility, error) {
	args := m.Called(ctx, borrowerID, excludeFacilityID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]*domain.Facility), args.Error(1)
}

func (m *MockFacilityRepository) Create(ctx context.Context, f *domain.Facility) error {
	args := m.Called(ctx, f)
	return args.Error(0)
}

func (m *MockFacilityRepository) Update(ctx context.Context, f *domain.Facility, expectedVersion int64) error {
	args := m.Called(ctx, f, expectedVersion)
	return args.Error(0)
}

func (m *MockFacilityRepository) Delete(ctx context.Context, id uuid.UUID) error {
	args := m.Called(ctx, id)
	return args.Error(0)
}

// MockSharePieRepository is a mock implementation of SharePieRepository for testing
type MockSharePieRepository struct {
	mock.Mock
}

func (m *MockSharePieRepository) ListByFacility(ctx context.Context, facilityID uuid.UUID) ([]domain.SharePie, error) {
	args := m.Called(ctx, facilityID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]domain.SharePie), args.Error(1)
}

func (m *MockSharePieRepository) ReplaceAll(ctx context.Context, facilityID uuid.UUID, pies []domain.SharePie) error {
	args := m.Called(ctx, facilityID, pies)
	return args.Error(0)
}

func (m *MockSharePieRepository) DeleteByFacility(ctx context.Context, facilityID uuid.UUID) error {
	args := m.Called(ctx, facilityID)
	return args.Error(0)
}

// MockInvestmentRepository is a mock implementation of InvestmentRepository for testing
type MockInvestmentRepository struct {
	mock.Mock
}

func (m *MockInvestmentRepository) ListByFacility(ctx context.Context, facilityID uuid.UUID) ([]domain.FacilityInvestment, error) {
	args := m.Called(ctx, facilityID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]domain.FacilityInvestment), args.Error(1)
}

func (m *MockInvestmentRepository) ReplaceAll(ctx context.Context, facilityID uuid.UUID, investments []domain.FacilityInvestment) error {
	args := m.Called(ctx, facilityID, investments)
	return args.Error(0)
}

// fakeUnitOfWork runs the unit-of-work function directly against the given
// repositories, standing in for a real transaction
type fakeUnitOfWork struct {
	repos domain.Repositories
	err   error
}

func (u *fakeUnitOfWork) WithinTx(ctx context.Context, fn func(r domain.Repositories) error) error {
	if u.err != nil {
		return u.err
	}
	return fn(u.repos)
}
