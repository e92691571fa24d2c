package facility

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	"github.com/syndilend/syndilend-backend/internal/domain"
)

type serviceFixture struct {
	*validatorFixture

	sharePieRepo   *MockSharePieRepository
	investmentRepo *MockInvestmentRepository
	service        *Service
}

func newServiceFixture(t *testing.T) *serviceFixture {
	t.Helper()

	f := &serviceFixture{
		validatorFixture: newValidatorFixture(t),
		sharePieRepo:     new(MockSharePieRepository),
		investmentRepo:   new(MockInvestmentRepository),
	}
	uow := &fakeUnitOfWork{repos: domain.Repositories{
		Facilities:  f.facilityRepo,
		SharePies:   f.sharePieRepo,
		Investments: f.investmentRepo,
	}}
	f.service = NewService(f.validator, f.facilityRepo, f.syndicateRepo, f.investmentRepo, uow)
	return f
}

func (f *serviceFixture) captureInvestments(out *[]domain.FacilityInvestment) {
	f.investmentRepo.On("ReplaceAll", mock.Anything, mock.Anything, mock.Anything).
		Run(func(args mock.Arguments) {
			*out = args.Get(2).([]domain.FacilityInvestment)
		}).Return(nil)
}

func TestServiceCreate_PersistsFacilityAndDerivedLedger(t *testing.T) {
	f := newServiceFixture(t)
	f.facilityRepo.On("Create", mock.Anything, mock.Anything).Return(nil)
	f.sharePieRepo.On("ReplaceAll", mock.Anything, mock.Anything, mock.Anything).Return(nil)

	var ledger []domain.FacilityInvestment
	f.captureInvestments(&ledger)

	created, err := f.service.Create(context.Background(), f.validInput(t))
	require.NoError(t, err)

	assert.NotEqual(t, uuid.Nil, created.ID)
	assert.Equal(t, int64(1), created.Version)
	assert.Len(t, created.SharePies, 3)
	for _, pie := range created.SharePies {
		assert.Equal(t, created.ID, pie.FacilityID)
	}

	// 5,000,000.00 split 40/35/25
	require.Len(t, ledger, 3)
	assert.True(t, ledger[0].Amount.Equal(mustMoney(t, "2000000.00")), "got %s", ledger[0].Amount)
	assert.True(t, ledger[1].Amount.Equal(mustMoney(t, "1750000.00")), "got %s", ledger[1].Amount)
	assert.True(t, ledger[2].Amount.Equal(mustMoney(t, "1250000.00")), "got %s", ledger[2].Amount)
	for _, inv := range ledger {
		assert.Equal(t, created.ID, inv.FacilityID)
		assert.Equal(t, f.borrowerID, inv.BorrowerID)
		assert.Equal(t, domain.TransactionTypeFacilityInvestment, inv.TransactionType)
	}

	f.facilityRepo.AssertCalled(t, "Create", mock.Anything, created)
	f.sharePieRepo.AssertCalled(t, "ReplaceAll", mock.Anything, created.ID, created.SharePies)
}

func TestServiceCreate_ValidationFailureWritesNothing(t *testing.T) {
	f := newServiceFixture(t)

	in := f.validInput(t)
	in.Commitment = domain.ZeroMoney()

	created, err := f.service.Create(context.Background(), in)
	require.Error(t, err)
	assert.True(t, domain.IsRuleViolation(err))
	assert.Nil(t, created)

	f.facilityRepo.AssertNotCalled(t, "Create", mock.Anything, mock.Anything)
	f.sharePieRepo.AssertNotCalled(t, "ReplaceAll", mock.Anything, mock.Anything, mock.Anything)
	f.investmentRepo.AssertNotCalled(t, "ReplaceAll", mock.Anything, mock.Anything, mock.Anything)
}

func TestServiceCreate_StoreFailurePropagates(t *testing.T) {
	f := newServiceFixture(t)
	f.facilityRepo.On("Create", mock.Anything, mock.Anything).Return(nil)
	f.sharePieRepo.On("ReplaceAll", mock.Anything, mock.Anything, mock.Anything).
		Return(errors.New("insert share_pies: connection reset"))

	created, err := f.service.Create(context.Background(), f.validInput(t))
	require.Error(t, err)
	assert.Nil(t, created)
	assert.Contains(t, err.Error(), "connection reset")
	f.investmentRepo.AssertNotCalled(t, "ReplaceAll", mock.Anything, mock.Anything, mock.Anything)
}

func TestServiceUpdate_BumpsVersionAndRegeneratesLedger(t *testing.T) {
	f := newServiceFixture(t)
	facilityID := uuid.New()
	f.facilityRepo.On("GetByID", mock.Anything, facilityID).Return(&domain.Facility{
		ID:          facilityID,
		SyndicateID: f.syndicateID,
		Commitment:  mustMoney(t, "5000000.00"),
		Version:     1,
		CreatedAt:   time.Date(2025, 1, 1, 0, 0, 0, 0, time.UTC),
	}, nil)
	f.facilityRepo.On("Update", mock.Anything, mock.Anything, int64(1)).Return(nil)
	f.sharePieRepo.On("ReplaceAll", mock.Anything, facilityID, mock.Anything).Return(nil)

	var ledger []domain.FacilityInvestment
	f.captureInvestments(&ledger)

	version := int64(1)
	in := UpdateFacilityInput{CreateFacilityInput: f.validInput(t), Version: &version}
	in.Commitment = mustMoney(t, "6000000.00")

	updated, err := f.service.Update(context.Background(), facilityID, in)
	require.NoError(t, err)

	assert.Equal(t, int64(2), updated.Version)
	assert.Equal(t, time.Date(2025, 1, 1, 0, 0, 0, 0, time.UTC), updated.CreatedAt)

	// 6,000,000.00 split 40/35/25
	require.Len(t, ledger, 3)
	assert.True(t, ledger[0].Amount.Equal(mustMoney(t, "2400000.00")), "got %s", ledger[0].Amount)
	assert.True(t, ledger[1].Amount.Equal(mustMoney(t, "2100000.00")), "got %s", ledger[1].Amount)
	assert.True(t, ledger[2].Amount.Equal(mustMoney(t, "1500000.00")), "got %s", ledger[2].Amount)
}

func TestServiceUpdate_StaleVersionStopsAllWrites(t *testing.T) {
	f := newServiceFixture(t)
	facilityID := uuid.New()
	f.facilityRepo.On("GetByID", mock.Anything, facilityID).Return(&domain.Facility{
		ID:          facilityID,
		SyndicateID: f.syndicateID,
		Version:     2,
	}, nil)
	f.facilityRepo.On("Update", mock.Anything, mock.Anything, int64(1)).
		Return(domain.ErrVersionConflict)

	version := int64(1)
	in := UpdateFacilityInput{CreateFacilityInput: f.validInput(t), Version: &version}

	updated, err := f.service.Update(context.Background(), facilityID, in)
	require.Error(t, err)
	assert.True(t, errors.Is(err, domain.ErrVersionConflict))
	assert.Nil(t, updated)

	f.sharePieRepo.AssertNotCalled(t, "ReplaceAll", mock.Anything, mock.Anything, mock.Anything)
	f.investmentRepo.AssertNotCalled(t, "ReplaceAll", mock.Anything, mock.Anything, mock.Anything)
}

func TestServiceUpdate_MissingVersionRejected(t *testing.T) {
	f := newServiceFixture(t)
	facilityID := uuid.New()
	f.facilityRepo.On("GetByID", mock.Anything, facilityID).Return(&domain.Facility{
		ID:          facilityID,
		SyndicateID: f.syndicateID,
		Version:     1,
	}, nil)

	in := UpdateFacilityInput{CreateFacilityInput: f.validInput(t)}

	_, err := f.service.Update(context.Background(), facilityID, in)
	require.Error(t, err)
	assert.True(t, domain.IsRuleViolation(err))
	f.facilityRepo.AssertNotCalled(t, "Update", mock.Anything, mock.Anything, mock.Anything)
}

func TestServiceUpdate_UnknownFacility(t *testing.T) {
	f := newServiceFixture(t)
	facilityID := uuid.New()
	f.facilityRepo.On("GetByID", mock.Anything, facilityID).
		Return(nil, domain.NotFound("facility", facilityID))

	version := int64(1)
	in := UpdateFacilityInput{CreateFacilityInput: f.validInput(t), Version: &version}

	_, err := f.service.Update(context.Background(), facilityID, in)
	require.Error(t, err)
	assert.True(t, errors.Is(err, domain.ErrNotFound))
}

func TestServiceDelete_RemovesPiesButKeepsLedger(t *testing.T) {
	f := newServiceFixture(t)
	facilityID := uuid.New()
	f.facilityRepo.On("GetByID", mock.Anything, facilityID).
		Return(&domain.Facility{ID: facilityID}, nil)
	f.sharePieRepo.On("DeleteByFacility", mock.Anything, facilityID).Return(nil)
	f.facilityRepo.On("Delete", mock.Anything, facilityID).Return(nil)

	require.NoError(t, f.service.Delete(context.Background(), facilityID))

	f.sharePieRepo.AssertCalled(t, "DeleteByFacility", mock.Anything, facilityID)
	f.facilityRepo.AssertCalled(t, "Delete", mock.Anything, facilityID)
	// Investment rows are history; delete never touches them
	f.investmentRepo.AssertNotCalled(t, "ReplaceAll", mock.Anything, mock.Anything, mock.Anything)
}

func TestServiceDelete_UnknownFacility(t *testing.T) {
	f := newServiceFixture(t)
	facilityID := uuid.New()
	f.facilityRepo.On("GetByID", mock.Anything, facilityID).
		Return(nil, domain.NotFound("facility", facilityID))

	err := f.service.Delete(context.Background(), facilityID)
	require.Error(t, err)
	assert.True(t, errors.Is(err, domain.ErrNotFound))
	f.facilityRepo.AssertNotCalled(t, "Delete", mock.Anything, mock.Anything)
}

func TestServiceInvestments_RequiresExistingFacility(t *testing.T) {
	f := newServiceFixture(t)
	facilityID := uuid.New()
	f.facilityRepo.On("GetByID", mock.Anything, facilityID).
		Return(&domain.Facility{ID: facilityID}, nil)
	rows := []domain.FacilityInvestment{{ID: uuid.New(), FacilityID: facilityID}}
	f.investmentRepo.On("ListByFacility", mock.Anything, facilityID).Return(rows, nil)

	got, err := f.service.Investments(context.Background(), facilityID)
	require.NoError(t, err)
	assert.Equal(t, rows, got)

	missing := uuid.New()
	f.facilityRepo.On("GetByID", mock.Anything, missing).
		Return(nil, domain.NotFound("facility", missing))
	_, err = f.service.Investments(context.Background(), missing)
	assert.True(t, errors.Is(err, domain.ErrNotFound))
}
