package cancellation

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	"github.com/m04kA/SMC-HeliTourService/internal/domain"
	reservationRepo "github.com/m04kA/SMC-HeliTourService/internal/infra/storage/reservation"
	"github.com/m04kA/SMC-HeliTourService/pkg/logger"
)

type policyRepoMock struct{ mock.Mock }

func (m *policyRepoMock) ListActive(ctx context.Context) ([]domain.CancellationPolicyTier, error) {
	args := m.Called(ctx)
	tiers, _ := args.Get(0).([]domain.CancellationPolicyTier)
	return tiers, args.Error(1)
}

type cacheMock struct{ mock.Mock }

func (m *cacheMock) Get(ctx context.Context) ([]domain.CancellationPolicyTier, bool) {
	args := m.Called(ctx)
	tiers, _ := args.Get(0).([]domain.CancellationPolicyTier)
	return tiers, args.Bool(1)
}

func (m *cacheMock) Set(ctx context.Context, tiers []domain.CancellationPolicyTier) {
	m.Called(ctx, tiers)
}

type reservationRepoMock struct{ mock.Mock }

func (m *reservationRepoMock) Cancel(ctx context.Context, id uuid.UUID, params reservationRepo.CancelParams) (*domain.Reservation, error) {
	args := m.Called(ctx, id, params)
	res, _ := args.Get(0).(*domain.Reservation)
	return res, args.Error(1)
}

type capacityMock struct{ mock.Mock }

func (m *capacityMock) Release(ctx context.Context, slotID uuid.UUID, pax int) (*domain.Slot, error) {
	args := m.Called(ctx, slotID, pax)
	slot, _ := args.Get(0).(*domain.Slot)
	return slot, args.Error(1)
}

// inlineTx выполняет fn без БД и запоминает, чем закончилась транзакция
type inlineTx struct {
	committed  bool
	rolledBack bool
}

func (tx *inlineTx) Do(ctx context.Context, fn func(ctx context.Context) error) error {
	if err := fn(ctx); err != nil {
		tx.rolledBack = true
		return err
	}
	tx.committed = true
	return nil
}

type fixture struct {
	policy   *policyRepoMock
	resRepo  *reservationRepoMock
	capacity *capacityMock
	tx       *inlineTx
	svc      *Service
}

func newFixture(now time.Time) *fixture {
	f := &fixture{
		policy:   new(policyRepoMock),
		resRepo:  new(reservationRepoMock),
		capacity: new(capacityMock),
		tx:       &inlineTx{},
	}
	f.svc = NewService(f.policy, nil, f.resRepo, f.capacity, f.tx, tokyo, logger.NewNop())
	f.svc.now = func() time.Time { return now }
	return f
}

func confirmedReservation() *domain.Reservation {
	return &domain.Reservation{
		ID:              uuid.New(),
		SlotID:          uuid.New(),
		ReservationDate: date(2024, 6, 15),
		Pax:             2,
		TotalPrice:      110000,
		Status:          domain.ReservationStatusConfirmed,
	}
}

func TestService_Quote(t *testing.T) {
	f := newFixture(time.Date(2024, 6, 13, 10, 0, 0, 0, tokyo))
	f.policy.On("ListActive", mock.Anything).Return(standardTiers(), nil)

	quote, err := f.svc.Quote(context.Background(), confirmedReservation())
	require.NoError(t, err)
	assert.Equal(t, 50, quote.FeePercentage)
	assert.Equal(t, int64(55000), quote.CancellationFee)
	assert.Equal(t, int64(55000), quote.RefundAmount)
	assert.True(t, quote.CanCancel)
}

func TestService_Quote_EmptyPolicyIsFree(t *testing.T) {
	f := newFixture(time.Date(2024, 6, 15, 8, 0, 0, 0, tokyo))
	f.policy.On("ListActive", mock.Anything).Return([]domain.CancellationPolicyTier{}, nil)

	quote, err := f.svc.Quote(context.Background(), confirmedReservation())
	require.NoError(t, err)
	assert.Equal(t, 0, quote.FeePercentage)
	assert.Equal(t, int64(110000), quote.RefundAmount)
}

func TestService_Quote_RepositoryError(t *testing.T) {
	f := newFixture(time.Now())
	f.policy.On("ListActive", mock.Anything).Return(nil, errors.New("db down"))

	_, err := f.svc.Quote(context.Background(), confirmedReservation())
	assert.ErrorIs(t, err, ErrInternal)
}

func TestService_ListPolicy_UsesCache(t *testing.T) {
	f := newFixture(time.Now())
	cache := new(cacheMock)
	f.svc.cache = cache

	cache.On("Get", mock.Anything).Return(nil, false).Once()
	f.policy.On("ListActive", mock.Anything).Return(standardTiers(), nil).Once()
	cache.On("Set", mock.Anything, mock.Anything).Once()

	tiers, err := f.svc.ListPolicy(context.Background())
	require.NoError(t, err)
	require.Len(t, tiers, 3)
	assert.Equal(t, 1, tiers[0].DisplayOrder)

	cache.On("Get", mock.Anything).Return(tiers, true).Once()
	_, err = f.svc.ListPolicy(context.Background())
	require.NoError(t, err)

	cache.AssertExpectations(t)
	f.policy.AssertNumberOfCalls(t, "ListActive", 1)
}

func TestService_Apply(t *testing.T) {
	now := time.Date(2024, 6, 13, 10, 0, 0, 0, tokyo)
	f := newFixture(now)
	res := confirmedReservation()
	reason := "schedule change"
	quote := domain.CancellationQuote{TotalPrice: 110000, FeePercentage: 50, CancellationFee: 55000, RefundAmount: 55000, DaysUntil: 2, CanCancel: true}

	cancelled := *res
	cancelled.Status = domain.ReservationStatusCancelled

	f.resRepo.On("Cancel", mock.Anything, res.ID, reservationRepo.CancelParams{
		CancelledAt: now.UTC(),
		CancelledBy: "cus-1",
		Reason:      &reason,
		Fee:         55000,
	}).Return(&cancelled, nil)
	f.capacity.On("Release", mock.Anything, res.SlotID, 2).Return(&domain.Slot{}, nil)

	got, err := f.svc.Apply(context.Background(), res, quote, "cus-1", &reason)
	require.NoError(t, err)
	assert.Equal(t, domain.ReservationStatusCancelled, got.Status)
	assert.True(t, f.tx.committed)
	f.capacity.AssertExpectations(t)
}

func TestService_Apply_ReleaseFailureRollsBack(t *testing.T) {
	f := newFixture(time.Date(2024, 6, 13, 10, 0, 0, 0, tokyo))
	res := confirmedReservation()

	f.resRepo.On("Cancel", mock.Anything, res.ID, mock.Anything).Return(&domain.Reservation{}, nil)
	f.capacity.On("Release", mock.Anything, res.SlotID, 2).Return(nil, errors.New("db down"))

	_, err := f.svc.Apply(context.Background(), res, domain.CancellationQuote{CanCancel: true}, "admin-1", nil)
	assert.ErrorIs(t, err, ErrInternal)
	assert.True(t, f.tx.rolledBack)
	assert.False(t, f.tx.committed)
}

func TestService_Apply_RejectsInvalidState(t *testing.T) {
	f := newFixture(time.Now())

	res := confirmedReservation()
	res.Status = domain.ReservationStatusCompleted
	_, err := f.svc.Apply(context.Background(), res, domain.CancellationQuote{CanCancel: true}, "admin-1", nil)
	assert.ErrorIs(t, err, ErrCannotCancel)

	_, err = f.svc.Apply(context.Background(), confirmedReservation(), domain.CancellationQuote{CanCancel: false, DaysUntil: -1}, "cus-1", nil)
	assert.ErrorIs(t, err, ErrCannotCancel)

	f.resRepo.AssertNotCalled(t, "Cancel", mock.Anything, mock.Anything, mock.Anything)
	f.capacity.AssertNotCalled(t, "Release", mock.Anything, mock.Anything, mock.Anything)
}

func TestService_Apply_ConcurrentCancelDoesNotReleaseTwice(t *testing.T) {
	f := newFixture(time.Date(2024, 6, 13, 10, 0, 0, 0, tokyo))
	res := confirmedReservation()

	f.resRepo.On("Cancel", mock.Anything, res.ID, mock.Anything).Return(nil, reservationRepo.ErrConditionNotMet)

	_, err := f.svc.Apply(context.Background(), res, domain.CancellationQuote{CanCancel: true}, "cus-1", nil)
	assert.ErrorIs(t, err, ErrCannotCancel)
	f.capacity.AssertNotCalled(t, "Release", mock.Anything, mock.Anything, mock.Anything)
}
