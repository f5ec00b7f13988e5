package cancel_reservation

import (
	"context"
	"fmt"
	"strings"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	"github.com/m04kA/SMC-HeliTourService/internal/domain"
	"github.com/m04kA/SMC-HeliTourService/internal/infra/events"
	reservationRepo "github.com/m04kA/SMC-HeliTourService/internal/infra/storage/reservation"
	"github.com/m04kA/SMC-HeliTourService/internal/service/cancellation"
	"github.com/m04kA/SMC-HeliTourService/internal/service/refunds"
	"github.com/m04kA/SMC-HeliTourService/pkg/logger"
	"github.com/m04kA/SMC-HeliTourService/pkg/ptr"
)

type reservationRepoMock struct{ mock.Mock }

func (m *reservationRepoMock) GetByID(ctx context.Context, id uuid.UUID) (*domain.Reservation, error) {
	args := m.Called(ctx, id)
	res, _ := args.Get(0).(*domain.Reservation)
	return res, args.Error(1)
}

type cancellationMock struct{ mock.Mock }

func (m *cancellationMock) Quote(ctx context.Context, res *domain.Reservation) (*domain.CancellationQuote, error) {
	args := m.Called(ctx, res)
	quote, _ := args.Get(0).(*domain.CancellationQuote)
	return quote, args.Error(1)
}

func (m *cancellationMock) Apply(ctx context.Context, res *domain.Reservation, quote domain.CancellationQuote, cancelledBy string, reason *string) (*domain.Reservation, error) {
	args := m.Called(ctx, res, quote, cancelledBy, reason)
	cancelled, _ := args.Get(0).(*domain.Reservation)
	return cancelled, args.Error(1)
}

type refundMock struct{ mock.Mock }

func (m *refundMock) Issue(ctx context.Context, req refunds.IssueRequest) (*domain.Refund, error) {
	args := m.Called(ctx, req)
	refund, _ := args.Get(0).(*domain.Refund)
	return refund, args.Error(1)
}

type publisherMock struct{ mock.Mock }

func (m *publisherMock) PublishReservationCancelled(ctx context.Context, event events.ReservationCancelled) error {
	return m.Called(ctx, event).Error(0)
}

type actorCounter struct {
	counts map[string]int
}

func (c *actorCounter) IncCancellation(actor string) {
	if c.counts == nil {
		c.counts = make(map[string]int)
	}
	c.counts[actor]++
}

type fixture struct {
	reservations *reservationRepoMock
	cancellation *cancellationMock
	refunds      *refundMock
	publisher    *publisherMock
	metrics      *actorCounter
	uc           *UseCase
}

func newFixture(refundOnCancel bool) *fixture {
	f := &fixture{
		reservations: new(reservationRepoMock),
		cancellation: new(cancellationMock),
		refunds:      new(refundMock),
		publisher:    new(publisherMock),
		metrics:      &actorCounter{},
	}
	f.uc = NewUseCase(f.reservations, f.cancellation, f.refunds, f.publisher, f.metrics,
		Config{RefundOnCancel: refundOnCancel}, logger.NewNop())
	return f
}

var customer = domain.Actor{ID: "customer-1", Role: domain.RoleCustomer}

func paidReservation() *domain.Reservation {
	return &domain.Reservation{
		ID:            uuid.New(),
		BookingNumber: "HT-20240615-ABCDEF",
		CustomerID:    "customer-1",
		SlotID:        uuid.New(),
		Pax:           2,
		TotalPrice:    110000,
		Status:        domain.ReservationStatusConfirmed,
		PaymentStatus: domain.PaymentStatusPaid,
		PaymentID:     ptr.Ptr("pi_1"),
	}
}

func cancelledCopy(res *domain.Reservation, fee int64) *domain.Reservation {
	c := *res
	c.Status = domain.ReservationStatusCancelled
	c.CancelledAt = ptr.Ptr(time.Date(2024, 6, 13, 1, 0, 0, 0, time.UTC))
	c.CancelledBy = ptr.Ptr("customer-1")
	c.CancellationFee = ptr.Ptr(fee)
	return &c
}

func halfQuote() *domain.CancellationQuote {
	return &domain.CancellationQuote{
		TotalPrice:      110000,
		FeePercentage:   50,
		CancellationFee: 55000,
		RefundAmount:    55000,
		DaysUntil:       2,
		CanCancel:       true,
	}
}

func TestExecute_CancelsAndRefunds(t *testing.T) {
	f := newFixture(true)
	res := paidReservation()
	refundID := uuid.New()

	f.reservations.On("GetByID", mock.Anything, res.ID).Return(res, nil)
	f.cancellation.On("Quote", mock.Anything, res).Return(halfQuote(), nil)
	f.cancellation.On("Apply", mock.Anything, res, *halfQuote(), "customer-1", ptr.Ptr("weather looks bad")).
		Return(cancelledCopy(res, 55000), nil)
	f.refunds.On("Issue", mock.Anything, refunds.IssueRequest{
		ReservationID: res.ID,
		Reason:        domain.RefundReasonCustomerRequest,
		ProcessedBy:   "customer-1",
	}).Return(&domain.Refund{ID: refundID, Amount: 55000, Status: domain.RefundStatusSucceeded}, nil)
	f.publisher.On("PublishReservationCancelled", mock.Anything, mock.MatchedBy(func(e events.ReservationCancelled) bool {
		return e.CancellationFee == 55000 && e.RefundAmount == 55000 && e.FeePercentage == 50
	})).Return(nil)

	resp, err := f.uc.Execute(context.Background(), &Request{
		ReservationID: res.ID.String(),
		Actor:         customer,
		Reason:        ptr.Ptr("  weather looks bad "),
	})

	require.NoError(t, err)
	assert.Equal(t, "cancelled", resp.Status)
	assert.Equal(t, int64(55000), resp.CancellationFee)
	require.NotNil(t, resp.Refund)
	assert.Equal(t, "succeeded", resp.Refund.Status)
	assert.Equal(t, refundID.String(), resp.Refund.ID)
	assert.Equal(t, 1, f.metrics.counts["customer"])
	f.publisher.AssertExpectations(t)
}

func TestExecute_RefundFailureKeepsReservationCancelled(t *testing.T) {
	f := newFixture(true)
	res := paidReservation()
	failed := &domain.Refund{ID: uuid.New(), Amount: 55000, Status: domain.RefundStatusFailed}

	f.reservations.On("GetByID", mock.Anything, res.ID).Return(res, nil)
	f.cancellation.On("Quote", mock.Anything, res).Return(halfQuote(), nil)
	f.cancellation.On("Apply", mock.Anything, res, mock.Anything, mock.Anything, mock.Anything).
		Return(cancelledCopy(res, 55000), nil)
	f.refunds.On("Issue", mock.Anything, mock.Anything).
		Return(failed, fmt.Errorf("%w: gateway unavailable", refunds.ErrRefundFailed))
	f.publisher.On("PublishReservationCancelled", mock.Anything, mock.Anything).Return(nil)

	resp, err := f.uc.Execute(context.Background(), &Request{ReservationID: res.ID.String(), Actor: customer})

	require.NoError(t, err)
	assert.Equal(t, "cancelled", resp.Status)
	require.NotNil(t, resp.Refund)
	assert.Equal(t, "failed", resp.Refund.Status)
	assert.True(t, resp.Refund.Retryable)
	assert.Equal(t, failed.ID.String(), resp.Refund.ID)
}

func TestExecute_NoRefundWhenUnpaidOrFullFee(t *testing.T) {
	t.Run("unpaid", func(t *testing.T) {
		f := newFixture(true)
		res := paidReservation()
		res.PaymentStatus = domain.PaymentStatusUnpaid
		res.PaymentID = nil

		f.reservations.On("GetByID", mock.Anything, res.ID).Return(res, nil)
		f.cancellation.On("Quote", mock.Anything, res).Return(halfQuote(), nil)
		f.cancellation.On("Apply", mock.Anything, res, mock.Anything, mock.Anything, mock.Anything).
			Return(cancelledCopy(res, 55000), nil)
		f.publisher.On("PublishReservationCancelled", mock.Anything, mock.Anything).Return(nil)

		resp, err := f.uc.Execute(context.Background(), &Request{ReservationID: res.ID.String(), Actor: customer})

		require.NoError(t, err)
		assert.Nil(t, resp.Refund)
		f.refunds.AssertNotCalled(t, "Issue", mock.Anything, mock.Anything)
	})

	t.Run("same day", func(t *testing.T) {
		f := newFixture(true)
		res := paidReservation()
		quote := &domain.CancellationQuote{TotalPrice: 110000, FeePercentage: 100, CancellationFee: 110000, CanCancel: true}

		f.reservations.On("GetByID", mock.Anything, res.ID).Return(res, nil)
		f.cancellation.On("Quote", mock.Anything, res).Return(quote, nil)
		f.cancellation.On("Apply", mock.Anything, res, mock.Anything, mock.Anything, mock.Anything).
			Return(cancelledCopy(res, 110000), nil)
		f.publisher.On("PublishReservationCancelled", mock.Anything, mock.Anything).Return(nil)

		resp, err := f.uc.Execute(context.Background(), &Request{ReservationID: res.ID.String(), Actor: customer})

		require.NoError(t, err)
		assert.Nil(t, resp.Refund)
	})
}

func TestExecute_OperatorCancelUsesOperatorReason(t *testing.T) {
	f := newFixture(true)
	res := paidReservation()
	admin := domain.Actor{ID: "ops-1", Role: domain.RoleAdmin}

	f.reservations.On("GetByID", mock.Anything, res.ID).Return(res, nil)
	f.cancellation.On("Quote", mock.Anything, res).Return(halfQuote(), nil)
	f.cancellation.On("Apply", mock.Anything, res, mock.Anything, "ops-1", mock.Anything).
		Return(cancelledCopy(res, 55000), nil)
	f.refunds.On("Issue", mock.Anything, mock.MatchedBy(func(r refunds.IssueRequest) bool {
		return r.Reason == domain.RefundReasonOperatorCancel && r.ProcessedBy == "ops-1"
	})).Return(&domain.Refund{ID: uuid.New(), Amount: 55000, Status: domain.RefundStatusSucceeded}, nil)
	f.publisher.On("PublishReservationCancelled", mock.Anything, mock.Anything).Return(nil)

	_, err := f.uc.Execute(context.Background(), &Request{ReservationID: res.ID.String(), Actor: admin})

	require.NoError(t, err)
	assert.Equal(t, 1, f.metrics.counts["admin"])
	f.refunds.AssertExpectations(t)
}

func TestExecute_Errors(t *testing.T) {
	res := paidReservation()

	t.Run("not found", func(t *testing.T) {
		f := newFixture(true)
		id := uuid.New()
		f.reservations.On("GetByID", mock.Anything, id).Return(nil, reservationRepo.ErrReservationNotFound)

		_, err := f.uc.Execute(context.Background(), &Request{ReservationID: id.String(), Actor: customer})
		assert.ErrorIs(t, err, ErrReservationNotFound)
	})

	t.Run("foreign reservation", func(t *testing.T) {
		f := newFixture(true)
		f.reservations.On("GetByID", mock.Anything, res.ID).Return(res, nil)

		_, err := f.uc.Execute(context.Background(), &Request{
			ReservationID: res.ID.String(),
			Actor:         domain.Actor{ID: "customer-2", Role: domain.RoleCustomer},
		})
		assert.ErrorIs(t, err, ErrAccessDenied)
		f.cancellation.AssertNotCalled(t, "Apply", mock.Anything, mock.Anything, mock.Anything, mock.Anything, mock.Anything)
	})

	t.Run("already cancelled", func(t *testing.T) {
		f := newFixture(true)
		f.reservations.On("GetByID", mock.Anything, res.ID).Return(res, nil)
		f.cancellation.On("Quote", mock.Anything, res).Return(halfQuote(), nil)
		f.cancellation.On("Apply", mock.Anything, res, mock.Anything, mock.Anything, mock.Anything).
			Return(nil, fmt.Errorf("%w: status cancelled", cancellation.ErrCannotCancel))

		_, err := f.uc.Execute(context.Background(), &Request{ReservationID: res.ID.String(), Actor: customer})
		assert.ErrorIs(t, err, ErrCannotCancel)
		f.publisher.AssertNotCalled(t, "PublishReservationCancelled", mock.Anything, mock.Anything)
	})

	t.Run("reason too long", func(t *testing.T) {
		f := newFixture(true)

		_, err := f.uc.Execute(context.Background(), &Request{
			ReservationID: res.ID.String(),
			Actor:         customer,
			Reason:        ptr.Ptr(strings.Repeat("я", domain.MaxCancellationReasonLength+1)),
		})
		assert.ErrorIs(t, err, ErrInvalidInput)
	})

	t.Run("malformed id", func(t *testing.T) {
		f := newFixture(true)

		_, err := f.uc.Execute(context.Background(), &Request{ReservationID: "abc", Actor: customer})
		assert.ErrorIs(t, err, ErrInvalidInput)
	})
}
