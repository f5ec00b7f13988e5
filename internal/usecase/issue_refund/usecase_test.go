package issue_refund

import (
	"context"
	"fmt"
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/m04kA/SMC-HeliTourService/internal/domain"
	"github.com/m04kA/SMC-HeliTourService/internal/service/refunds"
	"github.com/m04kA/SMC-HeliTourService/pkg/logger"
	"github.com/m04kA/SMC-HeliTourService/pkg/ptr"
)

type stubRefunds struct {
	got    refunds.IssueRequest
	refund *domain.Refund
	err    error
}

func (s *stubRefunds) Issue(_ context.Context, req refunds.IssueRequest) (*domain.Refund, error) {
	s.got = req
	return s.refund, s.err
}

var admin = domain.Actor{ID: "ops-1", Role: domain.RoleAdmin}

func TestExecute_PassesRequestThrough(t *testing.T) {
	resID := uuid.New()
	stub := &stubRefunds{refund: &domain.Refund{
		ID:             uuid.New(),
		ReservationID:  resID,
		Amount:         30000,
		Reason:         domain.RefundReasonWeather,
		Status:         domain.RefundStatusSucceeded,
		StripeRefundID: ptr.Ptr("re_1"),
	}}
	uc := NewUseCase(stub, logger.NewNop())

	resp, err := uc.Execute(context.Background(), &Request{
		ReservationID: resID.String(),
		Amount:        ptr.Ptr(int64(30000)),
		Reason:        "weather",
		ReasonDetail:  ptr.Ptr("typhoon"),
		Actor:         admin,
	})

	require.NoError(t, err)
	assert.Equal(t, "succeeded", resp.Status)
	assert.Equal(t, resID, stub.got.ReservationID)
	assert.Equal(t, domain.RefundReasonWeather, stub.got.Reason)
	assert.Equal(t, "ops-1", stub.got.ProcessedBy)
	assert.Equal(t, int64(30000), *stub.got.Amount)
}

func TestExecute_GatewayFailureReturnsFailedRefund(t *testing.T) {
	stub := &stubRefunds{
		refund: &domain.Refund{ID: uuid.New(), Amount: 55000, Status: domain.RefundStatusFailed, FailureReason: ptr.Ptr("card_declined")},
		err:    fmt.Errorf("%w: declined", refunds.ErrRefundFailed),
	}
	uc := NewUseCase(stub, logger.NewNop())

	resp, err := uc.Execute(context.Background(), &Request{ReservationID: uuid.NewString(), Reason: "other", Actor: admin})

	assert.ErrorIs(t, err, ErrRefundFailed)
	require.NotNil(t, resp)
	assert.Equal(t, "failed", resp.Status)
}

func TestExecute_ErrorMapping(t *testing.T) {
	tests := []struct {
		name     string
		err      error
		expected error
	}{
		{name: "amount too large", err: refunds.ErrAmountExceedsRefundable, expected: ErrInvalidInput},
		{name: "not found", err: refunds.ErrReservationNotFound, expected: ErrReservationNotFound},
		{name: "unpaid", err: refunds.ErrNotRefundable, expected: ErrNotRefundable},
		{name: "internal", err: refunds.ErrInternal, expected: ErrInternal},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			uc := NewUseCase(&stubRefunds{err: tt.err}, logger.NewNop())
			_, err := uc.Execute(context.Background(), &Request{ReservationID: uuid.NewString(), Reason: "other", Actor: admin})
			assert.ErrorIs(t, err, tt.expected)
		})
	}
}

func TestExecute_Validation(t *testing.T) {
	stub := &stubRefunds{}
	uc := NewUseCase(stub, logger.NewNop())

	_, err := uc.Execute(context.Background(), &Request{ReservationID: "x", Reason: "other", Actor: admin})
	assert.ErrorIs(t, err, ErrInvalidInput)

	_, err = uc.Execute(context.Background(), &Request{ReservationID: uuid.NewString(), Reason: "goodwill", Actor: admin})
	assert.ErrorIs(t, err, ErrInvalidInput)

	assert.Equal(t, uuid.Nil, stub.got.ReservationID)
}
