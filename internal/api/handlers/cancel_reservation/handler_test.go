package cancel_reservation

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/gorilla/mux"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/m04kA/SMC-HeliTourService/internal/api/middleware"
	"github.com/m04kA/SMC-HeliTourService/internal/domain"
	cancelReservation "github.com/m04kA/SMC-HeliTourService/internal/usecase/cancel_reservation"
	"github.com/m04kA/SMC-HeliTourService/pkg/logger"
	"github.com/m04kA/SMC-HeliTourService/pkg/ptr"
)

type stubUseCase struct {
	got  *cancelReservation.Request
	resp *cancelReservation.Response
	err  error
}

func (s *stubUseCase) Execute(_ context.Context, req *cancelReservation.Request) (*cancelReservation.Response, error) {
	s.got = req
	return s.resp, s.err
}

func serve(uc *stubUseCase, body string) *httptest.ResponseRecorder {
	router := mux.NewRouter()
	router.HandleFunc("/reservations/{reservationId}/cancel", NewHandler(uc, logger.NewNop()).Handle)

	req := httptest.NewRequest(http.MethodPost, "/reservations/res-1/cancel", strings.NewReader(body))
	req = req.WithContext(middleware.WithActor(req.Context(), domain.Actor{ID: "customer-1", Role: domain.RoleCustomer}))
	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, req)
	return rec
}

func TestHandle_CancelledWithFailedRefund(t *testing.T) {
	cancelledAt := time.Date(2024, 6, 10, 12, 0, 0, 0, time.UTC)
	uc := &stubUseCase{resp: &cancelReservation.Response{
		ReservationID:   "res-1",
		BookingNumber:   "HT-20240615-ABCDEF",
		Status:          "cancelled",
		CancelledAt:     &cancelledAt,
		CancelledBy:     ptr.Ptr("customer-1"),
		FeePercentage:   30,
		CancellationFee: 33000,
		RefundAmount:    77000,
		Refund: &cancelReservation.RefundResult{
			ID:        "ref-1",
			Amount:    77000,
			Status:    "failed",
			Error:     "card_declined",
			Retryable: true,
		},
	}}

	rec := serve(uc, `{"reason":"schedule change"}`)

	require.Equal(t, http.StatusOK, rec.Code)
	var body CancelReservationResponse
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &body))
	assert.Equal(t, "cancelled", body.Status)
	require.NotNil(t, body.CancelledAt)
	assert.Equal(t, "2024-06-10T12:00:00Z", *body.CancelledAt)
	require.NotNil(t, body.Refund)
	assert.Equal(t, "failed", body.Refund.Status)
	assert.True(t, body.Refund.Retryable)

	require.NotNil(t, uc.got)
	assert.Equal(t, "res-1", uc.got.ReservationID)
	require.NotNil(t, uc.got.Reason)
	assert.Equal(t, "schedule change", *uc.got.Reason)
}

func TestHandle_EmptyBody(t *testing.T) {
	uc := &stubUseCase{resp: &cancelReservation.Response{ReservationID: "res-1", Status: "cancelled"}}

	rec := serve(uc, "")

	require.Equal(t, http.StatusOK, rec.Code)
	assert.Nil(t, uc.got.Reason)
	assert.NotContains(t, rec.Body.String(), `"refund"`)
}

func TestHandle_Errors(t *testing.T) {
	tests := []struct {
		name string
		body string
		err  error
		want int
	}{
		{name: "malformed body", body: `{"reason":`, want: http.StatusBadRequest},
		{name: "invalid input", err: cancelReservation.ErrInvalidInput, want: http.StatusBadRequest},
		{name: "not found", err: cancelReservation.ErrReservationNotFound, want: http.StatusNotFound},
		{name: "foreign reservation", err: cancelReservation.ErrAccessDenied, want: http.StatusForbidden},
		{name: "already cancelled", err: cancelReservation.ErrCannotCancel, want: http.StatusConflict},
		{name: "internal", err: cancelReservation.ErrInternal, want: http.StatusInternalServerError},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, serve(&stubUseCase{err: tt.err}, tt.body).Code)
		})
	}
}
