package list_slots

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/m04kA/SMC-HeliTourService/internal/domain"
	"github.com/m04kA/SMC-HeliTourService/internal/service/slots"
	"github.com/m04kA/SMC-HeliTourService/pkg/logger"
)

type stubService struct {
	filter domain.SlotsFilter
	slots  []*domain.Slot
	err    error
}

func (s *stubService) List(_ context.Context, filter domain.SlotsFilter) ([]*domain.Slot, error) {
	s.filter = filter
	return s.slots, s.err
}

func TestHandle_ReturnsAvailability(t *testing.T) {
	courseID := uuid.New()
	svc := &stubService{slots: []*domain.Slot{{
		ID:         uuid.New(),
		CourseID:   &courseID,
		Date:       time.Date(2024, 6, 15, 0, 0, 0, 0, time.UTC),
		Time:       "10:00",
		MaxPax:     4,
		CurrentPax: 3,
		Status:     domain.SlotStatusOpen,
	}}}

	req := httptest.NewRequest(http.MethodGet,
		"/api/v1/slots?startDate=2024-06-15&endDate=2024-06-16&courseId="+courseID.String(), nil)
	rec := httptest.NewRecorder()
	NewHandler(svc, logger.NewNop()).Handle(rec, req)

	require.Equal(t, http.StatusOK, rec.Code)
	var body SlotsResponse
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &body))
	require.Len(t, body.Slots, 1)
	assert.Equal(t, 1, body.Slots[0].AvailablePax)
	assert.False(t, body.Slots[0].IsFull)
	assert.Equal(t, "10:00", body.Slots[0].Time)
	require.NotNil(t, svc.filter.CourseID)
	assert.Equal(t, courseID, *svc.filter.CourseID)
}

func TestHandle_BadQuery(t *testing.T) {
	for _, query := range []string{
		"",
		"?startDate=2024-06-15",
		"?startDate=15.06.2024&endDate=2024-06-16",
		"?startDate=2024-06-15&endDate=2024-06-16&courseId=abc",
		"?startDate=2024-06-15&endDate=2024-06-16&status=cancelled",
	} {
		req := httptest.NewRequest(http.MethodGet, "/api/v1/slots"+query, nil)
		rec := httptest.NewRecorder()
		NewHandler(&stubService{}, logger.NewNop()).Handle(rec, req)
		assert.Equal(t, http.StatusBadRequest, rec.Code, query)
	}
}

func TestHandle_ServiceErrors(t *testing.T) {
	req := httptest.NewRequest(http.MethodGet, "/api/v1/slots?startDate=2024-06-16&endDate=2024-06-15", nil)
	rec := httptest.NewRecorder()
	NewHandler(&stubService{err: slots.ErrInvalidInput}, logger.NewNop()).Handle(rec, req)
	assert.Equal(t, http.StatusBadRequest, rec.Code)

	req = httptest.NewRequest(http.MethodGet, "/api/v1/slots?startDate=2024-06-15&endDate=2024-06-16", nil)
	rec = httptest.NewRecorder()
	NewHandler(&stubService{err: slots.ErrInternal}, logger.NewNop()).Handle(rec, req)
	assert.Equal(t, http.StatusInternalServerError, rec.Code)
}
