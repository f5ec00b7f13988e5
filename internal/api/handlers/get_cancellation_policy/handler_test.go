package get_cancellation_policy

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/m04kA/SMC-HeliTourService/internal/domain"
	"github.com/m04kA/SMC-HeliTourService/pkg/logger"
)

type stubService struct {
	tiers []domain.CancellationPolicyTier
	err   error
}

func (s *stubService) ListPolicy(_ context.Context) ([]domain.CancellationPolicyTier, error) {
	return s.tiers, s.err
}

func TestHandle_OK(t *testing.T) {
	svc := &stubService{tiers: []domain.CancellationPolicyTier{
		{DaysBefore: 7, FeePercentage: 30, DisplayOrder: 1},
		{DaysBefore: 1, FeePercentage: 100, DisplayOrder: 2},
	}}

	rec := httptest.NewRecorder()
	NewHandler(svc, logger.NewNop()).Handle(rec, httptest.NewRequest(http.MethodGet, "/api/v1/cancellation-policy", nil))

	require.Equal(t, http.StatusOK, rec.Code)
	var body PolicyResponse
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &body))
	require.Len(t, body.Tiers, 2)
	assert.Equal(t, 30, body.Tiers[0].FeePercentage)
	assert.Equal(t, 1, body.Tiers[1].DaysBefore)
}

func TestHandle_EmptyPolicy(t *testing.T) {
	rec := httptest.NewRecorder()
	NewHandler(&stubService{}, logger.NewNop()).Handle(rec, httptest.NewRequest(http.MethodGet, "/api/v1/cancellation-policy", nil))

	require.Equal(t, http.StatusOK, rec.Code)
	assert.JSONEq(t, `{"tiers":[]}`, rec.Body.String())
}

func TestHandle_Error(t *testing.T) {
	rec := httptest.NewRecorder()
	NewHandler(&stubService{err: errors.New("db down")}, logger.NewNop()).
		Handle(rec, httptest.NewRequest(http.MethodGet, "/api/v1/cancellation-policy", nil))

	assert.Equal(t, http.StatusInternalServerError, rec.Code)
}
