package slots

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
	slotRepo "github.com/m04kA/SMC-HeliTourService/internal/infra/storage/slot"
	"github.com/m04kA/SMC-HeliTourService/pkg/logger"
)

type slotRepoMock struct{ mock.Mock }

func (m *slotRepoMock) GetByID(ctx context.Context, id uuid.UUID) (*domain.Slot, error) {
	args := m.Called(ctx, id)
	slot, _ := args.Get(0).(*domain.Slot)
	return slot, args.Error(1)
}

func (m *slotRepoMock) List(ctx context.Context, filter domain.SlotsFilter) ([]*domain.Slot, error) {
	args := m.Called(ctx, filter)
	slots, _ := args.Get(0).([]*domain.Slot)
	return slots, args.Error(1)
}

func (m *slotRepoMock) UpdateStatus(ctx context.Context, id uuid.UUID, from, to domain.SlotStatus, reason *string) (*domain.Slot, error) {
	args := m.Called(ctx, id, from, to, reason)
	slot, _ := args.Get(0).(*domain.Slot)
	return slot, args.Error(1)
}

func TestService_Suspend(t *testing.T) {
	repo := new(slotRepoMock)
	svc := NewService(repo, 90, logger.NewNop())
	id := uuid.New()
	reason := "typhoon warning"

	repo.On("GetByID", mock.Anything, id).Return(&domain.Slot{ID: id, Status: domain.SlotStatusOpen}, nil)
	repo.On("UpdateStatus", mock.Anything, id, domain.SlotStatusOpen, domain.SlotStatusSuspended, &reason).
		Return(&domain.Slot{ID: id, Status: domain.SlotStatusSuspended, SuspendedReason: &reason}, nil)

	slot, err := svc.Suspend(context.Background(), id, "  typhoon warning ")
	require.NoError(t, err)
	assert.Equal(t, domain.SlotStatusSuspended, slot.Status)
	repo.AssertExpectations(t)
}

func TestService_Suspend_RequiresReason(t *testing.T) {
	repo := new(slotRepoMock)
	svc := NewService(repo, 90, logger.NewNop())

	_, err := svc.Suspend(context.Background(), uuid.New(), "   ")
	assert.ErrorIs(t, err, ErrInvalidInput)
	repo.AssertNotCalled(t, "GetByID", mock.Anything, mock.Anything)
}

func TestService_StatusMachine(t *testing.T) {
	tests := []struct {
		name    string
		from    domain.SlotStatus
		action  func(svc *Service, id uuid.UUID) (*domain.Slot, error)
		wantErr error
	}{
		{
			name:   "close open slot",
			from:   domain.SlotStatusOpen,
			action: func(svc *Service, id uuid.UUID) (*domain.Slot, error) { return svc.Close(context.Background(), id) },
		},
		{
			name:   "reopen closed slot",
			from:   domain.SlotStatusClosed,
			action: func(svc *Service, id uuid.UUID) (*domain.Slot, error) { return svc.Reopen(context.Background(), id) },
		},
		{
			name:    "suspend closed slot",
			from:    domain.SlotStatusClosed,
			action:  func(svc *Service, id uuid.UUID) (*domain.Slot, error) { return svc.Suspend(context.Background(), id, "rain") },
			wantErr: ErrInvalidTransition,
		},
		{
			name:    "close suspended slot",
			from:    domain.SlotStatusSuspended,
			action:  func(svc *Service, id uuid.UUID) (*domain.Slot, error) { return svc.Close(context.Background(), id) },
			wantErr: ErrInvalidTransition,
		},
		{
			name:    "reopen suspended slot",
			from:    domain.SlotStatusSuspended,
			action:  func(svc *Service, id uuid.UUID) (*domain.Slot, error) { return svc.Reopen(context.Background(), id) },
			wantErr: ErrInvalidTransition,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			repo := new(slotRepoMock)
			svc := NewService(repo, 90, logger.NewNop())
			id := uuid.New()

			repo.On("GetByID", mock.Anything, id).Return(&domain.Slot{ID: id, Status: tt.from}, nil)
			repo.On("UpdateStatus", mock.Anything, id, tt.from, mock.Anything, mock.Anything).
				Return(&domain.Slot{ID: id}, nil)

			_, err := tt.action(svc, id)
			if tt.wantErr != nil {
				assert.ErrorIs(t, err, tt.wantErr)
				repo.AssertNotCalled(t, "UpdateStatus", mock.Anything, mock.Anything, mock.Anything, mock.Anything, mock.Anything)
				return
			}
			assert.NoError(t, err)
		})
	}
}

func TestService_ChangeStatus_ConcurrentChange(t *testing.T) {
	repo := new(slotRepoMock)
	svc := NewService(repo, 90, logger.NewNop())
	id := uuid.New()

	repo.On("GetByID", mock.Anything, id).Return(&domain.Slot{ID: id, Status: domain.SlotStatusOpen}, nil)
	repo.On("UpdateStatus", mock.Anything, id, domain.SlotStatusOpen, domain.SlotStatusClosed, (*string)(nil)).
		Return(nil, slotRepo.ErrConditionNotMet)

	_, err := svc.Close(context.Background(), id)
	assert.ErrorIs(t, err, ErrInvalidTransition)
}

func TestService_GetByID_Errors(t *testing.T) {
	repo := new(slotRepoMock)
	svc := NewService(repo, 90, logger.NewNop())
	missing, broken := uuid.New(), uuid.New()

	repo.On("GetByID", mock.Anything, missing).Return(nil, slotRepo.ErrSlotNotFound)
	repo.On("GetByID", mock.Anything, broken).Return(nil, errors.New("db down"))

	_, err := svc.GetByID(context.Background(), missing)
	assert.ErrorIs(t, err, ErrSlotNotFound)

	_, err = svc.GetByID(context.Background(), broken)
	assert.ErrorIs(t, err, ErrInternal)
}

func TestService_List_ValidatesRange(t *testing.T) {
	repo := new(slotRepoMock)
	svc := NewService(repo, 90, logger.NewNop())
	start := time.Date(2024, 6, 15, 0, 0, 0, 0, time.UTC)

	_, err := svc.List(context.Background(), domain.SlotsFilter{StartDate: start, EndDate: start.AddDate(0, 0, -1)})
	assert.ErrorIs(t, err, ErrInvalidInput)

	_, err = svc.List(context.Background(), domain.SlotsFilter{StartDate: start, EndDate: start.AddDate(0, 0, 91)})
	assert.ErrorIs(t, err, ErrInvalidInput)

	repo.AssertNotCalled(t, "List", mock.Anything, mock.Anything)
}
