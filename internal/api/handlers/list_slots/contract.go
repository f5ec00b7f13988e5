package list_slots

import (
	"context"

	"github.com/m04kA/SMC-HeliTourService/internal/domain"
)

type SlotService interface {
	List(ctx context.Context, filter domain.SlotsFilter) ([]*domain.Slot, error)
}

type Logger interface {
	Info(format string, v ...interface{})
	Warn(format string, v ...interface{})
	Error(format string, v ...interface{})
}
