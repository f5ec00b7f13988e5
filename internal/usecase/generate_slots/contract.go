package generate_slots

import (
	"context"

	"github.com/google/uuid"

	"github.com/m04kA/SMC-HeliTourService/internal/domain"
	"github.com/m04kA/SMC-HeliTourService/internal/integrations/opsnotifier"
)

// SlotRepository интерфейс репозитория слотов
type SlotRepository interface {
	List(ctx context.Context, filter domain.SlotsFilter) ([]*domain.Slot, error)
	CreateBatch(ctx context.Context, slots []*domain.Slot) (int64, error)
}

// CourseRepository интерфейс репозитория курсов
type CourseRepository interface {
	GetByID(ctx context.Context, id uuid.UUID) (*domain.Course, error)
}

// Notifier оповещения операторов
type Notifier interface {
	NotifyGenerationIssues(ctx context.Context, alert opsnotifier.GenerationAlert) error
}

// Metrics счетчики генерации
type Metrics interface {
	AddSlotsGenerated(outcome string, count int)
}

// Logger интерфейс для логирования
type Logger interface {
	Info(format string, v ...interface{})
	Warn(format string, v ...interface{})
	Error(format string, v ...interface{})
}
