package generate_slots

import (
	"time"

	"github.com/google/uuid"

	"github.com/m04kA/SMC-HeliTourService/pkg/types"
)

// Request модель запроса на генерацию слотов (значения как пришли от клиента)
type Request struct {
	StartDate string   // YYYY-MM-DD
	EndDate   string   // YYYY-MM-DD, включительно
	Times     []string // HH:MM
	MaxPax    *int     // по умолчанию из конфигурации
	CourseID  *string  // nil = слоты без курса
}

// Response итог генерации
type Response struct {
	Created  int      // Вставлено новых слотов
	Skipped  int      // Уже существовали (в том числе созданные параллельно)
	Warnings []string // Пакеты, которые не удалось вставить
	Message  string
}

// Config ограничения генерации
type Config struct {
	DefaultMaxPax int
	MaxRangeDays  int
	ChunkSize     int
}

// plan провалидированный запрос
type plan struct {
	startDate time.Time
	endDate   time.Time
	times     []types.TimeString
	maxPax    int
	courseID  *uuid.UUID
}
