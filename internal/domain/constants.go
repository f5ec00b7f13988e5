package domain

// Значения по умолчанию
const (
	DefaultMaxPax     = 4
	DefaultTaxPercent = 10
)

// Ограничения бизнес-валидации
const (
	MaxGenerationDays           = 90  // максимальный диапазон генерации слотов (включительно)
	GenerationChunkSize         = 100 // строк на один INSERT при генерации
	MaxSuspendReasonLength      = 500
	MaxCancellationReasonLength = 500
	MaxActorIDLength            = 64 // customer_id, cancelled_by, processed_by
)

// Time format constants
const (
	TimeFormat = "15:04"      // HH:MM
	DateFormat = "2006-01-02" // YYYY-MM-DD
)
