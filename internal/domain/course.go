package domain

import "github.com/google/uuid"

// Course тур, которому принадлежат слоты (данные только для чтения)
type Course struct {
	ID       uuid.UUID
	Name     string
	Price    int64 // цена за одного пассажира, без налога
	IsActive bool
}
