package capacity

import (
	"errors"
	"fmt"
)

var (
	// ErrSlotNotFound возвращается, когда слот не найден
	ErrSlotNotFound = errors.New("capacity: slot not found")

	// ErrSlotUnavailable возвращается, когда слот не открыт для продаж
	ErrSlotUnavailable = errors.New("capacity: slot is not open")

	// ErrInsufficientCapacity возвращается, когда мест не хватает
	ErrInsufficientCapacity = errors.New("capacity: insufficient capacity")

	// ErrInvalidPax возвращается при pax <= 0
	ErrInvalidPax = errors.New("capacity: pax must be positive")

	// ErrInternal возвращается при внутренних ошибках сервиса
	ErrInternal = errors.New("capacity: internal error")
)

// InsufficientCapacityError сообщает точное число оставшихся мест
type InsufficientCapacityError struct {
	Requested int
	Available int
}

func (e *InsufficientCapacityError) Error() string {
	return fmt.Sprintf("Only %d spots available", e.Available)
}

func (e *InsufficientCapacityError) Unwrap() error {
	return ErrInsufficientCapacity
}
