package domain

import (
	"time"

	"github.com/google/uuid"

	"github.com/m04kA/SMC-HeliTourService/pkg/types"
)

// SlotStatus статус слота
type SlotStatus string

const (
	SlotStatusOpen      SlotStatus = "open"      // продажи открыты
	SlotStatusClosed    SlotStatus = "closed"    // продажи остановлены, можно открыть снова
	SlotStatusSuspended SlotStatus = "suspended" // полет отменен оператором, причина обязательна
)

// IsValid returns true if the status is known
func (s SlotStatus) IsValid() bool {
	switch s {
	case SlotStatusOpen, SlotStatusClosed, SlotStatusSuspended:
		return true
	}
	return false
}

// Slot represents a sellable (date, time) capacity unit of a course
type Slot struct {
	ID              uuid.UUID
	CourseID        *uuid.UUID // NULL = курс еще не назначен
	Date            time.Time
	Time            types.TimeString
	MaxPax          int
	CurrentPax      int
	Status          SlotStatus
	SuspendedReason *string

	CreatedAt time.Time
	UpdatedAt time.Time
}

// AvailablePax returns the number of seats that can still be booked
func (s *Slot) AvailablePax() int {
	if s.CurrentPax >= s.MaxPax {
		return 0
	}
	return s.MaxPax - s.CurrentPax
}

// IsOpen returns true if the slot accepts bookings
func (s *Slot) IsOpen() bool {
	return s.Status == SlotStatusOpen
}

// IsFull returns true if the slot has no available seats
func (s *Slot) IsFull() bool {
	return s.AvailablePax() == 0
}

// CanTransitionTo проверяет допустимость перехода статуса:
// open -> closed, closed -> open, open -> suspended
func (s *Slot) CanTransitionTo(target SlotStatus) bool {
	switch s.Status {
	case SlotStatusOpen:
		return target == SlotStatusClosed || target == SlotStatusSuspended
	case SlotStatusClosed:
		return target == SlotStatusOpen
	}
	return false
}

// Key ключ слота внутри контекста курса
func (s *Slot) Key() SlotKey {
	return NewSlotKey(s.Date, s.Time)
}

// SlotKey уникальная пара (дата, время) для генерации
type SlotKey struct {
	Date string // YYYY-MM-DD
	Time types.TimeString
}

// NewSlotKey создает ключ слота
func NewSlotKey(date time.Time, t types.TimeString) SlotKey {
	return SlotKey{Date: date.Format(DateFormat), Time: t}
}

// SlotsFilter фильтр выборки слотов по диапазону дат
type SlotsFilter struct {
	StartDate      time.Time   // Обязательный параметр
	EndDate        time.Time   // Обязательный параметр, включительно
	CourseID       *uuid.UUID  // Фильтр по курсу (опционально)
	UnassignedOnly bool        // Только слоты без курса (course_id IS NULL), CourseID игнорируется
	Status         *SlotStatus // Фильтр по статусу (опционально)
}
