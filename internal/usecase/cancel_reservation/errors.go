package cancel_reservation

import "errors"

var (
	// ErrInvalidInput возвращается при некорректных входных данных
	ErrInvalidInput = errors.New("cancel_reservation: invalid input data")

	// ErrReservationNotFound возвращается, когда бронирование не найдено
	ErrReservationNotFound = errors.New("cancel_reservation: reservation not found")

	// ErrAccessDenied возвращается, когда клиент отменяет чужое бронирование
	ErrAccessDenied = errors.New("cancel_reservation: access denied")

	// ErrCannotCancel возвращается, когда бронирование уже отменено, завершено или дата полета прошла
	ErrCannotCancel = errors.New("cancel_reservation: reservation cannot be cancelled")

	// ErrInternal возвращается при внутренних ошибках usecase
	ErrInternal = errors.New("cancel_reservation: internal error")
)
