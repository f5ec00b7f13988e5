package delete_reservation

import "errors"

var (
	// ErrInvalidInput возвращается при некорректных входных данных
	ErrInvalidInput = errors.New("delete_reservation: invalid input data")

	// ErrReservationNotFound возвращается, когда бронирование не найдено
	ErrReservationNotFound = errors.New("delete_reservation: reservation not found")

	// ErrCannotDelete возвращается для завершенных бронирований
	ErrCannotDelete = errors.New("delete_reservation: completed reservation cannot be deleted")

	// ErrInternal возвращается при внутренних ошибках usecase
	ErrInternal = errors.New("delete_reservation: internal error")
)
