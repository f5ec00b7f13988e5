package get_cancellation_quote

import "errors"

var (
	// ErrInvalidInput возвращается при некорректных входных данных
	ErrInvalidInput = errors.New("get_cancellation_quote: invalid input data")

	// ErrReservationNotFound возвращается, когда бронирование не найдено
	ErrReservationNotFound = errors.New("get_cancellation_quote: reservation not found")

	// ErrAccessDenied возвращается, когда клиент запрашивает чужое бронирование
	ErrAccessDenied = errors.New("get_cancellation_quote: access denied")

	// ErrInternal возвращается при внутренних ошибках usecase
	ErrInternal = errors.New("get_cancellation_quote: internal error")
)
