package cancellation

import "errors"

var (
	// ErrCannotCancel возвращается, когда бронирование нельзя отменить:
	// статус не pending/confirmed или вылет уже прошел
	ErrCannotCancel = errors.New("cancellation: reservation cannot be cancelled")

	// ErrInternal возвращается при внутренних ошибках сервиса
	ErrInternal = errors.New("cancellation: internal error")
)
