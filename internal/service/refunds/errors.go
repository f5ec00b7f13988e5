package refunds

import "errors"

var (
	// ErrReservationNotFound возвращается, когда бронирование не найдено
	ErrReservationNotFound = errors.New("refunds: reservation not found")

	// ErrNotRefundable возвращается, когда по бронированию нечего возвращать
	ErrNotRefundable = errors.New("refunds: reservation is not refundable")

	// ErrAmountExceedsRefundable возвращается, когда сумма больше доступного остатка
	ErrAmountExceedsRefundable = errors.New("refunds: amount exceeds refundable remainder")

	// ErrInvalidInput возвращается при некорректных входных данных
	ErrInvalidInput = errors.New("refunds: invalid input")

	// ErrRefundFailed возвращается, когда платежный шлюз не провел возврат.
	// Запись возврата остается в статусе failed, возврат можно повторить
	ErrRefundFailed = errors.New("refunds: payment gateway refund failed")

	// ErrInternal возвращается при внутренних ошибках сервиса
	ErrInternal = errors.New("refunds: internal error")
)
