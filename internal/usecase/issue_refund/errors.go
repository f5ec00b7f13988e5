package issue_refund

import "errors"

var (
	// ErrInvalidInput возвращается при некорректных входных данных
	ErrInvalidInput = errors.New("issue_refund: invalid input data")

	// ErrReservationNotFound возвращается, когда бронирование не найдено
	ErrReservationNotFound = errors.New("issue_refund: reservation not found")

	// ErrNotRefundable возвращается, когда бронирование не оплачено или уже возвращено полностью
	ErrNotRefundable = errors.New("issue_refund: reservation is not refundable")

	// ErrRefundFailed возвращается, когда платежный шлюз отклонил возврат (можно повторить)
	ErrRefundFailed = errors.New("issue_refund: refund failed at payment gateway")

	// ErrInternal возвращается при внутренних ошибках usecase
	ErrInternal = errors.New("issue_refund: internal error")
)
