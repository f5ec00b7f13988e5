package paymentgateway

import "errors"

var (
	// ErrInternal возвращается при внутренних ошибках клиента
	ErrInternal = errors.New("paymentgateway client: internal error")

	// ErrUnavailable возвращается при сетевых ошибках и 5xx от шлюза, запрос можно повторить
	ErrUnavailable = errors.New("paymentgateway client: gateway unavailable")

	// ErrRefundRejected возвращается, когда шлюз отклонил возврат (4xx)
	ErrRefundRejected = errors.New("paymentgateway client: refund rejected")

	// ErrInvalidResponse возвращается при некорректном ответе от шлюза
	ErrInvalidResponse = errors.New("paymentgateway client: invalid response")
)
