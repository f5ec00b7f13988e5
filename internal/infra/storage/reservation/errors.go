package reservation

import "errors"

var (
	// ErrReservationNotFound возвращается, когда бронирование не найдено
	ErrReservationNotFound = errors.New("reservation.repository: reservation not found")

	// ErrDuplicateBookingNumber возвращается при совпадении номера бронирования
	ErrDuplicateBookingNumber = errors.New("reservation.repository: duplicate booking number")

	// ErrConditionNotMet возвращается, когда условное обновление не затронуло ни одной строки
	ErrConditionNotMet = errors.New("reservation.repository: update condition not met")

	// ErrBuildQuery возвращается при ошибке построения SQL запроса
	ErrBuildQuery = errors.New("reservation.repository: failed to build query")

	// ErrExecQuery возвращается при ошибке выполнения SQL запроса
	ErrExecQuery = errors.New("reservation.repository: failed to execute query")

	// ErrScanRow возвращается при ошибке сканирования результата запроса
	ErrScanRow = errors.New("reservation.repository: failed to scan row")
)
