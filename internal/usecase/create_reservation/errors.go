package create_reservation

import "errors"

var (
	// ErrInvalidInput возвращается при некорректных входных данных
	ErrInvalidInput = errors.New("create_reservation: invalid input data")

	// ErrCourseNotFound возвращается, когда курс не найден
	ErrCourseNotFound = errors.New("create_reservation: course not found")

	// ErrCourseInactive возвращается, когда курс снят с продажи
	ErrCourseInactive = errors.New("create_reservation: course is not available for booking")

	// ErrSlotNotFound возвращается, когда слот не найден
	ErrSlotNotFound = errors.New("create_reservation: slot not found")

	// ErrSlotUnavailable возвращается, когда слот закрыт или приостановлен
	ErrSlotUnavailable = errors.New("create_reservation: slot is not available")

	// ErrInsufficientCapacity возвращается, когда мест не хватает.
	// Оборачивает capacity.InsufficientCapacityError с числом свободных мест
	ErrInsufficientCapacity = errors.New("create_reservation: insufficient capacity")

	// ErrSlotCourseMismatch возвращается, когда слот принадлежит другому курсу
	ErrSlotCourseMismatch = errors.New("create_reservation: slot belongs to another course")

	// ErrInternal возвращается при внутренних ошибках usecase
	ErrInternal = errors.New("create_reservation: internal error")
)
