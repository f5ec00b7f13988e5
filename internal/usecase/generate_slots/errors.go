package generate_slots

import "errors"

var (
	// ErrInvalidInput возвращается при некорректных входных данных
	ErrInvalidInput = errors.New("generate_slots: invalid input data")

	// ErrCourseNotFound возвращается, когда курс не найден
	ErrCourseNotFound = errors.New("generate_slots: course not found")

	// ErrInternal возвращается при внутренних ошибках usecase,
	// в том числе когда не удалось вставить ни один пакет слотов
	ErrInternal = errors.New("generate_slots: internal error")
)
