package get_available_slots

import "errors"

var (
	// ErrServiceNotFound возвращается для услуги, которой нет в каталоге
	ErrServiceNotFound = errors.New("service not found")

	// ErrInvalidInput возвращается при некорректных входных данных
	ErrInvalidInput = errors.New("invalid input data")

	// ErrInvalidBusinessHours возвращается, если переопределение часов работы на дату некорректно
	ErrInvalidBusinessHours = errors.New("business hours for this date are misconfigured")

	// ErrInternal возвращается при внутренних ошибках usecase
	ErrInternal = errors.New("usecase: internal error")
)
