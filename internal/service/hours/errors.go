package hours

import "errors"

var (
	// ErrOverrideNotFound возвращается, когда переопределения для даты нет
	ErrOverrideNotFound = errors.New("business hours override not found")

	// ErrInvalidInput возвращается при некорректных входных данных
	ErrInvalidInput = errors.New("invalid input data")

	// ErrInvalidTimeRange возвращается, если время закрытия не позже открытия
	ErrInvalidTimeRange = errors.New("closing time must be after opening time")

	// ErrInvalidCapacity возвращается при вместимости вне допустимого диапазона
	ErrInvalidCapacity = errors.New("invalid simultaneous bookings")

	// ErrInternal возвращается при внутренних ошибках сервиса
	ErrInternal = errors.New("service: internal error")
)
