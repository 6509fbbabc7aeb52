package availability

import "errors"

var (
	// ErrInvalidDuration возвращается, если длительность услуги не положительная
	ErrInvalidDuration = errors.New("availability: service duration must be positive")

	// ErrInvalidCapacity возвращается, если вместимость слота меньше 1
	ErrInvalidCapacity = errors.New("availability: simultaneous bookings must be at least 1")

	// ErrInvalidHours возвращается при отсутствующих или некорректных часах работы
	ErrInvalidHours = errors.New("availability: invalid business hours")

	// ErrInvalidDate возвращается, если дата не задана
	ErrInvalidDate = errors.New("availability: date is required")

	// ErrInvalidBooking возвращается для записи с некорректным временем или длительностью
	ErrInvalidBooking = errors.New("availability: invalid booked appointment")
)
