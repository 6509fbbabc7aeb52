package availability

import (
	"time"

	"github.com/autoshop/garage-booking/internal/domain"
	"github.com/autoshop/garage-booking/pkg/types"
)

// Сообщения, которые видит клиент
const (
	MessagePassed        = "This time has passed"
	MessageBeyondClosing = "Service would extend beyond closing time"
	MessageFullyBooked   = "Fully booked during service period"
	messageAvailableFmt  = "Available (service ends at %s)"
)

// BookedAppointment занятый интервал: время начала и длительность
type BookedAppointment struct {
	StartTime       types.TimeString
	DurationMinutes int
}

// Input входные данные расчета на одну дату
type Input struct {
	Date            time.Time // календарный день (время суток игнорируется)
	DurationMinutes int       // длительность запрашиваемой услуги
	Booked          []BookedAppointment
	Hours           domain.BusinessHours
	Now             time.Time // текущий момент в часовом поясе мастерской
}
