package availability

import "github.com/autoshop/garage-booking/internal/domain"

// DurationFunc длительность записи по ключу услуги; stored - длительность, сохраненная при записи
type DurationFunc func(service string, stored int) int

// FromAppointments переводит записи в занятые интервалы, отмененные пропускаются
func FromAppointments(appointments []*domain.Appointment, duration DurationFunc) []BookedAppointment {
	booked := make([]BookedAppointment, 0, len(appointments))
	for _, a := range appointments {
		if !a.OccupiesCapacity() {
			continue
		}
		booked = append(booked, BookedAppointment{
			StartTime:       a.PreferredTime,
			DurationMinutes: duration(a.Service, a.DurationMinutes),
		})
	}
	return booked
}
