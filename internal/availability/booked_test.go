package availability

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/autoshop/garage-booking/internal/domain"
)

func TestFromAppointments(t *testing.T) {
	durations := map[string]int{"oil-change": 30, "brake-service": 90}
	duration := func(service string, stored int) int {
		if d, ok := durations[service]; ok {
			return d
		}
		return stored
	}

	appointments := []*domain.Appointment{
		{PreferredTime: "08:00", Service: "brake-service", DurationMinutes: 60, Status: domain.StatusConfirmed},
		{PreferredTime: "09:00", Service: "oil-change", DurationMinutes: 30, Status: domain.StatusCancelled},
		{PreferredTime: "10:30", Service: "retired-service", DurationMinutes: 45, Status: domain.StatusPending},
		{PreferredTime: "11:00", Service: "oil-change", DurationMinutes: 30, Status: domain.StatusNoShow},
	}

	booked := FromAppointments(appointments, duration)

	assert.Equal(t, []BookedAppointment{
		{StartTime: "08:00", DurationMinutes: 90},
		{StartTime: "10:30", DurationMinutes: 45},
		{StartTime: "11:00", DurationMinutes: 30},
	}, booked)
}

func TestFromAppointments_Empty(t *testing.T) {
	booked := FromAppointments(nil, func(string, int) int { return 90 })

	assert.NotNil(t, booked)
	assert.Empty(t, booked)
}
