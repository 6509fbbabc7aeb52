package domain

import (
	"time"

	"github.com/autoshop/garage-booking/pkg/types"
)

// AppointmentStatus represents the status of an appointment
type AppointmentStatus string

const (
	StatusPending    AppointmentStatus = "pending"
	StatusConfirmed  AppointmentStatus = "confirmed"
	StatusInProgress AppointmentStatus = "in_progress"
	StatusCompleted  AppointmentStatus = "completed"
	StatusCancelled  AppointmentStatus = "cancelled"
	StatusNoShow     AppointmentStatus = "no_show"
)

// Appointment represents a customer's shop visit request
type Appointment struct {
	ID        int64
	Reference string // public confirmation code (UUID)

	CustomerName  string
	CustomerPhone string
	CustomerEmail *string

	VehicleMake  *string
	VehicleModel *string
	VehicleYear  *int
	Notes        *string

	PreferredDate   time.Time
	PreferredTime   types.TimeString
	Service         string // key into the service catalog
	DurationMinutes int    // duration resolved when the appointment was booked
	Status          AppointmentStatus

	CancellationReason *string
	CancelledAt        *time.Time

	CreatedAt time.Time
	UpdatedAt time.Time
}

// OccupiesCapacity returns true if the appointment counts against slot capacity.
// Only cancelled appointments are excluded.
func (a *Appointment) OccupiesCapacity() bool {
	return a.Status != StatusCancelled
}

// CanBeCancelled returns true if the appointment has not reached a final state
func (a *Appointment) CanBeCancelled() bool {
	return a.Status != StatusCancelled &&
		a.Status != StatusCompleted &&
		a.Status != StatusNoShow
}

// Display returns the booked span, e.g. "7:00 AM to 8:30 AM"
func (a *Appointment) Display() string {
	return DisplayRange(a.PreferredTime, a.DurationMinutes)
}

// EndTime returns the time the service finishes; empty when it runs past midnight
func (a *Appointment) EndTime() types.TimeString {
	end, err := a.PreferredTime.AddMinutes(a.DurationMinutes)
	if err != nil {
		return ""
	}
	return end
}

// IsCancelled returns true if the appointment has been cancelled
func (a *Appointment) IsCancelled() bool {
	return a.Status == StatusCancelled
}

// AppointmentsFilter filter for the admin appointment list
type AppointmentsFilter struct {
	From             *time.Time         // inclusive, optional
	To               *time.Time         // inclusive, optional
	Status           *AppointmentStatus // optional
	IncludeCancelled bool               // ignored when Status is set
}

// ParseAppointmentStatus validates a raw status string
func ParseAppointmentStatus(s string) (AppointmentStatus, bool) {
	status := AppointmentStatus(s)
	for _, known := range AllStatuses {
		if status == known {
			return status, true
		}
	}
	return "", false
}
