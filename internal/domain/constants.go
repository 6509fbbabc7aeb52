package domain

import "github.com/autoshop/garage-booking/pkg/types"

// Default business hours
const (
	DefaultOpeningTime            types.TimeString = "07:00"
	DefaultClosingTime            types.TimeString = "19:00"
	DefaultSimultaneousBookings                    = 2
	DefaultServiceDurationMinutes                  = 90
)

// Slot grid
const (
	SlotStepMinutes = 30
)

// Business validation constants
const (
	MinSimultaneousBookings     = 1
	MaxSimultaneousBookings     = 20
	MaxNotesLength              = 500
	MaxCancellationReasonLength = 500
	MaxCustomerNameLength       = 120
	MaxOverrideNoteLength       = 255
)

// Time format constants
const (
	TimeFormat = "15:04"      // HH:MM
	DateFormat = "2006-01-02" // YYYY-MM-DD
)

// AllStatuses every status an appointment may have
var AllStatuses = []AppointmentStatus{
	StatusPending,
	StatusConfirmed,
	StatusInProgress,
	StatusCompleted,
	StatusCancelled,
	StatusNoShow,
}
