package domain

import (
	"fmt"

	"github.com/autoshop/garage-booking/pkg/types"
)

// SlotStatus is the availability verdict for a candidate start time
type SlotStatus string

const (
	SlotAvailable SlotStatus = "available"
	// SlotLimited is part of the public vocabulary; the engine does not emit it.
	SlotLimited     SlotStatus = "limited"
	SlotUnavailable SlotStatus = "unavailable"
)

// Slot is one candidate half-hour start time for a service
type Slot struct {
	StartTime types.TimeString
	EndTime   types.TimeString // empty when the service would run past midnight
	Display   string           // "7:00 AM to 8:30 AM"
	Status    SlotStatus
	Message   string
}

// IsAvailable returns true if the slot can be booked
func (s *Slot) IsAvailable() bool {
	return s.Status == SlotAvailable
}

// DisplayRange renders a service span on a 12-hour clock: "7:00 AM to 8:30 AM"
func DisplayRange(start types.TimeString, durationMinutes int) string {
	startMinutes := start.Minutes()
	return fmt.Sprintf("%s to %s",
		types.FormatMinutes12h(startMinutes),
		types.FormatMinutes12h(startMinutes+durationMinutes))
}
