package domain

import (
	"time"

	"github.com/autoshop/garage-booking/pkg/types"
)

// BusinessHoursOverride is a per-date record that replaces the weekly defaults
type BusinessHoursOverride struct {
	ID                   int64
	Date                 time.Time
	IsClosed             bool
	OpeningTime          *types.TimeString // nil when closed
	ClosingTime          *types.TimeString // nil when closed
	SimultaneousBookings int
	Note                 *string
	CreatedAt            time.Time
	UpdatedAt            time.Time
}

// ShopDefaults are the hours used for dates without an override
type ShopDefaults struct {
	OpeningTime          types.TimeString
	ClosingTime          types.TimeString
	ClosedWeekdays       []time.Weekday
	SimultaneousBookings int
}

// DefaultShopDefaults closed on Sunday, otherwise 07:00-19:00 with two bays
func DefaultShopDefaults() ShopDefaults {
	return ShopDefaults{
		OpeningTime:          DefaultOpeningTime,
		ClosingTime:          DefaultClosingTime,
		ClosedWeekdays:       []time.Weekday{time.Sunday},
		SimultaneousBookings: DefaultSimultaneousBookings,
	}
}

// IsClosedOn reports whether the weekday is a regular day off
func (d ShopDefaults) IsClosedOn(weekday time.Weekday) bool {
	for _, closed := range d.ClosedWeekdays {
		if closed == weekday {
			return true
		}
	}
	return false
}

// BusinessHours are the effective hours for a single date
type BusinessHours struct {
	IsClosed             bool
	OpeningTime          types.TimeString
	ClosingTime          types.TimeString
	SimultaneousBookings int
	IsDefault            bool // true when no override exists for the date
}

// ResolveBusinessHours returns the override when present, otherwise the defaults for the weekday
func ResolveBusinessHours(date time.Time, override *BusinessHoursOverride, defaults ShopDefaults) BusinessHours {
	if override != nil {
		hours := BusinessHours{
			IsClosed:             override.IsClosed,
			SimultaneousBookings: override.SimultaneousBookings,
		}
		if override.OpeningTime != nil {
			hours.OpeningTime = *override.OpeningTime
		}
		if override.ClosingTime != nil {
			hours.ClosingTime = *override.ClosingTime
		}
		if hours.SimultaneousBookings == 0 {
			hours.SimultaneousBookings = DefaultSimultaneousBookings
		}
		return hours
	}

	return BusinessHours{
		IsClosed:             defaults.IsClosedOn(date.Weekday()),
		OpeningTime:          defaults.OpeningTime,
		ClosingTime:          defaults.ClosingTime,
		SimultaneousBookings: defaults.SimultaneousBookings,
		IsDefault:            true,
	}
}
