package availability

import (
	"fmt"

	"github.com/autoshop/garage-booking/internal/domain"
	"github.com/autoshop/garage-booking/pkg/types"
)

// interval занятый отрезок в минутах от полуночи, [start, end)
type interval struct {
	start int
	end   int
}

// Calculate вычисляет статус каждого получасового слота дня для услуги заданной длительности.
// Функция чистая: одинаковые входные данные дают одинаковый результат.
// При некорректных входных данных возвращается ошибка и ни одного слота.
func Calculate(in Input) ([]domain.Slot, error) {
	// 1. Проверяем входные данные
	if in.Date.IsZero() {
		return nil, ErrInvalidDate
	}
	if in.DurationMinutes <= 0 {
		return nil, fmt.Errorf("%w: got %d", ErrInvalidDuration, in.DurationMinutes)
	}

	// 2. Выходной день - пустой список
	if in.Hours.IsClosed {
		return []domain.Slot{}, nil
	}

	opening, closing, err := parseHours(in.Hours)
	if err != nil {
		return nil, err
	}
	if in.Hours.SimultaneousBookings < domain.MinSimultaneousBookings {
		return nil, fmt.Errorf("%w: got %d", ErrInvalidCapacity, in.Hours.SimultaneousBookings)
	}

	booked, err := toIntervals(in.Booked)
	if err != nil {
		return nil, err
	}

	// Начало слота берем по настенным часам мастерской, в том числе в дни перевода часов
	loc := in.Now.Location()

	// 3. Перебираем все получасовые слоты от открытия до закрытия
	slots := make([]domain.Slot, 0, (closing-opening)/domain.SlotStepMinutes+1)
	for start := opening; start < closing; start += domain.SlotStepMinutes {
		end := start + in.DurationMinutes
		startTime := toTimeString(start)

		slot := domain.Slot{
			StartTime: startTime,
			EndTime:   toTimeString(end),
			Display:   domain.DisplayRange(startTime, in.DurationMinutes),
		}

		switch {
		case startTime.OnDate(in.Date, loc).Before(in.Now):
			slot.Status = domain.SlotUnavailable
			slot.Message = MessagePassed
		case end > closing:
			slot.Status = domain.SlotUnavailable
			slot.Message = MessageBeyondClosing
		case isFullyBooked(start, end, booked, in.Hours.SimultaneousBookings):
			slot.Status = domain.SlotUnavailable
			slot.Message = MessageFullyBooked
		default:
			slot.Status = domain.SlotAvailable
			slot.Message = fmt.Sprintf(messageAvailableFmt, types.FormatMinutes12h(end))
		}

		slots = append(slots, slot)
	}

	return slots, nil
}

// FindSlot ищет слот с указанным временем начала
func FindSlot(slots []domain.Slot, start types.TimeString) (domain.Slot, bool) {
	for _, slot := range slots {
		if slot.StartTime == start {
			return slot, true
		}
	}
	return domain.Slot{}, false
}

// isFullyBooked проверяет каждый получасовой подслот услуги [start, end).
// Достаточно одного подслота, где пересечений не меньше вместимости.
func isFullyBooked(start, end int, booked []interval, capacity int) bool {
	for sub := start; sub < end; sub += domain.SlotStepMinutes {
		if countOverlapping(sub, sub+domain.SlotStepMinutes, booked) >= capacity {
			return true
		}
	}
	return false
}

// countOverlapping считает записи, пересекающиеся с [from, to).
// Граничащие интервалы пересечением не считаются.
func countOverlapping(from, to int, booked []interval) int {
	count := 0
	for _, b := range booked {
		if from < b.end && to > b.start {
			count++
		}
	}
	return count
}

func parseHours(hours domain.BusinessHours) (int, int, error) {
	if hours.OpeningTime.IsZero() || hours.ClosingTime.IsZero() {
		return 0, 0, fmt.Errorf("%w: opening and closing time are required", ErrInvalidHours)
	}
	if err := hours.OpeningTime.Validate(); err != nil {
		return 0, 0, fmt.Errorf("%w: opening time: %v", ErrInvalidHours, err)
	}
	if err := hours.ClosingTime.Validate(); err != nil {
		return 0, 0, fmt.Errorf("%w: closing time: %v", ErrInvalidHours, err)
	}

	opening, closing := hours.OpeningTime.Minutes(), hours.ClosingTime.Minutes()
	if closing <= opening {
		return 0, 0, fmt.Errorf("%w: closing %s is not after opening %s",
			ErrInvalidHours, hours.ClosingTime, hours.OpeningTime)
	}
	return opening, closing, nil
}

func toIntervals(booked []BookedAppointment) ([]interval, error) {
	result := make([]interval, 0, len(booked))
	for _, b := range booked {
		if err := b.StartTime.Validate(); err != nil {
			return nil, fmt.Errorf("%w: %v", ErrInvalidBooking, err)
		}
		if b.DurationMinutes <= 0 {
			return nil, fmt.Errorf("%w: duration %d at %s", ErrInvalidBooking, b.DurationMinutes, b.StartTime)
		}
		start := b.StartTime.Minutes()
		result = append(result, interval{start: start, end: start + b.DurationMinutes})
	}
	return result, nil
}

// toTimeString пустая строка, если время выходит за пределы суток
func toTimeString(minutes int) types.TimeString {
	ts, err := types.FromMinutes(minutes)
	if err != nil {
		return ""
	}
	return ts
}
