package get_available_slots

import (
	"time"

	"github.com/autoshop/garage-booking/internal/domain"
	getAvailableSlots "github.com/autoshop/garage-booking/internal/usecase/get_available_slots"
)

// AvailableSlotsResponse HTTP response model
type AvailableSlotsResponse struct {
	Date            string          `json:"date"`
	Service         string          `json:"service"`
	ServiceName     string          `json:"serviceName"`
	DurationMinutes int             `json:"durationMinutes"`
	Closed          bool            `json:"closed"`
	Slots           []AvailableSlot `json:"slots"`
	Message         string          `json:"message,omitempty"`
}

// AvailableSlot модель временного слота
type AvailableSlot struct {
	Time    string `json:"time"`
	EndTime string `json:"endTime,omitempty"`
	Display string `json:"display"`
	Status  string `json:"status"`
	Message string `json:"message"`
}

// FromUseCaseResponse конвертирует ответ use case в HTTP response
func FromUseCaseResponse(resp *getAvailableSlots.Response) *AvailableSlotsResponse {
	slots := make([]AvailableSlot, len(resp.Slots))
	for i, slot := range resp.Slots {
		slots[i] = AvailableSlot{
			Time:    slot.StartTime.String(),
			EndTime: slot.EndTime.String(),
			Display: slot.Display,
			Status:  string(slot.Status),
			Message: slot.Message,
		}
	}

	return &AvailableSlotsResponse{
		Date:            resp.Date.Format(domain.DateFormat),
		Service:         resp.Service,
		ServiceName:     resp.ServiceName,
		DurationMinutes: resp.DurationMinutes,
		Closed:          resp.Closed,
		Slots:           slots,
		Message:         resp.Message,
	}
}

// ToUseCaseRequest создает запрос use case из query параметров
func ToUseCaseRequest(dateStr, service string) (*getAvailableSlots.Request, error) {
	// Парсим дату
	date, err := time.Parse(domain.DateFormat, dateStr)
	if err != nil {
		return nil, err
	}

	return &getAvailableSlots.Request{
		Date:    date,
		Service: service,
	}, nil
}
