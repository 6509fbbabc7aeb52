package get_available_slots

import (
	"time"

	"github.com/autoshop/garage-booking/internal/domain"
)

// Сообщения для клиента, когда записаться нельзя
const (
	MessageClosed      = "The shop is closed on this date. Please choose another day."
	MessageNoAvailable = "No available times on this date. Please choose another day."
)

// Request модель запроса на получение доступных слотов
type Request struct {
	Date    time.Time // Дата (без времени)
	Service string    // Ключ услуги из каталога
}

// Response модель ответа со списком слотов
type Response struct {
	Date            time.Time
	Service         string
	ServiceName     string
	DurationMinutes int
	Closed          bool
	Slots           []domain.Slot
	Message         string // Заполнено, если свободных слотов нет
}
