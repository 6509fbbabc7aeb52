package update_business_hours

import "github.com/autoshop/garage-booking/internal/service/hours/models"

// UpdateBusinessHoursRequest HTTP request model
type UpdateBusinessHoursRequest struct {
	IsClosed             bool    `json:"isClosed"`
	OpeningTime          *string `json:"openingTime,omitempty"` // "08:00"
	ClosingTime          *string `json:"closingTime,omitempty"` // "17:00"
	SimultaneousBookings *int    `json:"simultaneousBookings,omitempty"`
	Note                 *string `json:"note,omitempty"`
}

// ToServiceRequest конвертирует HTTP запрос в модель сервиса
func (r *UpdateBusinessHoursRequest) ToServiceRequest() *models.UpsertRequest {
	return &models.UpsertRequest{
		IsClosed:             r.IsClosed,
		OpeningTime:          r.OpeningTime,
		ClosingTime:          r.ClosingTime,
		SimultaneousBookings: r.SimultaneousBookings,
		Note:                 r.Note,
	}
}
