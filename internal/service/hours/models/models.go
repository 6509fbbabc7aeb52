package models

import (
	"github.com/autoshop/garage-booking/internal/domain"
)

// UpsertRequest запрос на создание или изменение часов работы на дату
type UpsertRequest struct {
	IsClosed             bool    `json:"isClosed"`
	OpeningTime          *string `json:"openingTime,omitempty"` // "08:00"
	ClosingTime          *string `json:"closingTime,omitempty"` // "17:00"
	SimultaneousBookings *int    `json:"simultaneousBookings,omitempty"`
	Note                 *string `json:"note,omitempty"`
}

// BusinessHoursResponse часы работы на дату
type BusinessHoursResponse struct {
	Date                 string  `json:"date"`
	IsClosed             bool    `json:"isClosed"`
	OpeningTime          *string `json:"openingTime,omitempty"`
	ClosingTime          *string `json:"closingTime,omitempty"`
	SimultaneousBookings int     `json:"simultaneousBookings"`
	Note                 *string `json:"note,omitempty"`
	IsDefault            bool    `json:"isDefault"` // true, если переопределения нет
}

// BusinessHoursListResponse список переопределений за период
type BusinessHoursListResponse struct {
	Overrides []BusinessHoursResponse `json:"overrides"`
}

// FromDomainOverride конвертирует переопределение в DTO
func FromDomainOverride(o *domain.BusinessHoursOverride) *BusinessHoursResponse {
	resp := &BusinessHoursResponse{
		Date:                 o.Date.Format(domain.DateFormat),
		IsClosed:             o.IsClosed,
		SimultaneousBookings: o.SimultaneousBookings,
		Note:                 o.Note,
	}
	if o.OpeningTime != nil {
		s := o.OpeningTime.String()
		resp.OpeningTime = &s
	}
	if o.ClosingTime != nil {
		s := o.ClosingTime.String()
		resp.ClosingTime = &s
	}
	return resp
}

// FromResolvedHours конвертирует часы по умолчанию в DTO
func FromResolvedHours(date string, h domain.BusinessHours) *BusinessHoursResponse {
	resp := &BusinessHoursResponse{
		Date:                 date,
		IsClosed:             h.IsClosed,
		SimultaneousBookings: h.SimultaneousBookings,
		IsDefault:            h.IsDefault,
	}
	if !h.IsClosed {
		opening, closing := h.OpeningTime.String(), h.ClosingTime.String()
		resp.OpeningTime = &opening
		resp.ClosingTime = &closing
	}
	return resp
}
