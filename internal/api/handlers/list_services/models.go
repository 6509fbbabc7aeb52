package list_services

import "github.com/autoshop/garage-booking/internal/domain"

// ServiceResponse HTTP response model
type ServiceResponse struct {
	Key             string `json:"key"`
	Name            string `json:"name"`
	DurationMinutes int    `json:"durationMinutes"`
}

// ServicesResponse HTTP response model
type ServicesResponse struct {
	Services []ServiceResponse `json:"services"`
}

// FromDomainServices конвертирует каталог в HTTP response
func FromDomainServices(services []domain.Service) *ServicesResponse {
	resp := &ServicesResponse{Services: make([]ServiceResponse, len(services))}
	for i, s := range services {
		resp.Services[i] = ServiceResponse{
			Key:             s.Key,
			Name:            s.Name,
			DurationMinutes: s.DurationMinutes,
		}
	}
	return resp
}
