package list_services

import "github.com/autoshop/garage-booking/internal/domain"

type ServiceCatalog interface {
	List() []domain.Service
}
