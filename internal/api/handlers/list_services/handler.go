package list_services

import (
	"net/http"

	"github.com/autoshop/garage-booking/internal/api/handlers"
)

type Handler struct {
	catalog ServiceCatalog
}

func NewHandler(catalog ServiceCatalog) *Handler {
	return &Handler{catalog: catalog}
}

// Handle GET /api/v1/services
func (h *Handler) Handle(w http.ResponseWriter, r *http.Request) {
	handlers.RespondJSON(w, http.StatusOK, FromDomainServices(h.catalog.List()))
}
