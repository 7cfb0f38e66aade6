package handlers

import (
	"net/http"

	"github.com/Kariaki58/favfareclinic/internal/catalog"
)

// CatalogHandler serves the static service, time slot and payment catalogs.
type CatalogHandler struct{}

// NewCatalogHandler creates a catalog handler.
func NewCatalogHandler() *CatalogHandler {
	return &CatalogHandler{}
}

type catalogResponse struct {
	Services       []catalog.Service       `json:"services"`
	TimeSlots      []string                `json:"timeSlots"`
	PaymentOptions []catalog.PaymentOption `json:"paymentOptions"`
}

// Catalog handles GET /api/catalog.
func (h *CatalogHandler) Catalog(w http.ResponseWriter, r *http.Request) {
	writeJSONStatus(w, http.StatusOK, catalogResponse{
		Services:       catalog.Services(),
		TimeSlots:      catalog.TimeSlots(),
		PaymentOptions: catalog.PaymentOptions(),
	})
}

// Services handles GET /api/services. With ?title= it returns one service.
func (h *CatalogHandler) Services(w http.ResponseWriter, r *http.Request) {
	title := r.URL.Query().Get("title")
	if title == "" {
		writeJSONStatus(w, http.StatusOK, catalog.Services())
		return
	}
	svc, ok := catalog.FindService(title)
	if !ok {
		writeError(w, http.StatusNotFound, "service not found")
		return
	}
	writeJSONStatus(w, http.StatusOK, svc)
}

// TimeSlots handles GET /api/time-slots.
func (h *CatalogHandler) TimeSlots(w http.ResponseWriter, r *http.Request) {
	writeJSONStatus(w, http.StatusOK, catalog.TimeSlots())
}
