package booking

import (
	"encoding/json"
	"net/http"

	"github.com/Kariaki58/favfareclinic/internal/forms"
	"github.com/Kariaki58/favfareclinic/pkg/logging"
)

// MaxFormBytes caps the size of a submitted form.
const MaxFormBytes = 64 << 10

// Handler exposes the booking service over HTTP.
type Handler struct {
	service *Service
	logger  *logging.Logger
}

// NewHandler creates a booking handler.
func NewHandler(service *Service, logger *logging.Logger) *Handler {
	if logger == nil {
		logger = logging.Default()
	}
	return &Handler{service: service, logger: logger}
}

// Create handles POST /api/bookings.
func (h *Handler) Create(w http.ResponseWriter, r *http.Request) {
	r.Body = http.MaxBytesReader(w, r.Body, MaxFormBytes)
	if err := r.ParseForm(); err != nil {
		h.logger.Warn("failed to parse booking form", "error", err)
		writeResult(w, forms.Invalid(ValidationMessage, nil))
		return
	}

	result, err := h.service.Submit(r.Context(), r.PostForm)
	if err != nil {
		h.logger.Error("booking submit failed", "error", err)
	}
	writeResult(w, result)
}

func writeResult(w http.ResponseWriter, result forms.Result) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(result.HTTPStatus())
	_ = json.NewEncoder(w).Encode(result)
}
