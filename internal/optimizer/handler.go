package optimizer

import (
	"encoding/json"
	"errors"
	"io"
	"net/http"
	"strings"

	"github.com/Kariaki58/favfareclinic/pkg/logging"
)

const maxBodyBytes = 256 << 10

// Response is the wire envelope of the optimizer endpoint.
type Response struct {
	Success bool    `json:"success"`
	Data    *Output `json:"data,omitempty"`
	Error   string  `json:"error,omitempty"`
}

// Handler exposes the optimizer over HTTP.
type Handler struct {
	service *Service
	logger  *logging.Logger
}

// NewHandler creates an optimizer handler.
func NewHandler(service *Service, logger *logging.Logger) *Handler {
	if logger == nil {
		logger = logging.Default()
	}
	return &Handler{service: service, logger: logger}
}

// HeroCopy handles POST /api/optimizer/hero-copy. An empty body runs the
// sample analytics.
func (h *Handler) HeroCopy(w http.ResponseWriter, r *http.Request) {
	if !h.service.Enabled() {
		writeJSON(w, http.StatusServiceUnavailable, Response{Error: "The optimizer is not available right now."})
		return
	}

	body, err := io.ReadAll(http.MaxBytesReader(w, r.Body, maxBodyBytes))
	if err != nil {
		writeJSON(w, http.StatusBadRequest, Response{Error: "Invalid request body"})
		return
	}

	in := MockInput()
	if strings.TrimSpace(string(body)) != "" {
		in = Input{}
		if err := json.Unmarshal(body, &in); err != nil {
			writeJSON(w, http.StatusBadRequest, Response{Error: "Invalid request body"})
			return
		}
	}

	out, err := h.service.Optimize(r.Context(), in)
	switch {
	case err == nil:
		writeJSON(w, http.StatusOK, Response{Success: true, Data: &out})
	case errors.Is(err, ErrInvalidInput):
		writeJSON(w, http.StatusBadRequest, Response{Error: "Provide at least one headline and one subheadline variation."})
	default:
		h.logger.Error("hero copy optimization failed", "error", err)
		writeJSON(w, http.StatusBadGateway, Response{Error: "Failed to optimize copy. Please try again."})
	}
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(v)
}
