package handlers

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"sort"

	"github.com/go-chi/chi/v5"
	"github.com/google/uuid"

	"github.com/Kariaki58/favfareclinic/internal/catalog"
	"github.com/Kariaki58/favfareclinic/internal/forms"
	"github.com/Kariaki58/favfareclinic/internal/observability/metrics"
	"github.com/Kariaki58/favfareclinic/internal/wizard"
	"github.com/Kariaki58/favfareclinic/pkg/logging"
)

const maxWizardBody = 32 << 10

// WizardView is the client-facing rendering of a wizard session.
type WizardView struct {
	ID              string                  `json:"id"`
	Step            string                  `json:"step"`
	StepIndex       int                     `json:"stepIndex"`
	StepTitle       string                  `json:"stepTitle"`
	StepDescription string                  `json:"stepDescription"`
	Fields          []string                `json:"fields,omitempty"`
	Draft           forms.BookingDraft      `json:"draft"`
	Selected        *catalog.Service        `json:"selectedService,omitempty"`
	Errors          forms.FieldErrors       `json:"errors,omitempty"`
	Message         string                  `json:"message,omitempty"`
	Confirmation    *wizard.Confirmation    `json:"confirmation,omitempty"`
	Pending         bool                    `json:"pending"`
	CanRetreat      bool                    `json:"canRetreat"`
	CanAdvance      bool                    `json:"canAdvance"`
	CanSubmit       bool                    `json:"canSubmit"`
	TimeSlots       []string                `json:"timeSlots,omitempty"`
	PaymentOptions  []catalog.PaymentOption `json:"paymentOptions,omitempty"`
}

// WizardHandler exposes booking wizard sessions over HTTP.
type WizardHandler struct {
	store     wizard.SessionStore
	schema    *forms.Schema
	submitter wizard.Submitter
	metrics   *metrics.FormMetrics
	logger    *logging.Logger
}

// NewWizardHandler creates a wizard handler. submitter receives final drafts.
func NewWizardHandler(store wizard.SessionStore, schema *forms.Schema, submitter wizard.Submitter, m *metrics.FormMetrics, logger *logging.Logger) *WizardHandler {
	if logger == nil {
		logger = logging.Default()
	}
	if schema == nil {
		schema = forms.NewSchema()
	}
	return &WizardHandler{store: store, schema: schema, submitter: submitter, metrics: m, logger: logger}
}

// Routes mounts the wizard endpoints.
func (h *WizardHandler) Routes(r chi.Router) {
	r.Post("/", h.Create)
	r.Route("/{sessionID}", func(r chi.Router) {
		r.Get("/", h.Get)
		r.Patch("/", h.Update)
		r.Delete("/", h.Delete)
		r.Post("/advance", h.Advance)
		r.Post("/retreat", h.Retreat)
		r.Post("/submit", h.Submit)
	})
}

// Create handles POST /api/booking-wizard.
func (h *WizardHandler) Create(w http.ResponseWriter, r *http.Request) {
	wz := wizard.New(uuid.NewString(), h.schema)
	if err := h.store.Save(r.Context(), wz.State()); err != nil {
		h.logger.Error("failed to save wizard session", "error", err)
		writeError(w, http.StatusInternalServerError, "failed to start booking")
		return
	}
	h.metrics.ObserveWizard("create", "ok")
	writeJSONStatus(w, http.StatusCreated, h.view(wz, false))
}

// Get handles GET /api/booking-wizard/{sessionID}.
func (h *WizardHandler) Get(w http.ResponseWriter, r *http.Request) {
	wz, ok := h.load(w, r)
	if !ok {
		return
	}
	pending, err := h.store.Locked(r.Context(), wz.State().ID)
	if err != nil {
		h.logger.Warn("failed to check wizard lock", "error", err, "session_id", wz.State().ID)
	}
	writeJSONStatus(w, http.StatusOK, h.view(wz, pending))
}

// Update handles PATCH /api/booking-wizard/{sessionID} with a JSON object of
// field values.
func (h *WizardHandler) Update(w http.ResponseWriter, r *http.Request) {
	var fields map[string]string
	if err := json.NewDecoder(http.MaxBytesReader(w, r.Body, maxWizardBody)).Decode(&fields); err != nil {
		writeError(w, http.StatusBadRequest, "Invalid request body")
		return
	}
	h.mutate(w, r, "update", func(wz *wizard.Wizard) (int, error) {
		keys := make([]string, 0, len(fields))
		for k := range fields {
			keys = append(keys, k)
		}
		sort.Strings(keys)
		for _, k := range keys {
			if err := wz.Set(k, fields[k]); err != nil {
				return 0, err
			}
		}
		return http.StatusOK, nil
	})
}

// Advance handles POST /api/booking-wizard/{sessionID}/advance.
func (h *WizardHandler) Advance(w http.ResponseWriter, r *http.Request) {
	h.mutate(w, r, "advance", func(wz *wizard.Wizard) (int, error) {
		errs, err := wz.Advance()
		if err != nil {
			return 0, err
		}
		if len(errs) > 0 {
			return http.StatusUnprocessableEntity, nil
		}
		return http.StatusOK, nil
	})
}

// Retreat handles POST /api/booking-wizard/{sessionID}/retreat.
func (h *WizardHandler) Retreat(w http.ResponseWriter, r *http.Request) {
	h.mutate(w, r, "retreat", func(wz *wizard.Wizard) (int, error) {
		return http.StatusOK, wz.Retreat()
	})
}

// Submit handles POST /api/booking-wizard/{sessionID}/submit.
func (h *WizardHandler) Submit(w http.ResponseWriter, r *http.Request) {
	h.mutate(w, r, "submit", func(wz *wizard.Wizard) (int, error) {
		result, err := wz.Submit(r.Context(), h.submitter)
		if err != nil {
			if errors.Is(err, wizard.ErrSubmitted) || errors.Is(err, wizard.ErrNotFinalStep) || errors.Is(err, wizard.ErrSubmitInFlight) {
				return 0, err
			}
			h.logger.Error("wizard submission failed", "error", err, "session_id", wz.State().ID)
			return http.StatusBadGateway, nil
		}
		return result.HTTPStatus(), nil
	})
}

// Delete handles DELETE /api/booking-wizard/{sessionID}.
func (h *WizardHandler) Delete(w http.ResponseWriter, r *http.Request) {
	id := chi.URLParam(r, "sessionID")
	unlock, err := h.store.Lock(r.Context(), id)
	if err != nil {
		h.writeWizardError(w, "delete", err)
		return
	}
	defer h.unlock(r, id, unlock)

	if err := h.store.Delete(r.Context(), id); err != nil {
		h.logger.Error("failed to delete wizard session", "error", err)
		writeError(w, http.StatusInternalServerError, "failed to delete session")
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

// mutate holds the session lock while it loads a session, applies fn and
// persists the result, so a mutation can never overwrite a concurrent submit.
func (h *WizardHandler) mutate(w http.ResponseWriter, r *http.Request, action string, fn func(*wizard.Wizard) (int, error)) {
	id := chi.URLParam(r, "sessionID")
	unlock, err := h.store.Lock(r.Context(), id)
	if err != nil {
		h.writeWizardError(w, action, err)
		return
	}
	defer h.unlock(r, id, unlock)

	wz, ok := h.load(w, r)
	if !ok {
		return
	}
	status, err := fn(wz)
	if err != nil {
		h.writeWizardError(w, action, err)
		return
	}
	if err := h.store.Save(r.Context(), wz.State()); err != nil {
		h.logger.Error("failed to save wizard session", "error", err, "action", action)
		writeError(w, http.StatusInternalServerError, "failed to save booking progress")
		return
	}
	result := "ok"
	if status >= http.StatusBadRequest {
		result = "rejected"
	}
	h.metrics.ObserveWizard(action, result)
	writeJSONStatus(w, status, h.view(wz, false))
}

func (h *WizardHandler) unlock(r *http.Request, id string, unlock wizard.UnlockFunc) {
	if err := unlock(context.WithoutCancel(r.Context())); err != nil {
		h.logger.Warn("failed to release wizard lock", "error", err, "session_id", id)
	}
}

func (h *WizardHandler) load(w http.ResponseWriter, r *http.Request) (*wizard.Wizard, bool) {
	state, err := h.store.Load(r.Context(), chi.URLParam(r, "sessionID"))
	if errors.Is(err, wizard.ErrSessionNotFound) {
		writeError(w, http.StatusNotFound, "booking session not found")
		return nil, false
	}
	if err != nil {
		h.logger.Error("failed to load wizard session", "error", err)
		writeError(w, http.StatusInternalServerError, "failed to load booking session")
		return nil, false
	}
	return wizard.Restore(state, h.schema), true
}

func (h *WizardHandler) writeWizardError(w http.ResponseWriter, action string, err error) {
	h.metrics.ObserveWizard(action, "error")
	switch {
	case errors.Is(err, wizard.ErrSubmitted):
		writeError(w, http.StatusConflict, "This booking has already been submitted.")
	case errors.Is(err, wizard.ErrSubmitInFlight), errors.Is(err, wizard.ErrSessionLocked):
		writeError(w, http.StatusConflict, "A submission is already in progress.")
	case errors.Is(err, wizard.ErrFinalStep), errors.Is(err, wizard.ErrNotFinalStep):
		writeError(w, http.StatusConflict, err.Error())
	case errors.Is(err, wizard.ErrUnknownField):
		writeError(w, http.StatusBadRequest, err.Error())
	default:
		h.logger.Error("wizard action failed", "error", err, "action", action)
		writeError(w, http.StatusInternalServerError, forms.GenericFailureMessage)
	}
}

// view renders a session. pending is true while another request holds the
// session, which disables every control.
func (h *WizardHandler) view(wz *wizard.Wizard, pending bool) WizardView {
	s := wz.State()
	info := s.Step.Info()
	v := WizardView{
		ID:              s.ID,
		Step:            s.Step.String(),
		StepIndex:       int(s.Step),
		StepTitle:       info.Title,
		StepDescription: info.Description,
		Fields:          s.Step.Fields(),
		Draft:           s.Draft,
		Message:         s.Message,
		Confirmation:    s.Confirmation,
		Pending:         pending,
		CanRetreat:      !pending && s.Step > wizard.StepSelectService && s.Step < wizard.StepSubmitted,
		CanAdvance:      !pending && s.Step < wizard.StepContactDetails,
		CanSubmit:       !pending && s.Step == wizard.StepContactDetails,
	}
	if len(s.Errors) > 0 {
		v.Errors = s.Errors
	}
	if svc, ok := wz.Selected(); ok {
		v.Selected = &svc
	}
	switch s.Step {
	case wizard.StepDateTime:
		v.TimeSlots = catalog.TimeSlots()
	case wizard.StepContactDetails:
		v.PaymentOptions = catalog.PaymentOptions()
	}
	return v
}
