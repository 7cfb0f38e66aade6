// Package booking accepts appointment requests: it re-validates the submitted
// draft and dispatches notifications.
package booking

import (
	"context"
	"errors"
	"fmt"
	"net/url"

	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"

	"github.com/Kariaki58/favfareclinic/internal/forms"
	"github.com/Kariaki58/favfareclinic/internal/notify"
	"github.com/Kariaki58/favfareclinic/internal/observability/metrics"
	"github.com/Kariaki58/favfareclinic/pkg/logging"
)

var tracer = otel.Tracer("favfare.internal.booking")

// ValidationMessage summarizes a rejected booking.
const ValidationMessage = "Failed to create booking. Please check your entries."

// Notifier delivers booking notifications.
type Notifier interface {
	NotifyBooking(ctx context.Context, draft forms.BookingDraft) notify.DeliveryReport
}

// Service handles booking submissions.
type Service struct {
	schema   *forms.Schema
	notifier Notifier
	metrics  *metrics.FormMetrics
	logger   *logging.Logger
}

// NewService wires the booking service. metrics may be nil.
func NewService(schema *forms.Schema, notifier Notifier, m *metrics.FormMetrics, logger *logging.Logger) *Service {
	if schema == nil {
		schema = forms.NewSchema()
	}
	if logger == nil {
		logger = logging.Default()
	}
	return &Service{schema: schema, notifier: notifier, metrics: m, logger: logger}
}

// Submit validates a form payload and, when valid, dispatches notifications.
// A failed delivery is logged and the booking still succeeds.
func (s *Service) Submit(ctx context.Context, values url.Values) (forms.Result, error) {
	ctx, span := tracer.Start(ctx, "booking.submit")
	defer span.End()

	result, err := s.submit(ctx, values)
	span.SetAttributes(attribute.String("favfare.outcome", string(result.Outcome)))
	if err != nil {
		span.RecordError(err)
	}
	s.metrics.ObserveSubmission("booking", string(result.Outcome))
	return result, err
}

func (s *Service) submit(ctx context.Context, values url.Values) (forms.Result, error) {
	draft, err := s.schema.DecodeBooking(values)
	if errors.Is(err, forms.ErrInvalidDate) {
		errs := forms.FieldErrors{}
		errs.Add(forms.FieldDate, forms.InvalidDateMessage)
		s.logger.Info("booking rejected", "reason", "invalid date")
		return forms.Invalid(ValidationMessage, errs), nil
	}
	if err != nil {
		s.logger.Error("booking decode failed", "error", err)
		return forms.Failed(forms.OutcomeUnknown, ""), fmt.Errorf("booking: decode: %w", err)
	}

	if errs := s.schema.ValidateBooking(draft); len(errs) > 0 {
		s.logger.Info("booking rejected", "fields", errs.Fields())
		return forms.Invalid(ValidationMessage, errs), nil
	}

	if s.notifier != nil {
		report := s.notifier.NotifyBooking(ctx, draft)
		if !report.OK() {
			s.logger.Error("booking accepted with delivery failures",
				"service", draft.Service,
				"failed", report.Failed(),
			)
		}
	}

	s.logger.Info("booking accepted", "service", draft.Service, "date", draft.Date.Format("2006-01-02"), "time", draft.Time)
	return forms.Success(), nil
}
