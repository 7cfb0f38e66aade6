// Package contact handles the general enquiry form.
package contact

import (
	"context"
	"fmt"
	"net/url"

	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"

	"github.com/Kariaki58/favfareclinic/internal/forms"
	"github.com/Kariaki58/favfareclinic/internal/observability/metrics"
	"github.com/Kariaki58/favfareclinic/pkg/logging"
)

var tracer = otel.Tracer("favfare.internal.contact")

const (
	// ValidationMessage summarizes a rejected contact message.
	ValidationMessage = "Failed to send message. Please check your entries."
	// DeliveryFailureMessage is returned when the business email could not be sent.
	DeliveryFailureMessage = "We couldn't send your message right now. Please try again later."
)

// Notifier delivers contact notifications.
type Notifier interface {
	NotifyContact(ctx context.Context, msg forms.ContactMessage) error
}

// Service handles contact submissions.
type Service struct {
	schema   *forms.Schema
	notifier Notifier
	metrics  *metrics.FormMetrics
	logger   *logging.Logger
}

// NewService wires the contact service. metrics may be nil.
func NewService(schema *forms.Schema, notifier Notifier, m *metrics.FormMetrics, logger *logging.Logger) *Service {
	if schema == nil {
		schema = forms.NewSchema()
	}
	if logger == nil {
		logger = logging.Default()
	}
	return &Service{schema: schema, notifier: notifier, metrics: m, logger: logger}
}

// Submit validates and delivers a contact message. Unlike bookings, a
// delivery failure fails the submission.
func (s *Service) Submit(ctx context.Context, values url.Values) (forms.Result, error) {
	ctx, span := tracer.Start(ctx, "contact.submit")
	defer span.End()

	result, err := s.submit(ctx, values)
	span.SetAttributes(attribute.String("favfare.outcome", string(result.Outcome)))
	if err != nil {
		span.RecordError(err)
	}
	s.metrics.ObserveSubmission("contact", string(result.Outcome))
	return result, err
}

func (s *Service) submit(ctx context.Context, values url.Values) (forms.Result, error) {
	msg, err := forms.DecodeContact(values)
	if err != nil {
		return forms.Failed(forms.OutcomeUnknown, ""), fmt.Errorf("contact: decode: %w", err)
	}
	if errs := s.schema.ValidateContact(msg); len(errs) > 0 {
		s.logger.Info("contact rejected", "fields", errs.Fields())
		return forms.Invalid(ValidationMessage, errs), nil
	}
	if s.notifier == nil {
		return forms.Failed(forms.OutcomeDeliveryFailure, DeliveryFailureMessage), fmt.Errorf("contact: notifier not configured")
	}
	if err := s.notifier.NotifyContact(ctx, msg); err != nil {
		s.logger.Error("contact delivery failed", "error", err)
		return forms.Failed(forms.OutcomeDeliveryFailure, DeliveryFailureMessage), fmt.Errorf("contact: deliver: %w", err)
	}
	s.logger.Info("contact message delivered")
	return forms.Success(), nil
}
