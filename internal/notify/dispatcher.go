package notify

import (
	"context"
	"errors"
	"fmt"
	"time"

	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"

	"github.com/Kariaki58/favfareclinic/internal/forms"
	"github.com/Kariaki58/favfareclinic/internal/observability/metrics"
	"github.com/Kariaki58/favfareclinic/internal/templates"
	"github.com/Kariaki58/favfareclinic/pkg/logging"
)

var tracer = otel.Tracer("favfare.internal.notify")

// DefaultSendTimeout bounds a single outbound send when none is configured.
const DefaultSendTimeout = 10 * time.Second

// Delivery kinds, used in logs, metrics and reports.
const (
	KindBusiness = "business"
	KindCustomer = "customer"
	KindOperator = "operator_sms"
	KindContact  = "contact"
)

// ErrNoRecipient is returned when the business inbox is not configured.
var ErrNoRecipient = errors.New("notify: business inbox not configured")

// DispatcherConfig configures recipients and timeouts.
type DispatcherConfig struct {
	ClinicName    string
	BusinessInbox string
	OperatorSMSTo string
	SendTimeout   time.Duration
}

// Delivery is the result of one attempted send.
type Delivery struct {
	Kind string
	To   string
	Err  error
}

// DeliveryReport lists every send attempted for one booking.
type DeliveryReport struct {
	Deliveries []Delivery
}

// OK reports whether every attempted send succeeded.
func (r DeliveryReport) OK() bool {
	for _, d := range r.Deliveries {
		if d.Err != nil {
			return false
		}
	}
	return true
}

// Failed returns the kinds whose send failed.
func (r DeliveryReport) Failed() []string {
	var out []string
	for _, d := range r.Deliveries {
		if d.Err != nil {
			out = append(out, d.Kind)
		}
	}
	return out
}

// Find returns the delivery of the given kind, if attempted.
func (r DeliveryReport) Find(kind string) (Delivery, bool) {
	for _, d := range r.Deliveries {
		if d.Kind == kind {
			return d, true
		}
	}
	return Delivery{}, false
}

// Dispatcher sends booking and contact notifications.
type Dispatcher struct {
	email    EmailSender
	sms      SMSSender
	cfg      DispatcherConfig
	renderer templates.Renderer
	metrics  *metrics.FormMetrics
	logger   *logging.Logger
}

// NewDispatcher creates a dispatcher. sms and m may be nil.
func NewDispatcher(email EmailSender, sms SMSSender, cfg DispatcherConfig, m *metrics.FormMetrics, logger *logging.Logger) *Dispatcher {
	if logger == nil {
		logger = logging.Default()
	}
	if email == nil {
		email = NewStubEmailSender(logger)
	}
	if cfg.SendTimeout <= 0 {
		cfg.SendTimeout = DefaultSendTimeout
	}
	if cfg.ClinicName == "" {
		cfg.ClinicName = defaultFromName
	}
	return &Dispatcher{
		email:   email,
		sms:     sms,
		cfg:     cfg,
		metrics: m,
		logger:  logger,
	}
}

// NotifyBooking sends the business notification, the customer confirmation
// when the draft carries an email, and the operator SMS when configured.
// Sends are independent and failures are only reported, never returned.
func (d *Dispatcher) NotifyBooking(ctx context.Context, draft forms.BookingDraft) DeliveryReport {
	ctx, span := tracer.Start(ctx, "notify.booking")
	defer span.End()
	span.SetAttributes(attribute.String("favfare.service", draft.Service))

	data := newBookingEmailData(d.cfg.ClinicName, draft)
	var report DeliveryReport

	report.Deliveries = append(report.Deliveries, d.deliver(ctx, KindBusiness, d.cfg.BusinessInbox, func(ctx context.Context) error {
		if d.cfg.BusinessInbox == "" {
			return ErrNoRecipient
		}
		plain, html, err := renderEmail(d.renderer, "business_booking", businessBookingText, businessBookingHTML, data)
		if err != nil {
			return err
		}
		return d.email.Send(ctx, EmailMessage{
			To:          d.cfg.BusinessInbox,
			ReplyTo:     draft.Email,
			ReplyToName: draft.Name,
			Subject:     fmt.Sprintf("New booking: %s - %s", draft.Service, draft.Name),
			Body:        plain,
			HTML:        html,
		})
	}))

	if draft.Email != "" {
		report.Deliveries = append(report.Deliveries, d.deliver(ctx, KindCustomer, draft.Email, func(ctx context.Context) error {
			plain, html, err := renderEmail(d.renderer, "customer_confirmation", customerConfirmationText, customerConfirmationHTML, data)
			if err != nil {
				return err
			}
			return d.email.Send(ctx, EmailMessage{
				To:      draft.Email,
				ToName:  draft.Name,
				Subject: fmt.Sprintf("Your %s appointment request", d.cfg.ClinicName),
				Body:    plain,
				HTML:    html,
			})
		}))
	}

	if d.sms != nil && d.cfg.OperatorSMSTo != "" {
		report.Deliveries = append(report.Deliveries, d.deliver(ctx, KindOperator, d.cfg.OperatorSMSTo, func(ctx context.Context) error {
			body, err := d.renderer.Render("operator_sms", operatorSMSText, data)
			if err != nil {
				return fmt.Errorf("notify: render operator_sms: %w", err)
			}
			return d.sms.SendSMS(ctx, d.cfg.OperatorSMSTo, body)
		}))
	}

	if failed := report.Failed(); len(failed) > 0 {
		span.SetAttributes(attribute.StringSlice("favfare.failed_deliveries", failed))
	}
	return report
}

// NotifyContact sends one business email with reply-to set to the submitter.
func (d *Dispatcher) NotifyContact(ctx context.Context, msg forms.ContactMessage) error {
	ctx, span := tracer.Start(ctx, "notify.contact")
	defer span.End()

	result := d.deliver(ctx, KindContact, d.cfg.BusinessInbox, func(ctx context.Context) error {
		if d.cfg.BusinessInbox == "" {
			return ErrNoRecipient
		}
		data := contactEmailData{
			ClinicName: d.cfg.ClinicName,
			Name:       msg.Name,
			Email:      msg.Email,
			Phone:      msg.Phone,
			Message:    msg.Message,
		}
		plain, html, err := renderEmail(d.renderer, "contact", contactText, contactHTML, data)
		if err != nil {
			return err
		}
		return d.email.Send(ctx, EmailMessage{
			To:          d.cfg.BusinessInbox,
			ReplyTo:     msg.Email,
			ReplyToName: msg.Name,
			Subject:     fmt.Sprintf("New contact message from %s", msg.Name),
			Body:        plain,
			HTML:        html,
		})
	})
	if result.Err != nil {
		span.RecordError(result.Err)
	}
	return result.Err
}

func (d *Dispatcher) deliver(ctx context.Context, kind, to string, send func(context.Context) error) Delivery {
	sendCtx, cancel := context.WithTimeout(ctx, d.cfg.SendTimeout)
	defer cancel()

	err := send(sendCtx)
	if err == nil && errors.Is(sendCtx.Err(), context.DeadlineExceeded) {
		err = sendCtx.Err()
	}
	if err != nil {
		if errors.Is(err, context.DeadlineExceeded) {
			err = fmt.Errorf("notify: %s send timed out after %s: %w", kind, d.cfg.SendTimeout, err)
		}
		d.logger.Error("notification delivery failed", "kind", kind, "to", to, "error", err)
	} else {
		d.logger.Info("notification delivered", "kind", kind, "to", to)
	}
	d.metrics.ObserveDelivery(kind, err == nil)
	return Delivery{Kind: kind, To: to, Err: err}
}
