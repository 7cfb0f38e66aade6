// Package wizard implements the three-step booking wizard: service selection,
// date and time, then contact details, ending in a terminal submitted state.
package wizard

import (
	"context"
	"errors"
	"fmt"
	"net/url"
	"sync"
	"time"

	"github.com/Kariaki58/favfareclinic/internal/catalog"
	"github.com/Kariaki58/favfareclinic/internal/forms"
)

// Step is a wizard state.
type Step int

const (
	StepSelectService Step = iota
	StepDateTime
	StepContactDetails
	StepSubmitted
)

func (s Step) String() string {
	switch s {
	case StepSelectService:
		return "select_service"
	case StepDateTime:
		return "date_time"
	case StepContactDetails:
		return "contact_details"
	case StepSubmitted:
		return "submitted"
	default:
		return fmt.Sprintf("step(%d)", int(s))
	}
}

// StepInfo is the heading shown for a step.
type StepInfo struct {
	Title       string `json:"title"`
	Description string `json:"description"`
}

var stepInfo = map[Step]StepInfo{
	StepSelectService:  {Title: "Select Service", Description: "Choose your preferred cosmetic dentistry service"},
	StepDateTime:       {Title: "Date & Time", Description: "Select your preferred appointment slot"},
	StepContactDetails: {Title: "Your Details", Description: "Provide your contact information"},
	StepSubmitted:      {Title: "Appointment Requested!", Description: "We've received your booking request and will contact you shortly to confirm your appointment."},
}

// Info returns the heading for s.
func (s Step) Info() StepInfo {
	return stepInfo[s]
}

// stepFields lists the fields each step owns and validates on advance.
var stepFields = map[Step][]string{
	StepSelectService:  {forms.FieldService},
	StepDateTime:       {forms.FieldDate, forms.FieldTime},
	StepContactDetails: {forms.FieldName, forms.FieldEmail, forms.FieldPhone, forms.FieldPaymentOption},
}

// Fields returns the fields owned by s.
func (s Step) Fields() []string {
	return append([]string(nil), stepFields[s]...)
}

// NextSteps is the guidance shown once a request is submitted.
var NextSteps = []string{
	"We'll call you within 24 hours to confirm",
	"Please keep your phone accessible",
	"Arrive 10 minutes early for your appointment",
}

// LocalValidationMessage is returned when Submit rejects the draft before
// contacting the handler.
const LocalValidationMessage = "Please check your entries."

var (
	ErrSubmitted      = errors.New("wizard: booking already submitted")
	ErrSubmitInFlight = errors.New("wizard: a submission is already in flight")
	ErrFinalStep      = errors.New("wizard: already on the final step, submit instead")
	ErrNotFinalStep   = errors.New("wizard: submit is only available on the final step")
	ErrUnknownField   = errors.New("wizard: unknown field")
)

// Submitter delivers a packaged draft to the booking handler.
type Submitter interface {
	Submit(ctx context.Context, values url.Values) (forms.Result, error)
}

// Confirmation summarizes a submitted booking.
type Confirmation struct {
	Service   string   `json:"service"`
	Date      string   `json:"date"`
	Time      string   `json:"time"`
	Name      string   `json:"name"`
	NextSteps []string `json:"nextSteps"`
}

// State is the serializable wizard snapshot kept by session stores.
type State struct {
	ID           string             `json:"id"`
	Step         Step               `json:"step"`
	Draft        forms.BookingDraft `json:"draft"`
	Errors       forms.FieldErrors  `json:"errors,omitempty"`
	Message      string             `json:"message,omitempty"`
	Pending      bool               `json:"pending"`
	Confirmation *Confirmation      `json:"confirmation,omitempty"`
	CreatedAt    time.Time          `json:"createdAt"`
	UpdatedAt    time.Time          `json:"updatedAt"`
}

// Wizard drives one booking through its steps. Methods are safe for
// concurrent use; at most one Submit runs at a time.
type Wizard struct {
	mu     sync.Mutex
	state  State
	schema *forms.Schema
	now    func() time.Time
}

// New starts a wizard at the service selection step.
func New(id string, schema *forms.Schema) *Wizard {
	w := Restore(State{ID: id}, schema)
	w.state.CreatedAt = w.now()
	w.state.UpdatedAt = w.state.CreatedAt
	return w
}

// Restore rebuilds a wizard from a stored snapshot. Pending is cleared:
// across requests a single in-flight submit is enforced by the store lock.
func Restore(state State, schema *forms.Schema) *Wizard {
	state.Pending = false
	if schema == nil {
		schema = forms.NewSchema()
	}
	if state.Errors == nil {
		state.Errors = forms.FieldErrors{}
	}
	return &Wizard{state: state, schema: schema, now: time.Now}
}

// State returns a copy of the current snapshot.
func (w *Wizard) State() State {
	w.mu.Lock()
	defer w.mu.Unlock()
	return w.snapshot()
}

func (w *Wizard) snapshot() State {
	s := w.state
	errs := make(forms.FieldErrors, len(s.Errors))
	for k, v := range s.Errors {
		errs[k] = append([]string(nil), v...)
	}
	s.Errors = errs
	if s.Confirmation != nil {
		c := *s.Confirmation
		c.NextSteps = append([]string(nil), c.NextSteps...)
		s.Confirmation = &c
	}
	return s
}

// Step returns the current step.
func (w *Wizard) Step() Step {
	w.mu.Lock()
	defer w.mu.Unlock()
	return w.state.Step
}

// Selected returns catalog details of the chosen service.
func (w *Wizard) Selected() (catalog.Service, bool) {
	w.mu.Lock()
	defer w.mu.Unlock()
	return catalog.FindService(w.state.Draft.Service)
}

// Set updates one draft field and clears its recorded errors. Date values are
// parsed immediately; an unparseable value leaves the date unset and records
// an error for it.
func (w *Wizard) Set(field, value string) error {
	w.mu.Lock()
	defer w.mu.Unlock()
	if err := w.mutable(); err != nil {
		return err
	}

	d := &w.state.Draft
	delete(w.state.Errors, field)
	switch field {
	case forms.FieldService:
		d.Service = value
	case forms.FieldDate:
		if value == "" {
			d.Date = time.Time{}
			break
		}
		date, err := w.schema.ParseDate(value)
		if err != nil {
			d.Date = time.Time{}
			w.state.Errors.Add(forms.FieldDate, forms.InvalidDateMessage)
			break
		}
		d.Date = date
	case forms.FieldTime:
		d.Time = value
	case forms.FieldName:
		d.Name = value
	case forms.FieldEmail:
		d.Email = value
	case forms.FieldPhone:
		d.Phone = value
	case forms.FieldPaymentOption:
		d.PaymentOption = value
	case forms.FieldNotes:
		d.Notes = value
	default:
		return fmt.Errorf("%w: %q", ErrUnknownField, field)
	}
	w.touch()
	return nil
}

// Advance validates the fields owned by the current step and moves forward
// when they pass. On failure the wizard stays put and the returned errors
// are recorded.
func (w *Wizard) Advance() (forms.FieldErrors, error) {
	w.mu.Lock()
	defer w.mu.Unlock()
	if err := w.mutable(); err != nil {
		return nil, err
	}
	if w.state.Step == StepContactDetails {
		return nil, ErrFinalStep
	}

	owned := stepFields[w.state.Step]
	errs := w.schema.ValidateBooking(w.state.Draft, owned...)
	for _, f := range owned {
		delete(w.state.Errors, f)
	}
	if len(errs) > 0 {
		for f, msgs := range errs {
			w.state.Errors[f] = msgs
		}
		w.touch()
		return errs, nil
	}
	w.state.Step++
	w.state.Message = ""
	w.touch()
	return nil, nil
}

// Retreat moves back one step without validating. It is a no-op on the
// first step.
func (w *Wizard) Retreat() error {
	w.mu.Lock()
	defer w.mu.Unlock()
	if err := w.mutable(); err != nil {
		return err
	}
	if w.state.Step > StepSelectService {
		w.state.Step--
		w.touch()
	}
	return nil
}

// Submit validates the whole draft and hands it to sub. On success the
// wizard becomes Submitted and the draft is discarded. On a handler failure
// it stays on the final step with the returned errors; a transport error
// leaves a generic message and is returned.
func (w *Wizard) Submit(ctx context.Context, sub Submitter) (forms.Result, error) {
	w.mu.Lock()
	if err := w.mutable(); err != nil {
		w.mu.Unlock()
		return forms.Result{}, err
	}
	if w.state.Step != StepContactDetails {
		w.mu.Unlock()
		return forms.Result{}, ErrNotFinalStep
	}
	if errs := w.schema.ValidateBooking(w.state.Draft); len(errs) > 0 {
		w.state.Errors = errs
		w.state.Message = ""
		w.touch()
		w.mu.Unlock()
		return forms.Invalid(LocalValidationMessage, errs), nil
	}
	w.state.Pending = true
	draft := w.state.Draft
	w.mu.Unlock()

	result, err := sub.Submit(ctx, forms.EncodeBooking(draft))

	w.mu.Lock()
	defer w.mu.Unlock()
	w.state.Pending = false
	defer w.touch()

	if err != nil {
		w.state.Message = forms.GenericFailureMessage
		return forms.Failed(forms.OutcomeUnknown, ""), fmt.Errorf("wizard: submit: %w", err)
	}
	if !result.OK() {
		w.state.Errors = result.Errors
		if w.state.Errors == nil {
			w.state.Errors = forms.FieldErrors{}
		}
		w.state.Message = result.Message
		return result, nil
	}

	w.state.Confirmation = &Confirmation{
		Service:   draft.Service,
		Date:      draft.Date.Format("Monday, January 2, 2006"),
		Time:      draft.Time,
		Name:      draft.Name,
		NextSteps: append([]string(nil), NextSteps...),
	}
	w.state.Step = StepSubmitted
	w.state.Draft = forms.BookingDraft{}
	w.state.Errors = forms.FieldErrors{}
	w.state.Message = ""
	return result, nil
}

// mutable rejects edits once submitted and while a submission is pending, so
// the draft sent is the draft kept on failure.
func (w *Wizard) mutable() error {
	if w.state.Step == StepSubmitted {
		return ErrSubmitted
	}
	if w.state.Pending {
		return ErrSubmitInFlight
	}
	return nil
}

func (w *Wizard) touch() {
	w.state.UpdatedAt = w.now()
}
