// Package forms holds the validation rules shared by the booking wizard and
// the submission handlers, plus the form-encoded wire codec for drafts.
package forms

import (
	"errors"
	"reflect"
	"strings"
	"time"

	"github.com/go-playground/validator/v10"

	"github.com/Kariaki58/favfareclinic/internal/catalog"
)

// earliestDate is the historical lower bound for any booking date.
var earliestDate = time.Date(1900, time.January, 1, 0, 0, 0, 0, time.UTC)

// Schema validates drafts and contact messages against the form rules.
// It is safe for concurrent use.
type Schema struct {
	validate *validator.Validate
	now      func() time.Time
	loc      *time.Location
}

// SchemaOption customizes a Schema.
type SchemaOption func(*Schema)

// WithClock overrides the clock used for the not-in-the-past date rule.
func WithClock(now func() time.Time) SchemaOption {
	return func(s *Schema) {
		if now != nil {
			s.now = now
		}
	}
}

// WithLocation sets the clinic timezone used to resolve calendar dates.
func WithLocation(loc *time.Location) SchemaOption {
	return func(s *Schema) {
		if loc != nil {
			s.loc = loc
		}
	}
}

// NewSchema builds the validation schema.
func NewSchema(opts ...SchemaOption) *Schema {
	s := &Schema{
		validate: validator.New(),
		now:      time.Now,
		loc:      time.UTC,
	}
	for _, opt := range opts {
		opt(s)
	}

	s.validate.RegisterTagNameFunc(func(fld reflect.StructField) string {
		name := strings.SplitN(fld.Tag.Get("json"), ",", 2)[0]
		if name == "-" {
			return ""
		}
		return name
	})
	// Registration only fails for empty tags or nil funcs.
	_ = s.validate.RegisterValidation("catalogservice", func(fl validator.FieldLevel) bool {
		return catalog.HasService(fl.Field().String())
	})
	_ = s.validate.RegisterValidation("timeslot", func(fl validator.FieldLevel) bool {
		return catalog.IsTimeSlot(fl.Field().String())
	})
	_ = s.validate.RegisterValidation("paymentoption", func(fl validator.FieldLevel) bool {
		return catalog.IsPaymentOption(fl.Field().String())
	})
	_ = s.validate.RegisterValidation("bookingdate", func(fl validator.FieldLevel) bool {
		d, ok := fl.Field().Interface().(time.Time)
		if !ok {
			return false
		}
		return s.dateAllowed(d)
	})
	return s
}

// Location returns the clinic timezone.
func (s *Schema) Location() *time.Location {
	return s.loc
}

// Today returns midnight of the current day in the clinic timezone.
func (s *Schema) Today() time.Time {
	return s.CalendarDate(s.now())
}

// CalendarDate truncates t to midnight of its day in the clinic timezone.
func (s *Schema) CalendarDate(t time.Time) time.Time {
	local := t.In(s.loc)
	return time.Date(local.Year(), local.Month(), local.Day(), 0, 0, 0, 0, s.loc)
}

func (s *Schema) dateAllowed(d time.Time) bool {
	day := s.CalendarDate(d)
	if day.Before(earliestDate) {
		return false
	}
	return !day.Before(s.Today())
}

// ValidateBooking checks the draft. When fields are given only errors for
// those fields are returned, which is how wizard steps gate advancement.
func (s *Schema) ValidateBooking(d BookingDraft, fields ...string) FieldErrors {
	errs := s.collect(d, bookingMessages)
	if len(fields) > 0 {
		errs = errs.Only(fields...)
	}
	return errs
}

// ValidateContact checks a contact message.
func (s *Schema) ValidateContact(m ContactMessage) FieldErrors {
	return s.collect(m, contactMessages)
}

func (s *Schema) collect(v any, table map[string]map[string]string) FieldErrors {
	out := FieldErrors{}
	err := s.validate.Struct(v)
	if err == nil {
		return out
	}
	var verrs validator.ValidationErrors
	if !errors.As(err, &verrs) {
		out.Add("_form", GenericFailureMessage)
		return out
	}
	for _, fe := range verrs {
		out.Add(fe.Field(), lookupMessage(table, fe.Field(), fe.Tag()))
	}
	return out
}
