package forms

import (
	"errors"
	"fmt"
	"net/url"
	"strings"
	"time"

	"github.com/gorilla/schema"
)

// ErrInvalidDate is returned when a serialized date cannot be parsed.
var ErrInvalidDate = errors.New("forms: invalid date")

// isoLayout matches the millisecond UTC instants browsers emit for dates.
const isoLayout = "2006-01-02T15:04:05.000Z07:00"

type bookingForm struct {
	Service       string `schema:"service"`
	Date          string `schema:"date"`
	Time          string `schema:"time"`
	Name          string `schema:"name"`
	Email         string `schema:"email,omitempty"`
	Phone         string `schema:"phone"`
	PaymentOption string `schema:"paymentOption"`
	Notes         string `schema:"notes,omitempty"`
}

type contactForm struct {
	Name    string `schema:"name"`
	Email   string `schema:"email"`
	Phone   string `schema:"phone,omitempty"`
	Message string `schema:"message"`
}

var (
	decoder = newDecoder()
	encoder = schema.NewEncoder()
)

func newDecoder() *schema.Decoder {
	d := schema.NewDecoder()
	d.IgnoreUnknownKeys(true)
	return d
}

// DecodeBooking converts a form payload into a typed draft. A non-empty date
// that does not parse yields ErrInvalidDate before any rule is checked.
func (s *Schema) DecodeBooking(values url.Values) (BookingDraft, error) {
	var f bookingForm
	if err := decoder.Decode(&f, values); err != nil {
		return BookingDraft{}, fmt.Errorf("forms: decode booking: %w", err)
	}
	d := BookingDraft{
		Service:       strings.TrimSpace(f.Service),
		Time:          strings.TrimSpace(f.Time),
		Name:          strings.TrimSpace(f.Name),
		Email:         strings.TrimSpace(f.Email),
		Phone:         strings.TrimSpace(f.Phone),
		PaymentOption: strings.TrimSpace(f.PaymentOption),
		Notes:         strings.TrimSpace(f.Notes),
	}
	if raw := strings.TrimSpace(f.Date); raw != "" {
		date, err := s.ParseDate(raw)
		if err != nil {
			return d, err
		}
		d.Date = date
	}
	return d, nil
}

// ParseDate accepts an RFC 3339 instant or a bare YYYY-MM-DD date and returns
// the calendar date in the clinic timezone.
func (s *Schema) ParseDate(raw string) (time.Time, error) {
	if t, err := time.Parse(time.RFC3339Nano, raw); err == nil {
		return s.CalendarDate(t), nil
	}
	if t, err := time.ParseInLocation(time.DateOnly, raw, s.loc); err == nil {
		return t, nil
	}
	return time.Time{}, fmt.Errorf("%w: %q", ErrInvalidDate, raw)
}

// EncodeBooking serializes a draft for submission. The date is sent as the
// UTC instant of its local midnight.
func EncodeBooking(d BookingDraft) url.Values {
	f := bookingForm{
		Service:       d.Service,
		Time:          d.Time,
		Name:          d.Name,
		Email:         d.Email,
		Phone:         d.Phone,
		PaymentOption: d.PaymentOption,
		Notes:         d.Notes,
	}
	if d.HasDate() {
		f.Date = d.Date.UTC().Format(isoLayout)
	}
	values := url.Values{}
	// Encoding plain string fields cannot fail.
	_ = encoder.Encode(f, values)
	return values
}

// DecodeContact converts a form payload into a contact message.
func DecodeContact(values url.Values) (ContactMessage, error) {
	var f contactForm
	if err := decoder.Decode(&f, values); err != nil {
		return ContactMessage{}, fmt.Errorf("forms: decode contact: %w", err)
	}
	return ContactMessage{
		Name:    strings.TrimSpace(f.Name),
		Email:   strings.TrimSpace(f.Email),
		Phone:   strings.TrimSpace(f.Phone),
		Message: strings.TrimSpace(f.Message),
	}, nil
}

// EncodeContact serializes a contact message.
func EncodeContact(m ContactMessage) url.Values {
	values := url.Values{}
	_ = encoder.Encode(contactForm{
		Name:    m.Name,
		Email:   m.Email,
		Phone:   m.Phone,
		Message: m.Message,
	}, values)
	return values
}
