package forms

import (
	"errors"
	"net/url"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var wat = time.FixedZone("WAT", 3600)

func fixedSchema() *Schema {
	now := time.Date(2025, time.June, 10, 9, 30, 0, 0, wat)
	return NewSchema(WithLocation(wat), WithClock(func() time.Time { return now }))
}

func validDraft() BookingDraft {
	return BookingDraft{
		Service:       "Teeth Whitening",
		Date:          time.Date(2025, time.June, 15, 0, 0, 0, 0, wat),
		Time:          "10:00 AM",
		Name:          "Ada Obi",
		Email:         "ada@example.com",
		Phone:         "08012345678",
		PaymentOption: "arrival",
	}
}

func TestValidateBooking_ValidDraft(t *testing.T) {
	errs := fixedSchema().ValidateBooking(validDraft())
	if len(errs) != 0 {
		t.Fatalf("expected no errors, got %v", errs)
	}
}

func TestValidateBooking_EmptyDraftReportsEveryRequiredField(t *testing.T) {
	errs := fixedSchema().ValidateBooking(BookingDraft{})

	assert.Equal(t, []string{"date", "name", "paymentOption", "phone", "service", "time"}, errs.Fields())
	assert.Equal(t, []string{"Please select a service"}, errs[FieldService])
	assert.Equal(t, []string{"Please select a date"}, errs[FieldDate])
	assert.Equal(t, []string{"Please select a time"}, errs[FieldTime])
	assert.Equal(t, []string{"Please select a payment option"}, errs[FieldPaymentOption])
	assert.False(t, errs.Has(FieldEmail), "email is optional")
	assert.False(t, errs.Has(FieldNotes))
}

func TestValidateBooking_PhoneLengthBoundary(t *testing.T) {
	s := fixedSchema()

	d := validDraft()
	d.Phone = "080123456"
	errs := s.ValidateBooking(d)
	require.True(t, errs.Has(FieldPhone))
	assert.Equal(t, "Please enter a valid phone number", errs[FieldPhone][0])

	d.Phone = "0801234567"
	assert.False(t, s.ValidateBooking(d).Has(FieldPhone))
}

func TestValidateBooking_NameLength(t *testing.T) {
	d := validDraft()
	d.Name = "A"
	errs := fixedSchema().ValidateBooking(d)
	assert.Equal(t, []string{"Name must be at least 2 characters"}, errs[FieldName])
}

func TestValidateBooking_CatalogMembership(t *testing.T) {
	s := fixedSchema()

	d := validDraft()
	d.Service = "Root Canal"
	d.Time = "08:00 PM"
	d.PaymentOption = "crypto"
	errs := s.ValidateBooking(d)

	assert.Equal(t, []string{"Please select a service from the list"}, errs[FieldService])
	assert.Equal(t, []string{"Please select one of the available times"}, errs[FieldTime])
	assert.True(t, errs.Has(FieldPaymentOption))
}

func TestValidateBooking_InvalidEmail(t *testing.T) {
	d := validDraft()
	d.Email = "not-an-email"
	errs := fixedSchema().ValidateBooking(d)
	assert.Equal(t, []string{"Please enter a valid email"}, errs[FieldEmail])
}

func TestValidateBooking_DateRules(t *testing.T) {
	s := fixedSchema()
	cases := []struct {
		name  string
		date  time.Time
		valid bool
	}{
		{"today", time.Date(2025, time.June, 10, 0, 0, 0, 0, wat), true},
		{"yesterday", time.Date(2025, time.June, 9, 0, 0, 0, 0, wat), false},
		{"next year", time.Date(2026, time.January, 2, 0, 0, 0, 0, wat), true},
		{"before 1900", time.Date(1899, time.December, 31, 0, 0, 0, 0, wat), false},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			d := validDraft()
			d.Date = tc.date
			errs := s.ValidateBooking(d)
			if tc.valid && errs.Has(FieldDate) {
				t.Fatalf("expected date to pass, got %v", errs[FieldDate])
			}
			if !tc.valid && !errs.Has(FieldDate) {
				t.Fatalf("expected date error")
			}
		})
	}
}

func TestValidateBooking_RestrictedToFields(t *testing.T) {
	errs := fixedSchema().ValidateBooking(BookingDraft{Service: "Veneers"}, FieldDate, FieldTime)
	assert.Equal(t, []string{"date", "time"}, errs.Fields())
}

func TestValidateContact(t *testing.T) {
	s := fixedSchema()

	ok := ContactMessage{Name: "Tunde", Email: "tunde@example.com", Message: "I would like a consult"}
	assert.Empty(t, s.ValidateContact(ok))

	errs := s.ValidateContact(ContactMessage{Name: "T", Message: "too short"})
	assert.Equal(t, []string{"Name must be at least 2 characters."}, errs[FieldName])
	assert.Equal(t, []string{"Please enter a valid email address."}, errs[FieldEmail])
	assert.Equal(t, []string{"Message must be at least 10 characters."}, errs[FieldMessage])
	assert.False(t, errs.Has(FieldPhone))
}

func TestDecodeBooking_TrimsAndParses(t *testing.T) {
	values := url.Values{
		"service":       {"  Veneers "},
		"date":          {"2025-06-14T23:00:00.000Z"},
		"time":          {"09:30 AM"},
		"name":          {" Ada "},
		"phone":         {"08012345678"},
		"paymentOption": {"paystack"},
		"unknown":       {"ignored"},
	}
	d, err := fixedSchema().DecodeBooking(values)
	require.NoError(t, err)

	assert.Equal(t, "Veneers", d.Service)
	assert.Equal(t, "Ada", d.Name)
	assert.True(t, d.Date.Equal(time.Date(2025, time.June, 15, 0, 0, 0, 0, wat)), "got %v", d.Date)
}

func TestDecodeBooking_DateOnly(t *testing.T) {
	d, err := fixedSchema().DecodeBooking(url.Values{"date": {"2025-07-01"}})
	require.NoError(t, err)
	assert.Equal(t, time.July, d.Date.Month())
	assert.Equal(t, 1, d.Date.Day())
}

func TestDecodeBooking_UnparseableDate(t *testing.T) {
	_, err := fixedSchema().DecodeBooking(url.Values{"date": {"not-a-date"}})
	if !errors.Is(err, ErrInvalidDate) {
		t.Fatalf("expected ErrInvalidDate, got %v", err)
	}
}

func TestDecodeBooking_EmptyDateIsMissing(t *testing.T) {
	d, err := fixedSchema().DecodeBooking(url.Values{"date": {" "}})
	require.NoError(t, err)
	assert.False(t, d.HasDate())
}

func TestEncodeBooking_RoundTrip(t *testing.T) {
	s := fixedSchema()
	draft := validDraft()
	draft.Email = ""

	values := EncodeBooking(draft)
	assert.Equal(t, "2025-06-14T23:00:00.000Z", values.Get("date"))
	_, hasEmail := values["email"]
	assert.False(t, hasEmail, "empty email must be omitted")

	back, err := s.DecodeBooking(values)
	require.NoError(t, err)
	assert.True(t, back.Date.Equal(draft.Date))
	back.Date = draft.Date
	assert.Equal(t, draft, back)
}

func TestDecodeContact(t *testing.T) {
	msg, err := DecodeContact(url.Values{
		"name":    {" Tunde "},
		"email":   {"tunde@example.com"},
		"message": {"Hello there, clinic"},
	})
	require.NoError(t, err)
	assert.Equal(t, "Tunde", msg.Name)
	assert.Equal(t, "", msg.Phone)
}

func TestResultConstructors(t *testing.T) {
	assert.True(t, Success().OK())
	assert.Equal(t, SuccessMessage, Success().Message)

	failed := Failed(OutcomeUnknown, "")
	assert.False(t, failed.OK())
	assert.Equal(t, GenericFailureMessage, failed.Message)

	errs := FieldErrors{}
	errs.Add(FieldName, "a")
	errs.Add(FieldName, "b")
	assert.Equal(t, []string{"a", "b"}, errs[FieldName])
	assert.Empty(t, errs.Only(FieldPhone))
}

func TestResultHTTPStatus(t *testing.T) {
	cases := map[Outcome]int{
		OutcomeSuccess:           200,
		OutcomeValidationFailure: 400,
		OutcomeDeliveryFailure:   502,
		OutcomeUnknown:           500,
	}
	for outcome, status := range cases {
		r := Result{Outcome: outcome}
		assert.Equal(t, status, r.HTTPStatus(), outcome)
		assert.Equal(t, outcome, OutcomeForStatus(status))
	}
	assert.Equal(t, OutcomeUnknown, OutcomeForStatus(429))
}
