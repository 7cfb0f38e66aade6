package forms

import "time"

// Wire names of booking fields.
const (
	FieldService       = "service"
	FieldDate          = "date"
	FieldTime          = "time"
	FieldName          = "name"
	FieldEmail         = "email"
	FieldPhone         = "phone"
	FieldPaymentOption = "paymentOption"
	FieldNotes         = "notes"
	FieldMessage       = "message"
)

// BookingFields lists every booking field in form order.
var BookingFields = []string{
	FieldService, FieldDate, FieldTime, FieldName, FieldEmail,
	FieldPhone, FieldPaymentOption, FieldNotes,
}

// BookingDraft is the set of values collected for one appointment request.
// Date is a calendar date held as midnight in the clinic timezone; the zero
// value means no date was chosen.
type BookingDraft struct {
	Service       string    `json:"service" validate:"required,catalogservice"`
	Date          time.Time `json:"date" validate:"required,bookingdate"`
	Time          string    `json:"time" validate:"required,timeslot"`
	Name          string    `json:"name" validate:"min=2"`
	Email         string    `json:"email,omitempty" validate:"omitempty,email"`
	Phone         string    `json:"phone" validate:"min=10"`
	PaymentOption string    `json:"paymentOption" validate:"required,paymentoption"`
	Notes         string    `json:"notes,omitempty"`
}

// HasDate reports whether a date was chosen.
func (d BookingDraft) HasDate() bool {
	return !d.Date.IsZero()
}

// ContactMessage is a contact form submission.
type ContactMessage struct {
	Name    string `json:"name" validate:"min=2"`
	Email   string `json:"email" validate:"required,email"`
	Phone   string `json:"phone,omitempty"`
	Message string `json:"message" validate:"min=10"`
}
