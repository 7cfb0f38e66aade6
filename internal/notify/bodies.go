package notify

import (
	"fmt"

	"github.com/Kariaki58/favfareclinic/internal/catalog"
	"github.com/Kariaki58/favfareclinic/internal/forms"
	"github.com/Kariaki58/favfareclinic/internal/templates"
)

const displayDateLayout = "Monday, January 2, 2006"

type bookingEmailData struct {
	ClinicName string
	Service    string
	Price      string
	Date       string
	Time       string
	Name       string
	Email      string
	Phone      string
	Payment    string
	Notes      string
}

type contactEmailData struct {
	ClinicName string
	Name       string
	Email      string
	Phone      string
	Message    string
}

const businessBookingText = `New appointment request for {{.ClinicName}}

Service: {{.Service}}{{if .Price}} ({{.Price}}){{end}}
Date: {{.Date}}
Time: {{.Time}}
Name: {{.Name}}
Email: {{default "Not provided" .Email}}
Phone: {{.Phone}}
Payment: {{.Payment}}
Notes: {{default "None" .Notes}}
`

const businessBookingHTML = `<div style="font-family: sans-serif; max-width: 600px;">
<h2>New appointment request</h2>
<table style="border-collapse: collapse; margin: 20px 0;">
  <tr><td><strong>Service:</strong></td><td>{{.Service}}{{if .Price}} ({{.Price}}){{end}}</td></tr>
  <tr><td><strong>Date:</strong></td><td>{{.Date}}</td></tr>
  <tr><td><strong>Time:</strong></td><td>{{.Time}}</td></tr>
  <tr><td><strong>Name:</strong></td><td>{{.Name}}</td></tr>
  <tr><td><strong>Email:</strong></td><td>{{default "Not provided" .Email}}</td></tr>
  <tr><td><strong>Phone:</strong></td><td><a href="tel:{{.Phone}}">{{.Phone}}</a></td></tr>
  <tr><td><strong>Payment:</strong></td><td>{{.Payment}}</td></tr>
  <tr><td><strong>Notes:</strong></td><td>{{default "None" .Notes}}</td></tr>
</table>
<p style="color: #6b7280; font-size: 12px;">{{.ClinicName}}</p>
</div>`

const customerConfirmationText = `Hi {{.Name}},

Thank you for booking with {{.ClinicName}}. We have received your request for {{.Service}} on {{.Date}} at {{.Time}}.

Our team will call you on {{.Phone}} to confirm your appointment. Payment: {{.Payment}}.

See you soon,
{{.ClinicName}}
`

const customerConfirmationHTML = `<div style="font-family: sans-serif; max-width: 600px;">
<p>Hi {{.Name}},</p>
<p>Thank you for booking with {{.ClinicName}}. We have received your request for <strong>{{.Service}}</strong> on <strong>{{.Date}}</strong> at <strong>{{.Time}}</strong>.</p>
<p>Our team will call you on {{.Phone}} to confirm your appointment. Payment: {{.Payment}}.</p>
<p>See you soon,<br>{{.ClinicName}}</p>
</div>`

const contactText = `New contact message for {{.ClinicName}}

Name: {{.Name}}
Email: {{.Email}}
Phone: {{default "Not provided" .Phone}}

{{.Message}}
`

const contactHTML = `<div style="font-family: sans-serif; max-width: 600px;">
<h2>New contact message</h2>
<p><strong>Name:</strong> {{.Name}}<br>
<strong>Email:</strong> {{.Email}}<br>
<strong>Phone:</strong> {{default "Not provided" .Phone}}</p>
<p style="white-space: pre-wrap;">{{.Message}}</p>
</div>`

const operatorSMSText = `New booking: {{.Name}} ({{.Phone}}) for {{.Service}} on {{.Date}} at {{.Time}}.`

func newBookingEmailData(clinicName string, d forms.BookingDraft) bookingEmailData {
	data := bookingEmailData{
		ClinicName: clinicName,
		Service:    d.Service,
		Time:       d.Time,
		Name:       d.Name,
		Email:      d.Email,
		Phone:      d.Phone,
		Payment:    catalog.PaymentLabel(d.PaymentOption),
		Notes:      d.Notes,
	}
	if d.HasDate() {
		data.Date = d.Date.Format(displayDateLayout)
	}
	if svc, ok := catalog.FindService(d.Service); ok {
		data.Price = svc.Price
	}
	return data
}

func renderEmail(r templates.Renderer, name, text, html string, data any) (string, string, error) {
	plain, err := r.Render(name, text, data)
	if err != nil {
		return "", "", fmt.Errorf("notify: render %s: %w", name, err)
	}
	rich, err := r.RenderHTML(name+"_html", html, data)
	if err != nil {
		return "", "", fmt.Errorf("notify: render %s: %w", name, err)
	}
	return plain, rich, nil
}
