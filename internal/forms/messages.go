package forms

// Messages are keyed by wire field name, then by the failing validator tag.
var bookingMessages = map[string]map[string]string{
	FieldService: {
		"required":       "Please select a service",
		"catalogservice": "Please select a service from the list",
	},
	FieldDate: {
		"required":    "Please select a date",
		"bookingdate": "Please choose a date that is not in the past",
	},
	FieldTime: {
		"required": "Please select a time",
		"timeslot": "Please select one of the available times",
	},
	FieldName: {
		"min": "Name must be at least 2 characters",
	},
	FieldEmail: {
		"email": "Please enter a valid email",
	},
	FieldPhone: {
		"min": "Please enter a valid phone number",
	},
	FieldPaymentOption: {
		"required":      "Please select a payment option",
		"paymentoption": "Please select a payment option",
	},
}

var contactMessages = map[string]map[string]string{
	FieldName: {
		"min": "Name must be at least 2 characters.",
	},
	FieldEmail: {
		"required": "Please enter a valid email address.",
		"email":    "Please enter a valid email address.",
	},
	FieldMessage: {
		"min": "Message must be at least 10 characters.",
	},
}

// InvalidDateMessage is reported when a serialized date cannot be parsed.
const InvalidDateMessage = "Please select a valid date"

const fallbackMessage = "Invalid value"

func lookupMessage(table map[string]map[string]string, field, tag string) string {
	if byTag, ok := table[field]; ok {
		if msg, ok := byTag[tag]; ok {
			return msg
		}
	}
	return fallbackMessage
}
