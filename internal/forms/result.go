package forms

import (
	"net/http"
	"sort"
)

// Outcome classifies how a submission ended.
type Outcome string

const (
	OutcomeSuccess           Outcome = "success"
	OutcomeValidationFailure Outcome = "validation-failure"
	OutcomeDeliveryFailure   Outcome = "delivery-failure"
	OutcomeUnknown           Outcome = "unknown"
)

// SuccessMessage is the wire message of every successful submission.
const SuccessMessage = "success"

// GenericFailureMessage is shown when a failure has no field attribution.
const GenericFailureMessage = "Something went wrong. Please try again."

// FieldErrors maps a wire field name to its violation messages.
type FieldErrors map[string][]string

// Add appends msg to the errors recorded for field.
func (fe FieldErrors) Add(field, msg string) {
	fe[field] = append(fe[field], msg)
}

// Has reports whether field has at least one error.
func (fe FieldErrors) Has(field string) bool {
	return len(fe[field]) > 0
}

// Fields returns the offending field names in sorted order.
func (fe FieldErrors) Fields() []string {
	out := make([]string, 0, len(fe))
	for k := range fe {
		out = append(out, k)
	}
	sort.Strings(out)
	return out
}

// Only returns the subset of errors that belong to fields.
func (fe FieldErrors) Only(fields ...string) FieldErrors {
	out := FieldErrors{}
	for _, f := range fields {
		if msgs, ok := fe[f]; ok {
			out[f] = append([]string(nil), msgs...)
		}
	}
	return out
}

// Result is the handler response for one submission.
type Result struct {
	Outcome Outcome     `json:"-"`
	Message string      `json:"message"`
	Errors  FieldErrors `json:"errors,omitempty"`
}

// OK reports whether the submission succeeded.
func (r Result) OK() bool {
	return r.Outcome == OutcomeSuccess
}

// HTTPStatus maps the outcome to a response status code.
func (r Result) HTTPStatus() int {
	switch r.Outcome {
	case OutcomeSuccess:
		return http.StatusOK
	case OutcomeValidationFailure:
		return http.StatusBadRequest
	case OutcomeDeliveryFailure:
		return http.StatusBadGateway
	default:
		return http.StatusInternalServerError
	}
}

// OutcomeForStatus is the inverse of HTTPStatus for clients of the API.
func OutcomeForStatus(status int) Outcome {
	switch status {
	case http.StatusOK:
		return OutcomeSuccess
	case http.StatusBadRequest:
		return OutcomeValidationFailure
	case http.StatusBadGateway:
		return OutcomeDeliveryFailure
	default:
		return OutcomeUnknown
	}
}

// Success builds a successful result.
func Success() Result {
	return Result{Outcome: OutcomeSuccess, Message: SuccessMessage}
}

// Invalid builds a validation failure result.
func Invalid(message string, errs FieldErrors) Result {
	return Result{Outcome: OutcomeValidationFailure, Message: message, Errors: errs}
}

// Failed builds a failure result without field attribution.
func Failed(outcome Outcome, message string) Result {
	if message == "" {
		message = GenericFailureMessage
	}
	return Result{Outcome: outcome, Message: message}
}
