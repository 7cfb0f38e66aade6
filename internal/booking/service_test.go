package booking

import (
	"context"
	"encoding/json"
	"errors"
	"io"
	"net/http"
	"net/http/httptest"
	"net/url"
	"strings"
	"testing"
	"time"

	"github.com/prometheus/client_golang/prometheus"

	"github.com/Kariaki58/favfareclinic/internal/forms"
	"github.com/Kariaki58/favfareclinic/internal/notify"
	"github.com/Kariaki58/favfareclinic/internal/observability/metrics"
	"github.com/Kariaki58/favfareclinic/pkg/logging"
)

type fakeNotifier struct {
	calls  []forms.BookingDraft
	report notify.DeliveryReport
}

func (f *fakeNotifier) NotifyBooking(ctx context.Context, draft forms.BookingDraft) notify.DeliveryReport {
	f.calls = append(f.calls, draft)
	return f.report
}

func newTestService(n Notifier) *Service {
	now := time.Date(2025, time.June, 10, 12, 0, 0, 0, time.UTC)
	schema := forms.NewSchema(forms.WithLocation(time.UTC), forms.WithClock(func() time.Time { return now }))
	logger := logging.NewWithWriter("error", io.Discard)
	return NewService(schema, n, metrics.NewFormMetrics(prometheus.NewRegistry()), logger)
}

func validValues() url.Values {
	return url.Values{
		"service":       {"Dental Bridge"},
		"date":          {"2025-06-12T00:00:00.000Z"},
		"time":          {"02:00 PM"},
		"name":          {"Chioma"},
		"email":         {"chioma@example.com"},
		"phone":         {"08055554444"},
		"paymentOption": {"paystack"},
	}
}

func TestSubmit_Success(t *testing.T) {
	n := &fakeNotifier{}
	result, err := newTestService(n).Submit(context.Background(), validValues())
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if !result.OK() || result.Message != forms.SuccessMessage {
		t.Fatalf("expected success, got %+v", result)
	}
	if len(n.calls) != 1 {
		t.Fatalf("expected one dispatch, got %d", len(n.calls))
	}
	if n.calls[0].Service != "Dental Bridge" {
		t.Errorf("unexpected service %q", n.calls[0].Service)
	}
}

func TestSubmit_DeliveryFailureStillSucceeds(t *testing.T) {
	n := &fakeNotifier{report: notify.DeliveryReport{Deliveries: []notify.Delivery{
		{Kind: notify.KindBusiness, Err: errors.New("sendgrid 500")},
		{Kind: notify.KindCustomer, Err: errors.New("sendgrid 500")},
	}}}
	result, err := newTestService(n).Submit(context.Background(), validValues())
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if !result.OK() {
		t.Fatalf("delivery failure must not fail a booking, got %+v", result)
	}
}

func TestSubmit_UnparseableDateShortCircuits(t *testing.T) {
	n := &fakeNotifier{}
	values := url.Values{"date": {"not-a-date"}}
	result, err := newTestService(n).Submit(context.Background(), values)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if result.Outcome != forms.OutcomeValidationFailure {
		t.Fatalf("expected validation failure, got %s", result.Outcome)
	}
	if got := result.Errors.Fields(); len(got) != 1 || got[0] != forms.FieldDate {
		t.Fatalf("expected only a date error, got %v", got)
	}
	if len(n.calls) != 0 {
		t.Fatal("dispatch must not run for invalid input")
	}
}

func TestSubmit_ReportsAllFieldsTogether(t *testing.T) {
	n := &fakeNotifier{}
	values := validValues()
	values.Set("name", "C")
	values.Set("phone", "123")
	values.Del("time")

	result, _ := newTestService(n).Submit(context.Background(), values)
	if result.Message != ValidationMessage {
		t.Fatalf("unexpected message %q", result.Message)
	}
	for _, field := range []string{forms.FieldName, forms.FieldPhone, forms.FieldTime} {
		if !result.Errors.Has(field) {
			t.Errorf("expected error for %s", field)
		}
	}
	if len(n.calls) != 0 {
		t.Fatal("dispatch must not run for invalid input")
	}
}

func TestHandlerCreate(t *testing.T) {
	with := func(key, value string) url.Values {
		v := validValues()
		if value == "" {
			v.Del(key)
		} else {
			v.Set(key, value)
		}
		return v
	}

	cases := []struct {
		name       string
		values     url.Values
		status     int
		errFields  []string
		dispatches int
	}{
		{name: "valid", values: validValues(), status: http.StatusOK, dispatches: 1},
		{name: "invalid", values: url.Values{"service": {"Veneers"}}, status: http.StatusBadRequest},
		{name: "missing service", values: with("service", ""), status: http.StatusBadRequest, errFields: []string{forms.FieldService}},
		{name: "nine digit phone", values: with("phone", "080312345"), status: http.StatusBadRequest, errFields: []string{forms.FieldPhone}},
		{name: "ten digit phone", values: with("phone", "0803123456"), status: http.StatusOK, dispatches: 1},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			n := &fakeNotifier{}
			h := NewHandler(newTestService(n), nil)
			req := httptest.NewRequest(http.MethodPost, "/api/bookings", strings.NewReader(tc.values.Encode()))
			req.Header.Set("Content-Type", "application/x-www-form-urlencoded")
			rec := httptest.NewRecorder()

			h.Create(rec, req)

			if rec.Code != tc.status {
				t.Fatalf("expected %d, got %d: %s", tc.status, rec.Code, rec.Body.String())
			}
			var body forms.Result
			if err := json.Unmarshal(rec.Body.Bytes(), &body); err != nil {
				t.Fatalf("decode: %v", err)
			}
			if tc.status == http.StatusOK && body.Message != "success" {
				t.Errorf("unexpected message %q", body.Message)
			}
			if tc.status == http.StatusBadRequest && len(body.Errors) == 0 {
				t.Error("expected field errors in body")
			}
			if tc.errFields != nil {
				if got := body.Errors.Fields(); !equalStrings(got, tc.errFields) {
					t.Errorf("expected errors only on %v, got %v", tc.errFields, body.Errors)
				}
			}
			if len(n.calls) != tc.dispatches {
				t.Errorf("expected %d dispatches, got %d", tc.dispatches, len(n.calls))
			}
		})
	}
}

func equalStrings(a, b []string) bool {
	if len(a) != len(b) {
		return false
	}
	for i := range a {
		if a[i] != b[i] {
			return false
		}
	}
	return true
}
