package main

import (
	"context"
	"io"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/alicebob/miniredis/v2"

	appconfig "github.com/Kariaki58/favfareclinic/internal/config"
	"github.com/Kariaki58/favfareclinic/internal/llm"
	"github.com/Kariaki58/favfareclinic/internal/notify"
	"github.com/Kariaki58/favfareclinic/internal/wizard"
	"github.com/Kariaki58/favfareclinic/pkg/logging"
)

func quietLogger() *logging.Logger {
	return logging.NewWithWriter("error", io.Discard)
}

func TestSetupMetricsExposesFormCounters(t *testing.T) {
	handler, m := setupMetrics()
	if handler == nil || m == nil {
		t.Fatalf("expected non-nil handler and metrics")
	}

	m.ObserveSubmission("booking", "success")

	req := httptest.NewRequest(http.MethodGet, "/metrics", nil)
	rr := httptest.NewRecorder()
	handler.ServeHTTP(rr, req)

	if rr.Code != http.StatusOK {
		t.Fatalf("expected status 200, got %d", rr.Code)
	}
	if !strings.Contains(rr.Body.String(), "favfare_forms_submissions_total") {
		t.Fatalf("expected submissions counter to be exported")
	}
}

func TestSetupEmailSender(t *testing.T) {
	logger := quietLogger()

	cases := []struct {
		name string
		cfg  appconfig.Config
		want string
	}{
		{name: "auto without key", cfg: appconfig.Config{EmailProvider: "auto"}, want: "*notify.StubEmailSender"},
		{name: "auto with key", cfg: appconfig.Config{EmailProvider: "auto", SendGridAPIKey: "SG.test"}, want: "*notify.SendGridSender"},
		{name: "sendgrid missing key", cfg: appconfig.Config{EmailProvider: "sendgrid"}, want: "*notify.StubEmailSender"},
		{name: "unknown", cfg: appconfig.Config{EmailProvider: "pigeon"}, want: "*notify.StubEmailSender"},
		{name: "ses", cfg: appconfig.Config{EmailProvider: "ses", AWSRegion: "us-east-1", AWSAccessKeyID: "test", AWSSecretAccessKey: "test"}, want: "*notify.SESSender"},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			cfg := tc.cfg
			sender := setupEmailSender(context.Background(), &cfg, logger)
			if sender == nil {
				t.Fatalf("expected a sender")
			}
			if got := typeName(sender); got != tc.want {
				t.Fatalf("expected %s, got %s", tc.want, got)
			}
		})
	}
}

func typeName(s notify.EmailSender) string {
	switch s.(type) {
	case *notify.StubEmailSender:
		return "*notify.StubEmailSender"
	case *notify.SendGridSender:
		return "*notify.SendGridSender"
	case *notify.SESSender:
		return "*notify.SESSender"
	default:
		return "unknown"
	}
}

func TestSetupSMSSender(t *testing.T) {
	logger := quietLogger()

	if s := setupSMSSender(&appconfig.Config{}, logger); s != nil {
		t.Fatalf("expected no sms sender without operator number")
	}
	if s := setupSMSSender(&appconfig.Config{OperatorSMSTo: "+2348030000000"}, logger); s != nil {
		t.Fatalf("expected no sms sender without credentials")
	}
	s := setupSMSSender(&appconfig.Config{
		OperatorSMSTo:    "+2348030000000",
		TwilioAccountSID: "AC123",
		TwilioAuthToken:  "token",
		TwilioFromNumber: "+15550000000",
	}, logger)
	if _, ok := s.(*notify.TwilioSMSSender); !ok {
		t.Fatalf("expected twilio sender, got %T", s)
	}
}

func TestSetupWizardStore(t *testing.T) {
	logger := quietLogger()

	store, closeStore := setupWizardStore(context.Background(), &appconfig.Config{WizardSessionTTL: time.Hour}, logger)
	defer closeStore()
	if _, ok := store.(*wizard.MemoryStore); !ok {
		t.Fatalf("expected memory store, got %T", store)
	}

	mr := miniredis.RunT(t)
	store, closeStore = setupWizardStore(context.Background(), &appconfig.Config{RedisAddr: mr.Addr(), WizardSessionTTL: time.Hour}, logger)
	defer closeStore()
	if _, ok := store.(*wizard.RedisStore); !ok {
		t.Fatalf("expected redis store, got %T", store)
	}
}

func TestSetupWizardStoreFallsBackWhenRedisDown(t *testing.T) {
	mr := miniredis.RunT(t)
	addr := mr.Addr()
	mr.Close()

	store, closeStore := setupWizardStore(context.Background(), &appconfig.Config{RedisAddr: addr, WizardSessionTTL: time.Hour}, quietLogger())
	defer closeStore()
	if _, ok := store.(*wizard.MemoryStore); !ok {
		t.Fatalf("expected memory store fallback, got %T", store)
	}
}

func TestSetupLLM(t *testing.T) {
	logger := quietLogger()

	if client := setupLLM(context.Background(), &appconfig.Config{}, logger); client != nil {
		t.Fatalf("expected nil client without providers, got %T", client)
	}

	client := setupLLM(context.Background(), &appconfig.Config{
		AWSRegion:          "us-east-1",
		AWSAccessKeyID:     "test",
		AWSSecretAccessKey: "test",
		BedrockModelID:     "anthropic.claude-3-haiku-20240307-v1:0",
	}, logger)
	if _, ok := client.(*llm.BedrockClient); !ok {
		t.Fatalf("expected bedrock client, got %T", client)
	}
}
