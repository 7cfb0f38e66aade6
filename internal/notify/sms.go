package notify

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/twilio/twilio-go"
	twilioApi "github.com/twilio/twilio-go/rest/api/v2010"

	"github.com/Kariaki58/favfareclinic/pkg/logging"
)

// SMSSender sends SMS messages to operators.
type SMSSender interface {
	SendSMS(ctx context.Context, to, body string) error
}

// twilioMessages is the subset of the Twilio REST API used for sending.
type twilioMessages interface {
	CreateMessage(params *twilioApi.CreateMessageParams) (*twilioApi.ApiV2010Message, error)
}

// TwilioConfig holds Twilio credentials and the sending number.
type TwilioConfig struct {
	AccountSID string
	AuthToken  string
	FromNumber string
}

// TwilioSMSSender sends SMS through the Twilio REST API.
type TwilioSMSSender struct {
	api    twilioMessages
	from   string
	logger *logging.Logger
}

// NewTwilioSMSSender returns nil when credentials are incomplete.
func NewTwilioSMSSender(cfg TwilioConfig, logger *logging.Logger) *TwilioSMSSender {
	if cfg.AccountSID == "" || cfg.AuthToken == "" || cfg.FromNumber == "" {
		return nil
	}
	if logger == nil {
		logger = logging.Default()
	}
	client := twilio.NewRestClientWithParams(twilio.ClientParams{
		Username: cfg.AccountSID,
		Password: cfg.AuthToken,
	})
	return &TwilioSMSSender{api: client.Api, from: cfg.FromNumber, logger: logger}
}

// SendSMS sends one message. The Twilio client does not take a context, so
// cancellation is only checked before the call.
func (s *TwilioSMSSender) SendSMS(ctx context.Context, to, body string) error {
	if s == nil || s.api == nil {
		return errors.New("notify: twilio client not configured")
	}
	if strings.TrimSpace(to) == "" {
		return errors.New("notify: sms recipient required")
	}
	if err := ctx.Err(); err != nil {
		return fmt.Errorf("notify: twilio send: %w", err)
	}

	params := &twilioApi.CreateMessageParams{}
	params.SetTo(to)
	params.SetFrom(s.from)
	params.SetBody(body)

	resp, err := s.api.CreateMessage(params)
	if err != nil {
		s.logger.Error("twilio send failed", "error", err, "to", to)
		return fmt.Errorf("notify: twilio send failed: %w", err)
	}
	sid := ""
	if resp != nil && resp.Sid != nil {
		sid = *resp.Sid
	}
	s.logger.Info("sms sent via twilio", "to", to, "sid", sid)
	return nil
}

// StubSMSSender logs instead of sending.
type StubSMSSender struct {
	logger *logging.Logger
}

// NewStubSMSSender creates a stub SMS sender.
func NewStubSMSSender(logger *logging.Logger) *StubSMSSender {
	if logger == nil {
		logger = logging.Default()
	}
	return &StubSMSSender{logger: logger}
}

// SendSMS logs the message.
func (s *StubSMSSender) SendSMS(ctx context.Context, to, body string) error {
	s.logger.Info("stub sms sender: would send sms", "to", to, "length", len(body))
	return nil
}

var (
	_ SMSSender = (*TwilioSMSSender)(nil)
	_ SMSSender = (*StubSMSSender)(nil)
)
