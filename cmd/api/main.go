package main

import (
	"context"
	"crypto/tls"
	"errors"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"strings"
	"syscall"
	"time"
	_ "time/tzdata"

	"github.com/joho/godotenv"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"github.com/redis/go-redis/v9"

	"github.com/Kariaki58/favfareclinic/cmd/mainconfig"
	"github.com/Kariaki58/favfareclinic/internal/api/router"
	"github.com/Kariaki58/favfareclinic/internal/booking"
	appconfig "github.com/Kariaki58/favfareclinic/internal/config"
	"github.com/Kariaki58/favfareclinic/internal/contact"
	"github.com/Kariaki58/favfareclinic/internal/forms"
	"github.com/Kariaki58/favfareclinic/internal/http/handlers"
	"github.com/Kariaki58/favfareclinic/internal/llm"
	"github.com/Kariaki58/favfareclinic/internal/notify"
	"github.com/Kariaki58/favfareclinic/internal/observability/metrics"
	"github.com/Kariaki58/favfareclinic/internal/optimizer"
	"github.com/Kariaki58/favfareclinic/internal/wizard"
	"github.com/Kariaki58/favfareclinic/pkg/logging"
)

func main() {
	_ = godotenv.Load()

	// Load configuration
	cfg := appconfig.Load()

	// Initialize logger
	logger := logging.New(cfg.LogLevel)
	logger.Info("starting favfare clinic API server",
		"env", cfg.Env,
		"port", cfg.Port,
	)

	ctx := context.Background()

	loc, err := time.LoadLocation(cfg.ClinicTimezone)
	if err != nil {
		logger.Error("invalid clinic timezone", "timezone", cfg.ClinicTimezone, "error", err)
		os.Exit(1)
	}
	schema := forms.NewSchema(forms.WithLocation(loc))

	metricsHandler, formMetrics := setupMetrics()

	emailSender := setupEmailSender(ctx, cfg, logger)
	dispatcher := notify.NewDispatcher(emailSender, setupSMSSender(cfg, logger), notify.DispatcherConfig{
		ClinicName:    cfg.ClinicName,
		BusinessInbox: cfg.BusinessInboxEmail,
		OperatorSMSTo: cfg.OperatorSMSTo,
		SendTimeout:   cfg.EmailSendTimeout,
	}, formMetrics, logger)
	if cfg.BusinessInboxEmail == "" {
		logger.Warn("BUSINESS_INBOX_EMAIL not set; business notifications will fail")
	}

	bookingService := booking.NewService(schema, dispatcher, formMetrics, logger)
	contactService := contact.NewService(schema, dispatcher, formMetrics, logger)

	store, closeStore := setupWizardStore(ctx, cfg, logger)
	defer closeStore()

	optimizerService := optimizer.NewService(setupLLM(ctx, cfg, logger), cfg.OptimizerTimeout, formMetrics, logger)

	// Setup router
	r := router.New(&router.Config{
		Logger:             logger,
		CatalogHandler:     handlers.NewCatalogHandler(),
		BookingHandler:     booking.NewHandler(bookingService, logger),
		ContactHandler:     contact.NewHandler(contactService, logger),
		WizardHandler:      handlers.NewWizardHandler(store, schema, bookingService, formMetrics, logger),
		OptimizerHandler:   optimizer.NewHandler(optimizerService, logger),
		MetricsHandler:     metricsHandler,
		CORSAllowedOrigins: cfg.CORSAllowedOrigins,
		CORSAllowedHeaders: cfg.CORSAllowedHeaders,
		RateLimitRPS:       cfg.RateLimitRPS,
		RateLimitBurst:     cfg.RateLimitBurst,
	})

	// Create HTTP server
	srv := &http.Server{
		Addr:         ":" + cfg.Port,
		Handler:      r,
		ReadTimeout:  15 * time.Second,
		WriteTimeout: 60 * time.Second,
		IdleTimeout:  60 * time.Second,
	}

	// Start server in a goroutine
	go func() {
		logger.Info("server listening", "addr", srv.Addr)
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			logger.Error("server error", "error", err)
			os.Exit(1)
		}
	}()

	// Wait for interrupt signal to gracefully shutdown the server
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	logger.Info("shutting down server...")

	shutdownCtx, cancel := context.WithTimeout(context.Background(), cfg.ShutdownTimeout)
	defer cancel()

	if err := srv.Shutdown(shutdownCtx); err != nil {
		logger.Error("server forced to shutdown", "error", err)
		os.Exit(1)
	}

	logger.Info("server stopped")
	fmt.Println("Server exited gracefully")
}

func setupMetrics() (http.Handler, *metrics.FormMetrics) {
	reg := prometheus.NewRegistry()
	reg.MustRegister(
		collectors.NewGoCollector(),
		collectors.NewProcessCollector(collectors.ProcessCollectorOpts{}),
	)
	return promhttp.HandlerFor(reg, promhttp.HandlerOpts{}), metrics.NewFormMetrics(reg)
}

// setupEmailSender picks the provider named by EMAIL_PROVIDER. "auto" uses
// SendGrid when a key is present and the stub otherwise.
func setupEmailSender(ctx context.Context, cfg *appconfig.Config, logger *logging.Logger) notify.EmailSender {
	provider := cfg.EmailProvider
	if provider == "" || provider == "auto" {
		provider = "stub"
		if cfg.SendGridAPIKey != "" {
			provider = "sendgrid"
		}
	}

	switch provider {
	case "sendgrid":
		if sender := notify.NewSendGridSender(notify.SendGridConfig{
			APIKey:    cfg.SendGridAPIKey,
			FromEmail: cfg.SendGridFromEmail,
			FromName:  cfg.SendGridFromName,
		}, logger); sender != nil {
			logger.Info("email provider configured", "provider", "sendgrid")
			return sender
		}
		logger.Warn("SENDGRID_API_KEY not set; falling back to stub email sender")
	case "ses":
		awsCfg, err := mainconfig.LoadAWSConfig(ctx, cfg)
		if err != nil {
			logger.Error("failed to load AWS config for SES", "error", err)
			break
		}
		from := cfg.SESFromEmail
		if from == "" {
			from = cfg.SendGridFromEmail
		}
		if sender := notify.NewSESSender(mainconfig.SESClient(awsCfg, cfg), notify.SESConfig{
			FromEmail: from,
			FromName:  cfg.ClinicName,
		}, logger); sender != nil {
			logger.Info("email provider configured", "provider", "ses", "region", cfg.AWSRegion)
			return sender
		}
	case "stub":
	default:
		logger.Warn("unknown EMAIL_PROVIDER; using stub", "provider", provider)
	}
	return notify.NewStubEmailSender(logger)
}

// setupSMSSender returns nil unless both Twilio credentials and an operator
// number are configured.
func setupSMSSender(cfg *appconfig.Config, logger *logging.Logger) notify.SMSSender {
	if strings.TrimSpace(cfg.OperatorSMSTo) == "" {
		return nil
	}
	sender := notify.NewTwilioSMSSender(notify.TwilioConfig{
		AccountSID: cfg.TwilioAccountSID,
		AuthToken:  cfg.TwilioAuthToken,
		FromNumber: cfg.TwilioFromNumber,
	}, logger)
	if sender == nil {
		logger.Warn("OPERATOR_SMS_TO set without Twilio credentials; operator SMS disabled")
		return nil
	}
	return sender
}

// setupWizardStore uses Redis when REDIS_ADDR is set and reachable, and the
// in-memory store otherwise.
func setupWizardStore(ctx context.Context, cfg *appconfig.Config, logger *logging.Logger) (wizard.SessionStore, func()) {
	if strings.TrimSpace(cfg.RedisAddr) == "" {
		logger.Info("wizard sessions stored in memory")
		return wizard.NewMemoryStore(cfg.WizardSessionTTL), func() {}
	}

	opts := &redis.Options{
		Addr:     cfg.RedisAddr,
		Password: cfg.RedisPassword,
		DB:       cfg.RedisDB,
	}
	if cfg.RedisTLS {
		opts.TLSConfig = &tls.Config{MinVersion: tls.VersionTLS12}
	}
	client := redis.NewClient(opts)

	pingCtx, cancel := context.WithTimeout(ctx, 3*time.Second)
	defer cancel()
	if err := client.Ping(pingCtx).Err(); err != nil {
		logger.Warn("redis unavailable; wizard sessions stored in memory", "addr", cfg.RedisAddr, "error", err)
		_ = client.Close()
		return wizard.NewMemoryStore(cfg.WizardSessionTTL), func() {}
	}
	logger.Info("wizard sessions stored in redis", "addr", cfg.RedisAddr)
	return wizard.NewRedisStore(client, cfg.WizardSessionTTL), func() { _ = client.Close() }
}

// setupLLM returns nil when no provider is configured, which disables the
// optimizer endpoint.
func setupLLM(ctx context.Context, cfg *appconfig.Config, logger *logging.Logger) llm.Client {
	var primary, fallback llm.Client

	if cfg.GeminiAPIKey != "" {
		gemini, err := llm.NewGeminiClient(ctx, cfg.GeminiAPIKey, cfg.GeminiModelID)
		if err != nil {
			logger.Error("failed to create gemini client", "error", err)
		} else {
			primary = gemini
		}
	}

	if cfg.BedrockModelID != "" {
		awsCfg, err := mainconfig.LoadAWSConfig(ctx, cfg)
		if err != nil {
			logger.Error("failed to load AWS config for bedrock", "error", err)
		} else if bedrock, err := llm.NewBedrockClient(mainconfig.BedrockClient(awsCfg, cfg), cfg.BedrockModelID); err != nil {
			logger.Error("failed to create bedrock client", "error", err)
		} else if primary == nil {
			primary = bedrock
		} else {
			fallback = bedrock
		}
	}

	switch {
	case primary == nil:
		logger.Warn("no LLM provider configured; hero copy optimizer disabled")
		return nil
	case fallback != nil:
		logger.Info("hero copy optimizer enabled", "primary", "gemini", "fallback", "bedrock")
		return llm.NewFallbackClient(primary, fallback, logger)
	default:
		logger.Info("hero copy optimizer enabled")
		return primary
	}
}
