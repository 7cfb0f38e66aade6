package config

import (
	"testing"
	"time"
)

func TestLoadDefaults(t *testing.T) {
	for _, key := range []string{"PORT", "ENV", "LOG_LEVEL", "CLINIC_TIMEZONE", "EMAIL_PROVIDER", "EMAIL_SEND_TIMEOUT", "REDIS_ADDR", "WIZARD_SESSION_TTL", "CORS_ALLOWED_ORIGINS", "CORS_ALLOWED_HEADERS", "RATE_LIMIT_RPS", "RATE_LIMIT_BURST"} {
		t.Setenv(key, "")
	}
	cfg := Load()
	if cfg.Port != "8080" {
		t.Fatalf("expected default port, got %s", cfg.Port)
	}
	if cfg.Env != "development" {
		t.Fatalf("expected default env, got %s", cfg.Env)
	}
	if cfg.ClinicTimezone != "Africa/Lagos" {
		t.Fatalf("expected default clinic timezone, got %s", cfg.ClinicTimezone)
	}
	if cfg.EmailProvider != "auto" {
		t.Fatalf("expected auto email provider, got %s", cfg.EmailProvider)
	}
	if cfg.EmailSendTimeout != 10*time.Second {
		t.Fatalf("expected 10s send timeout, got %s", cfg.EmailSendTimeout)
	}
	if cfg.RedisAddr != "" {
		t.Fatalf("expected redis disabled by default, got %s", cfg.RedisAddr)
	}
	if cfg.WizardSessionTTL != 2*time.Hour {
		t.Fatalf("expected 2h wizard ttl, got %s", cfg.WizardSessionTTL)
	}
	if len(cfg.CORSAllowedOrigins) != 1 || cfg.CORSAllowedOrigins[0] != "http://localhost:3000" {
		t.Fatalf("unexpected default origins %v", cfg.CORSAllowedOrigins)
	}
	if cfg.CORSAllowedHeaders != nil {
		t.Fatalf("expected middleware default headers, got %v", cfg.CORSAllowedHeaders)
	}
	if cfg.RateLimitRPS != 1 || cfg.RateLimitBurst != 5 {
		t.Fatalf("unexpected rate limit defaults %v/%d", cfg.RateLimitRPS, cfg.RateLimitBurst)
	}
}

func TestLoadOverrides(t *testing.T) {
	t.Setenv("PORT", "9090")
	t.Setenv("ENV", "production")
	t.Setenv("EMAIL_PROVIDER", " SES ")
	t.Setenv("EMAIL_SEND_TIMEOUT", "3s")
	t.Setenv("BUSINESS_INBOX_EMAIL", "frontdesk@favfare.example")
	t.Setenv("REDIS_ADDR", "localhost:6379")
	t.Setenv("REDIS_DB", "2")
	t.Setenv("CORS_ALLOWED_ORIGINS", "https://favfare.example, ,https://www.favfare.example")
	t.Setenv("CORS_ALLOWED_HEADERS", "Content-Type, X-Booking-Source")
	t.Setenv("RATE_LIMIT_RPS", "0.5")
	t.Setenv("RATE_LIMIT_BURST", "10")
	cfg := Load()
	if cfg.Port != "9090" {
		t.Fatalf("expected override port, got %s", cfg.Port)
	}
	if cfg.Env != "production" {
		t.Fatalf("expected env override, got %s", cfg.Env)
	}
	if cfg.EmailProvider != "ses" {
		t.Fatalf("expected normalized provider, got %q", cfg.EmailProvider)
	}
	if cfg.EmailSendTimeout != 3*time.Second {
		t.Fatalf("expected timeout override, got %s", cfg.EmailSendTimeout)
	}
	if cfg.BusinessInboxEmail != "frontdesk@favfare.example" {
		t.Fatalf("expected inbox override, got %s", cfg.BusinessInboxEmail)
	}
	if cfg.RedisAddr != "localhost:6379" || cfg.RedisDB != 2 {
		t.Fatalf("expected redis override, got %s/%d", cfg.RedisAddr, cfg.RedisDB)
	}
	if len(cfg.CORSAllowedOrigins) != 2 || cfg.CORSAllowedOrigins[1] != "https://www.favfare.example" {
		t.Fatalf("unexpected origins %v", cfg.CORSAllowedOrigins)
	}
	if len(cfg.CORSAllowedHeaders) != 2 || cfg.CORSAllowedHeaders[1] != "X-Booking-Source" {
		t.Fatalf("unexpected headers %v", cfg.CORSAllowedHeaders)
	}
	if cfg.RateLimitRPS != 0.5 || cfg.RateLimitBurst != 10 {
		t.Fatalf("unexpected rate limit %v/%d", cfg.RateLimitRPS, cfg.RateLimitBurst)
	}
}

func TestLoadIgnoresMalformedValues(t *testing.T) {
	t.Setenv("EMAIL_SEND_TIMEOUT", "soon")
	t.Setenv("RATE_LIMIT_RPS", "-2")
	t.Setenv("REDIS_DB", "two")
	cfg := Load()
	if cfg.EmailSendTimeout != 10*time.Second {
		t.Fatalf("expected default timeout, got %s", cfg.EmailSendTimeout)
	}
	if cfg.RateLimitRPS != 1 {
		t.Fatalf("expected default rps, got %v", cfg.RateLimitRPS)
	}
	if cfg.RedisDB != 0 {
		t.Fatalf("expected default redis db, got %d", cfg.RedisDB)
	}
}
