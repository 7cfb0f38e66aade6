package optimizer

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/go-playground/validator/v10"
	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"

	"github.com/Kariaki58/favfareclinic/internal/llm"
	"github.com/Kariaki58/favfareclinic/internal/observability/metrics"
	"github.com/Kariaki58/favfareclinic/internal/templates"
	"github.com/Kariaki58/favfareclinic/pkg/logging"
)

var tracer = otel.Tracer("favfare.internal.optimizer")

// DefaultTimeout bounds one optimizer run.
const DefaultTimeout = 30 * time.Second

var (
	ErrDisabled      = errors.New("optimizer: no text generation provider configured")
	ErrInvalidInput  = errors.New("optimizer: invalid input")
	ErrMalformedCopy = errors.New("optimizer: model reply is not a valid suggestion")
)

// Service runs the hero copy optimizer.
type Service struct {
	client   llm.Client
	validate *validator.Validate
	renderer templates.Renderer
	timeout  time.Duration
	metrics  *metrics.FormMetrics
	logger   *logging.Logger
}

// NewService creates an optimizer. A nil client yields a disabled service.
func NewService(client llm.Client, timeout time.Duration, m *metrics.FormMetrics, logger *logging.Logger) *Service {
	if timeout <= 0 {
		timeout = DefaultTimeout
	}
	if logger == nil {
		logger = logging.Default()
	}
	return &Service{
		client:   client,
		validate: validator.New(),
		timeout:  timeout,
		metrics:  m,
		logger:   logger,
	}
}

// Enabled reports whether a provider is configured.
func (s *Service) Enabled() bool {
	return s != nil && s.client != nil
}

// Optimize asks the model for the best headline and subheadline.
func (s *Service) Optimize(ctx context.Context, in Input) (Output, error) {
	if !s.Enabled() {
		return Output{}, ErrDisabled
	}

	ctx, span := tracer.Start(ctx, "optimizer.optimize")
	defer span.End()
	span.SetAttributes(
		attribute.Int("favfare.headlines", len(in.HeadlineVariations)),
		attribute.Int("favfare.subheadlines", len(in.SubheadlineVariations)),
	)

	start := time.Now()
	out, err := s.optimize(ctx, in)
	status := "ok"
	if err != nil {
		status = "error"
		span.RecordError(err)
	}
	s.metrics.ObserveOptimizer(status, time.Since(start).Seconds())
	return out, err
}

func (s *Service) optimize(ctx context.Context, in Input) (Output, error) {
	if err := s.validate.Struct(in); err != nil {
		return Output{}, fmt.Errorf("%w: %v", ErrInvalidInput, err)
	}

	prompt, err := s.renderer.Render("hero_copy", promptTemplate, in)
	if err != nil {
		return Output{}, fmt.Errorf("optimizer: %w", err)
	}

	ctx, cancel := context.WithTimeout(ctx, s.timeout)
	defer cancel()

	resp, err := s.client.Complete(ctx, llm.Request{
		System:      []string{systemPrompt},
		Messages:    []llm.Message{{Role: llm.RoleUser, Content: prompt}},
		MaxTokens:   1024,
		Temperature: 0.4,
		JSON:        true,
	})
	if err != nil {
		s.logger.Error("optimizer completion failed", "error", err)
		return Output{}, fmt.Errorf("optimizer: complete: %w", err)
	}

	out, err := parseOutput(resp.Text)
	if err != nil {
		s.logger.Warn("optimizer reply rejected", "error", err, "length", len(resp.Text))
		return Output{}, err
	}
	s.logger.Info("optimizer suggestion ready", "headline", out.OptimizedHeadline, "tokens", resp.Usage.TotalTokens)
	return out, nil
}

// parseOutput extracts the JSON object from a reply, tolerating code fences
// and surrounding prose.
func parseOutput(text string) (Output, error) {
	text = strings.TrimSpace(text)
	start := strings.Index(text, "{")
	end := strings.LastIndex(text, "}")
	if start < 0 || end <= start {
		return Output{}, fmt.Errorf("%w: no JSON object found", ErrMalformedCopy)
	}

	var out Output
	if err := json.Unmarshal([]byte(text[start:end+1]), &out); err != nil {
		return Output{}, fmt.Errorf("%w: %v", ErrMalformedCopy, err)
	}
	out.OptimizedHeadline = strings.TrimSpace(out.OptimizedHeadline)
	out.OptimizedSubheadline = strings.TrimSpace(out.OptimizedSubheadline)
	out.Reasoning = strings.TrimSpace(out.Reasoning)
	if out.OptimizedHeadline == "" || out.OptimizedSubheadline == "" || out.Reasoning == "" {
		return Output{}, fmt.Errorf("%w: missing fields", ErrMalformedCopy)
	}
	return out, nil
}
