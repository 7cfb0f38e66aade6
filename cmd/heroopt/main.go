// Command heroopt runs the hero copy optimizer once and prints the suggestion.
// Without -input it uses the sample analytics.
package main

import (
	"context"
	"encoding/json"
	"flag"
	"fmt"
	"io"
	"os"
	"time"

	"github.com/joho/godotenv"

	"github.com/Kariaki58/favfareclinic/cmd/mainconfig"
	appconfig "github.com/Kariaki58/favfareclinic/internal/config"
	"github.com/Kariaki58/favfareclinic/internal/llm"
	"github.com/Kariaki58/favfareclinic/internal/optimizer"
	"github.com/Kariaki58/favfareclinic/pkg/logging"
)

var (
	flagInput    string
	flagProvider string
	flagTimeout  time.Duration
)

func main() {
	_ = godotenv.Load()

	flag.StringVar(&flagInput, "input", "", "Path to an analytics JSON file (default: sample data)")
	flag.StringVar(&flagProvider, "provider", "auto", "LLM provider: auto, gemini, bedrock")
	flag.DurationVar(&flagTimeout, "timeout", 60*time.Second, "Overall timeout")
	flag.Parse()

	cfg := appconfig.Load()
	logger := logging.New(cfg.LogLevel)

	ctx, cancel := context.WithTimeout(context.Background(), flagTimeout)
	defer cancel()

	in, err := loadInput(flagInput)
	if err != nil {
		fmt.Fprintf(os.Stderr, "read input: %v\n", err)
		os.Exit(2)
	}

	client, err := newClient(ctx, cfg, flagProvider)
	if err != nil {
		fmt.Fprintf(os.Stderr, "llm: %v\n", err)
		os.Exit(1)
	}

	svc := optimizer.NewService(client, flagTimeout, nil, logger)
	start := time.Now()
	out, err := svc.Optimize(ctx, in)
	if err != nil {
		fmt.Fprintf(os.Stderr, "optimize: %v\n", err)
		os.Exit(1)
	}
	logger.Info("optimizer finished", "duration_ms", time.Since(start).Milliseconds())

	if err := writeOutput(os.Stdout, out); err != nil {
		fmt.Fprintf(os.Stderr, "write output: %v\n", err)
		os.Exit(1)
	}
}

func loadInput(path string) (optimizer.Input, error) {
	if path == "" {
		return optimizer.MockInput(), nil
	}
	raw, err := os.ReadFile(path)
	if err != nil {
		return optimizer.Input{}, err
	}
	var in optimizer.Input
	if err := json.Unmarshal(raw, &in); err != nil {
		return optimizer.Input{}, fmt.Errorf("decode %s: %w", path, err)
	}
	return in, nil
}

func newClient(ctx context.Context, cfg *appconfig.Config, provider string) (llm.Client, error) {
	if provider == "auto" {
		provider = "gemini"
		if cfg.GeminiAPIKey == "" && cfg.BedrockModelID != "" {
			provider = "bedrock"
		}
	}
	switch provider {
	case "gemini":
		return llm.NewGeminiClient(ctx, cfg.GeminiAPIKey, cfg.GeminiModelID)
	case "bedrock":
		if cfg.BedrockModelID == "" {
			return nil, fmt.Errorf("BEDROCK_MODEL_ID is required for bedrock")
		}
		awsCfg, err := mainconfig.LoadAWSConfig(ctx, cfg)
		if err != nil {
			return nil, err
		}
		return llm.NewBedrockClient(mainconfig.BedrockClient(awsCfg, cfg), cfg.BedrockModelID)
	default:
		return nil, fmt.Errorf("unknown provider %q", provider)
	}
}

func writeOutput(w io.Writer, out optimizer.Output) error {
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	return enc.Encode(out)
}
