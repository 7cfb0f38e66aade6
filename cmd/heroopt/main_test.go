package main

import (
	"bytes"
	"context"
	"encoding/json"
	"os"
	"path/filepath"
	"testing"

	appconfig "github.com/Kariaki58/favfareclinic/internal/config"
	"github.com/Kariaki58/favfareclinic/internal/llm"
	"github.com/Kariaki58/favfareclinic/internal/optimizer"
)

func TestLoadInputDefaultsToSample(t *testing.T) {
	in, err := loadInput("")
	if err != nil {
		t.Fatalf("loadInput: %v", err)
	}
	if len(in.HeadlineVariations) != len(optimizer.MockInput().HeadlineVariations) {
		t.Fatalf("expected sample headlines, got %v", in.HeadlineVariations)
	}
}

func TestLoadInputFromFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "input.json")
	body := `{"headlineVariations":["A"],"subheadlineVariations":["B"],"clickThroughRates":{"A":0.1},"engagementMetrics":{"A":12}}`
	if err := os.WriteFile(path, []byte(body), 0o600); err != nil {
		t.Fatalf("write: %v", err)
	}
	in, err := loadInput(path)
	if err != nil {
		t.Fatalf("loadInput: %v", err)
	}
	if in.HeadlineVariations[0] != "A" || in.ClickThroughRates["A"] != 0.1 {
		t.Fatalf("unexpected input %+v", in)
	}
}

func TestLoadInputRejectsBadJSON(t *testing.T) {
	path := filepath.Join(t.TempDir(), "input.json")
	if err := os.WriteFile(path, []byte("{"), 0o600); err != nil {
		t.Fatalf("write: %v", err)
	}
	if _, err := loadInput(path); err == nil {
		t.Fatalf("expected decode error")
	}
}

func TestNewClientSelection(t *testing.T) {
	ctx := context.Background()

	if _, err := newClient(ctx, &appconfig.Config{}, "gemini"); err == nil {
		t.Fatalf("expected error without gemini key")
	}
	if _, err := newClient(ctx, &appconfig.Config{}, "bedrock"); err == nil {
		t.Fatalf("expected error without bedrock model")
	}
	if _, err := newClient(ctx, &appconfig.Config{}, "carrier-pigeon"); err == nil {
		t.Fatalf("expected error for unknown provider")
	}

	client, err := newClient(ctx, &appconfig.Config{
		AWSRegion:          "us-east-1",
		AWSAccessKeyID:     "test",
		AWSSecretAccessKey: "test",
		BedrockModelID:     "anthropic.claude-3-haiku-20240307-v1:0",
	}, "auto")
	if err != nil {
		t.Fatalf("newClient: %v", err)
	}
	if _, ok := client.(*llm.BedrockClient); !ok {
		t.Fatalf("expected bedrock client, got %T", client)
	}
}

func TestWriteOutput(t *testing.T) {
	var buf bytes.Buffer
	want := optimizer.Output{OptimizedHeadline: "H", OptimizedSubheadline: "S", Reasoning: "R"}
	if err := writeOutput(&buf, want); err != nil {
		t.Fatalf("writeOutput: %v", err)
	}
	var got optimizer.Output
	if err := json.Unmarshal(buf.Bytes(), &got); err != nil {
		t.Fatalf("decode: %v", err)
	}
	if got != want {
		t.Fatalf("expected %+v, got %+v", want, got)
	}
}
