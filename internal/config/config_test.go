package config

import (
	"os"
	"path/filepath"
	"reflect"
	"testing"
	"time"
)

func TestParseDefaults(t *testing.T) {
	t.Setenv("OCRSPACE_APIKEY", "K123")

	cfg, err := Parse([]string{"receipt.png", "https://example.com/a.png"})
	if err != nil {
		t.Fatalf("Parse() error = %v", err)
	}
	if cfg.APIKey != "K123" {
		t.Errorf("APIKey = %q", cfg.APIKey)
	}
	if cfg.Timeout != 60*time.Second || cfg.Concurrency != 4 || cfg.Env != "dev" {
		t.Errorf("unexpected defaults: %+v", cfg)
	}
	want := Params{Language: "auto", OCREngine: "2", OverlayRequired: "false", Scale: "true", Table: "true"}
	if cfg.Params != want {
		t.Errorf("Params = %+v, want %+v", cfg.Params, want)
	}
	if !reflect.DeepEqual(cfg.Inputs, []string{"receipt.png", "https://example.com/a.png"}) {
		t.Errorf("Inputs = %v", cfg.Inputs)
	}
}

func TestParseConfigFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "config.yaml")
	yaml := `env: prod
api_key: from-file
endpoint: https://api2.ocr.space/parse/image
concurrency: 8
server: ":8080"
params:
  language: ger
  table: "false"
`
	if err := os.WriteFile(path, []byte(yaml), 0o600); err != nil {
		t.Fatalf("write config: %v", err)
	}
	t.Setenv("OCRSPACE_LANGUAGE", "pol")

	cfg, err := Parse([]string{"-config", path, "-reencode", "-serve"})
	if err != nil {
		t.Fatalf("Parse() error = %v", err)
	}
	if cfg.Env != "prod" || cfg.APIKey != "from-file" || cfg.Concurrency != 8 {
		t.Errorf("file values not applied: %+v", cfg)
	}
	if cfg.Endpoint != "https://api2.ocr.space/parse/image" {
		t.Errorf("Endpoint = %q", cfg.Endpoint)
	}
	if cfg.Params.Language != "pol" {
		t.Errorf("env should override file, got language %q", cfg.Params.Language)
	}
	if cfg.Params.Table != "false" || cfg.Params.Scale != "true" {
		t.Errorf("unexpected params: %+v", cfg.Params)
	}
	if !cfg.Reencode || !cfg.Serve {
		t.Errorf("flags not applied: %+v", cfg)
	}
}

func TestParseErrors(t *testing.T) {
	tests := map[string][]string{
		"no inputs":            {},
		"missing config file":  {"-config", filepath.Join(t.TempDir(), "nope.yaml"), "a.png"},
		"serve without server": {"-serve"},
		"unknown flag":         {"-bogus", "a.png"},
	}
	for name, args := range tests {
		if _, err := Parse(args); err == nil {
			t.Errorf("%s: expected error", name)
		}
	}
}

func TestParseRejectsBadConcurrency(t *testing.T) {
	t.Setenv("OCRSPACE_CONCURRENCY", "0")
	if _, err := Parse([]string{"a.png"}); err == nil {
		t.Fatalf("expected error for zero concurrency")
	}
}
