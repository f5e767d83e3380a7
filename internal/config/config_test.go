package config

import (
	"errors"
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"seedrec/internal/domain/entity"
)

// clearEnv blanks every mapped variable for the duration of the test.
func clearEnv(t *testing.T) {
	t.Helper()
	for k := range envMappings {
		t.Setenv(strings.ToUpper(k), "")
	}
}

func TestLoad_Defaults(t *testing.T) {
	clearEnv(t)
	t.Setenv("GEMINI_API_KEY", "test-key")

	cfg, err := Load()
	if err != nil {
		t.Fatalf("Load() error = %v", err)
	}
	if cfg.Server.Port != 3000 {
		t.Errorf("port = %d, want 3000", cfg.Server.Port)
	}
	if cfg.Gemini.Model != "gemini-2.5-flash" {
		t.Errorf("model = %q", cfg.Gemini.Model)
	}
	if cfg.Gemini.MaxRetries != 2 {
		t.Errorf("max retries = %d, want 2", cfg.Gemini.MaxRetries)
	}
	if cfg.RateLimit.Max != 10 || cfg.RateLimit.Window != 15*time.Minute {
		t.Errorf("rate limit = %+v", cfg.RateLimit)
	}
	if cfg.Addr() != ":3000" {
		t.Errorf("addr = %q", cfg.Addr())
	}
}

func TestLoad_EnvOverrides(t *testing.T) {
	clearEnv(t)
	t.Setenv("GEMINI_API_KEY", "test-key")
	t.Setenv("PORT", "8081")
	t.Setenv("RATE_LIMIT_MAX", "3")
	t.Setenv("RATE_LIMIT_WINDOW", "1m")
	t.Setenv("GEMINI_RETRY_BASE_DELAY", "250ms")
	t.Setenv("CORS_ORIGINS", "https://a.example, https://b.example")
	t.Setenv("LOG_FORMAT", "console")

	cfg, err := Load()
	if err != nil {
		t.Fatalf("Load() error = %v", err)
	}
	if cfg.Server.Port != 8081 {
		t.Errorf("port = %d", cfg.Server.Port)
	}
	if cfg.RateLimit.Max != 3 || cfg.RateLimit.Window != time.Minute {
		t.Errorf("rate limit = %+v", cfg.RateLimit)
	}
	if cfg.Gemini.RetryBaseDelay != 250*time.Millisecond {
		t.Errorf("retry base delay = %v", cfg.Gemini.RetryBaseDelay)
	}
	if len(cfg.Server.CORSOrigins) != 2 || cfg.Server.CORSOrigins[1] != "https://b.example" {
		t.Errorf("cors origins = %v", cfg.Server.CORSOrigins)
	}
	if cfg.Log.Format != "console" {
		t.Errorf("log format = %q", cfg.Log.Format)
	}
}

func TestLoad_MissingCredentialIsFatal(t *testing.T) {
	clearEnv(t)

	_, err := Load()
	if !errors.Is(err, entity.ErrMissingCredential) {
		t.Fatalf("Load() error = %v, want ErrMissingCredential", err)
	}
}

func TestLoad_VertexNeedsProjectAndLocation(t *testing.T) {
	clearEnv(t)
	t.Setenv("GEMINI_BACKEND", "vertex")
	t.Setenv("GOOGLE_CLOUD_PROJECT", "proj")

	if _, err := Load(); !errors.Is(err, entity.ErrMissingCredential) {
		t.Fatalf("Load() error = %v, want ErrMissingCredential", err)
	}

	t.Setenv("GOOGLE_CLOUD_LOCATION", "us-central1")
	if _, err := Load(); err != nil {
		t.Fatalf("Load() error = %v", err)
	}
}

func TestValidate_Bounds(t *testing.T) {
	cfg := defaultConfig()
	cfg.Gemini.APIKey = "k"
	cfg.RateLimit.Max = 0
	if err := cfg.Validate(); err == nil {
		t.Fatal("expected validation error for zero rate limit")
	}

	cfg = defaultConfig()
	cfg.Gemini.APIKey = "k"
	cfg.Gemini.Backend = "openai"
	if err := cfg.Validate(); err == nil {
		t.Fatal("expected validation error for unknown backend")
	}
}

func TestLoadDotEnv(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, ".env")
	if err := os.WriteFile(path, []byte("SEEDREC_DOTENV_PROBE=loaded\n"), 0o600); err != nil {
		t.Fatal(err)
	}
	t.Cleanup(func() { os.Unsetenv("SEEDREC_DOTENV_PROBE") })

	if err := LoadDotEnv(path); err != nil {
		t.Fatalf("LoadDotEnv() error = %v", err)
	}
	if got := os.Getenv("SEEDREC_DOTENV_PROBE"); got != "loaded" {
		t.Fatalf("SEEDREC_DOTENV_PROBE = %q", got)
	}

	if err := LoadDotEnv(filepath.Join(dir, "missing.env")); err == nil {
		t.Fatal("expected error for missing env file")
	}
}
