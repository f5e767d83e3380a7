// Package config loads service configuration from defaults, an optional .env
// file and the process environment, in that order of precedence.
package config

import (
	"errors"
	"fmt"
	"os"
	"strings"
	"time"

	"github.com/go-playground/validator/v10"
	"github.com/joho/godotenv"
	"github.com/knadh/koanf/providers/env"
	"github.com/knadh/koanf/providers/structs"
	"github.com/knadh/koanf/v2"

	"seedrec/internal/domain/entity"
)

const (
	BackendGemini = "gemini"
	BackendVertex = "vertex"
)

type Config struct {
	Server    ServerConfig    `koanf:"server"`
	Gemini    GeminiConfig    `koanf:"gemini"`
	RateLimit RateLimitConfig `koanf:"ratelimit"`
	Log       LogConfig       `koanf:"log"`
}

type ServerConfig struct {
	Port            int           `koanf:"port" validate:"min=1,max=65535"`
	Version         string        `koanf:"version"`
	Env             string        `koanf:"env"`
	CORSOrigins     []string      `koanf:"cors_origins"`
	MetricsEnabled  bool          `koanf:"metrics_enabled"`
	WarmupEnabled   bool          `koanf:"warmup_enabled"`
	ShutdownTimeout time.Duration `koanf:"shutdown_timeout" validate:"gt=0"`
}

type GeminiConfig struct {
	Backend        string        `koanf:"backend" validate:"oneof=gemini vertex"`
	APIKey         string        `koanf:"api_key"`
	Project        string        `koanf:"project"`
	Location       string        `koanf:"location"`
	Model          string        `koanf:"model" validate:"required"`
	FallbackModel  string        `koanf:"fallback_model"`
	Timeout        time.Duration `koanf:"timeout" validate:"gt=0"`
	MaxRetries     int           `koanf:"max_retries" validate:"min=0,max=10"`
	RetryBaseDelay time.Duration `koanf:"retry_base_delay" validate:"gte=0"`
}

type RateLimitConfig struct {
	Max           int           `koanf:"max" validate:"min=1"`
	Window        time.Duration `koanf:"window" validate:"gt=0"`
	SweepInterval time.Duration `koanf:"sweep_interval" validate:"gt=0"`
}

type LogConfig struct {
	Level  string `koanf:"level"`
	Format string `koanf:"format" validate:"oneof=json console"`
}

func defaultConfig() *Config {
	return &Config{
		Server: ServerConfig{
			Port:            3000,
			Env:             "development",
			CORSOrigins:     []string{"*"},
			MetricsEnabled:  true,
			ShutdownTimeout: 10 * time.Second,
		},
		Gemini: GeminiConfig{
			Backend:        BackendGemini,
			Model:          "gemini-2.5-flash",
			Timeout:        25 * time.Second,
			MaxRetries:     2,
			RetryBaseDelay: 100 * time.Millisecond,
		},
		RateLimit: RateLimitConfig{
			Max:           10,
			Window:        15 * time.Minute,
			SweepInterval: 5 * time.Minute,
		},
		Log: LogConfig{
			Level:  "info",
			Format: "json",
		},
	}
}

// envMappings maps environment variable names (lowercased) to koanf paths.
// Variables not listed here are ignored.
var envMappings = map[string]string{
	"port":                      "server.port",
	"app_version":               "server.version",
	"env":                       "server.env",
	"cors_origins":              "server.cors_origins",
	"metrics_enabled":           "server.metrics_enabled",
	"warmup_enabled":            "server.warmup_enabled",
	"shutdown_timeout":          "server.shutdown_timeout",
	"gemini_backend":            "gemini.backend",
	"gemini_api_key":            "gemini.api_key",
	"google_cloud_project":      "gemini.project",
	"google_cloud_location":     "gemini.location",
	"gemini_model":              "gemini.model",
	"gemini_fallback_model":     "gemini.fallback_model",
	"gemini_timeout":            "gemini.timeout",
	"gemini_max_retries":        "gemini.max_retries",
	"gemini_retry_base_delay":   "gemini.retry_base_delay",
	"rate_limit_max":            "ratelimit.max",
	"rate_limit_window":         "ratelimit.window",
	"rate_limit_sweep_interval": "ratelimit.sweep_interval",
	"log_level":                 "log.level",
	"log_format":                "log.format",
}

// envTransformFunc drops unmapped and empty variables so that an exported but
// blank variable does not clobber a default.
func envTransformFunc(key, value string) (string, interface{}) {
	if strings.TrimSpace(value) == "" {
		return "", nil
	}
	return envMappings[strings.ToLower(key)], value
}

// LoadDotEnv loads the given .env files into the process environment without
// overriding variables that are already set. Missing files are reported but
// are not fatal to the caller.
func LoadDotEnv(files ...string) error {
	var missing []string
	for _, f := range files {
		if _, err := os.Stat(f); err != nil {
			missing = append(missing, f)
			continue
		}
		if err := godotenv.Load(f); err != nil {
			return fmt.Errorf("load %s: %w", f, err)
		}
	}
	if len(missing) > 0 {
		return fmt.Errorf("env files not found: %s", strings.Join(missing, ", "))
	}
	return nil
}

// Load builds the configuration from defaults then environment variables and
// validates it. A missing upstream credential is returned as
// entity.ErrMissingCredential.
func Load() (*Config, error) {
	k := koanf.New(".")

	if err := k.Load(structs.Provider(defaultConfig(), "koanf"), nil); err != nil {
		return nil, fmt.Errorf("failed to load defaults: %w", err)
	}
	if err := k.Load(env.ProviderWithValue("", ".", envTransformFunc), nil); err != nil {
		return nil, fmt.Errorf("failed to load environment variables: %w", err)
	}

	// CORS_ORIGINS arrives as a comma separated string
	if raw, ok := k.Get("server.cors_origins").(string); ok {
		var origins []string
		for _, o := range strings.Split(raw, ",") {
			if o = strings.TrimSpace(o); o != "" {
				origins = append(origins, o)
			}
		}
		if err := k.Set("server.cors_origins", origins); err != nil {
			return nil, fmt.Errorf("failed to set cors origins: %w", err)
		}
	}

	cfg := &Config{}
	if err := k.Unmarshal("", cfg); err != nil {
		return nil, fmt.Errorf("failed to unmarshal configuration: %w", err)
	}
	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("configuration validation failed: %w", err)
	}
	return cfg, nil
}

// Validate checks field bounds and that the selected backend has credentials.
func (c *Config) Validate() error {
	v := validator.New(validator.WithRequiredStructEnabled())
	if err := v.Struct(c); err != nil {
		var verrs validator.ValidationErrors
		if errors.As(err, &verrs) {
			msgs := make([]string, 0, len(verrs))
			for _, fe := range verrs {
				msgs = append(msgs, fmt.Sprintf("%s failed %q", fe.Namespace(), fe.Tag()))
			}
			return errors.New(strings.Join(msgs, "; "))
		}
		return err
	}

	switch c.Gemini.Backend {
	case BackendVertex:
		if c.Gemini.Project == "" || c.Gemini.Location == "" {
			return fmt.Errorf("%w: GOOGLE_CLOUD_PROJECT and GOOGLE_CLOUD_LOCATION are required for the vertex backend", entity.ErrMissingCredential)
		}
	default:
		if c.Gemini.APIKey == "" {
			return fmt.Errorf("%w: GEMINI_API_KEY is not set", entity.ErrMissingCredential)
		}
	}
	return nil
}

// Addr is the fiber listen address.
func (c *Config) Addr() string {
	return fmt.Sprintf(":%d", c.Server.Port)
}
