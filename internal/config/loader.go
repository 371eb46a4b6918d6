package config

import (
	"context"
	"fmt"
	"os"
	"strconv"
	"strings"

	"github.com/knadh/koanf/parsers/yaml"
	"github.com/knadh/koanf/providers/env"
	"github.com/knadh/koanf/providers/file"
	"github.com/knadh/koanf/v2"
)

// Environment variables consulted outside the prefixed namespace.
const (
	envPrefix         = "UTILAPI_"
	envConfigFile     = "UTILAPI_CONFIG"
	envWeatherKeyFlat = "OPENWEATHER_API_KEY"
	envPortFlat       = "PORT"
	maxPort           = 65535
)

// Load builds a Config by layering defaults, optional file, and env vars.
// Order of precedence (low -> high):
//  1. defaults (New())
//  2. file (YAML) if UTILAPI_CONFIG is set
//  3. env (prefix UTILAPI_)
//
// OPENWEATHER_API_KEY and PORT are honored when neither the file nor the
// prefixed env vars set the corresponding key.
func Load(_ context.Context) (*Config, error) {
	base := New()

	k := koanf.New(".")

	if path := os.Getenv(envConfigFile); path != "" {
		if err := k.Load(file.Provider(path), yaml.Parser()); err != nil {
			return nil, fmt.Errorf("%w: file %s: %w", ErrLoadConfig, path, err)
		}
	}

	// UTILAPI_WEATHER_API_KEY -> weather_api_key (flat keys).
	envProvider := env.Provider(envPrefix, ".", func(s string) string {
		s = strings.ToLower(s)
		s = strings.TrimPrefix(s, strings.ToLower(envPrefix))
		return s
	})
	if err := k.Load(envProvider, nil); err != nil {
		return nil, fmt.Errorf("%w: env: %w", ErrLoadConfig, err)
	}

	cfg := *base
	if err := k.UnmarshalWithConf("", &cfg, koanf.UnmarshalConf{Tag: "koanf"}); err != nil {
		return nil, fmt.Errorf("%w: %w", ErrLoadConfig, err)
	}

	if !k.Exists("weather_api_key") {
		cfg.WeatherAPIKey = os.Getenv(envWeatherKeyFlat)
	}
	if !k.Exists("port") {
		if raw := strings.TrimSpace(os.Getenv(envPortFlat)); raw != "" {
			port, err := strconv.Atoi(raw)
			if err != nil {
				return nil, fmt.Errorf("%w: PORT=%q: %w", ErrLoadConfig, raw, err)
			}
			cfg.Port = port
		}
	}

	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return &cfg, nil
}

// Validate reports the first invalid setting, wrapped in ErrInvalidConfig.
func (c *Config) Validate() error {
	switch {
	case c.Port < 1 || c.Port > maxPort:
		return fmt.Errorf("%w: port must be between 1 and %d, got %d", ErrInvalidConfig, maxPort, c.Port)
	case strings.TrimSpace(c.WeatherBaseURL) == "":
		return fmt.Errorf("%w: weather_base_url must not be empty", ErrInvalidConfig)
	case c.WeatherTimeoutMS <= 0:
		return fmt.Errorf("%w: weather_timeout_ms must be positive", ErrInvalidConfig)
	case c.MaxBodyBytes <= 0:
		return fmt.Errorf("%w: max_body_bytes must be positive", ErrInvalidConfig)
	}
	switch strings.ToLower(c.LogFormat) {
	case "text", "json":
	default:
		return fmt.Errorf("%w: unknown log_format %q", ErrInvalidConfig, c.LogFormat)
	}
	return nil
}
