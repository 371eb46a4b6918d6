// Package config defines service configuration structures and loading hooks.
//
// Conventions:
// - Provide New() to build a Config with defaults.
// - Loading functions accept context.Context as the first parameter.
// - External errors are wrapped with this package's sentinel kinds.
package config

import (
	"net"
	"strconv"
)

// Default values for the service configuration.
const (
	DefaultHost           = "0.0.0.0"
	DefaultPort           = 5000
	DefaultMessage        = "Hello Chief! Your API is live 🚀"
	DefaultWeatherBaseURL = "https://api.openweathermap.org/data/2.5/weather"
	DefaultWeatherTimeout = 10_000
	DefaultMaxBodyBytes   = 1 << 20
)

// Config contains process configuration.
type Config struct {
	// LogLevel controls verbosity: debug, info, warn, error.
	LogLevel string `koanf:"log_level"`

	// LogFormat selects the slog handler: text or json.
	LogFormat string `koanf:"log_format"`

	// Host and Port configure the HTTP listen address.
	Host string `koanf:"host"`
	Port int    `koanf:"port"`

	// Message is returned by GET /.
	Message string `koanf:"message"`

	// WeatherAPIKey authenticates against the weather upstream. Empty disables
	// the /weather endpoint (it answers 500).
	WeatherAPIKey string `koanf:"weather_api_key"`

	// WeatherBaseURL is the upstream current-weather endpoint.
	WeatherBaseURL string `koanf:"weather_base_url"`

	// WeatherTimeoutMS bounds the single outbound weather call.
	WeatherTimeoutMS int `koanf:"weather_timeout_ms"`

	// MaxBodyBytes caps request bodies read by JSON handlers.
	MaxBodyBytes int64 `koanf:"max_body_bytes"`

	// MetricsEnabled mounts GET /metrics.
	MetricsEnabled bool `koanf:"metrics_enabled"`
}

// New creates a Config populated with defaults.
func New() *Config {
	return &Config{
		LogLevel:         "info",
		LogFormat:        "text",
		Host:             DefaultHost,
		Port:             DefaultPort,
		Message:          DefaultMessage,
		WeatherBaseURL:   DefaultWeatherBaseURL,
		WeatherTimeoutMS: DefaultWeatherTimeout,
		MaxBodyBytes:     DefaultMaxBodyBytes,
		MetricsEnabled:   true,
	}
}

// Addr returns the host:port listen address.
func (c *Config) Addr() string {
	return net.JoinHostPort(c.Host, strconv.Itoa(c.Port))
}
