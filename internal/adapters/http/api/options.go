package api

import (
	"github.com/okian/utilapi/internal/domain/clock"
	"github.com/okian/utilapi/pkg/logger"
)

const (
	defaultMessage      = "Hello Chief! Your API is live 🚀"
	defaultMaxBodyBytes = 1 << 20
)

// Option applies a configuration option to the Server.
type Option func(*Server)

// WithLogger sets the logger used by handlers and middleware.
func WithLogger(l logger.Logger) Option {
	return func(s *Server) {
		if l != nil {
			s.logger = l
		}
	}
}

// WithMessage sets the greeting returned by GET /.
func WithMessage(msg string) Option {
	return func(s *Server) {
		if msg != "" {
			s.message = msg
		}
	}
}

// WithMaxBodyBytes caps request bodies read by JSON handlers.
func WithMaxBodyBytes(n int64) Option {
	return func(s *Server) {
		if n > 0 {
			s.maxBodyBytes = n
		}
	}
}

// WithMetricsEnabled mounts GET /metrics.
func WithMetricsEnabled(enabled bool) Option {
	return func(s *Server) {
		s.metricsEnabled = enabled
	}
}

// WithClock sets the clock behind GET /time.
func WithClock(c *clock.Clock) Option {
	return func(s *Server) {
		if c != nil {
			s.clock = c
		}
	}
}

// WithWeather sets the weather upstream. Without it /weather answers 500.
func WithWeather(w WeatherLookup) Option {
	return func(s *Server) {
		s.weather = w
	}
}
