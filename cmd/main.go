package main

import (
	"context"
	"errors"
	"net/http"
	"os"
	"os/signal"
	"runtime"
	"syscall"
	"time"

	"github.com/okian/utilapi/internal/adapters/http/api"
	"github.com/okian/utilapi/internal/adapters/http/swagger"
	"github.com/okian/utilapi/internal/adapters/weather"
	"github.com/okian/utilapi/internal/config"
	"github.com/okian/utilapi/internal/domain/clock"
	"github.com/okian/utilapi/pkg/logger"
	"github.com/okian/utilapi/pkg/metrics"
)

// HTTP server timeout constants.
const (
	readTimeout               = 10 * time.Second
	idleTimeout               = 60 * time.Second
	readHeaderTimeout         = 5 * time.Second
	shutdownTimeout           = 30 * time.Second
	systemMetricsInterval     = 10 * time.Second
	nanosecondsPerMillisecond = 1e6
	// writeTimeout must outlive the outbound weather timeout.
	writeTimeoutSlack = 5 * time.Second
)

func main() {
	if err := logger.Init(); err != nil {
		os.Stderr.WriteString("failed to initialize logging: " + err.Error() + "\n")
		os.Exit(1)
	}

	// Root context with cancel on SIGINT/SIGTERM.
	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	// Load configuration (defaults -> optional file -> env)
	cfg, err := config.Load(ctx)
	if err != nil {
		logger.Get().Error(ctx, "failed to load config", logger.Error(err))
		os.Exit(1)
	}

	if err := logger.Init(logger.WithFormat(cfg.LogFormat)); err != nil {
		os.Stderr.WriteString("failed to initialize logging: " + err.Error() + "\n")
		os.Exit(1)
	}
	defer func() { _ = logger.Sync() }()
	log := logger.Get()

	// Apply configured log level (fallback to info on invalid input)
	if err := logger.SetLevelString(cfg.LogLevel); err != nil {
		log.Warn(ctx, "invalid log_level; falling back to info", logger.String("log_level", cfg.LogLevel), logger.Error(err))
		_ = logger.SetLevelString("info")
	}

	if cfg.WeatherAPIKey == "" {
		log.Warn(ctx, "weather API key not set; /weather will answer 500")
	}

	if cfg.MetricsEnabled {
		go startSystemMetricsUpdater(ctx)
	}

	srv := newHTTPServer(cfg, newHandler(ctx, cfg, log))

	serveErr := make(chan error, 1)
	go func() {
		log.Info(ctx, "starting HTTP server", logger.String("addr", srv.Addr))
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			serveErr <- err
		}
		close(serveErr)
	}()

	select {
	case <-ctx.Done():
		log.Info(ctx, "shutting down server...")
	case err := <-serveErr:
		if err != nil {
			log.Error(ctx, "HTTP server failed", logger.Error(err))
			os.Exit(1)
		}
	}

	// Graceful shutdown with timeout
	shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
	defer cancel()

	if err := srv.Shutdown(shutdownCtx); err != nil {
		log.Error(ctx, "server shutdown failed", logger.Error(err))
	}

	log.Info(ctx, "server stopped")
}

// newHandler wires the weather client, API routes and docs.
func newHandler(ctx context.Context, cfg *config.Config, log logger.Logger) http.Handler {
	wc := weather.New(cfg.WeatherAPIKey,
		weather.WithBaseURL(cfg.WeatherBaseURL),
		weather.WithTimeout(weatherTimeout(cfg)),
		weather.WithLogger(log.Named("weather")),
	)

	apiServer := api.NewServer(
		api.WithLogger(log),
		api.WithMessage(cfg.Message),
		api.WithMaxBodyBytes(cfg.MaxBodyBytes),
		api.WithMetricsEnabled(cfg.MetricsEnabled),
		api.WithClock(clock.New()),
		api.WithWeather(wc),
	)
	return apiServer.Routes(ctx, swagger.Register)
}

func newHTTPServer(cfg *config.Config, h http.Handler) *http.Server {
	return &http.Server{
		Addr:              cfg.Addr(),
		Handler:           h,
		ReadTimeout:       readTimeout,
		WriteTimeout:      weatherTimeout(cfg) + writeTimeoutSlack,
		IdleTimeout:       idleTimeout,
		ReadHeaderTimeout: readHeaderTimeout,
	}
}

func weatherTimeout(cfg *config.Config) time.Duration {
	return time.Duration(cfg.WeatherTimeoutMS) * time.Millisecond
}

// startSystemMetricsUpdater refreshes process gauges until ctx is done.
func startSystemMetricsUpdater(ctx context.Context) {
	ticker := time.NewTicker(systemMetricsInterval)
	defer ticker.Stop()

	updateSystemMetrics()
	for {
		select {
		case <-ctx.Done():
			return
		case <-ticker.C:
			updateSystemMetrics()
		}
	}
}

// updateSystemMetrics updates system-level metrics.
func updateSystemMetrics() {
	var m runtime.MemStats
	runtime.ReadMemStats(&m)

	var avgPauseMs float64
	if m.NumGC > 0 {
		avgPauseMs = float64(m.PauseTotalNs) / float64(m.NumGC) / nanosecondsPerMillisecond
	}
	metrics.UpdateSystem(m.Alloc, runtime.NumGoroutine(), avgPauseMs)
}
