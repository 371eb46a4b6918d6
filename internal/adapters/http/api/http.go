// Package api declares HTTP contracts and route registration helpers.
package api

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"io"
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"

	"github.com/okian/utilapi/internal/domain/clock"
	"github.com/okian/utilapi/pkg/logger"
)

// Mount registers additional routes (docs, metrics, ...) on the router.
type Mount func(ctx context.Context, r chi.Router)

// Server wires HTTP routes for the utility API.
type Server struct {
	logger         logger.Logger
	message        string
	maxBodyBytes   int64
	metricsEnabled bool
	clock          *clock.Clock
	weather        WeatherLookup

	homeHandler      *HomeHandler
	healthHandler    *HealthHandler
	timeHandler      *TimeHandler
	echoHandler      *EchoHandler
	transformHandler *TransformHandler
	summarizeHandler *SummarizeHandler
	weatherHandler   *WeatherHandler
}

// NewServer creates a new API server with all handlers.
func NewServer(opts ...Option) *Server {
	s := &Server{
		logger:       logger.Nop(),
		message:      defaultMessage,
		maxBodyBytes: defaultMaxBodyBytes,
	}
	for _, opt := range opts {
		opt(s)
	}
	if s.clock == nil {
		s.clock = clock.New()
	}

	s.homeHandler = NewHomeHandler(s.message)
	s.healthHandler = NewHealthHandler()
	s.timeHandler = NewTimeHandler(s.clock)
	s.echoHandler = NewEchoHandler(s.maxBodyBytes)
	s.transformHandler = NewTransformHandler(s.maxBodyBytes)
	s.summarizeHandler = NewSummarizeHandler(s.maxBodyBytes)
	s.weatherHandler = NewWeatherHandler(s.weather, s.logger.Named("weather"))
	return s
}

// Routes builds the router: middleware, JSON 404/405 and every endpoint.
// Extra mounts are registered after the business routes.
func (s *Server) Routes(ctx context.Context, mounts ...Mount) http.Handler {
	r := chi.NewRouter()

	r.Use(Recover(s.logger))
	r.Use(RequestID)
	r.Use(middleware.StripSlashes)
	r.Use(middleware.GetHead)
	r.Use(AccessLog(s.logger.Named("http")))
	r.Use(MetricsMiddleware)

	r.NotFound(func(w http.ResponseWriter, _ *http.Request) {
		writeError(w, http.StatusNotFound, "not_found", errors.New("not found"))
	})
	r.MethodNotAllowed(func(w http.ResponseWriter, _ *http.Request) {
		writeError(w, http.StatusMethodNotAllowed, "method_not_allowed", errors.New("method not allowed"))
	})

	r.Get("/", s.homeHandler.HandleHome)
	r.Get("/health", s.healthHandler.HandleHealth)
	r.Get("/time", s.timeHandler.HandleTime)
	r.Post("/echo", s.echoHandler.HandleEcho)
	r.Post("/transform", s.transformHandler.HandleTransform)
	r.Post("/summarize", s.summarizeHandler.HandleSummarize)
	r.Get("/weather", s.weatherHandler.HandleWeather)
	if s.metricsEnabled {
		r.Get("/metrics", NewMetricsHandler().HandleMetrics)
	}

	for _, m := range mounts {
		if m != nil {
			m(ctx, r)
		}
	}
	return r
}

type errorResponse struct {
	Error string `json:"error"`
	Code  string `json:"code"`
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json; charset=utf-8")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(v)
}

func writeError(w http.ResponseWriter, status int, code string, err error) {
	msg := http.StatusText(status)
	if err != nil {
		msg = clientMessage(err)
	}
	writeJSON(w, status, errorResponse{Error: msg, Code: code})
}

// readBody reads at most limit bytes of the request body.
func readBody(w http.ResponseWriter, r *http.Request, limit int64) ([]byte, error) {
	if r.Body == nil {
		return nil, nil
	}
	return io.ReadAll(http.MaxBytesReader(w, r.Body, limit))
}

// decodeJSONObject decodes the body into dst. An empty body leaves dst untouched.
func decodeJSONObject(w http.ResponseWriter, r *http.Request, limit int64, dst any) error {
	body, err := readBody(w, r, limit)
	if err != nil {
		return err
	}
	if len(bytes.TrimSpace(body)) == 0 {
		return nil
	}
	return json.Unmarshal(body, dst)
}
