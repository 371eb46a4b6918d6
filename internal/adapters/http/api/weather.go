// Package api declares HTTP contracts and route registration helpers.
package api

import (
	"context"
	"errors"
	"net/http"
	"strings"

	"github.com/okian/utilapi/internal/adapters/weather"
	"github.com/okian/utilapi/pkg/logger"
)

// WeatherLookup fetches current conditions from the upstream.
type WeatherLookup interface {
	Current(ctx context.Context, city, units string) (*weather.Report, error)
}

// WeatherHandler handles GET /weather requests.
type WeatherHandler struct {
	lookup WeatherLookup
	logger logger.Logger
}

// NewWeatherHandler creates a new weather handler. A nil lookup behaves
// like an upstream without an API key.
func NewWeatherHandler(lookup WeatherLookup, log logger.Logger) *WeatherHandler {
	return &WeatherHandler{lookup: lookup, logger: log}
}

// HandleWeather proxies one lookup to the upstream and reshapes the answer.
// Non-200 upstream answers are forwarded with their status and body.
func (h *WeatherHandler) HandleWeather(w http.ResponseWriter, r *http.Request) {
	const op = "api.weather"
	q := r.URL.Query()
	city := strings.TrimSpace(q.Get("city"))
	if city == "" {
		writeError(w, http.StatusBadRequest, "missing_city", NewKind(op, ErrMissingCity))
		return
	}
	if h.lookup == nil {
		writeError(w, http.StatusInternalServerError, "not_configured", NewKind(op, ErrNotConfigured))
		return
	}
	units := strings.TrimSpace(q.Get("units"))
	if units == "" {
		units = weather.DefaultUnits
	}

	report, err := h.lookup.Current(r.Context(), city, units)
	if err != nil {
		h.writeLookupError(w, r, op, err)
		return
	}
	writeJSON(w, http.StatusOK, report)
}

func (h *WeatherHandler) writeLookupError(w http.ResponseWriter, r *http.Request, op string, err error) {
	var se *weather.StatusError
	switch {
	case errors.As(err, &se):
		ct := se.ContentType
		if ct == "" {
			ct = "application/json; charset=utf-8"
		}
		w.Header().Set("Content-Type", ct)
		w.WriteHeader(se.StatusCode)
		_, _ = w.Write(se.Body)
	case errors.Is(err, weather.ErrMissingCity):
		writeError(w, http.StatusBadRequest, "missing_city", WrapKind(op, ErrMissingCity, err))
	case errors.Is(err, weather.ErrNotConfigured):
		writeError(w, http.StatusInternalServerError, "not_configured", WrapKind(op, ErrNotConfigured, err))
	case errors.Is(err, weather.ErrInvalidResponse):
		h.logger.Warn(r.Context(), "weather upstream sent an undecodable body", logger.Error(err))
		writeError(w, http.StatusBadGateway, "invalid_upstream_response", WrapKind(op, weather.ErrInvalidResponse, err))
	default:
		h.logger.Warn(r.Context(), "weather lookup failed", logger.Error(err))
		writeError(w, http.StatusBadGateway, "upstream_unavailable", WrapKind(op, ErrUpstream, err))
	}
}
