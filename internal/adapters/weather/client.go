// Package weather is a thin client for the OpenWeatherMap current-weather API.
// It performs exactly one GET per lookup with a fixed timeout; there is no
// retry and no caching.
package weather

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strconv"
	"strings"
	"time"

	"github.com/okian/utilapi/pkg/logger"
	"github.com/okian/utilapi/pkg/metrics"
)

// Client defaults.
const (
	DefaultBaseURL = "https://api.openweathermap.org/data/2.5/weather"
	DefaultTimeout = 10 * time.Second
	DefaultUnits   = "metric"

	upstreamName    = "openweathermap"
	maxResponseBody = 4 << 20
)

// Report is the reshaped upstream payload.
type Report struct {
	City    string          `json:"city"`
	Weather json.RawMessage `json:"weather"`
	Main    json.RawMessage `json:"main"`
	Raw     json.RawMessage `json:"raw"`
}

// upstreamPayload lists the fields picked out of the upstream body.
type upstreamPayload struct {
	Name    string          `json:"name"`
	Weather json.RawMessage `json:"weather"`
	Main    json.RawMessage `json:"main"`
}

// Client talks to the weather upstream.
type Client struct {
	apiKey     string
	baseURL    string
	timeout    time.Duration
	httpClient *http.Client
	logger     logger.Logger
}

// New creates a Client. An empty apiKey yields a client whose lookups fail
// with ErrNotConfigured.
func New(apiKey string, opts ...Option) *Client {
	c := &Client{
		apiKey:  strings.TrimSpace(apiKey),
		baseURL: DefaultBaseURL,
		timeout: DefaultTimeout,
		logger:  logger.Nop(),
	}
	for _, opt := range opts {
		opt(c)
	}
	if c.httpClient == nil {
		c.httpClient = &http.Client{}
	}
	hc := *c.httpClient
	hc.Timeout = c.timeout
	c.httpClient = &hc
	return c
}

// Configured reports whether an API key is present.
func (c *Client) Configured() bool {
	return c.apiKey != ""
}

// Current fetches current conditions for city. Units defaults to metric.
func (c *Client) Current(ctx context.Context, city, units string) (*Report, error) {
	const op = "weather.current"
	city = strings.TrimSpace(city)
	if city == "" {
		return nil, fmt.Errorf("%s: %w", op, ErrMissingCity)
	}
	if !c.Configured() {
		return nil, fmt.Errorf("%s: %w", op, ErrNotConfigured)
	}
	if strings.TrimSpace(units) == "" {
		units = DefaultUnits
	}

	endpoint, err := c.endpoint(city, units)
	if err != nil {
		return nil, fmt.Errorf("%s: %w: %w", op, ErrUnavailable, err)
	}
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, endpoint, http.NoBody)
	if err != nil {
		return nil, fmt.Errorf("%s: %w: %w", op, ErrUnavailable, err)
	}
	req.Header.Set("Accept", "application/json")

	start := time.Now()
	resp, err := c.httpClient.Do(req)
	if err != nil {
		c.observe("error", start)
		// Do's error embeds the URL, which carries the key.
		c.logger.Warn(ctx, "weather upstream request failed", logger.String("city", city), logger.Error(redact(err, c.apiKey)))
		return nil, fmt.Errorf("%s: %w", op, ErrUnavailable)
	}
	defer func() { _ = resp.Body.Close() }()

	body, err := io.ReadAll(io.LimitReader(resp.Body, maxResponseBody))
	if err != nil {
		c.observe("error", start)
		return nil, fmt.Errorf("%s: %w: read body: %w", op, ErrUnavailable, err)
	}

	if resp.StatusCode != http.StatusOK {
		c.observe(strconv.Itoa(resp.StatusCode), start)
		c.logger.Warn(ctx, "weather upstream returned non-200",
			logger.String("city", city), logger.Int("status", resp.StatusCode))
		return nil, &StatusError{
			StatusCode:  resp.StatusCode,
			ContentType: resp.Header.Get("Content-Type"),
			Body:        body,
		}
	}

	var p upstreamPayload
	if err := json.Unmarshal(body, &p); err != nil {
		c.observe("invalid", start)
		return nil, fmt.Errorf("%s: %w: %w", op, ErrInvalidResponse, err)
	}
	c.observe("ok", start)

	return &Report{
		City:    p.Name,
		Weather: p.Weather,
		Main:    p.Main,
		Raw:     json.RawMessage(body),
	}, nil
}

func (c *Client) endpoint(city, units string) (string, error) {
	u, err := url.Parse(c.baseURL)
	if err != nil {
		return "", err
	}
	q := u.Query()
	q.Set("q", city)
	q.Set("appid", c.apiKey)
	q.Set("units", units)
	u.RawQuery = q.Encode()
	return u.String(), nil
}

func (c *Client) observe(outcome string, start time.Time) {
	metrics.RecordUpstream(upstreamName, outcome, float64(time.Since(start).Milliseconds()))
}

// redact removes the API key from err's text.
func redact(err error, secret string) error {
	if err == nil || secret == "" {
		return err
	}
	return errors.New(strings.ReplaceAll(err.Error(), url.QueryEscape(secret), "REDACTED"))
}
