package weather

import (
	"errors"
	"fmt"
	"net/http"
)

// Sentinel kinds for weather lookups.
var (
	ErrNotConfigured   = errors.New("weather API key is not configured")
	ErrMissingCity     = errors.New("city is required")
	ErrUnavailable     = errors.New("weather upstream unavailable")
	ErrInvalidResponse = errors.New("invalid upstream response")
	ErrUpstreamStatus  = errors.New("weather upstream returned non-200 status")
)

// StatusError carries a non-200 upstream answer so it can be forwarded verbatim.
type StatusError struct {
	StatusCode  int
	ContentType string
	Body        []byte
}

func (e *StatusError) Error() string {
	return fmt.Sprintf("%s: %d %s", ErrUpstreamStatus, e.StatusCode, http.StatusText(e.StatusCode))
}

// Is lets errors.Is(err, ErrUpstreamStatus) match.
func (e *StatusError) Is(target error) bool {
	return target == ErrUpstreamStatus
}
