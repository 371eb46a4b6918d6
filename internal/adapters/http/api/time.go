// Package api declares HTTP contracts and route registration helpers.
package api

import (
	"net/http"
	"time"

	"github.com/okian/utilapi/internal/domain/clock"
)

type timeResponse struct {
	UTCTime   string  `json:"utc_time"`
	Timestamp float64 `json:"timestamp"`
}

// TimeHandler handles GET /time requests.
type TimeHandler struct {
	clock *clock.Clock
}

// NewTimeHandler creates a new time handler.
func NewTimeHandler(c *clock.Clock) *TimeHandler {
	return &TimeHandler{clock: c}
}

// HandleTime returns the current UTC time as ISO-8601 and epoch seconds.
func (h *TimeHandler) HandleTime(w http.ResponseWriter, _ *http.Request) {
	now := h.clock.Now()
	writeJSON(w, http.StatusOK, timeResponse{
		UTCTime:   now.Format(time.RFC3339Nano),
		Timestamp: clock.Unix(now),
	})
}
