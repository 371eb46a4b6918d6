// Package api declares HTTP contracts and route registration helpers.
package api

import (
	"encoding/json"
	"math"
	"net/http"
	"strconv"
	"strings"

	"github.com/okian/utilapi/internal/domain/text"
)

// summarizeRequest mirrors the OpenAPI schema for POST /summarize.
// MaxSentences stays raw so loosely typed values can be coerced.
type summarizeRequest struct {
	Text         string          `json:"text"`
	MaxSentences json.RawMessage `json:"max_sentences"`
}

type summarizeResponse struct {
	Summary      string `json:"summary"`
	Length       int    `json:"length"`
	MaxSentences int    `json:"max_sentences"`
}

// SummarizeHandler handles POST /summarize requests.
type SummarizeHandler struct {
	maxBodyBytes int64
}

// NewSummarizeHandler creates a new summarize handler.
func NewSummarizeHandler(maxBodyBytes int64) *SummarizeHandler {
	return &SummarizeHandler{maxBodyBytes: maxBodyBytes}
}

// HandleSummarize returns the first max_sentences sentences of text.
func (h *SummarizeHandler) HandleSummarize(w http.ResponseWriter, r *http.Request) {
	const op = "api.summarize"
	var req summarizeRequest
	if err := decodeJSONObject(w, r, h.maxBodyBytes, &req); err != nil {
		writeError(w, http.StatusBadRequest, "bad_request", WrapKind(op, ErrInvalidJSON, err))
		return
	}
	if req.Text == "" {
		writeError(w, http.StatusBadRequest, "missing_text", NewKind(op, ErrMissingText))
		return
	}
	sum := text.Summarize(req.Text, coerceMaxSentences(req.MaxSentences))
	writeJSON(w, http.StatusOK, summarizeResponse{
		Summary:      sum.Text,
		Length:       sum.Words,
		MaxSentences: sum.MaxSentences,
	})
}

// coerceMaxSentences accepts a JSON number (truncated) or a numeric string.
// Anything else, including null and booleans, yields the default.
func coerceMaxSentences(raw json.RawMessage) int {
	var v any
	if len(raw) == 0 || json.Unmarshal(raw, &v) != nil {
		return text.DefaultMaxSentences
	}
	switch n := v.(type) {
	case float64:
		return clampInt(math.Trunc(n))
	case string:
		i, err := strconv.Atoi(strings.TrimSpace(n))
		if err != nil {
			return text.DefaultMaxSentences
		}
		return i
	}
	return text.DefaultMaxSentences
}

func clampInt(f float64) int {
	switch {
	case f > math.MaxInt32:
		return math.MaxInt32
	case f < math.MinInt32:
		return math.MinInt32
	}
	return int(f)
}
