// Package api declares HTTP contracts and route registration helpers.
package api

import (
	"net/http"

	"github.com/okian/utilapi/internal/domain/text"
)

// transformRequest mirrors the OpenAPI schema for POST /transform.
type transformRequest struct {
	Text string `json:"text"`
	Mode string `json:"mode"`
}

type transformResponse struct {
	Original string `json:"original"`
	Result   string `json:"result"`
	Mode     string `json:"mode"`
}

// TransformHandler handles POST /transform requests.
type TransformHandler struct {
	maxBodyBytes int64
}

// NewTransformHandler creates a new transform handler.
func NewTransformHandler(maxBodyBytes int64) *TransformHandler {
	return &TransformHandler{maxBodyBytes: maxBodyBytes}
}

// HandleTransform applies upper, lower or strip to text.
func (h *TransformHandler) HandleTransform(w http.ResponseWriter, r *http.Request) {
	const op = "api.transform"
	var req transformRequest
	if err := decodeJSONObject(w, r, h.maxBodyBytes, &req); err != nil {
		writeError(w, http.StatusBadRequest, "bad_request", WrapKind(op, ErrInvalidJSON, err))
		return
	}
	mode, err := text.ParseMode(req.Mode)
	if err != nil {
		writeError(w, http.StatusBadRequest, "invalid_mode", err)
		return
	}
	result, err := text.Transform(req.Text, mode)
	if err != nil {
		writeError(w, http.StatusBadRequest, "invalid_mode", err)
		return
	}
	writeJSON(w, http.StatusOK, transformResponse{
		Original: req.Text,
		Result:   result,
		Mode:     string(mode),
	})
}
