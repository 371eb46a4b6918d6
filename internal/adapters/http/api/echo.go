// Package api declares HTTP contracts and route registration helpers.
package api

import (
	"encoding/json"
	"net/http"
)

type echoResponse struct {
	YouSent json.RawMessage `json:"you_sent"`
	Status  string          `json:"status"`
}

// EchoHandler handles POST /echo requests.
type EchoHandler struct {
	maxBodyBytes int64
}

// NewEchoHandler creates a new echo handler.
func NewEchoHandler(maxBodyBytes int64) *EchoHandler {
	return &EchoHandler{maxBodyBytes: maxBodyBytes}
}

// HandleEcho wraps the JSON body in {you_sent, status}. Bodies that are
// missing, malformed or too large are echoed as null.
func (h *EchoHandler) HandleEcho(w http.ResponseWriter, r *http.Request) {
	body, err := readBody(w, r, h.maxBodyBytes)
	sent := json.RawMessage("null")
	if err == nil && json.Valid(body) {
		sent = json.RawMessage(body)
	}
	writeJSON(w, http.StatusOK, echoResponse{YouSent: sent, Status: "success"})
}
