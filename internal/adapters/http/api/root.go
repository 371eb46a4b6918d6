// Package api declares HTTP contracts and route registration helpers.
package api

import "net/http"

type homeResponse struct {
	Message string `json:"message"`
}

// HomeHandler handles GET / requests.
type HomeHandler struct {
	message string
}

// NewHomeHandler creates a new home handler.
func NewHomeHandler(message string) *HomeHandler {
	return &HomeHandler{message: message}
}

// HandleHome returns the greeting.
func (h *HomeHandler) HandleHome(w http.ResponseWriter, _ *http.Request) {
	writeJSON(w, http.StatusOK, homeResponse{Message: h.message})
}

type healthResponse struct {
	Status string `json:"status"`
}

// HealthHandler handles health check requests.
type HealthHandler struct{}

// NewHealthHandler creates a new health handler.
func NewHealthHandler() *HealthHandler {
	return &HealthHandler{}
}

// HandleHealth handles GET /health requests.
func (h *HealthHandler) HandleHealth(w http.ResponseWriter, _ *http.Request) {
	writeJSON(w, http.StatusOK, healthResponse{Status: "alive"})
}
