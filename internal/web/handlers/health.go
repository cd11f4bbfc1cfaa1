package handlers

import (
	"encoding/json"
	"net/http"
)

// Health serves liveness probes.
type Health struct{}

// NewHealth creates the health handler.
func NewHealth() *Health {
	return &Health{}
}

// Check handles GET /healthz.
func (h *Health) Check(w http.ResponseWriter, _ *http.Request) {
	w.Header().Set("Content-Type", "application/json")
	_ = json.NewEncoder(w).Encode(map[string]string{"status": "ok"})
}
