package config

import (
	"encoding/json"
	"net/http"

	"legacy_m/pkg/core/agent"
	"legacy_m/pkg/core/llm"
)

type Response struct {
	Providers   []string `json:"providers"`
	Confessions []string `json:"confessions"`
}

// Handler holds dependencies for config endpoints
type Handler struct {
	Dispatcher *llm.Dispatcher
	Factory    *agent.Factory
}

// NewHandler creates a new config handler
func NewHandler(dispatcher *llm.Dispatcher, factory *agent.Factory) *Handler {
	return &Handler{
		Dispatcher: dispatcher,
		Factory:    factory,
	}
}

// HandleConfig reports the provider fallback chain in attempt order and the
// confessions agents exist for.
func (h *Handler) HandleConfig(w http.ResponseWriter, r *http.Request) {
	// Add CORS headers for local dev
	w.Header().Set("Access-Control-Allow-Origin", "*")
	w.Header().Set("Access-Control-Allow-Headers", "Content-Type")
	w.Header().Set("Content-Type", "application/json")

	resp := Response{
		Providers:   h.Dispatcher.Providers(),
		Confessions: h.Factory.Supported(),
	}
	json.NewEncoder(w).Encode(resp)
}
