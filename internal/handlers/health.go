package handlers

import (
	"context"
	"log/slog"
	"net/http"
	"time"
)

// StorePinger is the subset of the store client used by the health check.
type StorePinger func(ctx context.Context) error

// HealthHandler provides health check endpoint
type HealthHandler struct {
	ping   StorePinger
	logger *slog.Logger
}

// NewHealthHandler creates a new health handler. ping may be nil when no
// store is attached (tests).
func NewHealthHandler(ping StorePinger, logger *slog.Logger) *HealthHandler {
	return &HealthHandler{
		ping:   ping,
		logger: logger,
	}
}

// HealthResponse represents the health check response
type HealthResponse struct {
	Status    string    `json:"status"`
	Store     string    `json:"store"`
	Timestamp time.Time `json:"timestamp"`
}

// ServeHTTP handles health check requests
func (h *HealthHandler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	response := HealthResponse{
		Status:    "healthy",
		Store:     "ok",
		Timestamp: time.Now().UTC(),
	}

	if h.ping != nil {
		ctx, cancel := context.WithTimeout(r.Context(), 2*time.Second)
		defer cancel()

		if err := h.ping(ctx); err != nil {
			h.logger.Warn("store ping failed", "error", err)
			response.Status = "degraded"
			response.Store = "unreachable"
		}
	}

	WriteJSON(w, http.StatusOK, response, h.logger)
}
