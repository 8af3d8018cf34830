package handlers

import (
	"net/http"
	"time"

	"github.com/O-GDev/EarlyWarningSystem-sub001/internal/models"
	"github.com/O-GDev/EarlyWarningSystem-sub001/internal/services"
	"go.uber.org/zap"
)

// Version is reported by the health endpoints
const Version = "1.0.0"

var startTime = time.Now()

// ListenerCounter reports the number of live real-time connections
type ListenerCounter interface {
	Count() int
}

// HealthHandler provides health check endpoints
type HealthHandler struct {
	sessions  services.SessionStore
	listeners ListenerCounter
	logger    *zap.SugaredLogger
}

// NewHealthHandler creates a new health handler
func NewHealthHandler(sessions services.SessionStore, listeners ListenerCounter, logger *zap.SugaredLogger) *HealthHandler {
	return &HealthHandler{sessions: sessions, listeners: listeners, logger: logger}
}

// Check handles GET /api/health (liveness)
func (h *HealthHandler) Check(w http.ResponseWriter, r *http.Request) {
	respondJSON(w, http.StatusOK, models.HealthStatus{
		Status:    "ok",
		Version:   Version,
		Uptime:    time.Since(startTime).Round(time.Second).String(),
		Listeners: h.listeners.Count(),
	})
}

// Ready handles GET /api/health/ready (readiness)
func (h *HealthHandler) Ready(w http.ResponseWriter, r *http.Request) {
	if err := h.sessions.Ping(r.Context()); err != nil {
		h.logger.Warnw("Session backend unreachable", "backend", h.sessions.Name(), "error", err)
		respondJSON(w, http.StatusServiceUnavailable, models.HealthStatus{
			Status:    "not ready",
			Version:   Version,
			Sessions:  h.sessions.Name() + " disconnected",
			Listeners: h.listeners.Count(),
		})
		return
	}

	respondJSON(w, http.StatusOK, models.HealthStatus{
		Status:    "ready",
		Version:   Version,
		Uptime:    time.Since(startTime).Round(time.Second).String(),
		Sessions:  h.sessions.Name(),
		Listeners: h.listeners.Count(),
	})
}
