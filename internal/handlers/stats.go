package handlers

import (
	"net/http"

	"github.com/O-GDev/EarlyWarningSystem-sub001/internal/services"
)

// StatsHandler serves the dashboard summary
type StatsHandler struct {
	stats *services.StatsService
}

// NewStatsHandler creates a new stats handler
func NewStatsHandler(stats *services.StatsService) *StatsHandler {
	return &StatsHandler{stats: stats}
}

// Get handles GET /api/stats
func (h *StatsHandler) Get(w http.ResponseWriter, r *http.Request) {
	respondJSON(w, http.StatusOK, h.stats.Compute())
}
