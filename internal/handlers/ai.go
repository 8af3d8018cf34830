package handlers

import (
	"encoding/json"
	"net/http"

	"github.com/O-GDev/EarlyWarningSystem-sub001/internal/models"
	"github.com/O-GDev/EarlyWarningSystem-sub001/internal/services"
	"github.com/O-GDev/EarlyWarningSystem-sub001/internal/validation"
	"go.uber.org/zap"
)

// AIHandler exposes the AI proxy. Every well-formed request gets a 200; a
// degraded answer is carried in the payload.
type AIHandler struct {
	ai     *services.AIService
	logger *zap.SugaredLogger
}

// NewAIHandler creates a new AI handler
func NewAIHandler(ai *services.AIService, logger *zap.SugaredLogger) *AIHandler {
	return &AIHandler{ai: ai, logger: logger}
}

// Chat handles POST /api/ai/chat
func (h *AIHandler) Chat(w http.ResponseWriter, r *http.Request) {
	res, ok := readBody(w, r, validation.Chat.Create)
	if !ok {
		return
	}
	var req struct {
		Messages []models.ChatMessage `json:"messages"`
	}
	if !h.decode(w, res, &req, "chat") {
		return
	}

	respondJSON(w, http.StatusOK, map[string]string{"message": h.ai.Chat(r.Context(), req.Messages)})
}

// Analyze handles POST /api/ai/analyze
func (h *AIHandler) Analyze(w http.ResponseWriter, r *http.Request) {
	res, ok := readBody(w, r, validation.Analyze.Create)
	if !ok {
		return
	}
	var req struct {
		Text string `json:"text"`
	}
	if !h.decode(w, res, &req, "analysis") {
		return
	}

	respondJSON(w, http.StatusOK, map[string]string{"analysis": h.ai.Analyze(r.Context(), req.Text)})
}

// Recommend handles POST /api/ai/recommend
func (h *AIHandler) Recommend(w http.ResponseWriter, r *http.Request) {
	res, ok := readBody(w, r, validation.Recommend.Create)
	if !ok {
		return
	}
	var req struct {
		Incident json.RawMessage `json:"incident"`
	}
	if !h.decode(w, res, &req, "recommendation") {
		return
	}

	respondJSON(w, http.StatusOK, map[string]string{"recommendations": h.ai.Recommend(r.Context(), req.Incident)})
}

// AnalyzeTrends handles POST /api/ai/analyze-trends
func (h *AIHandler) AnalyzeTrends(w http.ResponseWriter, r *http.Request) {
	res, ok := readBody(w, r, validation.Trends.Create)
	if !ok {
		return
	}
	var req struct {
		TrendData json.RawMessage `json:"trendData"`
	}
	if !h.decode(w, res, &req, "trend analysis") {
		return
	}

	respondJSON(w, http.StatusOK, map[string]interface{}{"analysis": h.ai.AnalyzeTrends(r.Context(), req.TrendData)})
}

func (h *AIHandler) decode(w http.ResponseWriter, res validation.Result, dst any, what string) bool {
	if err := res.Decode(dst); err != nil {
		h.logger.Errorw("Failed to decode "+what+" request", "error", err)
		respondError(w, http.StatusInternalServerError, "Failed to process "+what+" request")
		return false
	}
	return true
}
