package services

import (
	"context"
	"encoding/json"
	"errors"
	"strings"
	"time"

	"github.com/O-GDev/EarlyWarningSystem-sub001/internal/models"
	"github.com/sashabaranov/go-openai"
	"go.uber.org/zap"
)

// AIModel is the completion model used for every request
const AIModel = openai.GPT4o

var errEmptyCompletion = errors.New("provider returned no choices")

// AIService proxies chat and analysis requests to an OpenAI-compatible API.
// It never returns an error: without a key it answers with fixed text, and
// provider failures are logged and replaced with an unavailability message.
type AIService struct {
	client  *openai.Client
	timeout time.Duration
	logger  *zap.SugaredLogger
}

// NewAIService creates the AI proxy. An empty apiKey selects fallback mode.
func NewAIService(apiKey, baseURL string, timeout time.Duration, logger *zap.SugaredLogger) *AIService {
	s := &AIService{timeout: timeout, logger: logger}
	if apiKey == "" {
		return s
	}
	cfg := openai.DefaultConfig(apiKey)
	if baseURL != "" {
		cfg.BaseURL = strings.TrimRight(baseURL, "/")
	}
	s.client = openai.NewClientWithConfig(cfg)
	return s
}

// Enabled reports whether a provider credential is configured
func (s *AIService) Enabled() bool {
	return s.client != nil
}

// Chat continues a conversation
func (s *AIService) Chat(ctx context.Context, messages []models.ChatMessage) string {
	if !s.Enabled() {
		return chatFallback
	}

	req := []openai.ChatCompletionMessage{{Role: openai.ChatMessageRoleSystem, Content: chatSystemPrompt}}
	for _, m := range messages {
		role := m.Role
		if role != openai.ChatMessageRoleAssistant && role != openai.ChatMessageRoleSystem {
			role = openai.ChatMessageRoleUser
		}
		req = append(req, openai.ChatCompletionMessage{Role: role, Content: m.Content})
	}

	out, err := s.complete(ctx, openai.ChatCompletionRequest{Model: AIModel, Messages: req})
	if err != nil {
		s.logger.Errorw("AI chat failed", "error", err)
		return unavailableMessage
	}
	return out
}

// Analyze produces a free-text analysis of a report
func (s *AIService) Analyze(ctx context.Context, text string) string {
	if !s.Enabled() {
		return analyzeFallback
	}

	out, err := s.complete(ctx, openai.ChatCompletionRequest{
		Model: AIModel,
		Messages: []openai.ChatCompletionMessage{
			{Role: openai.ChatMessageRoleSystem, Content: analyzeSystemPrompt},
			{Role: openai.ChatMessageRoleUser, Content: text},
		},
	})
	if err != nil {
		s.logger.Errorw("AI analysis failed", "error", err)
		return unavailableMessage
	}
	return out
}

// Recommend suggests response actions for an incident
func (s *AIService) Recommend(ctx context.Context, incident json.RawMessage) string {
	if !s.Enabled() {
		return recommendFallback
	}

	out, err := s.complete(ctx, openai.ChatCompletionRequest{
		Model: AIModel,
		Messages: []openai.ChatCompletionMessage{
			{Role: openai.ChatMessageRoleSystem, Content: recommendSystemPrompt},
			{Role: openai.ChatMessageRoleUser, Content: string(incident)},
		},
	})
	if err != nil {
		s.logger.Errorw("AI recommendation failed", "error", err)
		return unavailableMessage
	}
	return out
}

// AnalyzeTrends asks for a structured risk assessment of trend data
func (s *AIService) AnalyzeTrends(ctx context.Context, trendData json.RawMessage) models.TrendAnalysis {
	if !s.Enabled() {
		return models.TrendAnalysis{
			Insights:        []string{trendsFallbackInsight},
			Recommendations: []string{trendsFallbackAdvice},
			RiskLevel:       models.SeverityLow,
			Confidence:      0,
		}
	}

	out, err := s.complete(ctx, openai.ChatCompletionRequest{
		Model: AIModel,
		Messages: []openai.ChatCompletionMessage{
			{Role: openai.ChatMessageRoleSystem, Content: trendsSystemPrompt},
			{Role: openai.ChatMessageRoleUser, Content: string(trendData)},
		},
		ResponseFormat: &openai.ChatCompletionResponseFormat{
			Type: openai.ChatCompletionResponseFormatTypeJSONObject,
		},
	})
	if err != nil {
		s.logger.Errorw("AI trend analysis failed", "error", err)
		return unavailableAnalysis()
	}

	analysis, err := parseTrendAnalysis(out)
	if err != nil {
		s.logger.Warnw("AI trend analysis returned malformed JSON", "error", err)
		return unavailableAnalysis()
	}
	return analysis
}

func (s *AIService) complete(ctx context.Context, req openai.ChatCompletionRequest) (string, error) {
	if s.timeout > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, s.timeout)
		defer cancel()
	}

	resp, err := s.client.CreateChatCompletion(ctx, req)
	if err != nil {
		return "", err
	}
	if len(resp.Choices) == 0 {
		return "", errEmptyCompletion
	}
	return resp.Choices[0].Message.Content, nil
}

func parseTrendAnalysis(raw string) (models.TrendAnalysis, error) {
	var out models.TrendAnalysis
	if err := json.Unmarshal([]byte(raw), &out); err != nil {
		return models.TrendAnalysis{}, err
	}

	switch out.RiskLevel {
	case models.SeverityCritical, models.SeverityHigh, models.SeverityMedium, models.SeverityLow:
	default:
		return models.TrendAnalysis{}, errors.New("invalid riskLevel " + string(out.RiskLevel))
	}

	if out.Insights == nil {
		out.Insights = []string{}
	}
	if out.Recommendations == nil {
		out.Recommendations = []string{}
	}
	out.Confidence = min(max(out.Confidence, 0), 100)
	return out, nil
}

func unavailableAnalysis() models.TrendAnalysis {
	return models.TrendAnalysis{
		Insights:        []string{unavailableMessage},
		Recommendations: []string{trendsFallbackAdvice},
		RiskLevel:       models.SeverityLow,
		Confidence:      0,
	}
}
