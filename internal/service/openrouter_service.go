package service

import (
	"context"
	"fmt"

	"github.com/go-resty/resty/v2"
	"github.com/hiresphere/api/internal/config"
	"github.com/tidwall/gjson"
	"go.uber.org/zap"
)

const openRouterEndpoint = "https://openrouter.ai/api/v1/chat/completions"

// OpenRouterService is the fallback ChatCompleter used when Gemini is down
// or its circuit breaker is open.
type OpenRouterService struct {
	apiKey string
	model  string
	client *resty.Client
	logger *zap.Logger
}

func NewOpenRouterService(logger *zap.Logger) *OpenRouterService {
	cfg := config.LoadOpenRouterConfig()
	return &OpenRouterService{
		apiKey: cfg.APIKey,
		model:  cfg.Model,
		client: resty.New(),
		logger: logger,
	}
}

func (s *OpenRouterService) Complete(ctx context.Context, prompt string) (string, error) {
	if s.apiKey == "" {
		return "", fmt.Errorf("OPENROUTER_API_KEY not set")
	}

	resp, err := s.client.R().
		SetContext(ctx).
		SetHeader("Authorization", "Bearer "+s.apiKey).
		SetHeader("Content-Type", "application/json").
		SetBody(map[string]interface{}{
			"model": s.model,
			"messages": []map[string]string{
				{"role": "user", "content": prompt},
			},
		}).
		Post(openRouterEndpoint)
	if err != nil {
		return "", fmt.Errorf("openrouter request failed: %w", err)
	}
	if resp.IsError() {
		s.logger.Warn("openrouter returned error status",
			zap.Int("status", resp.StatusCode()))
		return "", fmt.Errorf("openrouter status %d", resp.StatusCode())
	}

	text := gjson.Get(resp.String(), "choices.0.message.content").String()
	if text == "" {
		return "", fmt.Errorf("no content in openrouter response")
	}
	return text, nil
}
