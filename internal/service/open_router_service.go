package service

import (
	"context"
	"errors"
	"strings"

	"github.com/fadilmartias/founder-assessment/internal/config"
	"github.com/fadilmartias/founder-assessment/internal/model"
	"github.com/go-resty/resty/v2"
	"github.com/tidwall/gjson"
)

// OpenRouterService is the fallback deep-analysis model.
type OpenRouterService struct {
	APIKey  string
	BaseURL string
	Model   string
	AppName string
	client  *resty.Client
}

func NewOpenRouterService(cfg config.OpenRouterConfig, appName string) *OpenRouterService {
	return &OpenRouterService{
		APIKey:  cfg.APIKey,
		BaseURL: strings.TrimRight(cfg.BaseURL, "/"),
		Model:   cfg.Model,
		AppName: appName,
		client:  resty.New(),
	}
}

func (s *OpenRouterService) Name() string     { return ProviderOpenRouter }
func (s *OpenRouterService) Configured() bool { return s.APIKey != "" }

func (s *OpenRouterService) DeepAnalysis(ctx context.Context, req AnalysisRequest) (*model.AnalysisResult, error) {
	if !s.Configured() {
		return nil, notConfigured(ProviderOpenRouter)
	}

	resp, err := s.client.R().
		SetContext(ctx).
		SetHeader("Authorization", "Bearer "+s.APIKey).
		SetHeader("Content-Type", "application/json").
		SetHeader("X-Title", s.AppName).
		SetBody(map[string]interface{}{
			"model": s.Model,
			"messages": []map[string]string{
				{"role": "system", "content": deepAnalysisSystemPrompt},
				{"role": "user", "content": deepAnalysisPrompt(req)},
			},
			"temperature": 0.4,
		}).
		Post(s.BaseURL + "/chat/completions")
	if err != nil {
		return nil, newProviderError(ProviderOpenRouter, 0, err)
	}
	if resp.IsError() {
		return nil, newProviderError(ProviderOpenRouter, resp.StatusCode(), errors.New(errorMessage(resp)))
	}

	body := resp.String()
	// OpenRouter can answer 200 with an error object when the upstream model fails.
	if msg := gjson.Get(body, "error.message"); msg.Exists() {
		return nil, newProviderError(ProviderOpenRouter, int(gjson.Get(body, "error.code").Int()), errors.New(msg.String()))
	}

	text := strings.TrimSpace(gjson.Get(body, "choices.0.message.content").String())
	if err := requireText(ProviderOpenRouter, text); err != nil {
		return nil, err
	}
	usedModel := gjson.Get(body, "model").String()
	if usedModel == "" {
		usedModel = s.Model
	}
	return &model.AnalysisResult{Text: text, Provider: ProviderOpenRouter, Model: usedModel}, nil
}
