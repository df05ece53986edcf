package service

import (
	"context"
	"strings"

	"github.com/fadilmartias/founder-assessment/internal/config"
	"github.com/fadilmartias/founder-assessment/internal/model"
	"github.com/sashabaranov/go-openai"
)

// OpenAIService produces the short bulleted quick insights.
type OpenAIService struct {
	APIKey string
	Model  string
	client *openai.Client
}

func NewOpenAIService(cfg config.OpenAIConfig) *OpenAIService {
	return &OpenAIService{
		APIKey: cfg.APIKey,
		Model:  cfg.Model,
		client: newOpenAIClient(cfg.APIKey, cfg.BaseURL),
	}
}

func (s *OpenAIService) Name() string     { return ProviderOpenAI }
func (s *OpenAIService) Configured() bool { return s.APIKey != "" }

func (s *OpenAIService) QuickInsights(ctx context.Context, transcript string) (*model.AnalysisResult, error) {
	if !s.Configured() {
		return nil, notConfigured(ProviderOpenAI)
	}

	res, err := s.client.CreateChatCompletion(ctx, openai.ChatCompletionRequest{
		Model: s.Model,
		Messages: []openai.ChatCompletionMessage{
			{Role: openai.ChatMessageRoleSystem, Content: quickInsightSystemPrompt},
			{Role: openai.ChatMessageRoleUser, Content: quickInsightPrompt(transcript)},
		},
		Temperature: 0.3,
		MaxTokens:   400,
	})
	if err != nil {
		return nil, openAIError(ProviderOpenAI, err)
	}
	if len(res.Choices) == 0 {
		return nil, newProviderError(ProviderOpenAI, 0, errNoChoices)
	}

	text := strings.TrimSpace(res.Choices[0].Message.Content)
	if err := requireText(ProviderOpenAI, text); err != nil {
		return nil, err
	}
	return &model.AnalysisResult{Text: text, Provider: ProviderOpenAI, Model: res.Model}, nil
}
