package service

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/fadilmartias/founder-assessment/internal/config"
	"github.com/fadilmartias/founder-assessment/internal/model"
	"google.golang.org/genai"
)

// GeminiService is the primary deep-analysis model.
type GeminiService struct {
	Client      *genai.Client
	Model       string
	Temperature float32
}

func NewGeminiService(ctx context.Context, cfg config.GeminiConfig) (*GeminiService, error) {
	s := &GeminiService{Model: cfg.Model, Temperature: 0.4}
	if cfg.APIKey == "" {
		return s, nil
	}

	clientConfig := &genai.ClientConfig{
		APIKey:  cfg.APIKey,
		Backend: genai.BackendGeminiAPI,
	}
	if cfg.BaseURL != "" {
		clientConfig.HTTPOptions = genai.HTTPOptions{BaseURL: cfg.BaseURL}
	}
	client, err := genai.NewClient(ctx, clientConfig)
	if err != nil {
		return nil, fmt.Errorf("create gemini client: %w", err)
	}
	s.Client = client
	return s, nil
}

func (s *GeminiService) Name() string     { return ProviderGemini }
func (s *GeminiService) Configured() bool { return s.Client != nil }

func (s *GeminiService) DeepAnalysis(ctx context.Context, req AnalysisRequest) (*model.AnalysisResult, error) {
	if !s.Configured() {
		return nil, notConfigured(ProviderGemini)
	}
	prompt := deepAnalysisSystemPrompt + "\n\n" + deepAnalysisPrompt(req)

	result, err := s.Client.Models.GenerateContent(
		ctx,
		s.Model,
		genai.Text(prompt),
		&genai.GenerateContentConfig{
			Temperature: genai.Ptr(s.Temperature),
		},
	)
	if err != nil {
		return nil, newProviderError(ProviderGemini, geminiStatus(err), err)
	}
	if err := validateGenerateResponse(result); err != nil {
		return nil, newProviderError(ProviderGemini, 0, fmt.Errorf("invalid response: %w", err))
	}

	text := strings.TrimSpace(result.Text())
	if err := requireText(ProviderGemini, text); err != nil {
		return nil, err
	}
	return &model.AnalysisResult{Text: text, Provider: ProviderGemini, Model: s.Model}, nil
}

func geminiStatus(err error) int {
	for e := err; e != nil; e = errors.Unwrap(e) {
		switch apiErr := e.(type) {
		case *genai.APIError:
			return apiErr.Code
		case genai.APIError:
			return apiErr.Code
		}
	}
	return 0
}

func validateGenerateResponse(resp *genai.GenerateContentResponse) error {
	if resp == nil {
		return fmt.Errorf("response is nil")
	}

	if len(resp.Candidates) == 0 {
		return fmt.Errorf("no candidates in response")
	}

	if resp.Candidates[0].Content == nil {
		return fmt.Errorf("candidate content is nil")
	}

	if len(resp.Candidates[0].Content.Parts) == 0 {
		return fmt.Errorf("no parts in content")
	}

	return nil
}
