package service

import (
	"context"

	"github.com/fadilmartias/founder-assessment/internal/config"
)

// Set is the full adapter roster the pipeline needs.
type Set struct {
	PrimarySTT       TranscriptionServiceInterface
	FallbackSTT      TranscriptionServiceInterface
	Translator       TranslationServiceInterface
	Insights         InsightServiceInterface
	PrimaryAnalysis  AnalysisServiceInterface
	FallbackAnalysis AnalysisServiceInterface
}

// All lists the adapters in health-report order.
func (s Set) All() []Adapter {
	return []Adapter{s.PrimarySTT, s.FallbackSTT, s.Translator, s.Insights, s.PrimaryAnalysis, s.FallbackAnalysis}
}

// NewSet builds the vendor adapters from configuration, or the mock roster
// when MOCK_PROVIDERS is on.
func NewSet(ctx context.Context, cfg *config.Config) (Set, error) {
	if cfg.Pipeline.MockProviders {
		return NewMockSet(), nil
	}
	gemini, err := NewGeminiService(ctx, cfg.Gemini)
	if err != nil {
		return Set{}, err
	}
	return Set{
		PrimarySTT:       NewDeepgramService(cfg.Deepgram),
		FallbackSTT:      NewWhisperService(cfg.Whisper),
		Translator:       NewGoogleTranslateService(cfg.Translate),
		Insights:         NewOpenAIService(cfg.OpenAI),
		PrimaryAnalysis:  gemini,
		FallbackAnalysis: NewOpenRouterService(cfg.OpenRouter, cfg.App.Name),
	}, nil
}
