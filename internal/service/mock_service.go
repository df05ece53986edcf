package service

import (
	"context"
	"fmt"
	"strings"

	"github.com/fadilmartias/founder-assessment/internal/model"
)

// MockTranscriptionService returns a canned transcript. Used with MOCK_PROVIDERS=true.
type MockTranscriptionService struct {
	Provider string
}

func (s *MockTranscriptionService) Name() string     { return s.Provider }
func (s *MockTranscriptionService) Configured() bool { return true }

func (s *MockTranscriptionService) Transcribe(ctx context.Context, clip *model.AudioClip) (*model.TranscriptionResult, error) {
	if err := ctx.Err(); err != nil {
		return nil, newProviderError(s.Provider, 0, err)
	}
	return &model.TranscriptionResult{
		Transcript: "We are a small team building scheduling software for clinics. " +
			"Hiring has been slow and I still make most product decisions myself.",
		LanguageCode:      "en",
		ConfidencePercent: 95,
		Provider:          s.Provider,
	}, nil
}

// MockTranslationService tags the text instead of translating it.
type MockTranslationService struct{}

func (s *MockTranslationService) Name() string     { return ProviderGoogleTranslate }
func (s *MockTranslationService) Configured() bool { return true }

func (s *MockTranslationService) TranslateToEnglish(ctx context.Context, text, sourceLanguage string) (string, error) {
	return fmt.Sprintf("[translated from %s] %s", sourceLanguage, text), nil
}

type MockInsightService struct{}

func (s *MockInsightService) Name() string     { return ProviderOpenAI }
func (s *MockInsightService) Configured() bool { return true }

func (s *MockInsightService) QuickInsights(ctx context.Context, transcript string) (*model.AnalysisResult, error) {
	words := len(strings.Fields(transcript))
	text := fmt.Sprintf("- The founder described the company in %d words.\n- Decision making appears centralized.\n- Hiring pace is a near-term risk.", words)
	return &model.AnalysisResult{Text: text, Provider: ProviderOpenAI, Model: "mock"}, nil
}

type MockAnalysisService struct {
	Provider string
}

func (s *MockAnalysisService) Name() string     { return s.Provider }
func (s *MockAnalysisService) Configured() bool { return true }

func (s *MockAnalysisService) DeepAnalysis(ctx context.Context, req AnalysisRequest) (*model.AnalysisResult, error) {
	text := fmt.Sprintf(`### Organizational Health
%s is at an early stage where %s carries most of the operating load.

### Key Risks
- Founder bottleneck on decisions.

### Recommendations
- Delegate one recurring decision area within the next quarter.`, req.CompanyName, req.FounderName)
	return &model.AnalysisResult{Text: text, Provider: s.Provider, Model: "mock"}, nil
}

func NewMockSet() Set {
	return Set{
		PrimarySTT:       &MockTranscriptionService{Provider: ProviderDeepgram},
		FallbackSTT:      &MockTranscriptionService{Provider: ProviderWhisper},
		Translator:       &MockTranslationService{},
		Insights:         &MockInsightService{},
		PrimaryAnalysis:  &MockAnalysisService{Provider: ProviderGemini},
		FallbackAnalysis: &MockAnalysisService{Provider: ProviderOpenRouter},
	}
}
