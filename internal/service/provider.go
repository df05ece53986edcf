package service

import (
	"context"
	"errors"
	"fmt"
	"net"
	"strings"

	"github.com/fadilmartias/founder-assessment/internal/model"
)

// Provider names, as reported on reports and in /api/health.
const (
	ProviderDeepgram        = "deepgram"
	ProviderWhisper         = "whisper"
	ProviderGoogleTranslate = "googleTranslate"
	ProviderOpenAI          = "openai"
	ProviderGemini          = "gemini"
	ProviderOpenRouter      = "openrouter"
)

// Adapter is what every provider wrapper exposes besides its call.
type Adapter interface {
	Name() string
	Configured() bool
}

type TranscriptionServiceInterface interface {
	Adapter
	Transcribe(ctx context.Context, clip *model.AudioClip) (*model.TranscriptionResult, error)
}

type TranslationServiceInterface interface {
	Adapter
	TranslateToEnglish(ctx context.Context, text, sourceLanguage string) (string, error)
}

type InsightServiceInterface interface {
	Adapter
	QuickInsights(ctx context.Context, transcript string) (*model.AnalysisResult, error)
}

type AnalysisServiceInterface interface {
	Adapter
	DeepAnalysis(ctx context.Context, req AnalysisRequest) (*model.AnalysisResult, error)
}

// AnalysisRequest carries the context accumulated before deep analysis.
type AnalysisRequest struct {
	FounderName       string
	CompanyName       string
	EnglishTranscript string
	QuickInsights     string
	DetectedLanguage  string
}

// ProviderError is returned by every adapter on transport, auth, status or
// decoding failures.
type ProviderError struct {
	Provider   string
	StatusCode int
	Retryable  bool
	Cause      error
}

func (e *ProviderError) Error() string {
	if e.StatusCode != 0 {
		return fmt.Sprintf("%s: status %d: %v", e.Provider, e.StatusCode, e.Cause)
	}
	return fmt.Sprintf("%s: %v", e.Provider, e.Cause)
}

func (e *ProviderError) Unwrap() error { return e.Cause }

// ErrNotConfigured is the cause used when an adapter has no credential.
var ErrNotConfigured = errors.New("provider credential not configured")

var errNoChoices = errors.New("response has no choices")

func newProviderError(provider string, status int, cause error) *ProviderError {
	return &ProviderError{
		Provider:   provider,
		StatusCode: status,
		Retryable:  isRetryable(status, cause),
		Cause:      cause,
	}
}

func notConfigured(provider string) *ProviderError {
	return &ProviderError{Provider: provider, Cause: ErrNotConfigured}
}

// isRetryable classifies a failure the same way for every vendor: throttling
// and 5xx are retryable, other statuses are not, and transport failures are
// retryable unless the context ended.
func isRetryable(status int, cause error) bool {
	switch {
	case status == 429:
		return true
	case status >= 500:
		return true
	case status >= 400:
		return false
	}
	if cause == nil {
		return false
	}
	if errors.Is(cause, context.Canceled) || errors.Is(cause, context.DeadlineExceeded) {
		return false
	}
	var netErr net.Error
	if errors.As(cause, &netErr) {
		return true
	}
	msg := cause.Error()
	return strings.Contains(msg, "connection refused") ||
		strings.Contains(msg, "connection reset") ||
		strings.Contains(msg, "EOF")
}

func requireText(provider, text string) error {
	if strings.TrimSpace(text) == "" {
		return newProviderError(provider, 0, errors.New("empty response content"))
	}
	return nil
}
