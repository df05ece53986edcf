package service

import (
	"context"
	"encoding/json"
	"errors"
	"io"
	"net/http"
	"net/http/httptest"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/fadilmartias/founder-assessment/internal/config"
	"github.com/fadilmartias/founder-assessment/internal/model"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func audioClip(t *testing.T) *model.AudioClip {
	t.Helper()
	path := filepath.Join(t.TempDir(), "interview.wav")
	require.NoError(t, os.WriteFile(path, []byte("RIFF fake wave data"), 0o600))
	return &model.AudioClip{Path: path, Filename: "interview.wav", ContentType: "audio/wav", Size: 19}
}

func requireProviderError(t *testing.T, err error, provider string) *ProviderError {
	t.Helper()
	var pe *ProviderError
	require.ErrorAs(t, err, &pe)
	assert.Equal(t, provider, pe.Provider)
	return pe
}

func TestDeepgramService_Transcribe(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/v1/listen", r.URL.Path)
		assert.Equal(t, "Token dg-key", r.Header.Get("Authorization"))
		assert.Equal(t, "audio/wav", r.Header.Get("Content-Type"))
		assert.Equal(t, "true", r.URL.Query().Get("detect_language"))
		assert.Equal(t, "nova-2", r.URL.Query().Get("model"))
		body, _ := io.ReadAll(r.Body)
		assert.Equal(t, "RIFF fake wave data", string(body))

		w.Header().Set("Content-Type", "application/json")
		_, _ = w.Write([]byte(`{"results":{"channels":[{"detected_language":"hi","alternatives":[{"transcript":" namaste team ","confidence":0.873}]}]}}`))
	}))
	defer srv.Close()

	s := NewDeepgramService(config.DeepgramConfig{APIKey: "dg-key", BaseURL: srv.URL + "/", Model: "nova-2"})
	res, err := s.Transcribe(context.Background(), audioClip(t))

	require.NoError(t, err)
	assert.Equal(t, "namaste team", res.Transcript)
	assert.Equal(t, "hi", res.LanguageCode)
	assert.InDelta(t, 87.3, res.ConfidencePercent, 0.001)
	assert.Equal(t, ProviderDeepgram, res.Provider)
}

func TestDeepgramService_Errors(t *testing.T) {
	cases := []struct {
		name      string
		status    int
		body      string
		retryable bool
	}{
		{"unauthorized", http.StatusUnauthorized, `{"err_msg":"Invalid credentials."}`, false},
		{"server error", http.StatusBadGateway, `{"err_msg":"upstream"}`, true},
		{"throttled", http.StatusTooManyRequests, `{}`, true},
		{"no alternatives", http.StatusOK, `{"results":{"channels":[]}}`, false},
		{"empty transcript", http.StatusOK, `{"results":{"channels":[{"alternatives":[{"transcript":"   "}]}]}}`, false},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
				w.Header().Set("Content-Type", "application/json")
				w.WriteHeader(tc.status)
				_, _ = w.Write([]byte(tc.body))
			}))
			defer srv.Close()

			s := NewDeepgramService(config.DeepgramConfig{APIKey: "k", BaseURL: srv.URL, Model: "nova-2"})
			_, err := s.Transcribe(context.Background(), audioClip(t))

			pe := requireProviderError(t, err, ProviderDeepgram)
			assert.Equal(t, tc.retryable, pe.Retryable)
		})
	}
}

func TestDeepgramService_NotConfigured(t *testing.T) {
	s := NewDeepgramService(config.DeepgramConfig{})
	assert.False(t, s.Configured())

	_, err := s.Transcribe(context.Background(), audioClip(t))
	assert.ErrorIs(t, err, ErrNotConfigured)
}

func TestWhisperService_Transcribe(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/v1/audio/transcriptions", r.URL.Path)
		assert.Equal(t, "Bearer wh-key", r.Header.Get("Authorization"))
		assert.NoError(t, r.ParseMultipartForm(1<<20))
		assert.Equal(t, "whisper-1", r.FormValue("model"))
		assert.Equal(t, "verbose_json", r.FormValue("response_format"))

		w.Header().Set("Content-Type", "application/json")
		_, _ = w.Write([]byte(`{"task":"transcribe","language":"english","duration":3.2,"text":"We ship weekly.","segments":[{"id":0,"avg_logprob":-0.1},{"id":1,"avg_logprob":-0.3}]}`))
	}))
	defer srv.Close()

	s := NewWhisperService(config.WhisperConfig{APIKey: "wh-key", BaseURL: srv.URL + "/v1", Model: "whisper-1"})
	res, err := s.Transcribe(context.Background(), audioClip(t))

	require.NoError(t, err)
	assert.Equal(t, "We ship weekly.", res.Transcript)
	assert.Equal(t, "english", res.LanguageCode)
	// exp(-0.2) ~ 0.8187
	assert.InDelta(t, 81.87, res.ConfidencePercent, 0.01)
	assert.Equal(t, ProviderWhisper, res.Provider)
}

func TestWhisperService_APIError(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		w.WriteHeader(http.StatusUnauthorized)
		_, _ = w.Write([]byte(`{"error":{"message":"Incorrect API key provided","type":"invalid_request_error","code":"invalid_api_key"}}`))
	}))
	defer srv.Close()

	s := NewWhisperService(config.WhisperConfig{APIKey: "bad", BaseURL: srv.URL + "/v1", Model: "whisper-1"})
	_, err := s.Transcribe(context.Background(), audioClip(t))

	pe := requireProviderError(t, err, ProviderWhisper)
	assert.Equal(t, http.StatusUnauthorized, pe.StatusCode)
	assert.False(t, pe.Retryable)
	assert.Contains(t, pe.Error(), "Incorrect API key")
}

func TestWhisperService_EmptyClip(t *testing.T) {
	s := NewWhisperService(config.WhisperConfig{APIKey: "k", Model: "whisper-1"})
	_, err := s.Transcribe(context.Background(), &model.AudioClip{})
	requireProviderError(t, err, ProviderWhisper)
}

func TestGoogleTranslateService(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/language/translate/v2", r.URL.Path)
		assert.Equal(t, "gt-key", r.URL.Query().Get("key"))
		var body map[string]string
		assert.NoError(t, json.NewDecoder(r.Body).Decode(&body))
		assert.Equal(t, "hi", body["source"])
		assert.Equal(t, "en", body["target"])
		assert.Equal(t, "नमस्ते", body["q"])

		w.Header().Set("Content-Type", "application/json")
		_, _ = w.Write([]byte(`{"data":{"translations":[{"translatedText":"Hello &amp; welcome"}]}}`))
	}))
	defer srv.Close()

	s := NewGoogleTranslateService(config.TranslateConfig{APIKey: "gt-key", BaseURL: srv.URL})
	out, err := s.TranslateToEnglish(context.Background(), "नमस्ते", "hi")

	require.NoError(t, err)
	assert.Equal(t, "Hello & welcome", out)
}

func TestGoogleTranslateService_Failure(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		w.WriteHeader(http.StatusForbidden)
		_, _ = w.Write([]byte(`{"error":{"code":403,"message":"API key not valid"}}`))
	}))
	defer srv.Close()

	s := NewGoogleTranslateService(config.TranslateConfig{APIKey: "bad", BaseURL: srv.URL})
	_, err := s.TranslateToEnglish(context.Background(), "hola", "es")

	pe := requireProviderError(t, err, ProviderGoogleTranslate)
	assert.Equal(t, http.StatusForbidden, pe.StatusCode)
	assert.Contains(t, pe.Error(), "API key not valid")
}

func TestOpenAIService_QuickInsights(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/v1/chat/completions", r.URL.Path)
		var req struct {
			Model    string `json:"model"`
			Messages []struct {
				Role    string `json:"role"`
				Content string `json:"content"`
			} `json:"messages"`
		}
		assert.NoError(t, json.NewDecoder(r.Body).Decode(&req))
		assert.Equal(t, "gpt-4o-mini", req.Model)
		if assert.Len(t, req.Messages, 2) {
			assert.Contains(t, req.Messages[1].Content, "We lose customers after onboarding")
		}

		w.Header().Set("Content-Type", "application/json")
		_, _ = w.Write([]byte(`{"id":"c1","object":"chat.completion","model":"gpt-4o-mini-2024","choices":[{"index":0,"message":{"role":"assistant","content":"- Onboarding drives churn."},"finish_reason":"stop"}]}`))
	}))
	defer srv.Close()

	s := NewOpenAIService(config.OpenAIConfig{APIKey: "oa-key", BaseURL: srv.URL + "/v1", Model: "gpt-4o-mini"})
	res, err := s.QuickInsights(context.Background(), "We lose customers after onboarding.")

	require.NoError(t, err)
	assert.Equal(t, "- Onboarding drives churn.", res.Text)
	assert.Equal(t, ProviderOpenAI, res.Provider)
	assert.Equal(t, "gpt-4o-mini-2024", res.Model)
}

func TestOpenAIService_NoChoices(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		_, _ = w.Write([]byte(`{"id":"c1","object":"chat.completion","choices":[]}`))
	}))
	defer srv.Close()

	s := NewOpenAIService(config.OpenAIConfig{APIKey: "oa-key", BaseURL: srv.URL + "/v1", Model: "gpt-4o-mini"})
	_, err := s.QuickInsights(context.Background(), "text")

	requireProviderError(t, err, ProviderOpenAI)
}

func TestOpenRouterService_DeepAnalysis(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/api/v1/chat/completions", r.URL.Path)
		assert.Equal(t, "Bearer or-key", r.Header.Get("Authorization"))
		assert.Equal(t, "founder-assessment", r.Header.Get("X-Title"))
		body, _ := io.ReadAll(r.Body)
		assert.Contains(t, string(body), "Maya Chen")
		assert.Contains(t, string(body), "Churnless")

		w.Header().Set("Content-Type", "application/json")
		_, _ = w.Write([]byte(`{"model":"openai/gpt-4o-mini","choices":[{"message":{"content":"### Organizational Health\nSolid."}}]}`))
	}))
	defer srv.Close()

	s := NewOpenRouterService(config.OpenRouterConfig{APIKey: "or-key", BaseURL: srv.URL + "/api/v1", Model: "openai/gpt-4o-mini"}, "founder-assessment")
	res, err := s.DeepAnalysis(context.Background(), AnalysisRequest{
		FounderName:       "Maya Chen",
		CompanyName:       "Churnless",
		EnglishTranscript: "We lose customers after onboarding.",
	})

	require.NoError(t, err)
	assert.Equal(t, "### Organizational Health\nSolid.", res.Text)
	assert.Equal(t, ProviderOpenRouter, res.Provider)
	assert.Equal(t, "openai/gpt-4o-mini", res.Model)
}

func TestOpenRouterService_ErrorInOKBody(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		_, _ = w.Write([]byte(`{"error":{"code":502,"message":"Provider returned error"}}`))
	}))
	defer srv.Close()

	s := NewOpenRouterService(config.OpenRouterConfig{APIKey: "or-key", BaseURL: srv.URL, Model: "m"}, "app")
	_, err := s.DeepAnalysis(context.Background(), AnalysisRequest{EnglishTranscript: "x"})

	pe := requireProviderError(t, err, ProviderOpenRouter)
	assert.Equal(t, 502, pe.StatusCode)
	assert.True(t, pe.Retryable)
}

func TestOpenRouterService_TransportError(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {}))
	url := srv.URL
	srv.Close()

	s := NewOpenRouterService(config.OpenRouterConfig{APIKey: "or-key", BaseURL: url, Model: "m"}, "app")
	_, err := s.DeepAnalysis(context.Background(), AnalysisRequest{EnglishTranscript: "x"})

	pe := requireProviderError(t, err, ProviderOpenRouter)
	assert.True(t, pe.Retryable)
}

func TestGeminiService_DeepAnalysis(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.True(t, strings.HasSuffix(r.URL.Path, "models/gemini-2.5-flash:generateContent"), r.URL.Path)
		body, _ := io.ReadAll(r.Body)
		assert.Contains(t, string(body), "Churnless")

		w.Header().Set("Content-Type", "application/json")
		_, _ = w.Write([]byte(`{"candidates":[{"content":{"role":"model","parts":[{"text":"### Organizational Health\nFocused team."}]}}]}`))
	}))
	defer srv.Close()

	s, err := NewGeminiService(context.Background(), config.GeminiConfig{APIKey: "gm-key", Model: "gemini-2.5-flash", BaseURL: srv.URL + "/"})
	require.NoError(t, err)
	res, err := s.DeepAnalysis(context.Background(), AnalysisRequest{CompanyName: "Churnless", EnglishTranscript: "We are focused."})

	require.NoError(t, err)
	assert.Equal(t, "### Organizational Health\nFocused team.", res.Text)
	assert.Equal(t, ProviderGemini, res.Provider)
}

func TestGeminiService_NoCandidates(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		_, _ = w.Write([]byte(`{"candidates":[]}`))
	}))
	defer srv.Close()

	s, err := NewGeminiService(context.Background(), config.GeminiConfig{APIKey: "gm-key", Model: "gemini-2.5-flash", BaseURL: srv.URL + "/"})
	require.NoError(t, err)
	_, err = s.DeepAnalysis(context.Background(), AnalysisRequest{EnglishTranscript: "x"})

	requireProviderError(t, err, ProviderGemini)
}

func TestGeminiService_NotConfigured(t *testing.T) {
	s, err := NewGeminiService(context.Background(), config.GeminiConfig{Model: "gemini-2.5-flash"})
	require.NoError(t, err)
	assert.False(t, s.Configured())

	_, err = s.DeepAnalysis(context.Background(), AnalysisRequest{})
	assert.ErrorIs(t, err, ErrNotConfigured)
}

func TestIsRetryable(t *testing.T) {
	assert.True(t, isRetryable(429, nil))
	assert.True(t, isRetryable(503, nil))
	assert.False(t, isRetryable(400, nil))
	assert.False(t, isRetryable(0, context.Canceled))
	assert.False(t, isRetryable(0, context.DeadlineExceeded))
	assert.True(t, isRetryable(0, errors.New("read: connection reset by peer")))
	assert.False(t, isRetryable(0, errors.New("invalid character")))
}

func TestPrompts(t *testing.T) {
	p := deepAnalysisPrompt(AnalysisRequest{
		FounderName:       "Maya Chen",
		CompanyName:       "Churnless",
		EnglishTranscript: "transcript body",
		QuickInsights:     "- insight",
		DetectedLanguage:  "Hindi",
	})
	assert.Contains(t, p, "Maya Chen, founder of Churnless")
	assert.Contains(t, p, "translated to English")
	assert.Contains(t, p, "- insight")
	assert.Contains(t, p, "transcript body")

	bare := deepAnalysisPrompt(AnalysisRequest{EnglishTranscript: "t"})
	assert.NotContains(t, bare, "Preliminary insights")

	assert.Contains(t, quickInsightPrompt("hello"), "hello")
}

func TestNewSet_Mock(t *testing.T) {
	set, err := NewSet(context.Background(), &config.Config{Pipeline: config.PipelineConfig{MockProviders: true}})
	require.NoError(t, err)
	for _, a := range set.All() {
		assert.True(t, a.Configured(), a.Name())
	}
}

func TestNewSet_Vendors(t *testing.T) {
	set, err := NewSet(context.Background(), &config.Config{
		Deepgram: config.DeepgramConfig{APIKey: "dg"},
		Gemini:   config.GeminiConfig{Model: "gemini-2.5-flash"},
	})
	require.NoError(t, err)

	names := make(map[string]bool)
	for _, a := range set.All() {
		names[a.Name()] = a.Configured()
	}
	assert.Equal(t, map[string]bool{
		ProviderDeepgram:        true,
		ProviderWhisper:         false,
		ProviderGoogleTranslate: false,
		ProviderOpenAI:          false,
		ProviderGemini:          false,
		ProviderOpenRouter:      false,
	}, names)
}
