package service

import (
	"context"
	"errors"
	"math"
	"strings"

	"github.com/fadilmartias/founder-assessment/internal/config"
	"github.com/fadilmartias/founder-assessment/internal/model"
	"github.com/sashabaranov/go-openai"
)

// WhisperService is the fallback transcriber.
type WhisperService struct {
	APIKey string
	Model  string
	client *openai.Client
}

func NewWhisperService(cfg config.WhisperConfig) *WhisperService {
	return &WhisperService{
		APIKey: cfg.APIKey,
		Model:  cfg.Model,
		client: newOpenAIClient(cfg.APIKey, cfg.BaseURL),
	}
}

func newOpenAIClient(apiKey, baseURL string) *openai.Client {
	clientConfig := openai.DefaultConfig(apiKey)
	if baseURL != "" {
		clientConfig.BaseURL = strings.TrimRight(baseURL, "/")
	}
	return openai.NewClientWithConfig(clientConfig)
}

func (s *WhisperService) Name() string     { return ProviderWhisper }
func (s *WhisperService) Configured() bool { return s.APIKey != "" }

func (s *WhisperService) Transcribe(ctx context.Context, clip *model.AudioClip) (*model.TranscriptionResult, error) {
	if !s.Configured() {
		return nil, notConfigured(ProviderWhisper)
	}
	if clip.Empty() {
		return nil, newProviderError(ProviderWhisper, 0, errors.New("no audio to transcribe"))
	}

	res, err := s.client.CreateTranscription(ctx, openai.AudioRequest{
		Model:    s.Model,
		FilePath: clip.Path,
		Format:   openai.AudioResponseFormatVerboseJSON,
	})
	if err != nil {
		return nil, openAIError(ProviderWhisper, err)
	}

	transcript := strings.TrimSpace(res.Text)
	if err := requireText(ProviderWhisper, transcript); err != nil {
		return nil, err
	}

	logprobs := make([]float64, 0, len(res.Segments))
	for _, seg := range res.Segments {
		logprobs = append(logprobs, seg.AvgLogprob)
	}

	return &model.TranscriptionResult{
		Transcript:        transcript,
		LanguageCode:      res.Language,
		ConfidencePercent: meanLogprobPercent(logprobs),
		Provider:          ProviderWhisper,
	}, nil
}

// meanLogprobPercent turns a mean log-probability into a percentage.
func meanLogprobPercent(logprobs []float64) float64 {
	if len(logprobs) == 0 {
		return 0
	}
	var sum float64
	for _, lp := range logprobs {
		sum += lp
	}
	return clampPercent(math.Exp(sum/float64(len(logprobs))) * 100)
}

// openAIError maps go-openai failures onto ProviderError.
func openAIError(provider string, err error) *ProviderError {
	var apiErr *openai.APIError
	if errors.As(err, &apiErr) {
		return newProviderError(provider, apiErr.HTTPStatusCode, errors.New(apiErr.Message))
	}
	var reqErr *openai.RequestError
	if errors.As(err, &reqErr) {
		return newProviderError(provider, reqErr.HTTPStatusCode, reqErr)
	}
	return newProviderError(provider, 0, err)
}
