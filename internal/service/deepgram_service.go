package service

import (
	"context"
	"errors"
	"fmt"
	"os"
	"strings"

	"github.com/fadilmartias/founder-assessment/internal/config"
	"github.com/fadilmartias/founder-assessment/internal/model"
	"github.com/go-resty/resty/v2"
	"github.com/tidwall/gjson"
)

// DeepgramService transcribes pre-recorded audio with language detection.
type DeepgramService struct {
	APIKey  string
	BaseURL string
	Model   string
	client  *resty.Client
}

func NewDeepgramService(cfg config.DeepgramConfig) *DeepgramService {
	return &DeepgramService{
		APIKey:  cfg.APIKey,
		BaseURL: strings.TrimRight(cfg.BaseURL, "/"),
		Model:   cfg.Model,
		client:  resty.New(),
	}
}

func (s *DeepgramService) Name() string     { return ProviderDeepgram }
func (s *DeepgramService) Configured() bool { return s.APIKey != "" }

func (s *DeepgramService) Transcribe(ctx context.Context, clip *model.AudioClip) (*model.TranscriptionResult, error) {
	if !s.Configured() {
		return nil, notConfigured(ProviderDeepgram)
	}
	if clip.Empty() {
		return nil, newProviderError(ProviderDeepgram, 0, errors.New("no audio to transcribe"))
	}

	f, err := os.Open(clip.Path)
	if err != nil {
		return nil, newProviderError(ProviderDeepgram, 0, fmt.Errorf("open audio: %w", err))
	}
	defer f.Close()

	contentType := clip.ContentType
	if contentType == "" {
		contentType = "application/octet-stream"
	}

	resp, err := s.client.R().
		SetContext(ctx).
		SetHeader("Authorization", "Token "+s.APIKey).
		SetHeader("Content-Type", contentType).
		SetQueryParams(map[string]string{
			"model":           s.Model,
			"detect_language": "true",
			"smart_format":    "true",
			"punctuate":       "true",
		}).
		SetBody(f).
		Post(s.BaseURL + "/v1/listen")
	if err != nil {
		return nil, newProviderError(ProviderDeepgram, 0, err)
	}
	if resp.IsError() {
		return nil, newProviderError(ProviderDeepgram, resp.StatusCode(), errors.New(errorMessage(resp)))
	}

	body := resp.String()
	alt := gjson.Get(body, "results.channels.0.alternatives.0")
	if !alt.Exists() {
		return nil, newProviderError(ProviderDeepgram, resp.StatusCode(), errors.New("response has no alternatives"))
	}
	transcript := strings.TrimSpace(alt.Get("transcript").String())
	if err := requireText(ProviderDeepgram, transcript); err != nil {
		return nil, err
	}

	return &model.TranscriptionResult{
		Transcript:        transcript,
		LanguageCode:      gjson.Get(body, "results.channels.0.detected_language").String(),
		ConfidencePercent: clampPercent(alt.Get("confidence").Float() * 100),
		Provider:          ProviderDeepgram,
	}, nil
}

// errorMessage pulls a human readable message out of a JSON error body.
func errorMessage(resp *resty.Response) string {
	body := resp.String()
	for _, path := range []string{"error.message", "err_msg", "error", "message"} {
		if v := gjson.Get(body, path); v.Exists() && v.Type == gjson.String {
			return v.String()
		}
	}
	if body == "" {
		return resp.Status()
	}
	if len(body) > 200 {
		body = body[:200]
	}
	return body
}

func clampPercent(v float64) float64 {
	switch {
	case v < 0:
		return 0
	case v > 100:
		return 100
	}
	return v
}
