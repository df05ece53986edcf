package service

import (
	"context"
	"errors"
	"html"
	"strings"

	"github.com/fadilmartias/founder-assessment/internal/config"
	"github.com/go-resty/resty/v2"
	"github.com/tidwall/gjson"
)

// GoogleTranslateService calls the Cloud Translation v2 REST API.
type GoogleTranslateService struct {
	APIKey  string
	BaseURL string
	client  *resty.Client
}

func NewGoogleTranslateService(cfg config.TranslateConfig) *GoogleTranslateService {
	return &GoogleTranslateService{
		APIKey:  cfg.APIKey,
		BaseURL: strings.TrimRight(cfg.BaseURL, "/"),
		client:  resty.New(),
	}
}

func (s *GoogleTranslateService) Name() string     { return ProviderGoogleTranslate }
func (s *GoogleTranslateService) Configured() bool { return s.APIKey != "" }

func (s *GoogleTranslateService) TranslateToEnglish(ctx context.Context, text, sourceLanguage string) (string, error) {
	if !s.Configured() {
		return "", notConfigured(ProviderGoogleTranslate)
	}

	body := map[string]string{
		"q":      text,
		"target": "en",
		"format": "text",
	}
	if sourceLanguage != "" {
		body["source"] = sourceLanguage
	}

	resp, err := s.client.R().
		SetContext(ctx).
		SetQueryParam("key", s.APIKey).
		SetHeader("Content-Type", "application/json").
		SetBody(body).
		Post(s.BaseURL + "/language/translate/v2")
	if err != nil {
		return "", newProviderError(ProviderGoogleTranslate, 0, err)
	}
	if resp.IsError() {
		return "", newProviderError(ProviderGoogleTranslate, resp.StatusCode(), errors.New(errorMessage(resp)))
	}

	translated := gjson.Get(resp.String(), "data.translations.0.translatedText").String()
	translated = strings.TrimSpace(html.UnescapeString(translated))
	if err := requireText(ProviderGoogleTranslate, translated); err != nil {
		return "", err
	}
	return translated, nil
}
