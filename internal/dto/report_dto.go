package dto

import (
	"time"

	"github.com/fadilmartias/founder-assessment/internal/model"
)

type ReportDTO struct {
	ID                    string    `json:"id"`
	FounderName           string    `json:"founderName"`
	CompanyName           string    `json:"companyName"`
	Email                 string    `json:"email"`
	Phone                 string    `json:"phone"`
	InputType             string    `json:"inputType"`
	Transcript            string    `json:"transcript"`
	EnglishTranscript     string    `json:"englishTranscript"`
	LanguageCode          string    `json:"languageCode"`
	DetectedLanguage      string    `json:"detectedLanguage"`
	QuickInsights         string    `json:"quickInsights"`
	DeepAnalysis          string    `json:"deepAnalysis"`
	RenderedText          string    `json:"renderedText"`
	TranscriptionProvider string    `json:"transcriptionProvider,omitempty"`
	AnalysisProvider      string    `json:"analysisProvider"`
	Degraded              []string  `json:"degraded"`
	CreatedAt             time.Time `json:"createdAt"`
	ProcessingTimeMs      int64     `json:"processingTimeMs"`
}

func NewReportDTO(r *model.Report) ReportDTO {
	degraded := r.Degraded
	if degraded == nil {
		degraded = []string{}
	}
	return ReportDTO{
		ID:                    r.ID,
		FounderName:           r.FounderName,
		CompanyName:           r.CompanyName,
		Email:                 r.Email,
		Phone:                 r.Phone,
		InputType:             string(r.InputMode),
		Transcript:            r.Transcript,
		EnglishTranscript:     r.EnglishTranscript,
		LanguageCode:          r.LanguageCode,
		DetectedLanguage:      r.DetectedLanguage,
		QuickInsights:         r.QuickInsights,
		DeepAnalysis:          r.DeepAnalysis,
		RenderedText:          r.RenderedText,
		TranscriptionProvider: r.TranscriptionProvider,
		AnalysisProvider:      r.AnalysisProvider,
		Degraded:              degraded,
		CreatedAt:             r.CreatedAt,
		ProcessingTimeMs:      r.ProcessingTimeMs,
	}
}
