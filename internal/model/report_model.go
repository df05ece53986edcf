package model

import "time"

type Report struct {
	ID                    string    `json:"id"`
	FounderName           string    `json:"founder_name"`
	CompanyName           string    `json:"company_name"`
	Email                 string    `json:"email"`
	Phone                 string    `json:"phone"`
	InputMode             InputMode `json:"input_mode"`
	Transcript            string    `json:"transcript"`
	EnglishTranscript     string    `json:"english_transcript"`
	LanguageCode          string    `json:"language_code"`
	DetectedLanguage      string    `json:"detected_language"`
	QuickInsights         string    `json:"quick_insights,omitempty"`
	DeepAnalysis          string    `json:"deep_analysis"`
	RenderedText          string    `json:"rendered_text"`
	TranscriptionProvider string    `json:"transcription_provider,omitempty"`
	AnalysisProvider      string    `json:"analysis_provider"`
	Degraded              []string  `json:"degraded,omitempty"`
	CreatedAt             time.Time `json:"created_at"`
	ProcessingTimeMs      int64     `json:"processing_time_ms"`
}

// Clone returns a copy that shares no mutable state with r.
func (r *Report) Clone() *Report {
	if r == nil {
		return nil
	}
	c := *r
	if r.Degraded != nil {
		c.Degraded = append([]string(nil), r.Degraded...)
	}
	return &c
}
