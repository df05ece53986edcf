package model

// TranscriptionResult is the normalized output of every STT adapter.
type TranscriptionResult struct {
	Transcript        string  `json:"transcript"`
	LanguageCode      string  `json:"language_code"`
	ConfidencePercent float64 `json:"confidence_percent"` // 0-100
	Provider          string  `json:"provider"`
}

// AnalysisResult is the normalized output of the deep-analysis adapters.
type AnalysisResult struct {
	Text     string `json:"text"`
	Provider string `json:"provider"`
	Model    string `json:"model"`
}

// AnalysisBundle accumulates per-request pipeline output. It is never stored
// on its own.
type AnalysisBundle struct {
	EnglishTranscript string
	QuickInsights     string
	DeepAnalysis      string
	AnalysisProvider  string
	Degraded          []string
}
