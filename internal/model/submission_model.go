package model

// InputMode tells the pipeline which field of a Submission carries the interview.
type InputMode string

const (
	InputModeVoice InputMode = "voice"
	InputModeText  InputMode = "text"
)

// AudioClip is an uploaded recording spooled to a temporary file.
type AudioClip struct {
	Path        string
	Filename    string
	ContentType string
	Size        int64
}

// Empty reports whether the clip carries no audio bytes.
func (a *AudioClip) Empty() bool {
	return a == nil || a.Size <= 0 || a.Path == ""
}

type Submission struct {
	FounderName       string     `form:"founderName" validate:"required"`
	CompanyName       string     `form:"companyName" validate:"required"`
	Email             string     `form:"email" validate:"required"`
	Phone             string     `form:"phone" validate:"required"`
	InputMode         InputMode  `form:"inputType" validate:"omitempty,oneof=voice text"`
	Audio             *AudioClip `form:"-"`
	TextContent       string     `form:"textContent"`
	RequestedLanguage string     `form:"language"`
}

// Mode resolves the effective input mode. An unset mode is inferred from
// which of audio or text was supplied.
func (s Submission) Mode() InputMode {
	if s.InputMode != "" {
		return s.InputMode
	}
	if s.Audio != nil {
		return InputModeVoice
	}
	return InputModeText
}
