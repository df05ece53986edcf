package dto

import (
	"strings"

	"github.com/fadilmartias/founder-assessment/internal/model"
)

// ProcessInterviewRequest is the multipart form of POST /api/process-interview.
// The audio file travels separately as the "audio" form file.
type ProcessInterviewRequest struct {
	FounderName string `form:"founderName"`
	CompanyName string `form:"companyName"`
	Email       string `form:"email"`
	Phone       string `form:"phone"`
	InputType   string `form:"inputType"`
	TextContent string `form:"textContent"`
	Language    string `form:"language"`
}

func (r ProcessInterviewRequest) ToSubmission(audio *model.AudioClip) model.Submission {
	return model.Submission{
		FounderName:       strings.TrimSpace(r.FounderName),
		CompanyName:       strings.TrimSpace(r.CompanyName),
		Email:             strings.TrimSpace(r.Email),
		Phone:             strings.TrimSpace(r.Phone),
		InputMode:         model.InputMode(strings.ToLower(strings.TrimSpace(r.InputType))),
		Audio:             audio,
		TextContent:       r.TextContent,
		RequestedLanguage: strings.TrimSpace(r.Language),
	}
}
