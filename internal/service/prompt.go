package service

import (
	"fmt"
	"strings"
)

const quickInsightSystemPrompt = "You are an organizational consultant who reviews founder interviews for early-stage companies."

const deepAnalysisSystemPrompt = "You are a senior organizational psychologist and startup advisor writing assessment reports for founders."

func quickInsightPrompt(transcript string) string {
	return fmt.Sprintf(`Read the founder interview below and list 3 to 5 quick insights as short bullet points.
Each bullet starts with "- " and is one sentence. Cover the biggest organizational challenge,
team dynamics, and any immediate risk. Do not add a heading or closing remarks.

Interview:
%s
`, transcript)
}

func deepAnalysisPrompt(req AnalysisRequest) string {
	var b strings.Builder
	fmt.Fprintf(&b, "Write an organizational assessment for %s, founder of %s.\n\n", req.FounderName, req.CompanyName)
	b.WriteString(`Structure the answer with these sections, each as a "###" heading:
### Organizational Health
### Leadership & Founder Dynamics
### Team & Culture
### Key Risks
### Recommendations

Be specific to what the founder said. Use short paragraphs and bullet points. Keep it under 700 words.

`)
	if req.DetectedLanguage != "" {
		fmt.Fprintf(&b, "The interview was given in %s and translated to English.\n\n", req.DetectedLanguage)
	}
	if strings.TrimSpace(req.QuickInsights) != "" {
		fmt.Fprintf(&b, "Preliminary insights from a first pass:\n%s\n\n", req.QuickInsights)
	}
	fmt.Fprintf(&b, "Interview transcript:\n%s\n", req.EnglishTranscript)
	return b.String()
}
