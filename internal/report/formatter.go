// Package report renders stored assessments as text, HTML and spreadsheets.
package report

import (
	"fmt"
	"strings"

	"github.com/fadilmartias/founder-assessment/internal/model"
)

// Section headings, in render order.
const (
	TitleHeading         = "# Preliminary Organizational Assessment"
	FounderHeading       = "## Founder & Company"
	OriginalHeading      = "## Original Transcript"
	QuickInsightsHeading = "## Quick Insights"
	DeepAnalysisHeading  = "## Organizational Analysis"
	NextStepsHeading     = "## Next Steps"
)

// QuickInsightsUnavailable replaces the quick-insight block when that stage degraded.
const QuickInsightsUnavailable = "_Quick insights were unavailable for this interview. The full analysis below is unaffected._"

const nextSteps = `This is a preliminary, AI-generated assessment based on a single interview.

- Book a 45-minute debrief to walk through the findings with an advisor.
- Invite two or three team members to a confidential team-health survey.
- Upgrade to the full assessment for a 90-day organizational roadmap.`

const timeLayout = "2006-01-02 15:04 MST"

// Render formats a report. The original-language transcript is included
// only when the interview was not in English.
func Render(r model.Report) string {
	var b strings.Builder

	b.WriteString(TitleHeading + "\n\n")
	fmt.Fprintf(&b, "- **Report ID:** %s\n", r.ID)
	fmt.Fprintf(&b, "- **Generated:** %s\n", r.CreatedAt.UTC().Format(timeLayout))
	fmt.Fprintf(&b, "- **Interview language:** %s\n\n", valueOr(r.DetectedLanguage, "English"))

	b.WriteString(FounderHeading + "\n\n")
	fmt.Fprintf(&b, "- **Founder:** %s\n", r.FounderName)
	fmt.Fprintf(&b, "- **Company:** %s\n", r.CompanyName)
	fmt.Fprintf(&b, "- **Email:** %s\n", r.Email)
	fmt.Fprintf(&b, "- **Phone:** %s\n\n", r.Phone)

	if !isEnglish(r) {
		fmt.Fprintf(&b, "%s (%s)\n\n", OriginalHeading, r.DetectedLanguage)
		b.WriteString(quote(r.Transcript) + "\n\n")
	}

	b.WriteString(QuickInsightsHeading + "\n\n")
	b.WriteString(valueOr(strings.TrimSpace(r.QuickInsights), QuickInsightsUnavailable) + "\n\n")

	b.WriteString(DeepAnalysisHeading + "\n\n")
	b.WriteString(strings.TrimSpace(r.DeepAnalysis) + "\n\n")

	b.WriteString(NextStepsHeading + "\n\n")
	b.WriteString(nextSteps + "\n")

	return b.String()
}

func isEnglish(r model.Report) bool {
	return r.LanguageCode == "" || r.LanguageCode == "en"
}

func quote(text string) string {
	lines := strings.Split(strings.TrimSpace(text), "\n")
	for i, l := range lines {
		lines[i] = "> " + l
	}
	return strings.Join(lines, "\n")
}

func valueOr(v, fallback string) string {
	if v == "" {
		return fallback
	}
	return v
}
