package report

import (
	"bytes"
	"fmt"
	"html/template"

	"github.com/fadilmartias/founder-assessment/internal/model"
	"github.com/yuin/goldmark"
	"github.com/yuin/goldmark/extension"
)

var markdown = goldmark.New(goldmark.WithExtensions(extension.Linkify))

var page = template.Must(template.New("report").Parse(`<!DOCTYPE html>
<html lang="en">
<head>
<meta charset="utf-8">
<title>{{.Title}}</title>
<style>
body { font-family: system-ui, sans-serif; max-width: 760px; margin: 2rem auto; line-height: 1.5; color: #1f2933; }
blockquote { border-left: 3px solid #cbd2d9; margin-left: 0; padding-left: 1rem; color: #52606d; }
</style>
</head>
<body>
{{.Body}}
</body>
</html>
`))

// RenderHTML converts the rendered report text into a standalone HTML page.
func RenderHTML(r model.Report) ([]byte, error) {
	text := r.RenderedText
	if text == "" {
		text = Render(r)
	}

	var body bytes.Buffer
	if err := markdown.Convert([]byte(text), &body); err != nil {
		return nil, fmt.Errorf("convert report markdown: %w", err)
	}

	var out bytes.Buffer
	err := page.Execute(&out, struct {
		Title string
		Body  template.HTML
	}{
		Title: fmt.Sprintf("Assessment for %s (%s)", r.CompanyName, r.ID),
		// goldmark omits raw HTML from the source unless html.WithUnsafe is set
		Body: template.HTML(body.String()),
	})
	if err != nil {
		return nil, fmt.Errorf("render report page: %w", err)
	}
	return out.Bytes(), nil
}
