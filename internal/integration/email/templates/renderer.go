// Package templates renders the embedded email templates.
package templates

import (
	"bytes"
	"embed"
	"fmt"
	htmltemplate "html/template"
	texttemplate "text/template"
)

//go:embed *.html *.txt
var templateFS embed.FS

var funcs = map[string]any{
	"kg": func(v float64) string { return fmt.Sprintf("%.2f", v) },
}

// Renderer holds the parsed HTML and plain-text templates.
type Renderer struct {
	htmlTemplates *htmltemplate.Template
	textTemplates *texttemplate.Template
}

// NewRenderer parses the embedded templates.
func NewRenderer() (*Renderer, error) {
	htmlTmpl, err := htmltemplate.New("").Funcs(funcs).ParseFS(templateFS, "*.html")
	if err != nil {
		return nil, fmt.Errorf("failed to parse HTML templates: %w", err)
	}

	textTmpl, err := texttemplate.New("").Funcs(funcs).ParseFS(templateFS, "*.txt")
	if err != nil {
		return nil, fmt.Errorf("failed to parse text templates: %w", err)
	}

	return &Renderer{
		htmlTemplates: htmlTmpl,
		textTemplates: textTmpl,
	}, nil
}

// Render renders both versions of a template. A missing text version yields an empty body.
func (r *Renderer) Render(templateName string, data any) (html string, text string, err error) {
	var htmlBuf bytes.Buffer
	if err := r.htmlTemplates.ExecuteTemplate(&htmlBuf, templateName+".html", data); err != nil {
		return "", "", fmt.Errorf("failed to render HTML template %s: %w", templateName, err)
	}

	if r.textTemplates.Lookup(templateName+".txt") == nil {
		return htmlBuf.String(), "", nil
	}

	var textBuf bytes.Buffer
	if err := r.textTemplates.ExecuteTemplate(&textBuf, templateName+".txt", data); err != nil {
		return "", "", fmt.Errorf("failed to render text template %s: %w", templateName, err)
	}

	return htmlBuf.String(), textBuf.String(), nil
}

// ReportReadyData feeds the report_ready template.
type ReportReadyData struct {
	UserName     string
	ReportName   string
	StartDate    string
	EndDate      string
	TotalKg      float64
	Scope1Kg     float64
	Scope2Kg     float64
	Scope3Kg     float64
	DashboardURL string
}
