// Package renderer renders simulation reports to markdown.
package renderer

import (
	"embed"
	"fmt"
	"io/fs"
	"strings"
	"text/template"

	"github.com/etnz/dca"
)

//go:embed templates/*.md
var templateFS embed.FS

// templates holds the markdown templates, at the root.
var templates, _ = fs.Sub(templateFS, "templates")

// RenderOptions holds configuration for rendering a report.
type RenderOptions struct {
	Raw bool // Render the raw data table.
}

// RenderReport renders a simulation report to a markdown string.
func RenderReport(r *dca.Report, opts RenderOptions) string {
	partials := map[string]string{
		"report_title":    "report_title.md",
		"report_metrics":  "report_metrics.md",
		"report_warnings": "report_warnings.md",
		"report_raw":      "report_raw.md",
	}
	view := NewReport(r)
	if !opts.Raw {
		view.Raw = nil
	}
	return renderTemplate("report", "report.md", partials, view)
}

var funcs = template.FuncMap{
	// cell escapes a string for a markdown table cell.
	"cell": func(s string) string { return strings.ReplaceAll(s, "|", `\|`) },
}

// renderTemplate is a generic utility to render a main template that depends on several partials.
func renderTemplate(templateName, mainFile string, partials map[string]string, data any) string {
	mainContent, err := fs.ReadFile(templates, mainFile)
	if err != nil {
		return fmt.Sprintf("error reading main template %q: %v", mainFile, err)
	}

	tmpl, err := template.New(templateName).Funcs(funcs).Parse(string(mainContent))
	if err != nil {
		return fmt.Sprintf("error parsing main template %q: %v", mainFile, err)
	}

	for name, file := range partials {
		var content []byte
		// An empty file name is a valid case, resulting in an empty template.
		if file != "" {
			content, err = fs.ReadFile(templates, file)
			if err != nil {
				return fmt.Sprintf("error reading partial template %q: %v", file, err)
			}
		}
		if _, err := tmpl.New(name).Parse(string(content)); err != nil {
			return fmt.Sprintf("error parsing partial template %q for %q: %v", file, name, err)
		}
	}

	var b strings.Builder
	if err := tmpl.ExecuteTemplate(&b, templateName, data); err != nil {
		return fmt.Sprintf("error executing template %q: %v", templateName, err)
	}
	return b.String()
}
