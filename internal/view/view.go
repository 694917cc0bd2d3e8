package view

import (
	"embed"
	"fmt"
	"html/template"
	"io"
)

//go:embed templates/*.html
var files embed.FS

var templates = template.Must(template.ParseFS(files, "templates/*.html"))

// Page is the data passed to every template. Authenticated and DisplayName
// accompany every response for the navigation bar.
type Page struct {
	Authenticated bool
	DisplayName   string

	// Error is an inline form error message, empty when absent.
	Error string

	// Response is the provider's answer on the advice pages, empty when absent.
	Response string

	// Form holds submitted field values so they survive a re-render.
	Form map[string]string
}

// Render executes the named page template.
func Render(w io.Writer, name string, data Page) error {
	if err := templates.ExecuteTemplate(w, name+".html", data); err != nil {
		return fmt.Errorf("render %s: %w", name, err)
	}
	return nil
}
