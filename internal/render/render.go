// Package render turns a Markdown report into the output formats the CLI
// supports.
package render

import (
	"bytes"
	"encoding/json"
	"fmt"
	"html/template"
	"io"
	"io/fs"
	"strings"

	"github.com/yuin/goldmark"
	"github.com/yuin/goldmark/extension"
)

const (
	FormatMarkdown = "markdown"
	FormatHTML     = "html"
	FormatJSON     = "json"
)

// Formats lists the accepted --format values.
var Formats = []string{FormatMarkdown, FormatHTML, FormatJSON}

// ValidFormat reports whether f is a supported output format.
func ValidFormat(f string) bool {
	for _, known := range Formats {
		if f == known {
			return true
		}
	}
	return false
}

// ParseTemplates loads every template under templates/ in fsys.
func ParseTemplates(fsys fs.FS) (*template.Template, error) {
	funcMap := template.FuncMap{
		"urlize": normalizeRepoName,
		"css": func(name string) (template.CSS, error) {
			data, err := fs.ReadFile(fsys, "templates/"+name)
			if err != nil {
				return "", err
			}
			return template.CSS(data), nil
		},
	}
	tmpl, err := template.New("").Funcs(funcMap).ParseFS(fsys, "templates/*.html")
	if err != nil {
		return nil, fmt.Errorf("failed to parse templates: %w", err)
	}
	return tmpl, nil
}

// MarkdownToHTML converts report Markdown, tables included, to an HTML
// fragment.
func MarkdownToHTML(markdown string) (template.HTML, error) {
	md := goldmark.New(goldmark.WithExtensions(extension.Table))
	var buf bytes.Buffer
	if err := md.Convert([]byte(markdown), &buf); err != nil {
		return "", fmt.Errorf("failed to convert markdown: %w", err)
	}
	return template.HTML(buf.String()), nil
}

// HTML renders vm as a full page using the report.html template.
func HTML(w io.Writer, tmpl *template.Template, markdown string, vm PageViewModel) error {
	body, err := MarkdownToHTML(markdown)
	if err != nil {
		return err
	}
	vm.Body = body
	if err := tmpl.ExecuteTemplate(w, "report.html", vm); err != nil {
		return fmt.Errorf("failed to render report.html: %w", err)
	}
	return nil
}

// JSON writes doc as indented JSON.
func JSON(w io.Writer, doc Document) error {
	encoder := json.NewEncoder(w)
	encoder.SetIndent("", "  ")
	encoder.SetEscapeHTML(false)
	return encoder.Encode(doc)
}

func normalizeRepoName(name string) string {
	return strings.ReplaceAll(strings.ToLower(name), "/", "-")
}
