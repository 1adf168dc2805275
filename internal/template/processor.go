package template

import (
	"fmt"
	"strings"
	"text/template"

	"github.com/Masterminds/sprig/v3"

	"ezconfig-cli/internal/interfaces"
)

// pathPlaceholder is the brace placeholder accepted alongside {{ .Path }}
const pathPlaceholder = "{saving_json}"

// Processor implements the TextRenderer interface
type Processor struct {
	cache map[string]*template.Template
}

// NewProcessor creates a new template processor
func NewProcessor() *Processor {
	return &Processor{
		cache: make(map[string]*template.Template),
	}
}

// Render expands text with the provided data. Text without template
// actions is returned unchanged.
func (p *Processor) Render(text string, data interfaces.TemplateData) (string, error) {
	if text == "" {
		return "", nil
	}

	text = strings.ReplaceAll(text, pathPlaceholder, "{{ .Path }}")
	if !strings.Contains(text, "{{") {
		return text, nil
	}

	tmpl, err := p.parse(text)
	if err != nil {
		return "", err
	}

	var buf strings.Builder
	if err := tmpl.Execute(&buf, data); err != nil {
		return "", fmt.Errorf("failed to execute template: %w", err)
	}

	return buf.String(), nil
}

// parse compiles text once; the same title is rendered on every redraw
func (p *Processor) parse(text string) (*template.Template, error) {
	if tmpl, ok := p.cache[text]; ok {
		return tmpl, nil
	}

	tmpl := template.New("text")
	registerHelpersToTemplate(tmpl)

	tmpl, err := tmpl.Parse(text)
	if err != nil {
		return nil, fmt.Errorf("failed to parse template %q: %w", text, err)
	}

	p.cache[text] = tmpl
	return tmpl, nil
}

// registerHelpersToTemplate registers both sprig and custom helper functions to a template
func registerHelpersToTemplate(tmpl *template.Template) {
	funcMap := sprig.TxtFuncMap()
	funcMap["truncate"] = truncateFunc
	tmpl.Funcs(funcMap)
}

// truncateFunc truncates a string to a specified length
func truncateFunc(length int, text string) string {
	if len(text) <= length {
		return text
	}

	if length <= 3 {
		return text[:length]
	}

	return text[:length-3] + "..."
}
