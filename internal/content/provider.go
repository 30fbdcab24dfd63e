package content

import (
	"bytes"
	"embed"
	"fmt"
	"strings"
	"text/template"

	"campusportal/internal/domain"

	"gopkg.in/yaml.v3"
)

//go:embed templates/*.html
var templateFS embed.FS

//go:embed catalog.yaml
var catalogYAML []byte

// barWidth is the number of cells of a full attendance bar
const barWidth = 10

// Provider serves view templates and the mock data catalog
type Provider struct {
	templates *template.Template
	catalog   *Catalog
}

// New parses the embedded templates and catalog
func New() (*Provider, error) {
	templates, err := template.New("").Funcs(funcs()).ParseFS(templateFS, "templates/*.html")
	if err != nil {
		return nil, fmt.Errorf("failed to parse templates: %w", err)
	}

	catalog, err := ParseCatalog(catalogYAML)
	if err != nil {
		return nil, err
	}

	return &Provider{templates: templates, catalog: catalog}, nil
}

// ParseCatalog decodes a YAML catalog
func ParseCatalog(data []byte) (*Catalog, error) {
	var catalog Catalog
	if err := yaml.Unmarshal(data, &catalog); err != nil {
		return nil, fmt.Errorf("failed to parse catalog: %w", err)
	}
	return &catalog, nil
}

// FetchTemplate returns the template registered under a file-like name
func (p *Provider) FetchTemplate(name string) (*template.Template, error) {
	tmpl := p.templates.Lookup(name)
	if tmpl == nil {
		return nil, &domain.NotFoundError{Name: name}
	}
	return tmpl, nil
}

// Catalog returns the mock data catalog
func (p *Provider) Catalog() *Catalog {
	return p.catalog
}

// Execute renders the named template with data
func (p *Provider) Execute(name string, data any) (string, error) {
	tmpl, err := p.FetchTemplate(name)
	if err != nil {
		return "", err
	}

	var buf bytes.Buffer
	if err := tmpl.Execute(&buf, data); err != nil {
		return "", fmt.Errorf("failed to execute %s: %w", name, err)
	}
	return strings.TrimSpace(buf.String()), nil
}

func funcs() template.FuncMap {
	return template.FuncMap{
		"bar": Bar,
		"inc": func(i int) int { return i + 1 },
	}
}

// Bar draws a percentage as a fixed-width text bar
func Bar(percent int) string {
	if percent < 0 {
		percent = 0
	}
	if percent > 100 {
		percent = 100
	}
	filled := (percent*barWidth + 50) / 100
	return strings.Repeat("█", filled) + strings.Repeat("░", barWidth-filled)
}
