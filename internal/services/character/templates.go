package character

import (
	_ "embed"
	"encoding/json"
	"fmt"

	"github.com/KirkDiggler/dado-bot/internal/entities"
	dnderr "github.com/KirkDiggler/dado-bot/internal/errors"
	"gopkg.in/yaml.v3"
)

//go:embed templates.yaml
var templatesYAML []byte

// Template is the starting shape of a sheet for one system
type Template struct {
	Fields map[string]any `yaml:"fields"`
	// UniqueLists maps a list field whose entries may not repeat to the
	// field that names the equipped entry ("" when none is tracked).
	UniqueLists map[string]string `yaml:"unique_lists"`
}

// Templates holds one template per system
type Templates map[entities.GameSystem]*Template

// LoadTemplates parses a templates document. Every supported system must be present.
func LoadTemplates(raw []byte) (Templates, error) {
	var parsed map[string]*Template
	if err := yaml.Unmarshal(raw, &parsed); err != nil {
		return nil, fmt.Errorf("failed to parse sheet templates: %w", err)
	}

	out := make(Templates, len(parsed))
	for key, tmpl := range parsed {
		system, ok := entities.ParseGameSystem(key)
		if !ok {
			return nil, dnderr.InvalidArgumentf("template for unknown system '%s'", key)
		}
		if tmpl == nil || tmpl.Fields == nil {
			return nil, dnderr.InvalidArgumentf("template for %s has no fields", key)
		}

		fields, err := normalize(tmpl.Fields)
		if err != nil {
			return nil, fmt.Errorf("template %s: %w", key, err)
		}
		tmpl.Fields = fields
		out[system] = tmpl
	}

	for _, system := range entities.GameSystems {
		if out[system] == nil {
			return nil, dnderr.InvalidArgumentf("missing template for %s", system)
		}
	}

	return out, nil
}

// DefaultTemplates returns the embedded templates
func DefaultTemplates() Templates {
	templates, err := LoadTemplates(templatesYAML)
	if err != nil {
		panic(fmt.Sprintf("embedded sheet templates are invalid: %v", err))
	}
	return templates
}

// NewFields returns a fresh copy of the template's fields
func (t *Template) NewFields() (map[string]any, error) {
	return normalize(t.Fields)
}

// normalize round-trips a field bag through JSON so numbers and nested
// containers have the same types a store hands back
func normalize(fields map[string]any) (map[string]any, error) {
	raw, err := json.Marshal(fields)
	if err != nil {
		return nil, fmt.Errorf("failed to marshal fields: %w", err)
	}

	var out map[string]any
	if err := json.Unmarshal(raw, &out); err != nil {
		return nil, fmt.Errorf("failed to unmarshal fields: %w", err)
	}
	return out, nil
}
