// Package catalog defines the static template catalog: named form+prompt
// pairs used to generate one category of marketing copy each.
package catalog

import "fmt"

// FieldType identifies how a form field collects its value.
type FieldType string

// Supported field types.
const (
	FieldText     FieldType = "text"
	FieldTextarea FieldType = "textarea"
	FieldSelect   FieldType = "select"
)

// OtherSentinel is the select option value that redirects to a companion
// free-text field. When a select field holds this value, the form engine
// requires and substitutes the "<fieldID>_other" companion instead.
const OtherSentinel = "other"

// OtherSuffix is appended to a field ID to form its companion key.
const OtherSuffix = "_other"

// OtherMaxLength caps companion free-text values on the strategic template
// path.
const OtherMaxLength = 100

// Renderer identifies how a template's form is presented by the client.
type Renderer string

// Renderer variants. Custom renderers are resolved once at catalog-definition
// time rather than by ID comparison at call sites.
const (
	RendererStandard     Renderer = "standard"
	RendererBrandWizard  Renderer = "custom:brand-messaging-wizard"
	RendererEmailPreview Renderer = "custom:email-preview"
)

// Complexity tiers a template can declare.
const (
	ComplexityBasic     = "basic"
	ComplexityStandard  = "standard"
	ComplexityStrategic = "strategic"
)

// Field describes one typed form field of a template.
type Field struct {
	ID        string    `json:"id"`
	Label     string    `json:"label"`
	Type      FieldType `json:"type"`
	Required  bool      `json:"required"`
	MaxLength int       `json:"max_length,omitempty"`
	Options   []string  `json:"options,omitempty"`
}

// HasOtherOption reports whether the field offers the Other sentinel.
func (f *Field) HasOtherOption() bool {
	if f.Type != FieldSelect {
		return false
	}
	for _, opt := range f.Options {
		if opt == OtherSentinel {
			return true
		}
	}
	return false
}

// OtherKey returns the companion form-data key for the field.
func (f *Field) OtherKey() string {
	return f.ID + OtherSuffix
}

// Template is an immutable form+prompt pair defined at build time. The
// Prompt string contains {fieldId} placeholders plus the optional
// {brandVoiceInstructions} and {personaInstructions} blocks.
type Template struct {
	ID            string   `json:"id"`
	Name          string   `json:"name"`
	Category      string   `json:"category"`
	Complexity    string   `json:"complexity"`
	EstimatedTime string   `json:"estimated_time"`
	Fields        []Field  `json:"fields"`
	Prompt        string   `json:"-"`
	Renderer      Renderer `json:"renderer"`

	// Steps groups field IDs for multi-step wizards. Empty for single-step
	// templates.
	Steps [][]string `json:"steps,omitempty"`
}

// Field returns the field with the given ID, or nil.
func (t *Template) Field(id string) *Field {
	for i := range t.Fields {
		if t.Fields[i].ID == id {
			return &t.Fields[i]
		}
	}
	return nil
}

// StepFields returns the fields belonging to a wizard step. For templates
// without steps, step 0 returns all fields.
func (t *Template) StepFields(step int) ([]Field, error) {
	if len(t.Steps) == 0 {
		if step != 0 {
			return nil, fmt.Errorf("template %s has no step %d", t.ID, step)
		}
		return t.Fields, nil
	}
	if step < 0 || step >= len(t.Steps) {
		return nil, fmt.Errorf("template %s has no step %d", t.ID, step)
	}
	var fields []Field
	for _, id := range t.Steps[step] {
		f := t.Field(id)
		if f == nil {
			return nil, fmt.Errorf("template %s step %d references unknown field %q", t.ID, step, id)
		}
		fields = append(fields, *f)
	}
	return fields, nil
}

// Get returns the template with the given ID, or nil if the catalog does not
// contain it.
func Get(id string) *Template {
	for i := range templates {
		if templates[i].ID == id {
			return &templates[i]
		}
	}
	return nil
}

// List returns all templates in catalog order.
func List() []Template {
	out := make([]Template, len(templates))
	copy(out, templates)
	return out
}

// ListByCategory returns the templates belonging to a category.
func ListByCategory(category string) []Template {
	var out []Template
	for _, t := range templates {
		if t.Category == category {
			out = append(out, t)
		}
	}
	return out
}
