// internal/report/schema/schema.go
package schema

import (
	"fmt"
	"strings"

	"report-writer/internal/common/validation"
	"report-writer/internal/models"
)

// Kind tells a renderer which input to draw for a field.
type Kind string

const (
	KindText     Kind = "text"
	KindTextArea Kind = "textarea"
	KindDate     Kind = "date"
	KindChoice   Kind = "choice"
	KindPhone    Kind = "phone"
)

// Prompt placeholders substituted for empty values.
const (
	NotProvided   = "Not provided"
	NotSpecified  = "Not specified"
	NoneSpecified = "None specified"
)

type Option struct {
	Value string `json:"value"`
	Label string `json:"label"`
}

// VisibilityFunc decides from the current values whether a field is shown.
type VisibilityFunc func(values map[string]string) bool

type Field struct {
	Name        string
	Label       string
	Kind        Kind
	Required    bool
	Options     []Option
	Placeholder string
	VisibleWhen VisibilityFunc
}

// Conditional reports whether the field has a visibility predicate.
func (f Field) Conditional() bool {
	return f.VisibleWhen != nil
}

// Allows reports whether value may be stored in the field. Non-choice fields
// accept anything; choice fields accept "" or one of their options.
func (f Field) Allows(value string) bool {
	if f.Kind != KindChoice || value == "" {
		return true
	}
	for _, o := range f.Options {
		if o.Value == value {
			return true
		}
	}
	return false
}

func (f Field) optionValues() []string {
	out := make([]string, 0, len(f.Options))
	for _, o := range f.Options {
		out = append(out, o.Value)
	}
	return out
}

// Schema is the ordered field declaration of one template.
type Schema struct {
	Template models.TemplateID
	Fields   []Field
	index    map[string]int
}

func newSchema(id models.TemplateID, fields ...Field) *Schema {
	s := &Schema{Template: id, Fields: fields, index: make(map[string]int, len(fields))}
	for i, f := range fields {
		if f.Placeholder == "" {
			s.Fields[i].Placeholder = NotProvided
		}
		s.index[f.Name] = i
	}
	return s
}

// Field looks up a declared field by name.
func (s *Schema) Field(name string) (Field, bool) {
	i, ok := s.index[name]
	if !ok {
		return Field{}, false
	}
	return s.Fields[i], true
}

// Names returns the declared field names in order.
func (s *Schema) Names() []string {
	out := make([]string, len(s.Fields))
	for i, f := range s.Fields {
		out[i] = f.Name
	}
	return out
}

// Visible applies the field's predicate; unknown fields are never visible.
func (s *Schema) Visible(name string, values map[string]string) bool {
	f, ok := s.Field(name)
	if !ok {
		return false
	}
	if f.VisibleWhen == nil {
		return true
	}
	return f.VisibleWhen(values)
}

// Result is the live validation outcome. Errors has one entry per failing field.
type Result struct {
	Valid  bool              `json:"valid"`
	Errors map[string]string `json:"errors,omitempty"`
}

// JSONSchema compiles the declaration to a draft-07 document. Required fields
// get minLength 1, choice fields an enum that also admits "".
func (s *Schema) JSONSchema() validation.JSONSchema {
	minOne := 1
	js := validation.JSONSchema{
		Schema:     "http://json-schema.org/draft-07/schema#",
		Title:      string(s.Template),
		Type:       "object",
		Properties: make(map[string]validation.Property, len(s.Fields)),
	}
	for _, f := range s.Fields {
		p := validation.Property{Type: "string", Title: f.Label}
		if f.Kind == KindChoice {
			p.Enum = append([]string{""}, f.optionValues()...)
		}
		if f.Required {
			p.MinLength = &minOne
			js.Required = append(js.Required, f.Name)
		}
		js.Properties[f.Name] = p
	}
	return js
}

// Validate checks values against the schema. Missing keys are treated as empty.
func (s *Schema) Validate(values map[string]string) Result {
	doc := make(map[string]interface{}, len(s.Fields))
	for _, f := range s.Fields {
		doc[f.Name] = values[f.Name]
	}
	for k, v := range values {
		if _, ok := s.index[k]; !ok {
			doc[k] = v
		}
	}

	res, err := validation.Validate(s.JSONSchema(), doc)
	if err != nil {
		// only reachable with a malformed declaration
		panic(fmt.Sprintf("schema %s: %v", s.Template, err))
	}

	out := Result{Valid: res.Valid}
	if res.Valid {
		return out
	}
	out.Errors = make(map[string]string)
	for _, e := range res.Errors {
		if _, seen := out.Errors[e.Field]; seen {
			continue
		}
		out.Errors[e.Field] = s.message(e)
	}
	return out
}

func (s *Schema) message(e validation.ValidationError) string {
	f, ok := s.Field(e.Field)
	if !ok {
		return fmt.Sprintf("%s is not a field of this form", e.Field)
	}
	switch e.Code {
	case validation.CodeRequired, validation.CodeMinLength:
		return fmt.Sprintf("%s is required", f.Label)
	case validation.CodeEnum:
		return fmt.Sprintf("%s must be one of %s", f.Label, strings.Join(f.optionValues(), ", "))
	default:
		return fmt.Sprintf("%s is invalid", f.Label)
	}
}
