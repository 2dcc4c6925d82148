// internal/report/form/form.go
package form

import (
	"report-writer/internal/common/errors"
	"report-writer/internal/models"
	"report-writer/internal/report/schema"
)

// OnChange receives the complete field set after every accepted mutation.
type OnChange func(fs models.FieldSet)

// FieldView is what a renderer needs to draw one input.
type FieldView struct {
	Name        string          `json:"name"`
	Label       string          `json:"label"`
	Kind        schema.Kind     `json:"kind"`
	Required    bool            `json:"required"`
	Options     []schema.Option `json:"options,omitempty"`
	Conditional bool            `json:"conditional,omitempty"`
	Value       string          `json:"value"`
	Visible     bool            `json:"visible"`
	Error       string          `json:"error,omitempty"`
}

// Form tracks the values of one template's fields. It performs no I/O and is
// not safe for concurrent use; callers serialize access.
type Form struct {
	schema   *schema.Schema
	values   map[string]string
	onChange OnChange
}

// New mounts an empty form for s. onChange may be nil.
func New(s *schema.Schema, onChange OnChange) *Form {
	f := &Form{
		schema:   s,
		values:   make(map[string]string, len(s.Fields)),
		onChange: onChange,
	}
	for _, fld := range s.Fields {
		f.values[fld.Name] = ""
	}
	return f
}

func (f *Form) Template() models.TemplateID {
	return f.schema.Template
}

func (f *Form) Schema() *schema.Schema {
	return f.schema
}

// Set stores one value and emits the whole field set. Unknown fields and choice
// values outside the field's options are rejected without any state change.
func (f *Form) Set(field, value string) error {
	if err := f.check(field, value); err != nil {
		return err
	}
	f.values[field] = value
	f.emit()
	return nil
}

// SetMany applies several values in declaration order, emitting after each
// one. Nothing is applied if any entry is rejected.
func (f *Form) SetMany(values map[string]string) error {
	for name, v := range values {
		if err := f.check(name, v); err != nil {
			return err
		}
	}
	for _, fld := range f.schema.Fields {
		v, ok := values[fld.Name]
		if !ok {
			continue
		}
		f.values[fld.Name] = v
		f.emit()
	}
	return nil
}

func (f *Form) check(field, value string) error {
	fld, ok := f.schema.Field(field)
	if !ok {
		return errors.NewUnknownFieldError(string(f.schema.Template), field)
	}
	if !fld.Allows(value) {
		return errors.NewInvalidFieldValueError(field, value)
	}
	return nil
}

func (f *Form) emit() {
	if f.onChange == nil {
		return
	}
	f.onChange(f.FieldSet())
}

func (f *Form) Value(field string) string {
	return f.values[field]
}

// Values returns a copy of every declared field's value.
func (f *Form) Values() map[string]string {
	out := make(map[string]string, len(f.values))
	for k, v := range f.values {
		out[k] = v
	}
	return out
}

// FieldSet returns the typed snapshot of the current values.
func (f *Form) FieldSet() models.FieldSet {
	// the schema template is always a known id
	fs, _ := models.NewFieldSet(f.schema.Template, f.values)
	return fs
}

// Errors re-validates the current values.
func (f *Form) Errors() map[string]string {
	return f.schema.Validate(f.values).Errors
}

// Error returns the message for one field, or "" when it is valid.
func (f *Form) Error(field string) string {
	return f.Errors()[field]
}

// Complete reports whether every required field is filled.
func (f *Form) Complete() bool {
	return f.schema.Validate(f.values).Valid
}

func (f *Form) Visible(field string) bool {
	return f.schema.Visible(field, f.values)
}

// Fields describes every declared field in order with its live state.
func (f *Form) Fields() []FieldView {
	errs := f.Errors()
	out := make([]FieldView, 0, len(f.schema.Fields))
	for _, fld := range f.schema.Fields {
		out = append(out, FieldView{
			Name:        fld.Name,
			Label:       fld.Label,
			Kind:        fld.Kind,
			Required:    fld.Required,
			Options:     fld.Options,
			Conditional: fld.Conditional(),
			Value:       f.values[fld.Name],
			Visible:     f.schema.Visible(fld.Name, f.values),
			Error:       errs[fld.Name],
		})
	}
	return out
}
