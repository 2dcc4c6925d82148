// internal/report/prompt/assembler.go
package prompt

import (
	"strings"

	"report-writer/internal/models"
	"report-writer/internal/report/schema"
)

const notesHeading = "ADDITIONAL NOTES"

// Assemble turns a field set and free-text notes into the generation prompt.
// It is total and deterministic: empty fields print their placeholder, and an
// unrecognised field set falls back to the notes alone.
func Assemble(fs models.FieldSet, notes string) string {
	switch f := fs.(type) {
	case models.EICRFields:
		return render(models.TemplateEICR, f.Values(), notes)
	case models.MinorWorksFields:
		return render(models.TemplateMinorWorks, f.Values(), notes)
	case models.PeriodicInspectionFields:
		return render(models.TemplatePeriodicInspection, f.Values(), notes)
	case models.EVChargerFields:
		return render(models.TemplateEVCharger, f.Values(), notes)
	case models.ConsumerUnitFields:
		return render(models.TemplateConsumerUnit, f.Values(), notes)
	case models.RCDTestFields:
		return render(models.TemplateRCDTest, f.Values(), notes)
	default:
		return notes
	}
}

// AssembleValues is Assemble for callers holding the untyped wire map.
func AssembleValues(id models.TemplateID, values map[string]string, notes string) string {
	fs, err := models.NewFieldSet(id, values)
	if err != nil {
		return notes
	}
	return Assemble(fs, notes)
}

func render(id models.TemplateID, values map[string]string, notes string) string {
	layout, ok := layouts[id]
	if !ok {
		return notes
	}
	s := schema.MustFor(id)

	parts := []string{layout.Instruction}
	// every heading prints, even when all of its lines are conditional and hidden
	for _, sec := range layout.Sections {
		parts = append(parts, "", sec.Heading+":")
		parts = append(parts, sectionLines(s, sec, values)...)
	}

	if notes != "" {
		parts = append(parts, "", notesHeading+":", notes)
	}

	parts = append(parts, "", layout.Closing)
	return strings.Join(parts, "\n")
}

// sectionLines prints every primary field, substituting its placeholder when
// empty. Conditional fields print only when visible and non-empty.
func sectionLines(s *schema.Schema, sec Section, values map[string]string) []string {
	lines := make([]string, 0, len(sec.Fields))
	for _, name := range sec.Fields {
		f, ok := s.Field(name)
		if !ok {
			continue
		}
		v := values[name]
		if f.Conditional() {
			if v == "" || !s.Visible(name, values) {
				continue
			}
		} else if v == "" {
			v = f.Placeholder
		}
		lines = append(lines, "- "+f.Label+": "+v)
	}
	return lines
}
