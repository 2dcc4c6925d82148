// pkg/registry/registry.go
package registry

import (
	"encoding/json"
	"fmt"
	"os"
	"reflect"
	"sort"
	"time"

	"report-writer/internal/common/errors"
	"report-writer/internal/models"
	"report-writer/internal/report/form"
	"report-writer/internal/report/schema"
)

// errorCodes are the failures a session can report for any template.
var errorCodes = []string{
	string(errors.ErrCodeUnknownField),
	string(errors.ErrCodeInvalidFieldValue),
	string(errors.ErrCodeFormValidationFailed),
	string(errors.ErrCodeGenerationPrecondition),
	string(errors.ErrCodeGenerationInProgress),
	string(errors.ErrCodeGenerationTimeout),
	string(errors.ErrCodeGenerationFailed),
}

// Build describes the built-in templates.
func Build(version string, now time.Time) *TemplateRegistry {
	reg := &TemplateRegistry{
		Version:     version,
		LastUpdated: now.UTC().Format(time.RFC3339),
	}
	for _, d := range models.Templates() {
		sch := schema.MustFor(d.ID)
		reg.Templates = append(reg.Templates, TemplateEntry{
			ID:          string(d.ID),
			DisplayName: d.DisplayName,
			Description: d.Description,
			Fields:      form.New(sch, nil).Fields(),
			InputSchema: sch.JSONSchema(),
			ErrorCodes:  append([]string(nil), errorCodes...),
		})
	}
	return reg
}

func LoadRegistry(path string) (*TemplateRegistry, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}
	var reg TemplateRegistry
	err = json.Unmarshal(data, &reg)
	return &reg, err
}

func SaveRegistry(reg *TemplateRegistry, path string) error {
	data, err := json.MarshalIndent(reg, "", "  ")
	if err != nil {
		return fmt.Errorf("failed to marshal registry: %w", err)
	}
	return os.WriteFile(path, append(data, '\n'), 0o644)
}

// Validate checks that every entry names a known template exactly once.
func Validate(reg *TemplateRegistry) error {
	if len(reg.Templates) == 0 {
		return fmt.Errorf("registry contains no templates")
	}
	seen := make(map[string]bool, len(reg.Templates))
	for _, t := range reg.Templates {
		if t.ID == "" {
			return fmt.Errorf("template missing required field: id")
		}
		if seen[t.ID] {
			return fmt.Errorf("duplicate template id: %s", t.ID)
		}
		seen[t.ID] = true
		if !models.TemplateID(t.ID).IsValid() {
			return fmt.Errorf("unknown template id: %s", t.ID)
		}
		if len(t.Fields) == 0 {
			return fmt.Errorf("template %s has no fields", t.ID)
		}
	}
	return nil
}

// Drift lists the templates whose published entry no longer matches the
// built-in definition, including ones missing from either side.
func Drift(published, current *TemplateRegistry) []string {
	byID := make(map[string]TemplateEntry, len(published.Templates))
	for _, t := range published.Templates {
		byID[t.ID] = t
	}

	var drifted []string
	for _, want := range current.Templates {
		got, ok := byID[want.ID]
		delete(byID, want.ID)
		if !ok || !sameEntry(got, want) {
			drifted = append(drifted, want.ID)
		}
	}
	for id := range byID {
		drifted = append(drifted, id)
	}
	sort.Strings(drifted)
	return drifted
}

// sameEntry compares through JSON so a loaded entry matches a built one.
func sameEntry(a, b TemplateEntry) bool {
	ja, errA := json.Marshal(a)
	jb, errB := json.Marshal(b)
	if errA != nil || errB != nil {
		return false
	}
	var va, vb interface{}
	if json.Unmarshal(ja, &va) != nil || json.Unmarshal(jb, &vb) != nil {
		return false
	}
	return reflect.DeepEqual(va, vb)
}
