// pkg/registry/schema.go
package registry

import (
	"report-writer/internal/common/validation"
	"report-writer/internal/report/form"
)

// TemplateRegistry is the published description of every certificate
// template, consumed by front ends that render forms without calling the API.
type TemplateRegistry struct {
	Version     string          `json:"version"`
	LastUpdated string          `json:"lastUpdated"`
	Templates   []TemplateEntry `json:"templates"`
}

type TemplateEntry struct {
	ID          string                `json:"id"`
	DisplayName string                `json:"displayName"`
	Description string                `json:"description"`
	Fields      []form.FieldView      `json:"fields"`
	InputSchema validation.JSONSchema `json:"inputSchema"`
	ErrorCodes  []string              `json:"errorCodes"`
}
