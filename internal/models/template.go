// internal/models/template.go
package models

import "fmt"

// TemplateID identifies one of the certificate types a report can be written for.
// The string values are shared with the report generation backend.
type TemplateID string

const (
	TemplateEICR               TemplateID = "eicr"
	TemplateMinorWorks         TemplateID = "minor-works"
	TemplatePeriodicInspection TemplateID = "periodic-inspection"
	TemplateEVCharger          TemplateID = "ev-charger"
	TemplateConsumerUnit       TemplateID = "consumer-unit"
	TemplateRCDTest            TemplateID = "rcd-test"
)

// TemplateDescriptor drives the template picker.
type TemplateDescriptor struct {
	ID          TemplateID `json:"id"`
	DisplayName string     `json:"displayName"`
	Description string     `json:"description"`
}

var templateCatalog = []TemplateDescriptor{
	{
		ID:          TemplateEICR,
		DisplayName: "EICR Report",
		Description: "Electrical Installation Condition Report for existing installations",
	},
	{
		ID:          TemplateMinorWorks,
		DisplayName: "Minor Works Certificate",
		Description: "Certificate for minor electrical works and additions",
	},
	{
		ID:          TemplatePeriodicInspection,
		DisplayName: "Periodic Inspection Report",
		Description: "Routine periodic inspection and testing report",
	},
	{
		ID:          TemplateEVCharger,
		DisplayName: "EV Charger Installation",
		Description: "Electric vehicle charge point installation certificate",
	},
	{
		ID:          TemplateConsumerUnit,
		DisplayName: "Consumer Unit Replacement",
		Description: "Consumer unit upgrade or replacement certificate",
	},
	{
		ID:          TemplateRCDTest,
		DisplayName: "RCD Test Report",
		Description: "Residual current device testing and verification report",
	},
}

// Templates returns the template catalog in display order.
func Templates() []TemplateDescriptor {
	out := make([]TemplateDescriptor, len(templateCatalog))
	copy(out, templateCatalog)
	return out
}

// Descriptor looks up the catalog entry for id.
func Descriptor(id TemplateID) (TemplateDescriptor, bool) {
	for _, d := range templateCatalog {
		if d.ID == id {
			return d, true
		}
	}
	return TemplateDescriptor{}, false
}

// ParseTemplateID accepts only the six known template ids.
func ParseTemplateID(s string) (TemplateID, error) {
	id := TemplateID(s)
	if _, ok := Descriptor(id); !ok {
		return "", fmt.Errorf("unknown template id %q", s)
	}
	return id, nil
}

func (id TemplateID) String() string {
	return string(id)
}

// IsValid reports whether id is part of the catalog.
func (id TemplateID) IsValid() bool {
	_, ok := Descriptor(id)
	return ok
}
