// internal/models/fieldset.go
package models

import (
	"fmt"
	"reflect"
	"strings"
)

// FieldSet is the closed union of per-template form data. Only the six
// variants declared in this file implement it.
type FieldSet interface {
	TemplateID() TemplateID
	// Values returns every declared field keyed by its wire name. Unset
	// fields are present with an empty value.
	Values() map[string]string
	isFieldSet()
}

type EICRFields struct {
	ClientName          string              `json:"clientName"`
	ClientPhone         string              `json:"clientPhone"`
	InstallationAddress string              `json:"installationAddress"`
	PropertyType        PropertyType        `json:"propertyType"`
	InspectionDate      string              `json:"inspectionDate"`
	InspectorName       string              `json:"inspectorName"`
	InstallationAge     string              `json:"installationAge"`
	EarthingArrangement EarthingArrangement `json:"earthingArrangement"`
	MainSwitchRating    string              `json:"mainSwitchRating"`
	CircuitsTested      string              `json:"circuitsTested"`
	OverallAssessment   OverallAssessment   `json:"overallAssessment"`
	FaultsFound         FaultsFound         `json:"faultsFound"`
	C1Faults            string              `json:"c1Faults"`
	C2Faults            string              `json:"c2Faults"`
	C3Faults            string              `json:"c3Faults"`
	FIFaults            string              `json:"fiFaults"`
	Limitations         string              `json:"limitations"`
	NextInspection      NextInspection      `json:"nextInspection"`
}

type MinorWorksFields struct {
	ClientName          string              `json:"clientName"`
	ClientPhone         string              `json:"clientPhone"`
	InstallationAddress string              `json:"installationAddress"`
	WorkType            WorkType            `json:"workType"`
	WorkDescription     string              `json:"workDescription"`
	CircuitDetails      string              `json:"circuitDetails"`
	ProtectiveDevice    string              `json:"protectiveDevice"`
	EarthingArrangement EarthingArrangement `json:"earthingArrangement"`
	TestResults         string              `json:"testResults"`
	CompletionDate      string              `json:"completionDate"`
	ElectricianName     string              `json:"electricianName"`
	Notes               string              `json:"notes"`
}

type PeriodicInspectionFields struct {
	ClientName            string                `json:"clientName"`
	ClientPhone           string                `json:"clientPhone"`
	InstallationAddress   string                `json:"installationAddress"`
	PropertyType          PropertyType          `json:"propertyType"`
	InspectionDate        string                `json:"inspectionDate"`
	InspectorName         string                `json:"inspectorName"`
	LastInspectionDate    string                `json:"lastInspectionDate"`
	InstallationCondition InstallationCondition `json:"installationCondition"`
	Observations          string                `json:"observations"`
	Recommendations       string                `json:"recommendations"`
	Limitations           string                `json:"limitations"`
	NextInspection        NextInspection        `json:"nextInspection"`
}

type EVChargerFields struct {
	ClientName          string              `json:"clientName"`
	ClientPhone         string              `json:"clientPhone"`
	InstallationAddress string              `json:"installationAddress"`
	ChargerMake         string              `json:"chargerMake"`
	ChargerModel        string              `json:"chargerModel"`
	ChargerRating       ChargerRating       `json:"chargerRating"`
	InstallationType    ChargerInstallation `json:"installationType"`
	SupplyType          SupplyType          `json:"supplyType"`
	EarthingArrangement EarthingArrangement `json:"earthingArrangement"`
	ProtectionDetails   string              `json:"protectionDetails"`
	CableDetails        string              `json:"cableDetails"`
	TestResults         string              `json:"testResults"`
	InstallationDate    string              `json:"installationDate"`
	InstallerName       string              `json:"installerName"`
	SpecialRequirements string              `json:"specialRequirements"`
}

type ConsumerUnitFields struct {
	ClientName          string           `json:"clientName"`
	ClientPhone         string           `json:"clientPhone"`
	InstallationAddress string           `json:"installationAddress"`
	ExistingUnit        string           `json:"existingUnit"`
	NewUnitMake         string           `json:"newUnitMake"`
	NewUnitType         ConsumerUnitType `json:"newUnitType"`
	NumberOfWays        string           `json:"numberOfWays"`
	MainSwitchRating    string           `json:"mainSwitchRating"`
	SPDFitted           YesNo            `json:"spdFitted"`
	CircuitsTransferred string           `json:"circuitsTransferred"`
	TestResults         string           `json:"testResults"`
	InstallationDate    string           `json:"installationDate"`
	InstallerName       string           `json:"installerName"`
	Notes               string           `json:"notes"`
}

type RCDTestFields struct {
	ClientName          string       `json:"clientName"`
	InstallationAddress string       `json:"installationAddress"`
	RCDType             RCDType      `json:"rcdType"`
	RCDLocation         string       `json:"rcdLocation"`
	TestType            RCDTestType  `json:"testType"`
	TestResults         string       `json:"testResults"`
	RCDCondition        RCDCondition `json:"rcdCondition"`
	TesterName          string       `json:"testerName"`
	TestDate            string       `json:"testDate"`
	ActionRequired      string       `json:"actionRequired"`
}

func (EICRFields) TemplateID() TemplateID               { return TemplateEICR }
func (MinorWorksFields) TemplateID() TemplateID         { return TemplateMinorWorks }
func (PeriodicInspectionFields) TemplateID() TemplateID { return TemplatePeriodicInspection }
func (EVChargerFields) TemplateID() TemplateID          { return TemplateEVCharger }
func (ConsumerUnitFields) TemplateID() TemplateID       { return TemplateConsumerUnit }
func (RCDTestFields) TemplateID() TemplateID            { return TemplateRCDTest }

func (f EICRFields) Values() map[string]string               { return toValues(f) }
func (f MinorWorksFields) Values() map[string]string         { return toValues(f) }
func (f PeriodicInspectionFields) Values() map[string]string { return toValues(f) }
func (f EVChargerFields) Values() map[string]string          { return toValues(f) }
func (f ConsumerUnitFields) Values() map[string]string       { return toValues(f) }
func (f RCDTestFields) Values() map[string]string            { return toValues(f) }

func (EICRFields) isFieldSet()               {}
func (MinorWorksFields) isFieldSet()         {}
func (PeriodicInspectionFields) isFieldSet() {}
func (EVChargerFields) isFieldSet()          {}
func (ConsumerUnitFields) isFieldSet()       {}
func (RCDTestFields) isFieldSet()            {}

// EmptyFieldSet returns the freshly reset field set for a template.
func EmptyFieldSet(id TemplateID) (FieldSet, error) {
	return NewFieldSet(id, nil)
}

// NewFieldSet builds the typed variant for id from wire values. Keys must match
// a declared wire name exactly; any other key is ignored. Values are stored
// byte for byte.
func NewFieldSet(id TemplateID, values map[string]string) (FieldSet, error) {
	switch id {
	case TemplateEICR:
		var f EICRFields
		fromValues(values, &f)
		return f, nil
	case TemplateMinorWorks:
		var f MinorWorksFields
		fromValues(values, &f)
		return f, nil
	case TemplatePeriodicInspection:
		var f PeriodicInspectionFields
		fromValues(values, &f)
		return f, nil
	case TemplateEVCharger:
		var f EVChargerFields
		fromValues(values, &f)
		return f, nil
	case TemplateConsumerUnit:
		var f ConsumerUnitFields
		fromValues(values, &f)
		return f, nil
	case TemplateRCDTest:
		var f RCDTestFields
		fromValues(values, &f)
		return f, nil
	default:
		return nil, fmt.Errorf("unknown template id %q", id)
	}
}

// toValues and fromValues rely on every variant being a flat struct of string
// kinds tagged with its wire name.
func toValues(v interface{}) map[string]string {
	rv := reflect.ValueOf(v)
	rt := rv.Type()
	out := make(map[string]string, rt.NumField())
	for i := 0; i < rt.NumField(); i++ {
		out[wireName(rt.Field(i))] = rv.Field(i).String()
	}
	return out
}

func fromValues(values map[string]string, dst interface{}) {
	rv := reflect.ValueOf(dst).Elem()
	rt := rv.Type()
	for i := 0; i < rt.NumField(); i++ {
		if v, ok := values[wireName(rt.Field(i))]; ok {
			rv.Field(i).SetString(v)
		}
	}
}

func wireName(f reflect.StructField) string {
	name, _, _ := strings.Cut(f.Tag.Get("json"), ",")
	return name
}
