// internal/report/schema/templates.go
package schema

import (
	"fmt"

	"report-writer/internal/models"
)

func text(name, label string) Field {
	return Field{Name: name, Label: label, Kind: KindText, Required: true}
}

func area(name, label string) Field {
	return Field{Name: name, Label: label, Kind: KindTextArea, Required: true}
}

func date(name, label string) Field {
	return Field{Name: name, Label: label, Kind: KindDate, Required: true}
}

func choice(name, label string, options ...Option) Field {
	return Field{Name: name, Label: label, Kind: KindChoice, Required: true, Options: options}
}

func optional(f Field, placeholder string) Field {
	f.Required = false
	f.Placeholder = placeholder
	return f
}

func phone() Field {
	return Field{Name: "clientPhone", Label: "Client Phone", Kind: KindPhone}
}

func faultField(name, label string, category models.FaultsFound) Field {
	return Field{
		Name:  name,
		Label: label,
		Kind:  KindTextArea,
		VisibleWhen: func(values map[string]string) bool {
			return ShowFaultCategory(models.FaultsFound(values["faultsFound"]), category)
		},
	}
}

// ShowFaultCategory is the EICR sub-field rule: a fault category's text area is
// shown when faultsFound names that category or is "mixed".
func ShowFaultCategory(faultsFound, category models.FaultsFound) bool {
	return faultsFound == category || faultsFound == models.FaultsMixed
}

var (
	propertyTypes = []Option{
		{string(models.PropertyDomestic), "Domestic"},
		{string(models.PropertyCommercial), "Commercial"},
		{string(models.PropertyIndustrial), "Industrial"},
		{string(models.PropertyOther), "Other"},
	}
	earthingArrangements = []Option{
		{string(models.EarthingTNCS), "TN-C-S (PME)"},
		{string(models.EarthingTNS), "TN-S"},
		{string(models.EarthingTT), "TT"},
		{string(models.EarthingIT), "IT"},
	}
	nextInspections = []Option{
		{string(models.NextInspection1Year), "1 Year"},
		{string(models.NextInspection3Years), "3 Years"},
		{string(models.NextInspection5Years), "5 Years"},
		{string(models.NextInspection10Years), "10 Years"},
	}
)

func nextInspection() Field {
	return optional(choice("nextInspection", "Next Inspection Due", nextInspections...), NotSpecified)
}

var eicr = newSchema(models.TemplateEICR,
	text("clientName", "Client Name"),
	phone(),
	area("installationAddress", "Installation Address"),
	choice("propertyType", "Property Type", propertyTypes...),
	date("inspectionDate", "Inspection Date"),
	text("inspectorName", "Inspector Name"),
	text("installationAge", "Estimated Age of Installation"),
	choice("earthingArrangement", "Earthing Arrangement", earthingArrangements...),
	text("mainSwitchRating", "Main Switch Rating"),
	text("circuitsTested", "Number of Circuits Tested"),
	choice("overallAssessment", "Overall Assessment",
		Option{string(models.AssessmentSatisfactory), "Satisfactory"},
		Option{string(models.AssessmentUnsatisfactory), "Unsatisfactory"},
	),
	choice("faultsFound", "Faults Found",
		Option{string(models.FaultsNone), "No faults found"},
		Option{string(models.FaultsC1), "C1 - Danger present"},
		Option{string(models.FaultsC2), "C2 - Potentially dangerous"},
		Option{string(models.FaultsC3), "C3 - Improvement recommended"},
		Option{string(models.FaultsFI), "FI - Further investigation"},
		Option{string(models.FaultsMixed), "Multiple categories"},
	),
	faultField("c1Faults", "C1 Faults (Danger Present)", models.FaultsC1),
	faultField("c2Faults", "C2 Faults (Potentially Dangerous)", models.FaultsC2),
	faultField("c3Faults", "C3 Faults (Improvement Recommended)", models.FaultsC3),
	faultField("fiFaults", "FI (Further Investigation Required)", models.FaultsFI),
	optional(area("limitations", "Limitations"), NoneSpecified),
	nextInspection(),
)

var minorWorks = newSchema(models.TemplateMinorWorks,
	text("clientName", "Client Name"),
	phone(),
	area("installationAddress", "Installation Address"),
	choice("workType", "Type of Work",
		Option{string(models.WorkNewCircuit), "New Circuit"},
		Option{string(models.WorkAddition), "Addition to Existing Circuit"},
		Option{string(models.WorkAlteration), "Alteration"},
		Option{string(models.WorkReplacement), "Replacement"},
	),
	area("workDescription", "Description of Work"),
	text("circuitDetails", "Circuit Details"),
	text("protectiveDevice", "Protective Device"),
	choice("earthingArrangement", "Earthing Arrangement", earthingArrangements...),
	area("testResults", "Test Results"),
	date("completionDate", "Completion Date"),
	text("electricianName", "Electrician Name"),
	optional(area("notes", "Notes"), NoneSpecified),
)

var periodicInspection = newSchema(models.TemplatePeriodicInspection,
	text("clientName", "Client Name"),
	phone(),
	area("installationAddress", "Installation Address"),
	choice("propertyType", "Property Type", propertyTypes...),
	date("inspectionDate", "Inspection Date"),
	text("inspectorName", "Inspector Name"),
	date("lastInspectionDate", "Last Inspection Date"),
	choice("installationCondition", "Installation Condition",
		Option{string(models.ConditionGood), "Good"},
		Option{string(models.ConditionFair), "Fair"},
		Option{string(models.ConditionPoor), "Poor"},
		Option{string(models.ConditionDangerous), "Dangerous"},
	),
	area("observations", "Observations"),
	area("recommendations", "Recommendations"),
	optional(area("limitations", "Limitations"), NoneSpecified),
	nextInspection(),
)

var evCharger = newSchema(models.TemplateEVCharger,
	text("clientName", "Client Name"),
	phone(),
	area("installationAddress", "Installation Address"),
	text("chargerMake", "Charger Make"),
	text("chargerModel", "Charger Model"),
	choice("chargerRating", "Charger Rating",
		Option{string(models.ChargerRating3_6kW), "3.6kW"},
		Option{string(models.ChargerRating7kW), "7kW"},
		Option{string(models.ChargerRating11kW), "11kW"},
		Option{string(models.ChargerRating22kW), "22kW"},
	),
	choice("installationType", "Installation Type",
		Option{string(models.ChargerTethered), "Tethered"},
		Option{string(models.ChargerUntethered), "Untethered"},
	),
	choice("supplyType", "Supply Type",
		Option{string(models.SupplySinglePhase), "Single Phase"},
		Option{string(models.SupplyThreePhase), "Three Phase"},
	),
	choice("earthingArrangement", "Earthing Arrangement", earthingArrangements...),
	text("protectionDetails", "Protection Details"),
	text("cableDetails", "Cable Details"),
	area("testResults", "Test Results"),
	date("installationDate", "Installation Date"),
	text("installerName", "Installer Name"),
	optional(area("specialRequirements", "Special Requirements"), NoneSpecified),
)

var consumerUnit = newSchema(models.TemplateConsumerUnit,
	text("clientName", "Client Name"),
	phone(),
	area("installationAddress", "Installation Address"),
	text("existingUnit", "Existing Unit"),
	text("newUnitMake", "New Unit Make"),
	choice("newUnitType", "New Unit Type",
		Option{string(models.UnitSplitLoad), "Split Load"},
		Option{string(models.UnitRCBOBoard), "RCBO Board"},
		Option{string(models.UnitDualRCD), "Dual RCD"},
		Option{string(models.UnitMainSwitchOnly), "Main Switch Only"},
	),
	text("numberOfWays", "Number of Ways"),
	text("mainSwitchRating", "Main Switch Rating"),
	choice("spdFitted", "SPD Fitted",
		Option{string(models.Yes), "Yes"},
		Option{string(models.No), "No"},
	),
	text("circuitsTransferred", "Circuits Transferred"),
	area("testResults", "Test Results"),
	date("installationDate", "Installation Date"),
	text("installerName", "Installer Name"),
	optional(area("notes", "Notes"), NoneSpecified),
)

var rcdTest = newSchema(models.TemplateRCDTest,
	text("clientName", "Client Name"),
	area("installationAddress", "Installation Address"),
	choice("rcdType", "RCD Type",
		Option{string(models.RCD30mA), "30mA"},
		Option{string(models.RCD100mA), "100mA"},
		Option{string(models.RCD300mA), "300mA"},
		Option{string(models.RCDSType), "S-Type (Time Delayed)"},
	),
	text("rcdLocation", "RCD Location"),
	choice("testType", "Test Type",
		Option{string(models.RCDTestRoutine), "Routine Test"},
		Option{string(models.RCDTestInitial), "Initial Verification"},
		Option{string(models.RCDTestPeriodic), "Periodic Inspection"},
		Option{string(models.RCDTestFaultFinding), "Fault Finding"},
	),
	area("testResults", "Test Results"),
	choice("rcdCondition", "RCD Condition",
		Option{string(models.RCDSatisfactory), "Satisfactory"},
		Option{string(models.RCDUnsatisfactory), "Unsatisfactory"},
		Option{string(models.RCDRequiresReplacement), "Requires Replacement"},
	),
	text("testerName", "Tester Name"),
	date("testDate", "Test Date"),
	optional(area("actionRequired", "Action Required"), NoneSpecified),
)

var registry = map[models.TemplateID]*Schema{
	models.TemplateEICR:               eicr,
	models.TemplateMinorWorks:         minorWorks,
	models.TemplatePeriodicInspection: periodicInspection,
	models.TemplateEVCharger:          evCharger,
	models.TemplateConsumerUnit:       consumerUnit,
	models.TemplateRCDTest:            rcdTest,
}

// For returns the schema of a template.
func For(id models.TemplateID) (*Schema, error) {
	s, ok := registry[id]
	if !ok {
		return nil, fmt.Errorf("no schema for template %q", id)
	}
	return s, nil
}

// MustFor is For for ids already checked with models.ParseTemplateID.
func MustFor(id models.TemplateID) *Schema {
	s, err := For(id)
	if err != nil {
		panic(err)
	}
	return s
}
