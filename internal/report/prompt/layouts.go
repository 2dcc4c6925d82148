// internal/report/prompt/layouts.go
package prompt

import "report-writer/internal/models"

// Section is one headed block of "- Label: value" lines.
type Section struct {
	Heading string
	Fields  []string
}

// Layout fixes the order and wording of one template's prompt. Headings and
// order are part of the contract with the generator and must not change.
type Layout struct {
	Template    models.TemplateID
	Instruction string
	Sections    []Section
	Closing     string
}

// FieldNames lists every field the layout interpolates, in order.
func (l Layout) FieldNames() []string {
	var out []string
	for _, s := range l.Sections {
		out = append(out, s.Fields...)
	}
	return out
}

const bs7671 = "BS 7671:2018+A2:2022"

var layouts = map[models.TemplateID]Layout{
	models.TemplateEICR: {
		Template:    models.TemplateEICR,
		Instruction: "Generate a professional Electrical Installation Condition Report (EICR) based on the following information:",
		Sections: []Section{
			{"CLIENT DETAILS", []string{"clientName", "clientPhone", "installationAddress", "propertyType"}},
			{"INSPECTION DETAILS", []string{"inspectionDate", "inspectorName", "installationAge"}},
			{"INSTALLATION DETAILS", []string{"earthingArrangement", "mainSwitchRating", "circuitsTested"}},
			{"ASSESSMENT", []string{"overallAssessment", "faultsFound"}},
			{"FAULTS AND OBSERVATIONS", []string{"c1Faults", "c2Faults", "c3Faults", "fiFaults"}},
			{"LIMITATIONS AND RECOMMENDATIONS", []string{"limitations", "nextInspection"}},
		},
		Closing: "Please format this as a complete EICR in accordance with " + bs7671 +
			", classifying each observation with its code and giving clear recommendations for remedial work.",
	},
	models.TemplateMinorWorks: {
		Template:    models.TemplateMinorWorks,
		Instruction: "Generate a professional Minor Electrical Installation Works Certificate based on the following information:",
		Sections: []Section{
			{"CLIENT DETAILS", []string{"clientName", "clientPhone", "installationAddress"}},
			{"WORK DETAILS", []string{"workType", "workDescription", "circuitDetails", "protectiveDevice", "earthingArrangement"}},
			{"TEST RESULTS", []string{"testResults"}},
			{"COMPLETION", []string{"completionDate", "electricianName", "notes"}},
		},
		Closing: "Please format this as a complete Minor Works Certificate in accordance with " + bs7671 +
			", including the declaration and a summary of the tests carried out.",
	},
	models.TemplatePeriodicInspection: {
		Template:    models.TemplatePeriodicInspection,
		Instruction: "Generate a professional Periodic Inspection Report based on the following information:",
		Sections: []Section{
			{"CLIENT DETAILS", []string{"clientName", "clientPhone", "installationAddress", "propertyType"}},
			{"INSPECTION DETAILS", []string{"inspectionDate", "inspectorName", "lastInspectionDate"}},
			{"CONDITION ASSESSMENT", []string{"installationCondition", "observations"}},
			{"RECOMMENDATIONS", []string{"recommendations", "limitations", "nextInspection"}},
		},
		Closing: "Please format this as a complete Periodic Inspection Report in accordance with " + bs7671 +
			", with a clear summary of the condition of the installation.",
	},
	models.TemplateEVCharger: {
		Template:    models.TemplateEVCharger,
		Instruction: "Generate a professional EV Charger Installation Certificate based on the following information:",
		Sections: []Section{
			{"CLIENT DETAILS", []string{"clientName", "clientPhone", "installationAddress"}},
			{"CHARGER DETAILS", []string{"chargerMake", "chargerModel", "chargerRating", "installationType"}},
			{"SUPPLY AND PROTECTION", []string{"supplyType", "earthingArrangement", "protectionDetails", "cableDetails"}},
			{"TEST RESULTS", []string{"testResults"}},
			{"INSTALLATION", []string{"installationDate", "installerName", "specialRequirements"}},
		},
		Closing: "Please format this as a complete EV charger installation certificate in accordance with " + bs7671 +
			" Section 722 and the IET Code of Practice for Electric Vehicle Charging Equipment Installation.",
	},
	models.TemplateConsumerUnit: {
		Template:    models.TemplateConsumerUnit,
		Instruction: "Generate a professional Consumer Unit Replacement Certificate based on the following information:",
		Sections: []Section{
			{"CLIENT DETAILS", []string{"clientName", "clientPhone", "installationAddress"}},
			{"UNIT DETAILS", []string{"existingUnit", "newUnitMake", "newUnitType", "numberOfWays", "mainSwitchRating", "spdFitted"}},
			{"CIRCUITS AND TESTING", []string{"circuitsTransferred", "testResults"}},
			{"INSTALLATION", []string{"installationDate", "installerName", "notes"}},
		},
		Closing: "Please format this as a complete Electrical Installation Certificate for a consumer unit replacement in accordance with " +
			bs7671 + ", including the schedule of circuits transferred.",
	},
	models.TemplateRCDTest: {
		Template:    models.TemplateRCDTest,
		Instruction: "Generate a professional RCD Test Report based on the following information:",
		Sections: []Section{
			{"CLIENT DETAILS", []string{"clientName", "installationAddress"}},
			{"RCD DETAILS", []string{"rcdType", "rcdLocation", "testType"}},
			{"TEST RESULTS", []string{"testResults", "rcdCondition"}},
			{"TESTER DETAILS", []string{"testerName", "testDate", "actionRequired"}},
		},
		Closing: "Please format this as a complete RCD test report in accordance with BS EN 61008/61009 and " + bs7671 +
			", stating whether the device meets the required trip times.",
	},
}

// LayoutFor returns the prompt layout of a template.
func LayoutFor(id models.TemplateID) (Layout, bool) {
	l, ok := layouts[id]
	return l, ok
}
