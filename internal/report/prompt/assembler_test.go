// internal/report/prompt/assembler_test.go
package prompt

import (
	"sort"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"report-writer/internal/models"
	"report-writer/internal/report/schema"
)

func mustFieldSet(t *testing.T, id models.TemplateID, values map[string]string) models.FieldSet {
	t.Helper()
	fs, err := models.NewFieldSet(id, values)
	require.NoError(t, err)
	return fs
}

// ==========================
// Properties
// ==========================

func TestLayoutMatchesSchema(t *testing.T) {
	for _, d := range models.Templates() {
		t.Run(string(d.ID), func(t *testing.T) {
			layout, ok := LayoutFor(d.ID)
			require.True(t, ok)

			interpolated := layout.FieldNames()
			declared := schema.MustFor(d.ID).Names()
			sort.Strings(interpolated)
			sort.Strings(declared)
			assert.Equal(t, declared, interpolated)
		})
	}
}

func TestEmptyFieldSetPrintsEveryPrimaryLine(t *testing.T) {
	for _, d := range models.Templates() {
		t.Run(string(d.ID), func(t *testing.T) {
			fs, err := models.EmptyFieldSet(d.ID)
			require.NoError(t, err)

			out := Assemble(fs, "")
			s := schema.MustFor(d.ID)
			for _, f := range s.Fields {
				line := "- " + f.Label + ": " + f.Placeholder
				if f.Conditional() {
					assert.NotContains(t, out, "- "+f.Label+":")
					continue
				}
				assert.Contains(t, out, line)
			}
		})
	}
}

func TestFilledValuesReplacePlaceholders(t *testing.T) {
	fs := mustFieldSet(t, models.TemplateMinorWorks, map[string]string{
		"clientName": "J Smith",
		"workType":   "new-circuit",
	})

	out := Assemble(fs, "")
	assert.Contains(t, out, "- Client Name: J Smith\n")
	assert.Contains(t, out, "- Type of Work: new-circuit\n")
	assert.Contains(t, out, "- Client Phone: Not provided\n")
	assert.Contains(t, out, "- Notes: None specified\n")
}

func TestFaultLinesNeedVisibilityAndText(t *testing.T) {
	faultLabels := map[string]string{
		"c1Faults": "C1 Faults (Danger Present)",
		"c2Faults": "C2 Faults (Potentially Dangerous)",
		"c3Faults": "C3 Faults (Improvement Recommended)",
		"fiFaults": "FI (Further Investigation Required)",
	}
	selections := []string{"", "none", "c1", "c2", "c3", "fi", "mixed"}

	for _, sel := range selections {
		for name, label := range faultLabels {
			for _, text := range []string{"", "some fault"} {
				values := map[string]string{"faultsFound": sel, name: text}
				out := Assemble(mustFieldSet(t, models.TemplateEICR, values), "")

				category := models.FaultsFound(strings.TrimSuffix(name, "Faults"))
				want := text != "" && schema.ShowFaultCategory(models.FaultsFound(sel), category)
				assert.Equal(t, want, strings.Contains(out, "- "+label+": "),
					"faultsFound=%q field=%s text=%q", sel, name, text)
			}
		}
	}
}

func TestAssembleIsDeterministic(t *testing.T) {
	fs := mustFieldSet(t, models.TemplateEVCharger, map[string]string{
		"clientName":    "J Smith",
		"chargerMake":   "Zappi",
		"chargerRating": "7kw",
		"testResults":   "Zs 0.35 ohm",
	})

	first := Assemble(fs, "Driveway install")
	for i := 0; i < 20; i++ {
		assert.Equal(t, first, Assemble(fs, "Driveway install"))
	}
}

// ==========================
// Scenarios
// ==========================

func TestRCDCompleteWithoutActionOrNotes(t *testing.T) {
	fs := mustFieldSet(t, models.TemplateRCDTest, map[string]string{
		"clientName":          "J Smith",
		"installationAddress": "1 Test St",
		"rcdType":             "30ma",
		"rcdLocation":         "Main CU",
		"testType":            "routine",
		"testResults":         "Trip time 28ms",
		"rcdCondition":        "satisfactory",
		"testerName":          "A. Tester",
		"testDate":            "2024-01-01",
	})

	out := Assemble(fs, "")
	assert.Contains(t, out, "Action Required: None specified")
	assert.NotContains(t, out, "ADDITIONAL NOTES")
	assert.Contains(t, out, "BS EN 61008/61009")
}

func TestEICRMixedFaultsOmitsEmptyCategory(t *testing.T) {
	fs := mustFieldSet(t, models.TemplateEICR, map[string]string{
		"faultsFound": "mixed",
		"c1Faults":    "exposed live parts",
		"c2Faults":    "",
	})

	out := Assemble(fs, "")
	assert.Contains(t, out, "- C1 Faults (Danger Present): exposed live parts")
	assert.NotContains(t, out, "C2 Faults")
}

func TestFaultsHeadingKeptWithoutFaultLines(t *testing.T) {
	fs := mustFieldSet(t, models.TemplateEICR, map[string]string{
		"faultsFound": "none",
		"c1Faults":    "hidden by selection",
	})

	out := Assemble(fs, "")
	assert.Contains(t, out, "\nFAULTS AND OBSERVATIONS:\n\nLIMITATIONS AND RECOMMENDATIONS:\n")
	assert.NotContains(t, out, "hidden by selection")
}

func TestUntouchedFormIsAllPlaceholders(t *testing.T) {
	fs, err := models.EmptyFieldSet(models.TemplateEICR)
	require.NoError(t, err)

	out := Assemble(fs, "")
	for _, line := range strings.Split(out, "\n") {
		if !strings.HasPrefix(line, "- ") {
			continue
		}
		value := line[strings.Index(line, ": ")+2:]
		assert.Contains(t, []string{schema.NotProvided, schema.NotSpecified, schema.NoneSpecified}, value, line)
	}
	assert.Contains(t, out, "\nFAULTS AND OBSERVATIONS:\n\nLIMITATIONS AND RECOMMENDATIONS:\n")
}

// ==========================
// Structure
// ==========================

func TestPromptStructure(t *testing.T) {
	fs := mustFieldSet(t, models.TemplateConsumerUnit, map[string]string{"clientName": "J Smith"})
	out := Assemble(fs, "Board in garage")

	layout, _ := LayoutFor(models.TemplateConsumerUnit)
	assert.True(t, strings.HasPrefix(out, layout.Instruction+"\n"))
	assert.True(t, strings.HasSuffix(out, "\n"+layout.Closing))
	assert.Contains(t, out, "\n\nADDITIONAL NOTES:\nBoard in garage\n\n")

	last := -1
	for _, sec := range layout.Sections {
		idx := strings.Index(out, "\n"+sec.Heading+":\n")
		require.NotEqual(t, -1, idx, sec.Heading)
		assert.Greater(t, idx, last, "section %s out of order", sec.Heading)
		last = idx
	}
	assert.Greater(t, strings.Index(out, "ADDITIONAL NOTES"), last)
}

func TestClosingNamesStandard(t *testing.T) {
	for _, d := range models.Templates() {
		layout, _ := LayoutFor(d.ID)
		assert.Contains(t, layout.Closing, "BS 7671:2018+A2:2022", d.ID)
	}
	ev, _ := LayoutFor(models.TemplateEVCharger)
	assert.Contains(t, ev.Closing, "IET Code of Practice")
}

func TestFallbackReturnsNotes(t *testing.T) {
	assert.Equal(t, "just the notes", Assemble(nil, "just the notes"))
	assert.Equal(t, "just the notes", AssembleValues("pat-test", nil, "just the notes"))
}

func TestAssembleValuesMatchesTyped(t *testing.T) {
	values := map[string]string{"clientName": "J Smith", "installationCondition": "fair"}
	fs := mustFieldSet(t, models.TemplatePeriodicInspection, values)
	assert.Equal(t, Assemble(fs, "n"), AssembleValues(models.TemplatePeriodicInspection, values, "n"))
}
