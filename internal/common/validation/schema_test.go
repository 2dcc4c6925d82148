// internal/common/validation/schema_test.go
package validation

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func one() *int { n := 1; return &n }

func testSchema() JSONSchema {
	return JSONSchema{
		Type: "object",
		Properties: map[string]Property{
			"name":   {Type: "string", MinLength: one()},
			"colour": {Type: "string", Enum: []string{"", "red", "blue"}},
			"notes":  {Type: "string"},
		},
		Required: []string{"name", "colour"},
	}
}

func TestValidate(t *testing.T) {
	tests := []struct {
		name      string
		doc       map[string]interface{}
		wantValid bool
		wantCodes map[string]string
	}{
		{
			name:      "valid document",
			doc:       map[string]interface{}{"name": "x", "colour": "red", "notes": ""},
			wantValid: true,
		},
		{
			name:      "empty required string",
			doc:       map[string]interface{}{"name": "", "colour": "red"},
			wantCodes: map[string]string{"name": CodeMinLength},
		},
		{
			name:      "missing required key",
			doc:       map[string]interface{}{"name": "x"},
			wantCodes: map[string]string{"colour": CodeRequired},
		},
		{
			name:      "value outside enum",
			doc:       map[string]interface{}{"name": "x", "colour": "green"},
			wantCodes: map[string]string{"colour": CodeEnum},
		},
		{
			name:      "unknown property",
			doc:       map[string]interface{}{"name": "x", "colour": "", "size": "L"},
			wantCodes: map[string]string{"size": CodeExtraField},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			res, err := Validate(testSchema(), tt.doc)
			require.NoError(t, err)
			assert.Equal(t, tt.wantValid, res.Valid)

			got := map[string]string{}
			for _, e := range res.Errors {
				got[e.Field] = e.Code
			}
			if tt.wantCodes == nil {
				assert.Empty(t, got)
				return
			}
			assert.Equal(t, tt.wantCodes, got)
		})
	}
}

func TestValidationResultHelpers(t *testing.T) {
	res, err := Validate(testSchema(), map[string]interface{}{"name": "", "colour": "green"})
	require.NoError(t, err)

	assert.True(t, res.HasErrors("name"))
	assert.False(t, res.HasErrors("notes"))
	assert.Len(t, res.GetErrorsForField("colour"), 1)
	assert.Len(t, res.GetErrorMessages(), 2)
	assert.Equal(t, "colour", res.Errors[0].Field)
}

func TestSchemaRoundTrip(t *testing.T) {
	raw, err := testSchema().MarshalIndent()
	require.NoError(t, err)

	parsed, err := GetSchemaFromJSON(string(raw))
	require.NoError(t, err)
	assert.Equal(t, []string{"name", "colour"}, parsed.Required)
	assert.Equal(t, 1, *parsed.Properties["name"].MinLength)
}
