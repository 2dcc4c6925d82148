// internal/models/models_test.go
package models

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestTemplatesCatalogOrder(t *testing.T) {
	var ids []TemplateID
	for _, d := range Templates() {
		ids = append(ids, d.ID)
		assert.NotEmpty(t, d.DisplayName)
	}
	assert.Equal(t, []TemplateID{
		TemplateEICR, TemplateMinorWorks, TemplatePeriodicInspection,
		TemplateEVCharger, TemplateConsumerUnit, TemplateRCDTest,
	}, ids)
}

func TestParseTemplateID(t *testing.T) {
	tests := []struct {
		in      string
		want    TemplateID
		wantErr bool
	}{
		{in: "eicr", want: TemplateEICR},
		{in: "rcd-test", want: TemplateRCDTest},
		{in: "EICR", wantErr: true},
		{in: "", wantErr: true},
		{in: "solar-pv", wantErr: true},
	}

	for _, tt := range tests {
		t.Run(tt.in, func(t *testing.T) {
			got, err := ParseTemplateID(tt.in)
			if tt.wantErr {
				require.Error(t, err)
				assert.False(t, TemplateID(tt.in).IsValid())
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.want, got)
			assert.True(t, got.IsValid())
		})
	}
}

func TestEmptyFieldSetHasEveryKeyBlank(t *testing.T) {
	for _, d := range Templates() {
		t.Run(string(d.ID), func(t *testing.T) {
			fs, err := EmptyFieldSet(d.ID)
			require.NoError(t, err)
			assert.Equal(t, d.ID, fs.TemplateID())

			values := fs.Values()
			require.NotEmpty(t, values)
			for k, v := range values {
				assert.Empty(t, v, k)
			}
		})
	}
}

func TestNewFieldSet(t *testing.T) {
	fs, err := NewFieldSet(TemplateRCDTest, map[string]string{
		"rcdType":     string(RCD30mA),
		"rcdLocation": "Kitchen",
		"solarPanels": "ignored",
	})
	require.NoError(t, err)

	rcd, ok := fs.(RCDTestFields)
	require.True(t, ok)
	assert.Equal(t, RCD30mA, rcd.RCDType)
	assert.Equal(t, "Kitchen", rcd.RCDLocation)
	assert.NotContains(t, fs.Values(), "solarPanels")

	_, err = NewFieldSet("solar-pv", nil)
	assert.Error(t, err)
}

func TestNewFieldSetMatchesKeysExactly(t *testing.T) {
	fs, err := NewFieldSet(TemplateEICR, map[string]string{
		"CLIENTNAME": "Mallory",
		"clientname": "Mallory",
		"clientName": "J Smith",
	})
	require.NoError(t, err)
	assert.Equal(t, "J Smith", fs.(EICRFields).ClientName)
	assert.Len(t, fs.Values(), 18)
}

func TestValuesRoundTripBytes(t *testing.T) {
	raw := "a\xffb"
	for _, d := range Templates() {
		t.Run(string(d.ID), func(t *testing.T) {
			fs, err := NewFieldSet(d.ID, map[string]string{"clientName": raw})
			require.NoError(t, err)
			assert.Equal(t, raw, fs.Values()["clientName"])
		})
	}
}
