// pkg/registry/registry_test.go
package registry

import (
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var fixedNow = time.Date(2026, 3, 1, 9, 0, 0, 0, time.UTC)

func TestBuildCoversEveryTemplate(t *testing.T) {
	reg := Build("1.0.0", fixedNow)

	require.Len(t, reg.Templates, 6)
	assert.Equal(t, "2026-03-01T09:00:00Z", reg.LastUpdated)
	for _, tpl := range reg.Templates {
		assert.NotEmpty(t, tpl.Fields, tpl.ID)
		assert.NotEmpty(t, tpl.InputSchema.Properties, tpl.ID)
	}
	require.NoError(t, Validate(reg))
}

func TestSaveAndLoadRoundTrip(t *testing.T) {
	path := filepath.Join(t.TempDir(), "templates.json")
	reg := Build("1.0.0", fixedNow)
	require.NoError(t, SaveRegistry(reg, path))

	loaded, err := LoadRegistry(path)
	require.NoError(t, err)
	assert.Empty(t, Drift(loaded, Build("1.0.0", fixedNow)))
}

func TestValidate(t *testing.T) {
	good := Build("1.0.0", fixedNow).Templates[0]

	tests := []struct {
		name    string
		entries []TemplateEntry
		wantErr string
	}{
		{name: "empty", wantErr: "no templates"},
		{name: "missing id", entries: []TemplateEntry{{Fields: good.Fields}}, wantErr: "id"},
		{name: "duplicate", entries: []TemplateEntry{good, good}, wantErr: "duplicate"},
		{name: "unknown", entries: []TemplateEntry{{ID: "solar-pv", Fields: good.Fields}}, wantErr: "unknown"},
		{name: "no fields", entries: []TemplateEntry{{ID: good.ID}}, wantErr: "no fields"},
		{name: "valid", entries: []TemplateEntry{good}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := Validate(&TemplateRegistry{Templates: tt.entries})
			if tt.wantErr == "" {
				assert.NoError(t, err)
				return
			}
			require.Error(t, err)
			assert.Contains(t, err.Error(), tt.wantErr)
		})
	}
}

func TestDrift(t *testing.T) {
	current := Build("1.0.0", fixedNow)

	published := Build("1.0.0", fixedNow)
	published.Templates[0].DisplayName = "Renamed"
	published.Templates = published.Templates[:5]
	published.Templates = append(published.Templates, TemplateEntry{ID: "legacy"})

	assert.ElementsMatch(t, []string{current.Templates[0].ID, current.Templates[5].ID, "legacy"}, Drift(published, current))
}
