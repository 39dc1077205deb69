package style

import (
	"encoding/json"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/mattsolo1/grove-layergroups/pkg/collection"
	"github.com/mattsolo1/grove-layergroups/pkg/models"
)

func TestDecode(t *testing.T) {
	tests := []struct {
		name    string
		content string
		wantIDs []string
		wantErr bool
	}{
		{
			name: "yaml style document",
			content: `---
version: 8
name: basemap
layers:
  - id: water
    type: fill
    metadata:
      groups: [$base]
  - id: roads
    type: line
`,
			wantIDs: []string{"water", "roads"},
		},
		{
			name:    "json style document",
			content: `{"version": 8, "layers": [{"id": "a"}, {"id": "b"}]}`,
			wantIDs: []string{"a", "b"},
		},
		{
			name: "bare yaml list",
			content: `- id: one
- id: two
`,
			wantIDs: []string{"one", "two"},
		},
		{
			name:    "bare json list",
			content: `[{"id": "one"}]`,
			wantIDs: []string{"one"},
		},
		{
			name:    "empty input",
			content: "   \n",
			wantIDs: []string{},
		},
		{
			name:    "invalid yaml",
			content: "layers: [invalid",
			wantErr: true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			s, err := Decode([]byte(tt.content))
			if tt.wantErr {
				assert.Error(t, err)
				return
			}
			require.NoError(t, err)

			ids := make([]string, 0, len(s.Layers))
			for _, l := range s.Layers {
				ids = append(ids, l.ID)
			}
			assert.Equal(t, tt.wantIDs, ids)
		})
	}
}

func TestDecodeKeepsGroups(t *testing.T) {
	s, err := Decode([]byte(`layers:
  - id: water
    metadata:
      groups: [$base, $base/hydro]
`))
	require.NoError(t, err)
	require.Len(t, s.Layers, 1)
	assert.Equal(t, []string{"$base", "$base/hydro"}, s.Layers[0].Groups())
}

func TestDecodeAssignsMissingIDs(t *testing.T) {
	s, err := Decode([]byte(`layers:
  - type: background
  - type: background
`))
	require.NoError(t, err)
	require.Len(t, s.Layers, 2)
	assert.NotEmpty(t, s.Layers[0].ID)
	assert.NotEqual(t, s.Layers[0].ID, s.Layers[1].ID)
}

func TestSaveAndLoad(t *testing.T) {
	for _, name := range []string{"style.yaml", "style.json"} {
		t.Run(name, func(t *testing.T) {
			path := filepath.Join(t.TempDir(), "out", name)
			in := &models.Style{
				Version: 8,
				Name:    "test",
				Layers: []*models.Layer{
					{ID: "a", Type: "fill", Metadata: map[string]any{"groups": []string{"$g"}}},
					{ID: "b", Type: "line"},
				},
			}

			require.NoError(t, Save(path, in))

			out, err := Load(path)
			require.NoError(t, err)
			assert.Equal(t, "test", out.Name)
			require.Len(t, out.Layers, 2)
			assert.Equal(t, "a", out.Layers[0].ID)
			assert.Equal(t, []string{"$g"}, out.Layers[0].Groups())
		})
	}
}

func TestFormatForPath(t *testing.T) {
	assert.Equal(t, FormatJSON, FormatForPath("a/b.JSON"))
	assert.Equal(t, FormatYAML, FormatForPath("a/b.yml"))
	assert.Equal(t, FormatYAML, FormatForPath("noext"))
}

func TestImportExport(t *testing.T) {
	c, err := collection.NewMemory(&models.Layer{ID: "existing"})
	require.NoError(t, err)

	s := &models.Style{Layers: []*models.Layer{{ID: "a"}, {ID: "b"}}}
	require.NoError(t, Import(c, s))

	exported, err := Export(c, "snapshot")
	require.NoError(t, err)
	assert.Equal(t, 8, exported.Version)
	assert.Equal(t, "snapshot", exported.Name)
	require.Len(t, exported.Layers, 3)
	assert.Equal(t, "existing", exported.Layers[0].ID)
	assert.Equal(t, "b", exported.Layers[2].ID)

	err = Import(c, &models.Style{Layers: []*models.Layer{{ID: "a"}}})
	assert.ErrorIs(t, err, collection.ErrLayerExists)
}

func TestDecodeStringifiesMappingKeys(t *testing.T) {
	s, err := Decode([]byte(`sources:
  osm:
    bounds: {1: north}
layers:
  - id: labels
    layout:
      text-size: {10: 12, 14: 16}
    paint:
      text-color: [match, {1: red}]
`))
	require.NoError(t, err)
	require.Len(t, s.Layers, 1)

	l := s.Layers[0]
	assert.Equal(t, map[string]any{"10": 12, "14": 16}, l.Layout["text-size"])
	assert.Equal(t, []any{"match", map[string]any{"1": "red"}}, l.Paint["text-color"])
	assert.Equal(t, map[string]any{"1": "north"}, s.Sources["osm"].(map[string]any)["bounds"])

	_, err = json.Marshal(s)
	assert.NoError(t, err)

	c, err := collection.NewSQLite(filepath.Join(t.TempDir(), "layers.db"))
	require.NoError(t, err)
	defer c.Close()
	assert.NoError(t, Import(c, s))
}

func TestMergeHeader(t *testing.T) {
	dst := &models.Style{Name: "base", Sources: map[string]any{"a": 1}}
	MergeHeader(dst, &models.Style{
		Version:  8,
		Sources:  map[string]any{"b": 2},
		Metadata: map[string]any{"k": "v"},
	})

	assert.Equal(t, 8, dst.Version)
	assert.Equal(t, "base", dst.Name)
	assert.Equal(t, map[string]any{"a": 1, "b": 2}, dst.Sources)
	assert.Equal(t, map[string]any{"k": "v"}, dst.Metadata)
}
