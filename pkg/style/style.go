package style

import (
	"bytes"
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/google/uuid"
	"gopkg.in/yaml.v3"

	"github.com/mattsolo1/grove-layergroups/pkg/collection"
	"github.com/mattsolo1/grove-layergroups/pkg/models"
)

// Format is the on-disk encoding of a style document
type Format string

const (
	FormatYAML Format = "yaml"
	FormatJSON Format = "json"
)

// FormatForPath picks the encoding from a file extension, defaulting to YAML
func FormatForPath(path string) Format {
	if strings.EqualFold(filepath.Ext(path), ".json") {
		return FormatJSON
	}
	return FormatYAML
}

// Decode parses a style document. YAML is a superset of JSON, so both
// encodings are accepted. A bare list of layers is read as a style with
// only those layers. Layers without an id are given a generated one.
func Decode(data []byte) (*models.Style, error) {
	trimmed := bytes.TrimSpace(data)
	if len(trimmed) == 0 {
		return &models.Style{Layers: []*models.Layer{}}, nil
	}

	var root yaml.Node
	if err := yaml.Unmarshal(trimmed, &root); err != nil {
		return nil, fmt.Errorf("failed to parse style: %w", err)
	}
	doc := &root
	if doc.Kind == yaml.DocumentNode && len(doc.Content) > 0 {
		doc = doc.Content[0]
	}

	var s models.Style
	if doc.Kind == yaml.SequenceNode {
		if err := doc.Decode(&s.Layers); err != nil {
			return nil, fmt.Errorf("failed to parse layers: %w", err)
		}
	} else if err := doc.Decode(&s); err != nil {
		return nil, fmt.Errorf("failed to parse style: %w", err)
	}

	layers := make([]*models.Layer, 0, len(s.Layers))
	for _, l := range s.Layers {
		if l == nil {
			continue
		}
		if l.ID == "" {
			l.ID = uuid.NewString()
		}
		l.Filter = stringKeys(l.Filter)
		l.Layout = stringKeyMap(l.Layout)
		l.Paint = stringKeyMap(l.Paint)
		l.Metadata = stringKeyMap(l.Metadata)
		layers = append(layers, l)
	}
	s.Layers = layers
	s.Sources = stringKeyMap(s.Sources)
	s.Metadata = stringKeyMap(s.Metadata)
	return &s, nil
}

// MergeHeader folds the non-layer fields of src into dst. Name and version
// are replaced when src sets them; sources and metadata are merged by key.
func MergeHeader(dst, src *models.Style) {
	if src.Version != 0 {
		dst.Version = src.Version
	}
	if src.Name != "" {
		dst.Name = src.Name
	}
	if len(src.Sources) > 0 && dst.Sources == nil {
		dst.Sources = make(map[string]any, len(src.Sources))
	}
	for k, v := range src.Sources {
		dst.Sources[k] = v
	}
	if len(src.Metadata) > 0 && dst.Metadata == nil {
		dst.Metadata = make(map[string]any, len(src.Metadata))
	}
	for k, v := range src.Metadata {
		dst.Metadata[k] = v
	}
}

// stringKeyMap converts nested mappings with non-string keys, which yaml.v3
// decodes as map[any]any, into JSON-encodable map[string]any values.
func stringKeyMap(m map[string]any) map[string]any {
	for k, v := range m {
		m[k] = stringKeys(v)
	}
	return m
}

func stringKeys(v any) any {
	switch t := v.(type) {
	case map[string]any:
		return stringKeyMap(t)
	case map[any]any:
		out := make(map[string]any, len(t))
		for k, x := range t {
			out[fmt.Sprint(k)] = stringKeys(x)
		}
		return out
	case []any:
		for i, x := range t {
			t[i] = stringKeys(x)
		}
		return t
	default:
		return v
	}
}

// Encode serialises a style document in the given format
func Encode(s *models.Style, format Format) ([]byte, error) {
	if s.Layers == nil {
		s.Layers = []*models.Layer{}
	}
	switch format {
	case FormatJSON:
		return json.MarshalIndent(s, "", "  ")
	case FormatYAML:
		var buf bytes.Buffer
		enc := yaml.NewEncoder(&buf)
		enc.SetIndent(2)
		if err := enc.Encode(s); err != nil {
			return nil, err
		}
		if err := enc.Close(); err != nil {
			return nil, err
		}
		return buf.Bytes(), nil
	default:
		return nil, fmt.Errorf("unknown style format %q", format)
	}
}

// Load reads a style document from disk
func Load(path string) (*models.Style, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read style: %w", err)
	}
	s, err := Decode(data)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", path, err)
	}
	return s, nil
}

// Save writes a style document, encoding it according to the file extension
func Save(path string, s *models.Style) error {
	data, err := Encode(s, FormatForPath(path))
	if err != nil {
		return fmt.Errorf("encode style: %w", err)
	}
	if err := os.MkdirAll(filepath.Dir(path), 0755); err != nil {
		return fmt.Errorf("create style dir: %w", err)
	}
	return os.WriteFile(path, data, 0644)
}

// Import appends the layers of s to c, in order.
func Import(c collection.Collection, s *models.Style) error {
	for _, l := range s.Layers {
		if err := c.Insert(l, ""); err != nil {
			return fmt.Errorf("import layer %s: %w", l.ID, err)
		}
	}
	return nil
}

// Export snapshots the layers of c as a style document named name.
func Export(c collection.Collection, name string) (*models.Style, error) {
	layers, err := c.List()
	if err != nil {
		return nil, fmt.Errorf("export layers: %w", err)
	}
	if layers == nil {
		layers = []*models.Layer{}
	}
	return &models.Style{
		Version: 8,
		Name:    name,
		Layers:  layers,
	}, nil
}
