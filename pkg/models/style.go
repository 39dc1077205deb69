package models

// Style is a serialisable style document: an ordered list of layers plus
// the top-level fields kept alongside them. The layer store persists the
// non-layer fields as the style header.
type Style struct {
	Version  int            `yaml:"version,omitempty" json:"version,omitempty"`
	Name     string         `yaml:"name,omitempty" json:"name,omitempty"`
	Sources  map[string]any `yaml:"sources,omitempty" json:"sources,omitempty"`
	Metadata map[string]any `yaml:"metadata,omitempty" json:"metadata,omitempty"`
	Layers   []*Layer       `yaml:"layers" json:"layers"`
}
