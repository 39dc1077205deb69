package models

import "fmt"

// GroupsKey is the metadata field that records a layer's group ancestry.
const GroupsKey = "groups"

// Layer is a single rendering unit in a style's ordered layer list.
type Layer struct {
	ID          string         `yaml:"id" json:"id"`
	Type        string         `yaml:"type,omitempty" json:"type,omitempty"`
	Source      string         `yaml:"source,omitempty" json:"source,omitempty"`
	SourceLayer string         `yaml:"source-layer,omitempty" json:"source-layer,omitempty"`
	MinZoom     *float64       `yaml:"minzoom,omitempty" json:"minzoom,omitempty"`
	MaxZoom     *float64       `yaml:"maxzoom,omitempty" json:"maxzoom,omitempty"`
	Filter      any            `yaml:"filter,omitempty" json:"filter,omitempty"`
	Layout      map[string]any `yaml:"layout,omitempty" json:"layout,omitempty"`
	Paint       map[string]any `yaml:"paint,omitempty" json:"paint,omitempty"`
	Metadata    map[string]any `yaml:"metadata,omitempty" json:"metadata,omitempty"`
}

// Groups returns the group ids recorded in the layer's metadata. Decoded
// documents carry the list as []any, so both shapes are accepted.
func (l *Layer) Groups() []string {
	if l == nil || l.Metadata == nil {
		return []string{}
	}
	switch v := l.Metadata[GroupsKey].(type) {
	case []string:
		out := make([]string, len(v))
		copy(out, v)
		return out
	case []any:
		out := make([]string, 0, len(v))
		for _, item := range v {
			if s, ok := item.(string); ok {
				out = append(out, s)
			} else if item != nil {
				out = append(out, fmt.Sprint(item))
			}
		}
		return out
	default:
		return []string{}
	}
}

// InGroup reports whether the layer is tagged with groupID.
func (l *Layer) InGroup(groupID string) bool {
	for _, g := range l.Groups() {
		if g == groupID {
			return true
		}
	}
	return false
}

// Clone returns a copy whose top-level maps can be modified without
// affecting l. Nested values are shared.
func (l *Layer) Clone() *Layer {
	if l == nil {
		return nil
	}
	out := *l
	out.Layout = cloneMap(l.Layout)
	out.Paint = cloneMap(l.Paint)
	out.Metadata = cloneMap(l.Metadata)
	return &out
}

// WithGroups returns a copy of the layer whose metadata records groups.
func (l *Layer) WithGroups(groups []string) *Layer {
	out := l.Clone()
	if out.Metadata == nil {
		out.Metadata = map[string]any{}
	}
	tags := make([]string, len(groups))
	copy(tags, groups)
	out.Metadata[GroupsKey] = tags
	return out
}

func cloneMap(m map[string]any) map[string]any {
	if m == nil {
		return nil
	}
	out := make(map[string]any, len(m))
	for k, v := range m {
		out[k] = v
	}
	return out
}
