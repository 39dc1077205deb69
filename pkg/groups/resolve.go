package groups

import (
	"slices"
	"strings"

	"github.com/mattsolo1/grove-layergroups/pkg/groupid"
)

// ResolveBefore turns a before reference into the id of the layer that
// inserted or moved layers should be placed in front of. An empty result
// means append at the end.
//
//   - A layer id resolves to the first layer of the layer's outermost group,
//     or to the layer itself when it is ungrouped.
//   - Anything else is read as a group id and resolves to that group's first
//     layer. A group with no layers leaves the reference as it is.
func (m *Manager) ResolveBefore(beforeID string) (string, error) {
	if beforeID == "" {
		return "", nil
	}

	layer, err := m.layers.Get(beforeID)
	if err != nil {
		return "", err
	}

	var group string
	if layer != nil {
		group = outermostGroup(layer.Groups())
		if group == "" {
			return beforeID, nil
		}
	} else {
		group = groupid.Normalize(beforeID)
	}

	first, err := m.FirstLayerID(group)
	if err != nil {
		return "", err
	}
	if first == "" {
		return beforeID, nil
	}
	return first, nil
}

// outermostGroup picks the shortest group path from tags, breaking ties by
// lexical order. tags is left untouched.
func outermostGroup(tags []string) string {
	if len(tags) == 0 {
		return ""
	}
	sorted := slices.Clone(tags)
	slices.SortFunc(sorted, func(a, b string) int {
		if d := groupid.Depth(a) - groupid.Depth(b); d != 0 {
			return d
		}
		return strings.Compare(a, b)
	})
	return sorted[0]
}
