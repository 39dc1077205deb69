package groups

import (
	"github.com/mattsolo1/grove-layergroups/pkg/groupid"
	"github.com/mattsolo1/grove-layergroups/pkg/models"
)

// FirstLayerID returns the id of the first layer in groupID, or "" if the
// group has no layers.
func (m *Manager) FirstLayerID(groupID string) (string, error) {
	all, err := m.layers.List()
	if err != nil {
		return "", err
	}
	return idAt(all, firstIndex(all, groupid.Normalize(groupID))), nil
}

// LastLayerID returns the id of the last layer in groupID, or "" if the
// group has no layers.
func (m *Manager) LastLayerID(groupID string) (string, error) {
	all, err := m.layers.List()
	if err != nil {
		return "", err
	}
	return idAt(all, lastIndex(all, groupid.Normalize(groupID))), nil
}

// LayerGroupIDs returns every group id recorded on the layer. Unknown layers
// have none.
func (m *Manager) LayerGroupIDs(layerID string) ([]string, error) {
	layer, err := m.layers.Get(layerID)
	if err != nil {
		return nil, err
	}
	return layer.Groups(), nil
}

// LayersInGroup lists the layers of groupID and its nested groups, in
// collection order.
func (m *Manager) LayersInGroup(groupID string) ([]*models.Layer, error) {
	groupID = groupid.Normalize(groupID)
	all, err := m.layers.List()
	if err != nil {
		return nil, err
	}
	members := []*models.Layer{}
	for _, layer := range all {
		if layer.InGroup(groupID) {
			members = append(members, layer)
		}
	}
	return members, nil
}

// HasLayer reports whether a layer with id is in the collection.
func (m *Manager) HasLayer(id string) (bool, error) {
	layer, err := m.layers.Get(id)
	if err != nil {
		return false, err
	}
	return layer != nil, nil
}

// ListGroups returns every group id carried by at least one layer, in the
// order they are first seen.
func (m *Manager) ListGroups() ([]string, error) {
	all, err := m.layers.List()
	if err != nil {
		return nil, err
	}
	seen := map[string]struct{}{}
	out := []string{}
	for _, layer := range all {
		for _, g := range layer.Groups() {
			if _, ok := seen[g]; ok {
				continue
			}
			seen[g] = struct{}{}
			out = append(out, g)
		}
	}
	return out, nil
}

func firstIndex(layers []*models.Layer, groupID string) int {
	if groupID == "" {
		return -1
	}
	for i, layer := range layers {
		if layer.InGroup(groupID) {
			return i
		}
	}
	return -1
}

func lastIndex(layers []*models.Layer, groupID string) int {
	if groupID == "" {
		return -1
	}
	for i := len(layers) - 1; i >= 0; i-- {
		if layers[i].InGroup(groupID) {
			return i
		}
	}
	return -1
}

func idAt(layers []*models.Layer, i int) string {
	if i < 0 || i >= len(layers) {
		return ""
	}
	return layers[i].ID
}
