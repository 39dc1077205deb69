package collection

import (
	"fmt"

	"github.com/mattsolo1/grove-layergroups/pkg/models"
)

// Memory is an in-process Collection backed by a slice. It is not safe for
// concurrent use.
type Memory struct {
	layers []*models.Layer
}

// NewMemory returns a collection seeded with layers, in order.
func NewMemory(layers ...*models.Layer) (*Memory, error) {
	m := &Memory{}
	for _, l := range layers {
		if err := m.Insert(l, ""); err != nil {
			return nil, err
		}
	}
	return m, nil
}

func (m *Memory) List() ([]*models.Layer, error) {
	out := make([]*models.Layer, len(m.layers))
	for i, l := range m.layers {
		out[i] = l.Clone()
	}
	return out, nil
}

func (m *Memory) Get(id string) (*models.Layer, error) {
	if i := m.indexOf(id); i >= 0 {
		return m.layers[i].Clone(), nil
	}
	return nil, nil
}

func (m *Memory) Insert(layer *models.Layer, beforeID string) error {
	if layer == nil || layer.ID == "" {
		return fmt.Errorf("insert layer: missing id")
	}
	if m.indexOf(layer.ID) >= 0 {
		return fmt.Errorf("insert %s: %w", layer.ID, ErrLayerExists)
	}
	m.insertAt(layer.Clone(), m.indexOf(beforeID))
	return nil
}

func (m *Memory) Remove(id string) error {
	i := m.indexOf(id)
	if i < 0 {
		return fmt.Errorf("remove %s: %w", id, ErrLayerNotFound)
	}
	m.layers = append(m.layers[:i], m.layers[i+1:]...)
	return nil
}

func (m *Memory) MoveBefore(id, beforeID string) error {
	i := m.indexOf(id)
	if i < 0 {
		return fmt.Errorf("move %s: %w", id, ErrLayerNotFound)
	}
	if id == beforeID {
		return nil
	}
	layer := m.layers[i]
	m.layers = append(m.layers[:i], m.layers[i+1:]...)
	m.insertAt(layer, m.indexOf(beforeID))
	return nil
}

// insertAt places layer at index i, or appends when i is negative.
func (m *Memory) insertAt(layer *models.Layer, i int) {
	if i < 0 {
		m.layers = append(m.layers, layer)
		return
	}
	m.layers = append(m.layers, nil)
	copy(m.layers[i+1:], m.layers[i:])
	m.layers[i] = layer
}

func (m *Memory) indexOf(id string) int {
	if id == "" {
		return -1
	}
	for i, l := range m.layers {
		if l.ID == id {
			return i
		}
	}
	return -1
}
