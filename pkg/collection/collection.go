// Package collection holds the ordered layer list that group operations
// are applied to. The order of List is the render order.
package collection

import (
	"errors"

	"github.com/mattsolo1/grove-layergroups/pkg/models"
)

var (
	// ErrLayerExists is returned when inserting a layer whose id is taken.
	ErrLayerExists = errors.New("layer already exists")

	// ErrLayerNotFound is returned when removing or moving an unknown layer.
	ErrLayerNotFound = errors.New("layer not found")
)

// Collection is an ordered set of layers addressed by id.
//
// Insert and MoveBefore position the layer immediately before beforeID.
// An empty or unknown beforeID appends at the end.
type Collection interface {
	List() ([]*models.Layer, error)
	Get(id string) (*models.Layer, error)
	Insert(layer *models.Layer, beforeID string) error
	Remove(id string) error
	MoveBefore(id, beforeID string) error
}

// IDs returns the ids of all layers in c, in order.
func IDs(c Collection) ([]string, error) {
	layers, err := c.List()
	if err != nil {
		return nil, err
	}
	ids := make([]string, len(layers))
	for i, l := range layers {
		ids[i] = l.ID
	}
	return ids, nil
}
