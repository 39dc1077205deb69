// Package groups layers named, nestable groups over an ordered layer
// collection.
//
// Groups are not stored anywhere. A layer belongs to a group when the
// group id appears in its metadata "groups" list, and every layer tagged
// with a nested group is also tagged with all of that group's ancestors.
// A group exists exactly as long as one layer carries its id.
//
// A Manager is not safe for concurrent use, and the collection must not
// be changed by anyone else while a call is in progress.
package groups

import (
	"fmt"
	"io"

	"github.com/sirupsen/logrus"

	"github.com/mattsolo1/grove-layergroups/pkg/collection"
	"github.com/mattsolo1/grove-layergroups/pkg/groupid"
	"github.com/mattsolo1/grove-layergroups/pkg/models"
)

// Manager applies group operations to a collection it does not own.
type Manager struct {
	layers collection.Collection
	logger logrus.FieldLogger
}

// Option configures a Manager.
type Option func(*Manager)

// WithLogger routes the manager's debug logging to logger.
func WithLogger(logger logrus.FieldLogger) Option {
	return func(m *Manager) {
		if logger != nil {
			m.logger = logger
		}
	}
}

// NewManager binds a Manager to layers.
func NewManager(layers collection.Collection, opts ...Option) *Manager {
	discard := logrus.New()
	discard.SetOutput(io.Discard)

	m := &Manager{
		layers: layers,
		logger: discard,
	}
	for _, opt := range opts {
		opt(m)
	}
	return m
}

// CreateGroupID builds a group id from its path segments.
func (m *Manager) CreateGroupID(segments ...string) string {
	return groupid.Compose(segments...)
}

// AddGroup inserts layers, in order, as members of groupID. They are placed
// together before the anchor that beforeID resolves to (see ResolveBefore),
// or appended when beforeID is empty.
func (m *Manager) AddGroup(groupID string, layers []*models.Layer, beforeID string) error {
	groupID = groupid.Normalize(groupID)
	if groupID == "" {
		return ErrEmptyGroupID
	}

	anchor, err := m.ResolveBefore(beforeID)
	if err != nil {
		return fmt.Errorf("add group %s: %w", groupID, err)
	}

	for _, layer := range layers {
		if err := m.insert(groupID, layer, anchor); err != nil {
			return fmt.Errorf("add group %s: %w", groupID, err)
		}
	}

	m.logger.WithFields(logrus.Fields{
		"group":  groupID,
		"before": beforeID,
		"anchor": anchor,
		"count":  len(layers),
	}).Debug("added layer group")
	return nil
}

// AddLayerToGroup inserts a single layer into groupID.
//
// A non-empty beforeID must name a layer that is already in the group,
// otherwise a *BeforeReferenceError is returned and nothing is changed.
// Without beforeID the layer becomes the group's last member.
func (m *Manager) AddLayerToGroup(groupID string, layer *models.Layer, beforeID string) error {
	groupID = groupid.Normalize(groupID)
	if groupID == "" {
		return ErrEmptyGroupID
	}

	anchor := beforeID
	if beforeID != "" {
		before, err := m.layers.Get(beforeID)
		if err != nil {
			return fmt.Errorf("add layer to %s: %w", groupID, err)
		}
		if before == nil || !before.InGroup(groupID) {
			return &BeforeReferenceError{GroupID: groupID, BeforeID: beforeID}
		}
	} else {
		all, err := m.layers.List()
		if err != nil {
			return fmt.Errorf("add layer to %s: %w", groupID, err)
		}
		if last := lastIndex(all, groupID); last >= 0 {
			anchor = idAt(all, last+1)
		}
	}

	if err := m.insert(groupID, layer, anchor); err != nil {
		return fmt.Errorf("add layer to %s: %w", groupID, err)
	}

	m.logger.WithFields(logrus.Fields{
		"group":  groupID,
		"layer":  layer.ID,
		"anchor": anchor,
	}).Debug("added layer to group")
	return nil
}

// RemoveGroup removes every layer tagged with groupID, including layers of
// nested groups.
func (m *Manager) RemoveGroup(groupID string) error {
	groupID = groupid.Normalize(groupID)

	members, err := m.LayersInGroup(groupID)
	if err != nil {
		return fmt.Errorf("remove group %s: %w", groupID, err)
	}
	for _, layer := range members {
		if err := m.layers.Remove(layer.ID); err != nil {
			return fmt.Errorf("remove group %s: %w", groupID, err)
		}
	}

	m.logger.WithFields(logrus.Fields{
		"group": groupID,
		"count": len(members),
	}).Debug("removed layer group")
	return nil
}

// MoveGroup moves every member of groupID, keeping their relative order,
// to just before the anchor that beforeID resolves to. An empty beforeID
// moves the group to the end. The anchor is resolved once, before any
// layer moves; if it is itself a member of the group nothing moves.
func (m *Manager) MoveGroup(groupID string, beforeID string) error {
	groupID = groupid.Normalize(groupID)

	anchor, err := m.ResolveBefore(beforeID)
	if err != nil {
		return fmt.Errorf("move group %s: %w", groupID, err)
	}

	members, err := m.LayersInGroup(groupID)
	if err != nil {
		return fmt.Errorf("move group %s: %w", groupID, err)
	}

	log := m.logger.WithFields(logrus.Fields{
		"group":  groupID,
		"before": beforeID,
		"anchor": anchor,
		"count":  len(members),
	})

	for _, layer := range members {
		if layer.ID == anchor {
			log.Debug("anchor is inside the group, nothing to move")
			return nil
		}
	}

	for _, layer := range members {
		if err := m.layers.MoveBefore(layer.ID, anchor); err != nil {
			return fmt.Errorf("move group %s: %w", groupID, err)
		}
	}

	log.Debug("moved layer group")
	return nil
}

func (m *Manager) insert(groupID string, layer *models.Layer, anchor string) error {
	if layer == nil {
		return fmt.Errorf("nil layer")
	}
	tagged := layer.WithGroups(groupid.TagsFor(layer.Groups(), groupID))
	return m.layers.Insert(tagged, anchor)
}
