package service

import (
	"fmt"
	"io"
	"path/filepath"

	"github.com/sirupsen/logrus"

	"github.com/mattsolo1/grove-layergroups/pkg/collection"
	"github.com/mattsolo1/grove-layergroups/pkg/groups"
	"github.com/mattsolo1/grove-layergroups/pkg/models"
	"github.com/mattsolo1/grove-layergroups/pkg/style"
)

// Service ties the persisted layer store to a group manager
type Service struct {
	Store  *collection.SQLite
	Groups *groups.Manager
	Config *Config
	logger logrus.FieldLogger
}

// Config holds service configuration
type Config struct {
	DataDir  string
	Database string
	Logger   logrus.FieldLogger
}

// DatabasePath returns the configured database, defaulting to layers.db
// inside DataDir.
func (c *Config) DatabasePath() string {
	if c.Database != "" {
		return c.Database
	}
	return filepath.Join(c.DataDir, "layers.db")
}

// New opens the layer store and binds a group manager to it
func New(config *Config) (*Service, error) {
	logger := config.Logger
	if logger == nil {
		quiet := logrus.New()
		quiet.SetOutput(io.Discard)
		logger = quiet
	}

	store, err := collection.NewSQLite(config.DatabasePath())
	if err != nil {
		return nil, fmt.Errorf("open layer store: %w", err)
	}

	logger.WithField("database", store.Path()).Debug("opened layer store")

	return &Service{
		Store:  store,
		Groups: groups.NewManager(store, groups.WithLogger(logger)),
		Config: config,
		logger: logger,
	}, nil
}

// ReadLayers loads the layers listed in a style or layer-list file
func (s *Service) ReadLayers(path string) ([]*models.Layer, error) {
	doc, err := style.Load(path)
	if err != nil {
		return nil, err
	}
	return doc.Layers, nil
}

// ReadLayer loads a file that must contain exactly one layer
func (s *Service) ReadLayer(path string) (*models.Layer, error) {
	layers, err := s.ReadLayers(path)
	if err != nil {
		return nil, err
	}
	if len(layers) != 1 {
		return nil, fmt.Errorf("%s: expected one layer, found %d", path, len(layers))
	}
	return layers[0], nil
}

// Import appends every layer of the style at path to the store and merges
// its sources and metadata into the stored style header
func (s *Service) Import(path string) (int, error) {
	doc, err := style.Load(path)
	if err != nil {
		return 0, err
	}
	if err := style.Import(s.Store, doc); err != nil {
		return 0, err
	}

	header, err := s.Store.Header()
	if err != nil {
		return 0, fmt.Errorf("read style header: %w", err)
	}
	style.MergeHeader(header, doc)
	if err := s.Store.SaveHeader(header); err != nil {
		return 0, fmt.Errorf("save style header: %w", err)
	}
	s.logger.WithFields(logrus.Fields{
		"path":  path,
		"count": len(doc.Layers),
	}).Info("imported style")
	return len(doc.Layers), nil
}

// Export writes the current layer order, with the stored sources and
// metadata, as a style document. An empty path returns the document
// without writing it.
func (s *Service) Export(path, name string) (*models.Style, error) {
	doc, err := style.Export(s.Store, name)
	if err != nil {
		return nil, err
	}

	header, err := s.Store.Header()
	if err != nil {
		return nil, fmt.Errorf("read style header: %w", err)
	}
	if header.Version != 0 {
		doc.Version = header.Version
	}
	if doc.Name == "" {
		doc.Name = header.Name
	}
	doc.Sources = header.Sources
	doc.Metadata = header.Metadata
	if path == "" {
		return doc, nil
	}
	if err := style.Save(path, doc); err != nil {
		return nil, err
	}
	s.logger.WithField("path", path).Info("exported style")
	return doc, nil
}

// Close releases the layer store
func (s *Service) Close() error {
	return s.Store.Close()
}
