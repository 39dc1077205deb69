package collection

import (
	"database/sql"
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"

	_ "github.com/mattn/go-sqlite3"

	"github.com/mattsolo1/grove-layergroups/pkg/models"
)

// SQLite persists the layer order in a sqlite database.
type SQLite struct {
	db   *sql.DB
	path string
}

// NewSQLite opens (creating if needed) the layer database at dbPath
func NewSQLite(dbPath string) (*SQLite, error) {
	if err := os.MkdirAll(filepath.Dir(dbPath), 0755); err != nil {
		return nil, fmt.Errorf("create data dir: %w", err)
	}

	db, err := sql.Open("sqlite3", dbPath)
	if err != nil {
		return nil, fmt.Errorf("open database: %w", err)
	}
	// A single connection keeps the shift-then-write transactions serialized.
	db.SetMaxOpenConns(1)

	s := &SQLite{
		db:   db,
		path: dbPath,
	}

	if err := s.init(); err != nil {
		db.Close()
		return nil, fmt.Errorf("initialize layer store: %w", err)
	}

	return s, nil
}

// init creates the database schema
func (s *SQLite) init() error {
	schema := `
	CREATE TABLE IF NOT EXISTS layers (
		id TEXT PRIMARY KEY,
		position INTEGER NOT NULL,
		body TEXT NOT NULL,
		updated_at TIMESTAMP DEFAULT CURRENT_TIMESTAMP
	);

	CREATE INDEX IF NOT EXISTS idx_layers_position ON layers(position);

	CREATE TABLE IF NOT EXISTS style (
		id INTEGER PRIMARY KEY CHECK (id = 1),
		body TEXT NOT NULL,
		updated_at TIMESTAMP DEFAULT CURRENT_TIMESTAMP
	);
	`

	_, err := s.db.Exec(schema)
	return err
}

// Path returns the database file location.
func (s *SQLite) Path() string {
	return s.path
}

func (s *SQLite) List() ([]*models.Layer, error) {
	rows, err := s.db.Query("SELECT body FROM layers ORDER BY position ASC")
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var layers []*models.Layer
	for rows.Next() {
		var body string
		if err := rows.Scan(&body); err != nil {
			return nil, err
		}
		layer, err := decodeLayer(body)
		if err != nil {
			return nil, err
		}
		layers = append(layers, layer)
	}
	return layers, rows.Err()
}

func (s *SQLite) Get(id string) (*models.Layer, error) {
	var body string
	err := s.db.QueryRow("SELECT body FROM layers WHERE id = ?", id).Scan(&body)
	if err == sql.ErrNoRows {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return decodeLayer(body)
}

func (s *SQLite) Insert(layer *models.Layer, beforeID string) error {
	if layer == nil || layer.ID == "" {
		return fmt.Errorf("insert layer: missing id")
	}
	body, err := json.Marshal(layer)
	if err != nil {
		return fmt.Errorf("marshal layer %s: %w", layer.ID, err)
	}

	tx, err := s.db.Begin()
	if err != nil {
		return err
	}
	defer func() {
		_ = tx.Rollback()
	}()

	if _, found, err := positionOf(tx, layer.ID); err != nil {
		return err
	} else if found {
		return fmt.Errorf("insert %s: %w", layer.ID, ErrLayerExists)
	}

	if err := insertBefore(tx, layer.ID, string(body), beforeID); err != nil {
		return fmt.Errorf("insert %s: %w", layer.ID, err)
	}
	return tx.Commit()
}

func (s *SQLite) Remove(id string) error {
	tx, err := s.db.Begin()
	if err != nil {
		return err
	}
	defer func() {
		_ = tx.Rollback()
	}()

	if _, err := detach(tx, id); err != nil {
		return fmt.Errorf("remove %s: %w", id, err)
	}
	return tx.Commit()
}

func (s *SQLite) MoveBefore(id, beforeID string) error {
	tx, err := s.db.Begin()
	if err != nil {
		return err
	}
	defer func() {
		_ = tx.Rollback()
	}()

	if id == beforeID {
		if _, found, err := positionOf(tx, id); err != nil {
			return err
		} else if !found {
			return fmt.Errorf("move %s: %w", id, ErrLayerNotFound)
		}
		return nil
	}

	body, err := detach(tx, id)
	if err != nil {
		return fmt.Errorf("move %s: %w", id, err)
	}
	if err := insertBefore(tx, id, body, beforeID); err != nil {
		return fmt.Errorf("move %s: %w", id, err)
	}
	return tx.Commit()
}

// Header returns the stored style fields that are not layers (name,
// version, sources, metadata). An empty store has an empty header.
func (s *SQLite) Header() (*models.Style, error) {
	var body string
	err := s.db.QueryRow("SELECT body FROM style WHERE id = 1").Scan(&body)
	if err == sql.ErrNoRows {
		return &models.Style{}, nil
	}
	if err != nil {
		return nil, err
	}

	var header models.Style
	if err := json.Unmarshal([]byte(body), &header); err != nil {
		return nil, fmt.Errorf("unmarshal style header: %w", err)
	}
	header.Layers = nil
	return &header, nil
}

// SaveHeader replaces the stored style header. The layers of h are ignored.
func (s *SQLite) SaveHeader(h *models.Style) error {
	header := *h
	header.Layers = nil
	body, err := json.Marshal(&header)
	if err != nil {
		return fmt.Errorf("marshal style header: %w", err)
	}
	_, err = s.db.Exec(
		"INSERT OR REPLACE INTO style (id, body, updated_at) VALUES (1, ?, CURRENT_TIMESTAMP)",
		string(body),
	)
	return err
}

// Close closes the layer database
func (s *SQLite) Close() error {
	return s.db.Close()
}

func positionOf(tx *sql.Tx, id string) (int, bool, error) {
	if id == "" {
		return 0, false, nil
	}
	var pos int
	err := tx.QueryRow("SELECT position FROM layers WHERE id = ?", id).Scan(&pos)
	if err == sql.ErrNoRows {
		return 0, false, nil
	}
	if err != nil {
		return 0, false, err
	}
	return pos, true, nil
}

// insertBefore writes a row at the position of beforeID, shifting the tail
// down by one, or at the end when beforeID is not stored.
func insertBefore(tx *sql.Tx, id, body, beforeID string) error {
	pos, found, err := positionOf(tx, beforeID)
	if err != nil {
		return err
	}
	if found {
		if _, err := tx.Exec("UPDATE layers SET position = position + 1 WHERE position >= ?", pos); err != nil {
			return err
		}
	} else if err := tx.QueryRow("SELECT COALESCE(MAX(position) + 1, 0) FROM layers").Scan(&pos); err != nil {
		return err
	}

	_, err = tx.Exec(
		"INSERT INTO layers (id, position, body, updated_at) VALUES (?, ?, ?, CURRENT_TIMESTAMP)",
		id, pos, body,
	)
	return err
}

// detach deletes the row for id and closes the gap it leaves, returning
// the stored body.
func detach(tx *sql.Tx, id string) (string, error) {
	var (
		pos  int
		body string
	)
	err := tx.QueryRow("SELECT position, body FROM layers WHERE id = ?", id).Scan(&pos, &body)
	if err == sql.ErrNoRows {
		return "", ErrLayerNotFound
	}
	if err != nil {
		return "", err
	}

	if _, err := tx.Exec("DELETE FROM layers WHERE id = ?", id); err != nil {
		return "", err
	}
	if _, err := tx.Exec("UPDATE layers SET position = position - 1 WHERE position > ?", pos); err != nil {
		return "", err
	}
	return body, nil
}

func decodeLayer(body string) (*models.Layer, error) {
	var layer models.Layer
	if err := json.Unmarshal([]byte(body), &layer); err != nil {
		return nil, fmt.Errorf("unmarshal layer: %w", err)
	}
	return &layer, nil
}
