package store

import (
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"path/filepath"

	"justel_spider/internal/models"
)

// ErrNoIndex means a content-only run was asked to resume from an index
// artifact that was never written. This is the one fatal setup condition.
var ErrNoIndex = errors.New("no index artifact")

// Store is the pipeline's only contract with downstream storage: it delivers
// the index artifact and one record per law per language.
type Store interface {
	SaveIndex(entries []models.IndexEntry) error
	LoadIndex() ([]models.IndexEntry, error)
	SaveDocument(doc *models.LawDocument) error
	Close() error
}

// FileStore writes artifacts as json files: <dir>/index.json plus
// <dir>/laws/<id>.json.
type FileStore struct {
	dir string
}

func NewFileStore(dir string) (*FileStore, error) {
	if err := os.MkdirAll(filepath.Join(dir, "laws"), 0o755); err != nil {
		return nil, fmt.Errorf("cannot create artifact dir: %w", err)
	}
	return &FileStore{dir: dir}, nil
}

func (s *FileStore) indexPath() string {
	return filepath.Join(s.dir, "index.json")
}

func (s *FileStore) SaveIndex(entries []models.IndexEntry) error {
	return writeJSON(s.indexPath(), entries)
}

func (s *FileStore) LoadIndex() ([]models.IndexEntry, error) {
	data, err := os.ReadFile(s.indexPath())
	if err != nil {
		if os.IsNotExist(err) {
			return nil, fmt.Errorf("%s: %w", s.indexPath(), ErrNoIndex)
		}
		return nil, err
	}
	var entries []models.IndexEntry
	if err := json.Unmarshal(data, &entries); err != nil {
		return nil, fmt.Errorf("index artifact corrupt: %w", err)
	}
	return entries, nil
}

func (s *FileStore) SaveDocument(doc *models.LawDocument) error {
	return writeJSON(filepath.Join(s.dir, "laws", doc.ID+".json"), doc)
}

func (s *FileStore) Close() error { return nil }

// writeJSON goes through a temp file and a rename so a crash mid-write never
// leaves a truncated artifact behind.
func writeJSON(path string, v interface{}) error {
	data, err := json.MarshalIndent(v, "", "  ")
	if err != nil {
		return err
	}
	tmp := path + ".tmp"
	if err := os.WriteFile(tmp, data, 0o644); err != nil {
		return err
	}
	return os.Rename(tmp, path)
}
