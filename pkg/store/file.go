package store

import (
	"context"
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"sync"

	"github.com/google/uuid"

	"github.com/matzehuels/lotplan/pkg/errors"
	"github.com/matzehuels/lotplan/pkg/publish"
)

// FileStore keeps each publication as <id>.json in a directory.
type FileStore struct {
	mu      sync.RWMutex
	baseDir string
}

// NewFileStore creates the directory if needed. An empty baseDir means
// ./published.
func NewFileStore(baseDir string) (*FileStore, error) {
	if baseDir == "" {
		baseDir = "published"
	}
	if err := os.MkdirAll(baseDir, 0o755); err != nil {
		return nil, fmt.Errorf("create publication dir: %w", err)
	}
	return &FileStore{baseDir: baseDir}, nil
}

func (s *FileStore) path(id string) string {
	return filepath.Join(s.baseDir, id+".json")
}

func (s *FileStore) Save(ctx context.Context, pub *publish.Publication) error {
	if err := checkID(pub.ID); err != nil {
		return err
	}
	data, err := json.MarshalIndent(pub, "", "  ")
	if err != nil {
		return fmt.Errorf("marshal publication: %w", err)
	}

	s.mu.Lock()
	defer s.mu.Unlock()
	if err := os.WriteFile(s.path(pub.ID), data, 0o644); err != nil {
		return fmt.Errorf("write publication file: %w", err)
	}
	return nil
}

func (s *FileStore) Get(ctx context.Context, id string) (*publish.Publication, error) {
	if err := checkID(id); err != nil {
		return nil, err
	}

	s.mu.RLock()
	defer s.mu.RUnlock()
	data, err := os.ReadFile(s.path(id))
	if err != nil {
		if os.IsNotExist(err) {
			return nil, notFound(id)
		}
		return nil, fmt.Errorf("read publication file: %w", err)
	}

	var pub publish.Publication
	if err := json.Unmarshal(data, &pub); err != nil {
		return nil, fmt.Errorf("parse publication: %w", err)
	}
	return &pub, nil
}

func (s *FileStore) Close() error { return nil }

// Path returns the directory holding publication files.
func (s *FileStore) Path() string { return s.baseDir }

var _ Store = (*FileStore)(nil)

// checkID keeps ids usable as file names and keys.
func checkID(id string) error {
	if _, err := uuid.Parse(id); err != nil {
		return errors.Wrap(errors.ErrCodeInvalidInput, err, "invalid publication id %q", id)
	}
	return nil
}

func notFound(id string) error {
	return errors.New(errors.ErrCodeNotFound, "publication %s not found", id)
}
