package scene

import (
	"context"
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"sync"
	"time"

	"github.com/matzehuels/canvasnap/pkg/errors"
	"github.com/matzehuels/canvasnap/pkg/observability"
)

// Store persists scenes. Put overwrites unconditionally (last write wins).
type Store interface {
	// Get returns the scene or an ErrCodeSceneNotFound error.
	Get(ctx context.Context, id string) (*Scene, error)

	// Put validates, stamps UpdatedAt and stores the scene.
	Put(ctx context.Context, s *Scene) error

	// Delete removes a scene. Deleting a missing scene is not an error.
	Delete(ctx context.Context, id string) error

	// Close releases backend resources.
	Close() error
}

// prepare validates a scene before it is written.
func prepare(s *Scene) error {
	if err := errors.ValidateID("scene", s.ID); err != nil {
		return err
	}
	s.Normalize()
	if err := s.Validate(); err != nil {
		return err
	}
	s.UpdatedAt = time.Now().UTC()
	return nil
}

func notFound(id string) error {
	return errors.New(errors.ErrCodeSceneNotFound, "scene %q not found", id)
}

// =============================================================================
// FileStore
// =============================================================================

// FileStore keeps one JSON file per scene in a directory.
type FileStore struct {
	mu  sync.RWMutex
	dir string
}

// NewFileStore creates the directory if needed.
func NewFileStore(dir string) (*FileStore, error) {
	if err := os.MkdirAll(dir, 0755); err != nil {
		return nil, fmt.Errorf("create scene dir: %w", err)
	}
	return &FileStore{dir: dir}, nil
}

func (s *FileStore) path(id string) string {
	return filepath.Join(s.dir, id+".json")
}

func (s *FileStore) Get(ctx context.Context, id string) (sc *Scene, err error) {
	start := time.Now()
	defer func() { observability.Store().OnStoreOp(ctx, "file", "scene", "get", time.Since(start), err) }()

	if err := errors.ValidateID("scene", id); err != nil {
		return nil, err
	}

	s.mu.RLock()
	defer s.mu.RUnlock()

	data, err := os.ReadFile(s.path(id))
	if err != nil {
		if os.IsNotExist(err) {
			return nil, notFound(id)
		}
		return nil, errors.Wrap(errors.ErrCodeStorage, err, "read scene %s", id)
	}

	var out Scene
	if err := json.Unmarshal(data, &out); err != nil {
		return nil, errors.Wrap(errors.ErrCodeStorage, err, "parse scene %s", id)
	}
	return &out, nil
}

func (s *FileStore) Put(ctx context.Context, sc *Scene) (err error) {
	start := time.Now()
	defer func() { observability.Store().OnStoreOp(ctx, "file", "scene", "put", time.Since(start), err) }()

	if err := prepare(sc); err != nil {
		return err
	}

	data, err := json.MarshalIndent(sc, "", "  ")
	if err != nil {
		return fmt.Errorf("marshal scene: %w", err)
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	// Write then rename so a reader never sees a half-written file.
	tmp := s.path(sc.ID) + ".tmp"
	if err := os.WriteFile(tmp, data, 0644); err != nil {
		return errors.Wrap(errors.ErrCodeStorage, err, "write scene %s", sc.ID)
	}
	if err := os.Rename(tmp, s.path(sc.ID)); err != nil {
		return errors.Wrap(errors.ErrCodeStorage, err, "write scene %s", sc.ID)
	}
	return nil
}

func (s *FileStore) Delete(ctx context.Context, id string) (err error) {
	start := time.Now()
	defer func() { observability.Store().OnStoreOp(ctx, "file", "scene", "delete", time.Since(start), err) }()

	if err := errors.ValidateID("scene", id); err != nil {
		return err
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	if err := os.Remove(s.path(id)); err != nil && !os.IsNotExist(err) {
		return errors.Wrap(errors.ErrCodeStorage, err, "remove scene %s", id)
	}
	return nil
}

func (s *FileStore) Close() error { return nil }

// Dir returns the directory scenes are stored in.
func (s *FileStore) Dir() string { return s.dir }

var _ Store = (*FileStore)(nil)
