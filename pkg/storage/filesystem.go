package storage

import (
	"fmt"
	"os"
	"path/filepath"
	"time"
)

// LocalStorage keeps generated export artifacts on disk under a base
// directory. Artifacts are flat files named by the export service.
type LocalStorage struct {
	baseDir string
}

// NewLocalStorage ensures the base directory exists and returns a handle.
func NewLocalStorage(baseDir string) (*LocalStorage, error) {
	if baseDir == "" {
		baseDir = "./exports"
	}
	if err := os.MkdirAll(baseDir, 0o755); err != nil {
		return nil, fmt.Errorf("create exports directory: %w", err)
	}
	return &LocalStorage{baseDir: baseDir}, nil
}

// Save writes the artifact bytes under the base dir and returns the
// relative name it was stored as.
func (s *LocalStorage) Save(name string, data []byte) (string, error) {
	path := s.resolve(name)
	if err := os.WriteFile(path, data, 0o644); err != nil {
		return "", fmt.Errorf("write export file: %w", err)
	}
	return name, nil
}

// Delete removes a stored artifact if present.
func (s *LocalStorage) Delete(name string) error {
	if err := os.Remove(s.resolve(name)); err != nil && !os.IsNotExist(err) {
		return fmt.Errorf("delete export file: %w", err)
	}
	return nil
}

// CleanupOlderThan removes artifacts whose modification time is older than
// the TTL and reports how many were deleted.
func (s *LocalStorage) CleanupOlderThan(ttl time.Duration) (int, error) {
	cutoff := time.Now().Add(-ttl)
	entries, err := os.ReadDir(s.baseDir)
	if err != nil {
		return 0, fmt.Errorf("list exports: %w", err)
	}
	deleted := 0
	for _, entry := range entries {
		if entry.IsDir() {
			continue
		}
		info, err := entry.Info()
		if err != nil {
			continue
		}
		if info.ModTime().After(cutoff) {
			continue
		}
		if err := os.Remove(filepath.Join(s.baseDir, entry.Name())); err == nil {
			deleted++
		}
	}
	return deleted, nil
}

// Path returns the absolute path of a stored artifact.
func (s *LocalStorage) Path(name string) string {
	return s.resolve(name)
}

func (s *LocalStorage) resolve(name string) string {
	return filepath.Join(s.baseDir, filepath.Base(name))
}
