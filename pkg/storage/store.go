package storage

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"sort"
	"strings"

	"github.com/noah-isme/html2url/internal/models"
)

// ErrNotFound reports that no artifact exists under the requested name. A
// file vanishing between enumeration and access (the sweeper races fetches)
// maps here as well.
var ErrNotFound = errors.New("artifact not found")

// Store persists artifacts on disk under a base directory, one file per
// (id, kind). The directory is the sole source of truth: age and size come
// from the filesystem, never from a side index.
type Store struct {
	baseDir string
}

// NewStore ensures the base directory exists and returns a handle.
func NewStore(baseDir string) (*Store, error) {
	if baseDir == "" {
		baseDir = "./html_files"
	}
	if err := os.MkdirAll(baseDir, 0o755); err != nil {
		return nil, fmt.Errorf("create storage directory: %w", err)
	}
	return &Store{baseDir: baseDir}, nil
}

// Put writes the full content for (id, kind). The bytes land in a temp file
// first and are renamed into place so a concurrent reader never observes a
// truncated artifact. Artifacts are immutable; Put on an existing name
// replaces it atomically but callers never do that in practice.
func (s *Store) Put(id string, kind models.Kind, data []byte) error {
	name := id + kind.Ext()
	tmp, err := os.CreateTemp(s.baseDir, "."+name+".tmp-*")
	if err != nil {
		return fmt.Errorf("create temp file: %w", err)
	}
	tmpName := tmp.Name()

	if _, err := tmp.Write(data); err != nil {
		tmp.Close()           //nolint:errcheck
		os.Remove(tmpName)    //nolint:errcheck
		return fmt.Errorf("write artifact %s: %w", name, err)
	}
	if err := tmp.Close(); err != nil {
		os.Remove(tmpName) //nolint:errcheck
		return fmt.Errorf("close artifact %s: %w", name, err)
	}
	if err := os.Rename(tmpName, filepath.Join(s.baseDir, name)); err != nil {
		os.Remove(tmpName) //nolint:errcheck
		return fmt.Errorf("publish artifact %s: %w", name, err)
	}
	return nil
}

// Get reads the full content stored under name.
func (s *Store) Get(name string) ([]byte, error) {
	data, err := os.ReadFile(filepath.Join(s.baseDir, name))
	if err != nil {
		if os.IsNotExist(err) {
			return nil, ErrNotFound
		}
		return nil, fmt.Errorf("read artifact %s: %w", name, err)
	}
	return data, nil
}

// Exists reports whether an artifact is stored under (id, kind).
func (s *Store) Exists(id string, kind models.Kind) bool {
	_, err := os.Stat(filepath.Join(s.baseDir, id+kind.Ext()))
	return err == nil
}

// Delete removes the artifact stored under name.
func (s *Store) Delete(name string) error {
	if err := os.Remove(filepath.Join(s.baseDir, name)); err != nil {
		if os.IsNotExist(err) {
			return ErrNotFound
		}
		return fmt.Errorf("delete artifact %s: %w", name, err)
	}
	return nil
}

// List enumerates every stored artifact with size and creation time. Files
// that disappear mid-enumeration are skipped. Results are ordered by name so
// stats output is stable.
func (s *Store) List() ([]models.Artifact, error) {
	entries, err := os.ReadDir(s.baseDir)
	if err != nil {
		return nil, fmt.Errorf("list storage directory: %w", err)
	}

	artifacts := make([]models.Artifact, 0, len(entries))
	for _, entry := range entries {
		if entry.IsDir() || strings.HasPrefix(entry.Name(), ".") {
			continue
		}
		kind := models.KindForName(entry.Name())
		if kind == models.KindOther {
			continue
		}
		info, err := entry.Info()
		if err != nil {
			continue
		}
		artifacts = append(artifacts, models.Artifact{
			Name:      entry.Name(),
			Kind:      kind,
			SizeBytes: info.Size(),
			// Artifacts are immutable once published, so the last
			// modification time is the creation time.
			CreatedAt: info.ModTime(),
		})
	}
	sort.Slice(artifacts, func(i, j int) bool { return artifacts[i].Name < artifacts[j].Name })
	return artifacts, nil
}

// ValidName checks a requested filename before any filesystem access. Only
// the two served extensions are accepted and any path separator rejects the
// name outright; this is the sole defense against traversal.
func ValidName(name string) (models.Kind, bool) {
	if strings.ContainsAny(name, "/\\") {
		return "", false
	}
	kind := models.KindForName(name)
	if kind != models.KindHTML && kind != models.KindPDF {
		return "", false
	}
	return kind, true
}

// Path exposes the underlying absolute path (useful for debugging).
func (s *Store) Path(name string) string {
	return filepath.Join(s.baseDir, name)
}
