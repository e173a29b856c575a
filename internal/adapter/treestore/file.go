package treestore

import (
	"context"
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"

	"kasubs/internal/domain/model"
	"kasubs/internal/domain/ports"
)

// FileStore keeps one file per tree in a directory.
type FileStore struct {
	dir string
}

var _ ports.TreeStore = (*FileStore)(nil)

// NewFileStore creates a store rooted at dir. The directory is created on
// first save.
func NewFileStore(dir string) *FileStore {
	return &FileStore{dir: dir}
}

// FileName returns the file name used for key.
func FileName(key model.TreeKey) string {
	return fmt.Sprintf("khan_tree_%s_%s_bin.gob", key.Locale, key.ContentType)
}

// Path returns the full path of the file for key.
func (s *FileStore) Path(key model.TreeKey) string {
	return filepath.Join(s.dir, FileName(key))
}

// Load reads the tree stored for key.
func (s *FileStore) Load(ctx context.Context, key model.TreeKey) (model.Node, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	data, err := os.ReadFile(s.Path(key))
	if err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return nil, ErrNotFound
		}
		return nil, fmt.Errorf("read %s: %w", s.Path(key), err)
	}
	return Decode(data)
}

// Save replaces the tree stored for key. The previous file stays intact
// until the new one is fully written.
func (s *FileStore) Save(ctx context.Context, key model.TreeKey, tree model.Node) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	data, err := Encode(tree)
	if err != nil {
		return err
	}
	return writeAtomic(s.Path(key), data)
}

func writeAtomic(path string, data []byte) error {
	dir := filepath.Dir(path)
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return fmt.Errorf("create directory: %w", err)
	}

	tmp, err := os.CreateTemp(dir, ".khan_tree-*.tmp")
	if err != nil {
		return fmt.Errorf("create temp file: %w", err)
	}
	tmpPath := tmp.Name()

	if _, err := tmp.Write(data); err != nil {
		tmp.Close()
		os.Remove(tmpPath)
		return fmt.Errorf("write %s: %w", tmpPath, err)
	}
	if err := tmp.Sync(); err != nil {
		tmp.Close()
		os.Remove(tmpPath)
		return fmt.Errorf("sync: %w", err)
	}
	if err := tmp.Close(); err != nil {
		os.Remove(tmpPath)
		return fmt.Errorf("close: %w", err)
	}
	if err := os.Rename(tmpPath, path); err != nil {
		os.Remove(tmpPath)
		return fmt.Errorf("rename: %w", err)
	}
	return nil
}
