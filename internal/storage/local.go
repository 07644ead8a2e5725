package storage

import (
	"context"
	"fmt"
	"io"
	"os"
	"path/filepath"
)

// LocalBackend stores files on disk under a media root directory.
type LocalBackend struct {
	root string
}

func NewLocalBackend(root string) (*LocalBackend, error) {
	if err := os.MkdirAll(root, 0o755); err != nil {
		return nil, fmt.Errorf("failed to create media root: %w", err)
	}
	return &LocalBackend{root: root}, nil
}

func (b *LocalBackend) path(key string) string {
	return filepath.Join(b.root, filepath.FromSlash(key))
}

func (b *LocalBackend) Save(ctx context.Context, key string, r io.Reader) (int64, error) {
	full := b.path(key)
	if err := os.MkdirAll(filepath.Dir(full), 0o755); err != nil {
		return 0, fmt.Errorf("failed to create directory for %s: %w", key, err)
	}

	out, err := os.Create(full)
	if err != nil {
		return 0, fmt.Errorf("failed to create %s: %w", key, err)
	}
	defer out.Close()

	n, err := io.Copy(out, r)
	if err != nil {
		os.Remove(full)
		return 0, fmt.Errorf("failed to write %s: %w", key, err)
	}
	return n, nil
}

func (b *LocalBackend) Open(ctx context.Context, key string) (io.ReadCloser, int64, error) {
	f, err := os.Open(b.path(key))
	if err != nil {
		return nil, 0, fmt.Errorf("failed to open %s: %w", key, err)
	}
	info, err := f.Stat()
	if err != nil {
		f.Close()
		return nil, 0, fmt.Errorf("failed to stat %s: %w", key, err)
	}
	return f, info.Size(), nil
}

func (b *LocalBackend) Remove(ctx context.Context, key string) error {
	if key == "" {
		return nil
	}
	if err := os.Remove(b.path(key)); err != nil && !os.IsNotExist(err) {
		return fmt.Errorf("failed to remove %s: %w", key, err)
	}
	return nil
}
