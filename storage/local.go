package storage

import (
	"context"
	"errors"
	"fmt"
	"io"
	"io/fs"
	"os"
	"path/filepath"
)

var ErrInvalidFixtureKey = errors.New("invalid fixture key")

// LocalFixtureSource keeps descriptors as files under one directory.
type LocalFixtureSource struct {
	dir string
}

func NewLocalFixtureSource(dir string) *LocalFixtureSource {
	return &LocalFixtureSource{dir: dir}
}

func (s *LocalFixtureSource) path(key string) (string, error) {
	if key == "" || filepath.IsAbs(key) || !filepath.IsLocal(key) {
		return "", fmt.Errorf("%w: %q", ErrInvalidFixtureKey, key)
	}
	return filepath.Join(s.dir, filepath.FromSlash(key)), nil
}

func (s *LocalFixtureSource) Open(ctx context.Context, key string) (io.ReadCloser, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	p, err := s.path(key)
	if err != nil {
		return nil, err
	}
	f, err := os.Open(p)
	if err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return nil, fmt.Errorf("%w: %s", ErrFixtureNotFound, key)
		}
		return nil, fmt.Errorf("failed to open fixture %s: %w", key, err)
	}
	return f, nil
}

// Put writes through a temp file and a rename, so readers never see a
// half-written descriptor.
func (s *LocalFixtureSource) Put(ctx context.Context, key string, reader io.Reader) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	p, err := s.path(key)
	if err != nil {
		return err
	}
	if err := os.MkdirAll(filepath.Dir(p), 0o755); err != nil {
		return fmt.Errorf("failed to create fixture directory: %w", err)
	}

	tmp, err := os.CreateTemp(filepath.Dir(p), "."+filepath.Base(p)+".*")
	if err != nil {
		return fmt.Errorf("failed to create temp file for fixture %s: %w", key, err)
	}
	defer os.Remove(tmp.Name())

	if _, err := io.Copy(tmp, reader); err != nil {
		tmp.Close()
		return fmt.Errorf("failed to write fixture %s: %w", key, err)
	}
	if err := tmp.Close(); err != nil {
		return fmt.Errorf("failed to write fixture %s: %w", key, err)
	}
	if err := os.Rename(tmp.Name(), p); err != nil {
		return fmt.Errorf("failed to store fixture %s: %w", key, err)
	}
	return nil
}
