package storage

import (
	"context"
	"errors"
	"io"
)

var ErrFixtureNotFound = errors.New("fixture descriptor not found")

// FixtureSource stores fixture descriptor documents by key.
type FixtureSource interface {
	Open(ctx context.Context, key string) (io.ReadCloser, error)

	Put(ctx context.Context, key string, reader io.Reader) error
}
