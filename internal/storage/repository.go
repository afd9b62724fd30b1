package storage

import (
	"context"
	"errors"
)

var (
	ErrNotFound = errors.New("storage: not found")
	// ErrStorageUnavailable wraps any read or write failure of the backing
	// store. Callers fall back to in-memory operation when they see it.
	ErrStorageUnavailable = errors.New("storage: unavailable")
)

const (
	TasksKey = "timeboxing-tasks"
	ThemeKey = "timeboxing-theme"
)

// Repository is an opaque key-value blob store. Values are whole snapshots;
// there are no partial updates.
type Repository interface {
	Get(ctx context.Context, key string) ([]byte, error)
	Put(ctx context.Context, key string, value []byte) error
	Delete(ctx context.Context, key string) error
	Keys(ctx context.Context) ([]string, error)
	Close() error
}
