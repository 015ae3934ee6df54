package ports

import (
	"context"

	"go.trai.ch/pipgen/internal/core/domain"
)

// LockStore persists the lock file.
//
//go:generate go run go.uber.org/mock/mockgen -source=lock_store.go -destination=mocks/mock_lock_store.go -package=mocks
type LockStore interface {
	// Load reads the lock file at path. A missing file yields an empty lock file.
	Load(path string) (*domain.LockFile, error)

	// Dump writes the lock file to path in canonical form, replacing it atomically.
	Dump(lf *domain.LockFile, path string) error

	// Acquire takes an exclusive advisory lock for the lock file at path.
	// The returned function releases it.
	Acquire(ctx context.Context, path string) (release func() error, err error)
}
