// Package lockfile implements the canonical on-disk form of the lock file.
package lockfile

import (
	"context"
	"errors"
	"io/fs"
	"os"
	"path/filepath"
	"time"

	"github.com/gofrs/flock"
	pfs "go.trai.ch/pipgen/internal/adapters/fs"
	"go.trai.ch/pipgen/internal/core/domain"
	"go.trai.ch/pipgen/internal/core/ports"
	"go.trai.ch/zerr"
)

const lockRetryDelay = 100 * time.Millisecond

var _ ports.LockStore = (*Store)(nil)

// Store implements ports.LockStore with a JSON file.
type Store struct {
	logger ports.Logger
}

// NewStore creates a new Store.
func NewStore(logger ports.Logger) *Store {
	return &Store{logger: logger}
}

// Load reads the lock file at path. A missing file yields an empty lock file
// so that the first run can bootstrap one.
func (s *Store) Load(path string) (*domain.LockFile, error) {
	s.logger.Debug("reading lock file " + path)

	//nolint:gosec // Path is provided by the user on purpose
	data, err := os.ReadFile(path)
	if err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			s.logger.Debug("lock file " + path + " does not exist, starting empty")
			return domain.NewLockFile(), nil
		}
		return nil, zerr.With(zerr.Wrap(err, domain.ErrLockFileRead.Error()), "path", path)
	}

	lf, err := Unmarshal(data)
	if err != nil {
		return nil, zerr.With(err, "path", path)
	}
	return lf, nil
}

// Dump writes the lock file canonically. The previous file is replaced
// atomically, so a failed write leaves it untouched.
func (s *Store) Dump(lf *domain.LockFile, path string) error {
	s.logger.Debug("writing lock file " + path)

	data, err := Marshal(lf)
	if err != nil {
		return zerr.With(err, "path", path)
	}

	if err := pfs.WriteFileAtomic(path, data); err != nil {
		return zerr.With(zerr.Wrap(err, domain.ErrLockFileWrite.Error()), "path", path)
	}
	return nil
}

// Acquire takes an advisory lock on "<path>.lock", waiting until ctx is done.
func (s *Store) Acquire(ctx context.Context, path string) (func() error, error) {
	lockPath := path + domain.LockFileSuffix
	if err := os.MkdirAll(filepath.Dir(lockPath), domain.DirPerm); err != nil {
		return nil, zerr.With(zerr.Wrap(err, domain.ErrLockFileWrite.Error()), "path", lockPath)
	}

	fileLock := flock.New(lockPath)
	locked, err := fileLock.TryLockContext(ctx, lockRetryDelay)
	if err != nil {
		return nil, zerr.With(zerr.Wrap(err, domain.ErrLockFileBusy.Error()), "path", lockPath)
	}
	if !locked {
		return nil, zerr.With(domain.ErrLockFileBusy, "path", lockPath)
	}
	return fileLock.Unlock, nil
}
