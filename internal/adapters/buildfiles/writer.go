// Package buildfiles writes the generated build description to disk.
package buildfiles

import (
	"bytes"
	"encoding/json"
	"errors"
	"io/fs"
	"os"
	"path/filepath"
	"runtime"
	"slices"

	pfs "go.trai.ch/pipgen/internal/adapters/fs"
	"go.trai.ch/pipgen/internal/core/domain"
	"go.trai.ch/pipgen/internal/core/ports"
	"go.trai.ch/zerr"
	"golang.org/x/sync/errgroup"
)

const (
	stagingPattern = ".pipgen-staging-*"
	backupPattern  = ".pipgen-previous-*"
)

var _ ports.OutputWriter = (*Writer)(nil)

// Writer implements ports.OutputWriter on the local filesystem.
type Writer struct {
	logger ports.Logger
}

// NewWriter creates a new Writer.
func NewWriter(logger ports.Logger) *Writer {
	return &Writer{logger: logger}
}

// WriteSourceRules replaces the file at path atomically.
func (w *Writer) WriteSourceRules(path string, content []byte) error {
	w.logger.Debug("writing source rules " + path)
	if err := pfs.WriteFileAtomic(path, content); err != nil {
		return zerr.With(zerr.Wrap(err, domain.ErrOutputWriteFailed.Error()), "path", path)
	}
	return nil
}

// WriteRepository renders every package and the stamp into a staging
// directory next to dir, carries over entries the generator does not own and
// swaps the staged tree into place. Packages listed by the previous stamp that
// are no longer generated are dropped with the old tree. On failure dir is
// left as it was.
func (w *Writer) WriteRepository(dir string, packages []domain.GeneratedPackage, stamp domain.Stamp) error {
	for _, pkg := range packages {
		if !validPackageDir(pkg.Name) {
			return zerr.With(domain.ErrOutputWriteFailed, "package", pkg.Name)
		}
	}

	previous, err := w.ReadStamp(dir)
	if err != nil {
		return err
	}

	abs, err := filepath.Abs(dir)
	if err != nil {
		return wrapWrite(err, dir)
	}
	dir = abs
	parent, base := filepath.Dir(dir), filepath.Base(dir)
	if err := os.MkdirAll(parent, domain.DirPerm); err != nil {
		return wrapWrite(err, parent)
	}

	staging, err := os.MkdirTemp(parent, "."+base+stagingPattern)
	if err != nil {
		return wrapWrite(err, parent)
	}
	defer func() {
		_ = os.RemoveAll(staging)
	}()
	if err := os.Chmod(staging, domain.DirPerm); err != nil {
		return wrapWrite(err, staging)
	}

	if err := stagePackages(staging, packages); err != nil {
		return err
	}
	if err := writeStamp(staging, stamp); err != nil {
		return err
	}

	owned := slices.Concat(stamp.Packages, packagesOf(previous))
	carried, err := carryOver(dir, staging, owned)
	if err != nil {
		return err
	}

	if err := w.swap(dir, staging, base); err != nil {
		moveEntries(staging, dir, carried)
		return err
	}

	for _, name := range packagesOf(previous) {
		if !slices.Contains(stamp.Packages, name) {
			w.logger.Debug("removed stale package " + filepath.Join(dir, name))
		}
	}
	w.logger.Debug("wrote " + filepath.Join(dir, domain.StampFileName))
	return nil
}

// UpToDate reports whether the stamp in dir matches stamp, the source rules at
// bzlPath hold exactly rules and every stamped package is still on disk.
func (w *Writer) UpToDate(bzlPath string, rules []byte, dir string, stamp domain.Stamp) (bool, error) {
	previous, err := w.ReadStamp(dir)
	if err != nil {
		return false, err
	}
	if previous == nil || previous.Digest != stamp.Digest || previous.BzlFile != stamp.BzlFile {
		return false, nil
	}

	//nolint:gosec // Path is the configured source rules file
	current, err := os.ReadFile(bzlPath)
	if err != nil || !bytes.Equal(current, rules) {
		w.logger.Debug("source rules " + bzlPath + " are missing or modified")
		return false, nil
	}

	for _, name := range previous.Packages {
		if !validPackageDir(name) {
			return false, nil
		}
		for _, file := range []string{domain.BuildFileName, domain.ReposFileName} {
			path := filepath.Join(dir, name, file)
			if _, err := os.Stat(path); err != nil {
				w.logger.Debug("generated file " + path + " is missing")
				return false, nil
			}
		}
	}
	return true, nil
}

// ReadStamp returns the stamp recorded in dir, or nil when there is none.
func (w *Writer) ReadStamp(dir string) (*domain.Stamp, error) {
	path := filepath.Join(dir, domain.StampFileName)

	//nolint:gosec // Path is derived from the configured repository directory
	data, err := os.ReadFile(path)
	if err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return nil, nil
		}
		return nil, zerr.With(zerr.Wrap(err, domain.ErrStampReadFailed.Error()), "path", path)
	}

	var stamp domain.Stamp
	if err := json.Unmarshal(data, &stamp); err != nil {
		return nil, zerr.With(zerr.Wrap(err, domain.ErrStampReadFailed.Error()), "path", path)
	}
	return &stamp, nil
}

func stagePackages(staging string, packages []domain.GeneratedPackage) error {
	var g errgroup.Group
	g.SetLimit(runtime.NumCPU())

	for _, pkg := range packages {
		g.Go(func() error {
			pkgDir := filepath.Join(staging, pkg.Name)
			if err := os.Mkdir(pkgDir, domain.DirPerm); err != nil {
				return wrapWrite(err, pkgDir)
			}
			files := map[string][]byte{
				domain.BuildFileName: pkg.BuildFile,
				domain.ReposFileName: pkg.ReposFile,
			}
			for name, content := range files {
				path := filepath.Join(pkgDir, name)
				if err := os.WriteFile(path, content, domain.FilePerm); err != nil {
					return wrapWrite(err, path)
				}
			}
			return nil
		})
	}

	return g.Wait()
}

func writeStamp(dir string, stamp domain.Stamp) error {
	data, err := json.MarshalIndent(stamp, "", "  ")
	if err != nil {
		return zerr.Wrap(err, domain.ErrOutputWriteFailed.Error())
	}
	path := filepath.Join(dir, domain.StampFileName)
	if err := os.WriteFile(path, append(data, '\n'), domain.FilePerm); err != nil {
		return wrapWrite(err, path)
	}
	return nil
}

func packagesOf(stamp *domain.Stamp) []string {
	if stamp == nil {
		return nil
	}
	return stamp.Packages
}

// carryOver moves the entries of dir the generator does not own into staging
// and returns their names.
func carryOver(dir, staging string, owned []string) ([]string, error) {
	entries, err := os.ReadDir(dir)
	if err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return nil, nil
		}
		return nil, wrapWrite(err, dir)
	}

	var moved []string
	for _, e := range entries {
		name := e.Name()
		if name == domain.StampFileName || slices.Contains(owned, name) {
			continue
		}
		if matched, _ := filepath.Match(stagingPattern, name); matched {
			continue
		}
		if err := os.Rename(filepath.Join(dir, name), filepath.Join(staging, name)); err != nil {
			moveEntries(staging, dir, moved)
			return nil, wrapWrite(err, filepath.Join(dir, name))
		}
		moved = append(moved, name)
	}
	return moved, nil
}

// moveEntries renames names from one directory back into another, best effort.
func moveEntries(from, to string, names []string) {
	for _, name := range names {
		_ = os.Rename(filepath.Join(from, name), filepath.Join(to, name))
	}
}

// swap replaces dir with staging. The previous tree is renamed aside first and
// restored if staging cannot take its place.
func (w *Writer) swap(dir, staging, base string) error {
	if _, err := os.Lstat(dir); errors.Is(err, fs.ErrNotExist) {
		if err := os.Rename(staging, dir); err != nil {
			return wrapWrite(err, dir)
		}
		return nil
	}

	backup, err := os.MkdirTemp(filepath.Dir(dir), "."+base+backupPattern)
	if err != nil {
		return wrapWrite(err, dir)
	}
	if err := os.Remove(backup); err != nil {
		return wrapWrite(err, backup)
	}
	if err := os.Rename(dir, backup); err != nil {
		return wrapWrite(err, dir)
	}
	if err := os.Rename(staging, dir); err != nil {
		_ = os.Rename(backup, dir)
		return wrapWrite(err, dir)
	}

	if err := os.RemoveAll(backup); err != nil {
		w.logger.Warn("failed to remove previous output " + backup + ": " + err.Error())
	}
	return nil
}

// validPackageDir reports whether name is a single path element inside the repository directory.
func validPackageDir(name string) bool {
	return name != "" && filepath.IsLocal(name) && filepath.Base(name) == name && name[0] != '.'
}

func wrapWrite(err error, path string) error {
	return zerr.With(zerr.Wrap(err, domain.ErrOutputWriteFailed.Error()), "path", path)
}
