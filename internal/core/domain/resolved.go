package domain

import (
	"net/url"
	"path"
	"path/filepath"
	"strings"

	"go.trai.ch/zerr"
)

// ResolvedSource is the provenance the resolution engine reports for a package.
type ResolvedSource struct {
	// URL is the location the wheel was obtained from. A file scheme URL
	// denotes a wheel built or vendored locally.
	URL string

	// SHA256 is the content hash of the wheel, if known.
	SHA256 string

	// Path is the local wheel path, used when the engine reports a file instead of a URL.
	Path string
}

// IsLocal reports whether the wheel lives on the local filesystem.
func (s ResolvedSource) IsLocal() bool {
	if s.URL == "" {
		return s.Path != ""
	}
	u, err := url.Parse(s.URL)
	return err == nil && u.Scheme == "file"
}

// FileName returns the base file name of the wheel.
func (s ResolvedSource) FileName() string {
	return path.Base(s.localPath())
}

// Name derives the deterministic source name for this provenance.
func (s ResolvedSource) Name() string {
	if s.IsLocal() {
		return LocalSourceName(s.localPath())
	}
	return RemoteSourceName(s.urlPath())
}

// Source converts the provenance into a lock file source record.
func (s ResolvedSource) Source() Source {
	if s.IsLocal() {
		return Source{File: s.FileName()}
	}
	return Source{URL: s.URL, SHA256: s.SHA256}
}

func (s ResolvedSource) localPath() string {
	if s.URL == "" {
		return filepath.ToSlash(s.Path)
	}
	return s.urlPath()
}

func (s ResolvedSource) urlPath() string {
	u, err := url.Parse(s.URL)
	if err != nil {
		return s.URL
	}
	return u.Path
}

// ResolvedRequirement is one package record produced by the resolution engine.
type ResolvedRequirement struct {
	Name         string
	Version      string
	Source       ResolvedSource
	IsDirect     bool
	Dependencies []string
	Extras       []string
}

// Validate checks that the record carries every field the lock model requires.
func (r ResolvedRequirement) Validate() error {
	switch {
	case strings.TrimSpace(r.Name) == "":
		return zerr.With(ErrInvalidResolvedRequirement, "field", "name")
	case strings.TrimSpace(r.Version) == "":
		err := zerr.With(ErrInvalidResolvedRequirement, "field", "version")
		return zerr.With(err, "package", r.Name)
	case r.Source.URL == "" && r.Source.Path == "":
		err := zerr.With(ErrInvalidResolvedRequirement, "field", "source")
		return zerr.With(err, "package", r.Name)
	}
	if r.Source.Name() == "" {
		err := zerr.With(ErrInvalidResolvedRequirement, "field", "source")
		return zerr.With(err, "package", r.Name)
	}
	return nil
}

// ResolutionError reports the packages the resolution engine failed to resolve or build.
type ResolutionError struct {
	Packages []string
}

// Error implements the error interface.
func (e *ResolutionError) Error() string {
	return "failed to resolve or build packages: " + strings.Join(e.Packages, ", ")
}
