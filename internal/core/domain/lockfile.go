package domain

import (
	"fmt"
	"maps"
	"net/url"
	"runtime"
	"slices"

	"go.trai.ch/zerr"
)

// SupportedPythonVersions lists the interpreter major versions an environment may target.
var SupportedPythonVersions = []int{2, 3}

// Source is a single content-addressed package artifact.
type Source struct {
	// URL is the remote fetch location of the wheel.
	URL string `json:"url,omitempty"`

	// File identifies a wheel vendored in the local wheels package.
	File string `json:"file,omitempty"`

	// SHA256 is the content hash used to verify a remote fetch.
	SHA256 string `json:"sha256,omitempty"`
}

// IsLocal reports whether the source refers to a locally vendored wheel.
func (s Source) IsLocal() bool {
	if s.URL == "" {
		return s.File != ""
	}
	u, err := url.Parse(s.URL)
	return err == nil && u.Scheme == "file"
}

// Equal reports whether two sources have the same provenance.
func (s Source) Equal(other Source) bool {
	return s == other
}

// Requirement is one resolved package within one environment.
type Requirement struct {
	Version      string
	IsDirect     bool
	Source       string
	Dependencies []string
	Extras       []string
}

// EnvironmentKey identifies an interpreter version and platform combination.
type EnvironmentKey struct {
	SysPlatform   string
	PythonVersion int
}

// CurrentEnvironment returns the key of the host platform for the given interpreter version.
func CurrentEnvironment(pythonVersion int) EnvironmentKey {
	return EnvironmentKey{
		SysPlatform:   HostPlatform(),
		PythonVersion: pythonVersion,
	}
}

// HostPlatform returns the interpreter-style platform tag of the running host.
func HostPlatform() string {
	switch runtime.GOOS {
	case "windows":
		return "win32"
	default:
		return runtime.GOOS
	}
}

// Name returns the lock file key of the environment, e.g. "linux_py3".
func (k EnvironmentKey) Name() string {
	return fmt.Sprintf("%s_py%d", k.SysPlatform, k.PythonVersion)
}

// Validate checks that the key names a supported interpreter on a known platform.
func (k EnvironmentKey) Validate() error {
	if k.SysPlatform == "" {
		return zerr.With(ErrMissingField, "field", "sys_platform")
	}
	return ValidatePythonVersion(k.PythonVersion)
}

// ValidatePythonVersion checks v against SupportedPythonVersions.
func ValidatePythonVersion(v int) error {
	if !slices.Contains(SupportedPythonVersions, v) {
		return zerr.With(ErrInvalidPythonVersion, "python_version", v)
	}
	return nil
}

// Environment carries the requirement set resolved for one environment.
// Two environments are the same environment when their keys are equal.
type Environment struct {
	SysPlatform   string
	PythonVersion int
	Requirements  map[string]Requirement
}

// Key returns the identity of the environment.
func (e Environment) Key() EnvironmentKey {
	return EnvironmentKey{SysPlatform: e.SysPlatform, PythonVersion: e.PythonVersion}
}

// LockFile is the root aggregate of the lock model.
type LockFile struct {
	Environments       map[string]Environment
	Sources            map[string]Source
	LocalWheelsPackage string
}

// NewLockFile returns an empty lock file.
func NewLockFile() *LockFile {
	return &LockFile{
		Environments: make(map[string]Environment),
		Sources:      make(map[string]Source),
	}
}

// EnvironmentNames returns the environment names in sorted order.
func (l *LockFile) EnvironmentNames() []string {
	return slices.Sorted(maps.Keys(l.Environments))
}

// SourceNames returns the source names in sorted order.
func (l *LockFile) SourceNames() []string {
	return slices.Sorted(maps.Keys(l.Sources))
}

// RequirementsFor returns the requirements locked for the given environment, if any.
func (l *LockFile) RequirementsFor(key EnvironmentKey) map[string]Requirement {
	env, ok := l.Environments[key.Name()]
	if !ok {
		return nil
	}
	return env.Requirements
}

// ReferencedSources returns the set of source names referenced by any requirement.
func (l *LockFile) ReferencedSources() map[string]struct{} {
	used := make(map[string]struct{})
	for _, env := range l.Environments {
		for _, req := range env.Requirements {
			used[req.Source] = struct{}{}
		}
	}
	return used
}

// UnpinnedSources returns the names of remote sources that carry no content
// hash, in sorted order.
func (l *LockFile) UnpinnedSources() []string {
	var names []string
	for _, name := range l.SourceNames() {
		src := l.Sources[name]
		if !src.IsLocal() && src.SHA256 == "" {
			names = append(names, name)
		}
	}
	return names
}

// PurgeUnusedSources drops every source not referenced by a requirement.
func (l *LockFile) PurgeUnusedSources() {
	used := l.ReferencedSources()
	maps.DeleteFunc(l.Sources, func(name string, _ Source) bool {
		_, ok := used[name]
		return !ok
	})
}

// Validate checks the structural invariants of the lock file.
func (l *LockFile) Validate() error {
	for _, name := range l.SourceNames() {
		src := l.Sources[name]
		if src.URL == "" && src.File == "" {
			return zerr.With(ErrInvalidSource, "source", name)
		}
	}

	for _, envName := range l.EnvironmentNames() {
		env := l.Environments[envName]
		if err := env.Key().Validate(); err != nil {
			return zerr.With(err, "environment", envName)
		}
		if env.Key().Name() != envName {
			err := zerr.With(ErrEnvironmentNameMismatch, "environment", envName)
			return zerr.With(err, "expected", env.Key().Name())
		}

		for _, pkg := range slices.Sorted(maps.Keys(env.Requirements)) {
			if err := l.validateRequirement(pkg, env.Requirements[pkg]); err != nil {
				return zerr.With(err, "environment", envName)
			}
		}
	}
	return nil
}

func (l *LockFile) validateRequirement(pkg string, req Requirement) error {
	if req.Version == "" {
		err := zerr.With(ErrMissingField, "field", "version")
		return zerr.With(err, "package", pkg)
	}
	if req.Source == "" {
		err := zerr.With(ErrMissingField, "field", "source")
		return zerr.With(err, "package", pkg)
	}
	if _, ok := l.Sources[req.Source]; !ok {
		err := zerr.With(ErrUnknownSource, "source", req.Source)
		return zerr.With(err, "package", pkg)
	}
	return nil
}
