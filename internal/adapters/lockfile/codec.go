package lockfile

import (
	"bytes"
	"encoding/json"
	"errors"
	"io"
	"maps"
	"slices"

	"go.trai.ch/pipgen/internal/core/domain"
	"go.trai.ch/zerr"
)

// The wire types declare their fields in alphabetical order so that struct
// fields, like map keys, are emitted sorted.

type lockFileDTO struct {
	Environments       map[string]environmentDTO `json:"environments"`
	LocalWheelsPackage *string                   `json:"local_wheels_package"`
	Sources            map[string]sourceDTO      `json:"sources"`
}

type environmentDTO struct {
	PythonVersion *int                      `json:"python_version"`
	Requirements  map[string]requirementDTO `json:"requirements"`
	SysPlatform   *string                   `json:"sys_platform"`
}

type requirementDTO struct {
	Dependencies []string `json:"dependencies"`
	Extras       []string `json:"extras"`
	IsDirect     *bool    `json:"is_direct"`
	Source       *string  `json:"source"`
	Version      *string  `json:"version"`
}

type sourceDTO struct {
	File   string `json:"file,omitempty"`
	SHA256 string `json:"sha256,omitempty"`
	URL    string `json:"url,omitempty"`
}

// Marshal serializes the lock file canonically: keys sorted, collection
// fields sorted and deduplicated, two-space indentation, trailing newline.
func Marshal(lf *domain.LockFile) ([]byte, error) {
	dto := lockFileDTO{
		Environments: make(map[string]environmentDTO, len(lf.Environments)),
		Sources:      make(map[string]sourceDTO, len(lf.Sources)),
	}
	if lf.LocalWheelsPackage != "" {
		dto.LocalWheelsPackage = &lf.LocalWheelsPackage
	}

	for name, env := range lf.Environments {
		requirements := make(map[string]requirementDTO, len(env.Requirements))
		for pkg, req := range env.Requirements {
			requirements[pkg] = requirementDTO{
				Dependencies: domain.SortedSet(req.Dependencies),
				Extras:       domain.SortedSet(req.Extras),
				IsDirect:     &req.IsDirect,
				Source:       &req.Source,
				Version:      &req.Version,
			}
		}
		dto.Environments[name] = environmentDTO{
			PythonVersion: &env.PythonVersion,
			Requirements:  requirements,
			SysPlatform:   &env.SysPlatform,
		}
	}

	for name, src := range lf.Sources {
		dto.Sources[name] = sourceDTO{File: src.File, SHA256: src.SHA256, URL: src.URL}
	}

	var buf bytes.Buffer
	enc := json.NewEncoder(&buf)
	enc.SetIndent("", "  ")
	enc.SetEscapeHTML(false)
	if err := enc.Encode(dto); err != nil {
		return nil, zerr.Wrap(err, domain.ErrLockFileMarshal.Error())
	}
	return buf.Bytes(), nil
}

// Unmarshal parses and validates a lock file. Unknown fields, wrong field
// types and missing required fields are rejected.
func Unmarshal(data []byte) (*domain.LockFile, error) {
	var dto lockFileDTO
	dec := json.NewDecoder(bytes.NewReader(data))
	dec.DisallowUnknownFields()
	if err := dec.Decode(&dto); err != nil {
		return nil, zerr.Wrap(err, domain.ErrLockFileParse.Error())
	}
	if err := dec.Decode(&struct{}{}); !errors.Is(err, io.EOF) {
		return nil, zerr.Wrap(zerr.New("unexpected content after lock file"), domain.ErrLockFileParse.Error())
	}

	lf := domain.NewLockFile()
	if dto.LocalWheelsPackage != nil {
		lf.LocalWheelsPackage = *dto.LocalWheelsPackage
	}

	for _, name := range slices.Sorted(maps.Keys(dto.Environments)) {
		env, err := convertEnvironment(dto.Environments[name])
		if err != nil {
			return nil, zerr.With(err, "environment", name)
		}
		lf.Environments[name] = env
	}

	for name, src := range dto.Sources {
		lf.Sources[name] = domain.Source{URL: src.URL, File: src.File, SHA256: src.SHA256}
	}

	if err := lf.Validate(); err != nil {
		return nil, zerr.Wrap(err, domain.ErrLockFileParse.Error())
	}
	return lf, nil
}

func convertEnvironment(dto environmentDTO) (domain.Environment, error) {
	if dto.SysPlatform == nil {
		return domain.Environment{}, missingField("sys_platform")
	}
	if dto.PythonVersion == nil {
		return domain.Environment{}, missingField("python_version")
	}

	env := domain.Environment{
		SysPlatform:   *dto.SysPlatform,
		PythonVersion: *dto.PythonVersion,
		Requirements:  make(map[string]domain.Requirement, len(dto.Requirements)),
	}

	for _, pkg := range slices.Sorted(maps.Keys(dto.Requirements)) {
		req, err := convertRequirement(dto.Requirements[pkg])
		if err != nil {
			return domain.Environment{}, zerr.With(err, "package", pkg)
		}
		env.Requirements[pkg] = req
	}
	return env, nil
}

func convertRequirement(dto requirementDTO) (domain.Requirement, error) {
	switch {
	case dto.Version == nil:
		return domain.Requirement{}, missingField("version")
	case dto.IsDirect == nil:
		return domain.Requirement{}, missingField("is_direct")
	case dto.Source == nil:
		return domain.Requirement{}, missingField("source")
	}
	return domain.Requirement{
		Version:      *dto.Version,
		IsDirect:     *dto.IsDirect,
		Source:       *dto.Source,
		Dependencies: domain.SortedSet(dto.Dependencies),
		Extras:       domain.SortedSet(dto.Extras),
	}, nil
}

func missingField(field string) error {
	err := zerr.With(domain.ErrMissingField, "field", field)
	return zerr.Wrap(err, domain.ErrLockFileParse.Error())
}
