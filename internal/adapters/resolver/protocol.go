// Package resolver connects pipgen to an external dependency resolution engine.
//
// The engine is reached through a small JSON protocol. The request names the
// target environment and the package requests:
//
//	{"environment": {"python_version": 3, "sys_platform": "linux"},
//	 "options": ["--index-url", "https://pypi.org/simple"],
//	 "requirements": [{"name": "six", "requirement": "six==1.16.0", ...}]}
//
// The response lists one record per resolved package, or the packages that
// failed to resolve:
//
//	{"requirements": [{"name": "six", "version": "1.16.0", "url": "...", "sha256": "...",
//	  "is_direct": true, "dependencies": [], "extras": []}],
//	 "failures": []}
//
// Responses may carry comments and trailing commas.
package resolver

import (
	"bytes"
	"encoding/json"
	"errors"
	"io"
	"slices"

	"github.com/tidwall/jsonc"
	"go.trai.ch/pipgen/internal/core/domain"
	"go.trai.ch/zerr"
)

type requestDTO struct {
	Environment  environmentDTO `json:"environment"`
	Options      []string       `json:"options"`
	Requirements []requestedDTO `json:"requirements"`
}

type environmentDTO struct {
	PythonVersion int    `json:"python_version"`
	SysPlatform   string `json:"sys_platform"`
}

type requestedDTO struct {
	Extras      []string `json:"extras"`
	IsDirect    bool     `json:"is_direct"`
	Marker      string   `json:"marker,omitempty"`
	Name        string   `json:"name"`
	Origin      string   `json:"origin,omitempty"`
	Requirement string   `json:"requirement"`
	Specifier   string   `json:"specifier"`
}

type responseDTO struct {
	Failures     []string      `json:"failures"`
	Requirements []resolvedDTO `json:"requirements"`
}

type resolvedDTO struct {
	Dependencies []string `json:"dependencies"`
	Extras       []string `json:"extras"`
	IsDirect     bool     `json:"is_direct"`
	Name         string   `json:"name"`
	Path         string   `json:"path"`
	SHA256       string   `json:"sha256"`
	URL          string   `json:"url"`
	Version      string   `json:"version"`
}

func encodeRequest(env domain.EnvironmentKey, set domain.RequirementSet) ([]byte, error) {
	req := requestDTO{
		Environment: environmentDTO{
			PythonVersion: env.PythonVersion,
			SysPlatform:   env.SysPlatform,
		},
		Options:      slices.Clone(set.Options),
		Requirements: make([]requestedDTO, 0, len(set.Requests)),
	}
	if req.Options == nil {
		req.Options = []string{}
	}
	for _, r := range set.Requests {
		req.Requirements = append(req.Requirements, requestedDTO{
			Extras:      domain.SortedSet(r.Extras),
			IsDirect:    r.IsDirect,
			Marker:      r.Marker,
			Name:        r.Name,
			Origin:      r.Origin,
			Requirement: r.String(),
			Specifier:   r.Specifier,
		})
	}

	data, err := json.Marshal(req)
	if err != nil {
		return nil, zerr.Wrap(err, domain.ErrResolutionFailed.Error())
	}
	return data, nil
}

// decodeResponse converts a response document into resolved records. A
// document listing failures yields a *domain.ResolutionError.
func decodeResponse(data []byte) ([]domain.ResolvedRequirement, error) {
	var resp responseDTO
	dec := json.NewDecoder(bytes.NewReader(jsonc.ToJSON(data)))
	dec.DisallowUnknownFields()
	if err := dec.Decode(&resp); err != nil {
		return nil, zerr.Wrap(err, domain.ErrResolutionFailed.Error())
	}
	if err := dec.Decode(&struct{}{}); !errors.Is(err, io.EOF) {
		return nil, zerr.Wrap(zerr.New("unexpected content after resolver response"), domain.ErrResolutionFailed.Error())
	}

	if len(resp.Failures) > 0 {
		return nil, &domain.ResolutionError{Packages: domain.SortedSet(resp.Failures)}
	}

	resolved := make([]domain.ResolvedRequirement, 0, len(resp.Requirements))
	for _, r := range resp.Requirements {
		resolved = append(resolved, domain.ResolvedRequirement{
			Name:    r.Name,
			Version: r.Version,
			Source: domain.ResolvedSource{
				URL:    r.URL,
				SHA256: r.SHA256,
				Path:   r.Path,
			},
			IsDirect:     r.IsDirect,
			Dependencies: r.Dependencies,
			Extras:       r.Extras,
		})
	}
	return resolved, nil
}
