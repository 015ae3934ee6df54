package domain

import (
	"maps"
	"slices"
	"strings"
)

// PackageRequest asks the resolution engine for one package.
type PackageRequest struct {
	// Name is the distribution name as written by the user.
	Name string

	// Extras lists the optional features to activate.
	Extras []string

	// Specifier is the version constraint, e.g. ">=1.0,<2" or "==1.4.2".
	Specifier string

	// Marker is an optional environment marker, kept verbatim.
	Marker string

	// IsDirect marks packages the user asked for explicitly.
	IsDirect bool

	// Origin names where the request came from, e.g. a requirements file or "lock file".
	Origin string
}

// String renders the request in requirement specifier syntax.
func (r PackageRequest) String() string {
	var b strings.Builder
	b.WriteString(r.Name)
	if len(r.Extras) > 0 {
		b.WriteString("[" + strings.Join(r.Extras, ",") + "]")
	}
	b.WriteString(r.Specifier)
	if r.Marker != "" {
		b.WriteString("; " + r.Marker)
	}
	return b.String()
}

// RequirementSet is the input handed to the resolution engine for one run.
type RequirementSet struct {
	// Requests are the packages to resolve.
	Requests []PackageRequest

	// Options are engine options found in requirements files, e.g. "--index-url <url>".
	Options []string
}

// LockedRequestOrigin is the origin recorded for requests pinned from the lock file.
const LockedRequestOrigin = "lock file"

// LockedRequests turns the requirements locked for key into pinned requests,
// skipping every package named in update (compared by canonical name).
func LockedRequests(lf *LockFile, key EnvironmentKey, update []string) []PackageRequest {
	skip := make(map[string]struct{}, len(update))
	for _, name := range update {
		skip[CanonicalizeName(name)] = struct{}{}
	}

	locked := lf.RequirementsFor(key)
	requests := make([]PackageRequest, 0, len(locked))
	for _, name := range slices.Sorted(maps.Keys(locked)) {
		if _, ok := skip[CanonicalizeName(name)]; ok {
			continue
		}
		req := locked[name]
		requests = append(requests, PackageRequest{
			Name:      name,
			Extras:    SortedSet(req.Extras),
			Specifier: "==" + req.Version,
			IsDirect:  req.IsDirect,
			Origin:    LockedRequestOrigin,
		})
	}
	return requests
}

// Condense merges requests for the same package (by canonical name) into one:
// specifiers are intersected by joining them, extras are unioned, and the
// result is direct when any member is. The first request's name, marker and
// origin are kept. Output is sorted by canonical name.
func Condense(requests []PackageRequest) []PackageRequest {
	groups := make(map[string]*PackageRequest)
	for _, req := range requests {
		key := CanonicalizeName(req.Name)
		group, ok := groups[key]
		if !ok {
			merged := req
			merged.Extras = SortedSet(req.Extras)
			groups[key] = &merged
			continue
		}
		group.Specifier = joinSpecifiers(group.Specifier, req.Specifier)
		group.Extras = SortedSet(append(slices.Clone(group.Extras), req.Extras...))
		group.IsDirect = group.IsDirect || req.IsDirect
		if group.Marker == "" {
			group.Marker = req.Marker
		}
	}

	out := make([]PackageRequest, 0, len(groups))
	for _, key := range slices.Sorted(maps.Keys(groups)) {
		out = append(out, *groups[key])
	}
	return out
}

func joinSpecifiers(a, b string) string {
	switch {
	case a == "":
		return b
	case b == "", a == b:
		return a
	default:
		return a + "," + b
	}
}
