package ports

import "go.trai.ch/pipgen/internal/core/domain"

// OutputWriter writes the generated build description.
//
//go:generate go run go.uber.org/mock/mockgen -source=output.go -destination=mocks/mock_output.go -package=mocks
type OutputWriter interface {
	// WriteSourceRules replaces the file registering all source rules.
	WriteSourceRules(path string, content []byte) error

	// WriteRepository replaces the generated packages under dir and records stamp.
	WriteRepository(dir string, packages []domain.GeneratedPackage, stamp domain.Stamp) error

	// UpToDate reports whether the files on disk already match stamp and the
	// source rules at bzlPath hold exactly rules.
	UpToDate(bzlPath string, rules []byte, dir string, stamp domain.Stamp) (bool, error)
}
