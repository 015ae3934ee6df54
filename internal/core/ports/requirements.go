package ports

import "go.trai.ch/pipgen/internal/core/domain"

// RequirementsParser reads requirements files.
//
//go:generate go run go.uber.org/mock/mockgen -source=requirements.go -destination=mocks/mock_requirements.go -package=mocks
type RequirementsParser interface {
	// Parse returns the direct package requests and resolver options declared
	// in the file at path, following nested includes.
	Parse(path string) (*domain.RequirementSet, error)
}
