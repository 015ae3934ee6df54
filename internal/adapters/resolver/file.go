package resolver

import (
	"context"
	"errors"
	"os"

	"go.trai.ch/pipgen/internal/core/domain"
	"go.trai.ch/pipgen/internal/core/ports"
	"go.trai.ch/zerr"
)

var _ ports.Resolver = (*FileResolver)(nil)

// FileResolver replays a resolution computed ahead of time. The requests are
// not consulted; the document is taken as the complete resolution of env.
type FileResolver struct {
	path   string
	logger ports.Logger
}

// NewFileResolver creates a resolver reading the response document at path.
func NewFileResolver(path string, logger ports.Logger) *FileResolver {
	return &FileResolver{path: path, logger: logger}
}

// Resolve reads the document.
func (r *FileResolver) Resolve(
	ctx context.Context,
	env domain.EnvironmentKey,
	set domain.RequirementSet,
) ([]domain.ResolvedRequirement, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	r.logger.Debug("reading resolution for " + env.Name() + " from " + r.path)
	if len(set.Requests) > 0 {
		r.logger.Debug("pre-computed resolution ignores the collected requests")
	}

	//nolint:gosec // Path is provided by the user on purpose
	data, err := os.ReadFile(r.path)
	if err != nil {
		return nil, zerr.With(zerr.Wrap(err, domain.ErrResolutionFailed.Error()), "path", r.path)
	}

	resolved, err := decodeResponse(data)
	if err != nil {
		var resErr *domain.ResolutionError
		if errors.As(err, &resErr) {
			return nil, resErr
		}
		return nil, zerr.With(err, "path", r.path)
	}
	return resolved, nil
}
