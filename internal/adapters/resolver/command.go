package resolver

import (
	"bytes"
	"context"
	"errors"
	"os/exec"
	"strings"

	"go.trai.ch/pipgen/internal/core/domain"
	"go.trai.ch/pipgen/internal/core/ports"
	"go.trai.ch/zerr"
)

var _ ports.Resolver = (*CommandResolver)(nil)

// CommandResolver runs the resolution engine as a subprocess. The request is
// written to its stdin and the response is read from its stdout; stderr is
// forwarded to the debug log.
type CommandResolver struct {
	command []string
	dir     string
	logger  ports.Logger
}

// NewCommandResolver creates a resolver running command in dir.
func NewCommandResolver(command []string, dir string, logger ports.Logger) *CommandResolver {
	return &CommandResolver{command: command, dir: dir, logger: logger}
}

// Resolve runs the engine once for env.
func (r *CommandResolver) Resolve(
	ctx context.Context,
	env domain.EnvironmentKey,
	set domain.RequirementSet,
) ([]domain.ResolvedRequirement, error) {
	if len(r.command) == 0 {
		return nil, domain.ErrResolverNotConfigured
	}

	input, err := encodeRequest(env, set)
	if err != nil {
		return nil, err
	}

	r.logger.Debug("running resolver: " + strings.Join(r.command, " "))

	stderr := &logWriter{logger: r.logger, prefix: "resolver: "}
	var stdout bytes.Buffer

	cmd := exec.CommandContext(ctx, r.command[0], r.command[1:]...) //nolint:gosec // user provided command
	cmd.Dir = r.dir
	cmd.Stdin = bytes.NewReader(input)
	cmd.Stdout = &stdout
	cmd.Stderr = stderr

	runErr := cmd.Run()
	_ = stderr.Close()

	if ctxErr := ctx.Err(); ctxErr != nil {
		return nil, zerr.Wrap(ctxErr, domain.ErrResolutionFailed.Error())
	}

	resolved, decodeErr := decodeResponse(stdout.Bytes())
	if runErr != nil {
		// A failing engine still reports which packages it could not handle.
		var resErr *domain.ResolutionError
		if errors.As(decodeErr, &resErr) {
			return nil, resErr
		}
		err := zerr.Wrap(runErr, domain.ErrResolutionFailed.Error())
		return nil, zerr.With(err, "command", strings.Join(r.command, " "))
	}
	if decodeErr != nil {
		return nil, zerr.With(decodeErr, "command", strings.Join(r.command, " "))
	}
	return resolved, nil
}
