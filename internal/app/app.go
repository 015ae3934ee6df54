// Package app implements the application layer for pipgen.
package app

import (
	"context"
	"fmt"
	"path/filepath"

	"go.trai.ch/pipgen/internal/core/domain"
	"go.trai.ch/pipgen/internal/core/ports"
	"go.trai.ch/pipgen/internal/engine/compiler"
	"go.trai.ch/pipgen/internal/engine/merge"
	"go.trai.ch/pipgen/internal/engine/tree"
	"go.trai.ch/zerr"
)

// App represents the main application logic.
type App struct {
	configLoader ports.ConfigLoader
	lockStore    ports.LockStore
	parser       ports.RequirementsParser
	resolvers    ports.ResolverProvider
	merger       *merge.Merger
	output       ports.OutputWriter
	hasher       ports.Hasher
	logger       ports.Logger
}

// New creates a new App instance.
func New(
	loader ports.ConfigLoader,
	store ports.LockStore,
	parser ports.RequirementsParser,
	resolvers ports.ResolverProvider,
	merger *merge.Merger,
	output ports.OutputWriter,
	hasher ports.Hasher,
	log ports.Logger,
) *App {
	return &App{
		configLoader: loader,
		lockStore:    store,
		parser:       parser,
		resolvers:    resolvers,
		merger:       merger,
		output:       output,
		hasher:       hasher,
		logger:       log,
	}
}

// LockOptions configuration for the Lock method. Zero values keep the
// configured setting.
type LockOptions struct {
	Requirements       []string
	LockFile           string
	PythonVersion      int
	Platform           string
	Resolved           string
	LocalWheelsPackage string
	UpdateAll          bool
	Update             []string
}

// Lock resolves the requirements for the current environment and merges the
// result into the lock file. Other environments are left as they are.
func (a *App) Lock(ctx context.Context, opts LockOptions) error {
	// 1. Load the configuration
	cfg, err := a.configLoader.Load(".")
	if err != nil {
		return zerr.Wrap(err, "failed to load configuration")
	}
	if err := applyLockOptions(cfg, opts); err != nil {
		return err
	}
	if len(cfg.Requirements) == 0 {
		return zerr.With(domain.ErrMissingArguments, "argument", "requirements")
	}

	env := cfg.Environment()
	if err := env.Validate(); err != nil {
		return err
	}

	// 2. Serialize runs against the same lock file
	release, err := a.lockStore.Acquire(ctx, cfg.LockFile)
	if err != nil {
		return err
	}
	defer func() {
		if err := release(); err != nil {
			a.logger.Warn("failed to release lock on " + cfg.LockFile + ": " + err.Error())
		}
	}()

	lf, err := a.lockStore.Load(cfg.LockFile)
	if err != nil {
		return err
	}

	// 3. Collect the requests
	set, err := a.collectRequests(cfg, lf, env, opts)
	if err != nil {
		return err
	}

	// 4. Resolve and merge
	resolver, err := a.resolvers.ForConfig(cfg.Resolver)
	if err != nil {
		return err
	}

	a.logger.Info(fmt.Sprintf("resolving %d requirements for %s", len(set.Requests), env.Name()))
	resolved, err := resolver.Resolve(ctx, env, set)
	if err != nil {
		return err
	}

	updated, err := a.merger.UpdateForCurrentEnvironment(lf, env, resolved)
	if err != nil {
		return err
	}
	if cfg.LocalWheelsPackage != "" {
		updated.LocalWheelsPackage = cfg.LocalWheelsPackage
	}
	if err := updated.Validate(); err != nil {
		return err
	}

	// 5. Persist
	if err := a.lockStore.Dump(updated, cfg.LockFile); err != nil {
		return err
	}

	a.logger.Info(fmt.Sprintf("locked %d packages for %s in %s", len(resolved), env.Name(), cfg.LockFile))
	return nil
}

func applyLockOptions(cfg *domain.Config, opts LockOptions) error {
	if len(opts.Requirements) > 0 {
		cfg.Requirements = opts.Requirements
	}
	if opts.LockFile != "" {
		cfg.LockFile = opts.LockFile
	}
	if opts.PythonVersion != 0 {
		if err := domain.ValidatePythonVersion(opts.PythonVersion); err != nil {
			return err
		}
		cfg.PythonVersion = opts.PythonVersion
	}
	if opts.Platform != "" {
		cfg.Platform = opts.Platform
	}
	if opts.Resolved != "" {
		cfg.Resolver.ResolvedFile = opts.Resolved
	}
	if opts.LocalWheelsPackage != "" {
		cfg.LocalWheelsPackage = opts.LocalWheelsPackage
	}
	return nil
}

// collectRequests combines the direct requests of every requirements file
// with the pins of the current lock file and condenses them per package.
func (a *App) collectRequests(
	cfg *domain.Config,
	lf *domain.LockFile,
	env domain.EnvironmentKey,
	opts LockOptions,
) (domain.RequirementSet, error) {
	var set domain.RequirementSet
	for _, path := range cfg.Requirements {
		parsed, err := a.parser.Parse(path)
		if err != nil {
			return domain.RequirementSet{}, err
		}
		set.Requests = append(set.Requests, parsed.Requests...)
		set.Options = append(set.Options, parsed.Options...)
	}

	if opts.UpdateAll {
		a.logger.Debug("ignoring locked versions for " + env.Name())
	} else {
		locked := domain.LockedRequests(lf, env, opts.Update)
		a.logger.Debug(fmt.Sprintf("pinning %d locked packages for %s", len(locked), env.Name()))
		set.Requests = append(set.Requests, locked...)
	}

	set.Requests = domain.Condense(set.Requests)
	return set, nil
}

// GenerateOptions configuration for the Generate method. Zero values keep
// the configured setting.
type GenerateOptions struct {
	LockFile      string
	BzlFile       string
	RepositoryDir string
	RulesRepo     string
	Force         bool
}

// Generate renders the build description of the lock file. Nothing is
// written when the output of the previous run is identical, unless
// opts.Force is set.
func (a *App) Generate(_ context.Context, opts GenerateOptions) error {
	// 1. Load the configuration
	cfg, err := a.configLoader.Load(".")
	if err != nil {
		return zerr.Wrap(err, "failed to load configuration")
	}
	applyGenerateOptions(cfg, opts)
	if cfg.Output.BzlFile == "" {
		return zerr.With(domain.ErrMissingArguments, "argument", "bzl_file")
	}
	if cfg.Output.RepositoryDir == "" {
		return zerr.With(domain.ErrMissingArguments, "argument", "repository_dir")
	}

	lf, err := a.lockStore.Load(cfg.LockFile)
	if err != nil {
		return err
	}
	if len(lf.Environments) == 0 {
		a.logger.Warn("lock file " + cfg.LockFile + " has no environments, no packages will be generated")
	}

	// 2. Compile
	rt, err := tree.Build(lf)
	if err != nil {
		return err
	}
	c := compiler.New(cfg.RulesRepo)
	packages, err := c.Compile(rt)
	if err != nil {
		return err
	}
	rules, err := c.SourceRules(lf)
	if err != nil {
		return err
	}
	for _, name := range lf.UnpinnedSources() {
		a.logger.Warn("source " + name + " has no sha256, its download will not be verified")
	}

	// 3. Skip unchanged output
	bzlPath, err := filepath.Abs(cfg.Output.BzlFile)
	if err != nil {
		return zerr.With(zerr.Wrap(err, domain.ErrOutputWriteFailed.Error()), "path", cfg.Output.BzlFile)
	}
	stamp := a.stampFor(cfg.RulesRepo, bzlPath, rules, packages)
	if !opts.Force {
		current, err := a.output.UpToDate(cfg.Output.BzlFile, rules, cfg.Output.RepositoryDir, stamp)
		if err != nil {
			return err
		}
		if current {
			a.logger.Info("generated files in " + cfg.Output.RepositoryDir + " are up to date")
			return nil
		}
	}

	// 4. Write; the source rules only change once the repository is in place
	if err := a.output.WriteRepository(cfg.Output.RepositoryDir, packages, stamp); err != nil {
		return err
	}
	if err := a.output.WriteSourceRules(cfg.Output.BzlFile, rules); err != nil {
		return err
	}

	a.logger.Info(fmt.Sprintf("generated %d packages in %s", len(packages), cfg.Output.RepositoryDir))
	return nil
}

func applyGenerateOptions(cfg *domain.Config, opts GenerateOptions) {
	if opts.LockFile != "" {
		cfg.LockFile = opts.LockFile
	}
	if opts.BzlFile != "" {
		cfg.Output.BzlFile = opts.BzlFile
	}
	if opts.RepositoryDir != "" {
		cfg.Output.RepositoryDir = opts.RepositoryDir
	}
	if opts.RulesRepo != "" {
		cfg.RulesRepo = opts.RulesRepo
	}
}

// stampFor fingerprints everything a run writes.
func (a *App) stampFor(rulesRepo, bzlPath string, rules []byte, packages []domain.GeneratedPackage) domain.Stamp {
	parts := make([][]byte, 0, 2+3*len(packages))
	parts = append(parts, []byte(rulesRepo), rules)

	names := make([]string, 0, len(packages))
	for _, pkg := range packages {
		names = append(names, pkg.Name)
		parts = append(parts, []byte(pkg.Name), pkg.BuildFile, pkg.ReposFile)
	}

	return domain.Stamp{Digest: a.hasher.Digest(parts...), BzlFile: bzlPath, Packages: names}
}

// logConfigurer is implemented by loggers whose format can change at runtime.
type logConfigurer interface {
	SetJSON(enable bool)
	SetVerbose(enable bool)
}

// ConfigureLogging switches the logger to JSON output and/or debug verbosity.
func (a *App) ConfigureLogging(jsonLogs, verbose bool) {
	if l, ok := a.logger.(logConfigurer); ok {
		l.SetJSON(jsonLogs)
		l.SetVerbose(verbose)
	}
}
