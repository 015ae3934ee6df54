// Package config provides the configuration loader for pipgen.
package config

import (
	"bytes"
	"errors"
	"io"
	"os"
	"path/filepath"

	"go.trai.ch/pipgen/internal/core/domain"
	"go.trai.ch/pipgen/internal/core/ports"
	"go.trai.ch/zerr"
	"gopkg.in/yaml.v3"
)

const defaultPythonVersion = 3

var _ ports.ConfigLoader = (*Loader)(nil)

// Loader implements ports.ConfigLoader using a YAML file.
type Loader struct {
	Logger ports.Logger
}

// NewLoader creates a new Loader with the given logger.
func NewLoader(logger ports.Logger) *Loader {
	return &Loader{Logger: logger}
}

// Load finds pipgen.yaml in cwd or one of its parents and returns the
// configuration it describes. Without a configuration file the defaults are
// returned, rooted at cwd.
func (l *Loader) Load(cwd string) (*domain.Config, error) {
	cwd, err := filepath.Abs(cwd)
	if err != nil {
		return nil, zerr.With(zerr.Wrap(err, domain.ErrConfigReadFailed.Error()), "cwd", cwd)
	}

	configPath, found := findConfiguration(cwd)
	if !found {
		l.Logger.Debug("no " + domain.ConfigFileName + " found, using defaults")
		return buildConfig(cwd, &Pipfile{})
	}

	l.Logger.Debug("loading configuration from " + configPath)

	var pipfile Pipfile
	if err := readAndUnmarshalYAML(configPath, &pipfile); err != nil {
		return nil, zerr.With(err, "path", configPath)
	}

	cfg, err := buildConfig(filepath.Dir(configPath), &pipfile)
	if err != nil {
		return nil, zerr.With(err, "path", configPath)
	}
	return cfg, nil
}

func findConfiguration(cwd string) (string, bool) {
	currentDir := cwd
	for {
		configPath := filepath.Join(currentDir, domain.ConfigFileName)
		if info, err := os.Stat(configPath); err == nil && !info.IsDir() {
			return configPath, true
		}

		parentDir := filepath.Dir(currentDir)
		if parentDir == currentDir {
			return "", false
		}
		currentDir = parentDir
	}
}

func buildConfig(root string, p *Pipfile) (*domain.Config, error) {
	cfg := &domain.Config{
		Root:               root,
		LockFile:           resolvePath(root, p.LockFile),
		LocalWheelsPackage: p.LocalWheelsPackage,
		RulesRepo:          p.RulesRepo,
		PythonVersion:      p.PythonVersion,
		Platform:           p.Platform,
		Resolver: domain.ResolverConfig{
			Command:      p.Resolver.Command,
			ResolvedFile: resolvePath(root, p.Resolver.ResolvedFile),
			Dir:          root,
		},
		Output: domain.OutputConfig{
			BzlFile:       resolvePath(root, p.Output.BzlFile),
			RepositoryDir: resolvePath(root, p.Output.RepositoryDir),
		},
	}

	if cfg.LockFile == "" {
		cfg.LockFile = filepath.Join(root, domain.DefaultLockFileName)
	}
	if cfg.RulesRepo == "" {
		cfg.RulesRepo = domain.DefaultRulesRepo
	}
	if cfg.PythonVersion == 0 {
		cfg.PythonVersion = defaultPythonVersion
	}
	if err := domain.ValidatePythonVersion(cfg.PythonVersion); err != nil {
		return nil, err
	}

	cfg.Requirements = make([]string, 0, len(p.Requirements))
	for _, req := range p.Requirements {
		cfg.Requirements = append(cfg.Requirements, resolvePath(root, req))
	}

	return cfg, nil
}

// resolvePath makes a configured path absolute relative to root. Empty stays empty.
func resolvePath(root, configured string) string {
	if configured == "" {
		return ""
	}
	if filepath.IsAbs(configured) {
		return filepath.Clean(configured)
	}
	return filepath.Clean(filepath.Join(root, configured))
}

// readAndUnmarshalYAML reads a YAML file and strictly decodes it into target.
func readAndUnmarshalYAML[T any](configPath string, target *T) error {
	// #nosec G304 -- configPath is discovered by the loader
	content, err := os.ReadFile(configPath)
	if err != nil {
		return zerr.Wrap(err, domain.ErrConfigReadFailed.Error())
	}

	dec := yaml.NewDecoder(bytes.NewReader(content))
	dec.KnownFields(true)
	if err := dec.Decode(target); err != nil && !errors.Is(err, io.EOF) {
		return zerr.Wrap(err, domain.ErrConfigParseFailed.Error())
	}

	return nil
}
