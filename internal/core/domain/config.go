package domain

// Config is the resolved project configuration.
type Config struct {
	// Root is the directory the configuration was loaded from.
	Root string

	// LockFile is the path of the lock file.
	LockFile string

	// Requirements lists the requirements files declaring direct dependencies.
	Requirements []string

	// LocalWheelsPackage is the build package holding vendored wheels.
	LocalWheelsPackage string

	// RulesRepo is the repository providing the wheel rules and platform definitions.
	RulesRepo string

	// PythonVersion is the interpreter major version the resolution runs under.
	PythonVersion int

	// Platform overrides the host platform tag.
	Platform string

	Resolver ResolverConfig
	Output   OutputConfig
}

// ResolverConfig selects how the resolution engine is reached.
type ResolverConfig struct {
	// Command is the resolver program and its arguments.
	Command []string

	// ResolvedFile is a pre-computed resolution document used instead of Command.
	ResolvedFile string

	// Dir is the working directory of Command.
	Dir string
}

// OutputConfig locates the generated build description.
type OutputConfig struct {
	// BzlFile is the file registering all source rules.
	BzlFile string

	// RepositoryDir is the directory receiving one package per requirement.
	RepositoryDir string
}

// Environment returns the key of the environment this configuration resolves for.
func (c *Config) Environment() EnvironmentKey {
	key := CurrentEnvironment(c.PythonVersion)
	if c.Platform != "" {
		key.SysPlatform = c.Platform
	}
	return key
}
