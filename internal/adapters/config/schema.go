package config

// Pipfile represents the structure of the pipgen.yaml configuration file.
type Pipfile struct {
	LockFile           string      `yaml:"lock_file"`
	Requirements       []string    `yaml:"requirements"`
	LocalWheelsPackage string      `yaml:"local_wheels_package"`
	RulesRepo          string      `yaml:"rules_repo"`
	PythonVersion      int         `yaml:"python_version"`
	Platform           string      `yaml:"platform"`
	Resolver           ResolverDTO `yaml:"resolver"`
	Output             OutputDTO   `yaml:"output"`
}

// ResolverDTO represents the resolver section of the configuration.
type ResolverDTO struct {
	Command      []string `yaml:"command"`
	ResolvedFile string   `yaml:"resolved_file"`
}

// OutputDTO represents the output section of the configuration.
type OutputDTO struct {
	BzlFile       string `yaml:"bzl_file"`
	RepositoryDir string `yaml:"repository_dir"`
}
