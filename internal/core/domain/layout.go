package domain

const (
	// ConfigFileName is the name of the project configuration file.
	ConfigFileName = "pipgen.yaml"

	// DefaultLockFileName is the lock file used when none is configured.
	DefaultLockFileName = "requirements.lock.json"

	// DefaultRulesRepo is the name of the repository that provides the wheel rules and platforms.
	DefaultRulesRepo = "com_github_pipgen"

	// StampFileName is the name of the generation stamp inside the repository directory.
	StampFileName = ".pipgen-stamp"

	// BuildFileName is the name of the per-package build file.
	BuildFileName = "BUILD"

	// ReposFileName is the name of the per-package file exposing source labels.
	ReposFileName = "repos.bzl"

	// LockFileSuffix is appended to the lock file path to form its advisory lock path.
	LockFileSuffix = ".lock"

	// DirPerm is the default permission for directories (rwxr-x---).
	DirPerm = 0o750

	// FilePerm is the default permission for files (rw-r--r--).
	FilePerm = 0o644
)
