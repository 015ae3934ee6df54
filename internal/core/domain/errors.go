package domain

import "go.trai.ch/zerr"

var (
	// ErrLockFileRead is returned when the lock file exists but cannot be read.
	ErrLockFileRead = zerr.New("failed to read lock file")

	// ErrLockFileParse is returned when the lock file content violates the expected structure.
	ErrLockFileParse = zerr.New("failed to parse lock file")

	// ErrLockFileMarshal is returned when the lock file cannot be serialized.
	ErrLockFileMarshal = zerr.New("failed to marshal lock file")

	// ErrLockFileWrite is returned when the lock file cannot be written.
	ErrLockFileWrite = zerr.New("failed to write lock file")

	// ErrLockFileBusy is returned when another run holds the lock file.
	ErrLockFileBusy = zerr.New("lock file is in use by another run")

	// ErrUnknownSource is returned when a requirement references a source missing from the source table.
	ErrUnknownSource = zerr.New("requirement references unknown source")

	// ErrMissingField is returned when a required field is absent or empty.
	ErrMissingField = zerr.New("missing required field")

	// ErrInvalidPythonVersion is returned when an interpreter major version is not supported.
	ErrInvalidPythonVersion = zerr.New("unsupported python version, expected 2 or 3")

	// ErrEnvironmentNameMismatch is returned when an environment is stored under a name that does not match its tag.
	ErrEnvironmentNameMismatch = zerr.New("environment name does not match platform and python version")

	// ErrInvalidResolvedRequirement is returned when the resolution engine reports a malformed record.
	ErrInvalidResolvedRequirement = zerr.New("invalid resolved requirement")

	// ErrDuplicateRequirement is returned when two records normalize to the same package name.
	ErrDuplicateRequirement = zerr.New("duplicate requirement")

	// ErrTreeCellConflict is returned when two requirements land in the same version/platform cell.
	ErrTreeCellConflict = zerr.New("conflicting requirements for the same environment")

	// ErrLocalWheelsPackageUnset is returned when a local wheel is locked without a local wheels package.
	ErrLocalWheelsPackageUnset = zerr.New("local wheel source requires local_wheels_package")

	// ErrInvalidSource is returned when a source has neither a url nor a file.
	ErrInvalidSource = zerr.New("source has neither url nor file")

	// ErrResolutionFailed is returned when the resolution engine cannot be run or its output cannot be read.
	ErrResolutionFailed = zerr.New("dependency resolution failed")

	// ErrResolverNotConfigured is returned when no resolver command or resolved file is configured.
	ErrResolverNotConfigured = zerr.New("no resolver command or resolved file configured")

	// ErrRequirementsRead is returned when a requirements file cannot be read.
	ErrRequirementsRead = zerr.New("failed to read requirements file")

	// ErrRequirementsParse is returned when a requirements file line cannot be parsed.
	ErrRequirementsParse = zerr.New("failed to parse requirements file")

	// ErrConfigReadFailed is returned when the config file cannot be read.
	ErrConfigReadFailed = zerr.New("failed to read config file")

	// ErrConfigParseFailed is returned when the config file cannot be parsed.
	ErrConfigParseFailed = zerr.New("failed to parse config file")

	// ErrOutputWriteFailed is returned when generated files cannot be written.
	ErrOutputWriteFailed = zerr.New("failed to write generated files")

	// ErrStampReadFailed is returned when the generation stamp exists but cannot be decoded.
	ErrStampReadFailed = zerr.New("failed to read generation stamp")

	// ErrMissingArguments is returned when a command is invoked without its required inputs.
	ErrMissingArguments = zerr.New("missing required arguments")
)
