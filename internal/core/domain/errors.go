package domain

import (
	"context"
	"errors"

	"go.trai.ch/zerr"
)

var (
	// ErrInstallationNotFound is returned when the wrapper names an installation that is not configured.
	ErrInstallationNotFound = zerr.New("installation not found")

	// ErrNodeDeleted is returned when a build runs on a node that no longer exists.
	ErrNodeDeleted = zerr.New("execution node no longer exists")

	// ErrResolutionFailed is returned when an installation cannot be translated for a node or environment.
	ErrResolutionFailed = zerr.New("failed to resolve installation")

	// ErrEmptyInstallationHome is returned when a resolved installation has no home directory.
	ErrEmptyInstallationHome = zerr.New("installation home is empty")

	// ErrLaunchCancelled is returned when a launch is interrupted before the process starts.
	ErrLaunchCancelled = zerr.New("launch cancelled")

	// ErrBaselineEnvironmentFailed is returned when the node's ambient environment cannot be read.
	ErrBaselineEnvironmentFailed = zerr.New("failed to read node environment")

	// ErrEmptyCommand is returned when a launch request carries no command.
	ErrEmptyCommand = zerr.New("no command specified")

	// ErrCommandNotFound is returned when the executable cannot be found on the composed PATH.
	ErrCommandNotFound = zerr.New("command not found")

	// ErrCommandFailed is returned when a launched process exits with a non-zero status.
	ErrCommandFailed = zerr.New("command failed")

	// ErrCommandStartFailed is returned when a process cannot be started.
	ErrCommandStartFailed = zerr.New("failed to start command")

	// ErrConfigNotFound is returned when no configuration file is found walking up from the working directory.
	ErrConfigNotFound = zerr.New("could not find npmwrap.yaml")

	// ErrConfigReadFailed is returned when the config file cannot be read.
	ErrConfigReadFailed = zerr.New("failed to read config file")

	// ErrConfigParseFailed is returned when the config file cannot be parsed.
	ErrConfigParseFailed = zerr.New("failed to parse config file")

	// ErrMissingInstallationName is returned when an installation entry has no name.
	ErrMissingInstallationName = zerr.New("installation name is required")

	// ErrDuplicateInstallation is returned when two installations share a name.
	ErrDuplicateInstallation = zerr.New("duplicate installation name")

	// ErrInvalidToolSpec is returned when a nix spec is not of the form package@version.
	ErrInvalidToolSpec = zerr.New("invalid tool spec, expected package@version")

	// ErrMissingNodeName is returned when a node entry has no name.
	ErrMissingNodeName = zerr.New("node name is required")

	// ErrDuplicateNode is returned when two nodes share a name.
	ErrDuplicateNode = zerr.New("duplicate node name")

	// ErrReservedNodeName is returned when a declared node uses the local node's name.
	ErrReservedNodeName = zerr.New("node name 'built-in' is reserved")

	// ErrInvalidPlatform is returned when a node declares an unknown platform.
	ErrInvalidPlatform = zerr.New("invalid platform, expected 'unix' or 'windows'")

	// ErrNoInstallationSelected is returned when neither the command line nor the config selects an installation.
	ErrNoInstallationSelected = zerr.New("no installation selected")

	// ErrInvalidEnvOverride is returned when a command-line override is not of the form NAME=value.
	ErrInvalidEnvOverride = zerr.New("invalid environment override, expected NAME=value")

	// ErrNixPackageNotFound is returned when a package or version is not found in NixHub.
	ErrNixPackageNotFound = zerr.New("package not found in nixhub")

	// ErrNixAPIRequestFailed is returned when the NixHub API request fails.
	ErrNixAPIRequestFailed = zerr.New("nixhub api request failed")

	// ErrNixCacheWriteFailed is returned when a nix cache file cannot be written.
	ErrNixCacheWriteFailed = zerr.New("failed to write nix cache")

	// ErrNixInstallFailed is returned when nix build fails.
	ErrNixInstallFailed = zerr.New("failed to install nix package")

	// ErrNixBuildOutputInvalid is returned when nix build prints output that cannot be parsed.
	ErrNixBuildOutputInvalid = zerr.New("unexpected nix build output")

	// ErrInstallationCheckFailed is returned when at least one installation fails to resolve during a check.
	ErrInstallationCheckFailed = zerr.New("installation check failed")
)

// FailureKind classifies why a launch could not proceed.
type FailureKind int

const (
	// FailureUnknown is reported for errors that are not launch failures.
	FailureUnknown FailureKind = iota
	// FailureConfiguration means the build is misconfigured: unknown installation or deleted node.
	FailureConfiguration
	// FailureResolution means the installation could not be translated for the node or environment.
	FailureResolution
	// FailureCancelled means the launch was interrupted.
	FailureCancelled
)

// String returns the kind's name.
func (k FailureKind) String() string {
	switch k {
	case FailureConfiguration:
		return "configuration"
	case FailureResolution:
		return "resolution"
	case FailureCancelled:
		return "cancelled"
	default:
		return "unknown"
	}
}

// LaunchError is returned by a decorated launcher when it cannot compose the
// environment. No process has been started when it is returned.
type LaunchError struct {
	Kind FailureKind
	Err  error
}

// NewLaunchError wraps err with the given kind.
func NewLaunchError(kind FailureKind, err error) *LaunchError {
	return &LaunchError{Kind: kind, Err: err}
}

// Error implements error.
func (e *LaunchError) Error() string {
	if e.Err == nil {
		return e.Kind.String() + " failure"
	}
	return e.Err.Error()
}

// Unwrap returns the underlying cause.
func (e *LaunchError) Unwrap() error {
	return e.Err
}

// FailureKindOf classifies err. Context cancellation anywhere in the chain is
// reported as FailureCancelled even when no LaunchError wraps it.
func FailureKindOf(err error) FailureKind {
	if err == nil {
		return FailureUnknown
	}
	var le *LaunchError
	if errors.As(err, &le) {
		return le.Kind
	}
	if IsCancellation(err) {
		return FailureCancelled
	}
	return FailureUnknown
}

// IsCancellation reports whether err stems from a cancelled or expired context.
func IsCancellation(err error) bool {
	return errors.Is(err, context.Canceled) || errors.Is(err, context.DeadlineExceeded)
}
