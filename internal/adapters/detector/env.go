// Package detector picks how log output is rendered for the current environment.
package detector

import (
	"os"

	"golang.org/x/term"
)

// OutputMode represents how the logger renders records.
type OutputMode int

const (
	// ModeAuto automatically detects the appropriate mode.
	ModeAuto OutputMode = iota
	// ModeInteractive renders pretty output with the terminal's full color profile.
	ModeInteractive
	// ModeCI renders pretty output restricted to basic ANSI colors.
	ModeCI
	// ModeJSON renders one JSON object per record.
	ModeJSON
)

// String returns the flag value that selects the mode.
func (m OutputMode) String() string {
	switch m {
	case ModeInteractive:
		return "interactive"
	case ModeCI:
		return "ci"
	case ModeJSON:
		return "json"
	default:
		return "auto"
	}
}

// DetectEnvironment returns the recommended output mode based on the environment.
// It checks if stderr is a TTY and if CI environment variables are set.
func DetectEnvironment() OutputMode {
	return detect(term.IsTerminal(int(os.Stderr.Fd())), os.Getenv("CI"))
}

func detect(isTTY bool, ci string) OutputMode {
	isCI := ci == "true" || ci == "1"
	if !isTTY || isCI {
		return ModeCI
	}
	return ModeInteractive
}

// ResolveMode applies the --log-format flag to auto-detection.
// userFlag should be one of "auto", "interactive", "ci", "json", or empty.
// Unknown values fall back to auto-detection.
func ResolveMode(autoDetected OutputMode, userFlag string) OutputMode {
	switch userFlag {
	case "interactive", "pretty":
		return ModeInteractive
	case "ci", "plain":
		return ModeCI
	case "json":
		return ModeJSON
	default:
		return autoDetected
	}
}
