package domain

import "io"

// LaunchRequest describes a subprocess to start on a node.
type LaunchRequest struct {
	// Command is the program followed by its arguments.
	Command []string
	// Dir is the working directory. Empty means the launcher's current directory.
	Dir string
	// Env holds "NAME=value" lines. A decorated launcher replaces these with
	// the fully composed environment before delegating.
	Env []string
	// Stdout receives the process output. Nil lets the launcher decide where it goes.
	Stdout io.Writer
	// Stderr receives the process error output. Nil merges it into Stdout.
	Stderr io.Writer
}
