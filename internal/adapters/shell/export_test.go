package shell

import "go.trai.ch/npmwrap/internal/core/domain"

// SetEnviron replaces the process environment the launcher overlays.
func (l *Launcher) SetEnviron(fn func() []string) {
	l.environ = fn
}

// ResolveEnvironment exposes resolveEnvironment for tests.
func ResolveEnvironment(sysEnv, reqEnv []string) *domain.Environment {
	return resolveEnvironment(sysEnv, reqEnv)
}

// LookPath exposes lookPath for tests.
var LookPath = lookPath

// FindExecutable exposes findExecutable for tests.
var FindExecutable = findExecutable
