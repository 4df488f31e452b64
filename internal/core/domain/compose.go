package domain

// SelectSeparator picks the path-list separator for a launch.
// A non-empty separator advertised by the execution node wins over the
// controller's own default, since the two may run different operating systems.
func SelectSeparator(defaultSeparator, advertised string, ok bool) string {
	if ok && advertised != "" {
		return advertised
	}
	return defaultSeparator
}

// ApplyOverrides returns a copy of baseline with each "NAME=value" line applied
// in order. Later lines override earlier ones. A nil slice means no overrides.
func ApplyOverrides(baseline *Environment, overrideLines []string) *Environment {
	env := baseline.Clone()
	for _, line := range overrideLines {
		env.AddLine(line)
	}
	return env
}

// PrependPath returns a copy of env whose PATH is binDir followed by the
// previous PATH. When PATH is absent or empty the result is binDir alone,
// without a dangling separator.
func PrependPath(env *Environment, binDir, separator string) *Environment {
	out := env.Clone()
	current, _ := out.Get(PathVar)
	if current == "" {
		out.Set(PathVar, binDir)
		return out
	}
	out.Set(PathVar, binDir+separator+current)
	return out
}

// ComposeEnvironment builds the environment for a subprocess launch: the
// baseline, then the override lines, then binDir prepended to PATH.
// The baseline is never mutated.
func ComposeEnvironment(baseline *Environment, overrideLines []string, binDir, separator string) *Environment {
	return PrependPath(ApplyOverrides(baseline, overrideLines), binDir, separator)
}
