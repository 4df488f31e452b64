package domain

import (
	"maps"
	"slices"
	"strings"
)

// PathVar is the name of the executable search path variable.
const PathVar = "PATH"

// Environment is an insertion-ordered set of environment variables.
// Keys are case-sensitive. The zero value is an empty, ready-to-use Environment.
type Environment struct {
	keys   []string
	values map[string]string
}

// NewEnvironment creates an empty Environment.
func NewEnvironment() *Environment {
	return &Environment{values: make(map[string]string)}
}

// EnvironmentFromLines builds an Environment from "KEY=VALUE" lines.
// Malformed lines are skipped.
func EnvironmentFromLines(lines []string) *Environment {
	env := NewEnvironment()
	for _, line := range lines {
		env.AddLine(line)
	}
	return env
}

// EnvironmentFromMap builds an Environment from a map, ordering keys lexically.
func EnvironmentFromMap(m map[string]string) *Environment {
	env := NewEnvironment()
	for _, k := range slices.Sorted(maps.Keys(m)) {
		env.Set(k, m[k])
	}
	return env
}

// Get returns the value of key and whether it is present.
func (e *Environment) Get(key string) (string, bool) {
	if e == nil || e.values == nil {
		return "", false
	}
	v, ok := e.values[key]
	return v, ok
}

// Set sets key to value. An existing key keeps its position.
func (e *Environment) Set(key, value string) {
	if e.values == nil {
		e.values = make(map[string]string)
	}
	if _, exists := e.values[key]; !exists {
		e.keys = append(e.keys, key)
	}
	e.values[key] = value
}

// Delete removes key if present.
func (e *Environment) Delete(key string) {
	if _, exists := e.values[key]; !exists {
		return
	}
	delete(e.values, key)
	e.keys = slices.DeleteFunc(e.keys, func(k string) bool { return k == key })
}

// AddLine parses a single "NAME=value" line and sets it.
// Everything after the first '=' is the value. Lines without '=' or with an
// empty name are ignored and reported as false.
func (e *Environment) AddLine(line string) bool {
	name, value, ok := strings.Cut(line, "=")
	if !ok || name == "" {
		return false
	}
	e.Set(name, value)
	return true
}

// Len returns the number of variables.
func (e *Environment) Len() int {
	if e == nil {
		return 0
	}
	return len(e.keys)
}

// Keys returns the variable names in insertion order.
func (e *Environment) Keys() []string {
	if e == nil {
		return nil
	}
	return slices.Clone(e.keys)
}

// Lines returns the variables as "KEY=VALUE" strings in insertion order,
// suitable for exec.Cmd.Env.
func (e *Environment) Lines() []string {
	if e == nil {
		return nil
	}
	lines := make([]string, 0, len(e.keys))
	for _, k := range e.keys {
		lines = append(lines, k+"="+e.values[k])
	}
	return lines
}

// Map returns a copy of the variables as a plain map.
func (e *Environment) Map() map[string]string {
	if e == nil {
		return map[string]string{}
	}
	return maps.Clone(e.values)
}

// Clone returns an independent copy.
func (e *Environment) Clone() *Environment {
	if e == nil {
		return NewEnvironment()
	}
	values := maps.Clone(e.values)
	if values == nil {
		values = make(map[string]string)
	}
	return &Environment{
		keys:   slices.Clone(e.keys),
		values: values,
	}
}
