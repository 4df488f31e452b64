package domain

import "strings"

// ResolvedInstallation is a tool installation translated for a specific node and environment.
type ResolvedInstallation struct {
	// Name is the configured installation name.
	Name string
	// Home is the installation's root directory on the node.
	Home string
	// BinDir holds the tool's executables on the node.
	BinDir string
}

// ToolSpec is a nix materialization request such as "nodejs@18.17.0".
type ToolSpec struct {
	Package string
	Version string
}

// ParseToolSpec parses a "package@version" string.
func ParseToolSpec(s string) (ToolSpec, bool) {
	pkg, version, ok := strings.Cut(s, "@")
	if !ok || pkg == "" || version == "" || strings.Contains(version, "@") {
		return ToolSpec{}, false
	}
	return ToolSpec{Package: pkg, Version: version}, true
}

// String returns the canonical "package@version" form.
func (s ToolSpec) String() string {
	return s.Package + "@" + s.Version
}

// BinFolder returns the directory that holds the executables of an
// installation rooted at home. Windows distributions of Node.js ship node.exe
// and npm.cmd at the root; everywhere else they live under bin.
func BinFolder(platform Platform, home string) string {
	if platform == PlatformWindows {
		return home
	}
	sep := platform.FileSeparator()
	return strings.TrimSuffix(home, sep) + sep + "bin"
}
