package domain

// Platform identifies the operating system family of an execution node.
type Platform string

const (
	// PlatformUnix covers Linux, macOS and the BSDs.
	PlatformUnix Platform = "unix"
	// PlatformWindows covers Windows nodes.
	PlatformWindows Platform = "windows"
)

// LocalNodeName is the name of the node the controller itself runs on.
const LocalNodeName = "built-in"

const (
	// PropertyPathSeparator is the system property a node uses to advertise its path-list separator.
	PropertyPathSeparator = "path.separator"
	// PropertyOSName is the system property a node uses to advertise its operating system.
	PropertyOSName = "os.name"
)

// ParsePlatform normalizes a configured platform name. Empty means unix.
func ParsePlatform(s string) (Platform, bool) {
	switch Platform(s) {
	case "", PlatformUnix:
		return PlatformUnix, true
	case PlatformWindows:
		return PlatformWindows, true
	default:
		return "", false
	}
}

// PlatformForGOOS maps a runtime.GOOS value to a Platform.
func PlatformForGOOS(goos string) Platform {
	if goos == "windows" {
		return PlatformWindows
	}
	return PlatformUnix
}

// FileSeparator returns the directory separator used on the platform.
func (p Platform) FileSeparator() string {
	if p == PlatformWindows {
		return `\`
	}
	return "/"
}

// PathListSeparator returns the PATH list separator used on the platform.
func (p Platform) PathListSeparator() string {
	if p == PlatformWindows {
		return ";"
	}
	return ":"
}

// ExecutionNode is a machine on which a build step runs.
// A nil *ExecutionNode denotes a node that has been removed.
type ExecutionNode struct {
	Name     string
	Platform Platform
}

// IsWindows reports whether the node runs Windows.
func (n *ExecutionNode) IsWindows() bool {
	return n != nil && n.Platform == PlatformWindows
}

// LocalNode describes the controller's own machine.
func LocalNode(goos string) *ExecutionNode {
	return &ExecutionNode{Name: LocalNodeName, Platform: PlatformForGOOS(goos)}
}
