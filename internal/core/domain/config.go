package domain

// Config is the validated project configuration.
type Config struct {
	// Root is the directory that holds the configuration file.
	Root string
	// DefaultInstallation is the installation the wrapper injects when none is given.
	DefaultInstallation string
	// Installations are the configured tool installations, in file order.
	Installations []Installation
	// Nodes are the declared execution nodes, in file order.
	Nodes []NodeDefinition
}

// Installation is a configured tool installation before it is translated for a node.
type Installation struct {
	Name string
	// Home is the installation root. It may reference environment variables.
	Home string
	// Nix, when set, materializes the tool if no home applies.
	Nix *ToolSpec
	// NodeHomes maps node names to per-node home overrides.
	NodeHomes map[string]string
}

// NodeDefinition is an execution node declared in the configuration.
type NodeDefinition struct {
	Name       string
	Platform   Platform
	Env        map[string]string
	Properties map[string]string
}

// Installation returns the installation with the given name.
func (c *Config) Installation(name string) (Installation, bool) {
	for _, inst := range c.Installations {
		if inst.Name == name {
			return inst, true
		}
	}
	return Installation{}, false
}

// InstallationNames returns the configured installation names in file order.
func (c *Config) InstallationNames() []string {
	names := make([]string, 0, len(c.Installations))
	for _, inst := range c.Installations {
		names = append(names, inst.Name)
	}
	return names
}
