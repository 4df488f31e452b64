package config

// File represents the structure of the npmwrap.yaml configuration file.
type File struct {
	Version       string            `yaml:"version"`
	Wrapper       WrapperDTO        `yaml:"wrapper"`
	Installations []InstallationDTO `yaml:"installations"`
	Nodes         []NodeDTO         `yaml:"nodes"`
}

// WrapperDTO configures the build wrapper.
type WrapperDTO struct {
	Installation string `yaml:"installation"`
}

// InstallationDTO represents a tool installation in the configuration.
type InstallationDTO struct {
	Name  string            `yaml:"name"`
	Home  string            `yaml:"home"`
	Nix   string            `yaml:"nix"`
	Nodes map[string]string `yaml:"nodes"`
}

// NodeDTO represents a declared execution node in the configuration.
type NodeDTO struct {
	Name       string            `yaml:"name"`
	Platform   string            `yaml:"platform"`
	Env        map[string]string `yaml:"env"`
	Properties map[string]string `yaml:"properties"`
}
