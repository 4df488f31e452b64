// Package config provides the configuration loader for npmwrap.
package config

import (
	"fmt"
	"maps"
	"path/filepath"

	"go.trai.ch/npmwrap/internal/core/domain"
	"go.trai.ch/npmwrap/internal/core/ports"
	"go.trai.ch/zerr"
	"gopkg.in/yaml.v3"
)

// Loader implements ports.ConfigLoader using a YAML file.
type Loader struct {
	Logger ports.Logger
	FS     FileSystem
}

// NewLoader creates a new Loader with the given logger.
func NewLoader(logger ports.Logger) *Loader {
	return &Loader{Logger: logger, FS: NewOSFS()}
}

// Load finds npmwrap.yaml in cwd or the nearest parent directory, then parses
// and validates it.
func (l *Loader) Load(cwd string) (*domain.Config, error) {
	abs, err := filepath.Abs(cwd)
	if err != nil {
		return nil, zerr.With(zerr.Wrap(err, domain.ErrConfigNotFound.Error()), "cwd", cwd)
	}
	configPath, err := l.findConfiguration(abs)
	if err != nil {
		return nil, err
	}

	var file File
	if err := l.readAndUnmarshalYAML(configPath, &file); err != nil {
		return nil, zerr.With(err, "path", configPath)
	}

	cfg, err := l.build(&file)
	if err != nil {
		return nil, zerr.With(err, "path", configPath)
	}
	cfg.Root = filepath.Dir(configPath)
	return cfg, nil
}

func (l *Loader) findConfiguration(cwd string) (string, error) {
	currentDir := cwd
	for {
		candidate := filepath.Join(currentDir, domain.ConfigFileName)
		if _, err := l.FS.Stat(candidate); err == nil {
			return candidate, nil
		}

		parentDir := filepath.Dir(currentDir)
		if parentDir == currentDir {
			// Reached root
			break
		}
		currentDir = parentDir
	}

	return "", zerr.With(domain.ErrConfigNotFound, "cwd", cwd)
}

func (l *Loader) readAndUnmarshalYAML(configPath string, target *File) error {
	data, err := l.FS.ReadFile(configPath)
	if err != nil {
		return zerr.Wrap(err, domain.ErrConfigReadFailed.Error())
	}

	if parseErr := yaml.Unmarshal(data, target); parseErr != nil {
		return zerr.Wrap(parseErr, domain.ErrConfigParseFailed.Error())
	}

	return nil
}

func (l *Loader) build(file *File) (*domain.Config, error) {
	cfg := &domain.Config{DefaultInstallation: file.Wrapper.Installation}

	seen := make(map[string]bool, len(file.Installations))
	for i := range file.Installations {
		inst, err := l.buildInstallation(&file.Installations[i])
		if err != nil {
			return nil, zerr.With(err, "index", i)
		}
		if seen[inst.Name] {
			return nil, zerr.With(domain.ErrDuplicateInstallation, "installation", inst.Name)
		}
		seen[inst.Name] = true
		cfg.Installations = append(cfg.Installations, inst)
	}

	if cfg.DefaultInstallation != "" && !seen[cfg.DefaultInstallation] {
		return nil, zerr.With(domain.ErrInstallationNotFound, "installation", cfg.DefaultInstallation)
	}

	nodeNames := make(map[string]bool, len(file.Nodes))
	for i := range file.Nodes {
		node, err := buildNode(&file.Nodes[i])
		if err != nil {
			return nil, zerr.With(err, "index", i)
		}
		if nodeNames[node.Name] {
			return nil, zerr.With(domain.ErrDuplicateNode, "node", node.Name)
		}
		nodeNames[node.Name] = true
		cfg.Nodes = append(cfg.Nodes, node)
	}

	for _, inst := range cfg.Installations {
		for nodeName := range inst.NodeHomes {
			if nodeName != domain.LocalNodeName && !nodeNames[nodeName] {
				l.Logger.Warn(fmt.Sprintf("installation %q overrides home for undeclared node %q", inst.Name, nodeName))
			}
		}
	}

	return cfg, nil
}

func (l *Loader) buildInstallation(dto *InstallationDTO) (domain.Installation, error) {
	if dto.Name == "" {
		return domain.Installation{}, domain.ErrMissingInstallationName
	}

	inst := domain.Installation{
		Name:      dto.Name,
		Home:      dto.Home,
		NodeHomes: maps.Clone(dto.Nodes),
	}

	if dto.Nix != "" {
		spec, ok := domain.ParseToolSpec(dto.Nix)
		if !ok {
			err := zerr.With(domain.ErrInvalidToolSpec, "installation", dto.Name)
			return domain.Installation{}, zerr.With(err, "spec", dto.Nix)
		}
		inst.Nix = &spec
	}

	if inst.Home == "" && inst.Nix == nil && len(inst.NodeHomes) == 0 {
		l.Logger.Warn(fmt.Sprintf("installation %q has no home and no nix spec; it cannot be resolved", dto.Name))
	}

	return inst, nil
}

func buildNode(dto *NodeDTO) (domain.NodeDefinition, error) {
	if dto.Name == "" {
		return domain.NodeDefinition{}, domain.ErrMissingNodeName
	}
	if dto.Name == domain.LocalNodeName {
		return domain.NodeDefinition{}, zerr.With(domain.ErrReservedNodeName, "node", dto.Name)
	}

	platform, ok := domain.ParsePlatform(dto.Platform)
	if !ok {
		err := zerr.With(domain.ErrInvalidPlatform, "node", dto.Name)
		return domain.NodeDefinition{}, zerr.With(err, "platform", dto.Platform)
	}

	return domain.NodeDefinition{
		Name:       dto.Name,
		Platform:   platform,
		Env:        maps.Clone(dto.Env),
		Properties: maps.Clone(dto.Properties),
	}, nil
}
