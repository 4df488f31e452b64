package ports

import "go.trai.ch/npmwrap/internal/core/domain"

// ConfigLoader defines the interface for loading the project configuration.
//
//go:generate go run go.uber.org/mock/mockgen -source=config_loader.go -destination=mocks/mock_config_loader.go -package=mocks
type ConfigLoader interface {
	// Load finds npmwrap.yaml by walking up from cwd, then parses and validates it.
	Load(cwd string) (*domain.Config, error)
}
