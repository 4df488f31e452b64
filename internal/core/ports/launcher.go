// Package ports defines the core interfaces for the application.
package ports

import (
	"context"

	"go.trai.ch/npmwrap/internal/core/domain"
)

// Launcher starts processes on an execution node.
//
//go:generate go run go.uber.org/mock/mockgen -source=launcher.go -destination=mocks/mock_launcher.go -package=mocks
type Launcher interface {
	// Launch starts the process described by req.
	//
	// req.Env holds "NAME=value" lines. Implementations overlay them on
	// whatever baseline they apply to the child process.
	Launch(ctx context.Context, req *domain.LaunchRequest) (Process, error)
}

// Process is a started process.
type Process interface {
	// Wait blocks until the process exits. A non-zero exit is reported as an error.
	Wait() error
}
