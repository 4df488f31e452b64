package nix

import (
	"net/http"
	"runtime"
)

// NewResolverWithClient builds a Resolver with a custom HTTP client for tests.
func NewResolverWithClient(cacheDir string, client *http.Client) *Resolver {
	return newResolverWithClient(cacheDir, client)
}

// CurrentSystem reports the NixHub system string for the running platform.
func CurrentSystem() string {
	return currentSystem(runtime.GOOS, runtime.GOARCH)
}

// ParseBuildResults exposes parseBuildResults for tests.
var ParseBuildResults = parseBuildResults

// CurrentSystemFor exposes currentSystem for tests.
var CurrentSystemFor = currentSystem
