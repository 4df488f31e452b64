// Package nix materializes tools through NixHub and the Nix CLI.
package nix

import (
	"context"
	"encoding/json"
	"net/http"
	"net/url"
	"os"
	"path/filepath"
	"runtime"
	"time"

	"go.trai.ch/npmwrap/internal/core/domain"
	"go.trai.ch/zerr"
)

const (
	nixHubResolveURL = "https://search.devbox.sh/v2/resolve"
	nixHubTimeout    = 30 * time.Second
)

// Resolver pins package versions to nixpkgs commits using NixHub.
// Answers are kept on disk, so a version is only looked up once per cache.
type Resolver struct {
	cacheDir   string
	baseURL    string
	system     string
	httpClient *http.Client
}

// NewResolver creates a Resolver that caches answers under cacheDir.
// The directory is created on the first write.
func NewResolver(cacheDir string) *Resolver {
	return newResolverWithClient(cacheDir, &http.Client{Timeout: nixHubTimeout})
}

func newResolverWithClient(cacheDir string, client *http.Client) *Resolver {
	return &Resolver{
		cacheDir:   filepath.Clean(cacheDir),
		baseURL:    nixHubResolveURL,
		system:     currentSystem(runtime.GOOS, runtime.GOARCH),
		httpClient: client,
	}
}

// Resolve returns the nixpkgs commit and attribute path that provide alias at version
// on the running system.
func (r *Resolver) Resolve(ctx context.Context, alias, version string) (commitHash, attrPath string, err error) {
	path := filepath.Join(r.cacheDir, cacheKey(alias, version)+".json")
	if p, ok := r.cached(path); ok {
		return p.Commit, p.AttrPath, nil
	}

	resp, err := r.lookup(ctx, alias, version)
	if err != nil {
		return "", "", err
	}

	sys, ok := resp.Systems[r.system]
	if !ok {
		return "", "", zerr.With(notFound(alias, version), "system", r.system)
	}

	// A failed write only costs another lookup.
	_ = r.store(path, alias, version, resp)

	p := sys.pin()
	return p.Commit, p.AttrPath, nil
}

// cached reports the pin for the running system, if a readable cache file holds one.
func (r *Resolver) cached(path string) (pin, bool) {
	//nolint:gosec // Path is the cache dir joined with a hashed file name
	data, err := os.ReadFile(path)
	if err != nil {
		return pin{}, false
	}
	var file pinFile
	if json.Unmarshal(data, &file) != nil {
		return pin{}, false
	}
	p, ok := file.Pins[r.system]
	return p, ok && p.Commit != ""
}

func (r *Resolver) store(path, alias, version string, resp *NixHubResponse) error {
	file := pinFile{
		Package:  alias,
		Version:  version,
		Pins:     make(map[string]pin, len(resp.Systems)),
		Resolved: time.Now(),
	}
	for name, sys := range resp.Systems {
		file.Pins[name] = sys.pin()
	}

	data, err := json.MarshalIndent(file, "", "  ")
	if err != nil {
		return zerr.Wrap(err, domain.ErrNixCacheWriteFailed.Error())
	}
	if err := atomicWriteFile(path, data); err != nil {
		return zerr.Wrap(err, domain.ErrNixCacheWriteFailed.Error())
	}
	return nil
}

func (r *Resolver) lookup(ctx context.Context, alias, version string) (*NixHubResponse, error) {
	endpoint := r.baseURL + "?" + url.Values{"name": {alias}, "version": {version}}.Encode()
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, endpoint, http.NoBody)
	if err != nil {
		return nil, zerr.Wrap(err, domain.ErrNixAPIRequestFailed.Error())
	}

	resp, err := r.httpClient.Do(req)
	if err != nil {
		return nil, zerr.Wrap(err, domain.ErrNixAPIRequestFailed.Error())
	}
	defer func() { _ = resp.Body.Close() }()

	switch resp.StatusCode {
	case http.StatusOK:
	case http.StatusNotFound:
		return nil, notFound(alias, version)
	default:
		err := zerr.With(domain.ErrNixAPIRequestFailed, "status_code", resp.StatusCode)
		return nil, zerr.With(zerr.With(err, "package", alias), "version", version)
	}

	var out NixHubResponse
	if err := json.NewDecoder(resp.Body).Decode(&out); err != nil {
		return nil, zerr.Wrap(err, "failed to parse nixhub response")
	}
	if len(out.Systems) == 0 {
		return nil, notFound(alias, version)
	}
	return &out, nil
}

func notFound(alias, version string) error {
	return zerr.With(zerr.With(domain.ErrNixPackageNotFound, "package", alias), "version", version)
}

// currentSystem maps GOOS/GOARCH to a Nix system string.
func currentSystem(goos, goarch string) string {
	arch := "x86_64"
	if goarch == "arm64" {
		arch = "aarch64"
	}
	if goos == "darwin" {
		return arch + "-darwin"
	}
	return arch + "-linux"
}
