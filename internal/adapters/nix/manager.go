package nix

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"os/exec"
	"path/filepath"
	"strings"
	"sync"
	"time"

	"go.trai.ch/npmwrap/internal/core/domain"
	"go.trai.ch/zerr"
	"golang.org/x/sync/singleflight"
)

// CommandRunner runs an external command and returns its stdout.
type CommandRunner func(ctx context.Context, name string, args ...string) ([]byte, error)

// Manager implements ports.PackageManager using the Nix CLI.
// Store paths are remembered under cacheDir so a second install skips nix.
type Manager struct {
	cacheDir string
	run      CommandRunner
	group    singleflight.Group

	mu      sync.Mutex
	flights map[string]*flight
}

// flight is a shared nix build. Its context ends only when every caller
// waiting on it has gone, so one cancelled caller does not kill the build for
// the others.
type flight struct {
	ctx     context.Context
	cancel  context.CancelFunc
	waiters int
}

// errFlightAbandoned marks a build killed because all its callers left.
var errFlightAbandoned = errors.New("nix build abandoned by every caller")

// NewManager creates a new PackageManager backed by Nix CLI.
func NewManager(cacheDir string) *Manager {
	return NewManagerWithRunner(cacheDir, execRunner)
}

// NewManagerWithRunner creates a Manager that runs nix through run.
func NewManagerWithRunner(cacheDir string, run CommandRunner) *Manager {
	return &Manager{
		cacheDir: filepath.Clean(cacheDir),
		run:      run,
		flights:  make(map[string]*flight),
	}
}

func execRunner(ctx context.Context, name string, args ...string) ([]byte, error) {
	//nolint:gosec // arguments are built from a resolved attribute path and commit
	return exec.CommandContext(ctx, name, args...).Output()
}

// Install ensures the attribute from the specific commit is available in the Nix store.
// Returns the absolute path to the tool's store path.
func (m *Manager) Install(ctx context.Context, attrPath, commitHash string) (string, error) {
	key := cacheKey(attrPath, commitHash)
	cachePath := filepath.Join(m.cacheDir, key+".json")

	if storePath, ok := m.cachedStorePath(cachePath); ok {
		return storePath, nil
	}

	storePath, err := m.share(ctx, key, attrPath, commitHash)
	if err != nil {
		return "", err
	}

	// The store path is valid even if it could not be remembered.
	_ = m.saveStorePath(cachePath, storePathEntry{
		AttrPath:  attrPath,
		Commit:    commitHash,
		StorePath: storePath,
		Timestamp: time.Now(),
	})

	return storePath, nil
}

// share runs one build per key for all concurrent callers. Each caller
// stops waiting when its own ctx ends.
func (m *Manager) share(ctx context.Context, key, attrPath, commitHash string) (string, error) {
	for {
		f := m.join(ctx, key)
		ch := m.group.DoChan(key, func() (any, error) {
			out, err := m.build(f.ctx, attrPath, commitHash)
			if err != nil && f.ctx.Err() != nil {
				return "", errFlightAbandoned
			}
			return out, err
		})

		select {
		case <-ctx.Done():
			m.leave(key, f)
			err := zerr.Wrap(ctx.Err(), domain.ErrNixInstallFailed.Error())
			return "", zerr.With(zerr.With(err, "attr_path", attrPath), "commit", commitHash)
		case res := <-ch:
			m.leave(key, f)
			// A build started for callers that all left; ours is still wanted.
			if errors.Is(res.Err, errFlightAbandoned) {
				continue
			}
			if res.Err != nil {
				return "", res.Err
			}
			storePath, _ := res.Val.(string)
			return storePath, nil
		}
	}
}

// join registers a waiter on the flight for key. A new flight keeps the
// values of ctx but not its cancellation.
func (m *Manager) join(ctx context.Context, key string) *flight {
	m.mu.Lock()
	defer m.mu.Unlock()

	f, ok := m.flights[key]
	if !ok {
		fctx, cancel := context.WithCancel(context.WithoutCancel(ctx))
		f = &flight{ctx: fctx, cancel: cancel}
		m.flights[key] = f
	}
	f.waiters++
	return f
}

func (m *Manager) leave(key string, f *flight) {
	m.mu.Lock()
	defer m.mu.Unlock()

	f.waiters--
	if f.waiters > 0 {
		return
	}
	f.cancel()
	if m.flights[key] == f {
		delete(m.flights, key)
	}
}

// cachedStorePath returns a remembered store path that still exists on disk.
func (m *Manager) cachedStorePath(path string) (string, bool) {
	//nolint:gosec // Path is constructed from trusted directory and hashed filename
	data, err := os.ReadFile(path)
	if err != nil {
		return "", false
	}

	var entry storePathEntry
	if err := json.Unmarshal(data, &entry); err != nil || entry.StorePath == "" {
		return "", false
	}

	// Garbage collection may have removed it.
	if _, err := os.Stat(entry.StorePath); err != nil {
		return "", false
	}
	return entry.StorePath, true
}

func (m *Manager) saveStorePath(path string, entry storePathEntry) error {
	data, err := json.MarshalIndent(entry, "", "  ")
	if err != nil {
		return zerr.Wrap(err, domain.ErrNixCacheWriteFailed.Error())
	}
	if err := atomicWriteFile(path, data); err != nil {
		return zerr.Wrap(err, domain.ErrNixCacheWriteFailed.Error())
	}
	return nil
}

func (m *Manager) build(ctx context.Context, attrPath, commitHash string) (string, error) {
	flakeRef := fmt.Sprintf("github:NixOS/nixpkgs/%s#%s", commitHash, attrPath)

	// --no-link avoids leaving result symlinks in the working directory.
	output, err := m.run(ctx, "nix", "build", "--json", "--no-link", flakeRef)
	if err != nil {
		nixErr := zerr.Wrap(err, domain.ErrNixInstallFailed.Error())
		nixErr = zerr.With(nixErr, "attr_path", attrPath)
		nixErr = zerr.With(nixErr, "commit", commitHash)

		var exitErr *exec.ExitError
		if errors.As(err, &exitErr) {
			return "", zerr.With(nixErr, "stderr", strings.TrimSpace(string(exitErr.Stderr)))
		}
		return "", nixErr
	}

	return parseBuildResults(output, attrPath, commitHash)
}

// parseBuildResults extracts the "out" store path from `nix build --json` output.
func parseBuildResults(output []byte, attrPath, commitHash string) (string, error) {
	var results buildResults
	if err := json.Unmarshal(output, &results); err != nil {
		parseErr := zerr.Wrap(err, domain.ErrNixBuildOutputInvalid.Error())
		parseErr = zerr.With(parseErr, "attr_path", attrPath)
		return "", zerr.With(parseErr, "commit", commitHash)
	}

	if len(results) == 0 {
		emptyErr := zerr.With(domain.ErrNixBuildOutputInvalid, "attr_path", attrPath)
		emptyErr = zerr.With(emptyErr, "commit", commitHash)
		return "", zerr.With(emptyErr, "reason", "empty build results from nix build")
	}

	storePath, ok := results[0].Outputs["out"]
	if !ok || storePath == "" {
		outErr := zerr.With(domain.ErrNixBuildOutputInvalid, "attr_path", attrPath)
		outErr = zerr.With(outErr, "commit", commitHash)
		return "", zerr.With(outErr, "reason", "no 'out' output found in build results")
	}

	return storePath, nil
}
