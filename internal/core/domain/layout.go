package domain

import "path/filepath"

const (
	// NpmwrapDirName is the name of the internal workspace directory.
	NpmwrapDirName = ".npmwrap"

	// CacheDirName is the name of the cache directory.
	CacheDirName = "cache"

	// NixHubDirName is the name of the NixHub cache directory.
	NixHubDirName = "nixhub"

	// StorePathsDirName is the name of the materialized store path cache directory.
	StorePathsDirName = "store-paths"

	// ConfigFileName is the name of the project configuration file.
	ConfigFileName = "npmwrap.yaml"

	// DirPerm is the default permission for directories (rwxr-x---).
	DirPerm = 0o750

	// FilePerm is the default permission for files (rw-r--r--).
	FilePerm = 0o644

	// PrivateFilePerm is the default permission for private files (rw-------).
	PrivateFilePerm = 0o600
)

// DefaultNixHubCachePath returns the default path for the NixHub cache.
// It joins .npmwrap, cache, and nixhub.
func DefaultNixHubCachePath() string {
	return filepath.Join(NpmwrapDirName, CacheDirName, NixHubDirName)
}

// DefaultStorePathCachePath returns the default path for the store path cache.
// It joins .npmwrap, cache, and store-paths.
func DefaultStorePathCachePath() string {
	return filepath.Join(NpmwrapDirName, CacheDirName, StorePathsDirName)
}
