package nix

import (
	"os"
	"path/filepath"
	"strconv"

	"github.com/cespare/xxhash/v2"
	"go.trai.ch/npmwrap/internal/core/domain"
)

// cacheKey derives a stable file name from the given parts.
func cacheKey(parts ...string) string {
	d := xxhash.New()
	for _, p := range parts {
		_, _ = d.WriteString(p)
		// Separator keeps ("ab","c") and ("a","bc") apart.
		_, _ = d.Write([]byte{0})
	}
	return strconv.FormatUint(d.Sum64(), 16)
}

// atomicWriteFile writes data to a file atomically by writing to a temp file and renaming it.
func atomicWriteFile(path string, data []byte) error {
	dir := filepath.Dir(path)
	if err := os.MkdirAll(dir, domain.DirPerm); err != nil {
		return err
	}

	tmpFile, err := os.CreateTemp(dir, "cache-*.json.tmp")
	if err != nil {
		return err
	}
	tmpName := tmpFile.Name()

	// Clean up temp file on error
	defer func() {
		if _, statErr := os.Stat(tmpName); statErr == nil {
			_ = os.Remove(tmpName)
		}
	}()

	if _, err := tmpFile.Write(data); err != nil {
		_ = tmpFile.Close()
		return err
	}

	if err := tmpFile.Close(); err != nil {
		return err
	}

	if err := os.Chmod(tmpName, domain.FilePerm); err != nil {
		return err
	}

	return os.Rename(tmpName, path)
}
