// Package paths provides path resolution utilities.
package paths

import (
	"os"
	"path/filepath"
	"strings"
)

// SnapshotFile is the file name used when a snapshot path names a directory.
const SnapshotFile = "snapshot.db"

// Expand replaces a leading "~" with the user's home directory. Paths
// without one, and paths when the home directory is unknown, are returned
// cleaned but otherwise unchanged.
func Expand(path string) string {
	if path == "" {
		return ""
	}
	if path == "~" || strings.HasPrefix(path, "~/") {
		home, err := os.UserHomeDir()
		if err == nil {
			path = filepath.Join(home, strings.TrimPrefix(path, "~"))
		}
	}
	return filepath.Clean(path)
}

// ResolveSnapshot resolves the snapshot database path from user input.
//
// Input normalization:
//   - "" -> "" (no snapshot)
//   - "~/data/plenum.db" -> "$HOME/data/plenum.db"
//   - "/path/to/dir" (existing directory) -> "/path/to/dir/snapshot.db"
//   - "/path/to/dir/" (trailing separator) -> "/path/to/dir/snapshot.db"
//   - "/path/to/file.db" -> "/path/to/file.db"
func ResolveSnapshot(path string) string {
	if path == "" {
		return ""
	}
	dirHint := strings.HasSuffix(path, "/") || strings.HasSuffix(path, string(filepath.Separator))
	path = Expand(path)

	if dirHint {
		return filepath.Join(path, SnapshotFile)
	}
	if info, err := os.Stat(path); err == nil && info.IsDir() {
		return filepath.Join(path, SnapshotFile)
	}
	return path
}
