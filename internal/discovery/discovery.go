// Package discovery resolves the target file of an invocation.
package discovery

import (
	"io/fs"
	"os"
	"path/filepath"

	"gitlab.com/tozd/go/errors"
)

// ErrNotFound is returned by Locate when nothing exists at the given path.
var ErrNotFound = errors.New("discovery: no such file")

// Locate returns the absolute path of the file that path names, with every
// symlink resolved, after checking that it is an existing regular file.
// Writing to the returned path therefore updates a link's target instead of
// replacing the link.
//
// A missing path yields ErrNotFound; any other failure (permission denied on a
// parent, a directory or device at path) is returned wrapped and should be
// treated as fatal by the caller.
func Locate(path string) (string, error) {
	if path == "" {
		return "", errors.Errorf("discovery: empty path: %w", ErrNotFound)
	}
	abs, err := filepath.Abs(path)
	if err != nil {
		return "", errors.Errorf("discovery: invalid path %q: %w", path, err)
	}

	info, err := os.Stat(abs)
	if err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return "", errors.Errorf("%w: %s", ErrNotFound, path)
		}
		return "", errors.Errorf("discovery: stat: %w", err)
	}
	if !info.Mode().IsRegular() {
		return "", errors.Errorf("discovery: %s: not a regular file (%s)", path, info.Mode().Type())
	}
	target, err := filepath.EvalSymlinks(abs)
	if err != nil {
		return "", errors.Errorf("discovery: resolve symlinks: %w", err)
	}
	return target, nil
}
