// Package apply writes revised contents back over the target file.
package apply

import (
	"io"
	"os"
	"path/filepath"
	"strconv"

	"gitlab.com/tozd/go/errors"
)

const defaultBackupSuffix = ".bak"

// maxBackups bounds the search for a free backup name.
const maxBackups = 1000

// Options controls how the target is replaced.
type Options struct {
	// Backup keeps a copy of the original next to it before overwriting.
	Backup       bool
	// BackupSuffix is appended to the file name of the backup; ".bak" if empty.
	BackupSuffix string
}

// Outcome describes what WriteAtomic did.
type Outcome struct {
	// BackupPath is the copy of the original, empty when no backup was made.
	BackupPath string
	Bytes      int
}

// WriteAtomic replaces the existing file at path with data. The new content
// goes to a temp file in the same directory, which is synced and then renamed
// over the original, so readers see either the old or the new file. The
// original permission bits are kept.
func WriteAtomic(path string, data []byte, opts Options) (Outcome, error) {
	info, err := os.Stat(path)
	if err != nil {
		return Outcome{}, errors.Errorf("apply: stat: %w", err)
	}
	mode := info.Mode().Perm()
	dir, base := filepath.Split(path)
	if dir == "" {
		dir = "."
	}

	var out Outcome
	if opts.Backup {
		suffix := opts.BackupSuffix
		if suffix == "" {
			suffix = defaultBackupSuffix
		}
		bak, err := freeBackupPath(dir, base, suffix)
		if err != nil {
			return Outcome{}, err
		}
		if err := copyFile(path, bak, mode); err != nil {
			return Outcome{}, errors.Errorf("apply: backup: %w", err)
		}
		out.BackupPath = bak
	}

	tmp, err := writeTemp(dir, base, data, mode)
	if err != nil {
		return Outcome{}, err
	}
	if err := os.Rename(tmp, path); err != nil {
		_ = os.Remove(tmp)
		return Outcome{}, errors.Errorf("apply: rename: %w", err)
	}

	// Not supported everywhere (e.g. Windows); the rename already happened.
	_ = syncDir(dir)

	out.Bytes = len(data)
	return out, nil
}

// writeTemp stores data in a new synced file in dir and returns its name.
// The file is removed again on any failure.
func writeTemp(dir, base string, data []byte, mode os.FileMode) (name string, err error) {
	f, err := os.CreateTemp(dir, base+".tmp-*")
	if err != nil {
		return "", errors.Errorf("apply: temp: %w", err)
	}
	name = f.Name()
	defer func() {
		if err != nil {
			_ = f.Close()
			_ = os.Remove(name)
		}
	}()

	if _, err = f.Write(data); err != nil {
		return "", errors.Errorf("apply: write temp: %w", err)
	}
	if err = f.Chmod(mode); err != nil {
		return "", errors.Errorf("apply: chmod temp: %w", err)
	}
	if err = f.Sync(); err != nil {
		return "", errors.Errorf("apply: fsync temp: %w", err)
	}
	if err = f.Close(); err != nil {
		return "", errors.Errorf("apply: close temp: %w", err)
	}
	return name, nil
}

func freeBackupPath(dir, base, suffix string) (string, error) {
	cand := filepath.Join(dir, base+suffix)
	for i := 1; ; i++ {
		if _, err := os.Lstat(cand); errors.Is(err, os.ErrNotExist) {
			return cand, nil
		}
		if i >= maxBackups {
			return "", errors.Errorf("apply: backup: too many existing backups for %s", base)
		}
		cand = filepath.Join(dir, base+suffix+"."+strconv.Itoa(i))
	}
}

func copyFile(src, dst string, mode os.FileMode) error {
	r, err := os.Open(src)
	if err != nil {
		return err
	}
	defer func() { _ = r.Close() }()
	w, err := os.OpenFile(dst, os.O_CREATE|os.O_EXCL|os.O_WRONLY, mode)
	if err != nil {
		return err
	}
	if _, err := io.Copy(w, r); err != nil {
		_ = w.Close()
		return err
	}
	if err := w.Sync(); err != nil {
		_ = w.Close()
		return err
	}
	return w.Close()
}

func syncDir(dir string) error {
	df, err := os.Open(dir)
	if err != nil {
		return err
	}
	defer func() { _ = df.Close() }()
	return df.Sync()
}
