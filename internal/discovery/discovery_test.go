package discovery

import (
	"os"
	"path/filepath"
	"runtime"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gitlab.com/tozd/go/errors"

	"findreplace/internal/testutil"
)

func TestLocate_ExistingFile(t *testing.T) {
	dir := t.TempDir()
	p := testutil.WriteFile(t, dir, "a.txt", "hello")

	got, err := Locate(p)
	require.NoError(t, err)
	assert.Equal(t, resolved(t, p), got)
}

func resolved(t *testing.T, path string) string {
	t.Helper()
	p, err := filepath.EvalSymlinks(path)
	require.NoError(t, err)
	return p
}

func TestLocate_RelativePathIsMadeAbsolute(t *testing.T) {
	dir := t.TempDir()
	testutil.WriteFile(t, dir, "sub/a.txt", "hello")
	wd, err := os.Getwd()
	require.NoError(t, err)
	require.NoError(t, os.Chdir(dir))
	t.Cleanup(func() { _ = os.Chdir(wd) })

	got, err := Locate(filepath.Join("sub", ".", "a.txt"))
	require.NoError(t, err)
	assert.True(t, filepath.IsAbs(got), "expected absolute path, got %q", got)
	assert.Equal(t, "a.txt", filepath.Base(got))
}

func TestLocate_Missing(t *testing.T) {
	dir := t.TempDir()

	_, err := Locate(filepath.Join(dir, "nope.txt"))
	require.Error(t, err)
	assert.True(t, errors.Is(err, ErrNotFound), "expected ErrNotFound, got %v", err)
}

func TestLocate_Empty(t *testing.T) {
	_, err := Locate("")
	assert.True(t, errors.Is(err, ErrNotFound), "expected ErrNotFound, got %v", err)
}

func TestLocate_DirectoryIsNotRegular(t *testing.T) {
	dir := t.TempDir()

	_, err := Locate(dir)
	require.Error(t, err)
	assert.False(t, errors.Is(err, ErrNotFound), "directory must not be reported as missing")
	assert.Contains(t, err.Error(), "not a regular file")
}

func TestLocate_ResolvesSymlinkToTarget(t *testing.T) {
	if runtime.GOOS == "windows" {
		t.Skip("symlinks need privileges on windows")
	}
	dir := t.TempDir()
	target := testutil.WriteFile(t, dir, "real.txt", "x")
	link := filepath.Join(dir, "link.txt")
	require.NoError(t, os.Symlink(target, link))

	got, err := Locate(link)
	require.NoError(t, err)
	assert.Equal(t, resolved(t, target), got)
}

func TestLocate_ResolvesSymlinkChain(t *testing.T) {
	if runtime.GOOS == "windows" {
		t.Skip("symlinks need privileges on windows")
	}
	dir := t.TempDir()
	target := testutil.WriteFile(t, dir, "data/real.txt", "x")
	first := filepath.Join(dir, "first.txt")
	second := filepath.Join(dir, "second.txt")
	require.NoError(t, os.Symlink(target, first))
	require.NoError(t, os.Symlink(first, second))

	got, err := Locate(second)
	require.NoError(t, err)
	assert.Equal(t, resolved(t, target), got)
}

func TestLocate_DanglingSymlinkIsMissing(t *testing.T) {
	if runtime.GOOS == "windows" {
		t.Skip("symlinks need privileges on windows")
	}
	dir := t.TempDir()
	link := filepath.Join(dir, "dangling.txt")
	require.NoError(t, os.Symlink(filepath.Join(dir, "gone.txt"), link))

	_, err := Locate(link)
	assert.True(t, errors.Is(err, ErrNotFound), "expected ErrNotFound, got %v", err)
}
