package fsutil

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func writeFiles(t *testing.T, root string, names ...string) {
	t.Helper()
	for _, name := range names {
		p := filepath.Join(root, name)
		require.NoError(t, os.MkdirAll(filepath.Dir(p), 0755))
		require.NoError(t, os.WriteFile(p, []byte("x"), 0644))
	}
}

func TestFindFilesByExtension(t *testing.T) {
	t.Parallel()

	root := t.TempDir()
	writeFiles(t, root, "b.hcl", "a.hcl", "sub/c.hcl", "readme.md")

	files, err := FindFilesByExtension(".hcl", root)
	require.NoError(t, err)
	assert.Equal(t, []string{
		filepath.Join(root, "a.hcl"),
		filepath.Join(root, "b.hcl"),
		filepath.Join(root, "sub", "c.hcl"),
	}, files)
}

func TestFindFilesByExtension_FileAndDirOverlap(t *testing.T) {
	t.Parallel()

	root := t.TempDir()
	writeFiles(t, root, "main.hcl", "notes.txt")

	files, err := FindFilesByExtension(".hcl",
		filepath.Join(root, "main.hcl"),
		filepath.Join(root, "notes.txt"),
		root,
	)
	require.NoError(t, err)
	assert.Equal(t, []string{filepath.Join(root, "main.hcl")}, files)
}

func TestFindFilesByExtension_Errors(t *testing.T) {
	t.Parallel()

	_, err := FindFilesByExtension("", t.TempDir())
	require.Error(t, err)

	_, err = FindFilesByExtension(".hcl", filepath.Join(t.TempDir(), "missing"))
	require.Error(t, err)
	assert.ErrorIs(t, err, os.ErrNotExist)
}
