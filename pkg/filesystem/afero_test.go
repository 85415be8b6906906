package filesystem_test

import (
	"context"
	"io/fs"
	"path/filepath"
	"testing"

	"github.com/arthur-debert/wrapperize/pkg/filesystem"
	"github.com/spf13/afero"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestExists(t *testing.T) {
	fsys := filesystem.NewMemory()
	require.NoError(t, fsys.MkdirAll("/usr/bin", 0755))
	require.NoError(t, fsys.WriteFile("/usr/bin/foo", []byte("bin"), 0755))

	exists, err := filesystem.Exists(fsys, "/usr/bin/foo")
	require.NoError(t, err)
	assert.True(t, exists)

	exists, err = filesystem.Exists(fsys, "/usr/bin/.foo-unwrapped")
	require.NoError(t, err)
	assert.False(t, exists)
}

func TestApplyBatch(t *testing.T) {
	batch := func() *filesystem.Batch {
		return filesystem.NewBatch().
			MkdirAll("/root/hooks", 0755).
			WriteFile("/root/hooks/foo-wrapperize-install.sh", []byte("#!/bin/sh\n"), 0755).
			WriteFile("/root/hooks/foo-wrapperize-install.hook", []byte("[Trigger]\n"), 0644)
	}

	t.Run("memory", func(t *testing.T) {
		fsys := filesystem.NewMemory()
		b := batch()
		require.Equal(t, 3, b.Len())

		require.NoError(t, fsys.Apply(context.Background(), b))

		info, err := fsys.Stat("/root/hooks/foo-wrapperize-install.sh")
		require.NoError(t, err)
		assert.Equal(t, fs.FileMode(0755), info.Mode().Perm())

		data, err := fsys.ReadFile("/root/hooks/foo-wrapperize-install.hook")
		require.NoError(t, err)
		assert.Equal(t, "[Trigger]\n", string(data))
	})

	t.Run("os", func(t *testing.T) {
		dir := t.TempDir()
		hooks := filepath.Join(dir, "etc", "pacman.d", "hooks")
		script := filepath.Join(hooks, "foo-wrapperize-install.sh")
		hookFile := filepath.Join(hooks, "foo-wrapperize-install.hook")

		b := filesystem.NewBatch().
			MkdirAll(hooks, 0755).
			WriteFile(script, []byte("echo hi\n"), 0755).
			WriteFile(hookFile, []byte("[Trigger]\n"), 0644)

		fsys := filesystem.NewOS()
		require.NoError(t, fsys.Apply(context.Background(), b))

		info, err := fsys.Stat(script)
		require.NoError(t, err)
		assert.Equal(t, fs.FileMode(0755), info.Mode().Perm())

		info, err = fsys.Stat(hookFile)
		require.NoError(t, err)
		assert.Equal(t, fs.FileMode(0644), info.Mode().Perm())

		data, err := fsys.ReadFile(script)
		require.NoError(t, err)
		assert.Equal(t, "echo hi\n", string(data))
	})

	t.Run("existing directory", func(t *testing.T) {
		dir := t.TempDir()
		path := filepath.Join(dir, "foo.hook")

		b := filesystem.NewBatch().MkdirAll(dir, 0755).WriteFile(path, []byte("x"), 0644)
		require.NoError(t, filesystem.NewOS().Apply(context.Background(), b))

		data, err := filesystem.NewOS().ReadFile(path)
		require.NoError(t, err)
		assert.Equal(t, "x", string(data))
	})

	t.Run("failure names path", func(t *testing.T) {
		fsys := filesystem.NewAferoFS(afero.NewReadOnlyFs(afero.NewMemMapFs()))

		err := fsys.Apply(context.Background(), batch())
		require.Error(t, err)
		assert.Equal(t, "/root/hooks", filesystem.FailedPath(err))
	})
}

func TestBatchPaths(t *testing.T) {
	b := filesystem.NewBatch().MkdirAll("/hooks/", 0755).WriteFile("/hooks/a", nil, 0644)
	assert.Equal(t, []string{"/hooks", "/hooks/a"}, b.Paths())
}

func TestFailedPath(t *testing.T) {
	assert.Equal(t, "", filesystem.FailedPath(assert.AnError))
	assert.Equal(t, "/x", filesystem.FailedPath(&fs.PathError{Op: "open", Path: "/x", Err: fs.ErrPermission}))
}

func TestReadFileRejectsDirectory(t *testing.T) {
	fsys := filesystem.NewAferoFS(afero.NewMemMapFs())
	require.NoError(t, fsys.MkdirAll("/etc/pacman.d/hooks", 0755))

	_, err := fsys.ReadFile("/etc/pacman.d/hooks")
	assert.ErrorIs(t, err, fs.ErrInvalid)
}

func TestRename(t *testing.T) {
	fsys := filesystem.NewMemory()
	require.NoError(t, fsys.MkdirAll("/usr/bin", 0755))
	require.NoError(t, fsys.WriteFile("/usr/bin/foo", []byte("original"), 0755))

	require.NoError(t, fsys.Rename("/usr/bin/foo", "/usr/bin/.foo-unwrapped"))

	data, err := fsys.ReadFile("/usr/bin/.foo-unwrapped")
	require.NoError(t, err)
	assert.Equal(t, "original", string(data))

	exists, err := filesystem.Exists(fsys, "/usr/bin/foo")
	require.NoError(t, err)
	assert.False(t, exists)
}

func TestReadOnlyOS(t *testing.T) {
	dir := t.TempDir()
	fsys := filesystem.NewReadOnlyOS()

	exists, err := filesystem.Exists(fsys, dir)
	require.NoError(t, err)
	assert.True(t, exists)

	path := filepath.Join(dir, "file")
	assert.Error(t, fsys.WriteFile(path, []byte("x"), 0644))

	exists, err = filesystem.Exists(filesystem.NewOS(), path)
	require.NoError(t, err)
	assert.False(t, exists)
}
