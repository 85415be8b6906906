package paths_test

import (
	"path/filepath"
	"testing"

	"github.com/arthur-debert/wrapperize/pkg/errors"
	"github.com/arthur-debert/wrapperize/pkg/paths"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestResolve(t *testing.T) {
	tests := []struct {
		name          string
		path          string
		wantUnwrapped string
		wantFilename  string
	}{
		{"usr bin", "/usr/bin/foo", "/usr/bin/.foo-unwrapped", "foo"},
		{"nested", "/opt/tool/bin/tool-cli", "/opt/tool/bin/.tool-cli-unwrapped", "tool-cli"},
		{"dotted", "/usr/bin/python3.12", "/usr/bin/.python3.12-unwrapped", "python3.12"},
		{"spaces and quotes", `/opt/my "app"/run`, `/opt/my "app"/.run-unwrapped`, "run"},
		{"relative", "bin/foo", "bin/.foo-unwrapped", "foo"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := paths.Resolve(tt.path)
			require.NoError(t, err)

			assert.Equal(t, tt.path, got.Wrapped.Original)
			assert.Equal(t, tt.wantUnwrapped, got.Unwrapped.Original)
			assert.Equal(t, tt.wantFilename, got.WrappedFilename)

			assert.Equal(t, filepath.Dir(tt.path), filepath.Dir(got.Unwrapped.Original))
			assert.Equal(t, "."+filepath.Base(tt.path)+"-unwrapped", filepath.Base(got.Unwrapped.Original))
		})
	}
}

func TestResolveEscapesPaths(t *testing.T) {
	got, err := paths.Resolve(`/opt/$x/"q"/foo`)
	require.NoError(t, err)

	assert.Equal(t, `/opt/\$x/\"q\"/foo`, got.Wrapped.Escaped)
	assert.Equal(t, `/opt/\$x/\"q\"/.foo-unwrapped`, got.Unwrapped.Escaped)
}

func TestResolveRejectsPathsWithoutFilename(t *testing.T) {
	for _, path := range []string{"", "/", "/usr/bin/", "/usr/bin/..", ".", "/usr/bin/foo\nbar"} {
		t.Run(path, func(t *testing.T) {
			_, err := paths.Resolve(path)
			assert.True(t, errors.IsErrorCode(err, errors.ErrInvalidPath), "got %v", err)
		})
	}
}

func TestDirs(t *testing.T) {
	t.Setenv(paths.EnvConfigFile, "/custom/config.toml")
	t.Setenv(paths.EnvStateDir, "/custom/state")

	assert.Equal(t, "/custom/config.toml", paths.ConfigFilePath())
	assert.Equal(t, "/custom/state/wrapperize.log", paths.LogFilePath())

	t.Setenv(paths.EnvConfigFile, "")
	assert.Equal(t, filepath.Join(paths.ConfigDir(), paths.ConfigFileName), paths.ConfigFilePath())
}
