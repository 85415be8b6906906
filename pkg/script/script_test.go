package script_test

import (
	"os/exec"
	"path/filepath"
	"strings"
	"testing"

	"github.com/arthur-debert/wrapperize/pkg/envvar"
	"github.com/arthur-debert/wrapperize/pkg/errors"
	"github.com/arthur-debert/wrapperize/pkg/escape"
	"github.com/arthur-debert/wrapperize/pkg/script"
	"github.com/arthur-debert/wrapperize/pkg/testutil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestWrapper(t *testing.T) {
	r := script.NewRenderer()

	t.Run("args and env", func(t *testing.T) {
		out, err := r.Wrapper(escape.NewPath("/usr/bin/.foo-unwrapped"), script.WrapperParams{
			Args:    []string{"--flag", "a b"},
			EnvVars: []envvar.Variable{envvar.New("FOO", "bar")},
		})
		require.NoError(t, err)

		expected := "#!/usr/bin/env bash\n" +
			"export FOO=$'bar'\n" +
			"exec \"/usr/bin/.foo-unwrapped\" $'--flag' $'a b' \"$@\"\n"
		assert.Equal(t, expected, out)
	})

	t.Run("nothing injected", func(t *testing.T) {
		out, err := r.Wrapper(escape.NewPath("/usr/bin/.foo-unwrapped"), script.WrapperParams{})
		require.NoError(t, err)
		assert.Equal(t, "#!/usr/bin/env bash\nexec \"/usr/bin/.foo-unwrapped\" \"$@\"\n", out)
	})

	t.Run("escapes the unwrapped path", func(t *testing.T) {
		out, err := r.Wrapper(escape.NewPath("/opt/$x/.a\"b-unwrapped"), script.WrapperParams{})
		require.NoError(t, err)
		assert.Contains(t, out, `exec "/opt/\$x/.a\"b-unwrapped" "$@"`)
	})

	t.Run("keeps raw bytes in the unwrapped path", func(t *testing.T) {
		out, err := r.Wrapper(escape.NewPath("/opt/\xfe$bin/.foo-unwrapped"), script.WrapperParams{
			Args: []string{"caf\xe9"},
		})
		require.NoError(t, err)
		assert.Equal(t, "#!/usr/bin/env bash\nexec \"/opt/\xfe\\$bin/.foo-unwrapped\" $'caf\\xe9' \"$@\"\n", out)
	})

	t.Run("double quoting", func(t *testing.T) {
		r := script.Renderer{Interpreter: []string{"/bin/bash"}, Quoting: envvar.QuotingDouble}
		out, err := r.Wrapper(escape.NewPath("/usr/bin/.foo-unwrapped"), script.WrapperParams{
			Args:    []string{"$HOME"},
			EnvVars: []envvar.Variable{envvar.New("FOO", "`x`")},
		})
		require.NoError(t, err)

		expected := "#!/bin/bash\n" +
			"export FOO=\"\\`x\\`\"\n" +
			"exec \"/usr/bin/.foo-unwrapped\" \"\\$HOME\" \"$@\"\n"
		assert.Equal(t, expected, out)
	})

	t.Run("NUL byte fails", func(t *testing.T) {
		_, err := r.Wrapper(escape.NewPath("/usr/bin/.foo-unwrapped"), script.WrapperParams{
			Args: []string{"a\x00b"},
		})
		assert.True(t, errors.IsErrorCode(err, errors.ErrRender))

		_, err = r.Wrapper(escape.NewPath("/usr/bin/.foo-unwrapped"), script.WrapperParams{
			EnvVars: []envvar.Variable{envvar.New("FOO", "\x00")},
		})
		assert.True(t, errors.IsErrorCode(err, errors.ErrRender))
	})

	t.Run("hostile values parse", func(t *testing.T) {
		out, err := r.Wrapper(escape.NewPath("/usr/bin/.foo-unwrapped"), script.WrapperParams{
			Args:    []string{"'; rm -rf / #", "line1\nline2", "\"$(id)\""},
			EnvVars: []envvar.Variable{envvar.New("X", "`whoami`\\")},
		})
		require.NoError(t, err)
		testutil.ParseBash(t, out)
		assert.Equal(t, 3, strings.Count(out, "\n"), "every value stays on one line")
	})
}

func TestInstaller(t *testing.T) {
	r := script.NewRenderer()
	wrapper := "#!/usr/bin/env bash\nexec \"/usr/bin/.foo-unwrapped\" \"$@\"\n"

	out, err := r.Installer(escape.NewPath("/usr/bin/foo"), escape.NewPath("/usr/bin/.foo-unwrapped"), wrapper)
	require.NoError(t, err)

	expected := "#!/usr/bin/env bash\n" +
		"set -e\n" +
		"mv -f \"/usr/bin/foo\" \"/usr/bin/.foo-unwrapped\"\n" +
		"cat > \"/usr/bin/foo\" <<'WRAPPERIZE_EOF'\n" +
		wrapper +
		"WRAPPERIZE_EOF\n" +
		"chmod +x \"/usr/bin/foo\"\n"
	assert.Equal(t, expected, out)
}

func TestInstallerAddsTrailingNewline(t *testing.T) {
	out, err := script.NewRenderer().Installer(escape.NewPath("/a"), escape.NewPath("/.a-unwrapped"), "echo hi")
	require.NoError(t, err)
	assert.Contains(t, out, "echo hi\nWRAPPERIZE_EOF\n")
}

func TestDelimiter(t *testing.T) {
	assert.Equal(t, "WRAPPERIZE_EOF", script.Delimiter("echo hi\n"))
	assert.Equal(t, "WRAPPERIZE_EOF", script.Delimiter("echo WRAPPERIZE_EOF\n"))
	assert.Equal(t, "WRAPPERIZE_EOF_1", script.Delimiter("a\nWRAPPERIZE_EOF\nb\n"))
	assert.Equal(t, "WRAPPERIZE_EOF_2", script.Delimiter("WRAPPERIZE_EOF\nWRAPPERIZE_EOF_1\n"))
}

func TestValidate(t *testing.T) {
	assert.NoError(t, script.Validate("echo hi\n"))
	assert.Error(t, script.Validate("echo \"unterminated\n"))
	assert.Error(t, script.Validate("if true; then\n"))
	assert.NoError(t, script.Validate("mv -f \"/opt/\xfe/foo\" \"/opt/\xfe/.foo-unwrapped\"\n"))
	assert.Error(t, script.Validate("echo \"\xff\n"))
}

func TestInstallerRunsUnderBash(t *testing.T) {
	testutil.SkipOnWindows(t)
	testutil.RequireBash(t)

	dir := testutil.TempDir(t, "script-")
	original := testutil.CreateExecutable(t, dir, "my tool",
		"#!/usr/bin/env bash\nprintf '%s|' \"$GREETING\" \"$@\"\n")
	hidden := filepath.Join(dir, ".my tool-unwrapped")

	r := script.NewRenderer()
	wrapper, err := r.Wrapper(escape.NewPath(hidden), script.WrapperParams{
		Args:    []string{"--first", "two words"},
		EnvVars: []envvar.Variable{envvar.New("GREETING", "it's \"quoted\" $HOME")},
	})
	require.NoError(t, err)

	installer, err := r.Installer(escape.NewPath(original), escape.NewPath(hidden), wrapper)
	require.NoError(t, err)

	out, err := exec.Command("bash", "-c", installer).CombinedOutput()
	require.NoError(t, err, string(out))

	assert.True(t, testutil.IsExecutable(t, original))
	assert.True(t, testutil.IsExecutable(t, hidden))
	testutil.AssertFileContent(t, original, wrapper)

	out, err = exec.Command(original, "last").Output()
	require.NoError(t, err)
	assert.Equal(t, "it's \"quoted\" $HOME|--first|two words|last|", string(out))
}

func TestInstallerFailsWithoutOriginal(t *testing.T) {
	testutil.SkipOnWindows(t)
	testutil.RequireBash(t)

	dir := testutil.TempDir(t, "script-")
	original := filepath.Join(dir, "missing")
	hidden := filepath.Join(dir, ".missing-unwrapped")

	installer, err := script.NewRenderer().Installer(escape.NewPath(original), escape.NewPath(hidden), "exit 0\n")
	require.NoError(t, err)

	err = exec.Command("bash", "-c", installer).Run()
	assert.Error(t, err)
	testutil.AssertNoFile(t, original)
	testutil.AssertNoFile(t, hidden)
}
