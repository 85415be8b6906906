package executor_test

import (
	"bytes"
	"context"
	"os/exec"
	"path/filepath"
	"syscall"
	"testing"

	"github.com/arthur-debert/wrapperize/pkg/errors"
	"github.com/arthur-debert/wrapperize/pkg/executor"
	"github.com/arthur-debert/wrapperize/pkg/testutil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newRunner(t *testing.T) (*executor.ShellRunner, *bytes.Buffer) {
	t.Helper()
	testutil.SkipOnWindows(t)
	testutil.RequireBash(t)

	bash, err := exec.LookPath("bash")
	require.NoError(t, err)

	var out bytes.Buffer
	r := executor.NewShellRunner([]string{bash})
	r.Stdout = &out
	r.Stderr = &out
	return r, &out
}

func TestExitStatus(t *testing.T) {
	assert.True(t, executor.ExitStatus{}.Success())
	assert.False(t, executor.ExitStatus{Code: 3}.Success())
	assert.False(t, executor.ExitStatus{Code: -1, Signal: syscall.SIGKILL, Signaled: true}.Success())

	assert.Equal(t, "exit code 3", executor.ExitStatus{Code: 3}.String())
	assert.Equal(t, "terminated by SIGKILL", executor.ExitStatus{Code: -1, Signal: syscall.SIGKILL, Signaled: true}.String())
	assert.Equal(t, "unknown exit status", executor.ExitStatus{Code: -1}.String())
}

func TestExitStatusErr(t *testing.T) {
	assert.NoError(t, executor.ExitStatus{}.Err("installer"))

	err := executor.ExitStatus{Code: 2}.Err("installer")
	require.Error(t, err)
	assert.True(t, errors.IsErrorCode(err, errors.ErrProcess))
	assert.Contains(t, err.Error(), "installer failed: exit code 2")
	assert.Equal(t, 2, errors.GetErrorDetails(err)[errors.DetailCode])

	err = executor.ExitStatus{Code: -1, Signal: syscall.SIGTERM, Signaled: true}.Err("installer")
	assert.Equal(t, "SIGTERM", errors.GetErrorDetails(err)[errors.DetailSignal])
}

func TestRunScript(t *testing.T) {
	r, out := newRunner(t)

	status, err := r.RunScript(context.Background(), "echo from-stdin\n")
	require.NoError(t, err)
	assert.True(t, status.Success())
	assert.Equal(t, "from-stdin\n", out.String())
}

func TestRunScriptExitCode(t *testing.T) {
	r, _ := newRunner(t)

	status, err := r.RunScript(context.Background(), "exit 7\n")
	require.NoError(t, err)
	assert.Equal(t, 7, status.Code)
	assert.False(t, status.Signaled)
}

func TestRunScriptSignal(t *testing.T) {
	r, _ := newRunner(t)

	status, err := r.RunScript(context.Background(), "kill -TERM $$\n")
	require.NoError(t, err)
	assert.True(t, status.Signaled)
	assert.Equal(t, syscall.SIGTERM, status.Signal)
}

func TestRunScriptWithoutInterpreter(t *testing.T) {
	r := executor.NewShellRunner(nil)
	_, err := r.RunScript(context.Background(), "true\n")
	assert.True(t, errors.IsErrorCode(err, errors.ErrProcess))
}

func TestRunFile(t *testing.T) {
	r, out := newRunner(t)
	dir := testutil.TempDir(t, "executor-")
	script := testutil.CreateExecutable(t, dir, "install.sh", "#!/usr/bin/env bash\necho saved\nexit 4\n")

	status, err := r.RunFile(context.Background(), script)
	require.NoError(t, err)
	assert.Equal(t, 4, status.Code)
	assert.Equal(t, "saved\n", out.String())
}

func TestRunFileMissing(t *testing.T) {
	r, _ := newRunner(t)
	missing := filepath.Join(testutil.TempDir(t, "executor-"), "nope.sh")

	_, err := r.RunFile(context.Background(), missing)
	require.Error(t, err)
	assert.True(t, errors.IsErrorCode(err, errors.ErrIO))
	assert.Equal(t, missing, errors.GetErrorDetails(err)[errors.DetailPath])
}
