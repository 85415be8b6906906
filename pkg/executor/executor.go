package executor

import (
	"context"
	stderrors "errors"
	"fmt"
	"io"
	"os"
	"os/exec"
	"strings"
	"syscall"

	"github.com/arthur-debert/wrapperize/pkg/errors"
	"github.com/arthur-debert/wrapperize/pkg/logging"
	"github.com/rs/zerolog"
	"golang.org/x/sys/unix"
)

// ExitStatus is how a child process ended.
type ExitStatus struct {
	// Code is the exit code, or -1 when the process did not exit normally.
	Code int
	// Signal is the terminating signal when Signaled is true.
	Signal   syscall.Signal
	Signaled bool
}

// Success reports a normal exit with code 0.
func (s ExitStatus) Success() bool {
	return !s.Signaled && s.Code == 0
}

func (s ExitStatus) String() string {
	switch {
	case s.Signaled:
		name := unix.SignalName(s.Signal)
		if name == "" {
			name = fmt.Sprintf("signal %d", int(s.Signal))
		}
		return "terminated by " + name
	case s.Code < 0:
		return "unknown exit status"
	default:
		return fmt.Sprintf("exit code %d", s.Code)
	}
}

// Err converts a failed status into an ErrProcess error. It returns nil on
// success.
func (s ExitStatus) Err(what string) error {
	if s.Success() {
		return nil
	}

	err := errors.Newf(errors.ErrProcess, "%s failed: %s", what, s)
	if s.Signaled {
		return err.WithDetail(errors.DetailSignal, unix.SignalName(s.Signal))
	}
	if s.Code >= 0 {
		return err.WithDetail(errors.DetailCode, s.Code)
	}
	return err
}

// Runner runs installer scripts.
type Runner interface {
	// RunScript streams content to an interpreter over stdin.
	RunScript(ctx context.Context, content string) (ExitStatus, error)
	// RunFile executes the script saved at path.
	RunFile(ctx context.Context, path string) (ExitStatus, error)
}

// ShellRunner is the Runner backed by real subprocesses.
type ShellRunner struct {
	// Interpreter is the command that reads a script from stdin.
	Interpreter []string
	Stdout      io.Writer
	Stderr      io.Writer

	logger zerolog.Logger
}

// NewShellRunner returns a ShellRunner wired to the process' stdout and stderr.
func NewShellRunner(interpreter []string) *ShellRunner {
	return &ShellRunner{
		Interpreter: interpreter,
		Stdout:      os.Stdout,
		Stderr:      os.Stderr,
		logger:      logging.GetLogger("executor"),
	}
}

// RunScript implements Runner.
func (r *ShellRunner) RunScript(ctx context.Context, content string) (ExitStatus, error) {
	if len(r.Interpreter) == 0 {
		return ExitStatus{Code: -1}, errors.New(errors.ErrProcess, "no shell interpreter configured")
	}

	cmd := exec.CommandContext(ctx, r.Interpreter[0], r.Interpreter[1:]...)
	cmd.Stdin = strings.NewReader(content)

	logging.LogCommand(r.Interpreter[0], r.Interpreter[1:])
	r.logger.Debug().
		Int("script_bytes", len(content)).
		Msg("Streaming installer to interpreter")

	return r.run(cmd, r.Interpreter[0])
}

// RunFile implements Runner.
func (r *ShellRunner) RunFile(ctx context.Context, path string) (ExitStatus, error) {
	cmd := exec.CommandContext(ctx, path)

	logging.LogCommand(path, nil)

	return r.run(cmd, path)
}

func (r *ShellRunner) run(cmd *exec.Cmd, path string) (ExitStatus, error) {
	cmd.Stdout = r.Stdout
	cmd.Stderr = r.Stderr

	err := cmd.Run()
	if err == nil {
		r.logger.Debug().Str("command", path).Msg("Installer finished")
		return ExitStatus{}, nil
	}

	var exitErr *exec.ExitError
	if !stderrors.As(err, &exitErr) {
		return ExitStatus{Code: -1}, errors.IO(path, err, "failed to spawn process")
	}

	status := statusOf(exitErr.ProcessState)
	r.logger.Warn().
		Str("command", path).
		Str("status", status.String()).
		Msg("Installer failed")
	return status, nil
}

func statusOf(state *os.ProcessState) ExitStatus {
	if ws, ok := state.Sys().(syscall.WaitStatus); ok && ws.Signaled() {
		return ExitStatus{Code: -1, Signal: ws.Signal(), Signaled: true}
	}
	return ExitStatus{Code: state.ExitCode()}
}
