package wrapper

import (
	"context"

	"github.com/arthur-debert/wrapperize/pkg/errors"
	"github.com/arthur-debert/wrapperize/pkg/executor"
)

// InstallScriptKind tells how an installer is run.
type InstallScriptKind int

const (
	// MemoryOnly installers are streamed to an interpreter and never written.
	MemoryOnly InstallScriptKind = iota
	// Saved installers live on disk with the execute bit set.
	Saved
)

func (k InstallScriptKind) String() string {
	if k == Saved {
		return "saved"
	}
	return "memory-only"
}

// InstallScript is the rendered installer together with how it will run.
// Path is only set for Saved scripts.
type InstallScript struct {
	Kind    InstallScriptKind
	Path    string
	Content string
}

// NewMemoryOnly returns an installer that is piped to an interpreter.
func NewMemoryOnly(content string) InstallScript {
	return InstallScript{Kind: MemoryOnly, Content: content}
}

// NewSaved returns an installer that is executed from path.
func NewSaved(path, content string) InstallScript {
	return InstallScript{Kind: Saved, Path: path, Content: content}
}

// Execute runs the installer with runner.
func (s InstallScript) Execute(ctx context.Context, runner executor.Runner) (executor.ExitStatus, error) {
	switch s.Kind {
	case MemoryOnly:
		return runner.RunScript(ctx, s.Content)
	case Saved:
		return runner.RunFile(ctx, s.Path)
	default:
		return executor.ExitStatus{Code: -1}, errors.Newf(errors.ErrInternal, "unknown install script kind %d", int(s.Kind))
	}
}
