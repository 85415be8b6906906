package wrapper

import (
	"context"
	"fmt"

	"github.com/arthur-debert/wrapperize/pkg/envvar"
	"github.com/arthur-debert/wrapperize/pkg/errors"
	"github.com/arthur-debert/wrapperize/pkg/executor"
	"github.com/arthur-debert/wrapperize/pkg/filesystem"
	"github.com/arthur-debert/wrapperize/pkg/hook"
	"github.com/arthur-debert/wrapperize/pkg/logging"
	"github.com/arthur-debert/wrapperize/pkg/paths"
	"github.com/arthur-debert/wrapperize/pkg/script"
	"github.com/rs/zerolog"
)

// Params is what the wrapper injects into every invocation.
type Params struct {
	Args    []string
	EnvVars []envvar.Variable
}

// Options configures a Wrapperizer.
type Options struct {
	Layout        hook.Layout
	RemoveCommand string
	// UseHooks saves the installer and writes both pacman hooks.
	UseHooks bool
	Renderer script.Renderer
}

// DefaultOptions returns the options used when nothing is configured.
func DefaultOptions() Options {
	return Options{
		Layout:        hook.DefaultLayout(),
		RemoveCommand: hook.DefaultRemoveCommand,
		UseHooks:      true,
		Renderer:      script.NewRenderer(),
	}
}

// PlannedHook is a rendered hook file.
type PlannedHook struct {
	Hook    hook.Hook
	Content string
}

// Plan holds every artifact of a wrap, fully rendered.
type Plan struct {
	Generated *paths.Generated
	Wrapper   string
	Installer InstallScript
	// Hooks is empty when hooks are disabled.
	Hooks []PlannedHook
}

// Wrapperizer creates and removes wrappers.
type Wrapperizer struct {
	fs     filesystem.FS
	runner executor.Runner
	opts   Options
	logger zerolog.Logger
}

// New returns a Wrapperizer operating on fsys and running installers with
// runner.
func New(fsys filesystem.FS, runner executor.Runner, opts Options) *Wrapperizer {
	if opts.RemoveCommand == "" {
		opts.RemoveCommand = hook.DefaultRemoveCommand
	}
	return &Wrapperizer{
		fs:     fsys,
		runner: runner,
		opts:   opts,
		logger: logging.GetLogger("wrapper"),
	}
}

func (w *Wrapperizer) hookGenerator() hook.Generator {
	return hook.Generator{Layout: w.opts.Layout, RemoveCommand: w.opts.RemoveCommand}
}

// Plan renders every artifact for wrapping gen. Nothing is written.
func (w *Wrapperizer) Plan(gen *paths.Generated, params Params) (*Plan, error) {
	exists, err := filesystem.Exists(w.fs, gen.Unwrapped.Original)
	if err != nil {
		return nil, errors.IO(gen.Unwrapped.Original, err, "failed to check for an existing wrapper")
	}
	if exists {
		return nil, errors.Newf(errors.ErrAlreadyWrapped,
			"`%s` is already wrapped: `%s` exists", gen.Wrapped, gen.Unwrapped).
			WithDetail(errors.DetailPath, gen.Unwrapped.Original)
	}

	r := w.opts.Renderer
	wrapperText, err := r.Wrapper(gen.Unwrapped, script.WrapperParams{Args: params.Args, EnvVars: params.EnvVars})
	if err != nil {
		return nil, err
	}

	installerText, err := r.Installer(gen.Wrapped, gen.Unwrapped, wrapperText)
	if err != nil {
		return nil, err
	}

	plan := &Plan{Generated: gen, Wrapper: wrapperText}
	if !w.opts.UseHooks {
		plan.Installer = NewMemoryOnly(installerText)
		return plan, nil
	}

	plan.Installer = NewSaved(w.opts.Layout.InstallScriptPath(gen.WrappedFilename), installerText)

	g := w.hookGenerator()
	for _, action := range hook.TriggerActions {
		h := hook.New(w.opts.Layout, gen.WrappedFilename, action)
		content, err := g.Content(h, gen)
		if err != nil {
			return nil, err
		}
		plan.Hooks = append(plan.Hooks, PlannedHook{Hook: h, Content: content})
	}
	return plan, nil
}

// Apply persists plan and runs its installer. A non-zero installer exit
// is returned as ErrProcess.
func (w *Wrapperizer) Apply(ctx context.Context, plan *Plan) error {
	if plan.Installer.Kind == Saved {
		if err := w.persist(ctx, plan); err != nil {
			return err
		}
	}

	w.logger.Info().
		Str("binary", plan.Generated.Wrapped.Original).
		Str("installer", plan.Installer.Kind.String()).
		Msg("Running installer")

	status, err := plan.Installer.Execute(ctx, w.runner)
	if err != nil {
		return err
	}
	if err := status.Err(fmt.Sprintf("installer for `%s`", plan.Generated.Wrapped)); err != nil {
		return err
	}

	w.logger.Info().Str("binary", plan.Generated.Wrapped.Original).Msg("Wrapper installed")
	return nil
}

// persist saves the installer and both hooks as one filesystem batch.
func (w *Wrapperizer) persist(ctx context.Context, plan *Plan) error {
	dir := w.opts.Layout.Dir
	batch := filesystem.NewBatch().
		MkdirAll(dir, 0755).
		WriteFile(plan.Installer.Path, []byte(plan.Installer.Content), 0755)
	for _, ph := range plan.Hooks {
		batch.WriteFile(ph.Hook.Path, []byte(ph.Content), 0644)
	}

	if err := w.fs.Apply(ctx, batch); err != nil {
		path := filesystem.FailedPath(err)
		if path == "" {
			path = dir
		}
		return errors.IO(path, err, "failed to save installer and pacman hooks")
	}

	w.logger.Debug().
		Strs("paths", batch.Paths()).
		Msg("Saved installer script and pacman hooks")
	return nil
}

// Create wraps gen: Plan followed by Apply.
func (w *Wrapperizer) Create(ctx context.Context, gen *paths.Generated, params Params) error {
	plan, err := w.Plan(gen, params)
	if err != nil {
		return err
	}
	return w.Apply(ctx, plan)
}
