package wrapperize

import (
	"fmt"
	"path/filepath"

	"github.com/arthur-debert/wrapperize/pkg/config"
	"github.com/arthur-debert/wrapperize/pkg/envvar"
	"github.com/arthur-debert/wrapperize/pkg/errors"
	"github.com/arthur-debert/wrapperize/pkg/executor"
	"github.com/arthur-debert/wrapperize/pkg/filesystem"
	"github.com/arthur-debert/wrapperize/pkg/logging"
	"github.com/arthur-debert/wrapperize/pkg/paths"
	"github.com/arthur-debert/wrapperize/pkg/style"
	"github.com/arthur-debert/wrapperize/pkg/wrapper"
	"github.com/spf13/cobra"
)

type wrapOptions struct {
	args     []string
	envs     []string
	noHooks  bool
	envNames string
	quoting  string
}

func addWrapFlags(cmd *cobra.Command, o *wrapOptions) {
	// StringArray keeps commas inside values intact.
	cmd.Flags().StringArrayVarP(&o.args, "arg", "a", nil, MsgFlagArg)
	cmd.Flags().StringArrayVarP(&o.envs, "env", "e", nil, MsgFlagEnv)
	cmd.Flags().BoolVar(&o.noHooks, "nohooks", false, MsgFlagNoHooks)
	cmd.Flags().StringVar(&o.envNames, "env-names", "", MsgFlagEnvNames)
	cmd.Flags().StringVar(&o.quoting, "quoting", "", MsgFlagQuoting)
}

func (o *wrapOptions) overrides() map[string]interface{} {
	overrides := make(map[string]interface{})
	if o.noHooks {
		overrides["hooks.enabled"] = false
	}
	if o.envNames != "" {
		overrides["env.name_policy"] = o.envNames
	}
	if o.quoting != "" {
		overrides["script.value_quoting"] = o.quoting
	}
	return overrides
}

// validateBinary checks that path names an existing regular file by
// absolute path.
func validateBinary(fsys filesystem.FS, path string) error {
	if !filepath.IsAbs(path) {
		return errors.Newf(errors.ErrInvalidPath, MsgErrNotAbsolute, path).WithDetail(errors.DetailPath, path)
	}

	info, err := fsys.Stat(path)
	if err != nil {
		exists, existsErr := filesystem.Exists(fsys, path)
		if existsErr == nil && !exists {
			return errors.Newf(errors.ErrInvalidPath, MsgErrNotFound, path).WithDetail(errors.DetailPath, path)
		}
		return errors.IO(path, err, "failed to inspect binary")
	}
	if !info.Mode().IsRegular() {
		return errors.Newf(errors.ErrInvalidPath, MsgErrNotRegular, path).WithDetail(errors.DetailPath, path)
	}
	return nil
}

func runWrap(cmd *cobra.Command, g *globalOptions, o *wrapOptions, path string) error {
	logger := logging.GetLogger("cmd.wrap")
	defer logging.LogOperationStart(logger, "wrap")()

	if len(o.args) == 0 && len(o.envs) == 0 {
		return errors.New(errors.ErrInvalidInput, MsgErrNoInjection)
	}

	cfg, err := g.loadConfig(o.overrides())
	if err != nil {
		return err
	}

	vars, err := envvar.ParseAll(o.envs, cfg.NamePolicy())
	if err != nil {
		return err
	}

	fsys := filesystem.NewOS()
	if g.dryRun {
		fsys = filesystem.NewReadOnlyOS()
	}
	if err := validateBinary(fsys, path); err != nil {
		return err
	}

	gen, err := paths.Resolve(path)
	if err != nil {
		return err
	}

	logger.Info().
		Str("binary", path).
		Strs("args", o.args).
		Int("env", len(vars)).
		Bool("hooks", cfg.Hooks.Enabled).
		Bool("dryRun", g.dryRun).
		Msg("Wrapping binary")

	w := newWrapperizer(fsys, cfg)
	params := wrapper.Params{Args: o.args, EnvVars: vars}

	if g.dryRun {
		plan, err := w.Plan(gen, params)
		if err != nil {
			return err
		}
		fmt.Fprint(cmd.OutOrStdout(), style.RenderPlan(plan))
		return nil
	}

	if err := w.Create(cmd.Context(), gen, params); err != nil {
		return err
	}
	fmt.Fprintln(cmd.OutOrStdout(), style.WrapperCreated(path))
	return nil
}

func newWrapperizer(fsys filesystem.FS, cfg *config.Config) *wrapper.Wrapperizer {
	return wrapper.New(fsys, executor.NewShellRunner(cfg.Shell.Interpreter), cfg.WrapperOptions())
}
