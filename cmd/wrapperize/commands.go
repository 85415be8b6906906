package wrapperize

import (
	"github.com/arthur-debert/wrapperize/internal/version"
	"github.com/arthur-debert/wrapperize/pkg/config"
	"github.com/arthur-debert/wrapperize/pkg/errors"
	"github.com/arthur-debert/wrapperize/pkg/logging"
	"github.com/arthur-debert/wrapperize/pkg/style"
	"github.com/rs/zerolog/log"
	"github.com/spf13/cobra"
)

// globalOptions holds the persistent flags every command reads.
type globalOptions struct {
	verbosity  int
	dryRun     bool
	configFile string
	hooksDir   string
}

// loadConfig loads the configuration with the global flag overrides and
// any command specific ones.
func (g *globalOptions) loadConfig(overrides map[string]interface{}) (*config.Config, error) {
	if overrides == nil {
		overrides = make(map[string]interface{})
	}
	if g.hooksDir != "" {
		overrides["hooks.dir"] = g.hooksDir
	}

	return config.Load(config.Options{
		File:      g.configFile,
		Required:  g.configFile != "",
		Overrides: overrides,
	})
}

// NewRootCmd creates the wrapperize command tree. Run with a binary path it
// wraps that binary.
func NewRootCmd() *cobra.Command {
	initTemplateFormatting()

	g := &globalOptions{}
	wrapOpts := &wrapOptions{}

	rootCmd := &cobra.Command{
		Use:     "wrapperize BINARY [-a ARG]... [-e NAME=VALUE]...",
		Short:   MsgRootShort,
		Long:    MsgRootLong,
		Example: MsgRootExample,
		Version: version.Version,
		Args:    cobra.MaximumNArgs(1),
		PersistentPreRun: func(cmd *cobra.Command, args []string) {
			logging.SetupLogger(g.verbosity)
			style.Setup(cmd.OutOrStdout())
			log.Debug().Str("command", cmd.Name()).Msg("Command started")
		},
		RunE: func(cmd *cobra.Command, args []string) error {
			if len(args) == 0 {
				_ = cmd.Help()
				return errors.New(errors.ErrInvalidInput, MsgErrNoCommand)
			}
			return runWrap(cmd, g, wrapOpts, args[0])
		},
		SilenceUsage:      true,
		SilenceErrors:     true,
		DisableAutoGenTag: true,
	}

	// Global flags
	rootCmd.PersistentFlags().CountVarP(&g.verbosity, "verbose", "v", MsgFlagVerbose)
	rootCmd.PersistentFlags().BoolVar(&g.dryRun, "dry-run", false, MsgFlagDryRun)
	rootCmd.PersistentFlags().StringVar(&g.configFile, "config", "", MsgFlagConfig)
	rootCmd.PersistentFlags().StringVar(&g.hooksDir, "hooks-dir", "", MsgFlagHooksDir)

	// Wrap flags
	addWrapFlags(rootCmd, wrapOpts)

	rootCmd.AddGroup(&cobra.Group{
		ID:    "core",
		Title: "COMMANDS:",
	})
	rootCmd.AddGroup(&cobra.Group{
		ID:    "misc",
		Title: "MISC:",
	})
	rootCmd.SetHelpCommandGroupID("misc")

	rootCmd.SetUsageTemplate(MsgUsageTemplate)

	rootCmd.AddCommand(newUnwrapCmd(g))
	rootCmd.AddCommand(newStatusCmd(g))
	rootCmd.AddCommand(newConfigCmd(g))
	rootCmd.AddCommand(newVersionCmd())
	rootCmd.AddCommand(newCompletionCmd())
	rootCmd.AddCommand(newManCmd())

	return rootCmd
}
