package wrapperize

import (
	"fmt"

	"github.com/arthur-debert/wrapperize/pkg/filesystem"
	"github.com/arthur-debert/wrapperize/pkg/logging"
	"github.com/arthur-debert/wrapperize/pkg/paths"
	"github.com/arthur-debert/wrapperize/pkg/style"
	"github.com/spf13/cobra"
)

func newUnwrapCmd(g *globalOptions) *cobra.Command {
	return &cobra.Command{
		Use:     "unwrap BINARY",
		Short:   MsgUnwrapShort,
		Long:    MsgUnwrapLong,
		Args:    cobra.ExactArgs(1),
		GroupID: "core",
		RunE: func(cmd *cobra.Command, args []string) error {
			logger := logging.GetLogger("cmd.unwrap")
			defer logging.LogOperationStart(logger, "unwrap")()

			cfg, err := g.loadConfig(nil)
			if err != nil {
				return err
			}

			gen, err := paths.Resolve(args[0])
			if err != nil {
				return err
			}

			if g.dryRun {
				st, err := newWrapperizer(filesystem.NewReadOnlyOS(), cfg).Status(gen)
				if err != nil {
					return err
				}
				out, err := style.RenderStatus(st, style.FormatText)
				if err != nil {
					return err
				}
				fmt.Fprint(cmd.OutOrStdout(), out)
				return nil
			}

			if err := newWrapperizer(filesystem.NewOS(), cfg).Unwrap(gen); err != nil {
				return err
			}
			fmt.Fprintln(cmd.OutOrStdout(), style.WrapperRemoved(args[0]))
			return nil
		},
	}
}
