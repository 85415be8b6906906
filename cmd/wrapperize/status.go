package wrapperize

import (
	"fmt"

	"github.com/arthur-debert/wrapperize/pkg/filesystem"
	"github.com/arthur-debert/wrapperize/pkg/paths"
	"github.com/arthur-debert/wrapperize/pkg/style"
	"github.com/spf13/cobra"
)

func newStatusCmd(g *globalOptions) *cobra.Command {
	var format string

	cmd := &cobra.Command{
		Use:     "status BINARY",
		Short:   MsgStatusShort,
		Long:    MsgStatusLong,
		Args:    cobra.ExactArgs(1),
		GroupID: "core",
		RunE: func(cmd *cobra.Command, args []string) error {
			f, err := style.ParseFormat(format)
			if err != nil {
				return err
			}

			cfg, err := g.loadConfig(nil)
			if err != nil {
				return err
			}

			gen, err := paths.Resolve(args[0])
			if err != nil {
				return err
			}

			st, err := newWrapperizer(filesystem.NewReadOnlyOS(), cfg).Status(gen)
			if err != nil {
				return err
			}

			out, err := style.RenderStatus(st, f)
			if err != nil {
				return err
			}
			fmt.Fprint(cmd.OutOrStdout(), out)
			return nil
		},
	}

	cmd.Flags().StringVarP(&format, "format", "f", "text", MsgFlagFormat)
	return cmd
}
