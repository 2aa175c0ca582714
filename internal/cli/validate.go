package cli

import (
	"fmt"

	"github.com/arthur-debert/barkeep/pkg/config"
	"github.com/arthur-debert/barkeep/pkg/errors"
	"github.com/arthur-debert/barkeep/pkg/scaffold"
	"github.com/arthur-debert/barkeep/pkg/ui"
	"github.com/spf13/cobra"
)

func newValidateCmd(opts *options) *cobra.Command {
	return &cobra.Command{
		Use:     "validate [path]",
		Short:   MsgValidateShort,
		Long:    MsgValidateLong,
		Args:    cobra.MaximumNArgs(1),
		GroupID: "config",
		RunE: func(cmd *cobra.Command, args []string) error {
			path := opts.configPath
			if len(args) == 1 {
				path = args[0]
			}
			if path == "" {
				path = config.DefaultPath()
			}

			r, err := opts.renderer(cmd)
			if err != nil {
				return err
			}

			cfg, err := config.Load(path, opts.policy())
			if err != nil {
				if !errors.IsErrorCode(err, errors.ErrConfigValid) {
					return err
				}
				if rerr := r.RenderResult(&ui.Report{Path: path, Problems: ui.Problems(err)}); rerr != nil {
					return rerr
				}
				return ErrReported
			}

			return r.RenderResult(&ui.Report{
				Path:    cfg.Path,
				Valid:   true,
				Bars:    cfg.BarNames(),
				Widgets: cfg.WidgetNames(),
			})
		},
	}
}

func newInitCmd() *cobra.Command {
	var (
		force bool
		dir   string
	)

	cmd := &cobra.Command{
		Use:     "init",
		Short:   MsgInitShort,
		Args:    cobra.NoArgs,
		GroupID: "config",
		RunE: func(cmd *cobra.Command, args []string) error {
			written, err := scaffold.Init(cmd.Context(), dir, force)
			if err != nil {
				return err
			}
			for _, path := range written {
				fmt.Fprintf(cmd.OutOrStdout(), MsgInitWrote+"\n", path)
			}
			return nil
		},
	}

	cmd.Flags().BoolVarP(&force, "force", "f", false, MsgFlagForce)
	cmd.Flags().StringVar(&dir, "dir", "", MsgFlagDir)
	return cmd
}
