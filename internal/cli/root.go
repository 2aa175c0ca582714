package cli

import (
	stderrors "errors"

	"github.com/arthur-debert/barkeep/internal/version"
	"github.com/arthur-debert/barkeep/pkg/config"
	"github.com/arthur-debert/barkeep/pkg/logging"
	"github.com/arthur-debert/barkeep/pkg/schema"
	"github.com/arthur-debert/barkeep/pkg/ui"
	"github.com/rs/zerolog/log"
	"github.com/spf13/cobra"
)

// ErrReported is returned by commands that already printed their failure.
var ErrReported = stderrors.New("failure already reported")

type options struct {
	verbosity  int
	configPath string
	lenient    bool
	output     string
}

func (o *options) policy() schema.Policy {
	if o.lenient {
		return schema.Lenient
	}
	return schema.Strict
}

func (o *options) load() (*config.Config, error) {
	return config.Load(o.configPath, o.policy())
}

func (o *options) renderer(cmd *cobra.Command) (ui.Renderer, error) {
	format, err := ui.ParseFormat(o.output)
	if err != nil {
		return nil, err
	}
	return ui.NewRenderer(format, cmd.OutOrStdout())
}

// NewRootCmd creates and returns the root command
func NewRootCmd() *cobra.Command {
	opts := &options{}

	rootCmd := &cobra.Command{
		Use:     "barkeep",
		Short:   MsgRootShort,
		Long:    MsgRootLong,
		Version: version.Version,
		PersistentPreRun: func(cmd *cobra.Command, args []string) {
			logging.SetupLoggerWithOutput(opts.verbosity, cmd.ErrOrStderr())
			log.Debug().Str("command", cmd.Name()).Msg("Command started")
		},
		SilenceUsage:  true,
		SilenceErrors: true,
		CompletionOptions: cobra.CompletionOptions{
			DisableDefaultCmd: true,
		},
		DisableAutoGenTag: true,
	}

	rootCmd.PersistentFlags().CountVarP(&opts.verbosity, "verbose", "v", MsgFlagVerbose)
	rootCmd.PersistentFlags().StringVarP(&opts.configPath, "config", "c", "", MsgFlagConfig)
	rootCmd.PersistentFlags().BoolVar(&opts.lenient, "lenient", false, MsgFlagLenient)
	rootCmd.PersistentFlags().StringVarP(&opts.output, "output", "o", "auto", MsgFlagOutput)

	initTemplateFormatting(rootCmd)

	rootCmd.AddGroup(
		&cobra.Group{ID: "config", Title: "Configuration:"},
		&cobra.Group{ID: "widgets", Title: "Widgets:"},
	)

	rootCmd.AddCommand(newVersionCmd())
	rootCmd.AddCommand(newCompletionCmd())
	rootCmd.AddCommand(newManCmd())
	rootCmd.AddCommand(newValidateCmd(opts))
	rootCmd.AddCommand(newInitCmd())
	rootCmd.AddCommand(newWidgetsCmd(opts))
	rootCmd.AddCommand(newDefaultsCmd())
	rootCmd.AddCommand(newDocsCmd(opts))
	rootCmd.AddCommand(newRenderCmd(opts))
	rootCmd.AddCommand(newClickCmd(opts))
	rootCmd.AddCommand(newRunCmd(opts))

	return rootCmd
}
