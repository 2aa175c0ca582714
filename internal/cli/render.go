package cli

import (
	"context"

	"github.com/arthur-debert/barkeep/pkg/config"
	"github.com/arthur-debert/barkeep/pkg/datasource"
	"github.com/arthur-debert/barkeep/pkg/errors"
	"github.com/arthur-debert/barkeep/pkg/format"
	"github.com/arthur-debert/barkeep/pkg/logging"
	"github.com/arthur-debert/barkeep/pkg/schema"
	"github.com/arthur-debert/barkeep/pkg/ui"
	"github.com/arthur-debert/barkeep/pkg/widget"
	"github.com/spf13/cobra"
)

func newRenderCmd(opts *options) *cobra.Command {
	var (
		dataFile string
		alt      bool
	)

	cmd := &cobra.Command{
		Use:     "render [widget...]",
		Short:   MsgRenderShort,
		Long:    MsgRenderLong,
		GroupID: "widgets",
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := opts.load()
			if err != nil {
				return err
			}
			source, err := dataSource(dataFile)
			if err != nil {
				return err
			}
			instances, err := instancesFor(cfg, args, source)
			if err != nil {
				return err
			}

			r, err := opts.renderer(cmd)
			if err != nil {
				return err
			}

			labels := &ui.Labels{}
			for _, inst := range instances {
				if alt {
					if err := inst.Dispatch(cmd.Context(), schema.ActionToggleLabel); err != nil {
						return err
					}
				}
				refresh(cmd.Context(), inst)
				labels.Labels = append(labels.Labels, labelOf("", inst))
			}
			return r.RenderResult(labels)
		},
	}

	cmd.Flags().StringVarP(&dataFile, "data", "d", "", MsgFlagData)
	cmd.Flags().BoolVar(&alt, "alt", false, MsgFlagAlt)
	return cmd
}

func newClickCmd(opts *options) *cobra.Command {
	var dataFile string

	cmd := &cobra.Command{
		Use:       "click <widget> <left|middle|right>",
		Short:     MsgClickShort,
		Args:      cobra.ExactArgs(2),
		GroupID:   "widgets",
		ValidArgs: []string{"left", "middle", "right"},
		RunE: func(cmd *cobra.Command, args []string) error {
			button, err := widget.ParseButton(args[1])
			if err != nil {
				return err
			}
			cfg, err := opts.load()
			if err != nil {
				return err
			}
			source, err := dataSource(dataFile)
			if err != nil {
				return err
			}
			instances, err := instancesFor(cfg, args[:1], source)
			if err != nil {
				return err
			}
			inst := instances[0]

			refresh(cmd.Context(), inst)
			if err := inst.Click(cmd.Context(), button); err != nil {
				return err
			}

			r, err := opts.renderer(cmd)
			if err != nil {
				return err
			}
			label := labelOf("", inst)
			return r.RenderResult(&label)
		},
	}

	cmd.Flags().StringVarP(&dataFile, "data", "d", "", MsgFlagData)
	return cmd
}

// dataSource returns the --data source, or nil to use each widget's own.
func dataSource(path string) (datasource.Source, error) {
	if path == "" {
		return nil, nil
	}
	return datasource.FromFile(path)
}

// instancesFor builds one instance per named widget, or for every widget of
// the configuration when names is empty.
func instancesFor(cfg *config.Config, names []string, source datasource.Source) ([]*widget.Instance, error) {
	if len(names) == 0 {
		names = cfg.WidgetNames()
	}

	instances := make([]*widget.Instance, 0, len(names))
	for _, name := range names {
		resolved, ok := cfg.Widgets[name]
		if !ok {
			err := errors.Newf(errors.ErrWidgetNotFound, "widget %q is not defined", name).
				WithDetail("widget", name)
			if s := schema.Suggest(name, cfg.WidgetNames()); s != "" {
				err.WithDetail("suggestion", s)
			}
			return nil, err
		}

		inst, err := widget.New(name, resolved, source)
		if err != nil {
			return nil, err
		}
		instances = append(instances, inst)
	}
	return instances, nil
}

// refresh fetches fresh data. A failing source still leaves a label to show.
func refresh(ctx context.Context, inst *widget.Instance) {
	if _, err := inst.Update(ctx); err != nil {
		logger := logging.GetLogger("cli")
		logger.Warn().Err(err).Str("widget", inst.Name()).Msg("Widget data unavailable")
	}
}

func labelOf(bar string, inst *widget.Instance) ui.Label {
	return ui.Label{
		Bar:     bar,
		Widget:  inst.Name(),
		Label:   inst.Render(),
		Parts:   labelParts(inst.Parts()),
		Visible: inst.Visible(),
	}
}

func labelParts(parts []format.Part) []ui.LabelPart {
	if len(parts) == 0 {
		return nil
	}
	out := make([]ui.LabelPart, 0, len(parts))
	for _, p := range parts {
		out = append(out, ui.LabelPart{Class: p.Class, Text: p.Text})
	}
	return out
}
