package cli

import (
	"encoding/json"
	"fmt"
	"sort"
	"strings"

	"github.com/arthur-debert/barkeep/pkg/config"
	"github.com/arthur-debert/barkeep/pkg/errors"
	"github.com/arthur-debert/barkeep/pkg/schema"
	"github.com/arthur-debert/barkeep/pkg/ui"
	"github.com/arthur-debert/barkeep/pkg/widgets"
	"github.com/pelletier/go-toml/v2"
	"github.com/spf13/cobra"
	"gopkg.in/yaml.v3"
)

func newWidgetsCmd(opts *options) *cobra.Command {
	return &cobra.Command{
		Use:     "widgets",
		Short:   MsgWidgetsShort,
		Args:    cobra.NoArgs,
		GroupID: "widgets",
		RunE: func(cmd *cobra.Command, args []string) error {
			r, err := opts.renderer(cmd)
			if err != nil {
				return err
			}

			list := &ui.WidgetList{}
			for _, def := range widgets.All() {
				list.Widgets = append(list.Widgets, ui.WidgetInfo{
					Type:        def.Type,
					Alias:       def.Alias,
					Description: def.Description,
					Actions:     def.Actions,
				})
			}
			return r.RenderResult(list)
		},
	}
}

func newDefaultsCmd() *cobra.Command {
	var format string

	cmd := &cobra.Command{
		Use:               "defaults <type>",
		Short:             MsgDefaultsShort,
		Args:              cobra.ExactArgs(1),
		GroupID:           "widgets",
		ValidArgsFunction: completeWidgetTypes,
		RunE: func(cmd *cobra.Command, args []string) error {
			def, err := widgets.Lookup(args[0])
			if err != nil {
				return err
			}

			out, err := marshalEntry(def.Type, def.Schema.Defaults(), format)
			if err != nil {
				return err
			}
			_, err = cmd.OutOrStdout().Write(out)
			return err
		},
	}

	cmd.Flags().StringVarP(&format, "format", "f", "yaml", MsgFlagFormat)
	return cmd
}

// marshalEntry encodes a ready to paste widgets entry.
func marshalEntry(widgetType string, defaults map[string]any, format string) ([]byte, error) {
	entry := map[string]any{"type": widgetType, "options": defaults}

	switch strings.ToLower(format) {
	case "yaml", "yml":
		return yaml.Marshal(entry)
	case "json":
		out, err := json.MarshalIndent(entry, "", "  ")
		if err != nil {
			return nil, err
		}
		return append(out, '\n'), nil
	case "toml":
		return toml.Marshal(dropNil(entry))
	default:
		return nil, errors.Newf(errors.ErrInvalidInput, "unknown defaults format %q", format).
			WithDetail("format", format)
	}
}

// dropNil removes null values, which TOML cannot express.
func dropNil(m map[string]any) map[string]any {
	out := make(map[string]any, len(m))
	for k, v := range m {
		switch val := v.(type) {
		case nil:
		case map[string]any:
			out[k] = dropNil(val)
		default:
			out[k] = v
		}
	}
	return out
}

func newDocsCmd(opts *options) *cobra.Command {
	return &cobra.Command{
		Use:               "docs [type]",
		Short:             MsgDocsShort,
		Args:              cobra.MaximumNArgs(1),
		GroupID:           "widgets",
		ValidArgsFunction: completeWidgetTypes,
		RunE: func(cmd *cobra.Command, args []string) error {
			var doc string
			if len(args) == 0 {
				doc = configDoc()
			} else {
				def, err := widgets.Lookup(args[0])
				if err != nil {
					return err
				}
				doc = widgetDoc(def)
			}

			r, err := opts.renderer(cmd)
			if err != nil {
				return err
			}
			return r.RenderResult(&ui.Document{Markdown: doc})
		},
	}
}

func configDoc() string {
	var b strings.Builder
	b.WriteString(config.Schema().Markdown("Configuration file"))
	b.WriteString("\n")
	b.WriteString(config.BarSchema().Markdown("Bars"))
	b.WriteString("\nWidget entries are `{type, options}`. Run `barkeep widgets` for the types.\n")
	return b.String()
}

func widgetDoc(def *widgets.Definition) string {
	var b strings.Builder
	fmt.Fprintf(&b, "# %s\n\n%s\n\n", def.Type, def.Description)
	if def.Alias != "" {
		fmt.Fprintf(&b, "Alias: `%s`\n\n", def.Alias)
	}
	if len(def.Actions) > 0 {
		fmt.Fprintf(&b, "Actions: `%s`\n\n", strings.Join(def.Actions, "`, `"))
	}
	placeholders := def.Sample
	if resolved, err := def.Resolve(nil, schema.Strict); err == nil {
		placeholders = widgets.Derived(resolved.Options, def.Sample)
	}
	if len(placeholders) > 0 {
		keys := make([]string, 0, len(placeholders))
		for k := range placeholders {
			keys = append(keys, "`{"+k+"}`")
		}
		sort.Strings(keys)
		fmt.Fprintf(&b, "Placeholders: %s\n\n", strings.Join(keys, ", "))
	}
	b.WriteString(def.Schema.Markdown(""))
	return b.String()
}

func completeWidgetTypes(cmd *cobra.Command, args []string, toComplete string) ([]string, cobra.ShellCompDirective) {
	if len(args) > 0 {
		return nil, cobra.ShellCompDirectiveNoFileComp
	}
	var out []string
	for _, def := range widgets.All() {
		out = append(out, def.Type)
		if def.Alias != "" {
			out = append(out, def.Alias)
		}
	}
	return out, cobra.ShellCompDirectiveNoFileComp
}
