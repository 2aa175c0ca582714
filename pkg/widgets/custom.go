package widgets

import (
	"context"
	"time"

	"github.com/arthur-debert/barkeep/pkg/datasource"
	"github.com/arthur-debert/barkeep/pkg/schema"
)

// CustomWidgetType is the configuration key of the custom command widget
const CustomWidgetType = "yasb.custom.CustomWidget"

// ActionExecCustom re-runs the widget command
const ActionExecCustom = "exec_custom"

// CustomOptions are the options of the custom command widget.
type CustomOptions struct {
	Common `mapstructure:",squash"`

	LabelPlaceholder string      `mapstructure:"label_placeholder"`
	LabelMaxLength   *int        `mapstructure:"label_max_length"`
	ExecOptions      ExecOptions `mapstructure:"exec_options"`
}

// ExecOptions describe the command feeding the widget.
type ExecOptions struct {
	RunCmd       *string `mapstructure:"run_cmd"`
	RunOnce      bool    `mapstructure:"run_once"`
	RunInterval  int     `mapstructure:"run_interval"`
	ReturnFormat string  `mapstructure:"return_format"`
	HideEmpty    bool    `mapstructure:"hide_empty"`
	UseShell     bool    `mapstructure:"use_shell"`
	Encoding     *string `mapstructure:"encoding"`
}

func (o *CustomOptions) Interval() time.Duration {
	if o.ExecOptions.RunOnce {
		return 0
	}
	return millis(o.ExecOptions.RunInterval)
}

func (o *CustomOptions) MaxLength() (int, string) {
	return deref(o.LabelMaxLength), "..."
}

func (o *CustomOptions) FallbackLabel() string {
	return o.LabelPlaceholder
}

// HideEmpty reports whether the widget hides itself when the command
// produced no data.
func (o *CustomOptions) HideEmpty() bool {
	return o.ExecOptions.HideEmpty
}

func customSchema() *schema.Schema {
	s := schema.Base("", "").
		Add("class_name", schema.String("").Require().
			Describe("Style class of the widget container")).
		Add("label", schema.String("").Require().
			Describe("Primary label format, command output is available as {data}")).
		Add("label_placeholder", schema.String("Loading...").
			Describe("Label shown until the command first returns")).
		Add("label_max_length", schema.NullableInteger().AtLeast(1)).
		Add("exec_options", schema.Dict(schema.New().
			Add("run_cmd", schema.NullableString().Describe("Command to run")).
			Add("run_once", schema.Bool(false)).
			Add("run_interval", schema.Integer(120000).AtLeast(0).
				Describe("Milliseconds between runs")).
			Add("return_format", schema.String("json").Enum("string", "json")).
			Add("hide_empty", schema.Bool(false)).
			Add("use_shell", schema.Bool(true)).
			Add("encoding", schema.NullableString().
				Describe("Character encoding of the command output")),
		))
	return schema.Decorated(s, schema.ActionToggleLabel, schema.ActionDoNothing, schema.ActionDoNothing)
}

func customSource(opts Options) (datasource.Source, error) {
	exec := opts.(*CustomOptions).ExecOptions
	if exec.RunCmd == nil || *exec.RunCmd == "" {
		return datasource.NewStatic(nil), nil
	}

	encoding := ""
	if exec.Encoding != nil {
		encoding = *exec.Encoding
	}
	return datasource.NewCommand(*exec.RunCmd, datasource.CommandOptions{
		UseShell: exec.UseShell,
		Format:   exec.ReturnFormat,
		Encoding: encoding,
	})
}

func init() {
	mustRegister(&Definition{
		Type:        CustomWidgetType,
		Alias:       "custom",
		Description: "Label fed by the output of a user command",
		Schema:      customSchema(),
		NewOptions:  func() Options { return &CustomOptions{} },
		Actions: []string{
			schema.ActionToggleLabel,
			schema.ActionUpdateLabel,
			ActionExecCustom,
		},
		Handlers: map[string]Handler{
			// The instance refreshes after every handler, which reruns the command.
			ActionExecCustom: func(context.Context, datasource.Source, []string) error { return nil },
		},
		Source: customSource,
	})
}
