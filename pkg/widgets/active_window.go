package widgets

import (
	"strings"

	"github.com/arthur-debert/barkeep/pkg/format"
	"github.com/arthur-debert/barkeep/pkg/rewrite"
	"github.com/arthur-debert/barkeep/pkg/schema"
)

// ActiveWindowWidgetType is the configuration key of the active window widget
const ActiveWindowWidgetType = "yasb.active_window.ActiveWindowWidget"

// ActiveWindowOptions are the options of the active window widget.
type ActiveWindowOptions struct {
	Common `mapstructure:",squash"`

	LabelNoWindow     *string        `mapstructure:"label_no_window"`
	LabelIcon         bool           `mapstructure:"label_icon"`
	LabelIconSize     int            `mapstructure:"label_icon_size"`
	MaxLengthLimit    *int           `mapstructure:"max_length"`
	MaxLengthEllipsis string         `mapstructure:"max_length_ellipsis"`
	MonitorExclusive  bool           `mapstructure:"monitor_exclusive"`
	Rewrite           []rewrite.Rule `mapstructure:"rewrite"`
	IgnoreWindow      IgnoreWindow   `mapstructure:"ignore_window"`
}

// IgnoreWindow lists windows the widget never reports.
type IgnoreWindow struct {
	Classes   []string `mapstructure:"classes"`
	Processes []string `mapstructure:"processes"`
	Titles    []string `mapstructure:"titles"`
}

// Ignores reports whether a window matches any ignore list. Class and
// process names compare exactly, titles compare case-insensitively.
func (w IgnoreWindow) Ignores(class, process, title string) bool {
	for _, c := range w.Classes {
		if c == class {
			return true
		}
	}
	for _, p := range w.Processes {
		if p == process {
			return true
		}
	}
	for _, t := range w.Titles {
		if strings.EqualFold(t, title) {
			return true
		}
	}
	return false
}

func (o *ActiveWindowOptions) RewriteRules() []rewrite.Rule {
	return o.Rewrite
}

func (o *ActiveWindowOptions) RewriteFields() []string {
	return []string{"win[title]", "win[process][name]"}
}

func (o *ActiveWindowOptions) MaxLength() (int, string) {
	return deref(o.MaxLengthLimit), o.MaxLengthEllipsis
}

func (o *ActiveWindowOptions) TruncateField() string {
	return "win[title]"
}

// Accepts rejects windows on the ignore lists.
func (o *ActiveWindowOptions) Accepts(data format.Context) bool {
	str := func(path string) string {
		v, err := format.Lookup(data, path)
		if err != nil {
			return ""
		}
		s, _ := v.(string)
		return s
	}
	return !o.IgnoreWindow.Ignores(str("win[class_name]"), str("win[process][name]"), strings.TrimSpace(str("win[title]")))
}

func (o *ActiveWindowOptions) FallbackLabel() string {
	if o.LabelNoWindow == nil {
		return ""
	}
	return *o.LabelNoWindow
}

func activeWindowSchema() *schema.Schema {
	s := schema.Base(
		"{win[title]}",
		"[class_name='{win[class_name]}' exe='{win[process][name]}' hwnd={win[hwnd]}]",
	).
		Add("label_no_window", schema.NullableString().
			Describe("Label shown when no window is focused")).
		Add("label_icon", schema.Bool(true).Describe("Show the application icon")).
		Add("label_icon_size", schema.Integer(16)).
		Add("max_length", schema.NullableInteger().AtLeast(1).
			Describe("Truncate the label to this many characters")).
		Add("max_length_ellipsis", schema.String("...")).
		Add("monitor_exclusive", schema.Bool(true).
			Describe("Only report windows on the bar's monitor")).
		Add("rewrite", schema.RewriteOption()).
		Add("ignore_window", schema.Dict(schema.New().
			Add("classes", schema.StringList()).
			Add("processes", schema.StringList()).
			Add("titles", schema.StringList()),
		).Describe("Windows that are never shown"))
	return schema.Decorated(s, schema.ActionToggleLabel, schema.ActionDoNothing, schema.ActionDoNothing)
}

func init() {
	mustRegister(&Definition{
		Type:        ActiveWindowWidgetType,
		Alias:       "active_window",
		Description: "Title and process of the focused window",
		Schema:      activeWindowSchema(),
		NewOptions:  func() Options { return &ActiveWindowOptions{} },
		Actions:     []string{schema.ActionToggleLabel},
		Sample: format.Context{
			"win": map[string]any{
				"title":      "Notepad",
				"class_name": "Notepad",
				"hwnd":       132456,
				"process":    map[string]any{"name": "notepad.exe", "pid": 4242},
			},
		},
	})
}
