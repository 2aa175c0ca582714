package widgets

import (
	"github.com/arthur-debert/barkeep/pkg/format"
	"github.com/arthur-debert/barkeep/pkg/rewrite"
	"github.com/arthur-debert/barkeep/pkg/schema"
)

// StackWidgetType is the configuration key of the komorebi stack widget
const StackWidgetType = "komorebi.stack.StackWidget"

// StackOptions are the options of the komorebi window stack widget. The
// widget has no click callbacks and labels each window of the focused stack
// with label_window, or label_window_active for the focused one.
type StackOptions struct {
	LabelOffline           string         `mapstructure:"label_offline"`
	LabelWindow            string         `mapstructure:"label_window"`
	LabelWindowActive      string         `mapstructure:"label_window_active"`
	LabelNoWindow          string         `mapstructure:"label_no_window"`
	LabelZeroIndex         bool           `mapstructure:"label_zero_index"`
	HideIfOffline          bool           `mapstructure:"hide_if_offline"`
	ShowIcons              string         `mapstructure:"show_icons"`
	IconSize               int            `mapstructure:"icon_size"`
	ShowOnlyStack          bool           `mapstructure:"show_only_stack"`
	MaxLengthWindow        *int           `mapstructure:"max_length"`
	MaxLengthActive        *int           `mapstructure:"max_length_active"`
	MaxLengthOverall       *int           `mapstructure:"max_length_overall"`
	MaxLengthEllipsis      string         `mapstructure:"max_length_ellipsis"`
	Animation              bool           `mapstructure:"animation"`
	Rewrite                []rewrite.Rule `mapstructure:"rewrite"`
	EnableScrollSwitching  bool           `mapstructure:"enable_scroll_switching"`
	ReverseScrollDirection bool           `mapstructure:"reverse_scroll_direction"`
	ContainerPadding       Padding        `mapstructure:"container_padding"`
	BtnShadow              Shadow         `mapstructure:"btn_shadow"`
	LabelShadow            Shadow         `mapstructure:"label_shadow"`
	ContainerShadow        Shadow         `mapstructure:"container_shadow"`
}

// Labels returns the focused window label first.
func (o *StackOptions) Labels() (string, string) {
	return o.LabelWindowActive, o.LabelWindow
}

func (o *StackOptions) Clicks() Callbacks {
	return Callbacks{}
}

func (o *StackOptions) RewriteRules() []rewrite.Rule {
	return o.Rewrite
}

func (o *StackOptions) RewriteFields() []string {
	return []string{"title", "process"}
}

// LabelLimits limits the focused window label by max_length_active. The
// other window labels share max_length_overall among the other windows of
// the stack ("windows" in the data), or else use max_length.
func (o *StackOptions) LabelLimits(data format.Context) (int, int, string) {
	window := deref(o.MaxLengthWindow)
	if o.MaxLengthOverall != nil {
		others := 1
		if n, ok := number(data, "windows"); ok && n > 2 {
			others = int(n) - 1
		}
		window = max(1, *o.MaxLengthOverall/others)
	}
	return deref(o.MaxLengthActive), window, o.MaxLengthEllipsis
}

func (o *StackOptions) FallbackLabel() string {
	return o.LabelOffline
}

func stackSchema() *schema.Schema {
	return schema.New().
		Add("label_offline", schema.String("Komorebi Offline").
			Describe("Label shown while komorebi is not running")).
		Add("label_window", schema.String("{title}")).
		Add("label_window_active", schema.String("{title}")).
		Add("label_no_window", schema.String("")).
		Add("label_zero_index", schema.Bool(false).
			Describe("Number windows from zero")).
		Add("hide_if_offline", schema.Bool(false)).
		Add("show_icons", schema.String("never").Enum("focused", "always", "never")).
		Add("icon_size", schema.Integer(16)).
		Add("show_only_stack", schema.Bool(false)).
		Add("max_length", schema.NullableInteger().AtLeast(1)).
		Add("max_length_active", schema.NullableInteger().AtLeast(1)).
		Add("max_length_overall", schema.NullableInteger().AtLeast(1)).
		Add("max_length_ellipsis", schema.String("...")).
		Add("animation", schema.Bool(false)).
		Add("rewrite", schema.RewriteOption()).
		Add("enable_scroll_switching", schema.Bool(false)).
		Add("reverse_scroll_direction", schema.Bool(false)).
		Add("container_padding", schema.PaddingOption()).
		Add("btn_shadow", schema.ShadowOption()).
		Add("label_shadow", schema.ShadowOption()).
		Add("container_shadow", schema.ShadowOption())
}

func init() {
	mustRegister(&Definition{
		Type:        StackWidgetType,
		Alias:       "komorebi_stack",
		Description: "Windows of the focused komorebi container stack",
		Schema:      stackSchema(),
		NewOptions:  func() Options { return &StackOptions{} },
		Sample: format.Context{
			"title":   "Visual Studio Code",
			"process": "Code.exe",
			"index":   1,
			"hwnd":    1311054,
			"windows": 3,
		},
	})
}
