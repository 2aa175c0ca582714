package config

import "github.com/arthur-debert/barkeep/pkg/schema"

// DefaultBarName is the bar created when a file declares no bars
const DefaultBarName = "yasb-bar"

// Schema returns the schema of the top-level configuration keys. Bars and
// widgets are free mappings validated entry by entry.
func Schema() *schema.Schema {
	return schema.New().
		Add("watch_config", schema.Bool(true).Describe("Reload the bars when the config file changes")).
		Add("watch_stylesheet", schema.Bool(true).Describe("Reload styles when the stylesheet changes")).
		Add("debug", schema.Bool(false)).
		Add("env_file", schema.NullableString().Describe("Deprecated, ignored")).
		Add("update_check", schema.Bool(true)).
		Add("show_systray", schema.Bool(true)).
		Add("komorebi", wmOption(
			"komorebic start --whkd",
			"komorebic stop --whkd",
			"komorebic reload-configuration",
		)).
		Add("glazewm", wmOption(
			"glazewm.exe start",
			"glazewm.exe command wm-exit",
			"glazewm.exe command wm-exit && glazewm.exe start",
		)).
		Add("bars", schema.FreeDict(nil).Describe("Bars by name")).
		Add("widgets", schema.FreeDict(nil).Describe("Widgets by name"))
}

func wmOption(start, stop, reload string) *schema.Option {
	return schema.Dict(schema.New().
		Add("start_command", schema.String(start)).
		Add("stop_command", schema.String(stop)).
		Add("reload_command", schema.String(reload)),
	).Describe("Window manager commands")
}

// BarSchema returns the schema of a single bar.
func BarSchema() *schema.Schema {
	return schema.New().
		Add("enabled", schema.Bool(true)).
		Add("screens", schema.StringList("*").Describe(`Screens showing the bar, "*" for all`)).
		Add("class_name", schema.String("yasb-bar")).
		Add("context_menu", schema.Bool(true)).
		Add("alignment", schema.Dict(schema.New().
			Add("position", schema.String("top").Enum("top", "bottom")).
			Add("center", schema.Bool(false).Describe("Deprecated, use align")).
			Add("align", schema.String("center").Enum("left", "center", "right")),
		)).
		Add("blur_effect", schema.Dict(schema.New().
			Add("enabled", schema.Bool(false)).
			Add("dark_mode", schema.Bool(false)).
			Add("acrylic", schema.Bool(false)).
			Add("round_corners", schema.Bool(false)).
			Add("round_corners_type", schema.String("normal").Enum("normal", "small")).
			Add("border_color", schema.String("System")),
		)).
		Add("animation", schema.Dict(schema.New().
			Add("enabled", schema.Bool(true)).
			Add("duration", schema.Integer(500).AtLeast(0)),
		)).
		Add("window_flags", schema.Dict(schema.New().
			Add("always_on_top", schema.Bool(false)).
			Add("windows_app_bar", schema.Bool(false)).
			Add("hide_on_fullscreen", schema.Bool(false)).
			Add("auto_hide", schema.Bool(false)),
		)).
		Add("dimensions", schema.Dict(schema.New().
			Add("width", schema.OneOf("100%",
				schema.String("").Match(`\d{1,3}%`),
				schema.String("auto").Enum("auto"),
				schema.Integer(0).AtLeast(0),
			)).
			Add("height", schema.Integer(30).AtLeast(0)),
		)).
		Add("padding", schema.Dict(schema.New().
			Add("top", schema.Integer(0)).
			Add("left", schema.Integer(0)).
			Add("bottom", schema.Integer(0)).
			Add("right", schema.Integer(0)),
		)).
		Add("widgets", schema.Dict(schema.New().
			Add("left", schema.StringList()).
			Add("center", schema.StringList()).
			Add("right", schema.StringList()),
		)).
		Add("layouts", schema.Dict(schema.New().
			Add("left", layoutOption("left")).
			Add("center", layoutOption("center")).
			Add("right", layoutOption("right")),
		))
}

func layoutOption(alignment string) *schema.Option {
	return schema.Dict(schema.New().
		Add("alignment", schema.String(alignment).Enum("left", "center", "right")).
		Add("stretch", schema.Bool(true)),
	)
}

// entrySchema is the shape of one widgets entry.
func entrySchema() *schema.Schema {
	return schema.New().
		Add("type", schema.String("").Require().Describe("Widget type")).
		Add("options", schema.FreeDict(nil).Describe("Widget options"))
}
