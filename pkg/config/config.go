package config

import (
	"sort"

	"github.com/arthur-debert/barkeep/pkg/widgets"
)

// Config is a loaded and validated configuration file.
type Config struct {
	// Path is the file the configuration was read from
	Path string `koanf:"-"`

	WatchConfig     bool       `koanf:"watch_config"`
	WatchStylesheet bool       `koanf:"watch_stylesheet"`
	Debug           bool       `koanf:"debug"`
	EnvFile         *string    `koanf:"env_file"`
	UpdateCheck     bool       `koanf:"update_check"`
	ShowSystray     bool       `koanf:"show_systray"`
	Komorebi        WMCommands `koanf:"komorebi"`
	GlazeWM         WMCommands `koanf:"glazewm"`

	// Bars holds every declared bar, enabled or not
	Bars map[string]*Bar `koanf:"bars"`

	// Widgets holds the resolved options of every valid widget entry
	Widgets map[string]*widgets.Resolved `koanf:"-"`
}

// WMCommands are the commands used to drive a tiling window manager.
type WMCommands struct {
	StartCommand  string `koanf:"start_command"`
	StopCommand   string `koanf:"stop_command"`
	ReloadCommand string `koanf:"reload_command"`
}

// Bar is the configuration of one bar.
type Bar struct {
	Name        string      `koanf:"-"`
	Enabled     bool        `koanf:"enabled"`
	Screens     []string    `koanf:"screens"`
	ClassName   string      `koanf:"class_name"`
	ContextMenu bool        `koanf:"context_menu"`
	Alignment   Alignment   `koanf:"alignment"`
	BlurEffect  BlurEffect  `koanf:"blur_effect"`
	Animation   Animation   `koanf:"animation"`
	WindowFlags WindowFlags `koanf:"window_flags"`
	Dimensions  Dimensions  `koanf:"dimensions"`
	Padding     Padding     `koanf:"padding"`
	Widgets     Columns     `koanf:"widgets"`
	Layouts     Layouts     `koanf:"layouts"`
}

type Alignment struct {
	Position string `koanf:"position"`
	Center   bool   `koanf:"center"`
	Align    string `koanf:"align"`
}

type BlurEffect struct {
	Enabled          bool   `koanf:"enabled"`
	DarkMode         bool   `koanf:"dark_mode"`
	Acrylic          bool   `koanf:"acrylic"`
	RoundCorners     bool   `koanf:"round_corners"`
	RoundCornersType string `koanf:"round_corners_type"`
	BorderColor      string `koanf:"border_color"`
}

type Animation struct {
	Enabled  bool `koanf:"enabled"`
	Duration int  `koanf:"duration"`
}

type WindowFlags struct {
	AlwaysOnTop      bool `koanf:"always_on_top"`
	WindowsAppBar    bool `koanf:"windows_app_bar"`
	HideOnFullscreen bool `koanf:"hide_on_fullscreen"`
	AutoHide         bool `koanf:"auto_hide"`
}

// Dimensions of a bar. Width is a percentage, "auto" or pixels.
type Dimensions struct {
	Width  string `koanf:"width"`
	Height int    `koanf:"height"`
}

type Padding struct {
	Top    int `koanf:"top"`
	Left   int `koanf:"left"`
	Bottom int `koanf:"bottom"`
	Right  int `koanf:"right"`
}

// Columns lists widget names per bar section.
type Columns struct {
	Left   []string `koanf:"left"`
	Center []string `koanf:"center"`
	Right  []string `koanf:"right"`
}

// All returns every widget name of the bar, left to right.
func (c Columns) All() []string {
	out := make([]string, 0, len(c.Left)+len(c.Center)+len(c.Right))
	out = append(out, c.Left...)
	out = append(out, c.Center...)
	return append(out, c.Right...)
}

type Layouts struct {
	Left   Layout `koanf:"left"`
	Center Layout `koanf:"center"`
	Right  Layout `koanf:"right"`
}

type Layout struct {
	Alignment string `koanf:"alignment"`
	Stretch   bool   `koanf:"stretch"`
}

// BarNames returns the bar names in sorted order.
func (c *Config) BarNames() []string {
	names := make([]string, 0, len(c.Bars))
	for name := range c.Bars {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}

// WidgetNames returns the widget names in sorted order.
func (c *Config) WidgetNames() []string {
	names := make([]string, 0, len(c.Widgets))
	for name := range c.Widgets {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}
