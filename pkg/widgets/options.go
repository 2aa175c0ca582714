package widgets

import (
	"time"

	"github.com/arthur-debert/barkeep/pkg/format"
	"github.com/arthur-debert/barkeep/pkg/rewrite"
)

// Options is implemented by every typed option record.
type Options interface {
	// Labels returns the primary and alternate label formats.
	Labels() (primary, alternate string)
	// Clicks returns the actions bound to mouse buttons.
	Clicks() Callbacks
}

// Periodic is implemented by options of widgets that poll their data source.
// A zero interval means render once.
type Periodic interface {
	Interval() time.Duration
}

// Rewriting is implemented by options carrying rewrite rules. RewriteFields
// names the placeholder paths the rules apply to.
type Rewriting interface {
	RewriteRules() []rewrite.Rule
	RewriteFields() []string
}

// Truncating is implemented by options with a label length limit. A limit of
// zero disables truncation.
type Truncating interface {
	MaxLength() (limit int, ellipsis string)
}

// LabelTruncating is implemented by options with separate length limits for
// the primary and the alternate label. It takes precedence over Truncating.
type LabelTruncating interface {
	LabelLimits(data format.Context) (primary, alternate int, ellipsis string)
}

// Fallback is implemented by options that name the label shown when the data
// source fails.
type Fallback interface {
	FallbackLabel() string
}

// Filter is implemented by options that can reject a data context, for
// example windows on an ignore list. Rejected data renders the fallback label.
type Filter interface {
	Accepts(data format.Context) bool
}

// FieldTruncating is implemented by Truncating options that limit a single
// placeholder value instead of the label text.
type FieldTruncating interface {
	TruncateField() string
}

// Deriving is implemented by options that compute placeholders from the
// fetched data, such as an icon picked from a level.
type Deriving interface {
	Derive(data format.Context) format.Context
}

// Hiding is implemented by options that hide the widget when its data is
// empty.
type Hiding interface {
	HideEmpty() bool
}

// Animation is the click animation block.
type Animation struct {
	Enabled  bool   `mapstructure:"enabled"`
	Type     string `mapstructure:"type"`
	Duration int    `mapstructure:"duration"`
}

// Shadow is a drop shadow block.
type Shadow struct {
	Enabled bool   `mapstructure:"enabled"`
	Color   string `mapstructure:"color"`
	Offset  []int  `mapstructure:"offset"`
	Radius  int    `mapstructure:"radius"`
}

// Padding is a four sided padding block.
type Padding struct {
	Top    int `mapstructure:"top"`
	Left   int `mapstructure:"left"`
	Bottom int `mapstructure:"bottom"`
	Right  int `mapstructure:"right"`
}

// Callbacks maps mouse buttons to action strings.
type Callbacks struct {
	OnLeft   string `mapstructure:"on_left"`
	OnMiddle string `mapstructure:"on_middle"`
	OnRight  string `mapstructure:"on_right"`
}

// Menu is the popup block of calendars and menus.
type Menu struct {
	Blur             bool   `mapstructure:"blur"`
	RoundCorners     bool   `mapstructure:"round_corners"`
	RoundCornersType string `mapstructure:"round_corners_type"`
	BorderColor      string `mapstructure:"border_color"`
	Alignment        string `mapstructure:"alignment"`
	Direction        string `mapstructure:"direction"`
	OffsetTop        int    `mapstructure:"offset_top"`
	OffsetLeft       int    `mapstructure:"offset_left"`
}

// Common holds the options shared by most widgets. Widget records embed it
// squashed so the keys sit at the top level of the mapping.
type Common struct {
	Label            string    `mapstructure:"label"`
	LabelAlt         string    `mapstructure:"label_alt"`
	ClassName        string    `mapstructure:"class_name"`
	Animation        Animation `mapstructure:"animation"`
	ContainerPadding Padding   `mapstructure:"container_padding"`
	LabelShadow      Shadow    `mapstructure:"label_shadow"`
	ContainerShadow  Shadow    `mapstructure:"container_shadow"`
	Callbacks        Callbacks `mapstructure:"callbacks"`
}

func (c *Common) Labels() (string, string) {
	return c.Label, c.LabelAlt
}

func (c *Common) Clicks() Callbacks {
	return c.Callbacks
}

func millis(ms int) time.Duration {
	return time.Duration(ms) * time.Millisecond
}

func deref(p *int) int {
	if p == nil {
		return 0
	}
	return *p
}
