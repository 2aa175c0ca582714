package widgets

import (
	"fmt"
	"math"

	"github.com/arthur-debert/barkeep/pkg/format"
	"github.com/arthur-debert/barkeep/pkg/schema"
)

// VolumeWidgetType is the configuration key of the volume widget
const VolumeWidgetType = "yasb.volume.VolumeWidget"

// Volume actions
const (
	ActionToggleMute       = "toggle_mute"
	ActionToggleVolumeMenu = "toggle_volume_menu"
)

// VolumeOptions are the options of the volume widget. The widget refreshes on
// audio events rather than on a timer.
type VolumeOptions struct {
	Common `mapstructure:",squash"`

	MuteText    string      `mapstructure:"mute_text"`
	Tooltip     bool        `mapstructure:"tooltip"`
	ScrollStep  int         `mapstructure:"scroll_step"`
	SliderBeep  bool        `mapstructure:"slider_beep"`
	VolumeIcons []string    `mapstructure:"volume_icons"`
	AudioMenu   Menu        `mapstructure:"audio_menu"`
	ProgressBar ProgressBar `mapstructure:"progress_bar"`
}

// Icon picks the icon for a volume level. The first icon is used when muted,
// the others cover below 11%, 11-29%, 30-59% and 60% upwards.
func (o *VolumeOptions) Icon(percent int, muted bool) string {
	switch {
	case muted:
		return icon(o.VolumeIcons, 0)
	case percent < 11:
		return icon(o.VolumeIcons, 1)
	case percent < 30:
		return icon(o.VolumeIcons, 2)
	case percent < 60:
		return icon(o.VolumeIcons, 3)
	default:
		return icon(o.VolumeIcons, 4)
	}
}

// Derive provides icon and level ("42%" or the mute text).
func (o *VolumeOptions) Derive(data format.Context) format.Context {
	percent, ok := number(data, "volume[percent]")
	if !ok {
		return nil
	}
	muted := truthy(data, "volume[muted]")

	level := fmt.Sprintf("%d%%", int(math.Round(percent)))
	if muted {
		level = o.MuteText
	}
	return format.Context{
		"icon":  o.Icon(int(math.Round(percent)), muted),
		"level": level,
	}
}

func volumeSchema() *schema.Schema {
	s := schema.Base("{volume[percent]}%", "{volume[percent]}%").
		Add("mute_text", schema.String("mute")).
		Add("tooltip", schema.Bool(true)).
		Add("scroll_step", schema.Integer(2).Range(1, 100).
			Describe("Volume change per scroll step in percent")).
		Add("slider_beep", schema.Bool(true)).
		Add("volume_icons", schema.StringList(
			"\ueee8", "\uf026", "\uf027", "\uf027", "\uf028",
		).Describe("Muted icon followed by icons for rising volume")).
		Add("audio_menu", schema.MenuOption(nil)).
		Add("progress_bar", progressBarOption())
	return schema.Decorated(s, ActionToggleVolumeMenu, schema.ActionDoNothing, ActionToggleMute)
}

func init() {
	mustRegister(&Definition{
		Type:        VolumeWidgetType,
		Alias:       "volume",
		Description: "Output volume level and mute state",
		Schema:      volumeSchema(),
		NewOptions:  func() Options { return &VolumeOptions{} },
		Actions: []string{
			schema.ActionToggleLabel,
			schema.ActionUpdateLabel,
			ActionToggleMute,
			ActionToggleVolumeMenu,
		},
		Sample: format.Context{
			"volume": map[string]any{"percent": 42, "muted": false},
		},
	})
}
