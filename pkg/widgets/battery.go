package widgets

import (
	"time"

	"github.com/arthur-debert/barkeep/pkg/format"
	"github.com/arthur-debert/barkeep/pkg/schema"
)

// BatteryWidgetType is the configuration key of the battery widget
const BatteryWidgetType = "yasb.battery.BatteryWidget"

// BatteryOptions are the options of the battery widget.
type BatteryOptions struct {
	Common `mapstructure:",squash"`

	UpdateInterval       int               `mapstructure:"update_interval"`
	TimeRemainingNatural bool              `mapstructure:"time_remaining_natural"`
	HideUnsupported      bool              `mapstructure:"hide_unsupported"`
	ChargingOptions      ChargingOptions   `mapstructure:"charging_options"`
	StatusThresholds     BatteryThresholds `mapstructure:"status_thresholds"`
	StatusIcons          map[string]string `mapstructure:"status_icons"`
}

// ChargingOptions control the icon shown while charging.
type ChargingOptions struct {
	IconFormat        string `mapstructure:"icon_format"`
	BlinkChargingIcon bool   `mapstructure:"blink_charging_icon"`
	BlinkInterval     int    `mapstructure:"blink_interval"`
}

// BatteryThresholds are the charge percentages of each battery status.
type BatteryThresholds struct {
	Critical int `mapstructure:"critical"`
	Low      int `mapstructure:"low"`
	Medium   int `mapstructure:"medium"`
	High     int `mapstructure:"high"`
	Full     int `mapstructure:"full"`
}

// Status names the band a charge percentage falls into.
func (t BatteryThresholds) Status(percent int) string {
	switch {
	case percent <= t.Critical:
		return "critical"
	case percent <= t.Low:
		return "low"
	case percent <= t.Medium:
		return "medium"
	case percent <= t.High:
		return "high"
	default:
		return "full"
	}
}

// Derive provides status, the threshold band or "charging" while plugged in,
// and icon, the status icon combined with the charging icon through
// charging_options.icon_format while plugged in.
func (o *BatteryOptions) Derive(data format.Context) format.Context {
	percent, ok := number(data, "percent")
	if !ok {
		return nil
	}
	band := o.StatusThresholds.Status(int(percent))
	status, glyph := band, o.StatusIcons["icon_"+band]

	if truthy(data, "is_charging") {
		status = "charging"
		charging, err := format.Render(o.ChargingOptions.IconFormat, format.Context{
			"charging_icon": o.StatusIcons["icon_charging"],
			"icon":          glyph,
		})
		if err == nil {
			glyph = charging
		}
	}
	return format.Context{"status": status, "icon": glyph}
}

func (o *BatteryOptions) Interval() time.Duration {
	return millis(o.UpdateInterval)
}

func batterySchema() *schema.Schema {
	s := schema.Base("{icon}", "{percent}% | remaining: {time_remaining}").
		Add("update_interval", schema.Integer(5000).Range(0, 60000).
			Describe("Refresh period in milliseconds")).
		Add("time_remaining_natural", schema.Bool(false).
			Describe("Show remaining time as words instead of h:mm")).
		Add("hide_unsupported", schema.Bool(true).
			Describe("Hide the widget on machines without a battery")).
		Add("charging_options", schema.Dict(schema.New().
			Add("icon_format", schema.String("{charging_icon} {icon}")).
			Add("blink_charging_icon", schema.Bool(true)).
			Add("blink_interval", schema.Integer(500).Range(100, 5000)),
		)).
		Add("status_thresholds", schema.Dict(schema.New().
			Add("critical", schema.Integer(10).Range(0, 100)).
			Add("low", schema.Integer(25).Range(0, 100)).
			Add("medium", schema.Integer(75).Range(0, 100)).
			Add("high", schema.Integer(95).Range(0, 100)).
			Add("full", schema.Integer(100).Range(0, 100)),
		).Describe("Charge percentages of each status")).
		Add("status_icons", schema.Dict(schema.New().
			Add("icon_charging", schema.String("\uf0e7")).
			Add("icon_critical", schema.String("\uf244")).
			Add("icon_low", schema.String("\uf243")).
			Add("icon_medium", schema.String("\uf242")).
			Add("icon_high", schema.String("\uf241")).
			Add("icon_full", schema.String("\uf240")),
		))
	return schema.Decorated(s, schema.ActionToggleLabel, schema.ActionDoNothing, schema.ActionDoNothing)
}

func init() {
	mustRegister(&Definition{
		Type:        BatteryWidgetType,
		Alias:       "battery",
		Description: "Battery charge, charging state and time remaining",
		Schema:      batterySchema(),
		NewOptions:  func() Options { return &BatteryOptions{} },
		Actions:     []string{schema.ActionToggleLabel, schema.ActionUpdateLabel},
		Sample: format.Context{
			"percent":        87,
			"time_remaining": "2:10",
			"is_charging":    false,
			"is_connected":   false,
		},
	})
}
