package widgets

import (
	"time"

	"github.com/arthur-debert/barkeep/pkg/format"
	"github.com/arthur-debert/barkeep/pkg/schema"
)

// WifiWidgetType is the configuration key of the wifi widget
const WifiWidgetType = "yasb.wifi.WifiWidget"

// ActionToggleMenu opens the widget popup
const ActionToggleMenu = "toggle_menu"

// WifiOptions are the options of the wifi widget.
type WifiOptions struct {
	Common `mapstructure:",squash"`

	UpdateInterval       int      `mapstructure:"update_interval"`
	WifiIcons            []string `mapstructure:"wifi_icons"`
	EthernetLabel        string   `mapstructure:"ethernet_label"`
	EthernetLabelAlt     string   `mapstructure:"ethernet_label_alt"`
	EthernetIcon         string   `mapstructure:"ethernet_icon"`
	GetExactWifiStrength bool     `mapstructure:"get_exact_wifi_strength"`
	HideIfEthernet       bool     `mapstructure:"hide_if_ethernet"`
	MenuConfig           WifiMenu `mapstructure:"menu_config"`
}

// WifiMenu is the network list popup.
type WifiMenu struct {
	Menu `mapstructure:",squash"`

	WifiIconsSecured   []string `mapstructure:"wifi_icons_secured"`
	WifiIconsUnsecured []string `mapstructure:"wifi_icons_unsecured"`
}

func (o *WifiOptions) Interval() time.Duration {
	return millis(o.UpdateInterval)
}

// Icon picks the signal icon for a strength percentage: 80% and up uses the
// last icon, then 60%, 40% and 20% step down one icon each.
func (o *WifiOptions) Icon(strength int) string {
	switch {
	case strength >= 80:
		return icon(o.WifiIcons, 4)
	case strength >= 60:
		return icon(o.WifiIcons, 3)
	case strength >= 40:
		return icon(o.WifiIcons, 2)
	case strength >= 20:
		return icon(o.WifiIcons, 1)
	default:
		return icon(o.WifiIcons, 0)
	}
}

// Derive provides wifi_icon from wifi_strength.
func (o *WifiOptions) Derive(data format.Context) format.Context {
	strength, ok := number(data, "wifi_strength")
	if !ok {
		return nil
	}
	return format.Context{"wifi_icon": o.Icon(int(strength))}
}

func wifiSchema() *schema.Schema {
	s := schema.Base("{wifi_icon}", "{wifi_icon} {wifi_name}").
		Add("update_interval", schema.Integer(1000).Range(0, 60000).
			Describe("Refresh period in milliseconds")).
		Add("wifi_icons", schema.StringList(
			"\U000f092e", "\U000f091f", "\U000f0922", "\U000f0925", "\U000f0928",
		).Describe("Icons for below 20%, 20-39%, 40-59%, 60-79% and 80-100% signal")).
		Add("ethernet_label", schema.String("{wifi_icon}")).
		Add("ethernet_label_alt", schema.String("{wifi_icon} {ip_addr}")).
		Add("ethernet_icon", schema.String("\ueba9")).
		Add("get_exact_wifi_strength", schema.Bool(false)).
		Add("hide_if_ethernet", schema.Bool(false)).
		Add("menu_config", schema.MenuOption(schema.New().
			Add("wifi_icons_secured", schema.StringList("\ue670", "\ue671", "\ue672", "\ue673")).
			Add("wifi_icons_unsecured", schema.StringList("\uec3c", "\uec3d", "\uec3e", "\uec3f")),
		))
	return schema.Decorated(s, schema.ActionToggleLabel, schema.ActionDoNothing, schema.ActionDoNothing)
}

func init() {
	mustRegister(&Definition{
		Type:        WifiWidgetType,
		Alias:       "wifi",
		Description: "Wireless or wired connection state",
		Schema:      wifiSchema(),
		NewOptions:  func() Options { return &WifiOptions{} },
		Actions: []string{
			schema.ActionToggleLabel,
			schema.ActionUpdateLabel,
			ActionToggleMenu,
		},
		Sample: format.Context{
			"wifi_name":     "home-5g",
			"wifi_strength": 82,
			"ip_addr":       "192.168.1.20",
		},
	})
}
