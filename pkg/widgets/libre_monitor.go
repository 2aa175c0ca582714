package widgets

import (
	"time"

	"github.com/arthur-debert/barkeep/pkg/format"
	"github.com/arthur-debert/barkeep/pkg/schema"
)

// LibreMonitorWidgetType is the configuration key of the hardware sensor widget
const LibreMonitorWidgetType = "yasb.libre_monitor.LibreHardwareMonitorWidget"

// LibreMonitorOptions are the options of the hardware sensor widget.
type LibreMonitorOptions struct {
	Common `mapstructure:",squash"`

	UpdateInterval       int      `mapstructure:"update_interval"`
	SensorID             string   `mapstructure:"sensor_id"`
	HistogramIcons       []string `mapstructure:"histogram_icons"`
	HistogramNumColumns  int      `mapstructure:"histogram_num_columns"`
	Precision            int      `mapstructure:"precision"`
	HistorySize          int      `mapstructure:"history_size"`
	HistogramFixedMin    *float64 `mapstructure:"histogram_fixed_min"`
	HistogramFixedMax    *float64 `mapstructure:"histogram_fixed_max"`
	SensorIDErrorLabel   string   `mapstructure:"sensor_id_error_label"`
	ConnectionErrorLabel string   `mapstructure:"connection_error_label"`
	AuthErrorLabel       string   `mapstructure:"auth_error_label"`
	ServerHost           string   `mapstructure:"server_host"`
	ServerPort           int      `mapstructure:"server_port"`
	ServerUsername       string   `mapstructure:"server_username"`
	ServerPassword       string   `mapstructure:"server_password"`
}

func (o *LibreMonitorOptions) Interval() time.Duration {
	return millis(o.UpdateInterval)
}

func (o *LibreMonitorOptions) FallbackLabel() string {
	return o.ConnectionErrorLabel
}

func libreMonitorSchema() *schema.Schema {
	s := schema.Base(
		"<span>\U000f08ae </span> {info[value]}{info[unit]}",
		"<span>\uf437 </span>{info[histogram]} {info[value]} ({info[min]}/{info[max]}) {info[unit]}",
	).
		Add("class_name", schema.String("libre-monitor-widget")).
		Add("update_interval", schema.Integer(1000).Range(0, 60000).
			Describe("Refresh period in milliseconds")).
		Add("sensor_id", schema.String("/amdcpu/0/load/0").
			Describe("Sensor identifier as shown by the monitor web server")).
		Add("histogram_icons", histogramIconsOption()).
		Add("histogram_num_columns", schema.Integer(10).Range(0, 128)).
		Add("precision", schema.Integer(2).Range(0, 30).
			Describe("Decimal places of the sensor value")).
		Add("history_size", schema.Integer(60).Range(10, 50000)).
		Add("histogram_fixed_min", schema.NullableFloat().Range(-10000, 10000)).
		Add("histogram_fixed_max", schema.NullableFloat().Range(-10000, 10000)).
		Add("sensor_id_error_label", schema.String("N/A")).
		Add("connection_error_label", schema.String("Connection error...")).
		Add("auth_error_label", schema.String("Auth Failed...")).
		Add("server_host", schema.String("localhost")).
		Add("server_port", schema.Integer(8085).Range(0, 65535)).
		Add("server_username", schema.String("")).
		Add("server_password", schema.String(""))
	return schema.Decorated(s, schema.ActionToggleLabel, schema.ActionDoNothing, schema.ActionDoNothing)
}

func init() {
	mustRegister(&Definition{
		Type:        LibreMonitorWidgetType,
		Alias:       "libre_monitor",
		Description: "A single Libre Hardware Monitor sensor with history histogram",
		Schema:      libreMonitorSchema(),
		NewOptions:  func() Options { return &LibreMonitorOptions{} },
		Actions: []string{
			schema.ActionToggleLabel,
			schema.ActionUpdateLabel,
			ActionToggleMenu,
		},
		Sample: format.Context{
			"info": map[string]any{
				"value":     "12.50",
				"unit":      "%",
				"min":       "0.39",
				"max":       "100.00",
				"histogram": "▁▁▂▂▁▁▃▅▂▁",
			},
		},
	})
}
