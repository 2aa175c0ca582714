package widgets

import (
	"time"

	"github.com/arthur-debert/barkeep/pkg/format"
	"github.com/arthur-debert/barkeep/pkg/schema"
)

// CPUWidgetType is the configuration key of the cpu widget
const CPUWidgetType = "yasb.cpu.CpuWidget"

// CPUOptions are the options of the cpu widget.
type CPUOptions struct {
	Common `mapstructure:",squash"`

	UpdateInterval      int         `mapstructure:"update_interval"`
	HistogramIcons      []string    `mapstructure:"histogram_icons"`
	HistogramNumColumns int         `mapstructure:"histogram_num_columns"`
	CPUThresholds       Thresholds  `mapstructure:"cpu_thresholds"`
	HideDecimal         bool        `mapstructure:"hide_decimal"`
	ProgressBar         ProgressBar `mapstructure:"progress_bar"`
}

// Derive provides status, the threshold band of info[percent][total].
func (o *CPUOptions) Derive(data format.Context) format.Context {
	return statusOf(o.CPUThresholds, data, "info[percent][total]")
}

func (o *CPUOptions) Interval() time.Duration {
	return millis(o.UpdateInterval)
}

func cpuSchema() *schema.Schema {
	s := schema.Base(
		"\uf200 {info[histograms][cpu_percent]}",
		"\uf200 CPU: {info[percent][total]}% | freq: {info[freq][current]:.2f} Mhz",
	).
		Add("update_interval", schema.Integer(1000).Range(1000, 60000).
			Describe("Refresh period in milliseconds")).
		Add("histogram_icons", histogramIconsOption()).
		Add("histogram_num_columns", schema.Integer(10).Range(0, 128)).
		Add("cpu_thresholds", thresholdsOption()).
		Add("hide_decimal", schema.Bool(false)).
		Add("progress_bar", progressBarOption())
	return schema.Decorated(s, schema.ActionToggleLabel, schema.ActionDoNothing, schema.ActionDoNothing)
}

func init() {
	mustRegister(&Definition{
		Type:        CPUWidgetType,
		Alias:       "cpu",
		Description: "Processor load, frequency and per core histogram",
		Schema:      cpuSchema(),
		NewOptions:  func() Options { return &CPUOptions{} },
		Actions:     []string{schema.ActionToggleLabel},
		Sample: format.Context{
			"info": map[string]any{
				"cores": map[string]any{"physical": 8, "total": 16},
				"freq":  map[string]any{"min": 0.0, "max": 3801.0, "current": 3192.0},
				"percent": map[string]any{
					"core":  []any{12.5, 3.1, 40.0, 7.8},
					"total": 12.5,
				},
				"histograms": map[string]any{
					"cpu_freq":    "▅",
					"cpu_percent": "▁▁▂▃▂▁▁▁▁▂",
				},
			},
		},
	})
}
