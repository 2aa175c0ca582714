package widgets

import (
	"time"

	"github.com/arthur-debert/barkeep/pkg/format"
	"github.com/arthur-debert/barkeep/pkg/schema"
)

// MemoryWidgetType is the configuration key of the memory widget
const MemoryWidgetType = "yasb.memory.MemoryWidget"

// MemoryOptions are the options of the memory widget.
type MemoryOptions struct {
	Common `mapstructure:",squash"`

	UpdateInterval   int         `mapstructure:"update_interval"`
	HistogramIcons   []string    `mapstructure:"histogram_icons"`
	MemoryThresholds Thresholds  `mapstructure:"memory_thresholds"`
	HideDecimal      bool        `mapstructure:"hide_decimal"`
	ProgressBar      ProgressBar `mapstructure:"progress_bar"`
}

// Derive provides status, the threshold band of virtual_mem_percent.
func (o *MemoryOptions) Derive(data format.Context) format.Context {
	return statusOf(o.MemoryThresholds, data, "virtual_mem_percent")
}

func (o *MemoryOptions) Interval() time.Duration {
	return millis(o.UpdateInterval)
}

func memorySchema() *schema.Schema {
	s := schema.Base(
		"\uf4bc {virtual_mem_free}/{virtual_mem_total}",
		"\uf4bc VIRT: {virtual_mem_percent}% SWAP: {swap_mem_percent}%",
	).
		Add("update_interval", schema.Integer(5000).Range(1000, 60000).
			Describe("Refresh period in milliseconds")).
		Add("histogram_icons", histogramIconsOption()).
		Add("memory_thresholds", thresholdsOption()).
		Add("hide_decimal", schema.Bool(false)).
		Add("progress_bar", progressBarOption())
	return schema.Decorated(s, schema.ActionToggleLabel, schema.ActionDoNothing, schema.ActionDoNothing)
}

func init() {
	mustRegister(&Definition{
		Type:        MemoryWidgetType,
		Alias:       "memory",
		Description: "Virtual and swap memory usage",
		Schema:      memorySchema(),
		NewOptions:  func() Options { return &MemoryOptions{} },
		Actions:     []string{schema.ActionToggleLabel},
		Sample: format.Context{
			"virtual_mem_free":    "9.12GB",
			"virtual_mem_percent": 43.0,
			"virtual_mem_total":   "15.93GB",
			"virtual_mem_avail":   "9.12GB",
			"virtual_mem_used":    "6.81GB",
			"virtual_mem_outof":   "6.81GB / 15.93GB",
			"swap_mem_free":       "2.00GB",
			"swap_mem_percent":    0.0,
			"swap_mem_total":      "2.00GB",
			"histogram":           "▄",
		},
	})
}
