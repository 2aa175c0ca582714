package widgets

import (
	"time"

	"github.com/arthur-debert/barkeep/pkg/format"
	"github.com/arthur-debert/barkeep/pkg/schema"
)

// DiskWidgetType is the configuration key of the disk widget
const DiskWidgetType = "yasb.disk.DiskWidget"

// ActionToggleGroup opens the multi volume popup
const ActionToggleGroup = "toggle_group"

// DiskOptions are the options of the disk widget. Unlike most widgets its
// update interval is in seconds.
type DiskOptions struct {
	Common `mapstructure:",squash"`

	VolumeLabel    string      `mapstructure:"volume_label"`
	UpdateInterval int         `mapstructure:"update_interval"`
	DecimalDisplay int         `mapstructure:"decimal_display"`
	GroupLabel     GroupLabel  `mapstructure:"group_label"`
	DiskThresholds Thresholds  `mapstructure:"disk_thresholds"`
	ProgressBar    ProgressBar `mapstructure:"progress_bar"`
}

// GroupLabel is the popup listing several volumes.
type GroupLabel struct {
	Menu `mapstructure:",squash"`

	VolumeLabels  []string `mapstructure:"volume_labels"`
	ShowLabelName bool     `mapstructure:"show_label_name"`
}

// Derive provides status, the threshold band of space[used][percent].
func (o *DiskOptions) Derive(data format.Context) format.Context {
	return statusOf(o.DiskThresholds, data, "space[used][percent]")
}

func (o *DiskOptions) Interval() time.Duration {
	return time.Duration(o.UpdateInterval) * time.Second
}

func diskSchema() *schema.Schema {
	s := schema.Base(
		"{volume_label} {space[used][percent]}",
		"{volume_label} {space[used][gb]} / {space[total][gb]}",
	).
		Add("volume_label", schema.String("C").Describe("Drive letter or mount point")).
		Add("update_interval", schema.Integer(60).Range(0, 3600).
			Describe("Refresh period in seconds")).
		Add("decimal_display", schema.Integer(1).Range(0, 3)).
		Add("group_label", schema.MenuOption(schema.New().
			Add("volume_labels", schema.StringList("C")).
			Add("show_label_name", schema.Bool(true)),
		)).
		Add("disk_thresholds", thresholdsOption()).
		Add("progress_bar", progressBarOption())
	return schema.Decorated(s, schema.ActionToggleLabel, schema.ActionDoNothing, schema.ActionDoNothing)
}

func init() {
	mustRegister(&Definition{
		Type:        DiskWidgetType,
		Alias:       "disk",
		Description: "Used and free space of a volume",
		Schema:      diskSchema(),
		NewOptions:  func() Options { return &DiskOptions{} },
		Actions: []string{
			schema.ActionToggleLabel,
			schema.ActionUpdateLabel,
			ActionToggleGroup,
		},
		Sample: format.Context{
			"volume_label": "C",
			"space": map[string]any{
				"used":  map[string]any{"percent": "61.3%", "gb": "291.04GB", "mb": "298025.12MB"},
				"free":  map[string]any{"percent": "38.7%", "gb": "184.01GB", "mb": "188426.20MB"},
				"total": map[string]any{"gb": "475.05GB", "mb": "486451.32MB"},
			},
		},
	})
}
