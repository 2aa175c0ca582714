package widgets

import "github.com/arthur-debert/barkeep/pkg/schema"

var histogramBlocks = []string{
	"▁", "▁", "▂", "▃", "▄", "▅", "▆", "▇", "█",
}

func histogramIconsOption() *schema.Option {
	return schema.StringList(histogramBlocks...).Length(9, 9).
		Describe("Nine icons from empty to full used to draw histograms")
}

// Thresholds split a percentage into low, medium, high and critical states.
type Thresholds struct {
	Low    int `mapstructure:"low"`
	Medium int `mapstructure:"medium"`
	High   int `mapstructure:"high"`
}

func thresholdsOption() *schema.Option {
	return schema.Dict(schema.New().
		Add("low", schema.Integer(25).Range(0, 100)).
		Add("medium", schema.Integer(50).Range(0, 100)).
		Add("high", schema.Integer(90).Range(0, 100)),
	).Describe("Percentages at which the status class changes")
}

// ProgressBar is the circular progress indicator drawn next to a label.
type ProgressBar struct {
	Enabled         bool     `mapstructure:"enabled"`
	Size            int      `mapstructure:"size"`
	Thickness       int      `mapstructure:"thickness"`
	Color           []string `mapstructure:"color"`
	BackgroundColor string   `mapstructure:"background_color"`
	CenterLabel     string   `mapstructure:"center_label"`
	Position        string   `mapstructure:"position"`
	Animation       bool     `mapstructure:"animation"`
}

func progressBarOption() *schema.Option {
	return schema.Dict(schema.New().
		Add("enabled", schema.Bool(false)).
		Add("size", schema.Integer(18).Range(8, 64)).
		Add("thickness", schema.Integer(3).Range(1, 10)).
		Add("color", schema.OneOf("#00C800", schema.String(""), schema.StringList()).
			Describe("A color or a list of gradient stops")).
		Add("background_color", schema.String("#3C3C3C")).
		Add("center_label", schema.String("")).
		Add("position", schema.String("left").Enum("left", "right")).
		Add("animation", schema.Bool(true)),
	).Describe("Circular progress bar")
}

// Level names the threshold band a percentage falls into.
func (t Thresholds) Level(percent float64) string {
	switch {
	case percent <= float64(t.Low):
		return "low"
	case percent <= float64(t.Medium):
		return "medium"
	case percent <= float64(t.High):
		return "high"
	default:
		return "critical"
	}
}
