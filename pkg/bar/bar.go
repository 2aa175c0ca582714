// Package bar turns a loaded configuration into bars of running widget
// instances.
package bar

import (
	"github.com/arthur-debert/barkeep/pkg/config"
	"github.com/arthur-debert/barkeep/pkg/datasource"
	"github.com/arthur-debert/barkeep/pkg/errors"
	"github.com/arthur-debert/barkeep/pkg/logging"
	"github.com/arthur-debert/barkeep/pkg/widget"
)

// Section is a column of a bar.
type Section string

const (
	SectionLeft   Section = "left"
	SectionCenter Section = "center"
	SectionRight  Section = "right"
)

// Sections lists the columns left to right.
var Sections = []Section{SectionLeft, SectionCenter, SectionRight}

// Bar is an enabled bar with one instance per widget reference.
type Bar struct {
	Name   string
	Config *config.Bar

	Left   []*widget.Instance
	Center []*widget.Instance
	Right  []*widget.Instance
}

// Section returns the instances of one column.
func (b *Bar) Section(s Section) []*widget.Instance {
	switch s {
	case SectionLeft:
		return b.Left
	case SectionCenter:
		return b.Center
	case SectionRight:
		return b.Right
	}
	return nil
}

// Instances returns every instance of the bar, left to right.
func (b *Bar) Instances() []*widget.Instance {
	out := make([]*widget.Instance, 0, len(b.Left)+len(b.Center)+len(b.Right))
	out = append(out, b.Left...)
	out = append(out, b.Center...)
	return append(out, b.Right...)
}

// Find returns the instances of the named widget on this bar.
func (b *Bar) Find(name string) []*widget.Instance {
	var out []*widget.Instance
	for _, inst := range b.Instances() {
		if inst.Name() == name {
			out = append(out, inst)
		}
	}
	return out
}

// Build creates the enabled bars of cfg in name order. A widget referenced
// by several bars, or twice on one bar, gets a separate instance each time.
// sources overrides the data source of widgets by name.
func Build(cfg *config.Config, sources map[string]datasource.Source) ([]*Bar, error) {
	logger := logging.GetLogger("bar")

	var bars []*Bar
	for _, name := range cfg.BarNames() {
		bc := cfg.Bars[name]
		if !bc.Enabled {
			logger.Debug().Str("bar", name).Msg("Skipping disabled bar")
			continue
		}

		b := &Bar{Name: name, Config: bc}
		columns := map[Section]*[]*widget.Instance{
			SectionLeft:   &b.Left,
			SectionCenter: &b.Center,
			SectionRight:  &b.Right,
		}
		refs := map[Section][]string{
			SectionLeft:   bc.Widgets.Left,
			SectionCenter: bc.Widgets.Center,
			SectionRight:  bc.Widgets.Right,
		}

		for _, section := range Sections {
			for _, widgetName := range refs[section] {
				resolved, ok := cfg.Widgets[widgetName]
				if !ok {
					return nil, errors.Newf(errors.ErrWidgetNotFound, "bar %s references undefined widget %s", name, widgetName).
						WithDetail("bar", name).
						WithDetail("widget", widgetName)
				}

				inst, err := widget.New(widgetName, resolved, sources[widgetName])
				if err != nil {
					return nil, errors.Wrapf(err, errors.ErrWidgetInvalid, "cannot create widget %s on bar %s", widgetName, name).
						WithDetail("bar", name)
				}
				*columns[section] = append(*columns[section], inst)
			}
		}

		logger.Info().
			Str("bar", name).
			Int("widgets", len(b.Instances())).
			Msg("Bar built")
		bars = append(bars, b)
	}
	return bars, nil
}

// Instances returns every instance of every bar.
func Instances(bars []*Bar) []*widget.Instance {
	var out []*widget.Instance
	for _, b := range bars {
		out = append(out, b.Instances()...)
	}
	return out
}
