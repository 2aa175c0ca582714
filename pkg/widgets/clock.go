package widgets

import (
	"context"
	"time"

	"github.com/arthur-debert/barkeep/pkg/datasource"
	"github.com/arthur-debert/barkeep/pkg/errors"
	"github.com/arthur-debert/barkeep/pkg/schema"
)

// ClockWidgetType is the configuration key of the clock widget
const ClockWidgetType = "yasb.clock.ClockWidget"

// Clock actions
const (
	ActionNextTimezone   = "next_timezone"
	ActionToggleCalendar = "toggle_calendar"
)

// ClockOptions are the options of the clock widget.
type ClockOptions struct {
	Common `mapstructure:",squash"`

	UpdateInterval int      `mapstructure:"update_interval"`
	Locale         string   `mapstructure:"locale"`
	Tooltip        bool     `mapstructure:"tooltip"`
	Timezones      []string `mapstructure:"timezones"`
	Calendar       Calendar `mapstructure:"calendar"`
}

// Calendar is the clock popup.
type Calendar struct {
	Menu `mapstructure:",squash"`

	// Distance is superseded by offset_top
	Distance int `mapstructure:"distance"`
}

func (o *ClockOptions) Interval() time.Duration {
	return millis(o.UpdateInterval)
}

func clockSchema() *schema.Schema {
	s := schema.Base("\uf017 {%H:%M:%S}", "\uf017 {%d-%m-%y %H:%M:%S}").
		Add("update_interval", schema.Integer(1000).Range(0, 60000).
			Describe("Refresh period in milliseconds")).
		Add("locale", schema.String("").Describe("Locale used for day and month names")).
		Add("tooltip", schema.Bool(true)).
		Add("timezones", schema.StringList().
			Describe("IANA zones cycled by next_timezone; empty means local time")).
		Add("calendar", schema.MenuOption(schema.New().
			Add("distance", schema.Integer(6).Describe("Deprecated, use offset_top")),
		))
	return schema.Decorated(s, ActionToggleCalendar, ActionNextTimezone, schema.ActionToggleLabel)
}

func clockSource(opts Options) (datasource.Source, error) {
	return datasource.NewClock(opts.(*ClockOptions).Timezones...)
}

func nextTimezone(_ context.Context, src datasource.Source, _ []string) error {
	clock, ok := src.(*datasource.Clock)
	if !ok {
		return errors.Newf(errors.ErrCallbackExecute, "%s needs a clock source", ActionNextTimezone)
	}
	clock.Next()
	return nil
}

func init() {
	mustRegister(&Definition{
		Type:        ClockWidgetType,
		Alias:       "clock",
		Description: "Date and time with strftime label tokens and timezone cycling",
		Schema:      clockSchema(),
		NewOptions:  func() Options { return &ClockOptions{} },
		Actions: []string{
			schema.ActionToggleLabel,
			schema.ActionUpdateLabel,
			ActionNextTimezone,
			ActionToggleCalendar,
		},
		Handlers: map[string]Handler{
			ActionNextTimezone: nextTimezone,
		},
		Source: clockSource,
	})
}
