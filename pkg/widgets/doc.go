// Package widgets is the catalogue of widget types barkeep knows about.
//
// Every widget type is described by a Definition: its type key as written in
// configuration files ("yasb.battery.BatteryWidget"), a short alias
// ("battery"), the option Schema with documented defaults, a constructor for
// the typed options record and the widget specific actions it understands.
//
// Definitions register themselves from init functions, one file per widget
// type. Resolve turns a user options mapping into a fully populated, validated
// and decoded option set:
//
//	resolved, err := widgets.Resolve("battery", map[string]any{
//		"animation": map[string]any{"duration": 500},
//	}, schema.Strict)
//	opts := resolved.Options.(*widgets.BatteryOptions)
package widgets
