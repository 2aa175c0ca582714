// Package widget runs configured widget instances.
//
// An Instance pairs a resolved option set with a data source. It keeps the
// latest data context, renders the primary or alternate label against it and
// dispatches callback actions bound to mouse buttons:
//
//	inst, _ := widget.New("battery", resolved, nil)
//	inst.Update(ctx)              // fetch data, render, notify listeners
//	inst.Click(ctx, widget.Left)  // runs callbacks.on_left, toggle_label by default
//	inst.Render()                 // "87% | remaining: 2:10"
//
// Instances are safe for concurrent use: the scheduler updates them from its
// own goroutines while the UI dispatches clicks.
package widget
