// Package registry provides a generic, thread-safe name to item registry.
// It backs the widget type catalogue and the per-instance action tables.
// Items may be reached through aliases, so "battery" can stand in for
// "yasb.battery.BatteryWidget".
package registry
