// Package paths resolves barkeep's file locations.
//
// Locations follow the XDG Base Directory specification:
//
//   - BARKEEP_CONFIG_DIR: config directory (default: $XDG_CONFIG_HOME/barkeep)
//   - BARKEEP_STATE_DIR: state directory holding the log file
//     (default: $XDG_STATE_HOME/barkeep)
//
// A leading ~ in an override expands to the home directory.
package paths
