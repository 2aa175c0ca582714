// Package config loads barkeep configuration files.
//
// A file is read with koanf (YAML or TOML by extension), top-level scalars
// can be overridden with BARKEEP_* environment variables, and every string
// may reference the environment as $env:NAME. The result is normalized
// against the top-level and bar schemas, and every widget entry is resolved
// through the widget catalogue.
package config
