package cli

// Command descriptions
const (
	MsgRootShort = "Status bar widget configuration and label engine"
	MsgRootLong  = `barkeep loads a status bar configuration, validates every widget's options
against its schema, and renders widget labels from live or sample data.`

	MsgVersionShort    = "Print version information"
	MsgCompletionShort = "Generate shell completion script"
	MsgManShort        = "Generate the man page"
	MsgValidateShort   = "Check a configuration file"
	MsgValidateLong    = `Validate loads the configuration, merges every widget's options onto its
defaults and reports every problem found, with suggestions for misspelled keys.`
	MsgDefaultsShort = "Print the default options of a widget type"
	MsgWidgetsShort  = "List the widget types"
	MsgDocsShort     = "Show the option reference of a widget type or of the configuration file"
	MsgRenderShort   = "Render widget labels once"
	MsgRenderLong    = `Render builds the named widgets from the configuration, fetches their data
once and prints the resulting labels. With --data the labels are rendered
against the given YAML or JSON file instead of the widget's own source.`
	MsgClickShort = "Simulate a mouse click on a widget"
	MsgRunShort   = "Run the bars and print label updates"
	MsgRunLong    = `Run builds every enabled bar, refreshes each widget at its update interval
and prints label changes until interrupted. The configuration is reloaded when
the file changes and watch_config is enabled.`
	MsgInitShort = "Write a starter configuration and stylesheet"
)

// Flag descriptions
const (
	MsgFlagVerbose     = "Increase verbosity (-v INFO, -vv DEBUG, -vvv TRACE)"
	MsgFlagConfig      = "Configuration file (default $XDG_CONFIG_HOME/barkeep/config.yaml)"
	MsgFlagLenient     = "Drop unknown options and replace invalid values with defaults instead of failing"
	MsgFlagOutput      = "Output format: auto, term, text or json"
	MsgFlagFormat      = "Defaults format: yaml, json or toml"
	MsgFlagData        = "YAML or JSON file with the data to render against"
	MsgFlagAlt         = "Render the alternate label"
	MsgFlagOnce        = "Render every widget once and exit"
	MsgFlagMetricsAddr = "Serve Prometheus metrics on this address, e.g. :9273"
	MsgFlagForce       = "Overwrite existing files"
	MsgFlagDir         = "Directory to write into (default the configuration directory)"
)

// Output messages
const (
	MsgVersionFormat = "barkeep version %s\n"
	MsgCommitFormat  = "Commit: %s\n"
	MsgBuiltFormat   = "Built:  %s\n"
	MsgInitWrote     = "Wrote %s"
	MsgReloaded      = "Configuration reloaded"
	MsgWatchStopped  = "watch_config is off, no longer watching the configuration"
)
