package config

import (
	stderrors "errors"
	"fmt"
	"os"
	"path/filepath"
	"regexp"
	"sort"
	"strings"

	"github.com/arthur-debert/barkeep/pkg/errors"
	"github.com/arthur-debert/barkeep/pkg/logging"
	"github.com/arthur-debert/barkeep/pkg/paths"
	"github.com/arthur-debert/barkeep/pkg/schema"
	"github.com/arthur-debert/barkeep/pkg/widgets"
	"github.com/go-viper/mapstructure/v2"
	"github.com/knadh/koanf/parsers/toml"
	"github.com/knadh/koanf/parsers/yaml"
	"github.com/knadh/koanf/providers/confmap"
	"github.com/knadh/koanf/providers/env"
	"github.com/knadh/koanf/providers/file"
	"github.com/knadh/koanf/v2"
	"github.com/rs/zerolog"
	yamlv3 "gopkg.in/yaml.v3"
)

// EnvPrefix marks environment variables overriding top-level keys, e.g.
// BARKEEP_DEBUG=true
const EnvPrefix = "BARKEEP_"

// Option keys may contain dots (process names, file names), so koanf paths
// use a delimiter that never appears in them.
const keyDelim = "::"

var envRefRe = regexp.MustCompile(`(?i)\$env:(\w+)`)

// DefaultPath returns the configuration file in the config directory. An
// existing config.yaml, config.yml or config.toml is preferred in that order.
func DefaultPath() string {
	dir := paths.ConfigDir()
	for _, name := range []string{paths.ConfigFileName, "config.yml", "config.toml"} {
		candidate := filepath.Join(dir, name)
		if _, err := os.Stat(candidate); err == nil {
			return candidate
		}
	}
	return filepath.Join(dir, paths.ConfigFileName)
}

// Load reads, validates and resolves the configuration file at path. An
// empty path uses DefaultPath.
func Load(path string, policy schema.Policy) (*Config, error) {
	if path == "" {
		path = DefaultPath()
	}
	logger := logging.GetLogger("config")
	done := logging.LogOperationStart(logger, "load config")
	defer done()

	raw, err := read(path)
	if err != nil {
		return nil, err
	}

	cfg, err := Decode(raw, policy)
	if err != nil {
		var berr *errors.BarkeepError
		if stderrors.As(err, &berr) {
			berr.WithDetail("path", path)
		}
		return nil, err
	}
	cfg.Path = path

	logger.Info().
		Str("path", path).
		Int("bars", len(cfg.Bars)).
		Int("widgets", len(cfg.Widgets)).
		Msg("Configuration loaded")
	return cfg, nil
}

// read loads the file and the environment overrides into one raw tree.
func read(path string) (map[string]any, error) {
	if _, err := os.Stat(path); err != nil {
		return nil, errors.Wrapf(err, errors.ErrConfigLoad, "cannot read configuration %s", path).
			WithDetail("path", path)
	}

	var parser koanf.Parser
	switch strings.ToLower(filepath.Ext(path)) {
	case ".yaml", ".yml":
		parser = yaml.Parser()
	case ".toml":
		parser = toml.Parser()
	default:
		return nil, errors.Newf(errors.ErrConfigLoad, "unsupported configuration format %q", filepath.Ext(path)).
			WithDetail("path", path)
	}

	k := koanf.New(keyDelim)
	if err := k.Load(file.Provider(path), parser); err != nil {
		return nil, errors.Wrapf(err, errors.ErrConfigParse, "cannot parse configuration %s", path).
			WithDetail("path", path)
	}

	if err := k.Load(env.ProviderWithValue(EnvPrefix, keyDelim, envOverride), nil); err != nil {
		return nil, errors.Wrap(err, errors.ErrConfigLoad, "failed to load environment overrides")
	}

	return k.Raw(), nil
}

// envOverride maps BARKEEP_WATCH_CONFIG=false to watch_config: false. Only
// top-level scalar keys can be overridden; other variables are skipped.
func envOverride(key, value string) (string, interface{}) {
	name := strings.ToLower(strings.TrimPrefix(key, EnvPrefix))
	opt, ok := Schema().Get(name)
	if !ok || opt.Type == schema.TypeDict {
		return "", nil
	}

	var typed any
	if err := yamlv3.Unmarshal([]byte(value), &typed); err != nil || typed == nil {
		return name, value
	}
	return name, typed
}

// Decode validates a raw configuration tree and resolves its widgets. All
// problems are collected before failing.
func Decode(raw map[string]any, policy schema.Policy) (*Config, error) {
	logger := logging.GetLogger("config")
	if raw == nil {
		raw = map[string]any{}
	}
	raw = expandEnv(raw).(map[string]any)
	verrs := &schema.ValidationErrors{}

	top, err := Schema().Normalize(raw, policy)
	if err != nil {
		collect(verrs, err, "")
		top = raw
	}

	resolved, declared := resolveWidgets(logger, verrs, asMap(top["widgets"]), policy)
	bars := normalizeBars(logger, verrs, raw, declared, resolved, policy)

	if verrs.HasErrors() {
		return nil, errors.Wrap(verrs, errors.ErrConfigValid, "invalid configuration").
			WithDetail("errors", verrs.Len())
	}

	cfg, err := unmarshal(top, bars)
	if err != nil {
		return nil, err
	}
	cfg.Widgets = resolved

	if cfg.EnvFile != nil && *cfg.EnvFile != "" {
		logger.Warn().Str("env_file", *cfg.EnvFile).Msg("env_file is deprecated and ignored")
	}
	return cfg, nil
}

func resolveWidgets(logger zerolog.Logger, verrs *schema.ValidationErrors, entries map[string]any, policy schema.Policy) (map[string]*widgets.Resolved, map[string]bool) {
	resolved := make(map[string]*widgets.Resolved, len(entries))
	declared := make(map[string]bool, len(entries))

	for _, name := range sortedKeys(entries) {
		declared[name] = true
		path := "widgets." + name

		value := entries[name]
		if widgetType, ok := value.(string); ok {
			value = map[string]any{"type": widgetType}
		}
		entry, ok := toMap(value)
		if !ok {
			verrs.Add(&schema.ValidationError{
				Path:    path,
				Code:    errors.ErrOptionType,
				Message: "must be a widget type or a dict with type and options",
				Value:   value,
			})
			continue
		}

		normalized, err := entrySchema().Normalize(entry, policy)
		if err != nil {
			collect(verrs, err, path)
			continue
		}

		widgetType := normalized["type"].(string)
		def, err := widgets.Lookup(widgetType)
		if err != nil {
			if policy.Invalid != schema.RejectInvalid {
				logger.Warn().Str("widget", name).Str("type", widgetType).Msg("Skipping widget of unknown type")
				continue
			}
			suggestion, _ := errors.GetErrorDetails(err)["suggestion"].(string)
			verrs.Add(&schema.ValidationError{
				Path:       path + ".type",
				Code:       errors.ErrWidgetType,
				Message:    fmt.Sprintf("unknown widget type %q", widgetType),
				Value:      widgetType,
				Suggestion: suggestion,
			})
			continue
		}

		r, err := def.Resolve(asMap(normalized["options"]), policy)
		if err != nil {
			collect(verrs, err, path+".options")
			continue
		}
		resolved[name] = r
	}
	return resolved, declared
}

func normalizeBars(logger zerolog.Logger, verrs *schema.ValidationErrors, raw map[string]any, declared map[string]bool, resolved map[string]*widgets.Resolved, policy schema.Policy) map[string]any {
	entries := asMap(raw["bars"])
	if len(entries) == 0 {
		entries = map[string]any{DefaultBarName: map[string]any{}}
	}

	bars := make(map[string]any, len(entries))
	for _, name := range sortedKeys(entries) {
		path := "bars." + name

		entry, ok := toMap(entries[name])
		if !ok {
			verrs.Add(&schema.ValidationError{
				Path:    path,
				Code:    errors.ErrOptionType,
				Message: "must be a dict",
				Value:   entries[name],
			})
			continue
		}

		bar, err := BarSchema().Normalize(entry, policy)
		if err != nil {
			collect(verrs, err, path)
			// report dangling references too
			checkRefs(logger, verrs, path, asMap(entry["widgets"]), declared, resolved, policy)
			continue
		}
		bar["widgets"] = checkRefs(logger, verrs, path, bar["widgets"].(map[string]any), declared, resolved, policy)
		bars[name] = bar
	}
	return bars
}

// checkRefs returns the bar columns with only resolvable widget names.
// Undefined names are errors under a rejecting policy and dropped otherwise.
func checkRefs(logger zerolog.Logger, verrs *schema.ValidationErrors, path string, columns map[string]any, declared map[string]bool, resolved map[string]*widgets.Resolved, policy schema.Policy) map[string]any {
	out := make(map[string]any, 3)
	for _, column := range []string{"left", "center", "right"} {
		refs, _ := columns[column].([]any)
		kept := []any{}
		for i, ref := range refs {
			widgetName, ok := ref.(string)
			if !ok {
				continue
			}
			switch {
			case resolved[widgetName] != nil:
				kept = append(kept, widgetName)
			case declared[widgetName]:
				// already reported or skipped as invalid
			case policy.Invalid != schema.RejectInvalid:
				logger.Warn().Str("bar", path).Str("widget", widgetName).Msg("Skipping undefined widget")
			default:
				verrs.Add(&schema.ValidationError{
					Path:       fmt.Sprintf("%s.widgets.%s[%d]", path, column, i),
					Code:       errors.ErrWidgetNotFound,
					Message:    fmt.Sprintf("widget %q is not defined", widgetName),
					Value:      widgetName,
					Suggestion: schema.Suggest(widgetName, sortedKeys(declared)),
				})
			}
		}
		out[column] = kept
	}
	return out
}

func unmarshal(top, bars map[string]any) (*Config, error) {
	tree := make(map[string]any, len(top))
	for key, value := range top {
		if key == "widgets" {
			continue
		}
		tree[key] = value
	}
	tree["bars"] = bars

	k := koanf.New(keyDelim)
	if err := k.Load(confmap.Provider(tree, keyDelim), nil); err != nil {
		return nil, errors.Wrap(err, errors.ErrConfigLoad, "failed to load normalized configuration")
	}

	var cfg Config
	unmarshalConf := koanf.UnmarshalConf{
		Tag: "koanf",
		DecoderConfig: &mapstructure.DecoderConfig{
			Result:           &cfg,
			WeaklyTypedInput: true,
			DecodeHook: mapstructure.ComposeDecodeHookFunc(
				mapstructure.StringToTimeDurationHookFunc(),
				mapstructure.StringToSliceHookFunc(","),
			),
		},
	}
	if err := k.UnmarshalWithConf("", &cfg, unmarshalConf); err != nil {
		return nil, errors.Wrap(err, errors.ErrConfigValid, "failed to unmarshal configuration")
	}

	for name, bar := range cfg.Bars {
		bar.Name = name
	}
	return &cfg, nil
}

// collect merges err into verrs. Validation failures keep their paths under
// prefix, anything else is recorded at prefix itself.
func collect(verrs *schema.ValidationErrors, err error, prefix string) {
	var found *schema.ValidationErrors
	if stderrors.As(err, &found) {
		verrs.Errors = append(verrs.Errors, found.Prefixed(prefix).Errors...)
		return
	}
	verrs.Add(&schema.ValidationError{
		Path:    prefix,
		Code:    errors.GetErrorCode(err),
		Message: err.Error(),
	})
}

// expandEnv replaces $env:NAME references in every string. Unset variables
// expand to the empty string.
func expandEnv(v any) any {
	switch t := v.(type) {
	case map[string]any:
		out := make(map[string]any, len(t))
		for k, item := range t {
			out[k] = expandEnv(item)
		}
		return out
	case []any:
		out := make([]any, len(t))
		for i, item := range t {
			out[i] = expandEnv(item)
		}
		return out
	case string:
		return envRefRe.ReplaceAllStringFunc(t, func(ref string) string {
			return os.Getenv(envRefRe.FindStringSubmatch(ref)[1])
		})
	default:
		return v
	}
}

func toMap(v any) (map[string]any, bool) {
	switch t := v.(type) {
	case map[string]any:
		return t, true
	case map[any]any:
		out := make(map[string]any, len(t))
		for k, item := range t {
			out[fmt.Sprint(k)] = item
		}
		return out, true
	case nil:
		return map[string]any{}, true
	}
	return nil, false
}

func asMap(v any) map[string]any {
	m, _ := toMap(v)
	return m
}

func sortedKeys[V any](m map[string]V) []string {
	keys := make([]string, 0, len(m))
	for k := range m {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	return keys
}
