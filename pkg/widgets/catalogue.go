package widgets

import (
	"context"
	"fmt"
	"sort"

	"github.com/arthur-debert/barkeep/pkg/datasource"
	"github.com/arthur-debert/barkeep/pkg/errors"
	"github.com/arthur-debert/barkeep/pkg/format"
	"github.com/arthur-debert/barkeep/pkg/registry"
	"github.com/arthur-debert/barkeep/pkg/schema"
	"github.com/go-viper/mapstructure/v2"
	"github.com/sahilm/fuzzy"
)

// Handler runs a widget specific action against the instance data source.
type Handler func(ctx context.Context, src datasource.Source, args []string) error

// Definition describes a widget type.
type Definition struct {
	// Type is the key used in configuration files
	Type string

	// Alias is a short name accepted wherever Type is
	Alias       string
	Description string
	Schema      *schema.Schema

	// NewOptions returns an empty typed options record to decode into
	NewOptions func() Options

	// Actions lists the callback actions the widget understands. Actions
	// without a Handler toggle a flag the UI reads (menus, popups).
	Actions  []string
	Handlers map[string]Handler

	// Sample is example data for the placeholders the widget provides
	Sample format.Context

	// Source builds the data source for a resolved option set. When nil the
	// widget renders its Sample data.
	Source func(opts Options) (datasource.Source, error)
}

// NewSource returns the data source for opts.
func (d *Definition) NewSource(opts Options) (datasource.Source, error) {
	if d.Source == nil {
		return datasource.NewStatic(d.Sample), nil
	}
	return d.Source(opts)
}

// Resolved is a widget option set after merge, validation and decoding.
type Resolved struct {
	Definition *Definition
	// Values holds every option declared by the schema
	Values  map[string]any
	Options Options
}

var catalogue = registry.New[*Definition]()

// Register adds a widget type to the catalogue.
func Register(def *Definition) error {
	if def == nil || def.Type == "" {
		return errors.New(errors.ErrInvalidInput, "widget definition must have a type")
	}
	if def.Schema == nil || def.NewOptions == nil {
		return errors.Newf(errors.ErrInvalidInput, "widget %s needs a schema and an options constructor", def.Type)
	}
	if err := catalogue.Register(def.Type, def); err != nil {
		return err
	}
	if def.Alias != "" {
		if err := catalogue.Alias(def.Alias, def.Type); err != nil {
			_ = catalogue.Remove(def.Type)
			return err
		}
	}
	return nil
}

func mustRegister(def *Definition) {
	if err := Register(def); err != nil {
		panic(fmt.Sprintf("failed to register widget %s: %v", def.Type, err))
	}
}

// Lookup finds a widget type by type key or alias.
func Lookup(widgetType string) (*Definition, error) {
	def, err := catalogue.Get(widgetType)
	if err == nil {
		return def, nil
	}

	unknown := errors.Newf(errors.ErrWidgetType, "unknown widget type %q", widgetType).
		WithDetail("type", widgetType)
	if matches := fuzzy.Find(widgetType, names()); len(matches) > 0 {
		unknown.WithDetail("suggestion", matches[0].Str)
	}
	return nil, unknown
}

// Types returns the registered type keys, sorted.
func Types() []string {
	return catalogue.List()
}

// All returns every registered definition ordered by type key.
func All() []*Definition {
	types := catalogue.List()
	defs := make([]*Definition, 0, len(types))
	for _, t := range types {
		if def, err := catalogue.Get(t); err == nil {
			defs = append(defs, def)
		}
	}
	return defs
}

func names() []string {
	var out []string
	for _, def := range All() {
		out = append(out, def.Type)
		if def.Alias != "" {
			out = append(out, def.Alias)
		}
	}
	sort.Strings(out)
	return out
}

// Resolve merges overrides onto the defaults of the named widget type,
// validates the result and decodes it into the typed options record.
func Resolve(widgetType string, overrides map[string]any, policy schema.Policy) (*Resolved, error) {
	def, err := Lookup(widgetType)
	if err != nil {
		return nil, err
	}
	return def.Resolve(overrides, policy)
}

// Resolve is the package level Resolve for a known definition.
func (d *Definition) Resolve(overrides map[string]any, policy schema.Policy) (*Resolved, error) {
	values, err := d.Schema.Normalize(overrides, policy)
	if err != nil {
		return nil, errors.Wrapf(err, errors.ErrWidgetInvalid, "invalid options for %s", d.Type).
			WithDetail("type", d.Type)
	}

	opts := d.NewOptions()
	if err := Decode(values, opts); err != nil {
		return nil, errors.Wrapf(err, errors.ErrOptionDecode, "cannot decode options for %s", d.Type).
			WithDetail("type", d.Type)
	}

	return &Resolved{Definition: d, Values: values, Options: opts}, nil
}

// Decode copies a normalized option mapping into a typed record.
func Decode(values map[string]any, out any) error {
	decoder, err := mapstructure.NewDecoder(&mapstructure.DecoderConfig{
		Result:           out,
		WeaklyTypedInput: true,
		DecodeHook: mapstructure.ComposeDecodeHookFunc(
			mapstructure.StringToTimeDurationHookFunc(),
			mapstructure.StringToSliceHookFunc(","),
		),
	})
	if err != nil {
		return err
	}
	return decoder.Decode(values)
}
