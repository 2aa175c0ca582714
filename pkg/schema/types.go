package schema

import (
	"fmt"
	"regexp"
)

// Type is the value type tag of an option
type Type string

// Option value types
const (
	TypeString  Type = "string"
	TypeInteger Type = "integer"
	TypeFloat   Type = "float"
	TypeNumber  Type = "number"
	TypeBoolean Type = "boolean"
	TypeList    Type = "list"
	TypeDict    Type = "dict"
	TypeAny     Type = "any"
)

// Option describes a single configuration key.
type Option struct {
	Type        Type
	Default     any
	Min         *float64
	Max         *float64
	MinItems    *int
	MaxItems    *int
	Allowed     []any
	Pattern     string
	Nullable    bool
	Required    bool
	Schema      *Schema   // nested keys of a dict option
	Items       *Option   // element option of a list option
	AnyOf       []*Option // alternatives, first match wins
	Description string

	pattern *regexp.Regexp
}

// String declares a string option.
func String(def string) *Option {
	return &Option{Type: TypeString, Default: def}
}

// NullableString declares a string option whose default is null.
func NullableString() *Option {
	return &Option{Type: TypeString, Default: nil, Nullable: true}
}

// Integer declares an integer option.
func Integer(def int) *Option {
	return &Option{Type: TypeInteger, Default: def}
}

// NullableInteger declares an integer option whose default is null.
func NullableInteger() *Option {
	return &Option{Type: TypeInteger, Default: nil, Nullable: true}
}

// Float declares a floating point option.
func Float(def float64) *Option {
	return &Option{Type: TypeFloat, Default: def}
}

// NullableFloat declares a floating point option whose default is null.
func NullableFloat() *Option {
	return &Option{Type: TypeFloat, Default: nil, Nullable: true}
}

// Bool declares a boolean option.
func Bool(def bool) *Option {
	return &Option{Type: TypeBoolean, Default: def}
}

// List declares a list option. items may be nil for untyped lists.
func List(def []any, items *Option) *Option {
	if def == nil {
		def = []any{}
	}
	return &Option{Type: TypeList, Default: def, Items: items}
}

// StringList declares a list of strings.
func StringList(def ...string) *Option {
	values := make([]any, len(def))
	for i, v := range def {
		values[i] = v
	}
	return List(values, &Option{Type: TypeString})
}

// Dict declares a dict option whose keys are described by s. The default of
// the option is the default mapping of s.
func Dict(s *Schema) *Option {
	return &Option{Type: TypeDict, Schema: s}
}

// FreeDict declares a dict option with arbitrary keys and the given default.
func FreeDict(def map[string]any) *Option {
	if def == nil {
		def = map[string]any{}
	}
	return &Option{Type: TypeDict, Default: def}
}

// Any declares an option that accepts any value.
func Any(def any) *Option {
	return &Option{Type: TypeAny, Default: def}
}

// OneOf declares an option that accepts the first matching alternative.
func OneOf(def any, alternatives ...*Option) *Option {
	return &Option{Type: TypeAny, Default: def, AnyOf: alternatives}
}

// Range bounds a numeric option (inclusive).
func (o *Option) Range(min, max float64) *Option {
	o.Min = &min
	o.Max = &max
	return o
}

// AtLeast sets a lower bound on a numeric option.
func (o *Option) AtLeast(min float64) *Option {
	o.Min = &min
	return o
}

// AtMost sets an upper bound on a numeric option.
func (o *Option) AtMost(max float64) *Option {
	o.Max = &max
	return o
}

// Length bounds the number of items of a list option.
func (o *Option) Length(min, max int) *Option {
	o.MinItems = &min
	o.MaxItems = &max
	return o
}

// Enum restricts the option to the given values.
func (o *Option) Enum(values ...any) *Option {
	o.Allowed = values
	return o
}

// Match restricts a string option to values matching the regular expression.
// The expression is anchored at both ends.
func (o *Option) Match(expr string) *Option {
	o.Pattern = expr
	o.pattern = regexp.MustCompile("^(?:" + expr + ")$")
	return o
}

// AllowNull permits an explicit null value.
func (o *Option) AllowNull() *Option {
	o.Nullable = true
	return o
}

// Require marks the option as required.
func (o *Option) Require() *Option {
	o.Required = true
	return o
}

// Describe attaches a human readable description.
func (o *Option) Describe(desc string) *Option {
	o.Description = desc
	return o
}

// DefaultValue returns a deep copy of the option's default.
func (o *Option) DefaultValue() any {
	if o.Type == TypeDict && o.Schema != nil {
		return o.Schema.Defaults()
	}
	return cloneValue(o.Default)
}

// TypeName renders the option type for messages and docs.
func (o *Option) TypeName() string {
	if len(o.AnyOf) > 0 {
		name := ""
		for i, alt := range o.AnyOf {
			if i > 0 {
				name += " | "
			}
			name += alt.TypeName()
		}
		return name
	}
	if o.Type == TypeList && o.Items != nil && o.Items.Type != TypeAny {
		return fmt.Sprintf("list[%s]", o.Items.TypeName())
	}
	return string(o.Type)
}
