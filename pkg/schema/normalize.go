package schema

import (
	"fmt"
	"regexp"
	"sort"

	"github.com/arthur-debert/barkeep/pkg/logging"
	"github.com/rs/zerolog"
)

// UnknownKeyPolicy decides what happens to keys the schema does not declare.
type UnknownKeyPolicy int

const (
	// RejectUnknown reports unknown keys as validation errors
	RejectUnknown UnknownKeyPolicy = iota
	// IgnoreUnknown drops unknown keys with a warning
	IgnoreUnknown
)

// InvalidPolicy decides what happens to values that break a constraint.
type InvalidPolicy int

const (
	// RejectInvalid reports the violation as a validation error
	RejectInvalid InvalidPolicy = iota
	// UseDefault replaces the value with the option default and logs a warning
	UseDefault
	// Clamp pulls out-of-range numbers to the nearest bound; every other
	// violation falls back to the default.
	Clamp
)

// Policy controls how Normalize treats bad input.
type Policy struct {
	UnknownKeys UnknownKeyPolicy
	Invalid     InvalidPolicy
}

var (
	// Strict rejects unknown keys and invalid values
	Strict = Policy{UnknownKeys: RejectUnknown, Invalid: RejectInvalid}
	// Lenient keeps going: unknown keys are dropped, invalid values use defaults
	Lenient = Policy{UnknownKeys: IgnoreUnknown, Invalid: UseDefault}
)

// Normalize merges overrides onto the schema defaults and validates the
// result. The returned mapping contains every declared key. On failure the
// error is a *ValidationErrors listing every violation.
func (s *Schema) Normalize(overrides map[string]any, policy Policy) (map[string]any, error) {
	n := &normalizer{
		policy: policy,
		errs:   &ValidationErrors{},
		logger: logging.GetLogger("schema"),
	}

	out := n.dict("", s, overrides)
	if n.errs.HasErrors() {
		return nil, n.errs
	}
	return out, nil
}

type normalizer struct {
	policy Policy
	errs   *ValidationErrors
	logger zerolog.Logger
	quiet  bool
}

func (n *normalizer) dict(path string, s *Schema, in map[string]any) map[string]any {
	out := make(map[string]any, s.Len())

	for _, key := range s.keys {
		opt := s.options[key]
		raw, present := in[key]
		if !present {
			if opt.Required {
				n.errs.Add(newRequiredError(joinPath(path, key)))
			}
			out[key] = opt.DefaultValue()
			continue
		}
		out[key] = n.value(joinPath(path, key), opt, raw)
	}

	var unknown []string
	for key := range in {
		if _, ok := s.options[key]; !ok {
			unknown = append(unknown, key)
		}
	}
	sort.Strings(unknown)

	for _, key := range unknown {
		keyPath := joinPath(path, key)
		if n.policy.UnknownKeys == IgnoreUnknown {
			if !n.quiet {
				n.logger.Warn().Str("option", keyPath).Msg("Ignoring unknown option")
			}
			continue
		}
		n.errs.Add(newUnknownError(keyPath, Suggest(key, s.keys)))
	}

	return out
}

func (n *normalizer) value(path string, opt *Option, raw any) any {
	if raw == nil {
		switch {
		case opt.Nullable:
			return nil
		case opt.Type == TypeDict:
			// An empty yaml block ("animation:") means "all defaults".
			return opt.DefaultValue()
		default:
			return n.invalid(path, opt, newTypeError(path, opt, raw))
		}
	}

	if len(opt.AnyOf) > 0 {
		return n.anyOf(path, opt, raw)
	}

	switch opt.Type {
	case TypeString:
		str, ok := raw.(string)
		if !ok {
			return n.invalid(path, opt, newTypeError(path, opt, raw))
		}
		if !n.allowed(opt, str) {
			return n.invalid(path, opt, newAllowedError(path, opt, raw))
		}
		if !matchPattern(opt, str) {
			return n.invalid(path, opt, newPatternError(path, opt, raw))
		}
		return str

	case TypeInteger:
		i, ok := toInt(raw)
		if !ok {
			return n.invalid(path, opt, newTypeError(path, opt, raw))
		}
		if !n.allowed(opt, i) {
			return n.invalid(path, opt, newAllowedError(path, opt, raw))
		}
		if f, inRange := n.bounded(path, opt, float64(i)); !inRange {
			if n.policy.Invalid == Clamp {
				return int(f)
			}
			return n.invalid(path, opt, newRangeError(path, opt, raw))
		}
		return i

	case TypeFloat, TypeNumber:
		f, ok := toFloat(raw)
		if !ok {
			return n.invalid(path, opt, newTypeError(path, opt, raw))
		}
		if !n.allowed(opt, f) {
			return n.invalid(path, opt, newAllowedError(path, opt, raw))
		}
		if clamped, inRange := n.bounded(path, opt, f); !inRange {
			if n.policy.Invalid == Clamp {
				return clamped
			}
			return n.invalid(path, opt, newRangeError(path, opt, raw))
		}
		if opt.Type == TypeNumber {
			if i, isInt := raw.(int); isInt {
				return i
			}
		}
		return f

	case TypeBoolean:
		b, ok := raw.(bool)
		if !ok {
			return n.invalid(path, opt, newTypeError(path, opt, raw))
		}
		return b

	case TypeList:
		items, ok := toSlice(raw)
		if !ok {
			return n.invalid(path, opt, newTypeError(path, opt, raw))
		}
		if (opt.MinItems != nil && len(items) < *opt.MinItems) || (opt.MaxItems != nil && len(items) > *opt.MaxItems) {
			return n.invalid(path, opt, newLengthError(path, opt, raw, len(items)))
		}
		out := make([]any, 0, len(items))
		for i, item := range items {
			if opt.Items == nil {
				out = append(out, cloneValue(item))
				continue
			}
			out = append(out, n.value(fmt.Sprintf("%s[%d]", path, i), opt.Items, item))
		}
		return out

	case TypeDict:
		m, ok := toStringMap(raw)
		if !ok {
			return n.invalid(path, opt, newTypeError(path, opt, raw))
		}
		if opt.Schema != nil {
			return n.dict(path, opt.Schema, m)
		}
		return mergeFree(opt.DefaultValue(), m)

	default:
		return cloneValue(raw)
	}
}

func (n *normalizer) anyOf(path string, opt *Option, raw any) any {
	for _, alt := range opt.AnyOf {
		scratch := &normalizer{
			policy: Strict,
			errs:   &ValidationErrors{},
			logger: n.logger,
			quiet:  true,
		}
		v := scratch.value(path, alt, raw)
		if !scratch.errs.HasErrors() {
			return v
		}
	}
	return n.invalid(path, opt, newTypeError(path, opt, raw))
}

// invalid applies the invalid-value policy and returns the value to keep.
func (n *normalizer) invalid(path string, opt *Option, verr *ValidationError) any {
	if n.policy.Invalid == RejectInvalid {
		n.errs.Add(verr)
		return opt.DefaultValue()
	}

	def := opt.DefaultValue()
	if !n.quiet {
		n.logger.Warn().
			Str("option", path).
			Interface("value", verr.Value).
			Interface("default", def).
			Str("reason", verr.Message).
			Msg("Invalid option value, using default")
	}
	return def
}

// bounded checks f against the option range. When out of range it returns
// the nearest bound and false.
func (n *normalizer) bounded(path string, opt *Option, f float64) (float64, bool) {
	clamped := f
	if opt.Min != nil && f < *opt.Min {
		clamped = *opt.Min
	}
	if opt.Max != nil && f > *opt.Max {
		clamped = *opt.Max
	}
	if clamped == f {
		return f, true
	}
	if n.policy.Invalid == Clamp && !n.quiet {
		n.logger.Warn().
			Str("option", path).
			Float64("value", f).
			Float64("clamped", clamped).
			Msg("Option value out of range, clamping")
	}
	return clamped, false
}

func (n *normalizer) allowed(opt *Option, v any) bool {
	if len(opt.Allowed) == 0 {
		return true
	}
	for _, a := range opt.Allowed {
		if equalScalar(a, v) {
			return true
		}
	}
	return false
}

func matchPattern(opt *Option, s string) bool {
	if opt.Pattern == "" {
		return true
	}
	re := opt.pattern
	if re == nil {
		var err error
		if re, err = regexp.Compile("^(?:" + opt.Pattern + ")$"); err != nil {
			return false
		}
	}
	return re.MatchString(s)
}

// mergeFree overlays src onto dst for dicts without a declared schema.
// Nested dicts merge recursively, everything else replaces.
func mergeFree(dst any, src map[string]any) map[string]any {
	out, ok := dst.(map[string]any)
	if !ok || out == nil {
		out = make(map[string]any, len(src))
	}
	for k, v := range src {
		if sub, isMap := toStringMap(v); isMap {
			if existing, has := out[k]; has {
				out[k] = mergeFree(existing, sub)
				continue
			}
			out[k] = mergeFree(nil, sub)
			continue
		}
		out[k] = cloneValue(v)
	}
	return out
}
