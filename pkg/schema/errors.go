package schema

import (
	"fmt"
	"strings"

	"github.com/arthur-debert/barkeep/pkg/errors"
)

// ValidationError represents a single option that failed validation.
type ValidationError struct {
	// Path is the dotted path of the option, e.g. animation.duration or rewrite[0].case
	Path string

	// Code classifies the failure
	Code errors.ErrorCode

	// Message describes what's wrong
	Message string

	// Value is the offending value (may be nil)
	Value any

	// Suggestion is a close known key for unknown-key errors
	Suggestion string
}

// Error implements the error interface.
func (e *ValidationError) Error() string {
	msg := e.Message
	if e.Suggestion != "" {
		msg = fmt.Sprintf("%s (did you mean %q?)", msg, e.Suggestion)
	}
	if e.Path == "" {
		return msg
	}
	return fmt.Sprintf("%s: %s", e.Path, msg)
}

// ValidationErrors collects every failure found while normalizing.
type ValidationErrors struct {
	Errors []*ValidationError
}

// Error implements the error interface.
func (e *ValidationErrors) Error() string {
	if len(e.Errors) == 0 {
		return "no validation errors"
	}
	if len(e.Errors) == 1 {
		return e.Errors[0].Error()
	}

	msgs := make([]string, 0, len(e.Errors))
	for _, err := range e.Errors {
		msgs = append(msgs, err.Error())
	}
	return fmt.Sprintf("%d validation errors:\n  - %s", len(e.Errors), strings.Join(msgs, "\n  - "))
}

// Add records a failure
func (e *ValidationErrors) Add(err *ValidationError) {
	e.Errors = append(e.Errors, err)
}

// HasErrors returns true if there are any errors.
func (e *ValidationErrors) HasErrors() bool {
	return len(e.Errors) > 0
}

// Len returns the number of errors.
func (e *ValidationErrors) Len() int {
	return len(e.Errors)
}

// AsError returns nil if no errors, otherwise returns self.
func (e *ValidationErrors) AsError() error {
	if !e.HasErrors() {
		return nil
	}
	return e
}

// HasCode reports whether any collected error carries code.
func (e *ValidationErrors) HasCode(code errors.ErrorCode) bool {
	for _, err := range e.Errors {
		if err.Code == code {
			return true
		}
	}
	return false
}

// ForPath returns the errors recorded for an exact path.
func (e *ValidationErrors) ForPath(path string) []*ValidationError {
	var result []*ValidationError
	for _, err := range e.Errors {
		if err.Path == path {
			result = append(result, err)
		}
	}
	return result
}

// Prefixed returns a copy with every path prefixed, used when a widget's
// options are validated as part of a whole config file.
func (e *ValidationErrors) Prefixed(prefix string) *ValidationErrors {
	out := &ValidationErrors{Errors: make([]*ValidationError, 0, len(e.Errors))}
	for _, err := range e.Errors {
		cp := *err
		cp.Path = joinPath(prefix, err.Path)
		out.Errors = append(out.Errors, &cp)
	}
	return out
}

func newTypeError(path string, opt *Option, value any) *ValidationError {
	return &ValidationError{
		Path:    path,
		Code:    errors.ErrOptionType,
		Message: fmt.Sprintf("expected %s, got %s", opt.TypeName(), describe(value)),
		Value:   value,
	}
}

func newRangeError(path string, opt *Option, value any) *ValidationError {
	var expected string
	switch {
	case opt.Min != nil && opt.Max != nil:
		expected = fmt.Sprintf("between %v and %v", *opt.Min, *opt.Max)
	case opt.Min != nil:
		expected = fmt.Sprintf(">= %v", *opt.Min)
	default:
		expected = fmt.Sprintf("<= %v", *opt.Max)
	}
	return &ValidationError{
		Path:    path,
		Code:    errors.ErrOptionRange,
		Message: fmt.Sprintf("value %v is out of range, must be %s", value, expected),
		Value:   value,
	}
}

func newLengthError(path string, opt *Option, value any, n int) *ValidationError {
	var expected string
	switch {
	case opt.MinItems != nil && opt.MaxItems != nil && *opt.MinItems == *opt.MaxItems:
		expected = fmt.Sprintf("exactly %d", *opt.MinItems)
	case opt.MinItems != nil && opt.MaxItems != nil:
		expected = fmt.Sprintf("between %d and %d", *opt.MinItems, *opt.MaxItems)
	case opt.MinItems != nil:
		expected = fmt.Sprintf("at least %d", *opt.MinItems)
	default:
		expected = fmt.Sprintf("at most %d", *opt.MaxItems)
	}
	return &ValidationError{
		Path:    path,
		Code:    errors.ErrOptionRange,
		Message: fmt.Sprintf("list has %d items, must have %s", n, expected),
		Value:   value,
	}
}

func newAllowedError(path string, opt *Option, value any) *ValidationError {
	return &ValidationError{
		Path:    path,
		Code:    errors.ErrOptionAllowed,
		Message: fmt.Sprintf("value %v is not one of %v", value, opt.Allowed),
		Value:   value,
	}
}

func newPatternError(path string, opt *Option, value any) *ValidationError {
	return &ValidationError{
		Path:    path,
		Code:    errors.ErrOptionAllowed,
		Message: fmt.Sprintf("value %v does not match %s", value, opt.Pattern),
		Value:   value,
	}
}

func newRequiredError(path string) *ValidationError {
	return &ValidationError{
		Path:    path,
		Code:    errors.ErrOptionRequired,
		Message: "required option is missing",
	}
}

func newUnknownError(path, suggestion string) *ValidationError {
	return &ValidationError{
		Path:       path,
		Code:       errors.ErrOptionUnknown,
		Message:    "unknown option",
		Suggestion: suggestion,
	}
}

func describe(value any) string {
	switch value.(type) {
	case nil:
		return "null"
	case string:
		return "string"
	case bool:
		return "boolean"
	case int, int8, int16, int32, int64, uint, uint8, uint16, uint32, uint64:
		return "integer"
	case float32, float64:
		return "float"
	case []any, []string:
		return "list"
	case map[string]any, map[any]any:
		return "dict"
	default:
		return fmt.Sprintf("%T", value)
	}
}

func joinPath(prefix, key string) string {
	switch {
	case prefix == "":
		return key
	case key == "":
		return prefix
	case strings.HasPrefix(key, "["):
		return prefix + key
	default:
		return prefix + "." + key
	}
}
