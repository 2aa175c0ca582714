package errors

import (
	"errors"
	"fmt"
)

// ErrorCode represents a unique error code for stable testing
type ErrorCode string

// Error codes for different error categories
const (
	// General errors
	ErrUnknown        ErrorCode = "UNKNOWN"
	ErrInternal       ErrorCode = "INTERNAL"
	ErrInvalidInput   ErrorCode = "INVALID_INPUT"
	ErrNotFound       ErrorCode = "NOT_FOUND"
	ErrAlreadyExists  ErrorCode = "ALREADY_EXISTS"
	ErrNotImplemented ErrorCode = "NOT_IMPLEMENTED"

	// Configuration errors
	ErrConfigLoad  ErrorCode = "CONFIG_LOAD"
	ErrConfigParse ErrorCode = "CONFIG_PARSE"
	ErrConfigValid ErrorCode = "CONFIG_INVALID"

	// Option schema errors
	ErrOptionUnknown  ErrorCode = "OPTION_UNKNOWN"
	ErrOptionType     ErrorCode = "OPTION_TYPE"
	ErrOptionRange    ErrorCode = "OPTION_RANGE"
	ErrOptionAllowed  ErrorCode = "OPTION_NOT_ALLOWED"
	ErrOptionRequired ErrorCode = "OPTION_REQUIRED"
	ErrOptionDecode   ErrorCode = "OPTION_DECODE"

	// Widget errors
	ErrWidgetType     ErrorCode = "WIDGET_TYPE_UNKNOWN"
	ErrWidgetNotFound ErrorCode = "WIDGET_NOT_FOUND"
	ErrWidgetInvalid  ErrorCode = "WIDGET_INVALID"

	// Label errors
	ErrTemplateParse  ErrorCode = "TEMPLATE_PARSE"
	ErrRewriteInvalid ErrorCode = "REWRITE_INVALID"

	// Callback errors
	ErrCallbackUnknown ErrorCode = "CALLBACK_UNKNOWN"
	ErrCallbackExecute ErrorCode = "CALLBACK_EXECUTE"

	// Data source errors
	ErrSourceFetch  ErrorCode = "SOURCE_FETCH"
	ErrSourceDecode ErrorCode = "SOURCE_DECODE"

	// Scheduler errors
	ErrSchedulerState ErrorCode = "SCHEDULER_STATE"

	// FileSystem errors
	ErrFileAccess ErrorCode = "FILE_ACCESS"
	ErrFileWrite  ErrorCode = "FILE_WRITE"
	ErrDirCreate  ErrorCode = "DIR_CREATE"
)

// BarkeepError represents a structured error with code and details
type BarkeepError struct {
	Code    ErrorCode
	Message string
	Details map[string]interface{}
	Wrapped error
}

// Error implements the error interface
func (e *BarkeepError) Error() string {
	if e.Wrapped != nil {
		return fmt.Sprintf("[%s] %s: %v", e.Code, e.Message, e.Wrapped)
	}
	return fmt.Sprintf("[%s] %s", e.Code, e.Message)
}

// Unwrap implements the errors.Unwrap interface
func (e *BarkeepError) Unwrap() error {
	return e.Wrapped
}

// Is implements errors.Is interface
func (e *BarkeepError) Is(target error) bool {
	var targetErr *BarkeepError
	if errors.As(target, &targetErr) {
		return e.Code == targetErr.Code
	}
	return false
}

// New creates a new BarkeepError with the given code and message
func New(code ErrorCode, message string) *BarkeepError {
	return &BarkeepError{
		Code:    code,
		Message: message,
		Details: make(map[string]interface{}),
	}
}

// Newf creates a new BarkeepError with a formatted message
func Newf(code ErrorCode, format string, args ...interface{}) *BarkeepError {
	return &BarkeepError{
		Code:    code,
		Message: fmt.Sprintf(format, args...),
		Details: make(map[string]interface{}),
	}
}

// Wrap wraps an existing error with a BarkeepError
func Wrap(err error, code ErrorCode, message string) *BarkeepError {
	if err == nil {
		return nil
	}
	return &BarkeepError{
		Code:    code,
		Message: message,
		Details: make(map[string]interface{}),
		Wrapped: err,
	}
}

// Wrapf wraps an existing error with a formatted message
func Wrapf(err error, code ErrorCode, format string, args ...interface{}) *BarkeepError {
	if err == nil {
		return nil
	}
	return &BarkeepError{
		Code:    code,
		Message: fmt.Sprintf(format, args...),
		Details: make(map[string]interface{}),
		Wrapped: err,
	}
}

// WithDetail adds a detail to the error
func (e *BarkeepError) WithDetail(key string, value interface{}) *BarkeepError {
	if e.Details == nil {
		e.Details = make(map[string]interface{})
	}
	e.Details[key] = value
	return e
}

// WithDetails adds multiple details to the error
func (e *BarkeepError) WithDetails(details map[string]interface{}) *BarkeepError {
	if e.Details == nil {
		e.Details = make(map[string]interface{})
	}
	for k, v := range details {
		e.Details[k] = v
	}
	return e
}

// IsErrorCode checks if an error has a specific error code
func IsErrorCode(err error, code ErrorCode) bool {
	var bkErr *BarkeepError
	if errors.As(err, &bkErr) {
		return bkErr.Code == code
	}
	return false
}

// GetErrorCode returns the error code from an error, or ErrUnknown if not a BarkeepError
func GetErrorCode(err error) ErrorCode {
	var bkErr *BarkeepError
	if errors.As(err, &bkErr) {
		return bkErr.Code
	}
	return ErrUnknown
}

// GetErrorDetails returns the details from an error, or nil if not a BarkeepError
func GetErrorDetails(err error) map[string]interface{} {
	var bkErr *BarkeepError
	if errors.As(err, &bkErr) {
		return bkErr.Details
	}
	return nil
}
