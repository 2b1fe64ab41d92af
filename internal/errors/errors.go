// Package errors provides typed errors for the renderer. Each error carries
// a category and a severity; Critical errors abort the current command.
package errors

import (
	stderrors "errors"
	"fmt"
	"runtime"
	"sort"
	"strings"
)

// ErrorType is the category of an error.
type ErrorType int

const (
	// ErrorTypeConfig is a missing or invalid setting, including unknown themes.
	ErrorTypeConfig ErrorType = iota
	// ErrorTypeValidation is malformed input data.
	ErrorTypeValidation
	// ErrorTypeFileSystem is a dataset or output file I/O failure.
	ErrorTypeFileSystem
	// ErrorTypeStorage is a session store failure.
	ErrorTypeStorage
	// ErrorTypeLifecycle is a render pass run before its target exists.
	ErrorTypeLifecycle
	// ErrorTypeInternal is unexpected internal state.
	ErrorTypeInternal
)

var typeNames = map[ErrorType]string{
	ErrorTypeConfig:     "CONFIG",
	ErrorTypeValidation: "VALIDATION",
	ErrorTypeFileSystem: "FILESYSTEM",
	ErrorTypeStorage:    "STORAGE",
	ErrorTypeLifecycle:  "LIFECYCLE",
	ErrorTypeInternal:   "INTERNAL",
}

func (t ErrorType) String() string {
	if s, ok := typeNames[t]; ok {
		return s
	}
	return "UNKNOWN"
}

// Severity is how far an error reaches.
type Severity int

const (
	// SeverityLow - output degraded, command continues
	SeverityLow Severity = iota
	// SeverityMedium - one step failed
	SeverityMedium
	// SeverityHigh - the command fails
	SeverityHigh
	// SeverityCritical - the command fails and nothing was drawn
	SeverityCritical
)

func (s Severity) String() string {
	switch s {
	case SeverityLow:
		return "LOW"
	case SeverityMedium:
		return "MEDIUM"
	case SeverityHigh:
		return "HIGH"
	case SeverityCritical:
		return "CRITICAL"
	}
	return "UNKNOWN"
}

// Error is a categorised error with optional cause and context.
type Error struct {
	Type     ErrorType
	Severity Severity
	Message  string
	Cause    error
	Context  map[string]interface{}
	// Stack holds the callers of the constructor, innermost first.
	Stack []string
}

func (e *Error) Error() string {
	if e.Cause != nil {
		return fmt.Sprintf("%s: %v", e.Message, e.Cause)
	}
	return e.Message
}

func (e *Error) Unwrap() error {
	return e.Cause
}

// WithContext attaches a key/value pair and returns e.
func (e *Error) WithContext(key string, value interface{}) *Error {
	if e.Context == nil {
		e.Context = make(map[string]interface{})
	}
	e.Context[key] = value
	return e
}

// Is matches any *Error of the same type, so a bare ConfigError("") can be
// used as a category sentinel with errors.Is.
func (e *Error) Is(target error) bool {
	t, ok := target.(*Error)
	return ok && e.Type == t.Type
}

// DetailedString renders the error with its context (sorted by key) and
// stack for verbose logs.
func (e *Error) DetailedString() string {
	var sb strings.Builder
	fmt.Fprintf(&sb, "[%s] [%s] %s\n", e.Severity, e.Type, e.Message)
	if e.Cause != nil {
		fmt.Fprintf(&sb, "Caused by: %v\n", e.Cause)
	}
	if len(e.Context) > 0 {
		keys := make([]string, 0, len(e.Context))
		for k := range e.Context {
			keys = append(keys, k)
		}
		sort.Strings(keys)
		sb.WriteString("Context:\n")
		for _, k := range keys {
			fmt.Fprintf(&sb, "  %s: %v\n", k, e.Context[k])
		}
	}
	if len(e.Stack) > 0 {
		sb.WriteString("Stack trace:\n")
		for _, frame := range e.Stack {
			fmt.Fprintf(&sb, "  %s\n", frame)
		}
	}
	return sb.String()
}

func callers(skip int) []string {
	pcs := make([]uintptr, 10)
	n := runtime.Callers(skip+1, pcs)
	frames := runtime.CallersFrames(pcs[:n])
	var out []string
	for {
		f, more := frames.Next()
		out = append(out, fmt.Sprintf("%s:%d %s", f.File, f.Line, f.Function))
		if !more {
			break
		}
	}
	return out
}

// New creates an error of the given type and severity.
func New(errType ErrorType, severity Severity, message string) *Error {
	return &Error{Type: errType, Severity: severity, Message: message, Stack: callers(2)}
}

// Wrap categorises err. It returns nil for a nil err.
func Wrap(err error, errType ErrorType, severity Severity, message string) *Error {
	if err == nil {
		return nil
	}
	return &Error{Type: errType, Severity: severity, Message: message, Cause: err, Stack: callers(2)}
}

// ConfigError reports an unusable setting.
func ConfigError(message string) *Error {
	return New(ErrorTypeConfig, SeverityCritical, message)
}

// ValidationError wraps a failure to decode or validate input.
func ValidationError(err error, message string) *Error {
	return Wrap(err, ErrorTypeValidation, SeverityHigh, message)
}

// ValidationErrorf reports invalid input.
func ValidationErrorf(format string, args ...interface{}) *Error {
	return New(ErrorTypeValidation, SeverityHigh, fmt.Sprintf(format, args...))
}

// FileSystemErrorf wraps a file I/O failure.
func FileSystemErrorf(err error, format string, args ...interface{}) *Error {
	return Wrap(err, ErrorTypeFileSystem, SeverityHigh, fmt.Sprintf(format, args...))
}

// StorageError wraps a session store failure.
func StorageError(err error, message string) *Error {
	return Wrap(err, ErrorTypeStorage, SeverityHigh, message)
}

// LifecycleError reports a render target that is absent when a pass runs.
// Nothing has been drawn when it is returned.
func LifecycleError(message string) *Error {
	return New(ErrorTypeLifecycle, SeverityCritical, message)
}

// IsFatal reports whether err, or any error it wraps, is Critical.
func IsFatal(err error) bool {
	var e *Error
	return stderrors.As(err, &e) && e.Severity == SeverityCritical
}

// GetSeverity is the severity of the first *Error in err's chain. Plain
// errors are Medium; nil is Low.
func GetSeverity(err error) Severity {
	if err == nil {
		return SeverityLow
	}
	var e *Error
	if stderrors.As(err, &e) {
		return e.Severity
	}
	return SeverityMedium
}

// GetType is the type of the first *Error in err's chain, or Internal.
func GetType(err error) ErrorType {
	var e *Error
	if stderrors.As(err, &e) {
		return e.Type
	}
	return ErrorTypeInternal
}
