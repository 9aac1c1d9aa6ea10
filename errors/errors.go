package errors

import (
	stderrors "errors"
	"fmt"
	"strings"
)

// Error is the unified error type for the dependency engine.
type Error struct {
	// Code is a machine-readable error code.
	Code ErrorCode `json:"code"`
	// Message is a human-readable error message.
	Message string `json:"message"`
	// Recoverable indicates the caller is expected to branch on this error.
	Recoverable bool `json:"recoverable"`
	// Details contains additional context for the error.
	Details map[string]any `json:"details,omitempty"`
	// Cause is the underlying error that caused this error.
	Cause error `json:"-"`
}

// Error returns the string representation of the error.
func (e *Error) Error() string {
	if e.Cause != nil {
		return fmt.Sprintf("%s: %s (cause: %v)", e.Code, e.Message, e.Cause)
	}
	return fmt.Sprintf("%s: %s", e.Code, e.Message)
}

// Unwrap returns the underlying cause of the error.
func (e *Error) Unwrap() error { return e.Cause }

// WithCause sets the underlying cause of the error and returns the receiver.
func (e *Error) WithCause(cause error) *Error {
	e.Cause = cause
	return e
}

// WithDetail sets a single detail key-value pair and returns the receiver.
func (e *Error) WithDetail(key string, value any) *Error {
	if e.Details == nil {
		e.Details = make(map[string]any)
	}
	e.Details[key] = value
	return e
}

// WithDetails merges the provided details into the error and returns the receiver.
func (e *Error) WithDetails(details map[string]any) *Error {
	if e.Details == nil {
		e.Details = make(map[string]any)
	}
	for k, v := range details {
		e.Details[k] = v
	}
	return e
}

// New creates a new Error with automatic recoverable detection.
func New(code ErrorCode, message string) *Error {
	return &Error{
		Code:        code,
		Message:     message,
		Recoverable: IsRecoverableCode(code),
	}
}

// --- Common Error Constructors ---

// NotFound creates an Error for a symbol with no registered recipe.
func NotFound(symbol string) *Error {
	return &Error{
		Code: ErrCodeNotFound, Message: fmt.Sprintf("no recipe registered for %s", symbol),
		Recoverable: true,
		Details:     map[string]any{"symbol": symbol},
	}
}

// CyclicDependency creates an Error for a resolution chain that revisits a
// symbol. The path lists the symbols on the chain, the revisited symbol last.
func CyclicDependency(path []string) *Error {
	return &Error{
		Code: ErrCodeCyclicDependency, Message: fmt.Sprintf("cyclic dependency detected: %s", strings.Join(path, " -> ")),
		Details: map[string]any{"path": path},
	}
}

// MaxDepthExceeded creates an Error for a resolution chain deeper than the
// configured guard.
func MaxDepthExceeded(symbol string, depth int) *Error {
	return &Error{
		Code: ErrCodeMaxDepth, Message: fmt.Sprintf("resolution of %s exceeded maximum depth %d", symbol, depth),
		Details: map[string]any{"symbol": symbol, "max_depth": depth},
	}
}

// UnresolvedParameter creates an Error for a constructor parameter that could
// not be filled from the registry.
func UnresolvedParameter(index int, paramType, symbol string) *Error {
	return &Error{
		Code: ErrCodeUnresolvedParameter, Message: fmt.Sprintf("cannot resolve parameter %d (%s) of constructor for %s", index, paramType, symbol),
		Details: map[string]any{"index": index, "type": paramType, "symbol": symbol},
	}
}

// InvalidTarget creates an Error for a registration target that cannot be
// introspected.
func InvalidTarget(reason string) *Error {
	return &Error{
		Code: ErrCodeInvalidTarget, Message: fmt.Sprintf("invalid registration target: %s", reason),
	}
}

// InvalidSchema creates an Error for a type whose field schema cannot be derived.
func InvalidSchema(typeName, reason string) *Error {
	return &Error{
		Code: ErrCodeInvalidSchema, Message: fmt.Sprintf("cannot derive schema for %s: %s", typeName, reason),
		Details: map[string]any{"type": typeName},
	}
}

// Construction creates an Error for a constructor that returned an error.
func Construction(symbol string, cause error) *Error {
	return &Error{
		Code: ErrCodeConstruction, Message: fmt.Sprintf("constructor for %s failed", symbol),
		Details: map[string]any{"symbol": symbol}, Cause: cause,
	}
}

// UnexpectedArgument creates an Error for positional arguments beyond the
// declared fields.
func UnexpectedArgument(got, declared int, typeName string) *Error {
	return &Error{
		Code: ErrCodeUnexpectedArgument, Message: fmt.Sprintf("too many positional arguments for type %s: got %d, declared %d", typeName, got, declared),
		Details: map[string]any{"got": got, "declared": declared, "type": typeName},
	}
}

// ArgumentConflict creates an Error for a field supplied both positionally
// and by name.
func ArgumentConflict(field string) *Error {
	return &Error{
		Code: ErrCodeArgumentConflict, Message: fmt.Sprintf("argument %q already provided as a positional argument", field),
		Details: map[string]any{"field": field},
	}
}

// UnknownArgument creates an Error for a named argument matching no declared
// field.
func UnknownArgument(key, typeName string) *Error {
	return &Error{
		Code: ErrCodeUnknownArgument, Message: fmt.Sprintf("argument %q not found in type %s", key, typeName),
		Details: map[string]any{"key": key, "type": typeName},
	}
}

// MissingArguments creates a single aggregated Error listing every missing
// field name, comma-joined.
func MissingArguments(fields []string) *Error {
	return &Error{
		Code: ErrCodeMissingArguments, Message: fmt.Sprintf("missing arguments: %s", strings.Join(fields, ", ")),
		Details: map[string]any{"fields": fields},
	}
}

// TypeMismatch creates an Error for a supplied value whose runtime type
// disagrees with the field's declared type.
func TypeMismatch(field, expected, actual string) *Error {
	return &Error{
		Code: ErrCodeTypeMismatch, Message: fmt.Sprintf("expected %s, got %s for argument %q", expected, actual, field),
		Details: map[string]any{"field": field, "expected": expected, "actual": actual},
	}
}

// --- Inspection helpers ---

// CodeOf returns the error code carried by err, or the empty code if err does
// not wrap an *Error.
func CodeOf(err error) ErrorCode {
	var e *Error
	if stderrors.As(err, &e) {
		return e.Code
	}
	return ""
}

// IsCode reports whether err carries the given code.
func IsCode(err error, code ErrorCode) bool {
	return CodeOf(err) == code
}

// IsNotFound reports whether err signals an unregistered symbol.
func IsNotFound(err error) bool {
	return IsCode(err, ErrCodeNotFound)
}
