package errors

// ErrorCode represents a machine-readable error code.
type ErrorCode string

// Resolution errors
const (
	// ErrCodeNotFound indicates the requested symbol has no registered recipe.
	ErrCodeNotFound ErrorCode = "NOT_FOUND"
	// ErrCodeCyclicDependency indicates a cycle in the recursive resolution chain.
	ErrCodeCyclicDependency ErrorCode = "CYCLIC_DEPENDENCY"
	// ErrCodeMaxDepth indicates the resolution chain exceeded the configured depth guard.
	ErrCodeMaxDepth ErrorCode = "MAX_DEPTH_EXCEEDED"
	// ErrCodeUnresolvedParameter indicates a constructor parameter that could not be supplied.
	ErrCodeUnresolvedParameter ErrorCode = "UNRESOLVED_PARAMETER"
)

// Registration errors
const (
	// ErrCodeInvalidTarget indicates a registration target that cannot be introspected.
	ErrCodeInvalidTarget ErrorCode = "INVALID_TARGET"
	// ErrCodeInvalidSchema indicates a field schema could not be derived from a type.
	ErrCodeInvalidSchema ErrorCode = "INVALID_SCHEMA"
	// ErrCodeConstruction indicates a registered constructor returned an error.
	ErrCodeConstruction ErrorCode = "CONSTRUCTION_FAILED"
)

// Binding errors
const (
	// ErrCodeUnexpectedArgument indicates more positional arguments than declared fields.
	ErrCodeUnexpectedArgument ErrorCode = "UNEXPECTED_ARGUMENT"
	// ErrCodeArgumentConflict indicates a field supplied both positionally and by name.
	ErrCodeArgumentConflict ErrorCode = "ARGUMENT_CONFLICT"
	// ErrCodeUnknownArgument indicates a named argument matching no declared field.
	ErrCodeUnknownArgument ErrorCode = "UNKNOWN_ARGUMENT"
	// ErrCodeMissingArguments indicates required fields left unresolved after binding.
	ErrCodeMissingArguments ErrorCode = "MISSING_ARGUMENTS"
	// ErrCodeTypeMismatch indicates a supplied value whose type disagrees with the field.
	ErrCodeTypeMismatch ErrorCode = "TYPE_MISMATCH"
)

// recoverableCodes marks codes that callers are expected to branch on
// rather than surface. Only absence is recoverable; every binding error
// is terminal for that construction attempt.
var recoverableCodes = map[ErrorCode]bool{
	ErrCodeNotFound: true,
}

// IsRecoverableCode returns true if the error code indicates a condition
// callers may handle by branching (e.g. falling back to a default).
func IsRecoverableCode(code ErrorCode) bool {
	return recoverableCodes[code]
}
