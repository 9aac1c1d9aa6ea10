package logger

// Standard field key constants for structured logging.
const (
	FieldComponent = "component"
	FieldRegistry  = "registry"
	FieldSymbol    = "symbol"
	FieldTarget    = "target"
	FieldCached    = "cached"
	FieldOperation = "operation"
	FieldError     = "error"
	FieldCount     = "count"
	FieldDepth     = "depth"
)

// Fields builds a map[string]interface{} from alternating key-value pairs.
//
//	logger.Info("registered", logger.Fields(logger.FieldSymbol, "main.Database"))
func Fields(kvs ...interface{}) map[string]interface{} {
	m := make(map[string]interface{}, len(kvs)/2)
	for i := 0; i < len(kvs)-1; i += 2 {
		if key, ok := kvs[i].(string); ok {
			m[key] = kvs[i+1]
		}
	}
	return m
}

// ErrorFields creates fields for an operation that failed.
func ErrorFields(op string, err error) map[string]interface{} {
	return map[string]interface{}{
		FieldOperation: op,
		FieldError:     err.Error(),
	}
}

// MergeWithError adds an error field to an existing map.
func MergeWithError(fields map[string]interface{}, err error) map[string]interface{} {
	if fields == nil {
		fields = make(map[string]interface{})
	}
	fields[FieldError] = err.Error()
	return fields
}
