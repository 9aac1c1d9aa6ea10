package di

import "fmt"

// RegisterType registers T in the given registry (nil means the default
// registry), with T as its own constructor unless WithTarget overrides it.
func RegisterType[T any](r *Registry, opts ...RegisterOption) error {
	if r == nil {
		r = Default()
	}
	return r.Register(TypeOf[T](), opts...)
}

// ResolveAs resolves T from the registry with type safety, bridging
// pointer/value shapes. Use this when you want to handle resolution errors
// gracefully.
//
//	repo, err := di.ResolveAs[*Repository](reg)
//	if err != nil {
//	    return fmt.Errorf("failed to get repository: %w", err)
//	}
func ResolveAs[T any](r *Registry) (T, error) {
	var zero T
	if r == nil {
		r = Default()
	}
	instance, err := r.ResolveType(TypeOf[T]())
	if err != nil {
		return zero, err
	}
	if instance == nil {
		return zero, nil
	}
	result, ok := instance.(T)
	if !ok {
		return zero, fmt.Errorf("di: symbol %s resolved to %T, expected %T", symbolName(TypeOf[T]()), instance, zero)
	}
	return result, nil
}

// MustResolve resolves T with type safety, panicking on error. Use this in
// wiring code where a missing registration is a programming error.
func MustResolve[T any](r *Registry) T {
	result, err := ResolveAs[T](r)
	if err != nil {
		panic(fmt.Sprintf("di: failed to resolve %s: %v", symbolName(TypeOf[T]()), err))
	}
	return result
}

// TryResolve resolves T, returning the zero value and false when the symbol
// is unregistered or resolution fails. Use this when a dependency is
// optional.
//
//	if metrics, ok := di.TryResolve[*Metrics](reg); ok {
//	    metrics.Record(...)
//	}
func TryResolve[T any](r *Registry) (T, bool) {
	result, err := ResolveAs[T](r)
	if err != nil {
		var zero T
		return zero, false
	}
	return result, true
}
