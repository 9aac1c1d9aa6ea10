package di

import "sync"

// The process-wide default registry. It backs the package-level shortcuts
// and any binder not bound to an explicit registry. Created once at init,
// replaceable with SetDefault, and resettable between independent units of
// work with Reset.
var (
	defaultMu       sync.RWMutex
	defaultRegistry = NewRegistry()
)

// Default returns the process-wide default registry.
func Default() *Registry {
	defaultMu.RLock()
	defer defaultMu.RUnlock()
	return defaultRegistry
}

// SetDefault replaces the process-wide default registry. A nil registry is
// ignored.
func SetDefault(r *Registry) {
	if r == nil {
		return
	}
	defaultMu.Lock()
	defaultRegistry = r
	defaultMu.Unlock()
}

// Reset replaces the default registry with a fresh empty one. Intended for
// isolating independent units of work, typically tests.
func Reset() {
	SetDefault(NewRegistry())
}

// Shortcuts operating on the default registry.

// Register records a recipe for a symbol in the default registry.
func Register(symbol Symbol, opts ...RegisterOption) error {
	return Default().Register(symbol, opts...)
}

// Resolve builds or fetches an instance for the symbol from the default
// registry.
func Resolve(symbol Symbol) (any, error) {
	return Default().Resolve(symbol)
}

// Has reports whether the default registry holds a recipe for the symbol.
func Has(symbol Symbol) bool {
	return Default().Has(symbol)
}

// Entries returns a read-only snapshot of the default registry's mapping.
func Entries() map[Symbol]*Recipe {
	return Default().Entries()
}

// Injectable registers T against the default registry at declaration time,
// with T as its own constructor unless WithTarget overrides it. It panics on
// targets that cannot be introspected, which surfaces at program startup.
//
//	func init() {
//	    di.Injectable[Database](di.Cached())
//	    di.Injectable[Logger]()
//	}
func Injectable[T any](opts ...RegisterOption) {
	if err := Register(TypeOf[T](), opts...); err != nil {
		panic(err)
	}
}
