package di

import (
	"reflect"
	"sync"

	"github.com/google/uuid"

	"github.com/KennethUlloa/dependify/errors"
	"github.com/KennethUlloa/dependify/logger"
)

// Registry maps symbols to construction recipes. Re-registration silently
// replaces; a registry never auto-creates entries.
type Registry struct {
	id             string
	mu             sync.RWMutex
	entries        map[Symbol]*Recipe
	maxDepth       int
	logResolutions bool
}

// Option configures a Registry.
type Option func(*Registry)

// WithMaxDepth installs a hard recursion guard on resolution chains, on top
// of cycle detection. Zero disables the guard.
func WithMaxDepth(n int) Option {
	return func(r *Registry) { r.maxDepth = n }
}

// WithResolutionLogging makes the registry emit a debug log line for every
// successful resolution, not just registrations.
func WithResolutionLogging() Option {
	return func(r *Registry) { r.logResolutions = true }
}

// NewRegistry creates an empty registry.
func NewRegistry(opts ...Option) *Registry {
	r := &Registry{
		id:      uuid.New().String(),
		entries: make(map[Symbol]*Recipe),
	}
	for _, opt := range opts {
		opt(r)
	}
	return r
}

// ID returns the registry's unique instance id, carried in log fields.
func (r *Registry) ID() string { return r.id }

// RegisterOption configures a single registration.
type RegisterOption func(*registerOptions)

type registerOptions struct {
	target any
	cached bool
}

// WithTarget sets the replacement constructible for a symbol: either a
// factory function or another type (di.TypeOf[Impl]()). When omitted, the
// symbol is its own constructor.
func WithTarget(target any) RegisterOption {
	return func(o *registerOptions) { o.target = target }
}

// Cached gives the registration singleton semantics: the first resolution
// result is retained and returned for all subsequent resolutions for the
// lifetime of the owning registry.
func Cached() RegisterOption {
	return func(o *registerOptions) { o.cached = true }
}

// Register records a recipe for a symbol. Omitting WithTarget self-registers
// the symbol as its own constructor. Re-registration is always legal and
// silently replaces the prior recipe. The only error condition is a target
// that cannot be introspected.
func (r *Registry) Register(symbol Symbol, opts ...RegisterOption) error {
	var o registerOptions
	for _, opt := range opts {
		opt(&o)
	}

	target := o.target
	if target == nil {
		target = symbol
	}

	recipe, err := NewRecipe(target, o.cached)
	if err != nil {
		return err
	}

	r.RegisterRecipe(symbol, recipe)
	return nil
}

// RegisterRecipe records a pre-built recipe for a symbol, replacing any
// prior entry.
func (r *Registry) RegisterRecipe(symbol Symbol, recipe *Recipe) {
	r.mu.Lock()
	r.entries[symbol] = recipe
	r.mu.Unlock()

	logger.Debug("Recipe registered", map[string]interface{}{
		logger.FieldRegistry: r.id,
		logger.FieldSymbol:   symbolName(symbol),
		logger.FieldTarget:   recipe.targetName(),
		logger.FieldCached:   recipe.Cached(),
	})
}

// Has reports whether the registry holds a recipe for the symbol.
func (r *Registry) Has(symbol Symbol) bool {
	r.mu.RLock()
	defer r.mu.RUnlock()
	_, ok := r.entries[symbol]
	return ok
}

// Entries returns a read-only snapshot of the symbol-to-recipe mapping.
// Mutating the returned map does not affect the registry.
func (r *Registry) Entries() map[Symbol]*Recipe {
	r.mu.RLock()
	defer r.mu.RUnlock()
	out := make(map[Symbol]*Recipe, len(r.entries))
	for k, v := range r.entries {
		out[k] = v
	}
	return out
}

// Clear removes every entry from the registry.
func (r *Registry) Clear() {
	r.mu.Lock()
	r.entries = make(map[Symbol]*Recipe)
	r.mu.Unlock()

	logger.Debug("Registry cleared", map[string]interface{}{
		logger.FieldRegistry: r.id,
	})
}

// Resolve builds or fetches an instance for the symbol. Absence of a recipe
// yields a NOT_FOUND error (check with errors.IsNotFound); callers branch on
// it rather than treat it as fatal.
//
// Resolution is recursive: the recipe's literal defaults form the base
// argument set, then every typed parameter whose type resolves from this
// registry overrides or augments it, then the target is invoked (or the
// cached instance returned).
func (r *Registry) Resolve(symbol Symbol) (any, error) {
	return r.resolve(symbol, make([]Symbol, 0, 8))
}

func (r *Registry) resolve(symbol Symbol, stack []Symbol) (any, error) {
	if r.maxDepth > 0 && len(stack) >= r.maxDepth {
		return nil, errors.MaxDepthExceeded(symbolName(symbol), r.maxDepth)
	}
	for _, s := range stack {
		if s == symbol {
			return nil, errors.CyclicDependency(cyclePath(stack, symbol))
		}
	}

	r.mu.RLock()
	recipe, ok := r.entries[symbol]
	r.mu.RUnlock()
	if !ok {
		return nil, errors.NotFound(symbolName(symbol))
	}

	stack = append(stack, symbol)

	args := make(map[string]any, len(recipe.schema))
	for _, f := range recipe.schema {
		if f.HasDefault {
			args[f.Name] = f.Default
		}
	}
	for _, f := range recipe.schema {
		val, err := r.resolveForType(f.Type, stack)
		if err != nil {
			if errors.IsNotFound(err) {
				continue
			}
			return nil, err
		}
		args[f.Name] = val
	}

	instance, err := recipe.invoke(symbol, args)
	if err != nil {
		return nil, err
	}

	if r.logResolutions {
		logger.Debug("Symbol resolved", map[string]interface{}{
			logger.FieldRegistry: r.id,
			logger.FieldSymbol:   symbolName(symbol),
			logger.FieldCached:   recipe.Cached(),
			logger.FieldDepth:    len(stack),
		})
	}
	return instance, nil
}

// ResolveType resolves the registry entry for a declared field or parameter
// type, adapting the pointer/value shape of the result to the requested
// type. A pointer type falls back to its element's registration, so a field
// declared *Database is filled from a Database registration and vice versa.
func (r *Registry) ResolveType(t reflect.Type) (any, error) {
	return r.resolveForType(t, make([]Symbol, 0, 8))
}

func (r *Registry) resolveForType(t reflect.Type, stack []Symbol) (any, error) {
	val, err := r.resolve(t, stack)
	if err != nil && errors.IsNotFound(err) && t.Kind() == reflect.Ptr {
		val, err = r.resolve(t.Elem(), stack)
	}
	if err != nil {
		return nil, err
	}
	adapted, ok := Adapt(val, t)
	if !ok {
		return nil, errors.NotFound(symbolName(t)).
			WithDetail("actual", typeNameOf(val))
	}
	return adapted, nil
}

// Invoke calls fn, resolving every parameter from the registry. Parameters
// that cannot be resolved fail the call. If fn's last return value is an
// error, it is split off and returned separately; the remaining results
// come back as a slice.
func (r *Registry) Invoke(fn any) ([]any, error) {
	v := reflect.ValueOf(fn)
	if v.Kind() != reflect.Func {
		return nil, errors.InvalidTarget("Invoke requires a function")
	}
	ft := v.Type()
	if ft.IsVariadic() {
		return nil, errors.InvalidTarget("variadic functions are not supported")
	}

	in := make([]reflect.Value, ft.NumIn())
	for i := 0; i < ft.NumIn(); i++ {
		val, err := r.ResolveType(ft.In(i))
		if err != nil {
			return nil, errors.UnresolvedParameter(i, symbolName(ft.In(i)), ft.String()).WithCause(err)
		}
		if val == nil {
			in[i] = reflect.Zero(ft.In(i))
		} else {
			in[i] = reflect.ValueOf(val)
		}
	}

	out := v.Call(in)
	results := make([]any, 0, len(out))
	for i, o := range out {
		if i == len(out)-1 && ft.Out(i).Implements(errorType) {
			if errVal := o.Interface(); errVal != nil {
				return results, errVal.(error)
			}
			continue
		}
		results = append(results, o.Interface())
	}
	return results, nil
}

// cyclePath renders the resolution stack plus the revisited symbol.
func cyclePath(stack []Symbol, symbol Symbol) []string {
	path := make([]string, 0, len(stack)+1)
	for _, s := range stack {
		path = append(path, symbolName(s))
	}
	return append(path, symbolName(symbol))
}
