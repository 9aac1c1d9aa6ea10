package di

import (
	"fmt"
	"reflect"
	"sync"

	"github.com/KennethUlloa/dependify/errors"
)

// Recipe represents one registered construction strategy: a target
// constructible (struct type or factory function), whether results are
// cached, and the parameter schema introspected from the target at
// registration time.
//
// A Recipe is immutable after construction except for its cache slot.
type Recipe struct {
	target     any
	structType reflect.Type
	fn         reflect.Value
	cached     bool
	schema     Schema

	mu       sync.Mutex
	instance any
	resolved bool
}

// NewRecipe builds a Recipe for a target constructible. The target is either
// a struct type (di.TypeOf[T]()) constructed by direct field assignment, or
// a factory function returning (T) or (T, error). The parameter schema is
// snapshotted here: struct fields with their `default` tags, or the function's
// parameter types (Go reflection carries no parameter names or defaults, so
// function parameters are named argN and have no defaults).
//
// No validation against any registry happens at this stage; unresolved
// parameter types stay unresolved until resolve time.
func NewRecipe(target any, cached bool) (*Recipe, error) {
	switch t := target.(type) {
	case reflect.Type:
		return newStructRecipe(t, cached)
	case nil:
		return nil, errors.InvalidTarget("nil target")
	default:
		v := reflect.ValueOf(target)
		if v.Kind() != reflect.Func {
			return nil, errors.InvalidTarget(fmt.Sprintf("%T is neither a type nor a function", target))
		}
		return newFuncRecipe(target, v, cached)
	}
}

func newStructRecipe(t reflect.Type, cached bool) (*Recipe, error) {
	st := t
	if st.Kind() == reflect.Ptr {
		st = st.Elem()
	}
	if st.Kind() != reflect.Struct {
		return nil, errors.InvalidTarget(symbolName(t) + " is not a struct type")
	}
	schema, err := SchemaOf(st)
	if err != nil {
		return nil, err
	}
	return &Recipe{
		target:     t,
		structType: st,
		cached:     cached,
		schema:     schema,
	}, nil
}

func newFuncRecipe(target any, fn reflect.Value, cached bool) (*Recipe, error) {
	ft := fn.Type()
	if ft.IsVariadic() {
		return nil, errors.InvalidTarget("variadic constructors are not supported")
	}
	switch ft.NumOut() {
	case 1:
	case 2:
		if !ft.Out(1).Implements(errorType) {
			return nil, errors.InvalidTarget("second return value must be error")
		}
	default:
		return nil, errors.InvalidTarget("constructor must return (T) or (T, error)")
	}

	schema := make(Schema, ft.NumIn())
	for i := 0; i < ft.NumIn(); i++ {
		schema[i] = Field{Name: fmt.Sprintf("arg%d", i), Type: ft.In(i)}
	}
	return &Recipe{
		target: target,
		fn:     fn,
		cached: cached,
		schema: schema,
	}, nil
}

var errorType = reflect.TypeOf((*error)(nil)).Elem()

// Target returns the recipe's registered constructible.
func (r *Recipe) Target() any { return r.target }

// targetName names the constructible for log fields: the type itself for
// struct recipes, the function signature for factories.
func (r *Recipe) targetName() string {
	if r.structType != nil {
		return symbolName(r.structType)
	}
	return r.fn.Type().String()
}

// Cached reports whether resolution results are retained and reused.
func (r *Recipe) Cached() bool { return r.cached }

// Schema returns a copy of the recipe's parameter schema.
func (r *Recipe) Schema() Schema {
	out := make(Schema, len(r.schema))
	copy(out, r.schema)
	return out
}

// ParameterTypes returns the declared type of every parameter, keyed by name.
func (r *Recipe) ParameterTypes() map[string]Symbol {
	out := make(map[string]Symbol, len(r.schema))
	for _, f := range r.schema {
		out[f.Name] = f.Type
	}
	return out
}

// ParameterDefaults returns the literal defaults declared by the target,
// keyed by parameter name.
func (r *Recipe) ParameterDefaults() map[string]any {
	out := make(map[string]any)
	for _, f := range r.schema {
		if f.HasDefault {
			out[f.Name] = f.Default
		}
	}
	return out
}

// Resolved reports whether a cached instance has been produced.
func (r *Recipe) Resolved() bool {
	r.mu.Lock()
	defer r.mu.Unlock()
	return r.resolved
}

// invoke produces an instance from the assembled argument set, honoring the
// cache slot. The first successful construction of a cached recipe is
// retained for all subsequent resolutions; a cached zero or nil result is
// still a result and is not re-invoked.
func (r *Recipe) invoke(symbol Symbol, args map[string]any) (any, error) {
	if !r.cached {
		return r.construct(symbol, args)
	}

	r.mu.Lock()
	defer r.mu.Unlock()
	if r.resolved {
		return r.instance, nil
	}
	instance, err := r.construct(symbol, args)
	if err != nil {
		return nil, err
	}
	r.instance = instance
	r.resolved = true
	return instance, nil
}

func (r *Recipe) construct(symbol Symbol, args map[string]any) (any, error) {
	if r.structType != nil {
		return r.constructStruct(symbol, args)
	}
	return r.callConstructor(symbol, args)
}

// constructStruct builds a new *T and assigns every supplied argument onto
// the matching field. Fields with no argument keep their zero value.
func (r *Recipe) constructStruct(symbol Symbol, args map[string]any) (any, error) {
	v := reflect.New(r.structType)
	elem := v.Elem()
	for _, f := range r.schema {
		val, ok := args[f.Name]
		if !ok {
			continue
		}
		adapted, ok := Adapt(val, f.Type)
		if !ok {
			return nil, errors.Construction(symbolName(symbol),
				errors.TypeMismatch(f.Name, symbolName(f.Type), typeNameOf(val)))
		}
		if adapted == nil {
			continue
		}
		elem.FieldByName(f.Name).Set(reflect.ValueOf(adapted))
	}
	return v.Interface(), nil
}

// callConstructor invokes a factory function with positionally assembled
// arguments. Every parameter must have been resolved; a function call
// cannot proceed with holes.
func (r *Recipe) callConstructor(symbol Symbol, args map[string]any) (any, error) {
	ft := r.fn.Type()
	in := make([]reflect.Value, len(r.schema))
	for i, f := range r.schema {
		val, ok := args[f.Name]
		if !ok {
			return nil, errors.UnresolvedParameter(i, symbolName(f.Type), symbolName(symbol))
		}
		adapted, ok := Adapt(val, f.Type)
		if !ok {
			return nil, errors.UnresolvedParameter(i, symbolName(f.Type), symbolName(symbol)).
				WithDetail("actual", typeNameOf(val))
		}
		if adapted == nil {
			in[i] = reflect.Zero(f.Type)
		} else {
			in[i] = reflect.ValueOf(adapted)
		}
	}

	out := r.fn.Call(in)
	if ft.NumOut() == 2 {
		if errVal := out[1].Interface(); errVal != nil {
			return nil, errors.Construction(symbolName(symbol), errVal.(error))
		}
	}
	return out[0].Interface(), nil
}

// Adapt fits a value to a requested type, bridging the pointer/value gap
// between registered construction results (structs resolve to *T) and
// declared field or parameter types. It returns false when no safe shape
// exists.
func Adapt(value any, t reflect.Type) (any, bool) {
	if value == nil {
		switch t.Kind() {
		case reflect.Ptr, reflect.Interface, reflect.Map, reflect.Slice, reflect.Chan, reflect.Func:
			return nil, true
		default:
			return nil, false
		}
	}

	rv := reflect.ValueOf(value)
	if rv.Type().AssignableTo(t) {
		return value, true
	}
	// *T supplied where T is wanted.
	if rv.Kind() == reflect.Ptr && !rv.IsNil() && rv.Type().Elem().AssignableTo(t) {
		return rv.Elem().Interface(), true
	}
	// T supplied where *T is wanted.
	if t.Kind() == reflect.Ptr && rv.Type().AssignableTo(t.Elem()) {
		pv := reflect.New(t.Elem())
		pv.Elem().Set(rv)
		return pv.Interface(), true
	}
	return nil, false
}

func typeNameOf(value any) string {
	if value == nil {
		return "nil"
	}
	return reflect.TypeOf(value).String()
}
