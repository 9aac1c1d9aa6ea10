package bind

import (
	"fmt"
	"reflect"
	"sort"

	"github.com/KennethUlloa/dependify/di"
	"github.com/KennethUlloa/dependify/errors"
)

// Named carries keyword-style arguments for a synthesized constructor.
type Named map[string]any

// Option configures a Constructor.
type Option func(*options)

type options struct {
	registry *di.Registry
	schema   di.Schema
}

// WithRegistry binds the constructor to an explicit registry instead of the
// process-wide default.
func WithRegistry(r *di.Registry) Option {
	return func(o *options) { o.registry = r }
}

// WithSchema overrides the field specification instead of deriving it from
// the type's struct fields.
func WithSchema(s di.Schema) Option {
	return func(o *options) { o.schema = s }
}

// Constructor is a synthesized constructor for T: stateless, closed over a
// field specification and a registry reference. Every call produces a new
// instance (registry-resolved sub-fields of cached registrations may be
// shared, the constructed object itself never is).
type Constructor[T any] struct {
	schema   di.Schema
	registry *di.Registry
	typeName string
}

// For builds a constructor for T. The field specification is derived once
// from T's struct declaration unless WithSchema overrides it. T must be the
// struct type itself, not a pointer to it: New already returns *T.
func For[T any](opts ...Option) (*Constructor[T], error) {
	if t := di.TypeOf[T](); t.Kind() == reflect.Ptr {
		return nil, errors.InvalidSchema(t.String(), "pointer type parameter; declare the constructor for the struct type")
	}

	var o options
	for _, opt := range opts {
		opt(&o)
	}

	schema := o.schema
	if schema == nil {
		derived, err := di.SchemaOfType[T]()
		if err != nil {
			return nil, err
		}
		schema = derived
	}

	return &Constructor[T]{
		schema:   schema,
		registry: o.registry,
		typeName: di.TypeOf[T]().String(),
	}, nil
}

// MustFor builds a constructor for T, panicking on underivable types.
// Intended for declaration-time use in package variables.
func MustFor[T any](opts ...Option) *Constructor[T] {
	c, err := For[T](opts...)
	if err != nil {
		panic(err)
	}
	return c
}

// Injected declares the synthesized constructor for T, replacing the need
// for a hand-written one. Types that declare their own constructor simply
// never call Injected.
//
//	var newService = bind.Injected[Service]()
func Injected[T any](opts ...Option) *Constructor[T] {
	return MustFor[T](opts...)
}

// Schema returns a copy of the constructor's field specification.
func (c *Constructor[T]) Schema() di.Schema {
	out := make(di.Schema, len(c.schema))
	copy(out, c.schema)
	return out
}

// Registry returns the registry consulted for auto-fill: the explicit one
// if set, otherwise the current process-wide default.
func (c *Constructor[T]) Registry() *di.Registry {
	if c.registry != nil {
		return c.registry
	}
	return di.Default()
}

// New constructs a T from positional arguments only.
func (c *Constructor[T]) New(pos ...any) (*T, error) {
	return c.NewNamed(nil, pos...)
}

// MustNew constructs a T from positional arguments, panicking on any
// binding error.
func (c *Constructor[T]) MustNew(pos ...any) *T {
	instance, err := c.New(pos...)
	if err != nil {
		panic(err)
	}
	return instance
}

// NewNamed constructs a T from positional and named arguments.
//
// Positional arguments bind to fields in declaration order. Named arguments
// bind by field name; a field supplied both ways, or a name matching no
// field, fails the call. Fields left unbound fall back, in order, to the
// registry (by declared type), then to the field's literal default. Every
// field still unresolved after the fallback chain is reported in one
// aggregated error. Explicitly supplied values are type-checked against the
// declared field type; auto-filled and defaulted values are exempt.
func (c *Constructor[T]) NewNamed(named Named, pos ...any) (*T, error) {
	if len(pos) > len(c.schema) {
		return nil, errors.UnexpectedArgument(len(pos), len(c.schema), c.typeName)
	}

	bound := make(map[string]any, len(c.schema))
	explicit := make(map[string]bool, len(c.schema))
	positional := make(map[string]bool, len(pos))

	for i, v := range pos {
		name := c.schema[i].Name
		bound[name] = v
		explicit[name] = true
		positional[name] = true
	}

	for _, key := range sortedKeys(named) {
		if positional[key] {
			return nil, errors.ArgumentConflict(key)
		}
		if _, ok := c.schema.Lookup(key); !ok {
			return nil, errors.UnknownArgument(key, c.typeName)
		}
		bound[key] = named[key]
		explicit[key] = true
	}

	registry := c.Registry()
	var missing []string
	for _, f := range c.schema {
		if explicit[f.Name] {
			continue
		}
		val, err := registry.ResolveType(f.Type)
		if err == nil {
			bound[f.Name] = val
			continue
		}
		if !errors.IsNotFound(err) {
			return nil, err
		}
		if f.HasDefault {
			bound[f.Name] = f.Default
			continue
		}
		missing = append(missing, f.Name)
	}
	if len(missing) > 0 {
		return nil, errors.MissingArguments(missing)
	}

	for _, f := range c.schema {
		if !explicit[f.Name] {
			continue
		}
		if err := checkType(f, bound[f.Name]); err != nil {
			return nil, err
		}
	}

	instance := new(T)
	elem := reflect.ValueOf(instance).Elem()
	for _, f := range c.schema {
		val, ok := bound[f.Name]
		if !ok {
			continue
		}
		adapted, ok := di.Adapt(val, f.Type)
		if !ok {
			return nil, errors.TypeMismatch(f.Name, f.Type.String(), typeName(val))
		}
		if adapted == nil {
			continue
		}
		elem.FieldByName(f.Name).Set(reflect.ValueOf(adapted))
	}
	return instance, nil
}

// checkType validates an explicitly supplied value against the declared
// field type.
func checkType(f di.Field, val any) error {
	if val == nil {
		switch f.Type.Kind() {
		case reflect.Ptr, reflect.Interface, reflect.Map, reflect.Slice, reflect.Chan, reflect.Func:
			return nil
		default:
			return errors.TypeMismatch(f.Name, f.Type.String(), "nil")
		}
	}
	if !reflect.TypeOf(val).AssignableTo(f.Type) {
		return errors.TypeMismatch(f.Name, f.Type.String(), typeName(val))
	}
	return nil
}

func typeName(val any) string {
	if val == nil {
		return "nil"
	}
	return reflect.TypeOf(val).String()
}

func sortedKeys(m Named) []string {
	keys := make([]string, 0, len(m))
	for k := range m {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	return keys
}

// String describes the constructor for debugging.
func (c *Constructor[T]) String() string {
	return fmt.Sprintf("bind.Constructor[%s](%d fields)", c.typeName, len(c.schema))
}
