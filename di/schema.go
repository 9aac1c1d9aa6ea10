package di

import (
	"reflect"
	"strconv"

	"github.com/KennethUlloa/dependify/errors"
)

// Field describes one entry of a type's field specification: its name, its
// declared type, and an optional literal default.
type Field struct {
	Name       string
	Type       Symbol
	HasDefault bool
	Default    any
}

// Schema is an ordered field specification for a constructible type. Order
// is significant: it defines positional-argument mapping for synthesized
// constructors. A Schema is derived once per type and reused for every
// construction.
type Schema []Field

// Lookup returns the field with the given name.
func (s Schema) Lookup(name string) (Field, bool) {
	for _, f := range s {
		if f.Name == name {
			return f, true
		}
	}
	return Field{}, false
}

// Names returns the field names in declaration order.
func (s Schema) Names() []string {
	names := make([]string, len(s))
	for i, f := range s {
		names[i] = f.Name
	}
	return names
}

// SchemaOf derives the field specification for a struct type. Exported
// fields are recorded in declaration order; fields tagged `inject:"-"` are
// skipped; a `default:"…"` tag supplies a literal default parsed according
// to the field's kind.
//
// The result is an immutable snapshot: later registrations or tag changes
// on other copies of the type do not affect it.
func SchemaOf(t reflect.Type) (Schema, error) {
	if t.Kind() == reflect.Ptr {
		t = t.Elem()
	}
	if t.Kind() != reflect.Struct {
		return nil, errors.InvalidSchema(symbolName(t), "not a struct type")
	}

	schema := make(Schema, 0, t.NumField())
	for i := 0; i < t.NumField(); i++ {
		sf := t.Field(i)
		if !sf.IsExported() {
			continue
		}
		if sf.Tag.Get("inject") == "-" {
			continue
		}

		field := Field{Name: sf.Name, Type: sf.Type}
		if raw, ok := sf.Tag.Lookup("default"); ok {
			def, err := parseDefault(raw, sf.Type)
			if err != nil {
				return nil, errors.InvalidSchema(symbolName(t), "field "+sf.Name+": "+err.Error())
			}
			field.HasDefault = true
			field.Default = def
		}
		schema = append(schema, field)
	}
	return schema, nil
}

// SchemaOfType derives the field specification for T.
func SchemaOfType[T any]() (Schema, error) {
	return SchemaOf(TypeOf[T]())
}

// MustSchemaOf derives the field specification for T, panicking on
// underivable types. Intended for declaration-time use.
func MustSchemaOf[T any]() Schema {
	schema, err := SchemaOfType[T]()
	if err != nil {
		panic(err)
	}
	return schema
}

// parseDefault converts a `default` tag value into the field's concrete type.
func parseDefault(raw string, t reflect.Type) (any, error) {
	switch t.Kind() {
	case reflect.String:
		return reflect.ValueOf(raw).Convert(t).Interface(), nil
	case reflect.Bool:
		b, err := strconv.ParseBool(raw)
		if err != nil {
			return nil, err
		}
		v := reflect.New(t).Elem()
		v.SetBool(b)
		return v.Interface(), nil
	case reflect.Int, reflect.Int8, reflect.Int16, reflect.Int32, reflect.Int64:
		n, err := strconv.ParseInt(raw, 10, 64)
		if err != nil {
			return nil, err
		}
		v := reflect.New(t).Elem()
		if v.OverflowInt(n) {
			return nil, strconv.ErrRange
		}
		v.SetInt(n)
		return v.Interface(), nil
	case reflect.Uint, reflect.Uint8, reflect.Uint16, reflect.Uint32, reflect.Uint64:
		n, err := strconv.ParseUint(raw, 10, 64)
		if err != nil {
			return nil, err
		}
		v := reflect.New(t).Elem()
		if v.OverflowUint(n) {
			return nil, strconv.ErrRange
		}
		v.SetUint(n)
		return v.Interface(), nil
	case reflect.Float32, reflect.Float64:
		f, err := strconv.ParseFloat(raw, 64)
		if err != nil {
			return nil, err
		}
		v := reflect.New(t).Elem()
		v.SetFloat(f)
		return v.Interface(), nil
	default:
		return nil, errors.New(errors.ErrCodeInvalidSchema, "default tags are not supported for "+t.Kind().String()+" fields")
	}
}
