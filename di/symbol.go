package di

import "reflect"

// Symbol is an opaque identifier for a constructible thing, used as the
// registry key. Equality is type identity, not structural.
type Symbol = reflect.Type

// TypeOf returns the Symbol for T. It works for struct, pointer, and
// interface types alike.
//
//	di.TypeOf[Database]()        // main.Database
//	di.TypeOf[io.Writer]()       // io.Writer
func TypeOf[T any]() Symbol {
	return reflect.TypeOf((*T)(nil)).Elem()
}

// symbolName returns the human-readable name of a symbol for error
// messages and log fields.
func symbolName(s Symbol) string {
	if s == nil {
		return "<nil>"
	}
	return s.String()
}
