// Package bind synthesizes validated constructors from a type's field
// specification. A Constructor accepts a mix of positional and named
// arguments, auto-fills fields whose declared type is registered in a
// registry, validates argument types, and reports precise, aggregated
// errors.
//
//	type Service struct {
//	    Name   string
//	    Db     *Database          // auto-filled when Database is registered
//	    Level  string `default:"info"`
//	}
//
//	var newService = bind.Injected[Service]()
//
//	svc, err := newService.NewNamed(bind.Named{"Name": "orders"})
//
// Construction either fully succeeds or fully fails; no partially populated
// instance is ever returned. Field order in the struct declaration defines
// positional-argument mapping.
package bind
