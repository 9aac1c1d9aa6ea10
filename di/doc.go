// Package di provides a dependency registry: symbols (types) mapped to
// construction recipes, with recursive resolution of transitive
// dependencies and optional singleton caching.
//
// # Registration
//
//	reg := di.NewRegistry()
//	di.RegisterType[Database](reg, di.Cached())
//	di.RegisterType[Repository](reg)
//
// # Resolution
//
//	repo := di.MustResolve[*Repository](reg)
//
// Resolution is recursive: every struct field (or constructor parameter)
// whose type is itself registered is resolved from the registry before the
// recipe's target is invoked. Literal defaults declared via `default:"…"`
// struct tags form the base argument set; registry-resolved values take
// priority over them.
//
// A process-wide default registry backs the package-level Register, Resolve,
// Has, and Entries shortcuts as well as the Injectable declaration helper;
// Reset replaces it with a fresh empty registry between independent units of
// work.
package di
