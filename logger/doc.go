// Package logger provides structured logging for the dependency engine,
// built on zerolog. It exposes a configured Logger type plus a global
// logger with package-level convenience functions, so registries and
// binders can emit debug-level traces of registrations and resolutions
// without carrying a logger reference.
package logger
