package bootstrap

import (
	"github.com/KennethUlloa/dependify/config"
	"github.com/KennethUlloa/dependify/di"
	"github.com/KennethUlloa/dependify/logger"
)

// Option configures the App during creation.
type Option func(*appOptions)

// RegisterHook populates a registry during bootstrap. Hooks run in the
// order they were supplied; the first error aborts the bootstrap.
type RegisterHook func(reg *di.Registry) error

type appOptions struct {
	logger        *logger.Logger
	registry      *di.Registry
	loaderOptions []config.LoaderOption
	onRegister    []RegisterHook
	setDefault    bool
	checkWiring   bool
}

func resolveOptions(opts []Option) *appOptions {
	o := &appOptions{}
	for _, opt := range opts {
		opt(o)
	}
	return o
}

// WithLogger sets a custom logger. If not set, the logger is initialized
// from the loaded configuration.
func WithLogger(l *logger.Logger) Option {
	return func(o *appOptions) { o.logger = l }
}

// WithRegistry sets a pre-built registry instead of creating one from the
// loaded configuration.
func WithRegistry(r *di.Registry) Option {
	return func(o *appOptions) { o.registry = r }
}

// WithConfigFile sets an explicit configuration file path.
func WithConfigFile(path string) Option {
	return func(o *appOptions) {
		o.loaderOptions = append(o.loaderOptions, config.WithConfigFile(path))
	}
}

// WithLoaderOptions forwards additional options to the configuration loader.
func WithLoaderOptions(opts ...config.LoaderOption) Option {
	return func(o *appOptions) {
		o.loaderOptions = append(o.loaderOptions, opts...)
	}
}

// WithRegistrations adds hooks that populate the registry during bootstrap.
func WithRegistrations(hooks ...RegisterHook) Option {
	return func(o *appOptions) { o.onRegister = append(o.onRegister, hooks...) }
}

// AsDefault installs the app's registry as the process-wide default, so
// declaration-time constructors resolve against it.
func AsDefault() Option {
	return func(o *appOptions) { o.setDefault = true }
}

// CheckWiring validates that the wiring is acyclic and warms singleton
// caches during bootstrap, surfacing construction errors at startup.
func CheckWiring() Option {
	return func(o *appOptions) { o.checkWiring = true }
}
