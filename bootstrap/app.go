// Package bootstrap assembles a configured application around the engine:
// it loads configuration, initializes logging, builds a registry, runs the
// caller's registration hooks, and optionally validates and warms the
// resulting wiring.
package bootstrap

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"github.com/KennethUlloa/dependify/config"
	"github.com/KennethUlloa/dependify/di"
	"github.com/KennethUlloa/dependify/graph"
	"github.com/KennethUlloa/dependify/logger"
	"github.com/KennethUlloa/dependify/version"
)

// App is a bootstrapped application: its configuration, logger, and wired
// registry.
type App struct {
	Name     string
	Cfg      *config.Config
	Registry *di.Registry
	Logger   *logger.Logger

	onStop []Hook
}

// New loads configuration, initializes the logger, builds the registry, and
// runs every registration hook. With CheckWiring set, it also validates the
// wiring is acyclic and warms singleton caches before returning.
func New(opts ...Option) (*App, error) {
	o := resolveOptions(opts)

	cfg := &config.Config{}
	cfg.ApplyDefaults()
	if err := config.Load(cfg, o.loaderOptions...); err != nil {
		return nil, fmt.Errorf("load config: %w", err)
	}
	cfg.ApplyDefaults()
	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("validate config: %w", err)
	}

	app := &App{Name: cfg.Name, Cfg: cfg}

	if o.logger != nil {
		app.Logger = o.logger
	} else {
		logger.Init(cfg.Logging)
		app.Logger = logger.GetGlobalLogger().WithComponent(cfg.Name)
	}

	if o.registry != nil {
		app.Registry = o.registry
	} else {
		app.Registry = di.NewRegistry(registryOptions(cfg.Registry)...)
	}
	if o.setDefault {
		di.SetDefault(app.Registry)
	}

	app.Logger.Info("Application bootstrapping", map[string]interface{}{
		"name":        cfg.Name,
		"environment": cfg.Environment,
		"version":     version.Short(),
	})

	for _, hook := range o.onRegister {
		if err := hook(app.Registry); err != nil {
			return nil, fmt.Errorf("registration hook: %w", err)
		}
	}

	if o.checkWiring {
		if err := graph.Warmup(app.Registry); err != nil {
			return nil, fmt.Errorf("wiring check: %w", err)
		}
		app.Logger.Debug("Wiring validated", map[string]interface{}{
			logger.FieldCount: len(app.Registry.Entries()),
		})
	}

	return app, nil
}

// OnStop registers a hook that runs during Shutdown, in registration order.
func (a *App) OnStop(hooks ...Hook) {
	a.onStop = append(a.onStop, hooks...)
}

// RunTask executes a finite task with signal-based cancellation: SIGINT or
// SIGTERM cancels the task's context, then Shutdown runs regardless of the
// task's outcome.
func (a *App) RunTask(ctx context.Context, task func(ctx context.Context) error) error {
	taskCtx, cancel := context.WithCancel(ctx)
	defer cancel()

	sigCh := make(chan os.Signal, 1)
	signal.Notify(sigCh, syscall.SIGINT, syscall.SIGTERM)
	defer signal.Stop(sigCh)

	go func() {
		select {
		case sig := <-sigCh:
			a.Logger.Info("Received signal, canceling task", map[string]interface{}{
				"signal": sig.String(),
			})
			cancel()
		case <-taskCtx.Done():
		}
	}()

	taskErr := task(taskCtx)

	if stopErr := a.Shutdown(ctx); stopErr != nil {
		if taskErr != nil {
			return taskErr
		}
		return stopErr
	}
	return taskErr
}

// Shutdown runs the stop hooks and clears the registry.
func (a *App) Shutdown(ctx context.Context) error {
	var shutdownErr error
	if err := runHooks(ctx, a.onStop); err != nil {
		a.Logger.Error("Stop hook error", logger.MergeWithError(map[string]interface{}{
			"name": a.Name,
		}, err))
		shutdownErr = err
	}

	a.Registry.Clear()
	a.Logger.Info("Application shutdown complete")
	return shutdownErr
}

// registryOptions translates registry configuration into registry options.
func registryOptions(cfg config.RegistryConfig) []di.Option {
	var opts []di.Option
	if cfg.MaxDepth > 0 {
		opts = append(opts, di.WithMaxDepth(cfg.MaxDepth))
	}
	if cfg.LogResolutions {
		opts = append(opts, di.WithResolutionLogging())
	}
	return opts
}
