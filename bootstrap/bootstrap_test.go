package bootstrap

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/KennethUlloa/dependify/di"
	"github.com/KennethUlloa/dependify/logger"
)

type testStore struct {
	Dsn string `default:"sqlite://memory"`
}

type testIndex struct {
	Store *testStore
}

func writeConfig(t *testing.T, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "config.yml")
	require.NoError(t, os.WriteFile(path, []byte(content), 0o644))
	return path
}

const minimalConfig = `
name: boot-test
environment: production
logging:
  level: error
registry:
  max_depth: 8
`

func TestNew_LoadsConfigAndBuildsRegistry(t *testing.T) {
	app, err := New(
		WithConfigFile(writeConfig(t, minimalConfig)),
		WithRegistrations(func(reg *di.Registry) error {
			return di.RegisterType[testStore](reg, di.Cached())
		}),
	)
	require.NoError(t, err)

	assert.Equal(t, "boot-test", app.Name)
	assert.Equal(t, 8, app.Cfg.Registry.MaxDepth)
	assert.True(t, app.Registry.Has(di.TypeOf[testStore]()))

	store := di.MustResolve[*testStore](app.Registry)
	assert.Equal(t, "sqlite://memory", store.Dsn)
}

func TestNew_InvalidConfigFails(t *testing.T) {
	_, err := New(WithConfigFile(writeConfig(t, "environment: nowhere\nname: x\n")))
	require.Error(t, err)
	assert.Contains(t, err.Error(), "validate config")
}

func TestNew_RegistrationHookErrorAborts(t *testing.T) {
	boom := fmt.Errorf("bad wiring")
	_, err := New(
		WithConfigFile(writeConfig(t, minimalConfig)),
		WithRegistrations(func(reg *di.Registry) error { return boom }),
	)
	require.Error(t, err)
	assert.ErrorIs(t, err, boom)
}

func TestNew_CheckWiringWarmsCaches(t *testing.T) {
	calls := 0
	app, err := New(
		WithConfigFile(writeConfig(t, minimalConfig)),
		WithRegistrations(func(reg *di.Registry) error {
			if err := di.RegisterType[testStore](reg, di.Cached(), di.WithTarget(func() *testStore {
				calls++
				return &testStore{Dsn: "warm"}
			})); err != nil {
				return err
			}
			return di.RegisterType[testIndex](reg)
		}),
		CheckWiring(),
	)
	require.NoError(t, err)
	assert.Equal(t, 1, calls)

	idx := di.MustResolve[*testIndex](app.Registry)
	require.NotNil(t, idx.Store)
	assert.Equal(t, "warm", idx.Store.Dsn)
	assert.Equal(t, 1, calls)
}

func TestNew_CheckWiringSurfacesConstructionError(t *testing.T) {
	broken := fmt.Errorf("no backend")
	_, err := New(
		WithConfigFile(writeConfig(t, minimalConfig)),
		WithRegistrations(func(reg *di.Registry) error {
			return di.RegisterType[testStore](reg, di.WithTarget(func() (*testStore, error) {
				return nil, broken
			}))
		}),
		CheckWiring(),
	)
	require.Error(t, err)
	assert.ErrorIs(t, err, broken)
}

func TestNew_AsDefaultInstallsRegistry(t *testing.T) {
	di.Reset()
	t.Cleanup(di.Reset)

	app, err := New(
		WithConfigFile(writeConfig(t, minimalConfig)),
		AsDefault(),
	)
	require.NoError(t, err)
	assert.Same(t, app.Registry, di.Default())
}

func TestNew_CustomLoggerAndRegistry(t *testing.T) {
	reg := di.NewRegistry()
	log := logger.NewDefault("custom")

	app, err := New(
		WithConfigFile(writeConfig(t, minimalConfig)),
		WithLogger(log),
		WithRegistry(reg),
	)
	require.NoError(t, err)
	assert.Same(t, reg, app.Registry)
	assert.Same(t, log, app.Logger)
}

func TestRunTask_RunsAndShutsDown(t *testing.T) {
	app, err := New(
		WithConfigFile(writeConfig(t, minimalConfig)),
		WithRegistrations(func(reg *di.Registry) error {
			return di.RegisterType[testStore](reg)
		}),
	)
	require.NoError(t, err)

	stopped := false
	app.OnStop(func(ctx context.Context) error {
		stopped = true
		return nil
	})

	ran := false
	err = app.RunTask(context.Background(), func(ctx context.Context) error {
		ran = true
		return nil
	})
	require.NoError(t, err)
	assert.True(t, ran)
	assert.True(t, stopped)
	assert.Empty(t, app.Registry.Entries())
}

func TestRunTask_TaskErrorWinsOverStopError(t *testing.T) {
	app, err := New(WithConfigFile(writeConfig(t, minimalConfig)))
	require.NoError(t, err)

	app.OnStop(func(ctx context.Context) error { return fmt.Errorf("stop failed") })

	taskErr := fmt.Errorf("task failed")
	err = app.RunTask(context.Background(), func(ctx context.Context) error { return taskErr })
	assert.ErrorIs(t, err, taskErr)
}
