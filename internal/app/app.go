package app

import (
	"context"
	"fmt"
	"io"
	"log/slog"

	"github.com/byavkin/pulsegen/internal/ctxlog"
	"github.com/byavkin/pulsegen/internal/generation"
	"github.com/byavkin/pulsegen/internal/hcl"
	"github.com/byavkin/pulsegen/internal/registry"
	"github.com/byavkin/pulsegen/internal/store"
)

// App encapsulates the application's dependencies, configuration, and
// lifecycle.
type App struct {
	outW     io.Writer
	logger   *slog.Logger
	registry *registry.Registry
	store    *store.Store
	settings generation.Settings
}

// NewApp is the constructor for the main application. It returns a fully
// initialized App instance, including its own isolated logger, settings
// snapshot, registry and session store. Startup failures are installation or
// programmer errors and panic; entrypoints recover and present them.
func NewApp(outW io.Writer, cfg *Config, plugins ...registry.Plugin) *App {
	logger := newLogger(cfg.LogLevel, cfg.LogFormat, outW)
	ctx := ctxlog.WithLogger(context.Background(), logger)
	logger.Debug("Logger configured successfully.")

	settings, err := hcl.LoadSettings(ctx, cfg.SettingsPath)
	if err != nil {
		panic(fmt.Errorf("failed to load settings profile: %w", err))
	}
	logger.Debug("Settings profile loaded.", "activation_config", settings.ActivationName)

	provider := generation.Static(settings)
	reg := registry.New()
	if len(plugins) == 0 {
		plugins = corePlugins(provider)
	}
	for _, plugin := range plugins {
		plugin.Register(reg)
	}
	logger.Debug("All generator plugins registered.", "count", len(plugins))

	if err := reg.LoadDefinitions(ctx, cfg.GeneratorsPath, cfg.ExtraGeneratorsPath); err != nil {
		panic(fmt.Errorf("failed to load operation manifests: %w", err))
	}

	// A mismatch between Go code and manifests is a programmer error.
	if err := reg.Validate(ctx); err != nil {
		panic(err)
	}
	logger.Debug("Registry validation passed.")

	return &App{
		outW:     outW,
		logger:   logger,
		registry: reg,
		store:    store.New(),
		settings: settings,
	}
}

// Registry returns the application's registry. This is primarily for testing.
func (a *App) Registry() *registry.Registry { return a.registry }

// Store returns the application's session store. This is primarily for
// testing.
func (a *App) Store() *store.Store { return a.store }

// Settings returns the settings snapshot loaded at startup.
func (a *App) Settings() generation.Settings { return a.settings }
