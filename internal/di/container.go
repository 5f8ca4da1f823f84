// Package di provides dependency injection configuration for the Inkwell engine.
package di

import (
	"context"
	"fmt"

	"github.com/samber/do/v2"

	"github.com/inkwellapp/inkwell/internal/auth"
	"github.com/inkwellapp/inkwell/internal/config"
	"github.com/inkwellapp/inkwell/internal/content"
	"github.com/inkwellapp/inkwell/internal/di/providers"
	domainerrors "github.com/inkwellapp/inkwell/internal/errors"
	"github.com/inkwellapp/inkwell/internal/fonts"
	"github.com/inkwellapp/inkwell/internal/library"
	"github.com/inkwellapp/inkwell/internal/logger"
	"github.com/inkwellapp/inkwell/internal/reader"
	"github.com/inkwellapp/inkwell/internal/theme"
)

// NewContainer creates and configures the DI container with all providers.
func NewContainer() *do.RootScope {
	injector := do.New()

	// Core infrastructure
	do.Provide(injector, providers.ProvideConfig)
	do.Provide(injector, providers.ProvideLogger)

	// Storage layer
	do.Provide(injector, providers.ProvideEventBus)
	do.Provide(injector, providers.ProvideStore)

	// Content
	do.Provide(injector, providers.ProvideContentRegistry)

	// Engine services
	do.Provide(injector, providers.ProvideLibrary)
	do.Provide(injector, providers.ProvideReader)
	do.Provide(injector, providers.ProvideTheme)
	do.Provide(injector, providers.ProvideFontGate)
	do.Provide(injector, providers.ProvideNavigatorFactory)

	// Auth layer
	do.Provide(injector, providers.ProvideIdentityProvider)
	do.Provide(injector, providers.ProvideAuthGate)

	return injector
}

// Bootstrap initializes all services and restores persisted state.
// Persistence warnings are logged and startup continues with in-memory state.
func Bootstrap(ctx context.Context, injector do.Injector) error {
	// Invoke core services to trigger initialization
	_ = do.MustInvoke[*config.Config](injector)
	log := do.MustInvoke[*logger.Logger](injector)
	_ = do.MustInvoke[*providers.EventBusHandle](injector)
	_ = do.MustInvoke[*providers.StoreHandle](injector)
	_ = do.MustInvoke[*content.Registry](injector)
	_ = do.MustInvoke[*fonts.Gate](injector)
	_ = do.MustInvoke[providers.NavigatorFactory](injector)
	_ = do.MustInvoke[*auth.Gate](injector)

	lib := do.MustInvoke[*library.Library](injector)
	engine := do.MustInvoke[*reader.Engine](injector)
	selector := do.MustInvoke[*theme.Selector](injector)

	steps := []struct {
		name string
		init func(context.Context) error
	}{
		{"library", lib.Init},
		{"theme", selector.Init},
		{"reader", engine.Init},
	}
	for _, step := range steps {
		if err := step.init(ctx); err != nil {
			if !domainerrors.IsWarning(err) {
				return fmt.Errorf("init %s: %w", step.name, err)
			}
			log.Warn("Starting with degraded storage", "component", step.name, "error", err)
		}
	}

	return nil
}
