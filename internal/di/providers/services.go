package providers

import (
	"github.com/samber/do/v2"

	"github.com/inkwellapp/inkwell/internal/auth"
	"github.com/inkwellapp/inkwell/internal/config"
	"github.com/inkwellapp/inkwell/internal/content"
	"github.com/inkwellapp/inkwell/internal/fonts"
	"github.com/inkwellapp/inkwell/internal/library"
	"github.com/inkwellapp/inkwell/internal/logger"
	"github.com/inkwellapp/inkwell/internal/pagination"
	"github.com/inkwellapp/inkwell/internal/reader"
	"github.com/inkwellapp/inkwell/internal/theme"
)

// ProvideContentRegistry provides the content provider registry (EPUB, PDF, placeholder).
func ProvideContentRegistry(i do.Injector) (*content.Registry, error) {
	log := do.MustInvoke[*logger.Logger](i)
	return content.NewDefaultRegistry(log.Component("content")), nil
}

// ProvideLibrary provides the library store.
func ProvideLibrary(i do.Injector) (*library.Library, error) {
	cfg := do.MustInvoke[*config.Config](i)
	log := do.MustInvoke[*logger.Logger](i)
	storeHandle := do.MustInvoke[*StoreHandle](i)
	busHandle := do.MustInvoke[*EventBusHandle](i)
	registry := do.MustInvoke[*content.Registry](i)

	return library.New(storeHandle, registry, busHandle.Bus, log.Component("library"), library.Config{
		SeedDemo:      cfg.Library.SeedDemo,
		StrictUpdates: cfg.Library.StrictUpdates,
	}), nil
}

// ProvideReader provides the reader session engine and registers it for book-removal cascades.
func ProvideReader(i do.Injector) (*reader.Engine, error) {
	cfg := do.MustInvoke[*config.Config](i)
	log := do.MustInvoke[*logger.Logger](i)
	storeHandle := do.MustInvoke[*StoreHandle](i)
	busHandle := do.MustInvoke[*EventBusHandle](i)
	lib := do.MustInvoke[*library.Library](i)

	engine := reader.New(storeHandle, lib, busHandle.Bus, log.Component("reader"), reader.Config{
		Persist: cfg.Reader.PersistAnnotations,
	})
	lib.RegisterCascader(engine)

	return engine, nil
}

// ProvideTheme provides the theme selector.
func ProvideTheme(i do.Injector) (*theme.Selector, error) {
	log := do.MustInvoke[*logger.Logger](i)
	storeHandle := do.MustInvoke[*StoreHandle](i)
	busHandle := do.MustInvoke[*EventBusHandle](i)

	return theme.New(storeHandle, busHandle.Bus, log.Component("theme")), nil
}

// ProvideFontGate provides the font-ready gate. The host marks it once its fonts load.
func ProvideFontGate(i do.Injector) (*fonts.Gate, error) {
	return fonts.NewGate(), nil
}

// NavigatorFactory builds a navigator per reading surface.
type NavigatorFactory func() *pagination.Navigator

// ProvideNavigatorFactory provides a factory for pagination navigators wired to the library and theme.
func ProvideNavigatorFactory(i do.Injector) (NavigatorFactory, error) {
	cfg := do.MustInvoke[*config.Config](i)
	log := do.MustInvoke[*logger.Logger](i)
	busHandle := do.MustInvoke[*EventBusHandle](i)
	lib := do.MustInvoke[*library.Library](i)
	selector := do.MustInvoke[*theme.Selector](i)

	pagerLog := log.Component("pager")
	return func() *pagination.Navigator {
		return pagination.New(lib, selector, busHandle.Bus, pagerLog, pagination.Config{
			ViewportWidth: float64(cfg.Reader.ViewportWidth),
		})
	}, nil
}

// ProvideIdentityProvider provides the process-wide identity holder.
func ProvideIdentityProvider(i do.Injector) (*auth.Static, error) {
	log := do.MustInvoke[*logger.Logger](i)
	return auth.NewStatic(log.Component("auth")), nil
}

// ProvideAuthGate provides the identity gate.
func ProvideAuthGate(i do.Injector) (*auth.Gate, error) {
	provider := do.MustInvoke[*auth.Static](i)
	return auth.NewGate(provider), nil
}
