// Package theme holds the theme selection state consumed by the rendering layer.
package theme

import (
	"context"
	"errors"
	"log/slog"
	"strings"
	"sync"

	"github.com/inkwellapp/inkwell/internal/domain"
	domainerrors "github.com/inkwellapp/inkwell/internal/errors"
	"github.com/inkwellapp/inkwell/internal/events"
	"github.com/inkwellapp/inkwell/internal/store"
	"github.com/inkwellapp/inkwell/internal/validation"
)

// Selector is the theme state machine: light, dark, romantic, or adaptive(overrides).
// Named choices are persisted under store.KeySelectedTheme; adaptive overrides are not.
type Selector struct {
	kv        store.KV
	events    events.Emitter
	logger    *slog.Logger
	validator *validation.Validator

	mu        sync.RWMutex
	name      domain.ThemeName
	overrides domain.ColorOverrides
}

// New creates a selector in the light theme.
func New(kv store.KV, emitter events.Emitter, logger *slog.Logger) *Selector {
	if emitter == nil {
		emitter = events.NewNoopEmitter()
	}
	return &Selector{
		kv:        kv,
		events:    emitter,
		logger:    logger,
		validator: validation.New(),
		name:      domain.ThemeLight,
	}
}

// Init restores the persisted choice. An unknown stored value keeps light.
func (s *Selector) Init(ctx context.Context) error {
	raw, err := s.kv.Get(ctx, store.KeySelectedTheme)
	if errors.Is(err, store.ErrNotFound) {
		return nil
	}
	if err != nil {
		s.logger.Warn("failed to load theme", "error", err)
		return domainerrors.Persistence(store.KeySelectedTheme, err)
	}

	// Accept both a bare name and a JSON string.
	name := domain.ThemeName(strings.Trim(strings.TrimSpace(string(raw)), `"`))
	if !name.Valid() {
		s.logger.Warn("ignoring unknown stored theme", "theme", string(name))
		return nil
	}

	s.mu.Lock()
	s.name = name
	s.mu.Unlock()

	s.logger.Debug("theme restored", "theme", string(name))
	return nil
}

// SetTheme switches to a named theme and persists it. Switching to a non-adaptive theme
// drops any adaptive overrides. A failed write is returned as a warning; the switch stands.
func (s *Selector) SetTheme(ctx context.Context, name domain.ThemeName) error {
	if !name.Valid() {
		return domainerrors.ValidationWithDetails("validation failed",
			map[string]string{"theme": "must be one of: light dark romantic adaptive"})
	}

	s.mu.Lock()
	s.name = name
	if name != domain.ThemeAdaptive {
		s.overrides = domain.ColorOverrides{}
	}
	s.mu.Unlock()

	s.events.Emit(events.New(events.ThemeChanged, "", events.ThemeChangedData{Name: name, Persisted: true}))

	if err := s.kv.Set(ctx, store.KeySelectedTheme, []byte(name)); err != nil {
		s.logger.Warn("theme choice not persisted", "theme", string(name), "error", err)
		return domainerrors.Persistence(store.KeySelectedTheme, err)
	}
	return nil
}

// SetAdaptiveTheme switches to adaptive with the given overrides. Not persisted.
func (s *Selector) SetAdaptiveTheme(colors domain.ColorOverrides) error {
	if err := s.validator.Validate(colors); err != nil {
		return err
	}

	s.mu.Lock()
	s.name = domain.ThemeAdaptive
	s.overrides = colors
	s.mu.Unlock()

	s.events.Emit(events.New(events.ThemeChanged, "", events.ThemeChangedData{Name: domain.ThemeAdaptive}))
	return nil
}

// Name returns the current theme.
func (s *Selector) Name() domain.ThemeName {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.name
}

// Overrides returns the adaptive overrides. Empty unless the theme is adaptive.
func (s *Selector) Overrides() domain.ColorOverrides {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.overrides
}

// IsDark is true only in the dark theme.
func (s *Selector) IsDark() bool {
	return s.Name() == domain.ThemeDark
}

// Palette resolves the colours to render with. Adaptive is the light palette with the overrides applied.
func (s *Selector) Palette() domain.Palette {
	s.mu.RLock()
	defer s.mu.RUnlock()

	if s.name == domain.ThemeAdaptive {
		return domain.LightPalette.With(s.overrides)
	}
	return domain.PaletteFor(s.name)
}
