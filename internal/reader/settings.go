package reader

import (
	"context"

	"github.com/inkwellapp/inkwell/internal/domain"
	"github.com/inkwellapp/inkwell/internal/events"
	"github.com/inkwellapp/inkwell/internal/store"
)

// Settings returns the current reader settings.
func (e *Engine) Settings() domain.ReaderSettings {
	e.mu.RLock()
	defer e.mu.RUnlock()
	return e.settings
}

// UpdateSettings shallow-merges patch into the settings. Numeric fields are clamped to
// their ranges whatever the caller sends. Returns the merged settings.
func (e *Engine) UpdateSettings(ctx context.Context, patch domain.SettingsPatch) (domain.ReaderSettings, error) {
	e.mu.Lock()
	defer e.mu.Unlock()

	e.settings = e.settings.Merge(patch)
	persistErr := e.persistLocked(ctx, store.KeyReaderSettings)

	e.events.Emit(events.New(events.SettingsChanged, "", e.settings))
	return e.settings, persistErr
}
