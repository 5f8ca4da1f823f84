// Package reader is the Reader Session Engine: annotations, bookmarks, reader settings,
// and the single active reading session.
package reader

import (
	"context"
	"errors"
	"log/slog"
	"sync"
	"time"

	"github.com/inkwellapp/inkwell/internal/domain"
	domainerrors "github.com/inkwellapp/inkwell/internal/errors"
	"github.com/inkwellapp/inkwell/internal/events"
	"github.com/inkwellapp/inkwell/internal/store"
	"github.com/inkwellapp/inkwell/internal/validation"
)

// BookUpdater is the slice of the library the engine writes reading time through.
type BookUpdater interface {
	Update(ctx context.Context, bookID string, patch domain.BookPatch) error
}

// Config tunes the engine.
type Config struct {
	// Persist stores annotations, bookmarks and settings under their own keys.
	// When false they live for the process lifetime only.
	Persist bool
	// Now is the clock. Defaults to time.Now.
	Now func() time.Time
}

// Engine owns annotation and bookmark collections and reader settings.
type Engine struct {
	kv        store.KV
	books     BookUpdater
	events    events.Emitter
	logger    *slog.Logger
	validator *validation.Validator
	cfg       Config

	mu          sync.RWMutex
	annotations []*domain.Annotation
	bookmarks   []*domain.Bookmark
	settings    domain.ReaderSettings
	session     *domain.ReadingSession
}

var _ domain.BookCascader = (*Engine)(nil)

// New creates an engine with default settings.
func New(kv store.KV, books BookUpdater, emitter events.Emitter, logger *slog.Logger, cfg Config) *Engine {
	if cfg.Now == nil {
		cfg.Now = time.Now
	}
	if emitter == nil {
		emitter = events.NewNoopEmitter()
	}
	return &Engine{
		kv:        kv,
		books:     books,
		events:    emitter,
		logger:    logger,
		validator: validation.New(),
		cfg:       cfg,
		settings:  domain.DefaultReaderSettings(),
	}
}

// Init restores persisted collections when persistence is enabled.
// Missing keys keep the defaults; unreadable keys are reported as a warning.
func (e *Engine) Init(ctx context.Context) error {
	if !e.cfg.Persist {
		return nil
	}

	e.mu.Lock()
	defer e.mu.Unlock()

	var errs []error

	var annotations []*domain.Annotation
	if err := e.load(ctx, store.KeyAnnotations, &annotations); err != nil {
		errs = append(errs, err)
	} else {
		e.annotations = annotations
	}

	var bookmarks []*domain.Bookmark
	if err := e.load(ctx, store.KeyBookmarks, &bookmarks); err != nil {
		errs = append(errs, err)
	} else {
		e.bookmarks = bookmarks
	}

	settings := domain.DefaultReaderSettings()
	if err := e.load(ctx, store.KeyReaderSettings, &settings); err != nil {
		errs = append(errs, err)
	} else {
		e.settings = settings.Clamped()
	}

	e.logger.Info("reader state loaded",
		"annotations", len(e.annotations),
		"bookmarks", len(e.bookmarks))
	return errors.Join(errs...)
}

func (e *Engine) load(ctx context.Context, key string, dest any) error {
	err := store.GetJSON(ctx, e.kv, key, dest)
	if err == nil || errors.Is(err, store.ErrNotFound) {
		return nil
	}
	e.logger.Warn("failed to load reader state", "key", key, "error", err)
	return domainerrors.Persistence(key, err)
}

// persistLocked writes one collection when persistence is enabled. Callers hold e.mu.
func (e *Engine) persistLocked(ctx context.Context, key string) error {
	if !e.cfg.Persist {
		return nil
	}

	var value any
	switch key {
	case store.KeyAnnotations:
		value = e.annotations
	case store.KeyBookmarks:
		value = e.bookmarks
	case store.KeyReaderSettings:
		value = e.settings
	}

	if err := store.SetJSON(ctx, e.kv, key, value); err != nil {
		e.logger.Warn("reader state not persisted, keeping in-memory state", "key", key, "error", err)
		e.events.Emit(events.New(events.PersistenceDegraded, "", events.PersistenceDegradedData{
			Key:   key,
			Error: err.Error(),
		}))
		return domainerrors.Persistence(key, err)
	}
	return nil
}

// RemoveBookData drops every annotation and bookmark of bookID. It is the library's removal cascade.
func (e *Engine) RemoveBookData(ctx context.Context, bookID string) error {
	e.mu.Lock()
	defer e.mu.Unlock()

	annotations := deleteWhere(e.annotations, func(a *domain.Annotation) bool { return a.BookID == bookID })
	bookmarks := deleteWhere(e.bookmarks, func(b *domain.Bookmark) bool { return b.BookID == bookID })

	var errs []error
	if len(annotations) != len(e.annotations) {
		e.logger.Debug("cascaded annotations", "book_id", bookID, "removed", len(e.annotations)-len(annotations))
		e.annotations = annotations
		errs = append(errs, e.persistLocked(ctx, store.KeyAnnotations))
	}
	if len(bookmarks) != len(e.bookmarks) {
		e.logger.Debug("cascaded bookmarks", "book_id", bookID, "removed", len(e.bookmarks)-len(bookmarks))
		e.bookmarks = bookmarks
		errs = append(errs, e.persistLocked(ctx, store.KeyBookmarks))
	}
	return errors.Join(errs...)
}

// deleteWhere returns a new slice without the matching elements, leaving the input untouched.
func deleteWhere[T any](items []*T, match func(*T) bool) []*T {
	out := make([]*T, 0, len(items))
	for _, item := range items {
		if !match(item) {
			out = append(out, item)
		}
	}
	return out
}
