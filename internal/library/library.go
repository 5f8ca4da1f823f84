// Package library owns the book collection: ingest, patching, removal with cascade,
// the derived views, and whole-collection snapshot persistence.
package library

import (
	"context"
	"errors"
	"log/slog"
	"slices"
	"sync"
	"time"

	"github.com/inkwellapp/inkwell/internal/content"
	"github.com/inkwellapp/inkwell/internal/domain"
	domainerrors "github.com/inkwellapp/inkwell/internal/errors"
	"github.com/inkwellapp/inkwell/internal/events"
	"github.com/inkwellapp/inkwell/internal/genre"
	"github.com/inkwellapp/inkwell/internal/id"
	"github.com/inkwellapp/inkwell/internal/store"
)

// Config tunes library behavior.
type Config struct {
	// SeedDemo seeds the demo collection when no snapshot exists yet.
	SeedDemo bool
	// StrictUpdates turns updates and removals of unknown ids into NotFound errors.
	StrictUpdates bool
	// Now is the clock. Defaults to time.Now.
	Now func() time.Time
}

// Library is the Library Store. All mutations follow mutate -> snapshot -> write under one mutex,
// so the persisted value is always a complete collection.
type Library struct {
	kv        store.KV
	provider  content.Provider
	events    events.Emitter
	logger    *slog.Logger
	cfg       Config
	cascaders []domain.BookCascader

	mu    sync.RWMutex
	books []*domain.Book
}

// New creates a library. Call Init before use.
func New(kv store.KV, provider content.Provider, emitter events.Emitter, logger *slog.Logger, cfg Config) *Library {
	if cfg.Now == nil {
		cfg.Now = time.Now
	}
	if emitter == nil {
		emitter = events.NewNoopEmitter()
	}
	return &Library{
		kv:       kv,
		provider: provider,
		events:   emitter,
		logger:   logger,
		cfg:      cfg,
	}
}

// RegisterCascader adds an owner of book-scoped data that must be cleared when a book is removed.
// This is set after construction to avoid a dependency cycle with the reader engine.
func (l *Library) RegisterCascader(c domain.BookCascader) {
	l.mu.Lock()
	defer l.mu.Unlock()
	l.cascaders = append(l.cascaders, c)
}

// Init loads the persisted snapshot. On first launch (no snapshot) it seeds the demo
// collection and persists it immediately. A persistence failure while seeding is returned
// as a warning; the seeded books stay in memory.
func (l *Library) Init(ctx context.Context) error {
	l.mu.Lock()
	defer l.mu.Unlock()

	books, err := l.loadLocked(ctx)
	switch {
	case errors.Is(err, store.ErrNotFound):
		if !l.cfg.SeedDemo {
			l.books = nil
			l.logger.Info("library initialized empty")
			return nil
		}
		return l.seedLocked(ctx)

	case err != nil:
		// Keep an empty collection and do not overwrite what is on disk.
		l.books = nil
		l.logger.Warn("failed to load library snapshot", "error", err)
		return domainerrors.Persistence(store.KeyLibrary, err)
	}

	l.books = books
	l.logger.Info("library loaded", "books", len(books))
	l.events.Emit(events.New(events.LibraryLoaded, "", len(books)))
	return nil
}

// Refresh reloads the collection from storage. A missing snapshot leaves memory untouched.
func (l *Library) Refresh(ctx context.Context) error {
	l.mu.Lock()
	defer l.mu.Unlock()

	books, err := l.loadLocked(ctx)
	if errors.Is(err, store.ErrNotFound) {
		return nil
	}
	if err != nil {
		l.logger.Warn("failed to refresh library", "error", err)
		return domainerrors.Persistence(store.KeyLibrary, err)
	}

	l.books = books
	l.events.Emit(events.New(events.LibraryLoaded, "", len(books)))
	return nil
}

func (l *Library) loadLocked(ctx context.Context) ([]*domain.Book, error) {
	var books []*domain.Book
	if err := store.GetJSON(ctx, l.kv, store.KeyLibrary, &books); err != nil {
		return nil, err
	}

	// Older snapshots may predate the pagination invariants.
	books = slices.DeleteFunc(books, func(b *domain.Book) bool { return b == nil })
	for _, b := range books {
		b.Normalize()
		if b.Tags == nil {
			b.Tags = []string{}
		}
	}
	return books, nil
}

func (l *Library) seedLocked(ctx context.Context) error {
	now := l.cfg.Now()
	books := domain.DemoBooks(now)
	for _, b := range books {
		if b.FilePath == "" {
			b.FilePath = content.PlaceholderRef(b.Title, b.Author, b.TotalPages)
		}
	}
	l.books = books

	l.logger.Info("seeded demo library", "books", len(books))
	l.events.Emit(events.New(events.LibrarySeeded, "", len(books)))
	return l.persistLocked(ctx)
}

// persistLocked writes the full collection. Callers hold l.mu.
func (l *Library) persistLocked(ctx context.Context) error {
	snapshot := make([]*domain.Book, len(l.books))
	for i, b := range l.books {
		snapshot[i] = b.Clone()
	}

	if err := store.SetJSON(ctx, l.kv, store.KeyLibrary, snapshot); err != nil {
		l.logger.Warn("library snapshot not persisted, keeping in-memory state",
			"key", store.KeyLibrary,
			"books", len(snapshot),
			"error", err)
		l.events.Emit(events.New(events.PersistenceDegraded, "", events.PersistenceDegradedData{
			Key:   store.KeyLibrary,
			Error: err.Error(),
		}))
		return domainerrors.Persistence(store.KeyLibrary, err)
	}
	return nil
}

func (l *Library) indexLocked(bookID string) int {
	return slices.IndexFunc(l.books, func(b *domain.Book) bool { return b.ID == bookID })
}

// Ingest asks the content provider for metadata and adds a new book.
// Provider failures return an INGEST error and leave the collection unchanged.
// If only the snapshot write fails, the book is returned together with a PERSISTENCE warning.
func (l *Library) Ingest(ctx context.Context, ref string) (*domain.Book, error) {
	meta, err := l.provider.Describe(ctx, ref)
	if err != nil {
		l.logger.Warn("ingest failed", "ref", ref, "error", err)
		return nil, domainerrors.Ingest(ref, err)
	}
	if meta.TotalPages < 1 {
		return nil, domainerrors.Ingest(ref, content.ErrNoPages)
	}

	now := l.cfg.Now()
	bookID, err := id.NewMonotonic("book", now)
	if err != nil {
		return nil, domainerrors.Wrap(err, domainerrors.CodeInternal, "generate book id")
	}

	book := &domain.Book{
		ID:          bookID,
		Title:       meta.Title,
		Author:      meta.Author,
		Cover:       meta.Cover,
		FilePath:    ref,
		CurrentPage: 1,
		TotalPages:  meta.TotalPages,
		Tags:        genre.Tags(meta.Subjects),
		Language:    meta.Language,
		AddedDate:   now,
	}
	if book.Tags == nil {
		book.Tags = []string{}
	}
	book.Normalize()

	l.mu.Lock()
	defer l.mu.Unlock()

	l.books = append(l.books, book)
	persistErr := l.persistLocked(ctx)

	l.logger.Info("book ingested",
		"book_id", book.ID,
		"title", book.Title,
		"total_pages", book.TotalPages)
	l.events.Emit(events.NewBookEvent(events.BookCreated, book))

	return book.Clone(), persistErr
}

// Update merges patch into the book. Unknown ids are a silent no-op unless strict mode is on.
// Any patch touching currentPage or totalPages recomputes progress.
func (l *Library) Update(ctx context.Context, bookID string, patch domain.BookPatch) error {
	l.mu.Lock()
	defer l.mu.Unlock()

	i := l.indexLocked(bookID)
	if i < 0 {
		return l.unknownBook("update", bookID)
	}

	book := l.books[i]
	book.Apply(patch)
	persistErr := l.persistLocked(ctx)

	l.events.Emit(events.NewBookEvent(events.BookUpdated, book))
	return persistErr
}

// Remove deletes the book and cascades to its annotations and bookmarks. Idempotent.
func (l *Library) Remove(ctx context.Context, bookID string) error {
	l.mu.Lock()
	i := l.indexLocked(bookID)
	var persistErr error
	if i >= 0 {
		l.books = slices.Delete(l.books, i, i+1)
		persistErr = l.persistLocked(ctx)
	}
	cascaders := slices.Clone(l.cascaders)
	l.mu.Unlock()

	// Cascade outside the collection lock; owners have their own locks.
	cascadeErr := domain.CascadeBookRemoval(ctx, bookID, cascaders...)
	if cascadeErr != nil {
		l.logger.Warn("cascade after book removal incomplete", "book_id", bookID, "error", cascadeErr)
	}

	if i < 0 {
		return errors.Join(l.unknownBook("remove", bookID), cascadeErr)
	}

	l.logger.Info("book removed", "book_id", bookID)
	l.events.Emit(events.New(events.BookDeleted, bookID, nil))
	return errors.Join(persistErr, cascadeErr)
}

func (l *Library) unknownBook(op, bookID string) error {
	if l.cfg.StrictUpdates {
		return domainerrors.NotFoundf("book %s not found", bookID)
	}
	l.logger.Debug("ignoring "+op+" of unknown book", "book_id", bookID)
	return nil
}

// Get returns a copy of the book.
func (l *Library) Get(bookID string) (*domain.Book, bool) {
	l.mu.RLock()
	defer l.mu.RUnlock()

	i := l.indexLocked(bookID)
	if i < 0 {
		return nil, false
	}
	return l.books[i].Clone(), true
}

// Books returns copies of every book in insertion order.
func (l *Library) Books() []*domain.Book {
	l.mu.RLock()
	defer l.mu.RUnlock()
	return cloneAll(l.books)
}

// Page reads one page of a book through the content provider.
func (l *Library) Page(ctx context.Context, bookID string, number int) (*content.Page, error) {
	book, ok := l.Get(bookID)
	if !ok {
		return nil, domainerrors.NotFoundf("book %s not found", bookID)
	}

	page, err := l.provider.Page(ctx, book.FilePath, number)
	if err != nil {
		if errors.Is(err, content.ErrPageOutOfRange) {
			return nil, domainerrors.Validationf("page %d is outside 1-%d", number, book.TotalPages)
		}
		return nil, domainerrors.Wrapf(err, domainerrors.CodeIngest, "read page %d of %s", number, bookID)
	}
	return page, nil
}

func cloneAll(books []*domain.Book) []*domain.Book {
	out := make([]*domain.Book, len(books))
	for i, b := range books {
		out[i] = b.Clone()
	}
	return out
}
