package reader

import (
	"cmp"
	"context"
	"slices"
	"strings"

	"github.com/inkwellapp/inkwell/internal/domain"
	"github.com/inkwellapp/inkwell/internal/events"
	"github.com/inkwellapp/inkwell/internal/id"
	"github.com/inkwellapp/inkwell/internal/store"
)

// BookmarkInput is the data a caller supplies to save a bookmark.
type BookmarkInput struct {
	BookID string `json:"bookId" validate:"required"`
	Page   int    `json:"page" validate:"min=1"`
	Title  string `json:"title" validate:"notblank,max=200"`
	Note   string `json:"note" validate:"max=2000"`
}

// AddBookmark saves a bookmark. A title that is empty after trimming is a validation error
// and nothing is appended.
func (e *Engine) AddBookmark(ctx context.Context, in BookmarkInput) (*domain.Bookmark, error) {
	if err := e.validator.Validate(in); err != nil {
		return nil, err
	}

	bmID, err := id.Generate("bm")
	if err != nil {
		return nil, err
	}

	b := &domain.Bookmark{
		ID:        bmID,
		BookID:    in.BookID,
		Page:      in.Page,
		Title:     strings.TrimSpace(in.Title),
		Note:      strings.TrimSpace(in.Note),
		CreatedAt: e.cfg.Now(),
	}

	e.mu.Lock()
	defer e.mu.Unlock()

	e.bookmarks = append(e.bookmarks, b)
	persistErr := e.persistLocked(ctx, store.KeyBookmarks)

	e.events.Emit(events.New(events.BookmarkCreated, b.BookID, *b))
	c := *b
	return &c, persistErr
}

// RemoveBookmark deletes a bookmark. Idempotent.
func (e *Engine) RemoveBookmark(ctx context.Context, bookmarkID string) error {
	e.mu.Lock()
	defer e.mu.Unlock()

	i := slices.IndexFunc(e.bookmarks, func(b *domain.Bookmark) bool { return b.ID == bookmarkID })
	if i < 0 {
		return nil
	}
	removed := e.bookmarks[i]
	e.bookmarks = slices.Delete(e.bookmarks, i, i+1)

	persistErr := e.persistLocked(ctx, store.KeyBookmarks)
	e.events.Emit(events.New(events.BookmarkDeleted, removed.BookID, removed.ID))
	return persistErr
}

// BookmarksForBook returns a book's bookmarks in insertion order.
func (e *Engine) BookmarksForBook(bookID string) []domain.Bookmark {
	e.mu.RLock()
	defer e.mu.RUnlock()

	var out []domain.Bookmark
	for _, b := range e.bookmarks {
		if b.BookID == bookID {
			out = append(out, *b)
		}
	}
	return out
}

// AllBookmarks returns every bookmark, newest first. Bookmarks created at the same
// instant are ordered by most recent insertion.
func (e *Engine) AllBookmarks() []domain.Bookmark {
	e.mu.RLock()
	out := make([]domain.Bookmark, 0, len(e.bookmarks))
	for _, b := range slices.Backward(e.bookmarks) {
		out = append(out, *b)
	}
	e.mu.RUnlock()

	slices.SortStableFunc(out, func(a, b domain.Bookmark) int {
		return cmp.Compare(b.CreatedAt.UnixNano(), a.CreatedAt.UnixNano())
	})
	return out
}
