// Package events carries engine change notifications from services to whoever is listening
// (the UI layer, a sync worker, tests).
package events

import (
	"time"

	"github.com/inkwellapp/inkwell/internal/domain"
)

// Type names an engine event.
type Type string

const (
	// BookCreated is emitted after a successful ingest.
	BookCreated Type = "book.created"
	// BookUpdated is emitted after a patch lands on an existing book.
	BookUpdated Type = "book.updated"
	// BookDeleted is emitted after a book and its owned data are removed.
	BookDeleted Type = "book.deleted"
	// LibrarySeeded is emitted once when a first launch seeds the demo collection.
	LibrarySeeded Type = "library.seeded"
	// LibraryLoaded is emitted after a snapshot is (re)loaded from storage.
	LibraryLoaded Type = "library.loaded"

	AnnotationCreated Type = "annotation.created"
	AnnotationUpdated Type = "annotation.updated"
	AnnotationDeleted Type = "annotation.deleted"
	BookmarkCreated   Type = "bookmark.created"
	BookmarkDeleted   Type = "bookmark.deleted"
	SettingsChanged   Type = "settings.changed"

	SessionStarted Type = "session.started"
	SessionEnded   Type = "session.ended"

	// PageTurned is emitted when the navigator commits a page change.
	PageTurned Type = "page.turned"

	// ThemeChanged is emitted on every theme transition, persisted or not.
	ThemeChanged Type = "theme.changed"

	// PersistenceDegraded is emitted when a snapshot write fails and memory is ahead of storage.
	PersistenceDegraded Type = "persistence.degraded"
)

// Event is a single notification.
type Event struct {
	Timestamp time.Time `json:"timestamp"`
	Data      any       `json:"data"`
	Type      Type      `json:"type"`
	BookID    string    `json:"bookId,omitempty"`
}

// BookEventData is the payload of book.* events.
type BookEventData struct {
	Book *domain.Book `json:"book"`
}

// PageTurnedData is the payload of page.turned.
type PageTurnedData struct {
	From     int     `json:"from"`
	To       int     `json:"to"`
	Progress float64 `json:"progress"`
}

// SessionEndedData is the payload of session.ended.
type SessionEndedData struct {
	Minutes   int `json:"minutes"`
	PagesRead int `json:"pagesRead"`
}

// ThemeChangedData is the payload of theme.changed.
type ThemeChangedData struct {
	Name      domain.ThemeName `json:"name"`
	Persisted bool             `json:"persisted"`
}

// PersistenceDegradedData is the payload of persistence.degraded.
type PersistenceDegradedData struct {
	Key   string `json:"key"`
	Error string `json:"error"`
}

// New builds an event stamped with the current time.
func New(t Type, bookID string, data any) Event {
	return Event{
		Type:      t,
		BookID:    bookID,
		Data:      data,
		Timestamp: time.Now(),
	}
}

// NewBookEvent builds a book.* event carrying a copy of the book.
func NewBookEvent(t Type, book *domain.Book) Event {
	return New(t, book.ID, BookEventData{Book: book.Clone()})
}
