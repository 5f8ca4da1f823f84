package reader

import (
	"context"

	"github.com/inkwellapp/inkwell/internal/domain"
	"github.com/inkwellapp/inkwell/internal/events"
)

// StartSession opens a reading session for bookID. An already open session is
// replaced without being folded in (last start wins).
func (e *Engine) StartSession(bookID string) {
	now := e.cfg.Now()

	e.mu.Lock()
	if e.session != nil {
		e.logger.Debug("replacing open reading session",
			"previous_book_id", e.session.BookID,
			"book_id", bookID)
	}
	e.session = &domain.ReadingSession{BookID: bookID, StartTime: now}
	e.mu.Unlock()

	e.events.Emit(events.New(events.SessionStarted, bookID, nil))
}

// ActiveSession returns a copy of the open session, if any.
func (e *Engine) ActiveSession() (domain.ReadingSession, bool) {
	e.mu.RLock()
	defer e.mu.RUnlock()

	if e.session == nil {
		return domain.ReadingSession{}, false
	}
	return *e.session, true
}

// EndSession closes the open session and folds round(elapsed minutes) into the book's
// reading time, setting lastRead to now. Without an open session it does nothing.
// The session is cleared before the library is updated, so a persistence warning
// from the update does not leave it open.
func (e *Engine) EndSession(ctx context.Context, pagesRead int) error {
	now := e.cfg.Now()

	e.mu.Lock()
	session := e.session
	e.session = nil
	e.mu.Unlock()

	if session == nil {
		return nil
	}

	session.EndTime = &now
	session.PagesRead = max(pagesRead, 0)
	minutes := session.ElapsedMinutes(now)

	err := e.books.Update(ctx, session.BookID, domain.BookPatch{
		ReadingTimeDelta: minutes,
		LastRead:         &now,
	})

	e.logger.Info("reading session ended",
		"book_id", session.BookID,
		"minutes", minutes,
		"pages_read", session.PagesRead)
	e.events.Emit(events.New(events.SessionEnded, session.BookID, events.SessionEndedData{
		Minutes:   minutes,
		PagesRead: session.PagesRead,
	}))
	return err
}
