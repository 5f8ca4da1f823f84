package pagination

import (
	"context"
	"log/slog"
	"sync"
	"time"

	"github.com/inkwellapp/inkwell/internal/domain"
	domainerrors "github.com/inkwellapp/inkwell/internal/errors"
	"github.com/inkwellapp/inkwell/internal/events"
)

// DefaultViewportWidth is used when no width is configured.
const DefaultViewportWidth = 390

// BookUpdater is the library contract the navigator writes page changes through.
type BookUpdater interface {
	Update(ctx context.Context, bookID string, patch domain.BookPatch) error
}

// ThemeSink receives the adaptive palette on open and after every committed turn.
type ThemeSink interface {
	SetAdaptiveTheme(colors domain.ColorOverrides) error
}

// Config tunes the navigator.
type Config struct {
	// ViewportWidth is the page width in points. The swipe threshold is a third of it.
	ViewportWidth float64
	// Now is the clock used for lastRead. Defaults to time.Now.
	Now func() time.Time
}

// ErrNoBook is returned by gestures and taps while no book is open.
var ErrNoBook = domainerrors.Validation("no book is open")

// Navigator is the pagination state machine for one reader view.
// At most one committed turn is in flight: gestures that arrive while transitioning
// are ignored and reported as BUSY.
type Navigator struct {
	books  BookUpdater
	theme  ThemeSink
	events events.Emitter
	logger *slog.Logger
	cfg    Config

	mu    sync.Mutex
	state State
	book  string
	total int
	page  int
	off   float64
	to    int
}

// New creates an idle navigator.
func New(books BookUpdater, theme ThemeSink, emitter events.Emitter, logger *slog.Logger, cfg Config) *Navigator {
	if cfg.ViewportWidth <= 0 {
		cfg.ViewportWidth = DefaultViewportWidth
	}
	if cfg.Now == nil {
		cfg.Now = time.Now
	}
	if emitter == nil {
		emitter = events.NewNoopEmitter()
	}
	return &Navigator{
		books:  books,
		theme:  theme,
		events: emitter,
		logger: logger,
		cfg:    cfg,
	}
}

// Threshold is the drag distance at which a release commits a turn. Inclusive.
func (n *Navigator) Threshold() float64 {
	return n.cfg.ViewportWidth / 3
}

// Snapshot returns the current state.
func (n *Navigator) Snapshot() Snapshot {
	n.mu.Lock()
	defer n.mu.Unlock()

	s := Snapshot{
		State:      n.state,
		BookID:     n.book,
		TotalPages: n.total,
		Page:       n.page,
		Offset:     n.off,
	}
	if n.state == StateTransitioning {
		s.From, s.To = n.page, n.to
	}
	return s
}

// Open shows book at its current page and emits the adaptive palette.
func (n *Navigator) Open(book *domain.Book) error {
	n.mu.Lock()
	defer n.mu.Unlock()

	if n.state == StateTransitioning {
		return n.busy("open")
	}

	n.state = StateViewing
	n.book = book.ID
	n.total = max(book.TotalPages, 1)
	n.page = min(max(book.CurrentPage, 1), n.total)
	n.off = 0

	n.logger.Debug("book opened", "book_id", n.book, "page", n.page, "total_pages", n.total)
	n.emitPalette()
	return nil
}

// Close returns to Idle. A turn in flight is abandoned; its page change is already saved.
func (n *Navigator) Close() {
	n.mu.Lock()
	defer n.mu.Unlock()

	n.state = StateIdle
	n.book = ""
	n.total, n.page, n.to = 0, 0, 0
	n.off = 0
}

// BeginDrag starts a gesture: Viewing(p) -> Dragging(p, 0).
func (n *Navigator) BeginDrag() error {
	n.mu.Lock()
	defer n.mu.Unlock()

	switch n.state {
	case StateIdle:
		return ErrNoBook
	case StateTransitioning:
		return n.busy("begin drag")
	case StateViewing, StateDragging:
	}

	n.state = StateDragging
	n.off = 0
	return nil
}

// Drag moves the gesture offset. The page does not change.
func (n *Navigator) Drag(offset float64) error {
	n.mu.Lock()
	defer n.mu.Unlock()

	switch n.state {
	case StateIdle:
		return ErrNoBook
	case StateTransitioning:
		return n.busy("drag")
	case StateViewing:
		return domainerrors.Validation("no gesture in progress")
	case StateDragging:
	}

	n.off = offset
	return nil
}

// Release ends the gesture. An offset at or beyond the threshold commits a turn toward
// the swipe unless the book boundary is reached, in which case the page stays put and
// no error is raised. Anything shorter snaps back to Viewing(p).
func (n *Navigator) Release(ctx context.Context) (Turn, error) {
	n.mu.Lock()
	defer n.mu.Unlock()

	switch n.state {
	case StateIdle:
		return Turn{}, ErrNoBook
	case StateTransitioning:
		return Turn{}, n.busy("release")
	case StateViewing:
		return Turn{From: n.page, To: n.page}, nil
	case StateDragging:
	}

	p, off, threshold := n.page, n.off, n.Threshold()
	n.off = 0

	switch {
	case off <= -threshold && p < n.total:
		return n.commitLocked(ctx, p+1)
	case off >= threshold && p > 1:
		return n.commitLocked(ctx, p-1)
	}

	n.state = StateViewing
	n.logger.Debug("gesture snapped back", "book_id", n.book, "page", p, "offset", off)
	return Turn{From: p, To: p}, nil
}

// Settle finishes the turn animation: Transitioning(from, to) -> Viewing(to).
func (n *Navigator) Settle() {
	n.mu.Lock()
	defer n.mu.Unlock()

	if n.state != StateTransitioning {
		return
	}
	n.state = StateViewing
	n.page = n.to
	n.to = 0
}

// Next turns forward one page, as a tap on the right edge does.
func (n *Navigator) Next(ctx context.Context) (Turn, error) {
	return n.step(ctx, +1)
}

// Prev turns back one page.
func (n *Navigator) Prev(ctx context.Context) (Turn, error) {
	return n.step(ctx, -1)
}

func (n *Navigator) step(ctx context.Context, delta int) (Turn, error) {
	n.mu.Lock()
	defer n.mu.Unlock()

	if err := n.readyLocked("turn"); err != nil {
		return Turn{}, err
	}

	target := min(max(n.page+delta, 1), n.total)
	if target == n.page {
		return Turn{From: n.page, To: n.page}, nil
	}
	return n.commitLocked(ctx, target)
}

// GoTo jumps to page, clamped into the book, as a bookmark tap does.
func (n *Navigator) GoTo(ctx context.Context, page int) (Turn, error) {
	n.mu.Lock()
	defer n.mu.Unlock()

	if err := n.readyLocked("go to"); err != nil {
		return Turn{}, err
	}

	target := min(max(page, 1), n.total)
	if target == n.page {
		return Turn{From: n.page, To: n.page}, nil
	}
	return n.commitLocked(ctx, target)
}

func (n *Navigator) readyLocked(op string) error {
	switch n.state {
	case StateIdle:
		return ErrNoBook
	case StateTransitioning:
		return n.busy(op)
	case StateViewing, StateDragging:
	}
	return nil
}

// commitLocked enters Transitioning(p, target) and writes the change through the library.
// A persistence warning from the library is passed back; the turn still happened.
func (n *Navigator) commitLocked(ctx context.Context, target int) (Turn, error) {
	from := n.page
	n.state = StateTransitioning
	n.to = target
	n.off = 0

	now := n.cfg.Now()
	err := n.books.Update(ctx, n.book, domain.BookPatch{
		CurrentPage: &target,
		LastRead:    &now,
	})

	progress := domain.ComputeProgress(target, n.total)
	n.logger.Debug("page turned",
		"book_id", n.book,
		"from", from,
		"to", target,
		"progress", progress)
	n.events.Emit(events.New(events.PageTurned, n.book, events.PageTurnedData{
		From:     from,
		To:       target,
		Progress: progress,
	}))
	n.emitPalette()

	return Turn{From: from, To: target, Committed: true}, err
}

func (n *Navigator) emitPalette() {
	if n.theme == nil {
		return
	}
	if err := n.theme.SetAdaptiveTheme(domain.AdaptiveReaderColors); err != nil {
		n.logger.Warn("failed to apply adaptive palette", "error", err)
	}
}

func (n *Navigator) busy(op string) error {
	n.logger.Debug("gesture ignored during page transition", "op", op, "book_id", n.book)
	return domainerrors.Busy("page transition in progress")
}
