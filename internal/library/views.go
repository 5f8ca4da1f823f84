package library

import (
	"cmp"
	"slices"
	"strings"
	"unicode"

	"golang.org/x/text/cases"
	"golang.org/x/text/runes"
	"golang.org/x/text/transform"
	"golang.org/x/text/unicode/norm"

	"github.com/inkwellapp/inkwell/internal/domain"
	domainerrors "github.com/inkwellapp/inkwell/internal/errors"
)

// RecentLimit caps the recently-read view.
const RecentLimit = 5

// Category filters the library screen.
type Category string

// Categories.
const (
	CategoryAll       Category = "all"
	CategoryReading   Category = "reading"
	CategoryRecent    Category = "recent"
	CategoryFavorites Category = "favorites"
)

// CurrentlyReading returns books with 0 < progress < 100, in collection order.
// Views are recomputed on every call.
func (l *Library) CurrentlyReading() []*domain.Book {
	return l.filter(func(b *domain.Book) bool { return b.IsCurrentlyReading() })
}

// Favorites returns favorite books in collection order.
func (l *Library) Favorites() []*domain.Book {
	return l.filter(func(b *domain.Book) bool { return b.Favorite })
}

// RecentlyRead returns books that have been read, most recent first, capped at RecentLimit.
func (l *Library) RecentlyRead() []*domain.Book {
	read := l.filter(func(b *domain.Book) bool { return b.LastRead != nil })
	slices.SortStableFunc(read, func(a, b *domain.Book) int {
		return b.LastRead.Compare(*a.LastRead)
	})
	if len(read) > RecentLimit {
		read = read[:RecentLimit]
	}
	return read
}

func (l *Library) filter(keep func(*domain.Book) bool) []*domain.Book {
	l.mu.RLock()
	defer l.mu.RUnlock()

	var out []*domain.Book
	for _, b := range l.books {
		if keep(b) {
			out = append(out, b.Clone())
		}
	}
	return out
}

// Tagged returns books carrying tag in collection order. Tags compare by slug, so "sci-fi"
// and "Sci Fi" are the same tag.
func (l *Library) Tagged(tag string) []*domain.Book {
	return l.filter(func(b *domain.Book) bool { return b.HasTag(tag) })
}

// Search returns books in category whose title or author contains query.
// Matching ignores case and diacritics; an empty query matches everything in the category.
func (l *Library) Search(query string, category Category) ([]*domain.Book, error) {
	var books []*domain.Book
	switch cmp.Or(category, CategoryAll) {
	case CategoryAll:
		books = l.Books()
	case CategoryReading:
		books = l.CurrentlyReading()
	case CategoryRecent:
		books = l.RecentlyRead()
	case CategoryFavorites:
		books = l.Favorites()
	default:
		return nil, domainerrors.ValidationWithDetails("validation failed",
			map[string]string{"category": "must be one of: all reading recent favorites"})
	}

	needle := foldForSearch(strings.TrimSpace(query))
	if needle == "" {
		return books, nil
	}

	return slices.DeleteFunc(books, func(b *domain.Book) bool {
		return !strings.Contains(foldForSearch(b.Title), needle) &&
			!strings.Contains(foldForSearch(b.Author), needle)
	}), nil
}

// Stats summarizes the whole collection.
func (l *Library) Stats() domain.LibraryStats {
	l.mu.RLock()
	defer l.mu.RUnlock()
	return domain.ComputeStats(l.books)
}

// foldForSearch strips combining marks and case-folds s. Transformers are stateful,
// so a fresh chain is built per call.
func foldForSearch(s string) string {
	if s == "" {
		return ""
	}
	t := transform.Chain(norm.NFD, runes.Remove(runes.In(unicode.Mn)), norm.NFC)
	stripped, _, err := transform.String(t, s)
	if err != nil {
		stripped = s
	}
	return cases.Fold().String(stripped)
}
