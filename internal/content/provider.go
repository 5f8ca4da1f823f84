// Package content turns a content reference (a file path or a placeholder URI) into
// book metadata and page text. The engine only needs a page count and a title to
// ingest; everything else is best-effort.
package content

import (
	"context"
	"errors"
)

// Fallbacks used when a file does not declare its own metadata.
const (
	UnknownTitle  = "Unknown Title"
	UnknownAuthor = "Unknown Author"
	DefaultCover  = "https://placeholder.com/book.png"
)

var (
	// ErrUnsupported is returned when no provider handles the reference.
	ErrUnsupported = errors.New("content: unsupported format")
	// ErrNoPages is returned when a file has no readable pages.
	ErrNoPages = errors.New("content: no pages")
	// ErrPageOutOfRange is returned by Page for numbers outside [1, TotalPages].
	ErrPageOutOfRange = errors.New("content: page out of range")
	// ErrEntryTooLarge is returned when an archive entry inflates past the read limit.
	ErrEntryTooLarge = errors.New("content: archive entry too large")
)

// Metadata is what ingest needs to create a Book.
type Metadata struct {
	Title      string
	Author     string
	Cover      string
	TotalPages int
	// Subjects are the raw subject strings the file declares, if any.
	Subjects []string
	// Language is an ISO 639-1 code, empty when unknown.
	Language string
}

// Page is one page of readable content.
type Page struct {
	Number int
	// Content is Markdown text. Empty for formats rendered natively (PDF).
	Content string
	// Locator addresses the page inside the source, e.g. "book.pdf#page=3".
	Locator string
}

// Provider is the content capability.
type Provider interface {
	Describe(ctx context.Context, ref string) (*Metadata, error)
	Page(ctx context.Context, ref string, number int) (*Page, error)
}

// withFallbacks fills blank metadata fields.
func (m *Metadata) withFallbacks() *Metadata {
	if m.Title == "" {
		m.Title = UnknownTitle
	}
	if m.Author == "" {
		m.Author = UnknownAuthor
	}
	if m.Cover == "" {
		m.Cover = DefaultCover
	}
	return m
}

func checkPage(number, total int) error {
	if number < 1 || number > total {
		return ErrPageOutOfRange
	}
	return nil
}
