// Package domain contains the core entities and derivation rules for the Inkwell reading engine.
package domain

import (
	"math"
	"slices"
	"strings"
	"time"

	"github.com/inkwellapp/inkwell/internal/genre"
)

// Book represents one owned publication in the library.
type Book struct {
	ID          string     `json:"id"`
	Title       string     `json:"title"`
	Author      string     `json:"author"`
	Cover       string     `json:"cover"`
	FilePath    string     `json:"filePath"`
	CurrentPage int        `json:"currentPage"` // 1-indexed
	TotalPages  int        `json:"totalPages"`
	Progress    float64    `json:"progress"` // 0 - 100, never stored rounded
	Favorite    bool       `json:"favorite"`
	Tags        []string   `json:"tags"`
	Language    string     `json:"language,omitempty"` // ISO 639-1
	AddedDate   time.Time  `json:"addedDate"`
	LastRead    *time.Time `json:"lastRead,omitempty"`
	ReadingTime int        `json:"readingTime"` // minutes
}

// BookPatch is a partial update. Nil fields are left untouched.
type BookPatch struct {
	Title       *string
	Author      *string
	Cover       *string
	CurrentPage *int
	TotalPages  *int
	Favorite    *bool
	Tags        []string
	LastRead    *time.Time
	ReadingTime *int
	// ReadingTimeDelta is added to ReadingTime after ReadingTime is applied.
	// It lets a session fold its minutes in without a separate read.
	ReadingTimeDelta int
}

// TouchesPagination reports whether applying the patch requires progress to be recomputed.
func (p BookPatch) TouchesPagination() bool {
	return p.CurrentPage != nil || p.TotalPages != nil
}

// Apply merges the patch into b and restores the pagination invariants.
func (b *Book) Apply(p BookPatch) {
	if p.Title != nil {
		b.Title = *p.Title
	}
	if p.Author != nil {
		b.Author = *p.Author
	}
	if p.Cover != nil {
		b.Cover = *p.Cover
	}
	if p.Favorite != nil {
		b.Favorite = *p.Favorite
	}
	if p.Tags != nil {
		b.Tags = normalizeTags(p.Tags)
	}
	if p.LastRead != nil {
		t := *p.LastRead
		b.LastRead = &t
	}
	if p.ReadingTime != nil {
		b.ReadingTime = max(*p.ReadingTime, 0)
	}
	if p.ReadingTimeDelta != 0 {
		b.ReadingTime = max(b.ReadingTime+p.ReadingTimeDelta, 0)
	}
	if p.TotalPages != nil {
		b.TotalPages = *p.TotalPages
	}
	if p.CurrentPage != nil {
		b.CurrentPage = *p.CurrentPage
	}
	if p.TouchesPagination() {
		b.Normalize()
		b.Progress = ComputeProgress(b.CurrentPage, b.TotalPages)
	}
}

// Normalize clamps the page cursor into [1, TotalPages]. Progress is left as stored:
// a new book sits on page 1 at 0% until a pagination patch recomputes it.
func (b *Book) Normalize() {
	b.TotalPages = max(b.TotalPages, 1)
	b.CurrentPage = min(max(b.CurrentPage, 1), b.TotalPages)
	b.Progress = min(max(b.Progress, 0), 100)
	b.ReadingTime = max(b.ReadingTime, 0)
}

// ComputeProgress returns the percentage of pages read.
func ComputeProgress(currentPage, totalPages int) float64 {
	if totalPages <= 0 {
		return 0
	}
	return float64(currentPage) / float64(totalPages) * 100
}

// DisplayProgress is Progress rounded to whole percent for presentation.
func (b *Book) DisplayProgress() int {
	return int(math.Round(b.Progress))
}

// IsCurrentlyReading reports whether the book has been started but not finished.
func (b *Book) IsCurrentlyReading() bool {
	return b.Progress > 0 && b.Progress < 100
}

// IsFinished reports whether the reader has reached the last page.
func (b *Book) IsFinished() bool {
	return b.Progress >= 100
}

// HasTag reports whether the book carries tag, ignoring case and punctuation.
func (b *Book) HasTag(tag string) bool {
	return slices.ContainsFunc(b.Tags, func(t string) bool { return genre.SameTag(t, tag) })
}

// Clone returns a deep copy so callers never share slices or pointers with the store.
func (b *Book) Clone() *Book {
	c := *b
	c.Tags = slices.Clone(b.Tags)
	if b.LastRead != nil {
		t := *b.LastRead
		c.LastRead = &t
	}
	return &c
}

// normalizeTags treats tags as a set: blanks and duplicates (by genre.SameTag) are dropped,
// the first spelling wins and order is kept.
func normalizeTags(tags []string) []string {
	out := make([]string, 0, len(tags))
	for _, tag := range tags {
		tag = strings.TrimSpace(tag)
		if tag == "" || slices.ContainsFunc(out, func(t string) bool { return genre.SameTag(t, tag) }) {
			continue
		}
		out = append(out, tag)
	}
	return out
}

// Ptr returns a pointer to v. Handy for building patches.
func Ptr[T any](v T) *T {
	return &v
}
