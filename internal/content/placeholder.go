package content

import (
	"context"
	"fmt"
	"net/url"
	"strconv"
	"strings"

	"github.com/inkwellapp/inkwell/internal/normalize"
)

// PlaceholderScheme prefixes references served by PlaceholderProvider,
// e.g. "placeholder:The%20Enchanted%20Garden?author=Luna%20Rosewood&pages=298".
// Optional "subject" (repeatable) and "lang" parameters fill the matching metadata.
const PlaceholderScheme = "placeholder"

const defaultPlaceholderPages = 100

const placeholderBody = `Lorem ipsum dolor sit amet, consectetur adipiscing elit. Sed do eiusmod tempor incididunt ut labore et dolore magna aliqua. Ut enim ad minim veniam, quis nostrud exercitation ullamco laboris nisi ut aliquip ex ea commodo consequat.

Duis aute irure dolor in reprehenderit in voluptate velit esse cillum dolore eu fugiat nulla pariatur. Excepteur sint occaecat cupidatat non proident, sunt in culpa qui officia deserunt mollit anim id est laborum.

Sed ut perspiciatis unde omnis iste natus error sit voluptatem accusantium doloremque laudantium, totam rem aperiam, eaque ipsa quae ab illo inventore veritatis et quasi architecto beatae vitae dicta sunt explicabo.`

const placeholderSpecial = "This is a special highlighted section that would be perfect for annotation!"

// PlaceholderProvider generates filler pages. It backs the demo library and tests.
type PlaceholderProvider struct{}

// NewPlaceholderProvider creates a placeholder provider.
func NewPlaceholderProvider() *PlaceholderProvider {
	return &PlaceholderProvider{}
}

// PlaceholderRef builds a reference the placeholder provider understands.
func PlaceholderRef(title, author string, pages int) string {
	q := url.Values{}
	if author != "" {
		q.Set("author", author)
	}
	if pages > 0 {
		q.Set("pages", strconv.Itoa(pages))
	}
	ref := PlaceholderScheme + ":" + url.PathEscape(title)
	if enc := q.Encode(); enc != "" {
		ref += "?" + enc
	}
	return ref
}

// Describe parses the reference.
func (p *PlaceholderProvider) Describe(ctx context.Context, ref string) (*Metadata, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	rest, ok := strings.CutPrefix(ref, PlaceholderScheme+":")
	if !ok {
		return nil, fmt.Errorf("%w: %s", ErrUnsupported, ref)
	}

	rawTitle, rawQuery, _ := strings.Cut(rest, "?")
	title, err := url.PathUnescape(rawTitle)
	if err != nil {
		return nil, fmt.Errorf("parse placeholder title: %w", err)
	}
	q, err := url.ParseQuery(rawQuery)
	if err != nil {
		return nil, fmt.Errorf("parse placeholder query: %w", err)
	}

	pages := defaultPlaceholderPages
	if v := q.Get("pages"); v != "" {
		pages, err = strconv.Atoi(v)
		if err != nil {
			return nil, fmt.Errorf("parse placeholder pages: %w", err)
		}
		if pages < 1 {
			return nil, ErrNoPages
		}
	}

	meta := &Metadata{
		Title:      title,
		Author:     q.Get("author"),
		TotalPages: pages,
		Subjects:   q["subject"],
		Language:   normalize.LanguageCode(q.Get("lang")),
	}
	return meta.withFallbacks(), nil
}

// Page generates filler text. Every fifth page (counting from the first) carries a highlight-worthy line.
func (p *PlaceholderProvider) Page(ctx context.Context, ref string, number int) (*Page, error) {
	meta, err := p.Describe(ctx, ref)
	if err != nil {
		return nil, err
	}
	if err := checkPage(number, meta.TotalPages); err != nil {
		return nil, err
	}

	var b strings.Builder
	fmt.Fprintf(&b, "This is page %d of %q.\n\n", number, meta.Title)
	b.WriteString(placeholderBody)
	if (number-1)%5 == 0 {
		b.WriteString("\n\n")
		b.WriteString(placeholderSpecial)
	}

	return &Page{
		Number:  number,
		Content: b.String(),
		Locator: ref,
	}, nil
}
