package content

import (
	"archive/zip"
	"bytes"
	"context"
	"log/slog"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestEPUBProvider_Describe(t *testing.T) {
	ref := writeEPUB(t, epubFixture{
		title:    "Moonlit Whispers",
		creator:  "Isabella Nightingale",
		language: "en-GB",
		subjects: []string{"FICTION / Romance / Historical", " "},
		chapters: []string{"<h1>One</h1>", "<h1>Two</h1>", "<h1>Three</h1>"},
		withNav:  true,
	})

	meta, err := NewEPUBProvider().Describe(context.Background(), ref)
	require.NoError(t, err)

	assert.Equal(t, "Moonlit Whispers", meta.Title)
	assert.Equal(t, "Isabella Nightingale", meta.Author)
	assert.Equal(t, 3, meta.TotalPages)
	assert.Equal(t, ref+"#OEBPS/images/cover art.jpg", meta.Cover)
	assert.Equal(t, "en", meta.Language)
	assert.Equal(t, []string{"FICTION / Romance / Historical"}, meta.Subjects)
}

func TestEPUBProvider_DescribeFallbacks(t *testing.T) {
	ref := writeEPUB(t, epubFixture{chapters: []string{"<p>only</p>"}})

	meta, err := NewEPUBProvider().Describe(context.Background(), ref)
	require.NoError(t, err)

	assert.Equal(t, UnknownTitle, meta.Title)
	assert.Equal(t, UnknownAuthor, meta.Author)
	assert.Equal(t, 1, meta.TotalPages)
	assert.Empty(t, meta.Language)
	assert.Empty(t, meta.Subjects)
}

func TestEPUBProvider_NoPages(t *testing.T) {
	ref := writeEPUB(t, epubFixture{title: "Empty"})

	_, err := NewEPUBProvider().Describe(context.Background(), ref)
	assert.ErrorIs(t, err, ErrNoPages)
}

func TestEPUBProvider_NoOPF(t *testing.T) {
	ref := writeEPUB(t, epubFixture{chapters: []string{"<p>x</p>"}, noOPF: true})

	_, err := NewEPUBProvider().Describe(context.Background(), ref)
	assert.Error(t, err)
}

func TestEPUBProvider_PageAsMarkdown(t *testing.T) {
	ref := writeEPUB(t, epubFixture{
		title:    "Pride and Prejudice",
		chapters: []string{"<h1>Chapter 1</h1><p>It is a truth <strong>universally</strong> acknowledged.</p>", "<p>two</p>"},
	})
	p := NewEPUBProvider()

	page, err := p.Page(context.Background(), ref, 1)
	require.NoError(t, err)
	assert.Equal(t, 1, page.Number)
	assert.Contains(t, page.Content, "# Chapter 1")
	assert.Contains(t, page.Content, "**universally**")
	assert.True(t, strings.HasSuffix(page.Locator, "OEBPS/text/ch1.xhtml"))

	_, err = p.Page(context.Background(), ref, 3)
	assert.ErrorIs(t, err, ErrPageOutOfRange)
}

func TestPDFProvider(t *testing.T) {
	ref := writePDF(t, "the_enchanted-garden.pdf", 3)
	p := NewPDFProvider()

	meta, err := p.Describe(context.Background(), ref)
	require.NoError(t, err)
	assert.Equal(t, 3, meta.TotalPages)
	assert.Equal(t, "the enchanted garden", meta.Title)
	assert.Equal(t, UnknownAuthor, meta.Author)

	page, err := p.Page(context.Background(), ref, 2)
	require.NoError(t, err)
	assert.Equal(t, ref+"#page=2", page.Locator)
	assert.Empty(t, page.Content)
}

func TestPlaceholderProvider(t *testing.T) {
	p := NewPlaceholderProvider()
	ref := PlaceholderRef("The Enchanted Garden", "Luna Rosewood", 298)

	meta, err := p.Describe(context.Background(), ref)
	require.NoError(t, err)
	assert.Equal(t, "The Enchanted Garden", meta.Title)
	assert.Equal(t, "Luna Rosewood", meta.Author)
	assert.Equal(t, 298, meta.TotalPages)

	page, err := p.Page(context.Background(), ref, 6)
	require.NoError(t, err)
	assert.True(t, strings.HasPrefix(page.Content, `This is page 6 of "The Enchanted Garden".`))
	assert.Contains(t, page.Content, placeholderSpecial)

	page, err = p.Page(context.Background(), ref, 2)
	require.NoError(t, err)
	assert.NotContains(t, page.Content, placeholderSpecial)

	_, err = p.Page(context.Background(), ref, 299)
	assert.ErrorIs(t, err, ErrPageOutOfRange)
}

func TestPlaceholderProvider_SubjectsAndLanguage(t *testing.T) {
	meta, err := NewPlaceholderProvider().Describe(context.Background(),
		"placeholder:Stars?pages=3&subject=sci-fi&subject=Romance&lang=fre")
	require.NoError(t, err)

	assert.Equal(t, []string{"sci-fi", "Romance"}, meta.Subjects)
	assert.Equal(t, "fr", meta.Language)
}

func TestPlaceholderProvider_Defaults(t *testing.T) {
	meta, err := NewPlaceholderProvider().Describe(context.Background(), PlaceholderRef("", "", 0))
	require.NoError(t, err)

	assert.Equal(t, UnknownTitle, meta.Title)
	assert.Equal(t, UnknownAuthor, meta.Author)
	assert.Equal(t, defaultPlaceholderPages, meta.TotalPages)
}

func TestPlaceholderProvider_RejectsZeroPages(t *testing.T) {
	_, err := NewPlaceholderProvider().Describe(context.Background(), "placeholder:x?pages=0")
	assert.ErrorIs(t, err, ErrNoPages)
}

func TestRegistry_Routes(t *testing.T) {
	r := NewDefaultRegistry(slog.New(slog.DiscardHandler))
	ctx := context.Background()

	epub := writeEPUB(t, epubFixture{title: "E", chapters: []string{"<p>a</p>", "<p>b</p>"}})
	meta, err := r.Describe(ctx, epub)
	require.NoError(t, err)
	assert.Equal(t, 2, meta.TotalPages)

	pdf := writePDF(t, "doc.pdf", 4)
	meta, err = r.Describe(ctx, pdf)
	require.NoError(t, err)
	assert.Equal(t, 4, meta.TotalPages)

	meta, err = r.Describe(ctx, PlaceholderRef("Demo", "", 7))
	require.NoError(t, err)
	assert.Equal(t, 7, meta.TotalPages)
}

func TestRegistry_Unsupported(t *testing.T) {
	r := NewDefaultRegistry(slog.New(slog.DiscardHandler))

	path := filepath.Join(t.TempDir(), "notes.txt")
	require.NoError(t, os.WriteFile(path, []byte("plain text"), 0o600))

	_, err := r.Describe(context.Background(), path)
	assert.ErrorIs(t, err, ErrUnsupported)

	_, err = r.Describe(context.Background(), filepath.Join(t.TempDir(), "missing.epub"))
	assert.Error(t, err)
}

func TestReadZipFile_CapsInflatedSize(t *testing.T) {
	var buf bytes.Buffer
	zw := zip.NewWriter(&buf)
	w, err := zw.Create("OEBPS/chapter1.xhtml")
	require.NoError(t, err)
	_, err = w.Write(bytes.Repeat([]byte("a"), 4096))
	require.NoError(t, err)
	require.NoError(t, zw.Close())

	zr, err := zip.NewReader(bytes.NewReader(buf.Bytes()), int64(buf.Len()))
	require.NoError(t, err)

	_, err = readZipFile(zr, "OEBPS/chapter1.xhtml", 1024)
	assert.ErrorIs(t, err, ErrEntryTooLarge)

	b, err := readZipFile(zr, "OEBPS/chapter1.xhtml", 4096)
	require.NoError(t, err)
	assert.Len(t, b, 4096)
}
