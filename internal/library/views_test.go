package library

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/inkwellapp/inkwell/internal/domain"
	domainerrors "github.com/inkwellapp/inkwell/internal/errors"
)

func titles(books []*domain.Book) []string {
	out := make([]string, len(books))
	for i, b := range books {
		out[i] = b.Title
	}
	return out
}

func TestViews_DemoCollection(t *testing.T) {
	tl := setupTestLibrary(t, Config{SeedDemo: true})

	// The Enchanted Garden was opened today but is still at 0%.
	assert.Equal(t, []string{"Pride and Prejudice", "Moonlit Whispers"}, titles(tl.lib.CurrentlyReading()))
	assert.Equal(t, []string{"Pride and Prejudice", "Moonlit Whispers"}, titles(tl.lib.Favorites()))
	assert.Equal(t, []string{"The Enchanted Garden", "Pride and Prejudice", "Moonlit Whispers"},
		titles(tl.lib.RecentlyRead()))
}

func TestViews_RecomputedAfterMutation(t *testing.T) {
	tl := setupTestLibrary(t, Config{SeedDemo: true})
	ctx := context.Background()

	require.NoError(t, tl.lib.Update(ctx, "seed-3", domain.BookPatch{CurrentPage: domain.Ptr(267)}))
	require.NoError(t, tl.lib.Update(ctx, "seed-1", domain.BookPatch{Favorite: domain.Ptr(false)}))

	assert.Equal(t, []string{"Pride and Prejudice"}, titles(tl.lib.CurrentlyReading()))
	assert.Equal(t, []string{"Moonlit Whispers"}, titles(tl.lib.Favorites()))
}

func TestRecentlyRead_SortedAndCapped(t *testing.T) {
	tl := setupTestLibrary(t, Config{})
	ctx := context.Background()
	base := tl.clock.Now()

	for i := range 7 {
		book := tl.ingest(t, string(rune('A'+i)), 10)
		read := base.Add(time.Duration(i) * time.Hour)
		require.NoError(t, tl.lib.Update(ctx, book.ID, domain.BookPatch{LastRead: &read}))
	}
	tl.ingest(t, "Never opened", 10)

	recent := tl.lib.RecentlyRead()

	assert.Equal(t, []string{"G", "F", "E", "D", "C"}, titles(recent))
}

func TestSearch(t *testing.T) {
	tl := setupTestLibrary(t, Config{SeedDemo: true})

	tests := []struct {
		name     string
		query    string
		category Category
		want     []string
	}{
		{"empty query returns category", "", CategoryAll, []string{"Pride and Prejudice", "The Enchanted Garden", "Moonlit Whispers"}},
		{"title case-insensitive", "PRIDE", CategoryAll, []string{"Pride and Prejudice"}},
		{"author substring", "rosewood", CategoryAll, []string{"The Enchanted Garden"}},
		{"favorites only", "i", CategoryFavorites, []string{"Pride and Prejudice", "Moonlit Whispers"}},
		{"no match", "tolkien", CategoryAll, []string{}},
		{"default category", "moonlit", "", []string{"Moonlit Whispers"}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := tl.lib.Search(tt.query, tt.category)
			require.NoError(t, err)
			assert.Equal(t, tt.want, titles(got))
		})
	}
}

func TestSearch_IgnoresDiacritics(t *testing.T) {
	tl := setupTestLibrary(t, Config{})
	tl.ingest(t, "Jane Eyre", 10)
	_, err := tl.lib.Ingest(context.Background(), "placeholder:Wuthering%20Heights?author=Emily%20Bront%C3%AB&pages=10")
	require.NoError(t, err)

	got, err := tl.lib.Search("bronte", CategoryAll)
	require.NoError(t, err)
	assert.Equal(t, []string{"Wuthering Heights"}, titles(got))
}

func TestSearch_UnknownCategory(t *testing.T) {
	tl := setupTestLibrary(t, Config{})

	_, err := tl.lib.Search("", Category("shelf"))
	assert.ErrorIs(t, err, domainerrors.ErrValidation)
}

func TestStats_DemoCollection(t *testing.T) {
	tl := setupTestLibrary(t, Config{SeedDemo: true})

	stats := tl.lib.Stats()

	assert.Equal(t, 3, stats.TotalBooks)
	assert.Equal(t, 0, stats.CompletedBooks)
	assert.Equal(t, 2, stats.InProgressBooks)
	assert.Equal(t, 600, stats.TotalMinutes)
	assert.Equal(t, 10, stats.TotalHours)
}

func TestTagged(t *testing.T) {
	tl := setupTestLibrary(t, Config{SeedDemo: true})

	assert.Len(t, tl.lib.Tagged("romance"), 3)
	assert.Equal(t, []string{"The Enchanted Garden"}, titles(tl.lib.Tagged("Fantasy")))
	assert.Empty(t, tl.lib.Tagged("Horror"))
}
