package reader

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/inkwellapp/inkwell/internal/events"
)

func TestEndSession_FoldsRoundedMinutes(t *testing.T) {
	te := setupTestEngine(t, false)
	ctx := context.Background()

	te.engine.StartSession("seed-1")
	te.clock.Advance(12*time.Minute + 40*time.Second)
	require.NoError(t, te.engine.EndSession(ctx, 4))

	book, ok := te.lib.Get("seed-1")
	require.True(t, ok)
	assert.Equal(t, 180+13, book.ReadingTime)
	require.NotNil(t, book.LastRead)
	assert.True(t, book.LastRead.Equal(te.clock.Now()))

	_, open := te.engine.ActiveSession()
	assert.False(t, open)
	assert.Contains(t, te.events.Types(), events.SessionEnded)
}

func TestEndSession_WithoutSessionIsNoOp(t *testing.T) {
	te := setupTestEngine(t, false)
	before, _ := te.lib.Get("seed-1")

	require.NoError(t, te.engine.EndSession(context.Background(), 10))

	after, _ := te.lib.Get("seed-1")
	assert.Equal(t, before, after)
	assert.NotContains(t, te.events.Types(), events.SessionEnded)
}

func TestStartSession_LastStartWins(t *testing.T) {
	te := setupTestEngine(t, false)
	ctx := context.Background()

	te.engine.StartSession("seed-1")
	te.clock.Advance(30 * time.Minute)
	te.engine.StartSession("seed-3")
	te.clock.Advance(5 * time.Minute)

	active, open := te.engine.ActiveSession()
	require.True(t, open)
	assert.Equal(t, "seed-3", active.BookID)

	require.NoError(t, te.engine.EndSession(ctx, 1))

	first, _ := te.lib.Get("seed-1")
	third, _ := te.lib.Get("seed-3")
	assert.Equal(t, 180, first.ReadingTime)
	assert.Equal(t, 425, third.ReadingTime)
}

func TestEndSession_BookRemovedMeanwhile(t *testing.T) {
	te := setupTestEngine(t, false)
	ctx := context.Background()

	te.engine.StartSession("seed-2")
	require.NoError(t, te.lib.Remove(ctx, "seed-2"))
	te.clock.Advance(time.Minute)

	assert.NoError(t, te.engine.EndSession(ctx, 1))
	_, open := te.engine.ActiveSession()
	assert.False(t, open)
}
