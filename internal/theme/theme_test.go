package theme

import (
	"context"
	"errors"
	"log/slog"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/inkwellapp/inkwell/internal/domain"
	domainerrors "github.com/inkwellapp/inkwell/internal/errors"
	"github.com/inkwellapp/inkwell/internal/events"
	"github.com/inkwellapp/inkwell/internal/store"
)

type failingKV struct {
	store.KV
}

func (failingKV) Set(context.Context, string, []byte) error {
	return errors.New("read-only")
}

func setupSelector(t *testing.T) (*Selector, store.KV, *events.Recorder) {
	t.Helper()

	kv, err := store.New(filepath.Join(t.TempDir(), "db"), nil)
	require.NoError(t, err)
	t.Cleanup(func() { _ = kv.Close() })

	rec := &events.Recorder{}
	s := New(kv, rec, slog.New(slog.DiscardHandler))
	require.NoError(t, s.Init(context.Background()))
	return s, kv, rec
}

func TestSelector_DefaultsToLight(t *testing.T) {
	s, _, _ := setupSelector(t)

	assert.Equal(t, domain.ThemeLight, s.Name())
	assert.False(t, s.IsDark())
	assert.Equal(t, domain.LightPalette, s.Palette())
}

func TestSetTheme_PersistsAndRestores(t *testing.T) {
	s, kv, rec := setupSelector(t)
	ctx := context.Background()

	require.NoError(t, s.SetTheme(ctx, domain.ThemeRomantic))

	raw, err := kv.Get(ctx, store.KeySelectedTheme)
	require.NoError(t, err)
	assert.Equal(t, "romantic", string(raw))
	assert.Equal(t, []events.Type{events.ThemeChanged}, rec.Types())

	restored := New(kv, nil, slog.New(slog.DiscardHandler))
	require.NoError(t, restored.Init(ctx))
	assert.Equal(t, domain.ThemeRomantic, restored.Name())
	assert.Equal(t, domain.RomanticPalette, restored.Palette())
}

func TestSetTheme_DarkThenAdaptive(t *testing.T) {
	s, kv, _ := setupSelector(t)
	ctx := context.Background()

	require.NoError(t, s.SetTheme(ctx, domain.ThemeDark))
	require.NoError(t, s.SetTheme(ctx, domain.ThemeDark))
	assert.True(t, s.IsDark())

	require.NoError(t, s.SetAdaptiveTheme(domain.ColorOverrides{Accent: "#000"}))

	assert.Equal(t, domain.ThemeAdaptive, s.Name())
	assert.False(t, s.IsDark())
	assert.Equal(t, "#000", s.Overrides().Accent)
	assert.Equal(t, "#000", s.Palette().Accent)
	assert.Equal(t, domain.LightPalette.Primary, s.Palette().Primary)

	// Adaptive is not persisted: storage still says dark.
	raw, err := kv.Get(ctx, store.KeySelectedTheme)
	require.NoError(t, err)
	assert.Equal(t, "dark", string(raw))
}

func TestSetTheme_ClearsOverrides(t *testing.T) {
	s, _, _ := setupSelector(t)

	require.NoError(t, s.SetAdaptiveTheme(domain.AdaptiveReaderColors))
	require.NoError(t, s.SetTheme(context.Background(), domain.ThemeLight))

	assert.Equal(t, domain.ColorOverrides{}, s.Overrides())
	assert.Equal(t, domain.LightPalette, s.Palette())
}

func TestSetTheme_RejectsUnknown(t *testing.T) {
	s, _, _ := setupSelector(t)

	err := s.SetTheme(context.Background(), "sepia")

	assert.ErrorIs(t, err, domainerrors.ErrValidation)
	assert.Equal(t, domain.ThemeLight, s.Name())
}

func TestSetAdaptiveTheme_RejectsBadColor(t *testing.T) {
	s, _, _ := setupSelector(t)

	err := s.SetAdaptiveTheme(domain.ColorOverrides{Primary: "brown"})

	assert.ErrorIs(t, err, domainerrors.ErrValidation)
	assert.Equal(t, domain.ThemeLight, s.Name())
}

func TestSetAdaptiveTheme_AcceptsCSSColorForms(t *testing.T) {
	s, _, _ := setupSelector(t)

	overrides := domain.ColorOverrides{
		Primary:    "rgb(139, 90, 43)",
		Accent:     "rgba(233, 30, 99, 0.5)",
		Background: "hsl(43, 100%, 95%)",
		Text:       "#2C1810",
	}
	require.NoError(t, s.SetAdaptiveTheme(overrides))

	assert.Equal(t, domain.ThemeAdaptive, s.Name())
	assert.Equal(t, "rgba(233, 30, 99, 0.5)", s.Palette().Accent)
}

func TestSetTheme_PersistenceFailureIsWarning(t *testing.T) {
	s := New(failingKV{KV: store.NewMemory()}, nil, slog.New(slog.DiscardHandler))

	err := s.SetTheme(context.Background(), domain.ThemeDark)

	assert.True(t, domainerrors.IsWarning(err))
	assert.True(t, s.IsDark())
}

func TestInit_AcceptsQuotedAndIgnoresUnknown(t *testing.T) {
	ctx := context.Background()
	kv := store.NewMemory()

	require.NoError(t, kv.Set(ctx, store.KeySelectedTheme, []byte(`"dark"`)))
	s := New(kv, nil, slog.New(slog.DiscardHandler))
	require.NoError(t, s.Init(ctx))
	assert.True(t, s.IsDark())

	require.NoError(t, kv.Set(ctx, store.KeySelectedTheme, []byte("neon")))
	s = New(kv, nil, slog.New(slog.DiscardHandler))
	require.NoError(t, s.Init(ctx))
	assert.Equal(t, domain.ThemeLight, s.Name())
}
