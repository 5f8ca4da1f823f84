// Package fonts lists the reader typefaces and tracks whether they are ready to render.
package fonts

import (
	"context"
	"slices"
	"sync"

	domainerrors "github.com/inkwellapp/inkwell/internal/errors"
)

// Family is a reader typeface.
type Family struct {
	Name     string `json:"name"`
	Category string `json:"category"`
}

var families = []Family{
	{Name: "Playfair Display", Category: "display"},
	{Name: "Crimson Text", Category: "serif"},
	{Name: "Libre Baskerville", Category: "serif"},
	{Name: "Merriweather", Category: "serif"},
	{Name: "EB Garamond", Category: "serif"},
}

var sizes = []int{12, 14, 16, 18, 20, 22, 24}

// Families returns the catalog in display order.
func Families() []Family {
	return slices.Clone(families)
}

// Sizes returns the font-size presets in points.
func Sizes() []int {
	return slices.Clone(sizes)
}

// IsKnown reports whether name is in the catalog.
func IsKnown(name string) bool {
	return slices.ContainsFunc(families, func(f Family) bool { return f.Name == name })
}

// Gate blocks rendering until the font set has finished loading. A failed load
// still opens the gate; the renderer falls back to system fonts.
type Gate struct {
	once  sync.Once
	ready chan struct{}

	mu  sync.RWMutex
	err error
}

// NewGate returns a closed gate.
func NewGate() *Gate {
	return &Gate{ready: make(chan struct{})}
}

// MarkLoaded opens the gate.
func (g *Gate) MarkLoaded() {
	g.once.Do(func() { close(g.ready) })
}

// MarkFailed opens the gate and records why loading failed.
func (g *Gate) MarkFailed(err error) {
	g.once.Do(func() {
		g.mu.Lock()
		g.err = err
		g.mu.Unlock()
		close(g.ready)
	})
}

// Ready reports whether the gate is open.
func (g *Gate) Ready() bool {
	select {
	case <-g.ready:
		return true
	default:
		return false
	}
}

// Err returns the load failure, if any.
func (g *Gate) Err() error {
	g.mu.RLock()
	defer g.mu.RUnlock()
	return g.err
}

// Wait blocks until the gate opens or ctx is done.
func (g *Gate) Wait(ctx context.Context) error {
	select {
	case <-g.ready:
		return nil
	case <-ctx.Done():
		return domainerrors.Wrap(ctx.Err(), domainerrors.CodeBusy, "fonts not ready")
	}
}
