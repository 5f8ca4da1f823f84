package content

import (
	"context"
	"fmt"
	"log/slog"
	"strings"
	"sync"

	"github.com/gabriel-vasile/mimetype"
)

// MIME types handled by the built-in providers.
const (
	MIMETypeEPUB = "application/epub+zip"
	MIMETypePDF  = "application/pdf"
)

// Registry routes a reference to the provider for its scheme or sniffed file type.
type Registry struct {
	logger   *slog.Logger
	byMIME   map[string]Provider
	byScheme map[string]Provider
	mu       sync.RWMutex
}

var _ Provider = (*Registry)(nil)

// NewRegistry creates an empty registry.
func NewRegistry(logger *slog.Logger) *Registry {
	return &Registry{
		logger:   logger,
		byMIME:   make(map[string]Provider),
		byScheme: make(map[string]Provider),
	}
}

// NewDefaultRegistry creates a registry with the EPUB, PDF and placeholder providers.
func NewDefaultRegistry(logger *slog.Logger) *Registry {
	r := NewRegistry(logger)
	r.RegisterMIME(MIMETypeEPUB, NewEPUBProvider())
	r.RegisterMIME(MIMETypePDF, NewPDFProvider())
	r.RegisterScheme(PlaceholderScheme, NewPlaceholderProvider())
	return r
}

// RegisterMIME routes files whose sniffed type matches mimeType to p.
func (r *Registry) RegisterMIME(mimeType string, p Provider) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.byMIME[mimeType] = p
}

// RegisterScheme routes references starting with "scheme:" to p.
func (r *Registry) RegisterScheme(scheme string, p Provider) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.byScheme[scheme] = p
}

// Resolve picks the provider for ref.
func (r *Registry) Resolve(ref string) (Provider, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	if scheme, _, ok := strings.Cut(ref, ":"); ok {
		if p, found := r.byScheme[scheme]; found {
			return p, nil
		}
	}

	mtype, err := mimetype.DetectFile(ref)
	if err != nil {
		return nil, fmt.Errorf("detect type of %s: %w", ref, err)
	}

	for m := mtype; m != nil; m = m.Parent() {
		if p, found := r.byMIME[m.String()]; found {
			r.logger.Debug("resolved content provider",
				slog.String("ref", ref),
				slog.String("mime", mtype.String()))
			return p, nil
		}
	}
	return nil, fmt.Errorf("%w: %s", ErrUnsupported, mtype.String())
}

// Describe resolves the provider for ref and asks it for metadata.
func (r *Registry) Describe(ctx context.Context, ref string) (*Metadata, error) {
	p, err := r.Resolve(ref)
	if err != nil {
		return nil, err
	}
	return p.Describe(ctx, ref)
}

// Page resolves the provider for ref and asks it for one page.
func (r *Registry) Page(ctx context.Context, ref string, number int) (*Page, error) {
	p, err := r.Resolve(ref)
	if err != nil {
		return nil, err
	}
	return p.Page(ctx, ref, number)
}
