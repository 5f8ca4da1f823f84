package content

import (
	"context"
	"fmt"
	"path/filepath"
	"strings"
	"sync"

	"github.com/pdfcpu/pdfcpu/pkg/api"
)

// PDFProvider reads page counts from PDF files. Pages are rendered natively by the
// embedding application, so Page only returns a locator.
type PDFProvider struct{}

var disableConfigDir sync.Once

// NewPDFProvider creates a PDF provider.
// pdfcpu is told not to create its user configuration directory.
func NewPDFProvider() *PDFProvider {
	disableConfigDir.Do(api.DisableConfigDir)
	return &PDFProvider{}
}

// Describe counts pages. The title comes from the file name.
func (p *PDFProvider) Describe(ctx context.Context, ref string) (*Metadata, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	n, err := api.PageCountFile(ref)
	if err != nil {
		return nil, fmt.Errorf("count pdf pages: %w", err)
	}
	if n < 1 {
		return nil, ErrNoPages
	}

	meta := &Metadata{
		Title:      titleFromFilename(ref),
		TotalPages: n,
	}
	return meta.withFallbacks(), nil
}

// Page returns a locator for the number-th page.
func (p *PDFProvider) Page(ctx context.Context, ref string, number int) (*Page, error) {
	meta, err := p.Describe(ctx, ref)
	if err != nil {
		return nil, err
	}
	if err := checkPage(number, meta.TotalPages); err != nil {
		return nil, err
	}
	return &Page{
		Number:  number,
		Locator: fmt.Sprintf("%s#page=%d", ref, number),
	}, nil
}

func titleFromFilename(ref string) string {
	name := strings.TrimSuffix(filepath.Base(ref), filepath.Ext(ref))
	name = strings.NewReplacer("_", " ", "-", " ").Replace(name)
	return strings.Join(strings.Fields(name), " ")
}
