package content

import (
	"archive/zip"
	"context"
	"encoding/xml"
	"fmt"
	"io"
	"net/url"
	"path"
	"strings"

	htmltomarkdown "github.com/JohannesKaufmann/html-to-markdown/v2"

	"github.com/inkwellapp/inkwell/internal/normalize"
)

const containerPath = "META-INF/container.xml"

type container struct {
	Rootfiles []struct {
		FullPath  string `xml:"full-path,attr"`
		MediaType string `xml:"media-type,attr"`
	} `xml:"rootfiles>rootfile"`
}

type opfPackage struct {
	XMLName  xml.Name `xml:"package"`
	Metadata struct {
		Title    []string `xml:"title"`
		Creator  []string `xml:"creator"`
		Subject  []string `xml:"subject"`
		Language []string `xml:"language"`
		Meta    []struct {
			Name    string `xml:"name,attr"`
			Content string `xml:"content,attr"`
		} `xml:"meta"`
	} `xml:"metadata"`
	Manifest struct {
		Item []struct {
			ID         string `xml:"id,attr"`
			Href       string `xml:"href,attr"`
			MediaType  string `xml:"media-type,attr"`
			Properties string `xml:"properties,attr"`
		} `xml:"item"`
	} `xml:"manifest"`
	Spine struct {
		Itemref []struct {
			Idref  string `xml:"idref,attr"`
			Linear string `xml:"linear,attr"`
		} `xml:"itemref"`
	} `xml:"spine"`
}

// epubBook is the parsed view of an EPUB archive the provider works from.
type epubBook struct {
	title    string
	author   string
	language string
	subjects []string
	cover    string   // archive path of the cover image
	pages    []string // archive paths of the linear spine documents
}

// EPUBProvider reads EPUB archives. Each linear spine document is one page.
type EPUBProvider struct{}

// NewEPUBProvider creates an EPUB provider.
func NewEPUBProvider() *EPUBProvider {
	return &EPUBProvider{}
}

// Describe reads OPF metadata and counts spine documents.
func (p *EPUBProvider) Describe(ctx context.Context, ref string) (*Metadata, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	zr, err := zip.OpenReader(ref)
	if err != nil {
		return nil, fmt.Errorf("open epub: %w", err)
	}
	defer zr.Close()

	book, err := parseEPUB(&zr.Reader)
	if err != nil {
		return nil, err
	}

	meta := &Metadata{
		Title:      book.title,
		Author:     book.author,
		TotalPages: len(book.pages),
		Subjects:   book.subjects,
		Language:   book.language,
	}
	if book.cover != "" {
		meta.Cover = ref + "#" + book.cover
	}
	return meta.withFallbacks(), nil
}

// Page converts the number-th spine document to Markdown.
func (p *EPUBProvider) Page(ctx context.Context, ref string, number int) (*Page, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	zr, err := zip.OpenReader(ref)
	if err != nil {
		return nil, fmt.Errorf("open epub: %w", err)
	}
	defer zr.Close()

	book, err := parseEPUB(&zr.Reader)
	if err != nil {
		return nil, err
	}
	if err := checkPage(number, len(book.pages)); err != nil {
		return nil, err
	}

	doc := book.pages[number-1]
	raw, err := readZipFile(&zr.Reader, doc, maxEntrySize)
	if err != nil {
		return nil, err
	}

	markdown, err := htmltomarkdown.ConvertString(string(raw))
	if err != nil {
		return nil, fmt.Errorf("convert %s: %w", doc, err)
	}

	return &Page{
		Number:  number,
		Content: strings.TrimSpace(markdown),
		Locator: ref + "#" + doc,
	}, nil
}

func parseEPUB(zr *zip.Reader) (*epubBook, error) {
	opfPath, err := findOPF(zr)
	if err != nil {
		return nil, err
	}

	raw, err := readZipFile(zr, opfPath, maxEntrySize)
	if err != nil {
		return nil, err
	}

	var pkg opfPackage
	if err := xml.Unmarshal(raw, &pkg); err != nil {
		return nil, fmt.Errorf("parse %s: %w", opfPath, err)
	}

	// Manifest hrefs are relative to the OPF file.
	base := path.Dir(opfPath)
	resolve := func(href string) string {
		if unescaped, err := url.PathUnescape(href); err == nil {
			href = unescaped
		}
		return path.Clean(path.Join(base, href))
	}

	book := &epubBook{}
	if len(pkg.Metadata.Title) > 0 {
		book.title = strings.TrimSpace(pkg.Metadata.Title[0])
	}
	if len(pkg.Metadata.Creator) > 0 {
		book.author = strings.TrimSpace(pkg.Metadata.Creator[0])
	}
	for _, lang := range pkg.Metadata.Language {
		if book.language = normalize.LanguageCode(lang); book.language != "" {
			break
		}
	}
	for _, subject := range pkg.Metadata.Subject {
		if subject = strings.TrimSpace(subject); subject != "" {
			book.subjects = append(book.subjects, subject)
		}
	}

	hrefs := make(map[string]string, len(pkg.Manifest.Item))
	var coverID string
	for _, m := range pkg.Metadata.Meta {
		if m.Name == "cover" {
			coverID = m.Content
		}
	}
	for _, item := range pkg.Manifest.Item {
		hrefs[item.ID] = item.Href
		// EPUB 3 marks the cover on the manifest item itself.
		if book.cover == "" && strings.Contains(item.Properties, "cover-image") {
			book.cover = resolve(item.Href)
		}
	}
	if book.cover == "" && coverID != "" {
		if href, ok := hrefs[coverID]; ok {
			book.cover = resolve(href)
		}
	}

	for _, ref := range pkg.Spine.Itemref {
		if ref.Linear == "no" {
			continue
		}
		if href, ok := hrefs[ref.Idref]; ok {
			book.pages = append(book.pages, resolve(href))
		}
	}
	if len(book.pages) == 0 {
		return nil, ErrNoPages
	}

	return book, nil
}

// findOPF locates the package document via container.xml, falling back to the first .opf entry.
func findOPF(zr *zip.Reader) (string, error) {
	if raw, err := readZipFile(zr, containerPath, maxEntrySize); err == nil {
		var c container
		if err := xml.Unmarshal(raw, &c); err == nil {
			for _, rf := range c.Rootfiles {
				if rf.FullPath != "" {
					return rf.FullPath, nil
				}
			}
		}
	}

	for _, f := range zr.File {
		if path.Ext(f.Name) == ".opf" {
			return f.Name, nil
		}
	}
	return "", fmt.Errorf("no opf file found")
}

// maxEntrySize caps how much of a single EPUB entry is inflated into memory.
const maxEntrySize = 32 << 20

// readZipFile reads one entry, failing with ErrEntryTooLarge once more than limit bytes inflate.
func readZipFile(zr *zip.Reader, name string, limit int64) ([]byte, error) {
	f, err := zr.Open(name)
	if err != nil {
		return nil, fmt.Errorf("open %s: %w", name, err)
	}
	defer f.Close()

	b, err := io.ReadAll(io.LimitReader(f, limit+1))
	if err != nil {
		return nil, fmt.Errorf("read %s: %w", name, err)
	}
	if int64(len(b)) > limit {
		return nil, fmt.Errorf("read %s: %w", name, ErrEntryTooLarge)
	}
	return b, nil
}
