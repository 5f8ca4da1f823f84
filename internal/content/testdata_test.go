package content

import (
	"archive/zip"
	"bytes"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"testing"
)

type epubFixture struct {
	title    string
	creator  string
	language string
	subjects []string
	chapters []string // xhtml bodies, one per spine entry
	withNav  bool     // adds a non-linear nav document to the spine
	noOPF    bool
}

func writeEPUB(t *testing.T, f epubFixture) string {
	t.Helper()

	var buf bytes.Buffer
	zw := zip.NewWriter(&buf)

	add := func(name, body string) {
		w, err := zw.Create(name)
		if err != nil {
			t.Fatalf("create %s: %v", name, err)
		}
		if _, err := w.Write([]byte(body)); err != nil {
			t.Fatalf("write %s: %v", name, err)
		}
	}

	// The mimetype entry must come first and be stored uncompressed for sniffing to work.
	mw, err := zw.CreateHeader(&zip.FileHeader{Name: "mimetype", Method: zip.Store})
	if err != nil {
		t.Fatalf("create mimetype: %v", err)
	}
	if _, err := mw.Write([]byte("application/epub+zip")); err != nil {
		t.Fatalf("write mimetype: %v", err)
	}
	add("META-INF/container.xml", `<?xml version="1.0"?>
<container version="1.0" xmlns="urn:oasis:names:tc:opendocument:xmlns:container">
  <rootfiles>
    <rootfile full-path="OEBPS/content.opf" media-type="application/oebps-package+xml"/>
  </rootfiles>
</container>`)

	var manifest, spine strings.Builder
	manifest.WriteString(`<item id="cover" href="images/cover%20art.jpg" media-type="image/jpeg"/>`)
	if f.withNav {
		manifest.WriteString(`<item id="nav" href="nav.xhtml" media-type="application/xhtml+xml" properties="nav"/>`)
		spine.WriteString(`<itemref idref="nav" linear="no"/>`)
		add("OEBPS/nav.xhtml", "<html><body><nav>toc</nav></body></html>")
	}
	for i, body := range f.chapters {
		id := fmt.Sprintf("ch%d", i+1)
		href := fmt.Sprintf("text/%s.xhtml", id)
		fmt.Fprintf(&manifest, `<item id="%s" href="%s" media-type="application/xhtml+xml"/>`, id, href)
		fmt.Fprintf(&spine, `<itemref idref="%s"/>`, id)
		add("OEBPS/"+href, "<html><body>"+body+"</body></html>")
	}

	if !f.noOPF {
		var meta strings.Builder
		if f.title != "" {
			fmt.Fprintf(&meta, "<dc:title>%s</dc:title>", f.title)
		}
		if f.creator != "" {
			fmt.Fprintf(&meta, "<dc:creator>%s</dc:creator>", f.creator)
		}
		if f.language != "" {
			fmt.Fprintf(&meta, "<dc:language>%s</dc:language>", f.language)
		}
		for _, s := range f.subjects {
			fmt.Fprintf(&meta, "<dc:subject>%s</dc:subject>", s)
		}
		add("OEBPS/content.opf", fmt.Sprintf(`<?xml version="1.0"?>
<package xmlns="http://www.idpf.org/2007/opf" version="3.0">
  <metadata xmlns:dc="http://purl.org/dc/elements/1.1/">%s<meta name="cover" content="cover"/></metadata>
  <manifest>%s</manifest>
  <spine>%s</spine>
</package>`, meta.String(), manifest.String(), spine.String()))
	}
	add("OEBPS/images/cover art.jpg", "jpeg")

	if err := zw.Close(); err != nil {
		t.Fatalf("close zip: %v", err)
	}

	path := filepath.Join(t.TempDir(), "book.epub")
	if err := os.WriteFile(path, buf.Bytes(), 0o600); err != nil {
		t.Fatalf("write epub: %v", err)
	}
	return path
}

// writePDF writes a minimal PDF with the given number of blank pages.
func writePDF(t *testing.T, name string, pages int) string {
	t.Helper()

	var buf bytes.Buffer
	var offsets []int
	obj := func(body string) {
		offsets = append(offsets, buf.Len())
		fmt.Fprintf(&buf, "%d 0 obj\n%s\nendobj\n", len(offsets), body)
	}

	buf.WriteString("%PDF-1.4\n")
	obj("<< /Type /Catalog /Pages 2 0 R >>")

	kids := make([]string, pages)
	for i := range kids {
		kids[i] = fmt.Sprintf("%d 0 R", i+3)
	}
	obj(fmt.Sprintf("<< /Type /Pages /Kids [%s] /Count %d >>", strings.Join(kids, " "), pages))
	for range pages {
		obj("<< /Type /Page /Parent 2 0 R /MediaBox [0 0 612 792] /Resources << >> >>")
	}

	xref := buf.Len()
	fmt.Fprintf(&buf, "xref\n0 %d\n", len(offsets)+1)
	buf.WriteString("0000000000 65535 f \n")
	for _, off := range offsets {
		fmt.Fprintf(&buf, "%010d 00000 n \n", off)
	}
	fmt.Fprintf(&buf, "trailer\n<< /Size %d /Root 1 0 R >>\nstartxref\n%d\n%%%%EOF\n", len(offsets)+1, xref)

	path := filepath.Join(t.TempDir(), name)
	if err := os.WriteFile(path, buf.Bytes(), 0o600); err != nil {
		t.Fatalf("write pdf: %v", err)
	}
	return path
}
