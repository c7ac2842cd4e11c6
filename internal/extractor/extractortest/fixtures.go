// Package extractortest builds small PDF and DOCX documents for tests.
package extractortest

import (
	"archive/zip"
	"bytes"
	"fmt"
	"sort"
	"strings"
	"testing"
)

// Page describes one page of a generated PDF.
type Page struct {
	Lines  []string // shown with one Tj each
	Links  []string // URI targets of link annotations
	Annots []string // extra raw annotation dictionaries
	Ops    []string // raw text operators written after the lines
}

// PDF writes a minimal PDF with the given pages. declaredPages lets a
// test claim more pages than exist; zero means len(pages).
func PDF(t testing.TB, pages []Page, declaredPages int) []byte {
	t.Helper()

	if declaredPages == 0 {
		declaredPages = len(pages)
	}

	var objects []string

	kids := make([]string, len(pages))
	for i := range pages {
		kids[i] = fmt.Sprintf("%d 0 R", 4+2*i)
	}

	objects = append(objects,
		"<< /Type /Catalog /Pages 2 0 R >>",
		fmt.Sprintf("<< /Type /Pages /Kids [%s] /Count %d >>", strings.Join(kids, " "), declaredPages),
		"<< /Type /Font /Subtype /Type1 /BaseFont /Helvetica /Encoding /WinAnsiEncoding >>",
	)

	for i, page := range pages {
		var annots []string
		for _, link := range page.Links {
			annots = append(annots, fmt.Sprintf(
				"<< /Type /Annot /Subtype /Link /Rect [0 0 100 20] /A << /S /URI /URI (%s) >> >>",
				escapePDFString(link)))
		}
		annots = append(annots, page.Annots...)

		objects = append(objects, fmt.Sprintf(
			"<< /Type /Page /Parent 2 0 R /MediaBox [0 0 612 792] "+
				"/Resources << /Font << /F1 3 0 R >> >> /Contents %d 0 R /Annots [%s] >>",
			5+2*i, strings.Join(annots, " ")))

		var content strings.Builder
		content.WriteString("BT\n/F1 12 Tf\n72 720 Td\n")
		for _, line := range page.Lines {
			fmt.Fprintf(&content, "(%s) Tj\n0 -14 Td\n", escapePDFString(line))
		}
		for _, op := range page.Ops {
			content.WriteString(op + "\n0 -14 Td\n")
		}
		content.WriteString("ET")

		objects = append(objects, fmt.Sprintf("<< /Length %d >>\nstream\n%s\nendstream",
			content.Len(), content.String()))
	}

	var buf bytes.Buffer
	buf.WriteString("%PDF-1.4\n")

	offsets := make([]int, len(objects))
	for i, obj := range objects {
		offsets[i] = buf.Len()
		fmt.Fprintf(&buf, "%d 0 obj\n%s\nendobj\n", i+1, obj)
	}

	xref := buf.Len()
	fmt.Fprintf(&buf, "xref\n0 %d\n0000000000 65535 f \n", len(objects)+1)
	for _, off := range offsets {
		fmt.Fprintf(&buf, "%010d 00000 n \n", off)
	}
	fmt.Fprintf(&buf, "trailer\n<< /Size %d /Root 1 0 R >>\nstartxref\n%d\n%%%%EOF\n", len(objects)+1, xref)

	return buf.Bytes()
}

func escapePDFString(s string) string {
	r := strings.NewReplacer(`\`, `\\`, `(`, `\(`, `)`, `\)`)
	return r.Replace(s)
}

const docxContentTypes = `<?xml version="1.0" encoding="UTF-8" standalone="yes"?>
<Types xmlns="http://schemas.openxmlformats.org/package/2006/content-types">
<Default Extension="rels" ContentType="application/vnd.openxmlformats-package.relationships+xml"/>
<Default Extension="xml" ContentType="application/xml"/>
<Override PartName="/word/document.xml" ContentType="application/vnd.openxmlformats-officedocument.wordprocessingml.document.main+xml"/>
</Types>`

const docxRels = `<?xml version="1.0" encoding="UTF-8" standalone="yes"?>
<Relationships xmlns="http://schemas.openxmlformats.org/package/2006/relationships">
<Relationship Id="rId1" Type="http://schemas.openxmlformats.org/officeDocument/2006/relationships/officeDocument" Target="word/document.xml"/>
</Relationships>`

// DOCX writes a word-processor package with one paragraph per entry.
func DOCX(t testing.TB, paragraphs ...string) []byte {
	t.Helper()

	return Zip(t, map[string]string{
		"[Content_Types].xml": docxContentTypes,
		"_rels/.rels":         docxRels,
		"word/document.xml":   wordPart("document", "body", paragraphs),
	})
}

// DOCXWithHeader writes a package whose header and footer parts both hold
// the letterhead text, next to a body with the given paragraphs.
func DOCXWithHeader(t testing.TB, letterhead string, paragraphs ...string) []byte {
	t.Helper()

	contentTypes := strings.Replace(docxContentTypes, "</Types>",
		`<Override PartName="/word/header1.xml" ContentType="application/vnd.openxmlformats-officedocument.wordprocessingml.header+xml"/>
<Override PartName="/word/footer1.xml" ContentType="application/vnd.openxmlformats-officedocument.wordprocessingml.footer+xml"/>
</Types>`, 1)

	return Zip(t, map[string]string{
		"[Content_Types].xml": contentTypes,
		"_rels/.rels":         docxRels,
		"word/document.xml":   wordPart("document", "body", paragraphs),
		"word/header1.xml":    wordPart("hdr", "", []string{letterhead}),
		"word/footer1.xml":    wordPart("ftr", "", []string{letterhead}),
	})
}

func wordPart(root, container string, paragraphs []string) string {
	var body strings.Builder
	for _, p := range paragraphs {
		fmt.Fprintf(&body, `<w:p><w:r><w:t xml:space="preserve">%s</w:t></w:r></w:p>`, xmlEscape(p))
	}

	inner := body.String()
	if container != "" {
		inner = "<w:" + container + ">" + inner + "</w:" + container + ">"
	}

	return `<?xml version="1.0" encoding="UTF-8" standalone="yes"?>
<w:` + root + ` xmlns:w="http://schemas.openxmlformats.org/wordprocessingml/2006/main">` +
		inner + `</w:` + root + `>`
}

// Zip writes the given parts into a zip archive in name order.
func Zip(t testing.TB, files map[string]string) []byte {
	t.Helper()

	var buf bytes.Buffer
	zw := zip.NewWriter(&buf)
	names := make([]string, 0, len(files))
	for name := range files {
		names = append(names, name)
	}
	sort.Strings(names)

	for _, name := range names {
		content := files[name]
		w, err := zw.Create(name)
		if err != nil {
			t.Fatalf("create %s: %v", name, err)
		}
		if _, err := w.Write([]byte(content)); err != nil {
			t.Fatalf("write %s: %v", name, err)
		}
	}
	if err := zw.Close(); err != nil {
		t.Fatalf("close zip: %v", err)
	}

	return buf.Bytes()
}

func xmlEscape(s string) string {
	r := strings.NewReplacer("&", "&amp;", "<", "&lt;", ">", "&gt;")
	return r.Replace(s)
}
