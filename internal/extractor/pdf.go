package extractor

import (
	"bytes"
	"fmt"
	"strings"

	"github.com/ledongthuc/pdf"
)

// PDFExtractor finds links in paged documents. It scans the text of every
// page and also reads the targets of link annotations, which often point
// somewhere the visible text does not spell out.
type PDFExtractor struct{}

// NewPDFExtractor creates a PDF extractor.
func NewPDFExtractor() *PDFExtractor {
	return &PDFExtractor{}
}

// Extract returns the distinct links of the document in first-seen order.
// A page that cannot be read fails the whole document.
func (e *PDFExtractor) Extract(doc RawDocument) (links []string, err error) {
	// The pdf package panics on some malformed input.
	defer func() {
		if r := recover(); r != nil {
			links = nil
			err = &ParseError{Format: FormatStructured, Err: recoveredError(r)}
		}
	}()

	reader, err := openPDF(doc.Data)
	if err != nil {
		return nil, err
	}

	found := newLinkSet()
	for num := 1; num <= reader.NumPage(); num++ {
		page, err := readPage(reader, num)
		if err != nil {
			return nil, err
		}

		for _, fragment := range pageFragments(page) {
			found.add(FindLinks(fragment)...)
		}
		found.add(annotationLinks(page)...)
	}

	return found.items(), nil
}

// Text returns the page text, one line per text fragment and a form feed
// between pages.
func (e *PDFExtractor) Text(doc RawDocument) (text string, err error) {
	defer func() {
		if r := recover(); r != nil {
			text = ""
			err = &ParseError{Format: FormatStructured, Err: recoveredError(r)}
		}
	}()

	reader, err := openPDF(doc.Data)
	if err != nil {
		return "", err
	}

	pages := make([]string, 0, reader.NumPage())
	for num := 1; num <= reader.NumPage(); num++ {
		page, err := readPage(reader, num)
		if err != nil {
			return "", err
		}
		pages = append(pages, strings.Join(pageFragments(page), "\n"))
	}

	return strings.Join(pages, "\n\f"), nil
}

func openPDF(data []byte) (*pdf.Reader, error) {
	reader, err := pdf.NewReader(bytes.NewReader(data), int64(len(data)))
	if err != nil {
		return nil, &ParseError{Format: FormatStructured, Err: err}
	}

	return reader, nil
}

func readPage(reader *pdf.Reader, num int) (pdf.Page, error) {
	page := reader.Page(num)
	if page.V.IsNull() {
		return page, &ParseError{
			Format: FormatStructured,
			Err:    fmt.Errorf("page %d: missing page object", num),
		}
	}

	return page, nil
}

// pageFragments returns the strings shown by the page's text operators,
// one fragment per Tj, TJ, ' or " operation, decoded with the font that
// was current at that point.
func pageFragments(page pdf.Page) []string {
	encoders := make(map[string]pdf.TextEncoding)
	for _, name := range page.Fonts() {
		encoders[name] = page.Font(name).Encoder()
	}

	var (
		fragments []string
		enc       pdf.TextEncoding = rawEncoding{}
	)

	show := func(text string) {
		if text != "" {
			fragments = append(fragments, text)
		}
	}

	interpret := func(stk *pdf.Stack, op string) {
		n := stk.Len()
		args := make([]pdf.Value, n)
		for i := n - 1; i >= 0; i-- {
			args[i] = stk.Pop()
		}

		switch op {
		case "Tf":
			if n != 2 {
				panic("bad Tf operator")
			}
			if fontEnc, ok := encoders[args[0].Name()]; ok {
				enc = fontEnc
			} else {
				enc = rawEncoding{}
			}
		case "Tj", "'":
			if n < 1 {
				panic("bad " + op + " operator")
			}
			show(enc.Decode(args[n-1].RawString()))
		case "\"":
			if n != 3 {
				panic("bad \" operator")
			}
			show(enc.Decode(args[2].RawString()))
		case "TJ":
			if n != 1 {
				panic("bad TJ operator")
			}
			show(showArray(args[0], enc))
		}
	}

	contents := page.V.Key("Contents")
	if contents.Kind() == pdf.Array {
		for i := 0; i < contents.Len(); i++ {
			pdf.Interpret(contents.Index(i), interpret)
		}
	} else if contents.Kind() == pdf.Stream {
		pdf.Interpret(contents, interpret)
	}

	return fragments
}

// wordGap is the TJ displacement, in thousandths of an em, from which a
// gap between two strings reads as a space. Typesetters such as pdfTeX
// encode inter-word spaces this way instead of emitting space glyphs.
const wordGap = -100

// showArray decodes the strings of a TJ array, turning wide gaps into
// spaces. Smaller displacements are kerning and join the strings.
func showArray(array pdf.Value, enc pdf.TextEncoding) string {
	var b strings.Builder
	for i := 0; i < array.Len(); i++ {
		part := array.Index(i)
		switch part.Kind() {
		case pdf.String:
			b.WriteString(enc.Decode(part.RawString()))
		case pdf.Integer, pdf.Real:
			if part.Float64() <= wordGap && b.Len() > 0 {
				b.WriteByte(' ')
			}
		}
	}

	return b.String()
}

// rawEncoding passes bytes through when no font encoding is known.
type rawEncoding struct{}

func (rawEncoding) Decode(raw string) string {
	return raw
}

// annotationLinks returns the URI targets of the page's link annotations.
func annotationLinks(page pdf.Page) []string {
	var links []string

	annots := page.V.Key("Annots")
	for i := 0; i < annots.Len(); i++ {
		annot := annots.Index(i)
		if annot.Key("Subtype").Name() != "Link" {
			continue
		}

		if uri := annot.Key("A").Key("URI").Text(); uri != "" {
			links = append(links, uri)
		}
	}

	return links
}

// linkSet is an insertion-ordered set of links.
type linkSet struct {
	seen  map[string]struct{}
	order []string
}

func newLinkSet() *linkSet {
	return &linkSet{seen: make(map[string]struct{})}
}

func (s *linkSet) add(links ...string) {
	for _, link := range links {
		if _, ok := s.seen[link]; ok {
			continue
		}
		s.seen[link] = struct{}{}
		s.order = append(s.order, link)
	}
}

func (s *linkSet) items() []string {
	return s.order
}
