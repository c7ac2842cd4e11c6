package extractor

import (
	"errors"
	"os"
	"path/filepath"
	"reflect"
	"strings"
	"testing"

	"github.com/ollxel/document-duplicate/internal/extractor/extractortest"
)

func TestPlainTextExtractor(t *testing.T) {
	testCases := []struct {
		name     string
		data     []byte
		expected []string
	}{
		{
			name:     "repeats are kept",
			data:     []byte("a http://x.com b\nhttp://x.com https://y.org/p"),
			expected: []string{"http://x.com", "http://x.com", "https://y.org/p"},
		},
		{
			name:     "no links",
			data:     []byte("nothing to see here"),
			expected: nil,
		},
		{
			name:     "utf-8 byte order mark",
			data:     append([]byte{0xEF, 0xBB, 0xBF}, []byte("https://bom.example")...),
			expected: []string{"https://bom.example"},
		},
		{
			name:     "utf-16 little endian",
			data:     utf16LE("go to https://wide.example now"),
			expected: []string{"https://wide.example"},
		},
		{
			name:     "no-break space after a link",
			data:     []byte("see http://a.com/x\u00a0today and http://a.com/x today"),
			expected: []string{"http://a.com/x", "http://a.com/x"},
		},
	}

	extractor := NewPlainTextExtractor()
	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			links, err := extractor.Extract(NewRawDocument("doc.txt", tc.data))
			if err != nil {
				t.Fatalf("Extract() error = %v", err)
			}
			if !reflect.DeepEqual(links, tc.expected) {
				t.Errorf("Extract() = %q, want %q", links, tc.expected)
			}
		})
	}
}

func TestPlainTextExtractorInvalidUTF8(t *testing.T) {
	_, err := NewPlainTextExtractor().Extract(NewRawDocument("bad.txt", []byte{'h', 0xff, 0xfe, 0xfd}))

	var decodeErr *DecodeError
	if !errors.As(err, &decodeErr) {
		t.Fatalf("Extract() error = %v, want *DecodeError", err)
	}
	if decodeErr.Format != FormatText {
		t.Errorf("DecodeError.Format = %q, want %q", decodeErr.Format, FormatText)
	}
}

func TestPDFExtractor(t *testing.T) {
	data := extractortest.PDF(t, []extractortest.Page{
		{
			Lines: []string{"Intro see http://a.com/x and http://a.com/x", "then https://b.org/page."},
			Links: []string{"https://annot.example/one", "http://a.com/x"},
		},
		{
			Lines: []string{"second page http://c.net"},
			Links: []string{""},
			Annots: []string{
				"<< /Type /Annot /Subtype /Text /Rect [0 0 1 1] /A << /S /URI /URI (https://not-a-link.example) >> >>",
			},
		},
	}, 0)

	links, err := NewPDFExtractor().Extract(NewRawDocument("paper.pdf", data))
	if err != nil {
		t.Fatalf("Extract() error = %v", err)
	}

	expected := []string{
		"http://a.com/x",
		"https://b.org/page.",
		"https://annot.example/one",
		"http://c.net",
	}
	if !reflect.DeepEqual(links, expected) {
		t.Errorf("Extract() = %q, want %q", links, expected)
	}
}

func TestPDFExtractorKernedText(t *testing.T) {
	data := extractortest.PDF(t, []extractortest.Page{
		{
			Ops: []string{
				"[(See)-333(http://a.com/x)-333(for)-333(details)] TJ",
				"[(http://b.c)-20(om/y)12(z) 250(end)] TJ",
			},
		},
	}, 0)

	links, err := NewPDFExtractor().Extract(NewRawDocument("latex.pdf", data))
	if err != nil {
		t.Fatalf("Extract() error = %v", err)
	}

	expected := []string{"http://a.com/x", "http://b.com/yzend"}
	if !reflect.DeepEqual(links, expected) {
		t.Errorf("Extract() = %q, want %q", links, expected)
	}

	text, err := NewPDFExtractor().Text(NewRawDocument("latex.pdf", data))
	if err != nil {
		t.Fatalf("Text() error = %v", err)
	}
	if want := "See http://a.com/x for details\nhttp://b.com/yzend"; text != want {
		t.Errorf("Text() = %q, want %q", text, want)
	}
}

func TestPDFExtractorNoLinks(t *testing.T) {
	data := extractortest.PDF(t, []extractortest.Page{{Lines: []string{"just text"}}}, 0)

	links, err := NewPDFExtractor().Extract(NewRawDocument("plain.pdf", data))
	if err != nil {
		t.Fatalf("Extract() error = %v", err)
	}
	if len(links) != 0 {
		t.Errorf("Extract() = %q, want no links", links)
	}
}

func TestPDFExtractorErrors(t *testing.T) {
	testCases := []struct {
		name string
		data []byte
	}{
		{
			name: "not a pdf",
			data: []byte(strings.Repeat("this is not a pdf document at all ", 10)),
		},
		{
			name: "missing page",
			data: extractortest.PDF(t, []extractortest.Page{{Lines: []string{"http://only.one"}}}, 2),
		},
		{
			name: "truncated",
			data: extractortest.PDF(t, []extractortest.Page{{Lines: []string{"http://cut.example"}}}, 0)[:40],
		},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			links, err := NewPDFExtractor().Extract(NewRawDocument("broken.pdf", tc.data))

			var parseErr *ParseError
			if !errors.As(err, &parseErr) {
				t.Fatalf("Extract() error = %v, want *ParseError", err)
			}
			if parseErr.Format != FormatStructured {
				t.Errorf("ParseError.Format = %q, want %q", parseErr.Format, FormatStructured)
			}
			if links != nil {
				t.Errorf("Extract() links = %q, want nil on error", links)
			}
		})
	}
}

func TestPDFExtractorText(t *testing.T) {
	data := extractortest.PDF(t, []extractortest.Page{
		{Lines: []string{"first", "second"}},
		{Lines: []string{"third"}},
	}, 0)

	text, err := NewPDFExtractor().Text(NewRawDocument("paper.pdf", data))
	if err != nil {
		t.Fatalf("Text() error = %v", err)
	}

	if want := "first\nsecond\n\fthird"; text != want {
		t.Errorf("Text() = %q, want %q", text, want)
	}
}

func TestDOCXExtractor(t *testing.T) {
	data := extractortest.DOCX(t,
		"Read https://docs.example/a and https://docs.example/a again.",
		"Also http://other.example/b",
	)

	links, err := NewDOCXExtractor().Extract(NewRawDocument("letter.docx", data))
	if err != nil {
		t.Fatalf("Extract() error = %v", err)
	}

	expected := []string{"https://docs.example/a", "https://docs.example/a", "http://other.example/b"}
	if !reflect.DeepEqual(links, expected) {
		t.Errorf("Extract() = %q, want %q", links, expected)
	}
}

func TestDOCXExtractorSkipsHeadersAndFooters(t *testing.T) {
	data := extractortest.DOCXWithHeader(t,
		"ACME Corp https://letterhead.example",
		"Body link http://body.example/a",
	)

	links, err := NewDOCXExtractor().Extract(NewRawDocument("letter.docx", data))
	if err != nil {
		t.Fatalf("Extract() error = %v", err)
	}

	expected := []string{"http://body.example/a"}
	if !reflect.DeepEqual(links, expected) {
		t.Errorf("Extract() = %q, want %q", links, expected)
	}
}

func TestDOCXExtractorErrors(t *testing.T) {
	testCases := []struct {
		name string
		data []byte
	}{
		{
			name: "not a zip",
			data: []byte("plain bytes pretending to be a package"),
		},
		{
			name: "missing content types",
			data: extractortest.Zip(t, map[string]string{
				"word/document.xml": "<w:document/>",
			}),
		},
		{
			name: "missing main document part",
			data: extractortest.Zip(t, map[string]string{
				"[Content_Types].xml": `<?xml version="1.0" encoding="UTF-8"?>
<Types xmlns="http://schemas.openxmlformats.org/package/2006/content-types">
<Default Extension="xml" ContentType="application/xml"/>
</Types>`,
				"xl/workbook.xml": "<workbook/>",
			}),
		},
		{
			name: "declared main document part is absent",
			data: extractortest.Zip(t, map[string]string{
				"[Content_Types].xml": `<?xml version="1.0" encoding="UTF-8"?>
<Types xmlns="http://schemas.openxmlformats.org/package/2006/content-types">
<Override PartName="/word/document.xml" ContentType="application/vnd.openxmlformats-officedocument.wordprocessingml.document.main+xml"/>
</Types>`,
			}),
		},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			_, err := NewDOCXExtractor().Extract(NewRawDocument("broken.docx", tc.data))

			var parseErr *ParseError
			if !errors.As(err, &parseErr) {
				t.Fatalf("Extract() error = %v, want *ParseError", err)
			}
			if parseErr.Format != FormatPackaged {
				t.Errorf("ParseError.Format = %q, want %q", parseErr.Format, FormatPackaged)
			}
		})
	}
}

func TestRegistry(t *testing.T) {
	registry := NewRegistry()

	expectedExtensions := []string{".docx", ".pdf", ".txt"}
	if got := registry.Extensions(); !reflect.DeepEqual(got, expectedExtensions) {
		t.Errorf("Extensions() = %v, want %v", got, expectedExtensions)
	}

	partial := &Registry{extractors: map[Format]Extractor{FormatText: NewPlainTextExtractor()}}
	if got := partial.Extensions(); !reflect.DeepEqual(got, []string{".txt"}) {
		t.Errorf("Extensions() of a text-only registry = %v", got)
	}

	t.Run("documents without a format dispatch by name", func(t *testing.T) {
		links, err := registry.Extract(RawDocument{Name: "a.TXT", Data: []byte("http://x.com")})
		if err != nil {
			t.Fatalf("Extract() error = %v", err)
		}
		if !reflect.DeepEqual(links, []string{"http://x.com"}) {
			t.Errorf("Extract() = %q", links)
		}
	})

	t.Run("dispatches by format", func(t *testing.T) {
		links, err := registry.Extract(NewRawDocument("a.txt", []byte("http://x.com")))
		if err != nil {
			t.Fatalf("Extract() error = %v", err)
		}
		if !reflect.DeepEqual(links, []string{"http://x.com"}) {
			t.Errorf("Extract() = %q", links)
		}
	})

	t.Run("unsupported format", func(t *testing.T) {
		doc := NewRawDocument("notes.rtf", []byte("http://x.com"))
		if registry.Supports(doc.Format) {
			t.Error("Supports(unsupported) = true")
		}
		if _, err := registry.Extract(doc); !errors.Is(err, ErrUnsupportedFormat) {
			t.Errorf("Extract() error = %v, want ErrUnsupportedFormat", err)
		}
		if _, err := registry.Text(doc); !errors.Is(err, ErrUnsupportedFormat) {
			t.Errorf("Text() error = %v, want ErrUnsupportedFormat", err)
		}
	})

	t.Run("custom extractor", func(t *testing.T) {
		custom := NewRegistry()
		custom.Register(FormatText, ExtractorFunc(func(doc RawDocument) ([]string, error) {
			return []string{"custom:" + doc.Name}, nil
		}))

		links, err := custom.Extract(NewRawDocument("a.txt", nil))
		if err != nil {
			t.Fatalf("Extract() error = %v", err)
		}
		if !reflect.DeepEqual(links, []string{"custom:a.txt"}) {
			t.Errorf("Extract() = %q", links)
		}
		if _, err := custom.Text(NewRawDocument("a.txt", nil)); err == nil {
			t.Error("Text() expected error for extractor without text view")
		}
	})
}

func TestCollectPaths(t *testing.T) {
	dir := t.TempDir()
	writeFile(t, filepath.Join(dir, "b.txt"), "b")
	writeFile(t, filepath.Join(dir, "a.pdf"), "a")
	writeFile(t, filepath.Join(dir, "sub", "c.docx"), "c")
	single := filepath.Join(t.TempDir(), "single.rtf")
	writeFile(t, single, "s")

	t.Run("flat", func(t *testing.T) {
		paths, err := CollectPaths([]string{single, dir}, false)
		if err != nil {
			t.Fatalf("CollectPaths() error = %v", err)
		}
		expected := []string{single, filepath.Join(dir, "a.pdf"), filepath.Join(dir, "b.txt")}
		if !reflect.DeepEqual(paths, expected) {
			t.Errorf("CollectPaths() = %v, want %v", paths, expected)
		}
	})

	t.Run("recursive", func(t *testing.T) {
		paths, err := CollectPaths([]string{dir}, true)
		if err != nil {
			t.Fatalf("CollectPaths() error = %v", err)
		}
		expected := []string{
			filepath.Join(dir, "a.pdf"),
			filepath.Join(dir, "b.txt"),
			filepath.Join(dir, "sub", "c.docx"),
		}
		if !reflect.DeepEqual(paths, expected) {
			t.Errorf("CollectPaths() = %v, want %v", paths, expected)
		}
	})

	t.Run("missing", func(t *testing.T) {
		if _, err := CollectPaths([]string{filepath.Join(dir, "nope.txt")}, false); err == nil {
			t.Error("CollectPaths() expected error for missing file")
		}
	})
}

func TestReadDocument(t *testing.T) {
	path := filepath.Join(t.TempDir(), "Notes.TXT")
	writeFile(t, path, "http://x.com")

	doc, err := ReadDocument(path)
	if err != nil {
		t.Fatalf("ReadDocument() error = %v", err)
	}
	if doc.Name != path || doc.Format != FormatText || string(doc.Data) != "http://x.com" {
		t.Errorf("ReadDocument() = %+v", doc)
	}
}

func writeFile(t *testing.T, path, content string) {
	t.Helper()

	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		t.Fatal(err)
	}
	if err := os.WriteFile(path, []byte(content), 0o644); err != nil {
		t.Fatal(err)
	}
}

func utf16LE(s string) []byte {
	out := []byte{0xFF, 0xFE}
	for _, r := range s {
		out = append(out, byte(r), 0)
	}
	return out
}
