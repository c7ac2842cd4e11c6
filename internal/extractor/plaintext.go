package extractor

import (
	"bytes"
	"errors"
	"unicode/utf8"

	"golang.org/x/text/encoding/unicode"
	"golang.org/x/text/transform"
)

var errInvalidUTF8 = errors.New("content is not valid UTF-8")

// PlainTextExtractor scans the decoded contents of a text file.
type PlainTextExtractor struct{}

// NewPlainTextExtractor creates a plain text extractor.
func NewPlainTextExtractor() *PlainTextExtractor {
	return &PlainTextExtractor{}
}

// Extract returns every link occurrence in the document, repeats included.
func (e *PlainTextExtractor) Extract(doc RawDocument) ([]string, error) {
	text, err := e.Text(doc)
	if err != nil {
		return nil, err
	}

	return FindLinks(text), nil
}

// Text decodes the document. UTF-8 is assumed unless a byte order mark
// says otherwise.
func (e *PlainTextExtractor) Text(doc RawDocument) (string, error) {
	if !hasUTF16BOM(doc.Data) && !utf8.Valid(doc.Data) {
		return "", &DecodeError{Format: FormatText, Err: errInvalidUTF8}
	}

	decoded, _, err := transform.Bytes(unicode.BOMOverride(unicode.UTF8.NewDecoder()), doc.Data)
	if err != nil {
		return "", &DecodeError{Format: FormatText, Err: err}
	}

	return string(decoded), nil
}

func hasUTF16BOM(data []byte) bool {
	return bytes.HasPrefix(data, []byte{0xFE, 0xFF}) || bytes.HasPrefix(data, []byte{0xFF, 0xFE})
}
