package extractor

import (
	"path/filepath"
	"strings"
)

// Format identifies which extraction strategy applies to a document.
type Format string

const (
	FormatText        Format = "text"
	FormatStructured  Format = "structured"
	FormatPackaged    Format = "packaged"
	FormatUnsupported Format = "unsupported"
)

// formatsByExtension maps lower-cased filename extensions to formats.
var formatsByExtension = map[string]Format{
	".txt":  FormatText,
	".pdf":  FormatStructured,
	".docx": FormatPackaged,
}

// DetectFormat returns the format implied by the filename extension.
// Unknown extensions yield FormatUnsupported.
func DetectFormat(name string) Format {
	if format, ok := formatsByExtension[strings.ToLower(filepath.Ext(name))]; ok {
		return format
	}

	return FormatUnsupported
}

// RawDocument is one input file: its display name, its bytes and the
// format detected from the name. It is never modified after creation.
type RawDocument struct {
	Name   string `json:"name"`
	Data   []byte `json:"-"`
	Format Format `json:"format"`
}

// NewRawDocument creates a document and detects its format from the name.
func NewRawDocument(name string, data []byte) RawDocument {
	return RawDocument{
		Name:   name,
		Data:   data,
		Format: DetectFormat(name),
	}
}

// ResolvedFormat returns the document's format. Documents built without
// one are classified by their name.
func (d RawDocument) ResolvedFormat() Format {
	if d.Format == "" {
		return DetectFormat(d.Name)
	}

	return d.Format
}

// Extractor turns one raw document into the links found in it.
type Extractor interface {
	Extract(doc RawDocument) ([]string, error)
}

// TextConverter recovers the text an extractor scans for links.
type TextConverter interface {
	Text(doc RawDocument) (string, error)
}

// ExtractorFunc adapts a plain function to the Extractor interface.
type ExtractorFunc func(doc RawDocument) ([]string, error)

// Extract calls f(doc).
func (f ExtractorFunc) Extract(doc RawDocument) ([]string, error) {
	return f(doc)
}
