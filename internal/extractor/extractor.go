package extractor

import (
	"fmt"
	"sort"
	"sync"
)

// Registry dispatches documents to the extractor registered for their
// format. It is safe for concurrent use.
type Registry struct {
	mu         sync.RWMutex
	extractors map[Format]Extractor
}

// NewRegistry creates a registry with the text, PDF and DOCX extractors.
func NewRegistry() *Registry {
	r := &Registry{
		extractors: make(map[Format]Extractor),
	}

	r.Register(FormatText, NewPlainTextExtractor())
	r.Register(FormatStructured, NewPDFExtractor())
	r.Register(FormatPackaged, NewDOCXExtractor())

	return r
}

// Register sets the extractor for a format, replacing any previous one.
func (r *Registry) Register(format Format, extractor Extractor) {
	r.mu.Lock()
	defer r.mu.Unlock()

	r.extractors[format] = extractor
}

// Extensions returns the filename extensions that reach a registered
// extractor, sorted.
func (r *Registry) Extensions() []string {
	r.mu.RLock()
	defer r.mu.RUnlock()

	var extensions []string
	for ext, format := range formatsByExtension {
		if _, ok := r.extractors[format]; ok {
			extensions = append(extensions, ext)
		}
	}
	sort.Strings(extensions)

	return extensions
}

func (r *Registry) lookup(format Format) (Extractor, bool) {
	if format == FormatUnsupported {
		return nil, false
	}

	r.mu.RLock()
	defer r.mu.RUnlock()

	extractor, ok := r.extractors[format]
	return extractor, ok
}

// Supports reports whether documents of the given format can be extracted.
func (r *Registry) Supports(format Format) bool {
	_, ok := r.lookup(format)
	return ok
}

// Extract runs the extractor for the document's format, detected from
// its name when unset. Documents without
// one return ErrUnsupportedFormat.
func (r *Registry) Extract(doc RawDocument) ([]string, error) {
	extractor, ok := r.lookup(doc.ResolvedFormat())
	if !ok {
		return nil, fmt.Errorf("%s: %w", doc.Name, ErrUnsupportedFormat)
	}

	return extractor.Extract(doc)
}

// Text returns the text the document's extractor scans.
func (r *Registry) Text(doc RawDocument) (string, error) {
	extractor, ok := r.lookup(doc.ResolvedFormat())
	if !ok {
		return "", fmt.Errorf("%s: %w", doc.Name, ErrUnsupportedFormat)
	}

	converter, ok := extractor.(TextConverter)
	if !ok {
		return "", fmt.Errorf("%s: no text view for %s documents", doc.Name, doc.ResolvedFormat())
	}

	return converter.Text(doc)
}
