package report

import (
	"encoding/json"
	"io"
)

// JSONWriter writes indented JSON.
type JSONWriter struct {
	output io.Writer
}

// NewJSONWriter creates a JSONWriter.
func NewJSONWriter(output io.Writer) *JSONWriter {
	return &JSONWriter{output: output}
}

func (w *JSONWriter) WriteReport(report *Report) error {
	return w.encode(report)
}

func (w *JSONWriter) WriteListing(listing *Listing) error {
	return w.encode(listing)
}

func (w *JSONWriter) encode(v any) error {
	encoder := json.NewEncoder(w.output)
	encoder.SetIndent("", "  ")
	return encoder.Encode(v)
}
