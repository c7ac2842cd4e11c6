package report

import (
	"io"

	"gopkg.in/yaml.v3"
)

// YAMLWriter writes YAML documents.
type YAMLWriter struct {
	output io.Writer
}

// NewYAMLWriter creates a YAMLWriter.
func NewYAMLWriter(output io.Writer) *YAMLWriter {
	return &YAMLWriter{output: output}
}

func (w *YAMLWriter) WriteReport(report *Report) error {
	return w.encode(report)
}

func (w *YAMLWriter) WriteListing(listing *Listing) error {
	return w.encode(listing)
}

func (w *YAMLWriter) encode(v any) error {
	encoder := yaml.NewEncoder(w.output)
	encoder.SetIndent(2)
	if err := encoder.Encode(v); err != nil {
		return err
	}
	return encoder.Close()
}
