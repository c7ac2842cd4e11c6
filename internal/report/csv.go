package report

import (
	"encoding/csv"
	"io"
	"strconv"
	"strings"
)

// sourceFileSeparator joins file names inside one CSV cell.
const sourceFileSeparator = ";"

// CSVWriter writes one row per duplicate link, or one row per link
// occurrence for listings.
type CSVWriter struct {
	output io.Writer
}

// NewCSVWriter creates a CSVWriter.
func NewCSVWriter(output io.Writer) *CSVWriter {
	return &CSVWriter{output: output}
}

func (w *CSVWriter) WriteReport(report *Report) error {
	writer := csv.NewWriter(w.output)

	if err := writer.Write([]string{"link", "count", "source_files"}); err != nil {
		return err
	}

	for _, dup := range report.Duplicates {
		row := []string{
			dup.Link,
			strconv.Itoa(dup.Count),
			strings.Join(dup.SourceFiles, sourceFileSeparator),
		}
		if err := writer.Write(row); err != nil {
			return err
		}
	}

	writer.Flush()
	return writer.Error()
}

func (w *CSVWriter) WriteListing(listing *Listing) error {
	writer := csv.NewWriter(w.output)

	if err := writer.Write([]string{"filename", "format", "link"}); err != nil {
		return err
	}

	for _, doc := range listing.Documents {
		for _, link := range doc.Links {
			if err := writer.Write([]string{doc.FileName, string(doc.Format), link}); err != nil {
				return err
			}
		}
	}

	writer.Flush()
	return writer.Error()
}
