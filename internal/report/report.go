// Package report renders analysis results for people and for machines.
package report

import (
	"fmt"
	"io"
	"strings"
	"time"

	"github.com/google/uuid"

	"github.com/ollxel/document-duplicate/internal/analyzer"
)

// Output formats.
const (
	FormatHuman    = "human"
	FormatJSON     = "json"
	FormatCSV      = "csv"
	FormatMarkdown = "markdown"
	FormatYAML     = "yaml"
)

// Formats lists every supported output format.
var Formats = []string{FormatHuman, FormatJSON, FormatCSV, FormatMarkdown, FormatYAML}

// IsFormat reports whether name is a supported output format.
func IsFormat(name string) bool {
	for _, format := range Formats {
		if strings.EqualFold(format, name) {
			return true
		}
	}
	return false
}

// Report is the duplicate link report of one analysis run.
type Report struct {
	RunID         string                   `json:"run_id" yaml:"run_id"`
	GeneratedAt   time.Time                `json:"generated_at" yaml:"generated_at"`
	FilesAnalyzed int                      `json:"files_analyzed" yaml:"files_analyzed"`
	FilesSkipped  int                      `json:"files_skipped" yaml:"files_skipped"`
	Skipped       []string                 `json:"skipped,omitempty" yaml:"skipped,omitempty"`
	Elapsed       time.Duration            `json:"elapsed" yaml:"elapsed"`
	Duplicates    []analyzer.DuplicateLink `json:"duplicates" yaml:"duplicates"`
}

// New builds a report from an analysis result.
func New(result *analyzer.Result) *Report {
	duplicates := result.Duplicates
	if duplicates == nil {
		duplicates = []analyzer.DuplicateLink{}
	}

	return &Report{
		RunID:         uuid.NewString(),
		GeneratedAt:   time.Now().UTC(),
		FilesAnalyzed: len(result.Records),
		FilesSkipped:  len(result.Skipped),
		Skipped:       result.Skipped,
		Elapsed:       result.Elapsed,
		Duplicates:    duplicates,
	}
}

// Listing is the per-document link listing produced without aggregation.
type Listing struct {
	Documents []analyzer.DocumentRecord `json:"documents" yaml:"documents"`
	Skipped   []string                  `json:"skipped,omitempty" yaml:"skipped,omitempty"`
}

// Writer renders reports and listings in one format.
type Writer interface {
	WriteReport(report *Report) error
	WriteListing(listing *Listing) error
}

// NewWriter returns the writer for the named format.
func NewWriter(format string, output io.Writer) (Writer, error) {
	switch strings.ToLower(format) {
	case FormatHuman:
		return NewHumanWriter(output), nil
	case FormatJSON:
		return NewJSONWriter(output), nil
	case FormatCSV:
		return NewCSVWriter(output), nil
	case FormatMarkdown:
		return NewMarkdownWriter(output), nil
	case FormatYAML:
		return NewYAMLWriter(output), nil
	default:
		return nil, fmt.Errorf("unsupported output format: %s", format)
	}
}
