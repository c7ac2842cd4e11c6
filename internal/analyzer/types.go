package analyzer

import (
	"time"

	"github.com/ollxel/document-duplicate/internal/extractor"
)

// DocumentRecord holds the links extracted from one document.
type DocumentRecord struct {
	FileName string           `json:"file_name" yaml:"file_name"`
	Format   extractor.Format `json:"format" yaml:"format"`
	Links    []string         `json:"links" yaml:"links"`
}

// LinkStats accumulates what is known about one link across documents.
type LinkStats struct {
	// TotalOccurrences counts every raw entry of the link.
	TotalOccurrences int
	// ContributingFiles lists each file containing the link once, in the
	// order the files were first seen.
	ContributingFiles []string

	files map[string]struct{}
}

// DuplicateLink is one row of the final report: a link found in more than
// one document.
type DuplicateLink struct {
	Link        string   `json:"link" yaml:"link"`
	Count       int      `json:"count" yaml:"count"`
	SourceFiles []string `json:"source_files" yaml:"source_files"`
}

// Result is the outcome of one analysis run.
type Result struct {
	Duplicates []DuplicateLink  `json:"duplicates"`
	Records    []DocumentRecord `json:"records"`
	Skipped    []string         `json:"skipped,omitempty"`
	Elapsed    time.Duration    `json:"elapsed"`
}

// Options configures an Analyzer.
type Options struct {
	// Workers bounds the number of documents extracted at once.
	Workers int
	// Registry selects the extractor for each format. Nil means the
	// default text, PDF and DOCX extractors.
	Registry *extractor.Registry
	// Progress, when set, receives an update for every state change of
	// every document. Calls come from worker goroutines but never overlap.
	Progress ProgressFunc
}

// DefaultOptions returns the default analyzer options.
func DefaultOptions() Options {
	return Options{
		Workers: 4,
	}
}
