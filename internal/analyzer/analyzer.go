// Package analyzer finds hyperlinks that recur across a batch of documents.
//
// A batch runs in three steps. The Processor extracts links from every
// supported document in parallel and aborts the whole batch on the first
// failure. The Aggregator folds the per-document records into per-link
// statistics, keeping only links seen in at least two documents. Rank
// orders the result by occurrence count.
//
// Two counts are kept apart: the number of documents containing a link
// decides whether it is a duplicate, while the reported count is the total
// number of raw occurrences across all documents.
package analyzer

import (
	"context"
	"time"

	"github.com/rs/zerolog"

	"github.com/ollxel/document-duplicate/internal/extractor"
)

// Analyzer runs duplicate link analysis over batches of documents. It
// keeps no state between runs.
type Analyzer struct {
	processor *Processor
}

// New creates an analyzer.
func New(options Options) *Analyzer {
	return &Analyzer{
		processor: NewProcessor(options),
	}
}

// Analyze returns the links found in more than one document, ordered by
// count. An empty slice means no duplicates. If any document fails, the
// error is a *BatchAbortError naming it and no links are returned.
func (a *Analyzer) Analyze(ctx context.Context, docs []extractor.RawDocument) ([]DuplicateLink, error) {
	result, err := a.Run(ctx, docs)
	if err != nil {
		return nil, err
	}

	return result.Duplicates, nil
}

// Run is like Analyze but also returns the per-document records and the
// documents skipped for having an unsupported type.
func (a *Analyzer) Run(ctx context.Context, docs []extractor.RawDocument) (*Result, error) {
	start := time.Now()

	records, skipped, err := a.processor.Process(ctx, docs)
	if err != nil {
		return nil, err
	}

	aggregator := NewAggregator()
	for _, record := range records {
		aggregator.Add(record)
	}
	duplicates := Rank(aggregator.Duplicates())

	result := &Result{
		Duplicates: duplicates,
		Records:    records,
		Skipped:    skipped,
		Elapsed:    time.Since(start),
	}

	zerolog.Ctx(ctx).Info().
		Int("documents", len(records)).
		Int("skipped", len(skipped)).
		Int("links", aggregator.Len()).
		Int("duplicates", len(duplicates)).
		Dur("elapsed", result.Elapsed).
		Msg("Analysis complete")

	return result, nil
}

// Extract runs only the extraction step and returns the per-document
// records.
func (a *Analyzer) Extract(ctx context.Context, docs []extractor.RawDocument) ([]DocumentRecord, []string, error) {
	return a.processor.Process(ctx, docs)
}
