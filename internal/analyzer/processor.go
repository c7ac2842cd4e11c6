package analyzer

import (
	"context"
	"time"

	"github.com/rs/zerolog"
	"golang.org/x/sync/errgroup"

	"github.com/ollxel/document-duplicate/internal/extractor"
)

// Processor extracts links from a batch of documents concurrently.
type Processor struct {
	registry *extractor.Registry
	workers  int
	progress ProgressFunc
}

// NewProcessor creates a processor from the given options.
func NewProcessor(options Options) *Processor {
	registry := options.Registry
	if registry == nil {
		registry = extractor.NewRegistry()
	}

	workers := options.Workers
	if workers <= 0 {
		workers = DefaultOptions().Workers
	}

	return &Processor{
		registry: registry,
		workers:  workers,
		progress: options.Progress,
	}
}

// Process extracts every supported document and returns one record per
// document in input order, together with the names of skipped documents.
//
// Documents run at most p.workers at a time. The first failure cancels
// documents that have not started yet and is returned as a
// *BatchAbortError; all records are discarded in that case.
func (p *Processor) Process(ctx context.Context, docs []extractor.RawDocument) ([]DocumentRecord, []string, error) {
	log := zerolog.Ctx(ctx)

	var (
		skipped   []string
		supported int
	)
	for _, doc := range docs {
		if p.registry.Supports(doc.ResolvedFormat()) {
			supported++
		}
	}

	counter := newProgressCounter(p.progress, supported)
	records := make([]*DocumentRecord, len(docs))

	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(p.workers)

	for i, doc := range docs {
		doc.Format = doc.ResolvedFormat()
		if !p.registry.Supports(doc.Format) {
			log.Debug().Str("file", doc.Name).Msg("Skipping unsupported file type")
			skipped = append(skipped, doc.Name)
			counter.send(ProgressUpdate{FileName: doc.Name, Status: TaskStatusSkipped, Message: "unsupported file type"})
			continue
		}

		counter.send(ProgressUpdate{FileName: doc.Name, Status: TaskStatusPending, Message: "queued"})

		g.Go(func() error {
			select {
			case <-gctx.Done():
				return gctx.Err()
			default:
			}

			counter.send(ProgressUpdate{FileName: doc.Name, Status: TaskStatusProcessing})

			start := time.Now()
			links, err := p.registry.Extract(doc)
			elapsed := time.Since(start)

			if err != nil {
				counter.send(ProgressUpdate{
					FileName:    doc.Name,
					Status:      TaskStatusFailed,
					Message:     err.Error(),
					ElapsedTime: elapsed,
				})
				return &BatchAbortError{FileName: doc.Name, Err: err}
			}

			log.Debug().
				Str("file", doc.Name).
				Str("format", string(doc.Format)).
				Int("links", len(links)).
				Dur("elapsed", elapsed).
				Msg("Extracted links")

			records[i] = &DocumentRecord{
				FileName: doc.Name,
				Format:   doc.Format,
				Links:    links,
			}
			counter.send(ProgressUpdate{FileName: doc.Name, Status: TaskStatusCompleted, ElapsedTime: elapsed})

			return nil
		})
	}

	if err := g.Wait(); err != nil {
		log.Warn().Err(err).Msg("Batch aborted")
		return nil, nil, err
	}

	collected := make([]DocumentRecord, 0, supported)
	for _, record := range records {
		if record != nil {
			collected = append(collected, *record)
		}
	}

	return collected, skipped, nil
}
