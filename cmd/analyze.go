package cmd

import (
	"context"
	"io"
	"os"

	"github.com/rs/zerolog"
	"github.com/schollz/progressbar/v3"
	"github.com/spf13/cobra"

	"github.com/ollxel/document-duplicate/internal/analyzer"
	"github.com/ollxel/document-duplicate/internal/config"
	"github.com/ollxel/document-duplicate/internal/extractor"
	"github.com/ollxel/document-duplicate/internal/report"
)

// analyzeCmd represents the analyze command
var analyzeCmd = &cobra.Command{
	Use:   "analyze [file|dir...]",
	Short: "Report hyperlinks that appear in more than one document",
	Long: `Extract hyperlinks from every .txt, .pdf and .docx file given and report
the links that appear in at least two of them.

Each reported link shows the total number of occurrences across all files
and the files it was found in. Results are ordered by occurrence count.
Directories contribute the files they contain; use --recursive to include
subdirectories. At most --max-files files (default 20) are accepted.

Examples:
  linkdup analyze report.pdf notes.txt letter.docx
  linkdup analyze --format markdown -o duplicates.md ./papers
  linkdup analyze --recursive --format json ./archive`,
	Args: cobra.MinimumNArgs(1),
	RunE: runAnalyze,
}

func init() {
	rootCmd.AddCommand(analyzeCmd)
}

func runAnalyze(cmd *cobra.Command, args []string) error {
	cfg, ctx, err := setup(cmd)
	if err != nil {
		return err
	}

	docs, err := loadBatch(cfg, args)
	if err != nil {
		return err
	}

	registry := extractor.NewRegistry()
	tracker := analyzer.NewProgressTracker()
	progress, finish := newProgress(cfg, countSupported(registry, docs), tracker)

	result, err := analyzer.New(analyzer.Options{
		Workers:  cfg.Workers,
		Registry: registry,
		Progress: progress,
	}).Run(ctx, docs)
	finish()
	logProgressSummary(ctx, tracker)

	if err != nil {
		return err
	}

	// Nothing is written for an aborted batch.
	return writeOutput(func(out io.Writer) error {
		writer, err := report.NewWriter(cfg.Format, out)
		if err != nil {
			return err
		}
		return writer.WriteReport(report.New(result))
	})
}

// loadBatch expands the arguments, enforces the batch size and reads every
// file into memory.
func loadBatch(cfg *config.Config, args []string) ([]extractor.RawDocument, error) {
	paths, err := extractor.CollectPaths(args, cfg.Recursive)
	if err != nil {
		return nil, err
	}

	if err := cfg.CheckBatchSize(len(paths)); err != nil {
		return nil, err
	}

	docs := make([]extractor.RawDocument, 0, len(paths))
	for _, path := range paths {
		doc, err := extractor.ReadDocument(path)
		if err != nil {
			return nil, err
		}
		docs = append(docs, doc)
	}

	return docs, nil
}

func countSupported(registry *extractor.Registry, docs []extractor.RawDocument) int {
	n := 0
	for _, doc := range docs {
		if registry.Supports(doc.ResolvedFormat()) {
			n++
		}
	}
	return n
}

// newProgress returns the progress observer for a run and a function that
// completes the display once the run is over.
func newProgress(cfg *config.Config, total int, tracker *analyzer.ProgressTracker) (analyzer.ProgressFunc, func()) {
	if !cfg.Progress || quiet || total == 0 {
		return tracker.Update, func() {}
	}

	bar := progressbar.NewOptions(total,
		progressbar.OptionSetWriter(os.Stderr),
		progressbar.OptionEnableColorCodes(true),
		progressbar.OptionShowCount(),
		progressbar.OptionSetWidth(20),
		progressbar.OptionSetDescription("[cyan]Extracting links[reset]"),
		progressbar.OptionClearOnFinish(),
	)

	progress := func(update analyzer.ProgressUpdate) {
		tracker.Update(update)
		if update.Status == analyzer.TaskStatusCompleted || update.Status == analyzer.TaskStatusFailed {
			_ = bar.Set(update.Completed)
		}
	}

	return progress, func() { _ = bar.Finish() }
}

func logProgressSummary(ctx context.Context, tracker *analyzer.ProgressTracker) {
	summary := tracker.GetSummary()

	event := zerolog.Ctx(ctx).Debug().
		Int("files", summary.TotalTasks).
		Dur("elapsed", summary.ElapsedTime)
	for status, count := range summary.StatusCounts {
		event = event.Int(string(status), count)
	}
	event.Msg("Batch finished")
}
