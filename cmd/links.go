package cmd

import (
	"io"

	"github.com/spf13/cobra"

	"github.com/ollxel/document-duplicate/internal/analyzer"
	"github.com/ollxel/document-duplicate/internal/extractor"
	"github.com/ollxel/document-duplicate/internal/report"
)

// linksCmd represents the links command
var linksCmd = &cobra.Command{
	Use:   "links [file|dir...]",
	Short: "List the hyperlinks found in each document",
	Long: `Extract hyperlinks from each document and list them per file, without
looking for duplicates. Text and DOCX files list every occurrence; PDF
files list each distinct link once, including link annotations.

Examples:
  linkdup links paper.pdf
  linkdup links --format csv ./docs`,
	Args: cobra.MinimumNArgs(1),
	RunE: runLinks,
}

func init() {
	rootCmd.AddCommand(linksCmd)
}

func runLinks(cmd *cobra.Command, args []string) error {
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

	records, skipped, err := analyzer.New(analyzer.Options{
		Workers:  cfg.Workers,
		Registry: registry,
		Progress: progress,
	}).Extract(ctx, docs)
	finish()
	logProgressSummary(ctx, tracker)

	if err != nil {
		return err
	}

	return writeOutput(func(out io.Writer) error {
		writer, err := report.NewWriter(cfg.Format, out)
		if err != nil {
			return err
		}
		return writer.WriteListing(&report.Listing{Documents: records, Skipped: skipped})
	})
}
