package report

import (
	"io"
	"strconv"
	"strings"

	"github.com/nao1215/markdown"
)

// MarkdownWriter writes GitHub flavored Markdown.
type MarkdownWriter struct {
	output io.Writer
}

// NewMarkdownWriter creates a MarkdownWriter.
func NewMarkdownWriter(output io.Writer) *MarkdownWriter {
	return &MarkdownWriter{output: output}
}

// WriteReport writes a summary table followed by the duplicate links.
func (w *MarkdownWriter) WriteReport(report *Report) error {
	md := markdown.NewMarkdown(w.output)

	md.H1("Duplicate Link Report")
	md.PlainText("")
	md.Table(markdown.TableSet{
		Header: []string{"Property", "Value"},
		Rows: [][]string{
			{"Run", "`" + report.RunID + "`"},
			{"Generated", report.GeneratedAt.Format("2006-01-02 15:04:05 MST")},
			{"Files Analyzed", strconv.Itoa(report.FilesAnalyzed)},
			{"Files Skipped", strconv.Itoa(report.FilesSkipped)},
			{"Duplicate Links", strconv.Itoa(len(report.Duplicates))},
		},
	})
	md.PlainText("")

	md.H2("Duplicates")
	md.PlainText("")

	if len(report.Duplicates) == 0 {
		md.Tip("No link appears in more than one document.")
	} else {
		rows := make([][]string, 0, len(report.Duplicates))
		for _, dup := range report.Duplicates {
			files := make([]string, len(dup.SourceFiles))
			for i, file := range dup.SourceFiles {
				files[i] = "`" + file + "`"
			}
			rows = append(rows, []string{dup.Link, strings.Join(files, " "), strconv.Itoa(dup.Count)})
		}

		md.Table(markdown.TableSet{
			Header: []string{"Link", "Source Files", "Count"},
			Rows:   rows,
		})
	}

	if len(report.Skipped) > 0 {
		md.PlainText("")
		md.Note("Skipped files with unsupported types: " + strings.Join(report.Skipped, ", "))
	}

	return md.Build()
}

// WriteListing writes one section per document.
func (w *MarkdownWriter) WriteListing(listing *Listing) error {
	md := markdown.NewMarkdown(w.output)

	md.H1("Extracted Links")
	md.PlainText("")

	for _, doc := range listing.Documents {
		md.H2(doc.FileName)
		md.PlainText("")
		if len(doc.Links) == 0 {
			md.PlainText("No links found.")
		} else {
			md.BulletList(doc.Links...)
		}
		md.PlainText("")
	}

	if len(listing.Skipped) > 0 {
		md.Note("Skipped files with unsupported types: " + strings.Join(listing.Skipped, ", "))
	}

	return md.Build()
}
