package report

import (
	"fmt"
	"io"
	"strings"
	"time"

	"github.com/fatih/color"
)

// HumanWriter prints a colored, terminal friendly listing.
type HumanWriter struct {
	output io.Writer
	link   *color.Color
	badge  *color.Color
	count  *color.Color
	muted  *color.Color
}

// NewHumanWriter creates a HumanWriter. Colors follow fatih/color's
// global setting, which is off when output is not a terminal.
func NewHumanWriter(output io.Writer) *HumanWriter {
	return &HumanWriter{
		output: output,
		link:   color.New(color.FgCyan, color.Bold),
		badge:  color.New(color.FgBlack, color.BgWhite),
		count:  color.New(color.FgYellow, color.Bold),
		muted:  color.New(color.FgHiBlack),
	}
}

// WriteReport prints one block per duplicate link.
func (w *HumanWriter) WriteReport(report *Report) error {
	fmt.Fprintf(w.output, "📄 Files analyzed: %d", report.FilesAnalyzed)
	if report.FilesSkipped > 0 {
		fmt.Fprintf(w.output, " (%d skipped: unsupported type)", report.FilesSkipped)
	}
	fmt.Fprintf(w.output, " | Processing time: %v\n", report.Elapsed.Round(time.Millisecond))

	if len(report.Duplicates) == 0 {
		fmt.Fprintln(w.output, "✅ No duplicate links found")
		return nil
	}

	fmt.Fprintf(w.output, "🔗 Found %d duplicate links\n\n", len(report.Duplicates))

	for i, dup := range report.Duplicates {
		fmt.Fprintf(w.output, "%3d. %s  %s\n", i+1, w.link.Sprint(dup.Link), w.count.Sprintf("×%d", dup.Count))

		badges := make([]string, len(dup.SourceFiles))
		for j, file := range dup.SourceFiles {
			badges[j] = w.badge.Sprintf(" %s ", file)
		}
		fmt.Fprintf(w.output, "     %s\n", strings.Join(badges, " "))
	}

	return nil
}

// WriteListing prints every document with its links.
func (w *HumanWriter) WriteListing(listing *Listing) error {
	for _, doc := range listing.Documents {
		fmt.Fprintf(w.output, "📄 %s [%s] %s\n", doc.FileName, doc.Format, w.muted.Sprintf("%d links", len(doc.Links)))
		for _, link := range doc.Links {
			fmt.Fprintf(w.output, "   • %s\n", w.link.Sprint(link))
		}
	}

	for _, name := range listing.Skipped {
		fmt.Fprintf(w.output, "⚠️  %s skipped: unsupported type\n", name)
	}

	return nil
}
