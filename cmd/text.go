package cmd

import (
	"fmt"
	"os"
	"strings"

	"github.com/rs/zerolog"
	"github.com/spf13/cobra"

	"github.com/ollxel/document-duplicate/internal/extractor"
)

// textCmd represents the text command
var textCmd = &cobra.Command{
	Use:   "text [file]",
	Short: "Print the text that is scanned for links",
	Long: `Print the text recovered from a document exactly as the link matcher
sees it. Plain text is decoded, PDF pages are printed one text fragment per
line with a form feed between pages, and DOCX packages are flattened to raw
text. Useful for finding out why a link was or was not detected.

Examples:
  linkdup text paper.pdf
  linkdup text --output letter.txt letter.docx`,
	Args: cobra.ExactArgs(1),
	RunE: runText,
}

func init() {
	rootCmd.AddCommand(textCmd)
}

func runText(cmd *cobra.Command, args []string) error {
	_, ctx, err := setup(cmd)
	if err != nil {
		return err
	}

	filename := args[0]

	doc, err := extractor.ReadDocument(filename)
	if err != nil {
		return err
	}

	zerolog.Ctx(ctx).Debug().Str("file", filename).Str("format", string(doc.Format)).Msg("Converting document to text")

	text, err := documentText(extractor.NewRegistry(), doc)
	if err != nil {
		return err
	}

	// Output to file or stdout
	if outputFile != "" {
		if err := os.WriteFile(outputFile, []byte(text), 0o644); err != nil {
			return fmt.Errorf("failed to write output file: %w", err)
		}
		if !quiet {
			fmt.Fprintf(os.Stderr, "Converted text written to %s\n", outputFile)
		}
		return nil
	}

	fmt.Print(text)
	if !strings.HasSuffix(text, "\n") {
		fmt.Println()
	}

	return nil
}

// documentText converts a document and names it in any error.
func documentText(registry *extractor.Registry, doc extractor.RawDocument) (string, error) {
	if !registry.Supports(doc.ResolvedFormat()) {
		return "", fmt.Errorf("unsupported file type: %s (supported: %s)",
			doc.Name, strings.Join(registry.Extensions(), ", "))
	}

	text, err := registry.Text(doc)
	if err != nil {
		return "", fmt.Errorf("failed to convert %s: %w", doc.Name, err)
	}

	return text, nil
}
