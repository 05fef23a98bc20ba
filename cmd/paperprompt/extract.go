package main

import (
	"fmt"
	"io"

	"github.com/rs/zerolog/log"
	"github.com/spf13/cobra"
	"github.com/spf13/viper"
	"go.yaml.in/yaml/v3"

	"github.com/pdiddy/paperprompt/internal/corpus"
	"github.com/pdiddy/paperprompt/internal/pdftext"
	"github.com/pdiddy/paperprompt/pkg/types"
)

var extractCmd = &cobra.Command{
	Use:   "extract [pdfs...]",
	Short: "Extract normalized body text from PDF files",
	Long: `Extract reads each PDF page by page, joins the page text, applies NFKD
Unicode normalization, and cuts the text before the first reference section
header (References, Bibliography, Literature cited, Works cited).

Per-file status goes to stderr; the extracted text goes to stdout. With
--save, results are stored in the corpus database. On later runs unchanged
PDFs are not re-read; their saved text is printed instead.`,
	Args: cobra.MinimumNArgs(1),
	RunE: runExtract,
}

var _ pdftext.Recorder = (*corpus.Store)(nil)

func init() {
	extractCmd.Flags().String("backend", "native", "PDF backend: native or pdftotext")
	extractCmd.Flags().Bool("remove-references", true, "cut the text at the first reference section header")
	extractCmd.Flags().Bool("strip-accents", false, "drop combining marks after normalization")
	extractCmd.Flags().Bool("save", false, "store results in the corpus database")
	extractCmd.Flags().StringP("output", "o", "text", "output format: text or yaml")

	_ = viper.BindPFlag("extraction.backend", extractCmd.Flags().Lookup("backend"))
	_ = viper.BindPFlag("extraction.remove_references", extractCmd.Flags().Lookup("remove-references"))
	_ = viper.BindPFlag("extraction.strip_accents", extractCmd.Flags().Lookup("strip-accents"))

	rootCmd.AddCommand(extractCmd)
}

func runExtract(cmd *cobra.Command, args []string) error {
	cfg, err := loadConfig()
	if err != nil {
		return err
	}
	save, _ := cmd.Flags().GetBool("save")
	format, _ := cmd.Flags().GetString("output")
	if format != "text" && format != "yaml" {
		return fmt.Errorf("unknown output format %q (want text or yaml)", format)
	}

	opener, err := pdftext.NewOpener(cfg.Extraction.Backend)
	if err != nil {
		return err
	}
	ex := pdftext.New(opener, log.Logger)
	opts := pdftext.Options{
		RemoveReferences: cfg.Extraction.RemoveReferences,
		StripAccents:     cfg.Extraction.StripAccents,
	}

	var rec pdftext.Recorder
	if save {
		store, err := corpus.NewStore(cfg.Corpus)
		if err != nil {
			return err
		}
		defer store.Close()
		rec = store
	}

	result := pdftext.ExtractBatch(cmd.Context(), ex, args, opts, rec, cmd.ErrOrStderr())

	if err := writeDocuments(cmd.OutOrStdout(), result.Documents, format); err != nil {
		return err
	}
	if result.HasFailures() {
		return fmt.Errorf("%d of %d PDFs failed", result.Failed, result.Total())
	}
	return nil
}

// writeDocuments prints extracted text, with a header per document when
// more than one was extracted, or the full records as YAML.
func writeDocuments(w io.Writer, docs []types.Document, format string) error {
	if format == "yaml" {
		if docs == nil {
			docs = []types.Document{}
		}
		enc := yaml.NewEncoder(w)
		enc.SetIndent(2)
		if err := enc.Encode(docs); err != nil {
			return fmt.Errorf("marshaling YAML: %w", err)
		}
		return enc.Close()
	}

	for i, doc := range docs {
		if len(docs) > 1 {
			if i > 0 {
				fmt.Fprintln(w)
			}
			fmt.Fprintf(w, "==> %s <==\n", doc.Path)
		}
		fmt.Fprintln(w, doc.Text)
	}
	return nil
}

