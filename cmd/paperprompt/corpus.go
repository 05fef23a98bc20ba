package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/pdiddy/paperprompt/internal/corpus"
)

var corpusCmd = &cobra.Command{
	Use:   "corpus",
	Short: "Inspect saved extractions",
	Long: `The corpus database holds the text saved by "extract --save", one record
per PDF path.`,
}

var corpusListCmd = &cobra.Command{
	Use:   "list",
	Short: "List saved extractions",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		store, err := openCorpus()
		if err != nil {
			return err
		}
		defer store.Close()

		docs, err := store.List(cmd.Context())
		if err != nil {
			return err
		}
		w := cmd.OutOrStdout()
		fmt.Fprintf(w, "%-30s  %-5s  %-9s  %-16s  %s\n", "ID", "PAGES", "BACKEND", "EXTRACTED", "PATH")
		for _, d := range docs {
			fmt.Fprintf(w, "%-30s  %-5d  %-9s  %-16s  %s\n",
				d.ID, d.Pages, d.Backend, d.ExtractedAt.Format("2006-01-02 15:04"), d.Path)
		}
		fmt.Fprintf(w, "\n%d documents\n", len(docs))
		return nil
	},
}

var corpusShowCmd = &cobra.Command{
	Use:   "show <pdf>",
	Short: "Print the saved text for a PDF path",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		store, err := openCorpus()
		if err != nil {
			return err
		}
		defer store.Close()

		doc, err := store.Get(cmd.Context(), args[0])
		if err != nil {
			return err
		}
		fmt.Fprintln(cmd.OutOrStdout(), doc.Text)
		return nil
	},
}

var corpusExportCmd = &cobra.Command{
	Use:   "export",
	Short: "Write all saved extractions as YAML to stdout",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		store, err := openCorpus()
		if err != nil {
			return err
		}
		defer store.Close()
		return store.ExportYAML(cmd.Context(), cmd.OutOrStdout())
	},
}

var corpusDeleteCmd = &cobra.Command{
	Use:   "delete <pdf>...",
	Short: "Remove saved extractions",
	Args:  cobra.MinimumNArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		store, err := openCorpus()
		if err != nil {
			return err
		}
		defer store.Close()

		for _, path := range args {
			if err := store.Delete(cmd.Context(), path); err != nil {
				return err
			}
		}
		return nil
	},
}

func init() {
	corpusCmd.AddCommand(corpusListCmd, corpusShowCmd, corpusExportCmd, corpusDeleteCmd)
	rootCmd.AddCommand(corpusCmd)
}

func openCorpus() (*corpus.Store, error) {
	cfg, err := loadConfig()
	if err != nil {
		return nil, err
	}
	return corpus.NewStore(cfg.Corpus)
}
