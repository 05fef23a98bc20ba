package main

import (
	"fmt"
	"strings"

	"github.com/rs/zerolog/log"
	"github.com/spf13/cobra"

	"github.com/pdiddy/paperprompt/internal/pdftext"
	"github.com/pdiddy/paperprompt/internal/prompt"
)

var templateCmd = &cobra.Command{
	Use:   "template",
	Short: "Show, fill, and list prompt templates",
	Long: `Templates are .md or .txt files with {name} placeholders. Problems with a
template (wrong extension, missing file, missing placeholder value) are
logged and produce an empty or unfilled result instead of an error.`,
}

var templateShowCmd = &cobra.Command{
	Use:   "show <template>",
	Short: "Print a template flattened to a single line",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		store := prompt.NewStore(log.Logger)
		fmt.Fprintln(cmd.OutOrStdout(), store.GetTemplate(args[0]))
		return nil
	},
}

var templateFillCmd = &cobra.Command{
	Use:   "fill <template>",
	Short: "Fill a template's placeholders and print it flattened",
	Long: `Fill substitutes {key} placeholders with --set key=value pairs. With
--document, the PDF is extracted and its text is supplied under
--document-key (default "text"). If any placeholder has no value the
template is printed unfilled.`,
	Args: cobra.ExactArgs(1),
	RunE: runTemplateFill,
}

var templateListCmd = &cobra.Command{
	Use:   "list [dir]",
	Short: "List the templates in a directory with their placeholders",
	Args:  cobra.MaximumNArgs(1),
	RunE:  runTemplateList,
}

func init() {
	templateFillCmd.Flags().StringArray("set", nil, "placeholder value as key=value (repeatable)")
	templateFillCmd.Flags().String("document", "", "PDF whose extracted text fills --document-key")
	templateFillCmd.Flags().String("document-key", "text", "placeholder that receives the document text")

	templateCmd.AddCommand(templateShowCmd, templateFillCmd, templateListCmd)
	rootCmd.AddCommand(templateCmd)
}

func runTemplateFill(cmd *cobra.Command, args []string) error {
	pairs, _ := cmd.Flags().GetStringArray("set")
	data, err := parseAssignments(pairs)
	if err != nil {
		return err
	}

	if docPath, _ := cmd.Flags().GetString("document"); docPath != "" {
		cfg, err := loadConfig()
		if err != nil {
			return err
		}
		opener, err := pdftext.NewOpener(cfg.Extraction.Backend)
		if err != nil {
			return err
		}
		res, err := pdftext.New(opener, log.Logger).ExtractWith(docPath, pdftext.Options{
			RemoveReferences: cfg.Extraction.RemoveReferences,
			StripAccents:     cfg.Extraction.StripAccents,
		})
		if err != nil {
			return err
		}
		key, _ := cmd.Flags().GetString("document-key")
		data[key] = res.Text
	}

	store := prompt.NewStore(log.Logger)
	raw := store.LoadContent(args[0])
	fmt.Fprintln(cmd.OutOrStdout(), prompt.Flatten(store.FillTemplate(raw, data)))
	return nil
}

func runTemplateList(cmd *cobra.Command, args []string) error {
	var dir string
	if len(args) == 1 {
		dir = args[0]
	} else {
		cfg, err := loadConfig()
		if err != nil {
			return err
		}
		dir = cfg.Templates.Dir
	}

	store := prompt.NewStore(log.Logger)
	if _, err := store.Preload(dir); err != nil {
		log.Warn().Err(err).Str("dir", dir).Msg("some templates could not be loaded")
	}

	w := cmd.OutOrStdout()
	for _, name := range store.Names() {
		content, _ := store.Lookup(name)
		keys, err := prompt.Placeholders(content)
		switch {
		case err != nil:
			fmt.Fprintf(w, "%s\t(malformed: %v)\n", name, err)
		case len(keys) == 0:
			fmt.Fprintf(w, "%s\n", name)
		default:
			fmt.Fprintf(w, "%s\t{%s}\n", name, strings.Join(keys, "} {"))
		}
	}
	return nil
}

// parseAssignments turns key=value pairs into fill data.
func parseAssignments(pairs []string) (map[string]any, error) {
	data := make(map[string]any, len(pairs))
	for _, p := range pairs {
		key, value, ok := strings.Cut(p, "=")
		if !ok || key == "" {
			return nil, fmt.Errorf("invalid --set %q (want key=value)", p)
		}
		data[key] = value
	}
	return data, nil
}
