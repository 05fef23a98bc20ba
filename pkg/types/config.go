// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package types

// PDFBackend identifies the tool used to read page text from a PDF.
type PDFBackend string

const (
	// BackendNative reads the PDF text layer in-process.
	BackendNative PDFBackend = "native"
	// BackendPdftotext pipes the PDF through the pdftotext container image.
	BackendPdftotext PDFBackend = "pdftotext"
)

// ExtractionConfig holds settings for PDF text extraction.
type ExtractionConfig struct {
	// Backend selects the page text reader: native or pdftotext.
	Backend PDFBackend `json:"backend" yaml:"backend" mapstructure:"backend"`

	// RemoveReferences truncates the text at the first bibliography header (default true).
	RemoveReferences bool `json:"remove_references" yaml:"remove_references" mapstructure:"remove_references"`

	// StripAccents drops combining marks after NFKD decomposition (default false).
	StripAccents bool `json:"strip_accents" yaml:"strip_accents" mapstructure:"strip_accents"`
}

// TemplateConfig holds settings for prompt template loading.
type TemplateConfig struct {
	// Dir is the directory that holds .md and .txt templates.
	Dir string `json:"dir" yaml:"dir" mapstructure:"dir"`
}

// CorpusConfig holds settings for the extraction record store.
type CorpusConfig struct {
	// Dir is the directory holding corpus.db.
	Dir string `json:"dir" yaml:"dir" mapstructure:"dir"`
}

// Config groups all settings read from paperprompt.yaml.
type Config struct {
	Extraction ExtractionConfig `json:"extraction" yaml:"extraction" mapstructure:"extraction"`
	Templates  TemplateConfig   `json:"templates" yaml:"templates" mapstructure:"templates"`
	Corpus     CorpusConfig     `json:"corpus" yaml:"corpus" mapstructure:"corpus"`
	LogLevel   string           `json:"log_level" yaml:"log_level" mapstructure:"log_level"`
}

// DefaultConfig returns the settings used when no config file is present.
func DefaultConfig() Config {
	return Config{
		Extraction: ExtractionConfig{
			Backend:          BackendNative,
			RemoveReferences: true,
		},
		Templates: TemplateConfig{Dir: "templates"},
		Corpus:    CorpusConfig{Dir: "corpus"},
		LogLevel:  "info",
	}
}
