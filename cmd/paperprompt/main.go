// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

// Package main is the entry point for the paperprompt CLI.
package main

import (
	"fmt"
	"os"
	"path/filepath"
	"time"

	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"
	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	"github.com/pdiddy/paperprompt/pkg/types"
)

// version is set at build time via ldflags.
var version = "dev"

// rootCmd is the base command for the paperprompt CLI.
var rootCmd = &cobra.Command{
	Use:   "paperprompt",
	Short: "Prepare PDF text and prompt templates for a language model",
	Long: `paperprompt extracts clean body text from PDF papers and loads the
instruction templates used to prompt a downstream generator.

extract reads PDFs, normalizes their text, and drops the reference section.
template shows, fills, and lists .md/.txt prompt templates. corpus inspects
the database of saved extractions.`,
	SilenceUsage: true,
	PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
		return setupLogging(viper.GetString("log_level"))
	},
}

func init() {
	cobra.OnInitialize(initConfig)

	rootCmd.PersistentFlags().String("config", "", "config file (default: ./paperprompt.yaml or ~/.config/paperprompt/paperprompt.yaml)")
	rootCmd.PersistentFlags().String("log-level", "info", "log level: debug, info, warn, error")
	rootCmd.PersistentFlags().String("corpus-dir", "corpus", "directory holding corpus.db")
	rootCmd.PersistentFlags().String("templates-dir", "templates", "directory holding .md and .txt templates")
	_ = viper.BindPFlag("log_level", rootCmd.PersistentFlags().Lookup("log-level"))
	_ = viper.BindPFlag("corpus.dir", rootCmd.PersistentFlags().Lookup("corpus-dir"))
	_ = viper.BindPFlag("templates.dir", rootCmd.PersistentFlags().Lookup("templates-dir"))

	def := types.DefaultConfig()
	viper.SetDefault("extraction.backend", string(def.Extraction.Backend))
	viper.SetDefault("extraction.remove_references", def.Extraction.RemoveReferences)
	viper.SetDefault("extraction.strip_accents", def.Extraction.StripAccents)
	viper.SetDefault("templates.dir", def.Templates.Dir)
	viper.SetDefault("corpus.dir", def.Corpus.Dir)
	viper.SetDefault("log_level", def.LogLevel)
}

func initConfig() {
	cfgFile, _ := rootCmd.PersistentFlags().GetString("config")
	if cfgFile != "" {
		viper.SetConfigFile(cfgFile)
	} else {
		viper.SetConfigName("paperprompt")
		viper.SetConfigType("yaml")
		viper.AddConfigPath(".")

		home, err := os.UserHomeDir()
		if err == nil {
			viper.AddConfigPath(filepath.Join(home, ".config", "paperprompt"))
		}
	}

	viper.SetEnvPrefix("PAPERPROMPT")
	viper.AutomaticEnv()

	if err := viper.ReadInConfig(); err == nil {
		fmt.Fprintln(os.Stderr, "Using config file:", viper.ConfigFileUsed())
	}
}

// loadConfig decodes the merged flag, env, and file settings.
func loadConfig() (types.Config, error) {
	var cfg types.Config
	if err := viper.Unmarshal(&cfg); err != nil {
		return types.Config{}, fmt.Errorf("decoding config: %w", err)
	}
	return cfg, nil
}

func setupLogging(level string) error {
	lvl, err := zerolog.ParseLevel(level)
	if err != nil {
		return fmt.Errorf("invalid log level %q: %w", level, err)
	}
	zerolog.TimeFieldFormat = time.RFC3339
	zerolog.SetGlobalLevel(lvl)
	log.Logger = log.Output(zerolog.ConsoleWriter{Out: os.Stderr, TimeFormat: time.RFC3339})
	return nil
}

func main() {
	if err := rootCmd.Execute(); err != nil {
		os.Exit(1)
	}
}
