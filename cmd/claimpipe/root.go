package main

import (
	"log/slog"
	"os"
	"strings"

	"github.com/spf13/cobra"

	"github.com/claimpipe/claimpipe/internal/config"
	"github.com/claimpipe/claimpipe/internal/parser"
	"github.com/claimpipe/claimpipe/internal/recognize"
	"github.com/claimpipe/claimpipe/internal/schema"
	"github.com/claimpipe/claimpipe/version"
)

var (
	cfgFile  string
	homeDir  string
	logLevel string
)

var rootCmd = &cobra.Command{
	Use:   "claimpipe",
	Short: "Insurance claim email extraction pipeline",
	Long: `Claimpipe turns semi-structured insurance claim emails into validated,
schema-conformant records.

The pipeline includes:
  - Section segmentation of the email body
  - Configurable pattern-based field extraction
  - Entity-recognition enrichment
  - Fuzzy reconciliation against known values
  - Declarative post-extraction rules
  - Schema validation with a lenient fallback parser`,
	Version: version.GitRelease,
}

func init() {
	rootCmd.PersistentFlags().StringVar(
		&cfgFile, "config", "", "config file (default: ./config.yaml or ~/.claimpipe/config.yaml)",
	)
	rootCmd.PersistentFlags().StringVar(
		&homeDir, "home", "", "claimpipe home directory (default: ~/.claimpipe)",
	)
	rootCmd.PersistentFlags().StringVar(
		&logLevel, "log-level", "info", "log level: debug, info, warn, or error",
	)

	rootCmd.AddCommand(versionCmd)
}

// newLogger builds the process logger from the --log-level flag.
func newLogger() *slog.Logger {
	level := slog.LevelInfo
	switch strings.ToLower(logLevel) {
	case "debug":
		level = slog.LevelDebug
	case "warn":
		level = slog.LevelWarn
	case "error":
		level = slog.LevelError
	}
	return slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{Level: level}))
}

// buildPipeline assembles a pipeline from a configuration snapshot.
func buildPipeline(cfg *config.Config, logger *slog.Logger) (*parser.Pipeline, error) {
	validator, err := schema.NewRecordValidator()
	if err != nil {
		return nil, err
	}

	general, err := recognize.NewFromConfig("general", cfg.Recognizers.General)
	if err != nil {
		return nil, err
	}
	transformer, err := recognize.NewFromConfig("transformer", cfg.Recognizers.Transformer)
	if err != nil {
		return nil, err
	}

	var enricher *recognize.Enricher
	if general != nil || transformer != nil {
		enricher = recognize.NewEnricher(cfg.Recognizers, general, transformer, logger)
	}

	return parser.New(cfg, enricher, validator, logger), nil
}
