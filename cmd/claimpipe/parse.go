package main

import (
	"encoding/json"
	"fmt"
	"io"
	"os"

	"github.com/spf13/cobra"

	"github.com/claimpipe/claimpipe/internal/config"
	"github.com/claimpipe/claimpipe/internal/home"
)

var parseSave bool

var parseCmd = &cobra.Command{
	Use:   "parse [file]",
	Short: "Parse one claim email",
	Long: `Parse a single claim email and print the extracted record as JSON.

The email body is read from the given file, or from stdin when no file is
given.

Examples:
  claimpipe parse email.txt
  cat email.txt | claimpipe parse`,
	Args: cobra.MaximumNArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		logger := newLogger()

		mgr, err := config.NewManager(cfgFile)
		if err != nil {
			return err
		}

		var raw []byte
		if len(args) == 1 {
			raw, err = os.ReadFile(args[0])
		} else {
			raw, err = io.ReadAll(os.Stdin)
		}
		if err != nil {
			return fmt.Errorf("failed to read email: %w", err)
		}

		pipeline, err := buildPipeline(mgr.Get(), logger)
		if err != nil {
			return err
		}

		res := pipeline.Parse(cmd.Context(), string(raw))

		if parseSave {
			h, err := home.New(homeDir)
			if err != nil {
				return err
			}
			if err := h.EnsureExists(); err != nil {
				return err
			}
			data, err := json.MarshalIndent(res, "", "  ")
			if err != nil {
				return err
			}
			path := h.RecordPath(res.ID)
			if err := os.WriteFile(path, data, 0o644); err != nil {
				return fmt.Errorf("failed to save record: %w", err)
			}
			logger.Info("saved parse result", "path", path)
		}

		enc := json.NewEncoder(os.Stdout)
		enc.SetIndent("", "  ")
		return enc.Encode(res)
	},
}

func init() {
	parseCmd.Flags().BoolVar(&parseSave, "save", false, "Save the result under the claimpipe home records directory")

	rootCmd.AddCommand(parseCmd)
}
