package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/vovakirdan/carrace/internal/config"
)

var configCmd = &cobra.Command{
	Use:   "config",
	Short: "Inspect and validate configuration",
	Long: `Inspect the configuration the game would use.

Examples:
  carrace config show
  carrace config show --difficulty hard
  carrace config schema > carrace.schema.json
  carrace config check ./config.json`,
}

var configShowCmd = &cobra.Command{
	Use:   "show",
	Short: "Print the resolved configuration as YAML",
	Args:  cobra.NoArgs,
	Run:   runConfigShow,
}

var configSchemaCmd = &cobra.Command{
	Use:   "schema",
	Short: "Print the JSON Schema for configuration files",
	Args:  cobra.NoArgs,
	Run:   runConfigSchema,
}

var configCheckCmd = &cobra.Command{
	Use:   "check [file]",
	Short: "Validate a configuration file",
	Long: `Loads the configuration file (or the one the search order finds) and
reports the first problem. Exits with status 1 if the file is invalid.`,
	Args: cobra.MaximumNArgs(1),
	Run:  runConfigCheck,
}

func init() {
	configCmd.AddCommand(configShowCmd)
	configCmd.AddCommand(configSchemaCmd)
	configCmd.AddCommand(configCheckCmd)
}

func runConfigShow(_ *cobra.Command, _ []string) {
	logger := newLogger(os.Stderr)
	cfg, source, err := loadConfig(logger)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}

	data, err := config.Marshal(cfg)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
	fmt.Printf("# source: %s\n", source)
	//nolint:errcheck // Nothing useful to do if stdout is gone
	os.Stdout.Write(data)
}

func runConfigSchema(_ *cobra.Command, _ []string) {
	data, err := config.SchemaJSON()
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
	//nolint:errcheck // Nothing useful to do if stdout is gone
	os.Stdout.Write(data)
}

func runConfigCheck(_ *cobra.Command, args []string) {
	if len(args) == 1 {
		flagConfig = args[0]
	}

	logger := newLogger(os.Stderr)
	cfg, source, err := loadConfig(logger)
	if err != nil {
		logger.Error("invalid configuration", "err", err)
		os.Exit(1)
	}
	logger.Info("configuration ok",
		"source", source,
		"arena", fmt.Sprintf("%dx%d", cfg.ArenaWidth, cfg.ArenaHeight),
		"tick", cfg.TickInterval(),
		"max_obstacles", cfg.MaxObstacles)
}
