// =============================================================================
// X12 EDI Parser - Root Command
// =============================================================================
//
// This file defines the root command for the Cobra CLI. Every subcommand is
// attached to it.
//
// COBRA CLI STRUCTURE:
//   rootCmd (x12)
//   ├── processCmd  (x12 process)
//   ├── validateCmd (x12 validate)
//   ├── inspectCmd  (x12 inspect)
//   ├── schemaCmd   (x12 schema)
//   └── versionCmd  (x12 version)
//
// CONFIGURATION:
//   The root command owns the global flags (--config, --verbose). Commands
//   that need configuration call loadEnvironment, which loads the config
//   file, builds the logger and assembles the transaction set catalog.
//
// =============================================================================

package cmd

import (
	"fmt"
	"io"
	"log/slog"
	"os"

	"github.com/spf13/cobra"

	"github.com/ginjaninja78/x12-edi-parser/internal/catalog"
	"github.com/ginjaninja78/x12-edi-parser/internal/config"
	"github.com/ginjaninja78/x12-edi-parser/internal/logging"
)

// =============================================================================
// GLOBAL VARIABLES
// =============================================================================

// cfgFile holds the path to the main configuration file.
var cfgFile string

// verbose forces debug logging.
var verbose bool

// =============================================================================
// ROOT COMMAND DEFINITION
// =============================================================================

// rootCmd represents the base command when called without any subcommands.
var rootCmd = &cobra.Command{
	Use:   "x12",
	Short: "X12 EDI Parser - Parse ANSI X12 interchanges into XML or Excel",
	Long: `x12 parses ANSI ASC X12 EDI files into their envelope structure
(interchanges, functional groups and transaction sets) and writes them out as
XML or Excel workbooks.

Key Features:
  - Delimiters read from each file's ISA header
  - Transaction set names from a built-in or custom catalog
  - Optional envelope control checks (counts and control numbers)
  - Concurrent batch processing with archival and run summaries

Example Usage:
  x12 process                      # Process every file in the input directory
  x12 process --file claims.edi    # Process one file
  x12 validate claims.edi          # Parse and run control checks only
  x12 inspect claims.edi           # Print the envelope tree`,

	SilenceUsage: true,

	Run: func(cmd *cobra.Command, args []string) {
		cmd.Help()
	},
}

// =============================================================================
// EXECUTE FUNCTION
// =============================================================================

// Execute runs the root command. It is called by main.main().
func Execute() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}

// =============================================================================
// INITIALIZATION
// =============================================================================

func init() {
	rootCmd.PersistentFlags().StringVar(
		&cfgFile,
		"config",
		"config.yaml",
		"Path to the main configuration file (.yaml, .yml or .toml)",
	)

	rootCmd.PersistentFlags().BoolVarP(
		&verbose,
		"verbose",
		"v",
		false,
		"Enable verbose output for debugging",
	)
}

// =============================================================================
// ENVIRONMENT
// =============================================================================

// environment is everything a command needs besides its own flags.
type environment struct {
	config  *config.MainConfig
	logger  *slog.Logger
	catalog *catalog.Catalog
}

// loadEnvironment loads the configuration and builds the logger and catalog.
//
// A missing config file is only an error when --config was given
// explicitly; otherwise the built-in defaults are used.
func loadEnvironment(cmd *cobra.Command) (*environment, error) {
	cfg, err := loadConfig(cfgFile, cmd.Flags().Changed("config"))
	if err != nil {
		return nil, err
	}

	level := cfg.LogLevel
	if verbose {
		level = "debug"
	}
	logger, err := logging.New(cmd.ErrOrStderr(), level, cfg.LogFormat)
	if err != nil {
		return nil, fmt.Errorf("failed to create logger: %w", err)
	}

	names, err := loadCatalog(cfg.Catalog)
	if err != nil {
		return nil, err
	}
	logger.Debug("catalog loaded", "transaction_sets", names.Len(), "path", cfg.Catalog.Path)

	return &environment{config: cfg, logger: logger, catalog: names}, nil
}

func loadConfig(path string, explicit bool) (*config.MainConfig, error) {
	if _, err := os.Stat(path); err != nil {
		if os.IsNotExist(err) && !explicit {
			return config.Default(), nil
		}
		return nil, fmt.Errorf("failed to load main config: %w", err)
	}

	cfg, err := config.LoadMainConfig(path)
	if err != nil {
		return nil, fmt.Errorf("failed to load main config: %w", err)
	}
	return cfg, nil
}

// loadCatalog returns the built-in catalog, layered under or replaced by a
// custom catalog file when one is configured.
func loadCatalog(settings config.CatalogSettings) (*catalog.Catalog, error) {
	names := catalog.Default()
	if settings.Path == "" {
		return names, nil
	}

	options := catalog.Options{XLSX: catalog.DefaultXLSXOptions()}
	options.XLSX.Sheet = settings.Sheet
	options.XLSX.CodeColumn = settings.CodeColumn
	options.XLSX.NameColumn = settings.NameColumn

	custom, err := catalog.Load(settings.Path, options)
	if err != nil {
		return nil, fmt.Errorf("failed to load catalog: %w", err)
	}

	if settings.ReplaceDefaults {
		return custom, nil
	}
	return names.Merge(custom), nil
}

// printf writes to the command's output, ignoring write errors like
// fmt.Printf does.
func printf(w io.Writer, format string, args ...any) {
	fmt.Fprintf(w, format, args...)
}
