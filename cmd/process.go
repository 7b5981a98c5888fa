// =============================================================================
// X12 EDI Parser - Process Command
// =============================================================================
//
// This file defines the 'process' command, the batch entry point. It converts
// every X12 file in the input directory (or the files named with --file).
//
// COMMAND USAGE:
//   x12 process [flags]
//
// FLAGS:
//   --file     : Process only this file (repeatable)
//   --dry-run  : Parse, check and render without writing or archiving
//   --format   : Override output.format (xml, xlsx or none)
//
// PROCESSING PIPELINE:
//   1. Load configuration and the transaction set catalog
//   2. Prune old archives (archive_retention_days)
//   3. Discover input files
//   4. Convert files concurrently, at most max_concurrency at a time
//   5. Write the error log and the run summary
//
// =============================================================================

package cmd

import (
	"context"
	"fmt"
	"io"
	"os"
	"os/signal"
	"path/filepath"
	"strings"
	"syscall"
	"time"

	"github.com/google/uuid"
	"github.com/spf13/cobra"
	"golang.org/x/sync/errgroup"

	"github.com/ginjaninja78/x12-edi-parser/internal/converter"
	"github.com/ginjaninja78/x12-edi-parser/internal/logging"
	"github.com/ginjaninja78/x12-edi-parser/pkg/utils"
)

// =============================================================================
// COMMAND FLAGS
// =============================================================================

var (
	processFiles  []string
	processDryRun bool
	processFormat string
)

// =============================================================================
// PROCESS COMMAND DEFINITION
// =============================================================================

var processCmd = &cobra.Command{
	Use:   "process",
	Short: "Parse X12 files and write them as XML or Excel",
	Long: `The process command scans the input directory for X12 files, parses each
one into interchanges, functional groups and transaction sets, and writes the
result in the configured output format.

Files are processed concurrently. A failure in one file does not stop the
others unless continue_on_error is false.

On successful processing:
  - The generated file is placed in the output directory
  - The input is moved to the input archive (when archive is enabled)

On error:
  - The failure is recorded in an error log in the log directory
  - The input remains in the input directory

Every run writes a processing summary to the log directory.`,

	RunE: func(cmd *cobra.Command, args []string) error {
		env, err := loadEnvironment(cmd)
		if err != nil {
			return err
		}

		if processFormat != "" {
			format := strings.ToLower(processFormat)
			if format != "xml" && format != "xlsx" && format != "none" {
				return fmt.Errorf("--format must be xml, xlsx or none, got %q", processFormat)
			}
			env.config.Output.Format = format
		}

		ctx, stop := signal.NotifyContext(cmd.Context(), os.Interrupt, syscall.SIGTERM)
		defer stop()

		summary, err := runBatch(ctx, env, batchOptions{
			Files:  processFiles,
			DryRun: processDryRun,
		}, cmd.OutOrStdout())
		if err != nil {
			return err
		}
		if summary.FailedFiles > 0 {
			return fmt.Errorf("%d of %d file(s) failed", summary.FailedFiles, summary.TotalFiles)
		}
		return nil
	},
}

func init() {
	rootCmd.AddCommand(processCmd)

	processCmd.Flags().StringSliceVar(
		&processFiles,
		"file",
		nil,
		"Process only this file instead of scanning the input directory (repeatable)",
	)

	processCmd.Flags().BoolVar(
		&processDryRun,
		"dry-run",
		false,
		"Parse, check and render without writing output files or archiving",
	)

	processCmd.Flags().StringVar(
		&processFormat,
		"format",
		"",
		"Output format override: xml, xlsx or none",
	)
}

// =============================================================================
// BATCH PROCESSING
// =============================================================================

// batchOptions are the per-run settings taken from flags.
type batchOptions struct {
	// Files replaces input directory discovery when non-empty.
	Files []string

	// DryRun skips every write: outputs, archives and logs.
	DryRun bool
}

// runBatch converts the input files and reports progress to out.
//
// RETURNS:
//   - The run summary.
//   - An error when the run could not start, was cancelled, or stopped at a
//     failed file because continue_on_error is false. Ordinary per-file
//     failures are only counted in the summary.
func runBatch(ctx context.Context, env *environment, opts batchOptions, out io.Writer) (utils.ProcessingSummary, error) {
	cfg := env.config
	summary := utils.ProcessingSummary{
		RunID:     uuid.New().String(),
		StartTime: time.Now(),
	}
	logger := env.logger.With("run", summary.RunID)

	files := converter.NewFileManager(cfg)
	if !opts.DryRun {
		if err := files.EnsureDirectories(); err != nil {
			return summary, err
		}
		pruneArchives(files, cfg.ArchiveRetentionDays, logger)
	}

	// =========================================================================
	// DISCOVER INPUT FILES
	// =========================================================================

	inputs := opts.Files
	if len(inputs) == 0 {
		discovered, err := files.DiscoverInputFiles(cfg.InputExtensions)
		if err != nil {
			return summary, fmt.Errorf("failed to discover input files: %w", err)
		}
		inputs = discovered
	}
	summary.TotalFiles = len(inputs)

	printf(out, "=== X12 EDI Parser ===\n")
	if len(inputs) == 0 {
		printf(out, "No X12 files found in %s (extensions %s).\n",
			cfg.InputDir, strings.Join(cfg.InputExtensions, ", "))
		summary.EndTime = time.Now()
		return summary, nil
	}
	printf(out, "Found %d file(s) to process\n", len(inputs))

	// =========================================================================
	// PROCESS FILES CONCURRENTLY
	// =========================================================================

	results := make([]converter.Result, len(inputs))
	started := make([]bool, len(inputs))

	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(cfg.MaxConcurrency)

	for i, path := range inputs {
		if gctx.Err() != nil {
			break
		}
		started[i] = true

		i, path := i, path
		g.Go(func() error {
			conv := converter.New(path, cfg, converter.Dependencies{
				Catalog: env.catalog,
				Logger:  logger,
				Files:   files,
			})
			conv.SetDryRun(opts.DryRun)

			results[i] = conv.Run()
			if !results[i].Success && !cfg.ContinueOnError {
				return fmt.Errorf("stopped after %s: %w", filepath.Base(path), results[i].Error)
			}
			return nil
		})
	}
	runErr := g.Wait()
	if runErr == nil {
		runErr = ctx.Err()
	}

	// =========================================================================
	// COLLECT RESULTS
	// =========================================================================

	var errorEntries []utils.ErrorLogEntry
	skipped := 0

	for i, result := range results {
		if !started[i] {
			skipped++
			continue
		}
		errorEntries = append(errorEntries, converter.ErrorEntries(result)...)
		summary.ValidationWarnings += result.Stats.ValidationWarnings

		if !result.Success {
			summary.FailedFiles++
			summary.FailedFilesList = append(summary.FailedFilesList, utils.FailedFileInfo{
				InputFile:    result.FilePath,
				ErrorMessage: result.Error.Error(),
				ErrorType:    result.ErrorType,
			})
			printf(out, "  ✗ %s: %v\n", filepath.Base(result.FilePath), result.Error)
			continue
		}

		summary.SuccessfulFiles++
		summary.TotalInterchanges += result.Stats.Interchanges
		summary.TotalGroups += result.Stats.FunctionalGroups
		summary.TotalTransactions += result.Stats.Transactions
		summary.TotalSegments += result.Stats.Segments
		summary.ProcessedFiles = append(summary.ProcessedFiles, utils.ProcessedFileInfo{
			InputFile:    result.FilePath,
			OutputFile:   result.OutputFile,
			ArchivePath:  result.ArchivePath,
			Transactions: result.Stats.Transactions,
			Segments:     result.Stats.Segments,
			Warnings:     result.Stats.ValidationWarnings,
			ProcessTime:  result.Stats.ProcessingTime,
		})

		target := result.OutputFile
		if target == "" {
			target = "(no output)"
		}
		printf(out, "  ✓ %s -> %s (%d transaction(s), %d warning(s))\n",
			filepath.Base(result.FilePath), target, result.Stats.Transactions, result.Stats.ValidationWarnings)
	}
	summary.EndTime = time.Now()

	// =========================================================================
	// PRINT AND WRITE SUMMARY
	// =========================================================================

	printf(out, "\n=== Processing Complete ===\n")
	printf(out, "Total files:     %d\n", summary.TotalFiles)
	printf(out, "Successful:      %d\n", summary.SuccessfulFiles)
	printf(out, "Errors:          %d\n", summary.FailedFiles)
	if skipped > 0 {
		printf(out, "Skipped:         %d\n", skipped)
	}
	printf(out, "Transactions:    %d\n", summary.TotalTransactions)
	printf(out, "Warnings:        %d\n", summary.ValidationWarnings)
	printf(out, "Time elapsed:    %s\n", summary.EndTime.Sub(summary.StartTime))

	if !opts.DryRun {
		if logPath, err := utils.WriteErrorLog(errorEntries, files.LogDir); err != nil {
			logger.Error("failed to write error log", "error", err)
		} else if logPath != "" {
			printf(out, "\nErrors and warnings have been logged to %s\n", logPath)
		}

		if summaryPath, err := utils.WriteSummaryLog(summary, files.LogDir); err != nil {
			logger.Error("failed to write summary", "error", err)
		} else {
			logger.Info("run complete", "summary", summaryPath)
		}
	}

	return summary, runErr
}

// pruneArchives removes archived files older than the retention period.
func pruneArchives(files *utils.FileManager, retentionDays int, logger logging.Logger) {
	if retentionDays <= 0 {
		return
	}
	maxAge := time.Duration(retentionDays) * 24 * time.Hour

	for _, dir := range []string{files.InputArchiveDir, files.OutputArchiveDir} {
		removed, err := utils.CleanOldArchives(dir, maxAge)
		if err != nil {
			logger.Warn("failed to prune archive", "dir", dir, "error", err)
			continue
		}
		if removed > 0 {
			logger.Info("pruned archive", "dir", dir, "removed", removed)
		}
	}
}
