// =============================================================================
// X12 EDI Parser - Validate Command
// =============================================================================
//
// This file defines the 'validate' command. It parses files and runs the
// envelope control checks without writing anything.
//
// COMMAND USAGE:
//   x12 validate FILE [FILE...] [--strict]
//
// EXIT STATUS:
//   Non-zero when any file fails to parse, or when --strict is set (or
//   validation.treat_warnings_as_errors) and a control check fails.
//
// =============================================================================

package cmd

import (
	"fmt"
	"io"
	"path/filepath"

	"github.com/spf13/cobra"

	"github.com/ginjaninja78/x12-edi-parser/internal/converter"
	"github.com/ginjaninja78/x12-edi-parser/internal/validation"
)

var validateStrict bool

var validateCmd = &cobra.Command{
	Use:   "validate FILE [FILE...]",
	Short: "Parse X12 files and run envelope control checks",
	Long: `The validate command parses each file and compares every trailer (IEA, GE,
SE) with its header and contents. Nothing is written or archived.

Control check findings are warnings unless --strict is given.`,
	Args: cobra.MinimumNArgs(1),

	RunE: func(cmd *cobra.Command, args []string) error {
		env, err := loadEnvironment(cmd)
		if err != nil {
			return err
		}

		strict := validateStrict || env.config.Validation.TreatWarningsAsErrors
		failed := 0
		for _, path := range args {
			if !validateFile(env, path, strict, cmd.OutOrStdout()) {
				failed++
			}
		}

		if failed > 0 {
			return fmt.Errorf("%d of %d file(s) failed validation", failed, len(args))
		}
		return nil
	},
}

func init() {
	rootCmd.AddCommand(validateCmd)

	validateCmd.Flags().BoolVar(
		&validateStrict,
		"strict",
		false,
		"Treat control check findings as errors",
	)
}

// validateFile parses one file, runs the control checks and prints a report.
//
// RETURNS:
//   - false if the file could not be parsed or a control check failed.
func validateFile(env *environment, path string, strict bool, out io.Writer) bool {
	conv := converter.New(path, env.config, converter.Dependencies{
		Catalog: env.catalog,
		Logger:  env.logger,
	})

	doc, err := conv.Parse()
	if err != nil {
		printf(out, "✗ %s: %v\n", filepath.Base(path), err)
		return false
	}

	result := validation.NewValidatorWithOptions(validation.ValidationOptions{
		TreatWarningsAsErrors: strict,
	}).ValidateDocument(doc)

	mark := "✓"
	if !result.IsValid {
		mark = "✗"
	}
	printf(out, "%s %s: %d interchange(s), %d group(s), %d transaction(s)\n",
		mark, filepath.Base(path), len(doc.Interchanges), doc.FunctionalGroupCount(), doc.TransactionCount())

	if len(result.Errors) > 0 {
		printf(out, "%s\n", validation.FormatErrors(result.Errors))
	}

	return result.IsValid
}
