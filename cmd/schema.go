// =============================================================================
// X12 EDI Parser - Schema Command
// =============================================================================
//
// This file defines the 'schema' command, which prints the XML Schema (XSD)
// describing the XML produced by 'process'.
//
// COMMAND USAGE:
//   x12 schema [--output FILE]
//
// =============================================================================

package cmd

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/ginjaninja78/x12-edi-parser/internal/xmlwriter"
)

var schemaOutput string

var schemaCmd = &cobra.Command{
	Use:   "schema",
	Short: "Print the XML Schema for the generated XML",
	Args:  cobra.NoArgs,

	RunE: func(cmd *cobra.Command, args []string) error {
		xsd := xmlwriter.GenerateXSD()

		if schemaOutput == "" {
			_, err := cmd.OutOrStdout().Write(xsd)
			return err
		}

		if err := os.WriteFile(schemaOutput, xsd, 0644); err != nil {
			return fmt.Errorf("failed to write schema: %w", err)
		}
		printf(cmd.OutOrStdout(), "Wrote %s\n", schemaOutput)
		return nil
	},
}

func init() {
	rootCmd.AddCommand(schemaCmd)

	schemaCmd.Flags().StringVarP(
		&schemaOutput,
		"output",
		"o",
		"",
		"Write the schema to this file instead of stdout",
	)
}
