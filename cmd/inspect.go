// =============================================================================
// X12 EDI Parser - Inspect Command
// =============================================================================
//
// This file defines the 'inspect' command, which prints the envelope tree of
// a single file.
//
// COMMAND USAGE:
//   x12 inspect FILE [--segments]
//
// OUTPUT:
//   claims.edi: element '*', sub-element '>', segment '~'
//   Interchange 000000007  ZZ:SENDER -> ZZ:RECEIVER  version 00401 (P)
//     Group 7  HC  005010X222A1  1 transaction(s)
//       Transaction 0001  837 Health Care Claim  3 segment(s)
//
// =============================================================================

package cmd

import (
	"io"
	"path/filepath"
	"strings"

	"github.com/spf13/cobra"

	"github.com/ginjaninja78/x12-edi-parser/internal/converter"
	"github.com/ginjaninja78/x12-edi-parser/pkg/x12"
)

var inspectSegments bool

var inspectCmd = &cobra.Command{
	Use:   "inspect FILE",
	Short: "Print the envelope tree of an X12 file",
	Args:  cobra.ExactArgs(1),

	RunE: func(cmd *cobra.Command, args []string) error {
		env, err := loadEnvironment(cmd)
		if err != nil {
			return err
		}

		doc, err := converter.New(args[0], env.config, converter.Dependencies{
			Catalog: env.catalog,
			Logger:  env.logger,
		}).Parse()
		if err != nil {
			return err
		}

		printTree(cmd.OutOrStdout(), filepath.Base(args[0]), doc, inspectSegments)
		return nil
	},
}

func init() {
	rootCmd.AddCommand(inspectCmd)

	inspectCmd.Flags().BoolVar(
		&inspectSegments,
		"segments",
		false,
		"Also print every segment inside each transaction",
	)
}

// printTree writes an indented outline of the document.
func printTree(out io.Writer, name string, doc *x12.Document, segments bool) {
	d := doc.Delimiters
	printf(out, "%s: element %q, sub-element %q, segment %q\n", name, d.Element, d.SubElement, d.Segment)

	if len(doc.Interchanges) == 0 {
		printf(out, "(no interchanges)\n")
		return
	}

	for _, ic := range doc.Interchanges {
		printf(out, "Interchange %s  %s:%s -> %s:%s  version %s (%s)\n",
			ic.ControlNumber, ic.SenderQualifier, ic.SenderID,
			ic.ReceiverQualifier, ic.ReceiverID, ic.Version, ic.UsageIndicator)

		for _, group := range ic.FunctionalGroups {
			printf(out, "  Group %s  %s  %s  %d transaction(s)\n",
				group.ControlNumber, group.FunctionalIdentifierCode, group.Version, len(group.Transactions))

			for _, tx := range group.Transactions {
				printf(out, "    Transaction %s  %s %s  %d segment(s)\n",
					tx.ControlNumber, tx.Code, tx.Name, len(tx.Segments))

				if segments {
					for _, segment := range tx.Segments {
						printf(out, "      %s\n", formatSegment(segment, d))
					}
				}
			}
		}
	}
}

// formatSegment renders a segment back in X12 notation, without terminator.
func formatSegment(segment x12.GenericSegment, d x12.Delimiters) string {
	parts := append([]string{segment.Abbreviation}, segment.Elements...)
	return strings.Join(parts, string(d.Element))
}
