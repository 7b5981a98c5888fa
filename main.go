// =============================================================================
// X12 EDI Parser - Main Entry Point
// =============================================================================
//
// USAGE:
//   x12 process   - Convert every X12 file in the input directory
//   x12 validate  - Parse files and run envelope control checks
//   x12 inspect   - Print the envelope tree of a file
//   x12 schema    - Print the XSD for the generated XML
//   x12 version   - Display the application version
//
// ARCHITECTURE:
//   - cmd/       : CLI command definitions (Cobra)
//   - pkg/x12/   : The X12 parser (importable on its own)
//   - pkg/utils/ : File discovery, archival and run logs
//   - internal/  : Configuration, catalog, writers, control checks, converter
//
// =============================================================================

package main

import (
	"github.com/ginjaninja78/x12-edi-parser/cmd"
)

func main() {
	cmd.Execute()
}
