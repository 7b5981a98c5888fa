// =============================================================================
// X12 EDI Parser - XLSX Writer Module
// =============================================================================
//
// This module renders a parsed x12.Document as an Excel workbook for analysts
// who review EDI traffic in a spreadsheet. Two sheets are written:
//
//   Envelopes - one row per transaction set
//   | Interchange | Sender | Receiver | Group | Functional ID | Version | Code | Name | Control Number | Segments |
//
//   Segments  - one row per generic segment
//   | Interchange | Group | Transaction | Position | Segment | E01 | E02 | ... |
//
// =============================================================================

package xlsxwriter

import (
	"fmt"

	"github.com/xuri/excelize/v2"

	"github.com/ginjaninja78/x12-edi-parser/pkg/x12"
)

// Sheet names.
const (
	EnvelopesSheet = "Envelopes"
	SegmentsSheet  = "Segments"
)

var envelopeHeaders = []string{
	"Interchange", "Sender", "Receiver", "Group", "Functional ID", "Version",
	"Code", "Name", "Control Number", "Convention Reference", "Segments", "Declared Count",
}

var segmentHeaders = []string{"Interchange", "Group", "Transaction", "Position", "Segment"}

// Generate renders the document as an XLSX workbook.
//
// RETURNS:
//   - The workbook as a byte slice.
//   - An error if doc is nil or the workbook cannot be written.
func Generate(doc *x12.Document) ([]byte, error) {
	if doc == nil {
		return nil, fmt.Errorf("failed to generate XLSX: document is nil")
	}

	f := excelize.NewFile()
	defer f.Close()

	if err := f.SetSheetName("Sheet1", EnvelopesSheet); err != nil {
		return nil, fmt.Errorf("failed to create sheet: %w", err)
	}
	if _, err := f.NewSheet(SegmentsSheet); err != nil {
		return nil, fmt.Errorf("failed to create sheet: %w", err)
	}

	if err := writeEnvelopes(f, doc); err != nil {
		return nil, err
	}
	if err := writeSegments(f, doc); err != nil {
		return nil, err
	}

	buffer, err := f.WriteToBuffer()
	if err != nil {
		return nil, fmt.Errorf("failed to write workbook: %w", err)
	}
	return buffer.Bytes(), nil
}

func writeEnvelopes(f *excelize.File, doc *x12.Document) error {
	if err := writeRow(f, EnvelopesSheet, 1, toRow(envelopeHeaders)); err != nil {
		return err
	}
	if err := styleHeader(f, EnvelopesSheet, len(envelopeHeaders)); err != nil {
		return err
	}

	row := 2
	for _, ic := range doc.Interchanges {
		for _, group := range ic.FunctionalGroups {
			for _, tx := range group.Transactions {
				values := []interface{}{
					ic.ControlNumber, ic.SenderID, ic.ReceiverID,
					group.ControlNumber, group.FunctionalIdentifierCode, group.Version,
					tx.Code, tx.Name, tx.ControlNumber, tx.ImplementationConventionReference,
					len(tx.Segments), tx.Trailer.Count,
				}
				if err := writeRow(f, EnvelopesSheet, row, values); err != nil {
					return err
				}
				row++
			}
		}
	}

	return f.SetPanes(EnvelopesSheet, frozenHeader())
}

func writeSegments(f *excelize.File, doc *x12.Document) error {
	maxElements := 0
	for _, ic := range doc.Interchanges {
		for _, group := range ic.FunctionalGroups {
			for _, tx := range group.Transactions {
				for _, segment := range tx.Segments {
					if len(segment.Elements) > maxElements {
						maxElements = len(segment.Elements)
					}
				}
			}
		}
	}

	headers := toRow(segmentHeaders)
	for i := 1; i <= maxElements; i++ {
		headers = append(headers, fmt.Sprintf("E%02d", i))
	}
	if err := writeRow(f, SegmentsSheet, 1, headers); err != nil {
		return err
	}
	if err := styleHeader(f, SegmentsSheet, len(headers)); err != nil {
		return err
	}

	row := 2
	for _, ic := range doc.Interchanges {
		for _, group := range ic.FunctionalGroups {
			for _, tx := range group.Transactions {
				for i, segment := range tx.Segments {
					values := []interface{}{ic.ControlNumber, group.ControlNumber, tx.ControlNumber, i + 1, segment.Abbreviation}
					for _, element := range segment.Elements {
						values = append(values, element)
					}
					if err := writeRow(f, SegmentsSheet, row, values); err != nil {
						return err
					}
					row++
				}
			}
		}
	}

	return f.SetPanes(SegmentsSheet, frozenHeader())
}

// =============================================================================
// HELPER FUNCTIONS
// =============================================================================

func writeRow(f *excelize.File, sheet string, row int, values []interface{}) error {
	cell, err := excelize.CoordinatesToCellName(1, row)
	if err != nil {
		return fmt.Errorf("failed to address row %d: %w", row, err)
	}
	if err := f.SetSheetRow(sheet, cell, &values); err != nil {
		return fmt.Errorf("failed to write %s row %d: %w", sheet, row, err)
	}
	return nil
}

func styleHeader(f *excelize.File, sheet string, columns int) error {
	style, err := f.NewStyle(&excelize.Style{Font: &excelize.Font{Bold: true}})
	if err != nil {
		return fmt.Errorf("failed to create header style: %w", err)
	}
	last, err := excelize.CoordinatesToCellName(columns, 1)
	if err != nil {
		return fmt.Errorf("failed to address header: %w", err)
	}
	return f.SetCellStyle(sheet, "A1", last, style)
}

func frozenHeader() *excelize.Panes {
	return &excelize.Panes{
		Freeze:      true,
		YSplit:      1,
		TopLeftCell: "A2",
		ActivePane:  "bottomLeft",
	}
}

func toRow(values []string) []interface{} {
	row := make([]interface{}, len(values))
	for i, v := range values {
		row[i] = v
	}
	return row
}
