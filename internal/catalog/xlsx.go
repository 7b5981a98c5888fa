// =============================================================================
// X12 EDI Parser - XLSX Catalog Reader
// =============================================================================
//
// Trading partners often hand over their transaction set lists as Excel
// workbooks. The expected layout is configurable; the default is:
//
//   | Column A | Column B                    |
//   |----------|-----------------------------|
//   | Code     | Name                        |   <- row 1, skipped
//   | 850      | Purchase Order              |
//   | 855      | Purchase Order Acknowledgment |
//
// =============================================================================

package catalog

import (
	"fmt"

	"github.com/xuri/excelize/v2"
)

// XLSXOptions defines where the catalog lives inside a workbook.
// Column and row indices are 0-based (A=0, B=1; row 1 = 0).
type XLSXOptions struct {
	// Sheet is the sheet to read. Default: the first sheet.
	Sheet string

	// CodeColumn is the column holding transaction set codes.
	// Default: 0 (Column A)
	CodeColumn int

	// NameColumn is the column holding display names.
	// Default: 1 (Column B)
	NameColumn int

	// DataStartRow is the first row holding data.
	// Default: 1 (Row 2)
	DataStartRow int
}

// DefaultXLSXOptions returns the default workbook layout.
func DefaultXLSXOptions() XLSXOptions {
	return XLSXOptions{
		CodeColumn:   0, // Column A
		NameColumn:   1, // Column B
		DataStartRow: 1, // Row 2
	}
}

// LoadXLSX reads a catalog from an Excel workbook.
//
// PARAMETERS:
//   - path: The path to the .xlsx file.
//   - options: The sheet layout.
//
// RETURNS:
//   - The catalog. Rows with an empty code are skipped, as is a header in
//     the first data row; a code without a name is an error.
func LoadXLSX(path string, options XLSXOptions) (*Catalog, error) {
	f, err := excelize.OpenFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to open catalog workbook: %w", err)
	}
	defer f.Close()

	return readWorkbook(f, options)
}

// readWorkbook extracts the catalog from an open workbook.
func readWorkbook(f *excelize.File, options XLSXOptions) (*Catalog, error) {
	sheetName := options.Sheet
	if sheetName == "" {
		sheetName = f.GetSheetName(0)
		if sheetName == "" {
			return nil, fmt.Errorf("catalog workbook has no sheets")
		}
	}

	rows, err := f.GetRows(sheetName)
	if err != nil {
		return nil, fmt.Errorf("failed to read rows from sheet '%s': %w", sheetName, err)
	}

	names := make(map[string]string)
	for i := options.DataStartRow; i < len(rows); i++ {
		row := rows[i]
		if len(row) == 0 || isRowEmpty(row) {
			continue
		}

		code := cell(row, options.CodeColumn)
		if code == "" || (i == options.DataStartRow && !isNumeric(code)) {
			continue
		}
		name := cell(row, options.NameColumn)
		if name == "" {
			return nil, fmt.Errorf("sheet '%s' row %d: code %s has no name", sheetName, i+1, code)
		}
		names[code] = name
	}

	return New(names), nil
}
