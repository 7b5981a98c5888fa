// =============================================================================
// X12 EDI Parser - CSV Catalog Reader
// =============================================================================
//
// CSV catalogs have two columns, code and name. A header row is optional: if
// the first code cell is not numeric the row is treated as a header.
//
//   code,name
//   850,Purchase Order
//   810,Invoice
//
// =============================================================================

package catalog

import (
	"bufio"
	"encoding/csv"
	"fmt"
	"io"
	"os"
	"strings"
)

// LoadCSVFile opens path and reads it with LoadCSV.
func LoadCSVFile(path string) (*Catalog, error) {
	file, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("failed to open catalog file: %w", err)
	}
	defer file.Close()

	c, err := LoadCSV(bufio.NewReader(file))
	if err != nil {
		return nil, fmt.Errorf("failed to load catalog %s: %w", path, err)
	}
	return c, nil
}

// LoadCSV reads a code,name catalog.
//
// RETURNS:
//   - The catalog, or an error when the CSV is malformed or a row has a code
//     without a name.
func LoadCSV(r io.Reader) (*Catalog, error) {
	reader := csv.NewReader(r)
	configureReader(reader)

	records, err := reader.ReadAll()
	if err != nil {
		return nil, fmt.Errorf("failed to read CSV: %w", err)
	}

	names := make(map[string]string, len(records))
	for i, record := range records {
		if isRowEmpty(record) {
			continue
		}
		code := cell(record, 0)
		if i == 0 && !isNumeric(code) {
			continue
		}
		name := cell(record, 1)
		if code == "" {
			continue
		}
		if name == "" {
			return nil, fmt.Errorf("row %d: code %s has no name", i+1, code)
		}
		names[code] = name
	}

	return New(names), nil
}

// configureReader applies the catalog CSV dialect.
func configureReader(reader *csv.Reader) {
	// Rows may carry extra columns such as notes.
	reader.FieldsPerRecord = -1
	reader.LazyQuotes = true
	reader.TrimLeadingSpace = true
	reader.Comment = '#'
}

// =============================================================================
// HELPER FUNCTIONS
// =============================================================================

// cell returns the trimmed value at index, or "" when the row is shorter.
func cell(row []string, index int) string {
	if index < len(row) {
		return strings.TrimSpace(row[index])
	}
	return ""
}

// isRowEmpty checks if a row contains only empty cells.
func isRowEmpty(row []string) bool {
	for _, c := range row {
		if strings.TrimSpace(c) != "" {
			return false
		}
	}
	return true
}

func isNumeric(s string) bool {
	if s == "" {
		return false
	}
	for _, r := range s {
		if r < '0' || r > '9' {
			return false
		}
	}
	return true
}
