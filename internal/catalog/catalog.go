// =============================================================================
// X12 EDI Parser - Transaction Set Catalog
// =============================================================================
//
// The catalog maps transaction set identifier codes (ST01) to display names:
//
//   | Code | Name                             |
//   |------|----------------------------------|
//   | 100  | Insurance Plan Description       |
//   | 850  | Purchase Order                   |
//   | 999  | Implementation Acknowledgment    |
//
// A Catalog is read-only once built and is safe to share between goroutines.
// It satisfies x12.NameLookup, so it is handed straight to the parser.
//
// SOURCES:
//   - Default(): the built-in list of ASC X12 transaction sets
//   - LoadCSV:   a two-column code,name file
//   - LoadXLSX:  a sheet in an Excel workbook
//
// CUSTOMIZATION:
//   - Point catalog.path in the config at your own CSV or XLSX file
//   - Set catalog.replace_defaults to drop the built-in names entirely
//
// =============================================================================

package catalog

import (
	"bytes"
	_ "embed"
	"fmt"
	"path/filepath"
	"sort"
	"strings"
	"sync"

	"github.com/ginjaninja78/x12-edi-parser/pkg/x12"
)

//go:embed data/transaction_sets.csv
var defaultCSV []byte

// Catalog is an immutable code -> name table.
type Catalog struct {
	names map[string]string
}

var _ x12.NameLookup = (*Catalog)(nil)

// New builds a catalog from a map. The map is copied; codes and names are
// trimmed and entries with an empty code are skipped.
func New(names map[string]string) *Catalog {
	c := &Catalog{names: make(map[string]string, len(names))}
	for code, name := range names {
		code = strings.TrimSpace(code)
		if code == "" {
			continue
		}
		c.names[code] = strings.TrimSpace(name)
	}
	return c
}

// Name implements x12.NameLookup. The lookup is exact.
func (c *Catalog) Name(code string) (string, bool) {
	if c == nil {
		return "", false
	}
	name, ok := c.names[code]
	return name, ok
}

// Len returns the number of codes in the catalog.
func (c *Catalog) Len() int {
	if c == nil {
		return 0
	}
	return len(c.names)
}

// Codes returns every code in ascending order.
func (c *Catalog) Codes() []string {
	if c == nil {
		return nil
	}
	codes := make([]string, 0, len(c.names))
	for code := range c.names {
		codes = append(codes, code)
	}
	sort.Strings(codes)
	return codes
}

// Merge returns a new catalog holding the entries of both catalogs. Names in
// other win on conflicting codes. Neither input is modified.
func (c *Catalog) Merge(other *Catalog) *Catalog {
	merged := &Catalog{names: make(map[string]string, c.Len()+other.Len())}
	if c != nil {
		for code, name := range c.names {
			merged.names[code] = name
		}
	}
	if other != nil {
		for code, name := range other.names {
			merged.names[code] = name
		}
	}
	return merged
}

// =============================================================================
// DEFAULT CATALOG
// =============================================================================

var loadDefault = sync.OnceValue(func() *Catalog {
	c, err := LoadCSV(bytes.NewReader(defaultCSV))
	if err != nil {
		panic(fmt.Sprintf("catalog: built-in transaction sets are invalid: %v", err))
	}
	return c
})

// Default returns the built-in catalog of ASC X12 transaction sets. It is
// parsed on first use and shared afterwards.
func Default() *Catalog {
	return loadDefault()
}

// =============================================================================
// LOADING BY FILE TYPE
// =============================================================================

// Options controls how a catalog file is read.
type Options struct {
	// XLSX is used for .xlsx files and ignored otherwise.
	XLSX XLSXOptions
}

// Load reads a catalog file, choosing the reader from the file extension.
//
// PARAMETERS:
//   - path: A .csv or .xlsx file.
//   - options: Reader options.
//
// RETURNS:
//   - The loaded catalog, or an error for unreadable files and unknown
//     extensions.
func Load(path string, options Options) (*Catalog, error) {
	switch strings.ToLower(filepath.Ext(path)) {
	case ".csv":
		return LoadCSVFile(path)
	case ".xlsx":
		return LoadXLSX(path, options.XLSX)
	default:
		return nil, fmt.Errorf("unsupported catalog file type: %s", path)
	}
}
