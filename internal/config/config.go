// =============================================================================
// X12 EDI Parser - Configuration Module
// =============================================================================
//
// This module loads the application configuration. A single file controls
// the batch directories, logging, the delimiters used when an input does not
// declare its own, the transaction set catalog and the output format.
//
// CONFIGURATION FILE FORMATS:
//   The format is chosen by file extension:
//   - .yaml / .yml : YAML
//   - .toml        : TOML
//
// Every setting has a default, so an empty file (or no file at all, see
// Default) is a working configuration.
//
// =============================================================================

package config

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"unicode/utf8"

	"github.com/BurntSushi/toml"
	"gopkg.in/yaml.v3"

	"github.com/ginjaninja78/x12-edi-parser/pkg/x12"
)

// =============================================================================
// MAIN CONFIGURATION STRUCTURE
// =============================================================================

// MainConfig holds the global application configuration.
type MainConfig struct {
	// =========================================================================
	// DIRECTORY SETTINGS
	// =========================================================================

	// InputDir is the directory scanned for X12 files.
	// Default: "./input"
	InputDir string `yaml:"input_dir" toml:"input_dir"`

	// OutputDir is the directory where generated files are written.
	// Default: "./output"
	OutputDir string `yaml:"output_dir" toml:"output_dir"`

	// InputArchiveDir receives input files after they were processed
	// successfully.
	// Default: "./input_archive"
	InputArchiveDir string `yaml:"input_archive_dir" toml:"input_archive_dir"`

	// OutputArchiveDir receives a copy of every generated file.
	// Default: "./output_archive"
	OutputArchiveDir string `yaml:"output_archive_dir" toml:"output_archive_dir"`

	// LogDir is where error logs and run summaries are written.
	// Default: "./logs"
	LogDir string `yaml:"log_dir" toml:"log_dir"`

	// InputExtensions lists the file extensions picked up from InputDir.
	// Default: [".edi", ".x12", ".txt"]
	InputExtensions []string `yaml:"input_extensions" toml:"input_extensions"`

	// =========================================================================
	// LOGGING SETTINGS
	// =========================================================================

	// LogLevel controls the verbosity of logging.
	// Valid values: "debug", "info", "warn", "error"
	// Default: "info"
	LogLevel string `yaml:"log_level" toml:"log_level"`

	// LogFormat selects the log encoding.
	// Valid values: "text", "json"
	// Default: "text"
	LogFormat string `yaml:"log_format" toml:"log_format"`

	// =========================================================================
	// OUTPUT SETTINGS
	// =========================================================================

	// OutputNameFormat defines the output file name, without extension.
	// Placeholders:
	//   {uuid}      - A random UUID
	//   {timestamp} - Current timestamp (YYYYMMDD_HHMMSS)
	//   {source}    - Input file name without extension
	//   {format}    - Output format ("xml" or "xlsx")
	//
	// Example: "{source}_{timestamp}"
	// Default: "{source}_{uuid}"
	OutputNameFormat string `yaml:"output_name_format" toml:"output_name_format"`

	// Output controls the generated file.
	Output OutputSettings `yaml:"output" toml:"output"`

	// =========================================================================
	// PROCESSING SETTINGS
	// =========================================================================

	// MaxConcurrency is the maximum number of files processed at once.
	// Default: 4
	MaxConcurrency int `yaml:"max_concurrency" toml:"max_concurrency"`

	// ContinueOnError keeps the batch going when a file fails.
	// Default: true (applied by Default; an explicit false is kept)
	ContinueOnError bool `yaml:"continue_on_error" toml:"continue_on_error"`

	// Archive moves processed inputs and copies outputs to the archive
	// directories.
	Archive bool `yaml:"archive" toml:"archive"`

	// ArchiveByDate files archived copies under YYYY/MM/DD subdirectories.
	ArchiveByDate bool `yaml:"archive_by_date" toml:"archive_by_date"`

	// ArchiveRetentionDays removes archived files older than this many days
	// at the start of a batch run. Zero keeps everything.
	ArchiveRetentionDays int `yaml:"archive_retention_days" toml:"archive_retention_days"`

	// Parser controls delimiter handling.
	Parser ParserSettings `yaml:"parser" toml:"parser"`

	// Catalog controls transaction set naming.
	Catalog CatalogSettings `yaml:"catalog" toml:"catalog"`

	// Validation controls the envelope control checks.
	Validation ValidationSettings `yaml:"validation" toml:"validation"`
}

// =============================================================================
// SECTION STRUCTURES
// =============================================================================

// ParserSettings holds the fallback delimiters. They are used as-is when
// FixedDelimiters is set, and otherwise only for inputs whose ISA segment
// cannot be sniffed.
type ParserSettings struct {
	// ElementSeparator separates elements. Default: "*"
	ElementSeparator string `yaml:"element_separator" toml:"element_separator"`

	// SubElementSeparator separates composite components. Default: ">"
	SubElementSeparator string `yaml:"sub_element_separator" toml:"sub_element_separator"`

	// SegmentTerminator ends each segment. Default: "~"
	SegmentTerminator string `yaml:"segment_terminator" toml:"segment_terminator"`

	// FixedDelimiters disables reading delimiters from the ISA segment.
	FixedDelimiters bool `yaml:"fixed_delimiters" toml:"fixed_delimiters"`
}

// CatalogSettings points at an optional custom transaction set catalog.
type CatalogSettings struct {
	// Path is a .csv or .xlsx file. Empty uses the built-in catalog only.
	Path string `yaml:"path" toml:"path"`

	// Sheet, CodeColumn and NameColumn describe an XLSX catalog.
	// Columns are 0-based. Defaults: first sheet, 0, 1.
	Sheet      string `yaml:"sheet" toml:"sheet"`
	CodeColumn int    `yaml:"code_column" toml:"code_column"`
	NameColumn int    `yaml:"name_column" toml:"name_column"`

	// ReplaceDefaults uses the custom catalog alone instead of layering it
	// over the built-in names.
	ReplaceDefaults bool `yaml:"replace_defaults" toml:"replace_defaults"`
}

// OutputSettings controls the generated file.
type OutputSettings struct {
	// Format is "xml", "xlsx" or "none". Default: "xml"
	Format string `yaml:"format" toml:"format"`

	// Indent is the XML indentation string. Default: two spaces
	Indent string `yaml:"indent" toml:"indent"`

	// IncludeXMLDeclaration writes <?xml ...?> at the top of XML output.
	IncludeXMLDeclaration bool `yaml:"include_xml_declaration" toml:"include_xml_declaration"`

	// SplitComponents writes composite elements as <component> children.
	SplitComponents bool `yaml:"split_components" toml:"split_components"`
}

// ValidationSettings controls the envelope control checks.
type ValidationSettings struct {
	// ControlChecks compares trailer counts and control numbers with their
	// headers and reports mismatches as warnings.
	ControlChecks bool `yaml:"control_checks" toml:"control_checks"`

	// TreatWarningsAsErrors fails a file that has control check warnings.
	TreatWarningsAsErrors bool `yaml:"treat_warnings_as_errors" toml:"treat_warnings_as_errors"`
}

// Valid enumerations.
var (
	validLogLevels     = []string{"debug", "info", "warn", "error"}
	validLogFormats    = []string{"text", "json"}
	validOutputFormats = []string{"xml", "xlsx", "none"}
)

// =============================================================================
// CONFIGURATION LOADING FUNCTIONS
// =============================================================================

// Default returns the configuration used when no config file exists.
func Default() *MainConfig {
	config := &MainConfig{
		ContinueOnError: true,
		Output: OutputSettings{
			IncludeXMLDeclaration: true,
		},
		Validation: ValidationSettings{
			ControlChecks: true,
		},
	}
	applyMainConfigDefaults(config)
	return config
}

// LoadMainConfig loads the main configuration from a YAML or TOML file.
//
// PARAMETERS:
//   - configPath: The path to the configuration file.
//
// RETURNS:
//   - A pointer to the MainConfig struct with defaults applied.
//   - An error if the file cannot be read, parsed or validated.
func LoadMainConfig(configPath string) (*MainConfig, error) {
	data, err := os.ReadFile(configPath)
	if err != nil {
		return nil, fmt.Errorf("failed to read config file: %w", err)
	}

	config, err := Parse(data, formatFromPath(configPath))
	if err != nil {
		return nil, fmt.Errorf("failed to load %s: %w", configPath, err)
	}
	return config, nil
}

// Parse decodes configuration data in the given format ("yaml" or "toml"),
// applies defaults and validates the result.
func Parse(data []byte, format string) (*MainConfig, error) {
	config := MainConfig{ContinueOnError: true}

	switch format {
	case "toml":
		if _, err := toml.Decode(string(data), &config); err != nil {
			return nil, fmt.Errorf("failed to parse config file: %w", err)
		}
	case "yaml":
		if err := yaml.Unmarshal(data, &config); err != nil {
			return nil, fmt.Errorf("failed to parse config file: %w", err)
		}
	default:
		return nil, fmt.Errorf("unsupported config format: %q", format)
	}

	applyMainConfigDefaults(&config)

	if err := validateMainConfig(&config); err != nil {
		return nil, fmt.Errorf("invalid configuration: %w", err)
	}

	return &config, nil
}

// formatFromPath determines the configuration format from the file
// extension. Unknown extensions are read as YAML.
func formatFromPath(path string) string {
	switch strings.ToLower(filepath.Ext(path)) {
	case ".toml":
		return "toml"
	default:
		return "yaml"
	}
}

// applyMainConfigDefaults sets default values for any unset configuration options.
func applyMainConfigDefaults(config *MainConfig) {
	if config.InputDir == "" {
		config.InputDir = "./input"
	}
	if config.OutputDir == "" {
		config.OutputDir = "./output"
	}
	if config.InputArchiveDir == "" {
		config.InputArchiveDir = "./input_archive"
	}
	if config.OutputArchiveDir == "" {
		config.OutputArchiveDir = "./output_archive"
	}
	if config.LogDir == "" {
		config.LogDir = "./logs"
	}
	if len(config.InputExtensions) == 0 {
		config.InputExtensions = []string{".edi", ".x12", ".txt"}
	}
	for i, ext := range config.InputExtensions {
		ext = strings.ToLower(strings.TrimSpace(ext))
		if ext != "" && !strings.HasPrefix(ext, ".") {
			ext = "." + ext
		}
		config.InputExtensions[i] = ext
	}
	if config.LogLevel == "" {
		config.LogLevel = "info"
	}
	if config.LogFormat == "" {
		config.LogFormat = "text"
	}
	if config.OutputNameFormat == "" {
		config.OutputNameFormat = "{source}_{uuid}"
	}
	if config.MaxConcurrency == 0 {
		config.MaxConcurrency = 4
	}

	defaults := x12.DefaultDelimiters()
	if config.Parser.ElementSeparator == "" {
		config.Parser.ElementSeparator = string(defaults.Element)
	}
	if config.Parser.SubElementSeparator == "" {
		config.Parser.SubElementSeparator = string(defaults.SubElement)
	}
	if config.Parser.SegmentTerminator == "" {
		config.Parser.SegmentTerminator = string(defaults.Segment)
	}

	if config.Catalog.CodeColumn == 0 && config.Catalog.NameColumn == 0 {
		config.Catalog.NameColumn = 1
	}

	if config.Output.Format == "" {
		config.Output.Format = "xml"
	}
	config.Output.Format = strings.ToLower(config.Output.Format)
	if config.Output.Indent == "" {
		config.Output.Indent = "  "
	}
}

// validateMainConfig validates the main configuration.
func validateMainConfig(config *MainConfig) error {
	if !contains(validLogLevels, strings.ToLower(config.LogLevel)) {
		return fmt.Errorf("log_level must be one of %v, got %q", validLogLevels, config.LogLevel)
	}
	if !contains(validLogFormats, strings.ToLower(config.LogFormat)) {
		return fmt.Errorf("log_format must be one of %v, got %q", validLogFormats, config.LogFormat)
	}
	if !contains(validOutputFormats, config.Output.Format) {
		return fmt.Errorf("output.format must be one of %v, got %q", validOutputFormats, config.Output.Format)
	}
	if config.MaxConcurrency < 1 {
		return fmt.Errorf("max_concurrency must be at least 1, got %d", config.MaxConcurrency)
	}
	if config.ArchiveRetentionDays < 0 {
		return fmt.Errorf("archive_retention_days must not be negative, got %d", config.ArchiveRetentionDays)
	}
	if config.Catalog.CodeColumn < 0 || config.Catalog.NameColumn < 0 {
		return fmt.Errorf("catalog columns must not be negative")
	}
	if config.Catalog.CodeColumn == config.Catalog.NameColumn {
		return fmt.Errorf("catalog code_column and name_column must differ")
	}

	if _, err := config.Parser.Delimiters(); err != nil {
		return fmt.Errorf("parser: %w", err)
	}

	return nil
}

// =============================================================================
// DERIVED SETTINGS
// =============================================================================

// Delimiters converts the configured separators to x12.Delimiters.
// Each separator must be exactly one character.
func (p ParserSettings) Delimiters() (x12.Delimiters, error) {
	element, err := singleRune("element_separator", p.ElementSeparator)
	if err != nil {
		return x12.Delimiters{}, err
	}
	sub, err := singleRune("sub_element_separator", p.SubElementSeparator)
	if err != nil {
		return x12.Delimiters{}, err
	}
	segment, err := singleRune("segment_terminator", p.SegmentTerminator)
	if err != nil {
		return x12.Delimiters{}, err
	}

	d := x12.Delimiters{Element: element, SubElement: sub, Segment: segment}
	if err := d.Validate(); err != nil {
		return x12.Delimiters{}, err
	}
	return d, nil
}

// ParseOptions builds the parser options for these settings. Names are left
// for the caller to fill in.
func (p ParserSettings) ParseOptions() (x12.ParseOptions, error) {
	d, err := p.Delimiters()
	if err != nil {
		return x12.ParseOptions{}, err
	}
	return x12.ParseOptions{
		Delimiters:      d,
		SniffDelimiters: !p.FixedDelimiters,
	}, nil
}

// =============================================================================
// HELPER FUNCTIONS
// =============================================================================

func singleRune(name, value string) (rune, error) {
	if utf8.RuneCountInString(value) != 1 {
		return 0, fmt.Errorf("%s must be a single character, got %q", name, value)
	}
	r, _ := utf8.DecodeRuneInString(value)
	return r, nil
}

func contains(values []string, value string) bool {
	for _, v := range values {
		if v == value {
			return true
		}
	}
	return false
}
