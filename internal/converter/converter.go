// =============================================================================
// X12 EDI Parser - Converter Module
// =============================================================================
//
// This module contains the per-file pipeline. It takes one X12 file from raw
// bytes to a written output file.
//
// CONVERSION PIPELINE:
//   1. Read the input file
//   2. Parse it into interchanges, groups and transactions
//   3. Run the envelope control checks (if enabled)
//   4. Render the document (XML, XLSX or nothing)
//   5. Write the output file
//   6. Archive the processed files (if enabled)
//
// CONCURRENCY:
//   A Converter handles exactly one file and shares nothing mutable with
//   other converters, so a batch runs one per goroutine. The catalog passed
//   in Dependencies is read-only.
//
// =============================================================================

package converter

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/ginjaninja78/x12-edi-parser/internal/catalog"
	"github.com/ginjaninja78/x12-edi-parser/internal/config"
	"github.com/ginjaninja78/x12-edi-parser/internal/logging"
	"github.com/ginjaninja78/x12-edi-parser/internal/validation"
	"github.com/ginjaninja78/x12-edi-parser/internal/xlsxwriter"
	"github.com/ginjaninja78/x12-edi-parser/internal/xmlwriter"
	"github.com/ginjaninja78/x12-edi-parser/pkg/utils"
	"github.com/ginjaninja78/x12-edi-parser/pkg/x12"
)

// Error types recorded in error logs.
const (
	ErrorTypeRead       = "read error"
	ErrorTypeParse      = "parse error"
	ErrorTypeValidation = "control check"
	ErrorTypeOutput     = "output error"
)

// =============================================================================
// RESULT STRUCTURE
// =============================================================================

// Result represents the outcome of processing a single file.
type Result struct {
	// FilePath is the path to the input file that was processed.
	FilePath string

	// OutputFile is the path to the generated file. Empty if processing
	// failed, the output format is "none", or the run was a dry run.
	OutputFile string

	// ArchivePath is where the input file was archived, if it was.
	ArchivePath string

	// Success indicates whether the processing was successful.
	Success bool

	// Error contains the error if processing failed.
	Error error

	// ErrorType classifies Error for the error log.
	ErrorType string

	// Warnings holds the control check findings.
	Warnings []*validation.ValidationError

	// Stats contains processing statistics.
	Stats ProcessingStats
}

// ProcessingStats contains statistics about the processing.
type ProcessingStats struct {
	Interchanges       int
	FunctionalGroups   int
	Transactions       int
	Segments           int
	ValidationWarnings int

	// ProcessingTime is the time taken to process the file.
	ProcessingTime time.Duration
}

// =============================================================================
// CONVERTER STRUCTURE
// =============================================================================

// Dependencies are the shared collaborators of a Converter.
type Dependencies struct {
	// Catalog names transaction sets. Nil names every set "unidentified".
	Catalog *catalog.Catalog

	// Logger receives progress messages. Nil discards them.
	Logger logging.Logger

	// Files handles output naming and archival. Nil builds one from the
	// configuration.
	Files *utils.FileManager
}

// Converter handles the conversion of a single X12 file.
type Converter struct {
	path   string
	config *config.MainConfig
	names  *catalog.Catalog
	logger logging.Logger
	files  *utils.FileManager
	dryRun bool
}

// =============================================================================
// CONSTRUCTOR
// =============================================================================

// New creates a new Converter instance.
//
// PARAMETERS:
//   - path: The path to the input X12 file.
//   - cfg: The main application configuration.
//   - deps: Shared collaborators; zero values get defaults.
func New(path string, cfg *config.MainConfig, deps Dependencies) *Converter {
	c := &Converter{
		path:   path,
		config: cfg,
		names:  deps.Catalog,
		logger: deps.Logger,
		files:  deps.Files,
	}
	if c.logger == nil {
		c.logger = logging.Discard()
	}
	if c.files == nil {
		c.files = NewFileManager(cfg)
	}
	return c
}

// NewFileManager builds the FileManager described by the configuration.
func NewFileManager(cfg *config.MainConfig) *utils.FileManager {
	fm := utils.NewFileManager(cfg.InputDir, cfg.OutputDir, cfg.InputArchiveDir, cfg.OutputArchiveDir, cfg.LogDir)
	fm.ArchiveOnSuccess = cfg.Archive
	fm.UseDateSubdirs = cfg.ArchiveByDate
	return fm
}

// SetDryRun makes Run stop after rendering: nothing is written or archived.
func (c *Converter) SetDryRun(dryRun bool) {
	c.dryRun = dryRun
}

// =============================================================================
// MAIN PROCESSING FUNCTION
// =============================================================================

// Run executes the conversion pipeline for the file.
//
// RETURNS:
//   - A Result struct containing the outcome of the processing.
func (c *Converter) Run() (result Result) {
	startTime := time.Now()
	result = Result{FilePath: c.path}
	defer func() {
		result.Stats.ProcessingTime = time.Since(startTime)
	}()

	c.logger.Info("processing file", "file", c.path)

	// =========================================================================
	// STEP 1-2: READ AND PARSE
	// =========================================================================

	doc, err := c.Parse()
	if err != nil {
		result.Error = err
		result.ErrorType = classify(err)
		return result
	}

	result.Stats.Interchanges = len(doc.Interchanges)
	result.Stats.FunctionalGroups = doc.FunctionalGroupCount()
	result.Stats.Transactions = doc.TransactionCount()
	result.Stats.Segments = doc.SegmentCount()

	c.logger.Debug("parsed document",
		"file", c.path,
		"interchanges", result.Stats.Interchanges,
		"groups", result.Stats.FunctionalGroups,
		"transactions", result.Stats.Transactions)

	// =========================================================================
	// STEP 3: CONTROL CHECKS
	// =========================================================================

	if checks := c.Check(doc); checks != nil {
		result.Warnings = checks.Errors
		result.Stats.ValidationWarnings = len(checks.Errors)

		for _, finding := range checks.Errors {
			c.logger.Warn("control check finding", "file", c.path, "finding", finding.Error())
		}

		if !checks.IsValid {
			result.Error = fmt.Errorf("control checks failed with %d error(s)", checks.ErrorCount)
			result.ErrorType = ErrorTypeValidation
			return result
		}
	}

	// =========================================================================
	// STEP 4: RENDER
	// =========================================================================

	data, ext, err := c.Render(doc)
	if err != nil {
		result.Error = err
		result.ErrorType = ErrorTypeOutput
		return result
	}

	if c.dryRun {
		c.logger.Info("dry run, nothing written", "file", c.path, "bytes", len(data))
		result.Success = true
		return result
	}

	// =========================================================================
	// STEP 5: WRITE OUTPUT FILE
	// =========================================================================

	if data != nil {
		outputPath, err := c.writeOutput(data, ext)
		if err != nil {
			result.Error = fmt.Errorf("failed to write output: %w", err)
			result.ErrorType = ErrorTypeOutput
			return result
		}
		result.OutputFile = outputPath
		c.logger.Info("wrote output", "file", c.path, "output", outputPath)
	}

	// =========================================================================
	// STEP 6: ARCHIVE FILES
	// =========================================================================

	archivePath, err := c.archiveFiles(result.OutputFile)
	if err != nil {
		// The output is already written; archival problems don't fail the file.
		c.logger.Warn("failed to archive files", "file", c.path, "error", err)
	}
	result.ArchivePath = archivePath

	result.Success = true
	return result
}

// =============================================================================
// PIPELINE STAGES
// =============================================================================

// Parse reads and parses the input file using the configured delimiters and
// the catalog.
func (c *Converter) Parse() (*x12.Document, error) {
	options, err := c.config.Parser.ParseOptions()
	if err != nil {
		return nil, fmt.Errorf("invalid parser settings: %w", err)
	}
	if c.names != nil {
		options.Names = c.names
	}

	data, err := os.ReadFile(c.path)
	if err != nil {
		return nil, &readError{err: fmt.Errorf("failed to read input: %w", err)}
	}

	doc, err := x12.ParseWithOptions(string(data), options)
	if err != nil {
		return nil, fmt.Errorf("failed to parse X12: %w", err)
	}
	return doc, nil
}

// Check runs the envelope control checks. It returns nil when they are
// disabled.
func (c *Converter) Check(doc *x12.Document) *validation.ValidationResult {
	if !c.config.Validation.ControlChecks {
		return nil
	}
	validator := validation.NewValidatorWithOptions(validation.ValidationOptions{
		TreatWarningsAsErrors: c.config.Validation.TreatWarningsAsErrors,
	})
	return validator.ValidateDocument(doc)
}

// Render produces the configured output format.
//
// RETURNS:
//   - The rendered bytes, nil for format "none".
//   - The file extension for the output.
//   - An error if rendering fails.
func (c *Converter) Render(doc *x12.Document) ([]byte, string, error) {
	switch c.config.Output.Format {
	case "xml":
		options := xmlwriter.DefaultGenerateOptions()
		options.Indent = c.config.Output.Indent
		options.IncludeXMLDeclaration = c.config.Output.IncludeXMLDeclaration
		options.SplitComponents = c.config.Output.SplitComponents
		options.RootAttributes["source"] = filepath.Base(c.path)

		data, err := xmlwriter.GenerateWithOptions(doc, options)
		if err != nil {
			return nil, "", fmt.Errorf("failed to generate XML: %w", err)
		}
		return data, ".xml", nil

	case "xlsx":
		data, err := xlsxwriter.Generate(doc)
		if err != nil {
			return nil, "", fmt.Errorf("failed to generate XLSX: %w", err)
		}
		return data, ".xlsx", nil

	case "none":
		return nil, "", nil

	default:
		return nil, "", fmt.Errorf("unsupported output format: %q", c.config.Output.Format)
	}
}

// writeOutput writes the rendered document to the output directory under a
// name built from OutputNameFormat.
func (c *Converter) writeOutput(data []byte, ext string) (string, error) {
	source := strings.TrimSuffix(filepath.Base(c.path), filepath.Ext(c.path))
	fileName := utils.GenerateOutputFileName(c.config.OutputNameFormat, ext, map[string]string{
		"source": source,
		"format": c.config.Output.Format,
	})
	outputPath := filepath.Join(c.files.OutputDir, fileName)

	if err := os.WriteFile(outputPath, data, 0644); err != nil {
		return "", fmt.Errorf("failed to write file: %w", err)
	}

	return outputPath, nil
}

// archiveFiles moves the input to the input archive and copies the output,
// if any, to the output archive.
//
// RETURNS:
//   - The archived input path, or "" when archival is disabled.
func (c *Converter) archiveFiles(outputPath string) (string, error) {
	if !c.files.ArchiveOnSuccess {
		return "", nil
	}

	archivePath, err := c.files.ArchiveInputFile(c.path)
	if err != nil {
		return "", fmt.Errorf("failed to archive input file: %w", err)
	}

	if outputPath != "" {
		if _, err := c.files.ArchiveOutputFile(outputPath); err != nil {
			return archivePath, fmt.Errorf("failed to archive output file: %w", err)
		}
	}

	return archivePath, nil
}

// =============================================================================
// ERROR REPORTING
// =============================================================================

// readError marks failures to read the input file.
type readError struct {
	err error
}

func (e *readError) Error() string { return e.err.Error() }
func (e *readError) Unwrap() error { return e.err }

func classify(err error) string {
	var re *readError
	if errors.As(err, &re) {
		return ErrorTypeRead
	}
	return ErrorTypeParse
}

// ErrorEntries converts a result's failure and control check findings to
// error log entries.
func ErrorEntries(result Result) []utils.ErrorLogEntry {
	now := time.Now()
	fileName := filepath.Base(result.FilePath)

	var entries []utils.ErrorLogEntry

	if result.Error != nil {
		entry := utils.ErrorLogEntry{
			Timestamp:    now,
			FileName:     fileName,
			ErrorType:    result.ErrorType,
			ErrorMessage: result.Error.Error(),
		}

		var pe *x12.ParseError
		if errors.As(result.Error, &pe) {
			entry.Segment = pe.Segment
			entry.SegmentID = pe.Abbreviation
			if pe.Level != x12.LevelNone {
				entry.Level = pe.Level.String()
			}
		}
		entries = append(entries, entry)
	}

	for _, finding := range result.Warnings {
		entries = append(entries, utils.ErrorLogEntry{
			Timestamp:     now,
			FileName:      fileName,
			ErrorType:     ErrorTypeValidation,
			ErrorMessage:  finding.Error(),
			SegmentID:     finding.Rule,
			Level:         finding.Level.String(),
			ControlNumber: finding.ControlNumber,
		})
	}

	return entries
}
