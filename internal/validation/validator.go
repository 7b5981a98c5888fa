// =============================================================================
// X12 EDI Parser - Envelope Control Checks
// =============================================================================
//
// The parser records every trailer as it was sent and never cross-checks it.
// This module does the cross-checking, as a separate opt-in step:
//
//   | Rule  | Check                                                    |
//   |-------|----------------------------------------------------------|
//   | IEA01 | number of functional groups in the interchange           |
//   | IEA02 | equals ISA13, the interchange control number             |
//   | GE01  | number of transaction sets in the group                  |
//   | GE02  | equals GS06, the group control number                    |
//   | SE01  | number of segments in the transaction, ST and SE counted |
//   | SE02  | equals ST02, the transaction set control number          |
//
// ERROR HANDLING:
//   - Findings are collected, not returned as Go errors
//   - Every finding is a warning unless TreatWarningsAsErrors is set
//   - Each finding names the envelope it was found in
//
// =============================================================================

package validation

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/ginjaninja78/x12-edi-parser/pkg/x12"
)

// Severity values.
const (
	SeverityWarning = "warning"
	SeverityError   = "error"
)

// Rule identifiers.
const (
	RuleInterchangeGroupCount    = "IEA01"
	RuleInterchangeControlNumber = "IEA02"
	RuleGroupTransactionCount    = "GE01"
	RuleGroupControlNumber       = "GE02"
	RuleTransactionSegmentCount  = "SE01"
	RuleTransactionControlNumber = "SE02"
)

// transactionEnvelopeSegments is the number of envelope segments (ST and SE)
// counted by SE01.
const transactionEnvelopeSegments = 2

// =============================================================================
// VALIDATION ERROR TYPES
// =============================================================================

// ValidationError represents a single control check finding.
type ValidationError struct {
	// Severity is "warning" or "error".
	Severity string

	// Level is the envelope the finding belongs to.
	Level x12.Level

	// Rule is the trailer element that was checked, e.g. "SE01".
	Rule string

	// ControlNumber is the header control number of the envelope.
	ControlNumber string

	// Path locates the envelope, e.g. "interchange 1 / group 1 / transaction 2".
	Path string

	// Expected is the value derived from the header or contents.
	Expected string

	// Actual is the value found in the trailer.
	Actual string

	// Message is a human-readable description.
	Message string
}

// Error implements the error interface.
func (e *ValidationError) Error() string {
	return fmt.Sprintf("[%s] %s %s (%s): %s (expected '%s', found '%s')",
		strings.ToUpper(e.Severity),
		e.Rule,
		e.Level,
		e.Path,
		e.Message,
		e.Expected,
		e.Actual,
	)
}

// =============================================================================
// VALIDATION RESULT
// =============================================================================

// ValidationResult contains the results of validation.
type ValidationResult struct {
	// IsValid is true if there are no fatal findings.
	IsValid bool

	// Errors contains all findings, warnings included.
	Errors []*ValidationError

	// ErrorCount is the number of fatal findings.
	ErrorCount int

	// WarningCount is the number of warnings.
	WarningCount int

	// InterchangesChecked is the number of interchanges that were checked.
	InterchangesChecked int
}

// =============================================================================
// VALIDATOR
// =============================================================================

// Validator runs control checks over parsed documents.
type Validator struct {
	options ValidationOptions
}

// ValidationOptions contains options for validation.
type ValidationOptions struct {
	// StopOnFirstError stops after the first fatal finding.
	// Default: false
	StopOnFirstError bool

	// TreatWarningsAsErrors reports every finding with severity "error".
	// Default: false
	TreatWarningsAsErrors bool
}

// DefaultValidationOptions returns the default validation options.
func DefaultValidationOptions() ValidationOptions {
	return ValidationOptions{}
}

// NewValidator creates a Validator with the default options.
func NewValidator() *Validator {
	return NewValidatorWithOptions(DefaultValidationOptions())
}

// NewValidatorWithOptions creates a Validator with custom options.
func NewValidatorWithOptions(options ValidationOptions) *Validator {
	return &Validator{options: options}
}

// Validate runs every check with the default options and returns the
// findings.
func Validate(doc *x12.Document) []*ValidationError {
	return NewValidator().ValidateDocument(doc).Errors
}

// ValidateDocument checks every envelope in the document.
func (v *Validator) ValidateDocument(doc *x12.Document) *ValidationResult {
	result := &ValidationResult{
		IsValid: true,
		Errors:  make([]*ValidationError, 0),
	}
	if doc == nil {
		return result
	}

	for i := range doc.Interchanges {
		path := fmt.Sprintf("interchange %d", i+1)
		if v.collect(result, v.ValidateInterchange(&doc.Interchanges[i], path)) {
			return result
		}
	}

	return result
}

// collect adds findings to result and reports whether validation should
// stop.
func (v *Validator) collect(result *ValidationResult, findings []*ValidationError) bool {
	for _, finding := range findings {
		result.Errors = append(result.Errors, finding)

		if finding.Severity == SeverityError {
			result.ErrorCount++
			result.IsValid = false

			if v.options.StopOnFirstError {
				return true
			}
		} else {
			result.WarningCount++
		}
	}
	result.InterchangesChecked++
	return false
}

// ValidateInterchange checks an interchange and everything inside it.
func (v *Validator) ValidateInterchange(ic *x12.Interchange, path string) []*ValidationError {
	var findings []*ValidationError

	findings = append(findings, v.checkControlNumber(x12.LevelInterchange, RuleInterchangeControlNumber,
		path, ic.ControlNumber, ic.Trailer.ControlNumber)...)
	findings = append(findings, v.checkCount(x12.LevelInterchange, RuleInterchangeGroupCount,
		path, ic.ControlNumber, len(ic.FunctionalGroups), ic.Trailer.Count)...)

	for i := range ic.FunctionalGroups {
		groupPath := fmt.Sprintf("%s / group %d", path, i+1)
		findings = append(findings, v.ValidateGroup(&ic.FunctionalGroups[i], groupPath)...)
	}

	return findings
}

// ValidateGroup checks a functional group and its transactions.
func (v *Validator) ValidateGroup(group *x12.FunctionalGroup, path string) []*ValidationError {
	var findings []*ValidationError

	findings = append(findings, v.checkControlNumber(x12.LevelFunctionalGroup, RuleGroupControlNumber,
		path, group.ControlNumber, group.Trailer.ControlNumber)...)
	findings = append(findings, v.checkCount(x12.LevelFunctionalGroup, RuleGroupTransactionCount,
		path, group.ControlNumber, len(group.Transactions), group.Trailer.Count)...)

	for i := range group.Transactions {
		txPath := fmt.Sprintf("%s / transaction %d", path, i+1)
		findings = append(findings, v.ValidateTransaction(&group.Transactions[i], txPath)...)
	}

	return findings
}

// ValidateTransaction checks a transaction set's SE trailer.
func (v *Validator) ValidateTransaction(tx *x12.Transaction, path string) []*ValidationError {
	var findings []*ValidationError

	findings = append(findings, v.checkControlNumber(x12.LevelTransaction, RuleTransactionControlNumber,
		path, tx.ControlNumber, tx.Trailer.ControlNumber)...)
	findings = append(findings, v.checkCount(x12.LevelTransaction, RuleTransactionSegmentCount,
		path, tx.ControlNumber, len(tx.Segments)+transactionEnvelopeSegments, tx.Trailer.Count)...)

	return findings
}

// =============================================================================
// CHECKS
// =============================================================================

// checkControlNumber compares a header control number with its trailer.
// Numeric control numbers compare by value, so "1" matches "000000001".
func (v *Validator) checkControlNumber(level x12.Level, rule, path, header, trailer string) []*ValidationError {
	if sameControlNumber(header, trailer) {
		return nil
	}
	return []*ValidationError{v.newFinding(level, rule, path, header, header, trailer,
		fmt.Sprintf("%s control number does not match its header", level))}
}

// checkCount compares a declared count with the actual count.
func (v *Validator) checkCount(level x12.Level, rule, path, controlNumber string, actual int, declared string) []*ValidationError {
	expected := strconv.Itoa(actual)

	n, err := strconv.Atoi(strings.TrimSpace(declared))
	if err != nil {
		return []*ValidationError{v.newFinding(level, rule, path, controlNumber, expected, declared,
			"declared count is not a number")}
	}
	if n != actual {
		return []*ValidationError{v.newFinding(level, rule, path, controlNumber, expected, declared,
			fmt.Sprintf("declared count does not match the %s contents", level))}
	}
	return nil
}

func (v *Validator) newFinding(level x12.Level, rule, path, controlNumber, expected, actual, message string) *ValidationError {
	severity := SeverityWarning
	if v.options.TreatWarningsAsErrors {
		severity = SeverityError
	}
	return &ValidationError{
		Severity:      severity,
		Level:         level,
		Rule:          rule,
		ControlNumber: controlNumber,
		Path:          path,
		Expected:      expected,
		Actual:        actual,
		Message:       message,
	}
}

func sameControlNumber(a, b string) bool {
	a, b = strings.TrimSpace(a), strings.TrimSpace(b)
	if a == b {
		return true
	}
	na, errA := strconv.ParseUint(a, 10, 64)
	nb, errB := strconv.ParseUint(b, 10, 64)
	return errA == nil && errB == nil && na == nb
}

// =============================================================================
// REPORTING
// =============================================================================

// FormatErrors formats findings for display or logging.
//
// PARAMETERS:
//   - errors: The findings to format.
//
// RETURNS:
//   - A formatted string containing all findings.
func FormatErrors(errors []*ValidationError) string {
	if len(errors) == 0 {
		return "No control check findings."
	}

	var builder strings.Builder

	builder.WriteString(fmt.Sprintf("Control checks completed with %d finding(s):\n\n", len(errors)))

	for i, err := range errors {
		builder.WriteString(fmt.Sprintf("%d. %s\n", i+1, err.Error()))
	}

	return builder.String()
}
