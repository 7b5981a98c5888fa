// =============================================================================
// X12 EDI Parser - Parse Errors
// =============================================================================
//
// Every failure returned by the parser is a *ParseError. The Kind field holds
// one of the sentinel errors below so callers can classify failures with
// errors.Is:
//
//   ErrMalformedSegment          - a segment is missing tokens
//   ErrMalformedTransactionStart - an ST segment lacks a code or control number
//   ErrStructural                - an envelope segment arrived in the wrong state
//   ErrUnterminatedEnvelope      - input ended with an envelope still open
//
// The parser stops at the first error; there is never a partial Document.
//
// =============================================================================

package x12

import (
	"errors"
	"fmt"
	"strings"
)

// =============================================================================
// ERROR KINDS
// =============================================================================

var (
	ErrMalformedSegment          = errors.New("malformed segment")
	ErrMalformedTransactionStart = errors.New("malformed transaction start")
	ErrStructural                = errors.New("structural error")
	ErrUnterminatedEnvelope      = errors.New("unterminated envelope")
)

// =============================================================================
// ENVELOPE LEVELS
// =============================================================================

// Level identifies one of the three envelope levels.
type Level int

const (
	// LevelNone is used for errors that are not tied to an envelope level.
	LevelNone Level = iota
	LevelInterchange
	LevelFunctionalGroup
	LevelTransaction
)

// String returns the human-readable name of the level.
func (l Level) String() string {
	switch l {
	case LevelInterchange:
		return "interchange"
	case LevelFunctionalGroup:
		return "functional group"
	case LevelTransaction:
		return "transaction"
	default:
		return "none"
	}
}

// =============================================================================
// PARSE ERROR
// =============================================================================

// ParseError describes the first condition that stopped a parse.
type ParseError struct {
	// Kind is one of the Err* sentinels in this package.
	Kind error

	// Segment is the 1-based position of the offending segment in the input.
	// Zero when the error was raised at end of input.
	Segment int

	// Level is the envelope level involved, or LevelNone.
	Level Level

	// Abbreviation is the offending segment's first token, if any.
	Abbreviation string

	// Tokens holds the raw tokens of the offending segment.
	Tokens []string

	// Message is a short description of what went wrong.
	Message string
}

// Error implements the error interface.
func (e *ParseError) Error() string {
	var b strings.Builder
	b.WriteString(e.Kind.Error())
	if e.Segment > 0 {
		fmt.Fprintf(&b, " at segment %d", e.Segment)
	}
	if e.Abbreviation != "" {
		fmt.Fprintf(&b, " (%s)", e.Abbreviation)
	}
	if e.Message != "" {
		b.WriteString(": ")
		b.WriteString(e.Message)
	}
	return b.String()
}

// Unwrap returns the error kind so errors.Is works against the sentinels.
func (e *ParseError) Unwrap() error {
	return e.Kind
}

// newParseError builds a ParseError for a token group. The abbreviation is
// taken from the first token when present.
func newParseError(kind error, level Level, tokens []string, format string, args ...any) *ParseError {
	pe := &ParseError{
		Kind:    kind,
		Level:   level,
		Tokens:  tokens,
		Message: fmt.Sprintf(format, args...),
	}
	if len(tokens) > 0 {
		pe.Abbreviation = tokens[0]
	}
	return pe
}

// IsMalformed reports whether err is a malformed segment or malformed
// transaction start error.
func IsMalformed(err error) bool {
	return errors.Is(err, ErrMalformedSegment) || errors.Is(err, ErrMalformedTransactionStart)
}
