// =============================================================================
// X12 EDI Parser - Document Builder
// =============================================================================
//
// This is the parser's entry point. It drives the tokenizer, classifies every
// segment by its abbreviation and dispatches it to the envelope assemblers:
//
//   ISA ─┬─ GS ─┬─ ST ── generic segments ── SE
//        │      └─ ... ── GE
//        └─ ... ── IEA
//
// PARSING PROCESS:
//   1. Determine delimiters (sniffed from ISA unless disabled)
//   2. Tokenize the input one segment at a time
//   3. Reject segments with too few tokens
//   4. Route envelope and generic segments to the open assembler
//   5. At end of input, require every envelope to be closed
//
// The first error stops the parse and no Document is returned.
//
// =============================================================================

package x12

import (
	"errors"
	"fmt"
	"io"
	"strings"
)

// =============================================================================
// DOCUMENT
// =============================================================================

// Document is the result of a parse: every interchange in arrival order.
type Document struct {
	// Delimiters are the delimiters the input was parsed with.
	Delimiters Delimiters

	// Interchanges holds the finished interchanges in arrival order.
	Interchanges []Interchange
}

// FunctionalGroupCount returns the number of functional groups in the document.
func (d *Document) FunctionalGroupCount() int {
	count := 0
	for _, interchange := range d.Interchanges {
		count += len(interchange.FunctionalGroups)
	}
	return count
}

// TransactionCount returns the number of transaction sets in the document.
func (d *Document) TransactionCount() int {
	count := 0
	for _, interchange := range d.Interchanges {
		for _, group := range interchange.FunctionalGroups {
			count += len(group.Transactions)
		}
	}
	return count
}

// SegmentCount returns the number of generic segments in the document.
func (d *Document) SegmentCount() int {
	count := 0
	for _, interchange := range d.Interchanges {
		for _, group := range interchange.FunctionalGroups {
			for _, transaction := range group.Transactions {
				count += len(transaction.Segments)
			}
		}
	}
	return count
}

// =============================================================================
// PARSE OPTIONS
// =============================================================================

// ParseOptions controls how input is parsed.
type ParseOptions struct {
	// Delimiters are used when sniffing is disabled or the input does not
	// start with an ISA segment.
	// Default: DefaultDelimiters()
	Delimiters Delimiters

	// SniffDelimiters reads the delimiters from the ISA segment.
	// Default: true
	SniffDelimiters bool

	// Names resolves transaction codes to display names. A nil lookup names
	// every transaction "unidentified".
	Names NameLookup
}

// DefaultParseOptions returns options that sniff delimiters and resolve no
// transaction names.
func DefaultParseOptions() ParseOptions {
	return ParseOptions{
		Delimiters:      DefaultDelimiters(),
		SniffDelimiters: true,
	}
}

// =============================================================================
// PARSE FUNCTIONS
// =============================================================================

// Parse parses input with the default options and the given name lookup.
func Parse(input string, names NameLookup) (*Document, error) {
	options := DefaultParseOptions()
	options.Names = names
	return ParseWithOptions(input, options)
}

// ParseReader reads r to the end and parses its contents.
func ParseReader(r io.Reader, options ParseOptions) (*Document, error) {
	data, err := io.ReadAll(r)
	if err != nil {
		return nil, fmt.Errorf("failed to read input: %w", err)
	}
	return ParseWithOptions(string(data), options)
}

// ParseWithOptions parses input into a Document.
//
// RETURNS:
//   - The Document, or nil and a *ParseError describing the first problem.
//     Non-parse problems (bad delimiters) are returned as plain errors.
func ParseWithOptions(input string, options ParseOptions) (*Document, error) {
	input = strings.TrimLeftFunc(input, isLeadingNoise)

	delimiters := options.Delimiters
	if delimiters == (Delimiters{}) {
		delimiters = DefaultDelimiters()
	}
	if options.SniffDelimiters {
		delimiters, _ = SniffDelimiters(input, delimiters)
	}
	if err := delimiters.Validate(); err != nil {
		return nil, fmt.Errorf("invalid delimiters: %w", err)
	}

	doc := &Document{
		Delimiters:   delimiters,
		Interchanges: []Interchange{},
	}
	interchanges := newInterchangeAssembler(options.Names)

	tok := NewTokenizer(input, delimiters)
	for tok.Next() {
		if err := dispatch(doc, &interchanges, tok.Tokens()); err != nil {
			return nil, atSegment(err, tok.Index())
		}
	}
	if err := tok.Err(); err != nil {
		return nil, err
	}

	if level := interchanges.openLevel(); level != LevelNone {
		return nil, &ParseError{
			Kind:    ErrUnterminatedEnvelope,
			Level:   level,
			Message: fmt.Sprintf("input ended with an open %s", level),
		}
	}

	return doc, nil
}

// =============================================================================
// DISPATCH
// =============================================================================

type segmentKind int

const (
	kindGeneric segmentKind = iota
	kindInterchangeStart
	kindInterchangeEnd
	kindGroupStart
	kindGroupEnd
	kindTransactionStart
	kindTransactionEnd
)

// classify maps an abbreviation to its segment kind. Matching is exact, so
// "st" is a generic segment.
func classify(abbreviation string) segmentKind {
	switch abbreviation {
	case InterchangeStart:
		return kindInterchangeStart
	case InterchangeEnd:
		return kindInterchangeEnd
	case GroupStart:
		return kindGroupStart
	case GroupEnd:
		return kindGroupEnd
	case TransactionStart:
		return kindTransactionStart
	case TransactionEnd:
		return kindTransactionEnd
	default:
		return kindGeneric
	}
}

// dispatch checks one segment's shape and hands it to the assemblers.
func dispatch(doc *Document, interchanges *interchangeAssembler, tokens SegmentTokens) error {
	kind := classify(tokens[0])

	if kind == kindTransactionStart && len(tokens) < 3 {
		return newParseError(ErrMalformedTransactionStart, LevelTransaction, tokens,
			"ST segment requires a code and a control number, got %d tokens", len(tokens))
	}
	if len(tokens) < 2 {
		return newParseError(ErrMalformedSegment, LevelNone, tokens,
			"at least two elements are required in a segment, got %d", len(tokens))
	}

	switch kind {
	case kindInterchangeStart:
		return interchanges.start(tokens)
	case kindInterchangeEnd:
		interchange, err := interchanges.end(tokens)
		if err != nil {
			return err
		}
		doc.Interchanges = append(doc.Interchanges, interchange)
		return nil
	default:
		return interchanges.route(kind, tokens)
	}
}

// atSegment records the segment position on a ParseError.
func atSegment(err error, index int) error {
	var pe *ParseError
	if errors.As(err, &pe) && pe.Segment == 0 {
		pe.Segment = index
	}
	return err
}
