// =============================================================================
// X12 EDI Parser - Tokenizer
// =============================================================================
//
// The tokenizer splits raw X12 text into segments and each segment into its
// element tokens:
//
//   "ST*850*000000001~BEG*00*SA~"  ->  ["ST" "850" "000000001"]
//                                      ["BEG" "00" "SA"]
//
// Tokens are trimmed of surrounding whitespace, so line breaks after a
// segment terminator are harmless. Abbreviations are never checked against a
// vocabulary.
//
// USAGE:
//   tok := NewTokenizer(input, delimiters)
//   for tok.Next() {
//       tokens := tok.Tokens()
//       // ...
//   }
//   if err := tok.Err(); err != nil {
//       return err
//   }
//
// =============================================================================

package x12

import (
	"strings"
	"unicode/utf8"
)

// SegmentTokens is the ordered list of trimmed tokens making up one segment.
// The first token is the segment abbreviation.
type SegmentTokens []string

// Tokenizer is a forward-only scanner over the segments of an input buffer.
// It cannot be restarted; create a new Tokenizer to scan again.
type Tokenizer struct {
	input      string
	delimiters Delimiters
	pos        int
	index      int
	tokens     SegmentTokens
	err        error
	done       bool
}

// NewTokenizer creates a tokenizer over input using the given delimiters.
func NewTokenizer(input string, delimiters Delimiters) *Tokenizer {
	return &Tokenizer{
		input:      input,
		delimiters: delimiters,
	}
}

// Next advances to the next segment. It returns false at end of input or
// after an error; check Err to tell the two apart.
func (t *Tokenizer) Next() bool {
	if t.done || t.err != nil {
		return false
	}
	if t.pos >= len(t.input) {
		t.done = true
		return false
	}

	rest := t.input[t.pos:]
	raw := rest
	last := true
	if end := strings.IndexRune(rest, t.delimiters.Segment); end >= 0 {
		raw = rest[:end]
		last = false
		t.pos += end + utf8.RuneLen(t.delimiters.Segment)
	} else {
		t.pos = len(t.input)
	}

	if strings.TrimSpace(raw) == "" {
		// Whitespace after the final terminator is not a segment.
		if last {
			t.done = true
			return false
		}
		t.index++
		pe := newParseError(ErrMalformedSegment, LevelNone, nil, "segment has no tokens")
		pe.Segment = t.index
		t.err = pe
		return false
	}

	t.index++
	tokens := strings.Split(raw, string(t.delimiters.Element))
	for i := range tokens {
		tokens[i] = strings.TrimSpace(tokens[i])
	}
	t.tokens = tokens
	return true
}

// Tokens returns the tokens of the current segment.
func (t *Tokenizer) Tokens() SegmentTokens {
	return t.tokens
}

// Index returns the 1-based position of the current segment.
func (t *Tokenizer) Index() int {
	return t.index
}

// Err returns the error that stopped the scan, if any.
func (t *Tokenizer) Err() error {
	return t.err
}

// Tokenize scans the whole input and returns every segment's tokens.
func Tokenize(input string, delimiters Delimiters) ([]SegmentTokens, error) {
	var segments []SegmentTokens
	tok := NewTokenizer(input, delimiters)
	for tok.Next() {
		segments = append(segments, tok.Tokens())
	}
	if err := tok.Err(); err != nil {
		return nil, err
	}
	return segments, nil
}
