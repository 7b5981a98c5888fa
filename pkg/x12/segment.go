// =============================================================================
// X12 EDI Parser - Generic Segments
// =============================================================================

package x12

import "strings"

// GenericSegment is any segment that is not an envelope marker: an
// abbreviation followed by its elements. The abbreviation is kept verbatim.
type GenericSegment struct {
	// Abbreviation is the segment identifier, e.g. "BEG" or "N1".
	Abbreviation string

	// Elements holds the trimmed data elements in order. Empty elements are
	// kept as empty strings.
	Elements []string
}

// ParseSegment builds a GenericSegment from one segment's tokens. The first
// token becomes the abbreviation and the rest become the elements.
//
// At least two tokens are required: an abbreviation and one element.
func ParseSegment(tokens SegmentTokens) (GenericSegment, error) {
	if len(tokens) < 2 {
		return GenericSegment{}, newParseError(ErrMalformedSegment, LevelNone, tokens,
			"at least two elements are required in a segment, got %d", len(tokens))
	}

	elements := make([]string, len(tokens)-1)
	for i, token := range tokens[1:] {
		elements[i] = strings.TrimSpace(token)
	}

	return GenericSegment{
		Abbreviation: strings.TrimSpace(tokens[0]),
		Elements:     elements,
	}, nil
}

// Element returns the element at the 1-based X12 position (BEG03 is
// Element(3)), or "" when the segment is shorter than that.
func (s GenericSegment) Element(pos int) string {
	if pos < 1 || pos > len(s.Elements) {
		return ""
	}
	return s.Elements[pos-1]
}

// tokenAt returns tokens[i] or "" when the segment is too short.
func tokenAt(tokens SegmentTokens, i int) string {
	if i < len(tokens) {
		return tokens[i]
	}
	return ""
}
