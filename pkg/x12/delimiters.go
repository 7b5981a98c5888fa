// =============================================================================
// X12 EDI Parser - Delimiters
// =============================================================================
//
// An X12 interchange declares its own delimiters inside the ISA segment:
//
//   ISA*00*          *00*          *ZZ*SENDER ... *00401*000000001*0*T*>~
//      ^                                                                ^^
//      element separator (4th character)            sub-element (ISA16) |
//                                                      segment terminator
//
// SniffDelimiters reads them from there. Inputs that do not begin with an ISA
// segment fall back to the caller's delimiters.
//
// =============================================================================

package x12

import (
	"fmt"
	"strings"
	"unicode"
	"unicode/utf8"
)

// Delimiters holds the three separator characters used by an interchange.
type Delimiters struct {
	// Element separates data elements within a segment. Default: '*'
	Element rune

	// SubElement separates components of a composite element. Default: '>'
	SubElement rune

	// Segment terminates each segment. Default: '~'
	Segment rune
}

// DefaultDelimiters returns the conventional X12 delimiters.
func DefaultDelimiters() Delimiters {
	return Delimiters{
		Element:    '*',
		SubElement: '>',
		Segment:    '~',
	}
}

// Validate checks that the element and segment delimiters are set, are not
// whitespace and that all three delimiters are distinct.
func (d Delimiters) Validate() error {
	if d.Element == 0 || d.Segment == 0 {
		return fmt.Errorf("element and segment delimiters are required")
	}
	for _, r := range []rune{d.Element, d.SubElement, d.Segment} {
		if r != 0 && unicode.IsSpace(r) && r != '\n' && r != '\r' {
			return fmt.Errorf("delimiter %q must not be whitespace", r)
		}
	}
	if d.Element == d.Segment || d.Element == d.SubElement || d.SubElement == d.Segment {
		return fmt.Errorf("delimiters must be distinct (element %q, sub-element %q, segment %q)",
			d.Element, d.SubElement, d.Segment)
	}
	return nil
}

// Components splits a composite element on the sub-element separator.
// An element without the separator is returned as a single component.
func (d Delimiters) Components(element string) []string {
	if d.SubElement == 0 {
		return []string{element}
	}
	return strings.Split(element, string(d.SubElement))
}

// isLeadingNoise matches whitespace and the UTF-8 byte order mark.
func isLeadingNoise(r rune) bool {
	return unicode.IsSpace(r) || r == '\uFEFF'
}

// isaElementCount is the number of element separators that precede ISA16.
const isaElementCount = 16

// SniffDelimiters extracts the delimiters from the interchange header at the
// start of input. The element separator is the character after "ISA"; the
// sub-element separator is the first character of ISA16 and the segment
// terminator is the character right after it.
//
// Walking the separators instead of reading fixed offsets also accepts ISA
// segments whose fixed-width fields were not padded.
//
// RETURNS:
//   - The sniffed delimiters and true, or fallback and false when input does
//     not start with a complete ISA header.
func SniffDelimiters(input string, fallback Delimiters) (Delimiters, bool) {
	s := strings.TrimLeftFunc(input, isLeadingNoise)
	if !strings.HasPrefix(s, "ISA") {
		return fallback, false
	}
	s = s[3:]

	element, size := utf8.DecodeRuneInString(s)
	if element == utf8.RuneError || size == 0 {
		return fallback, false
	}

	seen := 0
	for i, r := range s {
		if r != element {
			continue
		}
		seen++
		if seen < isaElementCount {
			continue
		}

		rest := s[i+size:]
		sub, subSize := utf8.DecodeRuneInString(rest)
		if subSize == 0 {
			return fallback, false
		}
		term, termSize := utf8.DecodeRuneInString(rest[subSize:])
		if termSize == 0 {
			return fallback, false
		}

		sniffed := Delimiters{Element: element, SubElement: sub, Segment: term}
		if sniffed.Validate() != nil {
			return fallback, false
		}
		return sniffed, true
	}

	return fallback, false
}
