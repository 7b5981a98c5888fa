package x12

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestTokenize(t *testing.T) {
	tests := []struct {
		name     string
		input    string
		expected []SegmentTokens
	}{
		{
			name:  "single segment",
			input: "ST*850*000000001~",
			expected: []SegmentTokens{
				{"ST", "850", "000000001"},
			},
		},
		{
			name:  "tokens are trimmed",
			input: "  BEG * 00 *SA~\n  REF*VR*54321 ~\n",
			expected: []SegmentTokens{
				{"BEG", "00", "SA"},
				{"REF", "VR", "54321"},
			},
		},
		{
			name:  "empty elements are kept",
			input: "BEG*****~",
			expected: []SegmentTokens{
				{"BEG", "", "", "", "", ""},
			},
		},
		{
			name:  "single token segment passes the tokenizer",
			input: "BEG~",
			expected: []SegmentTokens{
				{"BEG"},
			},
		},
		{
			name:  "unterminated final segment",
			input: "GE*1*1~IEA*1*1",
			expected: []SegmentTokens{
				{"GE", "1", "1"},
				{"IEA", "1", "1"},
			},
		},
		{
			name:     "empty input",
			input:    "",
			expected: nil,
		},
		{
			name:     "only trailing whitespace",
			input:    "\r\n  ",
			expected: nil,
		},
	}

	for _, test := range tests {
		t.Run(test.name, func(t *testing.T) {
			segments, err := Tokenize(test.input, DefaultDelimiters())
			require.NoError(t, err)
			assert.Equal(t, test.expected, segments)
		})
	}
}

func TestTokenizer_EmptySegment(t *testing.T) {
	tok := NewTokenizer("ST*850*1~~SE*2*1~", DefaultDelimiters())

	require.True(t, tok.Next())
	assert.Equal(t, 1, tok.Index())
	assert.Equal(t, SegmentTokens{"ST", "850", "1"}, tok.Tokens())

	assert.False(t, tok.Next())
	require.Error(t, tok.Err())
	assert.ErrorIs(t, tok.Err(), ErrMalformedSegment)

	var pe *ParseError
	require.ErrorAs(t, tok.Err(), &pe)
	assert.Equal(t, 2, pe.Segment)

	// The scanner does not resume after an error.
	assert.False(t, tok.Next())
}

func TestTokenizer_IsNotRestartable(t *testing.T) {
	tok := NewTokenizer("A*1~B*2~", DefaultDelimiters())

	count := 0
	for tok.Next() {
		count++
	}
	require.NoError(t, tok.Err())
	assert.Equal(t, 2, count)
	assert.False(t, tok.Next())
	assert.Equal(t, 2, tok.Index())
}

func TestTokenizer_MultiByteDelimiters(t *testing.T) {
	d := Delimiters{Element: '§', SubElement: '¦', Segment: '¶'}
	segments, err := Tokenize("ST§850§1¶BEG§00§SA¶", d)
	require.NoError(t, err)
	assert.Equal(t, []SegmentTokens{
		{"ST", "850", "1"},
		{"BEG", "00", "SA"},
	}, segments)
}
