package x12

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParseSegment(t *testing.T) {
	tokens := SegmentTokens{"GS", "PO", "SENDERGS", "007326879", "20020226", "1534", "1", "X", "004010"}

	segment, err := ParseSegment(tokens)
	require.NoError(t, err)

	assert.Equal(t, GenericSegment{
		Abbreviation: "GS",
		Elements:     []string{"PO", "SENDERGS", "007326879", "20020226", "1534", "1", "X", "004010"},
	}, segment)
}

func TestParseSegment_TrimsTokens(t *testing.T) {
	segment, err := ParseSegment(SegmentTokens{" N1 ", " BT", "BUYSNACKS INC. "})
	require.NoError(t, err)
	assert.Equal(t, "N1", segment.Abbreviation)
	assert.Equal(t, []string{"BT", "BUYSNACKS INC."}, segment.Elements)
}

func TestParseSegment_TooFewTokens(t *testing.T) {
	for _, tokens := range []SegmentTokens{nil, {}, {"BEG"}} {
		_, err := ParseSegment(tokens)
		require.Error(t, err)
		assert.ErrorIs(t, err, ErrMalformedSegment)
	}
}

func TestParseSegment_DoesNotAliasTokens(t *testing.T) {
	tokens := SegmentTokens{"REF", "VR", "54321"}
	segment, err := ParseSegment(tokens)
	require.NoError(t, err)

	tokens[1] = "changed"
	assert.Equal(t, "VR", segment.Elements[0])
}

func TestGenericSegment_Element(t *testing.T) {
	segment := GenericSegment{Abbreviation: "DTM", Elements: []string{"002", "19971219"}}

	assert.Equal(t, "002", segment.Element(1))
	assert.Equal(t, "19971219", segment.Element(2))
	assert.Equal(t, "", segment.Element(3))
	assert.Equal(t, "", segment.Element(0))
}
