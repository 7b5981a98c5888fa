package x12

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestSniffDelimiters(t *testing.T) {
	fallback := DefaultDelimiters()

	tests := []struct {
		name     string
		input    string
		expected Delimiters
		sniffed  bool
	}{
		{
			name:     "standard fixed-width header",
			input:    isa + gs,
			expected: Delimiters{Element: '*', SubElement: '>', Segment: '~'},
			sniffed:  true,
		},
		{
			name:     "alternate delimiters",
			input:    "ISA^00^          ^00^          ^ZZ^A              ^ZZ^B              ^240101^1200^U^00401^000000001^0^P^:'GS^PO'",
			expected: Delimiters{Element: '^', SubElement: ':', Segment: '\''},
			sniffed:  true,
		},
		{
			name:     "unpadded header with leading whitespace and BOM",
			input:    "\uFEFF\n  ISA*00**00**ZZ*A*ZZ*B*240101*1200*U*00401*1*0*P*!|GS*PO|",
			expected: Delimiters{Element: '*', SubElement: '!', Segment: '|'},
			sniffed:  true,
		},
		{
			name:     "not an interchange",
			input:    "GS*PO*A*B~",
			expected: fallback,
			sniffed:  false,
		},
		{
			name:     "truncated header",
			input:    "ISA*00*          *00",
			expected: fallback,
			sniffed:  false,
		},
		{
			name:     "header ends at ISA16",
			input:    "ISA*00**00**ZZ*A*ZZ*B*240101*1200*U*00401*1*0*P*",
			expected: fallback,
			sniffed:  false,
		},
		{
			name:     "sniffed delimiters collide",
			input:    "ISA*00**00**ZZ*A*ZZ*B*240101*1200*U*00401*1*0*P*>>",
			expected: fallback,
			sniffed:  false,
		},
	}

	for _, test := range tests {
		t.Run(test.name, func(t *testing.T) {
			delimiters, ok := SniffDelimiters(test.input, fallback)
			assert.Equal(t, test.sniffed, ok)
			assert.Equal(t, test.expected, delimiters)
		})
	}
}

func TestDelimiters_Validate(t *testing.T) {
	assert.NoError(t, DefaultDelimiters().Validate())
	assert.NoError(t, Delimiters{Element: '|', SubElement: ':', Segment: '\n'}.Validate())

	assert.Error(t, Delimiters{}.Validate())
	assert.Error(t, Delimiters{Element: '*', SubElement: '>', Segment: '*'}.Validate())
	assert.Error(t, Delimiters{Element: '*', SubElement: '*', Segment: '~'}.Validate())
	assert.Error(t, Delimiters{Element: ' ', SubElement: '>', Segment: '~'}.Validate())
}

func TestDelimiters_Components(t *testing.T) {
	d := DefaultDelimiters()
	assert.Equal(t, []string{"HC", "99213", "25"}, d.Components("HC>99213>25"))
	assert.Equal(t, []string{"plain"}, d.Components("plain"))
	assert.Equal(t, []string{"x>y"}, Delimiters{Element: '*', Segment: '~'}.Components("x>y"))
}
