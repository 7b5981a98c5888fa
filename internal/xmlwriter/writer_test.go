package xmlwriter

import (
	"encoding/xml"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/ginjaninja78/x12-edi-parser/pkg/x12"
)

const sample = `ISA*00*          *00*          *ZZ*SENDER         *ZZ*RECEIVER       *240101*1200*U*00401*000000007*0*P*>~
GS*HC*SENDERGS*RECEIVERGS*20240101*1200*7*X*005010X222A1~
ST*837*0001*005010X222A1~
NM1*85*2*SMITH & SONS <CLINIC>*****XX*1234567893~
SV1*HC>99213>25*125*UN*1***1~
DTP*472*D8*20240101~
SE*5*0001~
GE*1*7~
IEA*1*000000007~
`

// xmlDocument mirrors the generated structure for round-trip checks.
type xmlDocument struct {
	XMLName             xml.Name         `xml:"x12"`
	ElementSeparator    string           `xml:"elementSeparator,attr"`
	SubElementSeparator string           `xml:"subElementSeparator,attr"`
	SegmentTerminator   string           `xml:"segmentTerminator,attr"`
	Interchanges        []xmlInterchange `xml:"interchange"`
}

type xmlInterchange struct {
	N             int        `xml:"n,attr"`
	ControlNumber string     `xml:"controlNumber,attr"`
	SenderID      string     `xml:"senderId,attr"`
	Groups        []xmlGroup `xml:"functionalGroup"`
	Trailer       xmlTrailer `xml:"trailer"`
}

type xmlGroup struct {
	ControlNumber string           `xml:"controlNumber,attr"`
	Version       string           `xml:"version,attr"`
	Transactions  []xmlTransaction `xml:"transaction"`
	Trailer       xmlTrailer       `xml:"trailer"`
}

type xmlTransaction struct {
	Code                string       `xml:"code,attr"`
	Name                string       `xml:"name,attr"`
	ControlNumber       string       `xml:"controlNumber,attr"`
	ConventionReference string       `xml:"conventionReference,attr"`
	Segments            []xmlSegment `xml:"segment"`
	Trailer             xmlTrailer   `xml:"trailer"`
}

type xmlSegment struct {
	ID       string       `xml:"id,attr"`
	N        int          `xml:"n,attr"`
	Elements []xmlElement `xml:"element"`
}

type xmlElement struct {
	N          int            `xml:"n,attr"`
	Value      string         `xml:",chardata"`
	Components []xmlComponent `xml:"component"`
}

type xmlComponent struct {
	N     int    `xml:"n,attr"`
	Value string `xml:",chardata"`
}

type xmlTrailer struct {
	Count         string `xml:"count,attr"`
	ControlNumber string `xml:"controlNumber,attr"`
}

func parseSample(t *testing.T) *x12.Document {
	t.Helper()
	doc, err := x12.Parse(sample, x12.MapLookup{"837": "Health Care Claim"})
	require.NoError(t, err)
	return doc
}

func TestGenerate(t *testing.T) {
	out, err := Generate(parseSample(t))
	require.NoError(t, err)

	assert.True(t, strings.HasPrefix(string(out), `<?xml version="1.0" encoding="UTF-8"?>`+"\n"))

	var decoded xmlDocument
	require.NoError(t, xml.Unmarshal(out, &decoded))

	assert.Equal(t, "*", decoded.ElementSeparator)
	assert.Equal(t, ">", decoded.SubElementSeparator)
	assert.Equal(t, "~", decoded.SegmentTerminator)

	require.Len(t, decoded.Interchanges, 1)
	ic := decoded.Interchanges[0]
	assert.Equal(t, 1, ic.N)
	assert.Equal(t, "000000007", ic.ControlNumber)
	assert.Equal(t, "SENDER", ic.SenderID)
	assert.Equal(t, xmlTrailer{Count: "1", ControlNumber: "000000007"}, ic.Trailer)

	require.Len(t, ic.Groups, 1)
	group := ic.Groups[0]
	assert.Equal(t, "7", group.ControlNumber)
	assert.Equal(t, "005010X222A1", group.Version)

	require.Len(t, group.Transactions, 1)
	tx := group.Transactions[0]
	assert.Equal(t, "837", tx.Code)
	assert.Equal(t, "Health Care Claim", tx.Name)
	assert.Equal(t, "0001", tx.ControlNumber)
	assert.Equal(t, "005010X222A1", tx.ConventionReference)
	assert.Equal(t, xmlTrailer{Count: "5", ControlNumber: "0001"}, tx.Trailer)

	require.Len(t, tx.Segments, 3)
	nm1 := tx.Segments[0]
	assert.Equal(t, "NM1", nm1.ID)
	assert.Equal(t, 1, nm1.N)
	require.Len(t, nm1.Elements, 9)
	assert.Equal(t, "SMITH & SONS <CLINIC>", nm1.Elements[2].Value)
	assert.Equal(t, "", nm1.Elements[3].Value)
	assert.Equal(t, 9, nm1.Elements[8].N)

	sv1 := tx.Segments[1]
	assert.Equal(t, "HC>99213>25", sv1.Elements[0].Value)
	assert.Empty(t, sv1.Elements[0].Components)
}

func TestGenerate_EscapesAndSelfCloses(t *testing.T) {
	out, err := Generate(parseSample(t))
	require.NoError(t, err)

	text := string(out)
	assert.Contains(t, text, `<element n="3">SMITH &amp; SONS &lt;CLINIC&gt;</element>`)
	assert.Contains(t, text, `<element n="4"/>`)
	assert.Contains(t, text, `subElementSeparator="&gt;"`)
	assert.Contains(t, text, "\n      <transaction n=\"1\"")
}

func TestGenerateWithOptions_SplitComponents(t *testing.T) {
	options := DefaultGenerateOptions()
	options.SplitComponents = true
	options.IncludeXMLDeclaration = false
	options.RootAttributes = map[string]string{"xmlns": "urn:example:x12", "source": "po.edi"}

	out, err := GenerateWithOptions(parseSample(t), options)
	require.NoError(t, err)
	assert.True(t, strings.HasPrefix(string(out), "<x12 "))
	assert.Contains(t, string(out), `segmentTerminator="~" source="po.edi" xmlns="urn:example:x12">`)

	var decoded xmlDocument
	require.NoError(t, xml.Unmarshal(out, &decoded))

	sv1 := decoded.Interchanges[0].Groups[0].Transactions[0].Segments[1]
	require.Len(t, sv1.Elements[0].Components, 3)
	assert.Equal(t, xmlComponent{N: 1, Value: "HC"}, sv1.Elements[0].Components[0])
	assert.Equal(t, xmlComponent{N: 3, Value: "25"}, sv1.Elements[0].Components[2])

	// Single-component elements keep their text.
	assert.Equal(t, "125", sv1.Elements[1].Value)
}

func TestGenerateWithOptions_NoTrailers(t *testing.T) {
	options := DefaultGenerateOptions()
	options.IncludeTrailers = false

	out, err := GenerateWithOptions(parseSample(t), options)
	require.NoError(t, err)
	assert.NotContains(t, string(out), "<trailer")
}

func TestGenerate_EmptyDocument(t *testing.T) {
	doc, err := x12.Parse("", nil)
	require.NoError(t, err)

	options := DefaultGenerateOptions()
	options.IncludeXMLDeclaration = false
	out, err := GenerateWithOptions(doc, options)
	require.NoError(t, err)
	assert.Equal(t, `<x12 elementSeparator="*" subElementSeparator="&gt;" segmentTerminator="~"/>`+"\n", string(out))
}

func TestGenerate_NilDocument(t *testing.T) {
	_, err := Generate(nil)
	assert.Error(t, err)
}

func TestEscapeXML(t *testing.T) {
	assert.Equal(t, "a&amp;b&lt;c&gt;&quot;&apos;", escapeXML(`a&b<c>"'`))
	assert.Equal(t, "&#xA;", escapeXML("\n"))
	assert.Equal(t, "ab", escapeXML("a\x1cb"))
}

func TestGenerateXSD(t *testing.T) {
	xsd := GenerateXSD()

	var parsed struct {
		XMLName  xml.Name `xml:"schema"`
		Elements []struct {
			Name string `xml:"name,attr"`
		} `xml:"element"`
	}
	require.NoError(t, xml.Unmarshal(xsd, &parsed))

	var names []string
	for _, element := range parsed.Elements {
		names = append(names, element.Name)
	}
	assert.Equal(t, []string{"x12", "interchange", "functionalGroup", "transaction", "segment", "element", "trailer"}, names)
	assert.Contains(t, string(xsd), `<xs:attribute name="senderId" type="xs:string"/>`)
}
