// =============================================================================
// X12 EDI Parser - XML Writer Module
// =============================================================================
//
// This module renders a parsed x12.Document as XML. The envelope hierarchy is
// kept as nesting and every generic segment becomes a <segment> element:
//
//   <x12 elementSeparator="*" subElementSeparator=">" segmentTerminator="~">
//     <interchange n="1" controlNumber="000000001" senderId="SENDERISA" ...>
//       <functionalGroup n="1" functionalIdentifierCode="PO" controlNumber="1" ...>
//         <transaction n="1" code="850" name="Purchase Order" controlNumber="000000001">
//           <segment id="BEG" n="1">
//             <element n="1">00</element>
//             <element n="2">SA</element>
//             <element n="4"/>                  <!-- empty elements self-close -->
//           </segment>
//           <trailer count="35" controlNumber="000000001"/>
//         </transaction>
//         <trailer count="1" controlNumber="1"/>
//       </functionalGroup>
//       <trailer count="1" controlNumber="000000001"/>
//     </interchange>
//   </x12>
//
// Element positions (n) are 1-based, so <element n="3"> inside
// <segment id="BEG"> is BEG03. With SplitComponents, composite elements are
// written as <component n="1">...</component> children.
//
// CUSTOMIZATION:
//   - Change the element names in the constants below
//   - Add root attributes (namespaces) through GenerateOptions
//
// =============================================================================

package xmlwriter

import (
	"bytes"
	"encoding/xml"
	"fmt"
	"sort"
	"strconv"
	"strings"

	"github.com/ginjaninja78/x12-edi-parser/pkg/x12"
)

// Element names.
const (
	rootElement        = "x12"
	interchangeElement = "interchange"
	groupElement       = "functionalGroup"
	transactionElement = "transaction"
	segmentElement     = "segment"
	elementElement     = "element"
	componentElement   = "component"
	trailerElement     = "trailer"
)

// Attribute names per element, in output order.
var (
	rootAttributes = []string{"elementSeparator", "subElementSeparator", "segmentTerminator"}

	interchangeAttributes = []string{
		"n", "authorizationQualifier", "authorizationInformation", "securityQualifier",
		"securityInformation", "senderQualifier", "senderId", "receiverQualifier",
		"receiverId", "date", "time", "repetitionSeparator", "version", "controlNumber",
		"acknowledgmentRequested", "usageIndicator",
	}

	groupAttributes = []string{
		"n", "functionalIdentifierCode", "applicationSenderCode", "applicationReceiverCode",
		"date", "time", "controlNumber", "responsibleAgencyCode", "version",
	}

	transactionAttributes = []string{"n", "code", "name", "controlNumber", "conventionReference"}

	trailerAttributes = []string{"count", "controlNumber"}
)

// =============================================================================
// XML GENERATION OPTIONS
// =============================================================================

// GenerateOptions contains options for XML generation.
type GenerateOptions struct {
	// Indent is the string used for indentation.
	// Default: "  " (two spaces)
	Indent string

	// IncludeXMLDeclaration determines whether to include the XML declaration.
	// Default: true
	IncludeXMLDeclaration bool

	// XMLVersion is the XML version for the declaration.
	// Default: "1.0"
	XMLVersion string

	// Encoding is the encoding for the XML declaration.
	// Default: "UTF-8"
	Encoding string

	// RootAttributes are additional attributes for the root element.
	// Example: {"xmlns": "urn:example:x12"}
	RootAttributes map[string]string

	// SplitComponents writes composite elements as <component> children.
	// Default: false
	SplitComponents bool

	// IncludeTrailers writes a <trailer> element at the end of each envelope.
	// Default: true
	IncludeTrailers bool
}

// DefaultGenerateOptions returns the default generation options.
func DefaultGenerateOptions() GenerateOptions {
	return GenerateOptions{
		Indent:                "  ",
		IncludeXMLDeclaration: true,
		XMLVersion:            "1.0",
		Encoding:              "UTF-8",
		RootAttributes:        make(map[string]string),
		IncludeTrailers:       true,
	}
}

// =============================================================================
// XML GENERATION FUNCTIONS
// =============================================================================

// Generate renders the document as XML with the default options.
func Generate(doc *x12.Document) ([]byte, error) {
	return GenerateWithOptions(doc, DefaultGenerateOptions())
}

// GenerateWithOptions renders the document as XML.
//
// PARAMETERS:
//   - doc: The parsed document.
//   - options: The generation options.
//
// RETURNS:
//   - The XML document as a byte slice.
//   - An error if doc is nil.
func GenerateWithOptions(doc *x12.Document, options GenerateOptions) ([]byte, error) {
	if doc == nil {
		return nil, fmt.Errorf("failed to generate XML: document is nil")
	}

	var buffer bytes.Buffer

	if options.IncludeXMLDeclaration {
		buffer.WriteString(fmt.Sprintf("<?xml version=\"%s\" encoding=\"%s\"?>\n",
			options.XMLVersion, options.Encoding))
	}

	root := buildDocument(doc, options)
	writeElement(&buffer, root, options.Indent, 0)

	return buffer.Bytes(), nil
}

// =============================================================================
// XML DOCUMENT BUILDING
// =============================================================================

// XMLElement represents a generic XML element.
type XMLElement struct {
	XMLName    xml.Name
	Attributes []xml.Attr
	Value      string
	Children   []XMLElement
}

// buildDocument constructs the element tree for the whole document.
func buildDocument(doc *x12.Document, options GenerateOptions) XMLElement {
	root := XMLElement{
		XMLName: xml.Name{Local: rootElement},
		Attributes: attributes(rootAttributes,
			runeString(doc.Delimiters.Element),
			runeString(doc.Delimiters.SubElement),
			runeString(doc.Delimiters.Segment),
		),
	}

	// Sorted for stable output.
	keys := make([]string, 0, len(options.RootAttributes))
	for key := range options.RootAttributes {
		keys = append(keys, key)
	}
	sort.Strings(keys)
	for _, key := range keys {
		root.Attributes = append(root.Attributes, xml.Attr{
			Name:  xml.Name{Local: key},
			Value: options.RootAttributes[key],
		})
	}

	for i, interchange := range doc.Interchanges {
		root.Children = append(root.Children, buildInterchangeElement(i+1, interchange, doc.Delimiters, options))
	}

	return root
}

func buildInterchangeElement(n int, ic x12.Interchange, d x12.Delimiters, options GenerateOptions) XMLElement {
	element := XMLElement{
		XMLName: xml.Name{Local: interchangeElement},
		Attributes: attributes(interchangeAttributes,
			strconv.Itoa(n), ic.AuthorizationQualifier, ic.AuthorizationInformation,
			ic.SecurityQualifier, ic.SecurityInformation, ic.SenderQualifier, ic.SenderID,
			ic.ReceiverQualifier, ic.ReceiverID, ic.Date, ic.Time, ic.RepetitionSeparator,
			ic.Version, ic.ControlNumber, ic.AcknowledgmentRequested, ic.UsageIndicator,
		),
	}

	for i, group := range ic.FunctionalGroups {
		element.Children = append(element.Children, buildGroupElement(i+1, group, d, options))
	}
	if options.IncludeTrailers {
		element.Children = append(element.Children, buildTrailerElement(ic.Trailer))
	}

	return element
}

func buildGroupElement(n int, group x12.FunctionalGroup, d x12.Delimiters, options GenerateOptions) XMLElement {
	element := XMLElement{
		XMLName: xml.Name{Local: groupElement},
		Attributes: attributes(groupAttributes,
			strconv.Itoa(n), group.FunctionalIdentifierCode, group.ApplicationSenderCode,
			group.ApplicationReceiverCode, group.Date, group.Time, group.ControlNumber,
			group.ResponsibleAgencyCode, group.Version,
		),
	}

	for i, transaction := range group.Transactions {
		element.Children = append(element.Children, buildTransactionElement(i+1, transaction, d, options))
	}
	if options.IncludeTrailers {
		element.Children = append(element.Children, buildTrailerElement(group.Trailer))
	}

	return element
}

// buildTransactionElement constructs a transaction XML element.
//
// STRUCTURE:
//   <transaction n="1" code="850" name="Purchase Order" controlNumber="0001">
//     <segment id="BEG" n="1">...</segment>
//     <segment id="REF" n="2">...</segment>
//     <trailer count="4" controlNumber="0001"/>
//   </transaction>
func buildTransactionElement(n int, transaction x12.Transaction, d x12.Delimiters, options GenerateOptions) XMLElement {
	element := XMLElement{
		XMLName: xml.Name{Local: transactionElement},
		Attributes: attributes(transactionAttributes,
			strconv.Itoa(n), transaction.Code, transaction.Name, transaction.ControlNumber,
			transaction.ImplementationConventionReference,
		),
	}

	for i, segment := range transaction.Segments {
		element.Children = append(element.Children, buildSegmentElement(i+1, segment, d, options))
	}
	if options.IncludeTrailers {
		element.Children = append(element.Children, buildTrailerElement(transaction.Trailer))
	}

	return element
}

// buildSegmentElement writes one generic segment. Every element position is
// written, including empty ones, so positions stay addressable.
func buildSegmentElement(n int, segment x12.GenericSegment, d x12.Delimiters, options GenerateOptions) XMLElement {
	element := XMLElement{
		XMLName: xml.Name{Local: segmentElement},
		Attributes: []xml.Attr{
			{Name: xml.Name{Local: "id"}, Value: segment.Abbreviation},
			{Name: xml.Name{Local: "n"}, Value: strconv.Itoa(n)},
		},
	}

	for i, value := range segment.Elements {
		child := XMLElement{
			XMLName:    xml.Name{Local: elementElement},
			Attributes: []xml.Attr{{Name: xml.Name{Local: "n"}, Value: strconv.Itoa(i + 1)}},
		}

		components := d.Components(value)
		if options.SplitComponents && len(components) > 1 {
			for j, component := range components {
				child.Children = append(child.Children, XMLElement{
					XMLName:    xml.Name{Local: componentElement},
					Attributes: []xml.Attr{{Name: xml.Name{Local: "n"}, Value: strconv.Itoa(j + 1)}},
					Value:      component,
				})
			}
		} else {
			child.Value = value
		}

		element.Children = append(element.Children, child)
	}

	return element
}

func buildTrailerElement(trailer x12.Trailer) XMLElement {
	return XMLElement{
		XMLName:    xml.Name{Local: trailerElement},
		Attributes: attributes(trailerAttributes, trailer.Count, trailer.ControlNumber),
	}
}

// =============================================================================
// HELPER FUNCTIONS
// =============================================================================

// attributes pairs names with values, skipping empty values.
func attributes(names []string, values ...string) []xml.Attr {
	attrs := make([]xml.Attr, 0, len(names))
	for i, name := range names {
		if i >= len(values) || values[i] == "" {
			continue
		}
		attrs = append(attrs, xml.Attr{Name: xml.Name{Local: name}, Value: values[i]})
	}
	return attrs
}

func runeString(r rune) string {
	if r == 0 {
		return ""
	}
	return string(r)
}

// writeElement writes an XML element to the buffer with indentation.
func writeElement(buffer *bytes.Buffer, element XMLElement, indent string, level int) {
	buffer.WriteString(strings.Repeat(indent, level))

	buffer.WriteString("<")
	buffer.WriteString(element.XMLName.Local)

	for _, attr := range element.Attributes {
		buffer.WriteString(fmt.Sprintf(" %s=\"%s\"", attr.Name.Local, escapeXML(attr.Value)))
	}

	if len(element.Children) == 0 && element.Value == "" {
		buffer.WriteString("/>\n")
		return
	}

	buffer.WriteString(">")

	if len(element.Children) == 0 {
		buffer.WriteString(escapeXML(element.Value))
	} else {
		buffer.WriteString("\n")

		for _, child := range element.Children {
			writeElement(buffer, child, indent, level+1)
		}

		buffer.WriteString(strings.Repeat(indent, level))
	}

	buffer.WriteString("</")
	buffer.WriteString(element.XMLName.Local)
	buffer.WriteString(">\n")
}

// escapeXML escapes special characters for XML. Control characters that XML
// 1.0 cannot carry (segment terminators such as \n are fine) are written as
// character references where allowed and dropped otherwise.
func escapeXML(s string) string {
	var buffer bytes.Buffer

	for _, r := range s {
		switch r {
		case '&':
			buffer.WriteString("&amp;")
		case '<':
			buffer.WriteString("&lt;")
		case '>':
			buffer.WriteString("&gt;")
		case '"':
			buffer.WriteString("&quot;")
		case '\'':
			buffer.WriteString("&apos;")
		case '\n':
			buffer.WriteString("&#xA;")
		case '\r':
			buffer.WriteString("&#xD;")
		case '\t':
			buffer.WriteString("&#x9;")
		default:
			if r < 0x20 {
				continue
			}
			buffer.WriteRune(r)
		}
	}

	return buffer.String()
}

// =============================================================================
// XSD GENERATION
// =============================================================================

// GenerateXSD returns an XML Schema describing the output of Generate.
// Every attribute except n on numbered elements is optional, since empty
// header values are omitted.
func GenerateXSD() []byte {
	var buffer bytes.Buffer

	buffer.WriteString(`<?xml version="1.0" encoding="UTF-8"?>
<xs:schema xmlns:xs="http://www.w3.org/2001/XMLSchema">
`)

	writeXSDContainer(&buffer, rootElement, interchangeElement, false, rootAttributes)
	writeXSDContainer(&buffer, interchangeElement, groupElement, true, interchangeAttributes)
	writeXSDContainer(&buffer, groupElement, transactionElement, true, groupAttributes)
	writeXSDContainer(&buffer, transactionElement, segmentElement, true, transactionAttributes)

	buffer.WriteString(fmt.Sprintf(`  <xs:element name="%s">
    <xs:complexType>
      <xs:sequence>
        <xs:element ref="%s" minOccurs="0" maxOccurs="unbounded"/>
      </xs:sequence>
      <xs:attribute name="id" type="xs:string" use="required"/>
      <xs:attribute name="n" type="xs:positiveInteger" use="required"/>
    </xs:complexType>
  </xs:element>

`, segmentElement, elementElement))

	buffer.WriteString(fmt.Sprintf(`  <xs:element name="%s">
    <xs:complexType mixed="true">
      <xs:sequence>
        <xs:element name="%s" minOccurs="0" maxOccurs="unbounded">
          <xs:complexType>
            <xs:simpleContent>
              <xs:extension base="xs:string">
                <xs:attribute name="n" type="xs:positiveInteger" use="required"/>
              </xs:extension>
            </xs:simpleContent>
          </xs:complexType>
        </xs:element>
      </xs:sequence>
      <xs:attribute name="n" type="xs:positiveInteger" use="required"/>
    </xs:complexType>
  </xs:element>

`, elementElement, componentElement))

	buffer.WriteString(fmt.Sprintf(`  <xs:element name="%s">
    <xs:complexType>
`, trailerElement))
	writeXSDAttributes(&buffer, trailerAttributes, false)
	buffer.WriteString(`    </xs:complexType>
  </xs:element>

</xs:schema>
`)

	return buffer.Bytes()
}

// writeXSDContainer writes an element holding a sequence of child elements
// followed by an optional trailer.
func writeXSDContainer(buffer *bytes.Buffer, name, child string, trailer bool, attrs []string) {
	buffer.WriteString(fmt.Sprintf(`  <xs:element name="%s">
    <xs:complexType>
      <xs:sequence>
        <xs:element ref="%s" minOccurs="0" maxOccurs="unbounded"/>
`, name, child))
	if trailer {
		buffer.WriteString(fmt.Sprintf("        <xs:element ref=\"%s\" minOccurs=\"0\"/>\n", trailerElement))
	}
	buffer.WriteString("      </xs:sequence>\n")
	writeXSDAttributes(buffer, attrs, trailer)
	buffer.WriteString(`    </xs:complexType>
  </xs:element>

`)
}

func writeXSDAttributes(buffer *bytes.Buffer, attrs []string, numbered bool) {
	for _, attr := range attrs {
		if numbered && attr == "n" {
			buffer.WriteString("      <xs:attribute name=\"n\" type=\"xs:positiveInteger\" use=\"required\"/>\n")
			continue
		}
		buffer.WriteString(fmt.Sprintf("      <xs:attribute name=\"%s\" type=\"xs:string\"/>\n", attr))
	}
}
