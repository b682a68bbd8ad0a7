package schema

import (
	"bytes"
	"fmt"
	"strings"
)

// GenerateXSD renders an XSD document describing the format.
//
// Header and line elements are emitted with minOccurs="0" except FechaAsiento:
// the exporter omits empty optional values, so only the date is guaranteed to
// be present in a file it wrote.
func GenerateXSD(s *Schema) ([]byte, error) {
	var buffer bytes.Buffer

	buffer.WriteString(`<?xml version="1.0" encoding="UTF-8"?>
<xs:schema xmlns:xs="http://www.w3.org/2001/XMLSchema">
`)

	buffer.WriteString(fmt.Sprintf(`  <xs:element name="%s">
    <xs:complexType>
      <xs:sequence>
        <xs:element ref="%s"/>
        <xs:element ref="%s" minOccurs="0" maxOccurs="unbounded"/>
      </xs:sequence>
    </xs:complexType>
  </xs:element>

`, s.RootElement, s.HeaderElement, s.LineElement))

	for _, parent := range []struct {
		name   string
		fields []*FieldMapping
	}{
		{s.HeaderElement, s.HeaderFields()},
		{s.LineElement, s.LineFields()},
	} {
		buffer.WriteString(fmt.Sprintf(`  <xs:element name="%s">
    <xs:complexType>
      <xs:sequence>
`, parent.name))

		for _, mapping := range parent.fields {
			writeXSDElement(&buffer, mapping, 4)
		}

		buffer.WriteString(`      </xs:sequence>
    </xs:complexType>
  </xs:element>

`)
	}

	buffer.WriteString("</xs:schema>\n")

	return buffer.Bytes(), nil
}

// writeXSDElement writes an XSD element definition.
func writeXSDElement(buffer *bytes.Buffer, mapping *FieldMapping, indentLevel int) {
	indent := strings.Repeat("  ", indentLevel)

	minOccurs := "0"
	if mapping.Field == FieldEntryDate {
		minOccurs = "1"
	}

	if mapping.DataType == TypeDecimal {
		buffer.WriteString(fmt.Sprintf(`%s<xs:element name="%s" minOccurs="%s">
%s  <xs:simpleType>
%s    <xs:restriction base="xs:decimal">
%s      <xs:fractionDigits value="%d"/>
%s    </xs:restriction>
%s  </xs:simpleType>
%s</xs:element>
`, indent, mapping.XMLTag, minOccurs,
			indent, indent,
			indent, AmountPlaces,
			indent, indent, indent))
		return
	}

	buffer.WriteString(fmt.Sprintf(`%s<xs:element name="%s" type="%s" minOccurs="%s"/>
`, indent, mapping.XMLTag, getXSDType(mapping.DataType), minOccurs))
}

// getXSDType maps internal data types to XSD types.
func getXSDType(dataType string) string {
	switch dataType {
	case TypeInteger:
		return "xs:integer"
	case TypeDecimal:
		return "xs:decimal"
	case TypeDate:
		return "xs:date"
	default:
		return "xs:string"
	}
}
