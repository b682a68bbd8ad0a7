// =============================================================================
// Asientos XML - XML Writer Module
// =============================================================================
//
// This module generates the interchange document from a Batch. Element names
// come from the schema table; this file only decides which elements exist.
//
// PRESENCE RULES:
//   Encabezado
//     NumeroAsiento       written when the entry number is set
//     DescripcionAsiento  written when the description is a non-empty string
//     FechaAsiento        always written, yyyy-MM-dd
//   Cuentas (one per line)
//     Código, Nombre, Cuenta, TipoMovimiento
//                         written when set and non-empty
//     Monto               written whenever the amount is present, zero
//                         included, with exactly two fraction digits
//
// =============================================================================

package xmlwriter

import (
	"bytes"
	"encoding/xml"
	"fmt"
	"strconv"

	"github.com/ginjaninja78/asientos-xml/internal/schema"
	"github.com/ginjaninja78/asientos-xml/internal/types"
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
}

// DefaultGenerateOptions returns the default generation options.
func DefaultGenerateOptions() GenerateOptions {
	return GenerateOptions{
		Indent:                "  ",
		IncludeXMLDeclaration: true,
		XMLVersion:            "1.0",
		Encoding:              "UTF-8",
	}
}

// =============================================================================
// XML GENERATION FUNCTIONS
// =============================================================================

// Generate creates the XML document for a batch using the default schema and
// options.
func Generate(batch *types.Batch) ([]byte, error) {
	return GenerateWithOptions(batch, schema.Default, DefaultGenerateOptions())
}

// GenerateWithOptions creates the XML document with a custom schema and options.
func GenerateWithOptions(batch *types.Batch, sch *schema.Schema, options GenerateOptions) ([]byte, error) {
	if batch == nil {
		return nil, fmt.Errorf("nil batch")
	}

	var buffer bytes.Buffer

	if options.IncludeXMLDeclaration {
		buffer.WriteString(fmt.Sprintf("<?xml version=\"%s\" encoding=\"%s\"?>\n",
			options.XMLVersion, options.Encoding))
	}

	doc := buildDocument(batch, sch)

	if err := writeElement(&buffer, doc, options.Indent, 0); err != nil {
		return nil, fmt.Errorf("failed to marshal XML: %w", err)
	}

	return buffer.Bytes(), nil
}

// =============================================================================
// XML DOCUMENT BUILDING
// =============================================================================

// XMLElement represents a generic XML element: either a leaf with a text
// value or a container with children.
type XMLElement struct {
	Name     string
	Value    string
	Children []XMLElement
}

// buildDocument constructs the element tree.
func buildDocument(batch *types.Batch, sch *schema.Schema) XMLElement {
	root := XMLElement{Name: sch.RootElement}

	root.Children = append(root.Children, buildHeaderElement(batch.Header, sch))

	for _, line := range batch.Lines {
		root.Children = append(root.Children, buildLineElement(line, sch))
	}

	return root
}

// buildHeaderElement constructs the Encabezado element.
func buildHeaderElement(header types.Header, sch *schema.Schema) XMLElement {
	element := XMLElement{Name: sch.HeaderElement}

	values := map[string]*string{}
	if header.EntryNumber != nil {
		values[schema.FieldEntryNumber] = types.StringPtr(strconv.Itoa(*header.EntryNumber))
	}
	if types.NonEmpty(header.Description) {
		values[schema.FieldDescription] = header.Description
	}
	values[schema.FieldEntryDate] = types.StringPtr(header.EntryDate.Format(types.DateLayout))

	element.Children = appendFields(element.Children, sch.HeaderFields(), values)

	return element
}

// buildLineElement constructs one Cuentas element.
func buildLineElement(line types.Line, sch *schema.Schema) XMLElement {
	element := XMLElement{Name: sch.LineElement}

	values := map[string]*string{}
	for field, value := range map[string]*string{
		schema.FieldAccountCode:   line.AccountCode,
		schema.FieldAccountName:   line.AccountName,
		schema.FieldAccountNumber: line.AccountNumber,
		schema.FieldMovementType:  line.MovementType,
	} {
		if types.NonEmpty(value) {
			values[field] = value
		}
	}
	if line.Amount.Valid {
		values[schema.FieldAmount] = types.StringPtr(FormatAmount(line))
	}

	element.Children = appendFields(element.Children, sch.LineFields(), values)

	return element
}

// appendFields appends one leaf per mapping that has a value, in schema order.
func appendFields(children []XMLElement, mappings []*schema.FieldMapping, values map[string]*string) []XMLElement {
	for _, mapping := range mappings {
		value, ok := values[mapping.Field]
		if !ok {
			continue
		}
		children = append(children, XMLElement{Name: mapping.XMLTag, Value: *value})
	}
	return children
}

// FormatAmount renders a present amount with the fixed number of fraction
// digits. It returns "" for an absent amount.
func FormatAmount(line types.Line) string {
	if !line.Amount.Valid {
		return ""
	}
	return line.Amount.Decimal.StringFixed(schema.AmountPlaces)
}

// =============================================================================
// SERIALIZATION
// =============================================================================

// writeElement writes an element and its children with indentation.
func writeElement(buffer *bytes.Buffer, element XMLElement, indent string, level int) error {
	writeIndent(buffer, indent, level)

	buffer.WriteString("<")
	buffer.WriteString(element.Name)

	if len(element.Children) == 0 && element.Value == "" {
		buffer.WriteString("/>\n")
		return nil
	}

	buffer.WriteString(">")

	if len(element.Children) == 0 {
		if err := xml.EscapeText(buffer, []byte(element.Value)); err != nil {
			return err
		}
	} else {
		buffer.WriteString("\n")
		for _, child := range element.Children {
			if err := writeElement(buffer, child, indent, level+1); err != nil {
				return err
			}
		}
		writeIndent(buffer, indent, level)
	}

	buffer.WriteString("</")
	buffer.WriteString(element.Name)
	buffer.WriteString(">\n")

	return nil
}

func writeIndent(buffer *bytes.Buffer, indent string, level int) {
	for i := 0; i < level; i++ {
		buffer.WriteString(indent)
	}
}
