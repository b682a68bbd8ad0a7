// =============================================================================
// Asientos XML - XML Parser Module
// =============================================================================
//
// This module reads an interchange file into a raw Document. It does not
// convert or validate values; it only records which elements are present and
// their text, so the validator can tell "absent" apart from "empty".
//
// PARSING RULES:
//   - The root element must be AsientoActivos.
//   - The header is the first Encabezado child of the root.
//   - Lines are the Cuentas children of the root, in document order.
//   - Within a header or line, the first occurrence of a tag wins.
//
// =============================================================================

package xmlparser

import (
	"bytes"
	"encoding/xml"
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/ginjaninja78/asientos-xml/internal/apperrors"
	"github.com/ginjaninja78/asientos-xml/internal/schema"
)

// =============================================================================
// DOCUMENT STRUCTURE
// =============================================================================

// Document is the raw content of an interchange file.
type Document struct {
	// FilePath is the source file, empty when parsed from memory.
	FilePath string

	// Header is nil when the file has no Encabezado element.
	Header *Element

	// Lines holds every Cuentas element in document order.
	Lines []Element
}

// Element is a header or line element with the text of its child elements.
type Element struct {
	Name string

	// Fields maps a child tag to its text.
	Fields map[string]string
}

// Value returns the text of a child element and whether the child exists.
func (e *Element) Value(tag string) (string, bool) {
	if e == nil {
		return "", false
	}
	v, ok := e.Fields[tag]
	return v, ok
}

// node is the generic decoding target.
type node struct {
	XMLName xml.Name
	Text    string `xml:",chardata"`
	Nodes   []node `xml:",any"`
}

// =============================================================================
// PARSING FUNCTIONS
// =============================================================================

// Parse reads and parses the file at filePath with the default schema.
func Parse(filePath string) (*Document, error) {
	data, err := os.ReadFile(filePath)
	if err != nil {
		return nil, fmt.Errorf("failed to read XML file: %w", err)
	}

	doc, err := ParseReader(bytes.NewReader(data), schema.Default)
	if err != nil {
		return nil, err
	}
	doc.FilePath = filePath

	return doc, nil
}

// ParseReader parses a document from r using the element names of sch.
func ParseReader(r io.Reader, sch *schema.Schema) (*Document, error) {
	var root node
	if err := xml.NewDecoder(r).Decode(&root); err != nil {
		return nil, fmt.Errorf("%w: %v", apperrors.ErrMalformedDocument, err)
	}

	if root.XMLName.Local != sch.RootElement {
		return nil, fmt.Errorf("%w: root element is <%s>, expected <%s>",
			apperrors.ErrMalformedDocument, root.XMLName.Local, sch.RootElement)
	}

	doc := &Document{}

	for _, child := range root.Nodes {
		switch child.XMLName.Local {
		case sch.HeaderElement:
			if doc.Header == nil {
				header := toElement(child)
				doc.Header = &header
			}
		case sch.LineElement:
			doc.Lines = append(doc.Lines, toElement(child))
		}
	}

	return doc, nil
}

// toElement flattens the children of n into a field map.
func toElement(n node) Element {
	element := Element{
		Name:   n.XMLName.Local,
		Fields: make(map[string]string, len(n.Nodes)),
	}
	for _, child := range n.Nodes {
		if _, exists := element.Fields[child.XMLName.Local]; exists {
			continue
		}
		element.Fields[child.XMLName.Local] = textOf(child)
	}
	return element
}

// textOf returns the text of n, including the text of nested elements.
func textOf(n node) string {
	if len(n.Nodes) == 0 {
		return n.Text
	}
	var sb strings.Builder
	sb.WriteString(strings.TrimSpace(n.Text))
	for _, child := range n.Nodes {
		sb.WriteString(textOf(child))
	}
	return sb.String()
}
