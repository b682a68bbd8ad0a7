// =============================================================================
// Asientos XML - Wire Schema
// =============================================================================
//
// This module holds the single source of truth for the interchange format:
// the element names and the table mapping each JournalEntry field to its XML
// tag. The writer, the parser and the validator look tags up here and nowhere
// else.
//
// XML STRUCTURE:
//
//   <AsientoActivos>                       <!-- Root element -->
//     <Encabezado>                         <!-- Header, exactly one -->
//       <NumeroAsiento>1</NumeroAsiento>
//       <DescripcionAsiento>..</DescripcionAsiento>
//       <FechaAsiento>2024-01-31</FechaAsiento>
//     </Encabezado>
//     <Cuentas>                            <!-- One per line -->
//       <Código>..</Código>
//       <Nombre>..</Nombre>
//       <Cuenta>..</Cuenta>
//       <TipoMovimiento>..</TipoMovimiento>
//       <Monto>100.00</Monto>
//     </Cuentas>
//   </AsientoActivos>
//
// =============================================================================

package schema

import (
	"sort"
)

// Element names.
const (
	RootElement   = "AsientoActivos"
	HeaderElement = "Encabezado"
	LineElement   = "Cuentas"
)

// Field names of types.JournalEntry as they appear in the mapping table.
const (
	FieldEntryNumber   = "entryNumber"
	FieldDescription   = "description"
	FieldEntryDate     = "entryDate"
	FieldAccountCode   = "accountCode"
	FieldAccountName   = "accountName"
	FieldAccountNumber = "accountNumber"
	FieldMovementType  = "movementType"
	FieldAmount        = "amount"
)

// Data types used by the validator and the XSD generator.
const (
	TypeString  = "string"
	TypeInteger = "integer"
	TypeDate    = "date"
	TypeDecimal = "decimal"
)

// AmountPlaces is the number of fraction digits written for Monto.
const AmountPlaces = 2

// =============================================================================
// FIELD MAPPING
// =============================================================================

// FieldMapping maps one record field to its XML element.
type FieldMapping struct {
	// Field is the record field name (FieldEntryNumber, ...).
	Field string

	// XMLTag is the element name written to and read from the file.
	XMLTag string

	// ParentTag is HeaderElement or LineElement.
	ParentTag string

	// DataType is one of the Type* constants.
	DataType string

	// Required marks the element as mandatory on import.
	Required bool

	// Order is the position of the element inside its parent.
	Order int
}

// Schema is the complete mapping table of the format.
type Schema struct {
	RootElement   string
	HeaderElement string
	LineElement   string

	// FieldMappings is keyed by field name.
	FieldMappings map[string]*FieldMapping
}

// Default is the AsientoActivos format.
var Default = New([]FieldMapping{
	{Field: FieldEntryNumber, XMLTag: "NumeroAsiento", ParentTag: HeaderElement, DataType: TypeInteger, Required: true, Order: 1},
	{Field: FieldDescription, XMLTag: "DescripcionAsiento", ParentTag: HeaderElement, DataType: TypeString, Required: true, Order: 2},
	{Field: FieldEntryDate, XMLTag: "FechaAsiento", ParentTag: HeaderElement, DataType: TypeDate, Required: true, Order: 3},
	{Field: FieldAccountCode, XMLTag: "Código", ParentTag: LineElement, DataType: TypeString, Required: true, Order: 1},
	{Field: FieldAccountName, XMLTag: "Nombre", ParentTag: LineElement, DataType: TypeString, Required: true, Order: 2},
	{Field: FieldAccountNumber, XMLTag: "Cuenta", ParentTag: LineElement, DataType: TypeString, Required: true, Order: 3},
	{Field: FieldMovementType, XMLTag: "TipoMovimiento", ParentTag: LineElement, DataType: TypeString, Required: true, Order: 4},
	{Field: FieldAmount, XMLTag: "Monto", ParentTag: LineElement, DataType: TypeDecimal, Required: true, Order: 5},
})

// New builds a schema from a list of mappings using the standard element names.
func New(mappings []FieldMapping) *Schema {
	s := &Schema{
		RootElement:   RootElement,
		HeaderElement: HeaderElement,
		LineElement:   LineElement,
		FieldMappings: make(map[string]*FieldMapping, len(mappings)),
	}
	for i := range mappings {
		m := mappings[i]
		s.FieldMappings[m.Field] = &m
	}
	return s
}

// GetFieldMapping returns the mapping for a field, or nil if none exists.
func (s *Schema) GetFieldMapping(field string) *FieldMapping {
	return s.FieldMappings[field]
}

// GetXMLTag returns the XML tag of a field, or "" if the field is unknown.
func (s *Schema) GetXMLTag(field string) string {
	if m := s.GetFieldMapping(field); m != nil {
		return m.XMLTag
	}
	return ""
}

// HeaderFields returns the header mappings in element order.
func (s *Schema) HeaderFields() []*FieldMapping {
	return s.fieldsOf(s.HeaderElement)
}

// LineFields returns the line mappings in element order.
func (s *Schema) LineFields() []*FieldMapping {
	return s.fieldsOf(s.LineElement)
}

func (s *Schema) fieldsOf(parent string) []*FieldMapping {
	var fields []*FieldMapping
	for _, m := range s.FieldMappings {
		if m.ParentTag == parent {
			fields = append(fields, m)
		}
	}
	sort.Slice(fields, func(i, j int) bool {
		return fields[i].Order < fields[j].Order
	})
	return fields
}
