// =============================================================================
// Asientos XML - Validation Engine
// =============================================================================
//
// This module turns raw parsed elements into typed header and line values,
// enforcing the import policy:
//   - Every header field (NumeroAsiento, DescripcionAsiento, FechaAsiento)
//     is required.
//   - Every line field (Código, Nombre, Cuenta, TipoMovimiento, Monto) is
//     required.
//   - Integer, date and decimal text must parse.
//
// ERROR HANDLING:
//   Validation stops at the first problem. The returned *ValidationError
//   unwraps to apperrors.ErrMissingRequiredField or apperrors.ErrMalformedValue
//   so callers can use errors.Is.
//
// =============================================================================

package validation

import (
	"fmt"
	"strconv"
	"strings"
	"time"

	"github.com/ginjaninja78/asientos-xml/internal/apperrors"
	"github.com/ginjaninja78/asientos-xml/internal/schema"
	"github.com/ginjaninja78/asientos-xml/internal/types"
	"github.com/ginjaninja78/asientos-xml/internal/xmlparser"
	"github.com/shopspring/decimal"
)

// =============================================================================
// VALIDATION ERROR TYPE
// =============================================================================

// ValidationError describes the first field that failed validation.
type ValidationError struct {
	// Kind is apperrors.ErrMissingRequiredField or apperrors.ErrMalformedValue.
	Kind error

	// Element is the parent element (Encabezado or Cuentas).
	Element string

	// Field is the XML tag of the failing field.
	Field string

	// Line is the 1-based position of the Cuentas element; 0 for the header.
	Line int

	// Value is the offending text, empty for missing fields.
	Value string

	// Message is a human-readable description.
	Message string

	// Err is the underlying parse error, if any.
	Err error
}

// Error implements the error interface.
func (e *ValidationError) Error() string {
	location := e.Element
	if e.Line > 0 {
		location = fmt.Sprintf("%s %d", e.Element, e.Line)
	}
	if e.Value != "" {
		return fmt.Sprintf("%s, field '%s': %s (value: '%s')", location, e.Field, e.Message, e.Value)
	}
	return fmt.Sprintf("%s, field '%s': %s", location, e.Field, e.Message)
}

// Unwrap exposes the error kind and, when present, the parse error.
func (e *ValidationError) Unwrap() []error {
	if e.Err != nil {
		return []error{e.Kind, e.Err}
	}
	return []error{e.Kind}
}

// =============================================================================
// VALIDATOR
// =============================================================================

// Validator converts parsed elements into typed values.
type Validator struct {
	schema *schema.Schema
}

// NewValidator creates a Validator for the given schema.
func NewValidator(sch *schema.Schema) *Validator {
	return &Validator{schema: sch}
}

// ValidateHeader checks the header element and returns the typed header.
// A nil element means the file has no Encabezado at all.
func (v *Validator) ValidateHeader(element *xmlparser.Element) (types.Header, error) {
	var header types.Header

	if element == nil {
		return header, &ValidationError{
			Kind:    apperrors.ErrMissingRequiredField,
			Element: v.schema.RootElement,
			Field:   v.schema.HeaderElement,
			Message: fmt.Sprintf("missing '%s' element", v.schema.HeaderElement),
		}
	}

	for _, mapping := range v.schema.HeaderFields() {
		raw, err := v.required(element, mapping, 0)
		if err != nil {
			return header, err
		}

		switch mapping.Field {
		case schema.FieldEntryNumber:
			n, err := v.parseInteger(raw, mapping, 0)
			if err != nil {
				return header, err
			}
			header.EntryNumber = &n
		case schema.FieldDescription:
			header.Description = types.StringPtr(raw)
		case schema.FieldEntryDate:
			date, err := v.parseDate(raw, mapping, 0)
			if err != nil {
				return header, err
			}
			header.EntryDate = date
		}
	}

	return header, nil
}

// ValidateLine checks one Cuentas element. index is zero-based.
func (v *Validator) ValidateLine(element xmlparser.Element, index int) (types.Line, error) {
	var line types.Line
	lineNumber := index + 1

	for _, mapping := range v.schema.LineFields() {
		raw, err := v.required(&element, mapping, lineNumber)
		if err != nil {
			return line, err
		}

		switch mapping.Field {
		case schema.FieldAccountCode:
			line.AccountCode = types.StringPtr(raw)
		case schema.FieldAccountName:
			line.AccountName = types.StringPtr(raw)
		case schema.FieldAccountNumber:
			line.AccountNumber = types.StringPtr(raw)
		case schema.FieldMovementType:
			line.MovementType = types.StringPtr(raw)
		case schema.FieldAmount:
			amount, err := v.parseDecimal(raw, mapping, lineNumber)
			if err != nil {
				return line, err
			}
			line.Amount = types.Amount(amount)
		}
	}

	return line, nil
}

// required returns the text of a required field or a missing-field error.
func (v *Validator) required(element *xmlparser.Element, mapping *schema.FieldMapping, line int) (string, error) {
	raw, ok := element.Value(mapping.XMLTag)
	if !ok && mapping.Required {
		return "", &ValidationError{
			Kind:    apperrors.ErrMissingRequiredField,
			Element: mapping.ParentTag,
			Field:   mapping.XMLTag,
			Line:    line,
			Message: fmt.Sprintf("missing '%s' element", mapping.XMLTag),
		}
	}
	return raw, nil
}

// =============================================================================
// DATA TYPE PARSING
// =============================================================================

// DateLayouts are tried in order when parsing FechaAsiento.
var DateLayouts = []string{
	types.DateLayout,
	time.RFC3339,
	"2006-01-02T15:04:05",
}

func (v *Validator) parseInteger(raw string, mapping *schema.FieldMapping, line int) (int, error) {
	n, err := strconv.Atoi(strings.TrimSpace(raw))
	if err != nil {
		return 0, malformed(mapping, line, raw, "must be an integer", err)
	}
	return n, nil
}

func (v *Validator) parseDate(raw string, mapping *schema.FieldMapping, line int) (time.Time, error) {
	date, err := ParseDate(raw)
	if err != nil {
		return time.Time{}, malformed(mapping, line, raw, "must be a date (YYYY-MM-DD)", err)
	}
	return date, nil
}

func (v *Validator) parseDecimal(raw string, mapping *schema.FieldMapping, line int) (decimal.Decimal, error) {
	d, err := decimal.NewFromString(strings.TrimSpace(raw))
	if err != nil {
		return decimal.Zero, malformed(mapping, line, raw, "must be a decimal number", err)
	}
	return d, nil
}

// ParseDate parses a date using DateLayouts. Values in yyyy-MM-dd form are
// returned at midnight UTC.
func ParseDate(raw string) (time.Time, error) {
	raw = strings.TrimSpace(raw)
	var lastErr error
	for _, layout := range DateLayouts {
		t, err := time.Parse(layout, raw)
		if err == nil {
			return t, nil
		}
		lastErr = err
	}
	return time.Time{}, lastErr
}

func malformed(mapping *schema.FieldMapping, line int, raw, message string, err error) *ValidationError {
	return &ValidationError{
		Kind:    apperrors.ErrMalformedValue,
		Element: mapping.ParentTag,
		Field:   mapping.XMLTag,
		Line:    line,
		Value:   raw,
		Message: message,
		Err:     err,
	}
}
