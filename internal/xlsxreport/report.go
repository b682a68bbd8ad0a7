// =============================================================================
// Asientos XML - XLSX Report Module
// =============================================================================
//
// This module writes an exported batch to a spreadsheet so that it can be
// reviewed without reading the XML. The workbook has one sheet:
//
//   A                     B
//   NumeroAsiento         12
//   DescripcionAsiento    Compra de activos
//   FechaAsiento          2024-05-09
//   (blank row)
//   Código | Nombre | Cuenta | TipoMovimiento | Monto
//   101    | Caja   | 1-01   | DB             | 1234.50
//
// Column titles are the XML tag names, so the sheet and the file line up.
//
// =============================================================================

package xlsxreport

import (
	"fmt"

	"github.com/ginjaninja78/asientos-xml/internal/schema"
	"github.com/ginjaninja78/asientos-xml/internal/types"
	"github.com/ginjaninja78/asientos-xml/internal/xmlwriter"
	"github.com/xuri/excelize/v2"
)

// SheetName is the name of the only sheet in the workbook.
const SheetName = "Asientos"

// Write saves batch as a workbook at path, replacing any existing file.
func Write(path string, batch *types.Batch, sch *schema.Schema) error {
	if batch == nil {
		return fmt.Errorf("cannot write report: batch is nil")
	}

	f := excelize.NewFile()
	defer f.Close()

	if err := f.SetSheetName("Sheet1", SheetName); err != nil {
		return fmt.Errorf("failed to create sheet: %w", err)
	}

	row := 1
	for _, mapping := range sch.HeaderFields() {
		if err := setRow(f, row, mapping.XMLTag, headerValue(batch.Header, mapping.Field)); err != nil {
			return err
		}
		row++
	}

	// leave one blank row between the header block and the lines
	row++

	lineFields := sch.LineFields()
	titles := make([]interface{}, len(lineFields))
	for i, mapping := range lineFields {
		titles[i] = mapping.XMLTag
	}
	if err := setRow(f, row, titles...); err != nil {
		return err
	}
	row++

	for _, line := range batch.Lines {
		values := make([]interface{}, len(lineFields))
		for i, mapping := range lineFields {
			values[i] = lineValue(line, mapping.Field)
		}
		if err := setRow(f, row, values...); err != nil {
			return err
		}
		row++
	}

	f.SetColWidth(SheetName, "A", "A", 20)
	f.SetColWidth(SheetName, "B", "E", 16)

	if err := f.SaveAs(path); err != nil {
		return fmt.Errorf("failed to save report: %w", err)
	}

	return nil
}

// setRow writes values into consecutive cells starting at column A.
func setRow(f *excelize.File, row int, values ...interface{}) error {
	cell, err := excelize.CoordinatesToCellName(1, row)
	if err != nil {
		return fmt.Errorf("failed to address row %d: %w", row, err)
	}
	if err := f.SetSheetRow(SheetName, cell, &values); err != nil {
		return fmt.Errorf("failed to write row %d: %w", row, err)
	}
	return nil
}

func headerValue(h types.Header, field string) string {
	switch field {
	case schema.FieldEntryNumber:
		if h.EntryNumber != nil {
			return fmt.Sprint(*h.EntryNumber)
		}
	case schema.FieldDescription:
		if h.Description != nil {
			return *h.Description
		}
	case schema.FieldEntryDate:
		return h.EntryDate.Format(types.DateLayout)
	}
	return ""
}

func lineValue(l types.Line, field string) string {
	var s *string
	switch field {
	case schema.FieldAccountCode:
		s = l.AccountCode
	case schema.FieldAccountName:
		s = l.AccountName
	case schema.FieldAccountNumber:
		s = l.AccountNumber
	case schema.FieldMovementType:
		s = l.MovementType
	case schema.FieldAmount:
		return xmlwriter.FormatAmount(l)
	}
	if s == nil {
		return ""
	}
	return *s
}
