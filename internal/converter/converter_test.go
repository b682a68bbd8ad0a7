package converter_test

import (
	"context"
	"errors"
	"io"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/charmbracelet/log"
	"github.com/ginjaninja78/asientos-xml/internal/apperrors"
	"github.com/ginjaninja78/asientos-xml/internal/converter"
	"github.com/ginjaninja78/asientos-xml/internal/store/memory"
	"github.com/ginjaninja78/asientos-xml/internal/types"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/xuri/excelize/v2"
)

var entryDate = time.Date(2024, 6, 30, 0, 0, 0, 0, time.UTC)

func quietLogger() *log.Logger {
	return log.New(io.Discard)
}

func ledgerEntry(code, amount string) types.JournalEntry {
	return types.JournalEntry{
		EntryNumber:   types.IntPtr(15),
		Description:   types.StringPtr("Cierre de junio"),
		EntryDate:     entryDate,
		AccountCode:   types.StringPtr(code),
		AccountName:   types.StringPtr("Cuenta " + code),
		AccountNumber: types.StringPtr(code + "-00"),
		MovementType:  types.StringPtr("CR"),
		Amount:        types.Amount(decimal.RequireFromString(amount)),
	}
}

func writeXML(t *testing.T, body string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "asientos.xml")
	require.NoError(t, os.WriteFile(path, []byte(body), 0644))
	return path
}

// =============================================================================
// EXPORT
// =============================================================================

func TestExport_EmptyLedger(t *testing.T) {
	path := filepath.Join(t.TempDir(), "asientos.xml")
	require.NoError(t, os.WriteFile(path, []byte("previous"), 0644))

	exporter := converter.NewExporter(memory.NewTable("asientos"), path, quietLogger())
	result, err := exporter.Export(context.Background())
	require.NoError(t, err)

	assert.True(t, result.Skipped)
	assert.True(t, errors.Is(result.Reason, apperrors.ErrEmptySource))
	assert.Empty(t, result.OutputFile)

	data, err := os.ReadFile(path)
	require.NoError(t, err)
	assert.Equal(t, "previous", string(data), "existing file is left alone")

	missing := filepath.Join(t.TempDir(), "never.xml")
	_, err = converter.NewExporter(memory.NewTable("asientos"), missing, quietLogger()).Export(context.Background())
	require.NoError(t, err)
	assert.NoFileExists(t, missing)
}

func TestExport_WritesDocument(t *testing.T) {
	path := filepath.Join(t.TempDir(), "out", "asientos.xml")
	ledger := memory.NewTable("asientos",
		ledgerEntry("101", "1234.5"),
		ledgerEntry("102", "0"),
	)

	result, err := converter.NewExporter(ledger, path, quietLogger()).Export(context.Background())
	require.NoError(t, err)
	assert.False(t, result.Skipped)
	assert.Equal(t, path, result.OutputFile)
	assert.Equal(t, 2, result.Stats.EntriesRead)
	assert.Equal(t, 2, result.Stats.LinesWritten)

	data, err := os.ReadFile(path)
	require.NoError(t, err)
	content := string(data)
	assert.Contains(t, content, "<Monto>1234.50</Monto>")
	assert.Contains(t, content, "<Monto>0.00</Monto>")
	assert.Contains(t, content, "<DescripcionAsiento>Cierre de junio</DescripcionAsiento>")
	assert.Equal(t, int64(result.Stats.BytesWritten), int64(len(data)))
}

func TestExport_AbsentDescription(t *testing.T) {
	path := filepath.Join(t.TempDir(), "asientos.xml")
	entry := ledgerEntry("101", "10")
	entry.Description = nil

	_, err := converter.NewExporter(memory.NewTable("asientos", entry), path, quietLogger()).Export(context.Background())
	require.NoError(t, err)

	data, err := os.ReadFile(path)
	require.NoError(t, err)
	assert.NotContains(t, string(data), "DescripcionAsiento")
}

func TestExport_HeaderFromFirstEntryOnly(t *testing.T) {
	path := filepath.Join(t.TempDir(), "asientos.xml")
	second := ledgerEntry("102", "5")
	second.EntryNumber = types.IntPtr(99)

	_, err := converter.NewExporter(memory.NewTable("asientos", ledgerEntry("101", "1"), second), path, quietLogger()).
		Export(context.Background())
	require.NoError(t, err)

	data, err := os.ReadFile(path)
	require.NoError(t, err)
	assert.Contains(t, string(data), "<NumeroAsiento>15</NumeroAsiento>")
	assert.NotContains(t, string(data), "99")
}

func TestExport_WriteError(t *testing.T) {
	dir := t.TempDir()
	_, err := converter.NewExporter(memory.NewTable("asientos", ledgerEntry("101", "1")), dir, quietLogger()).
		Export(context.Background())
	assert.Error(t, err)
}

func TestExport_Report(t *testing.T) {
	dir := t.TempDir()
	xmlPath := filepath.Join(dir, "asientos.xml")
	reportPath := filepath.Join(dir, "asientos.xlsx")

	exporter := converter.NewExporter(memory.NewTable("asientos", ledgerEntry("101", "7.5")), xmlPath, quietLogger()).
		WithReport(reportPath)
	result, err := exporter.Export(context.Background())
	require.NoError(t, err)
	assert.Equal(t, reportPath, result.ReportFile)

	f, err := excelize.OpenFile(reportPath)
	require.NoError(t, err)
	defer f.Close()
	value, err := f.GetCellValue("Asientos", "E6")
	require.NoError(t, err)
	assert.Equal(t, "7.50", value)
}

// =============================================================================
// IMPORT
// =============================================================================

const threeLines = `<?xml version="1.0" encoding="UTF-8"?>
<AsientoActivos>
  <Encabezado>
    <NumeroAsiento>8</NumeroAsiento>
    <DescripcionAsiento>Ajuste</DescripcionAsiento>
    <FechaAsiento>2024-01-15</FechaAsiento>
  </Encabezado>
  <Cuentas>
    <Código>101</Código>
    <Nombre>Caja</Nombre>
    <Cuenta>1-01</Cuenta>
    <TipoMovimiento>DB</TipoMovimiento>
    <Monto>100.00</Monto>
  </Cuentas>
  <Cuentas>
    <Código>102</Código>
    <Nombre>Banco</Nombre>
    <Cuenta>1-02</Cuenta>
    <TipoMovimiento>CR</TipoMovimiento>
  </Cuentas>
  <Cuentas>
    <Código>103</Código>
    <Nombre>Otros</Nombre>
    <Cuenta>1-03</Cuenta>
    <TipoMovimiento>CR</TipoMovimiento>
    <Monto>5.00</Monto>
  </Cuentas>
</AsientoActivos>`

func TestImport_StopsAtFirstBadLine(t *testing.T) {
	staging := memory.NewTable("asientos_input")
	importer := converter.NewImporter(staging, quietLogger())

	result, err := importer.Import(context.Background(), writeXML(t, threeLines))
	require.Error(t, err)
	require.NotNil(t, result)

	var partial *apperrors.PartialImportError
	require.True(t, errors.As(err, &partial))
	assert.Equal(t, 1, partial.FailureIndex)
	assert.Equal(t, 1, partial.Inserted)
	assert.True(t, errors.Is(err, apperrors.ErrMissingRequiredField))

	assert.Equal(t, 1, result.Inserted)
	assert.Equal(t, 3, result.Stats.LinesRead)
	assert.Equal(t, 1, staging.Len())

	got, err := staging.FetchAll(context.Background())
	require.NoError(t, err)
	assert.Equal(t, "101", *got[0].AccountCode)
	assert.Equal(t, 8, *got[0].EntryNumber)
}

func TestImport_MissingDate(t *testing.T) {
	staging := memory.NewTable("asientos_input")
	path := writeXML(t, `<AsientoActivos>
  <Encabezado>
    <NumeroAsiento>1</NumeroAsiento>
    <DescripcionAsiento>x</DescripcionAsiento>
  </Encabezado>
  <Cuentas><Código>1</Código><Nombre>a</Nombre><Cuenta>1</Cuenta><TipoMovimiento>DB</TipoMovimiento><Monto>1</Monto></Cuentas>
</AsientoActivos>`)

	result, err := converter.NewImporter(staging, quietLogger()).Import(context.Background(), path)
	require.Error(t, err)
	assert.True(t, errors.Is(err, apperrors.ErrMissingRequiredField))

	var partial *apperrors.PartialImportError
	assert.False(t, errors.As(err, &partial), "header failures happen before any insert")
	assert.Equal(t, 0, result.Inserted)
	assert.Equal(t, 0, staging.Len())
}

func TestImport_DocumentErrors(t *testing.T) {
	tests := []struct {
		name string
		path func(t *testing.T) string
		is   error
	}{
		{
			name: "missing file",
			path: func(t *testing.T) string { return filepath.Join(t.TempDir(), "missing.xml") },
			is:   os.ErrNotExist,
		},
		{
			name: "not xml",
			path: func(t *testing.T) string { return writeXML(t, "asientos") },
			is:   apperrors.ErrMalformedDocument,
		},
		{
			name: "wrong root",
			path: func(t *testing.T) string { return writeXML(t, "<Nomina><Encabezado/></Nomina>") },
			is:   apperrors.ErrMalformedDocument,
		},
		{
			name: "bad amount",
			path: func(t *testing.T) string {
				return writeXML(t, `<AsientoActivos>
  <Encabezado><NumeroAsiento>1</NumeroAsiento><DescripcionAsiento/><FechaAsiento>2024-01-01</FechaAsiento></Encabezado>
  <Cuentas><Código>1</Código><Nombre/><Cuenta/><TipoMovimiento/><Monto>mil</Monto></Cuentas>
</AsientoActivos>`)
			},
			is: apperrors.ErrMalformedValue,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			staging := memory.NewTable("asientos_input")
			_, err := converter.NewImporter(staging, quietLogger()).Import(context.Background(), tt.path(t))
			require.Error(t, err)
			assert.True(t, errors.Is(err, tt.is))
			assert.Equal(t, 0, staging.Len())
		})
	}
}

// failingSink accepts inserts until failAt is reached.
type failingSink struct {
	failAt   int
	inserted []types.JournalEntry
}

func (s *failingSink) Insert(_ context.Context, entry types.JournalEntry) error {
	if len(s.inserted) == s.failAt {
		return errors.New("connection reset")
	}
	s.inserted = append(s.inserted, entry)
	return nil
}

func TestImport_InsertFailure(t *testing.T) {
	dir := t.TempDir()
	xmlPath := filepath.Join(dir, "asientos.xml")
	ledger := memory.NewTable("asientos", ledgerEntry("1", "1"), ledgerEntry("2", "2"), ledgerEntry("3", "3"))
	_, err := converter.NewExporter(ledger, xmlPath, quietLogger()).Export(context.Background())
	require.NoError(t, err)

	sink := &failingSink{failAt: 2}
	result, err := converter.NewImporter(sink, quietLogger()).Import(context.Background(), xmlPath)

	var partial *apperrors.PartialImportError
	require.True(t, errors.As(err, &partial))
	assert.Equal(t, 2, partial.FailureIndex)
	assert.Equal(t, 2, result.Inserted)
	assert.Contains(t, err.Error(), "connection reset")
	assert.Len(t, sink.inserted, 2)
}

// =============================================================================
// ROUND TRIP
// =============================================================================

func TestRoundTrip(t *testing.T) {
	ctx := context.Background()
	xmlPath := filepath.Join(t.TempDir(), "asientos.xml")

	source := []types.JournalEntry{
		ledgerEntry("301", "1234.5"),
		ledgerEntry("302", "0"),
		ledgerEntry("303", "-17.25"),
		ledgerEntry("304", "0.01"),
	}
	source[1].AccountName = types.StringPtr("")

	ledger := memory.NewTable("asientos", source...)
	staging := memory.NewTable("asientos_input")

	_, err := converter.NewExporter(ledger, xmlPath, quietLogger()).Export(ctx)
	require.NoError(t, err)

	// an empty name is omitted on export and then missing on import
	result, err := converter.NewImporter(staging, quietLogger()).Import(ctx, xmlPath)
	var partial *apperrors.PartialImportError
	require.True(t, errors.As(err, &partial))
	assert.Equal(t, 1, partial.FailureIndex)
	assert.Equal(t, 1, result.Inserted)

	// with every line field present the round trip is exact
	source[1].AccountName = types.StringPtr("Banco")
	ledger = memory.NewTable("asientos", source...)
	staging = memory.NewTable("asientos_input")

	_, err = converter.NewExporter(ledger, xmlPath, quietLogger()).Export(ctx)
	require.NoError(t, err)
	result, err = converter.NewImporter(staging, quietLogger()).Import(ctx, xmlPath)
	require.NoError(t, err)
	assert.Equal(t, len(source), result.Inserted)

	got, err := staging.FetchAll(ctx)
	require.NoError(t, err)
	require.Len(t, got, len(source))

	seen := map[string]bool{}
	for i, want := range source {
		g := got[i]
		assert.NotEmpty(t, g.ID)
		assert.False(t, seen[g.ID], "ids are unique")
		seen[g.ID] = true

		assert.Equal(t, *want.EntryNumber, *g.EntryNumber)
		assert.Equal(t, *want.Description, *g.Description)
		assert.True(t, want.EntryDate.Equal(g.EntryDate))
		assert.Equal(t, *want.AccountCode, *g.AccountCode, "order is preserved")
		assert.Equal(t, *want.AccountName, *g.AccountName)
		assert.Equal(t, *want.AccountNumber, *g.AccountNumber)
		assert.Equal(t, *want.MovementType, *g.MovementType)
		require.True(t, g.Amount.Valid)
		assert.True(t, want.Amount.Decimal.Equal(g.Amount.Decimal), "amount %s != %s", want.Amount.Decimal, g.Amount.Decimal)
	}
}
