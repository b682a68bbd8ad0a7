package xlsxreport_test

import (
	"path/filepath"
	"testing"
	"time"

	"github.com/ginjaninja78/asientos-xml/internal/schema"
	"github.com/ginjaninja78/asientos-xml/internal/types"
	"github.com/ginjaninja78/asientos-xml/internal/xlsxreport"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/xuri/excelize/v2"
)

func TestWrite(t *testing.T) {
	path := filepath.Join(t.TempDir(), "asientos.xlsx")
	batch := &types.Batch{
		Header: types.Header{
			EntryNumber: types.IntPtr(12),
			EntryDate:   time.Date(2024, 5, 9, 0, 0, 0, 0, time.UTC),
		},
		Lines: []types.Line{
			{
				AccountCode:   types.StringPtr("101"),
				AccountName:   types.StringPtr("Caja"),
				AccountNumber: types.StringPtr("1-01"),
				MovementType:  types.StringPtr("DB"),
				Amount:        types.Amount(decimal.RequireFromString("1234.5")),
			},
			{AccountCode: types.StringPtr("201")},
		},
	}

	require.NoError(t, xlsxreport.Write(path, batch, schema.Default))

	f, err := excelize.OpenFile(path)
	require.NoError(t, err)
	defer f.Close()

	assert.Equal(t, []string{xlsxreport.SheetName}, f.GetSheetList())

	rows, err := f.GetRows(xlsxreport.SheetName)
	require.NoError(t, err)
	require.Len(t, rows, 7)

	assert.Equal(t, []string{"NumeroAsiento", "12"}, rows[0])
	assert.Equal(t, []string{"DescripcionAsiento"}, rows[1])
	assert.Equal(t, []string{"FechaAsiento", "2024-05-09"}, rows[2])
	assert.Empty(t, rows[3])
	assert.Equal(t, []string{"Código", "Nombre", "Cuenta", "TipoMovimiento", "Monto"}, rows[4])
	assert.Equal(t, []string{"101", "Caja", "1-01", "DB", "1234.50"}, rows[5])
	assert.Equal(t, []string{"201"}, rows[6])
}

func TestWrite_NilBatch(t *testing.T) {
	err := xlsxreport.Write(filepath.Join(t.TempDir(), "x.xlsx"), nil, schema.Default)
	assert.Error(t, err)
}
