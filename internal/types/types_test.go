package types_test

import (
	"testing"
	"time"

	"github.com/ginjaninja78/asientos-xml/internal/types"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewBatch_Empty(t *testing.T) {
	assert.Nil(t, types.NewBatch(nil))
	assert.Nil(t, types.NewBatch([]types.JournalEntry{}))
}

func TestNewBatch_HeaderFromFirstEntry(t *testing.T) {
	date := time.Date(2024, 3, 15, 0, 0, 0, 0, time.UTC)
	entries := []types.JournalEntry{
		{
			EntryNumber: types.IntPtr(7),
			Description: types.StringPtr("Depreciación"),
			EntryDate:   date,
			AccountCode: types.StringPtr("A1"),
			Amount:      types.Amount(decimal.RequireFromString("10")),
		},
		{
			EntryNumber: types.IntPtr(99),
			Description: types.StringPtr("otra"),
			EntryDate:   date.AddDate(0, 0, 1),
			AccountCode: types.StringPtr("A2"),
		},
	}

	batch := types.NewBatch(entries)
	require.NotNil(t, batch)

	assert.Equal(t, 7, *batch.Header.EntryNumber)
	assert.Equal(t, "Depreciación", *batch.Header.Description)
	assert.True(t, date.Equal(batch.Header.EntryDate))
	require.Len(t, batch.Lines, 2)
	assert.Equal(t, "A1", *batch.Lines[0].AccountCode)
	assert.Equal(t, "A2", *batch.Lines[1].AccountCode)
	assert.False(t, batch.Lines[1].Amount.Valid)
}

func TestBatch_Entries(t *testing.T) {
	date := time.Date(2024, 1, 2, 0, 0, 0, 0, time.UTC)
	batch := &types.Batch{
		Header: types.Header{EntryNumber: types.IntPtr(1), EntryDate: date},
		Lines: []types.Line{
			{AccountCode: types.StringPtr("X")},
			{AccountCode: types.StringPtr("Y")},
		},
	}

	entries := batch.Entries()
	require.Len(t, entries, 2)
	for _, e := range entries {
		assert.Equal(t, 1, *e.EntryNumber)
		assert.True(t, date.Equal(e.EntryDate))
	}
	assert.Equal(t, "X", *entries[0].AccountCode)
	assert.Equal(t, "Y", *entries[1].AccountCode)
}

func TestNonEmpty(t *testing.T) {
	assert.False(t, types.NonEmpty(nil))
	assert.False(t, types.NonEmpty(types.StringPtr("")))
	assert.True(t, types.NonEmpty(types.StringPtr(" ")))
}
