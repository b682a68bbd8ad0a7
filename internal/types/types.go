// =============================================================================
// Asientos XML - Shared Types
// =============================================================================
//
// This package contains the record shape shared by the exporter, the importer
// and every datastore backend. Types defined here are used by:
//   - converter
//   - validation
//   - xmlwriter
//   - xlsxreport
//   - store/*
//
// A journal entry ("asiento") is stored as one JournalEntry per line. On the
// wire it becomes a Batch: one Header shared by all lines plus the ordered
// lines themselves.
//
// =============================================================================

package types

import (
	"time"

	"github.com/shopspring/decimal"
)

// DateLayout is the wire layout of FechaAsiento (yyyy-MM-dd).
const DateLayout = "2006-01-02"

// =============================================================================
// RECORD TYPES
// =============================================================================

// JournalEntry is one row of the ledger or staging collection.
type JournalEntry struct {
	// ID is the datastore identity of the row. It never travels in the XML.
	ID string

	// Header fields, identical across all lines of one entry.
	EntryNumber *int
	Description *string
	EntryDate   time.Time

	// Line fields.
	AccountCode   *string
	AccountName   *string
	AccountNumber *string
	MovementType  *string

	// Amount is absent when Valid is false. A zero amount is still present.
	Amount decimal.NullDecimal
}

// Header holds the fields shared by every line of a batch.
type Header struct {
	EntryNumber *int
	Description *string
	EntryDate   time.Time
}

// Line is one account movement.
type Line struct {
	AccountCode   *string
	AccountName   *string
	AccountNumber *string
	MovementType  *string
	Amount        decimal.NullDecimal
}

// Batch is the two-part record written to and read from the XML file.
type Batch struct {
	Header Header
	Lines  []Line
}

// =============================================================================
// CONSTRUCTION
// =============================================================================

// NewBatch builds a batch from ledger rows. The header is taken from the first
// row only; header values carried by later rows are discarded without being
// compared. It returns nil for an empty slice.
func NewBatch(entries []JournalEntry) *Batch {
	if len(entries) == 0 {
		return nil
	}

	first := entries[0]
	batch := &Batch{
		Header: Header{
			EntryNumber: first.EntryNumber,
			Description: first.Description,
			EntryDate:   first.EntryDate,
		},
		Lines: make([]Line, len(entries)),
	}

	for i, e := range entries {
		batch.Lines[i] = e.Line()
	}

	return batch
}

// Line returns the per-line part of the entry.
func (e JournalEntry) Line() Line {
	return Line{
		AccountCode:   e.AccountCode,
		AccountName:   e.AccountName,
		AccountNumber: e.AccountNumber,
		MovementType:  e.MovementType,
		Amount:        e.Amount,
	}
}

// Entry combines the header with one line into a full record.
func (h Header) Entry(line Line) JournalEntry {
	return JournalEntry{
		EntryNumber:   h.EntryNumber,
		Description:   h.Description,
		EntryDate:     h.EntryDate,
		AccountCode:   line.AccountCode,
		AccountName:   line.AccountName,
		AccountNumber: line.AccountNumber,
		MovementType:  line.MovementType,
		Amount:        line.Amount,
	}
}

// Entries expands the batch back into one record per line, in order.
func (b *Batch) Entries() []JournalEntry {
	entries := make([]JournalEntry, len(b.Lines))
	for i, line := range b.Lines {
		entries[i] = b.Header.Entry(line)
	}
	return entries
}

// =============================================================================
// HELPERS
// =============================================================================

// StringPtr returns a pointer to s.
func StringPtr(s string) *string {
	return &s
}

// IntPtr returns a pointer to n.
func IntPtr(n int) *int {
	return &n
}

// Amount wraps d as a present amount.
func Amount(d decimal.Decimal) decimal.NullDecimal {
	return decimal.NullDecimal{Decimal: d, Valid: true}
}

// NonEmpty reports whether s is set and not the empty string.
func NonEmpty(s *string) bool {
	return s != nil && *s != ""
}
