// =============================================================================
// Asientos XML - Converter Module
// =============================================================================
//
// This module contains the two operations of the application:
//
//   EXPORT (exporter.go)
//     1. Read every entry of the ledger collection
//     2. Stop quietly if there is nothing to export
//     3. Build the batch (header from the first entry, one line per entry)
//     4. Generate the XML document
//     5. Write it to the configured path, replacing the previous file
//     6. Optionally write the XLSX companion report
//
//   IMPORT (importer.go)
//     1. Parse the XML file
//     2. Validate the header; any problem stops before anything is inserted
//     3. Validate and insert each line in document order
//     4. Stop at the first failing line; earlier inserts stay in place
//
// Neither operation retries, and neither prints to the terminal. The commands
// in cmd/ turn results into operator messages.
//
// =============================================================================

package converter

import (
	"time"
)

// =============================================================================
// RESULT STRUCTURES
// =============================================================================

// ExportResult represents the outcome of one export.
type ExportResult struct {
	// OutputFile is the XML file that was written. Empty when skipped.
	OutputFile string

	// ReportFile is the XLSX report that was written, if one was configured.
	ReportFile string

	// Skipped is true when nothing was written.
	Skipped bool

	// Reason explains a skip; apperrors.ErrEmptySource when the ledger was empty.
	Reason error

	Stats ExportStats
}

// ExportStats contains statistics about an export.
type ExportStats struct {
	// EntriesRead is the number of ledger rows fetched.
	EntriesRead int

	// LinesWritten is the number of Cuentas elements in the document.
	LinesWritten int

	// BytesWritten is the size of the XML document.
	BytesWritten int

	ProcessingTime time.Duration
}

// ImportResult represents the outcome of one import. It is returned even when
// the import fails, so Inserted always reports what was committed.
type ImportResult struct {
	// FilePath is the XML file that was read.
	FilePath string

	// Inserted is the number of entries added to the staging collection.
	Inserted int

	Stats ImportStats
}

// ImportStats contains statistics about an import.
type ImportStats struct {
	// LinesRead is the number of Cuentas elements found in the document.
	LinesRead int

	ProcessingTime time.Duration
}
