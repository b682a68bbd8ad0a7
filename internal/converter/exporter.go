package converter

import (
	"context"
	"fmt"
	"time"

	"github.com/charmbracelet/log"
	"github.com/ginjaninja78/asientos-xml/internal/apperrors"
	"github.com/ginjaninja78/asientos-xml/internal/schema"
	"github.com/ginjaninja78/asientos-xml/internal/store"
	"github.com/ginjaninja78/asientos-xml/internal/types"
	"github.com/ginjaninja78/asientos-xml/internal/xlsxreport"
	"github.com/ginjaninja78/asientos-xml/internal/xmlwriter"
	"github.com/ginjaninja78/asientos-xml/pkg/utils"
)

// Exporter writes the ledger collection to the interchange file.
type Exporter struct {
	source store.LedgerSource
	schema *schema.Schema
	logger *log.Logger

	// xmlPath is overwritten on every successful export.
	xmlPath string

	// reportPath, when set, receives an XLSX copy of the batch.
	reportPath string
}

// NewExporter creates an Exporter that reads from source and writes xmlPath.
func NewExporter(source store.LedgerSource, xmlPath string, logger *log.Logger) *Exporter {
	return &Exporter{
		source:  source,
		schema:  schema.Default,
		logger:  logger,
		xmlPath: xmlPath,
	}
}

// WithReport makes the exporter also write an XLSX report to path.
// An empty path disables the report.
func (e *Exporter) WithReport(path string) *Exporter {
	e.reportPath = path
	return e
}

// Export runs one export. An empty ledger is not an error: the result is
// marked Skipped with apperrors.ErrEmptySource and no file is touched.
func (e *Exporter) Export(ctx context.Context) (*ExportResult, error) {
	startTime := time.Now()
	result := &ExportResult{}

	entries, err := e.source.FetchAll(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to read ledger: %w", err)
	}
	result.Stats.EntriesRead = len(entries)

	batch := types.NewBatch(entries)
	if batch == nil {
		e.logger.Info("ledger is empty, nothing exported")
		result.Skipped = true
		result.Reason = apperrors.ErrEmptySource
		return result, nil
	}

	e.logger.Debug("building document", "entries", len(entries))

	xmlDoc, err := xmlwriter.GenerateWithOptions(batch, e.schema, xmlwriter.DefaultGenerateOptions())
	if err != nil {
		return nil, fmt.Errorf("failed to generate XML: %w", err)
	}

	if err := utils.WriteOutputFile(e.xmlPath, xmlDoc); err != nil {
		return nil, err
	}

	result.OutputFile = e.xmlPath
	result.Stats.LinesWritten = len(batch.Lines)
	result.Stats.BytesWritten = len(xmlDoc)
	e.logger.Info("wrote XML file", "path", e.xmlPath, "lines", len(batch.Lines))

	if e.reportPath != "" {
		// the XML stays in place when the report fails
		if err := xlsxreport.Write(e.reportPath, batch, e.schema); err != nil {
			return result, fmt.Errorf("XML written to %s but report failed: %w", e.xmlPath, err)
		}
		result.ReportFile = e.reportPath
		e.logger.Info("wrote XLSX report", "path", e.reportPath)
	}

	result.Stats.ProcessingTime = time.Since(startTime)
	return result, nil
}
