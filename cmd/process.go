// =============================================================================
// Asientos XML - Processing Pipeline
// =============================================================================
//
// This file holds the steps shared by the one-shot commands and the menu:
//
//   openStore  -> connect to the configured datastore
//   runExport  -> ledger collection -> XML file (+ optional XLSX report)
//   runImport  -> XML file -> staging collection (+ optional error log)
//
// Operator messages are written to out in Spanish; diagnostics go to the
// logger. An error returned here has already been logged.
//
// =============================================================================

package cmd

import (
	"context"
	"errors"
	"fmt"
	"io"
	"time"

	"github.com/ginjaninja78/asientos-xml/internal/apperrors"
	"github.com/ginjaninja78/asientos-xml/internal/config"
	"github.com/ginjaninja78/asientos-xml/internal/converter"
	"github.com/ginjaninja78/asientos-xml/internal/store"
	"github.com/ginjaninja78/asientos-xml/internal/validation"
	"github.com/ginjaninja78/asientos-xml/pkg/utils"
)

// Operator messages.
const (
	msgEmptyLedger     = "No hay asientos para generar el reporte."
	msgExportDone      = "Archivo XML generado de forma satisfactoria."
	msgImportDone      = "Datos insertados en la colección '%s' con éxito.\n"
	msgImportPartial   = "Se insertaron %d asiento(s) antes del error.\n"
	msgErrorLogWritten = "Registro de errores: %s\n"
)

// =============================================================================
// DATASTORE
// =============================================================================

// openStore connects to the datastore described by the loaded configuration.
func openStore(ctx context.Context, cfg *config.Config) (*store.Store, error) {
	s, err := store.Open(ctx, cfg.Database, logger)
	if err != nil {
		return nil, fmt.Errorf("failed to open datastore: %w", err)
	}
	return s, nil
}

// =============================================================================
// EXPORT
// =============================================================================

// runExport writes the ledger collection to the configured XML file.
func runExport(ctx context.Context, s *store.Store, cfg *config.Config, out io.Writer) error {
	exporter := converter.NewExporter(s.Ledger, cfg.Files.XMLPath, logger).
		WithReport(cfg.Files.XLSXReport)

	result, err := exporter.Export(ctx)
	if err != nil {
		logger.Error("export failed", "err", err)
		return err
	}

	if result.Skipped {
		fmt.Fprintln(out, msgEmptyLedger)
		return nil
	}

	fmt.Fprintln(out, msgExportDone)
	return nil
}

// =============================================================================
// IMPORT
// =============================================================================

// runImport appends the entries of the file at path to the staging collection.
func runImport(ctx context.Context, s *store.Store, cfg *config.Config, path string, out io.Writer) error {
	importer := converter.NewImporter(s.Staging, logger)

	result, err := importer.Import(ctx, path)
	if err != nil {
		logger.Error("import failed", "file", path, "err", err)

		var partial *apperrors.PartialImportError
		if errors.As(err, &partial) && partial.Inserted > 0 {
			fmt.Fprintf(out, msgImportPartial, partial.Inserted)
		}

		if cfg.Files.ErrorLogDir != "" {
			logPath, logErr := utils.WriteErrorLog([]utils.ErrorLogEntry{errorLogEntry(path, err, result.Inserted)}, cfg.Files.ErrorLogDir)
			if logErr != nil {
				logger.Warn("could not write error log", "err", logErr)
			} else {
				fmt.Fprintf(out, msgErrorLogWritten, logPath)
			}
		}
		return err
	}

	fmt.Fprintf(out, msgImportDone, cfg.Database.StagingTable)
	return nil
}

// errorLogEntry describes a failed import for the error log.
func errorLogEntry(path string, err error, inserted int) utils.ErrorLogEntry {
	entry := utils.ErrorLogEntry{
		Timestamp:    time.Now(),
		FileName:     path,
		ErrorType:    errorType(err),
		ErrorMessage: err.Error(),
		Inserted:     inserted,
	}

	var ve *validation.ValidationError
	if errors.As(err, &ve) {
		entry.ElementName = ve.Element
		entry.LineNumber = ve.Line
		entry.FieldName = ve.Field
		entry.FieldValue = ve.Value
	}

	return entry
}

func errorType(err error) string {
	switch {
	case errors.Is(err, apperrors.ErrMissingRequiredField):
		return "MissingRequiredField"
	case errors.Is(err, apperrors.ErrMalformedValue):
		return "MalformedValue"
	case errors.Is(err, apperrors.ErrMalformedDocument):
		return "MalformedDocument"
	}

	var partial *apperrors.PartialImportError
	if errors.As(err, &partial) {
		return "InsertFailed"
	}
	return "IOError"
}
