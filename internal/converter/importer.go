package converter

import (
	"context"
	"time"

	"github.com/charmbracelet/log"
	"github.com/ginjaninja78/asientos-xml/internal/apperrors"
	"github.com/ginjaninja78/asientos-xml/internal/schema"
	"github.com/ginjaninja78/asientos-xml/internal/store"
	"github.com/ginjaninja78/asientos-xml/internal/validation"
	"github.com/ginjaninja78/asientos-xml/internal/xmlparser"
	"github.com/google/uuid"
)

// Importer appends the entries of an interchange file to the staging collection.
type Importer struct {
	sink      store.StagingSink
	validator *validation.Validator
	logger    *log.Logger
}

// NewImporter creates an Importer that inserts into sink.
func NewImporter(sink store.StagingSink, logger *log.Logger) *Importer {
	return &Importer{
		sink:      sink,
		validator: validation.NewValidator(schema.Default),
		logger:    logger,
	}
}

// Import reads the file at path and inserts one entry per Cuentas element.
//
// A problem with the document or its header is returned as is and nothing is
// inserted. A problem with a line, either in validation or in the insert, is
// returned as *apperrors.PartialImportError; lines before it stay inserted.
// The result is never nil.
func (i *Importer) Import(ctx context.Context, path string) (*ImportResult, error) {
	result := &ImportResult{FilePath: path}

	doc, err := xmlparser.Parse(path)
	if err != nil {
		return result, err
	}

	err = i.importDocument(ctx, doc, result)
	return result, err
}

func (i *Importer) importDocument(ctx context.Context, doc *xmlparser.Document, result *ImportResult) error {
	startTime := time.Now()
	result.Stats.LinesRead = len(doc.Lines)

	header, err := i.validator.ValidateHeader(doc.Header)
	if err != nil {
		i.logger.Warn("rejected header", "err", err)
		return err
	}

	for idx, element := range doc.Lines {
		line, err := i.validator.ValidateLine(element, idx)
		if err != nil {
			return i.stop(result, idx, err)
		}

		entry := header.Entry(line)
		entry.ID = uuid.NewString()

		if err := i.sink.Insert(ctx, entry); err != nil {
			return i.stop(result, idx, err)
		}
		result.Inserted++
	}

	result.Stats.ProcessingTime = time.Since(startTime)
	i.logger.Info("imported file", "path", result.FilePath, "inserted", result.Inserted)
	return nil
}

func (i *Importer) stop(result *ImportResult, idx int, err error) error {
	i.logger.Warn("import stopped", "line", idx+1, "inserted", result.Inserted, "err", err)
	return &apperrors.PartialImportError{
		Inserted:     result.Inserted,
		FailureIndex: idx,
		Err:          err,
	}
}
