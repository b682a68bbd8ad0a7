// =============================================================================
// Asientos XML - File Manager Utility
// =============================================================================
//
// This module provides the file handling shared by the commands:
//   - Output file writing (export XML)
//   - Error log generation (failed imports)
//   - Small file helpers
//
// OUTPUT STRATEGY:
//   - The export file lives at one fixed path and is overwritten every time
//   - There is no backup copy and no write-to-temp-then-rename
//   - Missing parent directories are created
//
// =============================================================================

package utils

import (
	"bufio"
	"fmt"
	"os"
	"path/filepath"
	"time"

	"github.com/google/uuid"
)

// =============================================================================
// OUTPUT FILES
// =============================================================================

// WriteOutputFile writes data to path, replacing any existing file.
//
// PARAMETERS:
//   - path: The destination file.
//   - data: The complete file content.
//
// RETURNS:
//   - An error wrapping the underlying IO failure, if any.
func WriteOutputFile(path string, data []byte) error {
	if dir := filepath.Dir(path); dir != "." {
		if err := os.MkdirAll(dir, 0755); err != nil {
			return fmt.Errorf("failed to create output directory: %w", err)
		}
	}

	if err := os.WriteFile(path, data, 0644); err != nil {
		return fmt.Errorf("failed to write output file: %w", err)
	}

	return nil
}

// =============================================================================
// ERROR LOG GENERATION
// =============================================================================

// ErrorLogEntry represents a single error log entry.
type ErrorLogEntry struct {
	Timestamp    time.Time
	FileName     string
	ErrorType    string
	ErrorMessage string
	ElementName  string
	LineNumber   int
	FieldName    string
	FieldValue   string
	Inserted     int
}

// WriteErrorLog writes error entries to a new log file in outputDir.
//
// PARAMETERS:
//   - entries: The error entries to write.
//   - outputDir: The directory to write the log file.
//
// RETURNS:
//   - The path to the error log file, empty when there was nothing to write.
//   - An error if writing fails.
func WriteErrorLog(entries []ErrorLogEntry, outputDir string) (string, error) {
	if len(entries) == 0 {
		return "", nil
	}

	if err := os.MkdirAll(outputDir, 0755); err != nil {
		return "", fmt.Errorf("failed to create error log directory: %w", err)
	}

	// Two imports within the same second still get distinct files.
	now := time.Now()
	logFileName := fmt.Sprintf("error_log_%s_%s.txt", now.Format("20060102_150405"), uuid.NewString()[:8])
	logPath := filepath.Join(outputDir, logFileName)

	file, err := os.Create(logPath)
	if err != nil {
		return "", fmt.Errorf("failed to create error log: %w", err)
	}
	defer file.Close()

	writer := bufio.NewWriter(file)

	fmt.Fprintf(writer, "Asientos XML - Error Log\n"+
		"Generated: %s\n"+
		"Total Errors: %d\n"+
		"================================================================================\n\n",
		now.Format("2006-01-02 15:04:05"),
		len(entries))

	for i, entry := range entries {
		fmt.Fprintf(writer, "Error #%d\n"+
			"  Timestamp:      %s\n"+
			"  File:           %s\n"+
			"  Error Type:     %s\n"+
			"  Message:        %s\n",
			i+1,
			entry.Timestamp.Format("2006-01-02 15:04:05"),
			entry.FileName,
			entry.ErrorType,
			entry.ErrorMessage)

		if entry.ElementName != "" {
			fmt.Fprintf(writer, "  Element:        %s\n", entry.ElementName)
		}
		if entry.LineNumber > 0 {
			fmt.Fprintf(writer, "  Line Number:    %d\n", entry.LineNumber)
		}
		if entry.FieldName != "" {
			fmt.Fprintf(writer, "  Field:          %s\n", entry.FieldName)
		}
		if entry.FieldValue != "" {
			fmt.Fprintf(writer, "  Value:          %s\n", entry.FieldValue)
		}
		fmt.Fprintf(writer, "  Inserted:       %d\n\n", entry.Inserted)
	}

	writer.WriteString("================================================================================\n" +
		"End of Error Log\n")

	if err := writer.Flush(); err != nil {
		return "", fmt.Errorf("failed to flush error log: %w", err)
	}

	return logPath, nil
}

// =============================================================================
// UTILITY FUNCTIONS
// =============================================================================

// FileExists checks if a file exists.
func FileExists(path string) bool {
	_, err := os.Stat(path)
	return !os.IsNotExist(err)
}
