// =============================================================================
// Asientos XML - Main Entry Point
// =============================================================================
//
// This is the main entry point for the Asientos XML CLI application.
// It delegates command execution to the cmd package.
//
// USAGE:
//   asientos                - Interactive menu
//   asientos export         - Write the ledger collection to the XML file
//   asientos import         - Load the XML file into the staging collection
//   asientos schema         - Print the XSD of the file format
//   asientos config         - Print the effective configuration
//   asientos version        - Display the application version
//
// ARCHITECTURE:
//   - cmd/           : CLI command definitions (Cobra)
//   - internal/      : Core logic (types, schema, XML, validation, store)
//   - pkg/           : Shared file utilities
//
// =============================================================================

package main

import (
	"github.com/ginjaninja78/asientos-xml/cmd"
)

func main() {
	cmd.Execute()
}
