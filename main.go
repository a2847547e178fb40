// =============================================================================
// Sales Analytics - Main Entry Point
// =============================================================================
//
// This is the main entry point for the Sales Analytics CLI application.
// It initializes the Cobra CLI framework and delegates command execution to
// the cmd package.
//
// USAGE:
//   sales-analytics process       - Run the full pipeline on the input file
//   sales-analytics analyze       - Print aggregates for a cleaned file
//   sales-analytics version       - Display the application version
//
// ARCHITECTURE:
//   cmd/       : CLI command definitions (Cobra)
//   internal/  : core pipeline stages (not for external import)
//   pkg/       : shared utilities
//
// =============================================================================

package main

import (
	"github.com/salesworks/sales-analytics/cmd"
)

// main is the entry point of the application.
func main() {
	cmd.Execute()
}
