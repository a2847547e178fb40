// =============================================================================
// Sales Analytics - Root Command
// =============================================================================
//
// This file defines the root command for the Cobra CLI. All other commands
// ('process', 'analyze', 'version') are attached to it.
//
// COBRA CLI STRUCTURE:
//   sales-analytics
//   ├── process  (run the full pipeline)
//   ├── analyze  (aggregate an already-cleaned file)
//   └── version  (build information)
//
// =============================================================================

package cmd

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"
)

// cfgFile holds the path to the configuration file.
// Overridden with the --config flag.
var cfgFile string

// verbose forces debug-level logging when set.
var verbose bool

// rootCmd is the base command when called without any subcommands.
var rootCmd = &cobra.Command{
	Use:   "sales-analytics",
	Short: "Sales Analytics - ingest, enrich and report on sales transactions",
	Long: `Sales Analytics ingests pipe-delimited sales transaction exports,
validates them against the business rules, enriches them with product
metadata from the catalog API, and produces aggregate analytics plus a
formatted text report.

Example Usage:
  sales-analytics process                         # Process the configured input file
  sales-analytics process --region North          # Keep only the North region
  sales-analytics process --min-amount 500        # Keep only orders worth 500 or more
  sales-analytics analyze data/cleaned_sales_data.txt   # Re-run the aggregates on a prior run's snapshot`,

	Run: func(cmd *cobra.Command, args []string) {
		// No subcommand: print the help message.
		cmd.Help()
	},
}

// Execute adds all child commands to the root command and runs it.
// Called once, by main.main().
func Execute() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}

func init() {
	// Persistent flags are available to this command and all subcommands.
	rootCmd.PersistentFlags().StringVar(
		&cfgFile,
		"config",
		"config.yaml",
		"Path to the configuration file",
	)

	rootCmd.PersistentFlags().BoolVarP(
		&verbose,
		"verbose",
		"v",
		false,
		"Enable verbose output for debugging",
	)
}
