// =============================================================================
// Sales Analytics - Configuration Module
// =============================================================================
//
// This module loads and validates the application configuration. A single
// YAML file drives the whole pipeline; when the file is absent the built-in
// defaults match the original deployment (data/sales_data.txt in,
// output/ and data/ out, dummyjson catalog).
//
// CONFIGURATION SOURCES:
//   1. Built-in defaults (DefaultConfig)
//   2. config.yaml (or the --config override), merged over the defaults
//
// =============================================================================

package config

import (
	"fmt"
	"os"

	"gopkg.in/yaml.v3"
)

// =============================================================================
// MATCH POLICY
// =============================================================================

// MatchPolicy controls what the catalog matcher does with a transaction no
// catalog product could be found for. The two behaviors are mutually
// exclusive; the active one is always an explicit configuration choice.
type MatchPolicy string

const (
	// MatchPolicyStrict marks unmatched transactions with APIMatch=false and
	// leaves the catalog fields nil. This is the default.
	MatchPolicyStrict MatchPolicy = "strict"

	// MatchPolicyPlaceholder substitutes the configured placeholder category
	// and brand and reports APIMatch=true for every transaction.
	MatchPolicyPlaceholder MatchPolicy = "placeholder"
)

// =============================================================================
// CONFIGURATION STRUCTURES
// =============================================================================

// Config holds the full application configuration.
type Config struct {
	// =========================================================================
	// FILE SETTINGS
	// =========================================================================

	// InputFile is the pipe-delimited sales file to process.
	// Default: "data/sales_data.txt"
	InputFile string `yaml:"input_file"`

	// DataDir is the directory for enriched data output.
	// Default: "data"
	DataDir string `yaml:"data_dir"`

	// OutputDir is the directory for reports and workbooks.
	// Default: "output"
	OutputDir string `yaml:"output_dir"`

	// InputArchiveDir is where processed input files are moved after a
	// successful run. Archival only happens when ArchiveInputs is true.
	// Default: "input_archive"
	InputArchiveDir string `yaml:"input_archive_dir"`

	// ArchiveInputs enables moving the input file to the archive directory
	// after a successful run.
	// Default: false
	ArchiveInputs bool `yaml:"archive_inputs"`

	// ReportFileFormat is the report file name. Placeholders:
	//   {timestamp} - run start time (YYYYMMDD_HHMMSS)
	//   {uuid}      - the run ID
	// Default: "sales_report.txt"
	ReportFileFormat string `yaml:"report_file_format"`

	// =========================================================================
	// LOGGING SETTINGS
	// =========================================================================

	// LogLevel controls diagnostic verbosity: "debug", "info", "warn",
	// "error". The --verbose flag forces "debug".
	// Default: "info"
	LogLevel string `yaml:"log_level"`

	// =========================================================================
	// CATALOG API SETTINGS
	// =========================================================================

	// API configures the product catalog fetch.
	API APIConfig `yaml:"api"`

	// =========================================================================
	// REPORT SETTINGS
	// =========================================================================

	// Report configures the analytics and report rendering.
	Report ReportConfig `yaml:"report"`
}

// APIConfig configures the single catalog fetch.
type APIConfig struct {
	// URL is the product-listing endpoint.
	// Default: "https://dummyjson.com/products?limit=100"
	URL string `yaml:"url"`

	// TimeoutSeconds bounds the fetch. A slow or failed fetch degrades to an
	// empty catalog, it never aborts the pipeline.
	// Default: 10
	TimeoutSeconds int `yaml:"timeout_seconds"`

	// MatchPolicy selects the unmatched-transaction behavior.
	// Valid values: "strict", "placeholder". Default: "strict"
	MatchPolicy MatchPolicy `yaml:"match_policy"`

	// PlaceholderCategory is the category substituted under the
	// "placeholder" policy.
	// Default: "general"
	PlaceholderCategory string `yaml:"placeholder_category"`

	// PlaceholderBrand is the brand substituted under the "placeholder"
	// policy.
	// Default: "Generic"
	PlaceholderBrand string `yaml:"placeholder_brand"`
}

// ReportConfig configures aggregate computation and report rendering.
type ReportConfig struct {
	// TopN is the number of products and customers shown in the ranking
	// tables.
	// Default: 5
	TopN int `yaml:"top_n"`

	// LowPerformerThreshold: products with total quantity strictly below
	// this value are listed as low performers.
	// Default: 10
	LowPerformerThreshold int `yaml:"low_performer_threshold"`

	// CurrencySymbol prefixes every currency value in the report.
	// Default: "₹"
	CurrencySymbol string `yaml:"currency_symbol"`
}

// =============================================================================
// DEFAULTS AND LOADING
// =============================================================================

// DefaultConfig returns the built-in configuration.
func DefaultConfig() *Config {
	return &Config{
		InputFile:        "data/sales_data.txt",
		DataDir:          "data",
		OutputDir:        "output",
		InputArchiveDir:  "input_archive",
		ArchiveInputs:    false,
		ReportFileFormat: "sales_report.txt",
		LogLevel:         "info",
		API: APIConfig{
			URL:                 "https://dummyjson.com/products?limit=100",
			TimeoutSeconds:      10,
			MatchPolicy:         MatchPolicyStrict,
			PlaceholderCategory: "general",
			PlaceholderBrand:    "Generic",
		},
		Report: ReportConfig{
			TopN:                  5,
			LowPerformerThreshold: 10,
			CurrencySymbol:        "₹",
		},
	}
}

// Load reads the YAML configuration at path, merged over the defaults.
//
// RETURNS:
//   - The merged configuration.
//   - An error if the file exists but cannot be read, parsed or validated.
//
// A missing file is not an error: the defaults are returned, so the tool
// runs out of the box without a config.yaml.
func Load(path string) (*Config, error) {
	cfg := DefaultConfig()

	data, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) {
			return cfg, nil
		}
		return nil, fmt.Errorf("failed to read config file: %w", err)
	}

	if err := yaml.Unmarshal(data, cfg); err != nil {
		return nil, fmt.Errorf("failed to parse config file: %w", err)
	}

	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("invalid configuration: %w", err)
	}

	return cfg, nil
}

// Validate checks the loaded values.
func (c *Config) Validate() error {
	if c.InputFile == "" {
		return fmt.Errorf("input_file must not be empty")
	}
	if c.API.TimeoutSeconds <= 0 {
		return fmt.Errorf("api.timeout_seconds must be positive, got %d", c.API.TimeoutSeconds)
	}
	switch c.API.MatchPolicy {
	case MatchPolicyStrict, MatchPolicyPlaceholder:
	default:
		return fmt.Errorf("api.match_policy must be %q or %q, got %q",
			MatchPolicyStrict, MatchPolicyPlaceholder, c.API.MatchPolicy)
	}
	if c.Report.TopN <= 0 {
		return fmt.Errorf("report.top_n must be positive, got %d", c.Report.TopN)
	}
	if c.Report.LowPerformerThreshold < 0 {
		return fmt.Errorf("report.low_performer_threshold must not be negative, got %d",
			c.Report.LowPerformerThreshold)
	}
	return nil
}
