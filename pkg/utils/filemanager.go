// =============================================================================
// Sales Analytics - File Manager Utility
// =============================================================================
//
// File management for the pipeline:
//   - Output directory preparation
//   - Input file archival after a successful run
//   - Output file naming with {uuid}/{timestamp}/{name} placeholders
//
// ARCHIVAL STRATEGY:
//   - The input file is moved to the archive directory only after the whole
//     run succeeds; a failed run leaves it in place for a retry.
//   - Archived names are prefixed with the run timestamp so repeated drops
//     of the same file name never collide.
//
// =============================================================================

package utils

import (
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"
	"time"
)

// FileManager handles file operations for the pipeline.
type FileManager struct {
	// DataDir is the directory for enriched data output.
	DataDir string

	// OutputDir is the directory for reports and workbooks.
	OutputDir string

	// InputArchiveDir is the directory for archived input files.
	InputArchiveDir string
}

// NewFileManager creates a FileManager over the configured directories.
func NewFileManager(dataDir, outputDir, inputArchiveDir string) *FileManager {
	return &FileManager{
		DataDir:         dataDir,
		OutputDir:       outputDir,
		InputArchiveDir: inputArchiveDir,
	}
}

// EnsureDirectories creates the output directories if they do not exist.
func (fm *FileManager) EnsureDirectories() error {
	for _, dir := range []string{fm.DataDir, fm.OutputDir} {
		if err := os.MkdirAll(dir, 0755); err != nil {
			return fmt.Errorf("failed to create directory %s: %w", dir, err)
		}
	}
	return nil
}

// ArchiveInputFile moves a processed input file into the archive directory,
// prefixing the name with a timestamp to avoid collisions.
//
// RETURNS:
//   - The archived path.
//   - An error if the archive directory cannot be created or the file
//     cannot be moved.
func (fm *FileManager) ArchiveInputFile(path string) (string, error) {
	if err := os.MkdirAll(fm.InputArchiveDir, 0755); err != nil {
		return "", fmt.Errorf("failed to create archive directory: %w", err)
	}

	name := fmt.Sprintf("%s_%s", time.Now().Format("20060102_150405"), filepath.Base(path))
	dest := filepath.Join(fm.InputArchiveDir, name)

	if err := os.Rename(path, dest); err != nil {
		// Rename fails across devices; fall back to copy+remove.
		if copyErr := copyFile(path, dest); copyErr != nil {
			return "", fmt.Errorf("failed to archive %s: %w", path, err)
		}
		if rmErr := os.Remove(path); rmErr != nil {
			return "", fmt.Errorf("failed to remove archived source %s: %w", path, rmErr)
		}
	}

	return dest, nil
}

// GenerateOutputFileName expands the placeholders in an output name format:
//
//	{uuid}      - the run ID of the current run
//	{timestamp} - the current time as YYYYMMDD_HHMMSS
//	{name}      - the provided base name
//
// A format without placeholders is returned as-is. The run ID comes from
// the pipeline so that a file named with {uuid} can be traced back to the
// run that produced it.
func GenerateOutputFileName(format, name, runID string) string {
	out := format
	out = strings.ReplaceAll(out, "{uuid}", runID)
	out = strings.ReplaceAll(out, "{timestamp}", time.Now().Format("20060102_150405"))
	out = strings.ReplaceAll(out, "{name}", name)
	return out
}

// FileExists reports whether path exists.
func FileExists(path string) bool {
	_, err := os.Stat(path)
	return err == nil
}

// copyFile copies src to dst, creating dst.
func copyFile(src, dst string) error {
	in, err := os.Open(src)
	if err != nil {
		return err
	}
	defer in.Close()

	out, err := os.Create(dst)
	if err != nil {
		return err
	}
	defer out.Close()

	if _, err := io.Copy(out, in); err != nil {
		return err
	}
	return out.Sync()
}
