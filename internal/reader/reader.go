// =============================================================================
// Sales Analytics - Input Reader Module
// =============================================================================
//
// This module reads the raw pipe-delimited sales file. Legacy exports arrive
// in a mix of encodings, so the reader tries UTF-8 first and falls back to
// the two single-byte encodings seen in the field:
//   1. UTF-8
//   2. ISO-8859-1 (latin-1)
//   3. Windows-1252
//
// The header line and blank lines are skipped; everything else is returned
// verbatim, in file order, for the parser to deal with.
//
// ERROR HANDLING:
//   - A missing file is a fatal error for the stage and is surfaced.
//   - A decode failure moves on to the next encoding; only when every
//     encoding fails is the file reported as unreadable.
//
// =============================================================================

package reader

import (
	"bufio"
	"bytes"
	"fmt"
	"os"
	"strings"
	"unicode/utf8"

	"golang.org/x/text/encoding"
	"golang.org/x/text/encoding/charmap"
	"golang.org/x/text/transform"
)

// fallbackEncodings are tried, in order, when the file is not valid UTF-8.
var fallbackEncodings = []struct {
	name string
	enc  encoding.Encoding
}{
	{"ISO-8859-1", charmap.ISO8859_1},
	{"Windows-1252", charmap.Windows1252},
}

// ReadSalesLines reads the sales file at path and returns its data lines.
//
// PARAMETERS:
//   - path: the pipe-delimited input file.
//
// RETURNS:
//   - The trimmed, non-empty lines after the header, in file order.
//   - An error if the file cannot be opened or decoded with any supported
//     encoding.
func ReadSalesLines(path string) ([]string, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read sales file %s: %w", path, err)
	}

	text, err := decode(data)
	if err != nil {
		return nil, fmt.Errorf("failed to decode sales file %s: %w", path, err)
	}

	lines, err := splitDataLines(text)
	if err != nil {
		return nil, fmt.Errorf("failed to scan sales file %s: %w", path, err)
	}
	return lines, nil
}

// decode returns the file contents as a UTF-8 string, trying the supported
// encodings in order.
func decode(data []byte) (string, error) {
	if utf8.Valid(data) {
		return string(data), nil
	}

	for _, fallback := range fallbackEncodings {
		decoded, _, err := transform.Bytes(fallback.enc.NewDecoder(), data)
		if err == nil {
			return string(decoded), nil
		}
	}

	return "", fmt.Errorf("file is not valid UTF-8, ISO-8859-1 or Windows-1252")
}

// splitDataLines drops the header line and blank lines, trimming the rest.
// A scan failure (a line over the buffer limit) is an error: silently
// dropping the rest of the file would corrupt every downstream count.
func splitDataLines(text string) ([]string, error) {
	scanner := bufio.NewScanner(bytes.NewReader([]byte(text)))
	scanner.Buffer(make([]byte, 0, 64*1024), 1024*1024)

	var lines []string
	first := true
	for scanner.Scan() {
		line := strings.TrimSpace(scanner.Text())
		if first {
			// Header row, always present in the export.
			first = false
			continue
		}
		if line == "" {
			continue
		}
		lines = append(lines, line)
	}

	if err := scanner.Err(); err != nil {
		return nil, err
	}
	return lines, nil
}
