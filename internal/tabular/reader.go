// Package tabular reads the CSV files exported from spreadsheets and desktop tools.
package tabular

import (
	"bytes"
	"encoding/csv"
	"errors"
	"fmt"
	"io"
	"os"
	"strings"
	"unicode/utf8"

	"golang.org/x/text/encoding/charmap"
)

// ErrNoHeader is returned when a file has no header row.
var ErrNoHeader = errors.New("missing header row")

// Table is a parsed CSV file with a normalized header index.
type Table struct {
	index  map[string]int
	Header []string
	Rows   [][]string
}

// ReadFile reads a CSV file from disk.
func ReadFile(path string) (*Table, error) {
	data, err := os.ReadFile(path) // #nosec G304
	if err != nil {
		return nil, err
	}
	return Parse(data)
}

// Parse decodes CSV bytes. Input that is not valid UTF-8 is treated as Windows-1252,
// which is what Excel writes on Windows.
func Parse(data []byte) (*Table, error) {
	data = bytes.TrimPrefix(data, []byte("\xef\xbb\xbf"))
	if !utf8.Valid(data) {
		decoded, err := charmap.Windows1252.NewDecoder().Bytes(data)
		if err != nil {
			return nil, fmt.Errorf("failed to decode cp1252: %w", err)
		}
		data = decoded
	}

	r := csv.NewReader(bytes.NewReader(data))
	r.FieldsPerRecord = -1
	r.TrimLeadingSpace = true

	header, err := r.Read()
	if errors.Is(err, io.EOF) {
		return nil, ErrNoHeader
	}
	if err != nil {
		return nil, fmt.Errorf("failed to read header: %w", err)
	}

	t := &Table{
		Header: header,
		index:  make(map[string]int, len(header)),
	}
	for i, h := range header {
		key := NormalizeHeader(h)
		if _, dup := t.index[key]; !dup {
			t.index[key] = i
		}
	}

	for {
		record, err := r.Read()
		if errors.Is(err, io.EOF) {
			break
		}
		if err != nil {
			return nil, fmt.Errorf("failed to read row: %w", err)
		}
		if isBlank(record) {
			continue
		}
		t.Rows = append(t.Rows, record)
	}

	return t, nil
}

// NormalizeHeader lower-cases a header and folds spaces and dashes to underscores.
func NormalizeHeader(h string) string {
	h = strings.ToLower(strings.TrimSpace(h))
	return strings.NewReplacer(" ", "_", "-", "_").Replace(h)
}

// Column resolves the first alias present in the header. Aliases are normalized first.
func (t *Table) Column(aliases ...string) (int, bool) {
	for _, a := range aliases {
		if i, ok := t.index[NormalizeHeader(a)]; ok {
			return i, true
		}
	}
	return -1, false
}

// Value returns the trimmed cell at col, or "" when the column is absent or short.
func Value(row []string, col int) string {
	if col < 0 || col >= len(row) {
		return ""
	}
	return strings.TrimSpace(row[col])
}

func isBlank(record []string) bool {
	for _, f := range record {
		if strings.TrimSpace(f) != "" {
			return false
		}
	}
	return true
}
