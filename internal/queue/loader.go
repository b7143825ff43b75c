// Package queue reads quote request rows from the RFQ queue file.
package queue

import (
	"errors"
	"fmt"
	"log/slog"
	"strings"

	"github.com/Veraticus/rfq-flow/internal/model"
	"github.com/Veraticus/rfq-flow/internal/tabular"
)

var (
	// ErrQueueLoad is returned when the queue file cannot be read.
	ErrQueueLoad = errors.New("failed to load queue")
	// ErrMissingColumns is returned when a required queue column is absent.
	ErrMissingColumns = errors.New("queue file missing required columns")
)

type column struct {
	name     string
	aliases  []string
	required bool
}

// Column aliases cover both the spreadsheet export headers and snake_case names.
var columns = []column{
	{name: "quote_id", aliases: []string{"quote_id", "Quote#", "quote", "quote_no"}, required: true},
	{name: "line", aliases: []string{"line", "Line#"}},
	{name: "part_number", aliases: []string{"part_number", "Part Number", "part_no"}, required: true},
	{name: "callout", aliases: []string{"callout"}},
	{name: "process", aliases: []string{"process"}, required: true},
	{name: "spec", aliases: []string{"spec", "specification"}},
	{name: "qty", aliases: []string{"qty", "PriceBreak", "quantity", "quantities"}},
	{name: "file_path", aliases: []string{"file_path", "File_location", "file_location"}, required: true},
}

// LoadFile reads the queue file from disk.
func LoadFile(path string) ([]model.QueueItem, error) {
	table, err := tabular.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("%w: %s: %w", ErrQueueLoad, path, err)
	}

	items, err := FromTable(table)
	if err != nil {
		return nil, err
	}

	slog.Info("Loaded queue", "path", path, "items", len(items))
	return items, nil
}

// FromTable converts a parsed queue table into items. Missing optional columns
// leave the field blank; rows with a blank required value are skipped with a warning.
func FromTable(table *tabular.Table) ([]model.QueueItem, error) {
	idx := make(map[string]int, len(columns))
	var missing []string
	for _, c := range columns {
		i, ok := table.Column(c.aliases...)
		if !ok && c.required {
			missing = append(missing, c.name)
		}
		idx[c.name] = i
	}
	if len(missing) > 0 {
		return nil, fmt.Errorf("%w: %s", ErrMissingColumns, strings.Join(missing, ", "))
	}

	items := make([]model.QueueItem, 0, len(table.Rows))
	for n, row := range table.Rows {
		item := model.QueueItem{
			QuoteID:    tabular.Value(row, idx["quote_id"]),
			Line:       tabular.Value(row, idx["line"]),
			PartNumber: tabular.Value(row, idx["part_number"]),
			Callout:    tabular.Value(row, idx["callout"]),
			Process:    tabular.Value(row, idx["process"]),
			Spec:       tabular.Value(row, idx["spec"]),
			Qty:        tabular.Value(row, idx["qty"]),
			FilePath:   tabular.Value(row, idx["file_path"]),
		}

		if item.QuoteID == "" || item.PartNumber == "" || item.Process == "" {
			// Header is row 1, so data rows start at 2.
			slog.Warn("Skipping queue row with blank required field",
				"row", n+2,
				"quote_id", item.QuoteID,
				"part_number", item.PartNumber,
				"process", item.Process)
			continue
		}

		items = append(items, item)
	}

	return items, nil
}
