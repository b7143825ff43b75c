package compose

import (
	"fmt"

	"github.com/Veraticus/rfq-flow/internal/model"
	"github.com/Veraticus/rfq-flow/internal/tabular"
)

// Normalized header names that receive the item's part number or process.
var (
	partHeaders    = map[string]bool{"part": true, "part_no": true, "part_no.": true, "part_number": true, "part_#": true}
	processHeaders = map[string]bool{"process": true}
)

// SampleTemplate is the header of the vendor-fillable pricing table.
type SampleTemplate struct {
	Header []string
}

// SampleTable is a sample template filled for one queue item.
type SampleTable struct {
	Header []string
	Rows   [][]string
}

// LoadSampleTemplate reads the header row of a sample table CSV.
func LoadSampleTemplate(path string) (*SampleTemplate, error) {
	table, err := tabular.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to load sample table %s: %w", path, err)
	}
	return &SampleTemplate{Header: table.Header}, nil
}

// For fills the part number and process columns; every other column is left
// blank for the vendor. When the header names neither, the first two columns
// are used.
func (s *SampleTemplate) For(item model.QueueItem) *SampleTable {
	row := make([]string, len(s.Header))
	placed := false
	for i, h := range s.Header {
		switch key := tabular.NormalizeHeader(h); {
		case partHeaders[key]:
			row[i] = item.PartNumber
			placed = true
		case processHeaders[key]:
			row[i] = item.Process
			placed = true
		}
	}
	if !placed {
		if len(row) > 0 {
			row[0] = item.PartNumber
		}
		if len(row) > 1 {
			row[1] = item.Process
		}
	}
	return &SampleTable{
		Header: append([]string(nil), s.Header...),
		Rows:   [][]string{row},
	}
}
