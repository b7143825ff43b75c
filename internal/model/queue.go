package model

import "strings"

// QueueItem is one quote request row. Items are read once per run and never mutated.
type QueueItem struct {
	QuoteID    string
	Line       string
	PartNumber string
	Callout    string
	Process    string
	Spec       string
	Qty        string
	FilePath   string
}

// Quantities splits the quantity field on commas and semicolons, dropping blanks.
func (q QueueItem) Quantities() []string {
	fields := strings.FieldsFunc(q.Qty, func(r rune) bool {
		return r == ',' || r == ';'
	})
	out := make([]string, 0, len(fields))
	for _, f := range fields {
		if f = strings.TrimSpace(f); f != "" {
			out = append(out, f)
		}
	}
	return out
}
