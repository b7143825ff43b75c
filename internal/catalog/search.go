package catalog

import (
	"strings"

	"github.com/Veraticus/rfq-flow/internal/model"
)

// ProcessMatch is a vendor process whose name matched a query.
type ProcessMatch struct {
	Vendor  model.Vendor
	Process model.Process
}

// SpecMatch is a spec entry that matched a query, with its owning vendor and process.
type SpecMatch struct {
	Vendor  model.Vendor
	Process string
	Spec    model.Spec
}

// fieldMatches compares case-insensitively. Exact mode requires full equality,
// otherwise query must be a substring of field. A blank query never matches.
func fieldMatches(field, query string, exact bool) bool {
	q := strings.ToLower(strings.TrimSpace(query))
	if q == "" {
		return false
	}
	f := strings.ToLower(strings.TrimSpace(field))
	if exact {
		return f == q
	}
	return strings.Contains(f, q)
}

// SearchByProcess returns every vendor process whose name matches, in catalog order.
func SearchByProcess(cat *model.Catalog, name string, exact bool) []ProcessMatch {
	var matches []ProcessMatch
	if cat == nil {
		return matches
	}
	for _, v := range cat.Vendors {
		for _, p := range v.Processes {
			if fieldMatches(p.Name, name, exact) {
				matches = append(matches, ProcessMatch{Vendor: v, Process: p})
			}
		}
	}
	return matches
}

// SearchBySpec returns every spec entry whose number matches, in catalog order.
// With familiarOnly, entries not flagged familiar are excluded.
func SearchBySpec(cat *model.Catalog, number string, exact, familiarOnly bool) []SpecMatch {
	var matches []SpecMatch
	if cat == nil {
		return matches
	}
	for _, v := range cat.Vendors {
		for _, p := range v.Processes {
			for _, s := range p.Specs {
				if familiarOnly && !s.Familiar {
					continue
				}
				if fieldMatches(s.Number, number, exact) {
					matches = append(matches, SpecMatch{Vendor: v, Process: p.Name, Spec: s})
				}
			}
		}
	}
	return matches
}

// VendorGroup collects the matches belonging to one vendor.
type VendorGroup[T any] struct {
	Vendor  model.Vendor
	Matches []T
}

// GroupProcessMatches groups matches by vendor, keeping first-seen order.
func GroupProcessMatches(matches []ProcessMatch) []VendorGroup[ProcessMatch] {
	return group(matches, func(m ProcessMatch) model.Vendor { return m.Vendor })
}

// GroupSpecMatches groups matches by vendor, keeping first-seen order.
func GroupSpecMatches(matches []SpecMatch) []VendorGroup[SpecMatch] {
	return group(matches, func(m SpecMatch) model.Vendor { return m.Vendor })
}

func group[T any](matches []T, vendorOf func(T) model.Vendor) []VendorGroup[T] {
	var groups []VendorGroup[T]
	index := make(map[string]int)
	for _, m := range matches {
		v := vendorOf(m)
		i, ok := index[v.Name]
		if !ok {
			i = len(groups)
			index[v.Name] = i
			groups = append(groups, VendorGroup[T]{Vendor: v})
		}
		groups[i].Matches = append(groups[i].Matches, m)
	}
	return groups
}
