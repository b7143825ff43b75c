package catalog

import (
	"strings"

	"github.com/Veraticus/rfq-flow/internal/model"
)

// MatchOptions controls how queries are compared against the catalog.
type MatchOptions struct {
	FamiliarOnly bool
	ExactMatch   bool
}

// Stage records which rule produced a match result.
type Stage string

// Match stages.
const (
	StageNone    Stage = "none"
	StageSpec    Stage = "spec"
	StageProcess Stage = "process"
)

// MatchResult lists matching vendor names in catalog order without duplicates.
type MatchResult struct {
	Stage   Stage
	Vendors []string
}

// Empty reports whether no vendor matched.
func (r MatchResult) Empty() bool {
	return len(r.Vendors) == 0
}

// Matcher selects every vendor able to perform a process. There is no ranking:
// all matches are returned so each can receive its own quote request.
type Matcher struct {
	catalog *model.Catalog
}

// NewMatcher creates a matcher over a read-only catalog.
func NewMatcher(cat *model.Catalog) *Matcher {
	if cat == nil {
		cat = &model.Catalog{}
	}
	return &Matcher{catalog: cat}
}

// Match tries the spec first when one is given, then falls back to the process
// name once. FamiliarOnly applies to the spec stage only, since familiarity is
// recorded per spec.
func (m *Matcher) Match(process, spec string, opts MatchOptions) MatchResult {
	if strings.TrimSpace(spec) != "" {
		specMatches := SearchBySpec(m.catalog, spec, opts.ExactMatch, opts.FamiliarOnly)
		if vendors := uniqueVendors(specMatches, func(s SpecMatch) string { return s.Vendor.Name }); len(vendors) > 0 {
			return MatchResult{Stage: StageSpec, Vendors: vendors}
		}
	}

	processMatches := SearchByProcess(m.catalog, process, opts.ExactMatch)
	if vendors := uniqueVendors(processMatches, func(p ProcessMatch) string { return p.Vendor.Name }); len(vendors) > 0 {
		return MatchResult{Stage: StageProcess, Vendors: vendors}
	}

	return MatchResult{Stage: StageNone}
}

// Vendor returns the catalog record for a vendor name.
func (m *Matcher) Vendor(name string) (model.Vendor, bool) {
	return m.catalog.Vendor(name)
}

func uniqueVendors[T any](matches []T, nameOf func(T) string) []string {
	seen := make(map[string]bool, len(matches))
	var names []string
	for _, match := range matches {
		name := nameOf(match)
		if seen[name] {
			continue
		}
		seen[name] = true
		names = append(names, name)
	}
	return names
}
