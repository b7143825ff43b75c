package catalog

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestMatcher_ProcessOnly(t *testing.T) {
	m := NewMatcher(loadTestCatalog(t))

	result := m.Match("nickel", "", MatchOptions{})

	assert.Equal(t, StageProcess, result.Stage)
	assert.Equal(t, []string{"Acme Plating", "Bright Finishers", "Coastal Coatings"}, result.Vendors)
}

func TestMatcher_ProcessCaseInsensitiveNoDuplicates(t *testing.T) {
	m := NewMatcher(loadTestCatalog(t))

	result := m.Match("NICKEL PLATING", "", MatchOptions{ExactMatch: true})

	// Bright Finishers lists the process in lower case; Acme lists it once.
	assert.Equal(t, []string{"Acme Plating", "Bright Finishers"}, result.Vendors)
}

func TestMatcher_ExactRejectsSubstring(t *testing.T) {
	m := NewMatcher(loadTestCatalog(t))

	assert.NotEmpty(t, m.Match("Nickel", "", MatchOptions{}).Vendors)
	assert.True(t, m.Match("Nickel", "", MatchOptions{ExactMatch: true}).Empty())
}

func TestMatcher_SpecFirst(t *testing.T) {
	m := NewMatcher(loadTestCatalog(t))

	result := m.Match("Nickel Plating", "B733", MatchOptions{})

	assert.Equal(t, StageSpec, result.Stage)
	assert.Equal(t, []string{"Acme Plating", "Coastal Coatings"}, result.Vendors)
}

func TestMatcher_FamiliarOnly(t *testing.T) {
	m := NewMatcher(loadTestCatalog(t))

	all := m.Match("Nickel Plating", "AMS 2404", MatchOptions{})
	assert.Equal(t, []string{"Acme Plating", "Bright Finishers"}, all.Vendors)

	familiar := m.Match("Nickel Plating", "AMS 2404", MatchOptions{FamiliarOnly: true})
	assert.Equal(t, StageSpec, familiar.Stage)
	assert.Equal(t, []string{"Acme Plating"}, familiar.Vendors)
}

func TestMatcher_SpecFallbackToProcess(t *testing.T) {
	m := NewMatcher(loadTestCatalog(t))

	result := m.Match("Anodizing", "NO-SUCH-SPEC", MatchOptions{})

	assert.Equal(t, StageProcess, result.Stage)
	assert.Equal(t, m.Match("Anodizing", "", MatchOptions{}).Vendors, result.Vendors)
}

func TestMatcher_FamiliarOnlyIgnoredForProcessFallback(t *testing.T) {
	m := NewMatcher(loadTestCatalog(t))

	result := m.Match("Heat Treat", "ASTM B733", MatchOptions{FamiliarOnly: true, ExactMatch: true})
	assert.Equal(t, StageSpec, result.Stage)
	assert.Equal(t, []string{"Coastal Coatings"}, result.Vendors)

	// Only an unfamiliar entry matches this spec, so the process fallback applies.
	result = m.Match("Heat Treat", "AMS-C-26074", MatchOptions{FamiliarOnly: true})
	assert.Equal(t, StageProcess, result.Stage)
	assert.Equal(t, []string{"Delta Heat Treat"}, result.Vendors)
}

func TestMatcher_AbsentProcess(t *testing.T) {
	m := NewMatcher(loadTestCatalog(t))

	for _, exact := range []bool{false, true} {
		result := m.Match("Cadmium Plating", "", MatchOptions{ExactMatch: exact})
		assert.True(t, result.Empty())
		assert.Equal(t, StageNone, result.Stage)
	}
}

func TestMatcher_BlankProcessMatchesNothing(t *testing.T) {
	m := NewMatcher(loadTestCatalog(t))
	assert.True(t, m.Match("  ", "", MatchOptions{}).Empty())
}

func TestMatcher_NilCatalog(t *testing.T) {
	m := NewMatcher(nil)
	assert.True(t, m.Match("Anodizing", "MIL", MatchOptions{}).Empty())
}
