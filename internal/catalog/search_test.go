package catalog

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestSearchByProcess(t *testing.T) {
	cat := loadTestCatalog(t)

	matches := SearchByProcess(cat, "plating", false)
	require.Len(t, matches, 3)
	assert.Equal(t, "Nickel Plating", matches[0].Process.Name)
	assert.Equal(t, "Electroless Nickel Plating", matches[2].Process.Name)

	assert.Empty(t, SearchByProcess(cat, "plating", true))
	assert.Empty(t, SearchByProcess(nil, "plating", false))
}

func TestSearchBySpec(t *testing.T) {
	cat := loadTestCatalog(t)

	matches := SearchBySpec(cat, "ams", false, false)
	require.Len(t, matches, 4)
	assert.Equal(t, "Acme Plating", matches[0].Vendor.Name)
	assert.Equal(t, "Passivation", matches[1].Process)
	assert.Equal(t, "AMS 2700", matches[1].Spec.Number)

	familiar := SearchBySpec(cat, "ams", false, true)
	require.Len(t, familiar, 2)

	exact := SearchBySpec(cat, "mil-a-8625 type ii", true, false)
	require.Len(t, exact, 1)
	assert.Equal(t, "Bright Finishers", exact[0].Vendor.Name)
}

func TestGroupSpecMatches(t *testing.T) {
	cat := loadTestCatalog(t)

	groups := GroupSpecMatches(SearchBySpec(cat, "ams", false, false))

	require.Len(t, groups, 3)
	assert.Equal(t, "Acme Plating", groups[0].Vendor.Name)
	assert.Len(t, groups[0].Matches, 2)
	assert.Equal(t, "Bright Finishers", groups[1].Vendor.Name)
	assert.Equal(t, "Coastal Coatings", groups[2].Vendor.Name)
}

func TestGroupProcessMatches(t *testing.T) {
	groups := GroupProcessMatches(SearchByProcess(loadTestCatalog(t), "nickel", false))

	require.Len(t, groups, 3)
	assert.Len(t, groups[0].Matches, 1)
}
