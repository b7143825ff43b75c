package catalog

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/Veraticus/rfq-flow/internal/model"
)

const testCatalogYAML = `
vendors:
  - name: Acme Plating
    location: Denver, CO
    website: https://acme.example
    processes:
      - name: Nickel Plating
        specs:
          - number: AMS 2404
            familiar: true
          - number: ASTM B733
            familiar: false
      - name: Passivation
        specs:
          - number: AMS 2700
            familiar: true
  - name: Bright Finishers
    location: Phoenix, AZ
    approval_level: CUI
    processes:
      - name: Anodizing
        specs:
          - number: MIL-A-8625 Type II
            familiar: true
      - name: nickel plating
        specs:
          - number: AMS 2404
            familiar: false
  - name: Coastal Coatings
    processes:
      - name: Electroless Nickel Plating
        specs:
          - number: ASTM B733
            familiar: true
          - AMS-C-26074
  - name: Delta Heat Treat
    processes:
      - name: Heat Treat
`

func loadTestCatalog(t *testing.T) *model.Catalog {
	t.Helper()
	cat, err := Load(strings.NewReader(testCatalogYAML))
	require.NoError(t, err)
	return cat
}
