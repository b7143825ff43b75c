// Package catalog loads vendor capability data and answers process and spec queries against it.
package catalog

import (
	"errors"
	"fmt"
	"io"
	"log/slog"
	"os"
	"strings"

	"gopkg.in/yaml.v3"

	"github.com/Veraticus/rfq-flow/internal/model"
)

// ErrCatalogLoad is returned when the capability file cannot be read or parsed.
var ErrCatalogLoad = errors.New("failed to load vendor catalog")

// rawSpec accepts either a mapping ({number, familiar}) or a bare spec number.
type rawSpec struct {
	Number   string `yaml:"number"`
	Familiar bool   `yaml:"familiar"`
}

func (s *rawSpec) UnmarshalYAML(node *yaml.Node) error {
	if node.Kind == yaml.ScalarNode {
		s.Number = node.Value
		return nil
	}
	type plain rawSpec
	return node.Decode((*plain)(s))
}

type rawProcess struct {
	Name  string    `yaml:"name"`
	Specs []rawSpec `yaml:"specs"`
}

type rawVendor struct {
	Name          string       `yaml:"name"`
	Location      string       `yaml:"location"`
	Website       string       `yaml:"website"`
	ApprovalLevel string       `yaml:"approval_level"`
	Processes     []rawProcess `yaml:"processes"`
}

// LoadFile reads a capability listing from disk.
func LoadFile(path string) (*model.Catalog, error) {
	f, err := os.Open(path) // #nosec G304
	if err != nil {
		return nil, fmt.Errorf("%w: %w", ErrCatalogLoad, err)
	}
	defer func() { _ = f.Close() }()

	cat, err := Load(f)
	if err != nil {
		return nil, err
	}

	slog.Info("Loaded vendor catalog", "path", path, "vendors", len(cat.Vendors))
	return cat, nil
}

// Load parses a capability listing. Two shapes are accepted: a top-level
// "vendors" sequence, or a mapping keyed by vendor name whose values are either
// a process list or a vendor record. Vendor order follows the document.
func Load(r io.Reader) (*model.Catalog, error) {
	data, err := io.ReadAll(r)
	if err != nil {
		return nil, fmt.Errorf("%w: %w", ErrCatalogLoad, err)
	}

	var root yaml.Node
	if err := yaml.Unmarshal(data, &root); err != nil {
		return nil, fmt.Errorf("%w: %w", ErrCatalogLoad, err)
	}
	if len(root.Content) == 0 {
		return &model.Catalog{}, nil
	}

	doc := root.Content[0]
	if doc.Kind != yaml.MappingNode {
		return nil, fmt.Errorf("%w: top level must be a mapping (line %d)", ErrCatalogLoad, doc.Line)
	}

	raws, err := decodeVendors(doc)
	if err != nil {
		return nil, fmt.Errorf("%w: %w", ErrCatalogLoad, err)
	}

	cat := &model.Catalog{Vendors: make([]model.Vendor, 0, len(raws))}
	for i, rv := range raws {
		v, err := rv.toModel()
		if err != nil {
			return nil, fmt.Errorf("%w: vendor at index %d: %w", ErrCatalogLoad, i, err)
		}
		cat.Vendors = append(cat.Vendors, v)
	}
	return cat, nil
}

func decodeVendors(doc *yaml.Node) ([]rawVendor, error) {
	for i := 0; i+1 < len(doc.Content); i += 2 {
		key, val := doc.Content[i], doc.Content[i+1]
		if key.Value == "vendors" && val.Kind == yaml.SequenceNode {
			var vendors []rawVendor
			if err := val.Decode(&vendors); err != nil {
				return nil, err
			}
			return vendors, nil
		}
	}

	vendors := make([]rawVendor, 0, len(doc.Content)/2)
	for i := 0; i+1 < len(doc.Content); i += 2 {
		key, val := doc.Content[i], doc.Content[i+1]
		rv := rawVendor{Name: key.Value}
		switch val.Kind {
		case yaml.SequenceNode:
			if err := val.Decode(&rv.Processes); err != nil {
				return nil, fmt.Errorf("vendor %q: %w", key.Value, err)
			}
		case yaml.MappingNode:
			if err := val.Decode(&rv); err != nil {
				return nil, fmt.Errorf("vendor %q: %w", key.Value, err)
			}
			if strings.TrimSpace(rv.Name) == "" {
				rv.Name = key.Value
			}
		default:
			return nil, fmt.Errorf("vendor %q: expected a process list (line %d)", key.Value, val.Line)
		}
		vendors = append(vendors, rv)
	}
	return vendors, nil
}

func (rv rawVendor) toModel() (model.Vendor, error) {
	name := strings.TrimSpace(rv.Name)
	if name == "" {
		return model.Vendor{}, errors.New("missing name")
	}

	v := model.Vendor{
		Name:          name,
		Location:      strings.TrimSpace(rv.Location),
		Website:       strings.TrimSpace(rv.Website),
		ApprovalLevel: strings.TrimSpace(rv.ApprovalLevel),
		Processes:     make([]model.Process, 0, len(rv.Processes)),
	}

	for _, rp := range rv.Processes {
		p := model.Process{Name: strings.TrimSpace(rp.Name)}
		if p.Name == "" {
			slog.Debug("Skipping unnamed process", "vendor", name)
			continue
		}
		for _, rs := range rp.Specs {
			number := strings.TrimSpace(rs.Number)
			if number == "" {
				continue
			}
			p.Specs = append(p.Specs, model.Spec{Number: number, Familiar: rs.Familiar})
		}
		v.Processes = append(v.Processes, p)
	}
	return v, nil
}
