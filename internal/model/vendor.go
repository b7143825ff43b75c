package model

import "strings"

// ApprovalCUI marks a vendor cleared to receive Controlled Unclassified Information.
const ApprovalCUI = "cui"

// Spec is an engineering specification a vendor has declared for a process.
type Spec struct {
	Number   string `yaml:"number"`
	Familiar bool   `yaml:"familiar"`
}

// Process is a manufacturing or finishing operation offered by a vendor.
type Process struct {
	Name  string `yaml:"name"`
	Specs []Spec `yaml:"specs"`
}

// Vendor is a supplier and the processes it can perform.
type Vendor struct {
	Name          string    `yaml:"name"`
	Location      string    `yaml:"location"`
	Website       string    `yaml:"website"`
	ApprovalLevel string    `yaml:"approval_level"`
	Processes     []Process `yaml:"processes"`
}

// IsCUIApproved reports whether the vendor may receive CUI content.
func (v Vendor) IsCUIApproved() bool {
	return strings.EqualFold(strings.TrimSpace(v.ApprovalLevel), ApprovalCUI)
}

// Catalog is the ordered list of vendor capabilities loaded for a run.
// Order is the order vendors appear in the source file.
type Catalog struct {
	Vendors []Vendor `yaml:"vendors"`
}

// Vendor returns the vendor with the given name, or false if absent.
func (c *Catalog) Vendor(name string) (Vendor, bool) {
	for _, v := range c.Vendors {
		if v.Name == name {
			return v, true
		}
	}
	return Vendor{}, false
}
