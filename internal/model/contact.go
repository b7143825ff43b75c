package model

import "strings"

// Contact is a person at a vendor who receives RFQs.
type Contact struct {
	VendorID  string
	FirstName string
	Email     string
	Type      string
}

// Directory maps a normalized vendor key to its qualifying contacts in file order.
// Build it with NewDirectory or Add so keys stay normalized.
type Directory map[string][]Contact

// VendorKey normalizes a vendor name for directory lookups.
func VendorKey(vendorID string) string {
	return strings.ToLower(strings.TrimSpace(vendorID))
}

// NewDirectory builds a directory from contacts in order.
func NewDirectory(contacts ...Contact) Directory {
	d := make(Directory)
	for _, c := range contacts {
		d.Add(c)
	}
	return d
}

// Add appends a contact under its vendor's normalized key.
func (d Directory) Add(c Contact) {
	key := VendorKey(c.VendorID)
	d[key] = append(d[key], c)
}

// Contacts returns every qualifying contact for a vendor in file order.
func (d Directory) Contacts(vendorID string) []Contact {
	return d[VendorKey(vendorID)]
}

// Primary returns the first qualifying contact for a vendor. Vendor names are
// compared case-insensitively after trimming, so rows spelled differently
// share one slot and the earliest row wins.
func (d Directory) Primary(vendorID string) (Contact, bool) {
	contacts := d.Contacts(vendorID)
	if len(contacts) == 0 {
		return Contact{}, false
	}
	return contacts[0], true
}
