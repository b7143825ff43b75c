// Package contacts loads the vendor contact directory.
package contacts

import (
	"errors"
	"fmt"
	"log/slog"
	"strings"

	"github.com/Veraticus/rfq-flow/internal/model"
	"github.com/Veraticus/rfq-flow/internal/tabular"
)

// DefaultType is the contact category that receives finishing RFQs.
const DefaultType = "finishing"

var (
	// ErrContactsLoad is returned when the contact file cannot be read.
	ErrContactsLoad = errors.New("failed to load contacts")
	// ErrMissingColumns is returned when required contact columns are absent.
	ErrMissingColumns = errors.New("contacts file missing required columns")
)

// LoadFile reads contacts and keeps only those whose type equals contactType
// (case-insensitive). An empty contactType keeps every contact.
func LoadFile(path, contactType string) (model.Directory, error) {
	table, err := tabular.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("%w: %s: %w", ErrContactsLoad, path, err)
	}

	dir, err := FromTable(table, contactType)
	if err != nil {
		return nil, err
	}

	slog.Info("Loaded contacts",
		"path", path,
		"type", contactType,
		"vendors", len(dir))
	return dir, nil
}

// FromTable builds a directory from a parsed contact table.
func FromTable(table *tabular.Table, contactType string) (model.Directory, error) {
	vendorCol, hasVendor := table.Column("vendor", "vendor_id", "vendor_name")
	emailCol, hasEmail := table.Column("email", "email_address")

	var missing []string
	if !hasVendor {
		missing = append(missing, "vendor")
	}
	if !hasEmail {
		missing = append(missing, "email")
	}
	if len(missing) > 0 {
		return nil, fmt.Errorf("%w: %s", ErrMissingColumns, strings.Join(missing, ", "))
	}

	nameCol, _ := table.Column("first_name", "firstname", "name", "contact")
	typeCol, hasType := table.Column("type", "contact_type")

	wantType := strings.TrimSpace(contactType)
	if wantType != "" && !hasType {
		slog.Warn("Contacts file has no type column; every contact qualifies",
			"requested_type", wantType)
	}
	dir := make(model.Directory)

	for _, row := range table.Rows {
		c := model.Contact{
			VendorID:  tabular.Value(row, vendorCol),
			FirstName: firstName(tabular.Value(row, nameCol)),
			Email:     tabular.Value(row, emailCol),
			Type:      tabular.Value(row, typeCol),
		}

		if c.VendorID == "" {
			continue
		}
		if wantType != "" && hasType && !strings.EqualFold(c.Type, wantType) {
			continue
		}
		if c.Email == "" {
			slog.Debug("Skipping contact without email", "vendor", c.VendorID)
			continue
		}

		dir.Add(c)
	}

	return dir, nil
}

// firstName takes the first word of a full-name column.
func firstName(name string) string {
	if fields := strings.Fields(name); len(fields) > 0 {
		return fields[0]
	}
	return ""
}
