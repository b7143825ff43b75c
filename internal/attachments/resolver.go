// Package attachments finds the drawings and documents to attach to an RFQ.
package attachments

import (
	"fmt"
	"io/fs"
	"log/slog"
	"os"
	"path/filepath"
	"strings"
	"unicode"

	"github.com/bmatcuk/doublestar/v4"
)

// DefaultExcludes are office formats that stay internal: quote sheets and word documents.
var DefaultExcludes = []string{
	"*.xls", "*.xlsx", "*.xlsm", "*.xlsb",
	"*.doc", "*.docx", "*.docm",
	"*.ppt", "*.pptx",
	"*.odt", "*.ods",
	"~$*",
}

// Resolver walks a directory tree for files named after a part number.
type Resolver struct {
	excludes []string
}

// NewResolver creates a resolver with the given exclusion globs, matched against
// lower-cased file names. Nil uses DefaultExcludes.
func NewResolver(excludes []string) (*Resolver, error) {
	if excludes == nil {
		excludes = DefaultExcludes
	}
	patterns := make([]string, 0, len(excludes))
	for _, p := range excludes {
		p = strings.ToLower(strings.TrimSpace(p))
		if p == "" {
			continue
		}
		if !doublestar.ValidatePattern(p) {
			return nil, fmt.Errorf("invalid exclude pattern %q", p)
		}
		patterns = append(patterns, p)
	}
	return &Resolver{excludes: patterns}, nil
}

// Resolve returns every file under root whose name contains partNumber. The
// match is case-insensitive and must sit on a token boundary, so "100" does not
// match "1000-A.pdf". Excluded formats are dropped. If root is itself a file it
// is returned as long as it is not excluded. A missing or unreadable root yields
// no paths and a warning.
func (r *Resolver) Resolve(partNumber, root string) []string {
	partNumber = strings.TrimSpace(partNumber)
	if partNumber == "" || strings.TrimSpace(root) == "" {
		return nil
	}

	info, err := os.Stat(root)
	if err != nil {
		slog.Warn("Attachment directory unavailable", "path", root, "error", err)
		return nil
	}
	if !info.IsDir() {
		if r.Excluded(filepath.Base(root)) {
			return nil
		}
		return []string{root}
	}

	var found []string
	walkErr := filepath.WalkDir(root, func(path string, d fs.DirEntry, err error) error {
		if err != nil {
			slog.Debug("Skipping unreadable path", "path", path, "error", err)
			if d != nil && d.IsDir() && path != root {
				return fs.SkipDir
			}
			return nil
		}
		if d.IsDir() {
			return nil
		}
		name := d.Name()
		if !ContainsPartNumber(name, partNumber) || r.Excluded(name) {
			return nil
		}
		found = append(found, path)
		return nil
	})
	if walkErr != nil {
		slog.Warn("Attachment search incomplete", "path", root, "error", walkErr)
	}

	if len(found) == 0 {
		slog.Warn("No attachments found", "part_number", partNumber, "path", root)
	}
	return found
}

// Excluded reports whether a file name matches an exclusion glob.
func (r *Resolver) Excluded(name string) bool {
	lower := strings.ToLower(name)
	for _, p := range r.excludes {
		if ok, _ := doublestar.Match(p, lower); ok {
			return true
		}
	}
	return false
}

// ContainsPartNumber reports whether name contains partNumber case-insensitively
// with no letter or digit directly before or after it.
func ContainsPartNumber(name, partNumber string) bool {
	n := strings.ToLower(name)
	p := strings.ToLower(partNumber)
	if p == "" {
		return false
	}

	for offset := 0; offset <= len(n)-len(p); {
		i := strings.Index(n[offset:], p)
		if i < 0 {
			return false
		}
		start := offset + i
		end := start + len(p)
		if !alnumBefore(n, start) && !alnumAt(n, end) {
			return true
		}
		offset = start + 1
	}
	return false
}

func alnumBefore(s string, i int) bool {
	if i == 0 {
		return false
	}
	return isAlnum(rune(s[i-1]))
}

func alnumAt(s string, i int) bool {
	if i >= len(s) {
		return false
	}
	return isAlnum(rune(s[i]))
}

func isAlnum(r rune) bool {
	return unicode.IsLetter(r) || unicode.IsDigit(r)
}

// Check splits paths into those that exist and are readable and those that are not.
func Check(paths []string) (valid, invalid []string) {
	for _, p := range paths {
		f, err := os.Open(p) // #nosec G304
		if err != nil {
			invalid = append(invalid, p)
			continue
		}
		_ = f.Close()
		valid = append(valid, p)
	}
	return valid, invalid
}
