package mail

import (
	"errors"
	"fmt"
	"regexp"
	"strings"
)

// ErrInvalidAddress is returned for recipient addresses that cannot be drafted to.
var ErrInvalidAddress = errors.New("invalid email address")

var addressPattern = regexp.MustCompile(`^[a-zA-Z0-9._%+-]+@[a-zA-Z0-9.-]+\.[a-zA-Z]{2,}$`)

// ValidateAddress checks that addr looks like a deliverable mailbox.
func ValidateAddress(addr string) error {
	if !addressPattern.MatchString(strings.TrimSpace(addr)) {
		return fmt.Errorf("%w: %q", ErrInvalidAddress, addr)
	}
	return nil
}
