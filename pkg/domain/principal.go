package domain

import (
	"strings"

	dErrors "gymdesk/pkg/domain-errors"
)

// Principal is an opaque, externally authenticated caller identity. The
// service never interprets its contents; it is only compared and stored.
type Principal string

const maxPrincipalLen = 255

func (p Principal) IsZero() bool   { return p == "" }
func (p Principal) String() string { return string(p) }

// ParsePrincipal validates a principal received at a trust boundary.
func ParsePrincipal(s string) (Principal, error) {
	s = strings.TrimSpace(s)
	if s == "" {
		return "", dErrors.New(dErrors.CodeInvalidInput, "principal required")
	}
	if len(s) > maxPrincipalLen {
		return "", dErrors.New(dErrors.CodeInvalidInput, "principal too long")
	}
	return Principal(s), nil
}
