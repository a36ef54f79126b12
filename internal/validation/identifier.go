package validation

import (
	"fmt"
	"regexp"
	"strings"
)

// Login identifiers are either an email address or a Kenyan mobile number.
// Phone numbers are normalized to E.164 (+2547XXXXXXXX / +2541XXXXXXXX) so
// the platform sees one canonical form regardless of how the member typed it.

var (
	emailPattern = regexp.MustCompile(`^[^\s@]+@[^\s@]+\.[^\s@]+$`)
	phonePattern = regexp.MustCompile(`^(?:\+?254|0)(7\d{8}|1\d{8})$`)
)

// IdentifierKind says which form a normalized identifier took.
type IdentifierKind int

const (
	IdentifierEmail IdentifierKind = iota
	IdentifierPhone
)

func (k IdentifierKind) String() string {
	switch k {
	case IdentifierEmail:
		return "email"
	case IdentifierPhone:
		return "phone"
	default:
		return "unknown"
	}
}

// NormalizeIdentifier validates a login identifier and returns its canonical
// form. Emails are lowercased; phone numbers become +254XXXXXXXXX.
func NormalizeIdentifier(input string) (string, IdentifierKind, error) {
	input = strings.TrimSpace(input)
	if input == "" {
		return "", 0, fmt.Errorf("identifier cannot be empty")
	}

	if strings.Contains(input, "@") {
		if !emailPattern.MatchString(input) {
			return "", 0, fmt.Errorf("invalid email address")
		}
		return strings.ToLower(input), IdentifierEmail, nil
	}

	compact := strings.Map(func(r rune) rune {
		if r == ' ' || r == '-' {
			return -1
		}
		return r
	}, input)

	m := phonePattern.FindStringSubmatch(compact)
	if m == nil {
		return "", 0, fmt.Errorf("invalid phone number: expected a Kenyan mobile number")
	}

	return "+254" + m[1], IdentifierPhone, nil
}
