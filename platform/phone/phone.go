// Package phone provides phone number utilities.
// This is part of the platform layer and contains no business logic.
package phone

import (
	"strings"

	"github.com/nyaruka/phonenumbers"
)

const defaultRegion = "IN"

// minDigits is the structural floor for a plausible local number.
const minDigits = 10

// Canonical strips formatting characters (spaces, dashes, dots, parens)
// from a phone number, keeping digits and a leading plus sign. Leads are
// grouped per customer by this canonical form, so it must be applied both
// when storing and when looking up.
func Canonical(input string) string {
	trimmed := strings.TrimSpace(input)
	if trimmed == "" {
		return ""
	}

	var b strings.Builder
	for i, r := range trimmed {
		switch {
		case r >= '0' && r <= '9':
			b.WriteRune(r)
		case r == '+' && i == 0:
			b.WriteRune(r)
		}
	}
	return b.String()
}

// NormalizeE164 formats a phone number to E.164. If parsing fails, it
// returns the canonical form of the input.
func NormalizeE164(input string) string {
	canonical := Canonical(input)
	if canonical == "" {
		return canonical
	}

	number, err := phonenumbers.Parse(canonical, defaultRegion)
	if err != nil {
		return canonical
	}

	if !phonenumbers.IsValidNumber(number) {
		return canonical
	}

	return phonenumbers.Format(number, phonenumbers.E164)
}

// IsPlausible reports whether the input passes the structural validity
// check required before a lead may be created: either the number parses
// as a valid number for the default region, or it carries at least the
// minimum digit count.
func IsPlausible(input string) bool {
	canonical := Canonical(input)
	if canonical == "" {
		return false
	}

	if number, err := phonenumbers.Parse(canonical, defaultRegion); err == nil {
		if phonenumbers.IsValidNumber(number) {
			return true
		}
	}

	return len(strings.TrimPrefix(canonical, "+")) >= minDigits
}
