// Package phone converts phone-like text into canonical digit strings.
package phone

import (
	"regexp"
	"strings"
	"unicode"
)

// RegionCode is inserted into 8-digit numbers, which are treated as Moscow-area
// numbers that carry the trunk digit but omit the area code.
const RegionCode = "495"

// localDigits is the digit count of a number missing its area code
const localDigits = 8

// Pattern matches the national dialing format, e.g. "8 (495) 123-45-67" or "8 916 123 45 67".
var Pattern = regexp.MustCompile(`8[ -]?\(?\d{3}\)?[ -]\d{3}[ -]\d{2}[ -]\d{2}`)

// Normalize strips every non-digit from raw. It reports false when no digits remain.
// Exactly 8 digits get RegionCode inserted after the first digit; any other length
// is returned unchanged.
func Normalize(raw string) (string, bool) {
	var b strings.Builder
	b.Grow(len(raw) + len(RegionCode))
	for _, r := range raw {
		if r >= '0' && r <= '9' {
			b.WriteRune(r)
		}
	}

	digits := b.String()
	switch len(digits) {
	case 0:
		return "", false
	case localDigits:
		return digits[:1] + RegionCode + digits[1:], true
	default:
		return digits, true
	}
}

// FindFirst returns the first substring of content that looks like a national phone number
func FindFirst(content string) (string, bool) {
	loc := Pattern.FindStringIndex(content)
	if loc == nil {
		return "", false
	}
	return content[loc[0]:loc[1]], true
}

// Format renders a normalized 11-digit number as "8 (495) 123-45-67".
// Other lengths are returned as-is.
func Format(digits string) string {
	if len(digits) != 11 || strings.IndexFunc(digits, func(r rune) bool { return !unicode.IsDigit(r) }) >= 0 {
		return digits
	}
	return digits[:1] + " (" + digits[1:4] + ") " + digits[4:7] + "-" + digits[7:9] + "-" + digits[9:]
}
