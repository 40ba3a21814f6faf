package email

import (
	"strings"
	"unicode"
)

// DisplayNameFromEmail derives a human-readable name from the local part of
// an address: "jane.doe+deals@example.com" becomes "Jane Doe".
// Returns "" when nothing usable remains.
func DisplayNameFromEmail(address string) string {
	localPart := address
	if at := strings.IndexByte(address, '@'); at >= 0 {
		localPart = address[:at]
	}
	if plus := strings.IndexByte(localPart, '+'); plus >= 0 {
		localPart = localPart[:plus]
	}

	parts := strings.FieldsFunc(localPart, func(r rune) bool {
		return r == '.' || r == '_' || r == '-'
	})
	for i, p := range parts {
		parts[i] = capitalize(p)
	}
	return strings.Join(parts, " ")
}

func capitalize(s string) string {
	if s == "" {
		return s
	}
	runes := []rune(s)
	runes[0] = unicode.ToUpper(runes[0])
	return string(runes)
}
