package domain

import (
	"strings"
	"unicode"
)

// Identifier is a normalized feature-flag name: lowercase, underscore-separated,
// never empty, and never starting or ending with an underscore.
type Identifier string

func (id Identifier) String() string { return string(id) }

// NormalizeIdentifier derives a safe Identifier from raw selected text.
// Every maximal run of characters that are not letters or digits collapses to
// a single underscore, the result is lowercased, and one leading and trailing
// underscore are stripped. Returns ErrEmptyInput when nothing remains.
//
// Collisions with reserved words in the target command language are accepted
// risk and not checked.
func NormalizeIdentifier(raw string) (Identifier, error) {
	var b strings.Builder
	pendingSep := false
	for _, r := range strings.TrimSpace(raw) {
		if unicode.IsLetter(r) || unicode.IsDigit(r) {
			if pendingSep && b.Len() > 0 {
				b.WriteByte('_')
			}
			pendingSep = false
			b.WriteRune(unicode.ToLower(r))
			continue
		}
		pendingSep = true
	}

	s := strings.TrimSuffix(strings.TrimPrefix(b.String(), "_"), "_")
	if s == "" {
		return "", NewDomainError("NormalizeIdentifier", ErrEmptyInput, "")
	}
	return Identifier(s), nil
}
