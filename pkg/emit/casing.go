package emit

import (
	"strings"
	"unicode"
)

// CamelCase converts snake_case or kebab-case identifiers to UpperCamelCase.
// Already-camelled input keeps its interior capitalisation, so "myField"
// becomes "MyField" and "BCS" stays "BCS".
func CamelCase(name string) string {
	var b strings.Builder
	upperNext := true
	for _, r := range name {
		switch {
		case r == '_' || r == '-':
			upperNext = true
		case upperNext:
			b.WriteRune(unicode.ToUpper(r))
			upperNext = false
		default:
			b.WriteRune(r)
		}
	}
	return b.String()
}

// LowerCamelCase converts an identifier to lowerCamelCase.
func LowerCamelCase(name string) string {
	camelled := CamelCase(name)
	if camelled == "" {
		return camelled
	}
	return strings.ToLower(camelled[:1]) + camelled[1:]
}

// SnakeCase converts a CamelCase identifier to snake_case, used for
// generated file names.
func SnakeCase(name string) string {
	var b strings.Builder
	for i, r := range name {
		if unicode.IsUpper(r) {
			if i > 0 {
				b.WriteByte('_')
			}
			b.WriteRune(unicode.ToLower(r))
			continue
		}
		if r == '-' {
			b.WriteByte('_')
			continue
		}
		b.WriteRune(r)
	}
	return b.String()
}
