// CLAUDE:SUMMARY Text normalization strategies (lowercase+strip-accents, lowercase-only, none) applied to phrases and input before matching.
package dict

import (
	"strings"
	"unicode"

	"golang.org/x/text/runes"
	"golang.org/x/text/transform"
	"golang.org/x/text/unicode/norm"
)

// Normalizer transforms a phrase, or the text it is matched against.
type Normalizer func(string) string

// NormalizeLowercaseASCII lowercases and strips accents (e.g. ДЕЛЁННОЕ -> деленное).
func NormalizeLowercaseASCII(s string) string {
	t := transform.Chain(norm.NFD, runes.Remove(runes.In(unicode.Mn)), norm.NFC)
	result, _, err := transform.String(t, strings.ToLower(s))
	if err != nil {
		return strings.ToLower(s)
	}
	return result
}

// NormalizeLowercaseUTF8 lowercases but preserves accents.
func NormalizeLowercaseUTF8(s string) string {
	return strings.ToLower(s)
}

// NormalizeNone returns the text unchanged.
func NormalizeNone(s string) string {
	return s
}

// GetNormalizer returns the normalizer for the given mode.
// Default is lowercase_utf8.
func GetNormalizer(mode string) Normalizer {
	switch mode {
	case "lowercase_ascii":
		return NormalizeLowercaseASCII
	case "lowercase_utf8":
		return NormalizeLowercaseUTF8
	case "none":
		return NormalizeNone
	default:
		return NormalizeLowercaseUTF8
	}
}
