// Package mapper replaces spoken operator phrases with arithmetic symbols.
package mapper

import (
	"strings"

	"github.com/hazyhaar/wordcalc/pkg/dict"
)

// Map replaces every occurrence of every vocabulary phrase in text with its
// symbol. Phrases are applied longest first so that a phrase containing a
// shorter one ("целочисленно поделить на" vs "поделить на") is consumed whole.
// Each replacement is padded with spaces; callers collapse whitespace after.
func Map(text string, d *dict.Dictionary) string {
	if d == nil || text == "" {
		return text
	}
	for _, e := range d.Entries() {
		if !strings.Contains(text, e.Phrase) {
			continue
		}
		text = strings.ReplaceAll(text, e.Phrase, " "+e.Symbol+" ")
	}
	return text
}

// Collapse trims text and squeezes runs of whitespace into single spaces.
func Collapse(text string) string {
	return strings.Join(strings.Fields(text), " ")
}
