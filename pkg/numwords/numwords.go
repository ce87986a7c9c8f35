// Package numwords rewrites spoken number words embedded in free text as
// digit literals ("двадцать три плюс два" -> "23 плюс 2").
//
// Everything that is not a recognized number word passes through verbatim:
// digits, punctuation, unknown words and the whitespace between them.
package numwords

import (
	"strconv"
	"strings"
	"unicode"
	"unicode/utf8"
)

// Normalize replaces every maximal run of number words in text with its
// digit literal. Unknown locales leave text unchanged.
func Normalize(text string, loc Locale) string {
	lx, ok := lexicons[loc]
	if !ok {
		return text
	}
	toks := scanWords(text)
	if len(toks) == 0 {
		return text
	}

	var b strings.Builder
	b.Grow(len(text))
	last := 0
	for i := 0; i < len(toks); {
		n, end, ok := lx.run(text, toks, i)
		if !ok {
			i++
			continue
		}
		b.WriteString(text[last:toks[i].start])
		b.WriteString(strconv.FormatInt(n.value(), 10))
		last = toks[end].end
		i = end + 1
	}
	b.WriteString(text[last:])
	return b.String()
}

// span is a word: letters, optionally joined by single hyphens ("twenty-three").
type span struct {
	start, end int
	text       string
}

func scanWords(text string) []span {
	var spans []span
	i := 0
	for i < len(text) {
		r, w := utf8.DecodeRuneInString(text[i:])
		if !unicode.IsLetter(r) {
			i += w
			continue
		}
		start := i
		i += w
		for i < len(text) {
			r, w = utf8.DecodeRuneInString(text[i:])
			if unicode.IsLetter(r) {
				i += w
				continue
			}
			if r == '-' && i+w < len(text) {
				if next, _ := utf8.DecodeRuneInString(text[i+w:]); unicode.IsLetter(next) {
					i += w
					continue
				}
			}
			break
		}
		spans = append(spans, span{start: start, end: i, text: text[start:i]})
	}
	return spans
}

// parts resolves a word, or each piece of a hyphenated compound, to number
// words. It reports false if any piece is not a number word.
func (lx *lexicon) parts(s string) ([]word, bool) {
	if w, ok := lx.lookup(s); ok {
		return []word{w}, true
	}
	if !strings.Contains(s, "-") {
		return nil, false
	}
	pieces := strings.Split(s, "-")
	ws := make([]word, 0, len(pieces))
	for _, p := range pieces {
		w, ok := lx.lookup(p)
		if !ok {
			return nil, false
		}
		ws = append(ws, w)
	}
	return ws, true
}

// run accumulates the longest grammatical number starting at toks[i] and
// returns it with the index of the last word consumed.
func (lx *lexicon) run(text string, toks []span, i int) (number, int, bool) {
	var cur number
	end := -1
	for j := i; j < len(toks); {
		if j > i && !blank(text[toks[j-1].end:toks[j].start]) {
			break
		}
		ws, ok := lx.parts(toks[j].text)
		if !ok {
			// "three hundred and five": the connector is swallowed only
			// when the following word keeps the number going.
			if cur.words == 0 || !lx.isConnector(toks[j].text) || j+1 >= len(toks) ||
				!blank(text[toks[j].end:toks[j+1].start]) {
				break
			}
			next, ok := lx.parts(toks[j+1].text)
			if !ok {
				break
			}
			ext, ok := cur.extendAll(next)
			if !ok {
				break
			}
			cur, end = ext, j+1
			j += 2
			continue
		}
		ext, ok := cur.extendAll(ws)
		if !ok {
			break
		}
		cur, end = ext, j
		j++
	}
	return cur, end, end >= 0
}

func blank(s string) bool {
	for _, r := range s {
		if !unicode.IsSpace(r) {
			return false
		}
	}
	return true
}
