// CLAUDE:SUMMARY Per-locale number-word tables (units, teens, tens, hundreds, scales) with case/accent folding for lookup.
package numwords

import (
	"fmt"
	"strings"
	"unicode"

	"golang.org/x/text/cases"
	"golang.org/x/text/language"
	"golang.org/x/text/runes"
	"golang.org/x/text/transform"
	"golang.org/x/text/unicode/norm"
)

// Locale selects the language whose number words are recognized.
type Locale string

const (
	Russian Locale = "ru"
	English Locale = "en"
)

// ParseLocale validates a locale code from configuration.
func ParseLocale(s string) (Locale, error) {
	loc := Locale(strings.ToLower(strings.TrimSpace(s)))
	if _, ok := lexicons[loc]; !ok {
		return "", fmt.Errorf("unsupported locale %q", s)
	}
	return loc, nil
}

// Tag returns the BCP 47 tag for the locale, or language.Und if unknown.
func (l Locale) Tag() language.Tag {
	if lx, ok := lexicons[l]; ok {
		return lx.tag
	}
	return language.Und
}

type kind int

const (
	kindZero kind = iota
	kindUnit
	kindTeen
	kindTen
	kindHundred    // absolute hundreds: "двести"
	kindHundredMul // multiplier: "hundred"
	kindScale      // thousand, million, billion
)

type word struct {
	kind  kind
	value int64
}

type lexicon struct {
	tag       language.Tag
	words     map[string]word
	connector string
}

// fold lowercases for the locale and strips combining marks (ё -> е).
func fold(tag language.Tag, s string) string {
	t := transform.Chain(norm.NFD, runes.Remove(runes.In(unicode.Mn)), norm.NFC)
	out, _, err := transform.String(t, cases.Lower(tag).String(s))
	if err != nil {
		return strings.ToLower(s)
	}
	return out
}

func (lx *lexicon) add(k kind, value int64, forms ...string) {
	for _, f := range forms {
		lx.words[fold(lx.tag, f)] = word{kind: k, value: value}
	}
}

func (lx *lexicon) lookup(s string) (word, bool) {
	w, ok := lx.words[fold(lx.tag, s)]
	return w, ok
}

func (lx *lexicon) isConnector(s string) bool {
	return lx.connector != "" && fold(lx.tag, s) == lx.connector
}

var lexicons = map[Locale]*lexicon{
	Russian: russian(),
	English: english(),
}

func russian() *lexicon {
	lx := &lexicon{tag: language.Russian, words: make(map[string]word)}
	lx.add(kindZero, 0, "ноль", "нуль")
	lx.add(kindUnit, 1, "один", "одна", "одно", "одну")
	lx.add(kindUnit, 2, "два", "две")
	lx.add(kindUnit, 3, "три")
	lx.add(kindUnit, 4, "четыре")
	lx.add(kindUnit, 5, "пять")
	lx.add(kindUnit, 6, "шесть")
	lx.add(kindUnit, 7, "семь")
	lx.add(kindUnit, 8, "восемь")
	lx.add(kindUnit, 9, "девять")
	lx.add(kindTeen, 10, "десять")
	lx.add(kindTeen, 11, "одиннадцать")
	lx.add(kindTeen, 12, "двенадцать")
	lx.add(kindTeen, 13, "тринадцать")
	lx.add(kindTeen, 14, "четырнадцать")
	lx.add(kindTeen, 15, "пятнадцать")
	lx.add(kindTeen, 16, "шестнадцать")
	lx.add(kindTeen, 17, "семнадцать")
	lx.add(kindTeen, 18, "восемнадцать")
	lx.add(kindTeen, 19, "девятнадцать")
	lx.add(kindTen, 20, "двадцать")
	lx.add(kindTen, 30, "тридцать")
	lx.add(kindTen, 40, "сорок")
	lx.add(kindTen, 50, "пятьдесят")
	lx.add(kindTen, 60, "шестьдесят")
	lx.add(kindTen, 70, "семьдесят")
	lx.add(kindTen, 80, "восемьдесят")
	lx.add(kindTen, 90, "девяносто")
	lx.add(kindHundred, 100, "сто")
	lx.add(kindHundred, 200, "двести")
	lx.add(kindHundred, 300, "триста")
	lx.add(kindHundred, 400, "четыреста")
	lx.add(kindHundred, 500, "пятьсот")
	lx.add(kindHundred, 600, "шестьсот")
	lx.add(kindHundred, 700, "семьсот")
	lx.add(kindHundred, 800, "восемьсот")
	lx.add(kindHundred, 900, "девятьсот")
	lx.add(kindScale, 1_000, "тысяча", "тысячи", "тысяч", "тысячу")
	lx.add(kindScale, 1_000_000, "миллион", "миллиона", "миллионов")
	lx.add(kindScale, 1_000_000_000, "миллиард", "миллиарда", "миллиардов")
	return lx
}

func english() *lexicon {
	lx := &lexicon{tag: language.English, words: make(map[string]word), connector: "and"}
	lx.add(kindZero, 0, "zero")
	ones := []string{"one", "two", "three", "four", "five", "six", "seven", "eight", "nine"}
	for i, w := range ones {
		lx.add(kindUnit, int64(i+1), w)
	}
	teens := []string{"ten", "eleven", "twelve", "thirteen", "fourteen", "fifteen",
		"sixteen", "seventeen", "eighteen", "nineteen"}
	for i, w := range teens {
		lx.add(kindTeen, int64(10+i), w)
	}
	tens := []string{"twenty", "thirty", "forty", "fifty", "sixty", "seventy", "eighty", "ninety"}
	for i, w := range tens {
		lx.add(kindTen, int64(20+10*i), w)
	}
	lx.add(kindHundredMul, 100, "hundred")
	lx.add(kindScale, 1_000, "thousand")
	lx.add(kindScale, 1_000_000, "million")
	lx.add(kindScale, 1_000_000_000, "billion")
	return lx
}
