package mapper

import (
	"path/filepath"
	"strings"
	"testing"

	"github.com/hazyhaar/wordcalc/pkg/dict"
)

func loadVocab(t *testing.T, locale string) *dict.Dictionary {
	t.Helper()
	d, err := dict.LoadDictionary(filepath.Join("..", "..", "vocab", locale))
	if err != nil {
		t.Fatalf("load %s vocabulary: %v", locale, err)
	}
	return d
}

func TestMapRussian(t *testing.T) {
	d := loadVocab(t, "ru")
	tests := []struct {
		input, want string
	}{
		{"2 плюс 3", "2 + 3"},
		{"23 умножить на 2", "23 * 2"},
		{"7 целочисленно поделить на 2", "7 // 2"},
		{"7 поделить на 2", "7 / 2"},
		{"10 найти остаток от деления на 3", "10 % 3"},
		{"10 остаток от деления на 3", "10 % 3"},
		{"2 в степени 10", "2 ^ 10"},
		{"левая скобка 2 плюс 3 правая скобка умножить на 4", "( 2 + 3 ) * 4"},
		{"5 минус минус 3", "5 - - 3"},
		{"2 + 3", "2 + 3"},
		{"", ""},
	}
	for _, tt := range tests {
		got := Collapse(Map(tt.input, d))
		if got != tt.want {
			t.Errorf("Map(%q) = %q, want %q", tt.input, got, tt.want)
		}
	}
}

func TestMapEnglish(t *testing.T) {
	d := loadVocab(t, "en")
	tests := []struct {
		input, want string
	}{
		{"2 plus 3", "2 + 3"},
		{"7 integer-divide by 2", "7 // 2"},
		{"7 divide by 2", "7 / 2"},
		{"7 integer divided by 2", "7 // 2"},
		{"7 divided by 2", "7 / 2"},
		{"10 modulo 3", "10 % 3"},
		{"10 mod 3", "10 % 3"},
		{"2 to the power of 8", "2 ^ 8"},
		{"left bracket 1 minus 2 right bracket times 3", "( 1 - 2 ) * 3"},
	}
	for _, tt := range tests {
		got := Collapse(Map(tt.input, d))
		if got != tt.want {
			t.Errorf("Map(%q) = %q, want %q", tt.input, got, tt.want)
		}
	}
}

// TestMapLongestMatch checks every vocabulary pair where one phrase contains
// another: the longer phrase alone maps to its own symbol and nothing else.
func TestMapLongestMatch(t *testing.T) {
	for _, locale := range []string{"ru", "en"} {
		d := loadVocab(t, locale)
		entries := d.Entries()
		pairs := 0
		for _, long := range entries {
			for _, short := range entries {
				if long.Phrase == short.Phrase || !strings.Contains(long.Phrase, short.Phrase) {
					continue
				}
				pairs++
				got := Collapse(Map(long.Phrase, d))
				if got != long.Symbol {
					t.Errorf("%s: Map(%q) = %q, want %q (contains %q -> %q)",
						locale, long.Phrase, got, long.Symbol, short.Phrase, short.Symbol)
				}
				in := "1 " + long.Phrase + " 2"
				want := "1 " + long.Symbol + " 2"
				if got := Collapse(Map(in, d)); got != want {
					t.Errorf("%s: Map(%q) = %q, want %q", locale, in, got, want)
				}
			}
		}
		if pairs == 0 {
			t.Errorf("%s: no containing pairs found, test exercises nothing", locale)
		}
	}
}

func TestMapEveryPhrase(t *testing.T) {
	for _, locale := range []string{"ru", "en"} {
		d := loadVocab(t, locale)
		for _, e := range d.Entries() {
			if got := Collapse(Map(e.Phrase, d)); got != e.Symbol {
				t.Errorf("%s: Map(%q) = %q, want %q", locale, e.Phrase, got, e.Symbol)
			}
		}
	}
}

func TestMapNoOverlaps(t *testing.T) {
	for _, locale := range []string{"ru", "en"} {
		if got := loadVocab(t, locale).Overlaps(); len(got) != 0 {
			t.Errorf("%s vocabulary has overlapping phrases: %v", locale, got)
		}
	}
}

func TestMapAdjacentSymbolsStaySeparate(t *testing.T) {
	m := &dict.Manifest{ID: "t", Locale: "en"}
	d, err := dict.FromEntries(m, []dict.Entry{{Phrase: "over", Symbol: "/"}})
	if err != nil {
		t.Fatalf("FromEntries: %v", err)
	}
	// Two single slashes must not fuse into floor division.
	if got := Collapse(Map("4 overover 2", d)); got != "4 / / 2" {
		t.Errorf("Map = %q, want %q", got, "4 / / 2")
	}
}

func TestMapNilDictionary(t *testing.T) {
	if got := Map("2 plus 3", nil); got != "2 plus 3" {
		t.Errorf("Map(nil dict) = %q, want unchanged", got)
	}
}

func TestCollapse(t *testing.T) {
	tests := []struct {
		input, want string
	}{
		{"  2  +\t3 ", "2 + 3"},
		{"", ""},
		{"\n", ""},
	}
	for _, tt := range tests {
		if got := Collapse(tt.input); got != tt.want {
			t.Errorf("Collapse(%q) = %q, want %q", tt.input, got, tt.want)
		}
	}
}
