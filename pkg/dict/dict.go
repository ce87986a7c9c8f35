// Package dict holds the operator vocabulary: the ordered (phrase, symbol)
// pairs that tell the mapper which spoken phrases stand for which arithmetic
// symbols.
package dict

import (
	"encoding/csv"
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"sort"
	"strings"
	"unicode/utf8"

	"golang.org/x/text/encoding/htmlindex"
	"golang.org/x/text/transform"
)

// ErrNotFound is returned by Lookup for a phrase outside the vocabulary.
var ErrNotFound = errors.New("operator phrase not found")

// Entry is a single operator phrase and the symbol it stands for.
type Entry struct {
	Phrase string `json:"phrase"`
	Symbol string `json:"symbol"`
}

// Symbols lists every symbol a vocabulary may map to.
var Symbols = map[string]bool{
	"+": true, "-": true, "*": true, "/": true, "//": true,
	"%": true, "^": true, "**": true, "(": true, ")": true,
}

// Dictionary is a loaded, immutable operator vocabulary.
type Dictionary struct {
	Manifest  *Manifest `json:"manifest"`
	entries   []Entry   // longest phrase first
	index     map[string]string
	normalize Normalizer
}

// LoadDictionary reads a manifest.yaml and loads entries from gob or csv.
func LoadDictionary(dir string) (*Dictionary, error) {
	manifest, err := LoadManifest(filepath.Join(dir, "manifest.yaml"))
	if err != nil {
		return nil, err
	}
	entries, err := loadEntries(dir, manifest)
	if err != nil {
		return nil, fmt.Errorf("dict %s: %w", manifest.ID, err)
	}
	return FromEntries(manifest, entries)
}

func loadEntries(dir string, m *Manifest) ([]Entry, error) {
	// Gob takes priority over CSV.
	gobPath := filepath.Join(dir, "data.gob")
	if _, err := os.Stat(gobPath); err == nil {
		return loadGob(gobPath)
	}
	return loadCSV(filepath.Join(dir, m.DataFile), m.Format)
}

// FromEntries validates entries and builds the dictionary. Phrases are
// normalized with the manifest's normalizer; duplicates after normalization,
// empty phrases and unknown symbols are rejected.
func FromEntries(m *Manifest, entries []Entry) (*Dictionary, error) {
	if m == nil {
		return nil, fmt.Errorf("nil manifest")
	}
	d := &Dictionary{
		Manifest:  m,
		entries:   make([]Entry, 0, len(entries)),
		index:     make(map[string]string, len(entries)),
		normalize: GetNormalizer(m.Format.Normalize),
	}
	for i, e := range entries {
		phrase := d.normalize(strings.TrimSpace(e.Phrase))
		symbol := strings.TrimSpace(e.Symbol)
		if phrase == "" {
			return nil, fmt.Errorf("dict %s: entry %d: empty phrase", m.ID, i)
		}
		if !Symbols[symbol] {
			return nil, fmt.Errorf("dict %s: phrase %q: unknown symbol %q", m.ID, phrase, symbol)
		}
		if _, dup := d.index[phrase]; dup {
			return nil, fmt.Errorf("dict %s: duplicate phrase %q", m.ID, phrase)
		}
		d.index[phrase] = symbol
		d.entries = append(d.entries, Entry{Phrase: phrase, Symbol: symbol})
	}

	// Longest phrase first: "целочисленно поделить на" must be replaced
	// before "поделить на", which it contains.
	sort.SliceStable(d.entries, func(i, j int) bool {
		return utf8.RuneCountInString(d.entries[i].Phrase) > utf8.RuneCountInString(d.entries[j].Phrase)
	})
	return d, nil
}

// Lookup returns the symbol for an exact phrase.
func (d *Dictionary) Lookup(phrase string) (string, error) {
	s, ok := d.index[d.normalize(phrase)]
	if !ok {
		return "", fmt.Errorf("%w: %q", ErrNotFound, phrase)
	}
	return s, nil
}

// Entries returns a copy of the vocabulary sorted by descending phrase length.
func (d *Dictionary) Entries() []Entry {
	out := make([]Entry, len(d.entries))
	copy(out, d.entries)
	return out
}

// Len returns the number of entries.
func (d *Dictionary) Len() int {
	return len(d.entries)
}

// NormalizeTerm applies this vocabulary's normalizer to text.
func (d *Dictionary) NormalizeTerm(text string) string {
	return d.normalize(text)
}

// Overlaps returns phrase pairs where the end of one phrase is the start of
// another without either containing the other. Replacing one of them can cut
// an occurrence of the other in half, so a vocabulary should have none.
func (d *Dictionary) Overlaps() [][2]string {
	var out [][2]string
	for _, a := range d.entries {
		for _, b := range d.entries {
			if a.Phrase == b.Phrase || strings.Contains(a.Phrase, b.Phrase) || strings.Contains(b.Phrase, a.Phrase) {
				continue
			}
			if suffixPrefix(a.Phrase, b.Phrase) {
				out = append(out, [2]string{a.Phrase, b.Phrase})
			}
		}
	}
	return out
}

// suffixPrefix reports whether trailing words of a are the leading words of b.
func suffixPrefix(a, b string) bool {
	for i := 1; i < len(a); i++ {
		if a[i-1] != ' ' {
			continue
		}
		suffix := a[i:]
		if len(suffix) < len(b) && strings.HasPrefix(b, suffix) && b[len(suffix)] == ' ' {
			return true
		}
	}
	return false
}

func loadCSV(path string, format FormatSpec) ([]Entry, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("open data file: %w", err)
	}
	defer f.Close()

	// Transcode non-UTF-8 encodings declared in the manifest.
	var reader io.Reader = f
	if enc := format.Encoding; enc != "" && !isUTF8(enc) {
		e, err := htmlindex.Get(enc)
		if err != nil {
			return nil, fmt.Errorf("unsupported encoding %q: %w", enc, err)
		}
		reader = transform.NewReader(f, e.NewDecoder())
	}

	r := csv.NewReader(reader)
	if delim := format.Delimiter; delim != "" {
		r.Comma = []rune(delim)[0]
	}
	r.LazyQuotes = true
	r.TrimLeadingSpace = true

	phraseIdx, symbolIdx := 0, 1
	if format.HasHeader {
		header, err := r.Read()
		if err != nil {
			return nil, fmt.Errorf("read header: %w", err)
		}
		for i := range header {
			header[i] = strings.TrimSpace(header[i])
		}
		if phraseIdx, err = columnIndex(header, format.PhraseColumn, 0); err != nil {
			return nil, err
		}
		if symbolIdx, err = columnIndex(header, format.SymbolColumn, 1); err != nil {
			return nil, err
		}
	}

	var entries []Entry
	for {
		record, err := r.Read()
		if err == io.EOF {
			break
		}
		if err != nil {
			return nil, fmt.Errorf("read row: %w", err)
		}
		if phraseIdx >= len(record) || symbolIdx >= len(record) {
			continue
		}
		entries = append(entries, Entry{Phrase: record[phraseIdx], Symbol: record[symbolIdx]})
	}
	return entries, nil
}

func columnIndex(header []string, col string, fallback int) (int, error) {
	if col == "" {
		return fallback, nil
	}
	for i, h := range header {
		if h == col {
			return i, nil
		}
	}
	return 0, fmt.Errorf("column %q not found in header %v", col, header)
}

func isUTF8(enc string) bool {
	e := strings.ToLower(strings.ReplaceAll(enc, "-", ""))
	return e == "utf8" || e == ""
}
