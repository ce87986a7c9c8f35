package expr

import (
	"strings"
	"unicode"
	"unicode/utf8"
)

type tokenKind int

const (
	tokEOF tokenKind = iota
	tokNumber
	tokPlus
	tokMinus
	tokStar
	tokSlash
	tokFloorDiv
	tokPercent
	tokCaret
	tokLParen
	tokRParen
)

var tokenNames = map[tokenKind]string{
	tokEOF:      "end of expression",
	tokNumber:   "number",
	tokPlus:     "'+'",
	tokMinus:    "'-'",
	tokStar:     "'*'",
	tokSlash:    "'/'",
	tokFloorDiv: "'//'",
	tokPercent:  "'%'",
	tokCaret:    "'^'",
	tokLParen:   "'('",
	tokRParen:   "')'",
}

type token struct {
	kind tokenKind
	text string
	pos  int
}

func (t token) String() string {
	if t.kind == tokNumber {
		return "number " + t.text
	}
	return tokenNames[t.kind]
}

// lex splits s into tokens. The last token is always tokEOF.
func lex(s string) ([]token, error) {
	var toks []token
	for i := 0; i < len(s); {
		r, size := utf8.DecodeRuneInString(s[i:])
		switch {
		case unicode.IsSpace(r):
			i += size
			continue
		case isDigit(r) || r == '.':
			end, err := scanNumber(s, i)
			if err != nil {
				return nil, err
			}
			toks = append(toks, token{kind: tokNumber, text: s[i:end], pos: i})
			i = end
			continue
		}

		kind, width := operator(s[i:], r, size)
		if kind == tokEOF {
			if r == utf8.RuneError && size == 1 {
				return nil, malformed(i, "invalid UTF-8")
			}
			return nil, malformed(i, "unexpected character %q", r)
		}
		toks = append(toks, token{kind: kind, text: s[i : i+width], pos: i})
		i += width
	}
	return append(toks, token{kind: tokEOF, pos: len(s)}), nil
}

// operator recognizes the operator starting at s, whose first rune r is size
// bytes long. It returns tokEOF when r starts no operator.
func operator(s string, r rune, size int) (tokenKind, int) {
	switch r {
	case '+':
		return tokPlus, size
	case '-', '−':
		return tokMinus, size
	case '*', '×':
		if r == '*' && len(s) > 1 && s[1] == '*' {
			return tokCaret, 2
		}
		return tokStar, size
	case '/', '÷':
		if r == '/' && len(s) > 1 && s[1] == '/' {
			return tokFloorDiv, 2
		}
		return tokSlash, size
	case '%':
		return tokPercent, size
	case '^':
		return tokCaret, size
	case '(':
		return tokLParen, size
	case ')':
		return tokRParen, size
	}
	return tokEOF, 0
}

// scanNumber returns the end of the number literal starting at i:
// digits with an optional fraction, or a fraction alone (".5").
func scanNumber(s string, i int) (int, error) {
	start := i
	for i < len(s) && isDigit(rune(s[i])) {
		i++
	}
	// Integer literals may not have leading zeros ("007"), except all-zero
	// ones ("00"). Decimals may ("007.5").
	if digits := s[start:i]; len(digits) > 1 && digits[0] == '0' && strings.Trim(digits, "0") != "" &&
		(i == len(s) || s[i] != '.') {
		return 0, malformed(start, "leading zero in integer literal %q", digits)
	}
	if i < len(s) && s[i] == '.' {
		i++
		frac := i
		for i < len(s) && isDigit(rune(s[i])) {
			i++
		}
		if frac == i && frac-1 == start {
			return 0, malformed(start, "lone '.'")
		}
	}
	return i, nil
}

func isDigit(r rune) bool { return '0' <= r && r <= '9' }
