package expr

import (
	"math/big"
	"strconv"
	"strings"
)

// MaxDepth bounds the nesting of parentheses and signs.
const MaxDepth = 256

// Parse builds the expression tree for s.
//
//	expr    := term (('+' | '-') term)*
//	term    := unary (('*' | '/' | '//' | '%') unary)*
//	unary   := ('+' | '-') unary | power
//	power   := primary ('^' unary)?
//	primary := number | '(' expr ')'
//
// '^' is right associative and binds tighter than a leading sign, so -2^2 is
// -(2^2). "**" is accepted for '^'.
func Parse(s string) (Node, error) {
	toks, err := lex(s)
	if err != nil {
		return nil, err
	}
	p := &parser{toks: toks}
	if p.peek().kind == tokEOF {
		return nil, malformed(0, "empty expression")
	}
	n, err := p.expr()
	if err != nil {
		return nil, err
	}
	if t := p.peek(); t.kind != tokEOF {
		return nil, malformed(t.pos, "unexpected %s", t)
	}
	return n, nil
}

type parser struct {
	toks  []token
	pos   int
	depth int
}

func (p *parser) peek() token { return p.toks[p.pos] }

func (p *parser) next() token {
	t := p.toks[p.pos]
	if t.kind != tokEOF {
		p.pos++
	}
	return t
}

func (p *parser) expr() (Node, error) {
	l, err := p.term()
	if err != nil {
		return nil, err
	}
	for {
		t := p.peek()
		if t.kind != tokPlus && t.kind != tokMinus {
			return l, nil
		}
		p.next()
		r, err := p.term()
		if err != nil {
			return nil, err
		}
		l = &Binary{Op: symbol(t.kind), L: l, R: r, Pos: t.pos}
	}
}

func (p *parser) term() (Node, error) {
	l, err := p.unary()
	if err != nil {
		return nil, err
	}
	for {
		t := p.peek()
		switch t.kind {
		case tokStar, tokSlash, tokFloorDiv, tokPercent:
		default:
			return l, nil
		}
		p.next()
		r, err := p.unary()
		if err != nil {
			return nil, err
		}
		l = &Binary{Op: symbol(t.kind), L: l, R: r, Pos: t.pos}
	}
}

func (p *parser) unary() (Node, error) {
	t := p.peek()
	p.depth++
	defer func() { p.depth-- }()
	if p.depth > MaxDepth {
		return nil, malformed(t.pos, "nesting deeper than %d", MaxDepth)
	}

	if t.kind == tokPlus || t.kind == tokMinus {
		p.next()
		x, err := p.unary()
		if err != nil {
			return nil, err
		}
		return &Unary{Op: symbol(t.kind), X: x, Pos: t.pos}, nil
	}
	return p.power()
}

func (p *parser) power() (Node, error) {
	base, err := p.primary()
	if err != nil {
		return nil, err
	}
	t := p.peek()
	if t.kind != tokCaret {
		return base, nil
	}
	p.next()
	exp, err := p.unary()
	if err != nil {
		return nil, err
	}
	return &Binary{Op: "^", L: base, R: exp, Pos: t.pos}, nil
}

func (p *parser) primary() (Node, error) {
	t := p.next()
	switch t.kind {
	case tokNumber:
		v, err := parseNumber(t)
		if err != nil {
			return nil, err
		}
		return &Number{Val: v, Pos: t.pos}, nil
	case tokLParen:
		n, err := p.expr()
		if err != nil {
			return nil, err
		}
		if c := p.next(); c.kind != tokRParen {
			return nil, malformed(c.pos, "expected ')' to close '(' at offset %d, found %s", t.pos, c)
		}
		return n, nil
	case tokEOF:
		return nil, malformed(t.pos, "missing operand")
	}
	return nil, malformed(t.pos, "unexpected %s", t)
}

func parseNumber(t token) (Value, error) {
	if strings.Contains(t.text, ".") {
		f, err := strconv.ParseFloat(t.text, 64)
		if err != nil {
			return Value{}, malformed(t.pos, "bad number %q", t.text)
		}
		return FloatValue(f), nil
	}
	i, ok := new(big.Int).SetString(t.text, 10)
	if !ok {
		return Value{}, malformed(t.pos, "bad number %q", t.text)
	}
	return Value{i: i}, nil
}

func symbol(k tokenKind) string {
	switch k {
	case tokPlus:
		return "+"
	case tokMinus:
		return "-"
	case tokStar:
		return "*"
	case tokSlash:
		return "/"
	case tokFloorDiv:
		return "//"
	case tokPercent:
		return "%"
	case tokCaret:
		return "^"
	}
	return "?"
}
