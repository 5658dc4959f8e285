package algebra

import (
	"fmt"
	"math/big"
	"strconv"
	"strings"
	"unicode"

	"github.com/njchilds90/gojets/errs"
)

// Parse reads a polynomial written with the ring's generator names, integer
// or decimal constants, + - * / ^ (or **) and parentheses. Division is only
// allowed by nonzero constants.
func Parse(r *Ring, s string) (Poly, error) {
	toks, err := lex(s)
	if err != nil {
		return Poly{}, err
	}
	ps := &parser{ring: r, toks: toks, src: s}
	p, err := ps.expr()
	if err != nil {
		return Poly{}, err
	}
	if ps.pos != len(ps.toks) {
		return Poly{}, ps.fail("unexpected %q", ps.toks[ps.pos].text)
	}
	return p, nil
}

// ParseAll parses every string in ss.
func ParseAll(r *Ring, ss []string) ([]Poly, error) {
	out := make([]Poly, len(ss))
	for i, s := range ss {
		p, err := Parse(r, s)
		if err != nil {
			return nil, err
		}
		out[i] = p
	}
	return out, nil
}

// MustParse is Parse that panics on error, for literals in tests and examples.
func MustParse(r *Ring, s string) Poly {
	p, err := Parse(r, s)
	if err != nil {
		panic(err)
	}
	return p
}

type tokKind int

const (
	tokNum tokKind = iota
	tokIdent
	tokOp
)

type token struct {
	kind tokKind
	text string
}

func lex(s string) ([]token, error) {
	var toks []token
	rs := []rune(s)
	for i := 0; i < len(rs); {
		c := rs[i]
		switch {
		case unicode.IsSpace(c):
			i++
		case unicode.IsDigit(c) || c == '.':
			j := i
			for j < len(rs) && (unicode.IsDigit(rs[j]) || rs[j] == '.') {
				j++
			}
			toks = append(toks, token{tokNum, string(rs[i:j])})
			i = j
		case unicode.IsLetter(c) || c == '_':
			j := i
			for j < len(rs) && (unicode.IsLetter(rs[j]) || unicode.IsDigit(rs[j]) || rs[j] == '_') {
				j++
			}
			toks = append(toks, token{tokIdent, string(rs[i:j])})
			i = j
		case c == '*' && i+1 < len(rs) && rs[i+1] == '*':
			toks = append(toks, token{tokOp, "^"})
			i += 2
		case strings.ContainsRune("+-*/^()", c):
			toks = append(toks, token{tokOp, string(c)})
			i++
		default:
			return nil, errs.Configf("algebra.Parse", "unexpected character %q in %q", c, s)
		}
	}
	return toks, nil
}

type parser struct {
	ring *Ring
	toks []token
	pos  int
	src  string
}

func (ps *parser) fail(format string, args ...any) error {
	return errs.Configf("algebra.Parse", "%s in %q", fmt.Sprintf(format, args...), ps.src)
}

func (ps *parser) peekOp(ops ...string) (string, bool) {
	if ps.pos >= len(ps.toks) || ps.toks[ps.pos].kind != tokOp {
		return "", false
	}
	for _, o := range ops {
		if ps.toks[ps.pos].text == o {
			return o, true
		}
	}
	return "", false
}

func (ps *parser) expr() (Poly, error) {
	acc, err := ps.term()
	if err != nil {
		return Poly{}, err
	}
	for {
		op, ok := ps.peekOp("+", "-")
		if !ok {
			return acc, nil
		}
		ps.pos++
		rhs, err := ps.term()
		if err != nil {
			return Poly{}, err
		}
		if op == "+" {
			acc = acc.Add(rhs)
		} else {
			acc = acc.Sub(rhs)
		}
	}
}

func (ps *parser) term() (Poly, error) {
	acc, err := ps.factor()
	if err != nil {
		return Poly{}, err
	}
	for {
		op, ok := ps.peekOp("*", "/")
		if !ok {
			return acc, nil
		}
		ps.pos++
		rhs, err := ps.factor()
		if err != nil {
			return Poly{}, err
		}
		if op == "*" {
			acc = acc.Mul(rhs)
			continue
		}
		if !rhs.IsConstant() || rhs.IsZero() {
			return Poly{}, ps.fail("division by non-constant or zero")
		}
		acc = acc.Scale(ps.ring.field.Inv(rhs.LeadingCoefficient()))
	}
}

func (ps *parser) factor() (Poly, error) {
	if op, ok := ps.peekOp("-", "+"); ok {
		ps.pos++
		f, err := ps.factor()
		if err != nil {
			return Poly{}, err
		}
		if op == "-" {
			return f.Neg(), nil
		}
		return f, nil
	}
	base, err := ps.atom()
	if err != nil {
		return Poly{}, err
	}
	if _, ok := ps.peekOp("^"); ok {
		ps.pos++
		if ps.pos >= len(ps.toks) || ps.toks[ps.pos].kind != tokNum {
			return Poly{}, ps.fail("exponent must be a non-negative integer")
		}
		n, err := strconv.Atoi(ps.toks[ps.pos].text)
		if err != nil || n < 0 {
			return Poly{}, ps.fail("exponent must be a non-negative integer")
		}
		ps.pos++
		return base.Pow(n), nil
	}
	return base, nil
}

func (ps *parser) atom() (Poly, error) {
	if ps.pos >= len(ps.toks) {
		return Poly{}, ps.fail("unexpected end of input")
	}
	tok := ps.toks[ps.pos]
	ps.pos++
	switch tok.kind {
	case tokNum:
		v, ok := new(big.Rat).SetString(tok.text)
		if !ok {
			return Poly{}, ps.fail("bad number %q", tok.text)
		}
		c, err := ps.ring.field.FromRat(v)
		if err != nil {
			return Poly{}, err
		}
		return ps.ring.Const(c), nil
	case tokIdent:
		i, ok := ps.ring.IndexOf(tok.text)
		if !ok {
			return Poly{}, ps.fail("unknown generator %q", tok.text)
		}
		return ps.ring.Gen(i), nil
	}
	if tok.text == "(" {
		p, err := ps.expr()
		if err != nil {
			return Poly{}, err
		}
		if _, ok := ps.peekOp(")"); !ok {
			return Poly{}, ps.fail("missing )")
		}
		ps.pos++
		return p, nil
	}
	return Poly{}, ps.fail("unexpected %q", tok.text)
}
