package algebra

import (
	"math/big"
	"sort"
	"strings"
)

// Term is a coefficient times a monomial.
type Term struct {
	Mono Monomial
	Coef *big.Rat
}

// Poly is an immutable sparse polynomial. Terms are kept sorted by the
// ring's monomial order, largest first, with no zero coefficients. The zero
// value is not usable; obtain polynomials from a Ring.
type Poly struct {
	ring  *Ring
	terms []Term
}

func (p Poly) Ring() *Ring  { return p.ring }
func (p Poly) IsZero() bool { return len(p.terms) == 0 }
func (p Poly) Len() int     { return len(p.terms) }

// Terms returns the terms, largest first.
func (p Poly) Terms() []Term { return append([]Term(nil), p.terms...) }

// LeadingTerm panics on the zero polynomial.
func (p Poly) LeadingTerm() Term {
	if p.IsZero() {
		panic("algebra: leading term of zero polynomial")
	}
	return p.terms[0]
}

func (p Poly) LeadingMonomial() Monomial   { return p.LeadingTerm().Mono }
func (p Poly) LeadingCoefficient() *big.Rat { return p.LeadingTerm().Coef }

// IsConstant reports whether p is a field element (zero included).
func (p Poly) IsConstant() bool {
	return p.IsZero() || (len(p.terms) == 1 && p.terms[0].Mono.IsOne())
}

func (p Poly) check(q Poly) {
	if !p.ring.Equal(q.ring) {
		panic("algebra: polynomials from different rings: " + p.ring.String() + " vs " + q.ring.String())
	}
}

// ============================================================
// Arithmetic
// ============================================================

func (p Poly) Add(q Poly) Poly { return p.combine(q, false) }
func (p Poly) Sub(q Poly) Poly { return p.combine(q, true) }

func (p Poly) combine(q Poly, negate bool) Poly {
	p.check(q)
	f, ord := p.ring.field, p.ring.order
	out := make([]Term, 0, len(p.terms)+len(q.terms))
	i, j := 0, 0
	for i < len(p.terms) && j < len(q.terms) {
		a, b := p.terms[i], q.terms[j]
		switch ord.Compare(a.Mono, b.Mono) {
		case 1:
			out = append(out, a)
			i++
		case -1:
			if negate {
				b = Term{Mono: b.Mono, Coef: f.Neg(b.Coef)}
			}
			out = append(out, b)
			j++
		default:
			var c *big.Rat
			if negate {
				c = f.Sub(a.Coef, b.Coef)
			} else {
				c = f.Add(a.Coef, b.Coef)
			}
			if c.Sign() != 0 {
				out = append(out, Term{Mono: a.Mono, Coef: c})
			}
			i++
			j++
		}
	}
	out = append(out, p.terms[i:]...)
	for ; j < len(q.terms); j++ {
		b := q.terms[j]
		if negate {
			b = Term{Mono: b.Mono, Coef: f.Neg(b.Coef)}
		}
		out = append(out, b)
	}
	return Poly{ring: p.ring, terms: out}
}

// Neg returns -p.
func (p Poly) Neg() Poly {
	out := make([]Term, len(p.terms))
	for i, t := range p.terms {
		out[i] = Term{Mono: t.Mono, Coef: p.ring.field.Neg(t.Coef)}
	}
	return Poly{ring: p.ring, terms: out}
}

// Scale returns c*p for a field element c.
func (p Poly) Scale(c *big.Rat) Poly {
	return p.MulTerm(c, One(p.ring.NumGens()))
}

// MulTerm returns c*m*p. Multiplying by a monomial preserves term order.
func (p Poly) MulTerm(c *big.Rat, m Monomial) Poly {
	if c.Sign() == 0 {
		return p.ring.Zero()
	}
	f := p.ring.field
	out := make([]Term, 0, len(p.terms))
	for _, t := range p.terms {
		coef := f.Mul(t.Coef, c)
		if coef.Sign() == 0 {
			continue
		}
		out = append(out, Term{Mono: t.Mono.Mul(m), Coef: coef})
	}
	return Poly{ring: p.ring, terms: out}
}

// Mul returns p*q.
func (p Poly) Mul(q Poly) Poly {
	p.check(q)
	if p.IsZero() || q.IsZero() {
		return p.ring.Zero()
	}
	f := p.ring.field
	acc := make(map[string]*Term, len(p.terms)*len(q.terms))
	for _, a := range p.terms {
		for _, b := range q.terms {
			m := a.Mono.Mul(b.Mono)
			c := f.Mul(a.Coef, b.Coef)
			k := m.key()
			if t, ok := acc[k]; ok {
				t.Coef = f.Add(t.Coef, c)
			} else {
				acc[k] = &Term{Mono: m, Coef: c}
			}
		}
	}
	return p.ring.fromTerms(acc)
}

// fromTerms sorts accumulated terms and drops zeros.
func (r *Ring) fromTerms(acc map[string]*Term) Poly {
	out := make([]Term, 0, len(acc))
	for _, t := range acc {
		if t.Coef.Sign() != 0 {
			out = append(out, *t)
		}
	}
	sort.Slice(out, func(i, j int) bool { return r.order.Compare(out[i].Mono, out[j].Mono) > 0 })
	return Poly{ring: r, terms: out}
}

// Pow returns p^n for n >= 0.
func (p Poly) Pow(n int) Poly {
	if n < 0 {
		panic("algebra: negative exponent")
	}
	result := p.ring.One()
	base := p
	for n > 0 {
		if n&1 == 1 {
			result = result.Mul(base)
		}
		n >>= 1
		if n > 0 {
			base = base.Mul(base)
		}
	}
	return result
}

// Monic divides p by its leading coefficient. Zero stays zero.
func (p Poly) Monic() Poly {
	if p.IsZero() {
		return p
	}
	return p.Scale(p.ring.field.Inv(p.LeadingCoefficient()))
}

// Equal reports whether p and q are the same polynomial.
func (p Poly) Equal(q Poly) bool {
	if !p.ring.Equal(q.ring) || len(p.terms) != len(q.terms) {
		return false
	}
	for i := range p.terms {
		if !p.terms[i].Mono.Equal(q.terms[i].Mono) || p.terms[i].Coef.Cmp(q.terms[i].Coef) != 0 {
			return false
		}
	}
	return true
}

// ============================================================
// Calculus and structure
// ============================================================

// Diff returns the partial derivative with respect to generator i.
func (p Poly) Diff(i int) Poly {
	f := p.ring.field
	out := make([]Term, 0, len(p.terms))
	for _, t := range p.terms {
		e := t.Mono[i]
		if e == 0 {
			continue
		}
		c := f.Mul(t.Coef, FromInt(f, int64(e)))
		if c.Sign() == 0 {
			continue
		}
		m := append(Monomial(nil), t.Mono...)
		m[i]--
		out = append(out, Term{Mono: m, Coef: c})
	}
	return Poly{ring: p.ring, terms: out}
}

// Degree returns the total degree, -1 for zero.
func (p Poly) Degree() int {
	d := -1
	for _, t := range p.terms {
		d = max(d, t.Mono.Degree())
	}
	return d
}

// DegreeIn returns the degree in generator i, -1 for zero.
func (p Poly) DegreeIn(i int) int {
	d := -1
	for _, t := range p.terms {
		d = max(d, t.Mono[i])
	}
	return d
}

// CoefficientIn returns the coefficient of x_i^k, viewing p as a
// polynomial in x_i over the other generators.
func (p Poly) CoefficientIn(i, k int) Poly {
	out := []Term{}
	for _, t := range p.terms {
		if t.Mono[i] != k {
			continue
		}
		m := append(Monomial(nil), t.Mono...)
		m[i] = 0
		out = append(out, Term{Mono: m, Coef: t.Coef})
	}
	return Poly{ring: p.ring, terms: out}
}

// Support returns the sorted indices of the generators occurring in p.
func (p Poly) Support() []int {
	used := make([]bool, p.ring.NumGens())
	for _, t := range p.terms {
		for i, e := range t.Mono {
			if e > 0 {
				used[i] = true
			}
		}
	}
	out := []int{}
	for i, u := range used {
		if u {
			out = append(out, i)
		}
	}
	return out
}

// in re-sorts p into r, which must have the same field and generator count.
func (p Poly) in(r *Ring) Poly {
	out := append([]Term(nil), p.terms...)
	sort.Slice(out, func(i, j int) bool { return r.order.Compare(out[i].Mono, out[j].Mono) > 0 })
	return Poly{ring: r, terms: out}
}

func (p Poly) String() string {
	if p.ring == nil {
		return "<nil>"
	}
	if p.IsZero() {
		return "0"
	}
	var sb strings.Builder
	one := big.NewRat(1, 1)
	for i, t := range p.terms {
		abs := new(big.Rat).Abs(t.Coef)
		mono := t.Mono.format(p.ring.names)
		var body string
		switch {
		case mono == "1":
			body = abs.RatString()
		case abs.Cmp(one) == 0:
			body = mono
		default:
			body = abs.RatString() + "*" + mono
		}
		neg := t.Coef.Sign() < 0
		switch {
		case i == 0 && neg:
			sb.WriteString("-")
		case i > 0 && neg:
			sb.WriteString(" - ")
		case i > 0:
			sb.WriteString(" + ")
		}
		sb.WriteString(body)
	}
	return sb.String()
}
