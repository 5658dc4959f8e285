package jets

import (
	"github.com/njchilds90/gojets/algebra"
	"github.com/njchilds90/gojets/errs"
)

// HasseSchmidt returns the truncated Taylor expansion of each polynomial
// along the jet path x_r(t) = x_{r,0} + x_{r,1} t + ... + x_{r,n} t^n:
// out[k][s] is the coefficient of t^s in polys[k](x(t)), for s = 0..n.
// The polynomials must involve level-0 generators only, and n may not
// exceed Trun()-1.
func HasseSchmidt(jr *JetRing, polys []algebra.Poly, n int) ([][]algebra.Poly, error) {
	const op = "jets.HasseSchmidt"
	if len(polys) == 0 {
		return nil, errs.Configf(op, "no polynomials to lift")
	}
	if n < 0 || n > jr.trun-1 {
		return nil, errs.Dimensionf(op, "order %d outside [0,%d] for %s", n, jr.trun-1, jr)
	}
	for _, p := range polys {
		if err := jr.levelZero(op, p); err != nil {
			return nil, err
		}
	}
	s := &seriesRing{jr: jr, n: n, powers: make([][]series, len(jr.blocks))}
	out := make([][]algebra.Poly, len(polys))
	for k, p := range polys {
		out[k] = s.expand(p)
	}
	return out, nil
}

// HasseSchmidtIdeal returns the ideal generated by every component of the
// lift of polys to order n, polynomial by polynomial, order by order.
func HasseSchmidtIdeal(jr *JetRing, polys []algebra.Poly, n int) (*algebra.Ideal, error) {
	lifted, err := HasseSchmidt(jr, polys, n)
	if err != nil {
		return nil, err
	}
	return algebra.NewIdeal(jr.ring, flatten(lifted)...)
}

func flatten(lists [][]algebra.Poly) []algebra.Poly {
	var out []algebra.Poly
	for _, l := range lists {
		out = append(out, l...)
	}
	return out
}

// ============================================================
// Truncated power series over the jet ring
// ============================================================

// series holds the coefficients of t^0..t^n.
type series []algebra.Poly

type seriesRing struct {
	jr *JetRing
	n  int
	// powers[b][e] is the series of block b's path raised to e.
	powers [][]series
}

func (s *seriesRing) constant(p algebra.Poly) series {
	out := make(series, s.n+1)
	out[0] = p
	for i := 1; i <= s.n; i++ {
		out[i] = s.jr.ring.Zero()
	}
	return out
}

func (s *seriesRing) path(block int) series {
	out := make(series, s.n+1)
	for i := range out {
		out[i] = s.jr.gen(block, i)
	}
	return out
}

func (s *seriesRing) mul(a, b series) series {
	out := s.constant(s.jr.ring.Zero())
	for i, ai := range a {
		if ai.IsZero() {
			continue
		}
		for j := 0; i+j <= s.n; j++ {
			if b[j].IsZero() {
				continue
			}
			out[i+j] = out[i+j].Add(ai.Mul(b[j]))
		}
	}
	return out
}

func (s *seriesRing) add(a, b series) series {
	out := make(series, len(a))
	for i := range a {
		out[i] = a[i].Add(b[i])
	}
	return out
}

func (s *seriesRing) power(block, e int) series {
	if s.powers[block] == nil {
		s.powers[block] = []series{s.constant(s.jr.ring.One()), s.path(block)}
	}
	for len(s.powers[block]) <= e {
		last := s.powers[block][len(s.powers[block])-1]
		s.powers[block] = append(s.powers[block], s.mul(last, s.powers[block][1]))
	}
	return s.powers[block][e]
}

// expand substitutes the jet paths into a level-0 polynomial.
func (s *seriesRing) expand(p algebra.Poly) series {
	r := s.jr.ring
	acc := s.constant(r.Zero())
	for _, t := range p.Terms() {
		term := s.constant(r.Const(t.Coef))
		for b := range s.jr.blocks {
			if e := t.Mono[b*s.jr.trun]; e > 0 {
				term = s.mul(term, s.power(b, e))
			}
		}
		acc = s.add(acc, term)
	}
	return acc
}
