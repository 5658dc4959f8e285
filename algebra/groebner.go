package algebra

import (
	"context"
	"sort"

	"go.uber.org/zap"

	"github.com/njchilds90/gojets/errs"
)

// ============================================================
// Buchberger's algorithm
// ============================================================

type spair struct {
	i, j  int
	lcm   Monomial
	sugar int
}

// pairSugar is the sugar degree of the S-polynomial of G[i] and G[j]: the
// degree it would have if every input were homogenized.
func pairSugar(G []Poly, sugar []int, i, j int, lcm Monomial) int {
	si := sugar[i] + lcm.Degree() - G[i].LeadingMonomial().Degree()
	sj := sugar[j] + lcm.Degree() - G[j].LeadingMonomial().Degree()
	if si > sj {
		return si
	}
	return sj
}

// before reports whether pair a is selected ahead of b: lower sugar first,
// then the smaller lcm.
func before(ord Order, a, b spair) bool {
	if a.sugar != b.sugar {
		return a.sugar < b.sugar
	}
	return ord.Compare(a.lcm, b.lcm) < 0
}

// groebner returns the reduced Gröbner basis of gens in r, sorted by
// leading monomial, smallest first. S-pairs are selected by the sugar
// strategy. The unit ideal yields [1] and the zero ideal an empty basis.
func (e *Engine) groebner(ctx context.Context, op string, r *Ring, gens []Poly) ([]Poly, int, error) {
	if err := ctx.Err(); err != nil {
		return nil, 0, errs.EngineErr(op, err)
	}
	var G []Poly
	var sugar []int
	for _, g := range gens {
		if g.IsZero() {
			continue
		}
		if g.IsConstant() {
			return []Poly{r.One()}, 0, nil
		}
		G = append(G, g.Monic())
		sugar = append(sugar, g.Degree())
	}
	if len(G) == 0 {
		return nil, 0, nil
	}

	var pairs []spair
	pending := map[[2]int]bool{}
	addPairs := func(k int) {
		for i := 0; i < k; i++ {
			lcm := G[i].LeadingMonomial().LCM(G[k].LeadingMonomial())
			pairs = append(pairs, spair{i: i, j: k, lcm: lcm, sugar: pairSugar(G, sugar, i, k, lcm)})
			pending[[2]int{i, k}] = true
		}
	}
	for k := range G {
		addPairs(k)
	}

	reduced := 0
	for len(pairs) > 0 {
		if err := ctx.Err(); err != nil {
			return nil, reduced, errs.EngineErr(op, err)
		}
		if e.maxPairs() > 0 && reduced >= e.maxPairs() {
			return nil, reduced, errs.Enginef(op, "S-pair budget of %d exhausted with %d pairs pending", e.maxPairs(), len(pairs))
		}

		best := 0
		for k := 1; k < len(pairs); k++ {
			if before(r.order, pairs[k], pairs[best]) {
				best = k
			}
		}
		p := pairs[best]
		pairs = append(pairs[:best], pairs[best+1:]...)
		delete(pending, [2]int{p.i, p.j})

		if G[p.i].LeadingMonomial().Coprime(G[p.j].LeadingMonomial()) {
			continue
		}
		if chainCriterion(G, pending, p) {
			continue
		}

		reduced++
		h := normalForm(sPoly(G[p.i], G[p.j]), G)
		if h.IsZero() {
			continue
		}
		if h.IsConstant() {
			return []Poly{r.One()}, reduced, nil
		}
		G = append(G, h.Monic())
		sugar = append(sugar, p.sugar)
		addPairs(len(G) - 1)
	}

	basis := interreduce(G)
	e.logger().Debug("groebner basis",
		zap.String("op", op),
		zap.Int("generators", len(gens)),
		zap.Int("basis", len(basis)),
		zap.Int("spairs", reduced))
	return basis, reduced, nil
}

// chainCriterion reports whether some earlier generator's leading monomial
// divides lcm(p) while both companion pairs are already settled.
func chainCriterion(G []Poly, pending map[[2]int]bool, p spair) bool {
	key := func(a, b int) [2]int {
		if a > b {
			a, b = b, a
		}
		return [2]int{a, b}
	}
	for k := range G {
		if k == p.i || k == p.j {
			continue
		}
		if !G[k].LeadingMonomial().Divides(p.lcm) {
			continue
		}
		if !pending[key(p.i, k)] && !pending[key(p.j, k)] {
			return true
		}
	}
	return false
}

func sPoly(f, g Poly) Poly {
	fl, gl := f.LeadingTerm(), g.LeadingTerm()
	lcm := fl.Mono.LCM(gl.Mono)
	field := f.ring.field
	a := f.MulTerm(field.Inv(fl.Coef), lcm.Div(fl.Mono))
	b := g.MulTerm(field.Inv(gl.Coef), lcm.Div(gl.Mono))
	return a.Sub(b)
}

// normalForm fully reduces p modulo G. Every element of G must be monic.
func normalForm(p Poly, G []Poly) Poly {
	r := p.ring
	var rem []Term
	for !p.IsZero() {
		lt := p.terms[0]
		divided := false
		for _, g := range G {
			glm := g.terms[0].Mono
			if glm.Divides(lt.Mono) {
				p = p.Sub(g.MulTerm(lt.Coef, lt.Mono.Div(glm)))
				divided = true
				break
			}
		}
		if !divided {
			rem = append(rem, lt)
			p = Poly{ring: r, terms: p.terms[1:]}
		}
	}
	return Poly{ring: r, terms: rem}
}

// interreduce turns a Gröbner basis into the reduced one.
func interreduce(G []Poly) []Poly {
	if len(G) == 0 {
		return nil
	}
	ord := G[0].ring.order
	sorted := append([]Poly(nil), G...)
	sort.SliceStable(sorted, func(i, j int) bool {
		return ord.Compare(sorted[i].LeadingMonomial(), sorted[j].LeadingMonomial()) < 0
	})
	var minimal []Poly
	for _, g := range sorted {
		redundant := false
		for _, h := range minimal {
			if h.LeadingMonomial().Divides(g.LeadingMonomial()) {
				redundant = true
				break
			}
		}
		if !redundant {
			minimal = append(minimal, g)
		}
	}
	out := make([]Poly, len(minimal))
	for i, g := range minimal {
		others := make([]Poly, 0, len(minimal)-1)
		others = append(others, minimal[:i]...)
		others = append(others, minimal[i+1:]...)
		lead := Poly{ring: g.ring, terms: g.terms[:1]}
		tail := normalForm(Poly{ring: g.ring, terms: g.terms[1:]}, others)
		out[i] = lead.Add(tail).Monic()
	}
	return out
}
