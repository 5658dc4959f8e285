package algebra

import (
	"context"
	"fmt"
	"sort"
	"strings"

	"github.com/njchilds90/gojets/errs"
)

// RingMap is the ring homomorphism sending each source generator to a
// polynomial of the target ring. Images are keyed by source generator
// index and validated against both rings at construction.
type RingMap struct {
	source *Ring
	target *Ring
	images []Poly
}

// NewRingMap builds the map from explicit images. Every source generator
// needs an image, and every image must live in target.
func NewRingMap(source, target *Ring, images map[int]Poly) (*RingMap, error) {
	const op = "algebra.NewRingMap"
	if !source.field.Equal(target.field) {
		return nil, errs.Configf(op, "fields differ: %s vs %s", source.field.Name(), target.field.Name())
	}
	out := make([]Poly, source.NumGens())
	for i, img := range images {
		if i < 0 || i >= source.NumGens() {
			return nil, errs.Configf(op, "generator index %d out of range for %s", i, source)
		}
		if img.ring == nil {
			return nil, errs.Configf(op, "no image for generator %s", source.names[i])
		}
		if !target.Equal(img.ring) {
			return nil, errs.Configf(op, "image of %s lives in %s, not %s", source.names[i], img.ring, target)
		}
		out[i] = img
	}
	for i, img := range out {
		if img.ring == nil {
			return nil, errs.Configf(op, "no image for generator %s", source.names[i])
		}
	}
	return &RingMap{source: source, target: target, images: out}, nil
}

// NameMap sends every source generator to the target generator of the same
// name.
func NameMap(source, target *Ring) (*RingMap, error) {
	images := make(map[int]Poly, source.NumGens())
	for i, n := range source.names {
		j, ok := target.IndexOf(n)
		if !ok {
			return nil, errs.Configf("algebra.NameMap", "%s has no generator %q", target, n)
		}
		images[i] = target.Gen(j)
	}
	return NewRingMap(source, target, images)
}

// Projection sends source generators to the same-named target generator
// and every other source generator to zero.
func Projection(source, target *Ring) (*RingMap, error) {
	images := make(map[int]Poly, source.NumGens())
	for i, n := range source.names {
		if j, ok := target.IndexOf(n); ok {
			images[i] = target.Gen(j)
		} else {
			images[i] = target.Zero()
		}
	}
	return NewRingMap(source, target, images)
}

func (m *RingMap) Source() *Ring { return m.source }
func (m *RingMap) Target() *Ring { return m.target }

// Image returns the image of source generator i.
func (m *RingMap) Image(i int) Poly { return m.images[i] }

// Apply evaluates the map on p.
func (m *RingMap) Apply(p Poly) (Poly, error) {
	if !m.source.Equal(p.ring) {
		return Poly{}, errs.Configf("algebra.RingMap.Apply", "%s is not in %s", p, m.source)
	}
	powers := make([]map[int]Poly, len(m.images))
	pow := func(i, e int) Poly {
		if powers[i] == nil {
			powers[i] = map[int]Poly{1: m.images[i]}
		}
		if q, ok := powers[i][e]; ok {
			return q
		}
		q := m.images[i].Pow(e)
		powers[i][e] = q
		return q
	}
	acc := m.target.Zero()
	for _, t := range p.terms {
		term := m.target.Const(t.Coef)
		for i, e := range t.Mono {
			if e > 0 {
				term = term.Mul(pow(i, e))
			}
		}
		acc = acc.Add(term)
	}
	return acc, nil
}

// ApplyAll evaluates the map on every polynomial of ps.
func (m *RingMap) ApplyAll(ps []Poly) ([]Poly, error) {
	out := make([]Poly, len(ps))
	for i, p := range ps {
		q, err := m.Apply(p)
		if err != nil {
			return nil, err
		}
		out[i] = q
	}
	return out, nil
}

// Pushforward returns the ideal of the target generated by the images of
// I's generators.
func (m *RingMap) Pushforward(I *Ideal) (*Ideal, error) {
	if !m.source.Equal(I.ring) {
		return nil, errs.Configf("algebra.RingMap.Pushforward", "ideal of %s, map from %s", I.ring, m.source)
	}
	imgs, err := m.ApplyAll(I.gens)
	if err != nil {
		return nil, err
	}
	return NewIdeal(m.target, imgs...)
}

// Then returns the composite n∘m: apply m first, then n.
func (m *RingMap) Then(n *RingMap) (*RingMap, error) {
	if !m.target.Equal(n.source) {
		return nil, errs.Configf("algebra.RingMap.Then", "%s does not feed %s", m.target, n.source)
	}
	images := make(map[int]Poly, len(m.images))
	for i, img := range m.images {
		q, err := n.Apply(img)
		if err != nil {
			return nil, err
		}
		images[i] = q
	}
	return NewRingMap(m.source, n.target, images)
}

func (m *RingMap) String() string {
	parts := make([]string, len(m.images))
	for i, img := range m.images {
		parts[i] = fmt.Sprintf("%s -> %s", m.source.names[i], img)
	}
	return m.source.String() + " -> " + m.target.String() + " {" + strings.Join(parts, ", ") + "}"
}

// Preimage returns the ideal of the source consisting of everything m sends
// into J. It eliminates the target generators from the graph ideal
// J + (y_i - m(y_i)) in the ring target ⊗ source.
func (e *Engine) Preimage(ctx context.Context, m *RingMap, J *Ideal) (*Ideal, error) {
	const op = "algebra.Preimage"
	if !m.target.Equal(J.ring) {
		return nil, errs.Configf(op, "ideal of %s, map into %s", J.ring, m.target)
	}
	nt, ns := m.target.NumGens(), m.source.NumGens()
	names := m.target.Names()
	taken := make(map[string]bool, nt+ns)
	for _, n := range names {
		taken[n] = true
	}
	for _, n := range m.source.names {
		fresh := n
		for k := 1; taken[fresh]; k++ {
			fresh = fmt.Sprintf("%s_%d", n, k)
		}
		taken[fresh] = true
		names = append(names, fresh)
	}
	graph, err := NewRing(m.target.field, names, "grevlex")
	if err != nil {
		return nil, err
	}
	gens := make([]Poly, 0, len(J.gens)+ns)
	for _, g := range J.gens {
		gens = append(gens, g.shift(graph, 0))
	}
	for i, img := range m.images {
		gens = append(gens, graph.Gen(nt+i).Sub(img.shift(graph, 0)))
	}
	gi, err := NewIdeal(graph, gens...)
	if err != nil {
		return nil, err
	}
	targetVars := make([]int, nt)
	for i := range targetVars {
		targetVars[i] = i
	}
	elim, err := e.Eliminate(ctx, gi, targetVars)
	if err != nil {
		return nil, err
	}
	out := make([]Poly, 0, elim.Len())
	for _, g := range elim.gens {
		out = append(out, g.unshift(m.source, nt))
	}
	sort.SliceStable(out, func(i, j int) bool {
		return m.source.order.Compare(out[i].LeadingMonomial(), out[j].LeadingMonomial()) < 0
	})
	return NewIdeal(m.source, out...)
}

// unshift is the inverse of shift for polynomials supported on positions
// offset..offset+r.NumGens()-1.
func (p Poly) unshift(r *Ring, offset int) Poly {
	out := make([]Term, len(p.terms))
	n := r.NumGens()
	for k, t := range p.terms {
		m := make(Monomial, n)
		copy(m, t.Mono[offset:offset+n])
		out[k] = Term{Mono: m, Coef: t.Coef}
	}
	return Poly{ring: r, terms: out}.in(r)
}
