package algebra

import (
	"context"
	"time"

	"go.uber.org/zap"

	"github.com/njchilds90/gojets/errs"
)

// Engine runs the Gröbner-basis backed operations: bases, normal forms,
// elimination, radical membership, dimension, preimages and Jacobian
// ideals. An Engine holds only configuration, so one value may serve many
// goroutines. The nil *Engine is usable and runs with defaults.
type Engine struct {
	log        *zap.Logger
	stats      *Metrics
	pairBudget int
}

// EngineOption configures an Engine.
type EngineOption func(*Engine)

// WithLogger sets the logger; the default discards everything.
func WithLogger(l *zap.Logger) EngineOption {
	return func(e *Engine) { e.log = l }
}

// WithMetrics records every basis computation in m.
func WithMetrics(m *Metrics) EngineOption {
	return func(e *Engine) { e.stats = m }
}

// WithMaxPairs bounds the S-pairs reduced per basis; 0 means unbounded.
func WithMaxPairs(n int) EngineOption {
	return func(e *Engine) { e.pairBudget = n }
}

// NewEngine returns an engine configured by opts.
func NewEngine(opts ...EngineOption) *Engine {
	e := &Engine{}
	for _, o := range opts {
		o(e)
	}
	return e
}

func (e *Engine) logger() *zap.Logger {
	if e == nil || e.log == nil {
		return zap.NewNop()
	}
	return e.log
}

func (e *Engine) maxPairs() int {
	if e == nil {
		return 0
	}
	return e.pairBudget
}

func (e *Engine) run(ctx context.Context, op string, r *Ring, gens []Poly) ([]Poly, error) {
	start := time.Now()
	basis, pairs, err := e.groebner(ctx, op, r, gens)
	if e != nil {
		e.stats.observe(op, time.Since(start), pairs, err)
	}
	return basis, err
}

// ============================================================
// Bases and membership
// ============================================================

// Basis returns the reduced Gröbner basis of I for its ring's order.
func (e *Engine) Basis(ctx context.Context, I *Ideal) ([]Poly, error) {
	if b, ok := I.cached(); ok {
		return b, nil
	}
	b, err := e.run(ctx, "basis", I.ring, I.gens)
	if err != nil {
		return nil, err
	}
	I.store(b)
	return b, nil
}

// Reduce returns the normal form of f modulo I.
func (e *Engine) Reduce(ctx context.Context, I *Ideal, f Poly) (Poly, error) {
	if !I.ring.Equal(f.ring) {
		return Poly{}, errs.Configf("algebra.Reduce", "%s is not in %s", f, I.ring)
	}
	b, err := e.Basis(ctx, I)
	if err != nil {
		return Poly{}, err
	}
	return normalForm(f, b), nil
}

// Contains reports whether f lies in I.
func (e *Engine) Contains(ctx context.Context, I *Ideal, f Poly) (bool, error) {
	nf, err := e.Reduce(ctx, I, f)
	if err != nil {
		return false, err
	}
	return nf.IsZero(), nil
}

// ContainsIdeal reports whether J is a subset of I.
func (e *Engine) ContainsIdeal(ctx context.Context, I, J *Ideal) (bool, error) {
	for _, g := range J.gens {
		ok, err := e.Contains(ctx, I, g)
		if err != nil || !ok {
			return false, err
		}
	}
	return true, nil
}

// Equal reports whether I and J denote the same ideal.
func (e *Engine) Equal(ctx context.Context, I, J *Ideal) (bool, error) {
	if !I.ring.Equal(J.ring) {
		return false, errs.Configf("algebra.Equal", "ideals of %s and %s", I.ring, J.ring)
	}
	ok, err := e.ContainsIdeal(ctx, I, J)
	if err != nil || !ok {
		return false, err
	}
	return e.ContainsIdeal(ctx, J, I)
}

// IsUnit reports whether I is the whole ring.
func (e *Engine) IsUnit(ctx context.Context, I *Ideal) (bool, error) {
	b, err := e.Basis(ctx, I)
	if err != nil {
		return false, err
	}
	return len(b) == 1 && b[0].IsConstant(), nil
}

// ============================================================
// Elimination
// ============================================================

// Eliminate returns I ∩ k[remaining generators], as an ideal of I's ring.
func (e *Engine) Eliminate(ctx context.Context, I *Ideal, vars []int) (*Ideal, error) {
	const op = "algebra.Eliminate"
	r := I.ring
	mask := make([]bool, r.NumGens())
	for _, v := range vars {
		if v < 0 || v >= len(mask) {
			return nil, errs.Configf(op, "generator %d out of range for %s", v, r)
		}
		mask[v] = true
	}
	er := r.withOrder(elimOrder{elim: mask, rest: r.order})
	gens := make([]Poly, len(I.gens))
	for i, g := range I.gens {
		gens[i] = g.in(er)
	}
	b, err := e.run(ctx, "eliminate", er, gens)
	if err != nil {
		return nil, err
	}
	var kept []Poly
	for _, g := range b {
		free := true
		for _, v := range g.Support() {
			if mask[v] {
				free = false
				break
			}
		}
		if free {
			kept = append(kept, g.in(r))
		}
	}
	e.logger().Debug("eliminated",
		zap.Int("variables", len(vars)),
		zap.Int("basis", len(b)),
		zap.Int("kept", len(kept)))
	return withBasis(r, kept), nil
}

// EliminateNames is Eliminate with generators given by name.
func (e *Engine) EliminateNames(ctx context.Context, I *Ideal, names []string) (*Ideal, error) {
	vars := make([]int, len(names))
	for k, n := range names {
		i, ok := I.ring.IndexOf(n)
		if !ok {
			return nil, errs.Configf("algebra.Eliminate", "%s has no generator %q", I.ring, n)
		}
		vars[k] = i
	}
	return e.Eliminate(ctx, I, vars)
}

// ============================================================
// Radical membership
// ============================================================

// RadicalContains reports whether f lies in the radical of I, by testing
// whether I + (1 - z*f) is the unit ideal for a fresh generator z.
func (e *Engine) RadicalContains(ctx context.Context, I *Ideal, f Poly) (bool, error) {
	if !I.ring.Equal(f.ring) {
		return false, errs.Configf("algebra.RadicalContains", "%s is not in %s", f, I.ring)
	}
	if f.IsZero() {
		return true, nil
	}
	r := I.ring
	ext, err := r.Extend([]string{r.FreshName("_z")}, "grevlex")
	if err != nil {
		return false, err
	}
	gens := make([]Poly, 0, len(I.gens)+1)
	for _, g := range I.gens {
		gens = append(gens, g.shift(ext, 0))
	}
	z := ext.Gen(r.NumGens())
	gens = append(gens, ext.One().Sub(z.Mul(f.shift(ext, 0))))
	b, err := e.run(ctx, "radical", ext, gens)
	if err != nil {
		return false, err
	}
	return len(b) == 1 && b[0].IsConstant(), nil
}

// RadicalEqual reports whether I and J have the same radical.
func (e *Engine) RadicalEqual(ctx context.Context, I, J *Ideal) (bool, error) {
	if !I.ring.Equal(J.ring) {
		return false, errs.Configf("algebra.RadicalEqual", "ideals of %s and %s", I.ring, J.ring)
	}
	for _, pair := range [][2]*Ideal{{I, J}, {J, I}} {
		for _, g := range pair[1].gens {
			ok, err := e.RadicalContains(ctx, pair[0], g)
			if err != nil || !ok {
				return false, err
			}
		}
	}
	return true, nil
}

// ============================================================
// Dimension
// ============================================================

// Dimension returns the Krull dimension of R/I, or -1 for the unit ideal.
// It is the size of a largest set of generators containing the support of
// no leading monomial of the basis.
func (e *Engine) Dimension(ctx context.Context, I *Ideal) (int, error) {
	b, err := e.Basis(ctx, I)
	if err != nil {
		return 0, err
	}
	n := I.ring.NumGens()
	if len(b) == 1 && b[0].IsConstant() {
		return -1, nil
	}
	supports := make([][]int, len(b))
	for i, g := range b {
		supports[i] = Poly{ring: I.ring, terms: g.terms[:1]}.Support()
	}
	chosen := make([]bool, n)
	best := 0
	var search func(next, size int)
	search = func(next, size int) {
		if size+(n-next) <= best {
			return
		}
		if next == n {
			best = size
			return
		}
		chosen[next] = true
		if independent(supports, chosen) {
			search(next+1, size+1)
		}
		chosen[next] = false
		search(next+1, size)
	}
	search(0, 0)
	return best, nil
}

func independent(supports [][]int, chosen []bool) bool {
	for _, s := range supports {
		inside := true
		for _, v := range s {
			if !chosen[v] {
				inside = false
				break
			}
		}
		if inside {
			return false
		}
	}
	return true
}

// shift copies p into r, placing its generator i at position offset+i.
func (p Poly) shift(r *Ring, offset int) Poly {
	out := make([]Term, len(p.terms))
	n := r.NumGens()
	for k, t := range p.terms {
		m := make(Monomial, n)
		copy(m[offset:], t.Mono)
		out[k] = Term{Mono: m, Coef: t.Coef}
	}
	return Poly{ring: r, terms: out}.in(r)
}
