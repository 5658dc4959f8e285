package jets

import (
	"math/big"

	"github.com/njchilds90/gojets/algebra"
	"github.com/njchilds90/gojets/errs"
)

// Operator names one of the derivations a jet ring carries.
type Operator int

const (
	// Shift sends each jet coordinate to the next level:
	// delta(x_{r,i}) = x_{r,i+1}.
	Shift Operator = iota
	// WeightedShift is the Hasse-Schmidt compatible derivation:
	// deltilde(x_{r,i}) = (i+1) x_{r,i+1}.
	WeightedShift
	// CorrectedShift divides the k-th iterate of WeightedShift by k!, so
	// the iterates of a level-0 polynomial are its Hasse-Schmidt components.
	CorrectedShift
)

func (op Operator) String() string {
	switch op {
	case Shift:
		return "delta"
	case WeightedShift:
		return "deltilde"
	case CorrectedShift:
		return "deltilde_corr"
	}
	return "unknown"
}

// ParseOperator is the inverse of Operator.String.
func ParseOperator(s string) (Operator, error) {
	for _, op := range []Operator{Shift, WeightedShift, CorrectedShift} {
		if op.String() == s {
			return op, nil
		}
	}
	return 0, errs.Configf("jets.ParseOperator", "unknown operator %q", s)
}

// derive applies the derivation sending x_{r,i} to weight(i)*x_{r,i+1}.
// Top-level generators go to zero.
func (jr *JetRing) derive(f algebra.Poly, weight func(level int) *big.Rat) algebra.Poly {
	acc := jr.ring.Zero()
	for _, pos := range f.Support() {
		level := pos % jr.trun
		if level == jr.trun-1 {
			continue
		}
		w := weight(level)
		if w.Sign() == 0 {
			continue
		}
		next := jr.ring.Gen(pos + 1).Scale(w)
		acc = acc.Add(f.Diff(pos).Mul(next))
	}
	return acc
}

func (jr *JetRing) unit(int) *big.Rat { return big.NewRat(1, 1) }

func (jr *JetRing) successor(level int) *big.Rat {
	return algebra.FromInt(jr.Field(), int64(level+1))
}

// Delta applies the shift derivation once.
func (jr *JetRing) Delta(f algebra.Poly) (algebra.Poly, error) {
	if err := jr.contains("jets.Delta", f); err != nil {
		return algebra.Poly{}, err
	}
	return jr.derive(f, jr.unit), nil
}

// Deltilde applies the weighted derivation once.
func (jr *JetRing) Deltilde(f algebra.Poly) (algebra.Poly, error) {
	if err := jr.contains("jets.Deltilde", f); err != nil {
		return algebra.Poly{}, err
	}
	return jr.derive(f, jr.successor), nil
}

// Iterates returns [f, op(f), ..., op^n(f)].
func (jr *JetRing) Iterates(op Operator, f algebra.Poly, n int) ([]algebra.Poly, error) {
	name := "jets." + op.String()
	if err := jr.contains(name, f); err != nil {
		return nil, err
	}
	if n < 0 || n > jr.trun-1 {
		return nil, errs.Dimensionf(name, "order %d outside [0,%d] for %s", n, jr.trun-1, jr)
	}
	out := make([]algebra.Poly, n+1)
	out[0] = f
	field := jr.Field()
	for k := 1; k <= n; k++ {
		switch op {
		case Shift:
			out[k] = jr.derive(out[k-1], jr.unit)
		case WeightedShift:
			out[k] = jr.derive(out[k-1], jr.successor)
		case CorrectedShift:
			kk := algebra.FromInt(field, int64(k))
			if kk.Sign() == 0 {
				return nil, errs.Configf(name, "%d! vanishes in %s", k, field.Name())
			}
			out[k] = jr.derive(out[k-1], jr.successor).Scale(field.Inv(kk))
		default:
			return nil, errs.Configf(name, "unknown operator %d", int(op))
		}
	}
	return out, nil
}

// Iterate returns op^k(f).
func (jr *JetRing) Iterate(op Operator, f algebra.Poly, k int) (algebra.Poly, error) {
	l, err := jr.Iterates(op, f, k)
	if err != nil {
		return algebra.Poly{}, err
	}
	return l[k], nil
}

// IterateIdeal returns the ideal generated by op^k(f) for every f in polys
// and k = 0..n, polynomial by polynomial.
func (jr *JetRing) IterateIdeal(op Operator, polys []algebra.Poly, n int) (*algebra.Ideal, error) {
	if len(polys) == 0 {
		return nil, errs.Configf("jets."+op.String(), "no polynomials")
	}
	var gens []algebra.Poly
	for _, f := range polys {
		l, err := jr.Iterates(op, f, n)
		if err != nil {
			return nil, err
		}
		gens = append(gens, l...)
	}
	return algebra.NewIdeal(jr.ring, gens...)
}

// DeltaIt returns delta^k(f).
func (jr *JetRing) DeltaIt(f algebra.Poly, k int) (algebra.Poly, error) {
	return jr.Iterate(Shift, f, k)
}

// DeltaList returns [f, delta(f), ..., delta^n(f)].
func (jr *JetRing) DeltaList(f algebra.Poly, n int) ([]algebra.Poly, error) {
	return jr.Iterates(Shift, f, n)
}

// DeltaIdeal returns the ideal of delta^k(f) for f in polys and k = 0..n.
func (jr *JetRing) DeltaIdeal(polys []algebra.Poly, n int) (*algebra.Ideal, error) {
	return jr.IterateIdeal(Shift, polys, n)
}

// DeltildeIt returns deltilde^k(f).
func (jr *JetRing) DeltildeIt(f algebra.Poly, k int) (algebra.Poly, error) {
	return jr.Iterate(WeightedShift, f, k)
}

// DeltildeList returns [f, deltilde(f), ..., deltilde^n(f)].
func (jr *JetRing) DeltildeList(f algebra.Poly, n int) ([]algebra.Poly, error) {
	return jr.Iterates(WeightedShift, f, n)
}

// DeltildeIdeal returns the ideal of deltilde^k(f) for f in polys and k = 0..n.
func (jr *JetRing) DeltildeIdeal(polys []algebra.Poly, n int) (*algebra.Ideal, error) {
	return jr.IterateIdeal(WeightedShift, polys, n)
}

// DeltildeCorrIt returns deltilde^k(f) / k!. It fails with a configuration
// error when k! is zero in the coefficient field.
func (jr *JetRing) DeltildeCorrIt(f algebra.Poly, k int) (algebra.Poly, error) {
	return jr.Iterate(CorrectedShift, f, k)
}

// DeltildeCorrList returns deltilde^k(f)/k! for k = 0..n; for a level-0 f
// these are its Hasse-Schmidt components.
func (jr *JetRing) DeltildeCorrList(f algebra.Poly, n int) ([]algebra.Poly, error) {
	return jr.Iterates(CorrectedShift, f, n)
}

// DeltildeCorrIdeal returns the ideal of deltilde^k(f)/k! for f in polys
// and k = 0..n.
func (jr *JetRing) DeltildeCorrIdeal(polys []algebra.Poly, n int) (*algebra.Ideal, error) {
	return jr.IterateIdeal(CorrectedShift, polys, n)
}

// ============================================================
// Change of coordinates between the two presentations
// ============================================================

// HSToDiff is the automorphism x_{r,i} -> x_{r,i}/i!. It carries the
// Hasse-Schmidt lift of an ideal to its shift-derivation ideal.
func HSToDiff(jr *JetRing) (*algebra.RingMap, error) {
	return jr.rescale("jets.HSToDiff", true)
}

// DiffToHS is the inverse automorphism x_{r,i} -> i! x_{r,i}.
func DiffToHS(jr *JetRing) (*algebra.RingMap, error) {
	return jr.rescale("jets.DiffToHS", false)
}

func (jr *JetRing) rescale(op string, invert bool) (*algebra.RingMap, error) {
	f := jr.Field()
	images := make(map[int]algebra.Poly, jr.ring.NumGens())
	for pos := 0; pos < jr.ring.NumGens(); pos++ {
		level := pos % jr.trun
		c := algebra.Factorial(f, level)
		if c.Sign() == 0 {
			return nil, errs.Configf(op, "%d! vanishes in %s", level, f.Name())
		}
		if invert {
			c = f.Inv(c)
		}
		images[pos] = jr.ring.Gen(pos).Scale(c)
	}
	return algebra.NewRingMap(jr.ring, jr.ring, images)
}
