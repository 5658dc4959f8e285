package algebra

import (
	"strings"
	"sync"

	"github.com/njchilds90/gojets/errs"
)

// Ideal is a generating set together with its ring. The set of polynomials
// it denotes never changes; the Gröbner basis is memoised after the first
// successful computation.
type Ideal struct {
	ring *Ring
	gens []Poly

	mu    sync.Mutex
	basis []Poly
	ready bool
}

// NewIdeal returns the ideal of r generated by gens.
func NewIdeal(r *Ring, gens ...Poly) (*Ideal, error) {
	for i, g := range gens {
		if !r.Equal(g.ring) {
			return nil, errs.Configf("algebra.NewIdeal", "generator %d lives in %s, not %s", i, g.ring, r)
		}
	}
	return &Ideal{ring: r, gens: append([]Poly(nil), gens...)}, nil
}

// withBasis returns an ideal whose generators are already a reduced
// Gröbner basis for r's order.
func withBasis(r *Ring, basis []Poly) *Ideal {
	return &Ideal{ring: r, gens: basis, basis: basis, ready: true}
}

func (I *Ideal) Ring() *Ring { return I.ring }
func (I *Ideal) Len() int    { return len(I.gens) }

// Gens returns the generators in the order they were given.
func (I *Ideal) Gens() []Poly { return append([]Poly(nil), I.gens...) }

// Add returns the sum I + J.
func (I *Ideal) Add(J *Ideal) (*Ideal, error) {
	if !I.ring.Equal(J.ring) {
		return nil, errs.Configf("algebra.Ideal.Add", "cannot add ideals of %s and %s", I.ring, J.ring)
	}
	return NewIdeal(I.ring, append(I.Gens(), J.gens...)...)
}

// IsZero reports whether every generator is zero.
func (I *Ideal) IsZero() bool {
	for _, g := range I.gens {
		if !g.IsZero() {
			return false
		}
	}
	return true
}

func (I *Ideal) cached() ([]Poly, bool) {
	I.mu.Lock()
	defer I.mu.Unlock()
	return I.basis, I.ready
}

func (I *Ideal) store(basis []Poly) {
	I.mu.Lock()
	defer I.mu.Unlock()
	I.basis, I.ready = basis, true
}

func (I *Ideal) String() string {
	parts := make([]string, len(I.gens))
	for i, g := range I.gens {
		parts[i] = g.String()
	}
	return "(" + strings.Join(parts, ", ") + ")"
}
