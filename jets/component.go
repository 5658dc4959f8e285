package jets

import (
	"context"

	"github.com/njchilds90/gojets/algebra"
	"github.com/njchilds90/gojets/errs"
)

// Method names the algorithm that produced a Component.
type Method string

const (
	MethodSaturation Method = "saturation"
	MethodBirational Method = "birational"
)

// Component is an ideal of a jet ring whose zero set is the closure of the
// jets based at smooth points, the general component of the jet scheme.
type Component struct {
	Ring  *JetRing
	Ideal *algebra.Ideal
	// Witness is the Jacobian minor the saturation inverted. It is the zero
	// polynomial of the base ring for the birational method.
	Witness algebra.Poly
	Method  Method
}

func (c *Component) String() string {
	return string(c.Method) + " " + c.Ideal.String()
}

// SameRadical reports whether two components define the same zero set. Both
// must live in the same jet ring.
func SameRadical(ctx context.Context, a, b *Component, opts ...Option) (bool, error) {
	if !a.Ring.Equal(b.Ring) {
		return false, errs.Configf("jets.SameRadical", "components of %s and %s", a.Ring, b.Ring)
	}
	o := newOptions(opts)
	return o.engine.RadicalEqual(ctx, a.Ideal, b.Ideal)
}

func nonzero(ps []algebra.Poly) []algebra.Poly {
	var out []algebra.Poly
	for _, p := range ps {
		if !p.IsZero() {
			out = append(out, p)
		}
	}
	return out
}
