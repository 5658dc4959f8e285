package algebra

import (
	"fmt"
	"math/big"
	"strings"

	"github.com/njchilds90/gojets/errs"
)

// Ring is a polynomial ring over a field with ordered, named generators and
// a fixed monomial order. Rings are immutable.
type Ring struct {
	field Field
	names []string
	index map[string]int
	order Order
}

// NewRing builds field[names...] ordered by orderSpec (see ParseOrder).
func NewRing(field Field, names []string, orderSpec string) (*Ring, error) {
	const op = "algebra.NewRing"
	if field == nil {
		return nil, errs.Configf(op, "nil field")
	}
	order, err := ParseOrder(orderSpec, len(names))
	if err != nil {
		return nil, err
	}
	return newRing(field, names, order)
}

func newRing(field Field, names []string, order Order) (*Ring, error) {
	const op = "algebra.NewRing"
	r := &Ring{
		field: field,
		names: append([]string(nil), names...),
		index: make(map[string]int, len(names)),
		order: order,
	}
	for i, n := range names {
		if !validName(n) {
			return nil, errs.Configf(op, "invalid generator name %q", n)
		}
		if _, dup := r.index[n]; dup {
			return nil, errs.Configf(op, "duplicate generator name %q", n)
		}
		r.index[n] = i
	}
	return r, nil
}

func validName(s string) bool {
	if s == "" {
		return false
	}
	for i, c := range s {
		letter := c == '_' || (c >= 'a' && c <= 'z') || (c >= 'A' && c <= 'Z')
		digit := c >= '0' && c <= '9'
		if !letter && !(digit && i > 0) {
			return false
		}
	}
	return true
}

func (r *Ring) Field() Field      { return r.field }
func (r *Ring) NumGens() int      { return len(r.names) }
func (r *Ring) Order() Order      { return r.order }
func (r *Ring) Name(i int) string { return r.names[i] }

// Names returns a copy of the generator names.
func (r *Ring) Names() []string { return append([]string(nil), r.names...) }

// IndexOf returns the position of the named generator.
func (r *Ring) IndexOf(name string) (int, bool) {
	i, ok := r.index[name]
	return i, ok
}

// Gen returns the i-th generator.
func (r *Ring) Gen(i int) Poly {
	if i < 0 || i >= len(r.names) {
		panic(fmt.Sprintf("algebra: generator %d out of range [0,%d)", i, len(r.names)))
	}
	m := One(len(r.names))
	m[i] = 1
	return r.Term(FromInt(r.field, 1), m)
}

// Gens returns all generators in order.
func (r *Ring) Gens() []Poly {
	out := make([]Poly, len(r.names))
	for i := range out {
		out[i] = r.Gen(i)
	}
	return out
}

// Var returns the named generator.
func (r *Ring) Var(name string) (Poly, error) {
	i, ok := r.index[name]
	if !ok {
		return Poly{}, errs.Configf("algebra.Var", "%s has no generator %q", r, name)
	}
	return r.Gen(i), nil
}

// Zero returns the zero polynomial.
func (r *Ring) Zero() Poly { return Poly{ring: r} }

// One returns the constant 1.
func (r *Ring) One() Poly { return r.Int(1) }

// Int returns the constant n.
func (r *Ring) Int(n int64) Poly { return r.Const(FromInt(r.field, n)) }

// Const returns the constant c, which must already be a field element.
func (r *Ring) Const(c *big.Rat) Poly { return r.Term(c, One(len(r.names))) }

// Term returns c*m.
func (r *Ring) Term(c *big.Rat, m Monomial) Poly {
	if len(m) != len(r.names) {
		panic("algebra: monomial length does not match ring")
	}
	if c.Sign() == 0 {
		return r.Zero()
	}
	return Poly{ring: r, terms: []Term{{Mono: append(Monomial(nil), m...), Coef: c}}}
}

// Equal reports structural equality: same field, generator names and order.
func (r *Ring) Equal(o *Ring) bool {
	if r == o {
		return true
	}
	if r == nil || o == nil || !r.field.Equal(o.field) || len(r.names) != len(o.names) {
		return false
	}
	for i := range r.names {
		if r.names[i] != o.names[i] {
			return false
		}
	}
	return r.order.String() == o.order.String()
}

// Extend returns a ring with extra generators appended, ordered by
// orderSpec over all generators.
func (r *Ring) Extend(names []string, orderSpec string) (*Ring, error) {
	all := append(r.Names(), names...)
	return NewRing(r.field, all, orderSpec)
}

// WithOrder returns the same generators under another order.
func (r *Ring) WithOrder(orderSpec string) (*Ring, error) {
	return NewRing(r.field, r.names, orderSpec)
}

func (r *Ring) withOrder(o Order) *Ring {
	return &Ring{field: r.field, names: r.names, index: r.index, order: o}
}

// FreshName returns a generator name based on base that r does not use.
func (r *Ring) FreshName(base string) string {
	name := base
	for i := 1; ; i++ {
		if _, taken := r.index[name]; !taken {
			return name
		}
		name = fmt.Sprintf("%s%d", base, i)
	}
}

func (r *Ring) String() string {
	return fmt.Sprintf("%s[%s]", r.field.Name(), strings.Join(r.names, ", "))
}
