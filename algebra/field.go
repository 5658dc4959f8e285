package algebra

import (
	"fmt"
	"math/big"
	"strconv"
	"strings"

	"github.com/njchilds90/gojets/errs"
)

// Field is a coefficient field. Elements are carried as *big.Rat; every
// value handed to or returned by a Field method is already canonical for
// that field and is never mutated afterwards.
type Field interface {
	Name() string
	// Characteristic is 0 for QQ and p for GF(p).
	Characteristic() int64
	// FromRat maps a rational number into the field.
	FromRat(x *big.Rat) (*big.Rat, error)
	Add(a, b *big.Rat) *big.Rat
	Sub(a, b *big.Rat) *big.Rat
	Mul(a, b *big.Rat) *big.Rat
	Neg(a *big.Rat) *big.Rat
	// Inv panics on zero; callers only invert leading coefficients.
	Inv(a *big.Rat) *big.Rat
	Equal(o Field) bool
}

// ============================================================
// QQ: the rationals
// ============================================================

type rationalField struct{}

// QQ is the field of rational numbers.
var QQ Field = rationalField{}

func (rationalField) Name() string          { return "QQ" }
func (rationalField) Characteristic() int64 { return 0 }
func (rationalField) FromRat(x *big.Rat) (*big.Rat, error) {
	return new(big.Rat).Set(x), nil
}
func (rationalField) Add(a, b *big.Rat) *big.Rat { return new(big.Rat).Add(a, b) }
func (rationalField) Sub(a, b *big.Rat) *big.Rat { return new(big.Rat).Sub(a, b) }
func (rationalField) Mul(a, b *big.Rat) *big.Rat { return new(big.Rat).Mul(a, b) }
func (rationalField) Neg(a *big.Rat) *big.Rat    { return new(big.Rat).Neg(a) }
func (rationalField) Inv(a *big.Rat) *big.Rat {
	if a.Sign() == 0 {
		panic("algebra: division by zero")
	}
	return new(big.Rat).Inv(a)
}
func (rationalField) Equal(o Field) bool { _, ok := o.(rationalField); return ok }

// ============================================================
// GF(p): prime fields
// ============================================================

type primeField struct {
	p    *big.Int
	char int64
}

// GF returns the prime field with p elements.
func GF(p int64) (Field, error) {
	if p < 2 || !big.NewInt(p).ProbablyPrime(20) {
		return nil, errs.Configf("algebra.GF", "%d is not a prime", p)
	}
	return &primeField{p: big.NewInt(p), char: p}, nil
}

func (f *primeField) Name() string          { return fmt.Sprintf("GF(%d)", f.char) }
func (f *primeField) Characteristic() int64 { return f.char }

func (f *primeField) FromRat(x *big.Rat) (*big.Rat, error) {
	n := new(big.Int).Mod(x.Num(), f.p)
	if !x.IsInt() {
		d := new(big.Int).Mod(x.Denom(), f.p)
		if d.Sign() == 0 {
			return nil, errs.Configf("algebra.FromRat", "%s has no image in %s", x.RatString(), f.Name())
		}
		n.Mul(n, new(big.Int).ModInverse(d, f.p))
		n.Mod(n, f.p)
	}
	return new(big.Rat).SetInt(n), nil
}

func (f *primeField) mod(n *big.Int) *big.Rat {
	return new(big.Rat).SetInt(n.Mod(n, f.p))
}

func (f *primeField) Add(a, b *big.Rat) *big.Rat {
	return f.mod(new(big.Int).Add(a.Num(), b.Num()))
}
func (f *primeField) Sub(a, b *big.Rat) *big.Rat {
	return f.mod(new(big.Int).Sub(a.Num(), b.Num()))
}
func (f *primeField) Mul(a, b *big.Rat) *big.Rat {
	return f.mod(new(big.Int).Mul(a.Num(), b.Num()))
}
func (f *primeField) Neg(a *big.Rat) *big.Rat {
	return f.mod(new(big.Int).Neg(a.Num()))
}
func (f *primeField) Inv(a *big.Rat) *big.Rat {
	if a.Sign() == 0 {
		panic("algebra: division by zero")
	}
	return new(big.Rat).SetInt(new(big.Int).ModInverse(a.Num(), f.p))
}
func (f *primeField) Equal(o Field) bool {
	g, ok := o.(*primeField)
	return ok && g.char == f.char
}

// ============================================================
// Helpers
// ============================================================

// ParseField reads "QQ" (also "Q" or empty) or "GF(p)".
func ParseField(spec string) (Field, error) {
	s := strings.TrimSpace(spec)
	switch s {
	case "", "QQ", "Q":
		return QQ, nil
	}
	if strings.HasPrefix(s, "GF(") && strings.HasSuffix(s, ")") {
		p, err := strconv.ParseInt(strings.TrimSpace(s[3:len(s)-1]), 10, 64)
		if err == nil {
			return GF(p)
		}
	}
	return nil, errs.Configf("algebra.ParseField", "unknown field %q", spec)
}

// FromInt maps an integer into f.
func FromInt(f Field, n int64) *big.Rat {
	c, _ := f.FromRat(new(big.Rat).SetInt64(n))
	return c
}

// Factorial returns k! as an element of f. It is zero in GF(p) for k >= p.
func Factorial(f Field, k int) *big.Rat {
	acc := new(big.Int).SetInt64(1)
	for i := 2; i <= k; i++ {
		acc.Mul(acc, big.NewInt(int64(i)))
	}
	c, _ := f.FromRat(new(big.Rat).SetInt(acc))
	return c
}
