package algebra

import (
	"strconv"
	"strings"
)

// Monomial is an exponent vector, one entry per ring generator.
type Monomial []int

// One returns the monomial 1 in n variables.
func One(n int) Monomial { return make(Monomial, n) }

// Degree returns the total degree.
func (m Monomial) Degree() int {
	d := 0
	for _, e := range m {
		d += e
	}
	return d
}

// IsOne reports whether every exponent is zero.
func (m Monomial) IsOne() bool {
	for _, e := range m {
		if e != 0 {
			return false
		}
	}
	return true
}

// Divides reports whether m divides n.
func (m Monomial) Divides(n Monomial) bool {
	for i, e := range m {
		if e > n[i] {
			return false
		}
	}
	return true
}

// Mul returns m*n.
func (m Monomial) Mul(n Monomial) Monomial {
	out := make(Monomial, len(m))
	for i := range m {
		out[i] = m[i] + n[i]
	}
	return out
}

// Div returns m/n. n must divide m.
func (m Monomial) Div(n Monomial) Monomial {
	out := make(Monomial, len(m))
	for i := range m {
		out[i] = m[i] - n[i]
	}
	return out
}

// LCM returns the least common multiple of m and n.
func (m Monomial) LCM(n Monomial) Monomial {
	out := make(Monomial, len(m))
	for i := range m {
		out[i] = max(m[i], n[i])
	}
	return out
}

// Coprime reports whether m and n share no variable.
func (m Monomial) Coprime(n Monomial) bool {
	for i := range m {
		if m[i] > 0 && n[i] > 0 {
			return false
		}
	}
	return true
}

// Equal reports exponent-wise equality.
func (m Monomial) Equal(n Monomial) bool {
	if len(m) != len(n) {
		return false
	}
	for i := range m {
		if m[i] != n[i] {
			return false
		}
	}
	return true
}

func (m Monomial) key() string {
	b := make([]byte, 0, 3*len(m))
	for _, e := range m {
		b = append(b, byte(e>>16), byte(e>>8), byte(e))
	}
	return string(b)
}

// format renders m with the given generator names, "1" for the unit.
func (m Monomial) format(names []string) string {
	parts := make([]string, 0, len(m))
	for i, e := range m {
		switch {
		case e == 1:
			parts = append(parts, names[i])
		case e > 1:
			parts = append(parts, names[i]+"^"+strconv.Itoa(e))
		}
	}
	if len(parts) == 0 {
		return "1"
	}
	return strings.Join(parts, "*")
}
