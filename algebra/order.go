package algebra

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/njchilds90/gojets/errs"
)

// Order is a monomial order. Compare returns +1 when a > b, -1 when
// a < b and 0 when a == b.
type Order interface {
	Compare(a, b Monomial) int
	String() string
}

// ============================================================
// Orders on a contiguous range of variables
// ============================================================

type lexOrder struct{ lo, hi int }

func (o lexOrder) Compare(a, b Monomial) int {
	for i := o.lo; i < o.hi; i++ {
		if a[i] != b[i] {
			return sign(a[i] - b[i])
		}
	}
	return 0
}
func (o lexOrder) String() string { return "lex" }

type grevlexOrder struct{ lo, hi int }

func (o grevlexOrder) Compare(a, b Monomial) int {
	da, db := 0, 0
	for i := o.lo; i < o.hi; i++ {
		da += a[i]
		db += b[i]
	}
	if da != db {
		return sign(da - db)
	}
	for i := o.hi - 1; i >= o.lo; i-- {
		if a[i] != b[i] {
			return sign(b[i] - a[i])
		}
	}
	return 0
}
func (o grevlexOrder) String() string { return "grevlex" }

type glexOrder struct{ lo, hi int }

func (o glexOrder) Compare(a, b Monomial) int {
	da, db := 0, 0
	for i := o.lo; i < o.hi; i++ {
		da += a[i]
		db += b[i]
	}
	if da != db {
		return sign(da - db)
	}
	return lexOrder(o).Compare(a, b)
}
func (o glexOrder) String() string { return "glex" }

func sign(x int) int {
	switch {
	case x > 0:
		return 1
	case x < 0:
		return -1
	}
	return 0
}

// ============================================================
// Block and elimination orders
// ============================================================

// blockOrder compares block by block, left to right.
type blockOrder struct {
	blocks []Order
	sizes  []int
}

func (o blockOrder) Compare(a, b Monomial) int {
	for _, blk := range o.blocks {
		if c := blk.Compare(a, b); c != 0 {
			return c
		}
	}
	return 0
}

func (o blockOrder) String() string {
	parts := make([]string, len(o.blocks))
	for i, blk := range o.blocks {
		parts[i] = fmt.Sprintf("%s(%d)", blk.String(), o.sizes[i])
	}
	return strings.Join(parts, ",")
}

// elimOrder ranks monomials by their restriction to the eliminated
// variables (graded reverse lexicographic) and breaks ties with rest. Any
// monomial involving an eliminated variable is larger than every monomial
// free of them.
type elimOrder struct {
	elim []bool
	rest Order
}

func (o elimOrder) Compare(a, b Monomial) int {
	da, db := 0, 0
	for i, e := range o.elim {
		if e {
			da += a[i]
			db += b[i]
		}
	}
	if da != db {
		return sign(da - db)
	}
	for i := len(o.elim) - 1; i >= 0; i-- {
		if o.elim[i] && a[i] != b[i] {
			return sign(b[i] - a[i])
		}
	}
	return o.rest.Compare(a, b)
}

func (o elimOrder) String() string {
	idx := []string{}
	for i, e := range o.elim {
		if e {
			idx = append(idx, strconv.Itoa(i))
		}
	}
	return fmt.Sprintf("elim[%s](%s)", strings.Join(idx, " "), o.rest.String())
}

// ============================================================
// Parsing
// ============================================================

func orderToken(tok string, lo, hi int) (Order, bool) {
	switch tok {
	case "lex", "lp":
		return lexOrder{lo, hi}, true
	case "grevlex", "degrevlex", "dp":
		return grevlexOrder{lo, hi}, true
	case "glex", "deglex", "Dp":
		return glexOrder{lo, hi}, true
	}
	return nil, false
}

// ParseOrder parses an order specification for n variables. A single token
// ("lex", "grevlex", "glex" or one of their aliases) orders all variables;
// a comma separated list of "token(count)" blocks whose counts sum to n
// builds a block order. The empty string means grevlex.
func ParseOrder(spec string, n int) (Order, error) {
	const op = "algebra.ParseOrder"
	spec = strings.TrimSpace(spec)
	if spec == "" {
		spec = "grevlex"
	}
	if !strings.Contains(spec, "(") {
		o, ok := orderToken(spec, 0, n)
		if !ok {
			return nil, errs.Configf(op, "unknown monomial order %q", spec)
		}
		return o, nil
	}
	var blocks []Order
	var sizes []int
	lo := 0
	for _, part := range strings.Split(spec, ",") {
		part = strings.TrimSpace(part)
		open := strings.IndexByte(part, '(')
		if open < 0 || !strings.HasSuffix(part, ")") {
			return nil, errs.Configf(op, "malformed order block %q", part)
		}
		size, err := strconv.Atoi(part[open+1 : len(part)-1])
		if err != nil || size < 1 {
			return nil, errs.Configf(op, "bad block size in %q", part)
		}
		o, ok := orderToken(part[:open], lo, lo+size)
		if !ok {
			return nil, errs.Configf(op, "unknown monomial order %q", part[:open])
		}
		blocks = append(blocks, o)
		sizes = append(sizes, size)
		lo += size
	}
	if lo != n {
		return nil, errs.Configf(op, "order blocks cover %d variables, ring has %d", lo, n)
	}
	if len(blocks) == 1 {
		return blocks[0], nil
	}
	return blockOrder{blocks: blocks, sizes: sizes}, nil
}
