package algebra

import (
	"context"

	"go.uber.org/zap"
)

// ============================================================
// Jacobian matrix and minors
// ============================================================

// JacobianMatrix returns the matrix of partials d polys[i] / d x_j.
func JacobianMatrix(polys []Poly) [][]Poly {
	mat := make([][]Poly, len(polys))
	for i, p := range polys {
		mat[i] = make([]Poly, p.ring.NumGens())
		for j := range mat[i] {
			mat[i][j] = p.Diff(j)
		}
	}
	return mat
}

// Det returns the determinant of a square polynomial matrix by cofactor
// expansion along the first row.
func Det(r *Ring, mat [][]Poly) Poly {
	n := len(mat)
	switch n {
	case 0:
		return r.One()
	case 1:
		return mat[0][0]
	case 2:
		return mat[0][0].Mul(mat[1][1]).Sub(mat[0][1].Mul(mat[1][0]))
	}
	acc := r.Zero()
	for j := 0; j < n; j++ {
		if mat[0][j].IsZero() {
			continue
		}
		term := mat[0][j].Mul(Det(r, minorOf(mat, 0, j)))
		if j%2 == 1 {
			acc = acc.Sub(term)
		} else {
			acc = acc.Add(term)
		}
	}
	return acc
}

func minorOf(mat [][]Poly, skipRow, skipCol int) [][]Poly {
	n := len(mat)
	minor := make([][]Poly, 0, n-1)
	for i := 0; i < n; i++ {
		if i == skipRow {
			continue
		}
		row := make([]Poly, 0, n-1)
		for j := 0; j < n; j++ {
			if j != skipCol {
				row = append(row, mat[i][j])
			}
		}
		minor = append(minor, row)
	}
	return minor
}

// Minors returns the nonzero size-k minors of mat. Row subsets are
// enumerated in lexicographic order of their index tuples and, within a row
// subset, column subsets likewise.
func Minors(r *Ring, mat [][]Poly, k int) []Poly {
	if len(mat) == 0 {
		if k == 0 {
			return []Poly{r.One()}
		}
		return nil
	}
	var out []Poly
	for _, rows := range subsets(len(mat), k) {
		for _, cols := range subsets(len(mat[0]), k) {
			sub := make([][]Poly, k)
			for a, i := range rows {
				sub[a] = make([]Poly, k)
				for b, j := range cols {
					sub[a][b] = mat[i][j]
				}
			}
			if d := Det(r, sub); !d.IsZero() {
				out = append(out, d)
			}
		}
	}
	return out
}

// subsets lists the k-element subsets of {0..n-1} in lexicographic order.
func subsets(n, k int) [][]int {
	if k < 0 || k > n {
		return nil
	}
	var out [][]int
	cur := make([]int, 0, k)
	var walk func(start int)
	walk = func(start int) {
		if len(cur) == k {
			out = append(out, append([]int(nil), cur...))
			return
		}
		for i := start; i <= n-(k-len(cur)); i++ {
			cur = append(cur, i)
			walk(i + 1)
			cur = cur[:len(cur)-1]
		}
	}
	walk(0)
	return out
}

// JacobianIdeal returns the ideal generated by the c×c minors of the
// Jacobian matrix of I's generators, where c is the codimension of I. The
// generators come in the order documented on Minors, so scanning them is
// deterministic. The unit ideal has the unit ideal as Jacobian ideal.
func (e *Engine) JacobianIdeal(ctx context.Context, I *Ideal) (*Ideal, error) {
	dim, err := e.Dimension(ctx, I)
	if err != nil {
		return nil, err
	}
	r := I.ring
	if dim < 0 {
		return NewIdeal(r, r.One())
	}
	var gens []Poly
	for _, g := range I.gens {
		if !g.IsZero() {
			gens = append(gens, g)
		}
	}
	codim := r.NumGens() - dim
	minors := Minors(r, JacobianMatrix(gens), codim)
	if codim == 0 {
		minors = []Poly{r.One()}
	}
	e.logger().Debug("jacobian ideal",
		zap.Int("dimension", dim),
		zap.Int("codimension", codim),
		zap.Int("minors", len(minors)))
	return NewIdeal(r, minors...)
}
