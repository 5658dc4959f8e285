package algebra_test

import (
	"context"
	"testing"

	"github.com/davecgh/go-spew/spew"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap/zaptest"

	"github.com/njchilds90/gojets/algebra"
	"github.com/njchilds90/gojets/errs"
)

func ideal(t *testing.T, r *algebra.Ring, gens ...string) *algebra.Ideal {
	t.Helper()
	ps, err := algebra.ParseAll(r, gens)
	require.NoError(t, err)
	I, err := algebra.NewIdeal(r, ps...)
	require.NoError(t, err)
	return I
}

func basisStrings(t *testing.T, b []algebra.Poly) []string {
	t.Helper()
	out := make([]string, len(b))
	for i, g := range b {
		out[i] = g.String()
	}
	return out
}

func TestBasis(t *testing.T) {
	ctx := context.Background()
	eng := algebra.NewEngine(algebra.WithLogger(zaptest.NewLogger(t)))
	tests := []struct {
		name  string
		order string
		names []string
		gens  []string
		want  []string
	}{
		{
			name:  "circle meets diagonal",
			order: "lex",
			names: []string{"x", "y"},
			gens:  []string{"x^2 + y^2 - 1", "x - y"},
			want:  []string{"y^2 - 1/2", "x - y"},
		},
		{
			name:  "twisted cubic",
			order: "grevlex",
			names: []string{"x", "y", "z"},
			gens:  []string{"y - x^2", "z - x^3"},
			want:  []string{"y^2 - x*z", "x*y - z", "x^2 - y"},
		},
		{
			name:  "unit",
			order: "grevlex",
			names: []string{"x", "y"},
			gens:  []string{"x*y - 1", "x"},
			want:  []string{"1"},
		},
		{
			name:  "zero",
			order: "grevlex",
			names: []string{"x"},
			gens:  []string{"0"},
			want:  []string{},
		},
		{
			name:  "cyclic 3",
			order: "lex",
			names: []string{"x", "y", "z"},
			gens:  []string{"x + y + z", "x*y + y*z + z*x", "x*y*z - 1"},
			want:  []string{"z^3 - 1", "y^2 + y*z + z^2", "x + y + z"},
		},
		{
			name:  "already reduced",
			order: "grevlex",
			names: []string{"x", "y"},
			gens:  []string{"2*x", "3*y^2 + 6*x"},
			want:  []string{"x", "y^2"},
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			I := ideal(t, ring(t, tt.order, tt.names...), tt.gens...)
			b, err := eng.Basis(ctx, I)
			require.NoError(t, err)
			assert.Equal(t, tt.want, basisStrings(t, b), spew.Sdump(basisStrings(t, b)))
		})
	}
}

func TestMembership(t *testing.T) {
	ctx := context.Background()
	var eng *algebra.Engine
	r := ring(t, "grevlex", "x", "y", "z")
	I := ideal(t, r, "y - x^2", "z - x^3")

	ok, err := eng.Contains(ctx, I, algebra.MustParse(r, "y^3 - z^2"))
	require.NoError(t, err)
	assert.True(t, ok)

	nf, err := eng.Reduce(ctx, I, algebra.MustParse(r, "x^3"))
	require.NoError(t, err)
	assert.Equal(t, "z", nf.String())

	ok, err = eng.Contains(ctx, I, algebra.MustParse(r, "x"))
	require.NoError(t, err)
	assert.False(t, ok)

	unit, err := eng.IsUnit(ctx, ideal(t, r, "x", "x + 1"))
	require.NoError(t, err)
	assert.True(t, unit)

	same, err := eng.Equal(ctx, I, ideal(t, r, "x^2 - y", "x*y - z", "y^2 - x*z"))
	require.NoError(t, err)
	assert.True(t, same)

	_, err = eng.Reduce(ctx, I, algebra.MustParse(ring(t, "grevlex", "u"), "u"))
	assert.ErrorIs(t, err, errs.ErrConfiguration)
}

func TestEliminate(t *testing.T) {
	ctx := context.Background()
	eng := algebra.NewEngine()
	r := ring(t, "grevlex", "x", "y", "z")
	I := ideal(t, r, "y - x^2", "z - x^3")

	E, err := eng.EliminateNames(ctx, I, []string{"x"})
	require.NoError(t, err)
	same, err := eng.Equal(ctx, E, ideal(t, r, "y^3 - z^2"))
	require.NoError(t, err)
	assert.True(t, same, E.String())
	for _, g := range E.Gens() {
		assert.Zero(t, g.DegreeIn(0), g.String())
	}

	_, err = eng.Eliminate(ctx, I, []int{3})
	assert.ErrorIs(t, err, errs.ErrConfiguration)
	_, err = eng.EliminateNames(ctx, I, []string{"w"})
	assert.ErrorIs(t, err, errs.ErrConfiguration)
}

func TestRadical(t *testing.T) {
	ctx := context.Background()
	eng := algebra.NewEngine()
	r := ring(t, "grevlex", "x", "y")
	I := ideal(t, r, "x^2", "y")

	ok, err := eng.Contains(ctx, I, algebra.MustParse(r, "x"))
	require.NoError(t, err)
	assert.False(t, ok)
	ok, err = eng.RadicalContains(ctx, I, algebra.MustParse(r, "x"))
	require.NoError(t, err)
	assert.True(t, ok)
	ok, err = eng.RadicalContains(ctx, I, algebra.MustParse(r, "x + 1"))
	require.NoError(t, err)
	assert.False(t, ok)

	same, err := eng.RadicalEqual(ctx, ideal(t, r, "x^3*y^2"), ideal(t, r, "x*y"))
	require.NoError(t, err)
	assert.True(t, same)
	same, err = eng.Equal(ctx, ideal(t, r, "x^3*y^2"), ideal(t, r, "x*y"))
	require.NoError(t, err)
	assert.False(t, same)
}

func TestDimension(t *testing.T) {
	ctx := context.Background()
	eng := algebra.NewEngine()
	r := ring(t, "grevlex", "x", "y", "z")
	tests := []struct {
		gens []string
		want int
	}{
		{[]string{"0"}, 3},
		{[]string{"x*y*z"}, 2},
		{[]string{"y - x^2", "z - x^3"}, 1},
		{[]string{"x", "y"}, 1},
		{[]string{"x*y", "x*z"}, 2},
		{[]string{"x - 1", "y", "z^2"}, 0},
		{[]string{"x", "x - 1"}, -1},
	}
	for _, tt := range tests {
		d, err := eng.Dimension(ctx, ideal(t, r, tt.gens...))
		require.NoError(t, err)
		assert.Equal(t, tt.want, d, "%v", tt.gens)
	}
}

func TestJacobianIdeal(t *testing.T) {
	ctx := context.Background()
	eng := algebra.NewEngine()
	r := ring(t, "grevlex", "x", "y", "z")

	J, err := eng.JacobianIdeal(ctx, ideal(t, r, "x^2 - y", "x^3 - z"))
	require.NoError(t, err)
	assert.Equal(t, []string{"3*x^2", "-2*x", "1"}, basisStrings(t, J.Gens()))

	J, err = eng.JacobianIdeal(ctx, ideal(t, r, "0"))
	require.NoError(t, err)
	assert.Equal(t, []string{"1"}, basisStrings(t, J.Gens()))

	J, err = eng.JacobianIdeal(ctx, ideal(t, r, "x^2 + y^2 + z^2"))
	require.NoError(t, err)
	assert.Equal(t, []string{"2*x", "2*y", "2*z"}, basisStrings(t, J.Gens()))
}

func TestMinorsOrder(t *testing.T) {
	r := ring(t, "grevlex", "a", "b", "c", "d", "e", "f")
	g := r.Gens()
	mat := [][]algebra.Poly{{g[0], g[1], g[2]}, {g[3], g[4], g[5]}}
	got := basisStrings(t, algebra.Minors(r, mat, 2))
	assert.Equal(t, []string{"-b*d + a*e", "-c*d + a*f", "-c*e + b*f"}, got)
	assert.Empty(t, algebra.Minors(r, mat, 3))
	assert.Len(t, algebra.Minors(r, mat, 1), 6)
}

func TestPreimage(t *testing.T) {
	ctx := context.Background()
	eng := algebra.NewEngine()
	src := ring(t, "grevlex", "a", "b")
	dst := ring(t, "grevlex", "x")
	m, err := algebra.NewRingMap(src, dst, map[int]algebra.Poly{
		0: algebra.MustParse(dst, "x^2"),
		1: algebra.MustParse(dst, "x^3"),
	})
	require.NoError(t, err)

	kernel, err := eng.Preimage(ctx, m, ideal(t, dst))
	require.NoError(t, err)
	same, err := eng.Equal(ctx, kernel, ideal(t, src, "a^3 - b^2"))
	require.NoError(t, err)
	assert.True(t, same, kernel.String())

	pre, err := eng.Preimage(ctx, m, ideal(t, dst, "x"))
	require.NoError(t, err)
	same, err = eng.Equal(ctx, pre, ideal(t, src, "a", "b"))
	require.NoError(t, err)
	assert.True(t, same, pre.String())
}

func TestRingMaps(t *testing.T) {
	src := ring(t, "grevlex", "a", "b")
	dst := ring(t, "grevlex", "a", "b", "c")

	_, err := algebra.NewRingMap(src, dst, map[int]algebra.Poly{0: dst.Gen(0)})
	assert.ErrorIs(t, err, errs.ErrConfiguration)
	_, err = algebra.NewRingMap(src, dst, map[int]algebra.Poly{0: src.Gen(0), 1: dst.Gen(1)})
	assert.ErrorIs(t, err, errs.ErrConfiguration)
	_, err = algebra.NameMap(dst, src)
	assert.ErrorIs(t, err, errs.ErrConfiguration)

	inc, err := algebra.NameMap(src, dst)
	require.NoError(t, err)
	proj, err := algebra.Projection(dst, src)
	require.NoError(t, err)
	p, err := proj.Apply(algebra.MustParse(dst, "a*c + b^2 - c"))
	require.NoError(t, err)
	assert.Equal(t, "b^2", p.String())

	round, err := inc.Then(proj)
	require.NoError(t, err)
	for i, g := range src.Gens() {
		assert.True(t, round.Image(i).Equal(g))
	}
	_, err = inc.Apply(dst.Gen(2))
	assert.ErrorIs(t, err, errs.ErrConfiguration)
}

func TestEngineLimits(t *testing.T) {
	r := ring(t, "grevlex", "x", "y", "z")

	eng := algebra.NewEngine(algebra.WithMaxPairs(1))
	_, err := eng.Basis(context.Background(), ideal(t, r, "y - x^2", "z - x^3"))
	assert.ErrorIs(t, err, errs.ErrEngineFailure)

	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	_, err = algebra.NewEngine().Basis(ctx, ideal(t, r, "x"))
	assert.ErrorIs(t, err, errs.ErrEngineFailure)
	assert.ErrorIs(t, err, context.Canceled)
}

func TestMetrics(t *testing.T) {
	reg := prometheus.NewRegistry()
	m := algebra.NewMetrics("gojets")
	require.NoError(t, m.Register(reg))
	eng := algebra.NewEngine(algebra.WithMetrics(m))
	r := ring(t, "grevlex", "x", "y", "z")

	_, err := eng.Basis(context.Background(), ideal(t, r, "y - x^2", "z - x^3"))
	require.NoError(t, err)

	families, err := reg.Gather()
	require.NoError(t, err)
	values := map[string]float64{}
	for _, mf := range families {
		for _, metric := range mf.GetMetric() {
			switch {
			case metric.GetCounter() != nil:
				values[mf.GetName()] += metric.GetCounter().GetValue()
			case metric.GetHistogram() != nil:
				values[mf.GetName()] += float64(metric.GetHistogram().GetSampleCount())
			}
		}
	}
	assert.Equal(t, 1.0, values["gojets_groebner_runs_total"])
	assert.Equal(t, 1.0, values["gojets_groebner_duration_seconds"])
	assert.Greater(t, values["gojets_groebner_spairs_total"], 0.0)
}
