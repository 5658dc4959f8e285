package jets

import (
	"context"

	"go.uber.org/zap"

	"github.com/njchilds90/gojets/algebra"
	"github.com/njchilds90/gojets/errs"
)

// GeneralComponentSaturation computes the general component of the n-th jet
// scheme of V(I) by saturating the Hasse-Schmidt lift of I at a Jacobian
// minor H that does not vanish identically on V(I):
//
//	(HS_n(I) + (1 - H t)) ∩ k[jets]
//
// The result lives in the jet ring of truncation n+1 over I's ring. It
// fails with errs.ErrNoSmoothPointCandidate when every minor lies in I.
//
// The returned Witness is the minor as listed by the Jacobian ideal, not its
// normal form modulo I. Both give the same saturation: they differ by an
// element of I, which sits in the level-0 part of the lifted ideal.
func GeneralComponentSaturation(ctx context.Context, base *algebra.Ring, I *algebra.Ideal, n int, opts ...Option) (*Component, error) {
	const op = "jets.GeneralComponentSaturation"
	if !base.Equal(I.Ring()) {
		return nil, errs.Configf(op, "ideal of %s, base ring %s", I.Ring(), base)
	}
	if n < 0 {
		return nil, errs.Dimensionf(op, "jet order %d < 0", n)
	}
	o := newOptions(opts)
	log := o.log.With(zap.String("op", op), zap.Int("order", n))

	h, err := smoothWitness(ctx, o.engine, I)
	if err != nil {
		return nil, err
	}
	log.Debug("selected witness", zap.Stringer("witness", h))

	jr, err := Over(base, n+1, o.order)
	if err != nil {
		return nil, err
	}
	emb, err := BaseEmbedding(base, jr)
	if err != nil {
		return nil, err
	}
	var lifted []algebra.Poly
	if gens := nonzero(I.Gens()); len(gens) > 0 {
		level0, err := emb.ApplyAll(gens)
		if err != nil {
			return nil, err
		}
		hs, err := HasseSchmidt(jr, level0, n)
		if err != nil {
			return nil, err
		}
		lifted = flatten(hs)
	}
	hJet, err := emb.Apply(h)
	if err != nil {
		return nil, err
	}

	jn := jr.ring.NumGens()
	ext, err := jr.ring.Extend([]string{jr.ring.FreshName("t")}, appendBlock(o.order, jn, 1))
	if err != nil {
		return nil, err
	}
	inc, err := algebra.NameMap(jr.ring, ext)
	if err != nil {
		return nil, err
	}
	gens, err := inc.ApplyAll(append(lifted, hJet))
	if err != nil {
		return nil, err
	}
	hExt := gens[len(gens)-1]
	gens[len(gens)-1] = ext.One().Sub(hExt.Mul(ext.Gen(jn)))
	extI, err := algebra.NewIdeal(ext, gens...)
	if err != nil {
		return nil, err
	}
	elim, err := o.engine.Eliminate(ctx, extI, []int{jn})
	if err != nil {
		return nil, err
	}
	proj, err := algebra.Projection(ext, jr.ring)
	if err != nil {
		return nil, err
	}
	res, err := proj.Pushforward(elim)
	if err != nil {
		return nil, err
	}
	log.Info("general component computed",
		zap.String("method", string(MethodSaturation)),
		zap.Int("generators", res.Len()))
	return &Component{Ring: jr, Ideal: res, Witness: h, Method: MethodSaturation}, nil
}

// smoothWitness returns the first generator of the Jacobian ideal of I that
// is not in I.
func smoothWitness(ctx context.Context, eng *algebra.Engine, I *algebra.Ideal) (algebra.Poly, error) {
	jac, err := eng.JacobianIdeal(ctx, I)
	if err != nil {
		return algebra.Poly{}, err
	}
	for _, m := range jac.Gens() {
		nf, err := eng.Reduce(ctx, I, m)
		if err != nil {
			return algebra.Poly{}, err
		}
		if !nf.IsZero() {
			return m, nil
		}
	}
	return algebra.Poly{}, errs.NoSmoothPointf("jets.GeneralComponentSaturation",
		"every Jacobian minor of %s lies in the ideal", I)
}
