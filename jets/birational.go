package jets

import (
	"context"

	"go.uber.org/zap"

	"github.com/njchilds90/gojets/algebra"
	"github.com/njchilds90/gojets/errs"
)

// GeneralComponentBirational computes the general component of the n-th jet
// scheme of a variety given a birational model. model is the model's
// coordinate ring, modelIdeal its defining ideal (nil for affine space),
// and birimage[r] the image of base generator r in the model ring. The
// jets of the graph of the map are eliminated down to the base jets:
//
//	(HS_n(modelIdeal) + HS_n(x_r - birimage[r])) ∩ k[base jets]
func GeneralComponentBirational(ctx context.Context, base, model *algebra.Ring, modelIdeal *algebra.Ideal, birimage []algebra.Poly, n int, opts ...Option) (*Component, error) {
	const op = "jets.GeneralComponentBirational"
	if !base.Field().Equal(model.Field()) {
		return nil, errs.Configf(op, "base over %s, model over %s", base.Field().Name(), model.Field().Name())
	}
	if len(birimage) != base.NumGens() {
		return nil, errs.Configf(op, "%d images for %d base generators", len(birimage), base.NumGens())
	}
	for r, p := range birimage {
		if !model.Equal(p.Ring()) {
			return nil, errs.Configf(op, "image of %s is not in %s", base.Name(r), model)
		}
	}
	if modelIdeal != nil && !model.Equal(modelIdeal.Ring()) {
		return nil, errs.Configf(op, "model ideal of %s, model ring %s", modelIdeal.Ring(), model)
	}
	for _, name := range model.Names() {
		if _, clash := base.IndexOf(name); clash {
			return nil, errs.Configf(op, "generator %q is in both base and model", name)
		}
	}
	if n < 0 {
		return nil, errs.Dimensionf(op, "jet order %d < 0", n)
	}
	o := newOptions(opts)
	log := o.log.With(zap.String("op", op), zap.Int("order", n))

	jr, err := Over(base, n+1, o.order)
	if err != nil {
		return nil, err
	}
	nb, nm := base.NumGens(), model.NumGens()
	names := append(base.Names(), model.Names()...)
	mults := make([]int, len(names))
	for i := range mults {
		mults[i] = 1
	}
	graph, err := NewJetRing(base.Field(), names, mults, n+1, appendBlock(o.order, nb*(n+1), nm*(n+1)))
	if err != nil {
		return nil, err
	}
	baseEmb, modelEmb, err := graphEmbeddings(base, model, graph)
	if err != nil {
		return nil, err
	}

	var level0 []algebra.Poly
	if modelIdeal != nil {
		gens, err := modelEmb.ApplyAll(nonzero(modelIdeal.Gens()))
		if err != nil {
			return nil, err
		}
		level0 = append(level0, gens...)
	}
	for r, img := range birimage {
		x, err := baseEmb.Apply(base.Gen(r))
		if err != nil {
			return nil, err
		}
		y, err := modelEmb.Apply(img)
		if err != nil {
			return nil, err
		}
		level0 = append(level0, x.Sub(y))
	}
	var gens []algebra.Poly
	if level0 = nonzero(level0); len(level0) > 0 {
		hs, err := HasseSchmidt(graph, level0, n)
		if err != nil {
			return nil, err
		}
		gens = flatten(hs)
	}
	I, err := algebra.NewIdeal(graph.ring, gens...)
	if err != nil {
		return nil, err
	}
	elimVars := make([]int, 0, nm*(n+1))
	for b := nb; b < nb+nm; b++ {
		for l := 0; l <= n; l++ {
			elimVars = append(elimVars, b*(n+1)+l)
		}
	}
	log.Debug("eliminating model jets", zap.Int("variables", len(elimVars)), zap.Int("generators", len(gens)))
	elim, err := o.engine.Eliminate(ctx, I, elimVars)
	if err != nil {
		return nil, err
	}
	proj, err := algebra.Projection(graph.ring, jr.ring)
	if err != nil {
		return nil, err
	}
	res, err := proj.Pushforward(elim)
	if err != nil {
		return nil, err
	}
	log.Info("general component computed",
		zap.String("method", string(MethodBirational)),
		zap.Int("generators", res.Len()))
	return &Component{Ring: jr, Ideal: res, Witness: base.Zero(), Method: MethodBirational}, nil
}

// graphEmbeddings sends base and model generators to their level-0 jets in
// the graph ring, whose first blocks are the base's and the rest the
// model's.
func graphEmbeddings(base, model *algebra.Ring, graph *JetRing) (*algebra.RingMap, *algebra.RingMap, error) {
	bi := make(map[int]algebra.Poly, base.NumGens())
	for r := 0; r < base.NumGens(); r++ {
		bi[r] = graph.gen(r, 0)
	}
	mi := make(map[int]algebra.Poly, model.NumGens())
	for j := 0; j < model.NumGens(); j++ {
		mi[j] = graph.gen(base.NumGens()+j, 0)
	}
	be, err := algebra.NewRingMap(base, graph.ring, bi)
	if err != nil {
		return nil, nil, err
	}
	me, err := algebra.NewRingMap(model, graph.ring, mi)
	if err != nil {
		return nil, nil, err
	}
	return be, me, nil
}
