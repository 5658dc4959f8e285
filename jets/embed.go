package jets

import (
	"github.com/njchilds90/gojets/algebra"
	"github.com/njchilds90/gojets/errs"
)

// BaseEmbedding sends base generator r to the level-0 generator of block r.
// The jet ring must have one block per base generator.
func BaseEmbedding(base *algebra.Ring, jr *JetRing) (*algebra.RingMap, error) {
	const op = "jets.BaseEmbedding"
	if base.NumGens() != len(jr.blocks) {
		return nil, errs.Dimensionf(op, "%d base generators, %d blocks", base.NumGens(), len(jr.blocks))
	}
	images := make(map[int]algebra.Poly, base.NumGens())
	for r := 0; r < base.NumGens(); r++ {
		images[r] = jr.gen(r, 0)
	}
	return algebra.NewRingMap(base, jr.ring, images)
}

// Inclusion maps a jet ring of lower truncation into one of higher
// truncation with the same blocks, level by level.
func Inclusion(small, large *JetRing) (*algebra.RingMap, error) {
	const op = "jets.Inclusion"
	if len(small.blocks) != len(large.blocks) {
		return nil, errs.Dimensionf(op, "%d blocks vs %d", len(small.blocks), len(large.blocks))
	}
	if small.trun > large.trun {
		return nil, errs.Dimensionf(op, "truncation %d does not fit in %d", small.trun, large.trun)
	}
	for b := range small.blocks {
		if small.blocks[b] != large.blocks[b] {
			return nil, errs.Configf(op, "block %d is %v in one ring and %v in the other", b, small.blocks[b], large.blocks[b])
		}
	}
	images := make(map[int]algebra.Poly, small.ring.NumGens())
	for b := range small.blocks {
		for l := 0; l < small.trun; l++ {
			images[b*small.trun+l] = large.gen(b, l)
		}
	}
	return algebra.NewRingMap(small.ring, large.ring, images)
}
