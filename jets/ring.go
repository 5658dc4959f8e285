package jets

import (
	"fmt"

	"github.com/njchilds90/gojets/algebra"
	"github.com/njchilds90/gojets/errs"
)

// Block describes one variable block of a jet ring: the base variable name
// and, for a repeated variable, its 1-based copy number (0 when the variable
// has multiplicity 1).
type Block struct {
	Name string
	Copy int
}

// Meta is the shape of a jet ring: how many blocks and how many levels each.
type Meta struct {
	Blocks int
	Trun   int
}

// Index addresses a generator by block and jet level.
type Index struct {
	Block int
	Level int
}

// JetRing is a polynomial ring whose generators come in contiguous blocks
// of Trun generators, one block per base variable (or per copy of a
// repeated variable). Generator Block*Trun + Level is the jet coordinate of
// that block at that level.
type JetRing struct {
	ring   *algebra.Ring
	blocks []Block
	trun   int
}

// MaxGenerators bounds the number of generators of any jet ring.
const MaxGenerators = 1 << 16

// NewJetRing builds the jet ring with truncation depth trun over field.
// mults[i] copies of names[i] are made; a block of multiplicity 1 named x
// has generators x0..x{trun-1}, copy c of a repeated x has x_c_0.. instead.
// order is a monomial order spec (see algebra.ParseOrder) over all blocks
// expanded to their levels, in the listed order.
func NewJetRing(field algebra.Field, names []string, mults []int, trun int, order string) (*JetRing, error) {
	const op = "jets.NewJetRing"
	if len(names) != len(mults) {
		return nil, errs.Configf(op, "%d names but %d multiplicities", len(names), len(mults))
	}
	if trun < 1 {
		return nil, errs.Configf(op, "truncation depth %d < 1", trun)
	}
	total := 0
	for i, name := range names {
		if mults[i] < 1 || mults[i] > MaxGenerators {
			return nil, errs.Configf(op, "multiplicity %d for %q outside [1,%d]", mults[i], name, MaxGenerators)
		}
		total += mults[i]
	}
	if total > 0 && trun > MaxGenerators/total {
		return nil, errs.Configf(op, "%d blocks of %d levels exceed %d generators", total, trun, MaxGenerators)
	}
	blocks := make([]Block, 0, total)
	for i, name := range names {
		if mults[i] == 1 {
			blocks = append(blocks, Block{Name: name})
			continue
		}
		for c := 1; c <= mults[i]; c++ {
			blocks = append(blocks, Block{Name: name, Copy: c})
		}
	}
	gens := make([]string, 0, len(blocks)*trun)
	for _, b := range blocks {
		for l := 0; l < trun; l++ {
			gens = append(gens, b.genName(l))
		}
	}
	r, err := algebra.NewRing(field, gens, order)
	if err != nil {
		return nil, err
	}
	return &JetRing{ring: r, blocks: blocks, trun: trun}, nil
}

// Over builds the jet ring of base: one block per base generator, named
// after it.
func Over(base *algebra.Ring, trun int, order string) (*JetRing, error) {
	mults := make([]int, base.NumGens())
	for i := range mults {
		mults[i] = 1
	}
	return NewJetRing(base.Field(), base.Names(), mults, trun, order)
}

func (b Block) genName(level int) string {
	if b.Copy == 0 {
		return fmt.Sprintf("%s%d", b.Name, level)
	}
	return fmt.Sprintf("%s_%d_%d", b.Name, b.Copy, level)
}

// Ring returns the underlying polynomial ring.
func (jr *JetRing) Ring() *algebra.Ring { return jr.ring }

// Field returns the coefficient field.
func (jr *JetRing) Field() algebra.Field { return jr.ring.Field() }

// Trun returns the number of levels per block.
func (jr *JetRing) Trun() int { return jr.trun }

// Blocks returns the number of variable blocks.
func (jr *JetRing) Blocks() int { return len(jr.blocks) }

// Block describes block b.
func (jr *JetRing) Block(b int) Block { return jr.blocks[b] }

// Meta returns the shape of the ring.
func (jr *JetRing) Meta() Meta { return Meta{Blocks: len(jr.blocks), Trun: jr.trun} }

// Equal reports whether both rings have the same shape, generators and order.
func (jr *JetRing) Equal(o *JetRing) bool { return jr.Meta() == o.Meta() && jr.ring.Equal(o.ring) }

// Pos returns the linear generator position of idx.
func (jr *JetRing) Pos(idx Index) (int, error) {
	if idx.Block < 0 || idx.Block >= len(jr.blocks) || idx.Level < 0 || idx.Level >= jr.trun {
		return 0, errs.Dimensionf("jets.Pos", "index %+v outside %d blocks x %d levels", idx, len(jr.blocks), jr.trun)
	}
	return idx.Block*jr.trun + idx.Level, nil
}

// IndexOf is the inverse of Pos.
func (jr *JetRing) IndexOf(pos int) (Index, error) {
	if pos < 0 || pos >= jr.ring.NumGens() {
		return Index{}, errs.Dimensionf("jets.IndexOf", "position %d outside [0,%d)", pos, jr.ring.NumGens())
	}
	return Index{Block: pos / jr.trun, Level: pos % jr.trun}, nil
}

// Gen returns the generator at idx.
func (jr *JetRing) Gen(idx Index) (algebra.Poly, error) {
	pos, err := jr.Pos(idx)
	if err != nil {
		return algebra.Poly{}, err
	}
	return jr.ring.Gen(pos), nil
}

// gen skips validation for indices the caller has already bounded.
func (jr *JetRing) gen(block, level int) algebra.Poly {
	return jr.ring.Gen(block*jr.trun + level)
}

// contains checks that p belongs to the jet ring.
func (jr *JetRing) contains(op string, p algebra.Poly) error {
	if !jr.ring.Equal(p.Ring()) {
		return errs.Configf(op, "%s is not in %s", p, jr.ring)
	}
	return nil
}

// levelZero checks that p only involves level-0 generators.
func (jr *JetRing) levelZero(op string, p algebra.Poly) error {
	if err := jr.contains(op, p); err != nil {
		return err
	}
	for _, pos := range p.Support() {
		if pos%jr.trun != 0 {
			return errs.Configf(op, "%s involves %s above level 0", p, jr.ring.Name(pos))
		}
	}
	return nil
}

func (jr *JetRing) String() string {
	return fmt.Sprintf("%s (%d blocks, trun %d)", jr.ring, len(jr.blocks), jr.trun)
}
