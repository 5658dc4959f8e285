// Package algebra is the polynomial algebra engine behind the jet
// computations: exact coefficient fields, multivariate polynomial rings with
// monomial orders, immutable sparse polynomials and ideals, ring maps, and
// the Gröbner-basis backed operations (normal form, elimination, radical
// membership, dimension, preimage, Jacobian ideal) run by an Engine.
//
// Design goals:
//   - Exact arithmetic over QQ and GF(p) on math/big.Rat
//   - Deterministic output: terms sorted by the ring order, reduced bases
//   - Values never change after construction
//   - Cancellation through context.Context on every basis computation
//
// Limitations:
//   - Buchberger's algorithm with the product and chain criteria only; no
//     F4, no modular methods
//   - The radical is exposed through membership tests, not as generators
package algebra
