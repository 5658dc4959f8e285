// Package jets builds jet rings over a polynomial ring and computes the
// general component of a jet scheme, the closure of the jets based at
// smooth points of an affine variety.
//
// A JetRing stores its block structure explicitly: generator b*Trun+l is
// the level-l jet coordinate of block b. On it the package provides the
// Hasse-Schmidt lift of level-0 polynomials, the shift derivation delta
// and its weighted variants, and the automorphisms between the
// Hasse-Schmidt and derivation presentations of the jet ideal.
//
// Two algorithms produce the general component:
//
//	GeneralComponentSaturation  saturate the lift at a Jacobian minor
//	GeneralComponentBirational  eliminate the jets of a birational model
//
// Both return a Component whose Ideal lives in the jet ring of
// truncation n+1 over the base ring. SameRadical compares two results.
package jets
