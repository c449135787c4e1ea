package fci

import (
	"gonum.org/v1/gonum/floats"
	"gonum.org/v1/gonum/mat"

	"github.com/cpbunker/tdfci/tensor"
)

// Density matrix conventions (bra and ket are real vectors):
//
//	d1[q,p]     = <bra| p† q |ket>
//	d2[p,r,q,s] = <bra| p† q† s r |ket>
//
// so that the one-body energy is sum_pq h1[p,q]*d1[q,p] and the same-spin
// two-body energy is 1/2 sum g[p,q,r,s]*d2[p,q,r,s] with g in chemist order.

// RDM1s returns the spin-resolved one-body (transition) density matrices
// for the given bra and ket. Pass the same vector twice for a plain RDM.
func RDM1s(bra, ket []float64, sp *Space) (d1a, d1b *mat.Dense) {
	ta := sp.exciteAlpha(ket)
	tb := sp.exciteBeta(ket)
	return rdm1(bra, ta, sp.Norb), rdm1(bra, tb, sp.Norb)
}

func rdm1(bra []float64, t [][]float64, n int) *mat.Dense {
	d := mat.NewDense(n, n, nil)
	for p := 0; p < n; p++ {
		for q := 0; q < n; q++ {
			d.Set(q, p, floats.Dot(bra, t[p*n+q]))
		}
	}
	return d
}

// RDM12s returns the one-body pair (a, b) and the two-body triple
// (aa, ab, bb) of reduced density matrices for a single state vector.
func RDM12s(vec []float64, sp *Space) (d1a, d1b *mat.Dense, d2aa, d2ab, d2bb *tensor.D4) {
	d1a, d1b, d2 := rdm12(vec, vec, sp)
	return d1a, d1b, d2[0], d2[1], d2[3]
}

// TransRDM12s returns the transition density matrices between a bra and a
// ket vector: the one-body pair (a, b) and the two-body quadruple
// (aa, ab, ba, bb). The mixed-spin channels are not related by symmetry
// when bra != ket, so both orderings are returned.
func TransRDM12s(bra, ket []float64, sp *Space) (d1a, d1b *mat.Dense, d2 [4]*tensor.D4) {
	return rdm12(bra, ket, sp)
}

func rdm12(bra, ket []float64, sp *Space) (*mat.Dense, *mat.Dense, [4]*tensor.D4) {
	n := sp.Norb
	tketA := sp.exciteAlpha(ket)
	tketB := sp.exciteBeta(ket)
	var tbraA, tbraB [][]float64
	if &bra[0] == &ket[0] {
		tbraA, tbraB = tketA, tketB
	} else {
		tbraA = sp.exciteAlpha(bra)
		tbraB = sp.exciteBeta(bra)
	}

	d1a := rdm1(bra, tketA, n)
	d1b := rdm1(bra, tketB, n)

	// <bra| E_ab E_cd |ket> = (E_ba bra) . (E_cd ket), and
	// d2[a,b,c,d] = <a† c† d b> = <E_ab E_cd> - delta_bc <a† d>.
	gamma := func(tbra, tket [][]float64, d1 *mat.Dense) *tensor.D4 {
		d2 := tensor.NewD4(n)
		for a := 0; a < n; a++ {
			for b := 0; b < n; b++ {
				for c := 0; c < n; c++ {
					for d := 0; d < n; d++ {
						v := floats.Dot(tbra[b*n+a], tket[c*n+d])
						if d1 != nil && b == c {
							v -= d1.At(d, a)
						}
						d2.Set(a, b, c, d, v)
					}
				}
			}
		}
		return d2
	}

	var d2 [4]*tensor.D4
	d2[0] = gamma(tbraA, tketA, d1a)
	d2[1] = gamma(tbraA, tketB, nil)
	d2[2] = gamma(tbraB, tketA, nil)
	d2[3] = gamma(tbraB, tketB, d1b)
	return d1a, d1b, d2
}
