// Package fci implements the many-body engine: enumeration of the Slater
// determinant basis for fixed electron counts per spin, application of a
// spin-resolved Hamiltonian to a state vector, and construction of one- and
// two-body (transition) reduced density matrices.
//
// A state vector is a flat []float64 of length Dim(), indexed as
// ia*len(beta strings) + ib over the alpha x beta string product basis.
package fci

import (
	"math/bits"

	"github.com/pkg/errors"
	"gonum.org/v1/gonum/stat/combin"
)

// link records a single excitation E_pq = a†_p a_q taking one determinant
// string to another with a fermionic sign.
type link struct {
	p, q int
	to   int
	sign float64
}

// Space is the determinant basis for norb spatial orbitals and fixed
// (alpha, beta) electron counts.
type Space struct {
	Norb  int
	Nelec [2]int

	astr []uint64
	bstr []uint64

	alinks [][]link
	blinks [][]link
}

// NewSpace enumerates the determinant basis. The dimension is
// C(norb, nelec[0]) * C(norb, nelec[1]).
func NewSpace(norb int, nelec [2]int) (*Space, error) {
	if norb < 1 || norb > 62 {
		return nil, errors.Errorf("norb %d", norb)
	}
	for _, ne := range nelec {
		if ne < 0 || ne > norb {
			return nil, errors.Errorf("%d electrons in %d orbitals", ne, norb)
		}
	}

	sp := &Space{Norb: norb, Nelec: nelec}
	sp.astr = bitStrings(norb, nelec[0])
	sp.bstr = bitStrings(norb, nelec[1])
	sp.alinks = linkTable(norb, sp.astr)
	sp.blinks = linkTable(norb, sp.bstr)
	return sp, nil
}

// Dim returns the size of the many-body Hilbert space.
func (sp *Space) Dim() int {
	return len(sp.astr) * len(sp.bstr)
}

// NumAlpha and NumBeta return the per-spin string counts.
func (sp *Space) NumAlpha() int { return len(sp.astr) }
func (sp *Space) NumBeta() int  { return len(sp.bstr) }

// bitStrings enumerates all C(norb, ne) masks with ne bits set, ascending.
func bitStrings(norb, ne int) []uint64 {
	if ne == 0 {
		return []uint64{0}
	}
	out := make([]uint64, 0, combin.Binomial(norb, ne))
	limit := uint64(1) << norb
	for s := uint64(1)<<ne - 1; s < limit; {
		out = append(out, s)
		// Gosper's hack: the next larger integer with the same popcount.
		c := s & (-s)
		r := s + c
		s = (((r ^ s) >> 2) / c) | r
	}
	return out
}

// linkTable builds, for every string, the list of single excitations
// E_pq = a†_p a_q that stay inside the basis.
func linkTable(norb int, strs []uint64) [][]link {
	idx := make(map[uint64]int, len(strs))
	for i, s := range strs {
		idx[s] = i
	}

	links := make([][]link, len(strs))
	for i, s := range strs {
		ls := make([]link, 0)
		for q := 0; q < norb; q++ {
			if s&(1<<q) == 0 {
				continue
			}
			t := s &^ (1 << q)
			signQ := parity(s, q)
			for p := 0; p < norb; p++ {
				if t&(1<<p) != 0 {
					continue
				}
				u := t | (1 << p)
				ls = append(ls, link{p: p, q: q, to: idx[u], sign: signQ * parity(t, p)})
			}
		}
		links[i] = ls
	}
	return links
}

// parity is the sign picked up by moving an operator for orbital p past the
// occupied orbitals below p in string s.
func parity(s uint64, p int) float64 {
	if bits.OnesCount64(s&(uint64(1)<<p-1))%2 == 1 {
		return -1
	}
	return 1
}

// exciteAlpha returns t[p*norb+q] = E^alpha_pq applied to c, for all (p, q).
func (sp *Space) exciteAlpha(c []float64) [][]float64 {
	n := sp.Norb
	nb := len(sp.bstr)
	t := newSlab(n*n, sp.Dim())
	for ia, ls := range sp.alinks {
		src := ia * nb
		for _, l := range ls {
			tpq := t[l.p*n+l.q]
			dst := l.to * nb
			for ib := 0; ib < nb; ib++ {
				tpq[dst+ib] += l.sign * c[src+ib]
			}
		}
	}
	return t
}

// exciteBeta returns t[p*norb+q] = E^beta_pq applied to c. No extra sign
// arises from commuting past the alpha operators because E_pq is a pair.
func (sp *Space) exciteBeta(c []float64) [][]float64 {
	n := sp.Norb
	na, nb := len(sp.astr), len(sp.bstr)
	t := newSlab(n*n, sp.Dim())
	for ib, ls := range sp.blinks {
		for _, l := range ls {
			tpq := t[l.p*n+l.q]
			for ia := 0; ia < na; ia++ {
				tpq[ia*nb+l.to] += l.sign * c[ia*nb+ib]
			}
		}
	}
	return t
}

func newSlab(m, dim int) [][]float64 {
	backing := make([]float64, m*dim)
	t := make([][]float64, m)
	for i := range t {
		t[i] = backing[i*dim : (i+1)*dim]
	}
	return t
}
