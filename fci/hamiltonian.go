package fci

import (
	"gonum.org/v1/gonum/floats"
	"gonum.org/v1/gonum/mat"

	"github.com/cpbunker/tdfci/tensor"
)

// Apply computes dst = H*c for the spin-resolved Hamiltonian given by the
// one-body matrices (h1a, h1b) and the two-body tensors (gaa, gab, gbb) in
// the chemist index convention, all in the same orbital basis as the
// determinant strings of sp. dst and c must have length sp.Dim() and must
// not alias.
func Apply(dst, c []float64, h1a, h1b *mat.Dense, gaa, gab, gbb *tensor.D4, sp *Space) {
	n := sp.Norb
	for i := range dst {
		dst[i] = 0
	}

	ta := sp.exciteAlpha(c)
	tb := sp.exciteBeta(c)

	// One-body part, with the same-spin normal-ordering correction
	// h1eff[p,s] = h1[p,s] - 1/2 sum_q g[p,q,q,s] folded in.
	for p := 0; p < n; p++ {
		for s := 0; s < n; s++ {
			ea, eb := h1a.At(p, s), h1b.At(p, s)
			for q := 0; q < n; q++ {
				ea -= 0.5 * gaa.At(p, q, q, s)
				eb -= 0.5 * gbb.At(p, q, q, s)
			}
			if ea != 0 {
				floats.AddScaled(dst, ea, ta[p*n+s])
			}
			if eb != 0 {
				floats.AddScaled(dst, eb, tb[p*n+s])
			}
		}
	}

	// Two-body part: u[p,q] = sum_rs (1/2 g_same[p,q,r,s] E_rs c
	// + g_ab[p,q,r,s] E^beta_rs c), then dst += sum_pq E_pq u[p,q].
	// The mixed-spin tensor couples the alpha pair (p,q) with the beta
	// pair (r,s) and therefore contributes only to the alpha side here.
	ua := newSlab(n*n, sp.Dim())
	ub := newSlab(n*n, sp.Dim())
	for p := 0; p < n; p++ {
		for q := 0; q < n; q++ {
			for r := 0; r < n; r++ {
				for s := 0; s < n; s++ {
					if v := gaa.At(p, q, r, s); v != 0 {
						floats.AddScaled(ua[p*n+q], 0.5*v, ta[r*n+s])
					}
					if v := gab.At(p, q, r, s); v != 0 {
						floats.AddScaled(ua[p*n+q], v, tb[r*n+s])
					}
					if v := gbb.At(p, q, r, s); v != 0 {
						floats.AddScaled(ub[p*n+q], 0.5*v, tb[r*n+s])
					}
				}
			}
		}
	}

	nb := len(sp.bstr)
	for ia, ls := range sp.alinks {
		src := ia * nb
		for _, l := range ls {
			u := ua[l.p*n+l.q]
			d := l.to * nb
			for ib := 0; ib < nb; ib++ {
				dst[d+ib] += l.sign * u[src+ib]
			}
		}
	}
	na := len(sp.astr)
	for ib, ls := range sp.blinks {
		for _, l := range ls {
			u := ub[l.p*n+l.q]
			for ia := 0; ia < na; ia++ {
				dst[ia*nb+l.to] += l.sign * u[ia*nb+ib]
			}
		}
	}
}
