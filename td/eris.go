// Package td is the real-time propagation core. It transforms site-basis
// Hamiltonians into the orbital basis (ERIs), owns the complex many-body
// state in split real/imaginary form (State), advances it with an explicit
// Runge-Kutta stepper, and measures operator expectation values from the
// instantaneous reduced density matrices.
package td

import (
	"fmt"

	"github.com/pkg/errors"
	"gonum.org/v1/gonum/mat"

	"github.com/cpbunker/tdfci/tensor"
)

// ERIs is a Hamiltonian bundle in the orbital basis: the spin-resolved
// one-body matrices and the (aa, ab, bb) two-body tensors, chemist index
// convention throughout. A bundle is a pure transformation result and is
// built fresh for every distinct physical operator.
type ERIs struct {
	Norb int

	H1a, H1b         *mat.Dense
	G2aa, G2ab, G2bb *tensor.D4

	// MOa and MOb are kept so that operator bundles can be built in the
	// same orbital basis as the Hamiltonian itself.
	MOa, MOb *mat.Dense
}

// NewERIs transforms the site-basis one-body matrix h1e and two-body tensor
// g2e into the orbital basis given by the per-spin coefficient matrices.
// The mixed-spin tensor transforms its first index pair with moa and its
// second with mob. With identity coefficients the inputs are returned
// unchanged.
func NewERIs(h1e *mat.Dense, g2e *tensor.D4, moa, mob *mat.Dense) (*ERIs, error) {
	n, c := h1e.Dims()
	if n != c {
		return nil, errors.Wrap(ErrDimensionMismatch, fmt.Sprintf("h1e %dx%d", n, c))
	}
	if g2e.N != n {
		return nil, errors.Wrap(ErrDimensionMismatch, fmt.Sprintf("g2e %d, h1e %d", g2e.N, n))
	}
	for _, mo := range []*mat.Dense{moa, mob} {
		r, c := mo.Dims()
		if r != n || c != n {
			return nil, errors.Wrap(ErrDimensionMismatch, fmt.Sprintf("mo %dx%d, h1e %d", r, c, n))
		}
	}

	e := &ERIs{Norb: n}
	e.H1a = transform1e(h1e, moa)
	e.H1b = transform1e(h1e, mob)
	e.G2aa = transform2e(g2e, moa, moa)
	e.G2ab = transform2e(g2e, moa, mob)
	e.G2bb = transform2e(g2e, mob, mob)
	e.MOa = mat.DenseCopyOf(moa)
	e.MOb = mat.DenseCopyOf(mob)
	return e, nil
}

// transform1e returns C^T h C.
func transform1e(h, c *mat.Dense) *mat.Dense {
	var t, out mat.Dense
	t.Mul(h, c)
	out.Mul(c.T(), &t)
	return &out
}

// transform2e carries g through the sequential four-index transform,
// contracting the first index pair with ca and the second with cb.
// Cost is O(norb^5).
func transform2e(g *tensor.D4, ca, cb *mat.Dense) *tensor.D4 {
	cur := g
	for ax := 0; ax < 4; ax++ {
		c := ca
		if ax >= 2 {
			c = cb
		}
		cur = contractAxis(cur, c, ax)
	}
	return cur
}

// contractAxis replaces axis ax of g: out[..i..] = sum_u g[..u..] c[u,i].
func contractAxis(g *tensor.D4, c *mat.Dense, ax int) *tensor.D4 {
	n := g.N
	out := tensor.NewD4(n)
	var ix [4]int
	for p := 0; p < n; p++ {
		for q := 0; q < n; q++ {
			for r := 0; r < n; r++ {
				for s := 0; s < n; s++ {
					ix[0], ix[1], ix[2], ix[3] = p, q, r, s
					i := ix[ax]
					var v float64
					for u := 0; u < n; u++ {
						ix[ax] = u
						v += g.At(ix[0], ix[1], ix[2], ix[3]) * c.At(u, i)
					}
					out.Set(p, q, r, s, v)
				}
			}
		}
	}
	return out
}
