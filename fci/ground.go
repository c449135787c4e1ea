package fci

import (
	"github.com/pkg/errors"
	"gonum.org/v1/gonum/mat"

	"github.com/cpbunker/tdfci/tensor"
)

// GroundState returns the lowest eigenvalue and eigenvector of the
// Hamiltonian in the determinant basis, by dense symmetric
// diagonalization. The spaces this engine is asked to solve are small by
// construction, so the full matrix is built column by column from Apply.
func GroundState(h1a, h1b *mat.Dense, gaa, gab, gbb *tensor.D4, sp *Space) (float64, []float64, error) {
	dim := sp.Dim()
	h := mat.NewDense(dim, dim, nil)
	e := make([]float64, dim)
	col := make([]float64, dim)
	for j := 0; j < dim; j++ {
		e[j] = 1
		Apply(col, e, h1a, h1b, gaa, gab, gbb, sp)
		e[j] = 0
		for i := 0; i < dim; i++ {
			h.Set(i, j, col[i])
		}
	}

	sym := mat.NewSymDense(dim, nil)
	for i := 0; i < dim; i++ {
		for j := i; j < dim; j++ {
			sym.SetSym(i, j, 0.5*(h.At(i, j)+h.At(j, i)))
		}
	}

	var eig mat.EigenSym
	if ok := eig.Factorize(sym, true); !ok {
		return 0, nil, errors.Errorf("factorization failed, dim %d", dim)
	}
	vals := eig.Values(nil)
	var vecs mat.Dense
	eig.VectorsTo(&vecs)

	ground := mat.Col(nil, 0, &vecs)
	return vals[0], ground, nil
}
