package td

import (
	"fmt"

	"github.com/pkg/errors"
	"gonum.org/v1/gonum/mat"

	"github.com/cpbunker/tdfci/cvec"
	"github.com/cpbunker/tdfci/fci"
	"github.com/cpbunker/tdfci/tensor"
)

// State is the complex many-body wavefunction over the determinant basis,
// kept as separate real and imaginary parts so that the real-valued
// Hamiltonian action of the fci engine can be reused. Its norm is 1 at the
// start and end of every completed time step.
type State struct {
	Vec   cvec.Vec
	Space *fci.Space
}

// NewState builds a state from a ground-state vector: the real part is the
// vector, the imaginary part zero.
func NewState(ground []float64, sp *fci.Space) (*State, error) {
	if len(ground) != sp.Dim() {
		return nil, errors.Wrap(ErrDimensionMismatch, fmt.Sprintf("vector %d, space %d", len(ground), sp.Dim()))
	}
	return &State{Vec: cvec.FromReal(ground), Space: sp}, nil
}

// Norm is the l2 norm of R + iI, exposed as the drift diagnostic.
func (s *State) Norm() float64 {
	return s.Vec.Norm()
}

// DensityMatrices holds the instantaneous spin-resolved reduced density
// matrices of a state. The two-body tensors are in the <r p† s q†> index
// order expected by Measure.
type DensityMatrices struct {
	D1a, D1b         *mat.CDense
	D2aa, D2ab, D2bb *tensor.Z4
}

// DensityMatrices combines the same-part and real-imaginary transition
// density matrices of the fci engine into the complex density matrices of
// the state R + iI. The combination rules are a fixed contract:
//
//	d1       = RR + II + i(RI - RI^T)
//	d2_same  = RR + II + i(RI - RI.transpose(1,0,3,2))
//	d2_mixed = RR + II + i(RI_ab - RI_ba.transpose(3,2,1,0))
//
// followed by a global transpose(1,0,3,2) of every two-body tensor. The
// transpose and sign conventions here fix the signs of downstream
// observables, in particular the current direction.
func (s *State) DensityMatrices() DensityMatrices {
	rr1a, rr1b, rr2aa, rr2ab, rr2bb := fci.RDM12s(s.Vec.Re, s.Space)
	ii1a, ii1b, ii2aa, ii2ab, ii2bb := fci.RDM12s(s.Vec.Im, s.Space)
	ri1a, ri1b, ri2 := fci.TransRDM12s(s.Vec.Re, s.Vec.Im, s.Space)

	var dm DensityMatrices
	dm.D1a = combine1(rr1a, ii1a, ri1a)
	dm.D1b = combine1(rr1b, ii1b, ri1b)
	dm.D2aa = combineSame(rr2aa, ii2aa, ri2[0]).Transpose(1, 0, 3, 2)
	dm.D2ab = combineMixed(rr2ab, ii2ab, ri2[1], ri2[2]).Transpose(1, 0, 3, 2)
	dm.D2bb = combineSame(rr2bb, ii2bb, ri2[3]).Transpose(1, 0, 3, 2)
	return dm
}

func combine1(rr, ii, ri *mat.Dense) *mat.CDense {
	n, _ := rr.Dims()
	d := mat.NewCDense(n, n, nil)
	for i := 0; i < n; i++ {
		for j := 0; j < n; j++ {
			d.Set(i, j, complex(rr.At(i, j)+ii.At(i, j), ri.At(i, j)-ri.At(j, i)))
		}
	}
	return d
}

func combineSame(rr, ii, ri *tensor.D4) *tensor.Z4 {
	n := rr.N
	d := tensor.NewZ4(n)
	for p := 0; p < n; p++ {
		for q := 0; q < n; q++ {
			for r := 0; r < n; r++ {
				for s := 0; s < n; s++ {
					re := rr.At(p, q, r, s) + ii.At(p, q, r, s)
					im := ri.At(p, q, r, s) - ri.At(q, p, s, r)
					d.Set(p, q, r, s, complex(re, im))
				}
			}
		}
	}
	return d
}

func combineMixed(rr, ii, riAB, riBA *tensor.D4) *tensor.Z4 {
	n := rr.N
	d := tensor.NewZ4(n)
	for p := 0; p < n; p++ {
		for q := 0; q < n; q++ {
			for r := 0; r < n; r++ {
				for s := 0; s < n; s++ {
					re := rr.At(p, q, r, s) + ii.At(p, q, r, s)
					im := riAB.At(p, q, r, s) - riBA.At(s, r, q, p)
					d.Set(p, q, r, s, complex(re, im))
				}
			}
		}
	}
	return d
}
