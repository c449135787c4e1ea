// Package scf implements the unrestricted Hartree-Fock mean-field solver
// that supplies the orbital basis for the propagation core.
package scf

import (
	"math"

	"github.com/pkg/errors"
	"gonum.org/v1/gonum/mat"

	"github.com/cpbunker/tdfci/tensor"
)

const (
	maxIterations = 500
	convTol       = 1e-10
	// mixing keeps a fraction of the previous density between iterations,
	// which damps the charge oscillations of small biased lattices.
	mixing = 0.3
)

// Result holds the converged mean field.
type Result struct {
	// MOa and MOb are the per-spin orbital coefficient matrices; column i
	// is orbital i, ordered by ascending orbital energy.
	MOa, MOb *mat.Dense
	// OrbEa and OrbEb are the orbital energies.
	OrbEa, OrbEb []float64
	// Energy is the total mean-field energy.
	Energy     float64
	Iterations int
}

// UHF solves the unrestricted Hartree-Fock equations for the one-body
// matrix h1e and the chemist-convention two-body tensor g2e, with
// nelec = (alpha, beta) electrons. The initial guess occupies alternating
// sites per spin, breaking spin symmetry the way the original impurity
// calculations are seeded.
func UHF(h1e *mat.Dense, g2e *tensor.D4, nelec [2]int) (*Result, error) {
	n, c := h1e.Dims()
	if n != c {
		return nil, errors.Errorf("%d %d", n, c)
	}
	if g2e.N != n {
		return nil, errors.Errorf("%d %d", g2e.N, n)
	}
	for _, ne := range nelec {
		if ne < 0 || ne > n {
			return nil, errors.Errorf("%d electrons in %d orbitals", ne, n)
		}
	}

	da := mat.NewDense(n, n, nil)
	db := mat.NewDense(n, n, nil)
	for i := 0; i < n; i++ {
		if i%2 == 0 {
			da.Set(i, i, 1)
		} else {
			db.Set(i, i, 1)
		}
	}

	res := &Result{}
	for it := 1; it <= maxIterations; it++ {
		fa := fock(h1e, g2e, da, db, da)
		fb := fock(h1e, g2e, da, db, db)

		moa, ea, err := diagonalize(fa)
		if err != nil {
			return nil, errors.Wrap(err, "")
		}
		mob, eb, err := diagonalize(fb)
		if err != nil {
			return nil, errors.Wrap(err, "")
		}

		newDa := density(moa, nelec[0])
		newDb := density(mob, nelec[1])
		delta := math.Max(maxAbsDiff(newDa, da), maxAbsDiff(newDb, db))

		mix(da, newDa)
		mix(db, newDb)

		if delta < convTol {
			res.MOa, res.MOb = moa, mob
			res.OrbEa, res.OrbEb = ea, eb
			res.Energy = totalEnergy(h1e, fa, fb, da, db)
			res.Iterations = it
			return res, nil
		}
	}
	return nil, errors.Errorf("not converged after %d iterations", maxIterations)
}

// fock builds h + J(da+db) - K(dspin) with chemist-convention integrals:
// J[p,q] = sum_rs (pq|rs) D[s,r], K[p,q] = sum_rs (pr|sq) Dspin[r,s].
func fock(h1e *mat.Dense, g2e *tensor.D4, da, db, dspin *mat.Dense) *mat.Dense {
	n, _ := h1e.Dims()
	f := mat.NewDense(n, n, nil)
	f.Copy(h1e)
	for p := 0; p < n; p++ {
		for q := 0; q < n; q++ {
			v := f.At(p, q)
			for r := 0; r < n; r++ {
				for s := 0; s < n; s++ {
					v += g2e.At(p, q, r, s) * (da.At(s, r) + db.At(s, r))
					v -= g2e.At(p, r, s, q) * dspin.At(r, s)
				}
			}
			f.Set(p, q, v)
		}
	}
	return f
}

func diagonalize(f *mat.Dense) (*mat.Dense, []float64, error) {
	n, _ := f.Dims()
	sym := mat.NewSymDense(n, nil)
	for i := 0; i < n; i++ {
		for j := i; j < n; j++ {
			sym.SetSym(i, j, 0.5*(f.At(i, j)+f.At(j, i)))
		}
	}
	var eig mat.EigenSym
	if ok := eig.Factorize(sym, true); !ok {
		return nil, nil, errors.Errorf("factorization failed")
	}
	var vecs mat.Dense
	eig.VectorsTo(&vecs)
	return &vecs, eig.Values(nil), nil
}

// density builds D = C_occ C_occ^T from the lowest ne orbitals.
func density(mo *mat.Dense, ne int) *mat.Dense {
	n, _ := mo.Dims()
	d := mat.NewDense(n, n, nil)
	if ne == 0 {
		return d
	}
	occ := mo.Slice(0, n, 0, ne)
	d.Mul(occ, occ.T())
	return d
}

func mix(dst, src *mat.Dense) {
	n, _ := dst.Dims()
	for i := 0; i < n; i++ {
		for j := 0; j < n; j++ {
			dst.Set(i, j, mixing*dst.At(i, j)+(1-mixing)*src.At(i, j))
		}
	}
}

func maxAbsDiff(a, b *mat.Dense) float64 {
	n, _ := a.Dims()
	var m float64
	for i := 0; i < n; i++ {
		for j := 0; j < n; j++ {
			m = math.Max(m, math.Abs(a.At(i, j)-b.At(i, j)))
		}
	}
	return m
}

// totalEnergy is 1/2 tr[(h+Fa)Da] + 1/2 tr[(h+Fb)Db].
func totalEnergy(h, fa, fb, da, db *mat.Dense) float64 {
	n, _ := h.Dims()
	var e float64
	for p := 0; p < n; p++ {
		for q := 0; q < n; q++ {
			e += 0.5 * (h.At(p, q) + fa.At(p, q)) * da.At(q, p)
			e += 0.5 * (h.At(p, q) + fb.At(p, q)) * db.At(q, p)
		}
	}
	return e
}
