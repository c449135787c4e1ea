// Package cvec implements a complex vector split into separate real and
// imaginary parts, so that it can be fed to the real-valued many-body
// Hamiltonian action one part at a time.
package cvec

import (
	"math"

	"gonum.org/v1/gonum/floats"
)

// Vec is a complex vector R + iI.
type Vec struct {
	Re []float64
	Im []float64
}

// Zeros returns the zero vector of length n.
func Zeros(n int) Vec {
	return Vec{Re: make([]float64, n), Im: make([]float64, n)}
}

// FromReal returns a vector with real part r and zero imaginary part.
// The real part is copied.
func FromReal(r []float64) Vec {
	v := Zeros(len(r))
	copy(v.Re, r)
	return v
}

func (v Vec) Len() int { return len(v.Re) }

func (v Vec) Clone() Vec {
	c := Zeros(v.Len())
	copy(c.Re, v.Re)
	copy(c.Im, v.Im)
	return c
}

// AddScaled sets v += a*w.
func (v Vec) AddScaled(a float64, w Vec) {
	floats.AddScaled(v.Re, a, w.Re)
	floats.AddScaled(v.Im, a, w.Im)
}

// Scale sets v *= a.
func (v Vec) Scale(a float64) {
	floats.Scale(a, v.Re)
	floats.Scale(a, v.Im)
}

// Norm returns the l2 norm of R + iI.
func (v Vec) Norm() float64 {
	return math.Hypot(floats.Norm(v.Re, 2), floats.Norm(v.Im, 2))
}

// Normalize scales v to unit norm and returns the norm it had before.
func (v Vec) Normalize() float64 {
	n := v.Norm()
	if n != 0 {
		v.Scale(1 / n)
	}
	return n
}
