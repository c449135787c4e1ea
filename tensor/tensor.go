// Package tensor provides dense rank-4 tensors over a single orbital
// dimension, as used for two-electron integrals in the chemist index
// convention and for two-body reduced density matrices.
package tensor

import (
	"fmt"
)

// D4 is a real rank-4 tensor of shape (N, N, N, N).
type D4 struct {
	N    int
	data []float64
}

// NewD4 returns a zero tensor of shape (n, n, n, n).
func NewD4(n int) *D4 {
	return &D4{N: n, data: make([]float64, n*n*n*n)}
}

func (t *D4) index(p, q, r, s int) int {
	return ((p*t.N+q)*t.N+r)*t.N + s
}

func (t *D4) At(p, q, r, s int) float64 {
	return t.data[t.index(p, q, r, s)]
}

func (t *D4) Set(p, q, r, s int, v float64) {
	t.data[t.index(p, q, r, s)] = v
}

func (t *D4) Clone() *D4 {
	c := NewD4(t.N)
	copy(c.data, t.data)
	return c
}

// Transpose returns the tensor with axes permuted, following the numpy
// convention: Transpose(a0,a1,a2,a3) places axis ak of t at output axis k,
// so the element at t[i0,i1,i2,i3] lands at out[i_a0,i_a1,i_a2,i_a3].
func (t *D4) Transpose(a0, a1, a2, a3 int) *D4 {
	out := NewD4(t.N)
	var ix [4]int
	for p := 0; p < t.N; p++ {
		for q := 0; q < t.N; q++ {
			for r := 0; r < t.N; r++ {
				for s := 0; s < t.N; s++ {
					ix[0], ix[1], ix[2], ix[3] = p, q, r, s
					out.Set(ix[a0], ix[a1], ix[a2], ix[a3], t.At(p, q, r, s))
				}
			}
		}
	}
	return out
}

// Sub returns t - o.
func (t *D4) Sub(o *D4) *D4 {
	if t.N != o.N {
		panic(fmt.Sprintf("%d %d", t.N, o.N))
	}
	out := NewD4(t.N)
	for i, v := range t.data {
		out.data[i] = v - o.data[i]
	}
	return out
}

// Antisymmetrize returns t - t.Transpose(1,0,2,3), the particle-exchange
// antisymmetrization applied to same-spin two-body tensors. The result g
// satisfies g[p,q,r,s] = -g[q,p,r,s] exactly.
func (t *D4) Antisymmetrize() *D4 {
	return t.Sub(t.Transpose(1, 0, 2, 3))
}

// Z4 is a complex rank-4 tensor of shape (N, N, N, N).
type Z4 struct {
	N    int
	data []complex128
}

// NewZ4 returns a zero tensor of shape (n, n, n, n).
func NewZ4(n int) *Z4 {
	return &Z4{N: n, data: make([]complex128, n*n*n*n)}
}

func (t *Z4) index(p, q, r, s int) int {
	return ((p*t.N+q)*t.N+r)*t.N + s
}

func (t *Z4) At(p, q, r, s int) complex128 {
	return t.data[t.index(p, q, r, s)]
}

func (t *Z4) Set(p, q, r, s int, v complex128) {
	t.data[t.index(p, q, r, s)] = v
}

// Transpose permutes axes with the same convention as D4.Transpose.
func (t *Z4) Transpose(a0, a1, a2, a3 int) *Z4 {
	out := NewZ4(t.N)
	var ix [4]int
	for p := 0; p < t.N; p++ {
		for q := 0; q < t.N; q++ {
			for r := 0; r < t.N; r++ {
				for s := 0; s < t.N; s++ {
					ix[0], ix[1], ix[2], ix[3] = p, q, r, s
					out.Set(ix[a0], ix[a1], ix[a2], ix[a3], t.At(p, q, r, s))
				}
			}
		}
	}
	return out
}
