package fci

import (
	"flag"
	"fmt"
	"log"
	"math"
	"testing"

	"gonum.org/v1/gonum/floats"
	"gonum.org/v1/gonum/mat"
	"gonum.org/v1/gonum/stat/combin"

	"github.com/cpbunker/tdfci/tensor"
)

// hubbardDimer builds the two site Hubbard model with hopping t and on site
// repulsion u, in the chemist integral convention.
func hubbardDimer(t, u float64) (*mat.Dense, *tensor.D4) {
	h1e := mat.NewDense(2, 2, []float64{0, -t, -t, 0})
	g2e := tensor.NewD4(2)
	g2e.Set(0, 0, 0, 0, u)
	g2e.Set(1, 1, 1, 1, u)
	return h1e, g2e
}

func TestNewSpace(t *testing.T) {
	t.Parallel()
	tests := []struct {
		norb  int
		nelec [2]int
	}{
		{norb: 2, nelec: [2]int{1, 1}},
		{norb: 4, nelec: [2]int{2, 2}},
		{norb: 5, nelec: [2]int{3, 1}},
		{norb: 3, nelec: [2]int{0, 2}},
	}
	for _, test := range tests {
		test := test
		t.Run(fmt.Sprintf("%d %v", test.norb, test.nelec), func(t *testing.T) {
			t.Parallel()
			sp, err := NewSpace(test.norb, test.nelec)
			if err != nil {
				t.Fatalf("%+v", err)
			}
			want := combin.Binomial(test.norb, test.nelec[0]) * combin.Binomial(test.norb, test.nelec[1])
			if sp.Dim() != want {
				t.Fatalf("%d %d", sp.Dim(), want)
			}
			if sp.NumAlpha()*sp.NumBeta() != sp.Dim() {
				t.Fatalf("%d %d %d", sp.NumAlpha(), sp.NumBeta(), sp.Dim())
			}
		})
	}

	for _, bad := range []struct {
		norb  int
		nelec [2]int
	}{
		{norb: 0, nelec: [2]int{0, 0}},
		{norb: 63, nelec: [2]int{1, 1}},
		{norb: 2, nelec: [2]int{3, 0}},
		{norb: 2, nelec: [2]int{-1, 0}},
	} {
		if _, err := NewSpace(bad.norb, bad.nelec); err == nil {
			t.Fatalf("%d %v", bad.norb, bad.nelec)
		}
	}
}

func TestApplyHermitian(t *testing.T) {
	t.Parallel()
	sp, err := NewSpace(3, [2]int{2, 1})
	if err != nil {
		t.Fatalf("%+v", err)
	}
	h1e := mat.NewDense(3, 3, []float64{
		-0.3, -1, 0.2,
		-1, 0.5, -1,
		0.2, -1, 0.1,
	})
	g2e := tensor.NewD4(3)
	g2e.Set(1, 1, 1, 1, 2.0)
	g2e.Set(0, 0, 0, 0, 0.7)

	dim := sp.Dim()
	x := make([]float64, dim)
	y := make([]float64, dim)
	for i := 0; i < dim; i++ {
		x[i] = math.Sin(float64(i) + 1)
		y[i] = math.Cos(2*float64(i) - 1)
	}
	hx := make([]float64, dim)
	hy := make([]float64, dim)
	Apply(hx, x, h1e, h1e, g2e, g2e, g2e, sp)
	Apply(hy, y, h1e, h1e, g2e, g2e, g2e, sp)

	if got, want := floats.Dot(x, hy), floats.Dot(hx, y); math.Abs(got-want) > 1e-12 {
		t.Fatalf("%f %f", got, want)
	}
}

func TestHubbardDimerGroundState(t *testing.T) {
	t.Parallel()
	tests := []struct {
		t float64
		u float64
	}{
		{t: 1, u: 0},
		{t: 1, u: 2},
		{t: 1, u: 10},
		{t: 0.4, u: 1},
	}
	for _, test := range tests {
		test := test
		t.Run(fmt.Sprintf("%v %v", test.t, test.u), func(t *testing.T) {
			t.Parallel()
			sp, err := NewSpace(2, [2]int{1, 1})
			if err != nil {
				t.Fatalf("%+v", err)
			}
			h1e, g2e := hubbardDimer(test.t, test.u)
			e0, vec, err := GroundState(h1e, h1e, g2e, g2e, g2e, sp)
			if err != nil {
				t.Fatalf("%+v", err)
			}

			want := (test.u - math.Sqrt(test.u*test.u+16*test.t*test.t)) / 2
			if math.Abs(e0-want) > 1e-12 {
				t.Fatalf("%f %f", e0, want)
			}
			if n := floats.Norm(vec, 2); math.Abs(n-1) > 1e-12 {
				t.Fatalf("%f", n)
			}
		})
	}
}

func TestRDMTrace(t *testing.T) {
	t.Parallel()
	sp, err := NewSpace(3, [2]int{2, 1})
	if err != nil {
		t.Fatalf("%+v", err)
	}
	vec := make([]float64, sp.Dim())
	for i := range vec {
		vec[i] = float64(i + 1)
	}
	floats.Scale(1/floats.Norm(vec, 2), vec)

	d1a, d1b := RDM1s(vec, vec, sp)
	if got := mat.Trace(d1a); math.Abs(got-2) > 1e-12 {
		t.Fatalf("%f", got)
	}
	if got := mat.Trace(d1b); math.Abs(got-1) > 1e-12 {
		t.Fatalf("%f", got)
	}
}

// TestRDMEnergy contracts the reduced density matrices of the Hubbard dimer
// ground state with the integrals and checks the eigenvalue is recovered.
func TestRDMEnergy(t *testing.T) {
	t.Parallel()
	sp, err := NewSpace(2, [2]int{1, 1})
	if err != nil {
		t.Fatalf("%+v", err)
	}
	h1e, g2e := hubbardDimer(1, 3)
	e0, vec, err := GroundState(h1e, h1e, g2e, g2e, g2e, sp)
	if err != nil {
		t.Fatalf("%+v", err)
	}

	d1a, d1b, d2aa, d2ab, d2bb := RDM12s(vec, sp)
	var e float64
	for p := 0; p < 2; p++ {
		for q := 0; q < 2; q++ {
			e += h1e.At(p, q) * (d1a.At(q, p) + d1b.At(q, p))
			for r := 0; r < 2; r++ {
				for s := 0; s < 2; s++ {
					g := g2e.At(p, q, r, s)
					e += 0.5 * g * (d2aa.At(p, q, r, s) + d2bb.At(p, q, r, s))
					e += g * d2ab.At(p, q, r, s)
				}
			}
		}
	}
	if math.Abs(e-e0) > 1e-12 {
		t.Fatalf("%f %f", e, e0)
	}
}

// TestTransRDMReduces checks the transition density matrices with an equal
// bra and ket agree with the plain ones.
func TestTransRDMReduces(t *testing.T) {
	t.Parallel()
	sp, err := NewSpace(2, [2]int{1, 1})
	if err != nil {
		t.Fatalf("%+v", err)
	}
	vec := []float64{0.5, -0.5, 0.5, 0.5}
	other := make([]float64, len(vec))
	copy(other, vec)

	d1a, _, d2 := TransRDM12s(vec, other, sp)
	p1a, _, p2aa, p2ab, _ := RDM12s(vec, sp)
	if !mat.EqualApprox(d1a, p1a, 1e-14) {
		t.Fatalf("%v %v", d1a, p1a)
	}
	for p := 0; p < 2; p++ {
		for q := 0; q < 2; q++ {
			for r := 0; r < 2; r++ {
				for s := 0; s < 2; s++ {
					if math.Abs(d2[0].At(p, q, r, s)-p2aa.At(p, q, r, s)) > 1e-14 {
						t.Fatalf("aa %d %d %d %d", p, q, r, s)
					}
					if math.Abs(d2[1].At(p, q, r, s)-p2ab.At(p, q, r, s)) > 1e-14 {
						t.Fatalf("ab %d %d %d %d", p, q, r, s)
					}
				}
			}
		}
	}
}

func TestMain(m *testing.M) {
	flag.Parse()
	log.SetFlags(log.Lmicroseconds | log.Llongfile | log.LstdFlags)

	m.Run()
}
