package cvec

import (
	"flag"
	"log"
	"math"
	"testing"
)

func TestFromRealCopies(t *testing.T) {
	t.Parallel()
	r := []float64{1, 2}
	v := FromReal(r)
	r[0] = 9
	if v.Re[0] != 1 {
		t.Fatalf("%f", v.Re[0])
	}
	if v.Im[0] != 0 || v.Im[1] != 0 {
		t.Fatalf("%v", v.Im)
	}
}

func TestAddScaledNorm(t *testing.T) {
	t.Parallel()
	v := Vec{Re: []float64{1, 0}, Im: []float64{0, 0}}
	w := Vec{Re: []float64{0, 0}, Im: []float64{0, 1}}
	v.AddScaled(2, w)
	if got, want := v.Norm(), math.Sqrt(5); math.Abs(got-want) > 1e-15 {
		t.Fatalf("%f %f", got, want)
	}

	prior := v.Normalize()
	if math.Abs(prior-math.Sqrt(5)) > 1e-15 {
		t.Fatalf("%f", prior)
	}
	if got := v.Norm(); math.Abs(got-1) > 1e-15 {
		t.Fatalf("%f", got)
	}
}

func TestNormalizeZero(t *testing.T) {
	t.Parallel()
	v := Zeros(3)
	if n := v.Normalize(); n != 0 {
		t.Fatalf("%f", n)
	}
}

func TestMain(m *testing.M) {
	flag.Parse()
	log.SetFlags(log.Lmicroseconds | log.Llongfile | log.LstdFlags)

	m.Run()
}
