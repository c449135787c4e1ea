package tensor

import (
	"flag"
	"log"
	"math"
	"testing"
)

func TestTranspose(t *testing.T) {
	t.Parallel()
	g := NewD4(3)
	g.Set(0, 1, 2, 1, 7)

	// Output axis k reads input axis a_k.
	tr := g.Transpose(2, 0, 3, 1)
	if v := tr.At(2, 0, 1, 1); v != 7 {
		t.Fatalf("%f", v)
	}

	// The axis permutations used for the physicist reorder and the
	// density matrix conventions are involutions.
	for _, perm := range [][4]int{{0, 2, 1, 3}, {1, 0, 3, 2}, {3, 2, 1, 0}} {
		tw := g.Transpose(perm[0], perm[1], perm[2], perm[3]).
			Transpose(perm[0], perm[1], perm[2], perm[3])
		for i, v := range tw.data {
			if v != g.data[i] {
				t.Fatalf("%v %d %f %f", perm, i, v, g.data[i])
			}
		}
	}
}

func TestAntisymmetrize(t *testing.T) {
	t.Parallel()
	g := NewD4(2)
	g.Set(0, 1, 0, 1, 3)
	g.Set(1, 0, 0, 1, 1)
	a := g.Antisymmetrize()
	for p := 0; p < 2; p++ {
		for q := 0; q < 2; q++ {
			for r := 0; r < 2; r++ {
				for s := 0; s < 2; s++ {
					if math.Abs(a.At(p, q, r, s)+a.At(q, p, r, s)) > 1e-15 {
						t.Fatalf("%d %d %d %d", p, q, r, s)
					}
				}
			}
		}
	}
	if v := a.At(0, 1, 0, 1); v != 2 {
		t.Fatalf("%f", v)
	}
}

func TestZ4Transpose(t *testing.T) {
	t.Parallel()
	g := NewZ4(2)
	g.Set(0, 1, 1, 0, 2+3i)
	tr := g.Transpose(1, 0, 3, 2)
	if v := tr.At(1, 0, 0, 1); v != 2+3i {
		t.Fatalf("%f", v)
	}

	// Non-involutive permutation: the element at (0,1,1,1) lands at
	// (i_2, i_0, i_3, i_1) = (1,0,1,1).
	g = NewZ4(2)
	g.Set(0, 1, 1, 1, 5i)
	tr = g.Transpose(2, 0, 3, 1)
	if v := tr.At(1, 0, 1, 1); v != 5i {
		t.Fatalf("%f", v)
	}
}

func TestMain(m *testing.M) {
	flag.Parse()
	log.SetFlags(log.Lmicroseconds | log.Llongfile | log.LstdFlags)

	m.Run()
}
