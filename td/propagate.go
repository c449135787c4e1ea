package td

import (
	"strconv"

	"github.com/pkg/errors"

	"github.com/cpbunker/tdfci/cvec"
	"github.com/cpbunker/tdfci/fci"
)

// Update returns the state displacement d = dR + i dI for one explicit step
// of d/dt (R + iI) = -iH(R + iI), with the Hamiltonian action supplied by
// the bundle. Order 1 is a single Hamiltonian action: dR = H I, dI = -H R.
// Order 4 is the classic four-stage Runge-Kutta combination
// (k1 + 2 k2 + 2 k3 + k4)/6. No other order is supported.
func Update(s *State, eris *ERIs, dt float64, order int) (cvec.Vec, error) {
	hop := func(v []float64) []float64 {
		out := make([]float64, len(v))
		fci.Apply(out, v, eris.H1a, eris.H1b, eris.G2aa, eris.G2ab, eris.G2bb, s.Space)
		return out
	}

	dr1 := hop(s.Vec.Im)
	di1 := negated(hop(s.Vec.Re))

	switch order {
	case 1:
		return cvec.Vec{Re: dr1, Im: di1}, nil
	case 4:
	default:
		return cvec.Vec{}, errors.Wrap(ErrUnsupportedOrder, strconv.Itoa(order))
	}

	// stage advances the state by h along the previous stage's slope and
	// evaluates the Hamiltonian action there. The intermediate pair is
	// renormalized before that evaluation: this deviates from textbook
	// RK4, which never renormalizes mid-stage, and is kept deliberately
	// for numerical parity with the reference dynamics. Do not remove
	// the normalization without flagging the behavior change.
	stage := func(dr, di []float64, h float64) ([]float64, []float64) {
		w := s.Vec.Clone()
		w.AddScaled(h, cvec.Vec{Re: dr, Im: di})
		w.Normalize()
		return hop(w.Im), negated(hop(w.Re))
	}

	dr2, di2 := stage(dr1, di1, 0.5*dt)
	dr3, di3 := stage(dr2, di2, 0.5*dt)
	dr4, di4 := stage(dr3, di3, dt)

	dr := weigh(dr1, dr2, dr3, dr4)
	di := weigh(di1, di2, di3, di4)
	return cvec.Vec{Re: dr, Im: di}, nil
}

// Step applies one full time step to the state in place: advance by dt
// along the displacement from Update, then renormalize.
func Step(s *State, eris *ERIs, dt float64, order int) error {
	d, err := Update(s, eris, dt, order)
	if err != nil {
		return errors.Wrap(err, "")
	}
	s.Vec.AddScaled(dt, d)
	s.Vec.Normalize()
	return nil
}

func negated(v []float64) []float64 {
	for i := range v {
		v[i] = -v[i]
	}
	return v
}

func weigh(k1, k2, k3, k4 []float64) []float64 {
	out := make([]float64, len(k1))
	for i := range out {
		out[i] = (k1[i] + 2*k2[i] + 2*k3[i] + k4[i]) / 6
	}
	return out
}
