package td

import (
	"strconv"

	"github.com/pkg/errors"
)

// Run modes.
const (
	// ModeStd records energy and the density matrices at every sample.
	ModeStd = "std"
	// ModePlot additionally records occupancy, spin and current at a site.
	ModePlot = "plot"
)

// RunParams configures a propagation run.
type RunParams struct {
	TFinal  float64
	Dt      float64
	Order   int
	Site    int     // observed site, plot mode
	Hopping float64 // hopping amplitude of the current operator, plot mode
	// SpinBlind selects the interleaved spin-orbital encoding for the
	// plot-mode observables.
	SpinBlind bool
}

// Series is the recorded time series of a run. Times, Norms, Energy and DMs
// always hold N+1 samples; Occupancy, Spin and Current are filled in plot
// mode only.
type Series struct {
	Times  []float64
	Norms  []float64
	Energy []float64

	Occupancy []float64
	Spin      []float64
	Current   []float64

	DMs []DensityMatrices
}

// Run propagates state for TFinal in steps of Dt, measuring before every
// step so the first sample is the initial state and the last is the final
// one. The state is advanced in place.
func Run(mode string, eris *ERIs, state *State, p RunParams) (*Series, error) {
	switch mode {
	case ModeStd, ModePlot:
	default:
		return nil, errors.Wrap(ErrInvalidMode, mode)
	}
	var occ, spin, cur Operator
	if mode == ModePlot {
		if p.Site <= 0 {
			return nil, errors.Wrap(ErrMissingParameter, "site")
		}
		if p.Hopping == 0 {
			return nil, errors.Wrap(ErrMissingParameter, "hopping")
		}
		occ = OccupancyOp{Site: p.Site, SpinBlind: p.SpinBlind}
		spin = SpinZOp{Site: p.Site, SpinBlind: p.SpinBlind}
		if p.SpinBlind {
			cur = CurrentSpinBlindOp{Site: p.Site, Hopping: p.Hopping}
		} else {
			cur = CurrentOp{Site: p.Site, Hopping: p.Hopping}
		}
	}
	switch p.Order {
	case 1, 4:
	default:
		return nil, errors.Wrap(ErrUnsupportedOrder, strconv.Itoa(p.Order))
	}

	// The small offset keeps N stable when TFinal/Dt sits just under an
	// integer in floating point.
	n := int(p.TFinal/p.Dt + 1e-6)
	s := &Series{
		Times:  make([]float64, 0, n+1),
		Norms:  make([]float64, 0, n+1),
		Energy: make([]float64, 0, n+1),
		DMs:    make([]DensityMatrices, 0, n+1),
	}

	for i := 0; i <= n; i++ {
		dm := state.DensityMatrices()
		energy, err := eris.Measure(EnergyOp{}, dm)
		if err != nil {
			return nil, errors.Wrap(err, "")
		}

		s.Times = append(s.Times, float64(i)*p.Dt)
		s.Norms = append(s.Norms, state.Norm())
		s.Energy = append(s.Energy, energy)
		s.DMs = append(s.DMs, dm)

		if mode == ModePlot {
			no, err := eris.Measure(occ, dm)
			if err != nil {
				return nil, errors.Wrap(err, "")
			}
			sz, err := eris.Measure(spin, dm)
			if err != nil {
				return nil, errors.Wrap(err, "")
			}
			j, err := eris.Measure(cur, dm)
			if err != nil {
				return nil, errors.Wrap(err, "")
			}
			s.Occupancy = append(s.Occupancy, no)
			s.Spin = append(s.Spin, sz)
			s.Current = append(s.Current, j)
		}

		if err := Step(state, eris, p.Dt, p.Order); err != nil {
			return nil, errors.Wrap(err, "")
		}
	}
	return s, nil
}
