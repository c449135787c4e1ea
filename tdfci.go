// Package tdfci builds single-impurity Anderson models for time-dependent
// full configuration interaction transport runs.
//
// A model is a chain of noninteracting lead sites with a Hubbard impurity
// (the dot) in between. Dot returns its one- and two-electron integrals in
// the site basis, with one spatial orbital per site; DotSpinBlind returns
// the same model in the interleaved spin-orbital encoding where site s
// occupies orbitals 2s and 2s+1 and every electron lives in a single spin
// channel.
package tdfci

import (
	"os"

	"github.com/pkg/errors"
	"gonum.org/v1/gonum/mat"
	"gopkg.in/yaml.v3"

	"github.com/cpbunker/tdfci/tensor"
)

// Params are the physical couplings of the model, in units of the lead
// hopping.
type Params struct {
	// LeadHopping is the hopping amplitude within each lead.
	LeadHopping float64 `yaml:"lead_hopping"`
	// ImpurityHopping couples the dot to its neighboring lead sites.
	ImpurityHopping float64 `yaml:"impurity_hopping"`
	// Bias is the voltage difference between the leads during
	// equilibration. A negative bias drives current left to right.
	Bias float64 `yaml:"bias"`
	// Mu is the chemical potential on the lead sites.
	Mu float64 `yaml:"mu"`
	// Gate is the on-site energy of the dot.
	Gate float64 `yaml:"gate"`
	// HubbardU is the on-dot Coulomb repulsion.
	HubbardU float64 `yaml:"hubbard_u"`
}

// DefaultParams are the couplings of the standard transport benchmark.
func DefaultParams() Params {
	return Params{
		LeadHopping:     1.0,
		ImpurityHopping: 0.4,
		Bias:            -0.005,
		Mu:              0.0,
		Gate:            -0.5,
		HubbardU:        1.0,
	}
}

// LoadParams reads params from a YAML file, with unset fields taking the
// defaults.
func LoadParams(path string) (Params, error) {
	p := DefaultParams()
	b, err := os.ReadFile(path)
	if err != nil {
		return Params{}, errors.Wrap(err, "")
	}
	if err := yaml.Unmarshal(b, &p); err != nil {
		return Params{}, errors.Wrap(err, "")
	}
	return p, nil
}

// Dot builds the site-basis integrals of a chain with nLeads[0] left lead
// sites, the dot, and nLeads[1] right lead sites. It returns the one-body
// matrix, the two-body tensor in chemist convention, and the dot's site
// index.
func Dot(nLeads [2]int, p Params) (*mat.Dense, *tensor.D4, int) {
	nl, nr := nLeads[0], nLeads[1]
	norb := nl + 1 + nr
	idot := nl

	h1e := mat.NewDense(norb, norb, nil)
	for i := 0; i < norb-1; i++ {
		t := p.LeadHopping
		if i == idot-1 || i == idot {
			t = p.ImpurityHopping
		}
		h1e.Set(i, i+1, -t)
		h1e.Set(i+1, i, -t)
	}
	for i := 0; i < norb; i++ {
		if i == idot {
			h1e.Set(i, i, h1e.At(i, i)+p.Gate)
		} else {
			h1e.Set(i, i, h1e.At(i, i)-p.Mu)
		}
	}

	g2e := tensor.NewD4(norb)
	g2e.Set(idot, idot, idot, idot, p.HubbardU)
	return h1e, g2e, idot
}

// StartBias tilts the lead on-site energies by the bias: +bias/2 on the
// sites left of the dot and -bias/2 on the sites to its right. The dot
// itself is untouched. It modifies h1e in place.
func StartBias(h1e *mat.Dense, bias float64, idot int) {
	n, _ := h1e.Dims()
	for i := 0; i < n; i++ {
		switch {
		case i < idot:
			h1e.Set(i, i, h1e.At(i, i)+bias/2)
		case i > idot:
			h1e.Set(i, i, h1e.At(i, i)-bias/2)
		}
	}
}

// DotSpinBlind builds the same chain in the interleaved spin-orbital
// encoding. The returned one-body matrix has 2*(nl+1+nr) orbitals, with
// site s on orbitals 2s and 2s+1; the Hubbard term couples the dot's two
// spin orbitals in both index orders so the spin-blind contraction yields
// U times the up and down occupations. The dot index is the site index,
// not the orbital index.
func DotSpinBlind(nLeads [2]int, p Params) (*mat.Dense, *tensor.D4, int) {
	h1s, _, idot := Dot(nLeads, p)
	nsite, _ := h1s.Dims()
	norb := 2 * nsite

	h1e := mat.NewDense(norb, norb, nil)
	for i := 0; i < nsite; i++ {
		for j := 0; j < nsite; j++ {
			v := h1s.At(i, j)
			if v == 0 {
				continue
			}
			h1e.Set(2*i, 2*j, v)
			h1e.Set(2*i+1, 2*j+1, v)
		}
	}

	g2e := tensor.NewD4(norb)
	du, dd := 2*idot, 2*idot+1
	g2e.Set(du, du, dd, dd, p.HubbardU)
	g2e.Set(dd, dd, du, du, p.HubbardU)
	return h1e, g2e, idot
}
