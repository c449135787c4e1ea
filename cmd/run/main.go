// Command run equilibrates a single-impurity Anderson chain under a bias,
// lifts the bias, and propagates the wavefunction in time, recording the
// transport observables.
package main

import (
	"fmt"
	"log"
	"math"
	"os"
	"path/filepath"
	"time"

	"github.com/guptarohit/asciigraph"
	"github.com/spf13/cobra"
	"gopkg.in/yaml.v3"

	"github.com/cpbunker/tdfci"
	"github.com/cpbunker/tdfci/fci"
	"github.com/cpbunker/tdfci/scf"
	"github.com/cpbunker/tdfci/storage"
	"github.com/cpbunker/tdfci/td"
)

var flags = struct {
	dir    string
	params string
	nLeft  int
	nRight int
	nElec  int
	tFinal float64
	dt     float64
	order  int
}{}

func main() {
	log.SetFlags(log.Lmicroseconds | log.Llongfile | log.LstdFlags)

	root := &cobra.Command{
		Use:           "tdfci",
		Short:         "time-dependent FCI transport through an Anderson impurity",
		SilenceUsage:  true,
		SilenceErrors: true,
	}
	pf := root.PersistentFlags()
	pf.StringVarP(&flags.dir, "dir", "d", filepath.Join("runs", "tdfci"), "run directory")
	pf.StringVar(&flags.params, "params", "", "YAML file of model couplings")
	pf.IntVar(&flags.nLeft, "nl", 2, "left lead sites")
	pf.IntVar(&flags.nRight, "nr", 2, "right lead sites")
	pf.IntVar(&flags.nElec, "ne", 0, "electron pairs, 0 for half filling")
	pf.Float64Var(&flags.tFinal, "tf", 5, "propagation time")
	pf.Float64Var(&flags.dt, "dt", 0.01, "time step")
	pf.IntVar(&flags.order, "rk", 4, "Runge-Kutta order")

	runCmd := &cobra.Command{
		Use:   "run",
		Short: "propagate and store energy and density matrices",
		RunE: func(cmd *cobra.Command, args []string) error {
			return transport(td.ModeStd)
		},
	}
	plotCmd := &cobra.Command{
		Use:   "plot",
		Short: "propagate and plot occupancy, spin and current at the dot",
		RunE: func(cmd *cobra.Command, args []string) error {
			return transport(td.ModePlot)
		},
	}
	root.AddCommand(runCmd, plotCmd)

	if err := root.Execute(); err != nil {
		log.Fatalf("%+v", err)
	}
}

func transport(mode string) error {
	params := tdfci.DefaultParams()
	if flags.params != "" {
		var err error
		if params, err = tdfci.LoadParams(flags.params); err != nil {
			return err
		}
	}
	series, err := simulate(mode, params, [2]int{flags.nLeft, flags.nRight}, flags.nElec,
		flags.tFinal, flags.dt, flags.order)
	if err != nil {
		return err
	}

	// Report currents in units of the bias.
	if mode == td.ModePlot {
		for i := range series.Current {
			series.Current[i] *= math.Pi / math.Abs(params.Bias)
		}
	}

	if err := save(mode, params, series); err != nil {
		return err
	}

	if mode == td.ModePlot {
		fmt.Println("dot occupancy")
		fmt.Println(asciigraph.Plot(series.Occupancy, asciigraph.Height(10)))
		fmt.Println("current / |Vb|")
		fmt.Println(asciigraph.Plot(series.Current, asciigraph.Height(10)))
	}
	return nil
}

// simulate equilibrates the unbiased chain and then switches the bias on
// for the dynamics: UHF and the FCI ground state are solved with no bias,
// and the state is propagated under the biased Hamiltonian so the bias is
// what drives the transient current. nElec of 0 means half filling.
func simulate(mode string, params tdfci.Params, nLeads [2]int, nElec int, tFinal, dt float64, order int) (*td.Series, error) {
	norb := nLeads[0] + 1 + nLeads[1]
	ne := nElec
	if ne == 0 {
		ne = norb / 2
	}
	nelec := [2]int{ne, ne}

	// Equilibrium: ground state of the unbiased chain.
	h1e, g2e, idot := tdfci.Dot(nLeads, params)
	res, err := scf.UHF(h1e, g2e, nelec)
	if err != nil {
		return nil, err
	}
	log.Printf("UHF energy %f, %d iterations", res.Energy, res.Iterations)

	sp, err := fci.NewSpace(norb, nelec)
	if err != nil {
		return nil, err
	}
	eq, err := td.NewERIs(h1e, g2e, res.MOa, res.MOb)
	if err != nil {
		return nil, err
	}
	e0, ground, err := fci.GroundState(eq.H1a, eq.H1b, eq.G2aa, eq.G2ab, eq.G2bb, sp)
	if err != nil {
		return nil, err
	}
	log.Printf("FCI ground energy %f", e0)

	// Dynamics: the bias switches on and drives the current.
	tdfci.StartBias(h1e, params.Bias, idot)
	dyn, err := td.NewERIs(h1e, g2e, res.MOa, res.MOb)
	if err != nil {
		return nil, err
	}
	state, err := td.NewState(ground, sp)
	if err != nil {
		return nil, err
	}
	return td.Run(mode, dyn, state, td.RunParams{
		TFinal:  tFinal,
		Dt:      dt,
		Order:   order,
		Site:    idot,
		Hopping: params.ImpurityHopping,
	})
}

func save(mode string, params tdfci.Params, series *td.Series) error {
	pb, err := yaml.Marshal(params)
	if err != nil {
		return err
	}
	if err := os.MkdirAll(flags.dir, 0755); err != nil {
		return err
	}
	store, err := storage.Open(filepath.Join(flags.dir, "runs.db"))
	if err != nil {
		return err
	}
	defer store.Close()

	samples := make([]storage.Sample, len(series.Times))
	for i := range series.Times {
		samples[i] = storage.Sample{
			Step:   i,
			Time:   series.Times[i],
			Energy: series.Energy[i],
			Norm:   series.Norms[i],
		}
		if mode == td.ModePlot {
			samples[i].Occupancy = series.Occupancy[i]
			samples[i].Spin = series.Spin[i]
			samples[i].Current = series.Current[i]
		}
	}
	id, err := store.SaveRun(storage.RunMeta{
		Name:    fmt.Sprintf("siam-%s", mode),
		Created: time.Now(),
		Mode:    mode,
		TFinal:  flags.tFinal,
		Dt:      flags.dt,
		Order:   flags.order,
		Params:  string(pb),
	}, samples)
	if err != nil {
		return err
	}
	log.Printf("saved run %d, %d samples", id, len(samples))
	return nil
}
