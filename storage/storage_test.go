package storage

import (
	"flag"
	"log"
	"path/filepath"
	"testing"
	"time"
)

func TestSaveLoad(t *testing.T) {
	t.Parallel()
	store, err := Open(filepath.Join(t.TempDir(), "runs.db"))
	if err != nil {
		t.Fatalf("%+v", err)
	}
	defer store.Close()

	samples := []Sample{
		{Step: 0, Time: 0, Energy: -1.5, Occupancy: 1, Spin: 0, Current: 0, Norm: 1},
		{Step: 1, Time: 0.01, Energy: -1.5, Occupancy: 0.99, Spin: 0.001, Current: 0.02, Norm: 1},
		{Step: 2, Time: 0.02, Energy: -1.5, Occupancy: 0.97, Spin: 0.002, Current: 0.05, Norm: 1},
	}
	meta := RunMeta{
		Name:    "siam-plot",
		Created: time.Date(2026, 8, 1, 12, 0, 0, 0, time.UTC),
		Mode:    "plot",
		TFinal:  0.02,
		Dt:      0.01,
		Order:   4,
		Params:  "hubbard_u: 1.0\n",
	}

	id, err := store.SaveRun(meta, samples)
	if err != nil {
		t.Fatalf("%+v", err)
	}

	got, err := store.LoadRun(id)
	if err != nil {
		t.Fatalf("%+v", err)
	}
	if got.Name != meta.Name || got.Mode != meta.Mode || got.Order != meta.Order {
		t.Fatalf("%+v", got)
	}
	if got.TFinal != meta.TFinal || got.Dt != meta.Dt || got.Params != meta.Params {
		t.Fatalf("%+v", got)
	}

	loaded, err := store.LoadSamples(id)
	if err != nil {
		t.Fatalf("%+v", err)
	}
	if len(loaded) != len(samples) {
		t.Fatalf("%d %d", len(loaded), len(samples))
	}
	for i, s := range samples {
		if loaded[i] != s {
			t.Fatalf("%d %+v %+v", i, loaded[i], s)
		}
	}
}

func TestSeparateRuns(t *testing.T) {
	t.Parallel()
	store, err := Open(filepath.Join(t.TempDir(), "runs.db"))
	if err != nil {
		t.Fatalf("%+v", err)
	}
	defer store.Close()

	id1, err := store.SaveRun(RunMeta{Name: "a", Mode: "std", Order: 1}, []Sample{{Step: 0, Norm: 1}})
	if err != nil {
		t.Fatalf("%+v", err)
	}
	id2, err := store.SaveRun(RunMeta{Name: "b", Mode: "std", Order: 4}, []Sample{{Step: 0, Norm: 1}, {Step: 1, Norm: 1}})
	if err != nil {
		t.Fatalf("%+v", err)
	}
	if id1 == id2 {
		t.Fatalf("%d %d", id1, id2)
	}

	s2, err := store.LoadSamples(id2)
	if err != nil {
		t.Fatalf("%+v", err)
	}
	if len(s2) != 2 {
		t.Fatalf("%d", len(s2))
	}
}

func TestMain(m *testing.M) {
	flag.Parse()
	log.SetFlags(log.Lmicroseconds | log.Llongfile | log.LstdFlags)

	m.Run()
}
