// Package storage persists propagation runs and their time series in a
// SQLite database.
package storage

import (
	"context"
	"database/sql"
	"time"

	_ "github.com/mattn/go-sqlite3"
	"github.com/pkg/errors"
)

const opTimeout = 30 * time.Second

// Store is a handle on a run database.
type Store struct {
	db *sql.DB
}

// Sample is one recorded point of a run's time series.
type Sample struct {
	Step      int
	Time      float64
	Energy    float64
	Occupancy float64
	Spin      float64
	Current   float64
	Norm      float64
}

// RunMeta describes a stored run.
type RunMeta struct {
	ID      int64
	Name    string
	Created time.Time
	Mode    string
	TFinal  float64
	Dt      float64
	Order   int
	Params  string
}

// Open opens or creates the database at path and ensures the schema.
func Open(path string) (*Store, error) {
	db, err := sql.Open("sqlite3", path)
	if err != nil {
		return nil, errors.Wrap(err, "")
	}
	ctx, cancel := context.WithTimeout(context.Background(), opTimeout)
	defer cancel()
	const schema = `
CREATE TABLE IF NOT EXISTS runs (
	id INTEGER PRIMARY KEY AUTOINCREMENT,
	name TEXT NOT NULL,
	created TIMESTAMP NOT NULL,
	mode TEXT NOT NULL,
	tf REAL NOT NULL,
	dt REAL NOT NULL,
	rk INTEGER NOT NULL,
	params TEXT NOT NULL);
CREATE TABLE IF NOT EXISTS samples (
	run INTEGER NOT NULL REFERENCES runs(id),
	step INTEGER NOT NULL,
	t REAL NOT NULL,
	energy REAL NOT NULL,
	occupancy REAL NOT NULL,
	spin REAL NOT NULL,
	current REAL NOT NULL,
	norm REAL NOT NULL,
	PRIMARY KEY (run, step));`
	if _, err := db.ExecContext(ctx, schema); err != nil {
		db.Close()
		return nil, errors.Wrap(err, "")
	}
	return &Store{db: db}, nil
}

// Close closes the database.
func (s *Store) Close() error {
	return errors.Wrap(s.db.Close(), "")
}

// SaveRun stores a run's metadata and samples in one transaction and
// returns the new run ID. Params is an opaque configuration string, for
// example marshaled YAML.
func (s *Store) SaveRun(meta RunMeta, samples []Sample) (int64, error) {
	ctx, cancel := context.WithTimeout(context.Background(), opTimeout)
	defer cancel()
	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return 0, errors.Wrap(err, "")
	}
	defer tx.Rollback()

	created := meta.Created
	if created.IsZero() {
		created = time.Now()
	}
	res, err := tx.ExecContext(ctx,
		`INSERT INTO runs (name, created, mode, tf, dt, rk, params) VALUES (?, ?, ?, ?, ?, ?, ?)`,
		meta.Name, created, meta.Mode, meta.TFinal, meta.Dt, meta.Order, meta.Params)
	if err != nil {
		return 0, errors.Wrap(err, "")
	}
	id, err := res.LastInsertId()
	if err != nil {
		return 0, errors.Wrap(err, "")
	}

	stmt, err := tx.PrepareContext(ctx,
		`INSERT INTO samples (run, step, t, energy, occupancy, spin, current, norm) VALUES (?, ?, ?, ?, ?, ?, ?, ?)`)
	if err != nil {
		return 0, errors.Wrap(err, "")
	}
	defer stmt.Close()
	for _, sm := range samples {
		if _, err := stmt.ExecContext(ctx, id, sm.Step, sm.Time, sm.Energy, sm.Occupancy, sm.Spin, sm.Current, sm.Norm); err != nil {
			return 0, errors.Wrap(err, "")
		}
	}
	if err := tx.Commit(); err != nil {
		return 0, errors.Wrap(err, "")
	}
	return id, nil
}

// LoadRun reads a run's metadata.
func (s *Store) LoadRun(id int64) (RunMeta, error) {
	ctx, cancel := context.WithTimeout(context.Background(), opTimeout)
	defer cancel()
	var m RunMeta
	err := s.db.QueryRowContext(ctx,
		`SELECT id, name, created, mode, tf, dt, rk, params FROM runs WHERE id = ?`, id).
		Scan(&m.ID, &m.Name, &m.Created, &m.Mode, &m.TFinal, &m.Dt, &m.Order, &m.Params)
	if err != nil {
		return RunMeta{}, errors.Wrap(err, "")
	}
	return m, nil
}

// LoadSamples reads a run's time series ordered by step.
func (s *Store) LoadSamples(id int64) ([]Sample, error) {
	ctx, cancel := context.WithTimeout(context.Background(), opTimeout)
	defer cancel()
	rows, err := s.db.QueryContext(ctx,
		`SELECT step, t, energy, occupancy, spin, current, norm FROM samples WHERE run = ? ORDER BY step`, id)
	if err != nil {
		return nil, errors.Wrap(err, "")
	}
	defer rows.Close()
	var out []Sample
	for rows.Next() {
		var sm Sample
		if err := rows.Scan(&sm.Step, &sm.Time, &sm.Energy, &sm.Occupancy, &sm.Spin, &sm.Current, &sm.Norm); err != nil {
			return nil, errors.Wrap(err, "")
		}
		out = append(out, sm)
	}
	if err := rows.Err(); err != nil {
		return nil, errors.Wrap(err, "")
	}
	return out, nil
}
