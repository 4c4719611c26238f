// Package dataset implements the row-oriented event store backing a
// run: a SQLite file with one row per kinematic record and per
// particle, keyed by event id. The reader is read-only and supports
// partitioned scans by id range so workers can share one file without
// coordination.
package dataset

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"os"

	_ "modernc.org/sqlite"

	"necana/internal/event"
)

// ErrNoEvents is returned when the store opens cleanly but holds no
// events. Runs abort on it before producing any output.
var ErrNoEvents = errors.New("dataset: no events found")

// Reader is a read-only handle on an event store.
type Reader struct {
	db   *sql.DB
	path string
}

// Open opens an existing event store. A missing file is an error here,
// not an implicit empty store.
func Open(path string) (*Reader, error) {
	if _, err := os.Stat(path); err != nil {
		return nil, fmt.Errorf("dataset %q: %w", path, err)
	}
	db, err := sql.Open("sqlite", path+"?mode=ro")
	if err != nil {
		return nil, fmt.Errorf("dataset %q: %w", path, err)
	}
	return &Reader{db: db, path: path}, nil
}

// Count returns the number of events in the store.
func (r *Reader) Count(ctx context.Context) (int64, error) {
	var n int64
	err := r.db.QueryRowContext(ctx, `SELECT COUNT(*) FROM events`).Scan(&n)
	if err != nil {
		return 0, fmt.Errorf("dataset %q: %w", r.path, err)
	}
	return n, nil
}

// IDRange returns the smallest and largest event id. ErrNoEvents when
// the store is empty.
func (r *Reader) IDRange(ctx context.Context) (lo, hi int64, err error) {
	var nlo, nhi sql.NullInt64
	err = r.db.QueryRowContext(ctx, `SELECT MIN(id), MAX(id) FROM events`).Scan(&nlo, &nhi)
	if err != nil {
		return 0, 0, fmt.Errorf("dataset %q: %w", r.path, err)
	}
	if !nlo.Valid {
		return 0, 0, ErrNoEvents
	}
	return nlo.Int64, nhi.Int64, nil
}

// Scan loads every event with id in [lo, hi] and hands them to fn in
// id order. The partition is materialized before fn runs; partitions
// are sized by the worker count, not by memory pressure, which is fine
// at the sample sizes this tool targets.
func (r *Reader) Scan(ctx context.Context, lo, hi int64, fn func(*event.Event) error) error {
	events := make(map[int64]*event.Event)
	var ids []int64

	rows, err := r.db.QueryContext(ctx,
		`SELECT id FROM events WHERE id BETWEEN ? AND ? ORDER BY id`, lo, hi)
	if err != nil {
		return fmt.Errorf("dataset %q: %w", r.path, err)
	}
	for rows.Next() {
		var id int64
		if err := rows.Scan(&id); err != nil {
			rows.Close()
			return fmt.Errorf("dataset %q: %w", r.path, err)
		}
		events[id] = event.New(id)
		ids = append(ids, id)
	}
	if err := rows.Err(); err != nil {
		rows.Close()
		return fmt.Errorf("dataset %q: %w", r.path, err)
	}
	rows.Close()

	if err := r.loadKinematics(ctx, lo, hi, events); err != nil {
		return err
	}
	if err := r.loadParticles(ctx, lo, hi, events); err != nil {
		return err
	}

	for _, id := range ids {
		if err := fn(events[id]); err != nil {
			return err
		}
	}
	return nil
}

func (r *Reader) loadKinematics(ctx context.Context, lo, hi int64, events map[int64]*event.Event) error {
	rows, err := r.db.QueryContext(ctx,
		`SELECT event_id, collection, q2, x
		 FROM kinematics WHERE event_id BETWEEN ? AND ?
		 ORDER BY event_id`, lo, hi)
	if err != nil {
		return fmt.Errorf("dataset %q: %w", r.path, err)
	}
	defer rows.Close()
	for rows.Next() {
		var (
			id   int64
			coll string
			k    event.Kinematics
		)
		if err := rows.Scan(&id, &coll, &k.Q2, &k.X); err != nil {
			return fmt.Errorf("dataset %q: %w", r.path, err)
		}
		if ev, ok := events[id]; ok {
			ev.Kinematics[coll] = append(ev.Kinematics[coll], k)
		}
	}
	if err := rows.Err(); err != nil {
		return fmt.Errorf("dataset %q: %w", r.path, err)
	}
	return nil
}

func (r *Reader) loadParticles(ctx context.Context, lo, hi int64, events map[int64]*event.Event) error {
	rows, err := r.db.QueryContext(ctx,
		`SELECT event_id, collection, energy, px, py, pz
		 FROM particles WHERE event_id BETWEEN ? AND ?
		 ORDER BY event_id, idx`, lo, hi)
	if err != nil {
		return fmt.Errorf("dataset %q: %w", r.path, err)
	}
	defer rows.Close()
	for rows.Next() {
		var (
			id   int64
			coll string
			p    event.Particle
		)
		if err := rows.Scan(&id, &coll, &p.Energy, &p.P.X, &p.P.Y, &p.P.Z); err != nil {
			return fmt.Errorf("dataset %q: %w", r.path, err)
		}
		if ev, ok := events[id]; ok {
			ev.Particles[coll] = append(ev.Particles[coll], p)
		}
	}
	if err := rows.Err(); err != nil {
		return fmt.Errorf("dataset %q: %w", r.path, err)
	}
	return nil
}

// Close releases the database handle.
func (r *Reader) Close() error {
	return r.db.Close()
}
