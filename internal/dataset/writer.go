package dataset

import (
	"context"
	"database/sql"
	"fmt"
	"os"

	"necana/internal/event"
)

// Writer creates and fills an event store. Used by the sample
// generator and by test fixtures; the analysis itself never writes to
// the input side.
type Writer struct {
	db   *sql.DB
	path string
}

// Create opens path in overwrite mode: any existing store is replaced.
func Create(path string) (*Writer, error) {
	if err := os.Remove(path); err != nil && !os.IsNotExist(err) {
		return nil, fmt.Errorf("dataset %q: %w", path, err)
	}
	db, err := sql.Open("sqlite", path)
	if err != nil {
		return nil, fmt.Errorf("dataset %q: %w", path, err)
	}
	w := &Writer{db: db, path: path}
	if err := w.initialize(); err != nil {
		db.Close()
		return nil, err
	}
	return w, nil
}

// initialize creates the store schema.
func (w *Writer) initialize() error {
	schema := `
	CREATE TABLE IF NOT EXISTS events (
		id INTEGER PRIMARY KEY AUTOINCREMENT
	);
	CREATE TABLE IF NOT EXISTS kinematics (
		event_id INTEGER NOT NULL,
		collection TEXT NOT NULL,
		q2 REAL NOT NULL,
		x REAL NOT NULL
	);
	CREATE INDEX IF NOT EXISTS idx_kinematics_event ON kinematics(event_id);
	CREATE TABLE IF NOT EXISTS particles (
		event_id INTEGER NOT NULL,
		collection TEXT NOT NULL,
		idx INTEGER NOT NULL,
		energy REAL NOT NULL,
		px REAL NOT NULL,
		py REAL NOT NULL,
		pz REAL NOT NULL
	);
	CREATE INDEX IF NOT EXISTS idx_particles_event ON particles(event_id);
	`
	if _, err := w.db.Exec(schema); err != nil {
		return fmt.Errorf("dataset %q: %w", w.path, err)
	}
	return nil
}

// Append stores one event and returns its assigned id.
func (w *Writer) Append(ctx context.Context, ev *event.Event) (int64, error) {
	tx, err := w.db.BeginTx(ctx, nil)
	if err != nil {
		return 0, fmt.Errorf("dataset %q: %w", w.path, err)
	}
	defer tx.Rollback()

	res, err := tx.ExecContext(ctx, `INSERT INTO events DEFAULT VALUES`)
	if err != nil {
		return 0, fmt.Errorf("dataset %q: %w", w.path, err)
	}
	id, err := res.LastInsertId()
	if err != nil {
		return 0, fmt.Errorf("dataset %q: %w", w.path, err)
	}

	for coll, recs := range ev.Kinematics {
		for _, k := range recs {
			_, err := tx.ExecContext(ctx,
				`INSERT INTO kinematics (event_id, collection, q2, x) VALUES (?, ?, ?, ?)`,
				id, coll, k.Q2, k.X)
			if err != nil {
				return 0, fmt.Errorf("dataset %q: %w", w.path, err)
			}
		}
	}
	for coll, parts := range ev.Particles {
		for i, p := range parts {
			_, err := tx.ExecContext(ctx,
				`INSERT INTO particles (event_id, collection, idx, energy, px, py, pz)
				 VALUES (?, ?, ?, ?, ?, ?, ?)`,
				id, coll, i, p.Energy, p.P.X, p.P.Y, p.P.Z)
			if err != nil {
				return 0, fmt.Errorf("dataset %q: %w", w.path, err)
			}
		}
	}

	if err := tx.Commit(); err != nil {
		return 0, fmt.Errorf("dataset %q: %w", w.path, err)
	}
	return id, nil
}

// Close releases the database handle.
func (w *Writer) Close() error {
	return w.db.Close()
}
