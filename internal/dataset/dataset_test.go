package dataset

import (
	"context"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"necana/internal/event"
)

func fixtureEvent(q2, x float64) *event.Event {
	ev := event.New(0)
	ev.Kinematics["elec"] = []event.Kinematics{{Q2: q2, X: x}}
	ev.Particles["parts"] = []event.Particle{
		{Energy: 10, P: event.Vec3{X: 0, Y: 0, Z: 10}},
		{Energy: 25, P: event.Vec3{X: 25, Y: 0, Z: 0}},
	}
	return ev
}

func TestWriteReadRoundtrip(t *testing.T) {
	ctx := context.Background()
	path := filepath.Join(t.TempDir(), "events.db")

	w, err := Create(path)
	require.NoError(t, err)
	id, err := w.Append(ctx, fixtureEvent(50, 0.37))
	require.NoError(t, err)
	assert.Equal(t, int64(1), id)
	require.NoError(t, w.Close())

	r, err := Open(path)
	require.NoError(t, err)
	defer r.Close()

	n, err := r.Count(ctx)
	require.NoError(t, err)
	assert.Equal(t, int64(1), n)

	var got *event.Event
	require.NoError(t, r.Scan(ctx, 1, 1, func(ev *event.Event) error {
		got = ev
		return nil
	}))
	require.NotNil(t, got)
	assert.Equal(t, int64(1), got.ID)
	require.Len(t, got.Kinematics["elec"], 1)
	assert.Equal(t, 50.0, got.Kinematics["elec"][0].Q2)
	assert.Equal(t, 0.37, got.Kinematics["elec"][0].X)
	require.Len(t, got.Particles["parts"], 2)
	// Particle order survives the roundtrip.
	assert.Equal(t, 10.0, got.Particles["parts"][0].Energy)
	assert.Equal(t, 25.0, got.Particles["parts"][1].Energy)
}

func TestOpen_MissingFile(t *testing.T) {
	_, err := Open(filepath.Join(t.TempDir(), "nope.db"))
	assert.Error(t, err)
}

func TestEmptyStore(t *testing.T) {
	ctx := context.Background()
	path := filepath.Join(t.TempDir(), "empty.db")

	w, err := Create(path)
	require.NoError(t, err)
	require.NoError(t, w.Close())

	r, err := Open(path)
	require.NoError(t, err)
	defer r.Close()

	n, err := r.Count(ctx)
	require.NoError(t, err)
	assert.Equal(t, int64(0), n)

	_, _, err = r.IDRange(ctx)
	assert.ErrorIs(t, err, ErrNoEvents)
}

func TestScan_HonorsIDRange(t *testing.T) {
	ctx := context.Background()
	path := filepath.Join(t.TempDir(), "events.db")

	w, err := Create(path)
	require.NoError(t, err)
	for i := 0; i < 5; i++ {
		_, err := w.Append(ctx, fixtureEvent(float64(10*(i+1)), 0.1))
		require.NoError(t, err)
	}
	require.NoError(t, w.Close())

	r, err := Open(path)
	require.NoError(t, err)
	defer r.Close()

	lo, hi, err := r.IDRange(ctx)
	require.NoError(t, err)
	assert.Equal(t, int64(1), lo)
	assert.Equal(t, int64(5), hi)

	var seen []int64
	require.NoError(t, r.Scan(ctx, 2, 4, func(ev *event.Event) error {
		seen = append(seen, ev.ID)
		return nil
	}))
	assert.Equal(t, []int64{2, 3, 4}, seen, "scan visits the partition in id order")
}

func TestCreate_Overwrites(t *testing.T) {
	ctx := context.Background()
	path := filepath.Join(t.TempDir(), "events.db")

	w, err := Create(path)
	require.NoError(t, err)
	_, err = w.Append(ctx, fixtureEvent(20, 0.2))
	require.NoError(t, err)
	require.NoError(t, w.Close())

	w, err = Create(path)
	require.NoError(t, err)
	require.NoError(t, w.Close())

	r, err := Open(path)
	require.NoError(t, err)
	defer r.Close()
	n, err := r.Count(ctx)
	require.NoError(t, err)
	assert.Equal(t, int64(0), n, "create replaces any existing store")
}

func TestGenerate(t *testing.T) {
	ctx := context.Background()
	spec := GenSpec{
		Events:    40,
		Seed:      7,
		Electron:  "elec",
		Truth:     "truth",
		Particles: "parts",
		DropRate:  0.25,
	}

	path := filepath.Join(t.TempDir(), "sample.db")
	n, err := Generate(ctx, path, spec)
	require.NoError(t, err)
	assert.Equal(t, int64(40), n)

	r, err := Open(path)
	require.NoError(t, err)
	defer r.Close()

	var withElectron, total int
	require.NoError(t, r.Scan(ctx, 1, 40, func(ev *event.Event) error {
		total++
		if ev.HasCollection("elec") {
			withElectron++
		}
		require.True(t, ev.HasCollection("truth"), "truth record is always present")
		return nil
	}))
	assert.Equal(t, 40, total)
	assert.Less(t, withElectron, total, "drop rate removes some electron records")
	assert.Greater(t, withElectron, 0)
}

func TestGenerate_Deterministic(t *testing.T) {
	ctx := context.Background()
	spec := GenSpec{
		Events: 10, Seed: 42,
		Electron: "e", Truth: "t", Particles: "p",
	}

	read := func(path string) []event.Kinematics {
		_, err := Generate(ctx, path, spec)
		require.NoError(t, err)
		r, err := Open(path)
		require.NoError(t, err)
		defer r.Close()
		var out []event.Kinematics
		require.NoError(t, r.Scan(ctx, 1, 10, func(ev *event.Event) error {
			out = append(out, ev.Kinematics["e"]...)
			return nil
		}))
		return out
	}

	dir := t.TempDir()
	a := read(filepath.Join(dir, "a.db"))
	b := read(filepath.Join(dir, "b.db"))
	assert.Equal(t, a, b, "same seed reproduces the same sample")
}

func TestGenerate_RejectsBadCount(t *testing.T) {
	_, err := Generate(context.Background(), filepath.Join(t.TempDir(), "x.db"), GenSpec{})
	assert.Error(t, err)
}
