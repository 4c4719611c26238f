package dataset

import (
	"context"
	"fmt"
	"math"
	"math/rand"

	"necana/internal/event"
)

// GenSpec configures the synthetic DIS sample generator. The sample
// stands in for upstream reconstruction output: per event one electron
// and one truth kinematics record plus a Breit-frame particle list.
type GenSpec struct {
	Events    int
	Seed      int64
	Electron  string // electron kinematics collection name
	Truth     string // truth kinematics collection name
	Particles string // particle collection name

	// DropRate is the fraction of events written without the electron
	// kinematics record, so the admission chain has something to cut.
	DropRate float64
}

// Generate writes a synthetic sample to path in overwrite mode and
// returns the number of events written.
func Generate(ctx context.Context, path string, spec GenSpec) (int64, error) {
	if spec.Events < 1 {
		return 0, fmt.Errorf("dataset: event count %d < 1", spec.Events)
	}
	w, err := Create(path)
	if err != nil {
		return 0, err
	}
	defer w.Close()

	rng := rand.New(rand.NewSource(spec.Seed))
	var written int64
	for i := 0; i < spec.Events; i++ {
		ev := synthesize(rng, spec)
		if _, err := w.Append(ctx, ev); err != nil {
			return written, err
		}
		written++
	}
	return written, nil
}

func synthesize(rng *rand.Rand, spec GenSpec) *event.Event {
	ev := event.New(0)

	// Q2 falls steeply; log-uniform over [1, 500) is close enough for
	// a diagnostic sample. x log-uniform over (1e-4, 1), with a small
	// admixture of exactly-zero x to exercise the unclamped log path.
	q2 := math.Exp(rng.Float64() * math.Log(500))
	x := math.Pow(10, -4*rng.Float64())
	if rng.Float64() < 0.01 {
		x = 0
	}

	if rng.Float64() >= spec.DropRate {
		ev.Kinematics[spec.Electron] = []event.Kinematics{{Q2: q2, X: x}}
	}
	// Truth smeared around the reconstructed values.
	ev.Kinematics[spec.Truth] = []event.Kinematics{{
		Q2: q2 * (1 + 0.05*rng.NormFloat64()),
		X:  x * (1 + 0.05*rng.NormFloat64()),
	}}

	n := rng.Intn(9) // 0..8 particles; empty lists are legitimate
	parts := make([]event.Particle, n)
	for i := range parts {
		e := 1 + rng.Float64()*60
		cosTh := 2*rng.Float64() - 1
		sinTh := math.Sqrt(1 - cosTh*cosTh)
		phi := 2 * math.Pi * rng.Float64()
		// Massless kinematics: |p| = E.
		parts[i] = event.Particle{
			Energy: e,
			P: event.Vec3{
				X: e * sinTh * math.Cos(phi),
				Y: e * sinTh * math.Sin(phi),
				Z: e * cosTh,
			},
		}
	}
	ev.Particles[spec.Particles] = parts
	return ev
}
