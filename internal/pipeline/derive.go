package pipeline

import (
	"fmt"
	"math"

	"necana/internal/event"
)

// KinematicField defines a scalar from the named field of the first
// record in a kinematic collection. The collection is defined to hold
// exactly one authoritative record per passing event; the admission
// chain guards presence, so an empty collection here is a
// configuration error.
func KinematicField(name, coll, field string) Step {
	return Step{
		Name:   name,
		Inputs: []string{coll},
		Derive: func(ev *event.Event) (event.Quantity, error) {
			recs := ev.Kinematics[coll]
			if len(recs) == 0 {
				return event.Quantity{}, fmt.Errorf("kinematic collection %q empty: admission chain must gate on it", coll)
			}
			v, ok := recs[0].Field(field)
			if !ok {
				return event.Quantity{}, fmt.Errorf("kinematic collection %q has no field %q", coll, field)
			}
			return event.ScalarQuantity(v), nil
		},
	}
}

// NaturalLog defines the natural logarithm of an earlier quantity,
// elementwise for vectors. No domain clamping: zero or negative input
// propagates -Inf / NaN downstream, where the histogram outflow
// buckets absorb it.
func NaturalLog(name, in string) Step {
	return Step{
		Name:   name,
		Inputs: []string{in},
		Derive: func(ev *event.Event) (event.Quantity, error) {
			q, err := quantityIn(ev, in)
			if err != nil {
				return event.Quantity{}, err
			}
			if !q.IsVector() {
				return event.ScalarQuantity(math.Log(q.Scalar())), nil
			}
			out := make([]float64, len(q.Vector()))
			for i, v := range q.Vector() {
				out[i] = math.Log(v)
			}
			return event.VectorQuantity(out), nil
		},
	}
}

// PolarAngle defines the per-particle angle between each momentum
// vector in the named collection and the +z axis.
func PolarAngle(name, coll string) Step {
	return Step{
		Name:   name,
		Inputs: []string{coll},
		Derive: func(ev *event.Event) (event.Quantity, error) {
			parts := ev.Particles[coll]
			out := make([]float64, len(parts))
			for i, p := range parts {
				out[i] = p.P.PolarAngle()
			}
			return event.VectorQuantity(out), nil
		},
	}
}

// Rapidity defines ln(tan(theta/2)) per particle from an earlier
// angle vector, with the same unclamped-log convention as NaturalLog.
func Rapidity(name, in string) Step {
	return Step{
		Name:   name,
		Inputs: []string{in},
		Derive: func(ev *event.Event) (event.Quantity, error) {
			q, err := quantityIn(ev, in)
			if err != nil {
				return event.Quantity{}, err
			}
			angles := q.Vector()
			out := make([]float64, len(angles))
			for i, th := range angles {
				out[i] = math.Log(math.Tan(th / 2))
			}
			return event.VectorQuantity(out), nil
		},
	}
}

// ExtractField defines a per-particle vector by projecting the named
// field out of every record in a particle collection, in input order.
func ExtractField(name, coll, field string) Step {
	return Step{
		Name:   name,
		Inputs: []string{coll},
		Derive: func(ev *event.Event) (event.Quantity, error) {
			parts := ev.Particles[coll]
			out := make([]float64, len(parts))
			for i, p := range parts {
				v, ok := p.Field(field)
				if !ok {
					return event.Quantity{}, fmt.Errorf("particle collection %q has no field %q", coll, field)
				}
				out[i] = v
			}
			return event.VectorQuantity(out), nil
		},
	}
}

// EnergyFractionWeight defines the per-particle correlator weight
// w_i = ref * E_i / beamEnergy, positionally aligned with the energy
// vector. beamEnergy is the configured beam reference energy, not
// derived from the kinematic record.
func EnergyFractionWeight(name, energies, ref string, beamEnergy float64) Step {
	return Step{
		Name:   name,
		Inputs: []string{energies, ref},
		Derive: func(ev *event.Event) (event.Quantity, error) {
			eq, err := quantityIn(ev, energies)
			if err != nil {
				return event.Quantity{}, err
			}
			rq, err := quantityIn(ev, ref)
			if err != nil {
				return event.Quantity{}, err
			}
			r := rq.Scalar()
			out := make([]float64, len(eq.Vector()))
			for i, e := range eq.Vector() {
				out[i] = r * e / beamEnergy
			}
			return event.VectorQuantity(out), nil
		},
	}
}
