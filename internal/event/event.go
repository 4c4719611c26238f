// Package event defines the in-memory model for a single
// reconstructed DIS event: named particle and kinematic collections
// plus the per-event namespace of derived quantities.
package event

import "math"

// Field names addressable on kinematic and particle records.
const (
	FieldQ2     = "q2"
	FieldX      = "x"
	FieldEnergy = "energy"
	FieldPx     = "px"
	FieldPy     = "py"
	FieldPz     = "pz"
)

// Vec3 is a momentum 3-vector in the frame the upstream
// reconstruction expressed it in.
type Vec3 struct {
	X, Y, Z float64
}

// Mag returns the vector magnitude.
func (v Vec3) Mag() float64 {
	return math.Sqrt(v.X*v.X + v.Y*v.Y + v.Z*v.Z)
}

// PolarAngle returns the angle between v and the +z axis, in [0, pi].
func (v Vec3) PolarAngle() float64 {
	return math.Acos(v.Z / v.Mag())
}

// Particle is one reconstructed particle record.
type Particle struct {
	Energy float64
	P      Vec3
}

// Field returns the named scalar field of the particle.
func (p Particle) Field(name string) (float64, bool) {
	switch name {
	case FieldEnergy:
		return p.Energy, true
	case FieldPx:
		return p.P.X, true
	case FieldPy:
		return p.P.Y, true
	case FieldPz:
		return p.P.Z, true
	}
	return 0, false
}

// Kinematics is one inclusive-kinematics record. A kinematic
// collection holds exactly one authoritative record per passing event;
// the admission chain is responsible for enforcing presence.
type Kinematics struct {
	Q2 float64
	X  float64
}

// Field returns the named scalar field of the record.
func (k Kinematics) Field(name string) (float64, bool) {
	switch name {
	case FieldQ2:
		return k.Q2, true
	case FieldX:
		return k.X, true
	}
	return 0, false
}

// Event bundles the named collections of one event. Collections may be
// absent or empty; absence is not an error, it is a filter concern.
type Event struct {
	ID         int64
	Particles  map[string][]Particle
	Kinematics map[string][]Kinematics

	quantities map[string]Quantity
}

// New returns an empty event.
func New(id int64) *Event {
	return &Event{
		ID:         id,
		Particles:  make(map[string][]Particle),
		Kinematics: make(map[string][]Kinematics),
	}
}

// HasCollection reports whether the named collection (kinematic or
// particle) holds at least one record.
func (e *Event) HasCollection(name string) bool {
	if len(e.Kinematics[name]) > 0 {
		return true
	}
	return len(e.Particles[name]) > 0
}

// SetQuantity writes a derived quantity into the event namespace,
// replacing any previous value under the same name.
func (e *Event) SetQuantity(name string, q Quantity) {
	if e.quantities == nil {
		e.quantities = make(map[string]Quantity)
	}
	e.quantities[name] = q
}

// Quantity returns the named derived quantity.
func (e *Event) Quantity(name string) (Quantity, bool) {
	q, ok := e.quantities[name]
	return q, ok
}
