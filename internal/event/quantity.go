package event

// Quantity is a named per-event value computed by a pipeline step:
// either a single scalar or an ordered per-particle vector. Scoped to
// one event's processing; never persisted.
type Quantity struct {
	scalar float64
	vec    []float64
	isVec  bool
}

// ScalarQuantity wraps a single per-event value.
func ScalarQuantity(v float64) Quantity {
	return Quantity{scalar: v}
}

// VectorQuantity wraps a per-particle vector. The slice is owned by
// the quantity afterwards.
func VectorQuantity(vs []float64) Quantity {
	return Quantity{vec: vs, isVec: true}
}

// IsVector reports whether the quantity is per-particle.
func (q Quantity) IsVector() bool { return q.isVec }

// Scalar returns the scalar value. Meaningless for vector quantities.
func (q Quantity) Scalar() float64 { return q.scalar }

// Vector returns the per-particle values. Nil for scalar quantities.
func (q Quantity) Vector() []float64 { return q.vec }

// Len returns the number of fills the quantity represents: 1 for a
// scalar, the element count for a vector.
func (q Quantity) Len() int {
	if q.isVec {
		return len(q.vec)
	}
	return 1
}
