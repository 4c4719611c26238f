// Package filter implements the event admission chain: an ordered
// list of named boolean predicates evaluated with short-circuit AND
// semantics. Cuts are silent; a failing predicate only excludes the
// event, it never produces a diagnostic.
package filter

import "necana/internal/event"

// Predicate is one named admission cut.
type Predicate struct {
	Name string
	Test func(*event.Event) bool
}

// Chain is an ordered predicate list. Ordering matters: presence
// checks must precede predicates that index into the collection they
// guard, since later predicates are never evaluated once one fails.
type Chain struct {
	preds []Predicate
}

// NewChain builds a chain from preds in evaluation order.
func NewChain(preds ...Predicate) *Chain {
	return &Chain{preds: preds}
}

// Add appends a predicate to the chain.
func (c *Chain) Add(p Predicate) {
	c.preds = append(c.preds, p)
}

// Evaluate reports whether ev passes every predicate, stopping at the
// first failure.
func (c *Chain) Evaluate(ev *event.Event) bool {
	for _, p := range c.preds {
		if !p.Test(ev) {
			return false
		}
	}
	return true
}

// InRange reports lo < v < hi. Both bounds are strictly exclusive,
// the open-interval convention of the admission cuts.
func InRange(v, lo, hi float64) bool {
	return v > lo && v < hi
}

// HasCollection passes events whose named collection holds at least
// one record.
func HasCollection(name string) Predicate {
	return Predicate{
		Name: "has_" + name,
		Test: func(ev *event.Event) bool {
			return ev.HasCollection(name)
		},
	}
}

// KinematicRange passes events whose first record in the named
// kinematic collection has field in the open interval (lo, hi). Guard
// it with HasCollection earlier in the chain.
func KinematicRange(coll, field string, lo, hi float64) Predicate {
	return Predicate{
		Name: coll + "_" + field + "_range",
		Test: func(ev *event.Event) bool {
			recs := ev.Kinematics[coll]
			if len(recs) == 0 {
				return false
			}
			v, ok := recs[0].Field(field)
			if !ok {
				return false
			}
			return InRange(v, lo, hi)
		},
	}
}
