package filter

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"necana/internal/event"
)

func TestInRange_OpenInterval(t *testing.T) {
	assert.True(t, InRange(50, 10, 100))
	assert.False(t, InRange(10, 10, 100), "lower bound is exclusive")
	assert.False(t, InRange(100, 10, 100), "upper bound is exclusive")
	assert.False(t, InRange(9.999, 10, 100))
	assert.False(t, InRange(100.001, 10, 100))
}

func TestHasCollection(t *testing.T) {
	ev := event.New(1)
	ev.Kinematics["K"] = []event.Kinematics{{Q2: 50, X: 0.1}}
	assert.True(t, HasCollection("K").Test(ev))
	assert.False(t, HasCollection("missing").Test(ev))

	empty := event.New(2)
	empty.Kinematics["K"] = nil
	assert.False(t, HasCollection("K").Test(empty))
}

func TestChain_ShortCircuit(t *testing.T) {
	ev := event.New(1) // no "K" collection at all

	evaluated := false
	indexIntoK := Predicate{
		Name: "index_into_K",
		Test: func(ev *event.Event) bool {
			evaluated = true
			return ev.Kinematics["K"][0].Q2 > 0 // would panic on empty K
		},
	}

	chain := NewChain(HasCollection("K"), indexIntoK)
	assert.False(t, chain.Evaluate(ev))
	assert.False(t, evaluated, "predicate after the failing one must not run")
}

func TestChain_AllPass(t *testing.T) {
	ev := event.New(1)
	ev.Kinematics["K"] = []event.Kinematics{{Q2: 50, X: 0.1}}

	chain := NewChain(
		HasCollection("K"),
		KinematicRange("K", event.FieldQ2, 10, 100),
	)
	assert.True(t, chain.Evaluate(ev))
}

func TestKinematicRange_Boundary(t *testing.T) {
	boundary := event.New(1)
	boundary.Kinematics["K"] = []event.Kinematics{{Q2: 10.0}}
	inside := event.New(2)
	inside.Kinematics["K"] = []event.Kinematics{{Q2: 50.0}}

	cut := KinematicRange("K", event.FieldQ2, 10, 100)
	assert.False(t, cut.Test(boundary), "Q2 exactly at the bound is excluded")
	assert.True(t, cut.Test(inside))
}

func TestKinematicRange_MissingCollectionFails(t *testing.T) {
	cut := KinematicRange("K", event.FieldQ2, 10, 100)
	assert.False(t, cut.Test(event.New(1)))
}

func TestKinematicRange_UnknownField(t *testing.T) {
	ev := event.New(1)
	ev.Kinematics["K"] = []event.Kinematics{{Q2: 50}}
	assert.False(t, KinematicRange("K", "nope", 10, 100).Test(ev))
}
