// Package pipeline implements the ordered per-event derivation chain.
// Each step reads named inputs (raw collections or earlier outputs)
// and defines exactly one new named quantity in the event namespace.
// The dependency ordering is checked once at construction; a pipeline
// that builds never hits a missing input at run time.
package pipeline

import (
	"errors"
	"fmt"

	"necana/internal/event"
)

var (
	// ErrMissingInput is returned when a step declares an input that
	// neither the raw fields nor any earlier step provides. This is a
	// configuration error, surfaced before any event is processed.
	ErrMissingInput = errors.New("pipeline: missing input")

	// ErrDuplicateOutput is returned when two steps define the same
	// quantity name.
	ErrDuplicateOutput = errors.New("pipeline: duplicate output")
)

// Step derives one named quantity per event. Name is the quantity the
// step defines; Inputs lists every name the Derive func reads.
type Step struct {
	Name   string
	Inputs []string
	Derive func(*event.Event) (event.Quantity, error)
}

// Pipeline is an ordered, validated derivation chain.
type Pipeline struct {
	steps []Step
}

// New validates that every step's inputs are satisfied by the union of
// raw names and prior steps' outputs, in order, and returns the
// runnable pipeline.
func New(raw []string, steps ...Step) (*Pipeline, error) {
	known := make(map[string]bool, len(raw)+len(steps))
	for _, name := range raw {
		known[name] = true
	}
	for _, s := range steps {
		for _, in := range s.Inputs {
			if !known[in] {
				return nil, fmt.Errorf("step %q: %w: %q", s.Name, ErrMissingInput, in)
			}
		}
		if known[s.Name] {
			return nil, fmt.Errorf("step %q: %w", s.Name, ErrDuplicateOutput)
		}
		known[s.Name] = true
	}
	return &Pipeline{steps: steps}, nil
}

// Run executes the steps in order against ev, adding each output to
// the event namespace. An error here means the construction-time
// contract was violated (e.g. an admission chain that let an empty
// kinematic collection through) and aborts the run, not just the
// event.
func (p *Pipeline) Run(ev *event.Event) error {
	for _, s := range p.steps {
		q, err := s.Derive(ev)
		if err != nil {
			return fmt.Errorf("step %q: %w", s.Name, err)
		}
		ev.SetQuantity(s.Name, q)
	}
	return nil
}

// quantityIn resolves a previously derived quantity, mapping absence
// to ErrMissingInput.
func quantityIn(ev *event.Event, name string) (event.Quantity, error) {
	q, ok := ev.Quantity(name)
	if !ok {
		return event.Quantity{}, fmt.Errorf("%w: %q", ErrMissingInput, name)
	}
	return q, nil
}
