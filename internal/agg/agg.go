// Package agg implements the aggregator: the single mutation point of
// the run. It books one accumulator per catalog definition, binds
// histograms to quantity names, and fills them from each surviving
// event. Workers operate on private clones merged after the join, so
// the final content is invariant to event order and partition count.
package agg

import (
	"fmt"

	"necana/internal/booking"
	"necana/internal/hist"
)

// Binding wires one histogram to the event namespace. Value is the
// quantity filled on the x axis; YValue is required for 2-D
// histograms; Weight optionally names a per-particle weight vector.
type Binding struct {
	Hist   string
	Value  string
	YValue string
	Weight string
}

// Aggregator owns the booked histograms for one run (or one worker
// partition). Not safe for concurrent fills; clone per worker instead.
type Aggregator struct {
	order    []string
	h1       map[string]*hist.H1
	h2       map[string]*hist.H2
	bindings []Binding
}

// New books every definition in the catalog exactly once and attaches
// the fill bindings. Bindings referring to names outside the catalog
// fail with ErrUnknownHistogram; a binding on a 2-D histogram must
// name a YValue, and one on a 1-D histogram must not.
func New(cat *booking.Catalog, bindings []Binding) (*Aggregator, error) {
	a := &Aggregator{
		order:    cat.Names(),
		h1:       make(map[string]*hist.H1),
		h2:       make(map[string]*hist.H2),
		bindings: bindings,
	}
	for _, name := range a.order {
		def, err := cat.Definition(name)
		if err != nil {
			return nil, err
		}
		switch def.Dims {
		case 1:
			a.h1[name] = hist.NewH1(def.Name, def.Title, def.X)
		case 2:
			a.h2[name] = hist.NewH2(def.Name, def.Title, def.X, def.Y)
		}
	}
	for _, b := range bindings {
		if _, ok := a.h1[b.Hist]; ok {
			if b.YValue != "" {
				return nil, fmt.Errorf("binding %q: y quantity on a 1-D histogram", b.Hist)
			}
			continue
		}
		if _, ok := a.h2[b.Hist]; !ok {
			return nil, fmt.Errorf("binding %q: %w", b.Hist, booking.ErrUnknownHistogram)
		}
		if b.YValue == "" {
			return nil, fmt.Errorf("binding %q: 2-D histogram needs a y quantity", b.Hist)
		}
	}
	return a, nil
}

// Clone returns an empty aggregator with the same shape and bindings,
// for use by one worker partition.
func (a *Aggregator) Clone() *Aggregator {
	c := &Aggregator{
		order:    a.order,
		h1:       make(map[string]*hist.H1, len(a.h1)),
		h2:       make(map[string]*hist.H2, len(a.h2)),
		bindings: a.bindings,
	}
	for name, h := range a.h1 {
		c.h1[name] = h.Clone()
	}
	for name, h := range a.h2 {
		c.h2[name] = h.Clone()
	}
	return c
}

// Merge sums src into a bin-wise, variance accumulators included.
func (a *Aggregator) Merge(src *Aggregator) error {
	for name, h := range a.h1 {
		sh, ok := src.h1[name]
		if !ok {
			return fmt.Errorf("merge %q: %w", name, hist.ErrShapeMismatch)
		}
		if err := h.Merge(sh); err != nil {
			return fmt.Errorf("merge %q: %w", name, err)
		}
	}
	for name, h := range a.h2 {
		sh, ok := src.h2[name]
		if !ok {
			return fmt.Errorf("merge %q: %w", name, hist.ErrShapeMismatch)
		}
		if err := h.Merge(sh); err != nil {
			return fmt.Errorf("merge %q: %w", name, err)
		}
	}
	return nil
}

// Fill adds one unweighted 1-D entry.
func (a *Aggregator) Fill(name string, v float64) error {
	return a.FillW(name, v, 1)
}

// FillW adds one weighted 1-D entry.
func (a *Aggregator) FillW(name string, v, w float64) error {
	h, ok := a.h1[name]
	if !ok {
		return fmt.Errorf("fill %q: %w", name, booking.ErrUnknownHistogram)
	}
	h.Fill(v, w)
	return nil
}

// Fill2D adds one unweighted 2-D entry.
func (a *Aggregator) Fill2D(name string, x, y float64) error {
	return a.Fill2DW(name, x, y, 1)
}

// Fill2DW adds one weighted 2-D entry.
func (a *Aggregator) Fill2DW(name string, x, y, w float64) error {
	h, ok := a.h2[name]
	if !ok {
		return fmt.Errorf("fill %q: %w", name, booking.ErrUnknownHistogram)
	}
	h.Fill(x, y, w)
	return nil
}

// Snapshots returns the content of every booked histogram in catalog
// definition order.
func (a *Aggregator) Snapshots() []hist.Snapshot {
	out := make([]hist.Snapshot, 0, len(a.order))
	for _, name := range a.order {
		if h, ok := a.h1[name]; ok {
			out = append(out, h.Snapshot())
			continue
		}
		out = append(out, a.h2[name].Snapshot())
	}
	return out
}

// Entries returns the total fill count across all histograms.
func (a *Aggregator) Entries() int64 {
	var n int64
	for _, h := range a.h1 {
		n += h.Entries()
	}
	for _, h := range a.h2 {
		n += h.Entries()
	}
	return n
}
