package agg

import "necana/internal/event"

// FillEvent applies every binding whose quantities are present in the
// event namespace. Absent quantities skip the binding silently: the
// aggregator fills every histogram whose inputs are present, nothing
// more. Vector quantities produce one fill per particle; a scalar
// value paired with a vector weight is broadcast across the weights.
// Misaligned vector lengths skip the binding (a configuration problem
// surfaced by the lower entry count, per the silent-cut policy).
func (a *Aggregator) FillEvent(ev *event.Event) {
	for _, b := range a.bindings {
		v, ok := ev.Quantity(b.Value)
		if !ok {
			continue
		}
		var (
			w    event.Quantity
			hasW bool
		)
		if b.Weight != "" {
			w, hasW = ev.Quantity(b.Weight)
			if !hasW {
				continue
			}
		}
		if b.YValue != "" {
			y, ok := ev.Quantity(b.YValue)
			if !ok {
				continue
			}
			a.fill2d(b.Hist, v, y, w, hasW)
			continue
		}
		a.fill1d(b.Hist, v, w, hasW)
	}
}

func (a *Aggregator) fill1d(name string, v, w event.Quantity, hasW bool) {
	h := a.h1[name]
	if h == nil {
		return
	}
	switch {
	case !hasW:
		if !v.IsVector() {
			h.Fill(v.Scalar(), 1)
			return
		}
		for _, x := range v.Vector() {
			h.Fill(x, 1)
		}
	case !v.IsVector() && !w.IsVector():
		h.Fill(v.Scalar(), w.Scalar())
	case !v.IsVector() && w.IsVector():
		// Event-level scalar broadcast over per-particle weights.
		for _, wi := range w.Vector() {
			h.Fill(v.Scalar(), wi)
		}
	case v.IsVector() && w.IsVector():
		vs, ws := v.Vector(), w.Vector()
		if len(vs) != len(ws) {
			return
		}
		for i, x := range vs {
			h.Fill(x, ws[i])
		}
	default: // vector value, scalar weight
		for _, x := range v.Vector() {
			h.Fill(x, w.Scalar())
		}
	}
}

func (a *Aggregator) fill2d(name string, v, y, w event.Quantity, hasW bool) {
	h := a.h2[name]
	if h == nil {
		return
	}
	weightAt := func(i int) float64 {
		if !hasW {
			return 1
		}
		if !w.IsVector() {
			return w.Scalar()
		}
		return w.Vector()[i]
	}
	if !v.IsVector() && !y.IsVector() {
		if hasW && w.IsVector() {
			for _, wi := range w.Vector() {
				h.Fill(v.Scalar(), y.Scalar(), wi)
			}
			return
		}
		h.Fill(v.Scalar(), y.Scalar(), weightAt(0))
		return
	}
	if v.IsVector() != y.IsVector() {
		// Broadcast the scalar side across the vector side.
		if v.IsVector() {
			if hasW && w.IsVector() && len(w.Vector()) != len(v.Vector()) {
				return
			}
			for i, x := range v.Vector() {
				h.Fill(x, y.Scalar(), weightAt(i))
			}
			return
		}
		if hasW && w.IsVector() && len(w.Vector()) != len(y.Vector()) {
			return
		}
		for i, yi := range y.Vector() {
			h.Fill(v.Scalar(), yi, weightAt(i))
		}
		return
	}
	vs, ys := v.Vector(), y.Vector()
	if len(vs) != len(ys) {
		return
	}
	if hasW && w.IsVector() && len(w.Vector()) != len(vs) {
		return
	}
	for i, x := range vs {
		h.Fill(x, ys[i], weightAt(i))
	}
}
