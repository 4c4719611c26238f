// Package hist implements the mutable histogram accumulators owned by
// the aggregator. Each histogram keeps per-bin entry counts, sums of
// weights and sums of squared weights, backed by a triplet of hbook
// histograms (one per accumulator), with explicit under/overflow
// buckets on the side. Values outside [Low, High) are never discarded.
package hist

import (
	"errors"
	"math"

	"go-hep.org/x/hep/hbook"

	"necana/internal/booking"
)

// ErrShapeMismatch is returned when merging histograms with different
// names or binnings.
var ErrShapeMismatch = errors.New("hist: shape mismatch")

// Flow accumulates fills landing outside the named bins.
type Flow struct {
	N     int64
	SumW  float64
	SumW2 float64
}

func (f *Flow) add(w float64) {
	f.N++
	f.SumW += w
	f.SumW2 += w * w
}

func (f *Flow) merge(o Flow) {
	f.N += o.N
	f.SumW += o.SumW
	f.SumW2 += o.SumW2
}

// H1 is a one-dimensional weighted histogram.
type H1 struct {
	name  string
	title string
	axis  booking.Axis

	cnt   *hbook.H1D
	sumw  *hbook.H1D
	sumw2 *hbook.H1D

	under Flow
	over  Flow
}

// NewH1 books an empty 1-D histogram over ax.
func NewH1(name, title string, ax booking.Axis) *H1 {
	return &H1{
		name:  name,
		title: title,
		axis:  ax,
		cnt:   hbook.NewH1D(ax.Bins, ax.Low, ax.High),
		sumw:  hbook.NewH1D(ax.Bins, ax.Low, ax.High),
		sumw2: hbook.NewH1D(ax.Bins, ax.Low, ax.High),
	}
}

// Name returns the histogram name.
func (h *H1) Name() string { return h.name }

// Axis returns the bin layout.
func (h *H1) Axis() booking.Axis { return h.axis }

// Fill adds one entry at x with weight w: the containing bin's count
// is incremented and w / w*w are added to its weight accumulators.
// Out-of-range and NaN values land in the under/overflow buckets (NaN
// counts as overflow, matching its failed comparison against both
// edges).
func (h *H1) Fill(x, w float64) {
	switch {
	case x < h.axis.Low:
		h.under.add(w)
	case x >= h.axis.High || math.IsNaN(x):
		h.over.add(w)
	default:
		h.cnt.Fill(x, 1)
		h.sumw.Fill(x, w)
		h.sumw2.Fill(x, w*w)
	}
}

// Clone returns an empty histogram with the same shape, for use as a
// per-worker partial accumulator.
func (h *H1) Clone() *H1 {
	return NewH1(h.name, h.title, h.axis)
}

// Merge adds src's content bin-wise, including the variance
// accumulators and the outflow buckets. Bin contents are plain sums of
// weights, so merging reduces to one weighted fill per non-empty bin.
func (h *H1) Merge(src *H1) error {
	if src.name != h.name || src.axis != h.axis {
		return ErrShapeMismatch
	}
	for i := 0; i < h.axis.Bins; i++ {
		c := h.axis.Center(i)
		if _, n := src.cnt.XY(i); n != 0 {
			h.cnt.Fill(c, n)
		}
		if _, w := src.sumw.XY(i); w != 0 {
			h.sumw.Fill(c, w)
		}
		if _, w2 := src.sumw2.XY(i); w2 != 0 {
			h.sumw2.Fill(c, w2)
		}
	}
	h.under.merge(src.under)
	h.over.merge(src.over)
	return nil
}

// Bin returns the accumulated (count, sumw, sumw2) of bin i.
func (h *H1) Bin(i int) (n int64, sumw, sumw2 float64) {
	_, c := h.cnt.XY(i)
	_, sumw = h.sumw.XY(i)
	_, sumw2 = h.sumw2.XY(i)
	return int64(math.Round(c)), sumw, sumw2
}

// Underflow returns the below-range bucket.
func (h *H1) Underflow() Flow { return h.under }

// Overflow returns the above-range bucket.
func (h *H1) Overflow() Flow { return h.over }

// Entries returns the total number of fills, outflow included.
func (h *H1) Entries() int64 {
	var n int64
	for i := 0; i < h.axis.Bins; i++ {
		bn, _, _ := h.Bin(i)
		n += bn
	}
	return n + h.under.N + h.over.N
}
