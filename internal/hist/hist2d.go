package hist

import (
	"math"

	"go-hep.org/x/hep/hbook"

	"necana/internal/booking"
)

// H2 is a two-dimensional weighted histogram. Fills outside the named
// grid on either axis collect into a single outflow bucket.
type H2 struct {
	name  string
	title string
	xax   booking.Axis
	yax   booking.Axis

	cnt   *hbook.H2D
	sumw  *hbook.H2D
	sumw2 *hbook.H2D

	out Flow
}

// NewH2 books an empty 2-D histogram over (xax, yax).
func NewH2(name, title string, xax, yax booking.Axis) *H2 {
	return &H2{
		name:  name,
		title: title,
		xax:   xax,
		yax:   yax,
		cnt:   hbook.NewH2D(xax.Bins, xax.Low, xax.High, yax.Bins, yax.Low, yax.High),
		sumw:  hbook.NewH2D(xax.Bins, xax.Low, xax.High, yax.Bins, yax.Low, yax.High),
		sumw2: hbook.NewH2D(xax.Bins, xax.Low, xax.High, yax.Bins, yax.Low, yax.High),
	}
}

// Name returns the histogram name.
func (h *H2) Name() string { return h.name }

// XAxis returns the x bin layout.
func (h *H2) XAxis() booking.Axis { return h.xax }

// YAxis returns the y bin layout.
func (h *H2) YAxis() booking.Axis { return h.yax }

func (h *H2) inRange(x, y float64) bool {
	if x < h.xax.Low || x >= h.xax.High || math.IsNaN(x) {
		return false
	}
	if y < h.yax.Low || y >= h.yax.High || math.IsNaN(y) {
		return false
	}
	return true
}

// Fill adds one entry at (x, y) with weight w.
func (h *H2) Fill(x, y, w float64) {
	if !h.inRange(x, y) {
		h.out.add(w)
		return
	}
	h.cnt.Fill(x, y, 1)
	h.sumw.Fill(x, y, w)
	h.sumw2.Fill(x, y, w*w)
}

// Clone returns an empty histogram with the same shape.
func (h *H2) Clone() *H2 {
	return NewH2(h.name, h.title, h.xax, h.yax)
}

// Merge adds src's content cell-wise, variance and outflow included.
func (h *H2) Merge(src *H2) error {
	if src.name != h.name || src.xax != h.xax || src.yax != h.yax {
		return ErrShapeMismatch
	}
	cnt := src.cnt.GridXYZ()
	sumw := src.sumw.GridXYZ()
	sumw2 := src.sumw2.GridXYZ()
	for i := 0; i < h.xax.Bins; i++ {
		xc := h.xax.Center(i)
		for j := 0; j < h.yax.Bins; j++ {
			yc := h.yax.Center(j)
			if n := cnt.Z(i, j); n != 0 {
				h.cnt.Fill(xc, yc, n)
			}
			if w := sumw.Z(i, j); w != 0 {
				h.sumw.Fill(xc, yc, w)
			}
			if w2 := sumw2.Z(i, j); w2 != 0 {
				h.sumw2.Fill(xc, yc, w2)
			}
		}
	}
	h.out.merge(src.out)
	return nil
}

// Cell returns the accumulated (count, sumw, sumw2) of cell (i, j).
func (h *H2) Cell(i, j int) (n int64, sumw, sumw2 float64) {
	c := h.cnt.GridXYZ().Z(i, j)
	sumw = h.sumw.GridXYZ().Z(i, j)
	sumw2 = h.sumw2.GridXYZ().Z(i, j)
	return int64(math.Round(c)), sumw, sumw2
}

// Outflow returns the out-of-grid bucket.
func (h *H2) Outflow() Flow { return h.out }

// Entries returns the total number of fills, outflow included.
func (h *H2) Entries() int64 {
	var n int64
	for i := 0; i < h.xax.Bins; i++ {
		for j := 0; j < h.yax.Bins; j++ {
			cn, _, _ := h.Cell(i, j)
			n += cn
		}
	}
	return n + h.out.N
}
