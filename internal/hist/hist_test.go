package hist

import (
	"math"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"necana/internal/booking"
)

func testAxis() booking.Axis {
	return booking.Axis{Title: "x_{B}", Bins: 21, Low: -0.1, High: 2.0}
}

func TestH1_RepeatedWeightedFills(t *testing.T) {
	h := NewH1("h", "", booking.Axis{Bins: 10, Low: 0, High: 1})
	const (
		n = 7
		w = 1.5
	)
	v := 0.42
	for i := 0; i < n; i++ {
		h.Fill(v, w)
	}
	bin := int(v * 10)
	cnt, sumw, sumw2 := h.Bin(bin)
	assert.Equal(t, int64(n), cnt)
	assert.InDelta(t, n*w, sumw, 1e-12)
	assert.InDelta(t, n*w*w, sumw2, 1e-12)
	assert.Equal(t, int64(n), h.Entries())
}

func TestH1_SingleUnweightedFill(t *testing.T) {
	h := NewH1("hXBRec", "", testAxis())
	h.Fill(0.37, 1)

	// 0.37 lands in bin floor((0.37+0.1)/0.1) = 4 of the 21-bin axis.
	bin := int((0.37 - h.Axis().Low) / h.Axis().Width())
	cnt, sumw, _ := h.Bin(bin)
	assert.Equal(t, int64(1), cnt)
	assert.InDelta(t, 1.0, sumw, 1e-12)
}

func TestH1_Outflow(t *testing.T) {
	h := NewH1("h", "", booking.Axis{Bins: 10, Low: 0, High: 1})
	h.Fill(-0.5, 2)                // underflow
	h.Fill(1.0, 3)                 // high edge is outside [low, high)
	h.Fill(7, 1)                   // overflow
	h.Fill(math.Inf(-1), 1)        // -Inf underflows
	h.Fill(math.Inf(1), 1)         // +Inf overflows
	h.Fill(math.NaN(), 0.5)        // NaN routes to overflow
	assert.Equal(t, int64(2), h.Underflow().N)
	assert.InDelta(t, 3.0, h.Underflow().SumW, 1e-12)
	assert.Equal(t, int64(4), h.Overflow().N)
	assert.InDelta(t, 5.5, h.Overflow().SumW, 1e-12)
	assert.Equal(t, int64(6), h.Entries(), "out-of-range fills are not discarded")
}

func TestH1_MergeMatchesDirectFills(t *testing.T) {
	ax := booking.Axis{Bins: 20, Low: -5, High: 5}
	direct := NewH1("h", "", ax)
	a := NewH1("h", "", ax)
	b := a.Clone()

	fills := []struct{ v, w float64 }{
		{-4.2, 1}, {0.3, 0.5}, {0.3, 2}, {4.9, 1.5}, {-7, 1}, {9, 2},
	}
	for i, f := range fills {
		direct.Fill(f.v, f.w)
		if i%2 == 0 {
			a.Fill(f.v, f.w)
		} else {
			b.Fill(f.v, f.w)
		}
	}
	require.NoError(t, a.Merge(b))

	for i := 0; i < ax.Bins; i++ {
		dn, dw, dw2 := direct.Bin(i)
		mn, mw, mw2 := a.Bin(i)
		assert.Equal(t, dn, mn, "bin %d count", i)
		assert.InDelta(t, dw, mw, 1e-9, "bin %d sumw", i)
		assert.InDelta(t, dw2, mw2, 1e-9, "bin %d sumw2", i)
	}
	assert.Equal(t, direct.Underflow(), a.Underflow())
	assert.Equal(t, direct.Overflow(), a.Overflow())
}

func TestH1_MergeShapeMismatch(t *testing.T) {
	a := NewH1("a", "", booking.Axis{Bins: 10, Low: 0, High: 1})
	b := NewH1("b", "", booking.Axis{Bins: 10, Low: 0, High: 1})
	assert.ErrorIs(t, a.Merge(b), ErrShapeMismatch)

	c := NewH1("a", "", booking.Axis{Bins: 20, Low: 0, High: 1})
	assert.ErrorIs(t, a.Merge(c), ErrShapeMismatch)
}

func TestH1_Snapshot(t *testing.T) {
	h := NewH1("hXBRec", "; x_{B};", testAxis())
	h.Fill(0.37, 1)
	h.Fill(5, 2)

	s := h.Snapshot()
	assert.Equal(t, "hXBRec", s.Name)
	assert.Equal(t, 1, s.Dims)
	require.Len(t, s.Bins, 21)
	assert.Equal(t, int64(2), s.Entries)
	assert.Equal(t, int64(1), s.Overflow.N)

	var filled int
	for _, b := range s.Bins {
		if b.N > 0 {
			filled++
			assert.LessOrEqual(t, b.Low, 0.37)
			assert.Greater(t, b.High, 0.37)
		}
	}
	assert.Equal(t, 1, filled)
}

func TestH2_FillAndCells(t *testing.T) {
	xax := booking.Axis{Bins: 4, Low: 0, High: 4}
	yax := booking.Axis{Bins: 2, Low: 0, High: 2}
	h := NewH2("h2", "", xax, yax)

	h.Fill(1.5, 0.5, 2)
	h.Fill(1.5, 0.5, 2)
	h.Fill(3.9, 1.9, 1)
	h.Fill(5, 0.5, 1)   // x overflow
	h.Fill(1.5, -1, 1)  // y underflow

	n, sumw, sumw2 := h.Cell(1, 0)
	assert.Equal(t, int64(2), n)
	assert.InDelta(t, 4.0, sumw, 1e-12)
	assert.InDelta(t, 8.0, sumw2, 1e-12)

	n, _, _ = h.Cell(3, 1)
	assert.Equal(t, int64(1), n)

	assert.Equal(t, int64(2), h.Outflow().N)
	assert.Equal(t, int64(5), h.Entries())
}

func TestH2_MergeMatchesDirectFills(t *testing.T) {
	xax := booking.Axis{Bins: 5, Low: 0, High: 5}
	yax := booking.Axis{Bins: 5, Low: -1, High: 1}
	direct := NewH2("h", "", xax, yax)
	a := NewH2("h", "", xax, yax)
	b := a.Clone()

	fills := []struct{ x, y, w float64 }{
		{0.5, 0, 1}, {0.5, 0, 2}, {4.5, 0.9, 0.5}, {2.2, -0.7, 3}, {9, 0, 1},
	}
	for i, f := range fills {
		direct.Fill(f.x, f.y, f.w)
		if i%2 == 0 {
			a.Fill(f.x, f.y, f.w)
		} else {
			b.Fill(f.x, f.y, f.w)
		}
	}
	require.NoError(t, a.Merge(b))

	for i := 0; i < xax.Bins; i++ {
		for j := 0; j < yax.Bins; j++ {
			dn, dw, dw2 := direct.Cell(i, j)
			mn, mw, mw2 := a.Cell(i, j)
			assert.Equal(t, dn, mn)
			assert.InDelta(t, dw, mw, 1e-9)
			assert.InDelta(t, dw2, mw2, 1e-9)
		}
	}
	assert.Equal(t, direct.Outflow(), a.Outflow())
}

func TestH2_Snapshot(t *testing.T) {
	h := NewH2("h2", "t", booking.Axis{Bins: 4, Low: 0, High: 4}, booking.Axis{Bins: 2, Low: 0, High: 2})
	h.Fill(1.5, 0.5, 2)
	s := h.Snapshot()
	assert.Equal(t, 2, s.Dims)
	require.NotNil(t, s.YAxis)
	require.Len(t, s.Cells, 1)
	assert.Equal(t, 1, s.Cells[0].IX)
	assert.Equal(t, 0, s.Cells[0].IY)
	assert.InDelta(t, 2.0, s.Cells[0].SumW, 1e-12)
}
