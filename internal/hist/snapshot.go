package hist

// Snapshot is the serializable content of one histogram. Empty bins
// are kept so bin indices line up with the axis layout.
type Snapshot struct {
	Name      string         `yaml:"name"`
	Title     string         `yaml:"title"`
	Dims      int            `yaml:"dims"`
	XAxis     AxisSnapshot   `yaml:"x_axis"`
	YAxis     *AxisSnapshot  `yaml:"y_axis,omitempty"`
	Entries   int64          `yaml:"entries"`
	Bins      []BinSnapshot  `yaml:"bins,omitempty"`
	Cells     []CellSnapshot `yaml:"cells,omitempty"`
	Underflow FlowSnapshot   `yaml:"underflow"`
	Overflow  FlowSnapshot   `yaml:"overflow"`
}

// AxisSnapshot is the serialized bin layout.
type AxisSnapshot struct {
	Title string  `yaml:"title"`
	Bins  int     `yaml:"bins"`
	Low   float64 `yaml:"low"`
	High  float64 `yaml:"high"`
}

// BinSnapshot is one 1-D bin.
type BinSnapshot struct {
	Low   float64 `yaml:"low"`
	High  float64 `yaml:"high"`
	N     int64   `yaml:"n"`
	SumW  float64 `yaml:"sumw"`
	SumW2 float64 `yaml:"sumw2"`
}

// CellSnapshot is one 2-D cell, indexed by bin numbers.
type CellSnapshot struct {
	IX    int     `yaml:"ix"`
	IY    int     `yaml:"iy"`
	N     int64   `yaml:"n"`
	SumW  float64 `yaml:"sumw"`
	SumW2 float64 `yaml:"sumw2"`
}

// FlowSnapshot is a serialized outflow bucket.
type FlowSnapshot struct {
	N     int64   `yaml:"n"`
	SumW  float64 `yaml:"sumw"`
	SumW2 float64 `yaml:"sumw2"`
}

func flowSnapshot(f Flow) FlowSnapshot {
	return FlowSnapshot{N: f.N, SumW: f.SumW, SumW2: f.SumW2}
}

// Snapshot captures the histogram's current content.
func (h *H1) Snapshot() Snapshot {
	s := Snapshot{
		Name:  h.name,
		Title: h.title,
		Dims:  1,
		XAxis: AxisSnapshot{
			Title: h.axis.Title,
			Bins:  h.axis.Bins,
			Low:   h.axis.Low,
			High:  h.axis.High,
		},
		Entries:   h.Entries(),
		Bins:      make([]BinSnapshot, h.axis.Bins),
		Underflow: flowSnapshot(h.under),
		Overflow:  flowSnapshot(h.over),
	}
	for i := 0; i < h.axis.Bins; i++ {
		n, sumw, sumw2 := h.Bin(i)
		s.Bins[i] = BinSnapshot{
			Low:   h.axis.EdgeLow(i),
			High:  h.axis.EdgeLow(i + 1),
			N:     n,
			SumW:  sumw,
			SumW2: sumw2,
		}
	}
	return s
}

// Snapshot captures the histogram's current content. Only non-empty
// cells are listed; the grid shape comes from the axis snapshots. The
// single 2-D outflow bucket is reported as overflow.
func (h *H2) Snapshot() Snapshot {
	yax := AxisSnapshot{
		Title: h.yax.Title,
		Bins:  h.yax.Bins,
		Low:   h.yax.Low,
		High:  h.yax.High,
	}
	s := Snapshot{
		Name:  h.name,
		Title: h.title,
		Dims:  2,
		XAxis: AxisSnapshot{
			Title: h.xax.Title,
			Bins:  h.xax.Bins,
			Low:   h.xax.Low,
			High:  h.xax.High,
		},
		YAxis:    &yax,
		Entries:  h.Entries(),
		Overflow: flowSnapshot(h.out),
	}
	for i := 0; i < h.xax.Bins; i++ {
		for j := 0; j < h.yax.Bins; j++ {
			n, sumw, sumw2 := h.Cell(i, j)
			if n == 0 && sumw == 0 && sumw2 == 0 {
				continue
			}
			s.Cells = append(s.Cells, CellSnapshot{
				IX: i, IY: j, N: n, SumW: sumw, SumW2: sumw2,
			})
		}
	}
	return s
}
