package canvas

import "testing"

// topRow returns the smallest y with any mask set in column x, or -1
// when the column is empty.
func topRow(c *Canvas, x int) int {
	for y := 0; y < c.Height; y++ {
		if c.At(x, y) != 0 {
			return y
		}
	}
	return -1
}

func TestPlotSeriesMonotonicSlopesUpward(t *testing.T) {
	t.Parallel()

	c := New(20, 10)
	var values []float64
	for i := 0; i < 20; i++ {
		values = append(values, float64(i)*5)
	}
	c.PlotSeries(values, 0, 100)

	prev := topRow(c, 0)
	if prev < 0 {
		t.Fatalf("first column is empty")
	}
	for x := 1; x < c.Width; x++ {
		top := topRow(c, x)
		if top < 0 {
			t.Fatalf("column %d is empty", x)
		}
		if top > prev {
			t.Fatalf("topmost cell dropped from row %d to %d at column %d", prev, top, x)
		}
		prev = top
	}
}

func TestPlotSeriesConstantDrawsHorizontalLine(t *testing.T) {
	t.Parallel()

	c := New(8, 4)
	c.PlotSeries([]float64{50, 50, 50, 50, 50, 50, 50, 50}, 0, 100)

	for x := 0; x < c.Width; x++ {
		mask := c.At(x, 2)
		if mask&(DirLeft|DirRight) == 0 {
			t.Fatalf("column %d missing horizontal bits, mask %#x", x, mask)
		}
		if GlyphForMask(mask) != '─' {
			t.Fatalf("column %d renders %q", x, GlyphForMask(mask))
		}
	}
}

func TestPlotSeriesSingleSampleIsPoint(t *testing.T) {
	t.Parallel()

	c := New(8, 4)
	c.PlotSeries([]float64{100}, 0, 100)

	if mask := c.At(0, 0); mask != DirPoint {
		t.Fatalf("expected bare point at top-left, mask %#x", mask)
	}
	if GlyphForMask(DirPoint) != '·' {
		t.Fatalf("bare point should render as middle dot")
	}
}

func TestPlotSeriesUsesTailOfLongSeries(t *testing.T) {
	t.Parallel()

	c := New(4, 4)
	// Older samples sit at 0, the tail at 100; only the tail should plot.
	values := []float64{0, 0, 0, 0, 100, 100, 100, 100}
	c.PlotSeries(values, 0, 100)

	for x := 0; x < c.Width; x++ {
		if c.At(x, 0) == 0 {
			t.Fatalf("tail sample missing at column %d", x)
		}
	}
	for x := 0; x < c.Width; x++ {
		if c.At(x, 3) != 0 {
			t.Fatalf("stale head sample plotted at column %d", x)
		}
	}
}

func TestPlotSeriesClampsOutOfRange(t *testing.T) {
	t.Parallel()

	c := New(2, 4)
	c.PlotSeries([]float64{-50, 150}, 0, 100)

	if c.At(0, 3)&DirPoint == 0 {
		t.Fatalf("under-range sample should pin to bottom row")
	}
	if c.At(1, 0)&DirPoint == 0 {
		t.Fatalf("over-range sample should pin to top row")
	}
}

func TestConnectDiagonalLeavesNoGaps(t *testing.T) {
	t.Parallel()

	c := New(6, 6)
	c.connect(0, 5, 5, 0)

	for x := 0; x < c.Width; x++ {
		if topRow(c, x) < 0 {
			t.Fatalf("column %d untouched by diagonal", x)
		}
	}
	// Elbow splitting means no cell holds only a point with no direction.
	for x := 0; x < c.Width; x++ {
		for y := 0; y < c.Height; y++ {
			mask := c.At(x, y)
			if mask != 0 && mask&(DirUp|DirDown|DirLeft|DirRight) == 0 {
				t.Fatalf("cell (%d,%d) has mask %#x with no direction", x, y, mask)
			}
		}
	}
}

func TestGlyphForMask(t *testing.T) {
	t.Parallel()

	cases := map[uint16]rune{
		0:                                    ' ',
		DirPoint:                             '·',
		DirUp | DirDown:                      '│',
		DirLeft | DirRight:                   '─',
		DirUp:                                '│',
		DirRight:                             '─',
		DirUp | DirLeft:                      '┘',
		DirUp | DirRight:                     '└',
		DirDown | DirLeft:                    '┐',
		DirDown | DirRight:                   '┌',
		DirUp | DirDown | DirLeft:            '┤',
		DirUp | DirDown | DirRight:           '├',
		DirUp | DirLeft | DirRight:           '┴',
		DirDown | DirLeft | DirRight:         '┬',
		DirUp | DirDown | DirLeft | DirRight: '┼',
		DirPoint | DirLeft | DirRight:        '─',
	}
	for mask, want := range cases {
		if got := GlyphForMask(mask); got != want {
			t.Fatalf("GlyphForMask(%#x) = %q, want %q", mask, got, want)
		}
	}
}

func TestAtOutOfBounds(t *testing.T) {
	t.Parallel()

	c := New(2, 2)
	if c.At(-1, 0) != 0 || c.At(0, -1) != 0 || c.At(2, 0) != 0 || c.At(0, 2) != 0 {
		t.Fatalf("out-of-bounds reads must be zero")
	}

	empty := New(0, 0)
	empty.PlotSeries([]float64{1, 2, 3}, 0, 100)
}
