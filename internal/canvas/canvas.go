// Package canvas rasterizes time series onto a grid of direction-mask
// cells that render as box-drawing glyphs. A canvas is scratch state for
// a single render pass; callers composite several of them, one per
// series, onto the screen.
package canvas

// Direction bits recorded per cell. A cell knows which neighbors the
// plotted line connects it to, plus whether a sample point landed on it.
const (
	DirUp    uint16 = 0x01
	DirDown  uint16 = 0x02
	DirLeft  uint16 = 0x04
	DirRight uint16 = 0x08
	DirPoint uint16 = 0x10
)

// Canvas is a width by height grid of direction masks. Row 0 is the top
// of the chart.
type Canvas struct {
	Width  int
	Height int
	cells  []uint16
}

// New returns an empty canvas. Non-positive dimensions yield a canvas
// that silently ignores all drawing.
func New(width, height int) *Canvas {
	if width < 0 {
		width = 0
	}
	if height < 0 {
		height = 0
	}
	return &Canvas{Width: width, Height: height, cells: make([]uint16, width*height)}
}

// At returns the direction mask at (x, y), zero outside the grid.
func (c *Canvas) At(x, y int) uint16 {
	if x < 0 || y < 0 || x >= c.Width || y >= c.Height {
		return 0
	}
	return c.cells[y*c.Width+x]
}

func (c *Canvas) mark(x, y int, bits uint16) {
	if x < 0 || y < 0 || x >= c.Width || y >= c.Height {
		return
	}
	c.cells[y*c.Width+x] |= bits
}

// PlotSeries draws the last Width samples of values onto the canvas,
// linearly mapped so max lands on the top row. Consecutive samples are
// joined with line segments; a single sample plots one point.
func (c *Canvas) PlotSeries(values []float64, min, max float64) {
	if c.Width == 0 || c.Height == 0 || len(values) == 0 || max <= min {
		return
	}

	n := len(values)
	if n > c.Width {
		values = values[n-c.Width:]
		n = c.Width
	}

	prevX, prevY := 0, 0
	for i, value := range values {
		x := 0
		if n > 1 {
			x = i * (c.Width - 1) / (n - 1)
		}
		y := c.rowFor(value, min, max)
		c.mark(x, y, DirPoint)
		if i > 0 {
			c.connect(prevX, prevY, x, y)
		}
		prevX, prevY = x, y
	}
}

func (c *Canvas) rowFor(value, min, max float64) int {
	if value < min {
		value = min
	}
	if value > max {
		value = max
	}
	row := int(float64(c.Height-1)*(max-value)/(max-min) + 0.5)
	if row < 0 {
		row = 0
	}
	if row >= c.Height {
		row = c.Height - 1
	}
	return row
}

// connect rasterizes a segment between two cells with error-accumulator
// stepping. Diagonal steps are split into an elbow of two orthogonal
// steps so every traversed cell carries a renderable junction mask.
func (c *Canvas) connect(x0, y0, x1, y1 int) {
	dx := abs(x1 - x0)
	dy := -abs(y1 - y0)
	sx := sign(x1 - x0)
	sy := sign(y1 - y0)
	err := dx + dy

	x, y := x0, y0
	for {
		if x == x1 && y == y1 {
			return
		}
		stepX, stepY := false, false
		e2 := 2 * err
		if e2 >= dy {
			err += dy
			stepX = true
		}
		if e2 <= dx {
			err += dx
			stepY = true
		}

		nextX, nextY := x, y
		if stepX {
			nextX += sx
		}
		if stepY {
			nextY += sy
		}

		if stepX && stepY {
			// Elbow: horizontal leg first, then vertical.
			c.linkCells(x, y, nextX, y)
			c.linkCells(nextX, y, nextX, nextY)
		} else {
			c.linkCells(x, y, nextX, nextY)
		}
		x, y = nextX, nextY
	}
}

// linkCells sets the facing direction bits on both endpoints of one
// orthogonal step.
func (c *Canvas) linkCells(x0, y0, x1, y1 int) {
	switch {
	case x1 > x0:
		c.mark(x0, y0, DirRight)
		c.mark(x1, y1, DirLeft)
	case x1 < x0:
		c.mark(x0, y0, DirLeft)
		c.mark(x1, y1, DirRight)
	case y1 > y0:
		c.mark(x0, y0, DirDown)
		c.mark(x1, y1, DirUp)
	case y1 < y0:
		c.mark(x0, y0, DirUp)
		c.mark(x1, y1, DirDown)
	}
}

// GlyphForMask maps a cell's direction mask to its box-drawing glyph.
// An empty mask is a blank, a bare point renders as a middle dot, and
// any single direction falls back to the matching straight line.
func GlyphForMask(mask uint16) rune {
	switch mask & (DirUp | DirDown | DirLeft | DirRight) {
	case 0:
		if mask&DirPoint != 0 {
			return '·'
		}
		return ' '
	case DirUp, DirDown, DirUp | DirDown:
		return '│'
	case DirLeft, DirRight, DirLeft | DirRight:
		return '─'
	case DirUp | DirLeft:
		return '┘'
	case DirUp | DirRight:
		return '└'
	case DirDown | DirLeft:
		return '┐'
	case DirDown | DirRight:
		return '┌'
	case DirUp | DirDown | DirLeft:
		return '┤'
	case DirUp | DirDown | DirRight:
		return '├'
	case DirUp | DirLeft | DirRight:
		return '┴'
	case DirDown | DirLeft | DirRight:
		return '┬'
	default:
		return '┼'
	}
}

func abs(v int) int {
	if v < 0 {
		return -v
	}
	return v
}

func sign(v int) int {
	switch {
	case v > 0:
		return 1
	case v < 0:
		return -1
	default:
		return 0
	}
}
