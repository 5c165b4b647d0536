package core

// Surface is the pixel contract the game needs from a display driver.
// The same cells serve as render target and as occupancy oracle, so a
// pixel painted during a tick must read back immediately in that tick.
type Surface interface {
	// SetPixel turns a single cell on or off.
	// Out-of-bounds points are ignored.
	SetPixel(p Point, on bool)

	// Pixel reports whether a cell is lit.
	// Out-of-bounds points read as off.
	Pixel(p Point) bool

	// Clear turns every cell off.
	Clear()
}

// Bitmap is an in-memory Surface backed by a single grid of booleans.
// There is no double buffering: writes are visible to the next read.
type Bitmap struct {
	rows  int
	cols  int
	cells []bool
}

// NewBitmap creates a bitmap with all cells off.
func NewBitmap(rows, cols int) *Bitmap {
	return &Bitmap{
		rows:  rows,
		cols:  cols,
		cells: make([]bool, rows*cols),
	}
}

// Rows returns the number of rows.
func (b *Bitmap) Rows() int {
	return b.rows
}

// Cols returns the number of columns.
func (b *Bitmap) Cols() int {
	return b.cols
}

// Bounds returns the grid as a rectangle anchored at the origin.
func (b *Bitmap) Bounds() Rect {
	return NewRect(0, 0, b.cols, b.rows)
}

// SetPixel paints a cell.
func (b *Bitmap) SetPixel(p Point, on bool) {
	if !b.Bounds().ContainsPoint(p) {
		return
	}
	b.cells[p.Row*b.cols+p.Col] = on
}

// Pixel queries the occupancy of a cell.
func (b *Bitmap) Pixel(p Point) bool {
	if !b.Bounds().ContainsPoint(p) {
		return false
	}
	return b.cells[p.Row*b.cols+p.Col]
}

// Clear turns all cells off.
func (b *Bitmap) Clear() {
	for i := range b.cells {
		b.cells[i] = false
	}
}

// FillRect paints every cell of r inside the grid.
func (b *Bitmap) FillRect(r Rect, on bool) {
	for y := r.Y; y < r.Bottom(); y++ {
		for x := r.X; x < r.Right(); x++ {
			b.SetPixel(Pt(y, x), on)
		}
	}
}

// Lit returns the number of cells that are on.
func (b *Bitmap) Lit() int {
	n := 0
	for _, on := range b.cells {
		if on {
			n++
		}
	}
	return n
}

// Clone returns an independent copy, used to hand frames to other goroutines.
func (b *Bitmap) Clone() *Bitmap {
	c := &Bitmap{
		rows:  b.rows,
		cols:  b.cols,
		cells: make([]bool, len(b.cells)),
	}
	copy(c.cells, b.cells)
	return c
}

var _ Surface = (*Bitmap)(nil)
