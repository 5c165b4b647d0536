// Package core provides the small shared types of the dodgeball platform:
// the pixel surface, grid geometry, input frames and the character screen
// used by the terminal front end. It has no external dependencies so the
// game logic built on top of it stays pure and testable.
package core

// Point addresses one cell of a grid.
// Row grows toward the local player, Col grows to the right.
type Point struct {
	Row int
	Col int
}

// Pt is shorthand for Point{Row: row, Col: col}.
func Pt(row, col int) Point {
	return Point{Row: row, Col: col}
}

// Rect is an axis-aligned block of cells used for drawing and bounds checks.
type Rect struct {
	X, Y int // Top-left corner (X = column, Y = row)
	W, H int // Width and height in cells
}

// NewRect creates a new rectangle with the given position and dimensions.
func NewRect(x, y, w, h int) Rect {
	return Rect{X: x, Y: y, W: w, H: h}
}

// Right returns the x-coordinate just past the right edge.
func (r Rect) Right() int {
	return r.X + r.W
}

// Bottom returns the y-coordinate just past the bottom edge.
func (r Rect) Bottom() int {
	return r.Y + r.H
}

// Contains returns true if the point (x, y) is inside this rectangle.
func (r Rect) Contains(x, y int) bool {
	return x >= r.X && x < r.Right() && y >= r.Y && y < r.Bottom()
}

// ContainsPoint reports whether p lies inside the rectangle.
func (r Rect) ContainsPoint(p Point) bool {
	return r.Contains(p.Col, p.Row)
}

// Clamp restricts a value to be within [min, max].
func Clamp(val, min, max int) int {
	if val < min {
		return min
	}
	if val > max {
		return max
	}
	return val
}

// Min returns the smaller of two integers.
func Min(a, b int) int {
	if a < b {
		return a
	}
	return b
}

// Max returns the larger of two integers.
func Max(a, b int) int {
	if a > b {
		return a
	}
	return b
}
