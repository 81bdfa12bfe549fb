// Package grid provides the cell geometry shared by every layout component.
//
// All coordinates are integer cells. A [Rect] is anchored at its top-left
// cell and covers Width columns and Height rows. Two rectangles overlap only
// when they share at least one cell; rectangles that merely touch along an
// edge do not overlap.
//
// Everything in this package is pure and deterministic.
package grid

import "fmt"

// Default grid dimensions used when no dashboard has been loaded yet.
const (
	DefaultColumns = 24
	DefaultRows    = 12
)

// Config defines the coordinate space of a dashboard.
type Config struct {
	Columns int `json:"columns" bson:"columns" toml:"columns"`
	Rows    int `json:"rows" bson:"rows" toml:"rows"`
}

// Default returns the default 24x12 grid.
func Default() Config {
	return Config{Columns: DefaultColumns, Rows: DefaultRows}
}

// Valid reports whether both dimensions are positive.
func (c Config) Valid() bool {
	return c.Columns > 0 && c.Rows > 0
}

// Cells returns the number of cells in the grid.
func (c Config) Cells() int {
	return c.Columns * c.Rows
}

// Size returns the grid dimensions as a Size.
func (c Config) Size() Size {
	return Size{Width: c.Columns, Height: c.Rows}
}

func (c Config) String() string {
	return fmt.Sprintf("%dx%d", c.Columns, c.Rows)
}

// Point is a cell coordinate.
type Point struct {
	X int `json:"x"`
	Y int `json:"y"`
}

// Size is a footprint in cells.
type Size struct {
	Width  int `json:"width"`
	Height int `json:"height"`
}

func (s Size) String() string {
	return fmt.Sprintf("%dx%d", s.Width, s.Height)
}

// Rect is an axis-aligned rectangle of cells.
type Rect struct {
	X      int `json:"x"`
	Y      int `json:"y"`
	Width  int `json:"width"`
	Height int `json:"height"`
}

// NewRect builds a Rect from an origin and a size.
func NewRect(p Point, s Size) Rect {
	return Rect{X: p.X, Y: p.Y, Width: s.Width, Height: s.Height}
}

// Origin returns the top-left cell.
func (r Rect) Origin() Point { return Point{X: r.X, Y: r.Y} }

// Size returns the footprint.
func (r Rect) Size() Size { return Size{Width: r.Width, Height: r.Height} }

// Right returns the first column to the right of the rectangle.
func (r Rect) Right() int { return r.X + r.Width }

// Bottom returns the first row below the rectangle.
func (r Rect) Bottom() int { return r.Y + r.Height }

// Contains reports whether the cell p lies inside r.
func (r Rect) Contains(p Point) bool {
	return p.X >= r.X && p.X < r.Right() && p.Y >= r.Y && p.Y < r.Bottom()
}

func (r Rect) String() string {
	return fmt.Sprintf("%dx%d@(%d,%d)", r.Width, r.Height, r.X, r.Y)
}

// Clamp restricts value to [min, max]. When min > max, min wins.
func Clamp(value, min, max int) int {
	if value > max {
		value = max
	}
	if value < min {
		value = min
	}
	return value
}

// Overlaps reports whether a and b share at least one cell.
func Overlaps(a, b Rect) bool {
	return !(a.X >= b.Right() ||
		a.Right() <= b.X ||
		a.Y >= b.Bottom() ||
		a.Bottom() <= b.Y)
}

// WithinBounds reports whether r lies fully inside the grid and has a
// positive footprint.
func WithinBounds(c Config, r Rect) bool {
	return r.X >= 0 &&
		r.Y >= 0 &&
		r.Width >= 1 &&
		r.Height >= 1 &&
		r.Width <= c.Columns-r.X &&
		r.Height <= c.Rows-r.Y
}
