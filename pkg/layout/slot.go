package layout

import "github.com/matzehuels/deskgrid/pkg/grid"

// occupancy is a row-major bitmap of taken cells.
type occupancy struct {
	cfg   grid.Config
	cells []bool
}

func newOccupancy(cfg grid.Config, widgets []Widget) *occupancy {
	o := &occupancy{cfg: cfg, cells: make([]bool, cfg.Cells())}
	for _, w := range widgets {
		o.mark(w.Rect())
	}
	return o
}

// mark sets every in-grid cell of r.
func (o *occupancy) mark(r grid.Rect) {
	for y := max(r.Y, 0); y < min(r.Bottom(), o.cfg.Rows); y++ {
		for x := max(r.X, 0); x < min(r.Right(), o.cfg.Columns); x++ {
			o.cells[y*o.cfg.Columns+x] = true
		}
	}
}

// free reports whether every cell of r is inside the grid and untaken.
func (o *occupancy) free(r grid.Rect) bool {
	if !grid.WithinBounds(o.cfg, r) {
		return false
	}
	for y := r.Y; y < r.Bottom(); y++ {
		row := o.cells[y*o.cfg.Columns:]
		for x := r.X; x < r.Right(); x++ {
			if row[x] {
				return false
			}
		}
	}
	return true
}

// FindFirstSlot returns the first origin, scanning row 0 left to right, then
// row 1 and so on, where a footprint of the given size fits without
// overlapping any widget. It reports false when the grid has no such origin.
func FindFirstSlot(cfg grid.Config, widgets []Widget, size grid.Size) (grid.Point, bool) {
	return FindSlot(cfg, widgets, size, nil, nil)
}

// FindSlot is FindFirstSlot with optionally pinned coordinates: a non-nil
// x restricts the scan to that column, a non-nil y to that row.
func FindSlot(cfg grid.Config, widgets []Widget, size grid.Size, x, y *int) (grid.Point, bool) {
	if !cfg.Valid() || size.Width < 1 || size.Height < 1 ||
		size.Width > cfg.Columns || size.Height > cfg.Rows {
		return grid.Point{}, false
	}

	minX, maxX := 0, cfg.Columns-size.Width
	if x != nil {
		minX, maxX = *x, *x
	}
	minY, maxY := 0, cfg.Rows-size.Height
	if y != nil {
		minY, maxY = *y, *y
	}

	occ := newOccupancy(cfg, widgets)
	for cy := minY; cy <= maxY; cy++ {
		for cx := minX; cx <= maxX; cx++ {
			if occ.free(grid.Rect{X: cx, Y: cy, Width: size.Width, Height: size.Height}) {
				return grid.Point{X: cx, Y: cy}, true
			}
		}
	}
	return grid.Point{}, false
}

// Occupied returns the occupancy bitmap of widgets as rows of cells, for
// debug rendering.
func Occupied(cfg grid.Config, widgets []Widget) [][]bool {
	if !cfg.Valid() {
		return nil
	}
	occ := newOccupancy(cfg, widgets)
	rows := make([][]bool, cfg.Rows)
	for y := range rows {
		rows[y] = occ.cells[y*cfg.Columns : (y+1)*cfg.Columns : (y+1)*cfg.Columns]
	}
	return rows
}
