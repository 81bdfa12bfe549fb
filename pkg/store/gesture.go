package store

import (
	"github.com/matzehuels/deskgrid/pkg/grid"
	"github.com/matzehuels/deskgrid/pkg/layout"
)

// GestureKind tells a move gesture from a resize gesture.
type GestureKind int

const (
	GestureMove GestureKind = iota
	GestureResize
)

func (k GestureKind) String() string {
	if k == GestureResize {
		return "resize"
	}
	return "move"
}

// Gesture is a pending drag or resize. It keeps its preview rectangle
// outside the committed collection; only Commit touches the store, with
// exactly one operation.
type Gesture struct {
	store  *Store
	kind   GestureKind
	id     string
	start  grid.Rect
	target grid.Rect
	done   bool
}

// BeginMove starts a move gesture. It fails for unknown or locked widgets.
func (s *Store) BeginMove(id string) (*Gesture, bool) {
	return s.begin(id, GestureMove)
}

// BeginResize starts a resize gesture. It fails for unknown or locked
// widgets.
func (s *Store) BeginResize(id string) (*Gesture, bool) {
	return s.begin(id, GestureResize)
}

func (s *Store) begin(id string, kind GestureKind) (*Gesture, bool) {
	w, ok := s.Widget(id)
	if !ok || w.Locked {
		return nil, false
	}
	return &Gesture{store: s, kind: kind, id: id, start: w.Rect(), target: w.Rect()}, true
}

// Kind returns the gesture kind.
func (g *Gesture) Kind() GestureKind { return g.kind }

// WidgetID returns the id of the widget being dragged or resized.
func (g *Gesture) WidgetID() string { return g.id }

// Active reports whether the gesture has neither been committed nor
// cancelled.
func (g *Gesture) Active() bool { return !g.done }

// Nudge shifts the preview by (dx, dy): the origin for a move, the far
// corner for a resize.
func (g *Gesture) Nudge(dx, dy int) {
	if g.done {
		return
	}
	r := g.Preview()
	if g.kind == GestureMove {
		r.X += dx
		r.Y += dy
	} else {
		r.Width += dx
		r.Height += dy
	}
	g.target = r
}

// Set replaces the preview target. A move only uses r's origin.
func (g *Gesture) Set(r grid.Rect) {
	if g.done {
		return
	}
	if g.kind == GestureMove {
		r.Width, r.Height = g.start.Width, g.start.Height
	}
	g.target = r
}

// Preview returns the rectangle the widget would occupy if the gesture were
// committed now, after clamping.
func (g *Gesture) Preview() grid.Rect {
	s := g.store
	w, ok := s.Widget(g.id)
	if !ok {
		return g.target
	}
	return s.resolver.Fit(w.WidgetType, g.target, s.grid)
}

// Valid reports whether committing now would succeed on the current
// collection.
func (g *Gesture) Valid() bool {
	if g.done {
		return false
	}
	w, ok := g.store.Widget(g.id)
	if !ok || w.Locked {
		return false
	}
	r := g.Preview()
	return grid.WithinBounds(g.store.grid, r) && !g.store.IsPositionOccupied(r, g.id)
}

// Commit ends the gesture with a single store operation and reports
// whether it was accepted. An unchanged preview commits nothing and
// succeeds.
func (g *Gesture) Commit() bool {
	if g.done {
		return false
	}
	g.done = true

	r := g.Preview()
	if r == g.start {
		return true
	}

	var op layout.Operation
	if g.kind == GestureMove {
		op = layout.MoveWidget{ID: g.id, X: layout.Int(r.X), Y: layout.Int(r.Y)}
	} else {
		op = layout.ResizeWidget{ID: g.id, Width: r.Width, Height: r.Height, X: layout.Int(r.X), Y: layout.Int(r.Y)}
	}
	return g.store.ApplyOperation(op)
}

// Cancel ends the gesture without touching the store.
func (g *Gesture) Cancel() {
	g.done = true
}
