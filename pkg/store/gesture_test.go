package store

import (
	"reflect"
	"testing"

	"github.com/matzehuels/deskgrid/pkg/grid"
	"github.com/matzehuels/deskgrid/pkg/widget"
)

func TestMoveGestureCommit(t *testing.T) {
	s := newLoaded(t)
	id, _ := s.AddWidget(widget.TypeClock, at(0, 0))

	commits := 0
	s.Subscribe(func(Snapshot) { commits++ })

	g, ok := s.BeginMove(id)
	if !ok {
		t.Fatal("BeginMove failed")
	}
	for i := 0; i < 4; i++ {
		g.Nudge(1, 0)
	}
	g.Nudge(0, 2)

	if commits != 0 {
		t.Fatalf("gesture changed committed state %d times before Commit", commits)
	}
	if w, _ := s.Widget(id); w.X != 0 || w.Y != 0 {
		t.Fatalf("widget moved before Commit: %s", w.Rect())
	}
	if got := g.Preview(); got != (grid.Rect{X: 4, Y: 2, Width: 3, Height: 2}) {
		t.Errorf("Preview = %s, want 3x2@(4,2)", got)
	}
	if !g.Valid() {
		t.Error("Valid = false for a free target")
	}

	if !g.Commit() {
		t.Fatal("Commit failed")
	}
	if commits != 1 {
		t.Errorf("commits = %d, want exactly 1", commits)
	}
	if w, _ := s.Widget(id); w.X != 4 || w.Y != 2 {
		t.Errorf("widget at (%d,%d), want (4,2)", w.X, w.Y)
	}
	if g.Active() || g.Commit() {
		t.Error("gesture should be finished after Commit")
	}
}

func TestMoveGesturePreviewStaysInGrid(t *testing.T) {
	s := newLoaded(t)
	id, _ := s.AddWidget(widget.TypeClock, at(0, 0))

	g, _ := s.BeginMove(id)
	g.Nudge(-5, -5)
	if got := g.Preview(); got.X != 0 || got.Y != 0 {
		t.Errorf("Preview = %s, want origin clamped to (0,0)", got)
	}
	g.Set(grid.Rect{X: 100, Y: 100, Width: 1, Height: 1})
	if got := g.Preview(); got != (grid.Rect{X: 21, Y: 10, Width: 3, Height: 2}) {
		t.Errorf("Preview = %s, want 3x2@(21,10)", got)
	}
}

func TestGestureCancelLeavesStateUntouched(t *testing.T) {
	s := newLoaded(t)
	id, _ := s.AddWidget(widget.TypeNotes, at(0, 0))
	before := s.Snapshot()

	g, _ := s.BeginResize(id)
	g.Nudge(3, 2)
	g.Cancel()

	if g.Active() {
		t.Error("Active = true after Cancel")
	}
	if g.Commit() {
		t.Error("Commit after Cancel should fail")
	}
	if !reflect.DeepEqual(s.Snapshot(), before) {
		t.Error("cancelled gesture changed the store")
	}
}

func TestResizeGesture(t *testing.T) {
	s := newLoaded(t)
	id, _ := s.AddWidget(widget.TypeNotes, at(0, 0))

	g, ok := s.BeginResize(id)
	if !ok {
		t.Fatal("BeginResize failed")
	}
	g.Nudge(2, -1)
	if got := g.Preview(); got != (grid.Rect{X: 0, Y: 0, Width: 6, Height: 3}) {
		t.Errorf("Preview = %s, want 6x3@(0,0)", got)
	}
	g.Nudge(-10, -10)
	if got := g.Preview().Size(); got != (grid.Size{Width: 2, Height: 2}) {
		t.Errorf("Preview size = %s, want notes minimum 2x2", got)
	}
	if !g.Commit() {
		t.Fatal("Commit failed")
	}
	if w, _ := s.Widget(id); w.Width != 2 || w.Height != 2 {
		t.Errorf("size = %dx%d, want 2x2", w.Width, w.Height)
	}
}

func TestGestureOntoOccupiedCells(t *testing.T) {
	s := newLoaded(t)
	a, _ := s.AddWidget(widget.TypeClock, at(0, 0))
	s.AddWidget(widget.TypeClock, at(5, 0))
	before := s.Snapshot()

	g, _ := s.BeginMove(a)
	g.Nudge(4, 0)
	if g.Valid() {
		t.Error("Valid = true over another widget")
	}
	if g.Commit() {
		t.Error("Commit onto another widget should fail")
	}
	if !reflect.DeepEqual(s.Snapshot(), before) {
		t.Error("rejected gesture changed the store")
	}
}

func TestBeginGestureRejectsLockedAndUnknown(t *testing.T) {
	s := newLoaded(t)
	id, _ := s.AddWidget(widget.TypeClock, nil)
	s.SetWidgetLock(id, true)

	if _, ok := s.BeginMove(id); ok {
		t.Error("BeginMove on locked widget should fail")
	}
	if _, ok := s.BeginResize("missing"); ok {
		t.Error("BeginResize on unknown widget should fail")
	}
}

func TestGestureWithoutMovementCommitsNothing(t *testing.T) {
	s := newLoaded(t)
	id, _ := s.AddWidget(widget.TypeClock, nil)

	commits := 0
	s.Subscribe(func(Snapshot) { commits++ })

	g, _ := s.BeginMove(id)
	if !g.Commit() {
		t.Error("empty gesture Commit = false")
	}
	if commits != 0 {
		t.Errorf("commits = %d, want 0", commits)
	}
}
