package io

import (
	"path/filepath"
	"testing"

	"github.com/matzehuels/deskgrid/pkg/layout"
	"github.com/matzehuels/deskgrid/pkg/persist"
	"github.com/matzehuels/deskgrid/pkg/store"
)

var examplesDir = filepath.Join("..", "..", "examples")

// TestExampleScripts runs the shipped scripts in order on an empty dashboard.
func TestExampleScripts(t *testing.T) {
	s := store.New()
	s.LoadDashboard(nil)

	for _, name := range []string{"starter.yaml", "rearrange.json"} {
		ops, err := ImportOperations(filepath.Join(examplesDir, "scripts", name))
		if err != nil {
			t.Fatalf("ImportOperations(%s) error: %v", name, err)
		}
		for i, op := range ops {
			if err := s.Apply(op); err != nil {
				t.Errorf("%s operation %d (%s): %v", name, i+1, op.Kind(), err)
			}
		}
	}

	ws := s.Widgets()
	if len(ws) != 3 {
		t.Fatalf("widgets = %d, want 3", len(ws))
	}
	notes, ok := layout.Find(ws, "notes")
	if !ok {
		t.Fatal("notes missing")
	}
	if notes.X != 10 || notes.Width != 8 || notes.Height != 6 {
		t.Errorf("notes = %v, want 8x6 at x 10", notes.Rect())
	}
	if notes.Settings["content"] != "standup at 10" {
		t.Errorf("notes content = %v", notes.Settings["content"])
	}
	if clock, _ := layout.Find(ws, "clock"); !clock.Locked {
		t.Error("clock should be locked")
	}
}

func TestExampleLegacyDashboard(t *testing.T) {
	d, err := ImportJSON(filepath.Join(examplesDir, "dashboards", "v0-legacy.json"))
	if err != nil {
		t.Fatalf("ImportJSON() error: %v", err)
	}

	res := persist.Recover(d, nil)
	if res.Mode != persist.ModePartial {
		t.Errorf("Mode = %v, want %v", res.Mode, persist.ModePartial)
	}
	if res.Document.Version != persist.CurrentVersion {
		t.Errorf("Version = %d, want %d", res.Document.Version, persist.CurrentVersion)
	}
	if got := len(res.Document.Widgets); got != 2 {
		t.Errorf("widgets = %d, want 2 (stray overlaps mail)", got)
	}
}
