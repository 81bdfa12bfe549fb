package layout

import (
	"github.com/matzehuels/deskgrid/pkg/grid"
	"github.com/matzehuels/deskgrid/pkg/widget"
)

// Widget is one placed widget.
type Widget struct {
	ID         string          `json:"id" bson:"id" yaml:"id"`
	WidgetType string          `json:"widgetType" bson:"widgetType" yaml:"widgetType"`
	X          int             `json:"x" bson:"x" yaml:"x"`
	Y          int             `json:"y" bson:"y" yaml:"y"`
	Width      int             `json:"width" bson:"width" yaml:"width"`
	Height     int             `json:"height" bson:"height" yaml:"height"`
	Locked     bool            `json:"locked" bson:"locked" yaml:"locked"`
	Settings   widget.Settings `json:"settings,omitempty" bson:"settings,omitempty" yaml:"settings,omitempty"`
}

// Rect returns the widget's footprint on the grid.
func (w Widget) Rect() grid.Rect {
	return grid.Rect{X: w.X, Y: w.Y, Width: w.Width, Height: w.Height}
}

// withRect returns a copy of w placed at r.
func (w Widget) withRect(r grid.Rect) Widget {
	w.X, w.Y, w.Width, w.Height = r.X, r.Y, r.Width, r.Height
	return w
}

// Clone returns a deep copy of w.
func (w Widget) Clone() Widget {
	w.Settings = w.Settings.Clone()
	return w
}

// CloneAll returns a deep copy of widgets. The result is never nil.
func CloneAll(widgets []Widget) []Widget {
	out := make([]Widget, len(widgets))
	for i, w := range widgets {
		out[i] = w.Clone()
	}
	return out
}

// IndexOf returns the position of the widget with the given id, or -1.
func IndexOf(widgets []Widget, id string) int {
	for i, w := range widgets {
		if w.ID == id {
			return i
		}
	}
	return -1
}

// Find returns a copy of the widget with the given id.
func Find(widgets []Widget, id string) (Widget, bool) {
	if i := IndexOf(widgets, id); i >= 0 {
		return widgets[i].Clone(), true
	}
	return Widget{}, false
}

// Collides returns the id of the first widget overlapping r, ignoring the
// widget named excludeID.
func Collides(widgets []Widget, r grid.Rect, excludeID string) (string, bool) {
	for _, w := range widgets {
		if excludeID != "" && w.ID == excludeID {
			continue
		}
		if grid.Overlaps(w.Rect(), r) {
			return w.ID, true
		}
	}
	return "", false
}
