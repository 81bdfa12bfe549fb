package layout

import (
	"fmt"

	"github.com/matzehuels/deskgrid/pkg/errors"
	"github.com/matzehuels/deskgrid/pkg/grid"
)

// Issue describes one widget that Sanitize had to repair or drop.
type Issue struct {
	WidgetID string      `json:"widgetId"`
	Code     errors.Code `json:"code"`
	Message  string      `json:"message"`
	Dropped  bool        `json:"dropped"`
}

func (i Issue) String() string {
	action := "fixed"
	if i.Dropped {
		action = "dropped"
	}
	return fmt.Sprintf("%s %s (%s): %s", action, i.WidgetID, i.Code, i.Message)
}

// Sanitize turns an untrusted collection into one that satisfies every
// layout invariant on cfg. Widgets are processed in order: each is fitted
// into its constraints and the grid and its settings are normalized. A
// widget is dropped when its id or type is invalid, its id repeats an
// earlier one, or it overlaps a widget kept before it. Empty ids are
// generated.
func (r *Resolver) Sanitize(cfg grid.Config, widgets []Widget) ([]Widget, []Issue) {
	var issues []Issue
	drop := func(id string, code errors.Code, format string, args ...any) {
		issues = append(issues, Issue{WidgetID: id, Code: code, Message: fmt.Sprintf(format, args...), Dropped: true})
	}

	out := make([]Widget, 0, len(widgets))
	seen := make(map[string]bool, len(widgets))
	for _, w := range widgets {
		w = w.Clone()

		if err := errors.ValidateWidgetType(w.WidgetType); err != nil {
			drop(w.ID, errors.ErrCodeInvalidInput, "%s", errors.UserMessage(err))
			continue
		}
		if w.ID == "" {
			w.ID = r.newID(w.WidgetType)
			issues = append(issues, Issue{WidgetID: w.ID, Code: errors.ErrCodeInvalidInput, Message: "generated missing id"})
		}
		if err := errors.ValidateWidgetID(w.ID); err != nil {
			drop(w.ID, errors.ErrCodeInvalidInput, "%s", errors.UserMessage(err))
			continue
		}
		if seen[w.ID] {
			drop(w.ID, errors.ErrCodeDuplicateID, "duplicate id")
			continue
		}

		fitted := r.Fit(w.WidgetType, w.Rect(), cfg)
		if fitted != w.Rect() {
			issues = append(issues, Issue{
				WidgetID: w.ID,
				Code:     errors.ErrCodeOutOfBounds,
				Message:  fmt.Sprintf("clamped %s to %s", w.Rect(), fitted),
			})
			w = w.withRect(fitted)
		}
		if other, hit := Collides(out, w.Rect(), ""); hit {
			drop(w.ID, errors.ErrCodeCollision, "overlaps %s", other)
			continue
		}

		w.Settings = r.registry.Normalize(w.WidgetType, w.Settings)
		seen[w.ID] = true
		out = append(out, w)
	}
	return out, issues
}

// Reclamp fits every widget into cfg and normalizes its settings without
// dropping anything. It is the post-commit pass of the store; on a
// collection produced by Resolve it changes nothing but settings drift.
func (r *Resolver) Reclamp(cfg grid.Config, widgets []Widget) []Widget {
	out := CloneAll(widgets)
	for i := range out {
		out[i] = out[i].withRect(r.Fit(out[i].WidgetType, out[i].Rect(), cfg))
		out[i].Settings = r.registry.Normalize(out[i].WidgetType, out[i].Settings)
	}
	return out
}
