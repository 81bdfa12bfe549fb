// Package widget holds per-type widget knowledge: size constraints, default
// footprints and settings normalizers.
//
// A [Registry] maps a widget type identifier to an [Entry]. The layout
// resolver and the grid store only ever talk to the registry, so they stay
// agnostic to the concrete set of widget types. [Builtin] returns a registry
// with every type the dashboard ships with.
//
// # Normalizers
//
// Each builtin type has an Ensure<Type>Settings function that turns an
// arbitrary, untrusted value into a fully populated typed struct:
//
//	s := widget.EnsureClockSettings(map[string]any{"timeFormat": "bogus"})
//	// s.TimeFormat == "12h"
//
// Normalizers fall back to defaults field by field, keep unknown keys in an
// Extra bag and are idempotent.
package widget

import (
	"sort"

	"github.com/matzehuels/deskgrid/pkg/grid"
)

// Constraints bounds the footprint of a widget type.
type Constraints struct {
	MinWidth  int `json:"minWidth"`
	MinHeight int `json:"minHeight"`
	MaxWidth  int `json:"maxWidth"`
	MaxHeight int `json:"maxHeight"`
}

// Fit clamps s into the constraint box.
func (c Constraints) Fit(s grid.Size) grid.Size {
	return grid.Size{
		Width:  grid.Clamp(s.Width, c.MinWidth, c.MaxWidth),
		Height: grid.Clamp(s.Height, c.MinHeight, c.MaxHeight),
	}
}

// Allows reports whether s lies inside the constraint box.
func (c Constraints) Allows(s grid.Size) bool {
	return s.Width >= c.MinWidth && s.Width <= c.MaxWidth &&
		s.Height >= c.MinHeight && s.Height <= c.MaxHeight
}

// Valid reports whether the constraints are positive and ordered.
func (c Constraints) Valid() bool {
	return c.MinWidth >= 1 && c.MinHeight >= 1 &&
		c.MinWidth <= c.MaxWidth && c.MinHeight <= c.MaxHeight
}

// NormalizeFunc turns untrusted settings input into a normalized record.
type NormalizeFunc func(candidate any) Settings

// Entry describes one widget type.
type Entry struct {
	Type        string
	Constraints *Constraints // nil means unconstrained
	DefaultSize grid.Size
	Normalize   NormalizeFunc // nil means settings pass through
}

// Registry maps widget type identifiers to their entries.
// It is not safe for concurrent registration; populate it before use.
type Registry struct {
	entries map[string]Entry
}

// NewRegistry creates an empty registry.
func NewRegistry() *Registry {
	return &Registry{entries: make(map[string]Entry)}
}

// Register adds or replaces an entry.
func (r *Registry) Register(e Entry) {
	if e.Constraints != nil {
		c := *e.Constraints
		e.Constraints = &c
	}
	r.entries[e.Type] = e
}

// Lookup returns the entry for widgetType.
func (r *Registry) Lookup(widgetType string) (Entry, bool) {
	e, ok := r.entries[widgetType]
	return e, ok
}

// Constraints returns the size constraints for widgetType. The second
// result is false when the type has none, which callers must treat as
// "bounded by the grid only".
func (r *Registry) Constraints(widgetType string) (Constraints, bool) {
	e, ok := r.entries[widgetType]
	if !ok || e.Constraints == nil {
		return Constraints{}, false
	}
	return *e.Constraints, true
}

// DefaultSize returns the footprint a new widget of this type starts with.
// Unknown types start at 1x1.
func (r *Registry) DefaultSize(widgetType string) grid.Size {
	e, ok := r.entries[widgetType]
	if !ok || e.DefaultSize.Width < 1 || e.DefaultSize.Height < 1 {
		if c, ok := r.Constraints(widgetType); ok {
			return grid.Size{Width: c.MinWidth, Height: c.MinHeight}
		}
		return grid.Size{Width: 1, Height: 1}
	}
	return e.DefaultSize
}

// Normalize runs the type's normalizer on candidate. Types without a
// normalizer keep object settings verbatim; anything else becomes an empty
// record.
func (r *Registry) Normalize(widgetType string, candidate any) Settings {
	if e, ok := r.entries[widgetType]; ok && e.Normalize != nil {
		return e.Normalize(candidate)
	}
	if s, ok := AsSettings(candidate); ok {
		return s
	}
	return Settings{}
}

// Defaults returns the normalized settings for an absent candidate.
func (r *Registry) Defaults(widgetType string) Settings {
	return r.Normalize(widgetType, nil)
}

// Types returns the registered type identifiers in sorted order.
func (r *Registry) Types() []string {
	types := make([]string, 0, len(r.entries))
	for t := range r.entries {
		types = append(types, t)
	}
	sort.Strings(types)
	return types
}

// Builtin widget type identifiers.
const (
	TypeClock         = "clock"
	TypeQuicklinks    = "quicklinks"
	TypeNotes         = "notes"
	TypeTimer         = "timer"
	TypeImage         = "image"
	TypeNotifications = "notifications"
	TypeMail          = "mail"
	TypeSystemMonitor = "system-monitor"
)

// Builtin returns a fresh registry holding every builtin widget type.
func Builtin() *Registry {
	r := NewRegistry()
	r.Register(Entry{
		Type:        TypeClock,
		Constraints: &clockConstraints,
		DefaultSize: grid.Size{Width: 3, Height: 2},
		Normalize:   func(c any) Settings { return EnsureClockSettings(c).Map() },
	})
	r.Register(Entry{
		Type:        TypeQuicklinks,
		Constraints: &Constraints{MinWidth: 2, MinHeight: 2, MaxWidth: 6, MaxHeight: 8},
		DefaultSize: grid.Size{Width: 4, Height: 4},
		Normalize:   func(c any) Settings { return EnsureQuicklinksSettings(c).Map() },
	})
	r.Register(Entry{
		Type:        TypeNotes,
		Constraints: &Constraints{MinWidth: 2, MinHeight: 2, MaxWidth: 12, MaxHeight: 12},
		DefaultSize: grid.Size{Width: 4, Height: 4},
		Normalize:   func(c any) Settings { return EnsureNotesSettings(c).Map() },
	})
	r.Register(Entry{
		Type:        TypeTimer,
		Constraints: &Constraints{MinWidth: 2, MinHeight: 2, MaxWidth: 8, MaxHeight: 6},
		DefaultSize: grid.Size{Width: 3, Height: 2},
		Normalize:   func(c any) Settings { return EnsureTimerSettings(c).Map() },
	})
	r.Register(Entry{
		Type:        TypeImage,
		Constraints: &Constraints{MinWidth: 2, MinHeight: 2, MaxWidth: 24, MaxHeight: 12},
		DefaultSize: grid.Size{Width: 4, Height: 4},
		Normalize:   func(c any) Settings { return EnsureImageSettings(c).Map() },
	})
	r.Register(Entry{
		Type:        TypeNotifications,
		Constraints: &Constraints{MinWidth: 6, MinHeight: 4, MaxWidth: 24, MaxHeight: 12},
		DefaultSize: grid.Size{Width: 6, Height: 4},
		Normalize:   func(c any) Settings { return EnsureNotificationsSettings(c).Map() },
	})
	r.Register(Entry{
		Type:        TypeMail,
		Constraints: &Constraints{MinWidth: 6, MinHeight: 4, MaxWidth: 24, MaxHeight: 12},
		DefaultSize: grid.Size{Width: 6, Height: 4},
		Normalize:   func(c any) Settings { return EnsureMailSettings(c).Map() },
	})
	r.Register(Entry{
		Type:        TypeSystemMonitor,
		Constraints: &Constraints{MinWidth: 3, MinHeight: 2, MaxWidth: 12, MaxHeight: 8},
		DefaultSize: grid.Size{Width: 4, Height: 3},
		Normalize:   func(c any) Settings { return EnsureSystemMonitorSettings(c).Map() },
	})
	return r
}
