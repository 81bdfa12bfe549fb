// Package layout resolves layout operations against a widget grid.
//
// # Overview
//
// A dashboard is a [grid.Config] plus an insertion-ordered collection of
// [Widget] values. Every change to the collection is expressed as an
// [Operation] (add, move, resize, remove, set-lock, set-settings) and run
// through [Resolver.Resolve], a pure function that either returns a new,
// valid collection or rejects the operation as a whole:
//
//	next, err := resolver.Resolve(layout.MoveWidget{ID: "clock-1", X: layout.Int(5)}, cfg, widgets)
//	if errors.IsRejection(err) {
//	    // the drop target is occupied, locked or gone; nothing changed
//	}
//
// Resolve never mutates its inputs.
//
// # Invariants
//
// Every collection returned by Resolve satisfies:
//   - each widget lies inside the grid
//   - each footprint respects its type's constraints, intersected with the grid
//   - no two widgets overlap (touching edges are fine)
//   - settings are the output of the type's normalizer
//
// Requested rectangles are clamped first ("fit") and checked second: a
// request that can be clamped into the grid is accepted, one that still
// collides is rejected without any partial effect.
//
// # Placement
//
// [FindFirstSlot] scans candidate origins in row-major order and returns the
// first one where a footprint fits. Callers rely on that order being stable.
//
// # Untrusted Collections
//
// [Resolver.Sanitize] re-validates a collection that did not come out of
// Resolve, such as one read from disk, and reports every widget it had to
// fix or drop.
//
// # Wire Format
//
// Operations travel as tagged JSON (or YAML) objects:
//
//	{"type": "addWidget", "widgetType": "clock", "layout": {"x": 0, "y": 0, "width": 3, "height": 2}}
//	{"type": "moveWidget", "id": "clock-1", "x": 5, "y": 5}
//	{"type": "resizeWidget", "id": "clock-1", "width": 4, "height": 3}
//	{"type": "removeWidget", "id": "clock-1"}
//	{"type": "setWidgetLock", "id": "clock-1", "locked": true}
//	{"type": "setWidgetSettings", "id": "clock-1", "settings": {"timeFormat": "24h"}}
//
// See [DecodeOperation] and [EncodeOperation].
package layout
