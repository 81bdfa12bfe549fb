// Package pkg provides the core libraries for deskgrid dashboard layouts.
//
// # Overview
//
// deskgrid keeps a dashboard of widgets on a fixed grid of cells. Every
// widget occupies a rectangle; no two rectangles overlap, none leaves the
// grid, and each respects the size limits of its widget type. The pkg
// directory is organized into three areas:
//
//  1. Domain logic: [grid], [widget], [layout], [store]
//  2. Persistence: [persist], [cache], [dashboard]
//  3. Support: [config], [io], [errors], [observability], [buildinfo]
//
// # Architecture
//
// The data flow of a single change:
//
//	layout.Operation (CLI flag, HTTP body, script entry, board gesture)
//	         ↓
//	    [store] Store.Apply
//	         ↓
//	    [layout] Resolver.Resolve (bounds, constraints, collisions)
//	         ↓
//	    commit + subscribers
//	         ↓
//	    [dashboard] autosave → [persist] Repository → [cache] or MongoDB
//
// Loading runs the other way: the repository returns a stored document,
// [persist.Recover] migrates and sanitizes it, and the store is seeded with
// the result. Recovery never fails; the worst case is an empty dashboard.
//
// # Quick Start
//
//	repo := persist.NewCacheRepository(cache.NewMemoryCache(), "default")
//	svc, _ := dashboard.Open(ctx, repo)
//	defer svc.Close()
//
//	id, err := svc.Store().Add(widget.TypeClock, nil)
//	if errors.IsRejection(err) {
//	    // collision, out of bounds, locked, ...
//	}
//	svc.Store().Apply(layout.MoveWidget{ID: id, X: layout.Int(4), Y: layout.Int(2)})
//
// # Main Packages
//
// [grid] - Grid dimensions, cell rectangles and the clamp, overlap and
// bounds predicates everything else is built on.
//
// [widget] - The widget type registry: size constraints, default sizes and
// settings normalization for the built-in types.
//
// [layout] - Widgets, the closed set of operations, the resolver that
// validates them, first-free-slot search and sanitization of untrusted
// collections.
//
// [store] - The single owner of a dashboard's live state. Applies
// operations atomically, notifies subscribers and runs move and resize
// gestures with a preview.
//
// [persist] - Versioned documents, migrations, recovery and repositories
// over a [cache.Cache] or MongoDB.
//
// [dashboard] - Opens a profile, recovers it into a store and saves every
// committed change.
//
// [io] - JSON import and export of documents and operation scripts in JSON
// or YAML.
//
// [grid]: https://pkg.go.dev/github.com/matzehuels/deskgrid/pkg/grid
// [widget]: https://pkg.go.dev/github.com/matzehuels/deskgrid/pkg/widget
// [layout]: https://pkg.go.dev/github.com/matzehuels/deskgrid/pkg/layout
// [store]: https://pkg.go.dev/github.com/matzehuels/deskgrid/pkg/store
// [persist]: https://pkg.go.dev/github.com/matzehuels/deskgrid/pkg/persist
// [persist.Recover]: https://pkg.go.dev/github.com/matzehuels/deskgrid/pkg/persist#Recover
// [cache]: https://pkg.go.dev/github.com/matzehuels/deskgrid/pkg/cache
// [cache.Cache]: https://pkg.go.dev/github.com/matzehuels/deskgrid/pkg/cache#Cache
// [dashboard]: https://pkg.go.dev/github.com/matzehuels/deskgrid/pkg/dashboard
// [config]: https://pkg.go.dev/github.com/matzehuels/deskgrid/pkg/config
// [io]: https://pkg.go.dev/github.com/matzehuels/deskgrid/pkg/io
// [errors]: https://pkg.go.dev/github.com/matzehuels/deskgrid/pkg/errors
// [observability]: https://pkg.go.dev/github.com/matzehuels/deskgrid/pkg/observability
// [buildinfo]: https://pkg.go.dev/github.com/matzehuels/deskgrid/pkg/buildinfo
package pkg
