// Package store provides the grid store: the stateful owner of one
// dashboard's grid and widget collection.
//
// A [Store] is constructed explicitly with [New]; there is no package-level
// instance. Every mutation goes through a [layout.Operation] that the store
// hands to a [layout.Resolver]. On success the store re-clamps every widget,
// re-normalizes every widget's settings and commits the result; on
// rejection nothing changes.
//
// # Concurrency
//
// A Store is synchronous and not safe for concurrent use. Each call runs to
// completion before the next one starts, so callers that share a store
// across goroutines (an HTTP server, for example) must serialize access
// themselves. Subscribers are notified after the commit, outside of any
// half-updated state.
//
// # Usage
//
//	s := store.New(store.WithLogger(logger))
//	s.LoadDashboard(nil)
//
//	id, ok := s.AddWidget(widget.TypeClock, nil)
//	if !ok {
//	    // grid is full
//	}
//	s.MoveWidget(id, 5, 3)
package store

import (
	"io"
	"time"

	"github.com/charmbracelet/log"

	"github.com/matzehuels/deskgrid/pkg/errors"
	"github.com/matzehuels/deskgrid/pkg/grid"
	"github.com/matzehuels/deskgrid/pkg/layout"
	"github.com/matzehuels/deskgrid/pkg/observability"
	"github.com/matzehuels/deskgrid/pkg/widget"
)

// Seed is a previously persisted dashboard handed to LoadDashboard.
type Seed struct {
	Grid      grid.Config
	Widgets   []layout.Widget
	DebugGrid bool
}

// Snapshot is a read-only copy of the store state.
type Snapshot struct {
	Grid      grid.Config     `json:"grid"`
	Widgets   []layout.Widget `json:"widgets"`
	DebugGrid bool            `json:"debugGrid"`
	Loaded    bool            `json:"loaded"`
}

// Placement is the optional part of an add request. Zero sizes mean the
// type's default footprint; nil coordinates mean "first free slot".
type Placement struct {
	ID            string
	X, Y          *int
	Width, Height int
	Locked        bool
	Settings      any
}

// Store owns one dashboard's layout state.
type Store struct {
	registry *widget.Registry
	resolver *layout.Resolver
	logger   *log.Logger

	grid      grid.Config
	widgets   []layout.Widget
	loaded    bool
	debugGrid bool

	subscribers []subscriber
	nextSubID   int
}

type subscriber struct {
	id int
	fn func(Snapshot)
}

// Option configures a Store.
type Option func(*Store)

// WithRegistry sets the widget registry. The default is widget.Builtin().
func WithRegistry(r *widget.Registry) Option {
	return func(s *Store) {
		if r != nil {
			s.registry = r
		}
	}
}

// WithResolver sets the resolver. Its registry takes precedence over
// WithRegistry.
func WithResolver(r *layout.Resolver) Option {
	return func(s *Store) {
		if r != nil {
			s.resolver = r
		}
	}
}

// WithLogger sets the logger. The default discards everything.
func WithLogger(l *log.Logger) Option {
	return func(s *Store) {
		if l != nil {
			s.logger = l
		}
	}
}

// New creates an unloaded store on the default grid.
func New(opts ...Option) *Store {
	s := &Store{
		registry: widget.Builtin(),
		logger:   log.New(io.Discard),
		grid:     grid.Default(),
		widgets:  []layout.Widget{},
	}
	for _, opt := range opts {
		opt(s)
	}
	if s.resolver == nil {
		s.resolver = layout.NewResolver(s.registry)
	}
	s.registry = s.resolver.Registry()
	return s
}

// LoadDashboard initializes the store. A nil seed yields the default grid
// with no widgets; otherwise the seed is re-validated before it is trusted
// and every repair is returned. An invalid seed grid falls back to the
// default grid.
func (s *Store) LoadDashboard(seed *Seed) []layout.Issue {
	var issues []layout.Issue

	cfg := grid.Default()
	widgets := []layout.Widget{}
	debug := false
	if seed != nil {
		if seed.Grid.Valid() {
			cfg = seed.Grid
		} else {
			issues = append(issues, layout.Issue{
				Code:    errors.ErrCodeInvalidConfig,
				Message: "invalid grid " + seed.Grid.String() + ", using " + cfg.String(),
			})
		}
		var fixed []layout.Issue
		widgets, fixed = s.resolver.Sanitize(cfg, seed.Widgets)
		issues = append(issues, fixed...)
		debug = seed.DebugGrid
	}

	s.grid = cfg
	s.widgets = widgets
	s.debugGrid = debug
	s.loaded = true

	for _, is := range issues {
		s.logger.Warn("dashboard repaired", "widget", is.WidgetID, "code", is.Code, "detail", is.Message, "dropped", is.Dropped)
	}
	s.logger.Debug("dashboard loaded", "grid", cfg, "widgets", len(widgets), "issues", len(issues))
	observability.Layout().OnLoad(len(widgets), len(issues))

	s.notify()
	return issues
}

// Apply runs op through the resolver and commits the result. Rejections
// come back as coded errors (see errors.IsRejection) and leave the state
// untouched.
func (s *Store) Apply(op layout.Operation) error {
	if op == nil {
		return errors.New(errors.ErrCodeInvalidOperation, "nil operation")
	}

	start := time.Now()
	next, err := s.resolver.Resolve(op, s.grid, s.widgets)
	if err == nil {
		next = s.resolver.Reclamp(s.grid, next)
	}
	observability.Layout().OnOperation(op.Kind(), time.Since(start), err)

	if err != nil {
		if errors.IsRejection(err) {
			s.logger.Debug("operation rejected", "op", op.Kind(), "code", errors.GetCode(err), "reason", errors.UserMessage(err))
		} else {
			s.logger.Warn("operation failed", "op", op.Kind(), "err", err)
		}
		return err
	}

	s.widgets = next
	s.logger.Debug("operation applied", "op", op.Kind(), "widgets", len(next))
	s.notify()
	return nil
}

// ApplyOperation is Apply reduced to success or failure.
func (s *Store) ApplyOperation(op layout.Operation) bool {
	return s.Apply(op) == nil
}

// Add places a widget of widgetType. The footprint is p's size (or the
// type's default size) fitted to the type's constraints; without explicit
// coordinates the first free slot is used, and with only one of them the
// first free slot along that column or row. It returns the new widget's id.
func (s *Store) Add(widgetType string, p *Placement) (string, error) {
	if p == nil {
		p = &Placement{}
	}

	size := s.registry.DefaultSize(widgetType)
	if p.Width > 0 {
		size.Width = p.Width
	}
	if p.Height > 0 {
		size.Height = p.Height
	}
	rect := s.resolver.Fit(widgetType, grid.Rect{Width: size.Width, Height: size.Height}, s.grid)

	switch {
	case p.X != nil && p.Y != nil:
		rect.X, rect.Y = *p.X, *p.Y
	default:
		// A pinned coordinate is clamped like any add, then the free one is
		// searched.
		var x, y *int
		if p.X != nil {
			x = layout.Int(grid.Clamp(*p.X, 0, s.grid.Columns-rect.Width))
		}
		if p.Y != nil {
			y = layout.Int(grid.Clamp(*p.Y, 0, s.grid.Rows-rect.Height))
		}
		origin, ok := layout.FindSlot(s.grid, s.widgets, rect.Size(), x, y)
		if !ok {
			err := errors.New(errors.ErrCodeNoFreeSlot, "no free %s slot for %s", rect.Size(), widgetType)
			s.logger.Debug("operation rejected", "op", layout.KindAddWidget, "code", err.Code, "reason", err.Message)
			return "", err
		}
		rect.X, rect.Y = origin.X, origin.Y
	}

	op := layout.AddWidget{
		WidgetType: widgetType,
		Layout: layout.Slot{
			ID:       p.ID,
			X:        rect.X,
			Y:        rect.Y,
			Width:    rect.Width,
			Height:   rect.Height,
			Locked:   p.Locked,
			Settings: p.Settings,
		},
	}
	if err := s.Apply(op); err != nil {
		return "", err
	}
	return s.widgets[len(s.widgets)-1].ID, nil
}

// AddWidget is Add reduced to the new id and success.
func (s *Store) AddWidget(widgetType string, p *Placement) (string, bool) {
	id, err := s.Add(widgetType, p)
	return id, err == nil
}

// MoveWidget moves a widget's origin to (x, y).
func (s *Store) MoveWidget(id string, x, y int) bool {
	return s.ApplyOperation(layout.MoveWidget{ID: id, X: layout.Int(x), Y: layout.Int(y)})
}

// ResizeWidget changes a widget's footprint, keeping its origin.
func (s *Store) ResizeWidget(id string, width, height int) bool {
	return s.ApplyOperation(layout.ResizeWidget{ID: id, Width: width, Height: height})
}

// RemoveWidget deletes a widget.
func (s *Store) RemoveWidget(id string) bool {
	return s.ApplyOperation(layout.RemoveWidget{ID: id})
}

// SetWidgetLock locks or unlocks a widget.
func (s *Store) SetWidgetLock(id string, locked bool) bool {
	return s.ApplyOperation(layout.SetWidgetLock{ID: id, Locked: locked})
}

// UpdateWidgetSettings replaces a widget's settings with the normalized
// form of settings.
func (s *Store) UpdateWidgetSettings(id string, settings any) bool {
	return s.ApplyOperation(layout.SetWidgetSettings{ID: id, Settings: settings})
}

// IsPositionOccupied reports whether r overlaps any widget other than
// excludeID. It does not check bounds.
func (s *Store) IsPositionOccupied(r grid.Rect, excludeID string) bool {
	_, hit := layout.Collides(s.widgets, r, excludeID)
	return hit
}

// Constraints returns the size constraints of widgetType, if any.
func (s *Store) Constraints(widgetType string) (widget.Constraints, bool) {
	return s.registry.Constraints(widgetType)
}

// ToggleDebugGrid flips the debug overlay flag and returns the new value.
func (s *Store) ToggleDebugGrid() bool {
	s.debugGrid = !s.debugGrid
	s.notify()
	return s.debugGrid
}

// Grid returns the grid configuration.
func (s *Store) Grid() grid.Config { return s.grid }

// IsLoaded reports whether LoadDashboard has run.
func (s *Store) IsLoaded() bool { return s.loaded }

// DebugGrid reports whether the debug overlay is on.
func (s *Store) DebugGrid() bool { return s.debugGrid }

// Registry returns the widget registry.
func (s *Store) Registry() *widget.Registry { return s.registry }

// Widgets returns a copy of the widget collection in insertion order.
func (s *Store) Widgets() []layout.Widget {
	return layout.CloneAll(s.widgets)
}

// Widget returns a copy of the widget with the given id.
func (s *Store) Widget(id string) (layout.Widget, bool) {
	return layout.Find(s.widgets, id)
}

// Snapshot returns a copy of the full state.
func (s *Store) Snapshot() Snapshot {
	return Snapshot{
		Grid:      s.grid,
		Widgets:   layout.CloneAll(s.widgets),
		DebugGrid: s.debugGrid,
		Loaded:    s.loaded,
	}
}

// Subscribe registers fn to run after every committed change. The returned
// function removes the subscription.
func (s *Store) Subscribe(fn func(Snapshot)) (unsubscribe func()) {
	s.nextSubID++
	id := s.nextSubID
	s.subscribers = append(s.subscribers, subscriber{id: id, fn: fn})

	return func() {
		for i, sub := range s.subscribers {
			if sub.id == id {
				s.subscribers = append(s.subscribers[:i:i], s.subscribers[i+1:]...)
				return
			}
		}
	}
}

func (s *Store) notify() {
	if len(s.subscribers) == 0 {
		return
	}
	subs := append([]subscriber(nil), s.subscribers...)
	for _, sub := range subs {
		sub.fn(s.Snapshot())
	}
}
