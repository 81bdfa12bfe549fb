package layout

import (
	"github.com/google/uuid"

	"github.com/matzehuels/deskgrid/pkg/errors"
	"github.com/matzehuels/deskgrid/pkg/grid"
	"github.com/matzehuels/deskgrid/pkg/widget"
)

// Resolver applies operations to widget collections. It holds no
// collection state; the same Resolver can serve any number of dashboards.
type Resolver struct {
	registry *widget.Registry
	newID    func(widgetType string) string
}

// ResolverOption configures a Resolver.
type ResolverOption func(*Resolver)

// WithIDGenerator overrides how ids are generated for adds without one.
func WithIDGenerator(fn func(widgetType string) string) ResolverOption {
	return func(r *Resolver) {
		if fn != nil {
			r.newID = fn
		}
	}
}

// NewResolver creates a resolver backed by registry. A nil registry means
// the builtin widget types.
func NewResolver(registry *widget.Registry, opts ...ResolverOption) *Resolver {
	if registry == nil {
		registry = widget.Builtin()
	}
	r := &Resolver{registry: registry, newID: defaultID}
	for _, opt := range opts {
		opt(r)
	}
	return r
}

// defaultID returns "<widgetType>-<uuid>".
func defaultID(widgetType string) string {
	return widgetType + "-" + uuid.NewString()
}

// Registry returns the widget registry the resolver consults.
func (r *Resolver) Registry() *widget.Registry {
	return r.registry
}

// Fit clamps rect for a widget of widgetType: the size goes into the type's
// constraints and then into the grid (never below 1), and the origin moves
// just enough to keep the footprint inside the grid.
func (r *Resolver) Fit(widgetType string, rect grid.Rect, cfg grid.Config) grid.Rect {
	size := rect.Size()
	if c, ok := r.registry.Constraints(widgetType); ok {
		size = c.Fit(size)
	}
	size.Width = grid.Clamp(size.Width, 1, cfg.Columns)
	size.Height = grid.Clamp(size.Height, 1, cfg.Rows)

	return grid.Rect{
		X:      grid.Clamp(rect.X, 0, cfg.Columns-size.Width),
		Y:      grid.Clamp(rect.Y, 0, cfg.Rows-size.Height),
		Width:  size.Width,
		Height: size.Height,
	}
}

// Resolve applies op to widgets on the grid cfg. On success it returns a new
// collection; on failure it returns a coded error and the caller's
// collection is untouched either way.
func (r *Resolver) Resolve(op Operation, cfg grid.Config, widgets []Widget) ([]Widget, error) {
	if !cfg.Valid() {
		return nil, errors.New(errors.ErrCodeInvalidConfig, "invalid grid %s", cfg)
	}

	switch o := op.(type) {
	case AddWidget:
		return r.add(o, cfg, widgets)
	case MoveWidget:
		return r.move(o, cfg, widgets)
	case ResizeWidget:
		return r.resize(o, cfg, widgets)
	case RemoveWidget:
		return r.remove(o, widgets)
	case SetWidgetLock:
		return r.setLock(o, widgets)
	case SetWidgetSettings:
		return r.setSettings(o, widgets)
	case nil:
		return nil, errors.New(errors.ErrCodeInvalidOperation, "nil operation")
	default:
		return nil, errors.New(errors.ErrCodeInvalidOperation, "unsupported operation %T", op)
	}
}

func (r *Resolver) add(op AddWidget, cfg grid.Config, widgets []Widget) ([]Widget, error) {
	if err := errors.ValidateWidgetType(op.WidgetType); err != nil {
		return nil, err
	}

	id := op.Layout.ID
	if id == "" {
		id = r.newID(op.WidgetType)
	}
	if err := errors.ValidateWidgetID(id); err != nil {
		return nil, err
	}
	if IndexOf(widgets, id) >= 0 {
		return nil, errors.New(errors.ErrCodeDuplicateID, "widget %s already exists", id)
	}

	requested := grid.Rect{X: op.Layout.X, Y: op.Layout.Y, Width: op.Layout.Width, Height: op.Layout.Height}
	rect := r.Fit(op.WidgetType, requested, cfg)
	if err := r.place(id, rect, cfg, widgets); err != nil {
		return nil, err
	}

	w := Widget{
		ID:         id,
		WidgetType: op.WidgetType,
		Locked:     op.Layout.Locked,
		Settings:   r.registry.Normalize(op.WidgetType, op.Layout.Settings),
	}.withRect(rect)

	next := CloneAll(widgets)
	return append(next, w), nil
}

func (r *Resolver) move(op MoveWidget, cfg grid.Config, widgets []Widget) ([]Widget, error) {
	i, err := r.mutable(op.ID, widgets)
	if err != nil {
		return nil, err
	}

	current := widgets[i]
	requested := current.Rect()
	if op.X != nil {
		requested.X = *op.X
	}
	if op.Y != nil {
		requested.Y = *op.Y
	}

	return r.replaceRect(i, r.Fit(current.WidgetType, requested, cfg), cfg, widgets)
}

func (r *Resolver) resize(op ResizeWidget, cfg grid.Config, widgets []Widget) ([]Widget, error) {
	i, err := r.mutable(op.ID, widgets)
	if err != nil {
		return nil, err
	}

	current := widgets[i]
	requested := grid.Rect{X: current.X, Y: current.Y, Width: op.Width, Height: op.Height}
	if op.X != nil {
		requested.X = *op.X
	}
	if op.Y != nil {
		requested.Y = *op.Y
	}

	return r.replaceRect(i, r.Fit(current.WidgetType, requested, cfg), cfg, widgets)
}

func (r *Resolver) remove(op RemoveWidget, widgets []Widget) ([]Widget, error) {
	i := IndexOf(widgets, op.ID)
	if i < 0 {
		return nil, notFound(op.ID)
	}

	next := make([]Widget, 0, len(widgets)-1)
	for j, w := range widgets {
		if j != i {
			next = append(next, w.Clone())
		}
	}
	return next, nil
}

func (r *Resolver) setLock(op SetWidgetLock, widgets []Widget) ([]Widget, error) {
	i := IndexOf(widgets, op.ID)
	if i < 0 {
		return nil, notFound(op.ID)
	}

	next := CloneAll(widgets)
	next[i].Locked = op.Locked
	return next, nil
}

func (r *Resolver) setSettings(op SetWidgetSettings, widgets []Widget) ([]Widget, error) {
	i := IndexOf(widgets, op.ID)
	if i < 0 {
		return nil, notFound(op.ID)
	}

	next := CloneAll(widgets)
	next[i].Settings = r.registry.Normalize(next[i].WidgetType, op.Settings)
	return next, nil
}

// mutable finds a widget that move/resize may touch.
func (r *Resolver) mutable(id string, widgets []Widget) (int, error) {
	i := IndexOf(widgets, id)
	if i < 0 {
		return -1, notFound(id)
	}
	if widgets[i].Locked {
		return -1, errors.New(errors.ErrCodeWidgetLocked, "widget %s is locked", id)
	}
	return i, nil
}

func (r *Resolver) replaceRect(i int, rect grid.Rect, cfg grid.Config, widgets []Widget) ([]Widget, error) {
	if err := r.place(widgets[i].ID, rect, cfg, widgets); err != nil {
		return nil, err
	}

	next := CloneAll(widgets)
	next[i] = next[i].withRect(rect)
	return next, nil
}

// place checks that rect is a legal footprint for the widget id.
func (r *Resolver) place(id string, rect grid.Rect, cfg grid.Config, widgets []Widget) error {
	if !grid.WithinBounds(cfg, rect) {
		return errors.New(errors.ErrCodeOutOfBounds, "widget %s at %s leaves the %s grid", id, rect, cfg)
	}
	if other, hit := Collides(widgets, rect, id); hit {
		return errors.New(errors.ErrCodeCollision, "widget %s at %s overlaps %s", id, rect, other)
	}
	return nil
}

func notFound(id string) error {
	return errors.New(errors.ErrCodeWidgetNotFound, "widget %s not found", id)
}
