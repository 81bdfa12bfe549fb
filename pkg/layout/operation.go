package layout

import (
	"bytes"
	"encoding/json"

	"github.com/matzehuels/deskgrid/pkg/errors"
)

// Operation kinds, also used as the wire discriminator.
const (
	KindAddWidget         = "addWidget"
	KindMoveWidget        = "moveWidget"
	KindResizeWidget      = "resizeWidget"
	KindRemoveWidget      = "removeWidget"
	KindSetWidgetLock     = "setWidgetLock"
	KindSetWidgetSettings = "setWidgetSettings"
)

// Operation is one atomic layout mutation. The set of implementations is
// closed: AddWidget, MoveWidget, ResizeWidget, RemoveWidget, SetWidgetLock
// and SetWidgetSettings.
type Operation interface {
	Kind() string
	isOperation()
}

// Slot is the placement requested by an add.
type Slot struct {
	ID       string `json:"id,omitempty"` // generated when empty
	X        int    `json:"x"`
	Y        int    `json:"y"`
	Width    int    `json:"width"`
	Height   int    `json:"height"`
	Locked   bool   `json:"locked,omitempty"`
	Settings any    `json:"settings,omitempty"` // nil means type defaults
}

// AddWidget places a new widget.
type AddWidget struct {
	WidgetType string
	Layout     Slot
}

// MoveWidget changes a widget's origin. Nil coordinates keep their value.
type MoveWidget struct {
	ID   string
	X, Y *int
}

// ResizeWidget changes a widget's footprint and optionally its origin.
type ResizeWidget struct {
	ID            string
	Width, Height int
	X, Y          *int
}

// RemoveWidget deletes a widget.
type RemoveWidget struct {
	ID string
}

// SetWidgetLock locks or unlocks a widget.
type SetWidgetLock struct {
	ID     string
	Locked bool
}

// SetWidgetSettings replaces a widget's settings with the normalized value
// of Settings.
type SetWidgetSettings struct {
	ID       string
	Settings any
}

func (AddWidget) Kind() string         { return KindAddWidget }
func (MoveWidget) Kind() string        { return KindMoveWidget }
func (ResizeWidget) Kind() string      { return KindResizeWidget }
func (RemoveWidget) Kind() string      { return KindRemoveWidget }
func (SetWidgetLock) Kind() string     { return KindSetWidgetLock }
func (SetWidgetSettings) Kind() string { return KindSetWidgetSettings }

func (AddWidget) isOperation()         {}
func (MoveWidget) isOperation()        {}
func (ResizeWidget) isOperation()      {}
func (RemoveWidget) isOperation()      {}
func (SetWidgetLock) isOperation()     {}
func (SetWidgetSettings) isOperation() {}

// Int returns a pointer to v, for optional coordinates.
func Int(v int) *int { return &v }

// wireOperation is the tagged JSON shape shared by every operation.
type wireOperation struct {
	Type       string `json:"type"`
	ID         string `json:"id,omitempty"`
	WidgetType string `json:"widgetType,omitempty"`
	Layout     *Slot  `json:"layout,omitempty"`
	X          *int   `json:"x,omitempty"`
	Y          *int   `json:"y,omitempty"`
	Width      *int   `json:"width,omitempty"`
	Height     *int   `json:"height,omitempty"`
	Locked     *bool  `json:"locked,omitempty"`
	Settings   any    `json:"settings,omitempty"`
}

// EncodeOperation returns the tagged JSON form of op.
func EncodeOperation(op Operation) ([]byte, error) {
	var w wireOperation
	switch o := op.(type) {
	case AddWidget:
		slot := o.Layout
		w = wireOperation{Type: KindAddWidget, WidgetType: o.WidgetType, Layout: &slot}
	case MoveWidget:
		w = wireOperation{Type: KindMoveWidget, ID: o.ID, X: o.X, Y: o.Y}
	case ResizeWidget:
		w = wireOperation{Type: KindResizeWidget, ID: o.ID, Width: Int(o.Width), Height: Int(o.Height), X: o.X, Y: o.Y}
	case RemoveWidget:
		w = wireOperation{Type: KindRemoveWidget, ID: o.ID}
	case SetWidgetLock:
		locked := o.Locked
		w = wireOperation{Type: KindSetWidgetLock, ID: o.ID, Locked: &locked}
	case SetWidgetSettings:
		w = wireOperation{Type: KindSetWidgetSettings, ID: o.ID, Settings: o.Settings}
	default:
		return nil, errors.New(errors.ErrCodeInvalidOperation, "unknown operation %T", op)
	}
	return json.Marshal(w)
}

// DecodeOperation parses one tagged JSON operation.
func DecodeOperation(data []byte) (Operation, error) {
	var w wireOperation
	dec := json.NewDecoder(bytes.NewReader(data))
	dec.DisallowUnknownFields()
	if err := dec.Decode(&w); err != nil {
		return nil, errors.Wrap(errors.ErrCodeInvalidFormat, err, "decode operation")
	}
	return w.operation()
}

// OperationFromValue converts an already decoded value (for example a YAML
// mapping) into an Operation.
func OperationFromValue(v any) (Operation, error) {
	data, err := json.Marshal(v)
	if err != nil {
		return nil, errors.Wrap(errors.ErrCodeInvalidFormat, err, "encode operation value")
	}
	return DecodeOperation(data)
}

func (w wireOperation) operation() (Operation, error) {
	needID := func() error {
		if w.ID == "" {
			return errors.New(errors.ErrCodeInvalidFormat, "%s: missing id", w.Type)
		}
		return nil
	}

	switch w.Type {
	case KindAddWidget:
		if w.WidgetType == "" {
			return nil, errors.New(errors.ErrCodeInvalidFormat, "addWidget: missing widgetType")
		}
		if w.Layout == nil {
			return nil, errors.New(errors.ErrCodeInvalidFormat, "addWidget: missing layout")
		}
		return AddWidget{WidgetType: w.WidgetType, Layout: *w.Layout}, nil

	case KindMoveWidget:
		if err := needID(); err != nil {
			return nil, err
		}
		return MoveWidget{ID: w.ID, X: w.X, Y: w.Y}, nil

	case KindResizeWidget:
		if err := needID(); err != nil {
			return nil, err
		}
		if w.Width == nil || w.Height == nil {
			return nil, errors.New(errors.ErrCodeInvalidFormat, "resizeWidget: width and height are required")
		}
		return ResizeWidget{ID: w.ID, Width: *w.Width, Height: *w.Height, X: w.X, Y: w.Y}, nil

	case KindRemoveWidget:
		if err := needID(); err != nil {
			return nil, err
		}
		return RemoveWidget{ID: w.ID}, nil

	case KindSetWidgetLock:
		if err := needID(); err != nil {
			return nil, err
		}
		if w.Locked == nil {
			return nil, errors.New(errors.ErrCodeInvalidFormat, "setWidgetLock: missing locked")
		}
		return SetWidgetLock{ID: w.ID, Locked: *w.Locked}, nil

	case KindSetWidgetSettings:
		if err := needID(); err != nil {
			return nil, err
		}
		return SetWidgetSettings{ID: w.ID, Settings: w.Settings}, nil

	case "":
		return nil, errors.New(errors.ErrCodeInvalidFormat, "operation: missing type")
	default:
		return nil, errors.New(errors.ErrCodeInvalidFormat, "operation: unknown type %q", w.Type)
	}
}
