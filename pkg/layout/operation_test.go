package layout

import (
	"reflect"
	"testing"

	"github.com/matzehuels/deskgrid/pkg/errors"
)

func TestDecodeOperation(t *testing.T) {
	tests := []struct {
		name  string
		input string
		want  Operation
	}{
		{
			name:  "add",
			input: `{"type":"addWidget","widgetType":"clock","layout":{"x":1,"y":2,"width":3,"height":2,"locked":true}}`,
			want:  AddWidget{WidgetType: "clock", Layout: Slot{X: 1, Y: 2, Width: 3, Height: 2, Locked: true}},
		},
		{
			name:  "move partial",
			input: `{"type":"moveWidget","id":"clock-1","x":5}`,
			want:  MoveWidget{ID: "clock-1", X: Int(5)},
		},
		{
			name:  "resize with origin",
			input: `{"type":"resizeWidget","id":"clock-1","width":4,"height":3,"y":0}`,
			want:  ResizeWidget{ID: "clock-1", Width: 4, Height: 3, Y: Int(0)},
		},
		{
			name:  "remove",
			input: `{"type":"removeWidget","id":"clock-1"}`,
			want:  RemoveWidget{ID: "clock-1"},
		},
		{
			name:  "unlock",
			input: `{"type":"setWidgetLock","id":"clock-1","locked":false}`,
			want:  SetWidgetLock{ID: "clock-1", Locked: false},
		},
		{
			name:  "settings",
			input: `{"type":"setWidgetSettings","id":"clock-1","settings":{"timeFormat":"24h"}}`,
			want:  SetWidgetSettings{ID: "clock-1", Settings: map[string]any{"timeFormat": "24h"}},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := DecodeOperation([]byte(tt.input))
			if err != nil {
				t.Fatalf("DecodeOperation error: %v", err)
			}
			if !reflect.DeepEqual(got, tt.want) {
				t.Errorf("DecodeOperation = %#v, want %#v", got, tt.want)
			}
			if got.Kind() != tt.want.Kind() {
				t.Errorf("Kind = %q, want %q", got.Kind(), tt.want.Kind())
			}
		})
	}
}

func TestDecodeOperationErrors(t *testing.T) {
	tests := []struct {
		name  string
		input string
	}{
		{"not json", `nope`},
		{"missing type", `{"id":"a"}`},
		{"unknown type", `{"type":"explodeWidget","id":"a"}`},
		{"unknown field", `{"type":"removeWidget","id":"a","force":true}`},
		{"add without layout", `{"type":"addWidget","widgetType":"clock"}`},
		{"add without type", `{"type":"addWidget","layout":{"x":0,"y":0,"width":1,"height":1}}`},
		{"move without id", `{"type":"moveWidget","x":1}`},
		{"resize without height", `{"type":"resizeWidget","id":"a","width":2}`},
		{"lock without flag", `{"type":"setWidgetLock","id":"a"}`},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := DecodeOperation([]byte(tt.input))
			if !errors.Is(err, errors.ErrCodeInvalidFormat) {
				t.Errorf("err = %v, want INVALID_FORMAT", err)
			}
		})
	}
}

func TestEncodeDecodeOperation(t *testing.T) {
	ops := []Operation{
		AddWidget{WidgetType: "notes", Layout: Slot{ID: "n", X: 2, Width: 4, Height: 4}},
		MoveWidget{ID: "n", Y: Int(0)},
		ResizeWidget{ID: "n", Width: 6, Height: 2, X: Int(1)},
		SetWidgetLock{ID: "n", Locked: true},
		RemoveWidget{ID: "n"},
	}
	for _, op := range ops {
		data, err := EncodeOperation(op)
		if err != nil {
			t.Fatalf("EncodeOperation(%s) error: %v", op.Kind(), err)
		}
		got, err := DecodeOperation(data)
		if err != nil {
			t.Fatalf("DecodeOperation(%s) error: %v", data, err)
		}
		if !reflect.DeepEqual(got, op) {
			t.Errorf("round trip %s = %#v, want %#v", data, got, op)
		}
	}
}

func TestOperationFromValue(t *testing.T) {
	// YAML decoders produce map[string]interface{} with int values.
	v := map[string]any{"type": "moveWidget", "id": "a", "x": 3, "y": 4}
	got, err := OperationFromValue(v)
	if err != nil {
		t.Fatalf("OperationFromValue error: %v", err)
	}
	want := MoveWidget{ID: "a", X: Int(3), Y: Int(4)}
	if !reflect.DeepEqual(got, want) {
		t.Errorf("OperationFromValue = %#v, want %#v", got, want)
	}
}
