package widget

import (
	"encoding/json"
	"reflect"
	"testing"

	"github.com/matzehuels/deskgrid/pkg/grid"
)

// namedMap mimics decoder-specific map types such as bson.M.
type namedMap map[string]interface{}

func TestBuiltinConstraints(t *testing.T) {
	r := Builtin()

	tests := []struct {
		widgetType string
		want       Constraints
	}{
		{TypeClock, Constraints{MinWidth: 3, MinHeight: 2, MaxWidth: 12, MaxHeight: 8}},
		{TypeQuicklinks, Constraints{MinWidth: 2, MinHeight: 2, MaxWidth: 6, MaxHeight: 8}},
		{TypeNotifications, Constraints{MinWidth: 6, MinHeight: 4, MaxWidth: 24, MaxHeight: 12}},
		{TypeMail, Constraints{MinWidth: 6, MinHeight: 4, MaxWidth: 24, MaxHeight: 12}},
	}

	for _, tt := range tests {
		t.Run(tt.widgetType, func(t *testing.T) {
			got, ok := r.Constraints(tt.widgetType)
			if !ok {
				t.Fatalf("Constraints(%q) missing", tt.widgetType)
			}
			if got != tt.want {
				t.Errorf("Constraints(%q) = %+v, want %+v", tt.widgetType, got, tt.want)
			}
			if !got.Valid() {
				t.Errorf("Constraints(%q) should be valid", tt.widgetType)
			}
		})
	}

	for _, typ := range r.Types() {
		c, ok := r.Constraints(typ)
		if !ok || !c.Valid() {
			t.Errorf("builtin %q has invalid constraints %+v", typ, c)
		}
		if !c.Allows(r.DefaultSize(typ)) {
			t.Errorf("builtin %q default size %v violates %+v", typ, r.DefaultSize(typ), c)
		}
	}
}

func TestUnknownTypeIsUnconstrained(t *testing.T) {
	r := Builtin()
	if _, ok := r.Constraints("weather"); ok {
		t.Error("unknown type should report no constraints")
	}
	if got := r.DefaultSize("weather"); got != (grid.Size{Width: 1, Height: 1}) {
		t.Errorf("DefaultSize(unknown) = %v, want 1x1", got)
	}
}

func TestConstraintsFit(t *testing.T) {
	c := Constraints{MinWidth: 2, MinHeight: 2, MaxWidth: 6, MaxHeight: 8}
	tests := []struct {
		in, want grid.Size
	}{
		{grid.Size{Width: 10, Height: 10}, grid.Size{Width: 6, Height: 8}},
		{grid.Size{Width: 1, Height: 1}, grid.Size{Width: 2, Height: 2}},
		{grid.Size{Width: 4, Height: 3}, grid.Size{Width: 4, Height: 3}},
	}
	for _, tt := range tests {
		if got := c.Fit(tt.in); got != tt.want {
			t.Errorf("Fit(%v) = %v, want %v", tt.in, got, tt.want)
		}
	}
}

func TestEnsureClockSettingsNormalizesFields(t *testing.T) {
	got := EnsureClockSettings(map[string]any{
		"timeFormat":  "invalid-value",
		"showSeconds": false,
		"minGridSize": map[string]any{"width": 1, "height": 1},
	})

	if got.TimeFormat != "12h" {
		t.Errorf("TimeFormat = %q, want %q", got.TimeFormat, "12h")
	}
	if got.ShowSeconds {
		t.Error("ShowSeconds = true, want false (valid value preserved)")
	}
	if got.MinGridSize.Width != 3 || got.MinGridSize.Height != 2 {
		t.Errorf("MinGridSize = %dx%d, want 3x2", got.MinGridSize.Width, got.MinGridSize.Height)
	}
	if got.DateFormat != "long" {
		t.Errorf("DateFormat = %q, want default %q", got.DateFormat, "long")
	}
}

func TestEnsureClockSettingsNonObject(t *testing.T) {
	want := DefaultClockSettings()
	for _, candidate := range []any{nil, "clock", 42, []any{1, 2}, true} {
		if got := EnsureClockSettings(candidate); !reflect.DeepEqual(got, want) {
			t.Errorf("EnsureClockSettings(%v) = %+v, want defaults", candidate, got)
		}
	}
}

func TestEnsureClockSettingsKeepsUnknownFields(t *testing.T) {
	got := EnsureClockSettings(map[string]any{
		"timeFormat":  "24h",
		"accentColor": "#ff0000",
		"minGridSize": map[string]any{"width": 5, "height": 3, "note": "user"},
	}).Map()

	if got["timeFormat"] != "24h" {
		t.Errorf("timeFormat = %v, want 24h", got["timeFormat"])
	}
	if got["accentColor"] != "#ff0000" {
		t.Errorf("accentColor = %v, want passthrough", got["accentColor"])
	}
	hint := got["minGridSize"].(map[string]any)
	if hint["width"] != 5 || hint["height"] != 3 || hint["note"] != "user" {
		t.Errorf("minGridSize = %v, want width 5, height 3, note kept", hint)
	}
}

func TestNumberRepresentations(t *testing.T) {
	var decoded map[string]any
	if err := json.Unmarshal([]byte(`{"columns": 4, "links": [{"url": "https://go.dev"}]}`), &decoded); err != nil {
		t.Fatal(err)
	}
	if got := EnsureQuicklinksSettings(decoded).Columns; got != 4 {
		t.Errorf("float64 columns = %d, want 4", got)
	}

	if got := EnsureQuicklinksSettings(map[string]any{"columns": json.Number("5")}).Columns; got != 5 {
		t.Errorf("json.Number columns = %d, want 5", got)
	}
	if got := EnsureQuicklinksSettings(map[string]any{"columns": int32(3)}).Columns; got != 3 {
		t.Errorf("int32 columns = %d, want 3", got)
	}
	if got := EnsureQuicklinksSettings(map[string]any{"columns": 2.5}).Columns; got != 2 {
		t.Errorf("fractional columns = %d, want default 2", got)
	}
	if got := EnsureQuicklinksSettings(namedMap{"columns": int64(6)}).Columns; got != 6 {
		t.Errorf("named map columns = %d, want 6", got)
	}
}

func TestEnsureQuicklinksDropsInvalidLinks(t *testing.T) {
	got := EnsureQuicklinksSettings(map[string]any{
		"links": []any{
			map[string]any{"url": "https://example.com", "label": "Example"},
			map[string]any{"label": "no url"},
			"not an object",
			map[string]any{"url": "https://go.dev"},
		},
	})

	if len(got.Links) != 2 {
		t.Fatalf("len(Links) = %d, want 2", len(got.Links))
	}
	if got.Links[0].Label != "Example" {
		t.Errorf("Links[0].Label = %q, want Example", got.Links[0].Label)
	}
	if got.Links[1].Label != "https://go.dev" {
		t.Errorf("Links[1].Label = %q, want url fallback", got.Links[1].Label)
	}
}

func TestEnsureImageEffects(t *testing.T) {
	got := EnsureImageSettings(map[string]any{
		"fit":     "stretch",
		"effects": map[string]any{"blur": 500, "grayscale": true, "opacity": 40},
	})

	if got.Fit != "cover" {
		t.Errorf("Fit = %q, want cover", got.Fit)
	}
	if got.Effects.Blur != 0 {
		t.Errorf("Effects.Blur = %d, want default 0", got.Effects.Blur)
	}
	if !got.Effects.Grayscale {
		t.Error("Effects.Grayscale should be kept")
	}
	if got.Effects.Opacity != 40 {
		t.Errorf("Effects.Opacity = %d, want 40", got.Effects.Opacity)
	}
	if !got.Effects.Rounded {
		t.Error("Effects.Rounded should default to true")
	}
}

func TestEnsureSystemMonitorMetrics(t *testing.T) {
	got := EnsureSystemMonitorSettings(map[string]any{
		"metrics": []any{"gpu", "cpu", "gpu", "fans", 7},
	})
	want := []string{"gpu", "cpu"}
	if !reflect.DeepEqual(got.Metrics, want) {
		t.Errorf("Metrics = %v, want %v", got.Metrics, want)
	}

	empty := EnsureSystemMonitorSettings(map[string]any{"metrics": []any{"fans"}})
	if !reflect.DeepEqual(empty.Metrics, []string{"cpu", "memory"}) {
		t.Errorf("Metrics = %v, want defaults", empty.Metrics)
	}
}

func TestNormalizersAreIdempotent(t *testing.T) {
	r := Builtin()
	candidates := []any{
		nil,
		"garbage",
		map[string]any{},
		map[string]any{"timeFormat": "24h", "showSeconds": "yes", "extra": []any{1.0, "two"}},
		map[string]any{"minGridSize": map[string]any{"width": 40, "height": -2}},
		map[string]any{"links": []any{map[string]any{"url": "https://a.b", "icon": "star"}}, "columns": 9},
		map[string]any{"content": "hi", "fontSize": 200, "color": "red"},
		map[string]any{"mode": "stopwatch", "durationSeconds": 0},
		map[string]any{"effects": map[string]any{"opacity": 100.0, "sepia": true}},
		map[string]any{"maxItems": 50, "account": "me@example.com"},
		map[string]any{"metrics": []any{"disk", "network"}, "temperatureUnit": "kelvin"},
		namedMap{"nested": namedMap{"deep": true}},
	}

	for _, typ := range append(r.Types(), "unregistered") {
		for i, c := range candidates {
			once := r.Normalize(typ, c)
			twice := r.Normalize(typ, once)
			if !reflect.DeepEqual(once, twice) {
				t.Errorf("%s candidate %d: Normalize not idempotent:\n once  %#v\n twice %#v", typ, i, once, twice)
			}
		}
	}
}

func TestTypedNormalizersAreIdempotent(t *testing.T) {
	x := map[string]any{"timeFormat": "bad", "minGridSize": map[string]any{"width": 1}, "foo": "bar"}
	once := EnsureClockSettings(x)
	twice := EnsureClockSettings(once.Map())
	if !reflect.DeepEqual(once, twice) {
		t.Errorf("EnsureClockSettings not idempotent:\n once  %+v\n twice %+v", once, twice)
	}
}

func TestUnregisteredTypePassthrough(t *testing.T) {
	r := Builtin()

	in := map[string]any{"city": "Berlin", "units": map[string]any{"temp": "c"}}
	got := r.Normalize("weather", in)
	if got["city"] != "Berlin" {
		t.Errorf("city = %v, want Berlin", got["city"])
	}

	in["city"] = "Paris"
	if got["city"] != "Berlin" {
		t.Error("Normalize should deep copy passthrough settings")
	}

	if got := r.Normalize("weather", nil); got == nil || len(got) != 0 {
		t.Errorf("Normalize(nil) = %v, want empty record", got)
	}
}

func TestCustomRegistration(t *testing.T) {
	r := NewRegistry()
	r.Register(Entry{
		Type:        "weather",
		Constraints: &Constraints{MinWidth: 2, MinHeight: 1, MaxWidth: 4, MaxHeight: 2},
		Normalize: func(c any) Settings {
			obj, _ := AsSettings(c)
			out := Settings{"city": "London"}
			if city, ok := obj["city"].(string); ok && city != "" {
				out["city"] = city
			}
			return out
		},
	})

	if got := r.Normalize("weather", map[string]any{"city": ""}); got["city"] != "London" {
		t.Errorf("city = %v, want London", got["city"])
	}
	if got := r.DefaultSize("weather"); got != (grid.Size{Width: 2, Height: 1}) {
		t.Errorf("DefaultSize = %v, want constraint minimum 2x1", got)
	}
}
