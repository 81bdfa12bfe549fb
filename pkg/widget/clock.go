package widget

import "github.com/matzehuels/deskgrid/pkg/grid"

var clockConstraints = Constraints{MinWidth: 3, MinHeight: 2, MaxWidth: 12, MaxHeight: 8}

// GridSizeHint is a widget's own minimum footprint preference.
type GridSizeHint struct {
	Width  int            `json:"width"`
	Height int            `json:"height"`
	Extra  map[string]any `json:"-"`
}

// ClockSettings configures the clock widget.
type ClockSettings struct {
	TimeFormat      string         `json:"timeFormat"`
	ShowSeconds     bool           `json:"showSeconds"`
	DateFormat      string         `json:"dateFormat"`
	LayoutStyle     string         `json:"layoutStyle"`
	Alignment       string         `json:"alignment"`
	FontSizeMode    string         `json:"fontSizeMode"`
	Timezone        string         `json:"timezone"`
	UpdateFrequency string         `json:"updateFrequency"`
	ClickBehavior   string         `json:"clickBehavior"`
	MinGridSize     GridSizeHint   `json:"minGridSize"`
	Extra           map[string]any `json:"-"`
}

var clockKeys = []string{
	"timeFormat", "showSeconds", "dateFormat", "layoutStyle", "alignment",
	"fontSizeMode", "timezone", "updateFrequency", "clickBehavior", "minGridSize",
}

// DefaultClockSettings returns the clock defaults.
func DefaultClockSettings() ClockSettings {
	return ClockSettings{
		TimeFormat:      "12h",
		ShowSeconds:     true,
		DateFormat:      "long",
		LayoutStyle:     "stacked",
		Alignment:       "center",
		FontSizeMode:    "auto",
		Timezone:        "system",
		UpdateFrequency: "second",
		ClickBehavior:   "open-system-clock",
		MinGridSize:     GridSizeHint{Width: clockConstraints.MinWidth, Height: clockConstraints.MinHeight},
	}
}

// EnsureClockSettings normalizes candidate into ClockSettings.
func EnsureClockSettings(candidate any) ClockSettings {
	s := DefaultClockSettings()
	obj, ok := asObject(candidate)
	if !ok {
		return s
	}

	s.TimeFormat = enumField(obj, "timeFormat", s.TimeFormat, "12h", "24h")
	s.ShowSeconds = boolField(obj, "showSeconds", s.ShowSeconds)
	s.DateFormat = enumField(obj, "dateFormat", s.DateFormat, "long", "short", "numeric", "none")
	s.LayoutStyle = enumField(obj, "layoutStyle", s.LayoutStyle, "stacked", "inline", "compact")
	s.Alignment = enumField(obj, "alignment", s.Alignment, "left", "center", "right")
	s.FontSizeMode = enumField(obj, "fontSizeMode", s.FontSizeMode, "auto", "fixed")
	s.Timezone = nonEmptyStringField(obj, "timezone", s.Timezone)
	s.UpdateFrequency = enumField(obj, "updateFrequency", s.UpdateFrequency, "second", "minute")
	s.ClickBehavior = enumField(obj, "clickBehavior", s.ClickBehavior, "open-system-clock", "none")
	s.MinGridSize = ensureGridSizeHint(obj["minGridSize"], s.MinGridSize, clockConstraints)
	s.Extra = extraFields(obj, clockKeys...)
	return s
}

// ensureGridSizeHint clamps each dimension into the constraint box rather
// than resetting it, so a too-small hint becomes the smallest legal one.
func ensureGridSizeHint(candidate any, def GridSizeHint, c Constraints) GridSizeHint {
	obj, ok := asObject(candidate)
	if !ok {
		return def
	}
	hint := def
	if w, ok := asInt(obj["width"]); ok {
		hint.Width = grid.Clamp(w, c.MinWidth, c.MaxWidth)
	}
	if h, ok := asInt(obj["height"]); ok {
		hint.Height = grid.Clamp(h, c.MinHeight, c.MaxHeight)
	}
	hint.Extra = extraFields(obj, "width", "height")
	return hint
}

func (h GridSizeHint) toMap() map[string]any {
	out := map[string]any{"width": h.Width, "height": h.Height}
	mergeExtra(out, h.Extra)
	return out
}

// Map returns the stored settings record.
func (s ClockSettings) Map() Settings {
	out := Settings{
		"timeFormat":      s.TimeFormat,
		"showSeconds":     s.ShowSeconds,
		"dateFormat":      s.DateFormat,
		"layoutStyle":     s.LayoutStyle,
		"alignment":       s.Alignment,
		"fontSizeMode":    s.FontSizeMode,
		"timezone":        s.Timezone,
		"updateFrequency": s.UpdateFrequency,
		"clickBehavior":   s.ClickBehavior,
		"minGridSize":     s.MinGridSize.toMap(),
	}
	mergeExtra(out, s.Extra)
	return out
}
