package widget

// NotesSettings configures the sticky-notes widget.
type NotesSettings struct {
	Content  string         `json:"content"`
	FontSize int            `json:"fontSize"`
	Color    string         `json:"color"`
	WordWrap bool           `json:"wordWrap"`
	Extra    map[string]any `json:"-"`
}

// DefaultNotesSettings returns the notes defaults.
func DefaultNotesSettings() NotesSettings {
	return NotesSettings{FontSize: 14, Color: "#fef3c7", WordWrap: true}
}

// EnsureNotesSettings normalizes candidate into NotesSettings.
func EnsureNotesSettings(candidate any) NotesSettings {
	s := DefaultNotesSettings()
	obj, ok := asObject(candidate)
	if !ok {
		return s
	}
	s.Content = stringField(obj, "content", s.Content)
	s.FontSize = intRangeField(obj, "fontSize", 8, 48, s.FontSize)
	s.Color = colorField(obj, "color", s.Color)
	s.WordWrap = boolField(obj, "wordWrap", s.WordWrap)
	s.Extra = extraFields(obj, "content", "fontSize", "color", "wordWrap")
	return s
}

// Map returns the stored settings record.
func (s NotesSettings) Map() Settings {
	out := Settings{
		"content":  s.Content,
		"fontSize": s.FontSize,
		"color":    s.Color,
		"wordWrap": s.WordWrap,
	}
	mergeExtra(out, s.Extra)
	return out
}

// TimerSettings configures the countdown/stopwatch widget.
type TimerSettings struct {
	Mode            string         `json:"mode"`
	DurationSeconds int            `json:"durationSeconds"`
	PlaySound       bool           `json:"playSound"`
	AutoRestart     bool           `json:"autoRestart"`
	Extra           map[string]any `json:"-"`
}

// DefaultTimerSettings returns the timer defaults.
func DefaultTimerSettings() TimerSettings {
	return TimerSettings{Mode: "countdown", DurationSeconds: 300, PlaySound: true}
}

// EnsureTimerSettings normalizes candidate into TimerSettings.
func EnsureTimerSettings(candidate any) TimerSettings {
	s := DefaultTimerSettings()
	obj, ok := asObject(candidate)
	if !ok {
		return s
	}
	s.Mode = enumField(obj, "mode", s.Mode, "countdown", "stopwatch")
	s.DurationSeconds = intRangeField(obj, "durationSeconds", 1, 86400, s.DurationSeconds)
	s.PlaySound = boolField(obj, "playSound", s.PlaySound)
	s.AutoRestart = boolField(obj, "autoRestart", s.AutoRestart)
	s.Extra = extraFields(obj, "mode", "durationSeconds", "playSound", "autoRestart")
	return s
}

// Map returns the stored settings record.
func (s TimerSettings) Map() Settings {
	out := Settings{
		"mode":            s.Mode,
		"durationSeconds": s.DurationSeconds,
		"playSound":       s.PlaySound,
		"autoRestart":     s.AutoRestart,
	}
	mergeExtra(out, s.Extra)
	return out
}

// ImageEffects are the visual effects applied to the image widget.
type ImageEffects struct {
	Blur      int            `json:"blur"`
	Grayscale bool           `json:"grayscale"`
	Opacity   int            `json:"opacity"`
	Rounded   bool           `json:"rounded"`
	Extra     map[string]any `json:"-"`
}

// ImageSettings configures the image widget.
type ImageSettings struct {
	Source  string         `json:"source"`
	Fit     string         `json:"fit"`
	Effects ImageEffects   `json:"effects"`
	Caption string         `json:"caption"`
	Extra   map[string]any `json:"-"`
}

// DefaultImageSettings returns the image defaults.
func DefaultImageSettings() ImageSettings {
	return ImageSettings{
		Fit:     "cover",
		Effects: ImageEffects{Opacity: 100, Rounded: true},
	}
}

// EnsureImageSettings normalizes candidate into ImageSettings.
func EnsureImageSettings(candidate any) ImageSettings {
	s := DefaultImageSettings()
	obj, ok := asObject(candidate)
	if !ok {
		return s
	}
	s.Source = stringField(obj, "source", s.Source)
	s.Fit = enumField(obj, "fit", s.Fit, "cover", "contain", "fill")
	s.Caption = stringField(obj, "caption", s.Caption)
	if fx, ok := asObject(obj["effects"]); ok {
		s.Effects.Blur = intRangeField(fx, "blur", 0, 50, s.Effects.Blur)
		s.Effects.Grayscale = boolField(fx, "grayscale", s.Effects.Grayscale)
		s.Effects.Opacity = intRangeField(fx, "opacity", 0, 100, s.Effects.Opacity)
		s.Effects.Rounded = boolField(fx, "rounded", s.Effects.Rounded)
		s.Effects.Extra = extraFields(fx, "blur", "grayscale", "opacity", "rounded")
	}
	s.Extra = extraFields(obj, "source", "fit", "effects", "caption")
	return s
}

// Map returns the stored settings record.
func (s ImageSettings) Map() Settings {
	fx := map[string]any{
		"blur":      s.Effects.Blur,
		"grayscale": s.Effects.Grayscale,
		"opacity":   s.Effects.Opacity,
		"rounded":   s.Effects.Rounded,
	}
	mergeExtra(fx, s.Effects.Extra)
	out := Settings{
		"source":  s.Source,
		"fit":     s.Fit,
		"effects": fx,
		"caption": s.Caption,
	}
	mergeExtra(out, s.Extra)
	return out
}
