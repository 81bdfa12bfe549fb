package widget

const maxQuicklinks = 50

// Quicklink is one entry of the quicklinks widget.
type Quicklink struct {
	Label string         `json:"label"`
	URL   string         `json:"url"`
	Extra map[string]any `json:"-"`
}

// QuicklinksSettings configures the quicklinks widget.
type QuicklinksSettings struct {
	Links         []Quicklink    `json:"links"`
	Columns       int            `json:"columns"`
	ShowLabels    bool           `json:"showLabels"`
	IconSize      string         `json:"iconSize"`
	OpenInBrowser bool           `json:"openInBrowser"`
	Extra         map[string]any `json:"-"`
}

var quicklinksKeys = []string{"links", "columns", "showLabels", "iconSize", "openInBrowser"}

// DefaultQuicklinksSettings returns the quicklinks defaults.
func DefaultQuicklinksSettings() QuicklinksSettings {
	return QuicklinksSettings{
		Links:         []Quicklink{},
		Columns:       2,
		ShowLabels:    true,
		IconSize:      "medium",
		OpenInBrowser: true,
	}
}

// EnsureQuicklinksSettings normalizes candidate into QuicklinksSettings.
// Link entries without a usable url are dropped; a missing label falls back
// to the url.
func EnsureQuicklinksSettings(candidate any) QuicklinksSettings {
	s := DefaultQuicklinksSettings()
	obj, ok := asObject(candidate)
	if !ok {
		return s
	}

	if list, ok := asList(obj["links"]); ok {
		for _, item := range list {
			if len(s.Links) == maxQuicklinks {
				break
			}
			if link, ok := ensureQuicklink(item); ok {
				s.Links = append(s.Links, link)
			}
		}
	}
	s.Columns = intRangeField(obj, "columns", 1, 6, s.Columns)
	s.ShowLabels = boolField(obj, "showLabels", s.ShowLabels)
	s.IconSize = enumField(obj, "iconSize", s.IconSize, "small", "medium", "large")
	s.OpenInBrowser = boolField(obj, "openInBrowser", s.OpenInBrowser)
	s.Extra = extraFields(obj, quicklinksKeys...)
	return s
}

func ensureQuicklink(candidate any) (Quicklink, bool) {
	obj, ok := asObject(candidate)
	if !ok {
		return Quicklink{}, false
	}
	url := nonEmptyStringField(obj, "url", "")
	if url == "" {
		return Quicklink{}, false
	}
	return Quicklink{
		URL:   url,
		Label: nonEmptyStringField(obj, "label", url),
		Extra: extraFields(obj, "label", "url"),
	}, true
}

// Map returns the stored settings record.
func (s QuicklinksSettings) Map() Settings {
	links := make([]any, len(s.Links))
	for i, l := range s.Links {
		m := map[string]any{"label": l.Label, "url": l.URL}
		mergeExtra(m, l.Extra)
		links[i] = m
	}
	out := Settings{
		"links":         links,
		"columns":       s.Columns,
		"showLabels":    s.ShowLabels,
		"iconSize":      s.IconSize,
		"openInBrowser": s.OpenInBrowser,
	}
	mergeExtra(out, s.Extra)
	return out
}
