package widget

// NotificationsSettings configures the notification feed widget.
type NotificationsSettings struct {
	MaxItems       int            `json:"maxItems"`
	ShowTimestamps bool           `json:"showTimestamps"`
	GroupByApp     bool           `json:"groupByApp"`
	Extra          map[string]any `json:"-"`
}

// DefaultNotificationsSettings returns the notifications defaults.
func DefaultNotificationsSettings() NotificationsSettings {
	return NotificationsSettings{MaxItems: 20, ShowTimestamps: true, GroupByApp: true}
}

// EnsureNotificationsSettings normalizes candidate into NotificationsSettings.
func EnsureNotificationsSettings(candidate any) NotificationsSettings {
	s := DefaultNotificationsSettings()
	obj, ok := asObject(candidate)
	if !ok {
		return s
	}
	s.MaxItems = intRangeField(obj, "maxItems", 1, 100, s.MaxItems)
	s.ShowTimestamps = boolField(obj, "showTimestamps", s.ShowTimestamps)
	s.GroupByApp = boolField(obj, "groupByApp", s.GroupByApp)
	s.Extra = extraFields(obj, "maxItems", "showTimestamps", "groupByApp")
	return s
}

// Map returns the stored settings record.
func (s NotificationsSettings) Map() Settings {
	out := Settings{
		"maxItems":       s.MaxItems,
		"showTimestamps": s.ShowTimestamps,
		"groupByApp":     s.GroupByApp,
	}
	mergeExtra(out, s.Extra)
	return out
}

// MailSettings configures the mail inbox widget.
type MailSettings struct {
	Account        string         `json:"account"`
	UnreadOnly     bool           `json:"unreadOnly"`
	MaxItems       int            `json:"maxItems"`
	RefreshMinutes int            `json:"refreshMinutes"`
	Extra          map[string]any `json:"-"`
}

// DefaultMailSettings returns the mail defaults.
func DefaultMailSettings() MailSettings {
	return MailSettings{UnreadOnly: true, MaxItems: 10, RefreshMinutes: 5}
}

// EnsureMailSettings normalizes candidate into MailSettings.
func EnsureMailSettings(candidate any) MailSettings {
	s := DefaultMailSettings()
	obj, ok := asObject(candidate)
	if !ok {
		return s
	}
	s.Account = stringField(obj, "account", s.Account)
	s.UnreadOnly = boolField(obj, "unreadOnly", s.UnreadOnly)
	s.MaxItems = intRangeField(obj, "maxItems", 1, 100, s.MaxItems)
	s.RefreshMinutes = intRangeField(obj, "refreshMinutes", 1, 120, s.RefreshMinutes)
	s.Extra = extraFields(obj, "account", "unreadOnly", "maxItems", "refreshMinutes")
	return s
}

// Map returns the stored settings record.
func (s MailSettings) Map() Settings {
	out := Settings{
		"account":        s.Account,
		"unreadOnly":     s.UnreadOnly,
		"maxItems":       s.MaxItems,
		"refreshMinutes": s.RefreshMinutes,
	}
	mergeExtra(out, s.Extra)
	return out
}

var knownMetrics = []string{"cpu", "memory", "disk", "network", "gpu"}

// SystemMonitorSettings configures the system metrics widget.
type SystemMonitorSettings struct {
	Metrics           []string       `json:"metrics"`
	RefreshIntervalMs int            `json:"refreshIntervalMs"`
	ShowGraphs        bool           `json:"showGraphs"`
	TemperatureUnit   string         `json:"temperatureUnit"`
	Extra             map[string]any `json:"-"`
}

// DefaultSystemMonitorSettings returns the system monitor defaults.
func DefaultSystemMonitorSettings() SystemMonitorSettings {
	return SystemMonitorSettings{
		Metrics:           []string{"cpu", "memory"},
		RefreshIntervalMs: 2000,
		ShowGraphs:        true,
		TemperatureUnit:   "celsius",
	}
}

// EnsureSystemMonitorSettings normalizes candidate into SystemMonitorSettings.
// Unknown and repeated metric names are dropped; an empty result falls back
// to the default metric set.
func EnsureSystemMonitorSettings(candidate any) SystemMonitorSettings {
	s := DefaultSystemMonitorSettings()
	obj, ok := asObject(candidate)
	if !ok {
		return s
	}
	if list, ok := asList(obj["metrics"]); ok {
		var metrics []string
		for _, item := range list {
			name, ok := item.(string)
			if !ok || !contains(knownMetrics, name) || contains(metrics, name) {
				continue
			}
			metrics = append(metrics, name)
		}
		if len(metrics) > 0 {
			s.Metrics = metrics
		}
	}
	s.RefreshIntervalMs = intRangeField(obj, "refreshIntervalMs", 500, 60000, s.RefreshIntervalMs)
	s.ShowGraphs = boolField(obj, "showGraphs", s.ShowGraphs)
	s.TemperatureUnit = enumField(obj, "temperatureUnit", s.TemperatureUnit, "celsius", "fahrenheit")
	s.Extra = extraFields(obj, "metrics", "refreshIntervalMs", "showGraphs", "temperatureUnit")
	return s
}

// Map returns the stored settings record.
func (s SystemMonitorSettings) Map() Settings {
	metrics := make([]any, len(s.Metrics))
	for i, m := range s.Metrics {
		metrics[i] = m
	}
	out := Settings{
		"metrics":           metrics,
		"refreshIntervalMs": s.RefreshIntervalMs,
		"showGraphs":        s.ShowGraphs,
		"temperatureUnit":   s.TemperatureUnit,
	}
	mergeExtra(out, s.Extra)
	return out
}
