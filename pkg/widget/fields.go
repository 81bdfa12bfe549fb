package widget

import (
	"regexp"
	"strings"
)

// Field readers used by the normalizers. Each one returns the provided value
// when it has the right type and domain, and def otherwise.

func enumField(obj map[string]any, key, def string, allowed ...string) string {
	s, ok := obj[key].(string)
	if !ok {
		return def
	}
	for _, a := range allowed {
		if s == a {
			return s
		}
	}
	return def
}

func boolField(obj map[string]any, key string, def bool) bool {
	if b, ok := obj[key].(bool); ok {
		return b
	}
	return def
}

func stringField(obj map[string]any, key, def string) string {
	if s, ok := obj[key].(string); ok {
		return s
	}
	return def
}

func nonEmptyStringField(obj map[string]any, key, def string) string {
	if s, ok := obj[key].(string); ok && strings.TrimSpace(s) != "" {
		return s
	}
	return def
}

func intRangeField(obj map[string]any, key string, min, max, def int) int {
	n, ok := asInt(obj[key])
	if !ok || n < min || n > max {
		return def
	}
	return n
}

var hexColor = regexp.MustCompile(`^#[0-9a-fA-F]{6}$`)

func colorField(obj map[string]any, key, def string) string {
	if s, ok := obj[key].(string); ok && hexColor.MatchString(s) {
		return s
	}
	return def
}

// extraFields returns deep copies of every key not in known, or nil when
// there are none.
func extraFields(obj map[string]any, known ...string) map[string]any {
	var extra map[string]any
	for k, v := range obj {
		if contains(known, k) {
			continue
		}
		if extra == nil {
			extra = make(map[string]any)
		}
		extra[k] = cloneValue(v)
	}
	return extra
}

// mergeExtra writes extra into out without touching schema keys.
func mergeExtra(out map[string]any, extra map[string]any) {
	for k, v := range extra {
		if _, taken := out[k]; taken {
			continue
		}
		out[k] = cloneValue(v)
	}
}

func contains(list []string, s string) bool {
	for _, item := range list {
		if item == s {
			return true
		}
	}
	return false
}
