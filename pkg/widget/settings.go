package widget

import (
	"encoding/json"
	"math"
	"reflect"
)

// Settings is the stored form of a widget's settings: an open record whose
// shape depends on the widget type. Values stored in a layout are always the
// output of a normalizer, never raw caller input.
type Settings map[string]any

// Clone returns a deep copy of s. Nested maps and slices of any concrete
// type (JSON, BSON or YAML decoded) are converted to map[string]any and
// []any.
func (s Settings) Clone() Settings {
	if s == nil {
		return nil
	}
	out := make(Settings, len(s))
	for k, v := range s {
		out[k] = cloneValue(v)
	}
	return out
}

// AsSettings converts an arbitrary decoded value into a Settings record.
// It returns false when v is not an object.
func AsSettings(v any) (Settings, bool) {
	obj, ok := asObject(v)
	if !ok {
		return nil, false
	}
	return Settings(obj).Clone(), true
}

func cloneValue(v any) any {
	if obj, ok := asObject(v); ok {
		out := make(map[string]any, len(obj))
		for k, item := range obj {
			out[k] = cloneValue(item)
		}
		return out
	}
	if list, ok := asList(v); ok {
		out := make([]any, len(list))
		for i, item := range list {
			out[i] = cloneValue(item)
		}
		return out
	}
	return v
}

// asObject views v as a string-keyed object. Decoders hand us different
// concrete map types (map[string]any, Settings, bson.M, YAML maps), so
// anything with string keys qualifies.
func asObject(v any) (map[string]any, bool) {
	switch m := v.(type) {
	case nil:
		return nil, false
	case map[string]any:
		return m, true
	case Settings:
		return map[string]any(m), true
	}

	rv := reflect.ValueOf(v)
	if rv.Kind() != reflect.Map || rv.Type().Key().Kind() != reflect.String {
		return nil, false
	}
	out := make(map[string]any, rv.Len())
	iter := rv.MapRange()
	for iter.Next() {
		out[iter.Key().String()] = iter.Value().Interface()
	}
	return out, true
}

func asList(v any) ([]any, bool) {
	switch l := v.(type) {
	case nil:
		return nil, false
	case []any:
		return l, true
	case string, []byte:
		return nil, false
	}

	rv := reflect.ValueOf(v)
	if rv.Kind() != reflect.Slice && rv.Kind() != reflect.Array {
		return nil, false
	}
	out := make([]any, rv.Len())
	for i := range out {
		out[i] = rv.Index(i).Interface()
	}
	return out, true
}

// asInt accepts any integral number regardless of its decoded
// representation. Floats qualify only when they have no fractional part.
func asInt(v any) (int, bool) {
	switch n := v.(type) {
	case int:
		return n, true
	case json.Number:
		if i, err := n.Int64(); err == nil {
			return int(i), true
		}
		if f, err := n.Float64(); err == nil {
			return floatToInt(f)
		}
		return 0, false
	case bool, string:
		return 0, false
	}

	rv := reflect.ValueOf(v)
	switch rv.Kind() {
	case reflect.Int, reflect.Int8, reflect.Int16, reflect.Int32, reflect.Int64:
		return int(rv.Int()), true
	case reflect.Uint, reflect.Uint8, reflect.Uint16, reflect.Uint32, reflect.Uint64:
		u := rv.Uint()
		if u > math.MaxInt32 {
			return 0, false
		}
		return int(u), true
	case reflect.Float32, reflect.Float64:
		return floatToInt(rv.Float())
	}
	return 0, false
}

func floatToInt(f float64) (int, bool) {
	if math.IsNaN(f) || math.IsInf(f, 0) || f != math.Trunc(f) {
		return 0, false
	}
	if f > math.MaxInt32 || f < math.MinInt32 {
		return 0, false
	}
	return int(f), true
}
