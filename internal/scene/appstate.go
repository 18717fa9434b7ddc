package scene

import (
	"maps"
	"reflect"
	"slices"
)

// Well known application state fields.
const (
	FieldActiveTool                  = "activeTool"
	FieldStrokeColor                 = "currentItemStrokeColor"
	FieldBackgroundColor             = "currentItemBackgroundColor"
	FieldStrokeWidth                 = "currentItemStrokeWidth"
	FieldOpacity                     = "currentItemOpacity"
	FieldSelectedElementIDs          = "selectedElementIds"
	FieldWhiteboardMode              = "whiteboardMode"
	FieldWhiteboardToolbarScale      = "whiteboardToolbarScale"
	FieldWhiteboardSideControlsScale = "whiteboardSideControlsScale"
	FieldScrollX                     = "scrollX"
	FieldViewModeEnabled             = "viewModeEnabled"
	FieldEditingElementID            = "editingElementId"
	FieldOpenMenu                    = "openMenu"
	FieldViewportWidth               = "viewportWidth"
	FieldViewBackgroundColor         = "viewBackgroundColor"
)

// AppState is the flat mapping of UI/application fields. Values are
// immutable scalars or []string; setters copy the map.
type AppState map[string]any

// DefaultAppState returns the state a fresh editor starts with.
func DefaultAppState() AppState {
	return AppState{
		FieldActiveTool:                  "selection",
		FieldStrokeColor:                 "#1e1e1e",
		FieldBackgroundColor:             "transparent",
		FieldStrokeWidth:                 1.0,
		FieldOpacity:                     100,
		FieldSelectedElementIDs:          []string{},
		FieldWhiteboardMode:              false,
		FieldWhiteboardToolbarScale:      1.0,
		FieldWhiteboardSideControlsScale: 1.0,
		FieldScrollX:                     0.0,
		FieldViewModeEnabled:             false,
		FieldViewportWidth:               800.0,
		FieldViewBackgroundColor:         "#ffffff",
	}
}

// Clone returns a copy of the map; slice values are copied too.
func (s AppState) Clone() AppState {
	out := make(AppState, len(s))
	for k, v := range s {
		out[k] = cloneValue(v)
	}
	return out
}

// With returns a copy with key set to value.
func (s AppState) With(key string, value any) AppState {
	out := s.Clone()
	out[key] = cloneValue(value)
	return out
}

// Without returns a copy with key removed.
func (s AppState) Without(key string) AppState {
	out := s.Clone()
	delete(out, key)
	return out
}

// Merge returns a copy with every field of fields applied.
func (s AppState) Merge(fields map[string]any) AppState {
	out := s.Clone()
	for k, v := range fields {
		out[k] = cloneValue(v)
	}
	return out
}

// Has reports whether key is present.
func (s AppState) Has(key string) bool {
	_, ok := s[key]
	return ok
}

// Keys returns the field names in sorted order.
func (s AppState) Keys() []string {
	return slices.Sorted(maps.Keys(s))
}

// String returns a string field or "".
func (s AppState) String(key string) string {
	v, _ := s[key].(string)
	return v
}

// Bool returns a bool field or false.
func (s AppState) Bool(key string) bool {
	v, _ := s[key].(bool)
	return v
}

// Float returns a numeric field as float64, or 0.
func (s AppState) Float(key string) float64 {
	switch v := s[key].(type) {
	case float64:
		return v
	case float32:
		return float64(v)
	case int:
		return float64(v)
	case int64:
		return float64(v)
	default:
		return 0
	}
}

// Int returns a numeric field as int, or 0.
func (s AppState) Int(key string) int {
	switch v := s[key].(type) {
	case int:
		return v
	case int64:
		return int(v)
	case float64:
		return int(v)
	default:
		return 0
	}
}

// Strings returns a copy of a []string field.
func (s AppState) Strings(key string) []string {
	v, _ := s[key].([]string)
	return slices.Clone(v)
}

// ValuesEqual compares two field values.
func ValuesEqual(a, b any) bool {
	return reflect.DeepEqual(a, b)
}

func cloneValue(v any) any {
	if ss, ok := v.([]string); ok {
		if ss == nil {
			return []string{}
		}
		return slices.Clone(ss)
	}
	return v
}
