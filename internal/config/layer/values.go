package layer

import (
	"maps"
	"reflect"
	"slices"
)

// CloneValue returns a deep copy of an option value. Tables and arrays are
// copied recursively; scalars are returned as is.
func CloneValue(v any) any {
	switch val := v.(type) {
	case map[string]any:
		return CloneValues(val)
	case []any:
		out := make([]any, len(val))
		for i, e := range val {
			out[i] = CloneValue(e)
		}
		return out
	}
	return v
}

// CloneValues returns a deep copy of a set of option values. A nil map
// yields an empty one.
func CloneValues(values map[string]any) map[string]any {
	out := make(map[string]any, len(values))
	for name, v := range values {
		out[name] = CloneValue(v)
	}
	return out
}

// Flatten turns nested tables into dotted option names, so that
//
//	[keyboard]
//	repeat_rate = 30
//
// becomes the option "keyboard.repeat_rate".
func Flatten(values map[string]any) map[string]any {
	out := make(map[string]any)
	flatten("", values, out)
	return out
}

func flatten(prefix string, values map[string]any, out map[string]any) {
	for name, v := range values {
		if prefix != "" {
			name = prefix + "." + name
		}
		if table, ok := v.(map[string]any); ok {
			flatten(name, table, out)
			continue
		}
		out[name] = CloneValue(v)
	}
}

// Changed compares two sets of option values. It returns the sorted names
// that are new or hold a different value in updated, and the sorted names
// that updated no longer has.
func Changed(old, updated map[string]any) (set, removed []string) {
	for name, v := range updated {
		if prev, ok := old[name]; !ok || !reflect.DeepEqual(prev, v) {
			set = append(set, name)
		}
	}
	for name := range old {
		if _, ok := updated[name]; !ok {
			removed = append(removed, name)
		}
	}
	slices.Sort(set)
	slices.Sort(removed)
	return set, removed
}

// copyValues copies every value of src over dst.
func copyValues(dst, src map[string]any) {
	maps.Copy(dst, CloneValues(src))
}
