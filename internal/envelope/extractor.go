// Package envelope locates the list of records inside the backend's response
// envelope. The backend is inconsistent about nesting: the payload may sit at
// data, data.data, data.<collection> (e.g. "transactions"), one level deeper
// under a nested data object, or at the response root. Rather than probing
// fields ad hoc, extraction runs an ordered list of strategies and takes the
// first hit. A response with no reachable array yields an empty slice, never
// an error; callers render "no data" and "malformed response" identically.
package envelope

import "sort"

// strategy attempts to locate a record array in a decoded JSON value.
// It returns the records and whether it found anything.
type strategy func(v any, preferred string) ([]any, bool)

// strategies are tried in order: a known collection key beats the generic
// "data" key, which beats a root-level array, which beats scanning arbitrary
// keys. Nested data objects are only descended into one level.
var strategies = []strategy{
	preferredKey,
	dataKey,
	rootArray,
	anyTopLevelArray,
	nestedData,
}

// Extract returns the first record array reachable in v, searching top-level
// locations before descending one level into a nested "data" object.
// preferred names the collection being fetched ("transactions", "accounts",
// ...) and wins over the generic "data" field when both are present.
func Extract(v any, preferred string) []any {
	for _, s := range strategies {
		if records, ok := s(v, preferred); ok {
			return records
		}
	}
	return nil
}

func preferredKey(v any, preferred string) ([]any, bool) {
	obj, ok := v.(map[string]any)
	if !ok || preferred == "" {
		return nil, false
	}
	arr, ok := obj[preferred].([]any)
	return arr, ok
}

func dataKey(v any, _ string) ([]any, bool) {
	obj, ok := v.(map[string]any)
	if !ok {
		return nil, false
	}
	arr, ok := obj["data"].([]any)
	return arr, ok
}

func rootArray(v any, _ string) ([]any, bool) {
	arr, ok := v.([]any)
	return arr, ok
}

// anyTopLevelArray scans the remaining top-level keys in sorted order so that
// extraction is deterministic when several arrays are present.
func anyTopLevelArray(v any, _ string) ([]any, bool) {
	obj, ok := v.(map[string]any)
	if !ok {
		return nil, false
	}
	for _, key := range sortedKeys(obj) {
		if arr, ok := obj[key].([]any); ok {
			return arr, true
		}
	}
	return nil, false
}

// nestedData descends into a nested data object and reruns the shallow
// strategies there. The backend has been seen double-wrapping, so a second
// data level is searched as well; nothing deeper.
func nestedData(v any, preferred string) ([]any, bool) {
	obj, ok := v.(map[string]any)
	if !ok {
		return nil, false
	}
	inner, ok := obj["data"].(map[string]any)
	if !ok {
		return nil, false
	}
	if arr, ok := searchObject(inner, preferred); ok {
		return arr, true
	}
	if deeper, ok := inner["data"].(map[string]any); ok {
		return searchObject(deeper, preferred)
	}
	return nil, false
}

func searchObject(obj map[string]any, preferred string) ([]any, bool) {
	if arr, ok := preferredKey(obj, preferred); ok {
		return arr, true
	}
	if arr, ok := dataKey(obj, ""); ok {
		return arr, true
	}
	return anyTopLevelArray(obj, "")
}

// ExtractObject returns the payload object for single-record responses,
// unwrapping one level of "data" nesting when present.
func ExtractObject(v any) map[string]any {
	obj, ok := v.(map[string]any)
	if !ok {
		return nil
	}
	if inner, ok := obj["data"].(map[string]any); ok {
		return inner
	}
	return obj
}

func sortedKeys(obj map[string]any) []string {
	keys := make([]string, 0, len(obj))
	for k := range obj {
		if k == "data" {
			continue
		}
		keys = append(keys, k)
	}
	sort.Strings(keys)
	return keys
}
