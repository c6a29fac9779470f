// Package normalize maps raw backend records to the canonical entities in
// internal/model. The backend mixes snake_case and camelCase field names
// between endpoints, so each canonical attribute has an ordered list of
// source-field synonyms; the first present, non-nil value wins. Numeric and
// date parsing is deliberately lenient: an unparsable number aggregates as 0
// with the raw text kept for display, and an unparsable date leaves the
// record out of date-windowed aggregates without dropping it from totals.
package normalize

import (
	"encoding/json"
	"strconv"
	"strings"
	"time"
)

// pick returns the first present, non-nil value among the named keys.
func pick(raw map[string]any, keys ...string) (any, bool) {
	for _, key := range keys {
		if v, ok := raw[key]; ok && v != nil {
			return v, true
		}
	}
	return nil, false
}

// pickString returns the first value among keys rendered as a string.
// JSON numbers are accepted (the backend sends numeric identifiers).
func pickString(raw map[string]any, keys ...string) string {
	v, ok := pick(raw, keys...)
	if !ok {
		return ""
	}
	return stringify(v)
}

// pickNumber parses the first value among keys as a float64. Unparsable
// values yield 0 plus the original text so callers can fall back to it for
// display.
func pickNumber(raw map[string]any, keys ...string) (float64, string) {
	v, ok := pick(raw, keys...)
	if !ok {
		return 0, ""
	}
	switch n := v.(type) {
	case float64:
		return n, ""
	case json.Number:
		f, err := n.Float64()
		if err != nil {
			return 0, n.String()
		}
		return f, ""
	case string:
		f, err := strconv.ParseFloat(strings.TrimSpace(n), 64)
		if err != nil {
			return 0, n
		}
		return f, ""
	case bool:
		return 0, strconv.FormatBool(n)
	default:
		return 0, stringify(v)
	}
}

// dateLayouts are tried in order when parsing calendar dates. Time-of-day
// information is parsed when present but carries no semantics downstream.
var dateLayouts = []string{
	"2006-01-02",
	time.RFC3339,
	"2006-01-02T15:04:05",
	"2006-01-02 15:04:05",
	"2006/01/02",
	"01/02/2006",
}

// pickDate parses the first value among keys as a calendar date. Invalid or
// missing dates yield the zero time.
func pickDate(raw map[string]any, keys ...string) time.Time {
	v, ok := pick(raw, keys...)
	if !ok {
		return time.Time{}
	}
	s, ok := v.(string)
	if !ok {
		return time.Time{}
	}
	s = strings.TrimSpace(s)
	for _, layout := range dateLayouts {
		if t, err := time.Parse(layout, s); err == nil {
			return t
		}
	}
	return time.Time{}
}

// pickBool returns the first value among keys interpreted as a boolean,
// or (false, false) when none is present.
func pickBool(raw map[string]any, keys ...string) (bool, bool) {
	v, ok := pick(raw, keys...)
	if !ok {
		return false, false
	}
	switch b := v.(type) {
	case bool:
		return b, true
	case string:
		parsed, err := strconv.ParseBool(strings.TrimSpace(b))
		if err != nil {
			return false, false
		}
		return parsed, true
	default:
		return false, false
	}
}

func stringify(v any) string {
	switch s := v.(type) {
	case string:
		return s
	case float64:
		return strconv.FormatFloat(s, 'f', -1, 64)
	case json.Number:
		return s.String()
	case bool:
		return strconv.FormatBool(s)
	default:
		return ""
	}
}

// asRecord converts one extracted element to a field map; non-object
// elements normalize to nothing.
func asRecord(v any) (map[string]any, bool) {
	m, ok := v.(map[string]any)
	return m, ok
}
