package validation

import (
	"encoding/json"
	"math"
	"strconv"
	"strings"
	"time"
)

// Normalization helpers shared by the validators. They coerce the loosely
// typed values of a decoded JSON body into the types the bounds checks
// expect: numeric-looking strings become numbers, date-like strings become
// dates, and empty strings collapse to "absent" for optional fields.

// absent reports whether an optional field should be treated as not
// provided: missing key, JSON null or an empty/blank string.
func absent(v any, present bool) bool {
	if !present || v == nil {
		return true
	}
	if s, ok := v.(string); ok && strings.TrimSpace(s) == "" {
		return true
	}
	return false
}

// asString accepts only genuine strings; other types are left for the
// caller to reject.
func asString(v any) (string, bool) {
	s, ok := v.(string)
	return s, ok
}

// asNumber converts numbers and numeric-looking strings to float64.
func asNumber(v any) (float64, bool) {
	switch n := v.(type) {
	case float64:
		return n, true
	case json.Number:
		f, err := n.Float64()
		return f, err == nil
	case string:
		f, err := strconv.ParseFloat(strings.TrimSpace(n), 64)
		return f, err == nil
	default:
		return 0, false
	}
}

// asInt is asNumber restricted to integral values.
func asInt(v any) (int64, bool) {
	f, ok := asNumber(v)
	if !ok || f != math.Trunc(f) {
		return 0, false
	}
	return int64(f), true
}

// asBool accepts only genuine booleans.
func asBool(v any) (bool, bool) {
	b, ok := v.(bool)
	return b, ok
}

var dateLayouts = []string{"2006-01-02", time.RFC3339}

// asDate parses date-like strings. An unparseable value fails validation
// rather than silently defaulting.
func asDate(v any) (time.Time, bool) {
	s, ok := v.(string)
	if !ok {
		return time.Time{}, false
	}
	s = strings.TrimSpace(s)
	for _, layout := range dateLayouts {
		if t, err := time.Parse(layout, s); err == nil {
			return t, true
		}
	}
	return time.Time{}, false
}

// dateOnly truncates a timestamp to its calendar date in UTC so date
// bounds compare day against day.
func dateOnly(t time.Time) time.Time {
	y, m, d := t.Date()
	return time.Date(y, m, d, 0, 0, 0, 0, time.UTC)
}
