// Package coerce converts loosely typed record values into numbers and
// times. Every conversion falls back to a neutral value instead of failing,
// so one malformed record never poisons totals computed from other records.
package coerce

import (
	"encoding/json"
	"math"
	"strings"
	"time"

	"github.com/spf13/cast"
)

// Number returns v as a finite float64, or 0 when v is missing, null,
// non-numeric, NaN or infinite.
func Number(v any) float64 {
	switch n := v.(type) {
	case nil, bool:
		return 0
	case string:
		v = strings.TrimSpace(n)
	case *float64:
		if n == nil {
			return 0
		}
		v = *n
	}

	f, err := cast.ToFloat64E(v)
	if err != nil || math.IsNaN(f) || math.IsInf(f, 0) {
		return 0
	}
	return f
}

// postgresLayouts are the text forms Postgres prints for timestamptz, whose
// offset may carry hours only. Fractional seconds are accepted by time.Parse
// without a layout element.
var postgresLayouts = []string{
	"2006-01-02 15:04:05-07",
	"2006-01-02 15:04:05-07:00",
}

func isDigits(s string) bool {
	for _, r := range s {
		if r < '0' || r > '9' {
			return false
		}
	}
	return s != ""
}

// Time parses v into a time. Strings are parsed in any of the common layouts
// (RFC3339, "2006-01-02 15:04:05", "2006-01-02", ...) and numbers are Unix
// milliseconds, as are digit-only strings. The boolean is false when v cannot be read as a valid time.
func Time(v any) (time.Time, bool) {
	switch t := v.(type) {
	case nil:
		return time.Time{}, false
	case time.Time:
		return t, !t.IsZero()
	case *time.Time:
		if t == nil || t.IsZero() {
			return time.Time{}, false
		}
		return *t, true
	case string:
		s := strings.TrimSpace(t)
		if s == "" {
			return time.Time{}, false
		}
		if isDigits(s) {
			return Time(json.Number(s))
		}
		if parsed, err := cast.ToTimeInDefaultLocationE(s, time.UTC); err == nil && !parsed.IsZero() {
			return parsed, true
		}
		for _, layout := range postgresLayouts {
			if parsed, err := time.Parse(layout, s); err == nil {
				return parsed, true
			}
		}
		return time.Time{}, false
	case float64, float32, int, int32, int64, uint, uint32, uint64, json.Number:
		ms := Number(t)
		if ms == 0 {
			return time.Time{}, false
		}
		return time.UnixMilli(int64(ms)).UTC(), true
	}
	return time.Time{}, false
}
