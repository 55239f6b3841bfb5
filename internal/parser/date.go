package parser

import (
	"fmt"
	"strings"
	"time"
)

var rfc2822Layouts = []string{
	"Mon, 2 Jan 2006 15:04:05 -0700",
	"Mon, 2 Jan 2006 15:04 -0700",
	"2 Jan 2006 15:04:05 -0700",
	"2 Jan 2006 15:04 -0700",
}

// rfc2822Zones are the obsolete zone names RFC 2822 still accepts.
var rfc2822Zones = map[string]int{
	"UT":  0,
	"GMT": 0,
	"Z":   0,
	"EST": -5,
	"EDT": -4,
	"CST": -6,
	"CDT": -5,
	"MST": -7,
	"MDT": -6,
	"PST": -8,
	"PDT": -7,
}

var iso8601Layouts = []string{
	"2006-01-02T15:04:05.999999999Z0700",
	"2006-01-02T15:04:05Z0700",
	"2006-01-02T15:04Z07:00",
	"2006-01-02T15:04:05.999999999",
	"2006-01-02T15:04:05",
	"20060102T150405Z0700",
}

// literalUTCLayout covers generators that print a fixed "UTC" suffix instead
// of a numeric offset.
const literalUTCLayout = "Mon, 02 Jan 2006 15:04:05 UTC"

// ParseDate reads a publication timestamp, trying RFC 2822, RFC 3339 and
// ISO 8601 in that order before the literal-UTC fallback. The result is
// always in UTC.
func ParseDate(text string) (time.Time, error) {
	v := strings.TrimSpace(text)
	if v == "" {
		return time.Time{}, fmt.Errorf("%w: empty date", ErrDate)
	}
	if t, ok := parseRFC2822(v); ok {
		return t.UTC(), nil
	}
	if t, err := time.Parse(time.RFC3339, v); err == nil {
		return t.UTC(), nil
	}
	for _, layout := range iso8601Layouts {
		if t, err := time.Parse(layout, v); err == nil {
			return t.UTC(), nil
		}
	}
	if t, err := time.ParseInLocation(literalUTCLayout, v, time.UTC); err == nil {
		return t, nil
	}
	return time.Time{}, fmt.Errorf("%w: %q", ErrDate, text)
}

func parseRFC2822(v string) (time.Time, bool) {
	for _, layout := range rfc2822Layouts {
		if t, err := time.Parse(layout, v); err == nil {
			return t, true
		}
	}

	idx := strings.LastIndexByte(v, ' ')
	if idx < 0 {
		return time.Time{}, false
	}
	hours, ok := rfc2822Zones[v[idx+1:]]
	if !ok {
		return time.Time{}, false
	}
	loc := time.FixedZone(v[idx+1:], hours*60*60)
	base := v[:idx]
	for _, layout := range rfc2822Layouts {
		layout = strings.TrimSuffix(layout, " -0700")
		if t, err := time.ParseInLocation(layout, base, loc); err == nil {
			return t, true
		}
	}
	return time.Time{}, false
}
