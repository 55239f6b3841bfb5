package store

import (
	"fmt"
	"strings"
	"time"
)

// dbTimeLayout matches CURRENT_TIMESTAMP and sorts lexically.
const dbTimeLayout = "2006-01-02 15:04:05"

func parseDBTime(v string) (time.Time, error) {
	v = strings.TrimSpace(v)
	if v == "" {
		return time.Time{}, fmt.Errorf("empty time")
	}
	layouts := []string{
		dbTimeLayout,
		time.RFC3339Nano,
		time.RFC3339,
		"2006-01-02 15:04:05.999999999-07:00",
		"2006-01-02 15:04:05.999999999",
		"2006-01-02",
	}
	for _, layout := range layouts {
		if t, err := time.Parse(layout, v); err == nil {
			return t, nil
		}
	}
	return time.Time{}, fmt.Errorf("unsupported time format %q", v)
}

func timeToDBString(t *time.Time) any {
	if t == nil || t.IsZero() {
		return nil
	}
	return t.UTC().Format(dbTimeLayout)
}

func nowDBString() string {
	return time.Now().UTC().Format(dbTimeLayout)
}
