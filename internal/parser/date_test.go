package parser

import (
	"errors"
	"testing"
	"time"
)

func TestParseDateAcceptedFormats(t *testing.T) {
	cases := []struct {
		in   string
		want time.Time
	}{
		{in: "Mon, 02 Jan 2006 15:04:05 -0700", want: time.Date(2006, 1, 2, 22, 4, 5, 0, time.UTC)},
		{in: "Mon, 2 Jan 2006 15:04:05 +0000", want: time.Date(2006, 1, 2, 15, 4, 5, 0, time.UTC)},
		{in: "02 Jan 2006 15:04:05 -0700", want: time.Date(2006, 1, 2, 22, 4, 5, 0, time.UTC)},
		{in: "Mon, 02 Jan 2006 15:04:05 GMT", want: time.Date(2006, 1, 2, 15, 4, 5, 0, time.UTC)},
		{in: "Mon, 02 Jan 2006 15:04:05 EST", want: time.Date(2006, 1, 2, 20, 4, 5, 0, time.UTC)},
		{in: "2006-01-02T15:04:05Z", want: time.Date(2006, 1, 2, 15, 4, 5, 0, time.UTC)},
		{in: "2006-01-02T15:04:05+02:00", want: time.Date(2006, 1, 2, 13, 4, 5, 0, time.UTC)},
		{in: "2006-01-02T15:04:05.250Z", want: time.Date(2006, 1, 2, 15, 4, 5, 250000000, time.UTC)},
		{in: "2006-01-02T15:04:05+0200", want: time.Date(2006, 1, 2, 13, 4, 5, 0, time.UTC)},
		{in: "2006-01-02T15:04:05", want: time.Date(2006, 1, 2, 15, 4, 5, 0, time.UTC)},
		{in: "Mon, 02 Jan 2006 15:04:05 UTC", want: time.Date(2006, 1, 2, 15, 4, 5, 0, time.UTC)},
		{in: "  Mon, 30 Sep 2024 06:30:00 UTC\n", want: time.Date(2024, 9, 30, 6, 30, 0, 0, time.UTC)},
	}

	for _, tc := range cases {
		got, err := ParseDate(tc.in)
		if err != nil {
			t.Fatalf("ParseDate(%q): %v", tc.in, err)
		}
		if !got.Equal(tc.want) {
			t.Fatalf("ParseDate(%q) = %s, want %s", tc.in, got.UTC(), tc.want)
		}
	}
}

func TestParseDateLiteralUTCIsUTC(t *testing.T) {
	got, err := ParseDate("Mon, 02 Jan 2006 15:04:05 UTC")
	if err != nil {
		t.Fatalf("ParseDate: %v", err)
	}
	if _, offset := got.Zone(); offset != 0 {
		t.Fatalf("offset = %d, want 0", offset)
	}
}

func TestParseDateNormalizesOffsetsToUTC(t *testing.T) {
	for _, in := range []string{
		"2006-01-02T15:04:05+02:00",
		"Mon, 02 Jan 2006 15:04:05 -0700",
		"Mon, 02 Jan 2006 15:04:05 EST",
		"2006-01-02T15:04:05+0200",
	} {
		got, err := ParseDate(in)
		if err != nil {
			t.Fatalf("ParseDate(%q): %v", in, err)
		}
		if got.Location() != time.UTC {
			t.Fatalf("ParseDate(%q) location = %s, want UTC", in, got.Location())
		}
	}
}

func TestParseDateRejectsUnknown(t *testing.T) {
	for _, in := range []string{"", "yesterday", "02/01/2006", "Mon, 02 Jan 2006 15:04:05 CEST-ish"} {
		if _, err := ParseDate(in); !errors.Is(err, ErrDate) {
			t.Fatalf("ParseDate(%q) err = %v, want ErrDate", in, err)
		}
	}
}
