package transform

import (
	"fmt"
	"strings"
	"time"

	"github.com/marcusfrdk/click-extended-sub002/internal/humanize"
	"github.com/marcusfrdk/click-extended-sub002/node"
)

// Date/time values travel the chain as strings: ToDateTime normalizes to
// RFC 3339, ToTime to a 24h clock string, and ToTimestamp reduces either
// to a Unix timestamp number.

const (
	dateLayout     = "2006-01-02"
	clockLayout    = "15:04:05"
	dateTimeLayout = "2006-01-02 15:04:05"
)

// simplified format tokens accepted alongside Go reference layouts.
var layoutTokens = []struct{ token, layout string }{
	{"YYYY", "2006"},
	{"YY", "06"},
	{"MM", "01"},
	{"DD", "02"},
	{"HH", "15"},
	{"mm", "04"},
	{"SS", "05"},
	{"ss", "05"},
}

// normalizeLayout converts a simplified format ("YYYY-MM-DD") to a Go
// reference layout. Formats already in reference form pass through.
func normalizeLayout(format string) string {
	out := format
	for _, t := range layoutTokens {
		out = strings.ReplaceAll(out, t.token, t.layout)
	}
	return out
}

func parseAny(raw string, layouts []string, loc *time.Location) (time.Time, bool) {
	for _, layout := range layouts {
		if ts, err := time.ParseInLocation(normalizeLayout(layout), raw, loc); err == nil {
			return ts, true
		}
	}
	return time.Time{}, false
}

func formatsMessage(kind, raw string, layouts []string) error {
	if len(layouts) == 1 {
		return fmt.Errorf("invalid %s %q, must be in the format %s", kind, raw, layouts[0])
	}
	return fmt.Errorf("invalid %s %q, must be in either of the formats %s",
		kind, raw, humanize.JoinOr(layouts))
}

// ToDateTime parses the value by trying each format in order and
// normalizes it to RFC 3339 in UTC. Formats may be Go reference layouts
// or simplified ("YYYY-MM-DD HH:mm:SS"). No formats means the defaults:
// date, clock time and date-with-time.
func ToDateTime(formats ...string) *node.Modifier {
	return ToDateTimeIn("UTC", formats...)
}

// ToDateTimeIn is ToDateTime with a named zone ("Europe/Stockholm")
// applied to the parsed value. An unknown zone name is a declaration
// error and panics.
func ToDateTimeIn(zone string, formats ...string) *node.Modifier {
	loc, err := time.LoadLocation(zone)
	if err != nil {
		panic(fmt.Sprintf("transform: unknown time zone %q", zone))
	}
	if len(formats) == 0 {
		formats = []string{dateLayout, clockLayout, dateTimeLayout}
	}
	return stringModifier("to_datetime", func(s string) (string, error) {
		ts, ok := parseAny(s, formats, loc)
		if !ok {
			return "", formatsMessage("datetime", s, formats)
		}
		return ts.Format(time.RFC3339), nil
	})
}

// ToTime parses a clock time by trying each format in order and
// normalizes it to HH:MM:SS. No formats means 24h, 24h without seconds,
// and 12h with and without seconds.
func ToTime(formats ...string) *node.Modifier {
	if len(formats) == 0 {
		formats = []string{clockLayout, "15:04", "3:04:05 PM", "3:04 PM"}
	}
	return stringModifier("to_time", func(s string) (string, error) {
		ts, ok := parseAny(s, formats, time.UTC)
		if !ok {
			return "", formatsMessage("time", s, formats)
		}
		return ts.Format(clockLayout), nil
	})
}

var timestampScale = map[string]int64{
	"s":  1,
	"ms": 1_000,
	"us": 1_000_000,
	"ns": 1_000_000_000,
}

// ToTimestamp reduces an upstream date/time value to a Unix timestamp in
// the given unit ("s", "ms", "us" or "ns"). It accepts RFC 3339 (the
// ToDateTime output), a bare date (midnight UTC) or a bare clock time
// (today UTC). An unknown unit is a declaration error and panics.
func ToTimestamp(unit string) *node.Modifier {
	scale, ok := timestampScale[unit]
	if !ok {
		panic(fmt.Sprintf("transform: unknown timestamp unit %q", unit))
	}
	return stringModifier("to_timestamp", func(s string) (string, error) {
		ts, ok := parseAny(s, []string{time.RFC3339, dateTimeLayout, dateLayout}, time.UTC)
		if !ok {
			clock, ok := parseAny(s, []string{clockLayout}, time.UTC)
			if !ok {
				return "", fmt.Errorf("invalid date or time %q", s)
			}
			now := time.Now().UTC()
			ts = time.Date(now.Year(), now.Month(), now.Day(),
				clock.Hour(), clock.Minute(), clock.Second(), 0, time.UTC)
		}
		return fmt.Sprintf("%d", ts.Unix()*scale), nil
	})
}
