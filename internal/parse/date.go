package parse

import (
	"regexp"
	"strconv"
	"strings"
	"time"
)

var (
	dayFirstRe = regexp.MustCompile(`^(\d{1,2})[/\-.](\d{1,2})[/\-.](\d{2,4})$`)
	isoRe      = regexp.MustCompile(`^(\d{4})[/\-](\d{1,2})[/\-](\d{1,2})$`)
)

// genericLayouts is the fallback chain for dates that match neither the
// day-first nor the ISO pattern.
var genericLayouts = []string{
	time.RFC3339,
	"2006-01-02T15:04:05",
	"2006/01/02",
	"02 Jan 2006",
	"Jan 2, 2006",
}

// Date parses a calendar date, trying day-first formats (DD/MM/YYYY,
// DD-MM-YYYY, DD.MM.YYYY, including 2-digit years), then ISO YYYY-MM-DD,
// then a generic fallback chain. Import must never abort on a bad row, so
// total failure returns now plus a Warning; callers record the substitution
// so the audit engine can flag it.
func Date(raw string, now time.Time) (time.Time, *Warning) {
	cleaned := strings.TrimSpace(raw)
	if cleaned == "" {
		return now, &Warning{Field: "date", Raw: raw, Reason: "empty, defaulted to today"}
	}

	if m := dayFirstRe.FindStringSubmatch(cleaned); m != nil {
		day, _ := strconv.Atoi(m[1])
		month, _ := strconv.Atoi(m[2])
		year, _ := strconv.Atoi(m[3])
		if year < 100 {
			if year < 50 {
				year += 2000
			} else {
				year += 1900
			}
		}
		if d, ok := makeDate(year, month, day); ok {
			return d, nil
		}
	} else if m := isoRe.FindStringSubmatch(cleaned); m != nil {
		year, _ := strconv.Atoi(m[1])
		month, _ := strconv.Atoi(m[2])
		day, _ := strconv.Atoi(m[3])
		if d, ok := makeDate(year, month, day); ok {
			return d, nil
		}
	}

	for _, layout := range genericLayouts {
		if d, err := time.Parse(layout, cleaned); err == nil {
			return time.Date(d.Year(), d.Month(), d.Day(), 0, 0, 0, 0, time.UTC), nil
		}
	}

	return now, &Warning{Field: "date", Raw: raw, Reason: "unrecognized format, defaulted to today"}
}

// makeDate validates component ranges and rejects calendar overflow
// (e.g. 31/02 normalizing to March).
func makeDate(year, month, day int) (time.Time, bool) {
	if day < 1 || day > 31 || month < 1 || month > 12 || year < 1900 || year > 2100 {
		return time.Time{}, false
	}
	d := time.Date(year, time.Month(month), day, 0, 0, 0, 0, time.UTC)
	if d.Day() != day || int(d.Month()) != month || d.Year() != year {
		return time.Time{}, false
	}
	return d, true
}
