// Package isotime parses the lenient ISO-8601 forms accepted by the DateTime
// field: anything from a bare year down to a full timestamp with fractional
// seconds and a UTC offset. Subfields that are absent take their lowest value
// (month and day default to 1, the clock to 0), and a missing offset means
// UTC.
package isotime

import (
	"errors"
	"fmt"
	"strconv"
	"strings"
	"time"
)

// ErrFormat reports input that is not one of the accepted ISO-8601 forms.
var ErrFormat = errors.New("isotime: invalid ISO-8601 value")

// Parse accepts, in order of increasing precision:
//
//	2006
//	2006-01
//	2006-01-02
//	2006-01-02T15:04 (or a space instead of 'T')
//	2006-01-02T15:04:05
//	2006-01-02T15:04:05.999999
//
// each optionally followed by Z, +HH, +HH:MM or +HHMM when a time part is
// present. Fractional seconds are right-padded or truncated to microsecond
// precision.
func Parse(s string) (time.Time, error) {
	if s == "" {
		return time.Time{}, ErrFormat
	}
	datePart, timePart, hasTime := splitDateTime(s)

	year, month, day, err := parseDate(datePart)
	if err != nil {
		return time.Time{}, err
	}

	hour, minute, sec, nsec := 0, 0, 0, 0
	loc := time.UTC
	if hasTime {
		timePart, loc, err = splitOffset(timePart)
		if err != nil {
			return time.Time{}, err
		}
		hour, minute, sec, nsec, err = parseClock(timePart)
		if err != nil {
			return time.Time{}, err
		}
	}

	t := time.Date(year, time.Month(month), day, hour, minute, sec, nsec, loc)
	// time.Date normalizes out-of-range components (Feb 30 becomes Mar 2);
	// reject anything that did not round-trip.
	if t.Year() != year || t.Month() != time.Month(month) || t.Day() != day {
		return time.Time{}, fmt.Errorf("%w: %q", ErrFormat, s)
	}
	return t, nil
}

// Format renders t as canonical ISO-8601 text, trimming trailing fractional
// zeros and keeping the value's own offset.
func Format(t time.Time) string {
	return t.Format(time.RFC3339Nano)
}

func splitDateTime(s string) (datePart, timePart string, hasTime bool) {
	for i := 0; i < len(s); i++ {
		if s[i] == 'T' || s[i] == 't' || s[i] == ' ' {
			return s[:i], s[i+1:], true
		}
	}
	return s, "", false
}

func parseDate(s string) (year, month, day int, err error) {
	month, day = 1, 1
	parts := strings.Split(s, "-")
	if len(parts) > 3 {
		return 0, 0, 0, fmt.Errorf("%w: %q", ErrFormat, s)
	}
	if year, err = fixed(parts[0], 4); err != nil {
		return 0, 0, 0, fmt.Errorf("%w: %q", ErrFormat, s)
	}
	if len(parts) > 1 {
		if month, err = fixed(parts[1], 2); err != nil || month < 1 || month > 12 {
			return 0, 0, 0, fmt.Errorf("%w: %q", ErrFormat, s)
		}
	}
	if len(parts) > 2 {
		if day, err = fixed(parts[2], 2); err != nil || day < 1 || day > 31 {
			return 0, 0, 0, fmt.Errorf("%w: %q", ErrFormat, s)
		}
	}
	return year, month, day, nil
}

// splitOffset strips a trailing Z / ±HH[:MM] / ±HHMM from the time part and
// returns the corresponding location (UTC when no offset is given).
func splitOffset(s string) (rest string, loc *time.Location, err error) {
	if n := len(s); n > 0 && (s[n-1] == 'Z' || s[n-1] == 'z') {
		return s[:n-1], time.UTC, nil
	}
	idx := -1
	for i := 0; i < len(s); i++ {
		if s[i] == '+' || s[i] == '-' {
			idx = i
			break
		}
	}
	if idx == -1 {
		return s, time.UTC, nil
	}
	off := s[idx:]
	sign := 1
	if off[0] == '-' {
		sign = -1
	}
	off = off[1:]
	off = strings.Replace(off, ":", "", 1)
	var hh, mm int
	switch len(off) {
	case 2:
		hh, err = fixed(off, 2)
	case 4:
		if hh, err = fixed(off[:2], 2); err == nil {
			mm, err = fixed(off[2:], 2)
		}
	default:
		err = ErrFormat
	}
	if err != nil || hh > 23 || mm > 59 {
		return "", nil, fmt.Errorf("%w: offset %q", ErrFormat, s[idx:])
	}
	secs := sign * (hh*3600 + mm*60)
	if secs == 0 {
		return s[:idx], time.UTC, nil
	}
	return s[:idx], time.FixedZone("", secs), nil
}

func parseClock(s string) (hour, minute, sec, nsec int, err error) {
	frac := ""
	if i := strings.IndexByte(s, '.'); i != -1 {
		s, frac = s[:i], s[i+1:]
	}
	parts := strings.Split(s, ":")
	if len(parts) < 2 || len(parts) > 3 {
		return 0, 0, 0, 0, fmt.Errorf("%w: time %q", ErrFormat, s)
	}
	if hour, err = fixed(parts[0], 2); err != nil || hour > 23 {
		return 0, 0, 0, 0, fmt.Errorf("%w: time %q", ErrFormat, s)
	}
	if minute, err = fixed(parts[1], 2); err != nil || minute > 59 {
		return 0, 0, 0, 0, fmt.Errorf("%w: time %q", ErrFormat, s)
	}
	if len(parts) == 3 {
		if sec, err = fixed(parts[2], 2); err != nil || sec > 59 {
			return 0, 0, 0, 0, fmt.Errorf("%w: time %q", ErrFormat, s)
		}
	} else if frac != "" {
		// fractional seconds require a seconds component
		return 0, 0, 0, 0, fmt.Errorf("%w: time %q", ErrFormat, s)
	}
	if frac != "" {
		micros, ferr := parseFraction(frac)
		if ferr != nil {
			return 0, 0, 0, 0, fmt.Errorf("%w: fraction %q", ErrFormat, frac)
		}
		nsec = micros * 1000
	}
	return hour, minute, sec, nsec, nil
}

// parseFraction interprets a digit run as microseconds: right-padded when
// shorter than six digits, truncated when longer.
func parseFraction(frac string) (int, error) {
	for i := 0; i < len(frac); i++ {
		if frac[i] < '0' || frac[i] > '9' {
			return 0, ErrFormat
		}
	}
	if len(frac) > 6 {
		frac = frac[:6]
	}
	for len(frac) < 6 {
		frac += "0"
	}
	return strconv.Atoi(frac)
}

// fixed parses an exactly n-digit decimal number.
func fixed(s string, n int) (int, error) {
	if len(s) != n {
		return 0, ErrFormat
	}
	for i := 0; i < n; i++ {
		if s[i] < '0' || s[i] > '9' {
			return 0, ErrFormat
		}
	}
	return strconv.Atoi(s)
}
