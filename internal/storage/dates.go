// ABOUTME: Permissive calendar-date parsing for stored and user-entered dates.
// ABOUTME: Day-first by default, ISO year-first when the first field has four digits.
package storage

import (
	"fmt"
	"strconv"
	"strings"
	"time"
)

// DateLayout is the layout dates are written with.
const DateLayout = "2006-01-02"

// FormatDate renders a date for storage.
func FormatDate(t time.Time) string {
	return t.Format(DateLayout)
}

// ParseDate reads a calendar date written as day/month/year (separators / - . or space,
// two- or four-digit year, 69-99 read as 19xx) or year-month-day. Any time-of-day suffix is ignored.
// The result is UTC midnight.
func ParseDate(s string) (time.Time, error) {
	s = strings.TrimSpace(s)
	if i := strings.IndexAny(s, "T "); i > 0 && strings.Contains(s[i:], ":") {
		s = s[:i]
	}
	fields := strings.FieldsFunc(s, func(r rune) bool {
		return r == '/' || r == '-' || r == '.' || r == ' '
	})
	if len(fields) != 3 {
		return time.Time{}, fmt.Errorf("unrecognized date: %q", s)
	}

	nums := make([]int, 3)
	for i, f := range fields {
		n, err := strconv.Atoi(f)
		if err != nil || n < 0 {
			return time.Time{}, fmt.Errorf("unrecognized date: %q", s)
		}
		nums[i] = n
	}

	var year, month, day int
	if len(fields[0]) == 4 {
		year, month, day = nums[0], nums[1], nums[2]
	} else {
		day, month, year = nums[0], nums[1], nums[2]
		if len(fields[2]) <= 2 {
			year = expandYear(year)
		}
	}

	if month < 1 || month > 12 || day < 1 || day > 31 || year < 1 {
		return time.Time{}, fmt.Errorf("date out of range: %q", s)
	}
	t := time.Date(year, time.Month(month), day, 0, 0, 0, 0, time.UTC)
	if t.Day() != day {
		return time.Time{}, fmt.Errorf("date out of range: %q", s)
	}
	return t, nil
}

// expandYear maps a two-digit year onto a century: 69-99 are the 1900s, 00-68 the 2000s.
func expandYear(yy int) int {
	if yy >= 69 {
		return 1900 + yy
	}
	return 2000 + yy
}
