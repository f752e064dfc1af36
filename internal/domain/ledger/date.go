package ledger

import (
	"fmt"
	"strconv"
	"strings"
	"time"
)

// Date is a civil calendar date with no time-of-day or timezone component.
// All dates cross the engine boundary as ISO YYYY-MM-DD strings and are
// parsed into year/month/day components directly; going through a
// timezone-aware constructor shifts the apparent day in negative-UTC-offset
// locales, which is exactly the bug this type exists to prevent.
type Date struct {
	Year  int
	Month time.Month
	Day   int
}

// NewDate creates a Date from its components.
func NewDate(year int, month time.Month, day int) Date {
	return Date{Year: year, Month: month, Day: day}
}

// ParseDate parses an ISO YYYY-MM-DD string into a Date.
// A trailing time portion (e.g. "2024-03-10T00:00:00Z") is ignored.
func ParseDate(s string) (Date, error) {
	if s == "" {
		return Date{}, fmt.Errorf("empty date string")
	}
	if idx := strings.IndexByte(s, 'T'); idx >= 0 {
		s = s[:idx]
	}
	parts := strings.Split(s, "-")
	if len(parts) != 3 || len(parts[0]) != 4 || len(parts[1]) != 2 || len(parts[2]) != 2 {
		return Date{}, fmt.Errorf("invalid date %q: want YYYY-MM-DD", s)
	}
	y, err := strconv.Atoi(parts[0])
	if err != nil {
		return Date{}, fmt.Errorf("invalid date %q: %w", s, err)
	}
	m, err := strconv.Atoi(parts[1])
	if err != nil {
		return Date{}, fmt.Errorf("invalid date %q: %w", s, err)
	}
	d, err := strconv.Atoi(parts[2])
	if err != nil {
		return Date{}, fmt.Errorf("invalid date %q: %w", s, err)
	}
	if m < 1 || m > 12 || d < 1 || d > 31 {
		return Date{}, fmt.Errorf("invalid date %q: out of range", s)
	}
	parsed := Date{Year: y, Month: time.Month(m), Day: d}
	if normalized(y, time.Month(m), d) != parsed {
		return Date{}, fmt.Errorf("invalid date %q: no such day", s)
	}
	return parsed, nil
}

// MustParseDate parses an ISO date string and panics on failure.
// Intended for literals in tests and fixtures.
func MustParseDate(s string) Date {
	d, err := ParseDate(s)
	if err != nil {
		panic(err)
	}
	return d
}

// IsZero reports whether the date is the zero value (no date set).
func (d Date) IsZero() bool {
	return d.Year == 0 && d.Month == 0 && d.Day == 0
}

// String returns the ISO YYYY-MM-DD representation.
func (d Date) String() string {
	return fmt.Sprintf("%04d-%02d-%02d", d.Year, int(d.Month), d.Day)
}

// MarshalJSON encodes the date as an ISO YYYY-MM-DD string.
func (d Date) MarshalJSON() ([]byte, error) {
	if d.IsZero() {
		return []byte(`null`), nil
	}
	return []byte(`"` + d.String() + `"`), nil
}

// UnmarshalJSON decodes an ISO YYYY-MM-DD string (or null) into the date.
func (d *Date) UnmarshalJSON(data []byte) error {
	s := strings.Trim(string(data), `"`)
	if s == "" || s == "null" {
		*d = Date{}
		return nil
	}
	parsed, err := ParseDate(s)
	if err != nil {
		return err
	}
	*d = parsed
	return nil
}

// normalized returns the date with out-of-range components rolled over,
// using time.Date purely as a calendar normalizer. The fixed UTC location
// never leaks out: only the normalized components are read back.
func normalized(year int, month time.Month, day int) Date {
	t := time.Date(year, month, day, 0, 0, 0, 0, time.UTC)
	return Date{Year: t.Year(), Month: t.Month(), Day: t.Day()}
}

// AddDays returns the date n days later (earlier for negative n).
func (d Date) AddDays(n int) Date {
	return normalized(d.Year, d.Month, d.Day+n)
}

// AddMonths returns the date n months later, with day-of-month rollover
// following Go's calendar normalization (Jan 31 + 1 month = Mar 2/3).
func (d Date) AddMonths(n int) Date {
	return normalized(d.Year, d.Month+time.Month(n), d.Day)
}

// Weekday returns the day of the week (Sunday = 0).
func (d Date) Weekday() time.Weekday {
	return time.Date(d.Year, d.Month, d.Day, 0, 0, 0, 0, time.UTC).Weekday()
}

// Compare returns -1 if d is before o, 0 if equal, +1 if after.
func (d Date) Compare(o Date) int {
	switch {
	case d.Year != o.Year:
		return sign(d.Year - o.Year)
	case d.Month != o.Month:
		return sign(int(d.Month) - int(o.Month))
	default:
		return sign(d.Day - o.Day)
	}
}

func sign(n int) int {
	switch {
	case n < 0:
		return -1
	case n > 0:
		return 1
	default:
		return 0
	}
}

// Before reports whether d is strictly before o.
func (d Date) Before(o Date) bool { return d.Compare(o) < 0 }

// After reports whether d is strictly after o.
func (d Date) After(o Date) bool { return d.Compare(o) > 0 }

// Equal reports whether d and o are the same calendar day.
func (d Date) Equal(o Date) bool { return d.Compare(o) == 0 }

// DaysBetween returns the number of days from a to b (negative if b is
// before a).
func DaysBetween(a, b Date) int {
	ta := time.Date(a.Year, a.Month, a.Day, 0, 0, 0, 0, time.UTC)
	tb := time.Date(b.Year, b.Month, b.Day, 0, 0, 0, 0, time.UTC)
	return int(tb.Sub(ta).Hours() / 24)
}

// DateRange is an inclusive range of civil dates.
type DateRange struct {
	Start Date
	End   Date
}

// NewDateRange creates an inclusive date range.
func NewDateRange(start, end Date) DateRange {
	return DateRange{Start: start, End: end}
}

// SingleDay returns a range covering exactly one day.
func SingleDay(d Date) DateRange {
	return DateRange{Start: d, End: d}
}

// IsValid reports whether the range is non-empty (end not before start).
// Callers may construct inverted ranges from unvalidated UI state; those
// simply match nothing rather than erroring.
func (r DateRange) IsValid() bool {
	return !r.Start.IsZero() && !r.End.IsZero() && !r.End.Before(r.Start)
}

// Contains reports whether the date falls inside the range, inclusive.
func (r DateRange) Contains(d Date) bool {
	if d.IsZero() || !r.IsValid() {
		return false
	}
	return !d.Before(r.Start) && !d.After(r.End)
}

// Days enumerates every date in the range in chronological order.
// Returns nil for invalid ranges.
func (r DateRange) Days() []Date {
	if !r.IsValid() {
		return nil
	}
	n := DaysBetween(r.Start, r.End) + 1
	days := make([]Date, 0, n)
	for d := r.Start; !d.After(r.End); d = d.AddDays(1) {
		days = append(days, d)
	}
	return days
}

// YearMonth identifies a calendar month.
type YearMonth struct {
	Year  int
	Month time.Month
}

// ParseYearMonth parses a "YYYY-MM" string.
func ParseYearMonth(s string) (YearMonth, error) {
	var y, m int
	if _, err := fmt.Sscanf(s, "%d-%d", &y, &m); err != nil {
		return YearMonth{}, fmt.Errorf("invalid year-month %q: %w", s, err)
	}
	if m < 1 || m > 12 {
		return YearMonth{}, fmt.Errorf("invalid year-month %q: month out of range", s)
	}
	return YearMonth{Year: y, Month: time.Month(m)}, nil
}

// String returns the "YYYY-MM" representation.
func (ym YearMonth) String() string {
	return fmt.Sprintf("%04d-%02d", ym.Year, int(ym.Month))
}

// FirstDay returns the first day of the month.
func (ym YearMonth) FirstDay() Date {
	return Date{Year: ym.Year, Month: ym.Month, Day: 1}
}

// LastDay returns the last day of the month.
func (ym YearMonth) LastDay() Date {
	return normalized(ym.Year, ym.Month+1, 0)
}

// Range returns the inclusive date range covering the whole month.
func (ym YearMonth) Range() DateRange {
	return DateRange{Start: ym.FirstDay(), End: ym.LastDay()}
}

// DaysInMonth returns the number of days in the month.
func (ym YearMonth) DaysInMonth() int {
	return ym.LastDay().Day
}
