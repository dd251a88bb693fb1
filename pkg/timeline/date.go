package timeline

import (
	"fmt"
	"regexp"
	"strconv"
	"time"

	"github.com/matzehuels/eventline/pkg/errors"
)

// WireDateFormat describes the only accepted textual date format.
const WireDateFormat = "DD.MM.YYYY"

// datePattern matches the wire format shape: two-digit day, two-digit month,
// four-digit year, separated by dots. Shape only; calendar validity is
// checked separately.
var datePattern = regexp.MustCompile(`^(\d{2})\.(\d{2})\.(\d{4})$`)

// Date is a single calendar day in the proleptic Gregorian calendar.
// Dates are value types: comparable with ==, ordered via Compare, and
// subtractable via Sub, which returns whole days. The zero value is not a
// valid date; construct via ParseDate or NewDate.
type Date struct {
	Year  int
	Month int // 1 = January
	Day   int
}

// ParseDate parses a date in DD.MM.YYYY form.
//
// Two failure modes are distinguished: a string that does not match the
// format shape (wrong separators, wrong digit counts, extra text) fails
// with ErrCodeInvalidDateFormat, while a well-shaped string naming an
// impossible calendar day (32.01.2024, 15.13.2024, 29.02.2023) fails with
// ErrCodeInvalidDateValue.
func ParseDate(s string) (Date, error) {
	m := datePattern.FindStringSubmatch(s)
	if m == nil {
		return Date{}, errors.New(errors.ErrCodeInvalidDateFormat, "date %q is not in %s format", s, WireDateFormat)
	}

	day, _ := strconv.Atoi(m[1])
	month, _ := strconv.Atoi(m[2])
	year, _ := strconv.Atoi(m[3])
	return NewDate(year, month, day)
}

// MustParseDate is like ParseDate but panics on error.
// Intended for fixtures and tests with literal dates.
func MustParseDate(s string) Date {
	d, err := ParseDate(s)
	if err != nil {
		panic(err)
	}
	return d
}

// NewDate builds a Date from a year/month/day triple, rejecting triples that
// do not name a real calendar day.
func NewDate(year, month, day int) (Date, error) {
	if month < 1 || month > 12 {
		return Date{}, errors.New(errors.ErrCodeInvalidDateValue, "month %02d is out of range (01-12)", month)
	}
	if day < 1 || day > DaysInMonth(year, month) {
		return Date{}, errors.New(errors.ErrCodeInvalidDateValue, "day %02d is out of range for %02d.%04d", day, month, year)
	}
	return Date{Year: year, Month: month, Day: day}, nil
}

// IsLeapYear reports whether year is a leap year in the proleptic Gregorian
// calendar: divisible by 4, except century years not divisible by 400.
func IsLeapYear(year int) bool {
	return year%4 == 0 && (year%100 != 0 || year%400 == 0)
}

var monthDays = [...]int{31, 28, 31, 30, 31, 30, 31, 31, 30, 31, 30, 31}

// DaysInMonth returns the number of days in the given month of year.
func DaysInMonth(year, month int) int {
	if month == 2 && IsLeapYear(year) {
		return 29
	}
	return monthDays[month-1]
}

// String renders the date in its wire format.
func (d Date) String() string {
	return fmt.Sprintf("%02d.%02d.%04d", d.Day, d.Month, d.Year)
}

// DayNumber returns the index of d counted in days from 1 January 1970.
// The mapping is exact over the whole supported year range, so day numbers
// are safe for ordering and distance computation.
func (d Date) DayNumber() int {
	y := d.Year
	if d.Month <= 2 {
		y--
	}
	era := y / 400
	if y < 0 && y%400 != 0 {
		era--
	}
	yoe := y - era*400
	mp := (d.Month + 9) % 12
	doy := (153*mp+2)/5 + d.Day - 1
	doe := yoe*365 + yoe/4 - yoe/100 + doy
	return era*146097 + doe - 719468
}

// Sub returns the number of whole days from other to d.
// Negative when d falls before other.
func (d Date) Sub(other Date) int {
	return d.DayNumber() - other.DayNumber()
}

// Compare orders two dates chronologically, returning -1, 0, or +1.
func (d Date) Compare(other Date) int {
	a, b := d.DayNumber(), other.DayNumber()
	switch {
	case a < b:
		return -1
	case a > b:
		return 1
	default:
		return 0
	}
}

// Before reports whether d falls before other.
func (d Date) Before(other Date) bool { return d.Compare(other) < 0 }

// After reports whether d falls after other.
func (d Date) After(other Date) bool { return d.Compare(other) > 0 }

// MonthStart returns the first day of d's month.
func (d Date) MonthStart() Date {
	return Date{Year: d.Year, Month: d.Month, Day: 1}
}

// AddMonths returns the date n months after d. Days past the end of the
// target month clamp to its final day.
func (d Date) AddMonths(n int) Date {
	t := time.Date(d.Year, time.Month(d.Month+n), 1, 0, 0, 0, 0, time.UTC)
	day := d.Day
	if last := DaysInMonth(t.Year(), int(t.Month())); day > last {
		day = last
	}
	return Date{Year: t.Year(), Month: int(t.Month()), Day: day}
}

// Time returns the date at midnight UTC, for use with time layout formatting.
func (d Date) Time() time.Time {
	return time.Date(d.Year, time.Month(d.Month), d.Day, 0, 0, 0, 0, time.UTC)
}
