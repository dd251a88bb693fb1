package style

import (
	"fmt"
	"strings"
	"time"

	"github.com/matzehuels/eventline/pkg/errors"
)

// FormatDate renders t according to a strftime-style format string, the
// notation config files use for visual.date_format_display. Directives are
// substituted directly rather than translated to a Go layout, so literal
// digits and month names in the format text pass through untouched.
//
// Supported directives: %d %e %m %y %Y %b %B %a %A %j %%.
func FormatDate(t time.Time, format string) (string, error) {
	var out strings.Builder
	for i := 0; i < len(format); i++ {
		c := format[i]
		if c != '%' {
			out.WriteByte(c)
			continue
		}
		i++
		if i >= len(format) {
			return "", errors.New(errors.ErrCodeInvalidStyleValue, "date format %q ends with a bare %%", format)
		}
		sub, ok := formatDirective(t, format[i])
		if !ok {
			return "", errors.New(errors.ErrCodeInvalidStyleValue, "date format %q uses unsupported directive %%%c", format, format[i])
		}
		out.WriteString(sub)
	}
	return out.String(), nil
}

// MustFormatDate is like [FormatDate] but panics on an invalid format.
// It is for formats that have already passed [ValidateDateFormat], such
// as those inside a validated [Resolved].
func MustFormatDate(t time.Time, format string) string {
	s, err := FormatDate(t, format)
	if err != nil {
		panic(err)
	}
	return s
}

// ValidateDateFormat checks that every directive in format is supported.
func ValidateDateFormat(format string) error {
	_, err := FormatDate(time.Date(2024, 1, 2, 0, 0, 0, 0, time.UTC), format)
	return err
}

func formatDirective(t time.Time, c byte) (string, bool) {
	switch c {
	case 'd':
		return fmt.Sprintf("%02d", t.Day()), true
	case 'e':
		return fmt.Sprintf("%2d", t.Day()), true
	case 'm':
		return fmt.Sprintf("%02d", int(t.Month())), true
	case 'y':
		return fmt.Sprintf("%02d", t.Year()%100), true
	case 'Y':
		return fmt.Sprintf("%04d", t.Year()), true
	case 'b':
		return t.Format("Jan"), true
	case 'B':
		return t.Format("January"), true
	case 'a':
		return t.Format("Mon"), true
	case 'A':
		return t.Format("Monday"), true
	case 'j':
		return fmt.Sprintf("%03d", t.YearDay()), true
	case '%':
		return "%", true
	default:
		return "", false
	}
}
