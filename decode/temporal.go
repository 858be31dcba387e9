package decode

import (
	stderrors "errors"
	"strconv"
	"strings"
	"time"

	"github.com/araddon/dateparse"

	"github.com/wippyai/lineparse/errors"
)

var errClockSyntax = stderrors.New("expected [-][d.]hh:mm[:ss[.fffffffff]]")

// Time decodes span as a timestamp. A non-empty layout (Go reference-time
// syntax) requires an exact match; otherwise span is parsed free-form and
// interpreted in UTC when it carries no zone.
func Time(span, layout string) (time.Time, error) {
	var (
		t   time.Time
		err error
	)
	if layout != "" {
		t, err = time.Parse(layout, span)
	} else {
		t, err = dateparse.ParseIn(span, time.UTC)
	}
	if err != nil {
		return time.Time{}, errors.MalformedValue(span, "time", err)
	}
	return t, nil
}

// Duration decodes span as an elapsed time. A non-empty layout is a clock
// layout (for example "15:04:05.000"); the value is the time elapsed since
// midnight of the parsed instant. Without a layout, Go duration syntax
// ("1h2m3s") and clock syntax ("[-][d.]hh:mm[:ss[.fff]]") are accepted.
func Duration(span, layout string) (time.Duration, error) {
	if layout != "" {
		t, err := time.Parse(layout, span)
		if err != nil {
			return 0, errors.MalformedValue(span, "duration", err)
		}
		midnight := time.Date(t.Year(), t.Month(), t.Day(), 0, 0, 0, 0, t.Location())
		return t.Sub(midnight), nil
	}

	if d, err := time.ParseDuration(span); err == nil {
		return d, nil
	}
	d, err := parseClock(span)
	if err != nil {
		return 0, errors.MalformedValue(span, "duration", err)
	}
	return d, nil
}

// FormatDuration renders d with a clock layout, the inverse of Duration.
func FormatDuration(d time.Duration, layout string) string {
	return time.Time{}.Add(d).Format(layout)
}

func parseClock(s string) (time.Duration, error) {
	neg := false
	if strings.HasPrefix(s, "-") {
		neg = true
		s = s[1:]
	}

	var days int64
	if dot, colon := strings.IndexByte(s, '.'), strings.IndexByte(s, ':'); dot >= 0 && colon > dot {
		n, err := strconv.ParseInt(s[:dot], 10, 32)
		if err != nil {
			return 0, errClockSyntax
		}
		days = n
		s = s[dot+1:]
	}

	parts := strings.Split(s, ":")
	if len(parts) < 2 || len(parts) > 3 {
		return 0, errClockSyntax
	}

	hours, err := clockField(parts[0], 23)
	if err != nil {
		return 0, err
	}
	minutes, err := clockField(parts[1], 59)
	if err != nil {
		return 0, err
	}

	var seconds, frac int64
	if len(parts) == 3 {
		sec := parts[2]
		if dot := strings.IndexByte(sec, '.'); dot >= 0 {
			digits := sec[dot+1:]
			if len(digits) == 0 || len(digits) > 9 {
				return 0, errClockSyntax
			}
			f, err := strconv.ParseInt(digits, 10, 64)
			if err != nil || f < 0 {
				return 0, errClockSyntax
			}
			for i := len(digits); i < 9; i++ {
				f *= 10
			}
			frac = f
			sec = sec[:dot]
		}
		seconds, err = clockField(sec, 59)
		if err != nil {
			return 0, err
		}
	}

	d := time.Duration(days)*24*time.Hour +
		time.Duration(hours)*time.Hour +
		time.Duration(minutes)*time.Minute +
		time.Duration(seconds)*time.Second +
		time.Duration(frac)
	if neg {
		d = -d
	}
	return d, nil
}

func clockField(s string, maxValue int64) (int64, error) {
	if len(s) == 0 || len(s) > 2 {
		return 0, errClockSyntax
	}
	n, err := strconv.ParseInt(s, 10, 64)
	if err != nil || n < 0 || n > maxValue {
		return 0, errClockSyntax
	}
	return n, nil
}
