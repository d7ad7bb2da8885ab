package header

import (
	"net/http"
	"strings"
	"time"

	"braces.dev/errtrace"

	"github.com/ghettovoice/httpmsg/internal/errorutil"
)

const (
	imfFixdateLen = len("Sun, 06 Nov 1994 08:49:37 GMT")
	asctimeLen    = len("Sun Nov  6 08:49:37 1994")
	rfc850DateLen = len("06-Nov-94 08:49:37 GMT")
)

var shortDays = [...]string{"Sun", "Mon", "Tue", "Wed", "Thu", "Fri", "Sat"}

var longDays = [...]string{"Sunday", "Monday", "Tuesday", "Wednesday", "Thursday", "Friday", "Saturday"}

var months = [...]string{"Jan", "Feb", "Mar", "Apr", "May", "Jun", "Jul", "Aug", "Sep", "Oct", "Nov", "Dec"}

// ParseHTTPDate parses an HTTP date in IMF-fixdate, RFC 850 or asctime format.
// The result is in UTC. Malformed input returns an error wrapping [ErrParse].
func ParseHTTPDate[T ~string | ~[]byte](s T) (time.Time, error) {
	str := string(s)

	var (
		t  time.Time
		ok bool
	)
	switch len(str) {
	case imfFixdateLen:
		t, ok = parseIMFFixdate(str)
	case asctimeLen:
		t, ok = parseASCTime(str)
	default:
		t, ok = parseRFC850Date(str)
	}
	if !ok {
		return time.Time{}, errtrace.Wrap(errorutil.NewParseError("invalid HTTP date %q", str))
	}
	return t, nil
}

// FormatHTTPDate formats t as IMF-fixdate.
func FormatHTTPDate(t time.Time) string { return t.UTC().Format(http.TimeFormat) }

// Sun, 06 Nov 1994 08:49:37 GMT
func parseIMFFixdate(s string) (time.Time, bool) {
	if !isShortDay(s[:3]) || s[3:5] != ", " || s[7] != ' ' || s[11] != ' ' || s[16] != ' ' || s[25:] != " GMT" {
		return time.Time{}, false
	}
	day, ok1 := atoi(s[5:7])
	mon, ok2 := month(s[8:11])
	year, ok3 := atoi(s[12:16])
	if !ok1 || !ok2 || !ok3 {
		return time.Time{}, false
	}
	return makeDate(year, mon, day, s[17:25])
}

// Sunday, 06-Nov-94 08:49:37 GMT
func parseRFC850Date(s string) (time.Time, bool) {
	wday, rest, ok := strings.Cut(s, ", ")
	if !ok || !isLongDay(wday) || len(rest) != rfc850DateLen {
		return time.Time{}, false
	}
	if rest[2] != '-' || rest[6] != '-' || rest[9] != ' ' || rest[18:] != " GMT" {
		return time.Time{}, false
	}
	day, ok1 := atoi(rest[:2])
	mon, ok2 := month(rest[3:6])
	yy, ok3 := atoi(rest[7:9])
	if !ok1 || !ok2 || !ok3 {
		return time.Time{}, false
	}
	return makeDate(expandYear(yy), mon, day, rest[10:18])
}

// Sun Nov  6 08:49:37 1994
func parseASCTime(s string) (time.Time, bool) {
	if !isShortDay(s[:3]) || s[3] != ' ' || s[7] != ' ' || s[10] != ' ' || s[19] != ' ' {
		return time.Time{}, false
	}
	dd := s[8:10]
	if dd[0] == ' ' {
		dd = dd[1:]
	}
	day, ok1 := atoi(dd)
	mon, ok2 := month(s[4:7])
	year, ok3 := atoi(s[20:])
	if !ok1 || !ok2 || !ok3 {
		return time.Time{}, false
	}
	return makeDate(year, mon, day, s[11:19])
}

// expandYear maps a two-digit year onto 1970-2069.
func expandYear(yy int) int {
	if yy < 70 {
		return 2000 + yy
	}
	return 1900 + yy
}

func makeDate(year int, mon time.Month, day int, clock string) (time.Time, bool) {
	if len(clock) != 8 || clock[2] != ':' || clock[5] != ':' {
		return time.Time{}, false
	}
	hour, ok1 := atoi(clock[:2])
	minute, ok2 := atoi(clock[3:5])
	sec, ok3 := atoi(clock[6:])
	if !ok1 || !ok2 || !ok3 || hour > 23 || minute > 59 || sec > 60 {
		return time.Time{}, false
	}
	// reject days past the end of the month instead of normalizing them
	if day < 1 || time.Date(year, mon, day, 0, 0, 0, 0, time.UTC).Day() != day {
		return time.Time{}, false
	}
	return time.Date(year, mon, day, hour, minute, sec, 0, time.UTC), true
}

func atoi(s string) (int, bool) {
	if s == "" {
		return 0, false
	}
	var n int
	for i := 0; i < len(s); i++ {
		c := s[i]
		if c < '0' || c > '9' {
			return 0, false
		}
		n = n*10 + int(c-'0')
	}
	return n, true
}

func month(s string) (time.Month, bool) {
	for i, m := range months {
		if s == m {
			return time.Month(i + 1), true
		}
	}
	return 0, false
}

func isShortDay(s string) bool {
	for _, d := range shortDays {
		if s == d {
			return true
		}
	}
	return false
}

func isLongDay(s string) bool {
	for _, d := range longDays {
		if s == d {
			return true
		}
	}
	return false
}

// Time parses the first field with the given name as an HTTP date.
// It returns an error wrapping [ErrHeaderNotFound] if the field is absent
// and [ErrParse] if the value is not a valid date.
func (h Headers) Time(name string) (time.Time, error) {
	v, ok := h.Get(name)
	if !ok {
		return time.Time{}, errtrace.Wrap(errorutil.NewWrapperError(ErrHeaderNotFound, name))
	}
	return errtrace.Wrap2(ParseHTTPDate(v))
}

// Date returns the message origination time from the Date header.
func (h Headers) Date() (time.Time, error) { return errtrace.Wrap2(h.Time("Date")) }

// LastModified returns the resource modification time from the Last-Modified header.
func (h Headers) LastModified() (time.Time, error) { return errtrace.Wrap2(h.Time("Last-Modified")) }

// AppendTime appends a field with t formatted as IMF-fixdate.
func (h *Headers) AppendTime(name string, t time.Time) error {
	return errtrace.Wrap(h.Append(name, FormatHTTPDate(t)))
}
