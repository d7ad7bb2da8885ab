package header

import (
	"math"
	"time"

	"braces.dev/errtrace"

	"github.com/ghettovoice/httpmsg/internal/errorutil"
	"github.com/ghettovoice/httpmsg/internal/util"
)

const maxDelaySeconds = math.MaxInt64 / int64(time.Second)

// ParseRetryAfter parses a Retry-After value, either delta-seconds or an HTTP date,
// and returns the delay relative to now. A date before now yields zero.
// Delays too large for [time.Duration] saturate.
func ParseRetryAfter[T ~string | ~[]byte](s T, now time.Time) (time.Duration, error) {
	str := util.TrimOWS(string(s))
	if str == "" {
		return 0, errtrace.Wrap(errorutil.NewParseError("empty Retry-After value"))
	}

	if str[0] >= '0' && str[0] <= '9' {
		var secs int64
		for i := 0; i < len(str); i++ {
			c := str[i]
			if c < '0' || c > '9' {
				return 0, errtrace.Wrap(errorutil.NewParseError("invalid delta-seconds %q", str))
			}
			if secs < maxDelaySeconds {
				secs = secs*10 + int64(c-'0')
			}
		}
		if secs >= maxDelaySeconds {
			return time.Duration(math.MaxInt64), nil
		}
		return time.Duration(secs) * time.Second, nil
	}

	t, err := ParseHTTPDate(str)
	if err != nil {
		return 0, errtrace.Wrap(err)
	}
	return max(t.Sub(now), 0), nil
}

// RetryAfter returns the delay requested by the Retry-After header relative to now.
// It returns an error wrapping [ErrHeaderNotFound] if the field is absent
// and [ErrParse] if the value is malformed.
func (h Headers) RetryAfter(now time.Time) (time.Duration, error) {
	v, ok := h.Get("Retry-After")
	if !ok {
		return 0, errtrace.Wrap(errorutil.NewWrapperError(ErrHeaderNotFound, "Retry-After"))
	}
	return errtrace.Wrap2(ParseRetryAfter(v, now))
}
