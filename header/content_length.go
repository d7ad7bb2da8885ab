package header

import (
	"strconv"
	"strings"

	"braces.dev/errtrace"

	"github.com/ghettovoice/httpmsg/internal/errorutil"
	"github.com/ghettovoice/httpmsg/internal/util"
)

// ParseContentLength parses a Content-Length value.
// A list of identical values, as produced by some intermediaries, is accepted (RFC 9110 Section 8.6).
func ParseContentLength[T ~string | ~[]byte](s T) (uint64, error) {
	str := string(s)
	var (
		n     uint64
		first = true
	)
	for part := range strings.SplitSeq(str, ",") {
		part = util.TrimOWS(part)
		if part == "" || part[0] == '+' {
			return 0, errtrace.Wrap(errorutil.NewParseError("invalid Content-Length %q", str))
		}
		v, err := strconv.ParseUint(part, 10, 64)
		if err != nil {
			return 0, errtrace.Wrap(errorutil.NewParseError("invalid Content-Length %q", str))
		}
		if !first && v != n {
			return 0, errtrace.Wrap(errorutil.NewParseError("conflicting Content-Length values %q", str))
		}
		n, first = v, false
	}
	return n, nil
}

// ContentLength returns the payload size from the Content-Length header.
func (h Headers) ContentLength() (uint64, error) {
	v, ok := h.Get("Content-Length")
	if !ok {
		return 0, errtrace.Wrap(errorutil.NewWrapperError(ErrHeaderNotFound, "Content-Length"))
	}
	return errtrace.Wrap2(ParseContentLength(v))
}
