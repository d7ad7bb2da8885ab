package grammar

import (
	"braces.dev/errtrace"
	"github.com/ghettovoice/abnf"

	"github.com/ghettovoice/httpmsg/internal/errorutil"
)

const (
	ErrEmptyInput     Error = "empty input"
	ErrMalformedInput Error = "malformed input"
)

func newMalformedInputErr(args ...any) error {
	return errorutil.NewWrapperError(ErrMalformedInput, args...) //errtrace:skip
}

func parse(op abnf.Operator, s []byte) (*abnf.Node, error) {
	if len(s) == 0 {
		return nil, errtrace.Wrap(ErrEmptyInput)
	}

	ns := abnf.NewNodes()
	defer ns.Free()

	if err := op(s, 0, ns); err != nil {
		return nil, errtrace.Wrap(newMalformedInputErr(err))
	}

	n := ns.Best()
	if nl, il := n.Len(), len(s); nl < il {
		return nil, errtrace.Wrap(newMalformedInputErr("node length %d < input length %d", nl, il))
	}
	return n, nil
}

// ParseStatusLine parses a status line without the trailing CRLF.
// The result node has "HTTP-version", "status-code" and optionally "reason-phrase" children.
func ParseStatusLine[T ~string | ~[]byte](s T) (*abnf.Node, error) {
	return errtrace.Wrap2(parse(ruleStatusLine, []byte(s)))
}

// ParseHeaderField parses a single header field line without the trailing CRLF.
// The result node has "field-name" and "field-value" children, the value is not trimmed.
func ParseHeaderField[T ~string | ~[]byte](s T) (*abnf.Node, error) {
	return errtrace.Wrap2(parse(ruleHeaderField, []byte(s)))
}

// ParseHostport parses an RFC 3986 "host[:port]" authority.
// The result node has a "host" and optionally a "port" child.
func ParseHostport[T ~string | ~[]byte](s T) (*abnf.Node, error) {
	return errtrace.Wrap2(parse(ruleHostport, []byte(s)))
}
