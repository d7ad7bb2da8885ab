package http1

import (
	"strconv"
	"strings"

	"braces.dev/errtrace"

	"github.com/ghettovoice/httpmsg/internal/errorutil"
	"github.com/ghettovoice/httpmsg/internal/grammar"
	"github.com/ghettovoice/httpmsg/internal/util"
	"github.com/ghettovoice/httpmsg/message"
)

// ParseHeaders parses a response head: a status line followed by header lines,
// optionally terminated by an empty line. Lines end with CRLF or a bare LF.
// Anything after the empty line is ignored.
//
// Request heads are not supported and fail with [ErrParse], as do malformed lines and
// obsolete line folding.
func ParseHeaders[T ~string | ~[]byte](s T) (*message.Response, error) {
	text := string(s)

	line, rest, _ := strings.Cut(text, "\n")
	line = strings.TrimSuffix(line, "\r")
	node, err := grammar.ParseStatusLine(line)
	if err != nil {
		return nil, errtrace.Wrap(errorutil.NewParseError(err))
	}
	status, err := strconv.Atoi(grammar.MustGetNode(node, "status-code").String())
	if err != nil || status < 100 || status > 599 {
		return nil, errtrace.Wrap(errorutil.NewParseError("invalid status in %q", util.Ellipsis(line, 64)))
	}

	res := message.NewResponse(status)
	for rest != "" {
		line, rest, _ = strings.Cut(rest, "\n")
		line = strings.TrimSuffix(line, "\r")
		if line == "" {
			break
		}
		if grammar.IsWS(line[0]) {
			res.Release()
			return nil, errtrace.Wrap(errorutil.NewParseError("obsolete line folding in %q", util.Ellipsis(line, 64)))
		}
		if err := parseHeaderLine(res, line); err != nil {
			res.Release()
			return nil, errtrace.Wrap(err)
		}
	}
	return res, nil
}

func parseHeaderLine(res *message.Response, line string) error {
	node, err := grammar.ParseHeaderField(line)
	if err != nil {
		return errtrace.Wrap(errorutil.NewParseError(err))
	}
	name := grammar.MustGetNode(node, "field-name").String()
	var value string
	if n, ok := node.GetNode("field-value"); ok {
		value = util.TrimOWS(n.String())
	}
	return errtrace.Wrap(res.Headers.Append(name, value))
}
