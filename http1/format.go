package http1

import (
	"bytes"
	"io"

	"braces.dev/errtrace"

	"github.com/ghettovoice/httpmsg/internal/errorutil"
	"github.com/ghettovoice/httpmsg/internal/ioutil"
	"github.com/ghettovoice/httpmsg/internal/types"
	"github.com/ghettovoice/httpmsg/message"
)

// Format returns the message head in HTTP/1.1 text form, terminated by an empty line.
// The length of the result is the exact number of bytes produced.
func Format(msg message.Message) ([]byte, error) {
	var buf bytes.Buffer
	if _, err := RenderTo(&buf, msg, nil); err != nil {
		return nil, errtrace.Wrap(err)
	}
	return buf.Bytes(), nil
}

// RenderTo writes the message head to w and returns the number of bytes written.
// Invalid and released messages are rejected with [ErrInvalidArgument] before anything is written.
func RenderTo(w io.Writer, msg message.Message, opts *RenderOptions) (int, error) {
	if msg == nil {
		return 0, errtrace.Wrap(errorutil.NewInvalidArgumentError("nil message"))
	}
	if err := msg.Validate(); err != nil {
		return 0, errtrace.Wrap(errorutil.NewInvalidArgumentError(err))
	}

	switch m := msg.(type) {
	case *message.Request:
		return errtrace.Wrap2(renderRequest(w, m, opts))
	case *message.Response:
		return errtrace.Wrap2(renderResponse(w, m, opts))
	default:
		return 0, errtrace.Wrap(errorutil.NewInvalidArgumentError("unexpected message type %T", msg))
	}
}

func renderRequest(w io.Writer, req *message.Request, opts *RenderOptions) (int, error) {
	cw := ioutil.GetCountingWriter(w)
	defer ioutil.FreeCountingWriter(cw)

	cw.Fprint(req.Method, " ")
	cw.Call(func(w io.Writer) (int, error) {
		return errtrace.Wrap2(renderRequestTarget(w, req, opts))
	})
	cw.Fprint(" ", Proto, "\r\n")
	if !omitHost(opts) && req.Authority != "*" && !req.Headers.Has("Host") {
		cw.Fprint("Host: ", req.Authority, "\r\n")
	}
	cw.Call(func(w io.Writer) (int, error) {
		return errtrace.Wrap2(req.Headers.RenderTo(w, opts))
	})
	cw.Fprint("\r\n")
	return errtrace.Wrap2(cw.Result())
}

// renderRequestTarget writes the request target (RFC 9112 Section 3.2):
// origin-form or absolute-form when scheme and path are present,
// asterisk-form when only the scheme is present, the bare path when only the path is present
// and authority-form otherwise.
func renderRequestTarget(w io.Writer, req *message.Request, opts *RenderOptions) (int, error) {
	switch {
	case req.Scheme != "" && req.Path != "":
		if opts != nil && opts.AbsoluteForm {
			return errtrace.Wrap2(io.WriteString(w, req.Scheme+"://"+req.Authority+req.Path))
		}
		return errtrace.Wrap2(io.WriteString(w, req.Path))
	case req.Scheme != "":
		return errtrace.Wrap2(io.WriteString(w, "*"))
	case req.Path != "":
		return errtrace.Wrap2(io.WriteString(w, req.Path))
	default:
		return errtrace.Wrap2(io.WriteString(w, req.Authority))
	}
}

func omitHost(opts *RenderOptions) bool { return opts != nil && opts.OmitHost }

func renderResponse(w io.Writer, res *message.Response, opts *RenderOptions) (int, error) {
	cw := ioutil.GetCountingWriter(w)
	defer ioutil.FreeCountingWriter(cw)

	status := types.ResponseStatus(res.Status)
	cw.Fprintf("%s %03d %s\r\n", Proto, res.Status, status.Reason())
	cw.Call(func(w io.Writer) (int, error) {
		return errtrace.Wrap2(res.Headers.RenderTo(w, opts))
	})
	cw.Fprint("\r\n")
	return errtrace.Wrap2(cw.Result())
}
