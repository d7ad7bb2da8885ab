package message

import (
	"fmt"
	"log/slog"
	"strconv"

	"braces.dev/errtrace"

	"github.com/ghettovoice/httpmsg/header"
	"github.com/ghettovoice/httpmsg/internal/errorutil"
	"github.com/ghettovoice/httpmsg/internal/types"
)

// ResponseStatus represents an HTTP status code.
// See [types.ResponseStatus].
type ResponseStatus = types.ResponseStatus

// Response is an HTTP response head.
type Response struct {
	Status  int
	Headers header.Headers

	released bool
}

// NewResponse creates a response. It panics if status is outside [100, 599].
func NewResponse(status int) *Response {
	if status < 100 || status > 599 {
		panic(fmt.Sprintf("message: response status %d out of range", status))
	}
	return &Response{Status: status}
}

func (*Response) isMessage() {}

// MessageHeaders returns the header collection of the response.
func (res *Response) MessageHeaders() *header.Headers {
	if res == nil {
		return nil
	}
	return &res.Headers
}

// Reason returns the reason phrase registered for the status.
func (res *Response) Reason() string {
	if res == nil || res.Status < 0 {
		return ""
	}
	return string(types.ResponseStatus(res.Status).Reason())
}

// Clone returns a deep copy of the response.
func (res *Response) Clone() Message {
	if res == nil {
		return nil
	}
	res2 := *res
	res2.Headers = res.Headers.Clone()
	return &res2
}

// Equal reports whether val is a response with the same status and headers.
func (res *Response) Equal(val any) bool {
	var other *Response
	switch v := val.(type) {
	case *Response:
		other = v
	default:
		return false
	}

	if res == other {
		return true
	} else if res == nil || other == nil {
		return false
	}

	return res.Status == other.Status && res.Headers.Equal(other.Headers)
}

// Validate checks that the status is in [100, 599] and all header fields are valid.
func (res *Response) Validate() error {
	if res == nil {
		return errtrace.Wrap(errorutil.NewInvalidArgumentError("nil response"))
	}
	if res.released {
		return errtrace.Wrap(errorutil.NewInvalidArgumentError("released response"))
	}

	var errs []error
	if res.Status < 100 || res.Status > 599 {
		errs = append(errs, errorutil.NewValidationError("status %d out of range", res.Status))
	}
	errs = append(errs, res.Headers.Validate())
	return errtrace.Wrap(errorutil.JoinPrefix("invalid response:", errs...))
}

// IsValid reports whether [Response.Validate] returns nil.
func (res *Response) IsValid() bool { return res.Validate() == nil }

// Release drops the headers of the response and resets the status.
func (res *Response) Release() {
	if res == nil || res.released {
		return
	}
	res.Headers.Clear()
	res.Status = 0
	res.released = true
}

// String returns the status code and reason phrase.
func (res *Response) String() string {
	if res == nil {
		return "<nil>"
	}
	return fmt.Sprintf("%03d %s", res.Status, res.Reason())
}

// Format implements [fmt.Formatter] for custom formatting.
func (res *Response) Format(f fmt.State, verb rune) {
	switch verb {
	case 's':
		if f.Flag('+') && res != nil {
			fmt.Fprint(f, res.String(), "\r\n", res.Headers.String())
			return
		}
		fmt.Fprint(f, res.String())
		return
	case 'q':
		fmt.Fprint(f, strconv.Quote(res.String()))
		return
	default:
		type hideMethods Response
		type Response hideMethods
		fmt.Fprintf(f, fmt.FormatString(f, verb), (*Response)(res))
		return
	}
}

// LogValue implements [slog.LogValuer].
func (res *Response) LogValue() slog.Value {
	if res == nil {
		return slog.Value{}
	}
	return slog.GroupValue(
		slog.Int("status", res.Status),
		slog.Any("headers", res.Headers),
	)
}
