package message

import (
	"fmt"
	"log/slog"
	"strconv"

	"braces.dev/errtrace"

	"github.com/ghettovoice/httpmsg/header"
	"github.com/ghettovoice/httpmsg/internal/errorutil"
	"github.com/ghettovoice/httpmsg/internal/grammar"
	"github.com/ghettovoice/httpmsg/internal/types"
	"github.com/ghettovoice/httpmsg/internal/util"
)

// RequestMethod represents an HTTP request method.
// See [types.RequestMethod].
type RequestMethod = types.RequestMethod

// Addr is a request authority: host and optional port.
// See [types.Addr].
type Addr = types.Addr

// Request methods registered in RFC 9110 and its extensions.
const (
	MethodGet     = string(types.RequestMethodGet)
	MethodHead    = string(types.RequestMethodHead)
	MethodPost    = string(types.RequestMethodPost)
	MethodPut     = string(types.RequestMethodPut)
	MethodDelete  = string(types.RequestMethodDelete)
	MethodConnect = string(types.RequestMethodConnect)
	MethodOptions = string(types.RequestMethodOptions)
	MethodTrace   = string(types.RequestMethodTrace)
	MethodPatch   = string(types.RequestMethodPatch)
	MethodPri     = string(types.RequestMethodPri)
)

// Request is an HTTP request head. Scheme and Path are optional, an empty string means absent.
// Both are set for origin-form requests and both are absent for
// authority-form (CONNECT) requests.
type Request struct {
	Method    string
	Scheme    string
	Authority string
	Path      string
	Headers   header.Headers

	released bool
}

// NewRequest creates a request. It panics if method or authority is empty.
func NewRequest(method, scheme, authority, path string) *Request {
	if method == "" {
		panic("message: empty request method")
	}
	if authority == "" {
		panic("message: empty request authority")
	}
	return &Request{
		Method:    method,
		Scheme:    scheme,
		Authority: authority,
		Path:      path,
	}
}

func (*Request) isMessage() {}

// MessageHeaders returns the header collection of the request.
func (req *Request) MessageHeaders() *header.Headers {
	if req == nil {
		return nil
	}
	return &req.Headers
}

// IsAuthorityForm reports whether the request has neither a scheme nor a path,
// as CONNECT requests do.
func (req *Request) IsAuthorityForm() bool { return req != nil && req.Scheme == "" && req.Path == "" }

// Addr parses the request authority.
func (req *Request) Addr() (Addr, error) {
	if req == nil {
		return Addr{}, errtrace.Wrap(errorutil.NewInvalidArgumentError("nil request"))
	}
	return errtrace.Wrap2(types.ParseAddr(req.Authority))
}

// Clone returns a deep copy of the request.
func (req *Request) Clone() Message {
	if req == nil {
		return nil
	}
	req2 := *req
	req2.Headers = req.Headers.Clone()
	return &req2
}

// Equal reports whether val is a request with the same method, target and headers.
// The scheme is compared case-insensitively, authorities are compared as parsed addresses
// so "[::1]:80" equals "[0:0::1]:80".
func (req *Request) Equal(val any) bool {
	var other *Request
	switch v := val.(type) {
	case *Request:
		other = v
	default:
		return false
	}

	if req == other {
		return true
	} else if req == nil || other == nil {
		return false
	}

	return req.Method == other.Method &&
		util.EqFold(req.Scheme, other.Scheme) &&
		equalAuthority(req.Authority, other.Authority) &&
		req.Path == other.Path &&
		req.Headers.Equal(other.Headers)
}

// Validate checks that the method is a token, the authority is a valid host[:port] or "*",
// the optional scheme and path are well-formed and all header fields are valid.
func (req *Request) Validate() error {
	if req == nil {
		return errtrace.Wrap(errorutil.NewInvalidArgumentError("nil request"))
	}
	if req.released {
		return errtrace.Wrap(errorutil.NewInvalidArgumentError("released request"))
	}

	var errs []error
	if !types.RequestMethod(req.Method).IsValid() {
		errs = append(errs, errorutil.NewValidationError("invalid method %q", req.Method))
	}
	if !isValidAuthority(req.Authority) {
		errs = append(errs, errorutil.NewValidationError("invalid authority %q", req.Authority))
	}
	if req.Scheme != "" && !grammar.IsScheme(req.Scheme) {
		errs = append(errs, errorutil.NewValidationError("invalid scheme %q", req.Scheme))
	}
	if req.Path != "" && !grammar.IsRequestTarget(req.Path) {
		errs = append(errs, errorutil.NewValidationError("invalid path %q", req.Path))
	}
	errs = append(errs, req.Headers.Validate())
	return errtrace.Wrap(errorutil.JoinPrefix("invalid request:", errs...))
}

// IsValid reports whether [Request.Validate] returns nil.
func (req *Request) IsValid() bool { return req.Validate() == nil }

func equalAuthority(a, b string) bool {
	if util.EqFold(a, b) {
		return true
	}
	addr1, err1 := types.ParseAddr(a)
	addr2, err2 := types.ParseAddr(b)
	return err1 == nil && err2 == nil && addr1.Equal(addr2)
}

func isValidAuthority(s string) bool {
	if s == "*" {
		return true
	}
	addr, err := types.ParseAddr(s)
	return err == nil && addr.IsValid()
}

// Release drops the headers and all fields of the request.
func (req *Request) Release() {
	if req == nil || req.released {
		return
	}
	req.Headers.Clear()
	req.Method, req.Scheme, req.Authority, req.Path = "", "", "", ""
	req.released = true
}

// String returns the method and the target of the request.
func (req *Request) String() string {
	if req == nil {
		return "<nil>"
	}

	sb := util.GetStringBuilder()
	defer util.FreeStringBuilder(sb)
	sb.WriteString(req.Method)
	sb.WriteByte(' ')
	if req.Scheme != "" {
		sb.WriteString(req.Scheme)
		sb.WriteString("://")
	}
	sb.WriteString(req.Authority)
	sb.WriteString(req.Path)
	return sb.String()
}

// Format implements [fmt.Formatter] for custom formatting.
func (req *Request) Format(f fmt.State, verb rune) {
	switch verb {
	case 's':
		if f.Flag('+') && req != nil {
			fmt.Fprint(f, req.String(), "\r\n", req.Headers.String())
			return
		}
		fmt.Fprint(f, req.String())
		return
	case 'q':
		fmt.Fprint(f, strconv.Quote(req.String()))
		return
	default:
		type hideMethods Request
		type Request hideMethods
		fmt.Fprintf(f, fmt.FormatString(f, verb), (*Request)(req))
		return
	}
}

// LogValue implements [slog.LogValuer].
func (req *Request) LogValue() slog.Value {
	if req == nil {
		return slog.Value{}
	}
	return slog.GroupValue(
		slog.String("method", req.Method),
		slog.String("scheme", req.Scheme),
		slog.String("authority", req.Authority),
		slog.String("path", req.Path),
		slog.Any("headers", req.Headers),
	)
}
