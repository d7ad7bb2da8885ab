package types

import "github.com/ghettovoice/httpmsg/internal/grammar"

const (
	RequestMethodGet     RequestMethod = "GET"
	RequestMethodHead    RequestMethod = "HEAD"
	RequestMethodPost    RequestMethod = "POST"
	RequestMethodPut     RequestMethod = "PUT"
	RequestMethodDelete  RequestMethod = "DELETE"
	RequestMethodConnect RequestMethod = "CONNECT"
	RequestMethodOptions RequestMethod = "OPTIONS"
	RequestMethodTrace   RequestMethod = "TRACE"
	RequestMethodPatch   RequestMethod = "PATCH" // [RFC5789]
	RequestMethodPri     RequestMethod = "PRI"   // HTTP/2 connection preface [RFC9113]
)

// RequestMethod is an HTTP request method. Methods are case-sensitive (RFC 9110 Section 9.1).
type RequestMethod string

// IsValid reports whether the method is a token.
func (m RequestMethod) IsValid() bool { return grammar.IsToken(m) }
