// Package header implements the ordered HTTP header store shared by requests and responses,
// together with the typed accessors for the structured headers the codecs rely on.
//
// # Store
//
// [Headers] keeps fields in insertion order. Names are compared with ASCII case folding,
// the original spelling is kept for serialization. Every mutation validates its input and
// either fully succeeds or leaves the store unchanged:
//
//	var hdrs header.Headers
//	if err := hdrs.Append("Cache-Control", "no-cache"); err != nil {
//		// err wraps [ErrValidation]
//	}
//	hdrs.Appendf("Set-Cookie", "foo=%s; max-age=%d", id, 3600)
//
// Duplicate names are kept, [Headers.Get] returns the first occurrence and
// [Headers.Values] returns all of them.
//
// # Dates
//
// [ParseHTTPDate] accepts the three date grammars of RFC 9110 Section 5.6.7:
//
//	Sun, 06 Nov 1994 08:49:37 GMT    ; IMF-fixdate
//	Sunday, 06-Nov-94 08:49:37 GMT   ; obsolete RFC 850 format
//	Sun Nov  6 08:49:37 1994         ; ANSI C's asctime() format
//
// Two-digit years below 70 map to 20yy, others to 19yy. [FormatHTTPDate] always
// produces IMF-fixdate.
//
// # Retry-After
//
// [Headers.RetryAfter] and [ParseRetryAfter] accept delta-seconds or an HTTP date and
// always return a delay relative to the given instant; dates in the past yield zero.
//
// # User-Agent
//
// [ValidateUserAgent] checks a product list against RFC 9110 Section 10.1.5:
// one or more products, optionally versioned, and comments separated by whitespace.
// The first item must be a product. [Headers.AppendUserAgent] extends the first
// User-Agent field with a validated fragment.
package header
