// Package grammar implements the HTTP/1.1 message grammar (RFC 9110, RFC 9112)
// and character-class predicates shared by the hand-written header scanners.
package grammar

//go:generate go tool errtrace -w .

import (
	"fmt"

	"github.com/ghettovoice/abnf"
)

func init() {
	abnf.EnableNodeCache(4 * 1024)
}

// Error is a grammar error.
type Error string

func (e Error) Error() string { return string(e) }

const (
	ErrNodeNotFound Error = "node not found"
)

// MustGetNode returns a pointer to the ABNF node with the given key.
func MustGetNode(n *abnf.Node, k string) *abnf.Node {
	sn, ok := n.GetNode(k)
	if !ok {
		panic(fmt.Errorf("get node %q from node %q: %w", k, n.Key, ErrNodeNotFound))
	}
	return sn
}

func matchAll(op abnf.Operator, s []byte) bool {
	ns := abnf.NewNodes()
	defer ns.Free()

	if err := op(s, 0, ns); err != nil {
		return false
	}
	return ns.Best().Len() == len(s)
}

// IsToken reports whether s is an RFC 9110 token.
func IsToken[T ~string | ~[]byte](s T) bool {
	if len(s) == 0 {
		return false
	}
	return matchAll(ruleToken, []byte(s))
}

// IsFieldValue reports whether s may be used as a header field value:
// any octets except NUL, CR and LF.
func IsFieldValue[T ~string | ~[]byte](s T) bool {
	if len(s) == 0 {
		return true
	}
	return matchAll(ruleFieldValue, []byte(s))
}

// IsHost reports whether s is an RFC 3986 host: a bracketed IP literal or a reg-name.
func IsHost[T ~string | ~[]byte](s T) bool {
	if len(s) == 0 {
		return false
	}
	return matchAll(ruleHost, []byte(s))
}

// IsScheme reports whether s is an RFC 3986 URI scheme.
func IsScheme[T ~string | ~[]byte](s T) bool {
	if len(s) == 0 {
		return false
	}
	return matchAll(ruleScheme, []byte(s))
}

// IsRequestTarget reports whether s is non-empty and consists of visible characters only.
// The structure of the target is not checked.
func IsRequestTarget[T ~string | ~[]byte](s T) bool {
	if len(s) == 0 {
		return false
	}
	for i := 0; i < len(s); i++ {
		if !IsVchar(s[i]) {
			return false
		}
	}
	return true
}

var tcharTbl = func() (tbl [256]bool) {
	for c := '0'; c <= '9'; c++ {
		tbl[c] = true
	}
	for c := 'a'; c <= 'z'; c++ {
		tbl[c] = true
		tbl[c-'a'+'A'] = true
	}
	for _, c := range "!#$%&'*+-.^_`|~" {
		tbl[c] = true
	}
	return tbl
}()

// IsTchar reports whether c is an RFC 9110 tchar.
func IsTchar(c byte) bool { return tcharTbl[c] }

// IsVchar reports whether c is a visible US-ASCII character.
func IsVchar(c byte) bool { return 0x21 <= c && c <= 0x7E }

// IsObsText reports whether c is obs-text.
func IsObsText(c byte) bool { return c >= 0x80 }

// IsWS reports whether c is SP or HTAB.
func IsWS(c byte) bool { return c == ' ' || c == '\t' }

// IsCtext reports whether c is allowed unescaped inside a comment (RFC 9110 Section 5.6.5).
func IsCtext(c byte) bool {
	switch {
	case IsWS(c), IsObsText(c):
		return true
	case c == '(' || c == ')' || c == '\\':
		return false
	default:
		return IsVchar(c)
	}
}

// IsQuotedPairChar reports whether c may follow a backslash in a quoted-pair.
func IsQuotedPairChar(c byte) bool { return IsWS(c) || IsVchar(c) || IsObsText(c) }
