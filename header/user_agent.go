package header

import (
	"fmt"

	"braces.dev/errtrace"

	"github.com/ghettovoice/httpmsg/internal/errorutil"
	"github.com/ghettovoice/httpmsg/internal/grammar"
)

const maxCommentDepth = 16

// UserAgent is a User-Agent product list such as "Foo/1.0 (compatible) Bar/2.3".
type UserAgent string

// IsValid reports whether the product list is well-formed.
func (ua UserAgent) IsValid() bool { return ValidateUserAgent(ua) == nil }

// ValidateUserAgent checks s against the User-Agent grammar:
//
//	User-Agent = product *( RWS ( product / comment ) )
//	product    = token [ "/" product-version ]
//	comment    = "(" *( ctext / quoted-pair / comment ) ")"
//
// Double quotes are rejected anywhere. The returned error wraps [ErrValidation].
func ValidateUserAgent[T ~string | ~[]byte](s T) error {
	str := string(s)
	if str == "" {
		return errtrace.Wrap(errorutil.NewValidationError("empty User-Agent"))
	}

	for i := 0; i < len(str); {
		var err error
		if str[i] == '(' {
			if i == 0 {
				return errtrace.Wrap(errorutil.NewValidationError("User-Agent %q starts with a comment", str))
			}
			i, err = scanComment(str, i, 1)
		} else {
			i, err = scanProduct(str, i)
		}
		if err != nil {
			return errtrace.Wrap(errorutil.NewValidationError(fmt.Errorf("User-Agent %q: %w", str, err)))
		}
		if i == len(str) {
			break
		}

		ws := i
		for i < len(str) && grammar.IsWS(str[i]) {
			i++
		}
		if ws == i {
			return errtrace.Wrap(errorutil.NewValidationError("User-Agent %q: unexpected %q at %d", str, str[i], i))
		}
		if i == len(str) {
			return errtrace.Wrap(errorutil.NewValidationError("User-Agent %q: trailing whitespace", str))
		}
	}
	return nil
}

func scanToken(s string, i int) int {
	for i < len(s) && grammar.IsTchar(s[i]) {
		i++
	}
	return i
}

// product = token ["/" product-version]
func scanProduct(s string, i int) (int, error) {
	end := scanToken(s, i)
	if end == i {
		return i, errtrace.Wrap(errorutil.Errorf("expected product at %d", i))
	}
	if end == len(s) || s[end] != '/' {
		return end, nil
	}

	i = end + 1
	end = scanToken(s, i)
	if end == i {
		return i, errtrace.Wrap(errorutil.Errorf("expected product version at %d", i))
	}
	return end, nil
}

// scanComment consumes a comment starting at s[i] == '(' and returns the index after
// the matching ')'. Nested comments are consumed recursively.
func scanComment(s string, i, depth int) (int, error) {
	if depth > maxCommentDepth {
		return i, errtrace.Wrap(errorutil.Errorf("comment nesting deeper than %d", maxCommentDepth))
	}

	start := i
	for i++; i < len(s); {
		switch c := s[i]; {
		case c == ')':
			return i + 1, nil
		case c == '(':
			var err error
			if i, err = scanComment(s, i, depth+1); err != nil {
				return i, errtrace.Wrap(err)
			}
		case c == '\\':
			if i+1 == len(s) || !grammar.IsQuotedPairChar(s[i+1]) {
				return i, errtrace.Wrap(errorutil.Errorf("invalid quoted pair at %d", i))
			}
			i += 2
		case c == '"' || !grammar.IsCtext(c):
			return i, errtrace.Wrap(errorutil.Errorf("unexpected %q in comment at %d", c, i))
		default:
			i++
		}
	}
	return i, errtrace.Wrap(errorutil.Errorf("unterminated comment at %d", start))
}

// AppendUserAgent validates token with [ValidateUserAgent] and appends it to the first
// User-Agent field separated by a space, creating the field when there is none.
// On failure the collection is left unchanged.
func (h *Headers) AppendUserAgent(token string) error {
	if err := ValidateUserAgent(token); err != nil {
		return errtrace.Wrap(err)
	}

	if i := h.index("User-Agent"); i >= 0 {
		f := &h.fields[i]
		if f.Value == "" {
			f.Value = token
		} else {
			f.Value += " " + token
		}
		return nil
	}
	h.fields = append(h.fields, Field{Name: "User-Agent", Value: token})
	return nil
}
