// Package errorutil provides the error taxonomy shared by the message model and the codecs.
package errorutil

//go:generate go tool errtrace -w .

import (
	"errors"
	"fmt"
	"strings"

	"github.com/ghettovoice/httpmsg/internal/util"
)

// Error is a string type that implements the error interface.
type Error string

func (s Error) Error() string { return string(s) }

func Errorf(format string, args ...any) error {
	return Error(fmt.Sprintf(format, args...)) //errtrace:skip
}

const (
	// ErrInvalidArgument is returned when a codec or accessor receives an unusable argument,
	// for example a nil or released message.
	ErrInvalidArgument Error = "invalid argument"
	// ErrValidation marks a malformed header name or value, or a malformed User-Agent product list.
	ErrValidation Error = "validation failed"
	// ErrProtocolStructure marks a structurally invalid HTTP/2 header list:
	// duplicate, unknown, misplaced or missing pseudo-headers.
	ErrProtocolStructure Error = "protocol structure violation"
	// ErrParse marks text that does not match the expected grammar (dates, status, header lines).
	ErrParse Error = "parse failed"
	// ErrCapacity marks a header list longer than the configured maximum.
	ErrCapacity Error = "capacity exceeded"
	// ErrHeaderNotFound is returned by typed header accessors when the header is absent.
	ErrHeaderNotFound Error = "header not found"
)

// NewWrapperError creates or wraps an error with a sentinel error.
// It supports multiple argument patterns:
//   - No args: returns sentinel
//   - error arg: wraps with sentinel (unless already wrapped)
//   - string arg: formats as message with sentinel
//   - string + args: formats with Sprintf then wraps with sentinel
func NewWrapperError(sentinel error, args ...any) error {
	if len(args) == 0 {
		return sentinel //errtrace:skip
	}
	switch v := args[0].(type) {
	case error:
		if errors.Is(v, sentinel) {
			return v //errtrace:skip
		}
		return fmt.Errorf("%w: %w", sentinel, v) //errtrace:skip
	case string:
		if len(args) == 1 {
			return fmt.Errorf("%w: %s", sentinel, v) //errtrace:skip
		}
		return fmt.Errorf("%w: %s", sentinel, fmt.Sprintf(v, args[1:]...)) //errtrace:skip
	default:
		return sentinel //errtrace:skip
	}
}

func NewInvalidArgumentError(args ...any) error {
	return NewWrapperError(ErrInvalidArgument, args...) //errtrace:skip
}

func NewValidationError(args ...any) error {
	return NewWrapperError(ErrValidation, args...) //errtrace:skip
}

func NewProtocolStructureError(args ...any) error {
	return NewWrapperError(ErrProtocolStructure, args...) //errtrace:skip
}

func NewParseError(args ...any) error {
	return NewWrapperError(ErrParse, args...) //errtrace:skip
}

func NewCapacityError(args ...any) error {
	return NewWrapperError(ErrCapacity, args...) //errtrace:skip
}

// JoinPrefix joins the non-nil errors under a common prefix. It returns nil if there are none.
func JoinPrefix(prefix string, errs ...error) error {
	errs = compact(errs)
	if len(errs) == 0 {
		return nil
	}
	if len(errs) == 1 {
		return fmt.Errorf("%s: %w", strings.TrimRight(prefix, ":"), errs[0]) //errtrace:skip
	}
	return &multiError{prefix: prefix, errs: errs} //errtrace:skip
}

func compact(errs []error) []error {
	n := 0
	for _, err := range errs {
		if err != nil {
			errs[n] = err
			n++
		}
	}
	return errs[:n]
}

type multiError struct {
	prefix string
	errs   []error
}

func (e *multiError) Error() string {
	sb := util.GetStringBuilder()
	defer util.FreeStringBuilder(sb)

	sb.WriteString(e.prefix)
	e.writeErrors(sb, "")
	return sb.String()
}

func (e *multiError) writeErrors(sb *strings.Builder, indent string) {
	for _, err := range e.errs {
		sb.WriteString("\n")
		sb.WriteString(indent)
		sb.WriteString("  - ")

		if nested, ok := err.(*multiError); ok { //nolint:errorlint
			label := nested.prefix
			if label == "" {
				label = "multiple errors"
			}
			sb.WriteString(label)
			nested.writeErrors(sb, indent+"  ")
			continue
		}

		sb.WriteString(strings.ReplaceAll(err.Error(), "\n", "\n"+indent+"    "))
	}
}

func (e *multiError) Unwrap() []error { return e.errs }
