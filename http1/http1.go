// Package http1 converts messages to and from the HTTP/1.1 text form of a message head.
//
// [Format] and [RenderTo] serialize requests and responses. [ParseHeaders] parses
// a response head; request lines are not parsed.
package http1

//go:generate go tool errtrace -w .

import (
	"github.com/ghettovoice/httpmsg/internal/errorutil"
	"github.com/ghettovoice/httpmsg/internal/types"
)

const (
	ErrInvalidArgument = errorutil.ErrInvalidArgument
	ErrValidation      = errorutil.ErrValidation
	ErrParse           = errorutil.ErrParse
)

// Proto is the protocol version written in start lines.
const Proto = "HTTP/1.1"

// RenderOptions contains options for rendering message heads.
type RenderOptions = types.RenderOptions
