// Package message implements the in-memory HTTP message: a [Request] or a [Response]
// carrying an ordered [header.Headers] collection.
//
// Messages are plain values that are not safe for concurrent mutation.
// Use [Message.Clone] to hand an independent copy to another goroutine.
package message

//go:generate go tool errtrace -w .

import (
	"github.com/ghettovoice/httpmsg/header"
	"github.com/ghettovoice/httpmsg/internal/errorutil"
)

const (
	ErrInvalidArgument   = errorutil.ErrInvalidArgument
	ErrValidation        = errorutil.ErrValidation
	ErrProtocolStructure = errorutil.ErrProtocolStructure
	ErrParse             = errorutil.ErrParse
	ErrCapacity          = errorutil.ErrCapacity
	ErrHeaderNotFound    = errorutil.ErrHeaderNotFound
)

// Message is either a *[Request] or a *[Response].
type Message interface {
	// MessageHeaders returns the header collection owned by the message.
	MessageHeaders() *header.Headers
	// Clone returns a deep copy of the message.
	Clone() Message
	// Equal reports whether the message equals val.
	Equal(val any) bool
	// Validate returns nil if the message is complete and well-formed.
	// Otherwise the error lists every problem found.
	// Nil and released messages fail with [ErrInvalidArgument].
	Validate() error
	// IsValid reports whether Validate returns nil.
	IsValid() bool
	// Release drops the header collection and all fields. Subsequent calls are no-ops.
	Release()
	// String returns a short one-line description of the message.
	String() string

	isMessage()
}

// StatusOf returns the status code of a response or -1 for any other message.
func StatusOf(msg Message) int {
	if res, ok := msg.(*Response); ok && res != nil {
		return res.Status
	}
	return -1
}

// MethodOf returns the method of a request or an empty string.
func MethodOf(msg Message) string {
	if req, ok := msg.(*Request); ok && req != nil {
		return req.Method
	}
	return ""
}

// SchemeOf returns the scheme of a request or an empty string.
func SchemeOf(msg Message) string {
	if req, ok := msg.(*Request); ok && req != nil {
		return req.Scheme
	}
	return ""
}

// AuthorityOf returns the authority of a request or an empty string.
func AuthorityOf(msg Message) string {
	if req, ok := msg.(*Request); ok && req != nil {
		return req.Authority
	}
	return ""
}

// PathOf returns the path of a request or an empty string.
func PathOf(msg Message) string {
	if req, ok := msg.(*Request); ok && req != nil {
		return req.Path
	}
	return ""
}

// HeaderOf returns the first value of the named header of msg.
func HeaderOf(msg Message, name string) (string, bool) {
	if msg == nil {
		return "", false
	}
	hdrs := msg.MessageHeaders()
	if hdrs == nil {
		return "", false
	}
	return hdrs.Get(name)
}
