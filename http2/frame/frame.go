// Package frame carries [http2.HeaderBlock] values over HTTP/2 frames.
//
// [Writer] compresses a block with HPACK and emits a HEADERS frame followed by as many
// CONTINUATION frames as the block's MaxFrameSize requires. [Reader] reads HEADERS and
// CONTINUATION frames with an [xhttp2.Framer], decompresses them and returns the header
// list ready for [http2.Decode].
//
// HPACK keeps per-connection state, so a Writer and a Reader must each serve exactly
// one connection direction.
package frame

//go:generate go tool errtrace -w .
//go:generate go tool mockgen -destination ../../internal/testutil/framemock/framemock.go -package framemock . HeadersWriter

import (
	xhttp2 "golang.org/x/net/http2"

	"github.com/ghettovoice/httpmsg/internal/errorutil"
)

const (
	ErrInvalidArgument   = errorutil.ErrInvalidArgument
	ErrProtocolStructure = errorutil.ErrProtocolStructure
	ErrCapacity          = errorutil.ErrCapacity
)

// DefaultHeaderTableSize is the initial SETTINGS_HEADER_TABLE_SIZE of RFC 9113 Section 6.5.2.
const DefaultHeaderTableSize uint32 = 4096

// DefaultMaxHeaderListSize is the decoded header list size a [Reader] accepts by default.
const DefaultMaxHeaderListSize uint32 = 16 << 20

// HeadersWriter writes HEADERS and CONTINUATION frames. It is satisfied by *[xhttp2.Framer].
type HeadersWriter interface {
	WriteHeaders(p xhttp2.HeadersFrameParam) error
	WriteContinuation(streamID uint32, endHeaders bool, headerBlockFragment []byte) error
}

var _ HeadersWriter = (*xhttp2.Framer)(nil)
