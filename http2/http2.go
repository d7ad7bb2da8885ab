// Package http2 maps messages to and from HTTP/2 header lists (RFC 9113 Section 8.3).
//
// [Codec.Encode] produces a [HeaderBlock]: the pseudo-header fields followed by the
// regular fields with lower-cased names, ready to be compressed and framed by the
// connection layer. [Codec.Decode] validates a decompressed header list and builds
// a *[message.Request] or a *[message.Response] from it.
//
// Both directions share the same limit on the number of fields. The zero [Codec]
// uses [DefaultMaxHeaderListLen] and [DefaultMaxFrameSize].
package http2

//go:generate go tool errtrace -w .

import (
	"log/slog"

	"github.com/ghettovoice/httpmsg/header"
	"github.com/ghettovoice/httpmsg/internal/errorutil"
)

const (
	ErrInvalidArgument   = errorutil.ErrInvalidArgument
	ErrValidation        = errorutil.ErrValidation
	ErrProtocolStructure = errorutil.ErrProtocolStructure
	ErrParse             = errorutil.ErrParse
	ErrCapacity          = errorutil.ErrCapacity
)

const (
	// DefaultMaxHeaderListLen is the default maximum number of fields in a header list,
	// pseudo-header fields included.
	DefaultMaxHeaderListLen = 255
	// DefaultMaxFrameSize is the initial SETTINGS_MAX_FRAME_SIZE of RFC 9113 Section 6.5.2.
	DefaultMaxFrameSize uint32 = 16384
	// MaxStreamID is the largest valid stream identifier.
	MaxStreamID uint32 = 1<<31 - 1
)

// Pseudo-header field names.
const (
	PseudoMethod    = ":method"
	PseudoScheme    = ":scheme"
	PseudoAuthority = ":authority"
	PseudoPath      = ":path"
	PseudoStatus    = ":status"
)

// IsPseudo reports whether name is a pseudo-header field name.
func IsPseudo(name string) bool { return len(name) > 0 && name[0] == ':' }

// HeaderList is an ordered list of decompressed header fields.
type HeaderList []header.Field

// LogValue implements [slog.LogValuer].
func (l HeaderList) LogValue() slog.Value {
	attrs := make([]slog.Attr, 0, len(l))
	for _, f := range l {
		attrs = append(attrs, slog.String(f.Name, f.Value))
	}
	return slog.GroupValue(attrs...)
}

// HeaderBlock is a header list addressed to a stream, handed to the frame layer.
type HeaderBlock struct {
	// StreamID is the stream the block belongs to.
	StreamID uint32
	// EndStream marks the block as the last one on the stream.
	EndStream bool
	// MaxFrameSize limits the size of each HEADERS or CONTINUATION frame payload.
	MaxFrameSize uint32
	// Fields is the uncompressed header list.
	Fields HeaderList
}

// LogValue implements [slog.LogValuer].
func (b *HeaderBlock) LogValue() slog.Value {
	if b == nil {
		return slog.Value{}
	}
	return slog.GroupValue(
		slog.Any("stream_id", b.StreamID),
		slog.Bool("end_stream", b.EndStream),
		slog.Any("max_frame_size", b.MaxFrameSize),
		slog.Int("fields", len(b.Fields)),
	)
}
