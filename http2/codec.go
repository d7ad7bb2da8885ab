package http2

import (
	"context"
	"log/slog"
	"strconv"

	"braces.dev/errtrace"

	"github.com/ghettovoice/httpmsg/header"
	"github.com/ghettovoice/httpmsg/internal/errorutil"
	"github.com/ghettovoice/httpmsg/internal/util"
	"github.com/ghettovoice/httpmsg/log"
	"github.com/ghettovoice/httpmsg/message"
)

// Codec converts messages to and from header lists.
// The zero value is ready to use. A Codec is safe for concurrent use.
type Codec struct {
	// MaxHeaderListLen limits the number of fields in encoded and decoded lists.
	// Zero or negative means [DefaultMaxHeaderListLen].
	MaxHeaderListLen int
	// MaxFrameSize is passed to the frame layer in every [HeaderBlock].
	// Zero means [DefaultMaxFrameSize].
	MaxFrameSize uint32
	// Log is used to report rejected lists. Nil means [log.Default].
	Log *slog.Logger
}

func (c *Codec) maxHeaderListLen() int {
	if c == nil || c.MaxHeaderListLen <= 0 {
		return DefaultMaxHeaderListLen
	}
	return c.MaxHeaderListLen
}

func (c *Codec) maxFrameSize() uint32 {
	if c == nil || c.MaxFrameSize == 0 {
		return DefaultMaxFrameSize
	}
	return c.MaxFrameSize
}

func (c *Codec) log() *slog.Logger {
	if c == nil || c.Log == nil {
		return log.Default()
	}
	return c.Log
}

var defCodec Codec

// Encode converts msg with the default codec. See [Codec.Encode].
func Encode(msg message.Message, streamID uint32, endStream bool) (*HeaderBlock, error) {
	return errtrace.Wrap2(defCodec.Encode(msg, streamID, endStream))
}

// Decode converts a header list with the default codec. See [Codec.Decode].
func Decode(fields HeaderList) (message.Message, error) {
	return errtrace.Wrap2(defCodec.Decode(fields))
}

// Encode converts msg into a header block for the given stream.
// Requests produce :method, :scheme (if set), :authority and :path (if set),
// responses produce :status. Regular fields follow in order with lower-cased names.
//
// Invalid or released messages and stream identifiers outside [1, MaxStreamID]
// fail with [ErrInvalidArgument]. Lists longer than the configured maximum fail with [ErrCapacity].
func (c *Codec) Encode(msg message.Message, streamID uint32, endStream bool) (*HeaderBlock, error) {
	if msg == nil {
		return nil, errtrace.Wrap(errorutil.NewInvalidArgumentError("nil message"))
	}
	if err := msg.Validate(); err != nil {
		return nil, errtrace.Wrap(errorutil.NewInvalidArgumentError(err))
	}
	if streamID == 0 || streamID > MaxStreamID {
		return nil, errtrace.Wrap(errorutil.NewInvalidArgumentError("invalid stream identifier %d", streamID))
	}

	hdrs := msg.MessageHeaders()
	fields := make(HeaderList, 0, 4+hdrs.Len())
	switch m := msg.(type) {
	case *message.Request:
		fields = append(fields, header.Field{Name: PseudoMethod, Value: m.Method})
		if m.Scheme != "" {
			fields = append(fields, header.Field{Name: PseudoScheme, Value: m.Scheme})
		}
		fields = append(fields, header.Field{Name: PseudoAuthority, Value: m.Authority})
		if m.Path != "" {
			fields = append(fields, header.Field{Name: PseudoPath, Value: m.Path})
		}
	case *message.Response:
		fields = append(fields, header.Field{Name: PseudoStatus, Value: strconv.Itoa(m.Status)})
	default:
		return nil, errtrace.Wrap(errorutil.NewInvalidArgumentError("unexpected message type %T", msg))
	}
	for name, value := range hdrs.All() {
		fields = append(fields, header.Field{Name: util.LCase(name), Value: value})
	}

	if limit := c.maxHeaderListLen(); len(fields) > limit {
		c.log().LogAttrs(context.Background(), slog.LevelDebug, "header list too long",
			slog.Any("message", msg),
			slog.Int("fields", len(fields)),
			slog.Int("max_fields", limit),
		)
		return nil, errtrace.Wrap(errorutil.NewCapacityError("%d header fields exceed the limit of %d", len(fields), limit))
	}

	return &HeaderBlock{
		StreamID:     streamID,
		EndStream:    endStream,
		MaxFrameSize: c.maxFrameSize(),
		Fields:       fields,
	}, nil
}
