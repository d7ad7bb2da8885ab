package frame

import (
	"bytes"
	"context"
	"log/slog"
	"sync"

	"braces.dev/errtrace"
	xhttp2 "golang.org/x/net/http2"
	"golang.org/x/net/http2/hpack"

	"github.com/ghettovoice/httpmsg/http2"
	"github.com/ghettovoice/httpmsg/internal/errorutil"
	"github.com/ghettovoice/httpmsg/internal/util"
	"github.com/ghettovoice/httpmsg/log"
)

// WriterOptions configures a [Writer].
type WriterOptions struct {
	// HeaderTableSize is the HPACK dynamic table size announced by the peer.
	// Zero means [DefaultHeaderTableSize].
	HeaderTableSize uint32
	// Log is used to report written blocks. Nil means [log.Default].
	Log *slog.Logger
}

func (o *WriterOptions) headerTableSize() uint32 {
	if o == nil || o.HeaderTableSize == 0 {
		return DefaultHeaderTableSize
	}
	return o.HeaderTableSize
}

func (o *WriterOptions) log() *slog.Logger {
	if o == nil || o.Log == nil {
		return log.Default()
	}
	return o.Log
}

// Writer compresses header blocks and writes them as HEADERS and CONTINUATION frames.
// It is safe for concurrent use, blocks are written one at a time.
type Writer struct {
	hw  HeadersWriter
	log *slog.Logger

	mu  sync.Mutex
	buf bytes.Buffer
	enc *hpack.Encoder
}

// NewWriter creates a writer on top of hw. Options may be nil.
func NewWriter(hw HeadersWriter, opts *WriterOptions) *Writer {
	w := &Writer{
		hw:  hw,
		log: opts.log(),
	}
	w.enc = hpack.NewEncoder(&w.buf)
	w.enc.SetMaxDynamicTableSize(opts.headerTableSize())
	return w
}

// sensitive fields are never added to the HPACK dynamic table.
func sensitive(name string) bool {
	switch util.LCase(name) {
	case "authorization", "proxy-authorization", "cookie", "set-cookie":
		return true
	}
	return false
}

// WriteHeaders compresses blk and writes its frames.
// The first fragment goes to a HEADERS frame carrying the END_STREAM flag of the block,
// the rest is split into CONTINUATION frames of at most blk.MaxFrameSize bytes.
//
// A failed frame write leaves the HPACK state of the connection undefined,
// the connection should be closed.
func (w *Writer) WriteHeaders(blk *http2.HeaderBlock) error {
	if blk == nil || blk.StreamID == 0 || blk.StreamID > http2.MaxStreamID {
		return errtrace.Wrap(errorutil.NewInvalidArgumentError("invalid header block %v", blk))
	}
	maxSize := blk.MaxFrameSize
	if maxSize == 0 {
		maxSize = http2.DefaultMaxFrameSize
	}

	w.mu.Lock()
	defer w.mu.Unlock()

	w.buf.Reset()
	for _, f := range blk.Fields {
		hf := hpack.HeaderField{Name: f.Name, Value: f.Value, Sensitive: sensitive(f.Name)}
		if err := w.enc.WriteField(hf); err != nil {
			return errtrace.Wrap(err)
		}
	}

	frag := w.buf.Bytes()
	first := frag[:min(len(frag), int(maxSize))]
	frag = frag[len(first):]
	if err := w.hw.WriteHeaders(xhttp2.HeadersFrameParam{
		StreamID:      blk.StreamID,
		BlockFragment: first,
		EndStream:     blk.EndStream,
		EndHeaders:    len(frag) == 0,
	}); err != nil {
		return errtrace.Wrap(err)
	}

	frames := 1
	for len(frag) > 0 {
		chunk := frag[:min(len(frag), int(maxSize))]
		frag = frag[len(chunk):]
		if err := w.hw.WriteContinuation(blk.StreamID, len(frag) == 0, chunk); err != nil {
			return errtrace.Wrap(err)
		}
		frames++
	}

	w.log.LogAttrs(context.Background(), slog.LevelDebug, "header block written",
		slog.Any("block", blk),
		slog.Int("frames", frames),
		slog.Int("block_size", w.buf.Len()),
	)
	return nil
}
