package frame

import (
	"context"
	"errors"
	"log/slog"

	"braces.dev/errtrace"
	xhttp2 "golang.org/x/net/http2"
	"golang.org/x/net/http2/hpack"

	"github.com/ghettovoice/httpmsg/header"
	"github.com/ghettovoice/httpmsg/http2"
	"github.com/ghettovoice/httpmsg/internal/errorutil"
	"github.com/ghettovoice/httpmsg/log"
)

// ReaderOptions configures a [Reader].
type ReaderOptions struct {
	// HeaderTableSize is the HPACK dynamic table size announced to the peer.
	// Zero means [DefaultHeaderTableSize].
	HeaderTableSize uint32
	// MaxFrameSize is the largest frame payload accepted.
	// Zero means [http2.DefaultMaxFrameSize].
	MaxFrameSize uint32
	// MaxHeaderListSize limits the decoded size of a header list in bytes as defined by
	// RFC 9113 Section 6.5.2. Zero means [DefaultMaxHeaderListSize].
	MaxHeaderListSize uint32
	// Log is used to report skipped frames and rejected blocks. Nil means [log.Default].
	Log *slog.Logger
}

func (o *ReaderOptions) headerTableSize() uint32 {
	if o == nil || o.HeaderTableSize == 0 {
		return DefaultHeaderTableSize
	}
	return o.HeaderTableSize
}

func (o *ReaderOptions) maxFrameSize() uint32 {
	if o == nil || o.MaxFrameSize == 0 {
		return http2.DefaultMaxFrameSize
	}
	return o.MaxFrameSize
}

func (o *ReaderOptions) maxHeaderListSize() uint32 {
	if o == nil || o.MaxHeaderListSize == 0 {
		return DefaultMaxHeaderListSize
	}
	return o.MaxHeaderListSize
}

func (o *ReaderOptions) log() *slog.Logger {
	if o == nil || o.Log == nil {
		return log.Default()
	}
	return o.Log
}

// Reader reads header blocks from a framer. It is not safe for concurrent use.
type Reader struct {
	fr          *xhttp2.Framer
	dec         *hpack.Decoder
	maxSize     uint32
	maxListSize uint32
	log         *slog.Logger

	// state of the block being decoded
	fields  http2.HeaderList
	size    uint64
	blkErr  error
	lostErr error
}

// NewReader creates a reader on top of fr. The reader decompresses header blocks itself
// and clears fr.ReadMetaHeaders. Options may be nil.
func NewReader(fr *xhttp2.Framer, opts *ReaderOptions) *Reader {
	fr.ReadMetaHeaders = nil
	fr.SetMaxReadFrameSize(opts.maxFrameSize())
	r := &Reader{
		fr:          fr,
		maxSize:     opts.maxFrameSize(),
		maxListSize: opts.maxHeaderListSize(),
		log:         opts.log(),
	}
	r.dec = hpack.NewDecoder(opts.headerTableSize(), r.emit)
	r.dec.SetMaxStringLength(int(r.maxListSize))
	return r
}

func (r *Reader) emit(hf hpack.HeaderField) {
	if r.blkErr != nil {
		return
	}
	r.size += uint64(hf.Size())
	switch {
	case r.size > uint64(r.maxListSize):
		r.blkErr = errorutil.NewCapacityError("header list exceeds %d bytes", r.maxListSize)
	case hasUpper(hf.Name):
		r.blkErr = errorutil.NewProtocolStructureError("header field name %q is not lower case", hf.Name)
	default:
		r.fields = append(r.fields, header.Field{Name: hf.Name, Value: hf.Value})
		return
	}
	// keep decoding to the end of the block so the dynamic table stays in sync
	r.dec.SetEmitEnabled(false)
	r.fields = nil
}

func hasUpper(s string) bool {
	for i := 0; i < len(s); i++ {
		if 'A' <= s[i] && s[i] <= 'Z' {
			return true
		}
	}
	return false
}

func (r *Reader) startBlock() {
	r.fields = nil
	r.size = 0
	r.blkErr = nil
	r.dec.SetEmitEnabled(true)
}

// lose marks the decoding context as unusable after a failed HPACK decode.
func (r *Reader) lose(err error) error {
	r.lostErr = errorutil.NewProtocolStructureError("header compression context lost: %v", err)
	r.fields = nil
	r.log.LogAttrs(context.Background(), slog.LevelDebug, "header block rejected", slog.Any("error", err))
	if errors.Is(err, hpack.ErrStringLength) {
		return errtrace.Wrap(errorutil.NewCapacityError("header field exceeds %d bytes", r.maxListSize))
	}
	return errtrace.Wrap(r.lostErr)
}

// ReadHeaderBlock reads frames until a complete header block arrives and returns it.
// Frames of other types are skipped.
//
// Stream and connection errors reported by the framer wrap [ErrProtocolStructure],
// so do upper-case field names and malformed HPACK data.
// A header list larger than MaxHeaderListSize fails with [ErrCapacity]. When the
// limit is crossed by the running list size the block is still consumed and the next
// block can be read; a single string longer than the limit aborts decompression and
// every later call fails with [ErrProtocolStructure].
func (r *Reader) ReadHeaderBlock() (*http2.HeaderBlock, error) {
	if r.lostErr != nil {
		return nil, errtrace.Wrap(r.lostErr)
	}

	var (
		streamID  uint32
		endStream bool
	)
	for {
		f, err := r.fr.ReadFrame()
		if err != nil {
			var (
				se xhttp2.StreamError
				ce xhttp2.ConnectionError
			)
			if errors.As(err, &se) || errors.As(err, &ce) {
				return nil, errtrace.Wrap(errorutil.NewProtocolStructureError(err))
			}
			return nil, errtrace.Wrap(err)
		}

		var (
			frag  []byte
			ended bool
		)
		switch f := f.(type) {
		case *xhttp2.HeadersFrame:
			r.startBlock()
			streamID, endStream = f.StreamID, f.StreamEnded()
			frag, ended = f.HeaderBlockFragment(), f.HeadersEnded()
		case *xhttp2.ContinuationFrame:
			frag, ended = f.HeaderBlockFragment(), f.HeadersEnded()
		default:
			r.log.LogAttrs(context.Background(), slog.LevelDebug, "non-header frame skipped",
				slog.String("frame_type", f.Header().Type.String()),
				slog.Any("stream_id", f.Header().StreamID),
			)
			continue
		}

		if _, err := r.dec.Write(frag); err != nil {
			return nil, r.lose(err)
		}
		if !ended {
			continue
		}
		if err := r.dec.Close(); err != nil {
			return nil, r.lose(err)
		}

		if err := r.blkErr; err != nil {
			r.blkErr = nil
			r.log.LogAttrs(context.Background(), slog.LevelDebug, "header block rejected",
				slog.Any("stream_id", streamID),
				slog.Any("error", err),
			)
			return nil, errtrace.Wrap(err)
		}

		fields := r.fields
		r.fields = nil
		if fields == nil {
			fields = http2.HeaderList{}
		}
		return &http2.HeaderBlock{
			StreamID:     streamID,
			EndStream:    endStream,
			MaxFrameSize: r.maxSize,
			Fields:       fields,
		}, nil
	}
}
