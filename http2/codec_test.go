package http2_test

import (
	"strings"
	"testing"

	"github.com/google/go-cmp/cmp"
	"github.com/google/go-cmp/cmp/cmpopts"

	"github.com/ghettovoice/httpmsg/header"
	"github.com/ghettovoice/httpmsg/http2"
	"github.com/ghettovoice/httpmsg/message"
)

func newRequest(t *testing.T, method, scheme, authority, path string, fields ...header.Field) *message.Request {
	t.Helper()

	req := message.NewRequest(method, scheme, authority, path)
	for _, f := range fields {
		if err := req.Headers.Append(f.Name, f.Value); err != nil {
			t.Fatalf("req.Headers.Append(%q, %q) error = %v, want nil", f.Name, f.Value, err)
		}
	}
	return req
}

func newResponse(t *testing.T, status int, fields ...header.Field) *message.Response {
	t.Helper()

	res := message.NewResponse(status)
	for _, f := range fields {
		if err := res.Headers.Append(f.Name, f.Value); err != nil {
			t.Fatalf("res.Headers.Append(%q, %q) error = %v, want nil", f.Name, f.Value, err)
		}
	}
	return res
}

func TestEncode(t *testing.T) {
	t.Parallel()

	cases := []struct {
		name string
		msg  message.Message
		want http2.HeaderList
	}{
		{
			"GET request",
			newRequest(t, message.MethodGet, "https", "www.example.com", "/index.html",
				header.Field{Name: "Accept", Value: "text/html"},
				header.Field{Name: "User-Agent", Value: "Foo/1.0"},
			),
			http2.HeaderList{
				{Name: ":method", Value: "GET"},
				{Name: ":scheme", Value: "https"},
				{Name: ":authority", Value: "www.example.com"},
				{Name: ":path", Value: "/index.html"},
				{Name: "accept", Value: "text/html"},
				{Name: "user-agent", Value: "Foo/1.0"},
			},
		},
		{
			"CONNECT request",
			newRequest(t, message.MethodConnect, "", "proxy.example.com:443", ""),
			http2.HeaderList{
				{Name: ":method", Value: "CONNECT"},
				{Name: ":authority", Value: "proxy.example.com:443"},
			},
		},
		{
			"response",
			newResponse(t, 304,
				header.Field{Name: "ETag", Value: `"abc"`},
				header.Field{Name: "Set-Cookie", Value: "a=1"},
				header.Field{Name: "Set-Cookie", Value: "b=2"},
			),
			http2.HeaderList{
				{Name: ":status", Value: "304"},
				{Name: "etag", Value: `"abc"`},
				{Name: "set-cookie", Value: "a=1"},
				{Name: "set-cookie", Value: "b=2"},
			},
		},
	}

	for _, c := range cases {
		t.Run(c.name, func(t *testing.T) {
			t.Parallel()

			blk, err := http2.Encode(c.msg, 3, true)
			if err != nil {
				t.Fatalf("http2.Encode(msg, 3, true) error = %v, want nil", err)
			}
			if blk.StreamID != 3 || !blk.EndStream || blk.MaxFrameSize != http2.DefaultMaxFrameSize {
				t.Errorf("http2.Encode(msg, 3, true) = {%d %v %d}, want {3 true %d}",
					blk.StreamID, blk.EndStream, blk.MaxFrameSize, http2.DefaultMaxFrameSize)
			}
			if diff := cmp.Diff(blk.Fields, c.want); diff != "" {
				t.Errorf("blk.Fields mismatch\ndiff (-got +want):\n%v", diff)
			}
		})
	}
}

func TestEncode_Errors(t *testing.T) {
	t.Parallel()

	released := newResponse(t, 200)
	released.Release()

	crowded := newResponse(t, 200)
	for range http2.DefaultMaxHeaderListLen {
		if err := crowded.Headers.Append("X-Filler", "1"); err != nil {
			t.Fatalf("crowded.Headers.Append() error = %v, want nil", err)
		}
	}

	cases := []struct {
		name     string
		msg      message.Message
		streamID uint32
		wantErr  error
	}{
		{"nil message", nil, 1, http2.ErrInvalidArgument},
		{"released message", released, 1, http2.ErrInvalidArgument},
		{"invalid message", &message.Response{Status: 99}, 1, http2.ErrInvalidArgument},
		{"zero stream", newResponse(t, 200), 0, http2.ErrInvalidArgument},
		{"stream out of range", newResponse(t, 200), http2.MaxStreamID + 1, http2.ErrInvalidArgument},
		{"too many fields", crowded, 1, http2.ErrCapacity},
	}

	for _, c := range cases {
		t.Run(c.name, func(t *testing.T) {
			t.Parallel()

			blk, err := http2.Encode(c.msg, c.streamID, false)
			if blk != nil {
				t.Errorf("http2.Encode() = %v, want nil", blk)
			}
			if diff := cmp.Diff(err, c.wantErr, cmpopts.EquateErrors()); diff != "" {
				t.Errorf("http2.Encode() error = %v, want %v\ndiff (-got +want):\n%v", err, c.wantErr, diff)
			}
		})
	}
}

func TestCodec_Limits(t *testing.T) {
	t.Parallel()

	c := &http2.Codec{MaxHeaderListLen: 3, MaxFrameSize: 1 << 15}
	res := newResponse(t, 200, header.Field{Name: "A", Value: "1"}, header.Field{Name: "B", Value: "2"})

	blk, err := c.Encode(res, 1, false)
	if err != nil {
		t.Fatalf("c.Encode() error = %v, want nil", err)
	}
	if blk.MaxFrameSize != 1<<15 {
		t.Errorf("blk.MaxFrameSize = %d, want %d", blk.MaxFrameSize, 1<<15)
	}

	if err := res.Headers.Append("C", "3"); err != nil {
		t.Fatalf("res.Headers.Append() error = %v, want nil", err)
	}
	if _, err := c.Encode(res, 1, false); !cmp.Equal(err, http2.ErrCapacity, cmpopts.EquateErrors()) {
		t.Errorf("c.Encode() error = %v, want %v", err, http2.ErrCapacity)
	}

	list := http2.HeaderList{{Name: ":status", Value: "200"}, {Name: "a", Value: "1"}, {Name: "b", Value: "2"}, {Name: "c", Value: "3"}}
	if msg, err := c.Decode(list); msg != nil || !cmp.Equal(err, http2.ErrCapacity, cmpopts.EquateErrors()) {
		t.Errorf("c.Decode() = %v, %v, want nil, %v", msg, err, http2.ErrCapacity)
	}
	if _, err := c.Decode(list[:3]); err != nil {
		t.Errorf("c.Decode() error = %v, want nil", err)
	}
}

func TestDecode(t *testing.T) {
	t.Parallel()

	cases := []struct {
		name string
		in   http2.HeaderList
		want message.Message
	}{
		{
			"GET request",
			http2.HeaderList{
				{Name: ":method", Value: "GET"},
				{Name: ":scheme", Value: "https"},
				{Name: ":authority", Value: "www.example.com"},
				{Name: ":path", Value: "/"},
				{Name: "accept", Value: "*/*"},
			},
			newRequest(t, "GET", "https", "www.example.com", "/", header.Field{Name: "accept", Value: "*/*"}),
		},
		{
			"CONNECT request",
			http2.HeaderList{
				{Name: ":method", Value: "CONNECT"},
				{Name: ":authority", Value: "proxy.example.com:443"},
			},
			newRequest(t, "CONNECT", "", "proxy.example.com:443", ""),
		},
		{
			"authority from host",
			http2.HeaderList{
				{Name: ":method", Value: "GET"},
				{Name: ":scheme", Value: "http"},
				{Name: ":path", Value: "/a"},
				{Name: "host", Value: "example.org"},
			},
			newRequest(t, "GET", "http", "example.org", "/a", header.Field{Name: "host", Value: "example.org"}),
		},
		{
			"response",
			http2.HeaderList{
				{Name: ":status", Value: "404"},
				{Name: "content-length", Value: "0"},
				{Name: "set-cookie", Value: "a=1"},
				{Name: "set-cookie", Value: "b=2"},
			},
			newResponse(t, 404,
				header.Field{Name: "content-length", Value: "0"},
				header.Field{Name: "set-cookie", Value: "a=1"},
				header.Field{Name: "set-cookie", Value: "b=2"},
			),
		},
	}

	for _, c := range cases {
		t.Run(c.name, func(t *testing.T) {
			t.Parallel()

			got, err := http2.Decode(c.in)
			if err != nil {
				t.Fatalf("http2.Decode() error = %v, want nil", err)
			}
			if !got.Equal(c.want) {
				t.Errorf("http2.Decode() = %+s, want %+s", got, c.want)
			}
			if diff := cmp.Diff(got.MessageHeaders().Fields(), c.want.MessageHeaders().Fields()); diff != "" {
				t.Errorf("decoded fields mismatch\ndiff (-got +want):\n%v", diff)
			}
		})
	}
}

func TestDecode_VerbatimValues(t *testing.T) {
	t.Parallel()

	got, err := http2.Decode(http2.HeaderList{
		{Name: ":status", Value: "200"},
		{Name: "x-padded", Value: " x "},
		{Name: "x-tab", Value: "\tv"},
	})
	if err != nil {
		t.Fatalf("http2.Decode() error = %v, want nil", err)
	}
	want := []header.Field{{Name: "x-padded", Value: " x "}, {Name: "x-tab", Value: "\tv"}}
	if diff := cmp.Diff(got.MessageHeaders().Fields(), want); diff != "" {
		t.Errorf("decoded fields mismatch\ndiff (-got +want):\n%v", diff)
	}
}

func TestDecode_Errors(t *testing.T) {
	t.Parallel()

	long := make(http2.HeaderList, 0, http2.DefaultMaxHeaderListLen+1)
	long = append(long, header.Field{Name: ":status", Value: "200"})
	for range http2.DefaultMaxHeaderListLen {
		long = append(long, header.Field{Name: "x-filler", Value: "1"})
	}

	cases := []struct {
		name    string
		in      http2.HeaderList
		wantErr error
	}{
		{"duplicate status", http2.HeaderList{{Name: ":status", Value: "200"}, {Name: ":status", Value: "204"}}, http2.ErrProtocolStructure},
		{"duplicate method", http2.HeaderList{{Name: ":method", Value: "GET"}, {Name: ":method", Value: "GET"}, {Name: ":authority", Value: "a"}}, http2.ErrProtocolStructure},
		{"unknown pseudo-header", http2.HeaderList{{Name: ":method", Value: "GET"}, {Name: ":protocol", Value: "websocket"}, {Name: ":authority", Value: "a"}}, http2.ErrProtocolStructure},
		{"pseudo-header after regular", http2.HeaderList{{Name: ":method", Value: "GET"}, {Name: "accept", Value: "*/*"}, {Name: ":authority", Value: "a"}}, http2.ErrProtocolStructure},
		{"missing method", http2.HeaderList{{Name: ":scheme", Value: "https"}, {Name: ":authority", Value: "a"}, {Name: ":path", Value: "/"}}, http2.ErrProtocolStructure},
		{"missing authority", http2.HeaderList{{Name: ":method", Value: "GET"}, {Name: ":scheme", Value: "https"}, {Name: ":path", Value: "/"}}, http2.ErrProtocolStructure},
		{"status with request pseudo-header", http2.HeaderList{{Name: ":status", Value: "200"}, {Name: ":path", Value: "/"}}, http2.ErrProtocolStructure},
		{"non-numeric status", http2.HeaderList{{Name: ":status", Value: "abc"}}, http2.ErrParse},
		{"status below range", http2.HeaderList{{Name: ":status", Value: "099"}}, http2.ErrParse},
		{"status above range", http2.HeaderList{{Name: ":status", Value: "600"}}, http2.ErrParse},
		{"invalid field name", http2.HeaderList{{Name: ":status", Value: "200"}, {Name: "bad name", Value: "x"}}, http2.ErrValidation},
		{"invalid field value", http2.HeaderList{{Name: ":status", Value: "200"}, {Name: "x-bad", Value: "a\r\nb"}}, http2.ErrValidation},
		{"invalid method", http2.HeaderList{{Name: ":method", Value: "G T"}, {Name: ":authority", Value: "a"}}, http2.ErrValidation},
		{"invalid scheme", http2.HeaderList{{Name: ":method", Value: "GET"}, {Name: ":scheme", Value: "1ttp"}, {Name: ":authority", Value: "a"}, {Name: ":path", Value: "/"}}, http2.ErrValidation},
		{"invalid authority", http2.HeaderList{{Name: ":method", Value: "GET"}, {Name: ":scheme", Value: "https"}, {Name: ":authority", Value: "exa\"mple.com"}, {Name: ":path", Value: "/"}}, http2.ErrValidation},
		{"invalid authority from host", http2.HeaderList{{Name: ":method", Value: "GET"}, {Name: ":scheme", Value: "https"}, {Name: ":path", Value: "/"}, {Name: "host", Value: "exa|mple.com:80"}}, http2.ErrValidation},
		{"invalid path", http2.HeaderList{{Name: ":method", Value: "GET"}, {Name: ":scheme", Value: "https"}, {Name: ":authority", Value: "a"}, {Name: ":path", Value: "/a b"}}, http2.ErrValidation},
		{"too many fields", long, http2.ErrCapacity},
		{"empty list", nil, http2.ErrProtocolStructure},
	}

	for _, c := range cases {
		t.Run(c.name, func(t *testing.T) {
			t.Parallel()

			got, err := http2.Decode(c.in)
			if got != nil {
				t.Errorf("http2.Decode() = %v, want nil", got)
			}
			if diff := cmp.Diff(err, c.wantErr, cmpopts.EquateErrors()); diff != "" {
				t.Errorf("http2.Decode() error = %v, want %v\ndiff (-got +want):\n%v", err, c.wantErr, diff)
			}
		})
	}
}

func TestRoundTrip(t *testing.T) {
	t.Parallel()

	msgs := []message.Message{
		newRequest(t, message.MethodPost, "https", "api.example.com:8443", "/v1/items?limit=10",
			header.Field{Name: "Content-Type", Value: "application/json"},
			header.Field{Name: "Content-Length", Value: "42"},
		),
		newRequest(t, message.MethodConnect, "", "[::1]:443", ""),
		newResponse(t, 200, header.Field{Name: "Cache-Control", Value: "no-cache"}),
	}

	for _, msg := range msgs {
		t.Run(msg.String(), func(t *testing.T) {
			t.Parallel()

			blk, err := http2.Encode(msg, 1, false)
			if err != nil {
				t.Fatalf("http2.Encode() error = %v, want nil", err)
			}
			for _, f := range blk.Fields {
				if f.Name != strings.ToLower(f.Name) {
					t.Errorf("encoded field name %q is not lower-case", f.Name)
				}
			}

			got, err := http2.Decode(blk.Fields)
			if err != nil {
				t.Fatalf("http2.Decode() error = %v, want nil", err)
			}
			if !got.Equal(msg) {
				t.Errorf("http2.Decode(http2.Encode(msg)) = %+s, want %+s", got, msg)
			}
		})
	}
}
