package grammar_test

import (
	"errors"
	"testing"

	"github.com/ghettovoice/httpmsg/internal/grammar"
)

func TestIsToken(t *testing.T) {
	t.Parallel()

	cases := []struct {
		in   string
		want bool
	}{
		{"", false},
		{"Content-Type", true},
		{"x-custom_header.v1", true},
		{"!#$%&'*+-.^_`|~", true},
		{"Bad Name", false},
		{"Bad:Name", false},
		{":status", false},
		{"quo\"te", false},
		{"ctl\x01", false},
		{"(comment)", false},
	}

	for _, c := range cases {
		t.Run(c.in, func(t *testing.T) {
			t.Parallel()

			if got := grammar.IsToken(c.in); got != c.want {
				t.Errorf("grammar.IsToken(%q) = %v, want %v", c.in, got, c.want)
			}
		})
	}
}

func TestIsFieldValue(t *testing.T) {
	t.Parallel()

	cases := []struct {
		in   string
		want bool
	}{
		{"", true},
		{"no-cache", true},
		{"foo=bar; max-age=3600; version=1", true},
		{"tab\tinside", true},
		{"caf\xc3\xa9", true},
		{"ctl\x01inside", true},
		{"del\x7f", true},
		{"vt\vff\f", true},
		{"line\r\nbreak", false},
		{"lf\nonly", false},
		{"nul\x00", false},
	}

	for _, c := range cases {
		t.Run(c.in, func(t *testing.T) {
			t.Parallel()

			if got := grammar.IsFieldValue(c.in); got != c.want {
				t.Errorf("grammar.IsFieldValue(%q) = %v, want %v", c.in, got, c.want)
			}
		})
	}
}

func TestIsCtext(t *testing.T) {
	t.Parallel()

	for _, c := range []byte("abc XYZ!\"#'*[]~\t") {
		if !grammar.IsCtext(c) {
			t.Errorf("grammar.IsCtext(%q) = false, want true", c)
		}
	}
	for _, c := range []byte("()\\\x00\x08\x7f") {
		if grammar.IsCtext(c) {
			t.Errorf("grammar.IsCtext(%q) = true, want false", c)
		}
	}
}

func TestParseStatusLine(t *testing.T) {
	t.Parallel()

	cases := []struct {
		name       string
		in         string
		wantCode   string
		wantReason string
		wantErr    error
	}{
		{"ok", "HTTP/1.1 200 OK", "200", "OK", nil},
		{"multi word reason", "HTTP/1.0 404 Not Found", "404", "Not Found", nil},
		{"empty reason", "HTTP/1.1 204 ", "204", "", nil},
		{"no reason", "HTTP/1.1 304", "304", "", nil},
		{"empty", "", "", "", grammar.ErrEmptyInput},
		{"request line", "GET / HTTP/1.1", "", "", grammar.ErrMalformedInput},
		{"two digit status", "HTTP/1.1 20 OK", "", "", grammar.ErrMalformedInput},
		{"alpha status", "HTTP/1.1 2xx OK", "", "", grammar.ErrMalformedInput},
	}

	for _, c := range cases {
		t.Run(c.name, func(t *testing.T) {
			t.Parallel()

			node, err := grammar.ParseStatusLine(c.in)
			if c.wantErr != nil {
				if !errors.Is(err, c.wantErr) {
					t.Fatalf("grammar.ParseStatusLine(%q) error = %v, want %v", c.in, err, c.wantErr)
				}
				return
			}
			if err != nil {
				t.Fatalf("grammar.ParseStatusLine(%q) error = %v, want nil", c.in, err)
			}
			if got := grammar.MustGetNode(node, "status-code").String(); got != c.wantCode {
				t.Errorf("status-code = %q, want %q", got, c.wantCode)
			}
			var reason string
			if n, ok := node.GetNode("reason-phrase"); ok {
				reason = n.String()
			}
			if reason != c.wantReason {
				t.Errorf("reason-phrase = %q, want %q", reason, c.wantReason)
			}
		})
	}
}

func TestParseHeaderField(t *testing.T) {
	t.Parallel()

	node, err := grammar.ParseHeaderField("Cache-Control: private ")
	if err != nil {
		t.Fatalf("grammar.ParseHeaderField() error = %v, want nil", err)
	}
	if got := grammar.MustGetNode(node, "field-name").String(); got != "Cache-Control" {
		t.Errorf("field-name = %q, want %q", got, "Cache-Control")
	}
	if got := grammar.MustGetNode(node, "field-value").String(); got != " private " {
		t.Errorf("field-value = %q, want %q", got, " private ")
	}

	for _, in := range []string{"Bad Name: x", ": empty", "NoColon", "Name: a\rb"} {
		if _, err := grammar.ParseHeaderField(in); !errors.Is(err, grammar.ErrMalformedInput) {
			t.Errorf("grammar.ParseHeaderField(%q) error = %v, want %v", in, err, grammar.ErrMalformedInput)
		}
	}
}

func TestIsScheme(t *testing.T) {
	t.Parallel()

	for in, want := range map[string]bool{
		"":            false,
		"http":        true,
		"HTTPS":       true,
		"coap+tcp":    true,
		"ms-settings": true,
		"1http":       false,
		"http:":       false,
		"web socket":  false,
	} {
		if got := grammar.IsScheme(in); got != want {
			t.Errorf("grammar.IsScheme(%q) = %v, want %v", in, got, want)
		}
	}
}

func TestIsRequestTarget(t *testing.T) {
	t.Parallel()

	for in, want := range map[string]bool{
		"":                false,
		"/":               true,
		"/index.html?q=1": true,
		"*":               true,
		"/a b":            false,
		"/a\r\n":          false,
	} {
		if got := grammar.IsRequestTarget(in); got != want {
			t.Errorf("grammar.IsRequestTarget(%q) = %v, want %v", in, got, want)
		}
	}
}

func TestIsHost(t *testing.T) {
	t.Parallel()

	for in, want := range map[string]bool{
		"":                false,
		"www.example.com": true,
		"192.0.2.1":       true,
		"[2001:db8::1]":   true,
		"my_host~1":       true,
		"caf%C3%A9.local": true,
		"a!$&'()*+,;=b":   true,
		"exa\"mple.com":   false,
		"exa{mple}.com":   false,
		"exa<mple>.com":   false,
		"exa|mple.com":    false,
		"exa^mple.com":    false,
		"bad host":        false,
		"user@example":    false,
		"[2001:db8::1":    false,
		"[example.com]":   false,
		"%zz":             false,
	} {
		if got := grammar.IsHost(in); got != want {
			t.Errorf("grammar.IsHost(%q) = %v, want %v", in, got, want)
		}
	}
}

func TestParseHostport(t *testing.T) {
	t.Parallel()

	cases := []struct {
		in       string
		wantHost string
		wantPort string
		wantErr  error
	}{
		{"example.com", "example.com", "", nil},
		{"example.com:8080", "example.com", "8080", nil},
		{"[::1]:443", "[::1]", "443", nil},
		{"", "", "", grammar.ErrEmptyInput},
		{"example.com:", "", "", grammar.ErrMalformedInput},
		{"exa|mple.com:80", "", "", grammar.ErrMalformedInput},
		{"example.com:http", "", "", grammar.ErrMalformedInput},
	}

	for _, c := range cases {
		t.Run(c.in, func(t *testing.T) {
			t.Parallel()

			node, err := grammar.ParseHostport(c.in)
			if c.wantErr != nil {
				if !errors.Is(err, c.wantErr) {
					t.Fatalf("grammar.ParseHostport(%q) error = %v, want %v", c.in, err, c.wantErr)
				}
				return
			}
			if err != nil {
				t.Fatalf("grammar.ParseHostport(%q) error = %v, want nil", c.in, err)
			}
			if got := grammar.MustGetNode(node, "host").String(); got != c.wantHost {
				t.Errorf("host = %q, want %q", got, c.wantHost)
			}
			var port string
			if n, ok := node.GetNode("port"); ok {
				port = n.String()
			}
			if port != c.wantPort {
				t.Errorf("port = %q, want %q", port, c.wantPort)
			}
		})
	}
}
