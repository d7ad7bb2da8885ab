package errorutil_test

import (
	"errors"
	"io"
	"testing"

	"github.com/google/go-cmp/cmp"

	"github.com/ghettovoice/httpmsg/internal/errorutil"
)

func TestNewWrapperError(t *testing.T) {
	t.Parallel()

	cases := []struct {
		name    string
		args    []any
		wantMsg string
	}{
		{"no args", nil, "parse failed"},
		{"string", []any{"bad status"}, "parse failed: bad status"},
		{"format", []any{"bad status %q", "2xx"}, `parse failed: bad status "2xx"`},
		{"error", []any{io.EOF}, "parse failed: EOF"},
		{"already wrapped", []any{errorutil.NewParseError("x")}, "parse failed: x"},
	}

	for _, c := range cases {
		t.Run(c.name, func(t *testing.T) {
			t.Parallel()

			err := errorutil.NewWrapperError(errorutil.ErrParse, c.args...)
			if !errors.Is(err, errorutil.ErrParse) {
				t.Errorf("errors.Is(err, ErrParse) = false, want true")
			}
			if got := err.Error(); got != c.wantMsg {
				t.Errorf("err.Error() = %q, want %q", got, c.wantMsg)
			}
		})
	}
}

func TestJoinPrefix(t *testing.T) {
	t.Parallel()

	if err := errorutil.JoinPrefix("decode:", nil, nil); err != nil {
		t.Errorf("errorutil.JoinPrefix(nil, nil) = %v, want nil", err)
	}

	err := errorutil.JoinPrefix("decode:", errorutil.ErrCapacity, nil, errorutil.ErrParse)
	if !errors.Is(err, errorutil.ErrCapacity) || !errors.Is(err, errorutil.ErrParse) {
		t.Fatalf("joined error %v does not match both sentinels", err)
	}
	want := "decode:\n  - capacity exceeded\n  - parse failed"
	if diff := cmp.Diff(err.Error(), want); diff != "" {
		t.Errorf("err.Error() mismatch\ndiff (-got +want):\n%v", diff)
	}
}
