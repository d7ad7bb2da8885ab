package header

//go:generate go tool errtrace -w .

import (
	"fmt"
	"io"
	"iter"
	"log/slog"
	"slices"
	"strconv"
	"strings"

	"braces.dev/errtrace"

	"github.com/ghettovoice/httpmsg/internal/errorutil"
	"github.com/ghettovoice/httpmsg/internal/grammar"
	"github.com/ghettovoice/httpmsg/internal/ioutil"
	"github.com/ghettovoice/httpmsg/internal/types"
	"github.com/ghettovoice/httpmsg/internal/util"
)

const (
	ErrValidation     = errorutil.ErrValidation
	ErrParse          = errorutil.ErrParse
	ErrHeaderNotFound = errorutil.ErrHeaderNotFound
)

// RenderOptions contains options for rendering headers.
type RenderOptions = types.RenderOptions

var _ types.Renderer = Headers{}

// Field is a single header field.
type Field struct {
	Name  string
	Value string
}

// String returns the field in "Name: Value" form.
func (f Field) String() string { return f.Name + ": " + f.Value }

// IsValid reports whether the field name is a token and the value contains no CR, LF or NUL.
func (f Field) IsValid() bool { return grammar.IsToken(f.Name) && grammar.IsFieldValue(f.Value) }

// LogValue implements slog.LogValuer.
func (f Field) LogValue() slog.Value { return slog.StringValue(f.String()) }

func validateField(name, value string) error {
	if !grammar.IsToken(name) {
		return errtrace.Wrap(errorutil.NewValidationError("invalid header name %q", name))
	}
	if !grammar.IsFieldValue(value) {
		return errtrace.Wrap(errorutil.NewValidationError("invalid value of header %q", name))
	}
	return nil
}

// Headers is an ordered collection of header fields.
// The zero value is an empty collection ready to use.
type Headers struct {
	fields []Field
}

// Append validates the field and appends it after the existing ones.
// Leading and trailing whitespace of the value is dropped.
// On failure the collection is left unchanged and the error wraps [ErrValidation].
func (h *Headers) Append(name, value string) error {
	return errtrace.Wrap(h.AppendRaw(name, util.TrimOWS(value)))
}

// AppendRaw is like [Headers.Append] but keeps the value verbatim.
func (h *Headers) AppendRaw(name, value string) error {
	if err := validateField(name, value); err != nil {
		return errtrace.Wrap(err)
	}
	h.fields = append(h.fields, Field{Name: name, Value: value})
	return nil
}

// Appendf renders the value with [fmt.Sprintf] and appends the field.
// A malformed format, a missing or extra argument, or a rendered value with CR/LF
// fail with [ErrValidation] and leave the collection unchanged.
func (h *Headers) Appendf(name, format string, args ...any) error {
	value := fmt.Sprintf(format, args...)
	if strings.Count(value, "%!") > fmtNoticeBudget(format, args) {
		return errtrace.Wrap(errorutil.NewValidationError("format value of header %q: %s", name, value))
	}
	return errtrace.Wrap(h.Append(name, value))
}

// fmtNoticeBudget counts the "%!" sequences a well-formed Sprintf call may produce:
// escaped "%%!" in the format and those carried in by the arguments themselves.
func fmtNoticeBudget(format string, args []any) int {
	n := strings.Count(format, "%%!")
	for _, arg := range args {
		n += strings.Count(fmt.Sprint(arg), "%!")
	}
	return n
}

func (h Headers) Get(name string) (string, bool) {
	if i := h.index(name); i >= 0 {
		return h.fields[i].Value, true
	}
	return "", false
}

// Has reports whether a field with the given name is present.
func (h Headers) Has(name string) bool { return h.index(name) >= 0 }

func (h Headers) index(name string) int {
	return slices.IndexFunc(h.fields, func(f Field) bool { return util.EqFold(f.Name, name) })
}

// Values returns the values of all fields with the given name in order of appearance.
func (h Headers) Values(name string) []string {
	var vals []string
	for _, f := range h.fields {
		if util.EqFold(f.Name, name) {
			vals = append(vals, f.Value)
		}
	}
	return vals
}

// Len returns the number of fields.
func (h Headers) Len() int { return len(h.fields) }

// All returns an iterator over the fields in order.
func (h Headers) All() iter.Seq2[string, string] {
	return func(yield func(string, string) bool) {
		for _, f := range h.fields {
			if !yield(f.Name, f.Value) {
				return
			}
		}
	}
}

// Fields returns a copy of the fields.
func (h Headers) Fields() []Field { return slices.Clone(h.fields) }

// Clear drops all fields.
func (h *Headers) Clear() {
	clear(h.fields)
	h.fields = nil
}

// Clone returns an independent copy of the collection.
func (h Headers) Clone() Headers { return Headers{fields: slices.Clone(h.fields)} }

// Equal reports whether val holds the same fields.
// Field names are compared case-insensitively, relative order is significant
// only among fields sharing a name.
func (h Headers) Equal(val any) bool {
	var other Headers
	switch v := val.(type) {
	case Headers:
		other = v
	case *Headers:
		if v == nil {
			return false
		}
		other = *v
	default:
		return false
	}

	if len(h.fields) != len(other.fields) {
		return false
	}
	for _, f := range h.fields {
		if !slices.Equal(h.Values(f.Name), other.Values(f.Name)) {
			return false
		}
	}
	return true
}

// Validate returns the errors of all invalid fields joined together, or nil.
func (h Headers) Validate() error {
	var errs []error
	for _, f := range h.fields {
		if err := validateField(f.Name, f.Value); err != nil {
			errs = append(errs, err)
		}
	}
	return errtrace.Wrap(errorutil.JoinPrefix("invalid headers:", errs...))
}

// IsValid reports whether all fields are valid.
func (h Headers) IsValid() bool {
	for _, f := range h.fields {
		if !f.IsValid() {
			return false
		}
	}
	return true
}

// RenderTo writes every field as a "Name: Value\r\n" line.
func (h Headers) RenderTo(w io.Writer, _ *RenderOptions) (num int, err error) {
	cw := ioutil.GetCountingWriter(w)
	defer ioutil.FreeCountingWriter(cw)
	for _, f := range h.fields {
		cw.Fprint(f.Name, ": ", f.Value, "\r\n")
	}
	return errtrace.Wrap2(cw.Result())
}

// Render returns the fields rendered by [Headers.RenderTo].
func (h Headers) Render(opts *RenderOptions) string {
	sb := util.GetStringBuilder()
	defer util.FreeStringBuilder(sb)
	h.RenderTo(sb, opts) //nolint:errcheck
	return sb.String()
}

func (h Headers) String() string { return h.Render(nil) }

func (h Headers) Format(f fmt.State, verb rune) {
	switch verb {
	case 's':
		fmt.Fprint(f, h.String())
		return
	case 'q':
		fmt.Fprint(f, strconv.Quote(h.String()))
		return
	default:
		type hideMethods Headers
		type Headers hideMethods
		fmt.Fprintf(f, fmt.FormatString(f, verb), Headers(h))
		return
	}
}

// LogValue implements slog.LogValuer.
func (h Headers) LogValue() slog.Value {
	attrs := make([]slog.Attr, 0, len(h.fields))
	for _, f := range h.fields {
		attrs = append(attrs, slog.String(f.Name, f.Value))
	}
	return slog.GroupValue(attrs...)
}
